// Package export writes notes out as HTML or frontmatter Markdown and
// reads Markdown files back in as notes.
package export

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"gopkg.in/yaml.v3"

	"github.com/marcus/reflect/internal/notes"
	"github.com/marcus/reflect/internal/styles"
)

// Format selects an export encoding.
type Format string

const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "md"
)

// Ext returns the file extension for f, including the dot.
func (f Format) Ext() string {
	if f == FormatHTML {
		return ".html"
	}
	return ".md"
}

// frontMatter is the YAML header written before exported Markdown and
// read back on import.
type frontMatter struct {
	ID      string   `yaml:"id,omitempty"`
	Title   string   `yaml:"title"`
	Folder  string   `yaml:"folder,omitempty"`
	Tags    []string `yaml:"tags,omitempty"`
	Theme   string   `yaml:"theme,omitempty"`
	Created string   `yaml:"created,omitempty"`
	Updated string   `yaml:"updated,omitempty"`
}

var engine = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="generator" content="Reflect">
<meta name="reflect-id" content="{{.ID}}">
<title>{{.Title}}</title>
<style>
body { max-width: 46rem; margin: 2rem auto; padding: 0 1rem; font-family: system-ui, sans-serif; line-height: 1.6; background: {{.Bg}}; color: {{.Fg}}; }
a { color: {{.Link}}; }
h1, h2, h3 { color: {{.Heading}}; }
pre, code { background: {{.CodeBg}}; border-radius: 4px; }
pre { padding: 0.75rem; overflow-x: auto; }
blockquote { margin: 0; padding-left: 1rem; border-left: 3px solid {{.Heading}}; color: {{.Muted}}; }
.tags span { display: inline-block; margin-right: 0.4rem; padding: 0 0.4rem; border-radius: 3px; background: {{.CodeBg}}; font-size: 0.85em; }
</style>
</head>
<body>
{{- if .Tags}}
<p class="tags">{{range .Tags}}<span>#{{.}}</span>{{end}}</p>
{{- end}}
{{.Body}}
</body>
</html>
`))

type page struct {
	ID      string
	Title   string
	Tags    []string
	Body    template.HTML
	Bg      template.CSS
	Fg      template.CSS
	Link    template.CSS
	Heading template.CSS
	CodeBg  template.CSS
	Muted   template.CSS
}

// HTML renders note as a standalone HTML page colored with theme.
// Raw HTML in the note is omitted; goldmark leaves a comment in its place.
func HTML(note notes.Note, theme string) ([]byte, error) {
	var body bytes.Buffer
	if err := engine.Convert([]byte(note.Content), &body); err != nil {
		return nil, fmt.Errorf("render %s: %w", note.ID, err)
	}

	c := styles.GetTheme(theme).Colors
	p := page{
		ID:      note.ID,
		Title:   note.Title,
		Tags:    note.Tags,
		Body:    template.HTML(body.String()),
		Bg:      template.CSS(c.BgPrimary),
		Fg:      template.CSS(c.TextPrimary),
		Link:    template.CSS(c.Link),
		Heading: template.CSS(c.Primary),
		CodeBg:  template.CSS(c.BgSecondary),
		Muted:   template.CSS(c.TextMuted),
	}

	var out bytes.Buffer
	if err := pageTemplate.Execute(&out, p); err != nil {
		return nil, fmt.Errorf("render %s: %w", note.ID, err)
	}
	return out.Bytes(), nil
}

// Markdown renders note as Markdown preceded by a YAML frontmatter block.
// folder is the name of the note's folder, or "" when unfiled.
func Markdown(note notes.Note, folder string) ([]byte, error) {
	fm := frontMatter{
		ID:     note.ID,
		Title:  note.Title,
		Folder: folder,
		Tags:   note.Tags,
		Theme:  note.Theme,
	}
	if !note.CreatedAt.IsZero() {
		fm.Created = note.CreatedAt.UTC().Format(time.RFC3339)
	}
	if !note.UpdatedAt.IsZero() {
		fm.Updated = note.UpdatedAt.UTC().Format(time.RFC3339)
	}

	header, err := yaml.Marshal(fm)
	if err != nil {
		return nil, fmt.Errorf("frontmatter %s: %w", note.ID, err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(header)
	buf.WriteString("---\n\n")
	buf.WriteString(note.Content)
	if !strings.HasSuffix(note.Content, "\n") {
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// Filename returns a file name for note derived from its title.
func Filename(note notes.Note, f Format) string {
	slug := Slug(note.Title)
	if slug == "" {
		slug = Slug(notes.DefaultTitle)
	}
	return slug + f.Ext()
}

// Slug lower-cases s and joins its letters and digits with dashes.
func Slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}

// WriteFile exports note into dir and returns the written path.
func WriteFile(dir string, note notes.Note, f Format, folder, theme string) (string, error) {
	var (
		data []byte
		err  error
	)
	switch f {
	case FormatHTML:
		data, err = HTML(note, theme)
	case FormatMarkdown:
		data, err = Markdown(note, folder)
	default:
		return "", fmt.Errorf("unknown export format %q", f)
	}
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	path := exportPath(dir, note, f)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

var htmlIDPattern = regexp.MustCompile(`<meta name="reflect-id" content="([^"]*)">`)

// exportPath picks the file for note in dir. A file under the same name
// that was written for another note, or by hand, is kept; the note's
// short id is appended instead.
func exportPath(dir string, note notes.Note, f Format) string {
	name := Filename(note, f)
	path := filepath.Join(dir, name)
	if id, exists := exportedID(path, f); !exists || id == note.ID {
		return path
	}
	return filepath.Join(dir, strings.TrimSuffix(name, f.Ext())+"-"+shortID(note.ID)+f.Ext())
}

// exportedID reports the note id recorded in an exported file, and
// whether the file exists at all.
func exportedID(path string, f Format) (id string, exists bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	if f == FormatHTML {
		if m := htmlIDPattern.FindSubmatch(data); m != nil {
			return string(m[1]), true
		}
		return "", true
	}
	var fm frontMatter
	if _, err := frontmatter.Parse(bytes.NewReader(data), &fm); err != nil {
		return "", true
	}
	return fm.ID, true
}

func shortID(id string) string {
	id = strings.ReplaceAll(id, "-", "")
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
