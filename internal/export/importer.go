package export

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/marcus/reflect/internal/notes"
)

// Document is a note read from a Markdown file.
type Document struct {
	Title     string
	Content   string
	Folder    string
	Tags      []string
	Theme     string
	CreatedAt time.Time
}

// Parse reads Markdown with optional YAML frontmatter. The title falls
// back to the first heading, then to fallbackTitle.
func Parse(r io.Reader, fallbackTitle string) (Document, error) {
	var fm frontMatter
	body, err := frontmatter.Parse(r, &fm)
	if err != nil {
		return Document{}, fmt.Errorf("parse frontmatter: %w", err)
	}

	content := strings.TrimLeft(string(body), "\n")
	doc := Document{
		Title:   strings.TrimSpace(fm.Title),
		Content: content,
		Folder:  strings.TrimSpace(fm.Folder),
		Tags:    notes.NormalizeTags(fm.Tags),
		Theme:   fm.Theme,
	}
	if !notes.IsTheme(doc.Theme) {
		doc.Theme = ""
	}
	if t, err := time.Parse(time.RFC3339, fm.Created); err == nil {
		doc.CreatedAt = t
	}
	if doc.Title == "" {
		doc.Title = firstHeading(content)
	}
	if doc.Title == "" {
		doc.Title = fallbackTitle
	}
	if doc.Title == "" {
		doc.Title = notes.DefaultTitle
	}
	return doc, nil
}

// ParseFile parses the Markdown file at path, using its base name as the
// fallback title.
func ParseFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, err
	}
	defer f.Close()

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	doc, err := Parse(f, stem)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func firstHeading(content string) string {
	sc := bufio.NewScanner(strings.NewReader(content))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(line, "#") {
			return strings.TrimSpace(strings.TrimLeft(line, "#"))
		}
	}
	return ""
}

// NoteWriter is the subset of notes.Store that Import needs.
type NoteWriter interface {
	Folders() []notes.Folder
	CreateFolder(name string) (*notes.Folder, error)
	ImportNote(note notes.Note) (notes.Note, error)
}

// Import creates one note per document, keeping its creation time.
// Folders are matched by name (case-insensitive) and created when missing.
func Import(w NoteWriter, docs []Document) ([]notes.Note, error) {
	folderIDs := make(map[string]string)
	for _, f := range w.Folders() {
		folderIDs[strings.ToLower(f.Name)] = f.ID
	}

	var (
		created []notes.Note
		errs    []error
	)
	for _, doc := range docs {
		var folderID *string
		if doc.Folder != "" {
			key := strings.ToLower(doc.Folder)
			id, ok := folderIDs[key]
			if !ok {
				f, err := w.CreateFolder(doc.Folder)
				if err != nil {
					errs = append(errs, err)
				}
				if f != nil {
					id = f.ID
					folderIDs[key] = id
				}
			}
			if id != "" {
				folderID = notes.StringPtr(id)
			}
		}

		note, err := w.ImportNote(notes.Note{
			Title:     doc.Title,
			Content:   doc.Content,
			FolderID:  folderID,
			Tags:      doc.Tags,
			Theme:     doc.Theme,
			CreatedAt: doc.CreatedAt,
		})
		if err != nil {
			errs = append(errs, err)
			continue
		}
		created = append(created, note)
	}
	return created, errors.Join(errs...)
}
