package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/marcus/reflect/internal/kv"
	"github.com/marcus/reflect/internal/notes"
)

func sampleNote() notes.Note {
	created := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	return notes.Note{
		ID:        "n1",
		Title:     "Trip Plan: Lisbon!",
		Content:   "# Lisbon\n\n- [x] book flight\n- [ ] pack\n\n| day | plan |\n|---|---|\n| 1 | tram 28 |\n\n~~cancelled~~ <script>alert(1)</script>",
		CreatedAt: created,
		UpdatedAt: created.Add(time.Hour),
		Tags:      []string{"travel", "2024"},
		Theme:     "nord",
	}
}

func TestHTML(t *testing.T) {
	out, err := HTML(sampleNote(), "nord")
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	html := string(out)

	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Trip Plan: Lisbon!</title>",
		`<h1 id="lisbon">Lisbon</h1>`,
		"<table>",
		"<del>cancelled</del>",
		`type="checkbox"`,
		"#travel",
		"#2E3440", // nord background
		"<!-- raw HTML omitted -->",
		`<meta name="reflect-id" content="n1">`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML output missing %q", want)
		}
	}
	if strings.Contains(html, "<script>") {
		t.Error("raw HTML from the note should not be emitted")
	}
}

func TestMarkdown(t *testing.T) {
	out, err := Markdown(sampleNote(), "Travel")
	if err != nil {
		t.Fatalf("Markdown: %v", err)
	}
	md := string(out)

	if !strings.HasPrefix(md, "---\n") {
		t.Fatalf("missing frontmatter fence: %q", md)
	}
	for _, want := range []string{
		"Trip Plan: Lisbon!",
		"folder: Travel",
		"- travel",
		"theme: nord",
		"2024-03-01T09:30:00Z",
		"# Lisbon",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Markdown output missing %q:\n%s", want, md)
		}
	}
	if !strings.HasSuffix(md, "\n") {
		t.Error("output should end with a newline")
	}
}

func TestMarkdownRoundTrip(t *testing.T) {
	note := sampleNote()
	out, err := Markdown(note, "Travel")
	if err != nil {
		t.Fatal(err)
	}

	doc, err := Parse(strings.NewReader(string(out)), "ignored")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.Title != note.Title {
		t.Errorf("Title = %q, want %q", doc.Title, note.Title)
	}
	if doc.Folder != "Travel" {
		t.Errorf("Folder = %q", doc.Folder)
	}
	if strings.TrimRight(doc.Content, "\n") != note.Content {
		t.Errorf("Content = %q, want %q", doc.Content, note.Content)
	}
	if len(doc.Tags) != 2 || doc.Tags[0] != "travel" || doc.Tags[1] != "2024" {
		t.Errorf("Tags = %v", doc.Tags)
	}
	if doc.Theme != "nord" {
		t.Errorf("Theme = %q", doc.Theme)
	}
	if !doc.CreatedAt.Equal(note.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", doc.CreatedAt, note.CreatedAt)
	}
}

func TestParse_TitleFallbacks(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		fallback string
		want     string
	}{
		{"frontmatter title", "---\ntitle: From FM\n---\n# Heading\n", "file", "From FM"},
		{"first heading", "intro\n\n## Second Level\n", "file", "Second Level"},
		{"file name", "no headings here\n", "file", "file"},
		{"default", "plain\n", "", notes.DefaultTitle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(strings.NewReader(tt.input), tt.fallback)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if doc.Title != tt.want {
				t.Errorf("Title = %q, want %q", doc.Title, tt.want)
			}
		})
	}
}

func TestParse_InvalidThemeDropped(t *testing.T) {
	doc, err := Parse(strings.NewReader("---\ntheme: neon\ntags: [Work, work, ' Ideas ']\n---\nbody\n"), "x")
	if err != nil {
		t.Fatal(err)
	}
	if doc.Theme != "" {
		t.Errorf("Theme = %q, want empty", doc.Theme)
	}
	if len(doc.Tags) != 2 || doc.Tags[0] != "work" || doc.Tags[1] != "ideas" {
		t.Errorf("Tags = %v, want [work ideas]", doc.Tags)
	}
}

func TestSlug(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Hello World", "hello-world"},
		{"  Trip Plan: Lisbon! ", "trip-plan-lisbon"},
		{"Café Notes", "café-notes"},
		{"***", ""},
	}
	for _, tt := range tests {
		if got := Slug(tt.in); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := Filename(notes.Note{Title: "!!"}, FormatHTML); got != "untitled-note.html" {
		t.Errorf("Filename fallback = %q", got)
	}
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	note := sampleNote()

	for _, f := range []Format{FormatHTML, FormatMarkdown} {
		path, err := WriteFile(dir, note, f, "Travel", "dark")
		if err != nil {
			t.Fatalf("WriteFile(%s): %v", f, err)
		}
		if filepath.Base(path) != "trip-plan-lisbon"+f.Ext() {
			t.Errorf("path = %q", path)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("exported file missing: %v", err)
		}
	}

	if _, err := WriteFile(dir, note, Format("pdf"), "", "dark"); err == nil {
		t.Error("unknown format should fail")
	}
}

func TestWriteFile_SameTitle(t *testing.T) {
	for _, f := range []Format{FormatHTML, FormatMarkdown} {
		t.Run(string(f), func(t *testing.T) {
			dir := t.TempDir()
			first := notes.Note{ID: "5f0c2a9e-1111", Title: "Untitled Note", Content: "one"}
			second := notes.Note{ID: "a1b2c3d4-2222", Title: "Untitled Note", Content: "two"}

			tests := []struct {
				note notes.Note
				want string
			}{
				{first, "untitled-note" + f.Ext()},
				{second, "untitled-note-a1b2c3d4" + f.Ext()},
				{first, "untitled-note" + f.Ext()},
				{second, "untitled-note-a1b2c3d4" + f.Ext()},
			}
			for i, tt := range tests {
				path, err := WriteFile(dir, tt.note, f, "", "dark")
				if err != nil {
					t.Fatalf("export %d: %v", i, err)
				}
				if filepath.Base(path) != tt.want {
					t.Errorf("export %d wrote %q, want %q", i, filepath.Base(path), tt.want)
				}
			}

			data, err := os.ReadFile(filepath.Join(dir, "untitled-note"+f.Ext()))
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(string(data), "one") || strings.Contains(string(data), "two") {
				t.Errorf("first note's export was overwritten:\n%s", data)
			}
		})
	}
}

func TestWriteFile_KeepsForeignFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trip-plan-lisbon.md")
	if err := os.WriteFile(path, []byte("my own notes\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := WriteFile(dir, sampleNote(), FormatMarkdown, "", "dark")
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(got) != "trip-plan-lisbon-n1.md" {
		t.Errorf("path = %q", got)
	}
	if data, _ := os.ReadFile(path); string(data) != "my own notes\n" {
		t.Errorf("hand-written file changed: %q", data)
	}
}

func TestImport(t *testing.T) {
	store, err := notes.Open(kv.NewMemoryStore())
	if err != nil {
		t.Fatal(err)
	}
	before := len(store.Notes())

	docs := []Document{
		{Title: "A", Content: "alpha", Folder: "work"},
		{Title: "B", Content: "beta", Folder: "Recipes", Tags: []string{"food"}},
		{Title: "C", Content: "gamma", Folder: "recipes"},
		{Title: "D", Content: "delta", CreatedAt: time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)},
	}
	created, err := Import(store, docs)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(created) != len(docs) {
		t.Fatalf("created %d notes, want %d", len(created), len(docs))
	}
	if got := len(store.Notes()); got != before+len(docs) {
		t.Errorf("store has %d notes, want %d", got, before+len(docs))
	}

	var recipes *notes.Folder
	count := 0
	for _, f := range store.Folders() {
		if strings.EqualFold(f.Name, "recipes") {
			count++
			f := f
			recipes = &f
		}
	}
	if count != 1 {
		t.Fatalf("want exactly one recipes folder, got %d", count)
	}

	b := store.Note(created[1].ID)
	if b == nil || b.Content != "beta" || b.FolderID == nil || *b.FolderID != recipes.ID || !b.HasTag("food") {
		t.Errorf("imported note B = %+v", b)
	}
	a := store.Note(created[0].ID)
	if a == nil || a.FolderID == nil || *a.FolderID != "work" {
		t.Errorf("note A should land in the existing Work folder: %+v", a)
	}
	if d := store.Note(created[3].ID); d == nil || d.FolderID != nil {
		t.Errorf("note D should be unfiled: %+v", d)
	}
	if d := store.Note(created[3].ID); d == nil || !d.CreatedAt.Equal(docs[3].CreatedAt) {
		t.Errorf("note D should keep its creation time: %+v", d)
	}
}
