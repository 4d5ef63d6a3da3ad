// Package notes holds Reflect's note and folder collections and keeps
// them in sync with a kv.Store.
package notes

import (
	"strings"
	"time"
)

const (
	// MaxRevisions is how many content snapshots a note keeps.
	MaxRevisions = 10

	DefaultTitle   = "Untitled Note"
	DefaultContent = "# Untitled Note\n\nStart writing your note here..."
)

// Display themes a note can pin. Empty means inherit the UI theme.
var Themes = []string{"light", "dark", "sepia", "nord", "dracula"}

// Note is a single Markdown note.
type Note struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	FolderID  *string    `json:"folderId"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	Tags      []string   `json:"tags"`
	Theme     string     `json:"theme,omitempty"`
	Revisions []Revision `json:"revisions"`
}

// Revision is a saved snapshot of a note's content.
type Revision struct {
	Timestamp time.Time `json:"timestamp"`
	Content   string    `json:"content"`
}

// Folder groups notes. Notes reference folders, never the reverse.
type Folder struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Clone returns a copy that shares no slices or pointers with n.
func (n Note) Clone() Note {
	c := n
	if n.FolderID != nil {
		id := *n.FolderID
		c.FolderID = &id
	}
	c.Tags = append([]string{}, n.Tags...)
	c.Revisions = append([]Revision{}, n.Revisions...)
	return c
}

// InFolder reports whether the note belongs to folderID (nil = unfiled).
func (n Note) InFolder(folderID *string) bool {
	if n.FolderID == nil || folderID == nil {
		return n.FolderID == nil && folderID == nil
	}
	return *n.FolderID == *folderID
}

// Matches reports whether query is a case-insensitive substring of the
// note's title or content. An empty query matches everything.
func (n Note) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(n.Title), q) ||
		strings.Contains(strings.ToLower(n.Content), q)
}

// HasTag reports whether tag is set on the note.
func (n Note) HasTag(tag string) bool {
	tag = NormalizeTag(tag)
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// NormalizeTag trims and lower-cases a tag.
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// NormalizeTags normalizes each tag, dropping blanks and duplicates
// while keeping first-seen order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = NormalizeTag(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// CapRevisions keeps the newest MaxRevisions entries.
func CapRevisions(revs []Revision) []Revision {
	if len(revs) <= MaxRevisions {
		return revs
	}
	return append([]Revision{}, revs[len(revs)-MaxRevisions:]...)
}

// IsTheme reports whether name is a known theme label.
func IsTheme(name string) bool {
	for _, t := range Themes {
		if t == name {
			return true
		}
	}
	return false
}

// StringPtr returns a pointer to a copy of s.
func StringPtr(s string) *string { return &s }
