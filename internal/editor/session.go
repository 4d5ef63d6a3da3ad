// Package editor holds the draft of the note being edited: undo history,
// revision snapshots, in-note search and the Markdown editing helpers.
// It never writes to storage directly; drafts reach the notes store
// through Commit.
package editor

import (
	"slices"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/marcus/reflect/internal/notes"
)

// Default debounce delays.
const (
	DefaultSaveDelay     = 500 * time.Millisecond
	DefaultRevisionDelay = 1000 * time.Millisecond
)

// State is the editing state of a Session.
type State int

const (
	StateUnloaded  State = iota // no note
	StateLoaded                 // draft equals the stored note, nothing committed yet
	StateDirty                  // draft differs from the stored note
	StateCommitted              // draft was committed and matches the stored note
)

func (s State) String() string {
	switch s {
	case StateLoaded:
		return "loaded"
	case StateDirty:
		return "modified"
	case StateCommitted:
		return "saved"
	default:
		return "unloaded"
	}
}

// Committer receives drafts. *notes.Store satisfies it.
type Committer interface {
	UpdateNote(note notes.Note) error
}

// Session is the editing session for the active note.
type Session struct {
	stored notes.Note // last loaded or committed version
	draft  notes.Note
	state  State

	history *History
	search  Search

	Save     Debouncer
	Revision Debouncer
}

// NewSession returns an unloaded session. Non-positive delays use the
// defaults.
func NewSession(saveDelay, revisionDelay time.Duration) *Session {
	if saveDelay <= 0 {
		saveDelay = DefaultSaveDelay
	}
	if revisionDelay <= 0 {
		revisionDelay = DefaultRevisionDelay
	}
	return &Session{
		history:  NewHistory(""),
		Save:     Debouncer{Delay: saveDelay},
		Revision: Debouncer{Delay: revisionDelay},
	}
}

// Load resets the session to note: the draft matches the stored note,
// history holds only its content, search and timers are cleared.
func (s *Session) Load(note notes.Note) {
	s.stored = note.Clone()
	s.draft = note.Clone()
	s.state = StateLoaded
	s.history.Reset(note.Content)
	s.search.Clear()
	s.Save.Cancel()
	s.Revision.Cancel()
}

// Unload drops the current note without committing.
func (s *Session) Unload() {
	s.stored = notes.Note{}
	s.draft = notes.Note{}
	s.state = StateUnloaded
	s.history.Reset("")
	s.search.Clear()
	s.Save.Cancel()
	s.Revision.Cancel()
}

// Switch commits any pending draft and then loads next (nil unloads).
// The new note is loaded even if the commit fails; the error is returned.
func (s *Session) Switch(next *notes.Note, c Committer) error {
	err := s.Commit(c)
	if next == nil {
		s.Unload()
	} else {
		s.Load(*next)
	}
	return err
}

// Commit hands a dirty draft to c. It is a no-op unless the session is
// dirty. On failure the session stays dirty so a later commit retries.
func (s *Session) Commit(c Committer) error {
	if s.state != StateDirty {
		return nil
	}
	s.Save.Cancel()
	draft := s.draft.Clone()
	if err := c.UpdateNote(draft); err != nil {
		return err
	}
	s.stored = draft
	s.state = StateCommitted
	return nil
}

// Refresh replaces the stored copy after the note changed outside the
// session (moved, reloaded from disk). Non-dirty drafts follow it.
func (s *Session) Refresh(note notes.Note) {
	if s.state == StateUnloaded || note.ID != s.stored.ID {
		return
	}
	if s.state == StateDirty {
		// Folder placement is never edited in the draft.
		s.stored = note.Clone()
		s.draft.FolderID = s.stored.Clone().FolderID
		s.updateState()
		return
	}
	content := s.draft.Content
	s.stored = note.Clone()
	s.draft = note.Clone()
	if content != note.Content {
		s.history.Record(note.Content)
		s.search.Refresh(note.Content)
	}
}

func (s *Session) State() State { return s.state }
func (s *Session) Loaded() bool { return s.state != StateUnloaded }
func (s *Session) Dirty() bool { return s.state == StateDirty }
func (s *Session) NoteID() string { return s.draft.ID }
func (s *Session) Title() string { return s.draft.Title }
func (s *Session) Content() string { return s.draft.Content }
func (s *Session) Draft() notes.Note { return s.draft.Clone() }
func (s *Session) History() *History { return s.history }
func (s *Session) SearchState() *Search { return &s.search }

// SetTitle updates the draft title. Reports whether it changed.
func (s *Session) SetTitle(title string) bool {
	if !s.Loaded() || title == s.draft.Title {
		return false
	}
	s.draft.Title = title
	s.updateState()
	return true
}

// SetContent updates the draft content and records an undo snapshot.
// Reports whether it changed.
func (s *Session) SetContent(content string) bool {
	if !s.Loaded() || content == s.draft.Content {
		return false
	}
	s.draft.Content = content
	s.history.Record(content)
	if s.search.Active() {
		s.search.Refresh(content)
	}
	s.updateState()
	return true
}

// Undo restores the previous content snapshot.
func (s *Session) Undo() bool {
	content, ok := s.history.Undo()
	if ok {
		s.setContentFromHistory(content)
	}
	return ok
}

// Redo re-applies the next content snapshot.
func (s *Session) Redo() bool {
	content, ok := s.history.Redo()
	if ok {
		s.setContentFromHistory(content)
	}
	return ok
}

func (s *Session) setContentFromHistory(content string) {
	s.draft.Content = content
	if s.search.Active() {
		s.search.Refresh(content)
	}
	s.updateState()
}

// SnapshotRevision appends the draft content as a revision stamped now,
// unless it matches the newest revision. Reports whether one was added.
func (s *Session) SnapshotRevision(now time.Time) bool {
	if !s.Loaded() {
		return false
	}
	revs := s.draft.Revisions
	if n := len(revs); n > 0 && xxhash.Sum64String(revs[n-1].Content) == xxhash.Sum64String(s.draft.Content) {
		return false
	}
	s.draft.Revisions = notes.CapRevisions(append(slices.Clone(revs), notes.Revision{
		Timestamp: now,
		Content:   s.draft.Content,
	}))
	s.updateState()
	return true
}

// RestoreRevision loads revision i into the draft as a normal edit.
func (s *Session) RestoreRevision(i int) bool {
	if i < 0 || i >= len(s.draft.Revisions) {
		return false
	}
	return s.SetContent(s.draft.Revisions[i].Content)
}

// AddTag adds a normalized tag to the draft.
func (s *Session) AddTag(tag string) bool {
	tag = notes.NormalizeTag(tag)
	if !s.Loaded() || tag == "" || s.draft.HasTag(tag) {
		return false
	}
	s.draft.Tags = append(slices.Clone(s.draft.Tags), tag)
	s.updateState()
	return true
}

// RemoveTag removes a tag from the draft.
func (s *Session) RemoveTag(tag string) bool {
	tag = notes.NormalizeTag(tag)
	i := slices.Index(s.draft.Tags, tag)
	if i < 0 {
		return false
	}
	s.draft.Tags = slices.Delete(slices.Clone(s.draft.Tags), i, i+1)
	s.updateState()
	return true
}

// SetTags replaces the draft tags.
func (s *Session) SetTags(tags []string) bool {
	tags = notes.NormalizeTags(tags)
	if !s.Loaded() || slices.Equal(tags, s.draft.Tags) {
		return false
	}
	s.draft.Tags = tags
	s.updateState()
	return true
}

// SetTheme pins a display theme on the draft. Empty inherits.
func (s *Session) SetTheme(theme string) bool {
	if !s.Loaded() || theme == s.draft.Theme || (theme != "" && !notes.IsTheme(theme)) {
		return false
	}
	s.draft.Theme = theme
	s.updateState()
	return true
}

// SetSearch runs query against the draft content.
func (s *Session) SetSearch(query string) {
	s.search.Set(s.draft.Content, query)
}

func (s *Session) updateState() {
	switch {
	case differs(s.draft, s.stored):
		s.state = StateDirty
	case s.state == StateDirty:
		s.state = StateLoaded
	}
}

// differs compares the fields a draft can change.
func differs(a, b notes.Note) bool {
	if a.Title != b.Title || a.Content != b.Content || a.Theme != b.Theme {
		return true
	}
	if !slices.Equal(a.Tags, b.Tags) || len(a.Revisions) != len(b.Revisions) {
		return true
	}
	for i := range a.Revisions {
		if a.Revisions[i].Content != b.Revisions[i].Content ||
			!a.Revisions[i].Timestamp.Equal(b.Revisions[i].Timestamp) {
			return true
		}
	}
	return false
}
