package notes

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/marcus/reflect/internal/kv"
)

// Store is the in-memory source of truth for notes and folders.
// Every mutation is written through to the backing kv.Store before the
// method returns. A returned error only reports a persistence failure;
// the in-memory state has already been updated.
//
// Store is not safe for concurrent use. Reflect only touches it from the
// Bubble Tea update loop.
type Store struct {
	kv     kv.Store
	logger *slog.Logger
	now    func() time.Time
	newID  func() string

	notes        []Note
	folders      []Folder
	activeNoteID *string
	searchQuery  string
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides uuid generation for new notes and folders.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// Open creates a store backed by backend and loads its contents.
// Missing or corrupt data falls back to the default dataset per key.
// An error is returned only when no key could be read at all; the
// returned store is usable (with defaults) even then.
func Open(backend kv.Store, opts ...Option) (*Store, error) {
	s := &Store{
		kv:     backend,
		logger: slog.Default(),
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s, s.load()
}

// Reload re-reads every key from the backing store. Used after the
// data directory was changed by another process.
func (s *Store) Reload() error {
	return s.load()
}

// Notes returns a copy of all notes, newest first.
func (s *Store) Notes() []Note {
	out := make([]Note, len(s.notes))
	for i, n := range s.notes {
		out[i] = n.Clone()
	}
	return out
}

// Folders returns a copy of all folders in creation order.
func (s *Store) Folders() []Folder {
	return append([]Folder{}, s.folders...)
}

// Note returns the note with id, or nil.
func (s *Store) Note(id string) *Note {
	if i := s.noteIndex(id); i >= 0 {
		n := s.notes[i].Clone()
		return &n
	}
	return nil
}

// Folder returns the folder with id, or nil.
func (s *Store) Folder(id string) *Folder {
	if i := s.folderIndex(id); i >= 0 {
		f := s.folders[i]
		return &f
	}
	return nil
}

// NotesInFolder returns the notes filed under folderID; nil selects
// unfiled notes.
func (s *Store) NotesInFolder(folderID *string) []Note {
	var out []Note
	for _, n := range s.notes {
		if n.InFolder(folderID) {
			out = append(out, n.Clone())
		}
	}
	return out
}

// ActiveNoteID returns the active note id, or nil.
func (s *Store) ActiveNoteID() *string {
	if s.activeNoteID == nil {
		return nil
	}
	return StringPtr(*s.activeNoteID)
}

// ActiveNote returns the active note, or nil when none is selected or
// the selected id no longer exists.
func (s *Store) ActiveNote() *Note {
	if s.activeNoteID == nil {
		return nil
	}
	return s.Note(*s.activeNoteID)
}

// SearchQuery returns the current search query.
func (s *Store) SearchQuery() string { return s.searchQuery }

// SetSearchQuery sets the query used by FilteredNotes. Not persisted.
func (s *Store) SetSearchQuery(q string) { s.searchQuery = q }

// FilteredNotes returns notes whose title or content contains the
// search query, ignoring case. An empty query returns all notes.
func (s *Store) FilteredNotes() []Note {
	var out []Note
	for _, n := range s.notes {
		if n.Matches(s.searchQuery) {
			out = append(out, n.Clone())
		}
	}
	return out
}

// CreateNote inserts a new default note at the head of the collection
// and makes it active. A folderID that names no folder files the note
// as unfiled.
func (s *Store) CreateNote(folderID *string) (Note, error) {
	now := s.now()
	note := Note{
		ID:        s.newID(),
		Title:     DefaultTitle,
		Content:   DefaultContent,
		FolderID:  s.liveFolderID(folderID),
		CreatedAt: now,
		UpdatedAt: now,
		Tags:      []string{},
		Revisions: []Revision{},
	}

	s.notes = append([]Note{note}, s.notes...)
	s.activeNoteID = StringPtr(note.ID)
	s.logger.Debug("notes: created note", "id", note.ID)

	return note.Clone(), errors.Join(s.saveNotes(), s.saveActive())
}

// ImportNote inserts note under a fresh id at the head of the
// collection. A non-zero CreatedAt is kept; updatedAt is stamped now.
// The active note is left alone.
func (s *Store) ImportNote(note Note) (Note, error) {
	now := s.now()
	next := note.Clone()
	next.ID = s.newID()
	if next.CreatedAt.IsZero() || next.CreatedAt.After(now) {
		next.CreatedAt = now
	}
	next.UpdatedAt = now
	next.FolderID = s.liveFolderID(next.FolderID)
	next.Tags = NormalizeTags(next.Tags)
	next.Revisions = CapRevisions(next.Revisions)
	if !IsTheme(next.Theme) {
		next.Theme = ""
	}

	s.notes = append([]Note{next}, s.notes...)
	s.logger.Debug("notes: imported note", "id", next.ID)
	return next.Clone(), s.saveNotes()
}

// CreateFolder appends a folder named name. A blank name is ignored and
// nil is returned.
func (s *Store) CreateFolder(name string) (*Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	folder := Folder{ID: s.newID(), Name: name, CreatedAt: s.now()}
	s.folders = append(s.folders, folder)
	s.logger.Debug("notes: created folder", "id", folder.ID, "name", name)

	return &folder, s.saveFolders()
}

// RenameFolder renames a folder. Unknown ids and blank names are ignored.
func (s *Store) RenameFolder(id, name string) error {
	name = strings.TrimSpace(name)
	i := s.folderIndex(id)
	if i < 0 || name == "" || s.folders[i].Name == name {
		return nil
	}
	s.folders[i].Name = name
	return s.saveFolders()
}

// UpdateNote replaces the stored note that has note.ID. The id and
// creation time of the stored record are kept and updatedAt is stamped.
// Unknown ids are ignored.
func (s *Store) UpdateNote(note Note) error {
	i := s.noteIndex(note.ID)
	if i < 0 {
		s.logger.Debug("notes: update of unknown note ignored", "id", note.ID)
		return nil
	}

	prev := s.notes[i]
	next := note.Clone()
	next.ID = prev.ID
	next.CreatedAt = prev.CreatedAt
	next.UpdatedAt = s.stamp(prev.UpdatedAt)
	next.FolderID = s.liveFolderID(next.FolderID)
	next.Tags = NormalizeTags(next.Tags)
	next.Revisions = CapRevisions(next.Revisions)
	if !IsTheme(next.Theme) {
		next.Theme = ""
	}

	s.notes[i] = next
	return s.saveNotes()
}

// DeleteNote removes a note. If it was active, the first remaining note
// becomes active, or none when the collection is empty.
func (s *Store) DeleteNote(id string) error {
	i := s.noteIndex(id)
	if i < 0 {
		return nil
	}

	s.notes = append(s.notes[:i:i], s.notes[i+1:]...)
	s.logger.Debug("notes: deleted note", "id", id)

	if s.activeNoteID == nil || *s.activeNoteID != id {
		return s.saveNotes()
	}
	s.activeNoteID = nil
	if len(s.notes) > 0 {
		s.activeNoteID = StringPtr(s.notes[0].ID)
	}
	return errors.Join(s.saveNotes(), s.saveActive())
}

// DeleteFolder removes a folder after moving its notes to unfiled.
func (s *Store) DeleteFolder(id string) error {
	i := s.folderIndex(id)
	if i < 0 {
		return nil
	}

	unfiled := 0
	for j := range s.notes {
		if s.notes[j].FolderID != nil && *s.notes[j].FolderID == id {
			s.notes[j].FolderID = nil
			s.notes[j].UpdatedAt = s.stamp(s.notes[j].UpdatedAt)
			unfiled++
		}
	}
	s.folders = append(s.folders[:i:i], s.folders[i+1:]...)
	s.logger.Debug("notes: deleted folder", "id", id, "unfiled", unfiled)

	var notesErr error
	if unfiled > 0 {
		notesErr = s.saveNotes()
	}
	return errors.Join(notesErr, s.saveFolders())
}

// MoveNote files a note under folderID (nil = unfiled). Unknown notes
// are ignored; an unknown folder is treated as nil.
func (s *Store) MoveNote(noteID string, folderID *string) error {
	i := s.noteIndex(noteID)
	if i < 0 {
		return nil
	}
	s.notes[i].FolderID = s.liveFolderID(folderID)
	s.notes[i].UpdatedAt = s.stamp(s.notes[i].UpdatedAt)
	return s.saveNotes()
}

// SetActiveNoteID sets the active pointer without checking that the
// note exists. ActiveNote tolerates stale ids.
func (s *Store) SetActiveNoteID(id *string) error {
	if id == nil {
		s.activeNoteID = nil
	} else {
		s.activeNoteID = StringPtr(*id)
	}
	return s.saveActive()
}

// stamp returns now, but never earlier than prev.
func (s *Store) stamp(prev time.Time) time.Time {
	now := s.now()
	if now.Before(prev) {
		return prev
	}
	return now
}

func (s *Store) liveFolderID(id *string) *string {
	if id == nil || s.folderIndex(*id) < 0 {
		return nil
	}
	return StringPtr(*id)
}

func (s *Store) noteIndex(id string) int {
	for i := range s.notes {
		if s.notes[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) folderIndex(id string) int {
	for i := range s.folders {
		if s.folders[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) saveNotes() error {
	return s.save(kv.KeyNotes, s.notes)
}

func (s *Store) saveFolders() error {
	return s.save(kv.KeyFolders, s.folders)
}

func (s *Store) saveActive() error {
	return s.save(kv.KeyActiveNoteID, s.activeNoteID)
}

func (s *Store) save(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.kv.Save(key, data); err != nil {
		s.logger.Error("notes: save failed", "key", key, "error", err)
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
