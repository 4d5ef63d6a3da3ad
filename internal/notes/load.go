package notes

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/marcus/reflect/internal/kv"
)

// load reads all three keys. Each key falls back independently: an
// absent, unreadable or corrupt value is replaced by its default.
func (s *Store) load() error {
	now := s.now()
	var readErrs []error

	var notes []Note
	if ok, err := s.decode(kv.KeyNotes, &notes); !ok || notes == nil {
		if err != nil {
			readErrs = append(readErrs, err)
		}
		notes = DefaultNotes(now)
	}

	var folders []Folder
	if ok, err := s.decode(kv.KeyFolders, &folders); !ok || folders == nil {
		if err != nil {
			readErrs = append(readErrs, err)
		}
		folders = DefaultFolders(now)
	}

	s.folders = s.migrateFolders(folders)
	s.notes = s.migrateNotes(notes)

	var active *string
	ok, err := s.decode(kv.KeyActiveNoteID, &active)
	if err != nil {
		readErrs = append(readErrs, err)
	}
	switch {
	case !ok:
		// Never stored: select the first note.
		active = nil
		if len(s.notes) > 0 {
			active = StringPtr(s.notes[0].ID)
		}
	case active != nil && s.noteIndex(*active) < 0:
		s.logger.Debug("notes: stored active note no longer exists", "id", *active)
		active = nil
	}
	s.activeNoteID = active

	s.logger.Debug("notes: loaded", "notes", len(s.notes), "folders", len(s.folders))

	if len(readErrs) == 3 {
		return fmt.Errorf("load notes: %w", errors.Join(readErrs...))
	}
	return nil
}

// decode loads key into v. ok is false when the value is absent or could
// not be read or parsed; err is set only for read failures other than
// kv.ErrNotFound.
func (s *Store) decode(key string, v any) (ok bool, err error) {
	data, err := s.kv.Load(key)
	if errors.Is(err, kv.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		s.logger.Warn("notes: read failed, using defaults", "key", key, "error", err)
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.logger.Warn("notes: corrupt data, using defaults", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

// migrateFolders drops duplicate ids (first wins) and assigns ids to
// records stored without one.
func (s *Store) migrateFolders(in []Folder) []Folder {
	out := make([]Folder, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, f := range in {
		if f.ID == "" {
			f.ID = s.newID()
		}
		if seen[f.ID] {
			continue
		}
		seen[f.ID] = true
		out = append(out, f)
	}
	return out
}

// migrateNotes brings older or hand-edited records up to the current
// shape. Must run after folders are loaded.
func (s *Store) migrateNotes(in []Note) []Note {
	out := make([]Note, 0, len(in))
	seen := make(map[string]bool, len(in))
	unfiled := 0
	for _, n := range in {
		if n.ID == "" {
			n.ID = s.newID()
		}
		if seen[n.ID] {
			s.logger.Debug("notes: dropping duplicate note", "id", n.ID)
			continue
		}
		seen[n.ID] = true

		n.Tags = NormalizeTags(n.Tags)
		if n.Revisions == nil {
			n.Revisions = []Revision{}
		}
		n.Revisions = CapRevisions(n.Revisions)
		if !IsTheme(n.Theme) {
			n.Theme = ""
		}
		if n.FolderID != nil && s.folderIndex(*n.FolderID) < 0 {
			unfiled++
		}
		n.FolderID = s.liveFolderID(n.FolderID)
		if n.UpdatedAt.Before(n.CreatedAt) {
			n.UpdatedAt = n.CreatedAt
		}
		out = append(out, n)
	}
	if unfiled > 0 {
		s.logger.Warn("notes: unfiled notes with missing folders", "count", unfiled)
	}
	return out
}
