package editor

import (
	"errors"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/reflect/internal/notes"
)

type recordingCommitter struct {
	updates []notes.Note
	err     error
}

func (r *recordingCommitter) UpdateNote(n notes.Note) error {
	if r.err != nil {
		return r.err
	}
	r.updates = append(r.updates, n)
	return nil
}

func testNote(id, content string) notes.Note {
	return notes.Note{ID: id, Title: "T " + id, Content: content, Tags: []string{}}
}

func TestSession_UndoScenario(t *testing.T) {
	s := NewSession(0, 0)
	s.Load(testNote("n1", ""))

	s.SetContent("A")
	s.SetContent("AB")
	s.SetContent("ABC")

	if !s.Undo() {
		t.Fatal("Undo() = false")
	}
	if got := s.Content(); got != "AB" {
		t.Fatalf("after undo Content() = %q, want AB", got)
	}
	if !s.History().CanRedo() {
		t.Fatal("redo should be available after undo")
	}

	s.SetContent("ABX")
	if s.History().CanRedo() {
		t.Error("new edit should discard the redo entry")
	}
	if s.Redo() {
		t.Error("Redo() after new edit should be a no-op")
	}
	if got := s.Content(); got != "ABX" {
		t.Errorf("Content() = %q, want ABX", got)
	}

	// Walk all the way back: "", A, AB, ABX.
	for _, want := range []string{"AB", "A", ""} {
		s.Undo()
		if got := s.Content(); got != want {
			t.Errorf("undo -> %q, want %q", got, want)
		}
	}
	if s.Undo() {
		t.Error("Undo() at first entry should be a no-op")
	}
}

func TestSession_LoadResetsHistory(t *testing.T) {
	s := NewSession(0, 0)
	s.Load(testNote("n1", "x"))
	s.SetContent("xy")
	s.Load(testNote("n2", "other"))

	if s.History().Len() != 1 || s.History().Current() != "other" {
		t.Errorf("history = %d entries, current %q", s.History().Len(), s.History().Current())
	}
	if s.State() != StateLoaded {
		t.Errorf("State() = %v, want loaded", s.State())
	}
}

func TestSession_StateTransitions(t *testing.T) {
	s := NewSession(0, 0)
	if s.State() != StateUnloaded {
		t.Fatalf("new session State() = %v", s.State())
	}

	s.Load(testNote("n1", "body"))
	if s.State() != StateLoaded {
		t.Fatalf("after Load State() = %v", s.State())
	}

	s.SetContent("body!")
	if s.State() != StateDirty {
		t.Fatalf("after edit State() = %v", s.State())
	}

	// Reverting the edit makes the draft clean again.
	s.Undo()
	if s.State() == StateDirty {
		t.Error("draft equal to stored note should not be dirty")
	}

	s.SetTitle("new title")
	c := &recordingCommitter{}
	if err := s.Commit(c); err != nil {
		t.Fatal(err)
	}
	if s.State() != StateCommitted {
		t.Errorf("after Commit State() = %v", s.State())
	}
	if len(c.updates) != 1 || c.updates[0].Title != "new title" || c.updates[0].ID != "n1" {
		t.Errorf("updates = %+v", c.updates)
	}

	// Committing a clean draft does nothing.
	_ = s.Commit(c)
	if len(c.updates) != 1 {
		t.Errorf("clean commit sent %d updates", len(c.updates))
	}
}

func TestSession_CommitFailureStaysDirty(t *testing.T) {
	s := NewSession(0, 0)
	s.Load(testNote("n1", "a"))
	s.SetContent("b")

	boom := errors.New("disk full")
	if err := s.Commit(&recordingCommitter{err: boom}); !errors.Is(err, boom) {
		t.Fatalf("Commit() = %v, want %v", err, boom)
	}
	if !s.Dirty() {
		t.Error("failed commit should leave the session dirty")
	}
}

func TestSession_SwitchFlushesDraft(t *testing.T) {
	s := NewSession(0, 0)
	s.Load(testNote("n1", "a"))
	s.SetContent("a edited")

	c := &recordingCommitter{}
	next := testNote("n2", "b")
	if err := s.Switch(&next, c); err != nil {
		t.Fatal(err)
	}
	if len(c.updates) != 1 || c.updates[0].Content != "a edited" {
		t.Errorf("pending draft not flushed: %+v", c.updates)
	}
	if s.NoteID() != "n2" || s.Content() != "b" || s.State() != StateLoaded {
		t.Errorf("after switch: id=%q content=%q state=%v", s.NoteID(), s.Content(), s.State())
	}

	_ = s.Switch(nil, c)
	if s.Loaded() {
		t.Error("Switch(nil) should unload")
	}
}

func TestSession_Revisions(t *testing.T) {
	s := NewSession(0, 0)
	s.Load(testNote("n1", "v0"))
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	if !s.SnapshotRevision(base) {
		t.Fatal("first snapshot should be recorded")
	}
	if s.SnapshotRevision(base.Add(time.Second)) {
		t.Error("identical content should not add a revision")
	}

	for i := 1; i <= 12; i++ {
		s.SetContent(fmt.Sprintf("v%d", i))
		s.SnapshotRevision(base.Add(time.Duration(i) * time.Minute))
	}
	revs := s.Draft().Revisions
	if len(revs) != notes.MaxRevisions {
		t.Fatalf("len(revisions) = %d, want %d", len(revs), notes.MaxRevisions)
	}
	if revs[0].Content != "v3" || revs[len(revs)-1].Content != "v12" {
		t.Errorf("revisions span %q..%q, want v3..v12", revs[0].Content, revs[len(revs)-1].Content)
	}

	if !s.RestoreRevision(0) {
		t.Fatal("RestoreRevision(0) = false")
	}
	if s.Content() != "v3" {
		t.Errorf("Content() = %q, want v3", s.Content())
	}
	s.Undo()
	if s.Content() != "v12" {
		t.Errorf("restore should be undoable, got %q", s.Content())
	}
	if s.RestoreRevision(99) {
		t.Error("RestoreRevision(out of range) should fail")
	}
}

func TestSession_Tags(t *testing.T) {
	s := NewSession(0, 0)
	s.Load(testNote("n1", ""))

	if !s.AddTag(" Work ") {
		t.Fatal("AddTag() = false")
	}
	if s.AddTag("work") {
		t.Error("duplicate tag added")
	}
	if s.AddTag("  ") {
		t.Error("blank tag added")
	}
	if got := s.Draft().Tags; len(got) != 1 || got[0] != "work" {
		t.Errorf("Tags = %v", got)
	}
	if !s.Dirty() {
		t.Error("tag change should dirty the draft")
	}
	if !s.RemoveTag("WORK") || len(s.Draft().Tags) != 0 {
		t.Error("RemoveTag() failed")
	}
}

func TestSession_Theme(t *testing.T) {
	s := NewSession(0, 0)
	s.Load(testNote("n1", ""))

	if s.SetTheme("neon") {
		t.Error("unknown theme accepted")
	}
	if !s.SetTheme("nord") || s.Draft().Theme != "nord" {
		t.Error("SetTheme(nord) failed")
	}
	if !s.SetTheme("") {
		t.Error("clearing theme failed")
	}
}

func TestSession_SearchFollowsEdits(t *testing.T) {
	s := NewSession(0, 0)
	s.Load(testNote("n1", "foo bar foo"))
	s.SetSearch("foo")

	if got := len(s.SearchState().Matches); got != 2 {
		t.Fatalf("matches = %d, want 2", got)
	}
	s.SetContent("foo bar foo foo")
	if got := len(s.SearchState().Matches); got != 3 {
		t.Errorf("matches after edit = %d, want 3", got)
	}
}

func TestSession_Refresh(t *testing.T) {
	s := NewSession(0, 0)
	s.Load(testNote("n1", "a"))

	moved := testNote("n1", "a")
	moved.FolderID = notes.StringPtr("work")
	s.Refresh(moved)
	if f := s.Draft().FolderID; f == nil || *f != "work" {
		t.Errorf("clean draft did not follow refresh: %v", f)
	}

	s.SetContent("local edit")
	s.Refresh(testNote("n1", "remote edit"))
	if s.Content() != "local edit" || !s.Dirty() {
		t.Error("dirty draft should survive refresh")
	}
}

func TestDebouncer(t *testing.T) {
	d := Debouncer{Delay: time.Millisecond}
	if cmd := d.Schedule(func(gen int) tea.Msg { return gen }); cmd == nil {
		t.Fatal("Schedule() returned nil cmd")
	}
	first := d.gen
	d.Schedule(func(gen int) tea.Msg { return gen })
	second := d.gen

	if d.Fire(first) {
		t.Error("superseded tick fired")
	}
	if !d.Fire(second) {
		t.Error("current tick did not fire")
	}
	if d.Fire(second) {
		t.Error("tick fired twice")
	}

	d.Schedule(func(gen int) tea.Msg { return gen })
	gen := d.gen
	d.Cancel()
	if d.Fire(gen) || d.Pending() {
		t.Error("cancelled tick fired")
	}
}
