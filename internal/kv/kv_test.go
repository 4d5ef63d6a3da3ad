package kv

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testBackends(t *testing.T) map[string]Store {
	t.Helper()

	stores := map[string]Store{
		"memory": NewMemoryStore(),
	}

	fs, err := NewFileStore(filepath.Join(t.TempDir(), "data"))
	if err != nil {
		t.Fatalf("NewFileStore() failed: %v", err)
	}
	stores["file"] = fs

	for _, driver := range []string{DriverPureGo, DriverCGo} {
		s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "kv.db"), driver)
		if err != nil {
			if strings.Contains(err.Error(), "cgo") || strings.Contains(err.Error(), "CGO") {
				t.Logf("skipping %s driver: %v", driver, err)
				continue
			}
			t.Fatalf("NewSQLiteStore(%s) failed: %v", driver, err)
		}
		stores["sqlite-"+driver] = s
	}

	t.Cleanup(func() {
		for _, s := range stores {
			s.Close()
		}
	})
	return stores
}

func TestStoreContract(t *testing.T) {
	for name, store := range testBackends(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := store.Load(KeyNotes); !errors.Is(err, ErrNotFound) {
				t.Fatalf("Load(absent) error = %v, want ErrNotFound", err)
			}

			if err := store.Save(KeyNotes, []byte(`[{"id":"a"}]`)); err != nil {
				t.Fatalf("Save() failed: %v", err)
			}
			got, err := store.Load(KeyNotes)
			if err != nil {
				t.Fatalf("Load() failed: %v", err)
			}
			if string(got) != `[{"id":"a"}]` {
				t.Errorf("Load() = %q", got)
			}

			if err := store.Save(KeyNotes, []byte(`[]`)); err != nil {
				t.Fatalf("overwrite failed: %v", err)
			}
			got, _ = store.Load(KeyNotes)
			if string(got) != `[]` {
				t.Errorf("after overwrite Load() = %q, want []", got)
			}

			// Keys are independent.
			if _, err := store.Load(KeyFolders); !errors.Is(err, ErrNotFound) {
				t.Errorf("Load(folders) error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	m := NewMemoryStore()
	data := []byte("abc")
	_ = m.Save("k", data)
	data[0] = 'z'

	got, _ := m.Load("k")
	if string(got) != "abc" {
		t.Errorf("stored value mutated through caller slice: %q", got)
	}
	got[1] = 'z'
	again, _ := m.Load("k")
	if string(again) != "abc" {
		t.Errorf("stored value mutated through returned slice: %q", again)
	}
	if m.Writes() != 1 {
		t.Errorf("Writes() = %d, want 1", m.Writes())
	}
}

func TestFileStore_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		if err := s.Save(KeyFolders, []byte("[]")); err != nil {
			t.Fatalf("Save() failed: %v", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "folders.json" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("dir entries = %v, want [folders.json]", names)
	}
}

func TestFileStore_WatchReportsExternalWrites(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events, err := s.Watch(ctx)
	if err != nil {
		t.Fatalf("Watch() failed: %v", err)
	}

	// Our own write must not be reported.
	if err := s.Save(KeyNotes, []byte("[]")); err != nil {
		t.Fatal(err)
	}
	select {
	case key := <-events:
		t.Fatalf("own write reported as external change: %q", key)
	case <-time.After(3 * watchDebounce):
	}

	external := []byte(`[{"id":"x"}]`)
	if err := os.WriteFile(filepath.Join(dir, "notes.json"), external, 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case key := <-events:
		if key != KeyNotes {
			t.Errorf("event key = %q, want %q", key, KeyNotes)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for external change")
	}

	got, _ := s.Load(KeyNotes)
	if !bytes.Equal(got, external) {
		t.Errorf("Load() after external write = %q", got)
	}
}

func TestKeyFromPath(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		wantOK bool
	}{
		{"/data/notes.json", "notes", true},
		{"/data/activeNoteId.json", "activeNoteId", true},
		{"/data/.notes-123.tmp", "", false},
		{"/data/reflect.db", "", false},
	}
	for _, tc := range tests {
		key, ok := keyFromPath(tc.name)
		if key != tc.key || ok != tc.wantOK {
			t.Errorf("keyFromPath(%q) = %q, %v; want %q, %v", tc.name, key, ok, tc.key, tc.wantOK)
		}
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(Options{Backend: BackendFile, Dir: filepath.Join(dir, "files")})
	if err != nil {
		t.Fatalf("Open(file) failed: %v", err)
	}
	if _, ok := s.(*FileStore); !ok {
		t.Errorf("Open(file) returned %T", s)
	}

	s, err = Open(Options{Backend: BackendMemory})
	if err != nil {
		t.Fatalf("Open(memory) failed: %v", err)
	}
	if _, ok := s.(*MemoryStore); !ok {
		t.Errorf("Open(memory) returned %T", s)
	}

	s, err = Open(Options{Backend: BackendSQLite, Dir: filepath.Join(dir, "db"), Driver: DriverPureGo})
	if err != nil {
		t.Fatalf("Open(sqlite) failed: %v", err)
	}
	defer s.Close()
	if _, err := os.Stat(filepath.Join(dir, "db", DatabaseFile)); err != nil {
		t.Errorf("database file not created: %v", err)
	}

	if _, err := Open(Options{Backend: "redis"}); err == nil {
		t.Error("Open(unknown) should fail")
	}
}
