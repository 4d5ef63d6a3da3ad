package kv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fsnotify/fsnotify"
)

const (
	fileExt       = ".json"
	watchDebounce = 150 * time.Millisecond
)

// FileStore stores each key as <dir>/<key>.json.
type FileStore struct {
	dir string

	mu   sync.Mutex
	seen map[string]uint64 // xxhash of the last content this store read or wrote per key
}

// NewFileStore creates the directory if needed and returns a store rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{dir: dir, seen: make(map[string]uint64)}, nil
}

// Dir returns the directory backing the store.
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+fileExt)
}

// Load reads the value stored under key.
func (s *FileStore) Load(key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}

	s.mu.Lock()
	s.seen[key] = xxhash.Sum64(data)
	s.mu.Unlock()
	return data, nil
}

// Save writes data atomically: temp file, fsync, rename.
// Saves are serialized so two writes to a key never interleave.
func (s *FileStore) Save(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", key, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", key, err)
	}
	if err := os.Rename(tmpName, s.path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", key, err)
	}

	s.seen[key] = xxhash.Sum64(data)
	return nil
}

// Close is a no-op; files are closed after every write.
func (s *FileStore) Close() error { return nil }

// Watch reports keys whose files were changed by someone other than this
// store. Bursts of filesystem events are coalesced. The channel is closed
// when ctx is cancelled or the watcher fails.
func (s *FileStore) Watch(ctx context.Context) (<-chan string, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(s.dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", s.dir, err)
	}

	events := make(chan string, 8)

	go func() {
		defer watcher.Close()
		defer close(events)

		pending := make(map[string]struct{})
		var timer *time.Timer
		var fire <-chan time.Time

		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				key, ok := keyFromPath(event.Name)
				if !ok || event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				pending[key] = struct{}{}

				if timer != nil {
					timer.Stop()
				}
				timer = time.NewTimer(watchDebounce)
				fire = timer.C

			case <-fire:
				fire = nil
				for key := range pending {
					delete(pending, key)
					if !s.changedExternally(key) {
						continue
					}
					select {
					case events <- key:
					case <-ctx.Done():
						return
					}
				}

			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// Transient watcher errors are ignored; keep watching.
			}
		}
	}()

	return events, nil
}

// changedExternally reports whether the file for key differs from what
// this store last read or wrote, and remembers the new content hash.
func (s *FileStore) changedExternally(key string) bool {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return false
	}
	sum := xxhash.Sum64(data)

	s.mu.Lock()
	defer s.mu.Unlock()
	if last, ok := s.seen[key]; ok && last == sum {
		return false
	}
	s.seen[key] = sum
	return true
}

// keyFromPath maps a watched file name back to its key.
// Temp files (dot-prefixed) and foreign files are skipped.
func keyFromPath(name string) (string, bool) {
	base := filepath.Base(name)
	if strings.HasPrefix(base, ".") || !strings.HasSuffix(base, fileExt) {
		return "", false
	}
	return strings.TrimSuffix(base, fileExt), true
}
