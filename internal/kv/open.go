package kv

import (
	"fmt"
	"os"
	"path/filepath"
)

// DatabaseFile is the SQLite file name inside the data directory.
const DatabaseFile = "reflect.db"

// Open returns the store selected by opts.Backend.
func Open(opts Options) (Store, error) {
	switch opts.Backend {
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendSQLite:
		if err := ensureDir(opts.Dir); err != nil {
			return nil, err
		}
		return NewSQLiteStore(filepath.Join(opts.Dir, DatabaseFile), opts.Driver)
	case BackendFile, "":
		return NewFileStore(opts.Dir)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	return nil
}
