// Package kv provides the key-value byte stores Reflect persists its
// notes, folders and active selection to.
package kv

import "errors"

// Keys used by the notes store.
const (
	KeyNotes        = "notes"
	KeyFolders      = "folders"
	KeyActiveNoteID = "activeNoteId"
)

// ErrNotFound is returned by Load when a key has never been saved.
var ErrNotFound = errors.New("kv: key not found")

// Store is a durable key-value byte store.
// Save must not return until the value is durably stored.
type Store interface {
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Options configures Open.
type Options struct {
	Backend string // "file", "sqlite" or "memory"
	Dir     string // data directory for file and sqlite backends
	Driver  string // database/sql driver name for the sqlite backend
}
