// Package store keeps the command history.
//
// A Store is an append-only log of submitted lines. Entries are indexed from
// 0, oldest first; they are never modified or removed.
package store

import (
	"errors"
	"fmt"
)

// Store is the interface of history backends.
type Store interface {
	// Append records line as the newest entry. Empty lines are ignored. A
	// failure to record the line is reported as a *StorageError.
	Append(line string) error
	// Count returns the number of entries, including those recorded by
	// earlier sessions.
	Count() int
	// Get returns the entry at index i, or "" if i is out of range.
	Get(i int) string
	// Close releases resources held by the Store.
	Close() error
}

// StorageError is returned when a Store cannot be opened or written to.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("history store: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// ErrNewline is wrapped in the StorageError returned when appending a line
// that contains a newline.
var ErrNewline = errors.New("entry contains newline")
