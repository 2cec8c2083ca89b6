package store

import "strings"

// NewMemStore returns a Store that keeps entries in memory, initialized with
// the given lines.
func NewMemStore(lines ...string) *MemStore {
	return &MemStore{append([]string(nil), lines...)}
}

// MemStore is a Store that keeps entries in memory.
type MemStore struct{ lines []string }

func (s *MemStore) Append(line string) error {
	if line == "" {
		return nil
	}
	if strings.ContainsRune(line, '\n') {
		return &StorageError{"append", "(memory)", ErrNewline}
	}
	s.lines = append(s.lines, line)
	return nil
}

func (s *MemStore) Count() int { return len(s.lines) }

func (s *MemStore) Get(i int) string {
	if i < 0 || i >= len(s.lines) {
		return ""
	}
	return s.lines[i]
}

func (s *MemStore) Close() error { return nil }

// Lines returns a copy of all entries.
func (s *MemStore) Lines() []string {
	return append([]string(nil), s.lines...)
}
