package store

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/synterm/synterm/pkg/logutil"
)

var logger = logutil.GetLogger("[store] ")

// FileStore is a Store backed by a newline-delimited log file, one entry per
// line. The file is kept open in append mode until Close is called.
//
// FileStore assumes that it is the only writer of the file.
type FileStore struct {
	path  string
	file  *os.File
	lines []string
	// Whether the file has an incomplete last line, in which case a newline
	// must be written before the next entry.
	needNewline bool
}

// OpenFile opens the log file at path, creating it if it doesn't exist, and
// loads the entries it already contains.
func OpenFile(path string) (*FileStore, error) {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_APPEND|os.O_CREATE, 0600)
	if err != nil {
		return nil, &StorageError{"open", path, err}
	}
	s := &FileStore{path: path, file: file}
	if err := s.load(); err != nil {
		file.Close()
		return nil, &StorageError{"read", path, err}
	}
	logger.Printf("opened %s with %d entries", path, len(s.lines))
	return s, nil
}

func (s *FileStore) load() error {
	r := bufio.NewReader(s.file)
	for {
		line, err := r.ReadString('\n')
		if err == io.EOF {
			if line != "" {
				s.needNewline = true
				s.lines = append(s.lines, line)
			}
			return nil
		} else if err != nil {
			return err
		}
		if line = strings.TrimSuffix(line, "\n"); line != "" {
			s.lines = append(s.lines, line)
		}
	}
}

// Append writes line to the log file and syncs it.
func (s *FileStore) Append(line string) error {
	if line == "" {
		return nil
	}
	if strings.ContainsRune(line, '\n') {
		return &StorageError{"append", s.path, ErrNewline}
	}
	data := line + "\n"
	if s.needNewline {
		data = "\n" + data
	}
	if _, err := s.file.WriteString(data); err != nil {
		return &StorageError{"write", s.path, err}
	}
	if err := s.file.Sync(); err != nil && !errors.Is(err, os.ErrInvalid) {
		return &StorageError{"sync", s.path, err}
	}
	s.needNewline = false
	s.lines = append(s.lines, line)
	return nil
}

// Count returns the number of entries.
func (s *FileStore) Count() int { return len(s.lines) }

// Get returns the entry at index i, or "" if i is out of range.
func (s *FileStore) Get(i int) string {
	if i < 0 || i >= len(s.lines) {
		return ""
	}
	return s.lines[i]
}

// Close closes the log file.
func (s *FileStore) Close() error {
	return s.file.Close()
}
