package store

import (
	"encoding/binary"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"
)

const bucketCmd = "cmd"

// DBStore is a Store backed by a bbolt database. Entries live in the "cmd"
// bucket, keyed by their 1-based sequence numbers encoded in big endian.
type DBStore struct {
	path  string
	db    *bolt.DB
	count int
}

// OpenDB opens the bbolt database at path, creating it if it doesn't exist.
// It waits at most one second for the file lock held by another process.
func OpenDB(path string) (*DBStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, &StorageError{"open", path, err}
	}
	s := &DBStore{path: path, db: db}
	err = db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucketCmd))
		if err != nil {
			return err
		}
		s.count = b.Stats().KeyN
		return nil
	})
	if err != nil {
		db.Close()
		return nil, &StorageError{"initialize", path, err}
	}
	logger.Printf("opened database %s with %d entries", path, s.count)
	return s, nil
}

// Append adds line to the database with the next sequence number.
func (s *DBStore) Append(line string) error {
	if line == "" {
		return nil
	}
	if strings.ContainsRune(line, '\n') {
		return &StorageError{"append", s.path, ErrNewline}
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketCmd))
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(marshalSeq(seq), []byte(line))
	})
	if err != nil {
		return &StorageError{"write", s.path, err}
	}
	s.count++
	return nil
}

// Count returns the number of entries.
func (s *DBStore) Count() int { return s.count }

// Get returns the entry at index i, or "" if i is out of range or cannot be
// read.
func (s *DBStore) Get(i int) string {
	if i < 0 || i >= s.count {
		return ""
	}
	var line string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketCmd))
		line = string(b.Get(marshalSeq(uint64(i + 1))))
		return nil
	})
	if err != nil {
		logger.Printf("reading entry %d: %v", i, err)
		return ""
	}
	return line
}

// Close closes the database.
func (s *DBStore) Close() error {
	return s.db.Close()
}

func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}
