// Package term reads key events from and writes the edited line to a
// terminal, and switches the terminal in and out of raw mode.
package term

import (
	"errors"
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"github.com/synterm/synterm/pkg/logutil"
)

var logger = logutil.GetLogger("[cli/term] ")

// Reader reads events from the terminal.
type Reader interface {
	// ReadEvent reads a single event from the terminal. It returns io.EOF when
	// the input is closed.
	ReadEvent() (Event, error)
	// Close releases resources associated with the Reader. Any outstanding
	// ReadEvent call will be aborted, returning ErrStopped.
	Close()
}

// ErrStopped is returned by Reader when Close is called during a ReadEvent
// call.
var ErrStopped = errors.New("stopped")

var errTimeout = errors.New("timed out")

type seqError struct {
	msg string
	seq string
}

func (err seqError) Error() string {
	return fmt.Sprintf("%s: %q", err.msg, err.seq)
}

// NewReader creates a new Reader on the given terminal file.
func NewReader(f *os.File) (Reader, error) {
	fr, err := newFileReader(f)
	if err != nil {
		return nil, err
	}
	return &reader{fr}, nil
}

// IsReadErrorRecoverable returns whether an error returned by Reader is
// recoverable.
func IsReadErrorRecoverable(err error) bool {
	if _, ok := err.(seqError); ok {
		return true
	}
	return err == errTimeout
}

type reader struct {
	fr fileReader
}

func (rd *reader) ReadEvent() (Event, error) {
	return readEvent(rd.fr)
}

func (rd *reader) Close() {
	rd.fr.Stop()
	rd.fr.Close()
}

// A reader that can read a single byte with a timeout. A negative timeout
// means no timeout.
type byteReaderWithTimeout interface {
	ReadByteWithTimeout(timeout time.Duration) (byte, error)
}

// Reads one UTF-8 encoded rune. Every byte of the rune is subject to the
// same timeout.
func readRune(rd byteReaderWithTimeout, timeout time.Duration) (rune, error) {
	leader, err := rd.ReadByteWithTimeout(timeout)
	if err != nil {
		return utf8.RuneError, err
	}
	var r rune
	pending := 0
	switch {
	case leader>>7 == 0:
		return rune(leader), nil
	case leader>>5 == 0x6:
		r, pending = rune(leader&0x1f), 1
	case leader>>4 == 0xe:
		r, pending = rune(leader&0xf), 2
	case leader>>3 == 0x1e:
		r, pending = rune(leader&0x7), 3
	default:
		return utf8.RuneError, nil
	}
	for i := 0; i < pending; i++ {
		b, err := rd.ReadByteWithTimeout(timeout)
		if err != nil {
			return utf8.RuneError, err
		}
		if b>>6 != 0x2 {
			return utf8.RuneError, nil
		}
		r = r<<6 + rune(b&0x3f)
	}
	return r, nil
}
