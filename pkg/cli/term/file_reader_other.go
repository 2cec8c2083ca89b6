//go:build !unix

package term

import (
	"bufio"
	"os"
	"time"
)

type fileReader interface {
	byteReaderWithTimeout
	Stop() error
	Close()
}

// Without select(2), reads block and timeouts are ignored. A lone Escape is
// only recognized once the next key arrives.
func newFileReader(file *os.File) (fileReader, error) {
	return plainReader{bufio.NewReader(file)}, nil
}

type plainReader struct{ r *bufio.Reader }

func (r plainReader) ReadByteWithTimeout(time.Duration) (byte, error) {
	return r.r.ReadByte()
}

func (plainReader) Stop() error { return nil }
func (plainReader) Close()      {}
