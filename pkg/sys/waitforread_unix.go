//go:build unix

package sys

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// WaitForRead blocks until any of the given files is ready to be read or
// timeout. A negative timeout means no timeout. It returns a boolean slice
// indicating which files are ready to be read and any possible error.
func WaitForRead(timeout time.Duration, files ...*os.File) (ready []bool, err error) {
	maxfd := 0
	var fdset unix.FdSet
	fdset.Zero()
	for _, file := range files {
		fd := int(file.Fd())
		if maxfd < fd {
			maxfd = fd
		}
		fdset.Set(fd)
	}
	var ptimeval *unix.Timeval
	if timeout >= 0 {
		timeval := unix.NsecToTimeval(int64(timeout))
		ptimeval = &timeval
	}
	_, err = unix.Select(maxfd+1, &fdset, nil, nil, ptimeval)
	ready = make([]bool, len(files))
	if err != nil {
		return ready, err
	}
	for i, file := range files {
		ready[i] = fdset.IsSet(int(file.Fd()))
	}
	return ready, nil
}
