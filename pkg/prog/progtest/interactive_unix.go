//go:build unix

package progtest

import (
	"bytes"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"

	"github.com/synterm/synterm/pkg/must"
	"github.com/synterm/synterm/pkg/prog"
	"github.com/synterm/synterm/pkg/testutil"
)

var waitTimeout = testutil.Scaled(5 * time.Second)

// Interactive runs a Program on a pseudo-terminal. Stdin and stdout of the
// program are the terminal; stderr is a pipe.
type Interactive struct {
	t    testing.TB
	ptmx *os.File

	mutex  sync.Mutex
	out    bytes.Buffer
	pos    int
	notify chan struct{}

	stderr <-chan string
	exit   chan int
}

// StartInteractive starts running p with the given arguments on a new
// pseudo-terminal. It skips the test if a pseudo-terminal cannot be opened.
func StartInteractive(t testing.TB, p prog.Program, args ...string) *Interactive {
	ptmx, pts, err := pty.Open()
	if err != nil {
		t.Skip("cannot open pty:", err)
	}
	r2, w2 := must.Pipe()
	in := &Interactive{
		t: t, ptmx: ptmx,
		notify: make(chan struct{}, 1),
		stderr: readAllAsync(r2),
		exit:   make(chan int, 1),
	}
	t.Cleanup(func() {
		ptmx.Close()
		pts.Close()
	})

	go in.relayOutput()
	go func() {
		fds := [3]*os.File{pts, pts, w2}
		in.exit <- prog.Run(fds, append([]string{"synterm"}, args...), p)
		w2.Close()
	}()
	return in
}

func (in *Interactive) relayOutput() {
	var buf [1024]byte
	for {
		n, err := in.ptmx.Read(buf[:])
		if n > 0 {
			in.mutex.Lock()
			in.out.Write(buf[:n])
			in.mutex.Unlock()
			select {
			case in.notify <- struct{}{}:
			default:
			}
		}
		if err != nil {
			return
		}
	}
}

// Type writes s to the terminal, as if typed by the user.
func (in *Interactive) Type(s string) {
	in.t.Helper()
	if _, err := in.ptmx.WriteString(s); err != nil {
		in.t.Fatalf("write to pty: %v", err)
	}
}

// WaitFor waits until the program writes s to the terminal. Only output after
// the match of the previous WaitFor call is searched.
func (in *Interactive) WaitFor(s string) {
	in.t.Helper()
	timeout := time.After(waitTimeout)
	for {
		in.mutex.Lock()
		rest := in.out.String()[in.pos:]
		if i := strings.Index(rest, s); i != -1 {
			in.pos += i + len(s)
			in.mutex.Unlock()
			return
		}
		in.mutex.Unlock()
		select {
		case <-in.notify:
		case <-timeout:
			in.t.Fatalf("timed out waiting for %q; output so far: %q", s, in.Output())
		}
	}
}

// Output returns everything the program has written to the terminal.
func (in *Interactive) Output() string {
	in.mutex.Lock()
	defer in.mutex.Unlock()
	return in.out.String()
}

// Wait waits for the program to exit and returns its exit status and what it
// wrote to stderr.
func (in *Interactive) Wait() (exit int, stderr string) {
	in.t.Helper()
	select {
	case exit = <-in.exit:
		return exit, <-in.stderr
	case <-time.After(waitTimeout):
		in.t.Fatalf("timed out waiting for program to exit; output so far: %q", in.Output())
		return
	}
}
