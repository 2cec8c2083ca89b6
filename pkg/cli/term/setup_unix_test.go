//go:build unix

package term

import (
	"errors"
	"testing"

	"github.com/creack/pty"
	xterm "golang.org/x/term"

	"github.com/synterm/synterm/pkg/must"
)

func TestSetup(t *testing.T) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skip("cannot open pty:", err)
	}
	defer ptmx.Close()
	defer tty.Close()

	before := must.OK1(xterm.GetState(int(tty.Fd())))

	restore, err := Setup(tty)
	if err != nil {
		t.Fatalf("Setup -> %v", err)
	}
	if err := restore(); err != nil {
		t.Errorf("restore -> %v", err)
	}

	after := must.OK1(xterm.GetState(int(tty.Fd())))
	if *before != *after {
		t.Errorf("terminal state not restored")
	}
}

func TestSetup_NotTerminal(t *testing.T) {
	r, w := must.Pipe()
	defer r.Close()
	defer w.Close()

	_, err := Setup(r)
	var terr *TerminalError
	if !errors.As(err, &terr) {
		t.Fatalf("Setup on pipe -> %v, want *TerminalError", err)
	}
	if terr.Op != "enable raw mode" {
		t.Errorf("Op = %q", terr.Op)
	}
}
