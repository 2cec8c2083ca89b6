package cli

import (
	"bufio"
	"os"

	"github.com/synterm/synterm/pkg/cli/term"
	"github.com/synterm/synterm/pkg/sys"
	"github.com/synterm/synterm/pkg/ui"
)

// TTY is the type the Engine uses to access the terminal.
type TTY interface {
	// IsInteractive reports whether the input is a terminal. When it is not,
	// the Engine reads a single line with ReadLine instead of key events.
	IsInteractive() bool
	// Setup puts the terminal in raw mode and returns a function that
	// restores it.
	Setup() (restore func() error, err error)
	// ReadEvent reads a terminal event. It returns io.EOF when the input is
	// closed.
	ReadEvent() (term.Event, error)
	// ReadLine reads a line, including the line ending if there is one.
	ReadLine() (string, error)
	// Redraw replaces the current line with the prompt followed by content,
	// and places the cursor col columns from the left edge.
	Redraw(prompt string, content ui.Text, col int) error
	// WriteString writes s as-is.
	WriteString(s string) error
	// Close releases resources held by the TTY. It does not close the
	// underlying files.
	Close() error
}

type aTTY struct {
	in, out *os.File
	w       *term.Writer
	r       term.Reader
	lines   *bufio.Reader
}

// NewTTY returns a new TTY from input and output terminal files.
func NewTTY(in, out *os.File) TTY {
	return &aTTY{in: in, out: out, w: term.NewWriter(out)}
}

func (t *aTTY) IsInteractive() bool {
	return sys.IsATTY(t.in.Fd())
}

func (t *aTTY) Setup() (func() error, error) {
	return term.Setup(t.in)
}

func (t *aTTY) ReadEvent() (term.Event, error) {
	if t.r == nil {
		r, err := term.NewReader(t.in)
		if err != nil {
			return nil, err
		}
		t.r = r
	}
	return t.r.ReadEvent()
}

func (t *aTTY) ReadLine() (string, error) {
	if t.lines == nil {
		t.lines = bufio.NewReader(t.in)
	}
	return t.lines.ReadString('\n')
}

func (t *aTTY) Redraw(prompt string, content ui.Text, col int) error {
	return t.w.Redraw(prompt, content, col)
}

func (t *aTTY) WriteString(s string) error {
	return t.w.WriteString(s)
}

func (t *aTTY) Close() error {
	if t.r != nil {
		t.r.Close()
		t.r = nil
	}
	return nil
}
