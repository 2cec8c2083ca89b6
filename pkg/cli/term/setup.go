package term

import (
	"fmt"
	"os"

	xterm "golang.org/x/term"
)

// TerminalError is returned when the terminal cannot be switched into or out
// of raw mode.
type TerminalError struct {
	Op  string
	Err error
}

func (e *TerminalError) Error() string {
	return fmt.Sprintf("terminal: %s: %v", e.Op, e.Err)
}

func (e *TerminalError) Unwrap() error { return e.Err }

// Setup puts the terminal in raw mode, and returns a function that restores
// the previous state.
func Setup(f *os.File) (restore func() error, err error) {
	fd := int(f.Fd())
	state, err := xterm.MakeRaw(fd)
	if err != nil {
		return nil, &TerminalError{"enable raw mode", err}
	}
	logger.Println("raw mode enabled")
	return func() error {
		if err := xterm.Restore(fd, state); err != nil {
			return &TerminalError{"restore", err}
		}
		logger.Println("terminal restored")
		return nil
	}, nil
}
