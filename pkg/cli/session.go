package cli

import (
	"github.com/synterm/synterm/pkg/cli/histutil"
	"github.com/synterm/synterm/pkg/store"
	"github.com/synterm/synterm/pkg/ui"
)

// Action tells the Engine what to do after a key has been handled.
type Action int

const (
	// ActionRedraw redraws the line and waits for the next key.
	ActionRedraw Action = iota
	// ActionSubmit submits the content of the buffer.
	ActionSubmit
	// ActionTerminate ends the session.
	ActionTerminate
)

var actionNames = [...]string{"redraw", "submit", "terminate"}

func (a Action) String() string {
	if 0 <= a && int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// Session is the state of the editor between two submissions: the line being
// edited and the position in history.
type Session struct {
	Buffer Buffer
	hist   *histutil.Walker
}

// NewSession returns a Session with an empty buffer, positioned past the
// newest entry of the history store.
func NewSession(s store.Store) *Session {
	return &Session{hist: histutil.NewWalker(s)}
}

// HistIndex returns the current position in history. A value equal to the
// number of history entries means the fresh line past the newest entry.
func (s *Session) HistIndex() int { return s.hist.Index() }

// Reset clears the buffer and moves past the newest history entry.
func (s *Session) Reset() {
	s.Buffer.Clear()
	s.hist.Reset()
}

// Handle handles a key and returns the action the Engine should take.
func (s *Session) Handle(k ui.Key) Action {
	buf := &s.Buffer
	switch k {
	case ui.K(ui.Enter):
		if buf.Content == "" {
			s.hist.Reset()
			return ActionRedraw
		}
		return ActionSubmit
	case ui.K('D', ui.Ctrl):
		return ActionTerminate
	case ui.K('C', ui.Ctrl):
		s.Reset()
	case ui.K(ui.Backspace):
		buf.DeleteBeforeDot()
	case ui.K(ui.Delete):
		buf.DeleteAtDot()
	case ui.K(ui.Left):
		buf.MoveLeft()
	case ui.K(ui.Right):
		buf.MoveRight()
	case ui.K(ui.Home), ui.K('A', ui.Ctrl):
		buf.MoveHome()
	case ui.K(ui.End), ui.K('E', ui.Ctrl):
		buf.MoveEnd()
	case ui.K(ui.Up):
		buf.Replace(s.hist.Prev())
	case ui.K(ui.Down):
		buf.Replace(s.hist.Next())
	default:
		if k.IsPrintable() {
			buf.InsertAtDot(k.Rune)
		} else {
			logger.Printf("ignoring key %v", k)
		}
	}
	return ActionRedraw
}
