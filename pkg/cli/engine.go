// Package cli implements an interactive line editor that dispatches submitted
// lines to an evaluator.
package cli

import (
	"io"

	"github.com/synterm/synterm/pkg/cli/term"
	"github.com/synterm/synterm/pkg/errutil"
	"github.com/synterm/synterm/pkg/logutil"
	"github.com/synterm/synterm/pkg/store"
	"github.com/synterm/synterm/pkg/strutil"
	"github.com/synterm/synterm/pkg/ui"
	"github.com/synterm/synterm/pkg/wcwidth"
)

var logger = logutil.GetLogger("[cli] ")

// DefaultPrompt is the prompt used when EngineSpec.Prompt is empty.
const DefaultPrompt = ">>> "

// Evaluator evaluates a submitted line and returns the text to show for it.
// It may also end the process.
type Evaluator func(line string) string

// Highlighter highlights the content of the buffer.
type Highlighter interface {
	Get(code string) ui.Text
}

// A Highlighter implementation that always returns plain text.
type dummyHighlighter struct{}

func (dummyHighlighter) Get(code string) ui.Text {
	if code == "" {
		return nil
	}
	return ui.T(code, ui.Plain)
}

// EngineSpec specifies the collaborators of an Engine. Only TTY is required.
type EngineSpec struct {
	TTY         TTY
	Evaluator   Evaluator
	Highlighter Highlighter
	// Prompt may contain invisible spans delimited by ui.MarkerStart and
	// ui.MarkerEnd, which are written to the terminal but take no columns.
	Prompt string
	Store  store.Store
}

// Engine reads lines from a TTY and dispatches them to an Evaluator.
type Engine struct {
	EngineSpec
	session *Session
}

// NewEngine creates a new Engine from the given specification, filling in
// defaults for optional fields.
func NewEngine(spec EngineSpec) *Engine {
	if spec.Evaluator == nil {
		spec.Evaluator = func(line string) string { return line }
	}
	if spec.Highlighter == nil {
		spec.Highlighter = dummyHighlighter{}
	}
	if spec.Prompt == "" {
		spec.Prompt = DefaultPrompt
	}
	if spec.Store == nil {
		spec.Store = store.NewMemStore()
	}
	return &Engine{EngineSpec: spec}
}

// Run runs the engine until the session ends.
//
// If the TTY is not interactive, Run evaluates a single line read from it.
// Otherwise it puts the terminal in raw mode and edits lines until Ctrl-D is
// pressed or the input ends. The terminal is restored on every return path,
// and while the evaluator runs.
func (e *Engine) Run() error {
	if !e.TTY.IsInteractive() {
		return e.runOnce()
	}
	return e.runInteractive()
}

func (e *Engine) runOnce() error {
	line, err := e.TTY.ReadLine()
	if err == io.EOF {
		if line == "" {
			return nil
		}
	} else if err != nil {
		return err
	}
	result := e.Evaluator(strutil.ChopLineEnding(line))
	return e.TTY.WriteString(result + "\n")
}

func (e *Engine) runInteractive() (err error) {
	restore, err := e.TTY.Setup()
	if err != nil {
		return err
	}
	raw := true
	defer func() {
		if raw {
			err = errutil.Multi(err, restore())
		}
	}()

	e.session = NewSession(e.Store)
	for {
		if err := e.redraw(); err != nil {
			return err
		}
		event, err := e.TTY.ReadEvent()
		if err == io.EOF {
			raw = false
			return errutil.Multi(restore(), e.TTY.WriteString("\n"))
		} else if err != nil {
			if term.IsReadErrorRecoverable(err) {
				logger.Println("skipping input:", err)
				continue
			}
			return err
		}
		k, ok := event.(term.KeyEvent)
		if !ok {
			continue
		}

		switch e.session.Handle(ui.Key(k)) {
		case ActionSubmit:
			line := e.session.Buffer.Content
			if err := e.Store.Append(line); err != nil {
				return err
			}
			logger.Printf("submitting %q", line)
			if err := e.TTY.WriteString("\r\n"); err != nil {
				return err
			}
			raw = false
			if err := restore(); err != nil {
				return err
			}
			result := e.Evaluator(line)
			if err := e.TTY.WriteString(result + "\n"); err != nil {
				return err
			}
			restore, err = e.TTY.Setup()
			if err != nil {
				return err
			}
			raw = true
			e.session.Reset()
		case ActionTerminate:
			raw = false
			return errutil.Multi(restore(), e.TTY.WriteString("\n"))
		}
	}
}

func (e *Engine) redraw() error {
	buf := e.session.Buffer
	col := ui.VisibleWidth(e.Prompt) + wcwidth.Of(buf.Content[:buf.Dot])
	return e.TTY.Redraw(e.Prompt, e.Highlighter.Get(buf.Content), col)
}
