// Package clitest provides utilities for testing cli.Engine.
package clitest

import (
	"io"
	"strings"
	"sync"

	"github.com/synterm/synterm/pkg/cli"
	"github.com/synterm/synterm/pkg/cli/term"
	"github.com/synterm/synterm/pkg/ui"
)

// FakeTTY is an implementation of the cli.TTY interface that is useful in
// tests. It replays a fixed sequence of events or a fixed input string, and
// records everything written to it.
//
// Output is rendered with a real term.Writer, so tests can check the exact
// bytes a terminal would receive.
type FakeTTY struct {
	interactive bool

	// Errors to return from Setup and from the function it returns.
	SetupErr, RestoreErr error

	mutex    sync.Mutex
	events   []term.Event
	lines    *strings.Reader
	out      strings.Builder
	w        *term.Writer
	raw      bool
	setups   int
	restores int
	redraws  []Redraw
}

var _ cli.TTY = (*FakeTTY)(nil)

// Redraw records the arguments of one Redraw call.
type Redraw struct {
	Prompt  string
	Content string
	Col     int
}

// NewFakeTTY returns an interactive FakeTTY that produces the given events.
// Once they run out, ReadEvent returns io.EOF.
func NewFakeTTY(events ...term.Event) *FakeTTY {
	t := &FakeTTY{interactive: true, events: events}
	t.w = term.NewWriter(&t.out)
	return t
}

// NewFakePipe returns a non-interactive FakeTTY that reads lines from input.
func NewFakePipe(input string) *FakeTTY {
	t := &FakeTTY{lines: strings.NewReader(input)}
	t.w = term.NewWriter(&t.out)
	return t
}

// Keys converts keys to events for NewFakeTTY.
func Keys(keys ...ui.Key) []term.Event {
	events := make([]term.Event, len(keys))
	for i, k := range keys {
		events[i] = term.KeyEvent(k)
	}
	return events
}

// Type converts each rune of s to a key event.
func Type(s string) []term.Event {
	var events []term.Event
	for _, r := range s {
		events = append(events, term.K(r))
	}
	return events
}

func (t *FakeTTY) IsInteractive() bool { return t.interactive }

func (t *FakeTTY) Setup() (func() error, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if t.SetupErr != nil {
		return nil, t.SetupErr
	}
	t.raw = true
	t.setups++
	return func() error {
		t.mutex.Lock()
		defer t.mutex.Unlock()
		t.raw = false
		t.restores++
		return t.RestoreErr
	}, nil
}

func (t *FakeTTY) ReadEvent() (term.Event, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if len(t.events) == 0 {
		return nil, io.EOF
	}
	event := t.events[0]
	t.events = t.events[1:]
	return event, nil
}

func (t *FakeTTY) ReadLine() (string, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	var sb strings.Builder
	for {
		b, err := t.lines.ReadByte()
		if err != nil {
			return sb.String(), err
		}
		sb.WriteByte(b)
		if b == '\n' {
			return sb.String(), nil
		}
	}
}

func (t *FakeTTY) Redraw(prompt string, content ui.Text, col int) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.redraws = append(t.redraws, Redraw{prompt, content.Content(), col})
	return t.w.Redraw(prompt, content, col)
}

func (t *FakeTTY) WriteString(s string) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.w.WriteString(s)
}

func (t *FakeTTY) Close() error { return nil }

// IsRaw reports whether the terminal is in raw mode.
func (t *FakeTTY) IsRaw() bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.raw
}

// SetupCalls returns the number of times raw mode has been enabled and
// restored.
func (t *FakeTTY) SetupCalls() (setups, restores int) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.setups, t.restores
}

// Output returns everything written to the TTY.
func (t *FakeTTY) Output() string {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.out.String()
}

// Redraws returns all Redraw calls made so far.
func (t *FakeTTY) Redraws() []Redraw {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return append([]Redraw(nil), t.redraws...)
}

// LastRedraw returns the last Redraw call. It returns the zero value if there
// has been none.
func (t *FakeTTY) LastRedraw() Redraw {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if len(t.redraws) == 0 {
		return Redraw{}
	}
	return t.redraws[len(t.redraws)-1]
}
