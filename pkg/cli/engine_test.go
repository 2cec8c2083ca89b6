package cli_test

import (
	"errors"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	. "github.com/synterm/synterm/pkg/cli"
	"github.com/synterm/synterm/pkg/cli/clitest"
	"github.com/synterm/synterm/pkg/cli/term"
	"github.com/synterm/synterm/pkg/must"
	"github.com/synterm/synterm/pkg/store"
	"github.com/synterm/synterm/pkg/testutil"
	"github.com/synterm/synterm/pkg/ui"
)

var (
	enter = term.K(ui.Enter)
	up    = term.K(ui.Up)
	left  = term.K(ui.Left)
	ctrlD = term.K('D', ui.Ctrl)
)

func events(groups ...[]term.Event) []term.Event {
	var all []term.Event
	for _, g := range groups {
		all = append(all, g...)
	}
	return all
}

func one(e term.Event) []term.Event { return []term.Event{e} }

// Records evaluated lines and whether the terminal was in raw mode at the
// time.
type recorder struct {
	tty   *clitest.FakeTTY
	lines []string
	raw   []bool
}

func (r *recorder) eval(line string) string {
	r.lines = append(r.lines, line)
	r.raw = append(r.raw, r.tty.IsRaw())
	return "Line: " + line
}

func TestEngine_Session(t *testing.T) {
	tty := clitest.NewFakeTTY(events(clitest.Type("x"), one(enter), one(ctrlD))...)
	rec := &recorder{tty: tty}
	st := store.NewMemStore()

	err := NewEngine(EngineSpec{TTY: tty, Evaluator: rec.eval, Store: st}).Run()

	if err != nil {
		t.Errorf("Run -> %v", err)
	}
	wantOutput := "\r\033[K>>> \r\033[4C" +
		"\r\033[K>>> x\r\033[5C" +
		"\r\n" + "Line: x\n" +
		"\r\033[K>>> \r\033[4C" +
		"\n"
	if got := tty.Output(); got != wantOutput {
		t.Errorf("output:\n got %q\nwant %q", got, wantOutput)
	}
	if len(rec.lines) != 1 || rec.lines[0] != "x" || rec.raw[0] {
		t.Errorf("evaluated %q (raw %v), want [\"x\"] outside raw mode", rec.lines, rec.raw)
	}
	if lines := st.Lines(); len(lines) != 1 || lines[0] != "x" {
		t.Errorf("history is %q, want [\"x\"]", lines)
	}
	checkRestored(t, tty, 2)
}

func TestEngine_EmptyEnterDoesNothing(t *testing.T) {
	tty := clitest.NewFakeTTY(enter, enter, enter, ctrlD)
	rec := &recorder{tty: tty}
	st := store.NewMemStore("old")

	must.OK(NewEngine(EngineSpec{TTY: tty, Evaluator: rec.eval, Store: st}).Run())

	if len(rec.lines) != 0 {
		t.Errorf("evaluator called with %q", rec.lines)
	}
	if st.Count() != 1 {
		t.Errorf("history has %d entries, want 1", st.Count())
	}
	checkRestored(t, tty, 1)
}

func TestEngine_EOFTerminates(t *testing.T) {
	tty := clitest.NewFakeTTY(clitest.Type("ab")...)
	rec := &recorder{tty: tty}

	if err := NewEngine(EngineSpec{TTY: tty, Evaluator: rec.eval}).Run(); err != nil {
		t.Errorf("Run -> %v", err)
	}
	if len(rec.lines) != 0 {
		t.Errorf("unterminated line was evaluated")
	}
	if out := tty.Output(); out[len(out)-1] != '\n' {
		t.Errorf("output %q doesn't end with newline", out)
	}
	checkRestored(t, tty, 1)
}

func TestEngine_CursorColumn(t *testing.T) {
	prompt := "\x01\033[1;33m\x02>>> \x01\033[m\x02"
	tests := []struct {
		name  string
		input []term.Event
		want  clitest.Redraw
	}{
		{"empty", nil, clitest.Redraw{Prompt: prompt, Content: "", Col: 4}},
		{"after typing", clitest.Type("ab"), clitest.Redraw{Prompt: prompt, Content: "ab", Col: 6}},
		{"after moving left", events(clitest.Type("ab"), one(left)), clitest.Redraw{Prompt: prompt, Content: "ab", Col: 5}},
		{"wide characters", clitest.Type("你好"), clitest.Redraw{Prompt: prompt, Content: "你好", Col: 8}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tty := clitest.NewFakeTTY(test.input...)
			must.OK(NewEngine(EngineSpec{TTY: tty, Prompt: prompt}).Run())
			if got := tty.LastRedraw(); got != test.want {
				t.Errorf("last redraw %+v, want %+v", got, test.want)
			}
		})
	}
}

type redHighlighter struct{}

func (redHighlighter) Get(code string) ui.Text {
	return ui.T(code, ui.Red)
}

func TestEngine_Highlighter(t *testing.T) {
	tty := clitest.NewFakeTTY(clitest.Type("a")...)
	must.OK(NewEngine(EngineSpec{TTY: tty, Highlighter: redHighlighter{}}).Run())
	want := "\r\033[K>>> \033[31ma\033[0m\r\033[5C"
	if out := tty.Output(); !strings.Contains(out, want) {
		t.Errorf("output %q doesn't contain %q", out, want)
	}
}

func TestEngine_History(t *testing.T) {
	tty := clitest.NewFakeTTY(events(
		clitest.Type("a"), one(enter),
		clitest.Type("b"), one(enter),
		one(up), one(up))...)
	st := store.NewMemStore()
	must.OK(NewEngine(EngineSpec{TTY: tty, Store: st}).Run())

	if got := tty.LastRedraw().Content; got != "a" {
		t.Errorf("content after two Ups is %q, want \"a\"", got)
	}
	if st.Count() != 2 {
		t.Errorf("history has %d entries, want 2", st.Count())
	}
}

func TestEngine_NonInteractive(t *testing.T) {
	tests := []struct {
		input     string
		wantLines []string
		wantOut   string
	}{
		{"hello\n", []string{"hello"}, "Line: hello\n"},
		{"hello", []string{"hello"}, "Line: hello\n"},
		{"hello\r\n", []string{"hello"}, "Line: hello\n"},
		{"first\nsecond\n", []string{"first"}, "Line: first\n"},
		{"\n", []string{""}, "Line: \n"},
		{"", nil, ""},
	}
	for _, test := range tests {
		tty := clitest.NewFakePipe(test.input)
		rec := &recorder{tty: tty}
		st := store.NewMemStore()
		err := NewEngine(EngineSpec{TTY: tty, Evaluator: rec.eval, Store: st}).Run()
		if err != nil {
			t.Errorf("input %q: Run -> %v", test.input, err)
		}
		if !slices.Equal(rec.lines, test.wantLines) {
			t.Errorf("input %q: evaluated %q, want %q", test.input, rec.lines, test.wantLines)
		}
		if out := tty.Output(); out != test.wantOut {
			t.Errorf("input %q: output %q, want %q", test.input, out, test.wantOut)
		}
		if setups, _ := tty.SetupCalls(); setups != 0 {
			t.Errorf("input %q: raw mode enabled", test.input)
		}
		if st.Count() != 0 {
			t.Errorf("input %q: history written", test.input)
		}
	}
}

func TestEngine_EvaluatorExitsGoroutine(t *testing.T) {
	tty := clitest.NewFakeTTY(events(clitest.Type("exit"), one(enter))...)
	eval := func(line string) string {
		runtime.Goexit()
		return ""
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		NewEngine(EngineSpec{TTY: tty, Evaluator: eval}).Run()
		t.Error("Run returned")
	}()
	<-done

	checkRestored(t, tty, 1)
}

func TestEngine_EvaluatorPanics(t *testing.T) {
	tty := clitest.NewFakeTTY(events(clitest.Type("x"), one(enter))...)
	eval := func(line string) string { panic("boom") }

	func() {
		defer func() {
			if r := recover(); r != "boom" {
				t.Errorf("recovered %v, want boom", r)
			}
		}()
		NewEngine(EngineSpec{TTY: tty, Evaluator: eval}).Run()
	}()

	checkRestored(t, tty, 1)
}

func TestEngine_StorageErrorIsFatal(t *testing.T) {
	st := must.OK1(store.OpenFile(filepath.Join(testutil.TempDir(t), "history")))
	st.Close()
	tty := clitest.NewFakeTTY(events(clitest.Type("x"), one(enter), clitest.Type("more"))...)
	rec := &recorder{tty: tty}

	err := NewEngine(EngineSpec{TTY: tty, Evaluator: rec.eval, Store: st}).Run()

	var serr *store.StorageError
	if !errors.As(err, &serr) {
		t.Errorf("Run -> %v, want *store.StorageError", err)
	}
	if len(rec.lines) != 0 {
		t.Errorf("line evaluated after storage error")
	}
	checkRestored(t, tty, 1)
}

func TestEngine_SetupError(t *testing.T) {
	tty := clitest.NewFakeTTY(ctrlD)
	setupErr := &term.TerminalError{Op: "enable raw mode", Err: errors.New("bad")}
	tty.SetupErr = setupErr

	if err := NewEngine(EngineSpec{TTY: tty}).Run(); err != setupErr {
		t.Errorf("Run -> %v, want %v", err, setupErr)
	}
	if out := tty.Output(); out != "" {
		t.Errorf("wrote %q before raw mode was enabled", out)
	}
}

func TestEngine_RestoreError(t *testing.T) {
	tty := clitest.NewFakeTTY(ctrlD)
	restoreErr := errors.New("cannot restore")
	tty.RestoreErr = restoreErr

	if err := NewEngine(EngineSpec{TTY: tty}).Run(); !errors.Is(err, restoreErr) {
		t.Errorf("Run -> %v, want %v", err, restoreErr)
	}
}

func checkRestored(t *testing.T, tty *clitest.FakeTTY, wantSetups int) {
	t.Helper()
	if tty.IsRaw() {
		t.Errorf("terminal left in raw mode")
	}
	setups, restores := tty.SetupCalls()
	if setups != wantSetups || restores != wantSetups {
		t.Errorf("raw mode enabled %d times and restored %d times, want %d",
			setups, restores, wantSetups)
	}
}
