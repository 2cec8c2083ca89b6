//go:build unix

package shell_test

import (
	"path/filepath"
	"testing"

	"github.com/synterm/synterm/pkg/highlight"
	"github.com/synterm/synterm/pkg/must"
	"github.com/synterm/synterm/pkg/prog/progtest"
	. "github.com/synterm/synterm/pkg/shell"
	"github.com/synterm/synterm/pkg/store"
	"github.com/synterm/synterm/pkg/ui"
)

func TestProgram_Interactive(t *testing.T) {
	home := setupHome(t)
	hist := filepath.Join(home, "state", "hist")

	in := progtest.StartInteractive(t, &Program{Evaluator: lineEvaluator}, "-history", hist)
	in.WaitFor(">>> ")
	in.Type("hi\r")
	in.WaitFor("Line: hi")
	in.WaitFor(">>> ")

	// Recall the line from history, abort, then quit.
	in.Type("\x1b[A")
	in.WaitFor(">>> hi")
	in.Type("\x03")
	in.Type("\x04")

	exit, stderr := in.Wait()
	if exit != 0 || stderr != "" {
		t.Errorf("exit %d, stderr %q", exit, stderr)
	}
	if content := must.ReadFileString(hist); content != "hi\n" {
		t.Errorf("history file contains %q, want %q", content, "hi\n")
	}
}

func TestProgram_InteractiveHighlightsAndUsesDB(t *testing.T) {
	home := setupHome(t)
	db := filepath.Join(home, "hist.db")
	p := &Program{
		Prompt:    "\x01\033[1m\x02$ \x01\033[m\x02",
		Rules:     []highlight.Rule{highlight.Literal("keyword", ui.Yellow, "exit")},
		Evaluator: lineEvaluator,
	}

	in := progtest.StartInteractive(t, p, "-db", db)
	in.WaitFor("\033[1m$ \033[m")
	in.Type("exit")
	in.WaitFor("\033[33mexit\033[0m\r\033[6C")
	in.Type("\r")
	in.WaitFor("Line: exit")
	in.WaitFor("$ ")
	in.Type("\x04")
	if exit, stderr := in.Wait(); exit != 0 {
		t.Fatalf("exit %d, stderr %q", exit, stderr)
	}

	st := must.OK1(store.OpenDB(db))
	defer st.Close()
	if st.Count() != 1 || st.Get(0) != "exit" {
		t.Errorf("database has %d entries, first %q", st.Count(), st.Get(0))
	}
}
