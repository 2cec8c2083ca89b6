// Synterm is a demo REPL built on the synterm line editor. It highlights a
// few keywords, echoes every submitted line, and exits on "exit".
package main

import (
	"os"

	"github.com/synterm/synterm/pkg/highlight"
	"github.com/synterm/synterm/pkg/prog"
	"github.com/synterm/synterm/pkg/shell"
	"github.com/synterm/synterm/pkg/ui"
)

// A bold yellow prompt. The escape sequences are wrapped in markers so that
// they don't count towards the width of the prompt.
const prompt = "\x01\x1b[1;33m\x02>>> \x01\x1b[m\x02"

var rules = []highlight.Rule{
	highlight.Literal("Red", ui.Red, "red"),
	highlight.Literal("Keyword", ui.Yellow, "exit"),
	highlight.Literal("Green", ui.Green, "green"),
	highlight.Literal("Blue", ui.Blue, "blue"),
	highlight.Regexp("NoHighlight", ui.White, `[a-zA-Z0-9_$]+`),
}

var osExit = os.Exit

func evaluate(line string) string {
	if line == "exit" {
		osExit(0)
	}
	return "Line: " + line
}

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		&shell.Program{Prompt: prompt, Rules: rules, Evaluator: evaluate}))
}
