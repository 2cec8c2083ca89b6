// Package progtest contains utilities for testing prog.Program
// implementations.
package progtest

import (
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/synterm/synterm/pkg/must"
	"github.com/synterm/synterm/pkg/prog"
)

// Case is a test case that can be used in Test.
type Case struct {
	args  []string
	stdin string
	want  result
}

type result struct {
	exitStatus int
	out        output
	err        output
}

type output struct {
	content string
	partial bool
}

func (o output) String() string {
	if o.partial {
		return fmt.Sprintf("text containing %q", o.content)
	}
	return fmt.Sprintf("%q", o.content)
}

// That returns a new Case with the specified CLI arguments.
//
// The new Case expects the program run to exit with 0, and write nothing to
// stdout or stderr.
//
// When combined with subsequent method calls, a test case reads like English.
// For example, a test for the fact that "synterm -bad-flag" exits with 2 reads
// like:
//
//	That("-bad-flag").ExitsWith(2)
func That(args ...string) Case {
	return Case{args: args}
}

// WithStdin returns an altered Case that provides the given input to stdin of
// the program.
func (c Case) WithStdin(s string) Case {
	c.stdin = s
	return c
}

// DoesNothing returns c itself. It is useful to mark tests that otherwise
// don't have any expectations, for example:
//
//	That("-log", "log").DoesNothing()
func (c Case) DoesNothing() Case {
	return c
}

// ExitsWith returns an altered Case that requires the program run to return
// with the given exit status.
func (c Case) ExitsWith(code int) Case {
	c.want.exitStatus = code
	return c
}

// WritesStdout returns an altered Case that requires the program run to write
// exactly the given text to stdout.
func (c Case) WritesStdout(s string) Case {
	c.want.out = output{content: s}
	return c
}

// WritesStdoutContaining returns an altered Case that requires the program run
// to write output to stdout that contains the given text as a substring.
func (c Case) WritesStdoutContaining(s string) Case {
	c.want.out = output{content: s, partial: true}
	return c
}

// WritesStderr returns an altered Case that requires the program run to write
// exactly the given text to stderr.
func (c Case) WritesStderr(s string) Case {
	c.want.err = output{content: s}
	return c
}

// WritesStderrContaining returns an altered Case that requires the program run
// to write output to stderr that contains the given text as a substring.
func (c Case) WritesStderrContaining(s string) Case {
	c.want.err = output{content: s, partial: true}
	return c
}

// Test runs test cases against a given program.
func Test(t *testing.T, p prog.Program, cases ...Case) {
	t.Helper()
	for _, c := range cases {
		t.Run(strings.Join(c.args, " "), func(t *testing.T) {
			t.Helper()
			exit, stdout, stderr := Run(p, c.stdin, c.args...)
			if exit != c.want.exitStatus {
				t.Errorf("exit code = %v, want %v", exit, c.want.exitStatus)
			}
			if !matchOutput(stdout, c.want.out) {
				t.Errorf("stdout = %q, want %v", stdout, c.want.out)
			}
			if !matchOutput(stderr, c.want.err) {
				t.Errorf("stderr = %q, want %v", stderr, c.want.err)
			}
		})
	}
}

// Run runs a Program with the given arguments and stdin. It returns the exit
// status of the program and what it wrote to stdout and stderr.
func Run(p prog.Program, stdin string, args ...string) (exit int, stdout, stderr string) {
	r0, w0 := must.Pipe()
	// Write stdin in a goroutine, so that large input doesn't block on a full
	// pipe buffer.
	go func() {
		w0.WriteString(stdin)
		w0.Close()
	}()
	defer r0.Close()

	r1, w1 := must.Pipe()
	r2, w2 := must.Pipe()
	outCh := readAllAsync(r1)
	errCh := readAllAsync(r2)

	exit = prog.Run([3]*os.File{r0, w1, w2}, append([]string{"synterm"}, args...), p)
	w1.Close()
	w2.Close()
	return exit, <-outCh, <-errCh
}

func readAllAsync(r *os.File) <-chan string {
	ch := make(chan string, 1)
	go func() {
		ch <- string(must.OK1(io.ReadAll(r)))
		r.Close()
	}()
	return ch
}

func matchOutput(s string, want output) bool {
	if want.partial {
		return strings.Contains(s, want.content)
	}
	return s == want.content
}
