// Package highlight partitions a line of input into colored runs, using an
// ordered table of rules.
package highlight

import (
	"unicode/utf8"

	"github.com/synterm/synterm/pkg/logutil"
	"github.com/synterm/synterm/pkg/ui"
)

var logger = logutil.GetLogger("[highlight] ")

// Highlighter colors code according to a fixed list of rules.
type Highlighter struct {
	matchers []matcher
}

// New compiles the rules into a Highlighter. Rules take precedence in the
// order they are given. It returns a *PatternError if any rule is malformed.
func New(rules ...Rule) (*Highlighter, error) {
	matchers := make([]matcher, len(rules))
	for i, rule := range rules {
		m, err := compile(rule)
		if err != nil {
			return nil, err
		}
		matchers[i] = m
	}
	logger.Printf("compiled %d rules", len(matchers))
	return &Highlighter{matchers}, nil
}

// Plain returns a Highlighter with no rules, which colors nothing.
func Plain() *Highlighter { return &Highlighter{} }

// Get is the same as Highlight. It makes *Highlighter usable as the
// highlighter of a cli.Engine.
func (hl *Highlighter) Get(code string) ui.Text { return hl.Highlight(code) }

// Highlight partitions code into runs. At each position, the rules are tried
// in order and the first one that matches a non-empty prefix of the rest of
// the code wins. A single space that no rule matches becomes a plain run;
// so does a single codepoint that no rule matches. Concatenating the runs
// always gives back code.
//
// With no rules, the result is a single plain run of the whole code.
func (hl *Highlighter) Highlight(code string) ui.Text {
	if code == "" {
		return nil
	}
	if len(hl.matchers) == 0 {
		return ui.T(code, ui.Plain)
	}
	var text ui.Text
	for i := 0; i < len(code); {
		n, color := hl.matchAt(code[i:])
		text = append(text, &ui.Segment{Color: color, Text: code[i : i+n]})
		i += n
	}
	return text
}

func (hl *Highlighter) matchAt(s string) (int, ui.Color) {
	for _, m := range hl.matchers {
		if n := m.match(s); n > 0 {
			return n, m.color
		}
	}
	if s[0] == ' ' {
		return 1, ui.Plain
	}
	_, n := utf8.DecodeRuneInString(s)
	return n, ui.Plain
}
