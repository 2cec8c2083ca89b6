package highlight

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/synterm/synterm/pkg/ui"
)

// Rule associates a pattern with the color used for text matching it.
type Rule struct {
	// Name identifies the rule in error messages and logs.
	Name  string
	Color ui.Color
	// Pattern is a regular expression in RE2 syntax, or a literal string if
	// Literal is true.
	Pattern string
	Literal bool
}

// Literal returns a Rule matching the string s exactly.
func Literal(name string, color ui.Color, s string) Rule {
	return Rule{Name: name, Color: color, Pattern: s, Literal: true}
}

// Regexp returns a Rule matching the regular expression expr.
func Regexp(name string, color ui.Color, expr string) Rule {
	return Rule{Name: name, Color: color, Pattern: expr}
}

// PatternError is returned by New when a rule cannot be compiled.
type PatternError struct {
	Rule string
	Err  error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("bad pattern for highlighting rule %s: %v", e.Rule, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

// A compiled rule. The match function returns the length of the match at the
// start of s, or 0 if there is no match.
type matcher struct {
	name  string
	color ui.Color
	match func(s string) int
}

func compile(r Rule) (matcher, error) {
	if r.Literal {
		if r.Pattern == "" {
			return matcher{}, &PatternError{r.Name, errEmptyLiteral}
		}
		lit := r.Pattern
		return matcher{r.Name, r.Color, func(s string) int {
			if strings.HasPrefix(s, lit) {
				return len(lit)
			}
			return 0
		}}, nil
	}
	// The pattern must compile on its own, so that an unbalanced parenthesis
	// cannot escape the anchoring group.
	if _, err := regexp.Compile(r.Pattern); err != nil {
		return matcher{}, &PatternError{r.Name, err}
	}
	re, err := regexp.Compile(`^(?:` + r.Pattern + `)`)
	if err != nil {
		return matcher{}, &PatternError{r.Name, err}
	}
	return matcher{r.Name, r.Color, func(s string) int {
		loc := re.FindStringIndex(s)
		if loc == nil || loc[0] != 0 {
			return 0
		}
		return loc[1]
	}}, nil
}

var errEmptyLiteral = errors.New("empty literal")
