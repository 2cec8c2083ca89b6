package highlight

import (
	"errors"
	"regexp/syntax"
	"testing"
	"testing/quick"

	"github.com/google/go-cmp/cmp"
	"github.com/synterm/synterm/pkg/ui"
)

var (
	fooBar = []Rule{
		Regexp("Foo", ui.Red, "foo"),
		Regexp("Bar", ui.Green, "bar"),
	}
	exampleRules = []Rule{
		Regexp("Red", ui.Red, "red"),
		Regexp("Keyword", ui.Yellow, "exit"),
		Regexp("Green", ui.Green, "green"),
		Regexp("Blue", ui.Blue, "blue"),
		Regexp("NoHighlight", ui.White, "[a-zA-Z0-9_$]+"),
	}
)

var highlightTests = []struct {
	name  string
	rules []Rule
	code  string
	want  ui.Text
}{
	{
		name:  "rules and fallbacks",
		rules: fooBar,
		code:  "foo bar baz",
		want: ui.Text{
			{Color: ui.Red, Text: "foo"}, {Color: ui.Plain, Text: " "}, {Color: ui.Green, Text: "bar"}, {Color: ui.Plain, Text: " "},
			{Color: ui.Plain, Text: "b"}, {Color: ui.Plain, Text: "a"}, {Color: ui.Plain, Text: "z"},
		},
	},
	{
		name:  "empty code",
		rules: fooBar,
		code:  "",
		want:  nil,
	},
	{
		name:  "no rules",
		rules: nil,
		code:  "foo bar",
		want:  ui.Text{{Color: ui.Plain, Text: "foo bar"}},
	},
	{
		name:  "declaration order wins over length",
		rules: exampleRules,
		code:  "exit exited",
		want: ui.Text{
			{Color: ui.Yellow, Text: "exit"}, {Color: ui.Plain, Text: " "}, {Color: ui.Yellow, Text: "exit"},
			{Color: ui.White, Text: "ed"},
		},
	},
	{
		name:  "later rule wins when earlier ones do not match",
		rules: exampleRules,
		code:  "reddish",
		want:  ui.Text{{Color: ui.Red, Text: "red"}, {Color: ui.White, Text: "dish"}},
	},
	{
		name: "literal rules",
		rules: []Rule{
			Literal("Dots", ui.Cyan, "..."),
			Literal("Dot", ui.Magenta, "."),
		},
		code: "....",
		want: ui.Text{{Color: ui.Cyan, Text: "..."}, {Color: ui.Magenta, Text: "."}},
	},
	{
		name:  "literal rules are not regexps",
		rules: []Rule{Literal("Star", ui.Red, "a*")},
		code:  "aa*",
		want:  ui.Text{{Color: ui.Plain, Text: "a"}, {Color: ui.Red, Text: "a*"}},
	},
	{
		name:  "zero-length matches are ignored",
		rules: []Rule{Regexp("Maybe", ui.Red, "x*")},
		code:  "ab",
		want:  ui.Text{{Color: ui.Plain, Text: "a"}, {Color: ui.Plain, Text: "b"}},
	},
	{
		name:  "fallback emits whole codepoints",
		rules: fooBar,
		code:  "你foo",
		want:  ui.Text{{Color: ui.Plain, Text: "你"}, {Color: ui.Red, Text: "foo"}},
	},
	{
		name:  "rules may match whitespace",
		rules: []Rule{Regexp("Space", ui.Blue, `\s+`)},
		code:  "a  b",
		want:  ui.Text{{Color: ui.Plain, Text: "a"}, {Color: ui.Blue, Text: "  "}, {Color: ui.Plain, Text: "b"}},
	},
}

func TestHighlight(t *testing.T) {
	for _, test := range highlightTests {
		t.Run(test.name, func(t *testing.T) {
			hl, err := New(test.rules...)
			if err != nil {
				t.Fatalf("New -> error %v", err)
			}
			got := hl.Highlight(test.code)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Highlight(%q) (-want +got):\n%s", test.code, diff)
			}
		})
	}
}

func TestHighlight_IsLosslessPartition(t *testing.T) {
	hl, err := New(exampleRules...)
	if err != nil {
		t.Fatal(err)
	}
	f := func(code string) bool {
		text := hl.Highlight(code)
		for _, seg := range text {
			if seg.Text == "" {
				return false
			}
		}
		return text.Content() == code
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestPlain(t *testing.T) {
	got := Plain().Get("foo bar")
	want := ui.Text{{Color: ui.Plain, Text: "foo bar"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Plain().Get (-want +got):\n%s", diff)
	}
}

func TestNew_BadPattern(t *testing.T) {
	_, err := New(Regexp("Good", ui.Red, "ok"), Regexp("Bad", ui.Green, "a("))
	var patternErr *PatternError
	if !errors.As(err, &patternErr) {
		t.Fatalf("New -> error %v, want *PatternError", err)
	}
	if patternErr.Rule != "Bad" {
		t.Errorf("PatternError.Rule = %q, want %q", patternErr.Rule, "Bad")
	}
	var syntaxErr *syntax.Error
	if !errors.As(err, &syntaxErr) || syntaxErr.Code != syntax.ErrMissingParen {
		t.Errorf("PatternError wraps %v, want missing paren error", patternErr.Err)
	}
}

func TestNew_UnbalancedParen(t *testing.T) {
	// Anchoring must not turn a stray ")" into a valid, partly unanchored
	// alternation.
	_, err := New(Regexp("Weird", ui.Red, "a)|(b"))
	var patternErr *PatternError
	if !errors.As(err, &patternErr) {
		t.Fatalf("New -> error %v, want *PatternError", err)
	}
	var syntaxErr *syntax.Error
	if !errors.As(err, &syntaxErr) || syntaxErr.Code != syntax.ErrUnexpectedParen {
		t.Errorf("PatternError wraps %v, want unexpected paren error", patternErr.Err)
	}
}

func TestHighlight_MatchesOnlyAtScanPosition(t *testing.T) {
	hl, err := New(Regexp("AltB", ui.Red, "a|b"))
	if err != nil {
		t.Fatal(err)
	}
	got := hl.Highlight("xxb")
	want := ui.Text{{Text: "x"}, {Text: "x"}, {Color: ui.Red, Text: "b"}}
	if got.VTString() != want.VTString() || got.Content() != "xxb" {
		t.Errorf("Highlight(\"xxb\") = %v, want %v", got, want)
	}
}

func TestNew_EmptyLiteral(t *testing.T) {
	_, err := New(Literal("Empty", ui.Red, ""))
	if !errors.Is(err, errEmptyLiteral) {
		t.Errorf("New -> error %v, want %v", err, errEmptyLiteral)
	}
}
