package ui

import (
	"strings"
	"testing"
	"testing/quick"

	"github.com/synterm/synterm/pkg/tt"
)

func TestVisibleWidth(t *testing.T) {
	tt.Test(t, VisibleWidth,
		tt.Args("").Rets(0),
		tt.Args(">>> ").Rets(4),
		tt.Args("\x01\x1b[1;33m\x02>>> \x01\x1b[m\x02").Rets(4),
		tt.Args("\x01\x02").Rets(0),
		tt.Args("a\x01bc\x02d").Rets(2),
		// Unterminated spans extend to the end.
		tt.Args("ab\x01\x1b[31m").Rets(2),
		tt.Args("\x01").Rets(0),
		// A lone end marker is an ordinary byte.
		tt.Args("a\x02").Rets(2),
		// Width is counted in bytes.
		tt.Args("好").Rets(3),
	)
}

func TestVisibleWidth_CountsBytesOutsideSpans(t *testing.T) {
	// Builds a string by alternating visible parts and invisible spans.
	f := func(visible []string, invisible []string) bool {
		var sb strings.Builder
		want := 0
		for i, v := range visible {
			v = strings.NewReplacer("\x01", "", "\x02", "").Replace(v)
			sb.WriteString(v)
			want += len(v)
			if i < len(invisible) {
				inv := strings.ReplaceAll(invisible[i], "\x02", "")
				sb.WriteString("\x01" + inv + "\x02")
			}
		}
		return VisibleWidth(sb.String()) == want
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestStripMarkers(t *testing.T) {
	tt.Test(t, StripMarkers,
		tt.Args(">>> ").Rets(">>> "),
		tt.Args("\x01\x1b[1;33m\x02>>> \x01\x1b[m\x02").Rets("\x1b[1;33m>>> \x1b[m"),
		tt.Args("").Rets(""),
	)
}
