// Package strutil provides string utilities.
package strutil

import "strings"

// ChopLineEnding removes one line ending ("\r\n" or "\n") from the end of s.
// It returns s unchanged if s doesn't end with a line ending.
func ChopLineEnding(s string) string {
	if t, ok := strings.CutSuffix(s, "\r\n"); ok {
		return t
	}
	return strings.TrimSuffix(s, "\n")
}
