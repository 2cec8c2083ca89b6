package ui

import "strings"

// Sentinel bytes that delimit invisible spans in a prompt, such as SGR
// sequences. They follow the readline convention.
const (
	MarkerStart = '\x01'
	MarkerEnd   = '\x02'
)

// VisibleWidth returns the number of bytes in s that lie outside invisible
// spans. An invisible span starts at MarkerStart and extends to the next
// MarkerEnd, inclusive; an unterminated span extends to the end of s.
func VisibleWidth(s string) int {
	w := 0
	for i := 0; i < len(s); i++ {
		if s[i] != MarkerStart {
			w++
			continue
		}
		end := strings.IndexByte(s[i+1:], MarkerEnd)
		if end == -1 {
			break
		}
		i += end + 1
	}
	return w
}

// StripMarkers removes the MarkerStart and MarkerEnd bytes from s, keeping
// the bytes between them.
func StripMarkers(s string) string {
	if strings.IndexByte(s, MarkerStart) == -1 && strings.IndexByte(s, MarkerEnd) == -1 {
		return s
	}
	return strings.Map(func(r rune) rune {
		if r == MarkerStart || r == MarkerEnd {
			return -1
		}
		return r
	}, s)
}
