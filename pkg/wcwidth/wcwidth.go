// Package wcwidth provides the display width of text in a terminal.
package wcwidth

import (
	"sync"

	"github.com/mattn/go-runewidth"
)

var (
	overrides      = map[rune]int{}
	overridesMutex sync.RWMutex
)

// Of returns the display width of s.
func Of(s string) int {
	w := 0
	for _, r := range s {
		w += OfRune(r)
	}
	return w
}

// OfRune returns the display width of r. Width overrides take precedence.
func OfRune(r rune) int {
	overridesMutex.RLock()
	w, ok := overrides[r]
	overridesMutex.RUnlock()
	if ok {
		return w
	}
	return runewidth.RuneWidth(r)
}

// Override overrides the display width of r with w. A negative w removes the
// override.
func Override(r rune, w int) {
	if w < 0 {
		Unoverride(r)
		return
	}
	overridesMutex.Lock()
	defer overridesMutex.Unlock()
	overrides[r] = w
}

// Unoverride removes the width override of r.
func Unoverride(r rune) {
	overridesMutex.Lock()
	defer overridesMutex.Unlock()
	delete(overrides, r)
}
