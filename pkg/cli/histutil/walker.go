// Package histutil implements navigation through command history.
package histutil

import "github.com/synterm/synterm/pkg/store"

// Direction is the direction of history navigation.
type Direction int

const (
	// Up moves towards older entries.
	Up Direction = iota
	// Down moves towards newer entries.
	Down
)

// Navigate returns the history index after moving from current in direction
// d, in a history with count entries. Valid indices are 0 to count
// inclusive; count stands for the fresh line past the newest entry.
// Navigation wraps around in both directions.
func Navigate(count, current int, d Direction) int {
	switch d {
	case Up:
		if current--; current < 0 {
			return count
		}
	case Down:
		if current++; current > count {
			return 0
		}
	}
	return current
}

// Walker walks through the entries of a Store.
type Walker struct {
	store store.Store
	index int
}

// NewWalker returns a Walker positioned past the newest entry of s.
func NewWalker(s store.Store) *Walker {
	return &Walker{s, s.Count()}
}

// Index returns the current index.
func (w *Walker) Index() int { return w.index }

// Current returns the entry at the current index, or "" when positioned past
// the newest entry.
func (w *Walker) Current() string { return w.store.Get(w.index) }

// Prev moves to the previous (older) entry and returns it.
func (w *Walker) Prev() string {
	w.index = Navigate(w.store.Count(), w.index, Up)
	return w.Current()
}

// Next moves to the next (newer) entry and returns it.
func (w *Walker) Next() string {
	w.index = Navigate(w.store.Count(), w.index, Down)
	return w.Current()
}

// Reset moves past the newest entry.
func (w *Walker) Reset() { w.index = w.store.Count() }
