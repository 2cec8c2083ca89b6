package ui

import "fmt"

// Key represents a single keyboard input, typically assembled from an escape
// sequence.
type Key struct {
	Rune rune
	Mod  Mod
}

// K constructs a new Key.
func K(r rune, mods ...Mod) Key {
	var mod Mod
	for _, m := range mods {
		mod |= m
	}
	return Key{r, mod}
}

// Mod represents a modifier key.
type Mod byte

// Values for Mod.
const (
	// Shift is only applied to special keys (e.g. Shift-Up). 'A' and '@' are
	// not considered to be Shift-modified.
	Shift Mod = 1 << iota
	// Alt is the alt modifier, traditionally known as the meta modifier.
	Alt
	Ctrl
)

// Special negative runes to represent function keys, used in the Rune field
// of the Key struct.
const (
	Up rune = -iota - 1
	Down
	Right
	Left

	Home
	Insert
	Delete
	End
	PageUp
	PageDown

	// Some function key names are just aliases for their ASCII representation

	Tab       = '\t'
	Enter     = '\n'
	Backspace = 0x7f
)

var functionKeyNames = [...]string{
	"(Invalid)",
	"Up", "Down", "Right", "Left",
	"Home", "Insert", "Delete", "End", "PageUp", "PageDown",
}

var keyNames = map[rune]string{
	Tab: "Tab", Enter: "Enter", Backspace: "Backspace", ' ': "Space",
}

// IsPrintable reports whether the key inserts its rune into the buffer when
// typed, i.e. it is a graphic rune without the Ctrl or Alt modifier.
func (k Key) IsPrintable() bool {
	return k.Mod&(Ctrl|Alt) == 0 && k.Rune >= 0x20 && k.Rune != Backspace
}

func (k Key) String() string {
	var s string
	if k.Mod&Ctrl != 0 {
		s += "Ctrl-"
	}
	if k.Mod&Alt != 0 {
		s += "Alt-"
	}
	if k.Mod&Shift != 0 {
		s += "Shift-"
	}
	if k.Rune >= 0 {
		if name, ok := keyNames[k.Rune]; ok {
			s += name
		} else {
			s += string(k.Rune)
		}
		return s
	}
	i := int(-k.Rune)
	if i >= len(functionKeyNames) {
		return s + fmt.Sprintf("(bad function key %d)", i)
	}
	return s + functionKeyNames[i]
}
