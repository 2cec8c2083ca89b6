package term

import (
	"time"

	"github.com/synterm/synterm/pkg/ui"
)

// Timeout between the bytes of one escape sequence. Terminals write a whole
// sequence at once, so a longer gap after an Escape means a lone Escape. SSH
// connections on a slow link might be problematic though.
var keySeqTimeout = 10 * time.Millisecond

// Reads the runes of an escape sequence, recording them for error messages.
type seqReader struct {
	rd  byteReaderWithTimeout
	seq string
}

// Returns the next rune of the sequence, or false if none arrives within
// keySeqTimeout.
func (s *seqReader) next() (rune, bool) {
	r, err := readRune(s.rd, keySeqTimeout)
	if err != nil {
		return 0, false
	}
	s.seq += string(r)
	return r, true
}

func (s *seqReader) bad(msg string) error { return seqError{msg, s.seq} }

func readEvent(rd byteReaderWithTimeout) (Event, error) {
	r, err := readRune(rd, -1)
	if err != nil {
		return nil, err
	}
	if r != 0x1b {
		return KeyEvent(ctrlModify(r)), nil
	}
	s := &seqReader{rd, string(r)}
	k, err := s.readEscape()
	if err != nil {
		return nil, err
	}
	return KeyEvent(k), nil
}

// Decodes what follows an Escape.
func (s *seqReader) readEscape() (ui.Key, error) {
	r, ok := s.next()
	// rxvt signals Alt by doubling the Escape.
	alt := ok && r == 0x1b
	if alt {
		r, ok = s.next()
	}
	if !ok {
		return ui.K('[', ui.Ctrl), nil
	}

	var k ui.Key
	switch r {
	case '[':
		r, ok = s.next()
		if !ok {
			return ui.K('[', ui.Alt), nil
		}
		params, final, err := s.readCSI(r)
		if err != nil {
			return ui.Key{}, err
		}
		if k, ok = parseCSI(params, final); !ok {
			return ui.Key{}, s.bad("bad CSI")
		}
	case 'O':
		// G3 sequences carry exactly one rune, with the same meaning as the
		// final rune of an unmodified CSI sequence.
		r, ok = s.next()
		if !ok {
			return ui.K('O', ui.Alt), nil
		}
		fn, known := csiFinal[r]
		if !known {
			return ui.Key{}, s.bad("bad G3")
		}
		k = ui.K(fn)
	default:
		// Any other rune is an Alt-modified key.
		k = ctrlModify(r)
		alt = true
	}
	if alt {
		k.Mod |= ui.Alt
	}
	return k, nil
}

// Reads the numeric parameters of a CSI sequence whose first rune after "\e["
// is r, and returns them with the final rune.
func (s *seqReader) readCSI(r rune) ([]int, rune, error) {
	var params []int
	for {
		switch {
		case r == ';':
			params = append(params, 0)
		case '0' <= r && r <= '9':
			if len(params) == 0 {
				params = append(params, 0)
			}
			last := &params[len(params)-1]
			*last = *last*10 + int(r-'0')
		default:
			return params, r, nil
		}
		var ok bool
		if r, ok = s.next(); !ok {
			return nil, 0, s.bad("incomplete CSI")
		}
	}
}

// Maps a rune read outside an escape sequence to a key. Control characters
// become Ctrl-modified keys, except the ones terminals send for Enter, Tab and
// Backspace.
func ctrlModify(r rune) ui.Key {
	switch r {
	case '\r', '\n':
		return ui.K(ui.Enter)
	case '\t':
		return ui.K(ui.Tab)
	case 0x08, 0x7f:
		return ui.K(ui.Backspace)
	}
	if 0 <= r && r < 0x20 {
		return ui.K(r+0x40, ui.Ctrl)
	}
	return ui.K(r)
}

// Function keys identified by the final rune of a CSI sequence, as in "\e[A".
var csiFinal = map[rune]rune{
	'A': ui.Up, 'B': ui.Down, 'C': ui.Right, 'D': ui.Left,
	'H': ui.Home, 'F': ui.End,
}

// Function keys identified by the first parameter of a CSI sequence ending in
// '~', as in "\e[3~". Home and End have two codes each depending on the
// terminal.
var csiTilde = map[int]rune{
	1: ui.Home, 7: ui.Home,
	4: ui.End, 8: ui.End,
	3: ui.Delete,
}

// Decodes the parameters and final rune of a CSI sequence into a key. Only the
// function keys the editor binds are known; a modified form such as
// "\e[1;5A" decodes to the key with its modifiers.
func parseCSI(params []int, final rune) (ui.Key, bool) {
	var fn rune
	var ok bool
	mod := 0
	switch {
	case final == '~' && (len(params) == 1 || len(params) == 2):
		fn, ok = csiTilde[params[0]]
		if len(params) == 2 {
			mod = params[1]
		}
	case final != '~' && len(params) == 0:
		fn, ok = csiFinal[final]
	case final != '~' && len(params) == 2 && params[0] == 1:
		fn, ok = csiFinal[final]
		mod = params[1]
	}
	if !ok {
		return ui.Key{}, false
	}
	return withModifier(ui.K(fn), mod)
}

// Applies an xterm modifier parameter, which is 1 plus a bitmask of Shift (1),
// Alt (2), Ctrl (4) and Meta (8). Meta is folded into Alt.
func withModifier(k ui.Key, param int) (ui.Key, bool) {
	if param < 0 || param > 16 {
		return ui.Key{}, false
	}
	if param > 1 {
		bits := param - 1
		if bits&1 != 0 {
			k.Mod |= ui.Shift
		}
		if bits&(2|8) != 0 {
			k.Mod |= ui.Alt
		}
		if bits&4 != 0 {
			k.Mod |= ui.Ctrl
		}
	}
	return k, true
}
