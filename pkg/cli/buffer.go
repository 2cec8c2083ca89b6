package cli

import "unicode/utf8"

// Buffer is the line being edited. Dot is the byte offset of the cursor in
// Content; it always lies on a codepoint boundary.
//
// The editing methods never panic. Operations that would move the cursor or
// delete beyond either end of the line do nothing.
type Buffer struct {
	Content string
	Dot     int
}

// InsertAtDot inserts r at the cursor and moves the cursor past it.
func (b *Buffer) InsertAtDot(r rune) {
	b.clampDot()
	s := string(r)
	b.Content = b.Content[:b.Dot] + s + b.Content[b.Dot:]
	b.Dot += len(s)
}

// DeleteBeforeDot deletes the codepoint before the cursor.
func (b *Buffer) DeleteBeforeDot() {
	b.clampDot()
	if b.Dot == 0 {
		return
	}
	_, size := utf8.DecodeLastRuneInString(b.Content[:b.Dot])
	b.Content = b.Content[:b.Dot-size] + b.Content[b.Dot:]
	b.Dot -= size
}

// DeleteAtDot deletes the codepoint after the cursor.
func (b *Buffer) DeleteAtDot() {
	b.clampDot()
	if b.Dot == len(b.Content) {
		return
	}
	_, size := utf8.DecodeRuneInString(b.Content[b.Dot:])
	b.Content = b.Content[:b.Dot] + b.Content[b.Dot+size:]
}

// MoveLeft moves the cursor back by one codepoint.
func (b *Buffer) MoveLeft() {
	b.clampDot()
	if b.Dot == 0 {
		return
	}
	_, size := utf8.DecodeLastRuneInString(b.Content[:b.Dot])
	b.Dot -= size
}

// MoveRight moves the cursor forward by one codepoint.
func (b *Buffer) MoveRight() {
	b.clampDot()
	if b.Dot == len(b.Content) {
		return
	}
	_, size := utf8.DecodeRuneInString(b.Content[b.Dot:])
	b.Dot += size
}

// MoveHome moves the cursor to the start of the line.
func (b *Buffer) MoveHome() { b.Dot = 0 }

// MoveEnd moves the cursor to the end of the line.
func (b *Buffer) MoveEnd() { b.Dot = len(b.Content) }

// Replace replaces the whole line with s and moves the cursor to the end.
func (b *Buffer) Replace(s string) {
	b.Content = s
	b.Dot = len(s)
}

// Clear empties the line.
func (b *Buffer) Clear() {
	*b = Buffer{}
}

// Brings a Dot set directly by the user of the struct back into range.
func (b *Buffer) clampDot() {
	if b.Dot < 0 {
		b.Dot = 0
	} else if b.Dot > len(b.Content) {
		b.Dot = len(b.Content)
	}
}
