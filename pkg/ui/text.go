package ui

import (
	"fmt"
	"strings"
)

// Segment is a string with a single color applied to it.
type Segment struct {
	Color Color
	Text  string
}

// Text is a list of Segments.
type Text []*Segment

// T constructs a Text with a single Segment.
func T(s string, c Color) Text {
	return Text{&Segment{Color: c, Text: s}}
}

// VTString renders the segment using VT-style escape sequences. Plain
// segments are written as bare text.
func (s *Segment) VTString() string {
	if s.Color == Plain {
		return s.Text
	}
	return fmt.Sprintf("\033[%dm%s\033[0m", s.Color.Code(), s.Text)
}

func (s *Segment) String() string {
	return fmt.Sprintf("%s(%q)", s.Color, s.Text)
}

// VTString renders the text using VT-style escape sequences.
func (t Text) VTString() string {
	var sb strings.Builder
	for _, seg := range t {
		sb.WriteString(seg.VTString())
	}
	return sb.String()
}

// Content returns the text with all styling removed.
func (t Text) Content() string {
	var sb strings.Builder
	for _, seg := range t {
		sb.WriteString(seg.Text)
	}
	return sb.String()
}
