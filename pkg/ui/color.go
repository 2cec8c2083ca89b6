package ui

import (
	"fmt"
	"strings"
)

// Color is one of the terminal colors a highlighting rule may use. The zero
// value is Plain.
type Color int

// Supported colors.
const (
	Plain Color = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
)

var colorNames = []string{
	"plain", "red", "green", "yellow", "blue", "magenta", "cyan", "white",
}

// Code returns the SGR display code of the color. Plain has code 0, and the
// other colors have the standard foreground codes 31 to 37.
func (c Color) Code() int {
	if c <= Plain || c > White {
		return 0
	}
	return 30 + int(c)
}

func (c Color) String() string {
	if c < Plain || c > White {
		return fmt.Sprintf("(bad color %d)", int(c))
	}
	return colorNames[c]
}

// ParseColor parses the name of a color. Names are case-insensitive; "none"
// and "default" are aliases for "plain".
func ParseColor(s string) (Color, error) {
	name := strings.ToLower(s)
	switch name {
	case "none", "default", "":
		return Plain, nil
	}
	for i, colorName := range colorNames {
		if name == colorName {
			return Color(i), nil
		}
	}
	return Plain, fmt.Errorf("unknown color %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler, so that colors can be
// used directly in configuration files.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
