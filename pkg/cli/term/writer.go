package term

import (
	"bufio"
	"fmt"
	"io"

	"github.com/synterm/synterm/pkg/ui"
)

// Writer writes the edited line to a terminal using VT100 sequences. Every
// method flushes its output before returning.
type Writer struct {
	buf *bufio.Writer
}

// NewWriter returns a Writer that writes to the given io.Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{bufio.NewWriter(w)}
}

const clearToEOL = "\033[K"

// Redraw replaces the current terminal line with the prompt followed by
// content, and places the cursor col columns from the left edge.
//
// Bytes of the prompt between ui.MarkerStart and ui.MarkerEnd are written
// as-is; the markers themselves are not written.
func (w *Writer) Redraw(prompt string, content ui.Text, col int) error {
	w.buf.WriteString("\r" + clearToEOL)
	w.buf.WriteString(ui.StripMarkers(prompt))
	w.buf.WriteString(content.VTString())
	w.buf.WriteString("\r")
	if col > 0 {
		fmt.Fprintf(w.buf, "\033[%dC", col)
	}
	return w.buf.Flush()
}

// WriteString writes s as-is.
func (w *Writer) WriteString(s string) error {
	w.buf.WriteString(s)
	return w.buf.Flush()
}
