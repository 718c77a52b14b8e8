package sink

import (
	"bufio"
	"fmt"
	"io"

	"github.com/matzehuels/jugglesearch/pkg/siteswap"
)

// Writer prints one display line per pattern and the status line last.
type Writer struct {
	w   *bufio.Writer
	err error

	// Animation prints the animation text after each display, tab separated.
	Animation bool
}

// NewWriter returns a text sink on w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Emit implements siteswap.Target.
func (t *Writer) Emit(display, notation, animation string) {
	if t.Animation {
		t.printf("%s\t%s\n", display, animation)
		return
	}
	t.printf("%s\n", display)
}

// SetStatus implements siteswap.Target.
func (t *Writer) SetStatus(msg string) {
	t.printf("%s\n", msg)
}

func (t *Writer) printf(format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}

// Flush writes buffered lines and returns the first write error.
func (t *Writer) Flush() error {
	if t.err != nil {
		return t.err
	}
	return t.w.Flush()
}

// Count remembers only the status, for runs that print the count alone.
type Count struct {
	n      int
	status string
}

// Emit implements siteswap.Target.
func (c *Count) Emit(string, string, string) { c.n++ }

// SetStatus implements siteswap.Target.
func (c *Count) SetStatus(msg string) { c.status = msg }

// N returns the number of patterns received.
func (c *Count) N() int { return c.n }

// Status returns the last status message.
func (c *Count) Status() string { return c.status }

var (
	_ siteswap.Target = (*Writer)(nil)
	_ siteswap.Target = (*Count)(nil)
)
