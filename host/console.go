package host

import (
	"io"
	"strings"
	"sync"
	"unicode/utf8"
)

// ConsoleSink draws the reading as a single status line, rewriting it in
// place with a carriage return.
type ConsoleSink struct {
	w     io.Writer
	mu    sync.Mutex
	width int
}

func NewConsoleSink(w io.Writer) *ConsoleSink {
	return &ConsoleSink{w: w}
}

func (c *ConsoleSink) Publish(r Reading) {
	c.mu.Lock()
	defer c.mu.Unlock()

	text := r.Text
	if !r.Visible {
		text = ""
	}
	n := utf8.RuneCountInString(text)
	pad := ""
	if n < c.width {
		pad = strings.Repeat(" ", c.width-n)
	}
	c.width = n

	// best effort
	_, _ = io.WriteString(c.w, "\r"+text+pad)
}
