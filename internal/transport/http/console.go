package http

//go:generate $MOCKGEN -source=console.go -destination=mocks/console_mock.go

import (
	"io"
	"sync"
)

// Console is the output sink for printed requests and responses.
// Each Print call must be written as one block.
type Console interface {
	// Print writes text followed by a newline.
	Print(text string) error
}

// WriterConsole is a Console writing to an io.Writer.
// Concurrent Print calls never interleave within a block.
type WriterConsole struct {
	// mu serializes writes.
	mu sync.Mutex
	// w is the destination writer.
	w io.Writer
}

// NewConsole creates and returns a Console writing to w.
func NewConsole(w io.Writer) Console {
	return &WriterConsole{w: w}
}

// Print writes text and a trailing newline in a single Write call.
func (c *WriterConsole) Print(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := io.WriteString(c.w, text+"\n")

	return err
}
