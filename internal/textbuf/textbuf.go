// Package textbuf provides a line-oriented in-memory text buffer that
// implements the host buffer interfaces. The CLI harness and tests use it in
// place of a real editor buffer.
package textbuf

import (
	"strings"

	"github.com/dshills/textify/internal/host"
)

// Buffer is a mutable sequence of lines.
type Buffer struct {
	name  string
	lines []string
}

// New creates a buffer with the given name and content.
// Content is split on newlines; a trailing newline does not produce an extra
// empty line. Empty content yields a single empty line.
func New(name, content string) *Buffer {
	content = strings.TrimSuffix(content, "\n")
	return &Buffer{
		name:  name,
		lines: strings.Split(content, "\n"),
	}
}

// FromLines creates a buffer from a line slice. The slice is copied.
func FromLines(name string, lines []string) *Buffer {
	if len(lines) == 0 {
		lines = []string{""}
	}
	copied := make([]string, len(lines))
	copy(copied, lines)
	return &Buffer{name: name, lines: copied}
}

// Name returns the buffer's display name.
func (b *Buffer) Name() string {
	return b.name
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Line returns the 1-based line's text, or "" when out of range.
func (b *Buffer) Line(n int) string {
	if n < 1 || n > len(b.lines) {
		return ""
	}
	return b.lines[n-1]
}

// Lines returns a copy of all lines in order.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// Text returns the full content joined with newlines.
func (b *Buffer) Text() string {
	return strings.Join(b.lines, "\n")
}

// SetLine replaces the 1-based line's text.
func (b *Buffer) SetLine(n int, text string) error {
	if n < 1 || n > len(b.lines) {
		return host.ErrLineOutOfRange
	}
	b.lines[n-1] = text
	return nil
}

// SetLines replaces the entire buffer content.
func (b *Buffer) SetLines(lines []string) {
	if len(lines) == 0 {
		lines = []string{""}
	}
	b.lines = make([]string, len(lines))
	copy(b.lines, lines)
}

var _ host.BufferEditor = (*Buffer)(nil)
