// Package host defines the boundary between the add-ins and the host editor.
// The host owns the text buffer, keybindings, and all UI surfaces; add-ins see
// it only through the narrow interfaces declared here.
package host

// BufferReader provides read-only access to the active text buffer.
type BufferReader interface {
	// Name returns the buffer's display name (usually the file name).
	Name() string

	// LineCount returns the number of lines in the buffer.
	LineCount() int

	// Line returns the 1-based line's text without a trailing newline.
	// Out-of-range lines return the empty string.
	Line(n int) string

	// Lines returns all lines in order.
	Lines() []string

	// Text returns the full buffer content joined with newlines.
	Text() string
}

// BufferEditor extends BufferReader with line mutation.
type BufferEditor interface {
	BufferReader

	// SetLine replaces the 1-based line's text.
	SetLine(n int, text string) error

	// SetLines replaces the entire buffer content.
	SetLines(lines []string)
}

// Navigator moves the host cursor and view.
type Navigator interface {
	// JumpToLine moves the cursor to the start of the 1-based line.
	JumpToLine(n int) error

	// Select sets the selection between two positions
	// (1-based lines, 0-based columns).
	Select(startLine, startCol, endLine, endCol int) error
}

// Clipboard provides access to the host clipboard.
type Clipboard interface {
	// Copy places text on the clipboard.
	Copy(text string) error
}

// BufferList enumerates the host's open buffers for cycling.
type BufferList interface {
	// BufferNames returns the names of all open buffers in host order.
	BufferNames() []string

	// ActiveBuffer returns the name of the active buffer.
	ActiveBuffer() string

	// SwitchTo makes the named buffer active.
	SwitchTo(name string) error
}
