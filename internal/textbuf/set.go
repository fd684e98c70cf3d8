package textbuf

import "errors"

// ErrUnknownBuffer indicates a buffer name not present in the set.
var ErrUnknownBuffer = errors.New("textbuf: unknown buffer")

// Set is an ordered collection of named buffers with one active buffer.
// It implements host.BufferList.
type Set struct {
	buffers []*Buffer
	active  int
}

// NewSet creates a buffer set. The first buffer is active.
func NewSet(buffers ...*Buffer) *Set {
	return &Set{buffers: buffers}
}

// Add appends a buffer to the set.
func (s *Set) Add(b *Buffer) {
	s.buffers = append(s.buffers, b)
}

// BufferNames returns the names of all buffers in order.
func (s *Set) BufferNames() []string {
	names := make([]string, len(s.buffers))
	for i, b := range s.buffers {
		names[i] = b.Name()
	}
	return names
}

// ActiveBuffer returns the name of the active buffer, or "" when empty.
func (s *Set) ActiveBuffer() string {
	if s.active < 0 || s.active >= len(s.buffers) {
		return ""
	}
	return s.buffers[s.active].Name()
}

// Active returns the active buffer, or nil when empty.
func (s *Set) Active() *Buffer {
	if s.active < 0 || s.active >= len(s.buffers) {
		return nil
	}
	return s.buffers[s.active]
}

// SwitchTo makes the named buffer active.
func (s *Set) SwitchTo(name string) error {
	for i, b := range s.buffers {
		if b.Name() == name {
			s.active = i
			return nil
		}
	}
	return ErrUnknownBuffer
}
