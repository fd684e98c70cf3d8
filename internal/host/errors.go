package host

import "errors"

// Sentinel errors for context validation.
var (
	// ErrMissingBuffer indicates no buffer is attached to the context.
	ErrMissingBuffer = errors.New("host: no active buffer")

	// ErrMissingNavigator indicates no navigator is available.
	ErrMissingNavigator = errors.New("host: no navigator available")

	// ErrReadOnly indicates the buffer cannot be edited.
	ErrReadOnly = errors.New("host: buffer is read-only")

	// ErrLineOutOfRange indicates a line number outside the buffer.
	ErrLineOutOfRange = errors.New("host: line out of range")
)
