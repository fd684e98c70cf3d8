package host

// Cursor is the host cursor position: 1-based line, 0-based column.
type Cursor struct {
	Line   int
	Column int
}

// Selection is the host selection between the cursor and an anchor.
// A zero-width selection (Start == End) means no selection.
type Selection struct {
	StartLine   int // 1-based
	StartColumn int // 0-based
	EndLine     int // 1-based
	EndColumn   int // 0-based
}

// IsEmpty returns true if the selection has zero width.
func (s Selection) IsEmpty() bool {
	return s.StartLine == s.EndLine && s.StartColumn == s.EndColumn
}

// SingleLine returns true if the selection lies on one line.
func (s Selection) SingleLine() bool {
	return s.StartLine == s.EndLine
}

// Normalized returns the selection ordered start-before-end.
func (s Selection) Normalized() Selection {
	if s.EndLine < s.StartLine ||
		(s.EndLine == s.StartLine && s.EndColumn < s.StartColumn) {
		return Selection{
			StartLine:   s.EndLine,
			StartColumn: s.EndColumn,
			EndLine:     s.StartLine,
			EndColumn:   s.StartColumn,
		}
	}
	return s
}

// Context carries everything a handler needs for one action invocation.
// The host constructs one per UI event; handlers never retain it.
type Context struct {
	// Buffer is the active text buffer. Read-only tools should treat it as a
	// BufferReader even though edits are reachable.
	Buffer BufferEditor

	// Cursor is the current cursor position.
	Cursor Cursor

	// Selection is the current selection, if any.
	Selection Selection

	// Navigator moves the cursor and view. May be nil for headless hosts.
	Navigator Navigator

	// Clipboard is the host clipboard. May be nil.
	Clipboard Clipboard

	// Buffers enumerates open buffers. May be nil.
	Buffers BufferList

	// ReadOnly indicates the buffer cannot be edited.
	ReadOnly bool

	// Data holds tool state that survives across invocations for the life of
	// the host session (the host owns the map).
	Data map[string]any
}

// NewContext creates a context for the given buffer.
func NewContext(buf BufferEditor) *Context {
	return &Context{
		Buffer: buf,
		Cursor: Cursor{Line: 1},
		Data:   make(map[string]any),
	}
}

// HasSelection returns true if there is an active selection.
func (c *Context) HasSelection() bool {
	return !c.Selection.IsEmpty()
}

// SetData stores a value in the session data.
func (c *Context) SetData(key string, value any) {
	if c.Data == nil {
		c.Data = make(map[string]any)
	}
	c.Data[key] = value
}

// GetData retrieves a value from the session data.
func (c *Context) GetData(key string) (any, bool) {
	if c.Data == nil {
		return nil, false
	}
	v, ok := c.Data[key]
	return v, ok
}

// Validate checks that the context has a buffer attached.
func (c *Context) Validate() error {
	if c.Buffer == nil {
		return ErrMissingBuffer
	}
	return nil
}

// ValidateForEdit checks that the context is valid for editing operations.
func (c *Context) ValidateForEdit() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.ReadOnly {
		return ErrReadOnly
	}
	return nil
}
