// Package action defines the action and result types exchanged between the
// host editor and the add-in handlers, plus the registry that routes named
// actions to handlers.
package action

// Source indicates where an action originated.
type Source uint8

const (
	// SourceKeybinding indicates the action came from a key press.
	SourceKeybinding Source = iota
	// SourceMenu indicates the action came from a menu selection.
	SourceMenu
	// SourcePanel indicates the action came from a panel or popup widget.
	SourcePanel
	// SourceScript indicates the action came from a script or macro.
	SourceScript
)

// String returns a string representation of the source.
func (s Source) String() string {
	switch s {
	case SourceKeybinding:
		return "keybinding"
	case SourceMenu:
		return "menu"
	case SourcePanel:
		return "panel"
	case SourceScript:
		return "script"
	default:
		return "unknown"
	}
}

// Args holds arguments for an action.
type Args struct {
	// Text for find/replace and transform operations.
	Text string

	// Replacement for replace operations.
	Replacement string

	// Line is a 1-based target line for navigation actions.
	Line int

	// Extra holds additional key-value pairs for extensibility.
	Extra map[string]any
}

// Get retrieves a value from Extra.
func (a Args) Get(key string) (any, bool) {
	if a.Extra == nil {
		return nil, false
	}
	v, ok := a.Extra[key]
	return v, ok
}

// GetString retrieves a string value from Extra.
func (a Args) GetString(key string) string {
	if v, ok := a.Get(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetInt retrieves an int value from Extra.
func (a Args) GetInt(key string) int {
	if v, ok := a.Get(key); ok {
		switch n := v.(type) {
		case int:
			return n
		case int64:
			return int(n)
		case float64:
			return int(n)
		}
	}
	return 0
}

// GetBool retrieves a bool value from Extra.
func (a Args) GetBool(key string) bool {
	if v, ok := a.Get(key); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

// Action represents a command dispatched by the host to an add-in.
type Action struct {
	// Name is the action identifier (e.g., "codemap.open", "trim.whitespace").
	Name string

	// Args contains action-specific arguments.
	Args Args

	// Source indicates where this action originated.
	Source Source
}

// New creates an action with the given name.
func New(name string) Action {
	return Action{Name: name}
}

// WithText returns a copy of the action with the text argument set.
func (a Action) WithText(text string) Action {
	a.Args.Text = text
	return a
}

// WithLine returns a copy of the action with the line argument set.
func (a Action) WithLine(line int) Action {
	a.Args.Line = line
	return a
}

// WithExtra returns a copy of the action with an extra argument set.
func (a Action) WithExtra(key string, value any) Action {
	extra := make(map[string]any, len(a.Args.Extra)+1)
	for k, v := range a.Args.Extra {
		extra[k] = v
	}
	extra[key] = value
	a.Args.Extra = extra
	return a
}

// Namespace returns the prefix before the first dot of the action name,
// or the whole name if there is no dot.
func (a Action) Namespace() string {
	for i := 0; i < len(a.Name); i++ {
		if a.Name[i] == '.' {
			return a.Name[:i]
		}
	}
	return a.Name
}
