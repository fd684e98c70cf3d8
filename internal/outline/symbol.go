// Package outline builds a navigational symbol outline from a text buffer.
// The builder is a single forward pass over the buffer's lines; nesting is
// inferred from indentation and a small configurable set of definition
// patterns. It is a pure function of its input and cannot fail.
package outline

import "strings"

// Kind classifies a symbol entry.
type Kind uint8

const (
	// KindClass is a class definition.
	KindClass Kind = iota
	// KindFunction is a module-level function definition.
	KindFunction
	// KindMethod is a function nested in a class or function.
	KindMethod
	// KindProperty is an annotated field declaration.
	KindProperty
	// KindVariable is a module-level assignment.
	KindVariable
	// KindConstant is a module-level UPPER_CASE assignment.
	KindConstant
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindFunction:
		return "function"
	case KindMethod:
		return "method"
	case KindProperty:
		return "property"
	case KindVariable:
		return "variable"
	case KindConstant:
		return "constant"
	default:
		return "unknown"
	}
}

// Symbol is one navigable entry in an outline.
type Symbol struct {
	// Name is the symbol's identifier.
	Name string

	// Kind classifies the symbol.
	Kind Kind

	// Line is the 1-based source line of the definition.
	Line int

	// EndLine is the 1-based last line of the symbol's block.
	// Equal to Line for single-line symbols.
	EndLine int

	// Depth is the nesting level, 0 for top-level symbols.
	Depth int

	// Indent is the expanded indentation width of the source line.
	Indent int

	// ValuePreview holds a truncated literal for variables and constants.
	ValuePreview string

	// Children are symbols nested inside this one, in source order.
	Children []*Symbol

	parent *Symbol
}

// Parent returns the enclosing symbol, or nil for top-level symbols.
func (s *Symbol) Parent() *Symbol {
	return s.parent
}

// AddChild appends a child symbol and sets its parent.
func (s *Symbol) AddChild(child *Symbol) {
	child.parent = s
	s.Children = append(s.Children, child)
}

// Path returns the dotted path from the outermost ancestor to this symbol
// (e.g., "Foo.bar").
func (s *Symbol) Path() string {
	var parts []string
	for cur := s; cur != nil; cur = cur.parent {
		parts = append(parts, cur.Name)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ".")
}

// Contains reports whether the 1-based line falls inside the symbol's block.
func (s *Symbol) Contains(line int) bool {
	end := s.EndLine
	if end < s.Line {
		end = s.Line
	}
	return s.Line <= line && line <= end
}

// Outline is an ordered hierarchy of symbols derived from one buffer.
type Outline struct {
	// Symbols are the top-level entries in source order.
	Symbols []*Symbol
}

// IsEmpty returns true when the outline has no entries.
func (o *Outline) IsEmpty() bool {
	return len(o.Symbols) == 0
}

// Len returns the total number of entries, including nested ones.
func (o *Outline) Len() int {
	return len(o.Flatten())
}

// Flatten returns all entries in source order, depth-first.
func (o *Outline) Flatten() []*Symbol {
	var out []*Symbol
	var walk func(syms []*Symbol)
	walk = func(syms []*Symbol) {
		for _, s := range syms {
			out = append(out, s)
			walk(s.Children)
		}
	}
	walk(o.Symbols)
	return out
}

// ActiveAt returns the innermost function or method enclosing the 1-based
// cursor line and the top-level class enclosing it. Either may be nil.
func (o *Outline) ActiveAt(line int) (fn, class *Symbol) {
	for _, s := range o.Flatten() {
		if (s.Kind == KindFunction || s.Kind == KindMethod) && s.Contains(line) {
			fn = s
		}
	}
	for _, s := range o.Symbols {
		if s.Kind == KindClass && s.Contains(line) {
			class = s
			break
		}
	}
	return fn, class
}
