package outline

import "strings"

// FilterOptions controls which entries a filtered outline keeps.
type FilterOptions struct {
	ShowClasses    bool
	ShowFunctions  bool
	ShowMethods    bool
	ShowProperties bool
	ShowVariables  bool
	ShowConstants  bool

	// Search keeps entries whose name contains the term, case-insensitive.
	// Entries with matching descendants are kept as context.
	Search string
}

// AllVisible returns filter options with every kind enabled and no search.
func AllVisible() FilterOptions {
	return FilterOptions{
		ShowClasses:    true,
		ShowFunctions:  true,
		ShowMethods:    true,
		ShowProperties: true,
		ShowVariables:  true,
		ShowConstants:  true,
	}
}

func (f FilterOptions) visible(s *Symbol) bool {
	switch s.Kind {
	case KindClass:
		return f.ShowClasses
	case KindFunction:
		return f.ShowFunctions
	case KindMethod:
		return f.ShowMethods
	case KindProperty:
		return f.ShowProperties
	case KindVariable:
		return f.ShowVariables
	case KindConstant:
		return f.ShowConstants
	default:
		return true
	}
}

// Filter returns a new outline containing the entries the options keep.
// The input outline is not modified; kept symbols are copied.
func Filter(o *Outline, opts FilterOptions) *Outline {
	search := strings.ToLower(opts.Search)
	return &Outline{Symbols: filterSymbols(o.Symbols, opts, search, nil)}
}

func filterSymbols(symbols []*Symbol, opts FilterOptions, search string, parent *Symbol) []*Symbol {
	var out []*Symbol
	for _, s := range symbols {
		if !opts.visible(s) {
			continue
		}
		if search != "" && !matchesSearch(s, search) {
			continue
		}
		kept := &Symbol{
			Name:         s.Name,
			Kind:         s.Kind,
			Line:         s.Line,
			EndLine:      s.EndLine,
			Depth:        s.Depth,
			Indent:       s.Indent,
			ValuePreview: s.ValuePreview,
			parent:       parent,
		}
		kept.Children = filterSymbols(s.Children, opts, search, kept)
		out = append(out, kept)
	}
	return out
}

// matchesSearch reports whether the symbol or any descendant matches.
func matchesSearch(s *Symbol, search string) bool {
	if strings.Contains(strings.ToLower(s.Name), search) {
		return true
	}
	for _, child := range s.Children {
		if matchesSearch(child, search) {
			return true
		}
	}
	return false
}
