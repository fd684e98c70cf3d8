package outline

import (
	"regexp"
	"strings"

	"github.com/dshills/textify/internal/textbuf"
)

// MaxPreviewLength bounds value previews for variables and constants.
const MaxPreviewLength = 50

// PatternSet holds the definition-recognition patterns for one language.
// Each pattern must capture the symbol name in group 1; an empty pattern
// disables that symbol kind.
type PatternSet struct {
	// Class matches class-style definitions.
	Class string
	// Function matches function/method definitions.
	Function string
	// Property matches annotated field declarations.
	Property string
	// Constant matches module-level UPPER_CASE assignments.
	Constant string
	// Variable matches module-level assignments.
	Variable string
	// Comment is the line-comment prefix; such lines are skipped.
	Comment string
}

// DefaultPatterns returns the recognition patterns for Python-style source,
// matching the host editor's primary scripting language.
func DefaultPatterns() PatternSet {
	return PatternSet{
		Class:    `^class\s+(\w+)\s*[\(:]`,
		Function: `^def\s+(\w+)\s*\(`,
		Property: `^([\w]+)\s*:\s*[\w\[\]]+`,
		Constant: `^([A-Z_][A-Z0-9_]*)\s*=`,
		Variable: `^([a-zA-Z_]\w*)\s*=\s*`,
		Comment:  "#",
	}
}

// Builder scans buffer lines into an Outline.
type Builder struct {
	class    *regexp.Regexp
	function *regexp.Regexp
	property *regexp.Regexp
	constant *regexp.Regexp
	variable *regexp.Regexp
	comment  string
	tabWidth int
}

// Option configures a Builder.
type Option func(*Builder)

// WithTabWidth sets the tab expansion width used for indentation depth.
func WithTabWidth(w int) Option {
	return func(b *Builder) {
		if w > 0 {
			b.tabWidth = w
		}
	}
}

// NewBuilder creates a builder from a pattern set.
// Invalid or empty patterns disable the corresponding symbol kind rather
// than failing; the builder itself never errors.
func NewBuilder(patterns PatternSet, opts ...Option) *Builder {
	b := &Builder{
		class:    compileOrNil(patterns.Class),
		function: compileOrNil(patterns.Function),
		property: compileOrNil(patterns.Property),
		constant: compileOrNil(patterns.Constant),
		variable: compileOrNil(patterns.Variable),
		comment:  patterns.Comment,
		tabWidth: 4,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func compileOrNil(pattern string) *regexp.Regexp {
	if pattern == "" {
		return nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil
	}
	return re
}

// Build scans the lines once and produces an Outline.
// Lines are 1-based in the result; an empty input yields an empty outline.
func (b *Builder) Build(lines []string) *Outline {
	o := &Outline{}
	var stack []*Symbol

	for i, line := range lines {
		stripped := strings.TrimSpace(line)
		if stripped == "" || (b.comment != "" && strings.HasPrefix(stripped, b.comment)) {
			continue
		}

		indent := textbuf.ExpandTabs(line, b.tabWidth)
		for len(stack) > 0 && stack[len(stack)-1].Indent >= indent {
			stack = stack[:len(stack)-1]
		}

		var parent *Symbol
		if len(stack) > 0 {
			parent = stack[len(stack)-1]
		}

		sym := b.parseLine(stripped, i+1, indent, parent)
		if sym == nil {
			continue
		}
		sym.Depth = len(stack)

		if parent != nil {
			parent.AddChild(sym)
		} else {
			o.Symbols = append(o.Symbols, sym)
		}

		switch sym.Kind {
		case KindClass, KindFunction, KindMethod:
			stack = append(stack, sym)
		}
	}

	resolveEndLines(o.Symbols, lines, b.tabWidth)
	return o
}

// parseLine tests the stripped line against the recognition patterns.
// Unrecognized or malformed lines yield nil.
func (b *Builder) parseLine(stripped string, lineNum, indent int, parent *Symbol) *Symbol {
	if m := match(b.class, stripped); m != "" {
		return &Symbol{Name: m, Kind: KindClass, Line: lineNum, Indent: indent}
	}

	if m := match(b.function, stripped); m != "" {
		kind := KindFunction
		if parent != nil && (parent.Kind == KindClass || parent.Kind == KindFunction || parent.Kind == KindMethod) {
			kind = KindMethod
		}
		return &Symbol{Name: m, Kind: kind, Line: lineNum, Indent: indent}
	}

	if m := match(b.property, stripped); m != "" && !strings.Contains(stripped, "=") {
		return &Symbol{Name: m, Kind: KindProperty, Line: lineNum, Indent: indent}
	}

	// Assignments only count at module level.
	if parent == nil {
		if m := match(b.constant, stripped); m != "" && m == strings.ToUpper(m) {
			return assignmentSymbol(m, KindConstant, lineNum, indent, stripped)
		}
		if m := match(b.variable, stripped); m != "" && m != strings.ToUpper(m) {
			return assignmentSymbol(m, KindVariable, lineNum, indent, stripped)
		}
	}

	return nil
}

func match(re *regexp.Regexp, s string) string {
	if re == nil {
		return ""
	}
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

func assignmentSymbol(name string, kind Kind, lineNum, indent int, stripped string) *Symbol {
	sym := &Symbol{Name: name, Kind: kind, Line: lineNum, EndLine: lineNum, Indent: indent}
	if _, value, ok := strings.Cut(stripped, "="); ok {
		sym.ValuePreview = previewValue(strings.TrimSpace(value))
	}
	return sym
}

func previewValue(value string) string {
	runes := []rune(value)
	if len(runes) <= MaxPreviewLength {
		return value
	}
	return string(runes[:MaxPreviewLength]) + "..."
}

// resolveEndLines fills in block end lines: the line before the next line at
// or below the symbol's indentation, or the last buffer line.
func resolveEndLines(symbols []*Symbol, lines []string, tabWidth int) {
	for _, sym := range symbols {
		if sym.EndLine == 0 {
			sym.EndLine = guessEndLine(sym, lines, tabWidth)
		}
		resolveEndLines(sym.Children, lines, tabWidth)
	}
}

func guessEndLine(sym *Symbol, lines []string, tabWidth int) int {
	start := sym.Line - 1
	if start >= len(lines) {
		return sym.Line
	}
	base := textbuf.ExpandTabs(lines[start], tabWidth)
	for i := start + 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}
		if textbuf.ExpandTabs(lines[i], tabWidth) <= base {
			return i
		}
	}
	return len(lines)
}
