// Package definition provides the go-to-definition add-in: a single-pass scan
// of the buffer for definition sites of the requested identifier (the action's
// text, or the word under the cursor), picking the nearest in-scope site.
package definition

import (
	"regexp"

	"github.com/dshills/textify/internal/action"
	"github.com/dshills/textify/internal/host"
	"github.com/dshills/textify/internal/textbuf"
)

// ActionGoto jumps to the best definition of the word under the cursor.
const ActionGoto = "definition.goto"

// DefKind classifies a definition site.
type DefKind uint8

const (
	// DefFunction is a def statement.
	DefFunction DefKind = iota
	// DefClass is a class statement.
	DefClass
	// DefAssignment is a variable assignment.
	DefAssignment
	// DefImport is an import binding.
	DefImport
	// DefLoopVar is a for-loop target.
	DefLoopVar
	// DefParameter is a function parameter.
	DefParameter
)

// Definition is one candidate definition site.
type Definition struct {
	Line   int // 1-based
	Column int // 0-based
	Kind   DefKind

	// funcLine/funcEnd bound the enclosing function for parameters, so
	// out-of-scope parameters can be discarded.
	funcLine int
	funcEnd  int
}

// Handler implements the definition namespace.
type Handler struct {
	tabWidth int
}

// NewHandler creates a go-to-definition handler.
func NewHandler() *Handler {
	return &Handler{tabWidth: 4}
}

// Register adds the handler's actions to the registry.
func (h *Handler) Register(reg *action.Registry) {
	reg.RegisterNamespace(h, ActionGoto)
}

// Namespace returns the definition namespace.
func (h *Handler) Namespace() string {
	return "definition"
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	return actionName == ActionGoto
}

// HandleAction jumps to the chosen definition.
func (h *Handler) HandleAction(a action.Action, ctx *host.Context) action.Result {
	if err := ctx.Validate(); err != nil {
		return action.Error(err)
	}
	if a.Name != ActionGoto {
		return action.Errorf("unknown definition action: %s", a.Name)
	}

	word := a.Args.Text
	if word == "" {
		word, _, _ = textbuf.WordAt(ctx.Buffer.Line(ctx.Cursor.Line), ctx.Cursor.Column)
	}
	if word == "" || (word[0] >= '0' && word[0] <= '9') {
		return action.NoOpWithMessage("definition: no identifier at cursor")
	}

	defs := Scan(ctx.Buffer.Lines(), word, h.tabWidth)
	if len(defs) == 0 {
		return action.NoOpWithMessage("definition: no definition found for '" + word + "'")
	}

	best := Best(defs, ctx.Cursor.Line)
	if ctx.Navigator == nil {
		return action.Error(host.ErrMissingNavigator)
	}
	if err := ctx.Navigator.JumpToLine(best.Line); err != nil {
		return action.Error(err)
	}
	return action.Success().WithScrollTo(best.Line, best.Column, true)
}

var (
	defPattern    = regexp.MustCompile(`^(\s*)def\s+(\w+)\s*\((.*)$`)
	classPattern  = regexp.MustCompile(`^\s*class\s+(\w+)\s*[\(:]`)
	assignPattern = regexp.MustCompile(`^\s*(\w+)\s*(?:[-+*/]?=)[^=]`)
	importPattern = regexp.MustCompile(`^\s*(?:from\s+[\w.]+\s+)?import\s+(.+)$`)
	forPattern    = regexp.MustCompile(`^\s*for\s+(.+?)\s+in\s`)
	withAsPattern = regexp.MustCompile(`\bas\s+(\w+)`)
	wordPattern   = regexp.MustCompile(`\w+`)
)

// Scan finds every definition site of word in the lines, in source order.
func Scan(lines []string, word string, tabWidth int) []Definition {
	var defs []Definition

	for i, line := range lines {
		num := i + 1

		if m := defPattern.FindStringSubmatch(line); m != nil {
			if m[2] == word {
				defs = append(defs, Definition{
					Line:   num,
					Column: len(m[1]) + len("def "),
					Kind:   DefFunction,
				})
			}
			// Parameters bind inside this function only.
			if col := paramColumn(m[3], word); col >= 0 {
				defs = append(defs, Definition{
					Line:     num,
					Column:   len(line) - len(m[3]) + col,
					Kind:     DefParameter,
					funcLine: num,
					funcEnd:  blockEnd(lines, i, tabWidth),
				})
			}
			continue
		}

		if m := classPattern.FindStringSubmatch(line); m != nil && m[1] == word {
			defs = append(defs, Definition{Line: num, Column: columnOf(line, word), Kind: DefClass})
			continue
		}

		if m := assignPattern.FindStringSubmatch(line); m != nil && m[1] == word {
			defs = append(defs, Definition{Line: num, Column: columnOf(line, word), Kind: DefAssignment})
			continue
		}

		if m := importPattern.FindStringSubmatch(line); m != nil && importsName(m[1], word) {
			defs = append(defs, Definition{Line: num, Column: columnOf(line, word), Kind: DefImport})
			continue
		}

		if m := forPattern.FindStringSubmatch(line); m != nil && targetsName(m[1], word) {
			defs = append(defs, Definition{Line: num, Column: columnOf(line, word), Kind: DefLoopVar})
			continue
		}

		if m := withAsPattern.FindStringSubmatch(line); m != nil && m[1] == word {
			defs = append(defs, Definition{Line: num, Column: columnOf(line, word), Kind: DefLoopVar})
		}
	}

	return defs
}

// Best picks the definition to jump to: sites at or before the cursor line
// win over later ones, parameters must enclose the cursor, and ties go to
// the site nearest the cursor.
func Best(defs []Definition, cursorLine int) Definition {
	var candidates []Definition
	for _, d := range defs {
		if d.Line > cursorLine {
			continue
		}
		if d.Kind == DefParameter && !(d.funcLine <= cursorLine && cursorLine <= d.funcEnd) {
			continue
		}
		candidates = append(candidates, d)
	}
	if len(candidates) == 0 {
		return defs[0]
	}

	best := candidates[0]
	for _, d := range candidates[1:] {
		if abs(cursorLine-d.Line) < abs(cursorLine-best.Line) {
			best = d
		}
	}
	return best
}

// paramColumn returns the byte offset of word within the parameter list
// text, or -1 when word is not a parameter name.
func paramColumn(params, word string) int {
	for _, loc := range wordPattern.FindAllStringIndex(params, -1) {
		name := params[loc[0]:loc[1]]
		if name == word {
			// Default values appear after '='; reject those positions.
			if eq := lastIndexBefore(params, '=', loc[0]); eq >= 0 && noCommaBetween(params, eq, loc[0]) {
				continue
			}
			return loc[0]
		}
	}
	return -1
}

func lastIndexBefore(s string, c byte, before int) int {
	for i := before - 1; i >= 0; i-- {
		if s[i] == c {
			return i
		}
	}
	return -1
}

func noCommaBetween(s string, from, to int) bool {
	for i := from; i < to; i++ {
		if s[i] == ',' {
			return false
		}
	}
	return true
}

// importsName reports whether the import clause binds word, honoring
// "as" aliases.
func importsName(clause, word string) bool {
	for _, part := range splitList(clause) {
		fields := wordPattern.FindAllString(part, -1)
		if len(fields) == 0 {
			continue
		}
		// "name as alias" binds alias; otherwise the first dotted segment.
		if len(fields) >= 3 && fields[len(fields)-2] == "as" {
			if fields[len(fields)-1] == word {
				return true
			}
			continue
		}
		if fields[0] == word {
			return true
		}
	}
	return false
}

// targetsName reports whether a for-loop target list binds word,
// handling tuple unpacking.
func targetsName(targets, word string) bool {
	for _, name := range wordPattern.FindAllString(targets, -1) {
		if name == word {
			return true
		}
	}
	return false
}

func splitList(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == ',' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return append(out, s[start:])
}

// blockEnd returns the 1-based last line of the block opened at 0-based
// index start.
func blockEnd(lines []string, start, tabWidth int) int {
	base := textbuf.ExpandTabs(lines[start], tabWidth)
	for i := start + 1; i < len(lines); i++ {
		line := lines[i]
		trimmed := false
		for _, r := range line {
			if r != ' ' && r != '\t' {
				trimmed = true
				break
			}
		}
		if !trimmed {
			continue
		}
		if textbuf.ExpandTabs(line, tabWidth) <= base {
			return i
		}
	}
	return len(lines)
}

func columnOf(line, word string) int {
	for _, loc := range wordPattern.FindAllStringIndex(line, -1) {
		if line[loc[0]:loc[1]] == word {
			return loc[0]
		}
	}
	return 0
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
