// Package findreplace provides the find & replace add-in: wrap-around literal
// search over the buffer with match-case and whole-word options, occurrence
// counting, and single or buffer-wide replacement.
package findreplace

import (
	"fmt"
	"regexp"

	"github.com/dshills/textify/internal/action"
	"github.com/dshills/textify/internal/host"
	"github.com/dshills/textify/internal/textbuf"
)

// Action names for find/replace operations.
const (
	ActionFindNext         = "find.next"
	ActionFindPrevious     = "find.previous"
	ActionCount            = "find.count"
	ActionReplace          = "find.replace"
	ActionReplaceAll       = "find.replaceAll"
	ActionSetFromSelection = "find.setFromSelection"
)

// Result data keys.
const (
	DataTotal   = "total"   // total occurrences in the buffer
	DataCurrent = "current" // occurrences at or before the cursor
	DataFind    = "find"    // the stored search term
)

const stateKey = "_find_state"

// Options control how matches are located.
type Options struct {
	// MatchCase enables case-sensitive comparison.
	MatchCase bool
	// WholeWord restricts matches to word boundaries.
	WholeWord bool
	// Wrap continues the search from the opposite end of the buffer.
	Wrap bool
}

// Match is one located occurrence.
type Match struct {
	Line   int // 1-based
	Column int // 0-based byte column
	Length int
}

// state holds the sticky find/replace terms between invocations.
type state struct {
	find    string
	replace string
	opts    Options
}

// Handler implements the find namespace.
type Handler struct{}

// NewHandler creates a find/replace handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Register adds the handler's actions to the registry.
func (h *Handler) Register(reg *action.Registry) {
	reg.RegisterNamespace(h,
		ActionFindNext, ActionFindPrevious, ActionCount,
		ActionReplace, ActionReplaceAll, ActionSetFromSelection)
}

// Namespace returns the find namespace.
func (h *Handler) Namespace() string {
	return "find"
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionFindNext, ActionFindPrevious, ActionCount,
		ActionReplace, ActionReplaceAll, ActionSetFromSelection:
		return true
	}
	return false
}

// HandleAction processes a find action.
func (h *Handler) HandleAction(a action.Action, ctx *host.Context) action.Result {
	if err := ctx.Validate(); err != nil {
		return action.Error(err)
	}

	switch a.Name {
	case ActionFindNext:
		return h.find(a, ctx, true)
	case ActionFindPrevious:
		return h.find(a, ctx, false)
	case ActionCount:
		return h.count(a, ctx)
	case ActionReplace:
		return h.replace(a, ctx)
	case ActionReplaceAll:
		return h.replaceAll(a, ctx)
	case ActionSetFromSelection:
		return h.setFromSelection(ctx)
	default:
		return action.Errorf("unknown find action: %s", a.Name)
	}
}

// find locates the next or previous occurrence relative to the cursor,
// selects it, and centers the view on it.
func (h *Handler) find(a action.Action, ctx *host.Context, forward bool) action.Result {
	st := h.state(ctx)
	term := a.Args.Text
	if term == "" {
		term = st.find
	}
	if term == "" {
		return action.NoOpWithMessage("find: no search text specified")
	}
	st.find = term
	applyOptionArgs(&st.opts, a.Args)

	m, wrapped := locate(ctx, term, st.opts, forward)
	if m == nil {
		return action.NoOpWithMessage("find: text not found: " + term)
	}

	if ctx.Navigator != nil {
		if err := ctx.Navigator.Select(m.Line, m.Column, m.Line, m.Column+m.Length); err != nil {
			return action.Error(err)
		}
	}

	msg := "find: " + term
	if wrapped {
		msg += " (wrapped)"
	}
	return action.SuccessWithMessage(msg).WithScrollTo(m.Line, m.Column, true)
}

// count reports total occurrences and how many lie at or before the cursor.
func (h *Handler) count(a action.Action, ctx *host.Context) action.Result {
	st := h.state(ctx)
	term := a.Args.Text
	if term == "" {
		term = st.find
	}
	if term == "" {
		return action.NoOpWithMessage("find: no search text specified")
	}
	applyOptionArgs(&st.opts, a.Args)

	total, current := countOccurrences(ctx, term, st.opts)
	msg := "no matches found"
	if total > 0 {
		msg = fmt.Sprintf("%d of %d", current, total)
	}
	return action.SuccessWithMessage(msg).
		WithData(DataTotal, total).
		WithData(DataCurrent, current)
}

// replace substitutes the match under the cursor (or the next one) once.
func (h *Handler) replace(a action.Action, ctx *host.Context) action.Result {
	if err := ctx.ValidateForEdit(); err != nil {
		return action.Error(err)
	}

	st := h.state(ctx)
	term, repl := h.terms(a, st)
	if term == "" {
		return action.NoOpWithMessage("replace: no search text specified")
	}
	applyOptionArgs(&st.opts, a.Args)

	m, _ := locate(ctx, term, st.opts, true)
	if m == nil {
		return action.NoOpWithMessage("replace: text not found: " + term)
	}

	line := ctx.Buffer.Line(m.Line)
	updated := line[:m.Column] + repl + line[m.Column+m.Length:]
	if err := ctx.Buffer.SetLine(m.Line, updated); err != nil {
		return action.Error(err)
	}

	return action.Success().
		WithEdit(action.Edit{Line: m.Line, NewText: updated, OldText: line}).
		WithScrollTo(m.Line, m.Column, true).
		WithMessage("replaced 1 occurrence")
}

// replaceAll substitutes every occurrence in the buffer.
func (h *Handler) replaceAll(a action.Action, ctx *host.Context) action.Result {
	if err := ctx.ValidateForEdit(); err != nil {
		return action.Error(err)
	}

	st := h.state(ctx)
	term, repl := h.terms(a, st)
	if term == "" {
		return action.NoOpWithMessage("replace: no search text specified")
	}
	applyOptionArgs(&st.opts, a.Args)

	re := compileTerm(term, st.opts)
	replaced := 0
	res := action.Success()

	for n := 1; n <= ctx.Buffer.LineCount(); n++ {
		line := ctx.Buffer.Line(n)
		count := len(re.FindAllStringIndex(line, -1))
		if count == 0 {
			continue
		}
		updated := re.ReplaceAllLiteralString(line, repl)
		if err := ctx.Buffer.SetLine(n, updated); err != nil {
			return action.Error(err)
		}
		replaced += count
		res = res.WithEdit(action.Edit{Line: n, NewText: updated, OldText: line})
	}

	if replaced == 0 {
		return action.NoOpWithMessage("replace: no matches found")
	}
	return res.WithRedraw().
		WithMessage(fmt.Sprintf("replaced %d occurrence(s)", replaced))
}

// setFromSelection seeds the find and replace terms from the current
// single-line selection.
func (h *Handler) setFromSelection(ctx *host.Context) action.Result {
	sel := ctx.Selection.Normalized()
	if sel.IsEmpty() || !sel.SingleLine() {
		return action.NoOpWithMessage("find: no single-line selection")
	}

	line := ctx.Buffer.Line(sel.StartLine)
	start, end := sel.StartColumn, sel.EndColumn
	if start < 0 || end > len(line) || start >= end {
		return action.NoOpWithMessage("find: selection out of range")
	}

	selected := line[start:end]
	st := h.state(ctx)
	st.find = selected
	st.replace = selected
	return action.SuccessWithMessage("find: " + selected).
		WithData(DataFind, selected)
}

func (h *Handler) terms(a action.Action, st *state) (term, repl string) {
	term = a.Args.Text
	if term == "" {
		term = st.find
	} else {
		st.find = term
	}
	repl = a.Args.Replacement
	if repl == "" {
		repl = st.replace
	} else {
		st.replace = repl
	}
	return term, repl
}

func (h *Handler) state(ctx *host.Context) *state {
	if v, ok := ctx.GetData(stateKey); ok {
		if st, ok := v.(*state); ok {
			return st
		}
	}
	st := &state{opts: Options{Wrap: true}}
	ctx.SetData(stateKey, st)
	return st
}

func applyOptionArgs(opts *Options, args action.Args) {
	if v, ok := args.Get("matchCase"); ok {
		if b, isBool := v.(bool); isBool {
			opts.MatchCase = b
		}
	}
	if v, ok := args.Get("wholeWord"); ok {
		if b, isBool := v.(bool); isBool {
			opts.WholeWord = b
		}
	}
	if v, ok := args.Get("wrap"); ok {
		if b, isBool := v.(bool); isBool {
			opts.Wrap = b
		}
	}
}

// compileTerm builds a literal-text regexp honoring the options.
// The term is always quoted; regexp is only used for word boundaries and
// case folding.
func compileTerm(term string, opts Options) *regexp.Regexp {
	pattern := regexp.QuoteMeta(term)
	if opts.WholeWord {
		pattern = `\b` + pattern + `\b`
	}
	if !opts.MatchCase {
		pattern = `(?i)` + pattern
	}
	return regexp.MustCompile(pattern)
}

// locate finds the nearest match in the given direction, starting after (or
// before) the cursor, wrapping when enabled. The second return value reports
// whether the search wrapped.
func locate(ctx *host.Context, term string, opts Options, forward bool) (*Match, bool) {
	re := compileTerm(term, opts)
	matches := allMatches(ctx.Buffer, re)
	if len(matches) == 0 {
		return nil, false
	}

	curLine, curCol := ctx.Cursor.Line, ctx.Cursor.Column

	if forward {
		for i := range matches {
			m := &matches[i]
			if m.Line > curLine || (m.Line == curLine && m.Column > curCol) {
				return m, false
			}
		}
		if opts.Wrap {
			return &matches[0], true
		}
		return nil, false
	}

	for i := len(matches) - 1; i >= 0; i-- {
		m := &matches[i]
		if m.Line < curLine || (m.Line == curLine && m.Column+m.Length < curCol) {
			return m, false
		}
	}
	if opts.Wrap {
		return &matches[len(matches)-1], true
	}
	return nil, false
}

// countOccurrences mirrors the popup's "N of M" readout: total matches and
// matches at or before the cursor.
func countOccurrences(ctx *host.Context, term string, opts Options) (total, current int) {
	re := compileTerm(term, opts)
	for _, m := range allMatches(ctx.Buffer, re) {
		total++
		if m.Line < ctx.Cursor.Line ||
			(m.Line == ctx.Cursor.Line && m.Column+m.Length <= ctx.Cursor.Column) {
			current++
		}
	}
	return total, current
}

func allMatches(buf host.BufferReader, re *regexp.Regexp) []Match {
	var out []Match
	for n := 1; n <= buf.LineCount(); n++ {
		line := buf.Line(n)
		for _, loc := range re.FindAllStringIndex(line, -1) {
			out = append(out, Match{Line: n, Column: loc[0], Length: loc[1] - loc[0]})
		}
	}
	return out
}

// WordUnderCursor returns the identifier at the cursor, or "".
func WordUnderCursor(ctx *host.Context) string {
	line := ctx.Buffer.Line(ctx.Cursor.Line)
	word, _, _ := textbuf.WordAt(line, ctx.Cursor.Column)
	if !isIdentifier(word) {
		return ""
	}
	return word
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	if s[0] >= '0' && s[0] <= '9' {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !textbuf.IsWordChar(rune(s[i])) {
			return false
		}
	}
	return true
}
