// Package occurrences provides the occurrence-highlighting add-in: it
// computes the match ranges of the selected word so the host can draw
// highlight rectangles. Drawing itself is a host concern.
package occurrences

import (
	"regexp"

	"github.com/dshills/textify/internal/action"
	"github.com/dshills/textify/internal/host"
	"github.com/dshills/textify/internal/textbuf"
)

// ActionFind computes highlight ranges for the selection or cursor word.
const ActionFind = "occurrences.find"

// DataRanges is the result data key holding []Range.
const DataRanges = "ranges"

// MaxMatches bounds the number of reported ranges to keep redraw work
// proportional to the viewport rather than the buffer.
const MaxMatches = 1000

// MinLength is the shortest term worth highlighting.
const MinLength = 2

// Range is one highlight span on a single line.
type Range struct {
	Line  int // 1-based
	Start int // 0-based byte column, inclusive
	End   int // 0-based byte column, exclusive
}

// Options control matching.
type Options struct {
	// CaseSensitive enables exact-case comparison.
	CaseSensitive bool
	// WholeWord restricts matches to word boundaries.
	WholeWord bool
}

// Handler implements the occurrences namespace.
type Handler struct {
	opts Options
}

// NewHandler creates an occurrence handler.
func NewHandler(opts Options) *Handler {
	return &Handler{opts: opts}
}

// Register adds the handler's actions to the registry.
func (h *Handler) Register(reg *action.Registry) {
	reg.RegisterNamespace(h, ActionFind)
}

// Namespace returns the occurrences namespace.
func (h *Handler) Namespace() string {
	return "occurrences"
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	return actionName == ActionFind
}

// HandleAction computes the match ranges of the highlight term: the
// action's Text when set, otherwise the single-line selection when present,
// otherwise the word under the cursor. Terms shorter than MinLength produce
// no ranges.
func (h *Handler) HandleAction(a action.Action, ctx *host.Context) action.Result {
	if err := ctx.Validate(); err != nil {
		return action.Error(err)
	}
	if a.Name != ActionFind {
		return action.Errorf("unknown occurrences action: %s", a.Name)
	}

	term := a.Args.Text
	if term == "" {
		term = h.term(ctx)
	}
	if len(term) < MinLength {
		return action.NoOp().WithData(DataRanges, []Range(nil))
	}

	ranges := Find(ctx.Buffer, term, h.opts)
	return action.Success().WithData(DataRanges, ranges).WithRedraw()
}

// term resolves the text to highlight.
func (h *Handler) term(ctx *host.Context) string {
	if ctx.HasSelection() {
		sel := ctx.Selection.Normalized()
		if !sel.SingleLine() {
			return ""
		}
		line := ctx.Buffer.Line(sel.StartLine)
		if sel.StartColumn < 0 || sel.EndColumn > len(line) {
			return ""
		}
		return line[sel.StartColumn:sel.EndColumn]
	}

	word, _, _ := textbuf.WordAt(ctx.Buffer.Line(ctx.Cursor.Line), ctx.Cursor.Column)
	return word
}

// Find returns every match range of the term in the buffer, capped at
// MaxMatches.
func Find(buf host.BufferReader, term string, opts Options) []Range {
	pattern := regexp.QuoteMeta(term)
	if opts.WholeWord {
		pattern = `\b` + pattern + `\b`
	}
	if !opts.CaseSensitive {
		pattern = `(?i)` + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil
	}

	var out []Range
	for n := 1; n <= buf.LineCount(); n++ {
		for _, loc := range re.FindAllStringIndex(buf.Line(n), -1) {
			out = append(out, Range{Line: n, Start: loc[0], End: loc[1]})
			if len(out) >= MaxMatches {
				return out
			}
		}
	}
	return out
}
