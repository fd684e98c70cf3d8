// Package count provides the character/line counter add-in that feeds the
// host's footer status segment.
package count

import (
	"fmt"

	"github.com/dshills/textify/internal/action"
	"github.com/dshills/textify/internal/host"
)

// ActionStatus produces the footer text for the active buffer.
const ActionStatus = "count.status"

// Result data keys.
const (
	DataTotal    = "total"    // total characters in the buffer
	DataSelected = "selected" // characters in the selection, 0 when none
	DataLines    = "lines"    // line count
)

// Handler implements the count namespace.
type Handler struct{}

// NewHandler creates a counter handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Register adds the handler's actions to the registry.
func (h *Handler) Register(reg *action.Registry) {
	reg.RegisterNamespace(h, ActionStatus)
}

// Namespace returns the count namespace.
func (h *Handler) Namespace() string {
	return "count"
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	return actionName == ActionStatus
}

// HandleAction produces the status text: cursor position plus either the
// buffer's total character count or "selected of total" when a selection is
// active. Newlines are not counted, matching per-line buffer storage.
func (h *Handler) HandleAction(a action.Action, ctx *host.Context) action.Result {
	if err := ctx.Validate(); err != nil {
		return action.Error(err)
	}
	if a.Name != ActionStatus {
		return action.Errorf("unknown count action: %s", a.Name)
	}

	total := 0
	for _, line := range ctx.Buffer.Lines() {
		total += len([]rune(line))
	}

	pos := fmt.Sprintf("Ln %d, Col %d", ctx.Cursor.Line, ctx.Cursor.Column+1)

	selected := 0
	if ctx.HasSelection() {
		selected = selectionCount(ctx)
	}

	var msg string
	if selected > 0 {
		msg = fmt.Sprintf("%s | %d of %d characters", pos, selected, total)
	} else {
		msg = fmt.Sprintf("%s | %d characters", pos, total)
	}

	return action.SuccessWithMessage(msg).
		WithData(DataTotal, total).
		WithData(DataSelected, selected).
		WithData(DataLines, ctx.Buffer.LineCount())
}

// selectionCount sums the characters covered by the selection: the tail of
// the first line, every full line between, and the head of the last line.
func selectionCount(ctx *host.Context) int {
	sel := ctx.Selection.Normalized()

	if sel.StartLine == sel.EndLine {
		return runeSpan(ctx.Buffer.Line(sel.StartLine), sel.StartColumn, sel.EndColumn)
	}

	first := []rune(ctx.Buffer.Line(sel.StartLine))
	start := clamp(sel.StartColumn, 0, len(first))
	count := len(first) - start

	for n := sel.StartLine + 1; n < sel.EndLine; n++ {
		count += len([]rune(ctx.Buffer.Line(n)))
	}

	last := []rune(ctx.Buffer.Line(sel.EndLine))
	count += clamp(sel.EndColumn, 0, len(last))
	return count
}

func runeSpan(line string, start, end int) int {
	runes := []rune(line)
	start = clamp(start, 0, len(runes))
	end = clamp(end, 0, len(runes))
	if end < start {
		start, end = end, start
	}
	return end - start
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
