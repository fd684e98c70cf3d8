// Package caseconv provides the case conversion add-in: rewrite the selected
// text (or the word under the cursor) in a chosen case style.
package caseconv

import (
	"regexp"
	"strings"

	"github.com/dshills/textify/internal/action"
	"github.com/dshills/textify/internal/host"
	"github.com/dshills/textify/internal/textbuf"
)

// ActionConvert rewrites the selection in the case style named by the
// "style" extra argument.
const ActionConvert = "case.convert"

// Style names accepted by ActionConvert.
const (
	StyleUpper      = "upper"
	StyleLower      = "lower"
	StyleTitle      = "title"
	StyleCapitalize = "capitalize"
	StyleSnake      = "snake"
	StyleCamel      = "camel"
)

var (
	snakeSeparators = regexp.MustCompile(`[\s\-]+`)
	snakeBoundary   = regexp.MustCompile(`([a-z0-9])([A-Z])`)
	camelSplitter   = regexp.MustCompile(`[\s\-_]+`)
	wordSplitter    = regexp.MustCompile(`\S+`)
)

// Handler implements the case namespace.
type Handler struct{}

// NewHandler creates a case conversion handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Register adds the handler's actions to the registry.
func (h *Handler) Register(reg *action.Registry) {
	reg.RegisterNamespace(h, ActionConvert)
}

// Namespace returns the case namespace.
func (h *Handler) Namespace() string {
	return "case"
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	return actionName == ActionConvert
}

// HandleAction converts the selection. When the selection is empty, the word
// under the cursor is converted instead. Multi-line selections are rejected.
func (h *Handler) HandleAction(a action.Action, ctx *host.Context) action.Result {
	if err := ctx.ValidateForEdit(); err != nil {
		return action.Error(err)
	}
	if a.Name != ActionConvert {
		return action.Errorf("unknown case action: %s", a.Name)
	}

	style := a.Args.GetString("style")
	if style == "" {
		return action.NoOpWithMessage("case: style required")
	}

	lineNum, start, end, ok := h.span(ctx)
	if !ok {
		return action.NoOpWithMessage("case: no text selected")
	}
	if !ctx.Selection.IsEmpty() && !ctx.Selection.SingleLine() {
		return action.NoOpWithMessage("case: only single-line selection supported")
	}

	line := ctx.Buffer.Line(lineNum)
	if start < 0 || end > len(line) || start >= end {
		return action.NoOpWithMessage("case: no text selected")
	}

	converted, ok := Convert(line[start:end], style)
	if !ok {
		return action.NoOpWithMessage("case: invalid style: " + style)
	}

	updated := line[:start] + converted + line[end:]
	if err := ctx.Buffer.SetLine(lineNum, updated); err != nil {
		return action.Error(err)
	}
	return action.Success().
		WithEdit(action.Edit{Line: lineNum, NewText: updated, OldText: line})
}

// span resolves the byte span to convert: the selection when present,
// otherwise the word under the cursor.
func (h *Handler) span(ctx *host.Context) (line, start, end int, ok bool) {
	if ctx.HasSelection() {
		sel := ctx.Selection.Normalized()
		if !sel.SingleLine() {
			return sel.StartLine, 0, 0, true
		}
		return sel.StartLine, sel.StartColumn, sel.EndColumn, true
	}

	text := ctx.Buffer.Line(ctx.Cursor.Line)
	word, s, e := textbuf.WordAt(text, ctx.Cursor.Column)
	if word == "" {
		return 0, 0, 0, false
	}
	return ctx.Cursor.Line, s, e, true
}

// Convert rewrites text in the named style. The second return value is false
// for unknown styles.
func Convert(text, style string) (string, bool) {
	switch style {
	case StyleUpper:
		return strings.ToUpper(text), true
	case StyleLower:
		return strings.ToLower(text), true
	case StyleTitle:
		return toTitle(text), true
	case StyleCapitalize:
		return capitalize(text), true
	case StyleSnake:
		return toSnake(text), true
	case StyleCamel:
		return toCamel(text), true
	default:
		return "", false
	}
}

func toTitle(text string) string {
	return wordSplitter.ReplaceAllStringFunc(text, capitalize)
}

func capitalize(text string) string {
	if text == "" {
		return text
	}
	runes := []rune(strings.ToLower(text))
	runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
	return string(runes)
}

func toSnake(text string) string {
	text = snakeSeparators.ReplaceAllString(text, "_")
	text = snakeBoundary.ReplaceAllString(text, "${1}_${2}")
	return strings.ToLower(text)
}

func toCamel(text string) string {
	parts := camelSplitter.Split(text, -1)
	var b strings.Builder
	for i, part := range parts {
		if part == "" {
			continue
		}
		if b.Len() == 0 && i == 0 {
			b.WriteString(strings.ToLower(part))
			continue
		}
		b.WriteString(capitalize(part))
	}
	return b.String()
}
