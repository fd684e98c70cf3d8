// Package trim provides the trailing-whitespace trimmer add-in.
package trim

import (
	"fmt"
	"strings"

	"github.com/dshills/textify/internal/action"
	"github.com/dshills/textify/internal/host"
)

// Action names for trim operations.
const (
	// ActionTrim strips trailing whitespace from every line.
	ActionTrim = "trim.whitespace"
	// ActionCheck reports whether any line has trailing whitespace, used as a
	// menu-visibility predicate by the host.
	ActionCheck = "trim.check"
)

// Result data keys.
const (
	DataRemoved = "removed" // characters removed
	DataNeeded  = "needed"  // whether trimming would change the buffer
)

// Handler implements the trim namespace.
type Handler struct{}

// NewHandler creates a trim handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Register adds the handler's actions to the registry.
func (h *Handler) Register(reg *action.Registry) {
	reg.RegisterNamespace(h, ActionTrim, ActionCheck)
}

// Namespace returns the trim namespace.
func (h *Handler) Namespace() string {
	return "trim"
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	return actionName == ActionTrim || actionName == ActionCheck
}

// HandleAction processes a trim action.
func (h *Handler) HandleAction(a action.Action, ctx *host.Context) action.Result {
	if err := ctx.Validate(); err != nil {
		return action.Error(err)
	}

	switch a.Name {
	case ActionTrim:
		return h.trim(ctx)
	case ActionCheck:
		return h.check(ctx)
	default:
		return action.Errorf("unknown trim action: %s", a.Name)
	}
}

func (h *Handler) trim(ctx *host.Context) action.Result {
	if err := ctx.ValidateForEdit(); err != nil {
		return action.Error(err)
	}

	removed := 0
	res := action.Success()

	for n := 1; n <= ctx.Buffer.LineCount(); n++ {
		line := ctx.Buffer.Line(n)
		trimmed := strings.TrimRight(line, " \t")
		if trimmed == line {
			continue
		}
		if err := ctx.Buffer.SetLine(n, trimmed); err != nil {
			return action.Error(err)
		}
		removed += len(line) - len(trimmed)
		res = res.WithEdit(action.Edit{Line: n, NewText: trimmed, OldText: line})
	}

	if removed == 0 {
		return action.NoOpWithMessage("no trailing whitespace to remove").
			WithData(DataRemoved, 0)
	}
	return res.WithRedraw().
		WithData(DataRemoved, removed).
		WithMessage(fmt.Sprintf("removed %d trailing whitespace character(s)", removed))
}

func (h *Handler) check(ctx *host.Context) action.Result {
	for n := 1; n <= ctx.Buffer.LineCount(); n++ {
		line := ctx.Buffer.Line(n)
		if strings.TrimRight(line, " \t") != line {
			return action.Success().WithData(DataNeeded, true)
		}
	}
	return action.Success().WithData(DataNeeded, false)
}
