package script

import (
	"context"
	"fmt"

	"github.com/dshills/textify/internal/action"
	"github.com/dshills/textify/internal/host"
)

// Action names for script operations.
const (
	// ActionRun executes a named transform against the active buffer.
	ActionRun = "script.run"
	// ActionList reports the registered script names.
	ActionList = "script.list"
)

// Result data keys.
const (
	DataNames   = "names"   // []string of script names
	DataChanged = "changed" // number of lines that differ after the transform
)

// Handler exposes the runner through the script namespace.
type Handler struct {
	runner *Runner
}

// NewHandler creates a script handler around a runner.
func NewHandler(runner *Runner) *Handler {
	return &Handler{runner: runner}
}

// Register adds the handler's actions to the registry.
func (h *Handler) Register(reg *action.Registry) {
	reg.RegisterNamespace(h, ActionRun, ActionList)
}

// Namespace returns the script namespace.
func (h *Handler) Namespace() string {
	return "script"
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	return actionName == ActionRun || actionName == ActionList
}

// HandleAction processes a script action.
func (h *Handler) HandleAction(a action.Action, ctx *host.Context) action.Result {
	switch a.Name {
	case ActionRun:
		return h.run(a, ctx)
	case ActionList:
		return action.Success().WithData(DataNames, h.runner.Names())
	default:
		return action.Errorf("unknown script action: %s", a.Name)
	}
}

func (h *Handler) run(a action.Action, ctx *host.Context) action.Result {
	if err := ctx.ValidateForEdit(); err != nil {
		return action.Error(err)
	}

	name := a.Args.GetString("name")
	if name == "" {
		return action.Errorf("script.run requires a script name")
	}

	before := ctx.Buffer.Lines()
	after, err := h.runner.Transform(context.Background(), name, before)
	if err != nil {
		return action.Error(err)
	}

	changed := diffCount(before, after)
	if changed == 0 {
		return action.NoOpWithMessage(fmt.Sprintf("%s: no changes", name))
	}

	ctx.Buffer.SetLines(after)
	return action.Success().
		WithRedraw().
		WithData(DataChanged, changed).
		WithMessage(fmt.Sprintf("%s: %d line(s) changed", name, changed))
}

// diffCount counts positions where the transform altered, added, or removed
// a line.
func diffCount(before, after []string) int {
	longer := len(before)
	if len(after) > longer {
		longer = len(after)
	}
	changed := 0
	for i := 0; i < longer; i++ {
		switch {
		case i >= len(before) || i >= len(after):
			changed++
		case before[i] != after[i]:
			changed++
		}
	}
	return changed
}
