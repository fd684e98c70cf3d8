// Package jumpline provides the jump-to-line add-in.
package jumpline

import (
	"fmt"

	"github.com/dshills/textify/internal/action"
	"github.com/dshills/textify/internal/host"
)

// ActionJump moves the cursor to a 1-based line, clamped to the buffer.
const ActionJump = "jump.toLine"

// DataLine is the result data key holding the clamped target line.
const DataLine = "line"

// Handler implements the jump namespace.
type Handler struct{}

// NewHandler creates a jump-to-line handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Register adds the handler's actions to the registry.
func (h *Handler) Register(reg *action.Registry) {
	reg.RegisterNamespace(h, ActionJump)
}

// Namespace returns the jump namespace.
func (h *Handler) Namespace() string {
	return "jump"
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	return actionName == ActionJump
}

// HandleAction processes a jump action. Out-of-range targets are clamped to
// the nearest valid line rather than rejected, matching text-field entry
// where the user types past the end of the buffer.
func (h *Handler) HandleAction(a action.Action, ctx *host.Context) action.Result {
	if err := ctx.Validate(); err != nil {
		return action.Error(err)
	}
	if a.Name != ActionJump {
		return action.Errorf("unknown jump action: %s", a.Name)
	}
	if ctx.Navigator == nil {
		return action.Error(host.ErrMissingNavigator)
	}

	line := a.Args.Line
	if line < 1 {
		line = 1
	}
	if max := ctx.Buffer.LineCount(); line > max {
		line = max
	}

	if err := ctx.Navigator.JumpToLine(line); err != nil {
		return action.Error(err)
	}
	return action.SuccessWithMessage(fmt.Sprintf("jumped to line %d", line)).
		WithData(DataLine, line).
		WithScrollTo(line, 0, true)
}
