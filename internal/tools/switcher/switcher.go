// Package switcher provides the buffer-cycling add-in.
package switcher

import (
	"github.com/dshills/textify/internal/action"
	"github.com/dshills/textify/internal/host"
)

// Action names for buffer cycling.
const (
	ActionNext     = "buffer.next"
	ActionPrevious = "buffer.previous"
)

// DataBuffer is the result data key holding the newly active buffer name.
const DataBuffer = "buffer"

// Handler implements the buffer namespace.
type Handler struct{}

// NewHandler creates a buffer switcher handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Register adds the handler's actions to the registry.
func (h *Handler) Register(reg *action.Registry) {
	reg.RegisterNamespace(h, ActionNext, ActionPrevious)
}

// Namespace returns the buffer namespace.
func (h *Handler) Namespace() string {
	return "buffer"
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	return actionName == ActionNext || actionName == ActionPrevious
}

// HandleAction cycles to the next or previous open buffer, wrapping at the
// ends of the host's buffer list.
func (h *Handler) HandleAction(a action.Action, ctx *host.Context) action.Result {
	if ctx.Buffers == nil {
		return action.NoOpWithMessage("buffer: no buffer list available")
	}

	names := ctx.Buffers.BufferNames()
	if len(names) < 2 {
		return action.NoOpWithMessage("buffer: nothing to cycle to")
	}

	current := ctx.Buffers.ActiveBuffer()
	idx := -1
	for i, name := range names {
		if name == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		return action.NoOpWithMessage("buffer: active buffer not in list")
	}

	var next int
	switch a.Name {
	case ActionNext:
		next = (idx + 1) % len(names)
	case ActionPrevious:
		next = (idx - 1 + len(names)) % len(names)
	default:
		return action.Errorf("unknown buffer action: %s", a.Name)
	}

	target := names[next]
	if err := ctx.Buffers.SwitchTo(target); err != nil {
		return action.Error(err)
	}
	return action.SuccessWithMessage("switched to " + target).
		WithData(DataBuffer, target)
}
