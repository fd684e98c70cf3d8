// Package codemap provides the code map add-in: a navigational outline of the
// active buffer with jump, block-select, and expand/collapse actions.
package codemap

import (
	"hash/fnv"

	"github.com/dshills/textify/internal/action"
	"github.com/dshills/textify/internal/host"
	"github.com/dshills/textify/internal/outline"
)

// Action names for code map operations.
const (
	ActionOpen    = "codemap.open"    // build (or reuse) the outline for display
	ActionRefresh = "codemap.refresh" // force a rebuild
	ActionJump    = "codemap.jump"    // jump to a symbol's line
	ActionSelect  = "codemap.select"  // select a symbol's block
	ActionCopy    = "codemap.copy"    // copy a symbol name to the clipboard
	ActionToggle  = "codemap.toggle"  // expand/collapse a symbol subtree
)

// DataOutline is the result data key holding the built *outline.Outline.
const DataOutline = "outline"

const stateKey = "_codemap_state"

// state caches the outline between invocations so redraws skip the rebuild
// when the buffer has not changed.
type state struct {
	outline    *outline.Outline
	bufferName string
	textHash   uint64
	expanded   map[string]bool
}

// Handler implements the codemap namespace.
type Handler struct {
	builder *outline.Builder
	filter  outline.FilterOptions
}

// NewHandler creates a code map handler using the given builder.
func NewHandler(builder *outline.Builder) *Handler {
	return &Handler{
		builder: builder,
		filter:  outline.AllVisible(),
	}
}

// SetFilter replaces the kind visibility and search options applied on open.
func (h *Handler) SetFilter(opts outline.FilterOptions) {
	h.filter = opts
}

// Register adds the handler's actions to the registry.
func (h *Handler) Register(reg *action.Registry) {
	reg.RegisterNamespace(h,
		ActionOpen, ActionRefresh, ActionJump, ActionSelect, ActionCopy, ActionToggle)
}

// Namespace returns the codemap namespace.
func (h *Handler) Namespace() string {
	return "codemap"
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionOpen, ActionRefresh, ActionJump, ActionSelect, ActionCopy, ActionToggle:
		return true
	}
	return false
}

// HandleAction processes a codemap action.
func (h *Handler) HandleAction(a action.Action, ctx *host.Context) action.Result {
	if err := ctx.Validate(); err != nil {
		return action.Error(err)
	}

	switch a.Name {
	case ActionOpen:
		return h.open(ctx, false)
	case ActionRefresh:
		return h.open(ctx, true)
	case ActionJump:
		return h.jump(a, ctx)
	case ActionSelect:
		return h.selectBlock(a, ctx)
	case ActionCopy:
		return h.copyName(a, ctx)
	case ActionToggle:
		return h.toggle(a, ctx)
	default:
		return action.Errorf("unknown codemap action: %s", a.Name)
	}
}

// open builds the outline when the buffer changed since the last build and
// returns it in the result data for the host's panel renderer.
func (h *Handler) open(ctx *host.Context, force bool) action.Result {
	st := h.state(ctx)
	name := ctx.Buffer.Name()
	sum := hashText(ctx.Buffer.Text())

	if force || st.outline == nil || st.bufferName != name || st.textHash != sum {
		st.outline = h.builder.Build(ctx.Buffer.Lines())
		st.bufferName = name
		st.textHash = sum
	}

	filtered := outline.Filter(st.outline, h.filter)
	return action.Success().
		WithData(DataOutline, filtered).
		WithRedraw()
}

// jump moves the cursor to the symbol's definition line.
func (h *Handler) jump(a action.Action, ctx *host.Context) action.Result {
	line := a.Args.Line
	if line < 1 || line > ctx.Buffer.LineCount() {
		return action.NoOpWithMessage("codemap: symbol line out of range")
	}
	if ctx.Navigator == nil {
		return action.Error(host.ErrMissingNavigator)
	}
	if err := ctx.Navigator.JumpToLine(line); err != nil {
		return action.Error(err)
	}
	return action.Success().WithScrollTo(line, 0, true)
}

// selectBlock selects the symbol's whole block, from the first non-blank
// column of its first line to the end of its last line.
func (h *Handler) selectBlock(a action.Action, ctx *host.Context) action.Result {
	if ctx.Navigator == nil {
		return action.Error(host.ErrMissingNavigator)
	}

	startLine := a.Args.Line
	endLine := a.Args.GetInt("endLine")
	if endLine < startLine {
		endLine = startLine
	}
	if endLine > ctx.Buffer.LineCount() {
		endLine = ctx.Buffer.LineCount()
	}
	if startLine < 1 || startLine > ctx.Buffer.LineCount() {
		return action.NoOpWithMessage("codemap: symbol line out of range")
	}

	first := ctx.Buffer.Line(startLine)
	startCol := indentWidth(first)
	endCol := len(ctx.Buffer.Line(endLine))

	if err := ctx.Navigator.Select(startLine, startCol, endLine, endCol); err != nil {
		return action.Error(err)
	}
	return action.Success().WithScrollTo(startLine, startCol, true)
}

// copyName places the symbol name on the host clipboard.
func (h *Handler) copyName(a action.Action, ctx *host.Context) action.Result {
	name := a.Args.Text
	if name == "" {
		return action.NoOpWithMessage("codemap: nothing to copy")
	}
	if ctx.Clipboard == nil {
		return action.NoOpWithMessage("codemap: no clipboard available")
	}
	if err := ctx.Clipboard.Copy(name); err != nil {
		return action.Error(err)
	}
	return action.SuccessWithMessage("copied: " + name)
}

// toggle flips a symbol path's expansion state.
func (h *Handler) toggle(a action.Action, ctx *host.Context) action.Result {
	path := a.Args.Text
	if path == "" {
		return action.NoOpWithMessage("codemap: symbol path required")
	}
	st := h.state(ctx)
	if st.expanded[path] {
		delete(st.expanded, path)
	} else {
		st.expanded[path] = true
	}
	return action.Success().WithRedraw()
}

// Expanded reports whether a symbol path is expanded.
func (h *Handler) Expanded(ctx *host.Context, path string) bool {
	return h.state(ctx).expanded[path]
}

func (h *Handler) state(ctx *host.Context) *state {
	if v, ok := ctx.GetData(stateKey); ok {
		if st, ok := v.(*state); ok {
			return st
		}
	}
	st := &state{expanded: make(map[string]bool)}
	ctx.SetData(stateKey, st)
	return st
}

func hashText(text string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(text))
	return h.Sum64()
}

func indentWidth(line string) int {
	for i := 0; i < len(line); i++ {
		if line[i] != ' ' && line[i] != '\t' {
			return i
		}
	}
	return 0
}
