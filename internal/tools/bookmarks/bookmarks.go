// Package bookmarks provides the line bookmark add-in: a per-buffer list of
// remembered lines with jump and reordering actions.
package bookmarks

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/dshills/textify/internal/action"
	"github.com/dshills/textify/internal/host"
)

// Action names for bookmark operations.
const (
	ActionAdd      = "bookmark.add"
	ActionRemove   = "bookmark.remove"
	ActionMoveUp   = "bookmark.moveUp"
	ActionMoveDown = "bookmark.moveDown"
	ActionSort     = "bookmark.sort"
	ActionJump     = "bookmark.jump"
	ActionRefresh  = "bookmark.refresh"
	ActionList     = "bookmark.list"
)

// DataBookmarks is the result data key holding []Bookmark.
const DataBookmarks = "bookmarks"

// DefaultPreviewLength bounds the stored line content preview.
const DefaultPreviewLength = 60

const stateKey = "_bookmark_state"

// Bookmark is one remembered line. The ID is stable across list edits so the
// host's list widget can track rows.
type Bookmark struct {
	ID      string
	Line    int // 1-based
	Content string
}

type state struct {
	// byBuffer maps buffer name to its bookmark list.
	byBuffer map[string][]Bookmark
}

// Handler implements the bookmark namespace.
type Handler struct {
	previewLen int
}

// NewHandler creates a bookmark handler.
func NewHandler() *Handler {
	return &Handler{previewLen: DefaultPreviewLength}
}

// SetPreviewLength changes the stored content preview bound.
func (h *Handler) SetPreviewLength(n int) {
	if n > 0 {
		h.previewLen = n
	}
}

// Register adds the handler's actions to the registry.
func (h *Handler) Register(reg *action.Registry) {
	reg.RegisterNamespace(h,
		ActionAdd, ActionRemove, ActionMoveUp, ActionMoveDown,
		ActionSort, ActionJump, ActionRefresh, ActionList)
}

// Namespace returns the bookmark namespace.
func (h *Handler) Namespace() string {
	return "bookmark"
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionAdd, ActionRemove, ActionMoveUp, ActionMoveDown,
		ActionSort, ActionJump, ActionRefresh, ActionList:
		return true
	}
	return false
}

// HandleAction processes a bookmark action.
func (h *Handler) HandleAction(a action.Action, ctx *host.Context) action.Result {
	if err := ctx.Validate(); err != nil {
		return action.Error(err)
	}

	marks := h.marks(ctx)

	switch a.Name {
	case ActionAdd:
		return h.add(ctx, marks)
	case ActionRemove:
		return h.remove(a, ctx, marks)
	case ActionMoveUp:
		return h.move(a, ctx, marks, -1)
	case ActionMoveDown:
		return h.move(a, ctx, marks, 1)
	case ActionSort:
		sort.SliceStable(marks, func(i, j int) bool { return marks[i].Line < marks[j].Line })
		h.store(ctx, marks)
		return h.listResult(marks)
	case ActionJump:
		return h.jump(a, ctx, marks)
	case ActionRefresh:
		return h.refresh(ctx, marks)
	case ActionList:
		return h.listResult(marks)
	default:
		return action.Errorf("unknown bookmark action: %s", a.Name)
	}
}

// add bookmarks the cursor line; a line already bookmarked is left alone.
func (h *Handler) add(ctx *host.Context, marks []Bookmark) action.Result {
	line := ctx.Cursor.Line
	if line < 1 || line > ctx.Buffer.LineCount() {
		return action.NoOpWithMessage("bookmark: cursor line out of range")
	}
	for _, b := range marks {
		if b.Line == line {
			return action.NoOpWithMessage("bookmark: line already bookmarked")
		}
	}

	marks = append(marks, Bookmark{
		ID:      uuid.New().String(),
		Line:    line,
		Content: h.preview(ctx.Buffer.Line(line)),
	})
	h.store(ctx, marks)
	return h.listResult(marks).WithMessage("bookmarked line")
}

func (h *Handler) remove(a action.Action, ctx *host.Context, marks []Bookmark) action.Result {
	idx := h.index(a, marks)
	if idx < 0 {
		return action.NoOpWithMessage("bookmark: no such bookmark")
	}
	marks = append(marks[:idx], marks[idx+1:]...)
	h.store(ctx, marks)
	return h.listResult(marks)
}

func (h *Handler) move(a action.Action, ctx *host.Context, marks []Bookmark, delta int) action.Result {
	idx := h.index(a, marks)
	if idx < 0 {
		return action.NoOpWithMessage("bookmark: no such bookmark")
	}
	target := idx + delta
	if target < 0 || target >= len(marks) {
		return action.NoOp()
	}
	marks[idx], marks[target] = marks[target], marks[idx]
	h.store(ctx, marks)
	return h.listResult(marks)
}

func (h *Handler) jump(a action.Action, ctx *host.Context, marks []Bookmark) action.Result {
	idx := h.index(a, marks)
	if idx < 0 {
		return action.NoOpWithMessage("bookmark: no such bookmark")
	}
	line := marks[idx].Line
	if line > ctx.Buffer.LineCount() {
		return action.NoOpWithMessage("bookmark: line no longer exists")
	}
	if ctx.Navigator == nil {
		return action.Error(host.ErrMissingNavigator)
	}
	if err := ctx.Navigator.JumpToLine(line); err != nil {
		return action.Error(err)
	}
	return action.Success().WithScrollTo(line, 0, true)
}

// refresh re-reads each bookmark's line content and drops bookmarks whose
// lines fell off the end of the buffer.
func (h *Handler) refresh(ctx *host.Context, marks []Bookmark) action.Result {
	kept := marks[:0]
	for _, b := range marks {
		if b.Line > ctx.Buffer.LineCount() {
			continue
		}
		b.Content = h.preview(ctx.Buffer.Line(b.Line))
		kept = append(kept, b)
	}
	h.store(ctx, kept)
	return h.listResult(kept)
}

// index resolves a bookmark by "id" extra arg or 0-based "index" extra arg.
func (h *Handler) index(a action.Action, marks []Bookmark) int {
	if id := a.Args.GetString("id"); id != "" {
		for i, b := range marks {
			if b.ID == id {
				return i
			}
		}
		return -1
	}
	if _, ok := a.Args.Get("index"); ok {
		if idx := a.Args.GetInt("index"); idx >= 0 && idx < len(marks) {
			return idx
		}
	}
	return -1
}

func (h *Handler) listResult(marks []Bookmark) action.Result {
	out := make([]Bookmark, len(marks))
	copy(out, marks)
	return action.Success().WithData(DataBookmarks, out).WithRedraw()
}

func (h *Handler) preview(line string) string {
	line = strings.TrimSpace(line)
	runes := []rune(line)
	if len(runes) > h.previewLen {
		return string(runes[:h.previewLen])
	}
	return line
}

func (h *Handler) marks(ctx *host.Context) []Bookmark {
	st := h.state(ctx)
	return st.byBuffer[ctx.Buffer.Name()]
}

func (h *Handler) store(ctx *host.Context, marks []Bookmark) {
	st := h.state(ctx)
	st.byBuffer[ctx.Buffer.Name()] = marks
}

func (h *Handler) state(ctx *host.Context) *state {
	if v, ok := ctx.GetData(stateKey); ok {
		if st, ok := v.(*state); ok {
			return st
		}
	}
	st := &state{byBuffer: make(map[string][]Bookmark)}
	ctx.SetData(stateKey, st)
	return st
}
