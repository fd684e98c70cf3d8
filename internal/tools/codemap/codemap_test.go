package codemap

import (
	"testing"

	"github.com/dshills/textify/internal/action"
	"github.com/dshills/textify/internal/host"
	"github.com/dshills/textify/internal/outline"
	"github.com/dshills/textify/internal/textbuf"
)

const sample = `class Foo:
    def bar(self):
        pass

def standalone():
    pass
`

type recordNav struct {
	jumped    []int
	selection [4]int
	selected  bool
}

func (n *recordNav) JumpToLine(line int) error {
	n.jumped = append(n.jumped, line)
	return nil
}

func (n *recordNav) Select(sl, sc, el, ec int) error {
	n.selection = [4]int{sl, sc, el, ec}
	n.selected = true
	return nil
}

type recordClipboard struct {
	copied string
}

func (c *recordClipboard) Copy(text string) error {
	c.copied = text
	return nil
}

func newTestContext(content string) *host.Context {
	ctx := host.NewContext(textbuf.New("test.py", content))
	ctx.Navigator = &recordNav{}
	ctx.Clipboard = &recordClipboard{}
	return ctx
}

func newTestHandler() *Handler {
	return NewHandler(outline.NewBuilder(outline.DefaultPatterns()))
}

func TestOpenBuildsOutline(t *testing.T) {
	h := newTestHandler()
	ctx := newTestContext(sample)

	res := h.HandleAction(action.New(ActionOpen), ctx)
	if res.Status != action.StatusOK {
		t.Fatalf("status = %v", res.Status)
	}
	ol, ok := res.Data[DataOutline].(*outline.Outline)
	if !ok {
		t.Fatalf("result data missing outline")
	}
	if ol.Len() != 2 {
		t.Errorf("top-level symbols = %d, want 2", ol.Len())
	}
	if !res.ViewUpdate.Redraw {
		t.Error("open should request a redraw")
	}
}

func TestOpenReusesCachedOutline(t *testing.T) {
	h := newTestHandler()
	ctx := newTestContext(sample)

	h.HandleAction(action.New(ActionOpen), ctx)
	v, _ := ctx.GetData("_codemap_state")
	st := v.(*state)
	first := st.outline

	h.HandleAction(action.New(ActionOpen), ctx)
	if st.outline != first {
		t.Error("unchanged buffer should reuse the cached outline")
	}

	// Editing the buffer invalidates the cache.
	if err := ctx.Buffer.SetLine(1, "class Renamed:"); err != nil {
		t.Fatal(err)
	}
	h.HandleAction(action.New(ActionOpen), ctx)
	if st.outline == first {
		t.Error("changed buffer should rebuild the outline")
	}
}

func TestRefreshForcesRebuild(t *testing.T) {
	h := newTestHandler()
	ctx := newTestContext(sample)

	h.HandleAction(action.New(ActionOpen), ctx)
	v, _ := ctx.GetData("_codemap_state")
	st := v.(*state)
	first := st.outline

	h.HandleAction(action.New(ActionRefresh), ctx)
	if st.outline == first {
		t.Error("refresh should rebuild even when the buffer is unchanged")
	}
}

func TestOpenAppliesFilter(t *testing.T) {
	h := newTestHandler()
	h.SetFilter(outline.FilterOptions{ShowFunctions: true, ShowMethods: true})
	ctx := newTestContext(sample)

	res := h.HandleAction(action.New(ActionOpen), ctx)
	ol := res.Data[DataOutline].(*outline.Outline)
	for _, sym := range ol.Flatten() {
		if sym.Kind == outline.KindClass {
			t.Errorf("filtered outline contains class %s", sym.Name)
		}
	}
}

func TestJump(t *testing.T) {
	h := newTestHandler()
	ctx := newTestContext(sample)
	nav := ctx.Navigator.(*recordNav)

	res := h.HandleAction(action.New(ActionJump).WithLine(5), ctx)
	if res.Status != action.StatusOK {
		t.Fatalf("status = %v", res.Status)
	}
	if len(nav.jumped) != 1 || nav.jumped[0] != 5 {
		t.Errorf("jumped = %v, want [5]", nav.jumped)
	}
	if res.ViewUpdate.ScrollTo == nil || res.ViewUpdate.ScrollTo.Line != 5 {
		t.Errorf("ScrollTo = %+v", res.ViewUpdate.ScrollTo)
	}
}

func TestJumpOutOfRange(t *testing.T) {
	h := newTestHandler()
	ctx := newTestContext(sample)

	for _, line := range []int{0, 999} {
		res := h.HandleAction(action.New(ActionJump).WithLine(line), ctx)
		if res.Status != action.StatusNoOp {
			t.Errorf("jump(%d) status = %v, want StatusNoOp", line, res.Status)
		}
	}
}

func TestJumpWithoutNavigator(t *testing.T) {
	h := newTestHandler()
	ctx := newTestContext(sample)
	ctx.Navigator = nil

	res := h.HandleAction(action.New(ActionJump).WithLine(1), ctx)
	if res.Status != action.StatusError {
		t.Errorf("status = %v, want StatusError", res.Status)
	}
}

func TestSelectBlock(t *testing.T) {
	h := newTestHandler()
	ctx := newTestContext(sample)
	nav := ctx.Navigator.(*recordNav)

	// Select the bar method: lines 2-3, starting at its indent.
	res := h.HandleAction(action.New(ActionSelect).WithLine(2).WithExtra("endLine", 3), ctx)
	if res.Status != action.StatusOK {
		t.Fatalf("status = %v", res.Status)
	}
	if !nav.selected {
		t.Fatal("no selection made")
	}
	want := [4]int{2, 4, 3, len("        pass")}
	if nav.selection != want {
		t.Errorf("selection = %v, want %v", nav.selection, want)
	}
}

func TestSelectBlockClampsEndLine(t *testing.T) {
	h := newTestHandler()
	ctx := newTestContext(sample)
	nav := ctx.Navigator.(*recordNav)

	h.HandleAction(action.New(ActionSelect).WithLine(5).WithExtra("endLine", 999), ctx)
	if nav.selection[2] != ctx.Buffer.LineCount() {
		t.Errorf("end line = %d, want clamped to %d", nav.selection[2], ctx.Buffer.LineCount())
	}
}

func TestCopyName(t *testing.T) {
	h := newTestHandler()
	ctx := newTestContext(sample)
	clip := ctx.Clipboard.(*recordClipboard)

	res := h.HandleAction(action.New(ActionCopy).WithText("Foo.bar"), ctx)
	if res.Status != action.StatusOK {
		t.Fatalf("status = %v", res.Status)
	}
	if clip.copied != "Foo.bar" {
		t.Errorf("copied = %q", clip.copied)
	}

	res = h.HandleAction(action.New(ActionCopy), ctx)
	if res.Status != action.StatusNoOp {
		t.Errorf("copy without text: status = %v, want StatusNoOp", res.Status)
	}
}

func TestToggle(t *testing.T) {
	h := newTestHandler()
	ctx := newTestContext(sample)

	if h.Expanded(ctx, "Foo") {
		t.Error("Foo expanded before toggle")
	}
	h.HandleAction(action.New(ActionToggle).WithText("Foo"), ctx)
	if !h.Expanded(ctx, "Foo") {
		t.Error("Foo not expanded after toggle")
	}
	h.HandleAction(action.New(ActionToggle).WithText("Foo"), ctx)
	if h.Expanded(ctx, "Foo") {
		t.Error("Foo still expanded after second toggle")
	}
}

func TestMissingBuffer(t *testing.T) {
	h := newTestHandler()
	res := h.HandleAction(action.New(ActionOpen), &host.Context{})
	if res.Status != action.StatusError {
		t.Errorf("status = %v, want StatusError", res.Status)
	}
}
