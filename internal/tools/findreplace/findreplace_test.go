package findreplace

import (
	"testing"

	"github.com/dshills/textify/internal/action"
	"github.com/dshills/textify/internal/host"
	"github.com/dshills/textify/internal/textbuf"
)

const sample = `first foo line
second line
foo again and foo
last line`

type recordNav struct {
	selection [4]int
	selected  bool
}

func (n *recordNav) JumpToLine(line int) error { return nil }

func (n *recordNav) Select(sl, sc, el, ec int) error {
	n.selection = [4]int{sl, sc, el, ec}
	n.selected = true
	return nil
}

func newTestContext(content string) *host.Context {
	ctx := host.NewContext(textbuf.New("test.py", content))
	ctx.Navigator = &recordNav{}
	return ctx
}

func TestFindNext(t *testing.T) {
	h := NewHandler()
	ctx := newTestContext(sample)
	nav := ctx.Navigator.(*recordNav)

	res := h.HandleAction(action.New(ActionFindNext).WithText("foo"), ctx)
	if res.Status != action.StatusOK {
		t.Fatalf("status = %v, message = %q", res.Status, res.Message)
	}
	if !nav.selected || nav.selection != [4]int{1, 6, 1, 9} {
		t.Errorf("selection = %v, want match at 1:6-1:9", nav.selection)
	}
}

func TestFindNextAdvances(t *testing.T) {
	h := NewHandler()
	ctx := newTestContext(sample)

	// Cursor past the first match finds the next one.
	ctx.Cursor = host.Cursor{Line: 1, Column: 6}
	res := h.HandleAction(action.New(ActionFindNext).WithText("foo"), ctx)
	nav := ctx.Navigator.(*recordNav)
	if nav.selection[0] != 3 || nav.selection[1] != 0 {
		t.Errorf("selection = %v, want match at 3:0", nav.selection)
	}
	if res.ViewUpdate.ScrollTo == nil || res.ViewUpdate.ScrollTo.Line != 3 {
		t.Errorf("ScrollTo = %+v", res.ViewUpdate.ScrollTo)
	}
}

func TestFindNextWraps(t *testing.T) {
	h := NewHandler()
	ctx := newTestContext(sample)
	ctx.Cursor = host.Cursor{Line: 4, Column: 0}

	res := h.HandleAction(action.New(ActionFindNext).WithText("foo"), ctx)
	if res.Status != action.StatusOK {
		t.Fatalf("status = %v", res.Status)
	}
	nav := ctx.Navigator.(*recordNav)
	if nav.selection[0] != 1 {
		t.Errorf("selection = %v, want wrap to line 1", nav.selection)
	}
	if res.Message != "find: foo (wrapped)" {
		t.Errorf("message = %q, want wrapped notice", res.Message)
	}
}

func TestFindNextNoWrap(t *testing.T) {
	h := NewHandler()
	ctx := newTestContext(sample)
	ctx.Cursor = host.Cursor{Line: 4, Column: 0}

	a := action.New(ActionFindNext).WithText("foo").WithExtra("wrap", false)
	res := h.HandleAction(a, ctx)
	if res.Status != action.StatusNoOp {
		t.Errorf("status = %v, want StatusNoOp without wrap", res.Status)
	}
}

func TestFindPrevious(t *testing.T) {
	h := NewHandler()
	ctx := newTestContext(sample)
	ctx.Cursor = host.Cursor{Line: 3, Column: 10}

	res := h.HandleAction(action.New(ActionFindPrevious).WithText("foo"), ctx)
	if res.Status != action.StatusOK {
		t.Fatalf("status = %v", res.Status)
	}
	nav := ctx.Navigator.(*recordNav)
	if nav.selection[0] != 3 || nav.selection[1] != 0 {
		t.Errorf("selection = %v, want earlier match at 3:0", nav.selection)
	}
}

func TestFindStickyTerm(t *testing.T) {
	h := NewHandler()
	ctx := newTestContext(sample)

	h.HandleAction(action.New(ActionFindNext).WithText("foo"), ctx)

	// Second invocation without text reuses the stored term.
	ctx.Cursor = host.Cursor{Line: 1, Column: 9}
	res := h.HandleAction(action.New(ActionFindNext), ctx)
	if res.Status != action.StatusOK {
		t.Fatalf("status = %v, message = %q", res.Status, res.Message)
	}
	nav := ctx.Navigator.(*recordNav)
	if nav.selection[0] != 3 {
		t.Errorf("selection = %v, want stored-term match at line 3", nav.selection)
	}
}

func TestFindNoTerm(t *testing.T) {
	h := NewHandler()
	ctx := newTestContext(sample)
	res := h.HandleAction(action.New(ActionFindNext), ctx)
	if res.Status != action.StatusNoOp {
		t.Errorf("status = %v, want StatusNoOp", res.Status)
	}
}

func TestCount(t *testing.T) {
	h := NewHandler()
	ctx := newTestContext(sample)
	ctx.Cursor = host.Cursor{Line: 3, Column: 3}

	res := h.HandleAction(action.New(ActionCount).WithText("foo"), ctx)
	if res.Status != action.StatusOK {
		t.Fatalf("status = %v", res.Status)
	}
	if got := res.GetDataInt(DataTotal); got != 3 {
		t.Errorf("total = %d, want 3", got)
	}
	if got := res.GetDataInt(DataCurrent); got != 2 {
		t.Errorf("current = %d, want 2", got)
	}
	if res.Message != "2 of 3" {
		t.Errorf("message = %q, want \"2 of 3\"", res.Message)
	}
}

func TestCountNoMatches(t *testing.T) {
	h := NewHandler()
	ctx := newTestContext(sample)

	res := h.HandleAction(action.New(ActionCount).WithText("absent"), ctx)
	if res.Message != "no matches found" || res.GetDataInt(DataTotal) != 0 {
		t.Errorf("res = %+v", res)
	}
}

func TestCountMatchCase(t *testing.T) {
	h := NewHandler()
	ctx := newTestContext("Foo foo FOO")

	res := h.HandleAction(action.New(ActionCount).WithText("foo"), ctx)
	if got := res.GetDataInt(DataTotal); got != 3 {
		t.Errorf("case-insensitive total = %d, want 3", got)
	}

	res = h.HandleAction(action.New(ActionCount).WithText("foo").WithExtra("matchCase", true), ctx)
	if got := res.GetDataInt(DataTotal); got != 1 {
		t.Errorf("case-sensitive total = %d, want 1", got)
	}
}

func TestCountWholeWord(t *testing.T) {
	h := NewHandler()
	ctx := newTestContext("food foo foolish")

	a := action.New(ActionCount).WithText("foo").WithExtra("wholeWord", true)
	res := h.HandleAction(a, ctx)
	if got := res.GetDataInt(DataTotal); got != 1 {
		t.Errorf("whole-word total = %d, want 1", got)
	}
}

func TestReplace(t *testing.T) {
	h := NewHandler()
	ctx := newTestContext(sample)

	a := action.New(ActionReplace).WithText("foo")
	a.Args.Replacement = "bar"
	res := h.HandleAction(a, ctx)
	if res.Status != action.StatusOK {
		t.Fatalf("status = %v", res.Status)
	}
	if got := ctx.Buffer.Line(1); got != "first bar line" {
		t.Errorf("line 1 = %q", got)
	}
	// Only the first match is replaced.
	if got := ctx.Buffer.Line(3); got != "foo again and foo" {
		t.Errorf("line 3 = %q, should be untouched", got)
	}
	if len(res.Edits) != 1 || res.Edits[0].Line != 1 {
		t.Errorf("edits = %+v", res.Edits)
	}
}

func TestReplaceAll(t *testing.T) {
	h := NewHandler()
	ctx := newTestContext(sample)

	a := action.New(ActionReplaceAll).WithText("foo")
	a.Args.Replacement = "bar"
	res := h.HandleAction(a, ctx)
	if res.Status != action.StatusOK {
		t.Fatalf("status = %v", res.Status)
	}
	if res.Message != "replaced 3 occurrence(s)" {
		t.Errorf("message = %q", res.Message)
	}
	if got := ctx.Buffer.Line(3); got != "bar again and bar" {
		t.Errorf("line 3 = %q", got)
	}
	if len(res.Edits) != 2 {
		t.Errorf("edits = %d lines, want 2", len(res.Edits))
	}
}

func TestReplaceAllNoMatches(t *testing.T) {
	h := NewHandler()
	ctx := newTestContext(sample)

	a := action.New(ActionReplaceAll).WithText("absent")
	a.Args.Replacement = "x"
	res := h.HandleAction(a, ctx)
	if res.Status != action.StatusNoOp {
		t.Errorf("status = %v, want StatusNoOp", res.Status)
	}
}

func TestReplaceReadOnly(t *testing.T) {
	h := NewHandler()
	ctx := newTestContext(sample)
	ctx.ReadOnly = true

	a := action.New(ActionReplaceAll).WithText("foo")
	a.Args.Replacement = "bar"
	res := h.HandleAction(a, ctx)
	if res.Status != action.StatusError {
		t.Errorf("status = %v, want StatusError", res.Status)
	}
}

func TestSetFromSelection(t *testing.T) {
	h := NewHandler()
	ctx := newTestContext(sample)
	ctx.Selection = host.Selection{StartLine: 1, StartColumn: 6, EndLine: 1, EndColumn: 9}

	res := h.HandleAction(action.New(ActionSetFromSelection), ctx)
	if res.Status != action.StatusOK {
		t.Fatalf("status = %v", res.Status)
	}
	if got := res.GetDataString(DataFind); got != "foo" {
		t.Errorf("find term = %q, want foo", got)
	}

	// The stored term drives the next find.
	ctx.Cursor = host.Cursor{Line: 2, Column: 0}
	next := h.HandleAction(action.New(ActionFindNext), ctx)
	if next.Status != action.StatusOK {
		t.Errorf("find after seed: status = %v", next.Status)
	}
}

func TestSetFromSelectionMultiLine(t *testing.T) {
	h := NewHandler()
	ctx := newTestContext(sample)
	ctx.Selection = host.Selection{StartLine: 1, EndLine: 2, EndColumn: 3}

	res := h.HandleAction(action.New(ActionSetFromSelection), ctx)
	if res.Status != action.StatusNoOp {
		t.Errorf("status = %v, want StatusNoOp for multi-line selection", res.Status)
	}
}

func TestWordUnderCursor(t *testing.T) {
	ctx := newTestContext("alpha beta_2 42x")
	tests := []struct {
		col  int
		want string
	}{
		{0, "alpha"},
		{7, "beta_2"},
		{13, ""}, // starts with a digit
	}
	for _, tt := range tests {
		ctx.Cursor = host.Cursor{Line: 1, Column: tt.col}
		if got := WordUnderCursor(ctx); got != tt.want {
			t.Errorf("WordUnderCursor(col %d) = %q, want %q", tt.col, got, tt.want)
		}
	}
}
