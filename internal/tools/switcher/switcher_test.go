package switcher

import (
	"testing"

	"github.com/dshills/textify/internal/action"
	"github.com/dshills/textify/internal/host"
	"github.com/dshills/textify/internal/textbuf"
)

func newTestContext(names ...string) (*host.Context, *textbuf.Set) {
	bufs := make([]*textbuf.Buffer, len(names))
	for i, name := range names {
		bufs[i] = textbuf.New(name, "")
	}
	set := textbuf.NewSet(bufs...)
	ctx := host.NewContext(set.Active())
	ctx.Buffers = set
	return ctx, set
}

func TestCycleNext(t *testing.T) {
	ctx, set := newTestContext("a.py", "b.py", "c.py")

	res := NewHandler().HandleAction(action.New(ActionNext), ctx)
	if res.Status != action.StatusOK {
		t.Fatalf("status = %v", res.Status)
	}
	if set.ActiveBuffer() != "b.py" {
		t.Errorf("active = %q, want b.py", set.ActiveBuffer())
	}
	if got := res.GetDataString(DataBuffer); got != "b.py" {
		t.Errorf("data buffer = %q", got)
	}
}

func TestCycleNextWraps(t *testing.T) {
	ctx, set := newTestContext("a.py", "b.py", "c.py")
	if err := set.SwitchTo("c.py"); err != nil {
		t.Fatal(err)
	}

	NewHandler().HandleAction(action.New(ActionNext), ctx)
	if set.ActiveBuffer() != "a.py" {
		t.Errorf("active = %q, want wrap to a.py", set.ActiveBuffer())
	}
}

func TestCyclePreviousWraps(t *testing.T) {
	ctx, set := newTestContext("a.py", "b.py", "c.py")

	NewHandler().HandleAction(action.New(ActionPrevious), ctx)
	if set.ActiveBuffer() != "c.py" {
		t.Errorf("active = %q, want wrap to c.py", set.ActiveBuffer())
	}
}

func TestCycleSingleBuffer(t *testing.T) {
	ctx, _ := newTestContext("only.py")

	res := NewHandler().HandleAction(action.New(ActionNext), ctx)
	if res.Status != action.StatusNoOp {
		t.Errorf("status = %v, want StatusNoOp with one buffer", res.Status)
	}
}

func TestCycleNoBufferList(t *testing.T) {
	ctx := host.NewContext(textbuf.New("a.py", ""))

	res := NewHandler().HandleAction(action.New(ActionNext), ctx)
	if res.Status != action.StatusNoOp {
		t.Errorf("status = %v, want StatusNoOp without buffer list", res.Status)
	}
}
