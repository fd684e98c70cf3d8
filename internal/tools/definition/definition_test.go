package definition

import (
	"strings"
	"testing"

	"github.com/dshills/textify/internal/action"
	"github.com/dshills/textify/internal/host"
	"github.com/dshills/textify/internal/textbuf"
)

var sample = strings.Join([]string{
	"import os",                                   // 1
	"from collections import OrderedDict as OD",   // 2
	"",                                            // 3
	"count = 0",                                   // 4
	"",                                            // 5
	"def helper(value, limit=10):",                // 6
	"    value += 1",                              // 7
	"    return value",                            // 8
	"",                                            // 9
	"class Widget:",                               // 10
	"    def draw(self, count):",                  // 11
	"        for item in range(count):",           // 12
	"            count = item",                    // 13
	"",                                            // 14
	"with open('f') as fh:",                       // 15
	"    fh.read()",                               // 16
}, "\n")

func sampleLines() []string {
	return strings.Split(sample, "\n")
}

type recordNav struct {
	jumped []int
}

func (n *recordNav) JumpToLine(line int) error {
	n.jumped = append(n.jumped, line)
	return nil
}

func (n *recordNav) Select(sl, sc, el, ec int) error { return nil }

func TestScanKinds(t *testing.T) {
	lines := sampleLines()

	tests := []struct {
		word  string
		lines []int
		kinds []DefKind
	}{
		{"os", []int{1}, []DefKind{DefImport}},
		{"OD", []int{2}, []DefKind{DefImport}},
		{"helper", []int{6}, []DefKind{DefFunction}},
		{"value", []int{6, 7}, []DefKind{DefParameter, DefAssignment}},
		{"Widget", []int{10}, []DefKind{DefClass}},
		{"count", []int{4, 11, 13}, []DefKind{DefAssignment, DefParameter, DefAssignment}},
		{"item", []int{12}, []DefKind{DefLoopVar}},
		{"fh", []int{15}, []DefKind{DefLoopVar}},
		{"OrderedDict", nil, nil}, // aliased away by "as OD"
		{"missing", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			defs := Scan(lines, tt.word, 4)
			if len(defs) != len(tt.lines) {
				t.Fatalf("got %d definitions, want %d: %+v", len(defs), len(tt.lines), defs)
			}
			for i, d := range defs {
				if d.Line != tt.lines[i] || d.Kind != tt.kinds[i] {
					t.Errorf("defs[%d] = line %d kind %d, want line %d kind %d",
						i, d.Line, d.Kind, tt.lines[i], tt.kinds[i])
				}
			}
		})
	}
}

func TestScanColumns(t *testing.T) {
	lines := sampleLines()

	defs := Scan(lines, "helper", 4)
	if len(defs) != 1 || defs[0].Column != 4 {
		t.Errorf("helper column = %+v, want 4", defs)
	}

	defs = Scan(lines, "value", 4)
	if len(defs) != 2 || defs[0].Column != 11 {
		t.Errorf("value parameter column = %+v, want 11", defs)
	}
}

func TestScanDefaultValueNotBound(t *testing.T) {
	lines := []string{"def f(a, b=limit):"}
	if defs := Scan(lines, "limit", 4); len(defs) != 0 {
		t.Errorf("default value bound as parameter: %+v", defs)
	}
	if defs := Scan(lines, "b", 4); len(defs) != 1 || defs[0].Kind != DefParameter {
		t.Errorf("parameter before default not bound: %+v", defs)
	}
}

func TestScanTupleUnpacking(t *testing.T) {
	lines := []string{"for key, val in items.items():"}
	for _, word := range []string{"key", "val"} {
		defs := Scan(lines, word, 4)
		if len(defs) != 1 || defs[0].Kind != DefLoopVar {
			t.Errorf("Scan(%q) = %+v, want one loop var", word, defs)
		}
	}
	if defs := Scan(lines, "items", 4); len(defs) != 0 {
		t.Errorf("iterable bound as loop var: %+v", defs)
	}
}

func TestBest(t *testing.T) {
	lines := sampleLines()

	tests := []struct {
		name       string
		word       string
		cursorLine int
		wantLine   int
	}{
		{"nearest wins", "value", 8, 7},
		{"definition on cursor line", "count", 13, 13},
		{"only earlier site", "count", 4, 4},
		{"nothing before cursor falls forward", "Widget", 1, 10},
		{"out-of-scope parameter skipped", "value", 16, 7},
		{"in-scope parameter wins", "count", 12, 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defs := Scan(lines, tt.word, 4)
			if len(defs) == 0 {
				t.Fatalf("no definitions for %q", tt.word)
			}
			best := Best(defs, tt.cursorLine)
			if best.Line != tt.wantLine {
				t.Errorf("Best line = %d, want %d", best.Line, tt.wantLine)
			}
		})
	}
}

func TestGoto(t *testing.T) {
	h := NewHandler()
	nav := &recordNav{}
	ctx := host.NewContext(textbuf.New("test.py", sample))
	ctx.Navigator = nav
	ctx.Cursor = host.Cursor{Line: 8, Column: 11} // on "value" in "return value"

	res := h.HandleAction(action.New(ActionGoto), ctx)
	if res.Status != action.StatusOK {
		t.Fatalf("status = %v: %v", res.Status, res.Error)
	}
	if len(nav.jumped) != 1 || nav.jumped[0] != 7 {
		t.Errorf("jumped = %v, want [7]", nav.jumped)
	}
	if res.ViewUpdate.ScrollTo == nil || res.ViewUpdate.ScrollTo.Line != 7 || res.ViewUpdate.ScrollTo.Column != 4 {
		t.Errorf("ScrollTo = %+v", res.ViewUpdate.ScrollTo)
	}
}

func TestGotoNoIdentifier(t *testing.T) {
	h := NewHandler()
	ctx := host.NewContext(textbuf.New("test.py", sample))
	ctx.Navigator = &recordNav{}

	tests := []struct {
		name   string
		cursor host.Cursor
	}{
		{"blank line", host.Cursor{Line: 3, Column: 0}},
		{"numeric literal", host.Cursor{Line: 6, Column: 25}}, // on "10"
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx.Cursor = tt.cursor
			res := h.HandleAction(action.New(ActionGoto), ctx)
			if res.Status != action.StatusNoOp {
				t.Errorf("status = %v, want NoOp", res.Status)
			}
		})
	}
}

func TestGotoNoDefinition(t *testing.T) {
	h := NewHandler()
	ctx := host.NewContext(textbuf.New("test.py", sample))
	ctx.Navigator = &recordNav{}
	ctx.Cursor = host.Cursor{Line: 16, Column: 8} // on "read"

	res := h.HandleAction(action.New(ActionGoto), ctx)
	if res.Status != action.StatusNoOp {
		t.Fatalf("status = %v, want NoOp", res.Status)
	}
	if !strings.Contains(res.Message, "read") {
		t.Errorf("message = %q, want the word named", res.Message)
	}
}

func TestGotoNoNavigator(t *testing.T) {
	h := NewHandler()
	ctx := host.NewContext(textbuf.New("test.py", sample))
	ctx.Cursor = host.Cursor{Line: 8, Column: 11}

	res := h.HandleAction(action.New(ActionGoto), ctx)
	if res.Status != action.StatusError {
		t.Errorf("status = %v, want Error", res.Status)
	}
}

func TestGotoMissingBuffer(t *testing.T) {
	h := NewHandler()
	res := h.HandleAction(action.New(ActionGoto), &host.Context{})
	if res.Status != action.StatusError {
		t.Errorf("status = %v, want Error", res.Status)
	}
}

func TestGotoExplicitName(t *testing.T) {
	h := NewHandler()
	nav := &recordNav{}
	ctx := host.NewContext(textbuf.New("test.py", sample))
	ctx.Navigator = nav
	ctx.Cursor = host.Cursor{Line: 1, Column: 7} // cursor word is "os"

	res := h.HandleAction(action.New(ActionGoto).WithText("Widget"), ctx)
	if res.Status != action.StatusOK {
		t.Fatalf("status = %v: %v", res.Status, res.Error)
	}
	if len(nav.jumped) != 1 || nav.jumped[0] != 10 {
		t.Errorf("jumped = %v, want [10]", nav.jumped)
	}

	res = h.HandleAction(action.New(ActionGoto).WithText("missing"), ctx)
	if res.Status != action.StatusNoOp {
		t.Errorf("unknown name: status = %v, want NoOp", res.Status)
	}
	if len(nav.jumped) != 1 {
		t.Errorf("unknown name moved the cursor: jumped = %v", nav.jumped)
	}
}
