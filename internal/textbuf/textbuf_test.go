package textbuf

import (
	"errors"
	"testing"

	"github.com/dshills/textify/internal/host"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"empty", "", []string{""}},
		{"single line", "hello", []string{"hello"}},
		{"trailing newline", "a\nb\n", []string{"a", "b"}},
		{"blank lines kept", "a\n\nb", []string{"a", "", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New("test", tt.content)
			if b.LineCount() != len(tt.want) {
				t.Fatalf("LineCount() = %d, want %d", b.LineCount(), len(tt.want))
			}
			for i, want := range tt.want {
				if got := b.Line(i + 1); got != want {
					t.Errorf("Line(%d) = %q, want %q", i+1, got, want)
				}
			}
		})
	}
}

func TestLineOutOfRange(t *testing.T) {
	b := New("test", "only")
	if got := b.Line(0); got != "" {
		t.Errorf("Line(0) = %q, want empty", got)
	}
	if got := b.Line(2); got != "" {
		t.Errorf("Line(2) = %q, want empty", got)
	}
	if err := b.SetLine(0, "x"); !errors.Is(err, host.ErrLineOutOfRange) {
		t.Errorf("SetLine(0) = %v, want ErrLineOutOfRange", err)
	}
}

func TestSetLine(t *testing.T) {
	b := New("test", "a\nb")
	if err := b.SetLine(2, "changed"); err != nil {
		t.Fatalf("SetLine() error = %v", err)
	}
	if b.Line(2) != "changed" {
		t.Errorf("Line(2) = %q", b.Line(2))
	}
	if b.Text() != "a\nchanged" {
		t.Errorf("Text() = %q", b.Text())
	}
}

func TestLinesReturnsCopy(t *testing.T) {
	b := New("test", "a\nb")
	lines := b.Lines()
	lines[0] = "mutated"
	if b.Line(1) != "a" {
		t.Error("Lines() exposed internal storage")
	}
}

func TestFromLinesCopies(t *testing.T) {
	src := []string{"x", "y"}
	b := FromLines("test", src)
	src[0] = "mutated"
	if b.Line(1) != "x" {
		t.Error("FromLines() retained the caller's slice")
	}

	empty := FromLines("test", nil)
	if empty.LineCount() != 1 || empty.Line(1) != "" {
		t.Errorf("FromLines(nil) = %v", empty.Lines())
	}
}

func TestSetLines(t *testing.T) {
	b := New("test", "old")
	b.SetLines([]string{"n1", "n2"})
	if b.LineCount() != 2 || b.Line(1) != "n1" {
		t.Errorf("after SetLines: %v", b.Lines())
	}
	b.SetLines(nil)
	if b.LineCount() != 1 || b.Line(1) != "" {
		t.Errorf("SetLines(nil) = %v", b.Lines())
	}
}

func TestWordAt(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		col       int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"middle of word", "foo bar baz", 5, "bar", 4, 7},
		{"start of word", "foo bar", 4, "bar", 4, 7},
		{"just past word end", "foo bar", 7, "bar", 4, 7},
		{"on space", "foo bar", 3, "foo", 0, 3},
		{"gap between words", "a  b", 2, "", 0, 0},
		{"underscore and digits", "my_var2 = 1", 3, "my_var2", 0, 7},
		{"out of range", "foo", 10, "", 0, 0},
		{"negative", "foo", -1, "", 0, 0},
		{"empty line", "", 0, "", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := WordAt(tt.line, tt.col)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("WordAt(%q, %d) = %q, %d, %d; want %q, %d, %d",
					tt.line, tt.col, word, start, end, tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestExpandTabs(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		tabWidth int
		want     int
	}{
		{"no indent", "x", 4, 0},
		{"spaces", "    x", 4, 4},
		{"single tab", "\tx", 4, 4},
		{"tab after spaces", "  \tx", 4, 4},
		{"mixed", "\t  x", 4, 6},
		{"tab width 8", "\tx", 8, 8},
		{"whitespace only", "   ", 4, 3},
		{"zero width clamps", "\tx", 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandTabs(tt.line, tt.tabWidth); got != tt.want {
				t.Errorf("ExpandTabs(%q, %d) = %d, want %d", tt.line, tt.tabWidth, got, tt.want)
			}
		})
	}
}

func TestSet(t *testing.T) {
	a := New("a.py", "")
	b := New("b.py", "")
	set := NewSet(a, b)

	names := set.BufferNames()
	if len(names) != 2 || names[0] != "a.py" || names[1] != "b.py" {
		t.Errorf("BufferNames() = %v", names)
	}
	if set.ActiveBuffer() != "a.py" {
		t.Errorf("ActiveBuffer() = %q, want a.py", set.ActiveBuffer())
	}

	if err := set.SwitchTo("b.py"); err != nil {
		t.Fatalf("SwitchTo() error = %v", err)
	}
	if set.ActiveBuffer() != "b.py" || set.Active() != b {
		t.Errorf("active = %q after SwitchTo", set.ActiveBuffer())
	}

	if err := set.SwitchTo("missing.py"); !errors.Is(err, ErrUnknownBuffer) {
		t.Errorf("SwitchTo(missing) = %v, want ErrUnknownBuffer", err)
	}

	empty := NewSet()
	if empty.ActiveBuffer() != "" || empty.Active() != nil {
		t.Error("empty set should have no active buffer")
	}
	empty.Add(a)
	if empty.ActiveBuffer() != "a.py" {
		t.Errorf("ActiveBuffer() after Add = %q", empty.ActiveBuffer())
	}
}
