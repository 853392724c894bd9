package mode

import (
	"testing"

	"github.com/ByLCY/typeset/linebreak"
	"github.com/ByLCY/typeset/node"
	"github.com/ByLCY/typeset/token"
)

type fixedMetrics struct{}

func (fixedMetrics) Width(r rune) float64  { return 6 }
func (fixedMetrics) Height(r rune) float64 { return 10 }
func (fixedMetrics) Depth(r rune) float64  { return 2 }

func feed(t *testing.T, m *Machine, s string) {
	t.Helper()
	tok := token.New()
	for _, r := range s {
		tok.Feed(r)
	}
	for _, tk := range tok.Drain() {
		if err := m.Advance(tk); err != nil {
			t.Fatalf("advance(%v): %v", tk, err)
		}
	}
}

func TestVerticalModeEntersHorizontalOnFirstCharacter(t *testing.T) {
	par := linebreak.Default()
	par.HSize = 200
	m := NewMachine(fixedMetrics{}, par)

	feed(t, m, "hi")

	if m.Top().Kind() != Horizontal {
		t.Fatalf("expected horizontal mode after first character, got %v", m.Top().Kind())
	}
	h := m.Top().(*HorizontalMode)
	if len(h.Hlist()) < 3 {
		t.Fatalf("expected at least the indent kern plus two char boxes")
	}
}

func TestParPopsBackToVerticalAndAppendsLines(t *testing.T) {
	par := linebreak.Default()
	par.HSize = 200
	m := NewMachine(fixedMetrics{}, par)

	feed(t, m, "hi")
	if err := m.Advance(token.ControlSeq("par")); err != nil {
		t.Fatalf("par: %v", err)
	}

	if m.Top().Kind() != Vertical {
		t.Fatalf("expected vertical mode after \\par, got %v", m.Top().Kind())
	}
	if len(m.VList) == 0 {
		t.Fatalf("expected \\par to append the broken paragraph to the vertical list")
	}
}

func TestNoindentDropsTheAutomaticIndent(t *testing.T) {
	par := linebreak.Default()
	par.HSize = 200
	m := NewMachine(fixedMetrics{}, par)

	m.Push(NewHorizontalMode(20))
	if err := m.Advance(token.ControlSeq("noindent")); err != nil {
		t.Fatalf("noindent: %v", err)
	}
	feed(t, m, "h")

	h := m.Top().(*HorizontalMode)
	if _, ok := h.Hlist()[0].(node.Kern); ok {
		t.Fatalf("expected noindent to remove the leading indent kern")
	}
}

func TestMathShiftEntersAndExitsMathMode(t *testing.T) {
	par := linebreak.Default()
	par.HSize = 200
	m := NewMachine(fixedMetrics{}, par)

	m.Push(NewHorizontalMode(0))
	if err := m.Advance(token.Char('$', token.MathShift)); err != nil {
		t.Fatalf("enter math: %v", err)
	}
	if m.Top().Kind() != Math {
		t.Fatalf("expected math mode, got %v", m.Top().Kind())
	}
	feed(t, m, "x")
	if err := m.Advance(token.Char('$', token.MathShift)); err != nil {
		t.Fatalf("exit math: %v", err)
	}
	if m.Top().Kind() != Horizontal {
		t.Fatalf("expected back in horizontal mode, got %v", m.Top().Kind())
	}
	h := m.Top().(*HorizontalMode)
	last := h.Hlist()[len(h.Hlist())-1]
	if _, ok := last.(node.HBox); !ok {
		t.Fatalf("expected the math handoff to append a placeholder box, got %T", last)
	}
}
