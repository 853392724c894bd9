package linebreak

import (
	"errors"
	"testing"

	"github.com/ByLCY/typeset/node"
)

func word(s string, charWidth float64) []node.Node {
	out := make([]node.Node, 0, len(s))
	for _, r := range s {
		out = append(out, node.CharBox{Codepoint: r, Width: charWidth, Height: 10})
	}
	return out
}

func interword() node.Node {
	return node.GlueNode{Glue: node.Glue{
		Space:   node.Pt(6),
		Stretch: node.Amount{Value: 3},
		Shrink:  node.Amount{Value: 2},
	}}
}

func TestPrepareDropsTrailingGlueAndAppendsTerminator(t *testing.T) {
	hlist := append(word("hi", 6), interword())
	out := Prepare(hlist, Default())

	if len(out) != len(hlist)-1+3 {
		t.Fatalf("expected trailing glue dropped and 3 nodes appended, got len %d", len(out))
	}
	if _, ok := out[len(out)-3].(node.Penalty); !ok {
		t.Fatalf("expected penalty at position -3")
	}
	if p := out[len(out)-3].(node.Penalty); !p.Forbidden() {
		t.Fatalf("expected first appended penalty to be +infinite (forbidding a break)")
	}
	if _, ok := out[len(out)-2].(node.GlueNode); !ok {
		t.Fatalf("expected parfillskip glue at position -2")
	}
	last, ok := out[len(out)-1].(node.Penalty)
	if !ok || last.Value != -node.PenaltyInfinite {
		t.Fatalf("expected -infinite penalty terminator, got %+v", out[len(out)-1])
	}
}

func TestComputeBreakpointsBreaksAParagraphAcrossLines(t *testing.T) {
	var hlist []node.Node
	words := []string{"the", "quick", "brown", "fox", "jumps", "over", "lazy", "dog"}
	for i, w := range words {
		if i > 0 {
			hlist = append(hlist, interword())
		}
		hlist = append(hlist, word(w, 6)...)
	}

	cfg := Default()
	cfg.HSize = 60
	hlist = Prepare(hlist, cfg)

	chain, err := ComputeBreakpoints(hlist, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chain) < 3 {
		t.Fatalf("expected the paragraph to span multiple lines, got %d breakpoints", len(chain))
	}
	if chain[0].Position != 0 {
		t.Fatalf("expected chain to start at position 0, got %d", chain[0].Position)
	}
	for i := 1; i < len(chain); i++ {
		if chain[i].Position <= chain[i-1].Position {
			t.Fatalf("expected strictly increasing positions, got %d then %d", chain[i-1].Position, chain[i].Position)
		}
		if chain[i].Line != chain[i-1].Line+1 {
			t.Fatalf("expected consecutive line numbers, got %d then %d", chain[i-1].Line, chain[i].Line)
		}
	}
	if last := chain[len(chain)-1]; last.Position != len(hlist)-1 {
		t.Fatalf("expected the chain to terminate at the final penalty, got position %d of %d", last.Position, len(hlist))
	}
}

func TestComputeBreakpointsReturnsErrInfeasibleWhenNoBreakSurvives(t *testing.T) {
	hlist := []node.Node{
		node.CharBox{Width: 100},
		node.GlueNode{Glue: node.Glue{Space: node.Zero}},
		node.CharBox{Width: 100},
	}
	cfg := Paragraph{HSize: 10, Tolerance: 0}

	_, err := ComputeBreakpoints(hlist, cfg)
	if !errors.Is(err, ErrInfeasible) {
		t.Fatalf("expected ErrInfeasible, got %v", err)
	}
}

func TestFitnessClassBuckets(t *testing.T) {
	cases := []struct {
		ratio float64
		want  Fitness
	}{
		{-0.9, Tight},
		{0.0, Decent},
		{0.9, Loose},
		{3.0, VeryLoose},
	}
	for _, c := range cases {
		if got := fitnessClass(c.ratio); got != c.want {
			t.Errorf("fitnessClass(%v) = %v, want %v", c.ratio, got, c.want)
		}
	}
}

func TestCompatibleFitnessAllowsAtMostOneBucketApart(t *testing.T) {
	if !compatibleFitness(Decent, Loose) {
		t.Errorf("Decent and Loose should be compatible")
	}
	if compatibleFitness(Tight, VeryLoose) {
		t.Errorf("Tight and VeryLoose should not be compatible")
	}
}

func TestComputeDemeritsPenalizesNegativePenaltyLess(t *testing.T) {
	base := computeDemerits(10, 100, 0)
	positive := computeDemerits(10, 100, 50)
	negative := computeDemerits(10, 100, -50)
	if negative >= base {
		t.Errorf("a negative (encouraging) penalty should reduce demerits below the zero-penalty baseline")
	}
	if positive <= base {
		t.Errorf("a positive (discouraging) penalty should raise demerits above the zero-penalty baseline")
	}
}

func TestComputeDemeritsForcedBreakIgnoresPenaltySquare(t *testing.T) {
	l := int64(10 + 100)
	got := computeDemerits(10, 100, -node.PenaltyInfinite)
	if got != l*l {
		t.Errorf("a break at +-infinite penalty should not add p^2, got %d want %d", got, l*l)
	}
}

func TestCreateLineDefaultAddsSkipsOnly(t *testing.T) {
	cfg := Default()
	cfg.HSize = 100
	hlist := word("hi", 6)
	hb := CreateLine(cfg, hlist, 0, 0, len(hlist))
	if len(hb.Children) != len(hlist)+2 {
		t.Fatalf("expected leftskip+children+rightskip, got %d children", len(hb.Children))
	}
}

func TestCreateLineHangIndentAddsKern(t *testing.T) {
	cfg := Default()
	cfg.HSize = 100
	cfg.HangIndent = 20
	cfg.HangAfter = 0
	hlist := word("hi", 6)
	hb := CreateLine(cfg, hlist, 0, 0, len(hlist))
	k, ok := hb.Children[0].(node.Kern)
	if !ok || k.Width != 20 {
		t.Fatalf("expected a leading 20pt kern for positive hangindent, got %+v", hb.Children[0])
	}
}

func TestCreateLineParShapeUsesRowIndent(t *testing.T) {
	cfg := Default()
	cfg.ParShape = []ParShapeRow{{Indent: 15, Length: 80}, {Indent: 0, Length: 100}}
	hlist := word("hi", 6)
	hb := CreateLine(cfg, hlist, 0, 0, len(hlist))
	k, ok := hb.Children[0].(node.Kern)
	if !ok || k.Width != 15 {
		t.Fatalf("expected row 0's indent as a leading kern, got %+v", hb.Children[0])
	}
	if hb.Box.Width != 80 {
		t.Fatalf("expected target width from parshape row 0's length, got %v", hb.Box.Width)
	}
}

func TestIsDiscardableAndConsumeDiscardable(t *testing.T) {
	hlist := []node.Node{
		node.GlueNode{},
		node.Kern{Width: 1},
		node.Penalty{},
		node.CharBox{Width: 1},
	}
	if !IsDiscardable(hlist[0]) || !IsDiscardable(hlist[1]) || !IsDiscardable(hlist[2]) {
		t.Fatalf("glue, kern and penalty should all be discardable")
	}
	if IsDiscardable(hlist[3]) {
		t.Fatalf("a char box should not be discardable")
	}
	if got := ConsumeDiscardable(hlist, 0); got != 3 {
		t.Fatalf("expected ConsumeDiscardable to stop at the char box, got %d", got)
	}
}

func TestAppendLineUsesBaselineSkipWhenRoomAllows(t *testing.T) {
	cfg := Default()
	prevDepth := 0.0
	line := node.NewHBox(word("a", 6), 6, cfg.Tolerance)
	line.Box.Height = 8
	result := AppendLine(nil, line, &prevDepth, cfg)
	g, ok := result[0].(node.GlueNode)
	if !ok {
		t.Fatalf("expected leading interline glue")
	}
	if g.Glue.Space.Value != cfg.BaselineSkip.Space.Value-line.Box.Height {
		t.Fatalf("expected baselineskip minus line height, got %v", g.Glue.Space.Value)
	}
	if prevDepth != line.Box.Depth {
		t.Fatalf("expected prevDepth updated to the new line's depth")
	}
}
