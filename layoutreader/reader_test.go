package layoutreader

import (
	"math"
	"testing"

	"github.com/ByLCY/typeset/node"
)

func sampleHBox() node.HBox {
	children := []node.Node{
		node.CharBox{Width: 10, Height: 7, Depth: 1},
		node.GlueNode{Glue: node.Glue{Space: node.Pt(5), Stretch: node.Amount{Value: 5}}},
		node.CharBox{Width: 10, Height: 7, Depth: 1},
	}
	return node.NewHBox(children, 30, 200)
}

func TestReadFullVisitsEveryNode(t *testing.T) {
	hb := sampleHBox()
	var visited int
	var lastX float64
	var fn Full = func(n node.Node, p Pos) {
		visited++
		lastX = p.X
	}
	if err := Read(fn, hb); err != nil {
		t.Fatalf("Read: %v", err)
	}
	// box itself + 2 char boxes + 1 glue-advance step does not itself call reader
	if visited != 3 {
		t.Fatalf("visited = %d, want 3 (hbox + 2 charboxes)", visited)
	}
	if lastX <= 0 {
		t.Fatalf("expected cursor to have advanced, got %v", lastX)
	}
}

func TestReadPartialShortCircuits(t *testing.T) {
	hb := sampleHBox()
	var visited int
	var fn Partial = func(n node.Node, p Pos) bool {
		visited++
		return true // stop immediately
	}
	if err := Read(fn, hb); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if visited != 1 {
		t.Fatalf("visited = %d, want 1 (should short-circuit on first call)", visited)
	}
}

func TestRootStartsAtHeight(t *testing.T) {
	vb := node.NewVBox([]node.Node{
		node.HBox{Box: node.Box{Width: 10, Height: 8, Depth: 2}},
	}, 8, 200)
	var firstY float64
	first := true
	var fn Full = func(n node.Node, p Pos) {
		if first {
			firstY = p.Y
			first = false
		}
	}
	if err := Read(fn, vb); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if math.Abs(firstY-vb.Box.Height) > 1e-9 {
		t.Fatalf("root y = %v, want %v (height of root)", firstY, vb.Box.Height)
	}
}

func TestReadRejectsWrongVisitorType(t *testing.T) {
	hb := sampleHBox()
	err := Read(func(node.Node, Pos) {}, hb)
	if err == nil {
		t.Fatalf("expected error for a visitor that is not layoutreader.Full or layoutreader.Partial")
	}
}
