package canvasrenderer

import (
	"bytes"
	"testing"

	"github.com/ByLCY/typeset/node"
)

func simpleLine() node.Node {
	children := []node.Node{
		node.CharBox{Codepoint: 'h', Width: 6, Height: 10, Depth: 0},
		node.CharBox{Codepoint: 'i', Width: 4, Height: 10, Depth: 0},
		node.Rule{Width: 20, Height: 1, Depth: 0},
	}
	return node.HBox{Box: node.Box{Children: children, Width: 30, Height: 10, Depth: 0}}
}

func TestRenderProducesAPDFDocument(t *testing.T) {
	r := NewRenderer()
	out, err := r.Render(simpleLine())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(out) == 0 {
		t.Fatalf("expected non-empty PDF bytes")
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("expected output to start with a PDF header, got %q", out[:4])
	}
}

func TestRenderRejectsNilTree(t *testing.T) {
	r := NewRenderer()
	if _, err := r.Render(nil); err == nil {
		t.Fatalf("expected an error for a nil box tree")
	}
}

func TestExtentUsesOutermostBoxDimensions(t *testing.T) {
	w, h := extent(simpleLine())
	if w != 30 {
		t.Fatalf("expected width 30, got %v", w)
	}
	if h != 10 {
		t.Fatalf("expected height 10, got %v", h)
	}
}
