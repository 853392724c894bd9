package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/typeset/layoutreader"
	"github.com/ByLCY/typeset/node"
	"github.com/ByLCY/typeset/renderer"
)

// Renderer draws a finished box tree via github.com/tdewolff/canvas. No
// font is ever loaded: node.CharBox already carries resolved width,
// height and depth, so every leaf is drawn as a placeholder filled
// rectangle rather than a glyph outline.
type Renderer struct {
	// Margin is added around the box tree's natural extent when sizing
	// the output page.
	Margin float64
	// CharColor/RuleColor tint the two leaf kinds so a rendered page
	// distinguishes text material from rules at a glance.
	CharColor, RuleColor color.Color
}

var _ renderer.Renderer = (*Renderer)(nil)

// NewRenderer returns a Renderer with a 10pt default margin, a light
// gray for text boxes and a dark gray for rules.
func NewRenderer() *Renderer {
	return &Renderer{
		Margin:    10,
		CharColor: canvas.Hex("#c9d6ea"),
		RuleColor: canvas.Hex("#222222"),
	}
}

// Render lays the root box out on a single PDF page sized to its
// natural extent plus margin, drawing every CharBox/Rule leaf as a
// rectangle at its resolved position.
func (r *Renderer) Render(root node.Node) ([]byte, error) {
	if root == nil {
		return nil, fmt.Errorf("canvasrenderer: nil box tree")
	}

	width, height := extent(root)
	width += 2 * r.Margin
	height += 2 * r.Margin

	var buf bytes.Buffer
	writer := pdf.New(&buf, width, height, nil)

	c := canvas.New(width, height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)

	var drawErr error
	visit := layoutreader.Full(func(n node.Node, pos layoutreader.Pos) {
		if drawErr != nil {
			return
		}
		if err := r.drawLeaf(ctx, n, pos); err != nil {
			drawErr = err
		}
	})
	if err := layoutreader.Read(visit, root); err != nil {
		return nil, fmt.Errorf("canvasrenderer: walk box tree: %w", err)
	}
	if drawErr != nil {
		return nil, drawErr
	}

	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("canvasrenderer: write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) drawLeaf(ctx *canvas.Context, n node.Node, pos layoutreader.Pos) error {
	switch b := n.(type) {
	case node.CharBox:
		if b.Width <= 0 {
			return nil
		}
		ctx.SetFillColor(r.CharColor)
		ctx.DrawPath(r.Margin+pos.X, r.Margin+pos.Y-b.Depth, canvas.Rectangle(b.Width, b.Height+b.Depth))
	case node.Rule:
		w, h := b.Width, b.Height+b.Depth
		if w < 0 {
			w = 0
		}
		if h < 0 {
			h = 0
		}
		ctx.SetFillColor(r.RuleColor)
		ctx.DrawPath(r.Margin+pos.X, r.Margin+pos.Y-b.Depth, canvas.Rectangle(w, h))
	}
	return nil
}

// extent computes the outermost box's natural width/height, used to
// size the output page.
func extent(root node.Node) (width, height float64) {
	switch b := root.(type) {
	case node.HBox:
		return b.Box.Width, b.Box.Height + b.Box.Depth
	case node.VBox:
		return b.Box.Width, b.Box.Height + b.Box.Depth
	case node.Rule:
		return b.Width, b.Height + b.Depth
	default:
		return root.NaturalWidth(), 0
	}
}
