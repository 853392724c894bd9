package node

// Node is the tagged variant over the list algebra's members: boxes,
// glue, kerns and penalties. Modeled as an interface rather than a
// union of pointers; the discriminant is the concrete Go type,
// inspected with a type switch at traversal sites (layoutreader,
// linebreak).
type Node interface {
	// NaturalWidth is the node's contribution to a horizontal list's
	// natural width before any glue ratio is applied.
	NaturalWidth() float64
}

// Kern is a fixed-width spacer with no stretch/shrink; discardable at
// line starts.
type Kern struct {
	Width float64
}

func (k Kern) NaturalWidth() float64 { return k.Width }

// PenaltyInfinite is the sentinel magnitude used for a forbidden or
// forced break.
const PenaltyInfinite = 10000

// Penalty is an integer break cost in [-PenaltyInfinite, +PenaltyInfinite].
// A value <= -PenaltyInfinite forces a break; a value >= +PenaltyInfinite
// forbids one. Discardable.
type Penalty struct {
	Value int
}

func (p Penalty) NaturalWidth() float64 { return 0 }

// Forced reports whether this penalty forces a break.
func (p Penalty) Forced() bool { return p.Value <= -PenaltyInfinite }

// Forbidden reports whether this penalty forbids a break.
func (p Penalty) Forbidden() bool { return p.Value >= PenaltyInfinite }

// GlueNode wraps a Glue value as a list member.
type GlueNode struct {
	Glue Glue
}

func (g GlueNode) NaturalWidth() float64 { return g.Glue.Space.Value }

// Rule is a filled rectangle; dimensions may be "running", solved by
// the enclosing container, represented here by a negative value meaning
// "unset".
type Rule struct {
	Width, Height, Depth float64
}

func (r Rule) NaturalWidth() float64 { return r.Width }

// Running is the sentinel for a Rule dimension resolved by its container.
const Running = -1

// CharBox is an atomic printable unit with pre-resolved metric
// width/height/depth — the font-metrics provider that would produce
// these values is an external collaborator, out of scope here.
type CharBox struct {
	Codepoint rune
	Width     float64
	Height    float64
	Depth     float64
}

func (c CharBox) NaturalWidth() float64 { return c.Width }

// Box is the common shape of HBox/VBox: an ordered child list, a
// resolved target dimension, the glue ratio chosen to hit that target,
// the dominant glue order used, and a shift amount applied by the
// enclosing box.
type Box struct {
	Children    []Node
	Width       float64
	Height      float64
	Depth       float64
	Ratio       float64
	Order       Order
	Shift       float64
	Overfull    bool
	Underfull   bool
}

// HBox lays its children out horizontally with a solved glue ratio.
type HBox struct {
	Box
}

func (h HBox) NaturalWidth() float64 { return h.Box.Width }

// VBox lays its children out vertically with a solved glue ratio.
type VBox struct {
	Box
}

func (v VBox) NaturalWidth() float64 { return v.Box.Width }

// childTotals sums child natural widths (glue at its nominal space) and
// accumulates the glue stretch/shrink totals, used by NewHBox before the
// ratio is known.
func childTotals(children []Node) (w0 float64, stretch, shrink Totals) {
	for _, c := range children {
		switch n := c.(type) {
		case GlueNode:
			w0 += n.Glue.Space.Value
			stretch.Add(n.Glue.Stretch)
			shrink.Add(n.Glue.Shrink)
		default:
			w0 += c.NaturalWidth()
		}
	}
	return
}

// childHeightDepth returns the max height and max depth over children:
// the TeX box model rule that an hbox's own height/depth is the extent
// of its tallest/deepest character, box or rule, with glue and kerns
// contributing nothing.
func childHeightDepth(children []Node) (height, depth float64) {
	for _, c := range children {
		var h, d float64
		switch n := c.(type) {
		case CharBox:
			h, d = n.Height, n.Depth
		case Rule:
			h, d = n.Height, n.Depth
		case HBox:
			h, d = n.Box.Height, n.Box.Depth
		case VBox:
			h, d = n.Box.Height, n.Box.Depth
		default:
			continue
		}
		if h > height {
			height = h
		}
		if d > depth {
			depth = d
		}
	}
	return
}

// childWidth returns the max natural width over children, the
// vertical-list symmetry of childHeightDepth: a vbox's own width is
// the extent of its widest box or rule.
func childWidth(children []Node) float64 {
	var width float64
	for _, c := range children {
		var w float64
		switch n := c.(type) {
		case Rule:
			w = n.Width
		case HBox:
			w = n.Box.Width
		case VBox:
			w = n.Box.Width
		default:
			continue
		}
		if w > width {
			width = w
		}
	}
	return width
}

// NewHBox builds an HBox targeting width w, solving the glue ratio.
// Height/Depth are the max over the children's own height/depth.
// tolerance marks the box overfull/underfull when the resulting ratio
// falls outside [-1, tolerance] or is infinite.
func NewHBox(children []Node, w float64, tolerance float64) HBox {
	w0, stretch, shrink := childTotals(children)
	r, o := SolveRatio(w0, stretch, shrink, w)
	height, depth := childHeightDepth(children)
	hb := HBox{Box{
		Children: children,
		Width:    w,
		Height:   height,
		Depth:    depth,
		Ratio:    r,
		Order:    o,
	}}
	if r < -1 {
		hb.Overfull = true
	}
	if r > tolerance {
		hb.Underfull = true
	}
	return hb
}

// NewVBox builds a VBox targeting height h, solving the glue ratio
// symmetrically to NewHBox over the vertical totals of children. Width
// is the max over the children's own width.
func NewVBox(children []Node, h float64, tolerance float64) VBox {
	var h0 float64
	var stretch, shrink Totals
	for _, c := range children {
		switch n := c.(type) {
		case GlueNode:
			h0 += n.Glue.Space.Value
			stretch.Add(n.Glue.Stretch)
			shrink.Add(n.Glue.Shrink)
		case HBox:
			h0 += n.Box.Height + n.Box.Depth
		case VBox:
			h0 += n.Box.Height + n.Box.Depth
		default:
			h0 += c.NaturalWidth()
		}
	}
	r, o := SolveRatio(h0, stretch, shrink, h)
	vb := VBox{Box{
		Children: children,
		Width:    childWidth(children),
		Height:   h,
		Ratio:    r,
		Order:    o,
	}}
	if r < -1 {
		vb.Overfull = true
	}
	if r > tolerance {
		vb.Underfull = true
	}
	return vb
}
