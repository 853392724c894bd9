// Package layoutreader implements component B: walking a composed box
// tree and yielding positioned leaves.
package layoutreader

import (
	"fmt"

	"github.com/ByLCY/typeset/node"
)

// Pos is a traversal coordinate: x grows right, y grows up.
type Pos struct {
	X, Y float64
}

// Full visits every descendant box; void return means the whole tree is
// walked.
type Full func(n node.Node, p Pos)

// Partial visits boxes until the visitor returns true ("done"); this
// halts all recursion levels immediately.
type Partial func(n node.Node, p Pos) bool

// Read dispatches on the visitor's type — Full or Partial — and walks
// layout starting at (0, height(layout)): the root positioned with its
// baseline at y = height(root).
func Read(visitor any, layout node.Node) error {
	return ReadAt(visitor, layout, Pos{X: 0, Y: rootHeight(layout)})
}

// ReadAt is Read with an explicit starting position.
func ReadAt(visitor any, layout node.Node, pos Pos) error {
	switch v := visitor.(type) {
	case Full:
		readFull(v, layout, pos)
		return nil
	case Partial:
		readPartial(v, layout, pos)
		return nil
	default:
		return fmt.Errorf("layoutreader: visitor must be layoutreader.Full or layoutreader.Partial, got %T", visitor)
	}
}

func rootHeight(n node.Node) float64 {
	switch b := n.(type) {
	case node.VBox:
		return b.Box.Height
	case node.HBox:
		return b.Box.Height
	case node.Rule:
		return b.Height
	default:
		return 0
	}
}

func readFull(reader Full, n node.Node, pos Pos) {
	switch b := n.(type) {
	case node.Rule:
		reader(b, pos)
	case node.HBox:
		readHBoxFull(reader, b, pos)
	case node.VBox:
		readVBoxFull(reader, b, pos)
	default:
		reader(n, pos)
	}
}

// readHBoxFull preorder-visits box, then walks children left to right,
// advancing pos.x by each child's contribution.
func readHBoxFull(reader Full, layout node.HBox, pos Pos) {
	reader(layout, pos)

	for _, child := range layout.Children {
		switch c := child.(type) {
		case node.Rule:
			reader(c, pos)
			pos.X += c.Width
		case node.HBox:
			shifted := Pos{X: pos.X, Y: pos.Y + c.Box.Shift}
			readHBoxFull(reader, c, shifted)
			pos.X += c.Box.Width
		case node.VBox:
			shifted := Pos{X: pos.X, Y: pos.Y + c.Box.Shift}
			readVBoxFull(reader, c, shifted)
			pos.X += c.Box.Width
		case node.Kern:
			pos.X += c.Width
		case node.GlueNode:
			pos.X += glueAdvance(layout.Box, c)
		default:
			reader(child, pos)
			pos.X += child.NaturalWidth()
		}
	}
}

// readVBoxFull is the vertical symmetry of readHBoxFull, adjusted by
// height of each child before emission and depth after.
func readVBoxFull(reader Full, layout node.VBox, pos Pos) {
	reader(layout, pos)

	pos.Y -= layout.Box.Height

	for _, child := range layout.Children {
		switch c := child.(type) {
		case node.Rule:
			pos.Y += c.Height
			reader(c, pos)
			pos.Y += c.Depth
		case node.HBox:
			pos.Y += c.Box.Height
			shifted := Pos{X: pos.X + c.Box.Shift, Y: pos.Y}
			readHBoxFull(reader, c, shifted)
			pos.Y += c.Box.Depth
		case node.VBox:
			pos.Y += c.Box.Height
			shifted := Pos{X: pos.X + c.Box.Shift, Y: pos.Y}
			readVBoxFull(reader, c, shifted)
			pos.Y += c.Box.Depth
		case node.Kern:
			pos.Y += c.Width
		case node.GlueNode:
			pos.Y += glueAdvance(layout.Box, c)
		default:
			reader(child, pos)
		}
	}
}

func readPartial(reader Partial, n node.Node, pos Pos) bool {
	switch b := n.(type) {
	case node.Rule:
		return reader(b, pos)
	case node.HBox:
		return readHBoxPartial(reader, b, pos)
	case node.VBox:
		return readVBoxPartial(reader, b, pos)
	default:
		return reader(n, pos)
	}
}

func readHBoxPartial(reader Partial, layout node.HBox, pos Pos) bool {
	if reader(layout, pos) {
		return true
	}

	for _, child := range layout.Children {
		switch c := child.(type) {
		case node.Rule:
			if reader(c, pos) {
				return true
			}
			pos.X += c.Width
		case node.HBox:
			shifted := Pos{X: pos.X, Y: pos.Y + c.Box.Shift}
			if readHBoxPartial(reader, c, shifted) {
				return true
			}
			pos.X += c.Box.Width
		case node.VBox:
			shifted := Pos{X: pos.X, Y: pos.Y + c.Box.Shift}
			if readVBoxPartial(reader, c, shifted) {
				return true
			}
			pos.X += c.Box.Width
		case node.Kern:
			pos.X += c.Width
		case node.GlueNode:
			pos.X += glueAdvance(layout.Box, c)
		default:
			if reader(child, pos) {
				return true
			}
			pos.X += child.NaturalWidth()
		}
	}
	return false
}

func readVBoxPartial(reader Partial, layout node.VBox, pos Pos) bool {
	if reader(layout, pos) {
		return true
	}

	pos.Y -= layout.Box.Height

	for _, child := range layout.Children {
		switch c := child.(type) {
		case node.Rule:
			pos.Y += c.Height
			if reader(c, pos) {
				return true
			}
			pos.Y += c.Depth
		case node.HBox:
			pos.Y += c.Box.Height
			shifted := Pos{X: pos.X + c.Box.Shift, Y: pos.Y}
			if readHBoxPartial(reader, c, shifted) {
				return true
			}
			pos.Y += c.Box.Depth
		case node.VBox:
			pos.Y += c.Box.Height
			shifted := Pos{X: pos.X + c.Box.Shift, Y: pos.Y}
			if readVBoxPartial(reader, c, shifted) {
				return true
			}
			pos.Y += c.Box.Depth
		case node.Kern:
			pos.Y += c.Width
		case node.GlueNode:
			pos.Y += glueAdvance(layout.Box, c)
		default:
			if reader(child, pos) {
				return true
			}
		}
	}
	return false
}

// glueAdvance computes a glue node's contribution to the cursor: its
// nominal space, plus ratio*stretch|shrink when the glue's order on the
// active side matches the containing box's chosen order.
func glueAdvance(container node.Box, g node.GlueNode) float64 {
	advance := g.Glue.Space.Value
	if container.Ratio < 0 {
		if container.Order == g.Glue.Shrink.Order {
			advance += container.Ratio * g.Glue.Shrink.Value
		}
	} else {
		if container.Order == g.Glue.Stretch.Order {
			advance += container.Ratio * g.Glue.Stretch.Value
		}
	}
	return advance
}
