// Package node implements the node model and list algebra of the
// typesetting core: dimensions, glue totals, kerns, penalties and the
// box variants (Rule, HBox, VBox, CharBox) that make up a laid-out tree.
package node

import "fmt"

// Unit tags a Dimension's scale. pt/em/ex/pc are finite; fil/fill/filll
// are infinite orders of stretch/shrink elasticity.
type Unit int

const (
	UnitPt Unit = iota
	UnitEm
	UnitEx
	UnitPc
	UnitFil
	UnitFill
	UnitFilll
)

func (u Unit) String() string {
	switch u {
	case UnitPt:
		return "pt"
	case UnitEm:
		return "em"
	case UnitEx:
		return "ex"
	case UnitPc:
		return "pc"
	case UnitFil:
		return "fil"
	case UnitFill:
		return "fill"
	case UnitFilll:
		return "filll"
	default:
		return "?"
	}
}

// Finite reports whether u reduces to a point value under a UnitSystem,
// as opposed to carrying an infinite stretch/shrink order.
func (u Unit) Finite() bool {
	return u == UnitPt || u == UnitEm || u == UnitEx || u == UnitPc
}

// Order returns the glue order implied by an infinite unit. Finite units
// have no order and return OrderNormal.
func (u Unit) Order() Order {
	switch u {
	case UnitFil:
		return OrderFil
	case UnitFill:
		return OrderFill
	case UnitFilll:
		return OrderFilll
	default:
		return OrderNormal
	}
}

// UnitSystem maps the finite relative units to points. Pc (pica) has no
// field here: it is a fixed multiple of pt (PicaToPt) and does not vary
// per-document.
type UnitSystem struct {
	Em float64
	Ex float64
	Pt float64
}

// PicaToPt is the fixed pica-to-point ratio (1pc = 12pt), matching TeX.
const PicaToPt = 12.0

// Dimension is a scalar with a unit tag.
type Dimension struct {
	Value float64
	Unit  Unit
}

// Zero is the zero-valued point dimension.
var Zero = Dimension{Value: 0, Unit: UnitPt}

// Pt constructs a finite point dimension.
func Pt(v float64) Dimension { return Dimension{Value: v, Unit: UnitPt} }

// Resolve reduces a finite dimension to a point value under sys. The
// second return value is false for infinite dimensions, which carry an
// order instead of resolving to a scalar.
func (d Dimension) Resolve(sys UnitSystem) (pt float64, finite bool) {
	switch d.Unit {
	case UnitPt:
		return d.Value, true
	case UnitEm:
		return d.Value * sys.Em, true
	case UnitEx:
		return d.Value * sys.Ex, true
	case UnitPc:
		return d.Value * PicaToPt, true
	default:
		return 0, false
	}
}

func (d Dimension) String() string {
	return fmt.Sprintf("%g%s", d.Value, d.Unit)
}
