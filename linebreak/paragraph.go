// Package linebreak implements component E: the Knuth-Plass optimal
// line-breaking engine — feasible breakpoint search, demerits, fitness
// classes and best-path reconstruction.
package linebreak

import (
	"math"

	"github.com/ByLCY/typeset/node"
)

// ParShapeRow is one row of an explicit per-line indent+length
// schedule.
type ParShapeRow struct {
	Indent float64
	Length float64
}

// Paragraph is the configuration record governing one paragraph's
// line-breaking run, passed by value.
type Paragraph struct {
	HSize float64
	Tolerance float64
	LinePenalty int64
	AdjDemerits int64
	HangIndent float64
	HangAfter int
	ParShape []ParShapeRow
	LeftSkip node.Glue
	RightSkip node.Glue
	BaselineSkip node.Glue
	LineSkip node.Glue
	LineSkipLimit float64
	ParFillSkip node.Glue
	PrevDepth float64
}

// Default returns a Paragraph with TeX's own defaults, per
// the reference line-breaking implementation's Paragraph constructor:
// leftskip/rightskip share a zero glue, baselineskip 12pt with 2pt
// shrink, lineskip 3pt with -1pt stretch, lineskiplimit 2pt, and
// parfillskip an infinitely stretchable glue (fil order).
func Default() Paragraph {
	zero := node.Glue{Space: node.Pt(0)}
	return Paragraph{
		Tolerance: 200,
		LeftSkip: zero,
		RightSkip: zero,
		BaselineSkip: node.Glue{Space: node.Pt(12), Shrink: node.Amount{Value: 2}},
		LineSkip: node.Glue{Space: node.Pt(3), Stretch: node.Amount{Value: -1}},
		LineSkipLimit: 2,
		ParFillSkip: node.Glue{Space: node.Pt(0), Stretch: node.Amount{Value: 1, Order: node.OrderFil}},
	}
}

// HangindentAppliesToLine reports whether hanging indentation applies
// to line n, based on the sign and magnitude of HangAfter.
func (p Paragraph) HangindentAppliesToLine(n int) bool {
	return (p.HangAfter < 0 && n < -p.HangAfter) || (p.HangAfter >= 0 && p.HangAfter <= n)
}

// LineLength returns linelength(n): parshape row n (clamped to the
// last row) takes precedence, then hanging indent, then HSize.
func (p Paragraph) LineLength(n int) float64 {
	if len(p.ParShape) > 0 {
		if n >= len(p.ParShape) {
			return p.ParShape[len(p.ParShape)-1].Length
		}
		return p.ParShape[n].Length
	}
	if p.HangIndent != 0 && p.HangindentAppliesToLine(n) {
		return p.HSize - math.Abs(p.HangIndent)
	}
	return p.HSize
}
