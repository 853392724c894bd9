package linebreak

import (
	"errors"
	"fmt"
	"math"

	"github.com/ByLCY/typeset/node"
)

// ErrInfeasible is returned when no active breakpoint survives a full
// pass over the horizontal list.
var ErrInfeasible = errors.New("linebreak: no feasible breakpoint")

// Prepare appends the horizontal list's mandatory terminator: a
// dangling trailing glue is dropped, then infinite-positive penalty,
// parfillskip glue, infinite-negative penalty are appended, mirroring
// the reference implementation's Paragraph::prepare.
func Prepare(hlist []node.Node, cfg Paragraph) []node.Node {
	if len(hlist) == 0 {
		return hlist
	}
	out := hlist
	if _, isGlue := out[len(out)-1].(node.GlueNode); isGlue {
		out = out[:len(out)-1]
	}
	out = append(append([]node.Node{}, out...),
		node.Penalty{Value: node.PenaltyInfinite},
		node.GlueNode{Glue: cfg.ParFillSkip},
		node.Penalty{Value: -node.PenaltyInfinite},
	)
	return out
}

// ComputeFeasibleBreakpoints runs the main scan loop over hlist,
// returning the surviving active breakpoints after a full pass.
func ComputeFeasibleBreakpoints(hlist []node.Node, cfg Paragraph) []*Breakpoint {
	var sum Sum
	prevIsBox := false

	active := []*Breakpoint{{Position: 0, Line: 0, Fitness: Tight}}

	for i, nd := range hlist {
		switch n := nd.(type) {
		case node.GlueNode:
			if prevIsBox {
				active = tryBreak(active, hlist, i, sum, cfg)
			}
			sum.Width += n.Glue.Space.Value
			sum.Stretch.Add(n.Glue.Stretch)
			sum.Shrink.Add(n.Glue.Shrink)
			prevIsBox = false
		case node.Kern:
			sum.Width += n.Width
			prevIsBox = false
		case node.Penalty:
			if !n.Forbidden() {
				active = tryBreak(active, hlist, i, sum, cfg)
			}
			prevIsBox = false
		default:
			sum.Width += nd.NaturalWidth()
			prevIsBox = true
		}
	}

	return active
}

type candidate struct {
	active *Breakpoint
	demerits int64
}

// tryBreak attempts a break at hlist[it] against every active
// breakpoint. Deactivation (removal from active) happens before any
// candidate using that breakpoint's value is recorded for the *next*
// iteration, but the just-deactivated breakpoint's own ratio is still
// used to build this iteration's candidate: deactivate, then still
// consider the value already computed.
func tryBreak(active []*Breakpoint, hlist []node.Node, it int, sum Sum, cfg Paragraph) []*Breakpoint {
	maxRatio := cfg.Tolerance

	nd := hlist[it]
	forced := false
	penaltyValue := 0
	if p, ok := nd.(node.Penalty); ok {
		forced = p.Forced()
		penaltyValue = p.Value
	}

	idx := 0
	for idx < len(active) {
		currentLine := active[idx].Line
		var candidates [4]*candidate

		for idx < len(active) && active[idx].Line == currentLine {
			bp := active[idx]
			ratio := computeGlueRatio(sum, bp, currentLine, cfg)

			if ratio < -1 || forced {
				active = append(active[:idx], active[idx+1:]...)
			} else {
				idx++
			}

			if ratio >= -1 && ratio <= maxRatio {
				badness := computeBadness(ratio)
				d := computeDemerits(cfg.LinePenalty, badness, int64(penaltyValue))
				fc := fitnessClass(ratio)
				if !compatibleFitness(fc, bp.Fitness) {
					d += cfg.AdjDemerits
				}
				d += bp.Demerits
				if candidates[fc] == nil || d < candidates[fc].demerits {
					candidates[fc] = &candidate{active: bp, demerits: d}
				}
			}
		}

		localSum := squeezeDiscardables(sum, hlist, it)

		var fresh []*Breakpoint
		for fc := 0; fc < 4; fc++ {
			c := candidates[fc]
			if c == nil {
				continue
			}
			fresh = append(fresh, &Breakpoint{
				Position: it,
				Demerits: c.demerits,
				Line: c.active.Line + 1,
				Fitness: Fitness(fc),
				Totals: localSum,
				Previous: c.active,
			})
		}
		if len(fresh) > 0 {
			active = append(active[:idx], append(fresh, active[idx:]...)...)
			idx += len(fresh)
		}
	}

	return active
}

// computeGlueRatio computes the adjustment ratio from bp to the
// current scan position.
func computeGlueRatio(sum Sum, bp *Breakpoint, currentLine int, cfg Paragraph) float64 {
	width := sum.Width - bp.Totals.Width - cfg.LeftSkip.Space.Value - cfg.RightSkip.Space.Value
	lineLength := cfg.LineLength(currentLine)
	skipStretch := node.Totals{}
	skipStretch.Add(cfg.LeftSkip.Stretch)
	skipStretch.Add(cfg.RightSkip.Stretch)
	skipShrink := node.Totals{}
	skipShrink.Add(cfg.LeftSkip.Shrink)
	skipShrink.Add(cfg.RightSkip.Shrink)

	switch {
	case width < lineLength:
		diff := sum.Stretch.Plus(skipStretch).Minus(bp.Totals.Stretch)
		if diff.Order() != node.OrderNormal {
			return 0
		}
		if diff.Normal > 0 {
			return (lineLength - width) / diff.Normal
		}
		return math.Inf(1)
	case width > lineLength:
		diff := sum.Shrink.Plus(skipShrink).Minus(bp.Totals.Shrink)
		if diff.Order() != node.OrderNormal {
			return 0
		}
		if diff.Normal > 0 {
			return (lineLength - width) / diff.Normal
		}
		return math.Inf(-1)
	default:
		return 0
	}
}

// computeBadness is badness = min(10000, floor(100*|r|^3)).
func computeBadness(r float64) int64 {
	b := math.Floor(100 * math.Pow(math.Abs(r), 3))
	if b > 10000 {
		b = 10000
	}
	return int64(b)
}

// computeDemerits implements three-branch demerit formula.
func computeDemerits(linepenalty, badness, p int64) int64 {
	l := linepenalty + badness
	switch {
	case p >= 0 && p < node.PenaltyInfinite:
		return l*l + p*p
	case p > -node.PenaltyInfinite && p < 0:
		return l*l - p*p
	default:
		return l * l
	}
}

// squeezeDiscardables accumulates glue widths and kern widths from it
// forward, stopping at the next box or at a forced break after it.
func squeezeDiscardables(sum Sum, hlist []node.Node, it int) Sum {
	out := sum
	for i := it; i < len(hlist); i++ {
		switch n := hlist[i].(type) {
		case node.GlueNode:
			out.Width += n.Glue.Space.Value
			out.Stretch.Add(n.Glue.Stretch)
			out.Shrink.Add(n.Glue.Shrink)
		case node.Kern:
			out.Width += n.Width
		case node.Penalty:
			if i != it && n.Forced() {
				return out
			}
		default:
			return out
		}
	}
	return out
}

// ComputeBreakpoints selects the active breakpoint of minimum
// demerits, walks backward via Previous, and reverses, yielding an
// ordered chain where breakpoints[k] terminates line k.
func ComputeBreakpoints(hlist []node.Node, cfg Paragraph) ([]*Breakpoint, error) {
	active := ComputeFeasibleBreakpoints(hlist, cfg)
	if len(active) == 0 {
		return nil, ErrInfeasible
	}
	best := active[0]
	for _, bp := range active[1:] {
		if bp.Demerits < best.Demerits {
			best = bp
		}
	}

	var chain []*Breakpoint
	for bp := best; bp != nil; bp = bp.Previous {
		chain = append(chain, bp)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}

// CreateLine builds the HBox for line linenum spanning hlist[begin:end].
func CreateLine(cfg Paragraph, hlist []node.Node, linenum, begin, end int) node.HBox {
	slice := hlist[begin:end]

	switch {
	case len(cfg.ParShape) > 0:
		row := cfg.ParShape[len(cfg.ParShape)-1]
		if linenum < len(cfg.ParShape) {
			row = cfg.ParShape[linenum]
		}
		children := make([]node.Node, 0, len(slice)+3)
		children = append(children, node.Kern{Width: row.Indent})
		children = append(children, node.GlueNode{Glue: cfg.LeftSkip})
		children = append(children, slice...)
		children = append(children, node.GlueNode{Glue: cfg.RightSkip})
		return node.NewHBox(children, cfg.LineLength(linenum), cfg.Tolerance)

	case cfg.HangIndent != 0 && cfg.HangindentAppliesToLine(linenum):
		children := make([]node.Node, 0, len(slice)+3)
		if cfg.HangIndent > 0 {
			children = append(children, node.Kern{Width: cfg.HangIndent})
		}
		children = append(children, node.GlueNode{Glue: cfg.LeftSkip})
		children = append(children, slice...)
		children = append(children, node.GlueNode{Glue: cfg.RightSkip})
		if cfg.HangIndent < 0 {
			children = append(children, node.Kern{Width: math.Abs(cfg.HangIndent)})
		}
		return node.NewHBox(children, cfg.LineLength(linenum)+math.Abs(cfg.HangIndent), cfg.Tolerance)

	default:
		children := make([]node.Node, 0, len(slice)+2)
		children = append(children, node.GlueNode{Glue: cfg.LeftSkip})
		children = append(children, slice...)
		children = append(children, node.GlueNode{Glue: cfg.RightSkip})
		return node.NewHBox(children, cfg.LineLength(linenum), cfg.Tolerance)
	}
}

// IsDiscardable reports whether n is dropped when it appears at the
// start of a line.
func IsDiscardable(n node.Node) bool {
	switch n.(type) {
	case node.Kern, node.GlueNode, node.Penalty:
		return true
	default:
		return false
	}
}

// ConsumeDiscardable advances pos past any run of discardable nodes.
func ConsumeDiscardable(hlist []node.Node, pos int) int {
	for pos < len(hlist) && IsDiscardable(hlist[pos]) {
		pos++
	}
	return pos
}

// AppendLine inserts interline glue before line and appends it to
// result, mirroring VListBuilder::push_back.
func AppendLine(result []node.Node, line node.HBox, prevDepth *float64, cfg Paragraph) []node.Node {
	needed := cfg.BaselineSkip.Space.Value - *prevDepth - line.Box.Height
	if needed >= cfg.LineSkipLimit {
		result = append(result, node.GlueNode{Glue: node.Glue{
			Space: node.Pt(needed),
			Stretch: cfg.BaselineSkip.Stretch,
			Shrink: cfg.BaselineSkip.Shrink,
		}})
	} else {
		result = append(result, node.GlueNode{Glue: cfg.LineSkip})
	}
	result = append(result, line)
	*prevDepth = line.Box.Depth
	return result
}

// Create runs ComputeBreakpoints over hlist and assembles the chosen
// lines into a vertical list,
func Create(hlist []node.Node, cfg Paragraph) ([]node.Node, error) {
	if len(hlist) == 0 {
		return nil, nil
	}
	breakpoints, err := ComputeBreakpoints(hlist, cfg)
	if err != nil {
		return nil, fmt.Errorf("linebreak: %w", err)
	}

	var result []node.Node
	prevDepth := cfg.PrevDepth
	pos := 0
	for i := 1; i < len(breakpoints); i++ {
		bp := breakpoints[i]
		line := CreateLine(cfg, hlist, bp.Line-1, pos, bp.Position)
		result = AppendLine(result, line, &prevDepth, cfg)
		pos = bp.Position
		if i+1 < len(breakpoints) {
			pos = ConsumeDiscardable(hlist, pos)
		}
	}
	return result, nil
}
