package linebreak

import "github.com/ByLCY/typeset/node"

// Fitness is a coarse bucket of glue ratio used to prefer visually
// similar adjacent lines.
type Fitness int

const (
	Tight Fitness = iota
	Decent
	Loose
	VeryLoose
)

func (f Fitness) String() string {
	switch f {
	case Tight:
		return "Tight"
	case Decent:
		return "Decent"
	case Loose:
		return "Loose"
	default:
		return "VeryLoose"
	}
}

// fitnessClass buckets ratio into Tight r<-0.5; Decent r<=0.5; Loose
// r<=1; VeryLoose otherwise.
func fitnessClass(r float64) Fitness {
	switch {
	case r < -0.5:
		return Tight
	case r <= 0.5:
		return Decent
	case r <= 1:
		return Loose
	default:
		return VeryLoose
	}
}

// compatibleFitness reports whether two fitness classes differ by at
// most one bucket.
func compatibleFitness(a, b Fitness) bool {
	d := int(a) - int(b)
	if d < 0 {
		d = -d
	}
	return d <= 1
}

// Sum is the running (width, stretch, shrink) accumulation of node
// Totals.
type Sum struct {
	Width float64
	Stretch, Shrink node.Totals
}

// Breakpoint is a feasible break point: position in the hlist,
// cumulative demerits, line index, fitness class, a totals snapshot at
// that point, and a back-pointer to its predecessor.
//
// Demerits are int64 since squared badness-plus-penalty terms can
// exceed 32-bit range on pathological input.
type Breakpoint struct {
	Position int
	Demerits int64
	Line int
	Fitness Fitness
	Totals Sum
	Previous *Breakpoint
}
