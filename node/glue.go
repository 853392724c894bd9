package node

import "math"

// Order is a glue elasticity priority level. Higher orders dominate: any
// fil beats finite, fill beats fil, filll beats fill.
type Order int

const (
	OrderNormal Order = iota
	OrderFil
	OrderFill
	OrderFilll
)

// Amount is a stretch or shrink amount: a finite magnitude at OrderNormal,
// or an infinite magnitude at a higher order.
type Amount struct {
	Value float64
	Order Order
}

// Totals accumulates stretch or shrink contributions per order: normal,
// fil, fill, filll.
type Totals struct {
	Normal, Fil, Fill, Filll float64
}

// Add folds one glue amount into the totals at its order.
func (t *Totals) Add(a Amount) {
	switch a.Order {
	case OrderFilll:
		t.Filll += a.Value
	case OrderFill:
		t.Fill += a.Value
	case OrderFil:
		t.Fil += a.Value
	default:
		t.Normal += a.Value
	}
}

// Order returns the highest non-zero order present in t.
func (t Totals) Order() Order {
	switch {
	case t.Filll != 0:
		return OrderFilll
	case t.Fill != 0:
		return OrderFill
	case t.Fil != 0:
		return OrderFil
	default:
		return OrderNormal
	}
}

// Plus returns the element-wise sum of two Totals.
func (t Totals) Plus(o Totals) Totals {
	return Totals{
		Normal: t.Normal + o.Normal,
		Fil:    t.Fil + o.Fil,
		Fill:   t.Fill + o.Fill,
		Filll:  t.Filll + o.Filll,
	}
}

// Minus returns the element-wise difference of two Totals.
func (t Totals) Minus(o Totals) Totals {
	return Totals{
		Normal: t.Normal - o.Normal,
		Fil:    t.Fil - o.Fil,
		Fill:   t.Fill - o.Fill,
		Filll:  t.Filll - o.Filll,
	}
}

// At returns the accumulated magnitude at order o.
func (t Totals) At(o Order) float64 {
	switch o {
	case OrderFilll:
		return t.Filll
	case OrderFill:
		return t.Fill
	case OrderFil:
		return t.Fil
	default:
		return t.Normal
	}
}

// Glue is nominal space plus stretch/shrink elasticity.
type Glue struct {
	Space          Dimension
	Stretch        Amount
	Shrink         Amount
	TreatAsDiscardable bool
}

// IsDiscardable reports whether this glue is dropped when it appears at
// the start of a line.
func (g Glue) IsDiscardable() bool { return true }

// SolveRatio computes the glue ratio r and dominant order o for a list
// with natural width w0, stretch totals s, shrink totals k, against a
// target width w.
//
//   - w == w0: r = 0, o = Normal.
//   - w > w0:  r = (w-w0)/stretch[o] where o is the highest order with
//     stretch[o] > 0; if no stretch, r = +Inf (overfull).
//   - w < w0:  symmetric with shrink; ratio is negative (no shrink at
//     all -> -Inf). The ratio is not clamped: it falls below -1 when the
//     target needs more shrink than is available, which NewHBox/NewVBox
//     flag as Overfull.
func SolveRatio(w0 float64, stretch, shrink Totals, w float64) (r float64, o Order) {
	switch {
	case w == w0:
		return 0, OrderNormal
	case w > w0:
		o = stretch.Order()
		s := stretch.At(o)
		if s <= 0 {
			return math.Inf(1), o
		}
		return (w - w0) / s, o
	default:
		o = shrink.Order()
		s := shrink.At(o)
		if s <= 0 {
			return math.Inf(-1), o
		}
		return (w - w0) / s, o
	}
}
