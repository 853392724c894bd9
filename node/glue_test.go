package node

import (
	"math"
	"testing"
)

func TestSolveRatioStretch(t *testing.T) {
	cases := []struct {
		name       string
		w0, w      float64
		stretch    Totals
		shrink     Totals
		wantR      float64
		wantOrder  Order
	}{
		{"exact", 100, 100, Totals{Normal: 10}, Totals{Normal: 10}, 0, OrderNormal},
		{"stretch-normal", 100, 110, Totals{Normal: 20}, Totals{}, 0.5, OrderNormal},
		{"shrink-normal", 100, 90, Totals{}, Totals{Normal: 20}, -0.5, OrderNormal},
		{"stretch-fil-dominates", 100, 120, Totals{Normal: 20, Fil: 10}, Totals{}, 2, OrderFil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, o := SolveRatio(c.w0, c.stretch, c.shrink, c.w)
			if math.Abs(r-c.wantR) > 1e-9 {
				t.Fatalf("ratio = %v, want %v", r, c.wantR)
			}
			if o != c.wantOrder {
				t.Fatalf("order = %v, want %v", o, c.wantOrder)
			}
		})
	}
}

func TestSolveRatioOverfull(t *testing.T) {
	r, _ := SolveRatio(100, Totals{}, Totals{}, 110)
	if !math.IsInf(r, 1) {
		t.Fatalf("expected +Inf for unstretchable overfull box, got %v", r)
	}
	r, _ = SolveRatio(100, Totals{}, Totals{}, 90)
	if !math.IsInf(r, -1) {
		t.Fatalf("expected -Inf for unshrinkable underfull box, got %v", r)
	}
}

func TestNewHBoxInvariant(t *testing.T) {
	children := []Node{
		CharBox{Width: 40},
		GlueNode{Glue{Space: Pt(5), Stretch: Amount{Value: 5}, Shrink: Amount{Value: 2}}},
		CharBox{Width: 40},
	}
	target := 95.0
	hb := NewHBox(children, target, 200)
	w0, stretch, _ := childTotals(children)
	sActive := stretch.At(hb.Order)
	got := w0 + hb.Ratio*sActive
	if math.Abs(got-target) > 1e-4*target {
		t.Fatalf("natural_width + ratio*stretch = %v, want %v", got, target)
	}
}

func TestTotalsOrderDominance(t *testing.T) {
	var tt Totals
	tt.Add(Amount{Value: 1, Order: OrderNormal})
	if tt.Order() != OrderNormal {
		t.Fatalf("expected Normal order")
	}
	tt.Add(Amount{Value: 2, Order: OrderFill})
	if tt.Order() != OrderFill {
		t.Fatalf("fill should dominate normal")
	}
	tt.Add(Amount{Value: 1, Order: OrderFil})
	if tt.Order() != OrderFill {
		t.Fatalf("fill should still dominate fil")
	}
	tt.Add(Amount{Value: 1, Order: OrderFilll})
	if tt.Order() != OrderFilll {
		t.Fatalf("filll should dominate fill")
	}
}
