package mode

import (
	"github.com/ByLCY/typeset/node"
	"github.com/ByLCY/typeset/token"
)

// MathMode collects tokens between a pair of math-shift tokens and, on
// the closing '$', hands a single placeholder box back to the
// enclosing HorizontalMode. Math typesetting proper — fraction layout,
// style changes, spacing classes — is out of scope here; this is a
// handoff shape only, grounded on the reference MathMode's write/finish
// split without porting its style-transition machinery.
type MathMode struct {
	buffer []token.Token
}

// NewMathMode returns an empty MathMode ready to collect tokens up to
// the closing math shift.
func NewMathMode() *MathMode {
	return &MathMode{}
}

func (mm *MathMode) Kind() Kind { return Math }

func (mm *MathMode) Write(m *Machine, t token.Token) error {
	if !t.IsControlSeq && t.Cat == token.MathShift {
		box := mm.finish()
		if _, err := m.Pop(); err != nil {
			return err
		}
		if top, ok := m.Top().(*HorizontalMode); ok {
			top.hlist = append(top.hlist, box)
		}
		return nil
	}
	mm.buffer = append(mm.buffer, t)
	return nil
}

// finish produces a single opaque box standing in for the collected
// math material's width.
func (mm *MathMode) finish() node.Node {
	var w float64
	for range mm.buffer {
		w += 6
	}
	return node.HBox{Box: node.Box{Width: w}}
}
