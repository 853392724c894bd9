// Package mode implements the typesetting state machine: vertical,
// horizontal and math modes, each consuming a token stream and
// producing node-model output, mirroring the reference implementation's
// Mode/HorizontalMode/VerticalMode/MathMode split.
package mode

import (
	"fmt"

	"github.com/ByLCY/typeset/linebreak"
	"github.com/ByLCY/typeset/node"
	"github.com/ByLCY/typeset/token"
)

// Kind discriminates the three typesetting modes.
type Kind int

const (
	Vertical Kind = iota
	Horizontal
	Math
)

func (k Kind) String() string {
	switch k {
	case Vertical:
		return "Vertical"
	case Horizontal:
		return "Horizontal"
	default:
		return "Math"
	}
}

// Metrics resolves a character's box dimensions. A real font driver is
// an external collaborator; callers needing one wire their own.
type Metrics interface {
	Width(r rune) float64
	Height(r rune) float64
	Depth(r rune) float64
}

// Mode is one level of the typesetting machine's mode stack: it
// consumes tokens one at a time and may push/pop further modes onto
// the enclosing Machine.
type Mode interface {
	Kind() Kind
	Write(m *Machine, t token.Token) error
}

// Machine is the mode stack: the innermost (top) mode receives tokens
// via Advance, and may call Push/Pop to hand off to a nested mode
// (e.g. HorizontalMode entering MathMode on '$').
type Machine struct {
	stack   []Mode
	Metrics Metrics
	// VList accumulates the finished vertical material once the
	// outermost VerticalMode has none left above it.
	VList []node.Node
	Par    linebreak.Paragraph
	// LastBreakpoints holds the breakpoint chain chosen for the most
	// recently finished paragraph, for -debug style introspection only;
	// typesetting itself never reads it back.
	LastBreakpoints []*linebreak.Breakpoint
}

// NewMachine returns a Machine whose sole mode is a fresh VerticalMode.
func NewMachine(metrics Metrics, par linebreak.Paragraph) *Machine {
	m := &Machine{Metrics: metrics, Par: par}
	m.stack = []Mode{NewVerticalMode()}
	return m
}

// Top returns the innermost active mode.
func (m *Machine) Top() Mode {
	return m.stack[len(m.stack)-1]
}

// Push enters a nested mode.
func (m *Machine) Push(mode Mode) {
	m.stack = append(m.stack, mode)
}

// Pop leaves the innermost mode, returning it. Popping the last
// (outermost) mode is a caller error.
func (m *Machine) Pop() (Mode, error) {
	if len(m.stack) <= 1 {
		return nil, fmt.Errorf("mode: cannot pop the outermost mode")
	}
	top := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return top, nil
}

// Advance feeds one token to the innermost mode.
func (m *Machine) Advance(t token.Token) error {
	return m.Top().Write(m, t)
}

// Depth reports how many modes are nested, including the outermost
// vertical mode.
func (m *Machine) Depth() int {
	return len(m.stack)
}
