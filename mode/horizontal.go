package mode

import (
	"github.com/ByLCY/typeset/linebreak"
	"github.com/ByLCY/typeset/node"
	"github.com/ByLCY/typeset/token"
)

// Command is a horizontal-mode control-sequence handler, mirroring the
// reference HorizontalMode's Callback typedef.
type Command func(m *Machine, h *HorizontalMode) error

// HorizontalMode accumulates an hlist from a token stream, breaking out
// to a nested MathMode on a math-shift token and finishing the
// paragraph (running the line breaker and appending the result to the
// enclosing Machine's vertical list) on \par or end of input.
type HorizontalMode struct {
	hlist    []node.Node
	commands map[string]Command
	indent   float64
}

// NewHorizontalMode returns a HorizontalMode with its built-in
// commands registered and an initial paragraph-indent box, mirroring
// TeX's automatic \indent at the start of a paragraph.
func NewHorizontalMode(indent float64) *HorizontalMode {
	h := &HorizontalMode{
		commands: map[string]Command{},
		indent:   indent,
	}
	h.commands["par"] = parCommand
	h.commands["noindent"] = noindentCommand
	if indent != 0 {
		h.hlist = append(h.hlist, node.Kern{Width: indent})
	}
	return h
}

func (h *HorizontalMode) Kind() Kind { return Horizontal }

// Hlist returns the horizontal list accumulated so far.
func (h *HorizontalMode) Hlist() []node.Node { return h.hlist }

// Push registers or overrides a control-sequence command, mirroring
// HorizontalMode::push in the reference implementation.
func (h *HorizontalMode) Push(name string, cmd Command) {
	h.commands[name] = cmd
}

func (h *HorizontalMode) Write(m *Machine, t token.Token) error {
	if t.IsControlSeq {
		if cmd, ok := h.commands[t.CSName]; ok {
			return cmd(m, h)
		}
		// Unknown control sequences in horizontal mode are silently
		// skipped; a richer command table is the caller's concern.
		return nil
	}

	switch t.Cat {
	case token.MathShift:
		m.Push(NewMathMode())
		return nil
	case token.Space:
		h.hlist = append(h.hlist, interwordGlue())
		return nil
	case token.GroupBegin, token.GroupEnd:
		return nil
	default:
		w, ht, d := 0.0, 0.0, 0.0
		if m.Metrics != nil {
			w = m.Metrics.Width(t.Codepoint)
			ht = m.Metrics.Height(t.Codepoint)
			d = m.Metrics.Depth(t.Codepoint)
		}
		h.hlist = append(h.hlist, node.CharBox{Codepoint: t.Codepoint, Width: w, Height: ht, Depth: d})
		return nil
	}
}

func interwordGlue() node.GlueNode {
	return node.GlueNode{Glue: node.Glue{
		Space:   node.Pt(6),
		Stretch: node.Amount{Value: 3},
		Shrink:  node.Amount{Value: 2},
	}}
}

// parCommand finishes the current paragraph: the accumulated hlist is
// broken into lines and appended to the enclosing vertical list, then
// horizontal mode is popped.
func parCommand(m *Machine, h *HorizontalMode) error {
	vlines, err := finishParagraph(m, h)
	if err != nil {
		return err
	}
	m.VList = append(m.VList, vlines...)
	if _, err := m.Pop(); err != nil {
		return err
	}
	return nil
}

// noindentCommand drops the automatic paragraph-indent box if it is
// still the first element of the hlist.
func noindentCommand(m *Machine, h *HorizontalMode) error {
	if len(h.hlist) > 0 {
		if _, ok := h.hlist[0].(node.Kern); ok {
			h.hlist = h.hlist[1:]
		}
	}
	return nil
}

func finishParagraph(m *Machine, h *HorizontalMode) ([]node.Node, error) {
	prepared := linebreak.Prepare(h.hlist, m.Par)

	// Recorded for -debug introspection only; Create below performs the
	// line-breaking search that actually produces the vertical list.
	if chain, err := linebreak.ComputeBreakpoints(prepared, m.Par); err == nil {
		m.LastBreakpoints = chain
	}

	return linebreak.Create(prepared, m.Par)
}
