package mode

import (
	"github.com/ByLCY/typeset/node"
	"github.com/ByLCY/typeset/token"
)

// VerticalMode is the outermost mode: it accumulates page-level
// material directly into the Machine's vertical list, and enters a
// nested HorizontalMode as soon as it sees material that starts a
// paragraph (any token other than a space, an end-of-line, \par or
// \vskip), mirroring TeX's implicit \indent.
type VerticalMode struct {
	indent float64
}

// NewVerticalMode returns a VerticalMode using TeX's default 20pt
// paragraph indentation.
func NewVerticalMode() *VerticalMode {
	return &VerticalMode{indent: 20}
}

func (v *VerticalMode) Kind() Kind { return Vertical }

func (v *VerticalMode) Write(m *Machine, t token.Token) error {
	if t.IsControlSeq {
		if t.CSName == "par" {
			// A \par with no open paragraph is a no-op in vertical mode.
			return nil
		}
		if t.CSName == "vskip" {
			return nil
		}
		m.Push(NewHorizontalMode(v.indent))
		return m.Advance(t)
	}

	switch t.Cat {
	case token.Space, token.EndOfLine:
		return nil
	default:
		m.Push(NewHorizontalMode(v.indent))
		return m.Advance(t)
	}
}

// AppendRule inserts a full-width rule directly into the vertical
// list, bypassing horizontal mode entirely (e.g. a \hrule).
func (v *VerticalMode) AppendRule(m *Machine, r node.Rule) {
	m.VList = append(m.VList, r)
}
