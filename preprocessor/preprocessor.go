package preprocessor

import (
	"errors"
	"fmt"

	"github.com/ByLCY/typeset/token"
)

// ErrMalformed marks a recoverable malformed-input error: unmatched
// brace in a macro definition, #0 or out-of-range parameter
// reference, unterminated \csname.
var ErrMalformed = errors.New("preprocessor: malformed input")

// Definitions is one scope's macro table.
type Definitions struct {
	Macros map[string]*Macro
}

func newDefinitions() *Definitions {
	return &Definitions{Macros: map[string]*Macro{}}
}

// Preprocessor is the macro-expansion state machine. It is
// single-threaded and cooperative: Write/Advance never block.
type Preprocessor struct {
	scopes []*Definitions // scopes[len-1] is innermost
	frames []Frame
	input []token.Token // pending input queue (front = next to process)
	Output []token.Token // produced tokens, drained by the caller
}

// New returns a Preprocessor with a single global scope.
func New() *Preprocessor {
	return &Preprocessor{scopes: []*Definitions{newDefinitions()}}
}

// BeginGroup pushes a new innermost scope.
func (p *Preprocessor) BeginGroup() {
	p.scopes = append(p.scopes, newDefinitions())
}

// EndGroup pops the innermost scope.
func (p *Preprocessor) EndGroup() error {
	if len(p.scopes) <= 1 {
		return fmt.Errorf("preprocessor: endGroup without matching beginGroup")
	}
	p.scopes = p.scopes[:len(p.scopes)-1]
	return nil
}

// Define registers a macro in the innermost scope.
func (p *Preprocessor) Define(m *Macro) {
	p.scopes[len(p.scopes)-1].Macros[m.CSName] = m
}

// defineGlobal registers a macro in the outermost scope, so it
// survives an EndGroup of every enclosing group, per \gdef.
func (p *Preprocessor) defineGlobal(m *Macro) {
	p.scopes[0].Macros[m.CSName] = m
}

// find searches scopes innermost-to-outermost for a macro.
func (p *Preprocessor) find(name string) (*Macro, bool) {
	for i := len(p.scopes) - 1; i >= 0; i-- {
		if m, ok := p.scopes[i].Macros[name]; ok {
			return m, true
		}
	}
	return nil, false
}

// Write feeds a token. If the input queue is empty it is processed
// immediately; otherwise it is queued, producing FIFO-within-scope,
// just-in-time expansion ordering.
func (p *Preprocessor) Write(t token.Token) error {
	if len(p.input) == 0 {
		return p.process(t)
	}
	p.input = append(p.input, t)
	return nil
}

// Advance drains the pending input queue, processing one token at a
// time until empty.
func (p *Preprocessor) Advance() error {
	for len(p.input) > 0 {
		t := p.input[0]
		p.input = p.input[1:]
		if err := p.process(t); err != nil {
			return err
		}
	}
	return nil
}

// insertFront inserts tokens at the head of the input queue: the most
// recent expansion is consumed before prior pending tokens.
func (p *Preprocessor) insertFront(toks []token.Token) {
	p.input = append(append([]token.Token(nil), toks...), p.input...)
}

func (p *Preprocessor) process(t token.Token) error {
	if len(p.frames) == 0 {
		return p.dispatch(t)
	}
	top := &p.frames[len(p.frames)-1]
	switch top.Type {
	case ReadingMacro:
		return p.stepReadingMacro(top, t)
	case ExpandingMacro:
		return p.stepExpandingMacro(top, t)
	case Branching:
		return p.stepBranching(top, t)
	case FormingCS:
		return p.stepFormingCS(top, t)
	case ExpandingAfter:
		return p.stepExpandingAfter(top, t)
	default:
		return p.dispatch(t)
	}
}

// dispatch resolves a control sequence: built-in handlers first, then
// scope search, then pass-through to output.
func (p *Preprocessor) dispatch(t token.Token) error {
	if !t.IsControlSeq {
		p.Output = append(p.Output, t)
		return nil
	}

	switch t.CSName {
	case "def", "gdef":
		p.frames = append(p.frames, Frame{Type: ReadingMacro, Payload: &MacroDefinitionData{Global: t.CSName == "gdef"}})
		return nil
	case "if":
		p.frames = append(p.frames, Frame{Type: Branching, Payload: &BranchingData{Condition: true, InsideIf: true}})
		return nil
	case "else", "fi":
		// \else/\fi without an enclosing \if: malformed; the token is
		// dropped and an error is returned.
		return fmt.Errorf("%w: %s without matching \\if", ErrMalformed, t.CSName)
	case "csname":
		p.frames = append(p.frames, Frame{Type: FormingCS, Payload: &CsNameData{}})
		return nil
	case "endcsname":
		return fmt.Errorf("%w: endcsname without matching csname", ErrMalformed)
	case "expandafter":
		p.frames = append(p.frames, Frame{Type: ExpandingAfter, Payload: &ExpandAfterData{}})
		return nil
	case "noexpand":
		// The next token is passed straight to output, unexpanded even
		// if it names a macro: an independent one-shot suppression, not
		// entangled with expandafter.
		p.frames = append(p.frames, Frame{Type: ExpandingAfter, Payload: &ExpandAfterData{Mode: ModeNoExpand}})
		return nil
	}

	if m, ok := p.find(t.CSName); ok {
		f := Frame{Type: ExpandingMacro, Payload: &MacroExpansionData{Def: m}}
		p.frames = append(p.frames, f)
		// A zero-parameter macro matches immediately against an empty
		// buffer; attempt the match right away rather than waiting for
		// a token that may never come.
		return p.attemptExpansion(&p.frames[len(p.frames)-1])
	}

	// Unknown control sequence in a non-math context passes through.
	p.Output = append(p.Output, t)
	return nil
}
