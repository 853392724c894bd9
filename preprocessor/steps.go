package preprocessor

import (
	"fmt"

	"github.com/ByLCY/typeset/token"
)

func (p *Preprocessor) popFrame() {
	p.frames = p.frames[:len(p.frames)-1]
}

// stepReadingMacro accumulates csname, parameter text (until
// group-begin), then replacement text (balanced braces).
func (p *Preprocessor) stepReadingMacro(f *Frame, t token.Token) error {
	d := f.Payload.(*MacroDefinitionData)

	if !d.HaveCSName {
		if !t.IsControlSeq {
			p.popFrame()
			return fmt.Errorf("%w: \\def must be followed by a control sequence", ErrMalformed)
		}
		d.CSName = t.CSName
		d.HaveCSName = true
		d.NextParamIndex = 1
		return nil
	}

	if !d.InReplacement {
		if d.pendingParamText {
			d.pendingParamText = false
			if t.IsControlSeq || t.Codepoint < '1' || t.Codepoint > '9' {
				p.popFrame()
				return fmt.Errorf("%w: #0 or non-digit parameter reference in parameter text", ErrMalformed)
			}
			idx := int(t.Codepoint - '0')
			d.ParameterText = append(d.ParameterText, ref(idx))
			d.NextParamIndex = idx + 1
			return nil
		}
		if !t.IsControlSeq && t.Cat == token.GroupBegin {
			d.InReplacement = true
			d.BraceNesting = 1
			return nil
		}
		if !t.IsControlSeq && t.Cat == token.Parameter {
			d.pendingParamText = true
			return nil
		}
		d.ParameterText = append(d.ParameterText, lit(t))
		return nil
	}

	// Reading replacement text, tracking brace nesting.
	if d.pendingReplParam {
		d.pendingReplParam = false
		if t.IsControlSeq || t.Codepoint < '1' || t.Codepoint > '9' {
			p.popFrame()
			return fmt.Errorf("%w: #0 or non-digit parameter reference in replacement text", ErrMalformed)
		}
		d.ReplacementText = append(d.ReplacementText, ref(int(t.Codepoint-'0')))
		return nil
	}
	if !t.IsControlSeq {
		switch t.Cat {
		case token.GroupBegin:
			d.BraceNesting++
		case token.GroupEnd:
			d.BraceNesting--
			if d.BraceNesting == 0 {
				m := &Macro{CSName: d.CSName, ParameterText: d.ParameterText, ReplacementText: d.ReplacementText}
				global := d.Global
				p.popFrame()
				if global {
					p.defineGlobal(m)
				} else {
					p.Define(m)
				}
				return nil
			}
		case token.Parameter:
			d.pendingReplParam = true
			return nil
		}
	}
	d.ReplacementText = append(d.ReplacementText, lit(t))
	return nil
}

// stepExpandingMacro grows the expansion frame's buffer and re-tries
// the match on each new token, covering the literal-token, delimited,
// and undelimited argument sub-cases.
func (p *Preprocessor) stepExpandingMacro(f *Frame, t token.Token) error {
	d := f.Payload.(*MacroExpansionData)
	d.Buffer = append(d.Buffer, t)
	return p.attemptExpansion(f)
}

// attemptExpansion tries to match f's buffer (possibly empty, for a
// zero-parameter macro) against its macro's parameter text, completing
// or keeping the frame open as appropriate.
func (p *Preprocessor) attemptExpansion(f *Frame) error {
	d := f.Payload.(*MacroExpansionData)

	res, err := d.Def.Match(d.Buffer)
	if err != nil {
		// Malformed: abort this expansion and resume at the token that
		// caused the failure.
		p.popFrame()
		p.insertFront(d.Buffer[res.Size:])
		return err
	}
	switch res.Code {
	case PartialMatch:
		return nil
	case CompleteMatch:
		p.popFrame()
		expanded := d.Def.Expand(res.Arguments)
		// Unconsumed trailing tokens in the buffer (beyond res.Size)
		// were read ahead for a delimited match and must be
		// reprocessed after the expansion, ahead of prior pending input.
		leftover := d.Buffer[res.Size:]
		p.insertFront(append(append([]token.Token(nil), expanded...), leftover...))
		return nil
	default:
		p.popFrame()
		return fmt.Errorf("%w: no match for \\%s", ErrMalformed, d.Def.CSName)
	}
}

// stepBranching implements `\if...`-style constructs: `\else` toggles
// inside_if, `if_nesting` tracks nested conditionals, and the selected
// branch's tokens are fed back to the preprocessor input on `\fi`.
func (p *Preprocessor) stepBranching(f *Frame, t token.Token) error {
	d := f.Payload.(*BranchingData)

	if t.IsControlSeq {
		switch t.CSName {
		case "if":
			d.IfNesting++
		case "else":
			if d.IfNesting == 0 {
				d.InsideIf = false
				return nil
			}
		case "fi":
			if d.IfNesting > 0 {
				d.IfNesting--
			} else {
				p.popFrame()
				var branch []token.Token
				if d.Condition {
					branch = d.TrueBranch
				} else {
					branch = d.FalseBranch
				}
				p.insertFront(branch)
				return nil
			}
		}
	}

	if d.InsideIf {
		d.TrueBranch = append(d.TrueBranch, t)
	} else {
		d.FalseBranch = append(d.FalseBranch, t)
	}
	return nil
}

// stepFormingCS accumulates characters, driven by expanded tokens, up
// to `\endcsname`, into a single control-sequence token.
func (p *Preprocessor) stepFormingCS(f *Frame, t token.Token) error {
	d := f.Payload.(*CsNameData)

	if t.IsControlSeq {
		if t.CSName == "endcsname" {
			p.popFrame()
			name := string(d.Chars)
			return p.process(token.ControlSeq(name))
		}
		if m, ok := p.find(t.CSName); ok {
			// Expand the macro; its result is fed back into this frame.
			p.frames = append(p.frames, Frame{Type: ExpandingMacro, Payload: &MacroExpansionData{Def: m}})
			return p.attemptExpansion(&p.frames[len(p.frames)-1])
		}
		p.popFrame()
		return fmt.Errorf("%w: unterminated \\csname", ErrMalformed)
	}
	d.Chars = append(d.Chars, t.Codepoint)
	return nil
}

// stepExpandingAfter implements both `\expandafter` and `\noexpand`
// via the shared ExpandingAfter frame kind.
func (p *Preprocessor) stepExpandingAfter(f *Frame, t token.Token) error {
	d := f.Payload.(*ExpandAfterData)

	if d.Mode == ModeNoExpand {
		p.popFrame()
		p.Output = append(p.Output, t)
		return nil
	}

	if !d.HaveStashed {
		d.Stashed = t
		d.HaveStashed = true
		return nil
	}

	p.popFrame()
	expanded := p.expandOnce(t)
	p.insertFront(append([]token.Token{d.Stashed}, expanded...))
	return nil
}

// expandOnce performs a single expansion step of t: the following
// token once, not to a fixed point. Only zero-argument macros can be
// expanded from a single lookahead token without further input; a
// parameterized macro is passed through unexpanded rather than guessed
// at, leaving deeper \noexpand/\expandafter interaction undefined.
func (p *Preprocessor) expandOnce(t token.Token) []token.Token {
	if !t.IsControlSeq {
		return []token.Token{t}
	}
	m, ok := p.find(t.CSName)
	if !ok || len(m.ParameterText) > 0 {
		return []token.Token{t}
	}
	var empty [9][]token.Token
	return m.Expand(empty)
}
