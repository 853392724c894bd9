// Package preprocessor implements component D: the macro preprocessor —
// parameter matching, expansion, conditionals, expandafter, and csname
// assembly.
package preprocessor

import (
	"fmt"

	"github.com/ByLCY/typeset/token"
)

// ParamItem is one element of a parameter-text or replacement-text
// template: either a literal token, or a reference to argument Param
// (1-9). Param == 0 means "literal".
type ParamItem struct {
	Param int
	Literal token.Token
}

func lit(t token.Token) ParamItem { return ParamItem{Literal: t} }
func ref(i int) ParamItem { return ParamItem{Param: i} }

// Macro is (name, parameter_text, replacement_text).
type Macro struct {
	CSName string
	ParameterText []ParamItem
	ReplacementText []ParamItem
}

// ResultCode classifies the outcome of Macro.Match.
type ResultCode int

const (
	NoMatch ResultCode = iota
	PartialMatch
	CompleteMatch
)

// MatchResult reports how much of input a Match call consumed, and
// (on CompleteMatch) the captured arguments.
type MatchResult struct {
	Code ResultCode
	Size int
	Arguments [9][]token.Token
}

// ErrMatchFailed is wrapped into recoverable match errors.
var ErrMatchFailed = fmt.Errorf("preprocessor: macro argument match failed")

// Match attempts to match m's parameter text against input, following
// these argument-matching rules:
//
// - A `#i` followed immediately by a literal L is delimited:
// accumulate tokens until a brace-balanced occurrence of L, then
// strip outer braces iff the argument is exactly one group.
// - A `#i` with no following literal (or followed by another `#j`)
// is undelimited: consume exactly one balanced token.
//
// Returns PartialMatch when input is a (possibly empty) prefix of a
// match still in progress — the caller should feed more tokens and
// retry. Returns NoMatch with ErrMatchFailed when a literal fails to
// match.
func (m *Macro) Match(input []token.Token) (MatchResult, error) {
	var args [9][]token.Token
	pos := 0
	pt := m.ParameterText

	for i := 0; i < len(pt); {
		item := pt[i]

		if item.Param == 0 {
			if pos >= len(input) {
				return MatchResult{Code: PartialMatch, Size: pos}, nil
			}
			if !input[pos].Equal(item.Literal) {
				return MatchResult{Code: NoMatch, Size: pos}, fmt.Errorf("%w: expected %v at position %d", ErrMatchFailed, item.Literal, pos)
			}
			pos++
			i++
			continue
		}

		paramIdx := item.Param
		var delim *token.Token
		if i+1 < len(pt) && pt[i+1].Param == 0 {
			delim = &pt[i+1].Literal
		}

		if delim == nil {
			// Undelimited: exactly one balanced token.
			if pos >= len(input) {
				return MatchResult{Code: PartialMatch, Size: pos}, nil
			}
			t := input[pos]
			if !t.IsControlSeq && t.Cat == token.GroupBegin {
				depth := 1
				j := pos + 1
				for depth > 0 {
					if j >= len(input) {
						return MatchResult{Code: PartialMatch, Size: pos}, nil
					}
					if !input[j].IsControlSeq {
						switch input[j].Cat {
						case token.GroupBegin:
							depth++
						case token.GroupEnd:
							depth--
						}
					}
					j++
				}
				args[paramIdx-1] = append([]token.Token(nil), input[pos+1:j-1]...)
				pos = j
			} else {
				args[paramIdx-1] = []token.Token{t}
				pos++
			}
			i++
			continue
		}

		// Delimited: accumulate until a brace-balanced occurrence of delim.
		depth := 0
		start := pos
		j := pos
		matched := false
		for j < len(input) {
			tk := input[j]
			if !tk.IsControlSeq {
				switch tk.Cat {
				case token.GroupBegin:
					depth++
				case token.GroupEnd:
					depth--
				}
			}
			if depth == 0 && tk.Equal(*delim) {
				matched = true
				break
			}
			j++
		}
		if !matched {
			return MatchResult{Code: PartialMatch, Size: pos}, nil
		}
		args[paramIdx-1] = stripOuterBraces(input[start:j])
		pos = j + 1
		i += 2
	}

	return MatchResult{Code: CompleteMatch, Size: pos, Arguments: args}, nil
}

// stripOuterBraces removes one enclosing brace-delimited group iff
// toks is exactly one such group.
func stripOuterBraces(toks []token.Token) []token.Token {
	if len(toks) < 2 {
		return append([]token.Token(nil), toks...)
	}
	if toks[0].IsControlSeq || toks[0].Cat != token.GroupBegin {
		return append([]token.Token(nil), toks...)
	}
	if toks[len(toks)-1].IsControlSeq || toks[len(toks)-1].Cat != token.GroupEnd {
		return append([]token.Token(nil), toks...)
	}
	depth := 0
	for idx, t := range toks {
		if t.IsControlSeq {
			continue
		}
		switch t.Cat {
		case token.GroupBegin:
			depth++
		case token.GroupEnd:
			depth--
			if depth == 0 && idx != len(toks)-1 {
				// the first group closes before the end: not a single
				// enclosing group.
				return append([]token.Token(nil), toks...)
			}
		}
	}
	return append([]token.Token(nil), toks[1:len(toks)-1]...)
}

// Expand substitutes captured arguments into m's replacement text.
func (m *Macro) Expand(args [9][]token.Token) []token.Token {
	var out []token.Token
	for _, item := range m.ReplacementText {
		if item.Param == 0 {
			out = append(out, item.Literal)
		} else {
			out = append(out, args[item.Param-1]...)
		}
	}
	return out
}
