package preprocessor

import (
	"testing"

	"github.com/ByLCY/typeset/token"
)

func charTok(r rune) token.Token { return token.Char(r, token.Other) }

func feedAll(t *testing.T, p *Preprocessor, toks ...token.Token) {
	t.Helper()
	for _, tk := range toks {
		if err := p.Write(tk); err != nil {
			t.Fatalf("Write(%v): %v", tk, err)
		}
		if err := p.Advance(); err != nil {
			t.Fatalf("Advance after %v: %v", tk, err)
		}
	}
}

// defTokens builds the token sequence for `\def<name>#1#2{<body>}` where
// body is given as already-tokenized content.
func defTokens(name string, params []int, body []token.Token) []token.Token {
	return defLikeTokens("def", name, params, body)
}

// defLikeTokens is defTokens generalized over the defining control
// sequence, so the same shape builds both `\def` and `\gdef` input.
func defLikeTokens(cs, name string, params []int, body []token.Token) []token.Token {
	out := []token.Token{token.ControlSeq(cs), token.ControlSeq(name)}
	for _, p := range params {
		out = append(out, token.Char('#', token.Parameter), token.Char(rune('0'+p), token.Other))
	}
	out = append(out, token.Char('{', token.GroupBegin))
	out = append(out, body...)
	out = append(out, token.Char('}', token.GroupEnd))
	return out
}

func TestMacroExpansionWithTwoParams(t *testing.T) {
	p := New()
	// \def\foo#1#2{[#2,#1]}
	body := []token.Token{
		charTok('['),
		token.Char('#', token.Parameter), charTok('2'),
		charTok(','),
		token.Char('#', token.Parameter), charTok('1'),
		charTok(']'),
	}
	feedAll(t, p, defTokens("foo", []int{1, 2}, body)...)

	// \foo A{BC}
	feedAll(t, p,
		token.ControlSeq("foo"),
		charTok('A'),
		token.Char('{', token.GroupBegin), charTok('B'), charTok('C'), token.Char('}', token.GroupEnd),
	)

	want := "[BC,A]"
	got := ""
	for _, tk := range p.Output {
		got += string(tk.Codepoint)
	}
	if got != want {
		t.Fatalf("expansion = %q, want %q (tokens: %v)", got, want, p.Output)
	}
}

func TestExpandAfter(t *testing.T) {
	p := New()
	// \def\a{X}
	feedAll(t, p, defTokens("a", nil, []token.Token{charTok('X')})...)
	// \def\b{\a}
	feedAll(t, p, defTokens("b", nil, []token.Token{token.ControlSeq("a")})...)

	// \expandafter\c\b
	feedAll(t, p,
		token.ControlSeq("expandafter"),
		token.ControlSeq("c"),
		token.ControlSeq("b"),
	)

	if len(p.Output) != 2 {
		t.Fatalf("output = %v, want 2 tokens (\\c X)", p.Output)
	}
	if !p.Output[0].Equal(token.ControlSeq("c")) {
		t.Fatalf("first output token = %v, want \\c", p.Output[0])
	}
	if !p.Output[1].Equal(charTok('X')) {
		t.Fatalf("second output token = %v, want X", p.Output[1])
	}
}

func TestUnknownControlSequencePassesThrough(t *testing.T) {
	p := New()
	feedAll(t, p, token.ControlSeq("unknown"))
	if len(p.Output) != 1 || !p.Output[0].Equal(token.ControlSeq("unknown")) {
		t.Fatalf("expected unknown control sequence to pass through, got %v", p.Output)
	}
}

func TestGdefSurvivesEndGroup(t *testing.T) {
	p := New()
	p.BeginGroup()
	// \gdef\a{X}, defined inside a group.
	feedAll(t, p, defLikeTokens("gdef", "a", nil, []token.Token{charTok('X')})...)
	if err := p.EndGroup(); err != nil {
		t.Fatalf("EndGroup: %v", err)
	}

	feedAll(t, p, token.ControlSeq("a"))
	if len(p.Output) != 1 || !p.Output[0].Equal(charTok('X')) {
		t.Fatalf("expected \\gdef'd macro to survive EndGroup, got %v", p.Output)
	}
}

func TestPlainDefDoesNotSurviveEndGroup(t *testing.T) {
	p := New()
	p.BeginGroup()
	// \def\a{X}, defined inside a group: local, gone once the group ends.
	feedAll(t, p, defTokens("a", nil, []token.Token{charTok('X')})...)
	if err := p.EndGroup(); err != nil {
		t.Fatalf("EndGroup: %v", err)
	}

	feedAll(t, p, token.ControlSeq("a"))
	if len(p.Output) != 1 || !p.Output[0].Equal(token.ControlSeq("a")) {
		t.Fatalf("expected plain \\def'd macro to be local, got %v", p.Output)
	}
}

func TestMatchRoundTrip(t *testing.T) {
	m := &Macro{
		CSName: "foo",
		ParameterText: []ParamItem{
			ref(1), lit(charTok(';')), ref(2),
		},
	}
	input := []token.Token{charTok('a'), charTok('b'), charTok(';'), charTok('c')}
	res, err := m.Match(input)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if res.Code != CompleteMatch {
		t.Fatalf("Code = %v, want CompleteMatch", res.Code)
	}
	if string(res.Arguments[0][0].Codepoint)+string(res.Arguments[0][1].Codepoint) != "ab" {
		t.Fatalf("arg1 = %v, want ab", res.Arguments[0])
	}
	if res.Arguments[1][0].Codepoint != 'c' {
		t.Fatalf("arg2 = %v, want c", res.Arguments[1])
	}
}
