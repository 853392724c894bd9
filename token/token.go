package token

import "fmt"

// Token is either a control-sequence name or a character token carrying
// (codepoint, category).
type Token struct {
	IsControlSeq bool
	CSName string
	Codepoint rune
	Cat Category
}

// ControlSeq builds a control-sequence token.
func ControlSeq(name string) Token {
	return Token{IsControlSeq: true, CSName: name}
}

// Char builds a character token with an explicit category.
func Char(r rune, cat Category) Token {
	return Token{Codepoint: r, Cat: cat}
}

// Equal implements token equality: control-sequence tokens
// compare by name; character tokens compare by codepoint and category.
func (t Token) Equal(o Token) bool {
	if t.IsControlSeq != o.IsControlSeq {
		return false
	}
	if t.IsControlSeq {
		return t.CSName == o.CSName
	}
	return t.Codepoint == o.Codepoint && t.Cat == o.Cat
}

func (t Token) String() string {
	if t.IsControlSeq {
		return fmt.Sprintf(`\%s`, t.CSName)
	}
	return fmt.Sprintf("%q(%s)", t.Codepoint, t.Cat)
}

// Param0 is the invalid parameter-reference index #0.
const Param0 = 0

// IsParamRef reports whether cur is the digit of a `#i` parameter
// reference, immediately following the Parameter-category token prev,
// where i is a digit 1-9. The index i is returned.
func IsParamRef(prev, cur Token) (idx int, ok bool) {
	if prev.IsControlSeq || prev.Cat != Parameter {
		return 0, false
	}
	if cur.IsControlSeq || cur.Cat != Other {
		return 0, false
	}
	if cur.Codepoint < '1' || cur.Codepoint > '9' {
		return 0, false
	}
	return int(cur.Codepoint - '0'), true
}
