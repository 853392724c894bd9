package dsl

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	dslLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "Number", Pattern: `(?:\d+\.\d+|\d+)(?:pt|mm|cm|in|pc|em|ex|fil|fill|filll|%)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[][(),.=+\-*/%<>!?;:\\$#&^~]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	tokenNames       = invertSymbols(dslLexer.Symbols())
	newlineTokenType = mustTokenType("Newline")
	lbraceTokenType  = mustTokenType("LBrace")
	rbraceTokenType  = mustTokenType("RBrace")
	symbolTokenType  = mustTokenType("Symbol")
	stringTokenType  = mustTokenType("String")

	documentParser = participle.MustBuild[Document](
		participle.Lexer(dslLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment"),
	)
)

// Document is the root AST node for a paragraph-source file: a name, the
// config block mapping onto linebreak.Paragraph, an optional macros block
// of raw TeX-style macro source, and a body block of raw paragraph text.
type Document struct {
	Pos    lexer.Position `parser:"" json:"-"`
	Name   string         `parser:"Newline* 'doc' @Ident"`
	Config *ConfigSection `parser:"'{' Newline* @@"`
	Macros *MacrosSection `parser:"( Newline* @@ )?"`
	Body   *BodySection   `parser:"Newline* @@ Newline* '}' Newline*"`
}

// ConfigSection holds the paragraph-shaping assignments (hsize, tolerance,
// linepenalty, ...) that get mapped onto a linebreak.Paragraph by the
// caller; the grammar only captures key/value pairs, it does not know the
// field set of linebreak.Paragraph.
type ConfigSection struct {
	Block *Block `parser:"'config' @@"`
}

// MacrosSection carries its body as an unparsed raw string: macro
// definitions are TeX catcode-driven text, not a participle grammar, so
// this section is handed untouched to token.Tokenizer/preprocessor.Preprocessor.
type MacrosSection struct {
	Raw RawBlock `parser:"'macros' @@"`
}

// BodySection carries the literal paragraph text, also unparsed: it is
// handed (after binding.Interpolate) straight to the tokenizer.
type BodySection struct {
	Raw RawBlock `parser:"'body' @@"`
}

// RawBlock captures everything between a matching '{'/'}' pair as a single
// raw string, without re-lexing its contents as DSL syntax. This is how the
// grammar defers to the TeX-side tokenizer for macro/body text instead of
// parsing it itself.
type RawBlock string

// Parse implements participle.Parseable for RawBlock.
func (b *RawBlock) Parse(lex *lexer.PeekingLexer) error {
	open := lex.Peek()
	if open.EOF() || open.Type != lbraceTokenType {
		return participle.NextMatch
	}
	lex.Next()

	depth := 1
	var sb strings.Builder
	end := -1
	for {
		tok := lex.Peek()
		if tok.EOF() {
			return fmt.Errorf("unterminated block starting at %s", open.Pos)
		}
		if tok.Type == lbraceTokenType {
			depth++
		}
		if tok.Type == rbraceTokenType {
			depth--
			if depth == 0 {
				lex.Next()
				break
			}
		}
		if end >= 0 && tok.Pos.Offset > end {
			sb.WriteByte(' ')
		}
		sb.WriteString(tok.Value)
		end = tok.Pos.Offset + len(tok.Value)
		lex.Next()
	}

	// Tokens that touch in the source are joined directly, so TeX text
	// such as `\def\emph#1{*#1*}` comes back unchanged. Where the source
	// had a gap between two tokens (elided whitespace or an elided
	// comment), a single space is written instead of the gap's text.
	*b = RawBlock(sb.String())
	return nil
}

// Block is a delimited list of statements, used for the config section.
type Block struct {
	Statements []*Statement `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Statement inside a config block (assignment only; config has no nested
// commands or text literals, unlike the page/flow DSL this grammar
// replaces).
type Statement struct {
	Assignment *Assignment `parser:"@@"`
}

// Assignment uses colon syntax (key: value).
type Assignment struct {
	Key   string `parser:"@Ident"`
	Value *Value `parser:"':' Newline* @@"`
}

// Value represents generic property values.
type Value struct {
	String *StringLiteral `parser:"  @String"`
	Number *string        `parser:"| @Number"`
	Array  *ArrayValue    `parser:"| @@"`
	Expr   *Expression    `parser:"| @@"`
}

// ArrayValue captures `[ ... ]` expressions.
type ArrayValue struct {
	Values []*Value `parser:"'[' Newline* ( @@ ( (',' | ';' | Newline+) Newline* @@ )* )? Newline* ']'"`
}

// Expression records raw tokens for later evaluation, e.g. penalty
// arithmetic expressions that are not plain literals.
type Expression struct {
	Parts []*Lexeme
}

// Parse implements participle.Parseable for Expression.
func (e *Expression) Parse(lex *lexer.PeekingLexer) error {
	var parts []*Lexeme
	var parenDepth int
	var bracketDepth int

	for {
		tok := lex.Peek()
		if tok.EOF() {
			break
		}
		if stopExpression(tok, parenDepth, bracketDepth) {
			break
		}

		lexeme, err := consumeLexeme(lex)
		if err != nil {
			return err
		}
		switch lexeme.Raw {
		case "(":
			parenDepth++
		case ")":
			if parenDepth > 0 {
				parenDepth--
			}
		case "[":
			bracketDepth++
		case "]":
			if bracketDepth > 0 {
				bracketDepth--
			}
		}
		parts = append(parts, lexeme)
	}

	if len(parts) == 0 {
		return participle.NextMatch
	}

	e.Parts = parts
	return nil
}

// Lexeme captures a single lexical token (used by expressions).
type Lexeme struct {
	Type  string         `json:"type"`
	Value string         `json:"value"`
	Raw   string         `json:"raw"`
	Pos   lexer.Position `json:"-"`
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse parses DSL content from an io.Reader.
func Parse(r io.Reader) (*Document, error) {
	return documentParser.Parse("", r)
}

// ParseString parses DSL content from a string.
func ParseString(input string) (*Document, error) {
	return documentParser.ParseString("", input)
}

// consumeLexeme reads the next non-terminating token and converts it to a Lexeme.
func consumeLexeme(lex *lexer.PeekingLexer) (*Lexeme, error) {
	tok := lex.Next()
	if tok.EOF() {
		return nil, participle.NextMatch
	}

	lexeme, err := newLexeme(*tok)
	if err != nil {
		return nil, err
	}
	return &lexeme, nil
}

func stopExpression(tok *lexer.Token, parenDepth, bracketDepth int) bool {
	if tok == nil || tok.EOF() {
		return true
	}

	if tok.Type == newlineTokenType && parenDepth == 0 && bracketDepth == 0 {
		return true
	}

	if tok.Type == rbraceTokenType && parenDepth == 0 && bracketDepth == 0 {
		return true
	}

	if tok.Type == lbraceTokenType && parenDepth == 0 && bracketDepth == 0 {
		return true
	}

	if tok.Type == symbolTokenType {
		switch tok.Value {
		case ";":
			return parenDepth == 0 && bracketDepth == 0
		case ",":
			return parenDepth == 0 && bracketDepth == 0
		case "]":
			return bracketDepth == 0
		}
	}

	return false
}

func newLexeme(tok lexer.Token) (Lexeme, error) {
	name, ok := tokenNames[tok.Type]
	if !ok {
		name = fmt.Sprintf("#%d", tok.Type)
	}
	val := tok.Value
	if tok.Type == stringTokenType {
		unquoted, err := strconv.Unquote(tok.Value)
		if err != nil {
			return Lexeme{}, err
		}
		val = unquoted
	}

	return Lexeme{
		Type:  name,
		Value: val,
		Raw:   tok.Value,
		Pos:   tok.Pos,
	}, nil
}

func invertSymbols(symbols map[string]lexer.TokenType) map[lexer.TokenType]string {
	out := make(map[lexer.TokenType]string, len(symbols))
	for name, tt := range symbols {
		out[tt] = name
	}
	return out
}

func mustTokenType(name string) lexer.TokenType {
	symbols := dslLexer.Symbols()
	tt, ok := symbols[name]
	if !ok {
		panic(fmt.Sprintf("token %s not defined", name))
	}
	return tt
}
