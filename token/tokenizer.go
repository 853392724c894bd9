package token

// state is the tokenizer's internal mode: normal reading, reading a
// control-sequence name, skipping end-of-line runs, and skipping
// comments.
type state int

const (
	stateNormal state = iota
	stateReadingCS
	stateSkippingEOL
	stateSkippingComment
)

// Tokenizer consumes characters one at a time and produces a stream of
// tokens. It is restartable and never buffers beyond the current
// control-sequence name.
type Tokenizer struct {
	st state
	csName []rune
	out []Token
}

// New returns a Tokenizer ready to accept its first character.
func New() *Tokenizer {
	return &Tokenizer{st: stateNormal}
}

// Feed processes a single character, appending any produced tokens to
// the internal output queue (drain with Drain).
func (z *Tokenizer) Feed(r rune) {
	cat := DefaultCategory(r)

	switch z.st {
	case stateSkippingEOL:
		if cat == Space || cat == EndOfLine {
			return
		}
		z.st = stateNormal
		z.Feed(r)
		return

	case stateSkippingComment:
		if cat == EndOfLine {
			z.st = stateNormal
		}
		return

	case stateReadingCS:
		if cat == Letter {
			z.csName = append(z.csName, r)
			return
		}
		if len(z.csName) == 0 {
			// A single non-letter character right after the escape
			// forms a one-character control sequence (e.g. "\%"),
			// consuming that character.
			z.st = stateNormal
			z.out = append(z.out, ControlSeq(string(r)))
			return
		}
		// First non-letter after a multi-letter name ends it.
		name := string(z.csName)
		z.csName = nil
		z.st = stateNormal
		z.out = append(z.out, ControlSeq(name))
		// The terminating character itself still needs processing,
		// unless it was a space (which TeX swallows as the cs delimiter).
		if cat != Space {
			z.Feed(r)
		}
		return
	}

	// stateNormal
	switch cat {
	case Escape:
		z.st = stateReadingCS
		z.csName = z.csName[:0]
	case Comment:
		z.st = stateSkippingComment
	case EndOfLine:
		z.out = append(z.out, Char(' ', Space))
		z.st = stateSkippingEOL
	case Ignored:
		// dropped
	default:
		z.out = append(z.out, Char(r, cat))
	}
}

// FeedInvalid records a token for input that could not be categorized:
// an invalid codepoint yields an Invalid-category token rather than
// aborting.
func (z *Tokenizer) FeedInvalid(r rune) {
	z.out = append(z.out, Char(r, Invalid))
}

// Drain returns and clears all tokens produced so far.
func (z *Tokenizer) Drain() []Token {
	out := z.out
	z.out = nil
	return out
}
