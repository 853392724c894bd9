package preprocessor

import "github.com/ByLCY/typeset/token"

// FrameType discriminates the preprocessor's state-stack frames,
// modeled as a tagged variant rather than a union of raw pointers.
type FrameType int

const (
	Idle FrameType = iota
	ReadingMacro
	ExpandingMacro
	Branching
	FormingCS
	ExpandingAfter
)

// MacroDefinitionData is the payload of a ReadingMacro frame: it
// accumulates csname, parameter text (until group-begin), then
// replacement text (balanced braces).
type MacroDefinitionData struct {
	CSName string
	HaveCSName bool
	// Global marks this definition as coming from \gdef: the finished
	// macro is registered in the outermost scope, not the innermost.
	Global bool
	ParameterText []ParamItem
	NextParamIndex int // next expected #i; #0 is invalid
	pendingParamText bool
	InReplacement bool
	BraceNesting int
	ReplacementText []ParamItem
	pendingReplParam bool
}

// MacroExpansionData is the payload of an ExpandingMacro frame: the
// macro being expanded and a growing buffer of tokens matched so far
// against it.
type MacroExpansionData struct {
	Def *Macro
	Buffer []token.Token
}

// BranchingData is the payload of a Branching frame implementing
// `\if...`-style constructs.
type BranchingData struct {
	Condition bool
	InsideIf bool
	IfNesting int
	TrueBranch []token.Token
	FalseBranch []token.Token
}

// CsNameData is the payload of a FormingCS frame: accumulates
// characters up to `\endcsname` into a single control-sequence token.
type CsNameData struct {
	Chars []rune
}

// ExpandAfterMode distinguishes the two built-ins that share the
// ExpandingAfter frame kind; they are modeled as independent one-shot
// behaviors rather than genuinely entangled control flow.
type ExpandAfterMode int

const (
	ModeExpandAfter ExpandAfterMode = iota
	ModeNoExpand
)

// ExpandAfterData is the payload of an ExpandingAfter frame.
//
// Under ModeExpandAfter it stashes the next token, expands the
// following token once, then re-inserts the stashed token before the
// expansion result. Under ModeNoExpand it simply suppresses expansion
// of the single next token, passing it straight to output.
type ExpandAfterData struct {
	Mode ExpandAfterMode
	Stashed token.Token
	HaveStashed bool
}

// Frame is one entry of the preprocessor's state stack.
type Frame struct {
	Type FrameType
	Payload any
}
