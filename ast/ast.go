// Package ast defines the syntax tree the parser produces and the compiler
// consumes. Every node is a plain value type. Most locations live on the
// tokens that produced a node and are threaded through parser errors
// directly rather than retained in the tree; Expression keeps the one
// exception, its starting position, since the compiler needs it to point
// a located error at an unresolved back-reference.
package ast

import "github.com/anreg/core/location"

// Program is the root node: an ordered, top-level sequence of expressions
// concatenated left to right.
type Program struct {
	Expressions []Expression
}

// ExpressionKind discriminates the Expression sum type.
type ExpressionKind uint8

const (
	ExprLiteral ExpressionKind = iota
	ExprIdentifier
	ExprGroup
	ExprFunctionCall
	ExprAlternation
	ExprAssertion
)

// Expression is the tagged union of everything that can appear in operand
// position. Only the field(s) relevant to Kind are populated.
type Expression struct {
	Kind ExpressionKind

	// Start is the position of the expression's first token.
	Start location.Location

	Literal Literal // ExprLiteral

	Identifier string // ExprIdentifier: a capture back-reference by name

	Group []Expression // ExprGroup

	Call *FunctionCall // ExprFunctionCall

	Alternation *Alternation // ExprAlternation

	Assertion AssertionName // ExprAssertion
}

// Alternation is `left || right`; right is itself an Expression of kind
// ExprAlternation when there are more than two arms, since `||` is
// right-associative.
type Alternation struct {
	Left  Expression
	Right Expression
}

// AssertionName enumerates the four anchoring assertions reachable from
// expression position (via the reserved symbols start/end/bound/not_bound).
type AssertionName uint8

const (
	AssertionStart AssertionName = iota
	AssertionEnd
	AssertionBound
	AssertionNotBound
)

func (a AssertionName) String() string {
	switch a {
	case AssertionStart:
		return "start"
	case AssertionEnd:
		return "end"
	case AssertionBound:
		return "bound"
	case AssertionNotBound:
		return "not_bound"
	default:
		return "unknown assertion"
	}
}

// LiteralKind discriminates the Literal sum type.
type LiteralKind uint8

const (
	LiteralChar LiteralKind = iota
	LiteralString
	LiteralCharSet
	LiteralPresetCharSet
	LiteralSpecial
)

// SpecialName enumerates the built-in "match anything" literal. The
// surface currently exposes only `char_any` (the `.` token).
type SpecialName uint8

const (
	SpecialCharAny SpecialName = iota
)

// Literal is the tagged union of literal forms.
type Literal struct {
	Kind LiteralKind

	Char rune // LiteralChar

	String string // LiteralString

	CharSet CharSet // LiteralCharSet

	PresetName string // LiteralPresetCharSet: one of token.PresetChar*

	Special SpecialName // LiteralSpecial
}

// CharSet is a bracketed `[...]` or negated `![...]` set expression.
type CharSet struct {
	Negative bool
	Elements []CharSetElement
}

// CharSetElementKind discriminates the CharSetElement sum type.
type CharSetElementKind uint8

const (
	CharSetElemChar CharSetElementKind = iota
	CharSetElemRange
	CharSetElemPreset
	CharSetElemNested
	CharSetElemSymbol
)

// CharSetElement is one item inside a charset_body. CharSetElemSymbol is
// accepted by the grammar (a bare start/end/bound/not_bound inside
// brackets) but has no defined compiled meaning; the compiler rejects it
// with a located error rather than guessing one.
type CharSetElement struct {
	Kind CharSetElementKind

	Char rune // CharSetElemChar

	RangeStart, RangeEnd rune // CharSetElemRange (inclusive)

	PresetName string // CharSetElemPreset

	Nested CharSet // CharSetElemNested

	Symbol AssertionName // CharSetElemSymbol
}

// FunctionName enumerates every resolvable name in function-call position,
// whether written as a prefix call (`optional(e)`) or a rear-call
// (`e.optional()`), and whether produced by a notation sigil (`e?`) or by
// name.
type FunctionName uint8

const (
	Optional FunctionName = iota
	OptionalLazy
	OneOrMore
	OneOrMoreLazy
	ZeroOrMore
	ZeroOrMoreLazy
	Repeat
	RepeatLazy
	RepeatRange
	RepeatRangeLazy
	AtLeast
	AtLeastLazy

	IsBefore
	IsAfter
	IsNotBefore
	IsNotAfter

	Name
	Index
)

var functionNames = map[string]FunctionName{
	"optional":         Optional,
	"optional_lazy":    OptionalLazy,
	"one_or_more":      OneOrMore,
	"one_or_more_lazy": OneOrMoreLazy,
	"zero_or_more":     ZeroOrMore,
	"zero_or_more_lazy": ZeroOrMoreLazy,
	"repeat":            Repeat,
	"repeat_lazy":       RepeatLazy,
	"repeat_range":      RepeatRange,
	"repeat_range_lazy": RepeatRangeLazy,
	"at_least":          AtLeast,
	"at_least_lazy":     AtLeastLazy,
	"is_before":         IsBefore,
	"is_after":          IsAfter,
	"is_not_before":     IsNotBefore,
	"is_not_after":      IsNotAfter,
	"name":              Name,
	"index":             Index,
}

// LookupFunctionName resolves a call-position identifier to its
// FunctionName, reporting ok=false for anything else (an error at the
// parser level).
func LookupFunctionName(identifier string) (FunctionName, bool) {
	fn, ok := functionNames[identifier]
	return fn, ok
}

// FunctionCallArgKind discriminates FunctionCallArg.
type FunctionCallArgKind uint8

const (
	ArgNumber FunctionCallArgKind = iota
	ArgIdentifier
)

// FunctionCallArg is one argument in a call's argument list, following the
// receiver expression.
type FunctionCallArg struct {
	Kind FunctionCallArgKind

	Number uint32

	Identifier string
}

// FunctionCall = name(expression, args...) or expression.name(args...).
type FunctionCall struct {
	Name       FunctionName
	Expression Expression
	Args       []FunctionCallArg
}
