// Package token defines the tagged-variant token produced by the lexer and
// consumed by the comment stripper, normalizer, macro expander, and parser.
package token

import (
	"fmt"

	"github.com/anreg/core/location"
)

// Kind identifies which variant a Token is.
type Kind uint8

const (
	KindNewLine Kind = iota
	KindComma
	KindLeftParen
	KindRightParen
	KindLeftBracket
	KindRightBracket
	KindLeftBrace
	KindRightBrace
	KindDot
	KindInterval // ..
	KindExclamation
	KindLogicOr // ||

	KindQuestion      // ?
	KindQuestionLazy  // ??
	KindPlus          // +
	KindPlusLazy      // +?
	KindAsterisk      // *
	KindAsteriskLazy  // *?

	KindIdentifier     // Text holds the name
	KindSymbol         // Text holds start|end|bound|not_bound
	KindPresetCharSet  // Text holds char_word|char_not_word|...
	KindNumber         // Number holds the parsed value
	KindChar           // Char holds the scalar
	KindString         // Text holds the decoded string
	KindComment        // CommentKind distinguishes Line/Block; Text holds content
)

// CommentKind distinguishes the two comment forms.
type CommentKind uint8

const (
	CommentLine CommentKind = iota
	CommentBlock
)

// Reserved symbol names (Kind == KindSymbol).
const (
	SymbolStart    = "start"
	SymbolEnd      = "end"
	SymbolBound    = "bound"
	SymbolNotBound = "not_bound"
)

// Reserved preset char-set names (Kind == KindPresetCharSet).
const (
	PresetCharWord     = "char_word"
	PresetCharNotWord  = "char_not_word"
	PresetCharSpace    = "char_space"
	PresetCharNotSpace = "char_not_space"
	PresetCharDigit    = "char_digit"
	PresetCharNotDigit = "char_not_digit"
)

// Token is the tagged variant. Only the fields relevant to Kind are valid;
// see the Kind* constants above for which field that is.
type Token struct {
	Kind        Kind
	Text        string
	Number      uint32
	Char        rune
	CommentKind CommentKind
}

// WithRange pairs a Token with the source range it was scanned from.
type WithRange struct {
	Token Token
	Range location.Location
}

// String renders a short diagnostic label for the token.
func (t Token) String() string {
	switch t.Kind {
	case KindIdentifier:
		return fmt.Sprintf("identifier %q", t.Text)
	case KindSymbol:
		return fmt.Sprintf("symbol %q", t.Text)
	case KindPresetCharSet:
		return fmt.Sprintf("preset char-set %q", t.Text)
	case KindNumber:
		return fmt.Sprintf("number %d", t.Number)
	case KindChar:
		return fmt.Sprintf("char %q", t.Char)
	case KindString:
		return fmt.Sprintf("string %q", t.Text)
	case KindComment:
		return "comment"
	default:
		return kindNames[t.Kind]
	}
}

var kindNames = map[Kind]string{
	KindNewLine:      "newline",
	KindComma:        "','",
	KindLeftParen:    "'('",
	KindRightParen:   "')'",
	KindLeftBracket:  "'['",
	KindRightBracket: "']'",
	KindLeftBrace:    "'{'",
	KindRightBrace:   "'}'",
	KindDot:          "'.'",
	KindInterval:     "'..'",
	KindExclamation:  "'!'",
	KindLogicOr:      "'||'",
	KindQuestion:     "'?'",
	KindQuestionLazy: "'??'",
	KindPlus:         "'+'",
	KindPlusLazy:     "'+?'",
	KindAsterisk:     "'*'",
	KindAsteriskLazy: "'*?'",
}

// IsSeparator reports whether the token can serve as a concatenation
// separator (Comma or NewLine), per the parser grammar's `separator` rule.
func (t Token) IsSeparator() bool {
	return t.Kind == KindComma || t.Kind == KindNewLine
}
