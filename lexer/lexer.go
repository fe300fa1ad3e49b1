// Package lexer scans Unicode-scalar source text into a stream of typed,
// located tokens (token.WithRange), per the scanning rules of the surface
// regex language.
package lexer

import (
	"strconv"
	"strings"

	"github.com/anreg/core/internal/iter"
	"github.com/anreg/core/langerr"
	"github.com/anreg/core/location"
	"github.com/anreg/core/token"
)

// terminators is the set of scalars that end an identifier or number scan.
var terminators = map[rune]bool{
	' ': true, '\t': true, '\n': true, '\r': true,
	',': true, '|': true, '!': true,
	'[': true, ']': true, '(': true, ')': true,
	'/': true, '\'': true, '"': true, '.': true,
	'?': true, '+': true, '*': true, '{': true, '}': true,
}

var symbolNames = map[string]bool{
	token.SymbolStart: true, token.SymbolEnd: true,
	token.SymbolBound: true, token.SymbolNotBound: true,
}

var presetNames = map[string]bool{
	token.PresetCharWord: true, token.PresetCharNotWord: true,
	token.PresetCharSpace: true, token.PresetCharNotSpace: true,
	token.PresetCharDigit: true, token.PresetCharNotDigit: true,
}

// Lexer scans a single source unit into tokens.
type Lexer struct {
	unit int
	it   *iter.Bounded[location.CharWithPosition]
}

// Lex scans src (identified by unit, for multi-source-file diagnostics)
// into a token stream, or returns the first located lexical error.
func Lex(unit int, src string) ([]token.WithRange, error) {
	l := &Lexer{
		unit: unit,
		it:   iter.New(location.NewCharsWithPositionIter(unit, []rune(src)).Drain()),
	}
	return l.run()
}

func (l *Lexer) run() ([]token.WithRange, error) {
	var out []token.WithRange
	for {
		cp, ok := l.it.Peek(0)
		if !ok {
			return out, nil
		}

		switch {
		case cp.Char == ' ' || cp.Char == '\t':
			l.it.Next()

		case cp.Char == '\r':
			if next, ok2 := l.it.Peek(1); ok2 && next.Char == '\n' {
				l.it.Next()
				l.it.Next()
				out = append(out, l.emit(token.Token{Kind: token.KindNewLine}, cp.Position, 2))
			} else {
				l.it.Next()
				out = append(out, l.emit(token.Token{Kind: token.KindNewLine}, cp.Position, 1))
			}

		case cp.Char == '\n':
			l.it.Next()
			out = append(out, l.emit(token.Token{Kind: token.KindNewLine}, cp.Position, 1))

		case cp.Char == ',':
			l.it.Next()
			out = append(out, l.emit(token.Token{Kind: token.KindComma}, cp.Position, 1))

		case cp.Char == '|':
			next, ok2 := l.it.Peek(1)
			if ok2 && next.Char == '|' {
				l.it.Next()
				l.it.Next()
				out = append(out, l.emit(token.Token{Kind: token.KindLogicOr}, cp.Position, 2))
			} else {
				return nil, langerr.At(cp.Position, "unexpected '|', did you mean '||'?")
			}

		case cp.Char == '!':
			l.it.Next()
			out = append(out, l.emit(token.Token{Kind: token.KindExclamation}, cp.Position, 1))

		case cp.Char == '.':
			next, ok2 := l.it.Peek(1)
			if ok2 && next.Char == '.' {
				l.it.Next()
				l.it.Next()
				out = append(out, l.emit(token.Token{Kind: token.KindInterval}, cp.Position, 2))
			} else {
				l.it.Next()
				out = append(out, l.emit(token.Token{Kind: token.KindDot}, cp.Position, 1))
			}

		case cp.Char == '[':
			l.it.Next()
			out = append(out, l.emit(token.Token{Kind: token.KindLeftBracket}, cp.Position, 1))
		case cp.Char == ']':
			l.it.Next()
			out = append(out, l.emit(token.Token{Kind: token.KindRightBracket}, cp.Position, 1))
		case cp.Char == '(':
			l.it.Next()
			out = append(out, l.emit(token.Token{Kind: token.KindLeftParen}, cp.Position, 1))
		case cp.Char == ')':
			l.it.Next()
			out = append(out, l.emit(token.Token{Kind: token.KindRightParen}, cp.Position, 1))
		case cp.Char == '{':
			l.it.Next()
			out = append(out, l.emit(token.Token{Kind: token.KindLeftBrace}, cp.Position, 1))
		case cp.Char == '}':
			l.it.Next()
			out = append(out, l.emit(token.Token{Kind: token.KindRightBrace}, cp.Position, 1))

		case cp.Char == '?' || cp.Char == '+' || cp.Char == '*':
			tok, length := l.scanQuantifierSigil(cp.Char)
			out = append(out, l.emit(tok, cp.Position, length))

		case cp.Char >= '0' && cp.Char <= '9':
			tok, length, err := l.scanNumber(cp.Position)
			if err != nil {
				return nil, err
			}
			out = append(out, l.emit(tok, cp.Position, length))

		case cp.Char == '\'':
			tok, length, err := l.scanCharLiteral(cp.Position)
			if err != nil {
				return nil, err
			}
			out = append(out, l.emit(tok, cp.Position, length))

		case cp.Char == '"':
			tok, length, err := l.scanStringLiteral()
			if err != nil {
				return nil, err
			}
			out = append(out, l.emit(tok, cp.Position, length))

		case cp.Char == '/':
			next, ok2 := l.it.Peek(1)
			if ok2 && next.Char == '/' {
				tok, length := l.scanLineComment()
				out = append(out, l.emit(tok, cp.Position, length))
			} else if ok2 && next.Char == '*' {
				tok, length, err := l.scanBlockComment()
				if err != nil {
					return nil, err
				}
				out = append(out, l.emit(tok, cp.Position, length))
			} else {
				return nil, langerr.At(cp.Position, "unexpected char '/'")
			}

		case isIdentifierStart(cp.Char):
			tok, length := l.scanIdentifier()
			out = append(out, l.emit(tok, cp.Position, length))

		default:
			return nil, langerr.At(cp.Position, "unexpected char '"+string(cp.Char)+"'")
		}
	}
}

// Unit returns the source unit index this lexer was constructed for.
func (l *Lexer) Unit() int {
	return l.unit
}

func (l *Lexer) emit(tok token.Token, start location.Location, length int) token.WithRange {
	return token.WithRange{Token: tok, Range: location.FromPositionAndLength(start, length)}
}

func (l *Lexer) scanQuantifierSigil(c rune) (token.Token, int) {
	l.it.Next()
	next, ok := l.it.Peek(0)
	if ok && next.Char == '?' {
		l.it.Next()
		switch c {
		case '?':
			return token.Token{Kind: token.KindQuestionLazy}, 2
		case '+':
			return token.Token{Kind: token.KindPlusLazy}, 2
		case '*':
			return token.Token{Kind: token.KindAsteriskLazy}, 2
		}
	}
	switch c {
	case '?':
		return token.Token{Kind: token.KindQuestion}, 1
	case '+':
		return token.Token{Kind: token.KindPlus}, 1
	default:
		return token.Token{Kind: token.KindAsterisk}, 1
	}
}

func (l *Lexer) scanNumber(start location.Location) (token.Token, int, error) {
	var digits strings.Builder
	n := 0
	for {
		cp, ok := l.it.Peek(0)
		if !ok || terminators[cp.Char] {
			break
		}
		if cp.Char == '_' {
			l.it.Next()
			n++
			continue
		}
		if cp.Char < '0' || cp.Char > '9' {
			return token.Token{}, 0, langerr.At(cp.Position, "unexpected char '"+string(cp.Char)+"' in number literal")
		}
		digits.WriteRune(cp.Char)
		l.it.Next()
		n++
	}

	value, err := strconv.ParseUint(digits.String(), 10, 32)
	if err != nil {
		return token.Token{}, 0, langerr.At(start, "Can not convert \""+digits.String()+"\" to integer number.")
	}
	return token.Token{Kind: token.KindNumber, Number: uint32(value)}, n, nil
}

func (l *Lexer) scanCharLiteral(start location.Location) (token.Token, int, error) {
	l.it.Next() // opening '
	n := 1

	cp, ok := l.it.Peek(0)
	if !ok {
		return token.Token{}, 0, langerr.UnexpectedEndOfDocument("unterminated char literal")
	}
	if cp.Char == '\'' {
		return token.Token{}, 0, langerr.At(start, "empty char literal")
	}

	var c rune
	var err error
	if cp.Char == '\\' {
		c, n, err = l.scanEscape(n)
		if err != nil {
			return token.Token{}, 0, err
		}
	} else {
		l.it.Next()
		c = cp.Char
		n++
	}

	closing, ok := l.it.Peek(0)
	if !ok {
		return token.Token{}, 0, langerr.UnexpectedEndOfDocument("unterminated char literal")
	}
	if closing.Char != '\'' {
		return token.Token{}, 0, langerr.At(closing.Position, "char literal must contain exactly one scalar value")
	}
	l.it.Next()
	n++

	return token.Token{Kind: token.KindChar, Char: c}, n, nil
}

func (l *Lexer) scanStringLiteral() (token.Token, int, error) {
	l.it.Next() // opening "
	n := 1
	var sb strings.Builder

	for {
		cp, ok := l.it.Peek(0)
		if !ok {
			return token.Token{}, 0, langerr.UnexpectedEndOfDocument("unterminated string literal")
		}
		if cp.Char == '"' {
			l.it.Next()
			n++
			return token.Token{Kind: token.KindString, Text: sb.String()}, n, nil
		}
		if cp.Char == '\\' {
			c, consumed, err := l.scanEscape(0)
			if err != nil {
				return token.Token{}, 0, err
			}
			sb.WriteRune(c)
			n += consumed
			continue
		}
		l.it.Next()
		sb.WriteRune(cp.Char)
		n++
	}
}

// scanEscape consumes a backslash escape sequence (the iterator is
// positioned on the '\'); baseConsumed lets char-literal scanning fold the
// escape's length into its running scalar count. Returns the decoded
// scalar and the number of source scalars the escape occupied.
func (l *Lexer) scanEscape(baseConsumed int) (rune, int, error) {
	backslash, _ := l.it.Peek(0)
	l.it.Next() // consume '\\'
	n := baseConsumed + 1

	cp, ok := l.it.Peek(0)
	if !ok {
		return 0, 0, langerr.UnexpectedEndOfDocument("unterminated escape sequence")
	}

	switch cp.Char {
	case '\\':
		l.it.Next()
		return '\\', n + 1, nil
	case '\'':
		l.it.Next()
		return '\'', n + 1, nil
	case '"':
		l.it.Next()
		return '"', n + 1, nil
	case 't':
		l.it.Next()
		return '\t', n + 1, nil
	case 'r':
		l.it.Next()
		return '\r', n + 1, nil
	case 'n':
		l.it.Next()
		return '\n', n + 1, nil
	case '0':
		l.it.Next()
		return 0, n + 1, nil
	case 'u':
		l.it.Next()
		n++
		open, ok := l.it.Peek(0)
		if !ok || open.Char != '{' {
			return 0, 0, langerr.At(backslash.Position, "expected '{' after \\u")
		}
		l.it.Next()
		n++
		var hex strings.Builder
		for {
			cp2, ok2 := l.it.Peek(0)
			if !ok2 {
				return 0, 0, langerr.UnexpectedEndOfDocument("unterminated unicode escape")
			}
			if cp2.Char == '}' {
				l.it.Next()
				n++
				break
			}
			hex.WriteRune(cp2.Char)
			l.it.Next()
			n++
		}
		if hex.Len() < 1 || hex.Len() > 6 {
			return 0, 0, langerr.At(backslash.Position, "unicode escape must have 1 to 6 hex digits")
		}
		value, err := strconv.ParseUint(hex.String(), 16, 32)
		if err != nil || !isValidScalar(rune(value)) {
			return 0, 0, langerr.At(backslash.Position, "invalid unicode escape \\u{"+hex.String()+"}")
		}
		return rune(value), n, nil
	default:
		return 0, 0, langerr.At(cp.Position, "unsupported escape sequence '\\"+string(cp.Char)+"'")
	}
}

func isValidScalar(r rune) bool {
	return r >= 0 && r <= 0x10FFFF && !(r >= 0xD800 && r <= 0xDFFF)
}

func (l *Lexer) scanLineComment() (token.Token, int) {
	l.it.Next()
	l.it.Next()
	n := 2
	var sb strings.Builder
	for {
		cp, ok := l.it.Peek(0)
		if !ok || cp.Char == '\n' || cp.Char == '\r' {
			break
		}
		sb.WriteRune(cp.Char)
		l.it.Next()
		n++
	}
	return token.Token{Kind: token.KindComment, CommentKind: token.CommentLine, Text: sb.String()}, n
}

func (l *Lexer) scanBlockComment() (token.Token, int, error) {
	l.it.Next()
	l.it.Next()
	n := 2
	depth := 1
	var sb strings.Builder
	for depth > 0 {
		cp, ok := l.it.Peek(0)
		if !ok {
			return token.Token{}, 0, langerr.UnexpectedEndOfDocument("unterminated block comment")
		}
		if cp.Char == '/' {
			if next, ok2 := l.it.Peek(1); ok2 && next.Char == '*' {
				l.it.Next()
				l.it.Next()
				n += 2
				depth++
				sb.WriteString("/*")
				continue
			}
		}
		if cp.Char == '*' {
			if next, ok2 := l.it.Peek(1); ok2 && next.Char == '/' {
				l.it.Next()
				l.it.Next()
				n += 2
				depth--
				if depth > 0 {
					sb.WriteString("*/")
				}
				continue
			}
		}
		sb.WriteRune(cp.Char)
		l.it.Next()
		n++
	}
	return token.Token{Kind: token.KindComment, CommentKind: token.CommentBlock, Text: sb.String()}, n, nil
}

func (l *Lexer) scanIdentifier() (token.Token, int) {
	var sb strings.Builder
	n := 0
	for {
		cp, ok := l.it.Peek(0)
		if !ok || terminators[cp.Char] {
			break
		}
		if n == 0 && !isIdentifierStart(cp.Char) {
			break
		}
		if n > 0 && !isIdentifierContinue(cp.Char) {
			break
		}
		sb.WriteRune(cp.Char)
		l.it.Next()
		n++
	}

	name := sb.String()
	switch {
	case symbolNames[name]:
		return token.Token{Kind: token.KindSymbol, Text: name}, n
	case presetNames[name]:
		return token.Token{Kind: token.KindPresetCharSet, Text: name}, n
	default:
		return token.Token{Kind: token.KindIdentifier, Text: name}, n
	}
}

func isIdentifierStart(r rune) bool {
	if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || r == '_' {
		return true
	}
	return (r >= 0x00A0 && r <= 0xD7FF) || (r >= 0xE000 && r <= 0x10FFFF)
}

func isIdentifierContinue(r rune) bool {
	if r >= '0' && r <= '9' {
		return true
	}
	return isIdentifierStart(r)
}
