// Package parser implements the recursive-descent parser that turns a
// normalized, macro-expanded token stream into an ast.Program.
package parser

import (
	"github.com/anreg/core/ast"
	"github.com/anreg/core/internal/iter"
	"github.com/anreg/core/langerr"
	"github.com/anreg/core/location"
	"github.com/anreg/core/token"
)

// Parser consumes tokens through a bounded-lookahead iterator (depth 3),
// matching the lexer's own lookahead discipline.
type Parser struct {
	it        *iter.Bounded[token.WithRange]
	lastRange location.Location
}

// Parse parses a fully-normalized, macro-expanded token stream.
func Parse(tokens []token.WithRange) (*ast.Program, error) {
	p := &Parser{it: iter.New(tokens)}
	return p.parseProgram()
}

func (p *Parser) nextToken() (token.WithRange, bool) {
	t, ok := p.it.Next()
	if ok {
		p.lastRange = t.Range
	}
	return t, ok
}

func (p *Parser) peekToken(offset int) (token.Token, bool) {
	t, ok := p.it.Peek(offset)
	if !ok {
		return token.Token{}, false
	}
	return t.Token, true
}

func (p *Parser) peekRange(offset int) location.Location {
	t, ok := p.it.Peek(offset)
	if !ok {
		return p.lastRange
	}
	return t.Range
}

func (p *Parser) peekKindIs(offset int, kind token.Kind) bool {
	t, ok := p.peekToken(offset)
	return ok && t.Kind == kind
}

func (p *Parser) consumeNewLineIfExist() bool {
	if p.peekKindIs(0, token.KindNewLine) {
		p.nextToken()
		return true
	}
	return false
}

func (p *Parser) consumeSeparatorIfExist() bool {
	if t, ok := p.peekToken(0); ok && t.IsSeparator() {
		p.nextToken()
		return true
	}
	return false
}

func (p *Parser) expectToken(kind token.Kind, description string) error {
	t, ok := p.nextToken()
	if !ok {
		return langerr.UnexpectedEndOfDocument("Expect " + description + ".")
	}
	if t.Token.Kind != kind {
		return langerr.At(p.lastRange.Start(), "Expect "+description+".")
	}
	return nil
}

func (p *Parser) expectIdentifier() (string, error) {
	t, ok := p.peekToken(0)
	if !ok {
		return "", langerr.UnexpectedEndOfDocument("Expect an identifier.")
	}
	if t.Kind != token.KindIdentifier {
		return "", langerr.At(p.peekRange(0).Start(), "Expect an identifier.")
	}
	p.nextToken()
	return t.Text, nil
}

func (p *Parser) expectNumber() (uint32, error) {
	t, ok := p.peekToken(0)
	if !ok {
		return 0, langerr.UnexpectedEndOfDocument("Expect a number.")
	}
	if t.Kind != token.KindNumber {
		return 0, langerr.At(p.peekRange(0).Start(), "Expect a number.")
	}
	p.nextToken()
	return t.Number, nil
}

func (p *Parser) expectChar() (rune, error) {
	t, ok := p.peekToken(0)
	if !ok {
		return 0, langerr.UnexpectedEndOfDocument("Expect a char.")
	}
	if t.Kind != token.KindChar {
		return 0, langerr.At(p.peekRange(0).Start(), "Expect a char.")
	}
	p.nextToken()
	return t.Char, nil
}

// parseProgram := [ expr ( separator expr )* ] EOF
func (p *Parser) parseProgram() (*ast.Program, error) {
	var expressions []ast.Expression
	for p.it.HasMore() {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		expressions = append(expressions, expr)

		if !p.consumeSeparatorIfExist() {
			break
		}
	}
	if p.it.HasMore() {
		return nil, langerr.At(p.peekRange(0).Start(), "Expect a comma or new-line.")
	}
	return &ast.Program{Expressions: expressions}, nil
}

func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseAlternation()
}

// parseAlternation := simple ( '||' simple )*, right-associative: the
// right-hand side of the first '||' is itself parsed as an alternation.
func (p *Parser) parseAlternation() (ast.Expression, error) {
	left, err := p.parseSimple()
	if err != nil {
		return ast.Expression{}, err
	}

	if !p.peekKindIs(0, token.KindLogicOr) {
		return left, nil
	}
	p.nextToken() // '||'
	p.consumeNewLineIfExist()

	right, err := p.parseAlternation()
	if err != nil {
		return ast.Expression{}, err
	}

	return ast.Expression{
		Kind:        ast.ExprAlternation,
		Alternation: &ast.Alternation{Left: left, Right: right},
	}, nil
}

// parseSimple := atom ( postfix )*
func (p *Parser) parseSimple() (ast.Expression, error) {
	left, err := p.parseAtom()
	if err != nil {
		return ast.Expression{}, err
	}

	for {
		t, ok := p.peekToken(0)
		if !ok {
			break
		}

		switch t.Kind {
		case token.KindQuestion, token.KindQuestionLazy,
			token.KindPlus, token.KindPlusLazy,
			token.KindAsterisk, token.KindAsteriskLazy:
			name := notationFunctionName(t.Kind)
			p.nextToken()
			left = ast.Expression{
				Kind: ast.ExprFunctionCall,
				Call: &ast.FunctionCall{Name: name, Expression: left},
			}

		case token.KindLeftBrace:
			call, err := p.parseBracePostfix(left)
			if err != nil {
				return ast.Expression{}, err
			}
			left = call

		case token.KindDot:
			if p.peekKindIs(1, token.KindIdentifier) && p.peekKindIs(2, token.KindLeftParen) {
				call, err := p.parseRearCall(left)
				if err != nil {
					return ast.Expression{}, err
				}
				left = ast.Expression{Kind: ast.ExprFunctionCall, Call: call}
				continue
			}
			return left, nil

		default:
			return left, nil
		}
	}

	return left, nil
}

func notationFunctionName(kind token.Kind) ast.FunctionName {
	switch kind {
	case token.KindQuestion:
		return ast.Optional
	case token.KindQuestionLazy:
		return ast.OptionalLazy
	case token.KindPlus:
		return ast.OneOrMore
	case token.KindPlusLazy:
		return ast.OneOrMoreLazy
	case token.KindAsterisk:
		return ast.ZeroOrMore
	case token.KindAsteriskLazy:
		return ast.ZeroOrMoreLazy
	default:
		panic("unreachable: not a notation quantifier token")
	}
}

// parseBracePostfix handles '{' number '}' | '{' number ',' [number] '}' ['?'].
func (p *Parser) parseBracePostfix(receiver ast.Expression) (ast.Expression, error) {
	p.nextToken() // '{'
	p.consumeNewLineIfExist()

	from, err := p.expectNumber()
	if err != nil {
		return ast.Expression{}, err
	}

	var args []ast.FunctionCallArg
	var name ast.FunctionName

	dual := false
	var to uint32
	hasTo := false

	switch {
	case p.peekKindIs(0, token.KindComma):
		p.nextToken()
		p.consumeNewLineIfExist()
		dual = true
		if n, ok := p.peekToken(0); ok && n.Kind == token.KindNumber {
			to = n.Number
			hasTo = true
			p.nextToken()
		}
	case p.peekKindIs(0, token.KindNewLine) && p.peekKindIs(1, token.KindNumber):
		p.nextToken() // newline
		n, _ := p.nextToken()
		dual = true
		to = n.Token.Number
		hasTo = true
	}

	p.consumeNewLineIfExist()
	if err := p.expectToken(token.KindRightBrace, "'}'"); err != nil {
		return ast.Expression{}, err
	}

	lazy := false
	if p.peekKindIs(0, token.KindQuestion) {
		p.nextToken()
		lazy = true
	}

	switch {
	case !dual:
		args = []ast.FunctionCallArg{{Kind: ast.ArgNumber, Number: from}}
		if lazy {
			name = ast.RepeatLazy
		} else {
			name = ast.Repeat
		}
	case hasTo:
		args = []ast.FunctionCallArg{{Kind: ast.ArgNumber, Number: from}, {Kind: ast.ArgNumber, Number: to}}
		if lazy {
			name = ast.RepeatRangeLazy
		} else {
			name = ast.RepeatRange
		}
	default:
		args = []ast.FunctionCallArg{{Kind: ast.ArgNumber, Number: from}}
		if lazy {
			name = ast.AtLeastLazy
		} else {
			name = ast.AtLeast
		}
	}

	return ast.Expression{
		Kind: ast.ExprFunctionCall,
		Call: &ast.FunctionCall{Name: name, Expression: receiver, Args: args},
	}, nil
}

// parseRearCall handles '.' identifier '(' args ')' with receiver already parsed.
func (p *Parser) parseRearCall(receiver ast.Expression) (*ast.FunctionCall, error) {
	p.nextToken() // '.'

	nameText, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	name, ok := ast.LookupFunctionName(nameText)
	if !ok {
		return nil, p.unknownFunctionNameError(nameText)
	}

	p.nextToken() // '('
	p.consumeNewLineIfExist()

	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}

	if err := p.expectToken(token.KindRightParen, "')'"); err != nil {
		return nil, err
	}

	return &ast.FunctionCall{Name: name, Expression: receiver, Args: args}, nil
}

// parseAtom := literal | identifier | group | call
func (p *Parser) parseAtom() (ast.Expression, error) {
	t, ok := p.peekToken(0)
	if !ok {
		return ast.Expression{}, langerr.UnexpectedEndOfDocument("Expect an expression.")
	}
	start := p.peekRange(0).Start()

	var expr ast.Expression
	var err error

	switch {
	case t.Kind == token.KindLeftParen:
		expr, err = p.parseGroup()

	case t.Kind == token.KindSymbol:
		p.nextToken()
		expr = ast.Expression{Kind: ast.ExprAssertion, Assertion: assertionFromSymbol(t.Text)}

	case t.Kind == token.KindIdentifier && p.peekKindIs(1, token.KindLeftParen):
		expr, err = p.parsePrefixCall()

	case t.Kind == token.KindIdentifier:
		p.nextToken()
		expr = ast.Expression{Kind: ast.ExprIdentifier, Identifier: t.Text}

	default:
		var lit ast.Literal
		lit, err = p.parseLiteral()
		if err == nil {
			expr = ast.Expression{Kind: ast.ExprLiteral, Literal: lit}
		}
	}

	if err != nil {
		return ast.Expression{}, err
	}
	expr.Start = start
	return expr, nil
}

func assertionFromSymbol(name string) ast.AssertionName {
	switch name {
	case token.SymbolStart:
		return ast.AssertionStart
	case token.SymbolEnd:
		return ast.AssertionEnd
	case token.SymbolBound:
		return ast.AssertionBound
	case token.SymbolNotBound:
		return ast.AssertionNotBound
	default:
		panic("unreachable: unknown reserved symbol " + name)
	}
}

// parseGroup := '(' [ expr ( separator expr )* ] ')'
func (p *Parser) parseGroup() (ast.Expression, error) {
	p.nextToken() // '('
	p.consumeNewLineIfExist()

	var expressions []ast.Expression
	for {
		t, ok := p.peekToken(0)
		if !ok || t.Kind == token.KindRightParen {
			break
		}

		expr, err := p.parseExpression()
		if err != nil {
			return ast.Expression{}, err
		}
		expressions = append(expressions, expr)

		if !p.consumeSeparatorIfExist() {
			break
		}
	}

	if err := p.expectToken(token.KindRightParen, "')'"); err != nil {
		return ast.Expression{}, err
	}

	return ast.Expression{Kind: ast.ExprGroup, Group: expressions}, nil
}

// parsePrefixCall := identifier '(' expr ( separator arg )* ')'
func (p *Parser) parsePrefixCall() (ast.Expression, error) {
	nameText, err := p.expectIdentifier()
	if err != nil {
		return ast.Expression{}, err
	}
	name, ok := ast.LookupFunctionName(nameText)
	if !ok {
		return ast.Expression{}, p.unknownFunctionNameError(nameText)
	}

	p.nextToken() // '('
	p.consumeNewLineIfExist()

	receiver, err := p.parseExpression()
	if err != nil {
		return ast.Expression{}, err
	}
	p.consumeSeparatorIfExist()

	args, err := p.parseArgs()
	if err != nil {
		return ast.Expression{}, err
	}

	if err := p.expectToken(token.KindRightParen, "')'"); err != nil {
		return ast.Expression{}, err
	}

	return ast.Expression{
		Kind: ast.ExprFunctionCall,
		Call: &ast.FunctionCall{Name: name, Expression: receiver, Args: args},
	}, nil
}

// parseArgs := [ arg ( separator arg )* ], stopping at ')'.
func (p *Parser) parseArgs() ([]ast.FunctionCallArg, error) {
	var args []ast.FunctionCallArg
	for {
		t, ok := p.peekToken(0)
		if !ok || t.Kind == token.KindRightParen {
			break
		}

		switch t.Kind {
		case token.KindNumber:
			p.nextToken()
			args = append(args, ast.FunctionCallArg{Kind: ast.ArgNumber, Number: t.Number})
		case token.KindIdentifier:
			p.nextToken()
			args = append(args, ast.FunctionCallArg{Kind: ast.ArgIdentifier, Identifier: t.Text})
		default:
			return nil, langerr.At(p.peekRange(0).Start(), "Unsupported argument value.")
		}

		if !p.consumeSeparatorIfExist() {
			break
		}
	}
	return args, nil
}

// parseLiteral := char | string | preset | '[' charset_body ']' | '!' '[' charset_body ']' | '.'
func (p *Parser) parseLiteral() (ast.Literal, error) {
	t, ok := p.peekToken(0)
	if !ok {
		return ast.Literal{}, langerr.UnexpectedEndOfDocument("Expect a literal.")
	}

	switch t.Kind {
	case token.KindChar:
		p.nextToken()
		return ast.Literal{Kind: ast.LiteralChar, Char: t.Char}, nil

	case token.KindString:
		p.nextToken()
		return ast.Literal{Kind: ast.LiteralString, String: t.Text}, nil

	case token.KindPresetCharSet:
		p.nextToken()
		return ast.Literal{Kind: ast.LiteralPresetCharSet, PresetName: t.Text}, nil

	case token.KindDot:
		p.nextToken()
		return ast.Literal{Kind: ast.LiteralSpecial, Special: ast.SpecialCharAny}, nil

	case token.KindLeftBracket:
		elements, err := p.parseCharSetBody()
		if err != nil {
			return ast.Literal{}, err
		}
		return ast.Literal{Kind: ast.LiteralCharSet, CharSet: ast.CharSet{Elements: elements}}, nil

	case token.KindExclamation:
		if !p.peekKindIs(1, token.KindLeftBracket) {
			return ast.Literal{}, langerr.At(p.peekRange(0).Start(), "Expect a literal.")
		}
		p.nextToken() // '!'
		elements, err := p.parseCharSetBody()
		if err != nil {
			return ast.Literal{}, err
		}
		return ast.Literal{Kind: ast.LiteralCharSet, CharSet: ast.CharSet{Negative: true, Elements: elements}}, nil

	default:
		return ast.Literal{}, langerr.At(p.peekRange(0).Start(), "Expect a literal.")
	}
}

// parseCharSetBody := '[' charset_elem ( separator charset_elem )* ']'
func (p *Parser) parseCharSetBody() ([]ast.CharSetElement, error) {
	p.nextToken() // '['
	p.consumeNewLineIfExist()

	var elements []ast.CharSetElement
	for {
		t, ok := p.peekToken(0)
		if !ok || t.Kind == token.KindRightBracket {
			break
		}

		elem, err := p.parseCharSetElement()
		if err != nil {
			return nil, err
		}
		elements = append(elements, elem)

		if !p.consumeSeparatorIfExist() {
			break
		}
	}

	if err := p.expectToken(token.KindRightBracket, "']'"); err != nil {
		return nil, err
	}
	return elements, nil
}

// parseCharSetElement := char | char '..' char | preset | symbol | charset | '!' charset
func (p *Parser) parseCharSetElement() (ast.CharSetElement, error) {
	t, ok := p.peekToken(0)
	if !ok {
		return ast.CharSetElement{}, langerr.UnexpectedEndOfDocument("Expect a char-set element.")
	}

	switch {
	case t.Kind == token.KindChar && p.charRangeFollows():
		return p.parseCharRange()

	case t.Kind == token.KindChar:
		p.nextToken()
		return ast.CharSetElement{Kind: ast.CharSetElemChar, Char: t.Char}, nil

	case t.Kind == token.KindPresetCharSet:
		p.nextToken()
		return ast.CharSetElement{Kind: ast.CharSetElemPreset, PresetName: t.Text}, nil

	case t.Kind == token.KindSymbol:
		p.nextToken()
		return ast.CharSetElement{Kind: ast.CharSetElemSymbol, Symbol: assertionFromSymbol(t.Text)}, nil

	case t.Kind == token.KindLeftBracket:
		elements, err := p.parseCharSetBody()
		if err != nil {
			return ast.CharSetElement{}, err
		}
		return ast.CharSetElement{Kind: ast.CharSetElemNested, Nested: ast.CharSet{Elements: elements}}, nil

	case t.Kind == token.KindExclamation && p.peekKindIs(1, token.KindLeftBracket):
		p.nextToken() // '!'
		elements, err := p.parseCharSetBody()
		if err != nil {
			return ast.CharSetElement{}, err
		}
		return ast.CharSetElement{Kind: ast.CharSetElemNested, Nested: ast.CharSet{Negative: true, Elements: elements}}, nil

	default:
		return ast.CharSetElement{}, langerr.At(p.peekRange(0).Start(), "Unexpected char set element.")
	}
}

// charRangeFollows reports whether the char at offset 0 begins a `char ..
// char` range, allowing a single newline before the '..'.
func (p *Parser) charRangeFollows() bool {
	if p.peekKindIs(1, token.KindInterval) {
		return true
	}
	return p.peekKindIs(1, token.KindNewLine) && p.peekKindIs(2, token.KindInterval)
}

func (p *Parser) parseCharRange() (ast.CharSetElement, error) {
	start, err := p.expectChar()
	if err != nil {
		return ast.CharSetElement{}, err
	}
	p.consumeNewLineIfExist()

	p.nextToken() // '..'
	p.consumeNewLineIfExist()

	end, err := p.expectChar()
	if err != nil {
		return ast.CharSetElement{}, err
	}

	return ast.CharSetElement{Kind: ast.CharSetElemRange, RangeStart: start, RangeEnd: end}, nil
}

func (p *Parser) unknownFunctionNameError(name string) error {
	if suggestion, ok := suggestFunctionName(name); ok {
		return langerr.Atf(p.lastRange.Start(), "Unknown function name %q. Did you mean %q?", name, suggestion)
	}
	return langerr.Atf(p.lastRange.Start(), "Unknown function name %q.", name)
}
