package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/anreg/core/ast"
	"github.com/anreg/core/lexer"
	"github.com/anreg/core/macro"
	"github.com/anreg/core/token"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	toks, err := lexer.Lex(0, src)
	if err != nil {
		t.Fatalf("Lex(%q): unexpected error: %v", src, err)
	}
	toks = token.Normalize(token.StripComments(toks))
	toks, err = macro.Expand(toks)
	if err != nil {
		t.Fatalf("Expand(%q): unexpected error: %v", src, err)
	}
	toks = token.Normalize(toks)
	prog, err := Parse(toks)
	if err != nil {
		t.Fatalf("Parse(%q): unexpected error: %v", src, err)
	}
	return prog
}

func zeroStart(e *ast.Expression) {
	var z ast.Expression
	e.Start = z.Start
	switch e.Kind {
	case ast.ExprGroup:
		for i := range e.Group {
			zeroStart(&e.Group[i])
		}
	case ast.ExprAlternation:
		zeroStart(&e.Alternation.Left)
		zeroStart(&e.Alternation.Right)
	case ast.ExprFunctionCall:
		zeroStart(&e.Call.Expression)
	}
}

func zeroProgram(p *ast.Program) *ast.Program {
	for i := range p.Expressions {
		zeroStart(&p.Expressions[i])
	}
	return p
}

func TestParseCharLiteral(t *testing.T) {
	got := zeroProgram(mustParse(t, "'a'"))
	want := &ast.Program{Expressions: []ast.Expression{
		{Kind: ast.ExprLiteral, Literal: ast.Literal{Kind: ast.LiteralChar, Char: 'a'}},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse(%q) mismatch (-want +got):\n%s", "'a'", diff)
	}
}

func TestParseStringLiteral(t *testing.T) {
	got := zeroProgram(mustParse(t, `"hi"`))
	want := &ast.Program{Expressions: []ast.Expression{
		{Kind: ast.ExprLiteral, Literal: ast.Literal{Kind: ast.LiteralString, String: "hi"}},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParseConcatenation(t *testing.T) {
	got := zeroProgram(mustParse(t, "'a', 'b'"))
	want := &ast.Program{Expressions: []ast.Expression{
		{Kind: ast.ExprLiteral, Literal: ast.Literal{Kind: ast.LiteralChar, Char: 'a'}},
		{Kind: ast.ExprLiteral, Literal: ast.Literal{Kind: ast.LiteralChar, Char: 'b'}},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParseAlternationIsRightAssociative(t *testing.T) {
	got := zeroProgram(mustParse(t, "'a' || 'b' || 'c'"))

	prog := got
	if len(prog.Expressions) != 1 || prog.Expressions[0].Kind != ast.ExprAlternation {
		t.Fatalf("Parse(%q) = %+v, want a single top-level alternation", "'a' || 'b' || 'c'", prog)
	}
	top := prog.Expressions[0].Alternation
	if top.Left.Kind != ast.ExprLiteral || top.Left.Literal.Char != 'a' {
		t.Errorf("left arm = %+v, want literal 'a'", top.Left)
	}
	if top.Right.Kind != ast.ExprAlternation {
		t.Fatalf("right arm = %+v, want a nested alternation (right-associative)", top.Right)
	}
	inner := top.Right.Alternation
	if inner.Left.Literal.Char != 'b' || inner.Right.Literal.Char != 'c' {
		t.Errorf("inner alternation = %+v, want ('b' || 'c')", inner)
	}
}

func TestParseGroup(t *testing.T) {
	got := zeroProgram(mustParse(t, "('a', 'b')"))
	want := &ast.Program{Expressions: []ast.Expression{
		{Kind: ast.ExprGroup, Group: []ast.Expression{
			{Kind: ast.ExprLiteral, Literal: ast.Literal{Kind: ast.LiteralChar, Char: 'a'}},
			{Kind: ast.ExprLiteral, Literal: ast.Literal{Kind: ast.LiteralChar, Char: 'b'}},
		}},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParseNotationQuantifiers(t *testing.T) {
	tests := []struct {
		src  string
		name ast.FunctionName
	}{
		{"'a'?", ast.Optional},
		{"'a'??", ast.OptionalLazy},
		{"'a'+", ast.OneOrMore},
		{"'a'+?", ast.OneOrMoreLazy},
		{"'a'*", ast.ZeroOrMore},
		{"'a'*?", ast.ZeroOrMoreLazy},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			prog := mustParse(t, tt.src)
			if len(prog.Expressions) != 1 || prog.Expressions[0].Kind != ast.ExprFunctionCall {
				t.Fatalf("Parse(%q) = %+v, want a single function call", tt.src, prog)
			}
			if got := prog.Expressions[0].Call.Name; got != tt.name {
				t.Errorf("Parse(%q) function = %v, want %v", tt.src, got, tt.name)
			}
		})
	}
}

func TestParseBraceRepetition(t *testing.T) {
	tests := []struct {
		src      string
		wantName ast.FunctionName
		wantArgs []uint32
	}{
		{"'a'{3}", ast.Repeat, []uint32{3}},
		{"'a'{3}?", ast.RepeatLazy, []uint32{3}},
		{"'a'{2,5}", ast.RepeatRange, []uint32{2, 5}},
		{"'a'{2,5}?", ast.RepeatRangeLazy, []uint32{2, 5}},
		{"'a'{2,}", ast.AtLeast, []uint32{2}},
		{"'a'{2,}?", ast.AtLeastLazy, []uint32{2}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			prog := mustParse(t, tt.src)
			if len(prog.Expressions) != 1 || prog.Expressions[0].Kind != ast.ExprFunctionCall {
				t.Fatalf("Parse(%q) = %+v, want a single function call", tt.src, prog)
			}
			call := prog.Expressions[0].Call
			if call.Name != tt.wantName {
				t.Errorf("Parse(%q) function = %v, want %v", tt.src, call.Name, tt.wantName)
			}
			if len(call.Args) != len(tt.wantArgs) {
				t.Fatalf("Parse(%q) args = %+v, want %d args", tt.src, call.Args, len(tt.wantArgs))
			}
			for i, w := range tt.wantArgs {
				if call.Args[i].Number != w {
					t.Errorf("Parse(%q) arg %d = %d, want %d", tt.src, i, call.Args[i].Number, w)
				}
			}
		})
	}
}

func TestParsePrefixAndRearCallAgree(t *testing.T) {
	prefix := mustParse(t, "optional('a')")
	rear := mustParse(t, "'a'.optional()")

	if prefix.Expressions[0].Call.Name != rear.Expressions[0].Call.Name {
		t.Errorf("prefix call name %v != rear call name %v", prefix.Expressions[0].Call.Name, rear.Expressions[0].Call.Name)
	}
	if prefix.Expressions[0].Call.Expression.Literal.Char != rear.Expressions[0].Call.Expression.Literal.Char {
		t.Errorf("prefix/rear receivers differ")
	}
}

func TestParseCharSet(t *testing.T) {
	got := zeroProgram(mustParse(t, "['a', 'b'..'z']"))
	want := &ast.Program{Expressions: []ast.Expression{
		{Kind: ast.ExprLiteral, Literal: ast.Literal{Kind: ast.LiteralCharSet, CharSet: ast.CharSet{
			Elements: []ast.CharSetElement{
				{Kind: ast.CharSetElemChar, Char: 'a'},
				{Kind: ast.CharSetElemRange, RangeStart: 'b', RangeEnd: 'z'},
			},
		}}},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParseNegativeCharSet(t *testing.T) {
	prog := mustParse(t, "!['a']")
	lit := prog.Expressions[0].Literal
	if lit.Kind != ast.LiteralCharSet || !lit.CharSet.Negative {
		t.Errorf("Parse(!['a']) = %+v, want a negative charset", lit)
	}
}

func TestParseDotIsSpecialCharAny(t *testing.T) {
	prog := mustParse(t, ".")
	lit := prog.Expressions[0].Literal
	if lit.Kind != ast.LiteralSpecial || lit.Special != ast.SpecialCharAny {
		t.Errorf("Parse(.) = %+v, want special char_any", lit)
	}
}

func TestParseBackReferenceIdentifier(t *testing.T) {
	prog := mustParse(t, "name('a', foo), foo")
	if prog.Expressions[1].Kind != ast.ExprIdentifier || prog.Expressions[1].Identifier != "foo" {
		t.Errorf("Parse second expression = %+v, want identifier back-reference %q", prog.Expressions[1], "foo")
	}
}

func TestParseAssertionSymbols(t *testing.T) {
	tests := []struct {
		src  string
		want ast.AssertionName
	}{
		{"start", ast.AssertionStart},
		{"end", ast.AssertionEnd},
		{"bound", ast.AssertionBound},
		{"not_bound", ast.AssertionNotBound},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			prog := mustParse(t, tt.src)
			if prog.Expressions[0].Kind != ast.ExprAssertion || prog.Expressions[0].Assertion != tt.want {
				t.Errorf("Parse(%q) = %+v, want assertion %v", tt.src, prog.Expressions[0], tt.want)
			}
		})
	}
}

func TestParseUnknownFunctionNameErrors(t *testing.T) {
	toks, err := lexer.Lex(0, "bogus('a')")
	if err != nil {
		t.Fatalf("Lex: unexpected error: %v", err)
	}
	if _, err := Parse(toks); err == nil {
		t.Fatal("expected an error for an unknown function name")
	}
}

func TestParseUnterminatedGroupErrors(t *testing.T) {
	toks, err := lexer.Lex(0, "('a'")
	if err != nil {
		t.Fatalf("Lex: unexpected error: %v", err)
	}
	if _, err := Parse(toks); err == nil {
		t.Fatal("expected an error for an unterminated group")
	}
}
