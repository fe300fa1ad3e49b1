// Package core compiles the anreg surface regex language into an NFA
// image: a lexer, comment stripper, normalizer, macro expander, and
// recursive-descent parser feeding an AST-to-NFA compiler. The image is
// the handoff artifact for a (separately implemented) matching engine —
// this package stops at compilation.
package core

import (
	"github.com/anreg/core/ast"
	"github.com/anreg/core/compiler"
	"github.com/anreg/core/lexer"
	"github.com/anreg/core/macro"
	"github.com/anreg/core/nfaimg"
	"github.com/anreg/core/parser"
	"github.com/anreg/core/token"
)

// Compile runs the full pipeline — lex, strip comments, normalize,
// expand macros, parse, compile — over pattern and returns the
// resulting NFA image, or the first error any stage reports.
func Compile(pattern string) (*nfaimg.Image, error) {
	return CompileWithConfig(pattern, compiler.DefaultConfig())
}

// CompileWithConfig is Compile with caller-supplied compiler limits.
func CompileWithConfig(pattern string, cfg compiler.Config) (*nfaimg.Image, error) {
	program, err := Parse(pattern)
	if err != nil {
		return nil, err
	}
	return compiler.CompileWithConfig(program, cfg)
}

// Parse runs the front end only — lex through parse — and returns the
// resulting AST without compiling it. Exposed for tooling (formatters,
// linters) that want the tree without paying for NFA construction.
func Parse(pattern string) (*ast.Program, error) {
	tokens, err := lexer.Lex(0, pattern)
	if err != nil {
		return nil, err
	}

	tokens = token.StripComments(tokens)
	tokens = token.Normalize(tokens)

	tokens, err = macro.Expand(tokens)
	if err != nil {
		return nil, err
	}
	tokens = token.Normalize(tokens)

	return parser.Parse(tokens)
}
