package core

import (
	"testing"

	"github.com/anreg/core/compiler"
)

func TestCompileSimplePattern(t *testing.T) {
	img, err := Compile("'a', 'b'+")
	if err != nil {
		t.Fatalf("Compile: unexpected error: %v", err)
	}
	if len(img.StateSets) != 1 {
		t.Fatalf("got %d state sets, want 1", len(img.StateSets))
	}
	if img.NumberOfCaptures() != 1 {
		t.Errorf("got %d captures, want 1 (implicit whole-program capture)", img.NumberOfCaptures())
	}
}

func TestCompileWithMacroDefinition(t *testing.T) {
	img, err := Compile("define(digit, char_digit)\ndigit+")
	if err != nil {
		t.Fatalf("Compile: unexpected error: %v", err)
	}
	if len(img.StateSets) != 1 {
		t.Fatalf("got %d state sets, want 1", len(img.StateSets))
	}
}

// TestParseRenormalizesAfterExpansion guards against the separator left
// behind by define() removal: expansion must be sandwiched between two
// Normalize passes, or a leftover newline adjacent to another separator
// reaches the parser unmerged.
func TestParseRenormalizesAfterExpansion(t *testing.T) {
	prog, err := Parse("define(digit, char_digit)\ndigit+, 'a'")
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	if len(prog.Expressions) != 2 {
		t.Errorf("got %d top-level expressions, want 2", len(prog.Expressions))
	}
}

func TestCompilePropagatesLexError(t *testing.T) {
	if _, err := Compile("|"); err == nil {
		t.Fatal("expected a lex error for a lone '|'")
	}
}

func TestCompilePropagatesParseError(t *testing.T) {
	if _, err := Compile("bogus('a')"); err == nil {
		t.Fatal("expected a parse error for an unknown function name")
	}
}

func TestCompilePropagatesCompilerError(t *testing.T) {
	if _, err := Compile("'a'{5,3}"); err == nil {
		t.Fatal("expected a compiler error for an inverted repeat range")
	}
}

func TestCompileWithConfigEnforcesRecursionDepth(t *testing.T) {
	cfg := compiler.Config{MaxRecursionDepth: 2}
	if _, err := CompileWithConfig("((('a')))", cfg); err == nil {
		t.Fatal("expected a recursion-depth error with a tight limit")
	}
}

func TestParseReturnsASTWithoutCompiling(t *testing.T) {
	prog, err := Parse("'a', 'b'")
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	if len(prog.Expressions) != 2 {
		t.Errorf("got %d top-level expressions, want 2", len(prog.Expressions))
	}
}
