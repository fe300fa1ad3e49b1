package macro

import (
	"testing"

	"github.com/anreg/core/lexer"
	"github.com/anreg/core/token"
)

func lex(t *testing.T, src string) []token.WithRange {
	t.Helper()
	toks, err := lexer.Lex(0, src)
	if err != nil {
		t.Fatalf("Lex(%q): unexpected error: %v", src, err)
	}
	return token.Normalize(token.StripComments(toks))
}

func identifierNames(ts []token.WithRange) []string {
	var out []string
	for _, t := range ts {
		if t.Token.Kind == token.KindIdentifier {
			out = append(out, t.Token.Text)
		}
	}
	return out
}

func TestExpandInlinesSingleDefinition(t *testing.T) {
	got, err := Expand(lex(t, `define(digits, char_digit), digits`))
	if err != nil {
		t.Fatalf("Expand: unexpected error: %v", err)
	}

	for _, tok := range got {
		if tok.Token.Kind == token.KindIdentifier && tok.Token.Text == "define" {
			t.Fatalf("Expand left a define() form in output: %+v", got)
		}
	}

	var sawPreset bool
	for _, tok := range got {
		if tok.Token.Kind == token.KindPresetCharSet && tok.Token.Text == "char_digit" {
			sawPreset = true
		}
	}
	if !sawPreset {
		t.Errorf("Expand(%v) did not inline char_digit, got %+v", "define(digits, char_digit), digits", got)
	}
}

func TestExpandLaterDefinitionReferencesEarlier(t *testing.T) {
	got, err := Expand(lex(t, "define(a, 'x')\ndefine(b, a)\nb"))
	if err != nil {
		t.Fatalf("Expand: unexpected error: %v", err)
	}

	var sawChar bool
	for _, tok := range got {
		if tok.Token.Kind == token.KindChar && tok.Token.Char == 'x' {
			sawChar = true
		}
	}
	if !sawChar {
		t.Errorf("Expand did not transitively inline 'a' into 'b', got %+v", got)
	}
}

func TestExpandIsIdempotent(t *testing.T) {
	once, err := Expand(lex(t, "define(a, 'x')\na, a"))
	if err != nil {
		t.Fatalf("Expand: unexpected error: %v", err)
	}

	twice, err := Expand(once)
	if err != nil {
		t.Fatalf("Expand (second pass): unexpected error: %v", err)
	}

	if len(once) != len(twice) {
		t.Fatalf("Expand is not idempotent: once=%d tokens, twice=%d tokens", len(once), len(twice))
	}
	for i := range once {
		if once[i].Token.Kind != twice[i].Token.Kind {
			t.Errorf("token %d kind changed on second Expand pass: %v -> %v", i, once[i].Token.Kind, twice[i].Token.Kind)
		}
	}
}

func TestExpandNoDefinitionsIsNoop(t *testing.T) {
	in := lex(t, "'a', 'b'")
	got, err := Expand(in)
	if err != nil {
		t.Fatalf("Expand: unexpected error: %v", err)
	}
	if len(got) != len(in) {
		t.Fatalf("Expand with no define() forms changed token count: got %d, want %d", len(got), len(in))
	}
}

func TestExpandUnrelatedIdentifierUntouched(t *testing.T) {
	got, err := Expand(lex(t, "define(a, 'x')\nfoo(a)"))
	if err != nil {
		t.Fatalf("Expand: unexpected error: %v", err)
	}
	names := identifierNames(got)
	found := false
	for _, n := range names {
		if n == "foo" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expand removed unrelated identifier %q, got %+v", "foo", got)
	}
}

func TestExpandIncompleteDefinitionErrors(t *testing.T) {
	if _, err := Expand(lex(t, "define(a, 'x'")); err == nil {
		t.Fatal("expected error for an unterminated define(...) form")
	}
}

func TestExpandMissingNameErrors(t *testing.T) {
	if _, err := Expand(lex(t, "define(, 'x')\na")); err == nil {
		t.Fatal("expected error when define() is missing its name")
	}
}
