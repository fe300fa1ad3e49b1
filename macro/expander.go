// Package macro implements the single macro form the surface language
// supports: define(name, body). It runs after normalization and before
// parsing.
package macro

import (
	"github.com/anreg/core/internal/iter"
	"github.com/anreg/core/langerr"
	"github.com/anreg/core/token"
)

// definition is one extracted `define(name, body)` form.
type definition struct {
	name   string
	tokens []token.WithRange
}

// Expand extracts every `define(name, body)` form from tokens, then inlines
// each definition's fully-resolved body everywhere its name is used — both
// in later definitions (so a later `define` may reference an earlier one)
// and in the remaining program tokens. The result contains no more
// `define(...)` forms; running Expand again on its output is a no-op.
func Expand(tokens []token.WithRange) ([]token.WithRange, error) {
	program, defs, err := extractDefinitions(tokens)
	if err != nil {
		return nil, err
	}
	return replaceIdentifiers(program, defs), nil
}

// extractDefinitions repeatedly finds the leftmost `define(...)` form,
// removes it from the stream, and parses out its name and body, until no
// `Identifier("define")` followed by `LeftParen` remains.
func extractDefinitions(tokens []token.WithRange) ([]token.WithRange, []definition, error) {
	var defs []definition

	for {
		start := -1
		for i := 0; i < len(tokens)-1; i++ {
			if tokens[i].Token.Kind == token.KindIdentifier && tokens[i].Token.Text == "define" &&
				tokens[i+1].Token.Kind == token.KindLeftParen {
				start = i
				break
			}
		}
		if start == -1 {
			break
		}

		end := -1
		depth := 0
		for idx := start + 1; idx < len(tokens); idx++ {
			switch tokens[idx].Token.Kind {
			case token.KindLeftParen:
				depth++
			case token.KindRightParen:
				if depth == 1 {
					end = idx
				} else {
					depth--
				}
			}
			if end != -1 {
				break
			}
		}
		if end == -1 {
			return nil, nil, langerr.UnexpectedEndOfDocument("Incomplete definition statement.")
		}

		span := make([]token.WithRange, end-start+1)
		copy(span, tokens[start:end+1])
		tokens = append(tokens[:start:start], tokens[end+1:]...)

		def, err := extractOne(span)
		if err != nil {
			return nil, nil, err
		}
		defs = append(defs, def)
	}

	return tokens, defs, nil
}

// extractOne parses a single `define ( name , body... )` span (span[0] is
// the "define" identifier, span[len-1] is the matching ")").
func extractOne(span []token.WithRange) (definition, error) {
	it := iter.New(span)
	it.Next() // "define"
	it.Next() // "("

	if t, ok := it.Peek(0); ok && t.Token.Kind == token.KindNewLine {
		it.Next()
	}

	name, err := expectIdentifier(it)
	if err != nil {
		return definition{}, err
	}

	if err := expectSeparator(it); err != nil {
		return definition{}, err
	}

	var body []token.WithRange
	for {
		t, ok := it.Next()
		if !ok {
			break
		}
		if it.HasMore() {
			body = append(body, t)
		}
	}

	return definition{name: name, tokens: body}, nil
}

func expectIdentifier(it *iter.Bounded[token.WithRange]) (string, error) {
	t, ok := it.Peek(0)
	if !ok {
		return "", langerr.UnexpectedEndOfDocument("Expect an identifier.")
	}
	if t.Token.Kind != token.KindIdentifier {
		return "", langerr.At(t.Range.Start(), "Expect an identifier.")
	}
	it.Next()
	return t.Token.Text, nil
}

func expectSeparator(it *iter.Bounded[token.WithRange]) error {
	t, ok := it.Peek(0)
	if !ok {
		return langerr.UnexpectedEndOfDocument("Expect a comma or new-line.")
	}
	if !t.Token.IsSeparator() {
		return langerr.At(t.Range.Start(), "Expect a comma or new-line.")
	}
	it.Next()
	return nil
}

// replaceIdentifiers inlines definitions in source order: each definition's
// body is substituted into every definition extracted after it, then into
// the program tokens, so later definitions may reference earlier ones.
func replaceIdentifiers(program []token.WithRange, defs []definition) []token.WithRange {
	for i := range defs {
		for j := i + 1; j < len(defs); j++ {
			defs[j].tokens = substitute(defs[j].tokens, defs[i].name, defs[i].tokens)
		}
		program = substitute(program, defs[i].name, defs[i].tokens)
	}
	return program
}

// substitute replaces every Identifier(findName) token in source with a
// cloned copy of replacement, preserving replacement's own source ranges.
func substitute(source []token.WithRange, findName string, replacement []token.WithRange) []token.WithRange {
	out := make([]token.WithRange, 0, len(source))
	for _, t := range source {
		if t.Token.Kind == token.KindIdentifier && t.Token.Text == findName {
			out = append(out, replacement...)
			continue
		}
		out = append(out, t)
	}
	return out
}
