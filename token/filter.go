package token

// StripComments removes every Comment token from the stream. Comments carry
// no grammatical meaning past the lexer; everything else passes through
// untouched and in order.
func StripComments(tokens []WithRange) []WithRange {
	out := make([]WithRange, 0, len(tokens))
	for _, t := range tokens {
		if t.Token.Kind == KindComment {
			continue
		}
		out = append(out, t)
	}
	return out
}
