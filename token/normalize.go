package token

// Normalize applies the token-stream equivalences the parser's grammar
// assumes hold on entry:
//
//   - runs of NewLine collapse to a single NewLine
//   - NewLine+ Comma, Comma NewLine+, and NewLine+ Comma NewLine+ all
//     collapse to a bare Comma
//   - a leading or trailing NewLine for the whole stream is dropped
//
// Applying Normalize to an already-normalized stream is a no-op.
func Normalize(tokens []WithRange) []WithRange {
	return trimNewlines(collapseAroundComma(collapseNewlines(tokens)))
}

func collapseNewlines(tokens []WithRange) []WithRange {
	out := make([]WithRange, 0, len(tokens))
	for _, t := range tokens {
		if t.Token.Kind == KindNewLine && len(out) > 0 && out[len(out)-1].Token.Kind == KindNewLine {
			continue
		}
		out = append(out, t)
	}
	return out
}

func collapseAroundComma(tokens []WithRange) []WithRange {
	out := make([]WithRange, 0, len(tokens))
	for i, t := range tokens {
		if t.Token.Kind == KindNewLine {
			if i+1 < len(tokens) && tokens[i+1].Token.Kind == KindComma {
				continue
			}
			if len(out) > 0 && out[len(out)-1].Token.Kind == KindComma {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

func trimNewlines(tokens []WithRange) []WithRange {
	start := 0
	for start < len(tokens) && tokens[start].Token.Kind == KindNewLine {
		start++
	}
	end := len(tokens)
	for end > start && tokens[end-1].Token.Kind == KindNewLine {
		end--
	}
	return tokens[start:end]
}
