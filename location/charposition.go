package location

// CharWithPosition pairs a decoded Unicode scalar with the point location
// it was read from.
type CharWithPosition struct {
	Char     rune
	Position Location
}

// CharsWithPositionIter walks a slice of runes, handing out each one
// together with the position it occupied, and advancing line/column
// bookkeeping the same way the source lexer does: '\n' starts a new line,
// every other scalar advances the column.
type CharsWithPositionIter struct {
	upstream []rune
	pos      int
	current  Location
}

// NewCharsWithPositionIter creates an iterator over runes for the given
// source unit, starting at line 0, column 0.
func NewCharsWithPositionIter(unit int, runes []rune) *CharsWithPositionIter {
	return &CharsWithPositionIter{
		upstream: runes,
		current:  NewPosition(unit, 0, 0, 0),
	}
}

// Next returns the next (char, position) pair, or false when exhausted.
func (it *CharsWithPositionIter) Next() (CharWithPosition, bool) {
	if it.pos >= len(it.upstream) {
		return CharWithPosition{}, false
	}
	c := it.upstream[it.pos]
	it.pos++

	last := it.current
	it.current.Index++
	if c == '\n' {
		it.current.Line++
		it.current.Column = 0
	} else {
		it.current.Column++
	}

	return CharWithPosition{Char: c, Position: last}, true
}

// Drain materializes every remaining (char, position) pair. The lexer
// feeds the result to a bounded-lookahead iterator, since its source text
// is already fully buffered in memory.
func (it *CharsWithPositionIter) Drain() []CharWithPosition {
	out := make([]CharWithPosition, 0, len(it.upstream)-it.pos)
	for {
		cp, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, cp)
	}
}
