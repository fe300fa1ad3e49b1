// Package location tracks positions and ranges within Unicode-scalar
// source text, in the style of the teacher's per-byte state bookkeeping
// but indexed by Unicode scalar value (rune) rather than byte, as the
// surface language operates over arbitrary Unicode text.
package location

import "fmt"

// Location is a point (Length == 0) or a range within a source unit.
// Index, Line, and Column count Unicode scalar values from 0.
type Location struct {
	Unit   int // which source input this location belongs to
	Index  int // scalar offset from the start of the unit
	Line   int // line number, 0-based
	Column int // column number, 0-based
	Length int // 0 for a point, >0 for a range
}

// NewPosition builds a zero-length point location.
func NewPosition(unit, index, line, column int) Location {
	return Location{Unit: unit, Index: index, Line: line, Column: column}
}

// NewRange builds a range location of the given length.
func NewRange(unit, index, line, column, length int) Location {
	return Location{Unit: unit, Index: index, Line: line, Column: column, Length: length}
}

// FromPositionAndLength builds a range starting at position spanning length.
func FromPositionAndLength(position Location, length int) Location {
	return NewRange(position.Unit, position.Index, position.Line, position.Column, length)
}

// FromPositionPair builds the range [start, end) from two points.
func FromPositionPair(start, end Location) Location {
	return NewRange(start.Unit, start.Index, start.Line, start.Column, end.Index-start.Index)
}

// FromPositionPairInclusive builds the range [start, endIncluded] from two points.
func FromPositionPairInclusive(start, endIncluded Location) Location {
	return NewRange(start.Unit, start.Index, start.Line, start.Column, endIncluded.Index-start.Index+1)
}

// FromRangePair merges two ranges into the range spanning both.
func FromRangePair(start, end Location) Location {
	return NewRange(start.Unit, start.Index, start.Line, start.Column, end.Index-start.Index+end.Length)
}

// Start returns the point at the beginning of a range (or the point itself).
func (l Location) Start() Location {
	return NewPosition(l.Unit, l.Index, l.Line, l.Column)
}

// End returns the point just past the end of a range.
func (l Location) End() Location {
	return NewPosition(l.Unit, l.Index+l.Length, l.Line, l.Column+l.Length)
}

// MoveForward returns the point one scalar further along the same line.
func (l Location) MoveForward() Location {
	l.Index++
	l.Column++
	return l
}

// IsPoint reports whether this location denotes a point rather than a range.
func (l Location) IsPoint() bool {
	return l.Length == 0
}

// String renders "unit:line:column" diagnostics-style, 1-based for humans.
func (l Location) String() string {
	return fmt.Sprintf("%d:%d:%d", l.Unit, l.Line+1, l.Column+1)
}
