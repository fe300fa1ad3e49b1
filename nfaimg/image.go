// Package nfaimg defines the NFA "image" the compiler emits: an arena of
// states addressed by index, each carrying an ordered list of typed
// transitions, plus the capture-group table and counter count the matcher
// needs alongside the graph. Nothing here mutates after compile time; the
// compiler hands the image to its owner as a pointer, and it is then
// treated as read-only.
package nfaimg

// StateIndex addresses a State within a StateSet's states slice.
type StateIndex = int

// CaptureIndex addresses a CaptureGroup within an Image's captures slice.
// Index 0 is always the implicit whole-program capture.
type CaptureIndex = int

// CounterIndex addresses one of the Image's counters. Counters have no
// separate table entry; number_of_counters is their allocation count.
type CounterIndex = int

// Image is the compile target: one state-set per lookaround sub-automaton
// (today, exactly one — the program itself; multiple state-sets are
// reserved for future lookaround support), a flat capture-group table
// shared across all state-sets, and the total counter count.
type Image struct {
	StateSets         []StateSet
	Captures          []CaptureGroup
	NumberOfCounters  int
}

// StateSet is one compiled automaton: the program, or (in the future) a
// lookaround sub-expression.
type StateSet struct {
	States          []State
	StartNodeIndex  StateIndex
	EndNodeIndex    StateIndex
	FixedStart      bool
	FixedEnd        bool
}

// State carries its outgoing transitions in attempt order: for a state
// with multiple out-edges, the matcher tries them in the order they
// appear here, which is how greedy vs lazy quantifiers are expressed.
type State struct {
	Transitions []TransitionItem
}

// TransitionItem pairs a transition with the state it leads to.
type TransitionItem struct {
	Transition        Transition
	TargetStateIndex  StateIndex
}

// CaptureGroup is one entry in the capture table. Anonymous captures
// (from the `index` function) carry no name.
type CaptureGroup struct {
	Name *string
}

// RepetitionKind discriminates a CounterCheck's bound. (RepetitionAnchor
// carries a plain Threshold instead.)
type RepetitionKind uint8

const (
	RepetitionSpecified RepetitionKind = iota
	RepetitionRange
)

// Unbounded marks a RepetitionRange's upper bound as infinite (printed as
// "MAX" in the debug form), used by at_least and the */+  desugarings.
const Unbounded = -1

// Repetition is the bound a CounterCheck transition tests.
type Repetition struct {
	Kind RepetitionKind
	N    int // RepetitionSpecified: exact count
	From int // RepetitionRange: minimum (inclusive)
	To   int // RepetitionRange: maximum (inclusive), or Unbounded
}

// CharSetItemKind discriminates a CharSet transition's item list entries.
type CharSetItemKind uint8

const (
	CharSetItemChar CharSetItemKind = iota
	CharSetItemRange
)

// CharSetItem is one member of a CharSet transition's flattened item list.
type CharSetItem struct {
	Kind               CharSetItemKind
	Char               rune // CharSetItemChar
	RangeStart, RangeEnd rune // CharSetItemRange (inclusive)
}

// AssertionName names a zero-width assertion transition.
type AssertionName uint8

const (
	AssertionBound AssertionName = iota
	AssertionNotBound
)

// TransitionKind discriminates the Transition sum type.
type TransitionKind uint8

const (
	TransJump TransitionKind = iota
	TransChar
	TransSpecialChar
	TransString
	TransCharSet
	TransBackReference
	TransAssertion
	TransMatchStart
	TransMatchEnd
	TransCounterReset
	TransCounterInc
	TransCounterCheck
	TransRepetitionAnchor
)

// Transition is the tagged union of every edge kind an Image can contain.
// Only the field(s) relevant to Kind are populated.
type Transition struct {
	Kind TransitionKind

	Char rune // TransChar

	String string // TransString (may contain multiple scalars)

	CharSetItems    []CharSetItem // TransCharSet
	CharSetNegative bool          // TransCharSet

	CaptureIndex CaptureIndex // TransBackReference, TransMatchStart, TransMatchEnd

	Assertion AssertionName // TransAssertion

	CounterIndex CounterIndex // TransCounterReset, TransCounterInc, TransCounterCheck, TransRepetitionAnchor

	Repetition Repetition // TransCounterCheck

	Threshold int // TransRepetitionAnchor
}

// CaptureIndexByName returns the index of the first capture group with the
// given name, or ok=false if none exists.
func (img *Image) CaptureIndexByName(name string) (CaptureIndex, bool) {
	for i, c := range img.Captures {
		if c.Name != nil && *c.Name == name {
			return i, true
		}
	}
	return 0, false
}

// CaptureNames returns one entry per capture group, nil for anonymous ones.
func (img *Image) CaptureNames() []*string {
	names := make([]*string, len(img.Captures))
	for i, c := range img.Captures {
		names[i] = c.Name
	}
	return names
}

// NumberOfCaptures returns the total capture-group count, including the
// implicit whole-program capture at index 0.
func (img *Image) NumberOfCaptures() int {
	return len(img.Captures)
}

// StateSetAt returns the state-set at index, for the matcher's lookup
// contract (today only index 0 is ever populated).
func (img *Image) StateSetAt(index int) StateSet {
	return img.StateSets[index]
}
