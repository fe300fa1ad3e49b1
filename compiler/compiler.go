// Package compiler turns a parsed [ast.Program] into an [nfaimg.Image]: a
// Thompson-construction NFA over Unicode scalars, plus the capture table
// and counter count the matcher needs alongside the graph.
//
// The compiler works in terms of "ports" — {in, out} pairs of state
// indices with exactly one entry and one exit — and composes them with
// Jump transitions. Every sub-expression compiles to exactly one port.
package compiler

import (
	"github.com/anreg/core/ast"
	"github.com/anreg/core/location"
	"github.com/anreg/core/nfaimg"
)

// port is an entry/exit pair of state indices within the state-set under
// construction. Composing sub-expressions means wiring one port's out to
// the next port's in with a Jump transition.
type port struct {
	in, out nfaimg.StateIndex
}

type compiler struct {
	config   Config
	depth    int
	states   []nfaimg.State
	captures []nfaimg.CaptureGroup
	counters int
}

// Compile compiles a parsed program into an NFA image using the default
// configuration.
func Compile(program *ast.Program) (*nfaimg.Image, error) {
	return CompileWithConfig(program, DefaultConfig())
}

// CompileWithConfig compiles a parsed program into an NFA image.
func CompileWithConfig(program *ast.Program, cfg Config) (*nfaimg.Image, error) {
	if cfg.MaxRecursionDepth == 0 {
		cfg.MaxRecursionDepth = DefaultConfig().MaxRecursionDepth
	}
	if cfg.MaxCaptures == 0 {
		cfg.MaxCaptures = DefaultConfig().MaxCaptures
	}
	c := &compiler{config: cfg}
	ss, err := c.emitProgram(program)
	if err != nil {
		return nil, err
	}
	return &nfaimg.Image{
		StateSets:        []nfaimg.StateSet{ss},
		Captures:         c.captures,
		NumberOfCounters: c.counters,
	}, nil
}

func (c *compiler) newState() nfaimg.StateIndex {
	c.states = append(c.states, nfaimg.State{})
	return len(c.states) - 1
}

func (c *compiler) appendTransition(from, to nfaimg.StateIndex, t nfaimg.Transition) {
	c.states[from].Transitions = append(c.states[from].Transitions, nfaimg.TransitionItem{
		Transition:       t,
		TargetStateIndex: to,
	})
}

func (c *compiler) jump(from, to nfaimg.StateIndex) {
	c.appendTransition(from, to, nfaimg.Transition{Kind: nfaimg.TransJump})
}

func (c *compiler) newCapture(name *string) (nfaimg.CaptureIndex, error) {
	if len(c.captures) >= c.config.MaxCaptures {
		return 0, errTooManyCaptures(c.config.MaxCaptures)
	}
	c.captures = append(c.captures, nfaimg.CaptureGroup{Name: name})
	return len(c.captures) - 1, nil
}

func (c *compiler) newCounter() nfaimg.CounterIndex {
	idx := c.counters
	c.counters++
	return idx
}

func (c *compiler) captureIndexByName(name string) (nfaimg.CaptureIndex, bool) {
	for i, cap := range c.captures {
		if cap.Name != nil && *cap.Name == name {
			return i, true
		}
	}
	return 0, false
}

// capturedNames lists every name declared so far, for "did you mean"
// suggestions on an unresolved back-reference.
func (c *compiler) capturedNames() []string {
	var names []string
	for _, cap := range c.captures {
		if cap.Name != nil {
			names = append(names, *cap.Name)
		}
	}
	return names
}

// relay allocates a single state serving as both in and out of an empty
// fragment — the program's, a group's, or an exact-zero repetition's.
func (c *compiler) relay() port {
	s := c.newState()
	return port{s, s}
}

// concat wires a sequence of already-emitted ports end to end with Jump
// transitions, collapsing the empty and singleton cases. This is the
// shared machinery behind program emission and group emission: the
// "program" is a group that additionally allows the start/end anchors.
func (c *compiler) concat(ports []port) port {
	switch len(ports) {
	case 0:
		return c.relay()
	case 1:
		return ports[0]
	default:
		for i := 0; i < len(ports)-1; i++ {
			c.jump(ports[i].out, ports[i+1].in)
		}
		return port{ports[0].in, ports[len(ports)-1].out}
	}
}

func (c *compiler) emitProgram(program *ast.Program) (nfaimg.StateSet, error) {
	// Capture index 0 is the implicit whole-program match.
	if _, err := c.newCapture(nil); err != nil {
		return nfaimg.StateSet{}, err
	}

	var fixedStart, fixedEnd bool
	var ports []port

	last := len(program.Expressions) - 1
	for i, expr := range program.Expressions {
		if expr.Kind == ast.ExprAssertion && expr.Assertion == ast.AssertionStart {
			if i != 0 {
				return nfaimg.StateSet{}, errStartAssertionPosition()
			}
			fixedStart = true
			continue
		}
		if expr.Kind == ast.ExprAssertion && expr.Assertion == ast.AssertionEnd {
			if i != last {
				return nfaimg.StateSet{}, errEndAssertionPosition()
			}
			fixedEnd = true
			continue
		}

		p, err := c.emitExpression(expr)
		if err != nil {
			return nfaimg.StateSet{}, err
		}
		ports = append(ports, p)
	}

	inner := c.concat(ports)

	progIn := c.newState()
	progOut := c.newState()
	c.appendTransition(progIn, inner.in, nfaimg.Transition{Kind: nfaimg.TransMatchStart, CaptureIndex: 0})
	c.appendTransition(inner.out, progOut, nfaimg.Transition{Kind: nfaimg.TransMatchEnd, CaptureIndex: 0})

	return nfaimg.StateSet{
		States:         c.states,
		StartNodeIndex: progIn,
		EndNodeIndex:   progOut,
		FixedStart:     fixedStart,
		FixedEnd:       fixedEnd,
	}, nil
}

func (c *compiler) emitExpression(expr ast.Expression) (port, error) {
	c.depth++
	defer func() { c.depth-- }()
	if c.depth > c.config.MaxRecursionDepth {
		return port{}, errRecursionTooDeep()
	}

	switch expr.Kind {
	case ast.ExprLiteral:
		return c.emitLiteral(expr)
	case ast.ExprIdentifier:
		return c.emitBackReference(expr)
	case ast.ExprAssertion:
		return c.emitAssertion(expr.Assertion)
	case ast.ExprGroup:
		return c.emitGroup(expr.Group)
	case ast.ExprFunctionCall:
		return c.emitFunctionCall(expr.Call)
	case ast.ExprAlternation:
		return c.emitAlternation(expr.Alternation)
	default:
		return port{}, errRecursionTooDeep()
	}
}

// emitGroup emits a group's children and concatenates them through concat
// (the same helper emitProgram uses), with the empty/singleton collapse
// that eliminates redundant nesting from `(((...)))`.
func (c *compiler) emitGroup(children []ast.Expression) (port, error) {
	ports := make([]port, 0, len(children))
	for _, child := range children {
		p, err := c.emitExpression(child)
		if err != nil {
			return port{}, err
		}
		ports = append(ports, p)
	}
	return c.concat(ports), nil
}

func (c *compiler) emitAlternation(alt *ast.Alternation) (port, error) {
	left, err := c.emitExpression(alt.Left)
	if err != nil {
		return port{}, err
	}
	right, err := c.emitExpression(alt.Right)
	if err != nil {
		return port{}, err
	}

	in := c.newState()
	out := c.newState()
	c.jump(in, left.in)
	c.jump(in, right.in)
	c.jump(left.out, out)
	c.jump(right.out, out)
	return port{in, out}, nil
}

// emitAssertion handles the two assertions that actually reach the
// transition graph. Start/End only ever mean something as direct
// top-level program children (handled in emitProgram); reached here —
// nested in a group, a call, or an alternation arm, or out of position
// at the top level — they have no representable compiled meaning.
func (c *compiler) emitAssertion(name ast.AssertionName) (port, error) {
	var a nfaimg.AssertionName
	switch name {
	case ast.AssertionBound:
		a = nfaimg.AssertionBound
	case ast.AssertionNotBound:
		a = nfaimg.AssertionNotBound
	case ast.AssertionStart:
		return port{}, errStartAssertionPosition()
	case ast.AssertionEnd:
		return port{}, errEndAssertionPosition()
	default:
		return port{}, errStartAssertionPosition()
	}

	in := c.newState()
	out := c.newState()
	c.appendTransition(in, out, nfaimg.Transition{Kind: nfaimg.TransAssertion, Assertion: a})
	return port{in, out}, nil
}

func (c *compiler) emitBackReference(expr ast.Expression) (port, error) {
	idx, ok := c.captureIndexByName(expr.Identifier)
	if !ok {
		return port{}, errUnresolvedBackReference(expr.Start, expr.Identifier, c.capturedNames())
	}

	in := c.newState()
	out := c.newState()
	c.appendTransition(in, out, nfaimg.Transition{Kind: nfaimg.TransBackReference, CaptureIndex: idx})
	return port{in, out}, nil
}

func (c *compiler) emitLiteral(expr ast.Expression) (port, error) {
	lit := expr.Literal
	in := c.newState()
	out := c.newState()

	switch lit.Kind {
	case ast.LiteralChar:
		c.appendTransition(in, out, nfaimg.Transition{Kind: nfaimg.TransChar, Char: lit.Char})
	case ast.LiteralString:
		c.appendTransition(in, out, nfaimg.Transition{Kind: nfaimg.TransString, String: lit.String})
	case ast.LiteralSpecial:
		c.appendTransition(in, out, nfaimg.Transition{Kind: nfaimg.TransSpecialChar})
	case ast.LiteralPresetCharSet:
		items, negative, err := presetCharSetItems(lit.PresetName)
		if err != nil {
			return port{}, err
		}
		c.appendTransition(in, out, nfaimg.Transition{
			Kind:            nfaimg.TransCharSet,
			CharSetItems:    items,
			CharSetNegative: negative,
		})
	case ast.LiteralCharSet:
		items, err := flattenCharSet(lit.CharSet, expr.Start)
		if err != nil {
			return port{}, err
		}
		c.appendTransition(in, out, nfaimg.Transition{
			Kind:            nfaimg.TransCharSet,
			CharSetItems:    items,
			CharSetNegative: lit.CharSet.Negative,
		})
	}

	return port{in, out}, nil
}

func presetCharSetItems(name string) ([]nfaimg.CharSetItem, bool, error) {
	switch name {
	case "char_word":
		return wordItems(), false, nil
	case "char_not_word":
		return wordItems(), true, nil
	case "char_space":
		return spaceItems(), false, nil
	case "char_not_space":
		return spaceItems(), true, nil
	case "char_digit":
		return digitItems(), false, nil
	case "char_not_digit":
		return digitItems(), true, nil
	default:
		return nil, false, errUnknownPresetCharSet(name)
	}
}

func wordItems() []nfaimg.CharSetItem {
	return []nfaimg.CharSetItem{
		rangeItem('A', 'Z'),
		rangeItem('a', 'z'),
		rangeItem('0', '9'),
		charItem('_'),
	}
}

func spaceItems() []nfaimg.CharSetItem {
	return []nfaimg.CharSetItem{
		charItem(' '),
		charItem('\t'),
		charItem('\r'),
		charItem('\n'),
	}
}

func digitItems() []nfaimg.CharSetItem {
	return []nfaimg.CharSetItem{rangeItem('0', '9')}
}

func charItem(c rune) nfaimg.CharSetItem {
	return nfaimg.CharSetItem{Kind: nfaimg.CharSetItemChar, Char: c}
}

func rangeItem(start, end rune) nfaimg.CharSetItem {
	return nfaimg.CharSetItem{Kind: nfaimg.CharSetItemRange, RangeStart: start, RangeEnd: end}
}

// flattenCharSet walks a charset_body, expanding nested charsets and
// preset charsets into a single flat item list. loc anchors any located
// error produced along the way — the AST carries no finer-grained
// position for charset elements, so the enclosing literal's start stands
// in for it.
func flattenCharSet(cs ast.CharSet, loc location.Location) ([]nfaimg.CharSetItem, error) {
	var items []nfaimg.CharSetItem
	if err := appendCharSet(cs, &items, loc); err != nil {
		return nil, err
	}
	return items, nil
}

func appendCharSet(cs ast.CharSet, items *[]nfaimg.CharSetItem, loc location.Location) error {
	for _, el := range cs.Elements {
		switch el.Kind {
		case ast.CharSetElemChar:
			*items = append(*items, charItem(el.Char))
		case ast.CharSetElemRange:
			*items = append(*items, rangeItem(el.RangeStart, el.RangeEnd))
		case ast.CharSetElemPreset:
			presetItems, negative, err := presetCharSetItems(el.PresetName)
			if err != nil {
				return err
			}
			if negative {
				return errNestedNegativePreset(el.PresetName)
			}
			*items = append(*items, presetItems...)
		case ast.CharSetElemNested:
			if el.Nested.Negative {
				return errNestedNegativeCharSet()
			}
			if err := appendCharSet(el.Nested, items, loc); err != nil {
				return err
			}
		case ast.CharSetElemSymbol:
			return errCharSetSymbol(loc)
		}
	}
	return nil
}

func (c *compiler) emitFunctionCall(fc *ast.FunctionCall) (port, error) {
	isLazy := false
	switch fc.Name {
	case ast.OptionalLazy, ast.OneOrMoreLazy, ast.ZeroOrMoreLazy, ast.RepeatRangeLazy, ast.AtLeastLazy:
		isLazy = true
	}

	switch fc.Name {
	case ast.Optional, ast.OptionalLazy:
		return c.emitOptional(fc.Expression, isLazy)

	case ast.OneOrMore, ast.OneOrMoreLazy:
		return c.emitRepeatRange(fc.Expression, 1, nfaimg.Unbounded, isLazy)

	case ast.ZeroOrMore, ast.ZeroOrMoreLazy:
		p, err := c.emitRepeatRange(fc.Expression, 1, nfaimg.Unbounded, isLazy)
		if err != nil {
			return port{}, err
		}
		return c.continueEmitOptional(p, isLazy)

	case ast.Repeat, ast.RepeatLazy:
		n := int(fc.Args[0].Number)
		switch {
		case n == 0:
			return c.relay(), nil
		case n == 1:
			return c.emitExpression(fc.Expression)
		default:
			return c.emitRepeatSpecified(fc.Expression, n)
		}

	case ast.RepeatRange, ast.RepeatRangeLazy:
		from := int(fc.Args[0].Number)
		to := int(fc.Args[1].Number)
		if from > to {
			return port{}, errRangeOrder()
		}
		switch {
		case from == 0 && to == 0:
			return c.relay(), nil
		case from == 0 && to == 1:
			return c.emitOptional(fc.Expression, isLazy)
		case from == 0:
			p, err := c.emitRepeatRange(fc.Expression, 1, to, isLazy)
			if err != nil {
				return port{}, err
			}
			return c.continueEmitOptional(p, isLazy)
		case to == 1:
			return c.emitExpression(fc.Expression)
		case from == to:
			return c.emitRepeatSpecified(fc.Expression, from)
		default:
			return c.emitRepeatRange(fc.Expression, from, to, isLazy)
		}

	case ast.AtLeast, ast.AtLeastLazy:
		from := int(fc.Args[0].Number)
		if from == 0 {
			p, err := c.emitRepeatRange(fc.Expression, 1, nfaimg.Unbounded, isLazy)
			if err != nil {
				return port{}, err
			}
			return c.continueEmitOptional(p, isLazy)
		}
		return c.emitRepeatRange(fc.Expression, from, nfaimg.Unbounded, isLazy)

	case ast.IsBefore:
		return port{}, errLookaroundNotImplemented("is_before")
	case ast.IsAfter:
		return port{}, errLookaroundNotImplemented("is_after")
	case ast.IsNotBefore:
		return port{}, errLookaroundNotImplemented("is_not_before")
	case ast.IsNotAfter:
		return port{}, errLookaroundNotImplemented("is_not_after")

	case ast.Name:
		name := fc.Args[0].Identifier
		return c.continueEmitCapture(fc.Expression, &name)
	case ast.Index:
		return c.continueEmitCapture(fc.Expression, nil)

	default:
		return port{}, errRecursionTooDeep()
	}
}

func (c *compiler) continueEmitCapture(expr ast.Expression, name *string) (port, error) {
	idx, err := c.newCapture(name)
	if err != nil {
		return port{}, err
	}
	inner, err := c.emitExpression(expr)
	if err != nil {
		return port{}, err
	}

	in := c.newState()
	out := c.newState()
	c.appendTransition(in, inner.in, nfaimg.Transition{Kind: nfaimg.TransMatchStart, CaptureIndex: idx})
	c.appendTransition(inner.out, out, nfaimg.Transition{Kind: nfaimg.TransMatchEnd, CaptureIndex: idx})
	return port{in, out}, nil
}

func (c *compiler) emitOptional(expr ast.Expression, isLazy bool) (port, error) {
	inner, err := c.emitExpression(expr)
	if err != nil {
		return port{}, err
	}
	return c.continueEmitOptional(inner, isLazy)
}

// continueEmitOptional wires the take/skip branch around an
// already-emitted body. Greedy tries the body first; lazy tries the skip
// first — same states, edges inserted in opposite order.
func (c *compiler) continueEmitOptional(inner port, isLazy bool) (port, error) {
	in := c.newState()
	out := c.newState()

	if isLazy {
		c.jump(in, out)
	}
	c.jump(in, inner.in)
	c.jump(inner.out, out)
	if !isLazy {
		c.jump(in, out)
	}

	return port{in, out}, nil
}

func (c *compiler) emitRepeatSpecified(expr ast.Expression, times int) (port, error) {
	return c.continueEmitRepetition(expr, nfaimg.Repetition{Kind: nfaimg.RepetitionSpecified, N: times}, true)
}

func (c *compiler) emitRepeatRange(expr ast.Expression, from, to int, isLazy bool) (port, error) {
	return c.continueEmitRepetition(expr, nfaimg.Repetition{Kind: nfaimg.RepetitionRange, From: from, To: to}, isLazy)
}

// continueEmitRepetition builds the shared counter-loop construction
// behind repeat, repeat_range, and at_least. The body is emitted once;
// the loop is driven by a counter rather than duplicating its states.
func (c *compiler) continueEmitRepetition(expr ast.Expression, rep nfaimg.Repetition, isLazy bool) (port, error) {
	body, err := c.emitExpression(expr)
	if err != nil {
		return port{}, err
	}
	counter := c.newCounter()

	in := c.newState()
	left := c.newState()
	right := c.newState()
	out := c.newState()

	c.appendTransition(in, left, nfaimg.Transition{Kind: nfaimg.TransCounterReset, CounterIndex: counter})
	c.jump(left, body.in)
	c.appendTransition(body.out, right, nfaimg.Transition{Kind: nfaimg.TransCounterInc, CounterIndex: counter})

	gotoCheckAndExit := func() {
		c.appendTransition(right, out, nfaimg.Transition{
			Kind:         nfaimg.TransCounterCheck,
			CounterIndex: counter,
			Repetition:   rep,
		})
	}
	gotoRedo := func() {
		if !isLazy && rep.Kind == nfaimg.RepetitionRange {
			c.appendTransition(right, left, nfaimg.Transition{
				Kind:         nfaimg.TransRepetitionAnchor,
				CounterIndex: counter,
				Threshold:    rep.From,
			})
			return
		}
		c.jump(right, left)
	}

	if isLazy {
		gotoCheckAndExit()
		gotoRedo()
	} else {
		gotoRedo()
		gotoCheckAndExit()
	}

	return port{in, out}, nil
}
