package nfaimg

import (
	"fmt"
	"strconv"
	"strings"
)

// Debug renders the image's stable textual debug form, used by golden
// tests to pin down exact compiler output.
func (img *Image) Debug() string {
	var b strings.Builder
	multi := len(img.StateSets) > 1

	for si, ss := range img.StateSets {
		if multi {
			fmt.Fprintf(&b, "= $%d\n", si)
		}
		ss.writeDebug(&b)
	}

	for i, c := range img.Captures {
		if c.Name != nil {
			fmt.Fprintf(&b, "# {%d}, %s\n", i, *c.Name)
		} else {
			fmt.Fprintf(&b, "# {%d}\n", i)
		}
	}

	return b.String()
}

func (ss StateSet) writeDebug(b *strings.Builder) {
	for i, st := range ss.States {
		prefix := "-"
		switch i {
		case ss.StartNodeIndex:
			prefix = ">"
		case ss.EndNodeIndex:
			prefix = "<"
		}
		fmt.Fprintf(b, "%s %d\n", prefix, i)
		for _, item := range st.Transitions {
			fmt.Fprintf(b, "  -> %d, %s\n", item.TargetStateIndex, item.Transition.debug())
		}
	}
}

func (t Transition) debug() string {
	switch t.Kind {
	case TransJump:
		return "Jump"
	case TransChar:
		return fmt.Sprintf("Char '%s'", escapeDebugChar(t.Char))
	case TransSpecialChar:
		return "Any char"
	case TransString:
		return fmt.Sprintf("String %q", t.String)
	case TransCharSet:
		items := make([]string, len(t.CharSetItems))
		for i, item := range t.CharSetItems {
			if item.Kind == CharSetItemRange {
				items[i] = fmt.Sprintf("'%s'..'%s'", escapeDebugChar(item.RangeStart), escapeDebugChar(item.RangeEnd))
			} else {
				items[i] = fmt.Sprintf("'%s'", escapeDebugChar(item.Char))
			}
		}
		if t.CharSetNegative {
			return fmt.Sprintf("Charset ![%s]", strings.Join(items, ", "))
		}
		return fmt.Sprintf("Charset [%s]", strings.Join(items, ", "))
	case TransBackReference:
		return fmt.Sprintf("Back reference {%d}", t.CaptureIndex)
	case TransAssertion:
		return fmt.Sprintf("Assertion %q", assertionDebugName(t.Assertion))
	case TransMatchStart:
		return fmt.Sprintf("Match start {%d}", t.CaptureIndex)
	case TransMatchEnd:
		return fmt.Sprintf("Match end {%d}", t.CaptureIndex)
	case TransCounterReset:
		return fmt.Sprintf("Counter reset <%d>", t.CounterIndex)
	case TransCounterInc:
		return fmt.Sprintf("Counter inc <%d>", t.CounterIndex)
	case TransCounterCheck:
		if t.Repetition.Kind == RepetitionSpecified {
			return fmt.Sprintf("Counter check <%d>, times %d", t.CounterIndex, t.Repetition.N)
		}
		return fmt.Sprintf("Counter check <%d>, from %s, to %s",
			t.CounterIndex, boundString(t.Repetition.From), boundString(t.Repetition.To))
	case TransRepetitionAnchor:
		return fmt.Sprintf("Repetition anchor <%d>, threshold %d", t.CounterIndex, t.Threshold)
	default:
		return "Unknown"
	}
}

func assertionDebugName(a AssertionName) string {
	switch a {
	case AssertionBound:
		return "is_bound"
	case AssertionNotBound:
		return "is_not_bound"
	default:
		return "unknown"
	}
}

func boundString(n int) string {
	if n == Unbounded {
		return "MAX"
	}
	return strconv.Itoa(n)
}

func escapeDebugChar(c rune) string {
	switch c {
	case '\t':
		return `\t`
	case '\r':
		return `\r`
	case '\n':
		return `\n`
	default:
		return string(c)
	}
}
