package compiler

import (
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/anreg/core/langerr"
	"github.com/anreg/core/location"
)

func errStartAssertionPosition() error {
	return langerr.New(`The assertion "start" can only be present at the beginning of expression.`)
}

func errEndAssertionPosition() error {
	return langerr.New(`The assertion "end" can only be present at the end of expression.`)
}

func errRangeOrder() error {
	return langerr.New("Repeated range values should be from small to large.")
}

func errNestedNegativePreset(name string) error {
	return langerr.Newf("Can not append negative preset charset %q into charset.", name)
}

func errNestedNegativeCharSet() error {
	return langerr.New("Can not nest a negative charset into another charset.")
}

func errCharSetSymbol(loc location.Location) error {
	return langerr.At(loc, "A bare assertion symbol has no meaning inside a charset.")
}

func errUnresolvedBackReference(loc location.Location, name string, knownNames []string) error {
	ranks := fuzzy.RankFindFold(name, knownNames)
	if len(ranks) == 0 {
		return langerr.Atf(loc, "Cannot find the match with name: %q.", name)
	}
	return langerr.Atf(loc, "Cannot find the match with name: %q. Did you mean %q?", name, ranks[0].Target)
}

func errTooManyCaptures(max int) error {
	return langerr.Newf("Too many capture groups; the limit is %d.", max)
}

func errLookaroundNotImplemented(name string) error {
	return langerr.Newf("The assertion function %q is not implemented yet.", name)
}

func errRecursionTooDeep() error {
	return langerr.New("Expression is nested too deeply.")
}

func errUnknownPresetCharSet(name string) error {
	return langerr.Newf("Unknown preset charset %q.", name)
}
