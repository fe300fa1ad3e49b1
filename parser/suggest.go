package parser

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// knownFunctionNames lists every resolvable call-position identifier, used
// only to offer a "did you mean" suggestion on an unknown name.
var knownFunctionNames = []string{
	"optional", "optional_lazy",
	"one_or_more", "one_or_more_lazy",
	"zero_or_more", "zero_or_more_lazy",
	"repeat", "repeat_lazy",
	"repeat_range", "repeat_range_lazy",
	"at_least", "at_least_lazy",
	"is_before", "is_after", "is_not_before", "is_not_after",
	"name", "index",
}

// suggestFunctionName finds the closest known function name to an unknown
// one, for a friendlier parser error.
func suggestFunctionName(name string) (string, bool) {
	ranks := fuzzy.RankFindFold(name, knownFunctionNames)
	if len(ranks) == 0 {
		return "", false
	}
	sort.Sort(ranks)
	return ranks[0].Target, true
}
