package ast

import "testing"

func TestLookupFunctionName(t *testing.T) {
	tests := []struct {
		name string
		want FunctionName
	}{
		{"optional", Optional},
		{"optional_lazy", OptionalLazy},
		{"repeat_range_lazy", RepeatRangeLazy},
		{"is_not_after", IsNotAfter},
		{"name", Name},
		{"index", Index},
	}
	for _, tt := range tests {
		got, ok := LookupFunctionName(tt.name)
		if !ok {
			t.Errorf("LookupFunctionName(%q): not found", tt.name)
			continue
		}
		if got != tt.want {
			t.Errorf("LookupFunctionName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestLookupFunctionNameUnknown(t *testing.T) {
	if _, ok := LookupFunctionName("not_a_real_function"); ok {
		t.Error("LookupFunctionName should reject unknown names")
	}
}

func TestAssertionNameString(t *testing.T) {
	tests := []struct {
		a    AssertionName
		want string
	}{
		{AssertionStart, "start"},
		{AssertionEnd, "end"},
		{AssertionBound, "bound"},
		{AssertionNotBound, "not_bound"},
	}
	for _, tt := range tests {
		if got := tt.a.String(); got != tt.want {
			t.Errorf("%v.String() = %q, want %q", tt.a, got, tt.want)
		}
	}
}
