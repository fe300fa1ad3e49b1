package token

import "testing"

func kinds(ts []WithRange) []Kind {
	out := make([]Kind, len(ts))
	for i, t := range ts {
		out[i] = t.Token.Kind
	}
	return out
}

func equalKinds(a, b []Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   []Kind
		want []Kind
	}{
		{
			name: "collapses repeated newlines",
			in:   []Kind{KindIdentifier, KindNewLine, KindNewLine, KindNewLine, KindIdentifier},
			want: []Kind{KindIdentifier, KindNewLine, KindIdentifier},
		},
		{
			name: "newline before comma collapses to comma",
			in:   []Kind{KindIdentifier, KindNewLine, KindComma, KindIdentifier},
			want: []Kind{KindIdentifier, KindComma, KindIdentifier},
		},
		{
			name: "comma before newline collapses to comma",
			in:   []Kind{KindIdentifier, KindComma, KindNewLine, KindIdentifier},
			want: []Kind{KindIdentifier, KindComma, KindIdentifier},
		},
		{
			name: "leading and trailing newlines trimmed",
			in:   []Kind{KindNewLine, KindIdentifier, KindNewLine},
			want: []Kind{KindIdentifier},
		},
		{
			name: "idempotent on an already-normal stream",
			in:   []Kind{KindIdentifier, KindComma, KindIdentifier, KindNewLine, KindIdentifier},
			want: []Kind{KindIdentifier, KindComma, KindIdentifier, KindNewLine, KindIdentifier},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := make([]WithRange, len(tt.in))
			for i, k := range tt.in {
				in[i] = tok(k)
			}
			got := kinds(Normalize(in))
			if !equalKinds(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}

			twice := kinds(Normalize(Normalize(in)))
			if !equalKinds(twice, tt.want) {
				t.Errorf("not idempotent: got %v, want %v", twice, tt.want)
			}
		})
	}
}
