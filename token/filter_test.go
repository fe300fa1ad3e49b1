package token

import "testing"

func tok(k Kind) WithRange {
	return WithRange{Token: Token{Kind: k}}
}

func TestStripComments(t *testing.T) {
	tests := []struct {
		name string
		in   []WithRange
		want []Kind
	}{
		{
			name: "no comments",
			in:   []WithRange{tok(KindIdentifier), tok(KindComma), tok(KindNumber)},
			want: []Kind{KindIdentifier, KindComma, KindNumber},
		},
		{
			name: "comment between tokens",
			in:   []WithRange{tok(KindIdentifier), tok(KindComment), tok(KindNumber)},
			want: []Kind{KindIdentifier, KindNumber},
		},
		{
			name: "only comments",
			in:   []WithRange{tok(KindComment), tok(KindComment)},
			want: nil,
		},
		{
			name: "empty",
			in:   nil,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripComments(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d tokens, want %d", len(got), len(tt.want))
			}
			for i, w := range tt.want {
				if got[i].Token.Kind != w {
					t.Errorf("token %d: got %v, want %v", i, got[i].Token.Kind, w)
				}
			}
		})
	}
}
