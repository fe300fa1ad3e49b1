package location

import "testing"

func TestFromPositionAndLength(t *testing.T) {
	pos := NewPosition(0, 5, 1, 2)
	got := FromPositionAndLength(pos, 3)
	want := NewRange(0, 5, 1, 2, 3)
	if got != want {
		t.Errorf("FromPositionAndLength = %+v, want %+v", got, want)
	}
}

func TestStartAndEnd(t *testing.T) {
	r := NewRange(0, 5, 1, 2, 3)
	if start := r.Start(); start.Index != 5 || !start.IsPoint() {
		t.Errorf("Start() = %+v, want a point at index 5", start)
	}
	if end := r.End(); end.Index != 8 || !end.IsPoint() {
		t.Errorf("End() = %+v, want a point at index 8", end)
	}
}

func TestIsPoint(t *testing.T) {
	if !NewPosition(0, 0, 0, 0).IsPoint() {
		t.Error("a zero-length location should be a point")
	}
	if NewRange(0, 0, 0, 0, 1).IsPoint() {
		t.Error("a length-1 location should not be a point")
	}
}

func TestFromPositionPair(t *testing.T) {
	start := NewPosition(0, 2, 0, 2)
	end := NewPosition(0, 5, 0, 5)
	got := FromPositionPair(start, end)
	if got.Index != 2 || got.Length != 3 {
		t.Errorf("FromPositionPair = %+v, want index 2 length 3", got)
	}
}

func TestStringIsOneBasedForHumans(t *testing.T) {
	loc := NewPosition(0, 10, 4, 7)
	if got, want := loc.String(), "0:5:8"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestCharsWithPositionIterTracksLines(t *testing.T) {
	it := NewCharsWithPositionIter(0, []rune("a\nb"))
	cps := it.Drain()
	if len(cps) != 3 {
		t.Fatalf("got %d chars, want 3", len(cps))
	}
	if cps[0].Position.Line != 0 || cps[0].Position.Column != 0 {
		t.Errorf("'a' position = %+v, want line 0 col 0", cps[0].Position)
	}
	if cps[2].Position.Line != 1 || cps[2].Position.Column != 0 {
		t.Errorf("'b' position = %+v, want line 1 col 0", cps[2].Position)
	}
}
