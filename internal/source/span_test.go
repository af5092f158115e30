package source

import "testing"

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 10, End: 20}
	b := Span{File: 1, Start: 5, End: 15}

	got := a.Cover(b)
	if got.Start != 5 || got.End != 20 {
		t.Fatalf("Cover = %v, want 1:5-20", got)
	}

	other := Span{File: 2, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Fatalf("Cover across files must be a no-op, got %v", got)
	}
}

func TestSpanContains(t *testing.T) {
	s := Span{File: 1, Start: 3, End: 7}
	cases := []struct {
		off  uint32
		want bool
	}{
		{2, false},
		{3, true},
		{6, true},
		{7, false},
	}
	for _, c := range cases {
		if got := s.Contains(c.off); got != c.want {
			t.Errorf("Contains(%d) = %v, want %v", c.off, got, c.want)
		}
	}

	empty := Span{File: 1, Start: 4, End: 4}
	if !empty.Contains(4) {
		t.Fatalf("empty span must contain its own offset")
	}
}

func TestSpanShift(t *testing.T) {
	s := Span{File: 1, Start: 10, End: 14}
	if got := s.Shift(3); got.Start != 13 || got.End != 17 {
		t.Fatalf("Shift(+3) = %v", got)
	}
	if got := s.Shift(-4); got.Start != 6 || got.End != 10 {
		t.Fatalf("Shift(-4) = %v", got)
	}
}

func TestSpanOverlaps(t *testing.T) {
	a := Span{File: 1, Start: 0, End: 5}
	b := Span{File: 1, Start: 5, End: 9}
	if !a.Overlaps(b) {
		t.Fatalf("touching spans must overlap for edit purposes")
	}
	c := Span{File: 1, Start: 6, End: 9}
	if a.Overlaps(c) {
		t.Fatalf("disjoint spans must not overlap")
	}
}
