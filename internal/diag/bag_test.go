package diag

import (
	"testing"

	"burn/internal/source"
)

func sp(start, end uint32) source.Span {
	return source.Span{File: 0, Start: start, End: end}
}

func TestBagSortOrder(t *testing.T) {
	b := NewBag(8)
	b.Add(Diagnostic{Severity: SevWarning, Code: TypeMismatch, Stage: StageChecker, Message: "w", Primary: sp(5, 6)})
	b.Add(Diagnostic{Severity: SevError, Code: SynUnexpectedToken, Stage: StageParser, Message: "p", Primary: sp(5, 6)})
	b.Add(Diagnostic{Severity: SevError, Code: LexUnknownChar, Stage: StageLexer, Message: "l", Primary: sp(5, 6)})
	b.Add(Diagnostic{Severity: SevError, Code: BindUnresolvedName, Stage: StageBinder, Message: "b", Primary: sp(1, 2)})

	b.Sort()
	got := make([]string, 0, 4)
	for _, d := range b.Items() {
		got = append(got, d.Message)
	}
	want := []string{"b", "l", "p", "w"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sort order = %v, want %v", got, want)
		}
	}
}

func TestBagDedup(t *testing.T) {
	b := NewBag(4)
	d := Diagnostic{Severity: SevError, Code: BindUnresolvedName, Stage: StageBinder, Message: "unresolved name 'y'", Primary: sp(8, 9)}
	b.Add(d)
	b.Add(d)
	b.Add(Diagnostic{Severity: SevError, Code: BindUnresolvedName, Stage: StageBinder, Message: "unresolved name 'z'", Primary: sp(8, 9)})

	b.Sort()
	b.Dedup()
	if b.Len() != 2 {
		t.Fatalf("Dedup left %d items, want 2", b.Len())
	}
}

func TestBagLimit(t *testing.T) {
	b := NewBag(1)
	if !b.Add(Diagnostic{Message: "first"}) {
		t.Fatal("first Add must succeed")
	}
	if b.Add(Diagnostic{Message: "second"}) {
		t.Fatal("Add past the limit must report false")
	}
}

func TestAggregateDeterministic(t *testing.T) {
	mk := func() []*Bag {
		lex := NewBag(4)
		lex.Add(Diagnostic{Severity: SevError, Code: LexUnknownChar, Stage: StageLexer, Message: "bad byte", Primary: sp(3, 4)})
		par := NewBag(4)
		par.Add(Diagnostic{Severity: SevError, Code: SynUnexpectedToken, Stage: StageParser, Message: "bad token", Primary: sp(0, 1)})
		par.Add(Diagnostic{Severity: SevError, Code: SynUnexpectedToken, Stage: StageParser, Message: "bad token", Primary: sp(0, 1)})
		return []*Bag{lex, par}
	}

	a := Aggregate(mk()...)
	b := Aggregate(mk()...)
	if len(a) != 2 || len(b) != 2 {
		t.Fatalf("Aggregate lengths = %d, %d; want 2", len(a), len(b))
	}
	for i := range a {
		if a[i].Message != b[i].Message || a[i].Primary != b[i].Primary {
			t.Fatalf("aggregation is not deterministic: %v vs %v", a[i], b[i])
		}
	}
	if a[0].Message != "bad token" {
		t.Fatalf("expected span-start order, got %q first", a[0].Message)
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(8)
	r := NewDedupReporter(BagReporter{Bag: bag})
	r.Report(BindUnresolvedName, SevError, sp(1, 2), "unresolved", nil)
	r.Report(BindUnresolvedName, SevError, sp(1, 2), "unresolved", nil)
	r.Report(BindUnresolvedName, SevError, sp(1, 2), "other", nil)

	if bag.Len() != 2 {
		t.Fatalf("DedupReporter passed %d diagnostics, want 2", bag.Len())
	}
}

func TestCodeStage(t *testing.T) {
	cases := []struct {
		code Code
		want Stage
	}{
		{LexUnknownChar, StageLexer},
		{SynUnexpectedToken, StageParser},
		{BindUnresolvedName, StageBinder},
		{TypeMismatch, StageChecker},
	}
	for _, c := range cases {
		if got := c.code.Stage(); got != c.want {
			t.Errorf("%v.Stage() = %v, want %v", c.code, got, c.want)
		}
	}
}

func TestBagLimitBeyond16Bits(t *testing.T) {
	const limit = 66000
	b := NewBag(limit)
	for i := 0; i < limit; i++ {
		if !b.Add(Diagnostic{Message: "d"}) {
			t.Fatalf("Add %d rejected below the limit", i)
		}
	}
	if b.Add(Diagnostic{Message: "one too many"}) {
		t.Fatal("Add past the limit must report false")
	}
	if b.Len() != limit {
		t.Fatalf("Len = %d, want %d", b.Len(), limit)
	}
}
