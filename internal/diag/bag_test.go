package diag

import (
	"testing"

	"sift/internal/source"
)

func sp(file source.FileID, start, end uint32) source.Span {
	return source.Span{File: file, Start: start, End: end}
}

func TestBagHonoursLimit(t *testing.T) {
	bag := NewBag(2)
	if !bag.Add(NewError(SynUnexpectedToken, sp(0, 0, 1), "a")) {
		t.Fatalf("first add must succeed")
	}
	bag.Add(NewError(SynUnexpectedToken, sp(0, 1, 2), "b"))
	if bag.Add(NewError(SynUnexpectedToken, sp(0, 2, 3), "c")) {
		t.Fatalf("add past the limit must be rejected")
	}
	if bag.Len() != 2 {
		t.Fatalf("len = %d, want 2", bag.Len())
	}
}

func TestBagSortOrder(t *testing.T) {
	bag := NewBag(8)
	bag.Add(NewWarning(LintNoForEach, sp(1, 5, 6), "later file"))
	bag.Add(NewError(SynExpectSemicolon, sp(0, 10, 11), "later offset"))
	bag.Add(NewWarning(LintNoShoutyConstants, sp(0, 2, 4), "warning first pos"))
	bag.Add(NewError(SynUnexpectedToken, sp(0, 2, 4), "error same pos"))
	bag.Sort()

	items := bag.Items()
	if items[0].Severity != SevError || items[0].Primary.Start != 2 {
		t.Fatalf("same span must order errors before warnings, got %+v", items[0])
	}
	if items[1].Code != LintNoShoutyConstants {
		t.Fatalf("expected the warning second, got %v", items[1].Code)
	}
	if items[2].Primary.Start != 10 {
		t.Fatalf("expected later offset third")
	}
	if items[3].Primary.File != 1 {
		t.Fatalf("expected later file last")
	}
}

func TestBagKeepsLargeLimits(t *testing.T) {
	bag := NewBag(1 << 16)
	if bag.Cap() != 1<<16 {
		t.Fatalf("cap = %d, want %d", bag.Cap(), 1<<16)
	}
	for i := range 3 {
		if !bag.Add(NewError(SynUnexpectedToken, sp(0, uint32(i), uint32(i+1)), "x")) {
			t.Fatalf("add %d rejected under a large limit", i)
		}
	}
}

func TestBagMergeGrowsLimit(t *testing.T) {
	a := NewBag(1)
	a.Add(NewError(SynUnexpectedToken, sp(0, 0, 1), "a"))
	b := NewBag(1)
	b.Add(NewError(SynUnexpectedToken, sp(0, 1, 2), "b"))
	a.Merge(b)
	if a.Len() != 2 {
		t.Fatalf("merge must keep both items, len = %d", a.Len())
	}
	if !a.HasErrors() || !a.HasWarnings() {
		t.Fatalf("severity queries broken")
	}
}

func TestCodeIDs(t *testing.T) {
	cases := []struct {
		code Code
		want string
	}{
		{LexUnknownChar, "LEX1001"},
		{SynUnexpectedToken, "SYN2001"},
		{LintNoForEach, "LNT4001"},
		{IOLoadFileError, "IO5000"},
	}
	for _, tc := range cases {
		if got := tc.code.ID(); got != tc.want {
			t.Fatalf("ID(%d) = %q, want %q", tc.code, got, tc.want)
		}
	}
	if LexUnknownChar.Title() == "" {
		t.Fatalf("known codes must have titles")
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(4)
	b := ReportError(BagReporter{Bag: bag}, SynExpectExpression, sp(0, 0, 3), "expected an expression").
		WithNote(sp(0, 4, 5), "because of this").
		WithFooter("more context")
	b.Emit()
	b.Emit()
	if bag.Len() != 1 {
		t.Fatalf("emit must report exactly once, got %d", bag.Len())
	}
	d := bag.Items()[0]
	if len(d.Notes) != 1 || d.Footer == "" {
		t.Fatalf("builder lost details: %+v", d)
	}
}
