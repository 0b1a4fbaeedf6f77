package diag

import (
	"testing"

	"partref/internal/source"
)

func sp(file source.FileID, start, end uint32) source.Span {
	return source.Span{File: file, Start: start, End: end}
}

func TestBagLimitAndCounts(t *testing.T) {
	bag := NewBag(2)

	if !bag.Add(NewError(SemaDuplicatePart, sp(0, 0, 4), "dup")) {
		t.Fatal("first Add must succeed")
	}
	if !bag.Add(New(SevWarning, SemaPartUnused, sp(0, 5, 9), "unused")) {
		t.Fatal("second Add must succeed")
	}
	// лимит достигнут
	if bag.Add(NewError(SemaUnknownPart, sp(0, 10, 12), "overflow")) {
		t.Fatal("Add above cap must fail")
	}

	if !bag.HasErrors() || !bag.HasWarnings() {
		t.Error("expected both errors and warnings present")
	}
	if bag.ErrorCount() != 1 {
		t.Errorf("ErrorCount = %d, want 1", bag.ErrorCount())
	}
	if bag.WarningCount() != 1 {
		t.Errorf("WarningCount = %d, want 1", bag.WarningCount())
	}
}

func TestBagSortOrdersBySpanThenSeverity(t *testing.T) {
	bag := NewBag(8)
	bag.Add(New(SevWarning, SemaPartUnused, sp(0, 20, 24), "later"))
	bag.Add(NewError(SemaDuplicatePart, sp(0, 3, 7), "earlier"))
	bag.Add(New(SevWarning, SemaPartUnused, sp(0, 3, 7), "same span, weaker severity"))

	bag.Sort()
	items := bag.Items()
	if items[0].Message != "earlier" {
		t.Errorf("items[0] = %q", items[0].Message)
	}
	if items[1].Message != "same span, weaker severity" {
		t.Errorf("items[1] = %q", items[1].Message)
	}
	if items[2].Message != "later" {
		t.Errorf("items[2] = %q", items[2].Message)
	}
}

func TestBagDedup(t *testing.T) {
	bag := NewBag(8)
	d := NewError(SemaDuplicatePart, sp(0, 0, 4), "dup")
	bag.Add(d)
	bag.Add(d)
	bag.Add(NewError(SemaDuplicatePart, sp(0, 5, 9), "other span survives"))

	bag.Dedup()
	if bag.Len() != 2 {
		t.Errorf("after Dedup Len = %d, want 2", bag.Len())
	}
}

func TestBagMergeGrowsCap(t *testing.T) {
	a := NewBag(1)
	a.Add(NewError(SemaDuplicatePart, sp(0, 0, 1), "a"))
	b := NewBag(1)
	b.Add(NewError(SemaUnknownPart, sp(0, 2, 3), "b"))

	a.Merge(b)
	if a.Len() != 2 {
		t.Errorf("after Merge Len = %d, want 2", a.Len())
	}
}

func TestDedupReporterSuppressesRepeats(t *testing.T) {
	bag := NewBag(8)
	r := NewDedupReporter(BagReporter{Bag: bag})

	span := sp(0, 0, 4)
	r.Report(SemaDuplicatePart, SevError, span, "dup", nil, nil)
	r.Report(SemaDuplicatePart, SevError, span, "dup", nil, nil)
	r.Report(SemaDuplicatePart, SevError, span, "different message", nil, nil)

	if bag.Len() != 2 {
		t.Errorf("bag Len = %d, want 2", bag.Len())
	}
}

func TestReportBuilderEmitOnce(t *testing.T) {
	bag := NewBag(8)
	b := ReportError(BagReporter{Bag: bag}, SemaCapabilityMismatch, sp(0, 0, 4), "cannot borrow")
	b.WithNote(sp(0, 5, 9), "held here").Emit()
	b.Emit() // второй Emit — no-op

	if bag.Len() != 1 {
		t.Fatalf("bag Len = %d, want 1", bag.Len())
	}
	d := bag.Items()[0]
	if len(d.Notes) != 1 || d.Notes[0].Msg != "held here" {
		t.Errorf("note not attached: %+v", d.Notes)
	}
	if d.Code != SemaCapabilityMismatch {
		t.Errorf("code = %v", d.Code)
	}
}

func TestCodeID(t *testing.T) {
	cases := map[Code]string{
		LexUnknownChar:         "LEX1001",
		SynUnexpectedToken:     "SYN2001",
		SemaCapabilityMismatch: "SEM3015",
		IOLoadFileError:        "IO4001",
		GenStaleOutput:         "GEN5001",
		UnknownCode:            "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Errorf("Code(%d).ID() = %q, want %q", code, got, want)
		}
	}
}
