package diag

import (
	"strings"
	"testing"

	"strait/internal/source"
)

func TestCodeIDs(t *testing.T) {
	cases := []struct {
		code Code
		id   string
	}{
		{NotObjectSafe, "E0038"},
		{ProjectionMismatch, "E0271"},
		{Unimplemented, "E0277"},
		{AmbiguousPredicate, "E0284"},
		{IceUnexpectedWF, "ICE9001"},
	}
	for _, c := range cases {
		if got := c.code.ID(); got != c.id {
			t.Errorf("%d.ID() = %q, want %q", c.code, got, c.id)
		}
	}
}

func TestCodeStringHasTitle(t *testing.T) {
	s := Unimplemented.String()
	if !strings.Contains(s, "E0277") || !strings.Contains(s, "Contract not implemented") {
		t.Fatalf("unexpected String(): %q", s)
	}
	if UnknownCode.Title() != Code(12345).Title() {
		t.Fatal("unknown codes must fall back to the UnknownCode title")
	}
}

func TestBagLimitsAndErrors(t *testing.T) {
	b := NewBag(2)
	sp := source.Span{File: 0, Start: 0, End: 1}
	if !b.Add(NewWarning(Unimplemented, sp, "w")) {
		t.Fatal("first add must succeed")
	}
	if b.HasErrors() {
		t.Fatal("warning must not count as error")
	}
	if !b.Add(NewError(Overflow, sp, "e")) {
		t.Fatal("second add must succeed")
	}
	if b.Add(NewError(Overflow, sp, "over limit")) {
		t.Fatal("bag limit must reject the third diagnostic")
	}
	if !b.HasErrors() || !b.HasWarnings() {
		t.Fatal("expected both errors and warnings")
	}
}

func TestBagMergePreservesOrder(t *testing.T) {
	a := NewBag(1)
	b := NewBag(1)
	sp := source.Span{}
	a.Add(NewError(Unimplemented, sp, "first"))
	b.Add(NewError(Unsatisfied, sp, "second"))
	a.Merge(b)
	items := a.Items()
	if len(items) != 2 || items[0].Message != "first" || items[1].Message != "second" {
		t.Fatalf("merge broke ordering: %+v", items)
	}
}

func TestReportBuilderEmitOnce(t *testing.T) {
	bag := NewBag(8)
	sp := source.Span{File: 0, Start: 0, End: 2}
	rb := ReportError(BagReporter{Bag: bag}, Unimplemented, sp, "the contract `Ord` is not implemented for the type `Foo`").
		WithNote(sp, "required by `sort`")
	rb.Emit()
	rb.Emit()
	if bag.Len() != 1 {
		t.Fatalf("Emit must fire once, got %d diagnostics", bag.Len())
	}
	d := bag.Items()[0]
	if len(d.Notes) != 1 || d.Notes[0].Msg != "required by `sort`" {
		t.Fatalf("note lost: %+v", d)
	}
}

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/ws")
	id := fs.Add("/ws/main.st", []byte("a\nb\n"), 0)

	diags := []Diagnostic{
		{
			Severity: SevError,
			Code:     Unimplemented,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: id, Start: 0, End: 1},
			Notes: []Note{
				{Span: source.Span{File: id, Start: 2, End: 3}, Msg: "note line"},
			},
		},
		{
			Severity: SevWarning,
			Code:     Unsatisfied,
			Message:  "another",
			Primary:  source.Span{File: id, Start: 2, End: 3},
		},
	}

	expected := "error E0277 main.st:1:1 first line second\n" +
		"note E0277 main.st:2:1 note line\n" +
		"warning E0280 main.st:2:1 another"

	if got := FormatShortDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected short diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}
