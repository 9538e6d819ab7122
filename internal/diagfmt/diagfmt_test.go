package diagfmt

import (
	"encoding/json"
	"strings"
	"testing"

	"strait/internal/diag"
	"strait/internal/source"
)

func testBag(t *testing.T) (*diag.Bag, *source.FileSet, source.Span) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("main.st", []byte("let x = collect();\nlet y = 1;\n"))
	span := source.Span{File: id, Start: 8, End: 17}

	bag := diag.NewBag(16)
	d := diag.NewError(diag.Unimplemented, span, "the contract `Ord` is not implemented for the type `Vec<int>`")
	d = d.WithNote(span, "required by `fn sort`")
	bag.Add(d)
	return bag, fs, span
}

func TestPrettyHeaderAndUnderline(t *testing.T) {
	bag, fs, _ := testBag(t)

	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{
		PathMode:   PathModeBasename,
		ShowNotes:  true,
		ShowSource: true,
	})
	out := sb.String()

	if !strings.Contains(out, "main.st:1:9: ERROR E0277: the contract `Ord` is not implemented for the type `Vec<int>`") {
		t.Fatalf("missing header line, got:\n%s", out)
	}
	if !strings.Contains(out, "let x = collect();") {
		t.Fatalf("missing source line, got:\n%s", out)
	}
	// span covers "collect()", 9 columns: caret plus 8 tildes
	if !strings.Contains(out, strings.Repeat(" ", 8)+"^"+strings.Repeat("~", 8)+"\n") {
		t.Fatalf("missing underline, got:\n%s", out)
	}
	if !strings.Contains(out, "note: required by `fn sort`") {
		t.Fatalf("missing note line, got:\n%s", out)
	}
}

func TestPrettyNotesHidden(t *testing.T) {
	bag, fs, _ := testBag(t)

	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	out := sb.String()

	if strings.Contains(out, "note:") {
		t.Fatalf("notes should be hidden, got:\n%s", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Fatalf("expected a single header line, got:\n%s", out)
	}
}

func TestPrettyWidthClipsMessage(t *testing.T) {
	bag, fs, _ := testBag(t)

	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{PathMode: PathModeBasename, Width: 20})
	out := sb.String()

	if !strings.Contains(out, "...") {
		t.Fatalf("expected clipped message, got:\n%s", out)
	}
}

func TestJSONOutput(t *testing.T) {
	bag, fs, span := testBag(t)

	var sb strings.Builder
	err := JSON(&sb, bag, fs, JSONOpts{
		PathMode:         PathModeBasename,
		IncludePositions: true,
		IncludeNotes:     true,
	})
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}

	var out DiagnosticsOutput
	if err := json.Unmarshal([]byte(sb.String()), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("expected one diagnostic, got %+v", out)
	}

	d := out.Diagnostics[0]
	if d.Code != "E0277" || d.Severity != "ERROR" {
		t.Errorf("unexpected code/severity: %+v", d)
	}
	if d.Location.File != "main.st" {
		t.Errorf("unexpected file: %q", d.Location.File)
	}
	if d.Location.StartByte != span.Start || d.Location.EndByte != span.End {
		t.Errorf("unexpected byte range: %+v", d.Location)
	}
	if d.Location.StartLine != 1 || d.Location.StartCol != 9 {
		t.Errorf("unexpected position: %+v", d.Location)
	}
	if len(d.Notes) != 1 || d.Notes[0].Message != "required by `fn sort`" {
		t.Errorf("unexpected notes: %+v", d.Notes)
	}
}

func TestJSONMaxTruncates(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("main.st", []byte("x\n"))
	span := source.Span{File: id, Start: 0, End: 1}

	bag := diag.NewBag(16)
	bag.Add(diag.NewError(diag.Unimplemented, span, "first"))
	bag.Add(diag.NewError(diag.Unsatisfied, span, "second"))
	bag.Add(diag.NewError(diag.ProjectionMismatch, span, "third"))

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 2, PathMode: PathModeBasename})
	if out.Count != 2 || len(out.Diagnostics) != 2 {
		t.Fatalf("expected truncation to 2, got %+v", out)
	}
}
