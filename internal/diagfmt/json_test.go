package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"partref/internal/diag"
	"partref/internal/source"
)

// TestJSONBasic проверяет базовое JSON форматирование
func TestJSONBasic(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("view V of R = mut Colors\n")
	fileID := fs.AddVirtual("test.pref", content)

	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevError,
		diag.SemaCapabilityMismatch,
		source.Span{File: fileID, Start: 18, End: 24},
		"cannot borrow V from Full: Full holds no entry covering Colors",
	))

	var buf bytes.Buffer
	opts := JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
	}
	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v\nOutput: %s", err, buf.String())
	}

	if output.Count != 1 {
		t.Errorf("Expected count=1, got %d", output.Count)
	}
	if len(output.Diagnostics) != 1 {
		t.Fatalf("Expected 1 diagnostic, got %d", len(output.Diagnostics))
	}

	d := output.Diagnostics[0]
	if d.Severity != "ERROR" {
		t.Errorf("Expected severity=ERROR, got %s", d.Severity)
	}
	if d.Code != "SEM3015" {
		t.Errorf("Expected code=SEM3015, got %s", d.Code)
	}
	if d.Location.File != "test.pref" {
		t.Errorf("Expected file=test.pref, got %s", d.Location.File)
	}
	if d.Location.StartByte != 18 || d.Location.EndByte != 24 {
		t.Errorf("Expected bytes 18..24, got %d..%d", d.Location.StartByte, d.Location.EndByte)
	}
	if d.Location.StartLine != 1 || d.Location.StartCol != 19 {
		t.Errorf("Expected position 1:19, got %d:%d", d.Location.StartLine, d.Location.StartCol)
	}
}

// TestJSONWithNotesAndFixes проверяет JSON с заметками и исправлениями
func TestJSONWithNotesAndFixes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("part A: [16 int\n")
	fileID := fs.AddVirtual("test.pref", content)

	bag := diag.NewBag(10)
	d := diag.New(
		diag.SevError,
		diag.SynExpectRBracket,
		source.Span{File: fileID, Start: 12, End: 15},
		"expected ']' after array length",
	)
	d = d.WithNote(source.Span{File: fileID, Start: 8, End: 9}, "array type starts here")
	d = d.WithFix("insert ']'", diag.FixEdit{
		Span:    source.Span{File: fileID, Start: 11, End: 11},
		NewText: "]",
	})
	bag.Add(d)

	var buf bytes.Buffer
	opts := JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
		IncludeNotes:     true,
		IncludeFixes:     true,
		IncludePreviews:  true,
	}
	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v\nOutput: %s", err, buf.String())
	}

	d0 := output.Diagnostics[0]
	if len(d0.Notes) != 1 {
		t.Fatalf("Expected 1 note, got %d", len(d0.Notes))
	}
	if d0.Notes[0].Message != "array type starts here" {
		t.Errorf("Note message = %q", d0.Notes[0].Message)
	}
	if d0.Notes[0].Location.StartLine != 1 || d0.Notes[0].Location.StartCol != 9 {
		t.Errorf("Note position = %d:%d, want 1:9",
			d0.Notes[0].Location.StartLine, d0.Notes[0].Location.StartCol)
	}

	if len(d0.Fixes) != 1 {
		t.Fatalf("Expected 1 fix, got %d", len(d0.Fixes))
	}
	fix := d0.Fixes[0]
	if fix.Title != "insert ']'" {
		t.Errorf("Fix title = %q", fix.Title)
	}
	if len(fix.Edits) != 1 || fix.Edits[0].NewText != "]" {
		t.Fatalf("Fix edits = %+v", fix.Edits)
	}
	if len(fix.Edits[0].BeforeLines) != 1 || fix.Edits[0].BeforeLines[0] != "part A: [16 int" {
		t.Errorf("Before lines = %+v", fix.Edits[0].BeforeLines)
	}
	if len(fix.Edits[0].AfterLines) != 1 || fix.Edits[0].AfterLines[0] != "part A: [16] int" {
		t.Errorf("After lines = %+v", fix.Edits[0].AfterLines)
	}
}

func TestJSONOmitsNotesAndFixesByDefault(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.pref", []byte("part A\n"))

	bag := diag.NewBag(10)
	d := diag.New(diag.SevWarning, diag.SemaPartUnused,
		source.Span{File: fileID, Start: 5, End: 6}, "part \"A\" is never bound by a record")
	d = d.WithNote(source.Span{File: fileID, Start: 0, End: 4}, "declared here")
	d = d.WithFix("remove part", diag.FixEdit{Span: source.Span{File: fileID, Start: 0, End: 7}})
	bag.Add(d)

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{PathMode: PathModeBasename}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v", err)
	}

	d0 := output.Diagnostics[0]
	if d0.Notes != nil {
		t.Errorf("Notes must be omitted, got %+v", d0.Notes)
	}
	if d0.Fixes != nil {
		t.Errorf("Fixes must be omitted, got %+v", d0.Fixes)
	}
	if d0.Location.StartLine != 0 {
		t.Errorf("Positions must be omitted without IncludePositions, got line %d", d0.Location.StartLine)
	}
}

func TestJSONMaxTruncates(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.pref", []byte("part A\npart A\npart A\n"))

	bag := diag.NewBag(10)
	for start := uint32(0); start < 3; start++ {
		bag.Add(diag.New(diag.SevError, diag.SemaDuplicatePart,
			source.Span{File: fileID, Start: start, End: start + 1}, "duplicate part \"A\""))
	}

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{PathMode: PathModeBasename, Max: 2}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v", err)
	}

	if output.Count != 2 || len(output.Diagnostics) != 2 {
		t.Errorf("Max=2 must truncate: count=%d len=%d", output.Count, len(output.Diagnostics))
	}
}
