package diag

import (
	"strings"
	"testing"

	"partref/internal/source"
)

func TestFormatShortDiagnosticsOrderAndShape(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("graph.pref", []byte("part A\npart A\npart B: []int\n"))

	diags := []Diagnostic{
		// нарочно в обратном порядке: формат должен отсортировать
		{
			Severity: SevWarning,
			Code:     SemaPartUnused,
			Message:  "part B is never bound by any record",
			Primary:  source.Span{File: id, Start: 14, End: 20},
		},
		{
			Severity: SevError,
			Code:     SemaDuplicatePart,
			Message:  "duplicate part A",
			Primary:  source.Span{File: id, Start: 7, End: 13},
		},
	}

	got := FormatShortDiagnostics(diags, fs, false)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d:\n%s", len(lines), got)
	}
	if lines[0] != "error SEM3001 graph.pref:2:1 duplicate part A" {
		t.Errorf("line 0 = %q", lines[0])
	}
	if lines[1] != "warning SEM3019 graph.pref:3:1 part B is never bound by any record" {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestFormatShortDiagnosticsIncludesNotes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("x.pref", []byte("part A\npart A\n"))

	diags := []Diagnostic{
		{
			Severity: SevError,
			Code:     SemaDuplicatePart,
			Message:  "duplicate part A",
			Primary:  source.Span{File: id, Start: 7, End: 13},
			Notes: []Note{
				{Span: source.Span{File: id, Start: 0, End: 6}, Msg: "first declared here"},
			},
		},
	}

	got := FormatShortDiagnostics(diags, fs, true)
	if !strings.Contains(got, "note SEM3001 x.pref:1:1 first declared here") {
		t.Errorf("notes missing from output:\n%s", got)
	}
}

func TestSanitizeMessageFlattensNewlines(t *testing.T) {
	if got := sanitizeMessage(" a\r\nb\rc\n "); got != "a b c" {
		t.Errorf("sanitizeMessage = %q", got)
	}
}
