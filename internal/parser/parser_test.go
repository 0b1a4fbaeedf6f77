package parser

// Тесты разбора деклараций.
//
// Покрытие:
//   - package и правило "package первым";
//   - все три формы part (opaque, поле, record-типизированная);
//   - record с биндингами from и opaque-биндингами;
//   - view с mut-модификаторами и вложенными путями;
//   - borrow/split;
//   - типовая грамматика и ошибки восстановления.

import (
	"testing"

	"partref/internal/ast"
	"partref/internal/diag"
	"partref/internal/lexer"
	"partref/internal/source"
)

// parseString — хелпер: разбирает входную строку целиком
func parseString(t *testing.T, input string) (*ast.File, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.pref", []byte(input))
	file := fs.Get(fileID)

	bag := diag.NewBag(100)
	reporter := diag.BagReporter{Bag: bag}

	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	res := ParseFile(fs, lx, Options{MaxErrors: 100, Reporter: reporter})
	if res.Bag != bag {
		t.Fatal("ParseFile must surface the reporter bag")
	}
	return res.File, bag
}

func expectClean(t *testing.T, bag *diag.Bag) {
	t.Helper()
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}

func TestParsePackage(t *testing.T) {
	file, bag := parseString(t, "package graph")
	expectClean(t, bag)
	if file.Package.Name.Name != "graph" {
		t.Errorf("package name = %q, want graph", file.Package.Name.Name)
	}
}

func TestParsePackageMustBeFirst(t *testing.T) {
	_, bag := parseString(t, "part A\npackage graph")
	if !hasCode(bag, diag.SynPackageFirst) {
		t.Errorf("expected SynPackageFirst, got %+v", bag.Items())
	}
}

func TestParseMissingPackage(t *testing.T) {
	_, bag := parseString(t, "part A")
	if !hasCode(bag, diag.SynPackageFirst) {
		t.Errorf("expected SynPackageFirst for file without package, got %+v", bag.Items())
	}
}

func TestParseDuplicatePackage(t *testing.T) {
	file, bag := parseString(t, "package a\npackage b")
	if !hasCode(bag, diag.SynDuplicatePackage) {
		t.Fatalf("expected SynDuplicatePackage, got %+v", bag.Items())
	}
	if file.Package.Name.Name != "a" {
		t.Errorf("first package must win, got %q", file.Package.Name.Name)
	}
}

func TestParsePartForms(t *testing.T) {
	file, bag := parseString(t, `package m
part Stats
part Weights: []float64
part Motor: record MotorParts
`)
	expectClean(t, bag)
	if len(file.Parts) != 3 {
		t.Fatalf("expected 3 parts, got %d", len(file.Parts))
	}

	if p := file.Parts[0]; p.Kind != ast.PartOpaque || p.Name.Name != "Stats" {
		t.Errorf("part 0: %+v", p)
	}
	if p := file.Parts[1]; p.Kind != ast.PartField || p.Type.String() != "[]float64" {
		t.Errorf("part 1: kind=%v type=%v", p.Kind, p.Type)
	}
	if p := file.Parts[2]; p.Kind != ast.PartRecord || p.Record.Name != "MotorParts" {
		t.Errorf("part 2: kind=%v record=%q", p.Kind, p.Record.Name)
	}
}

func TestParseRecord(t *testing.T) {
	file, bag := parseString(t, `package m
record Graph {
    Neighbors from neighbors
    Colors    from colors
    Stats
}
`)
	expectClean(t, bag)
	if len(file.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(file.Records))
	}
	rec := file.Records[0]
	if rec.Name.Name != "Graph" || len(rec.Bindings) != 3 {
		t.Fatalf("record: name=%q bindings=%d", rec.Name.Name, len(rec.Bindings))
	}
	if b := rec.Bindings[0]; !b.HasField || b.Part.Name != "Neighbors" || b.Field.Name != "neighbors" {
		t.Errorf("binding 0: %+v", b)
	}
	if b := rec.Bindings[2]; b.HasField || b.Part.Name != "Stats" {
		t.Errorf("binding 2 must be opaque: %+v", b)
	}
}

func TestParseRecordBadBody(t *testing.T) {
	_, bag := parseString(t, "package m\nrecord R { 42 }\npart A")
	if !hasCode(bag, diag.SynExpectBindingName) {
		t.Errorf("expected SynExpectBindingName, got %+v", bag.Items())
	}
}

func TestParseView(t *testing.T) {
	file, bag := parseString(t, `package m
view Update of Graph = mut Weights, Colors, mut Motor.RPM
`)
	expectClean(t, bag)
	if len(file.Views) != 1 {
		t.Fatalf("expected 1 view, got %d", len(file.Views))
	}
	v := file.Views[0]
	if v.Name.Name != "Update" || v.Record.Name != "Graph" || len(v.Entries) != 3 {
		t.Fatalf("view: %+v", v)
	}
	if e := v.Entries[0]; !e.Mut || e.PathString() != "Weights" {
		t.Errorf("entry 0: mut=%v path=%q", e.Mut, e.PathString())
	}
	if e := v.Entries[1]; e.Mut || e.PathString() != "Colors" {
		t.Errorf("entry 1: mut=%v path=%q", e.Mut, e.PathString())
	}
	if e := v.Entries[2]; !e.Mut || e.PathString() != "Motor.RPM" || len(e.Path) != 2 {
		t.Errorf("entry 2: %+v", e)
	}
}

func TestParseViewEmptyBody(t *testing.T) {
	_, bag := parseString(t, "package m\nview V of R =\npart A")
	if !hasCode(bag, diag.SynExpectViewEntry) {
		t.Errorf("expected SynExpectViewEntry, got %+v", bag.Items())
	}
}

func TestParseTransfers(t *testing.T) {
	file, bag := parseString(t, `package m
borrow Reader from Update
split Hot from Full
`)
	expectClean(t, bag)
	if len(file.Transfers) != 2 {
		t.Fatalf("expected 2 transfers, got %d", len(file.Transfers))
	}
	if tr := file.Transfers[0]; tr.Kind != ast.TransferBorrow || tr.Dst.Name != "Reader" || tr.Src.Name != "Update" {
		t.Errorf("transfer 0: %+v", tr)
	}
	if tr := file.Transfers[1]; tr.Kind != ast.TransferSplit || tr.Dst.Name != "Hot" || tr.Src.Name != "Full" {
		t.Errorf("transfer 1: %+v", tr)
	}
}

func TestParseTypes(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"part A: float64", "float64"},
		{"part A: time.Duration", "time.Duration"},
		{"part A: *Motor", "*Motor"},
		{"part A: []float64", "[]float64"},
		{"part A: [16]byte", "[16]byte"},
		{"part A: [1_000]int", "[1_000]int"},
		{"part A: map[string]int", "map[string]int"},
		{"part A: map[int][]*node.T", "map[int][]*node.T"},
	}
	for _, tt := range tests {
		file, bag := parseString(t, "package m\n"+tt.src)
		if bag.HasErrors() {
			t.Errorf("%q: unexpected diagnostics %+v", tt.src, bag.Items())
			continue
		}
		if got := file.Parts[0].Type.String(); got != tt.want {
			t.Errorf("%q: type = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestParseTypeErrors(t *testing.T) {
	tests := []struct {
		src  string
		code diag.Code
	}{
		{"part A: ,", diag.SynExpectType},
		{"part A: [x]int", diag.SynBadArrayLen},
		{"part A: [16 int", diag.SynExpectRBracket},
		{"part A: map string", diag.SynUnexpectedToken},
	}
	for _, tt := range tests {
		_, bag := parseString(t, "package m\n"+tt.src)
		if !hasCode(bag, tt.code) {
			t.Errorf("%q: expected %s, got %+v", tt.src, tt.code.ID(), bag.Items())
		}
	}
}

func TestParseMissingBracketSuggestsInsert(t *testing.T) {
	_, bag := parseString(t, "package m\npart A: [16 int")
	var found *diag.Diagnostic
	for i := range bag.Items() {
		if bag.Items()[i].Code == diag.SynExpectRBracket {
			found = &bag.Items()[i]
			break
		}
	}
	if found == nil {
		t.Fatalf("expected SynExpectRBracket, got %+v", bag.Items())
	}
	if len(found.Fixes) != 1 || found.Fixes[0].Title != "insert ']'" {
		t.Fatalf("expected insert fix, got %+v", found.Fixes)
	}
	edit := found.Fixes[0].Edits[0]
	if edit.NewText != "]" || edit.Span.Start != edit.Span.End {
		t.Errorf("fix must insert ']' at a zero-width span, got %+v", edit)
	}
}

func TestParseRecoversAfterError(t *testing.T) {
	file, bag := parseString(t, `package m
part 42
part B
record R { B from b }
`)
	if !bag.HasErrors() {
		t.Fatal("expected diagnostics for 'part 42'")
	}
	// после ошибки разбор продолжается со следующей декларации
	if len(file.Parts) != 1 || file.Parts[0].Name.Name != "B" {
		t.Errorf("recovery lost declarations: %+v", file.Parts)
	}
	if len(file.Records) != 1 {
		t.Errorf("recovery lost record: %+v", file.Records)
	}
}

func TestParseMaxErrorsStopsReporting(t *testing.T) {
	_, bag := parseString(t, "package m\npart 1\npart 2\npart 3\npart 4")
	if bag.Len() > 100 {
		t.Fatalf("bag overflow: %d", bag.Len())
	}

	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.pref", []byte("package m\npart 1\npart 2\npart 3\npart 4"))
	small := diag.NewBag(100)
	reporter := diag.BagReporter{Bag: small}
	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: reporter})
	ParseFile(fs, lx, Options{MaxErrors: 2, Reporter: reporter})

	n := 0
	for _, d := range small.Items() {
		if d.Severity == diag.SevError {
			n++
		}
	}
	if n > 2 {
		t.Errorf("MaxErrors=2 but %d errors reported", n)
	}
}

func TestParseIdentNFCNormalization(t *testing.T) {
	// та же буква в двух Unicode-формах: "é" precomposed и "e"+combining acute
	precomposed := "é"
	decomposed := "é"

	file, bag := parseString(t, "package m\npart Caf"+precomposed+"\nview V of R = Caf"+decomposed)
	expectClean(t, bag)
	if file.Parts[0].Name.Name != file.Views[0].Entries[0].Path[0].Name {
		t.Errorf("NFC normalization must unify %q and %q",
			file.Parts[0].Name.Name, file.Views[0].Entries[0].Path[0].Name)
	}
}
