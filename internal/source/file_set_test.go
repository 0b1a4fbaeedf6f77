package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetAddAndIndex(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("graph.pref", []byte("part Colors: []int"), 0)
	if id1 != 0 {
		t.Errorf("expected first FileID to be 0, got %d", id1)
	}

	// Повторное добавление того же пути создаёт новую запись,
	// индекс указывает на последнюю.
	id2 := fs.Add("graph.pref", []byte("part Colors: []uint8"), 0)
	if id2 != 1 {
		t.Errorf("expected second FileID to be 1, got %d", id2)
	}

	f, ok := fs.GetByPath("graph.pref")
	if !ok {
		t.Fatal("expected file to be indexed after Add")
	}
	if f.ID != id2 {
		t.Errorf("expected index to point at %d, got %d", id2, f.ID)
	}

	if string(fs.Get(id1).Content) != "part Colors: []int" {
		t.Errorf("first version content lost: %q", fs.Get(id1).Content)
	}
	if fs.Len() != 2 {
		t.Errorf("expected 2 files, got %d", fs.Len())
	}
}

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()

	// "a\nb\n" → LineIdx = [1,3] (позиции \n)
	id := fs.AddVirtual("a.pref", []byte("a\nb\n"))
	file := fs.Get(id)

	expected := []uint32{1, 3}
	if len(file.LineIdx) != len(expected) {
		t.Fatalf("expected LineIdx length %d, got %d", len(expected), len(file.LineIdx))
	}
	for i, val := range expected {
		if file.LineIdx[i] != val {
			t.Errorf("expected LineIdx[%d] = %d, got %d", i, val, file.LineIdx[i])
		}
	}

	if file.Flags&FileVirtual == 0 {
		t.Error("expected FileVirtual flag to be set")
	}
}

func TestLoadNormalizesCRLFAndBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.pref")
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("part A\r\npart B\r\n")...)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	file := fs.Get(id)

	if string(file.Content) != "part A\npart B\n" {
		t.Errorf("content not normalized: %q", file.Content)
	}
	if file.Flags&FileHadBOM == 0 {
		t.Error("expected FileHadBOM flag")
	}
	if file.Flags&FileNormalizedCRLF == 0 {
		t.Error("expected FileNormalizedCRLF flag")
	}
}

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("x.pref", []byte("part A\npart Bee\n"))

	// "Bee" начинается на второй строке, колонка 6
	span := Span{File: id, Start: 12, End: 15}
	start, end := fs.Resolve(span)
	if start.Line != 2 || start.Col != 6 {
		t.Errorf("start: expected 2:6, got %d:%d", start.Line, start.Col)
	}
	if end.Line != 2 || end.Col != 9 {
		t.Errorf("end: expected 2:9, got %d:%d", end.Line, end.Col)
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("x.pref", []byte("first\nsecond\nthird"))
	file := fs.Get(id)

	cases := []struct {
		line uint32
		want string
	}{
		{0, ""},
		{1, "first"},
		{2, "second"},
		{3, "third"}, // последняя строка без \n
		{4, ""},
	}
	for _, c := range cases {
		if got := file.GetLine(c.line); got != c.want {
			t.Errorf("GetLine(%d): expected %q, got %q", c.line, c.want, got)
		}
	}
}

func TestFormatPathModes(t *testing.T) {
	f := &File{Path: "demo/graph.pref"}

	if got := f.FormatPath("basename", ""); got != "graph.pref" {
		t.Errorf("basename: got %q", got)
	}
	if got := f.FormatPath("auto", ""); got != "demo/graph.pref" {
		t.Errorf("auto on short relative path should keep it, got %q", got)
	}
	if got := f.FormatPath("", ""); got != "demo/graph.pref" {
		t.Errorf("unknown mode should fall back to raw path, got %q", got)
	}
}
