package lexer

import (
	"testing"

	"partref/internal/diag"
	"partref/internal/source"
	"partref/internal/token"
)

func lexAll(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.pref", []byte(src))
	bag := diag.NewBag(64)
	lx := New(fs.Get(id), Options{Reporter: diag.BagReporter{Bag: bag}})

	var toks []token.Token
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			break
		}
		toks = append(toks, tok)
	}
	return toks, bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, t := range toks {
		out = append(out, t.Kind)
	}
	return out
}

func TestLexDeclarationFile(t *testing.T) {
	src := `package graph

part Weights: []float64
part Stats

record Graph {
    Weights from weights
    Stats
}

view Update of Graph = mut Weights
`
	toks, bag := lexAll(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}

	want := []token.Kind{
		token.KwPackage, token.Ident,
		token.KwPart, token.Ident, token.Colon, token.LBracket, token.RBracket, token.Ident,
		token.KwPart, token.Ident,
		token.KwRecord, token.Ident, token.LBrace,
		token.Ident, token.KwFrom, token.Ident,
		token.Ident,
		token.RBrace,
		token.KwView, token.Ident, token.KwOf, token.Ident, token.Assign, token.KwMut, token.Ident,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("token count: expected %d, got %d\n%v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: expected %v, got %v (%q)", i, want[i], got[i], toks[i].Text)
		}
	}
}

func TestLexSpansMatchText(t *testing.T) {
	src := "part Weights: *Motor"
	toks, _ := lexAll(t, src)

	for _, tok := range toks {
		if got := src[tok.Span.Start:tok.Span.End]; got != tok.Text {
			t.Errorf("span/text mismatch: span gives %q, Text is %q", got, tok.Text)
		}
	}
	if toks[1].Text != "Weights" || toks[1].Span.Start != 5 {
		t.Errorf("ident span wrong: %+v", toks[1])
	}
}

func TestLexCommentsBecomeLeadingTrivia(t *testing.T) {
	src := "// заголовок\n/* block */ part A"
	toks, bag := lexAll(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}

	if len(toks) != 2 {
		t.Fatalf("expected 2 tokens, got %d", len(toks))
	}
	lead := toks[0].Leading
	var sawLine, sawBlock bool
	for _, tr := range lead {
		switch tr.Kind {
		case token.TriviaLineComment:
			sawLine = true
		case token.TriviaBlockComment:
			sawBlock = true
		}
	}
	if !sawLine || !sawBlock {
		t.Errorf("leading trivia incomplete: %+v", lead)
	}
}

func TestLexNestedBlockComment(t *testing.T) {
	src := "/* outer /* inner */ still outer */ part A"
	toks, bag := lexAll(t, src)
	if bag.HasErrors() {
		t.Fatalf("nested comment must lex cleanly: %+v", bag.Items())
	}
	if len(toks) != 2 || toks[0].Kind != token.KwPart {
		t.Fatalf("expected part keyword after comment, got %v", kinds(toks))
	}
}

func TestLexUnterminatedBlockComment(t *testing.T) {
	_, bag := lexAll(t, "/* no end\npart A")
	if !hasCode(bag, diag.LexUnterminatedBlockComment) {
		t.Errorf("expected LexUnterminatedBlockComment, got %+v", bag.Items())
	}
}

func TestLexUnknownChar(t *testing.T) {
	toks, bag := lexAll(t, "part A; part B")
	if !hasCode(bag, diag.LexUnknownChar) {
		t.Fatalf("expected LexUnknownChar, got %+v", bag.Items())
	}
	// лексер продолжает после ошибки
	last := toks[len(toks)-1]
	if last.Text != "B" {
		t.Errorf("lexing did not continue past bad char: %v", kinds(toks))
	}
}

func TestLexUnknownRuneReportedOnce(t *testing.T) {
	_, bag := lexAll(t, "part € A")
	n := 0
	for _, d := range bag.Items() {
		if d.Code == diag.LexUnknownChar {
			n++
		}
	}
	if n != 1 {
		t.Errorf("multi-byte rune must produce one diagnostic, got %d", n)
	}
}

func TestLexNumbers(t *testing.T) {
	toks, bag := lexAll(t, "[16]byte [1_000]int")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	if toks[1].Kind != token.IntLit || toks[1].Text != "16" {
		t.Errorf("expected IntLit 16, got %+v", toks[1])
	}
	if toks[5].Kind != token.IntLit || toks[5].Text != "1_000" {
		t.Errorf("expected IntLit 1_000, got %+v", toks[5])
	}
}

func TestLexBadNumbers(t *testing.T) {
	cases := []string{"[1__0]x", "[10_]x", "[12abc]x"}
	for _, src := range cases {
		_, bag := lexAll(t, src)
		if !hasCode(bag, diag.LexBadNumber) {
			t.Errorf("%q: expected LexBadNumber, got %+v", src, bag.Items())
		}
	}
}

func TestLexKeywordsCaseSensitive(t *testing.T) {
	toks, _ := lexAll(t, "mut Mut MUT")
	want := []token.Kind{token.KwMut, token.Ident, token.Ident}
	got := kinds(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestLexUnicodeIdent(t *testing.T) {
	toks, bag := lexAll(t, "part Вес: []float64")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	if toks[1].Kind != token.Ident || toks[1].Text != "Вес" {
		t.Errorf("unicode ident not lexed: %+v", toks[1])
	}
}

func TestLexMixedASCIIUnicodeIdent(t *testing.T) {
	// Не-ASCII внутри идентификатора, начатого с ASCII: один токен,
	// и композированная, и декомпозированная формы.
	cases := []string{"Café", "Café", "Café2"}
	for _, ident := range cases {
		toks, bag := lexAll(t, "part "+ident)
		if bag.HasErrors() {
			t.Fatalf("%q: unexpected diagnostics: %+v", ident, bag.Items())
		}
		if len(toks) != 2 {
			t.Fatalf("%q: expected 2 tokens, got %v", ident, kinds(toks))
		}
		if toks[1].Kind != token.Ident || toks[1].Text != ident {
			t.Errorf("%q: lexed as %+v", ident, toks[1])
		}
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.pref", []byte("part A"))
	lx := New(fs.Get(id), Options{})

	p := lx.Peek()
	n := lx.Next()
	if p.Kind != n.Kind || p.Span != n.Span {
		t.Errorf("Peek/Next mismatch: %+v vs %+v", p, n)
	}
	if lx.Next().Kind != token.Ident {
		t.Error("second Next should give the ident")
	}
}

func TestLexEOFIsSticky(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.pref", []byte(""))
	lx := New(fs.Get(id), Options{})

	for i := 0; i < 3; i++ {
		if tok := lx.Next(); tok.Kind != token.EOF {
			t.Fatalf("call %d: expected EOF, got %v", i, tok.Kind)
		}
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
