package token_test

import (
	"testing"

	"partref/internal/source"
	"partref/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestIsPunct(t *testing.T) {
	ops := []token.Kind{
		token.Colon, token.Comma, token.Dot, token.Star, token.Assign,
		token.LBrace, token.RBrace, token.LBracket, token.RBracket,
	}
	for _, k := range ops {
		if !tok(k).IsPunct() {
			t.Fatalf("%v should be punct", k)
		}
	}
	non := []token.Kind{token.Ident, token.KwPart, token.IntLit, token.EOF}
	for _, k := range non {
		if tok(k).IsPunct() {
			t.Fatalf("%v must NOT be punct", k)
		}
	}
}

func TestIsKeywordCoversDeclarations(t *testing.T) {
	kws := []token.Kind{
		token.KwPackage, token.KwPart, token.KwRecord, token.KwView,
		token.KwBorrow, token.KwSplit, token.KwOf, token.KwFrom,
		token.KwMut, token.KwMap,
	}
	for _, k := range kws {
		if !tok(k).IsKeyword() {
			t.Fatalf("%v should be keyword", k)
		}
	}
	if tok(token.Ident).IsKeyword() {
		t.Fatal("ident must not be keyword")
	}
}

func TestStartsDecl(t *testing.T) {
	starts := []token.Kind{
		token.KwPackage, token.KwPart, token.KwRecord,
		token.KwView, token.KwBorrow, token.KwSplit,
	}
	for _, k := range starts {
		if !tok(k).StartsDecl() {
			t.Fatalf("%v should start a declaration", k)
		}
	}
	non := []token.Kind{token.KwMut, token.KwOf, token.KwFrom, token.Ident, token.Comma}
	for _, k := range non {
		if tok(k).StartsDecl() {
			t.Fatalf("%v must NOT start a declaration", k)
		}
	}
}

func TestKindString(t *testing.T) {
	cases := map[token.Kind]string{
		token.Ident:    "ident",
		token.KwMut:    "mut",
		token.Comma:    ",",
		token.LBracket: "[",
		token.EOF:      "eof",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}
