package token

import (
	"partref/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsKeyword reports whether the token is a declaration keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwPackage, KwPart, KwRecord, KwView, KwBorrow, KwSplit, KwOf, KwFrom, KwMut, KwMap:
		return true
	default:
		return false
	}
}

// IsPunct reports whether the token is punctuation.
func (t Token) IsPunct() bool {
	switch t.Kind {
	case Colon, Comma, Dot, Star, Assign, LBrace, RBrace, LBracket, RBracket:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// StartsDecl reports whether the token can open a top-level declaration.
// Resync points for parser error recovery.
func (t Token) StartsDecl() bool {
	switch t.Kind {
	case KwPackage, KwPart, KwRecord, KwView, KwBorrow, KwSplit:
		return true
	default:
		return false
	}
}
