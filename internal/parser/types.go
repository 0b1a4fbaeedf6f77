package parser

import (
	"partref/internal/ast"
	"partref/internal/diag"
	"partref/internal/token"
)

// parseType распознаёт Go-тип поля:
//
//	*T, []T, [N]T, map[K]V
//	Ident и квалифицированный Ident.Ident
func (p *Parser) parseType() (*ast.TypeExpr, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Star:
		p.advance()
		elem, ok := p.parseType()
		if !ok {
			return nil, false
		}
		return &ast.TypeExpr{Kind: ast.TypePointer, Elem: elem, Span: tok.Span.Cover(elem.Span)}, true

	case token.LBracket:
		p.advance()
		if p.at(token.RBracket) {
			p.advance()
			elem, ok := p.parseType()
			if !ok {
				return nil, false
			}
			return &ast.TypeExpr{Kind: ast.TypeSlice, Elem: elem, Span: tok.Span.Cover(elem.Span)}, true
		}
		lenTok, ok := p.expect(token.IntLit, diag.SynBadArrayLen, "expected array length or ']'")
		if !ok {
			return nil, false
		}
		if _, ok := p.expectClosing(token.RBracket, diag.SynExpectRBracket, "expected ']' after array length", "]"); !ok {
			return nil, false
		}
		elem, ok := p.parseType()
		if !ok {
			return nil, false
		}
		return &ast.TypeExpr{Kind: ast.TypeArray, Len: lenTok.Text, Elem: elem, Span: tok.Span.Cover(elem.Span)}, true

	case token.KwMap:
		p.advance()
		if _, ok := p.expect(token.LBracket, diag.SynUnexpectedToken, "expected '[' after 'map'"); !ok {
			return nil, false
		}
		key, ok := p.parseType()
		if !ok {
			return nil, false
		}
		if _, ok := p.expectClosing(token.RBracket, diag.SynExpectRBracket, "expected ']' after map key type", "]"); !ok {
			return nil, false
		}
		elem, ok := p.parseType()
		if !ok {
			return nil, false
		}
		return &ast.TypeExpr{Kind: ast.TypeMap, Key: key, Elem: elem, Span: tok.Span.Cover(elem.Span)}, true

	case token.Ident:
		first, _ := p.parseIdent()
		name := first.Name
		sp := first.Span
		// селектор пакета: time.Duration
		if p.at(token.Dot) {
			p.advance()
			second, ok := p.parseIdent()
			if !ok {
				return nil, false
			}
			name += "." + second.Name
			sp = sp.Cover(second.Span)
		}
		return &ast.TypeExpr{Kind: ast.TypeName, Name: name, Span: sp}, true

	default:
		p.err(diag.SynExpectType, "expected type, got \""+tok.Text+"\"")
		return nil, false
	}
}
