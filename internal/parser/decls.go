package parser

import (
	"partref/internal/ast"
	"partref/internal/diag"
	"partref/internal/token"
)

// parsePackageDecl: `package name`. Должна идти первой и ровно один раз.
func (p *Parser) parsePackageDecl() bool {
	kw := p.advance()
	name, ok := p.parseIdent()
	if !ok {
		return false
	}
	sp := kw.Span.Cover(name.Span)
	if p.sawPackage {
		p.report(diag.SynDuplicatePackage, diag.SevError, sp, "duplicate package declaration")
		return true
	}
	if p.sawDecl {
		p.report(diag.SynPackageFirst, diag.SevError, sp, "'package' must be the first declaration")
	}
	p.file.Package = ast.PackageDecl{Name: name, Span: sp}
	p.sawPackage = true
	return true
}

// parsePartDecl: `part Name`, `part Name: <go-type>`, `part Name: record M`.
func (p *Parser) parsePartDecl() bool {
	kw := p.advance()
	p.sawDecl = true
	name, ok := p.parseIdent()
	if !ok {
		return false
	}
	decl := ast.PartDecl{Name: name, Kind: ast.PartOpaque, Span: kw.Span.Cover(name.Span)}
	if p.at(token.Colon) {
		p.advance()
		if p.at(token.KwRecord) {
			p.advance()
			rec, ok := p.parseIdent()
			if !ok {
				return false
			}
			decl.Kind = ast.PartRecord
			decl.Record = rec
			decl.Span = kw.Span.Cover(rec.Span)
		} else {
			ty, ok := p.parseType()
			if !ok {
				return false
			}
			decl.Kind = ast.PartField
			decl.Type = ty
			decl.Span = kw.Span.Cover(ty.Span)
		}
	}
	p.file.Parts = append(p.file.Parts, decl)
	return true
}

// parseRecordDecl: `record Name { binding* }`. Биндинги не разделяются
// запятыми: `Part from field` либо `Part`.
func (p *Parser) parseRecordDecl() bool {
	kw := p.advance()
	p.sawDecl = true
	name, ok := p.parseIdent()
	if !ok {
		return false
	}
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after record name"); !ok {
		return false
	}
	decl := ast.RecordDecl{Name: name}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if !p.at(token.Ident) {
			p.err(diag.SynExpectBindingName, "expected part name or '}' in record body, got \""+p.lx.Peek().Text+"\"")
			return false
		}
		part, _ := p.parseIdent()
		b := ast.RecordBinding{Part: part, Span: part.Span}
		if p.at(token.KwFrom) {
			p.advance()
			field, ok := p.parseIdent()
			if !ok {
				return false
			}
			b.Field = field
			b.HasField = true
			b.Span = part.Span.Cover(field.Span)
		}
		decl.Bindings = append(decl.Bindings, b)
	}
	rb, ok := p.expect(token.RBrace, diag.SynUnexpectedToken, "expected '}' to close record body")
	if !ok {
		return false
	}
	decl.Span = kw.Span.Cover(rb.Span)
	p.file.Records = append(p.file.Records, decl)
	return true
}

// parseViewDecl: `view Name of Record = entry ("," entry)*`.
// Пустое тело — ошибка; пустые списки существуют как генерируемые <R>Ref.
func (p *Parser) parseViewDecl() bool {
	kw := p.advance()
	p.sawDecl = true
	name, ok := p.parseIdent()
	if !ok {
		return false
	}
	if _, ok := p.expect(token.KwOf, diag.SynUnexpectedToken, "expected 'of' after view name"); !ok {
		return false
	}
	rec, ok := p.parseIdent()
	if !ok {
		return false
	}
	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' after record name"); !ok {
		return false
	}
	decl := ast.ViewDecl{Name: name, Record: rec}
	for {
		entry, ok := p.parseViewEntry()
		if !ok {
			return false
		}
		decl.Entries = append(decl.Entries, entry)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	decl.Span = kw.Span.Cover(p.lastSpan)
	p.file.Views = append(p.file.Views, decl)
	return true
}

// parseViewEntry: `mut? Ident ("." Ident)*`.
func (p *Parser) parseViewEntry() (ast.ViewEntry, bool) {
	var e ast.ViewEntry
	if p.at(token.KwMut) {
		mutTok := p.advance()
		e.Mut = true
		e.MutSpan = mutTok.Span
	}
	if !p.at(token.Ident) {
		p.err(diag.SynExpectViewEntry, "expected part path, got \""+p.lx.Peek().Text+"\"")
		return e, false
	}
	first, _ := p.parseIdent()
	e.Path = append(e.Path, first)
	for p.at(token.Dot) {
		p.advance()
		atom, ok := p.parseIdent()
		if !ok {
			return e, false
		}
		e.Path = append(e.Path, atom)
	}
	start := e.Path[0].Span
	if e.Mut {
		start = e.MutSpan
	}
	e.Span = start.Cover(e.Path[len(e.Path)-1].Span)
	return e, true
}

// parseTransferDecl: `borrow Dst from Src` / `split Dst from Src`.
func (p *Parser) parseTransferDecl(kind ast.TransferKind) bool {
	kw := p.advance()
	p.sawDecl = true
	dst, ok := p.parseIdent()
	if !ok {
		return false
	}
	if _, ok := p.expect(token.KwFrom, diag.SynUnexpectedToken, "expected 'from' after view name"); !ok {
		return false
	}
	src, ok := p.parseIdent()
	if !ok {
		return false
	}
	p.file.Transfers = append(p.file.Transfers, ast.TransferDecl{
		Kind: kind, Dst: dst, Src: src, Span: kw.Span.Cover(src.Span),
	})
	return true
}
