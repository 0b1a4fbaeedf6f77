package parser

import (
	"golang.org/x/text/unicode/norm"

	"partref/internal/ast"
	"partref/internal/diag"
	"partref/internal/source"
	"partref/internal/token"
)

// advance — съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

// getDiagnosticSpan — возвращает лучший span для диагностики.
// На EOF с пустым span используем позицию сразу за lastSpan.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.lx.Peek()
	if peek.Kind == token.EOF && peek.Span.Empty() && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

// expect — ожидаем конкретный токен. Если нет — репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	diagSpan := p.getDiagnosticSpan()
	p.report(code, diag.SevError, diagSpan, msg)
	return token.Token{Kind: token.Invalid, Span: diagSpan, Text: p.lx.Peek().Text}, false
}

// err репортует ошибку на текущем span
func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	return p.reportWith(code, sev, sp, msg, nil, nil)
}

func (p *Parser) reportWith(code diag.Code, sev diag.Severity, sp source.Span, msg string, notes []diag.Note, fixes []diag.Fix) bool {
	if p.opts.Reporter == nil {
		return false
	}
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	if p.opts.Enough() {
		return false
	}
	p.opts.Reporter.Report(code, sev, sp, msg, notes, fixes)
	return true
}

// expectClosing — как expect, но для закрывающей скобки: к диагностике
// прикладывается fix со вставкой недостающего текста сразу за последним
// съеденным токеном.
func (p *Parser) expectClosing(k token.Kind, code diag.Code, msg, insert string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	diagSpan := p.getDiagnosticSpan()
	at := source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	fix := diag.Fix{
		Title: "insert '" + insert + "'",
		Edits: []diag.FixEdit{{Span: at, NewText: insert}},
	}
	p.reportWith(code, diag.SevError, diagSpan, msg, nil, []diag.Fix{fix})
	return token.Token{Kind: token.Invalid, Span: diagSpan, Text: p.lx.Peek().Text}, false
}

// parseIdent — ожидает Ident. Имя нормализуется в NFC, чтобы деклараци
// и использование, набранные в разных формах Unicode, совпадали; span
// остаётся на исходных байтах.
func (p *Parser) parseIdent() (ast.Ident, bool) {
	if p.at(token.Ident) {
		tok := p.advance()
		name := tok.Text
		if !norm.NFC.IsNormalString(name) {
			name = norm.NFC.String(name)
		}
		return ast.Ident{Name: name, Span: tok.Span}, true
	}
	p.err(diag.SynExpectIdentifier, "expected identifier, got \""+p.lx.Peek().Text+"\"")
	return ast.Ident{}, false
}
