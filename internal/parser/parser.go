package parser

import (
	"partref/internal/ast"
	"partref/internal/diag"
	"partref/internal/lexer"
	"partref/internal/source"
	"partref/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough — достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File *ast.File
	Bag  *diag.Bag
}

// Parser — состояние парсера на один файл
type Parser struct {
	lx         *lexer.Lexer
	fs         *source.FileSet
	file       *ast.File
	opts       Options
	lastSpan   source.Span // span последнего съеденного токена для лучшей диагностики
	sawPackage bool
	sawDecl    bool
}

// ParseFile — входная точка для разбора одного файла.
// Требует уже созданный lexer (на основе source.File).
func ParseFile(fs *source.FileSet, lx *lexer.Lexer, opts Options) Result {
	p := Parser{
		lx:       lx,
		fs:       fs,
		file:     &ast.File{},
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}

	p.parseDecls()

	var bag *diag.Bag
	if br, ok := opts.Reporter.(diag.BagReporter); ok {
		bag = br.Bag
	}
	return Result{File: p.file, Bag: bag}
}

// parseDecls — основной цикл верхнего уровня: пока не EOF — parseDecl.
func (p *Parser) parseDecls() {
	startSpan := p.lx.Peek().Span
	for !p.at(token.EOF) {
		if !p.parseDecl() {
			p.resyncTop()
		}
	}
	if !p.sawPackage {
		p.report(diag.SynPackageFirst, diag.SevError, startSpan, "declaration file must start with 'package'")
	}
	p.file.Span = startSpan.Cover(p.lx.Peek().Span)
}

// parseDecl выбирает по первому токену нужный распознаватель декларации.
func (p *Parser) parseDecl() bool {
	switch p.lx.Peek().Kind {
	case token.KwPackage:
		return p.parsePackageDecl()
	case token.KwPart:
		return p.parsePartDecl()
	case token.KwRecord:
		return p.parseRecordDecl()
	case token.KwView:
		return p.parseViewDecl()
	case token.KwBorrow:
		return p.parseTransferDecl(ast.TransferBorrow)
	case token.KwSplit:
		return p.parseTransferDecl(ast.TransferSplit)
	default:
		p.err(diag.SynExpectDecl, "expected declaration, got \""+p.lx.Peek().Text+"\"")
		return false
	}
}

// resyncTop — восстановление после ошибки на верхнем уровне:
// прокручиваем до стартового токена следующей декларации или EOF.
// Каждый распознаватель съедает своё ключевое слово до первой возможной
// ошибки, так что прогресс гарантирован.
func (p *Parser) resyncTop() {
	p.resyncUntil()
}

// resyncUntil прокручивает до декларационного стартера, EOF или любого
// из дополнительных стоп-токенов.
func (p *Parser) resyncUntil(stop ...token.Kind) {
	for {
		peek := p.lx.Peek()
		if peek.Kind == token.EOF || peek.StartsDecl() {
			return
		}
		k := peek.Kind
		for _, s := range stop {
			if k == s {
				return
			}
		}
		p.advance()
	}
}
