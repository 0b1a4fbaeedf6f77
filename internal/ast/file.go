package ast

import "partref/internal/source"

// File — разобранный .pref файл. Внутри каждой категории декларации
// хранятся в порядке объявления; порядок полей записи важен для sema.
type File struct {
	Span      source.Span
	Package   PackageDecl
	Parts     []PartDecl
	Records   []RecordDecl
	Views     []ViewDecl
	Transfers []TransferDecl
}

// PackageDecl names the Go package generated code belongs to.
type PackageDecl struct {
	Name Ident
	Span source.Span
}

// Ident is a resolved identifier occurrence. Name is NFC-normalized;
// Span still points at the raw source bytes.
type Ident struct {
	Name string
	Span source.Span
}

func (id Ident) IsValid() bool { return id.Name != "" }
