package ast

import "partref/internal/source"

// RecordDecl binds parts to the fields of one Go struct. Binding order
// is the field order of the generated maximal views.
type RecordDecl struct {
	Name     Ident
	Bindings []RecordBinding
	Span     source.Span
}

// RecordBinding — одна строка тела записи: `Part from field` либо
// просто `Part` для opaque-частей.
type RecordBinding struct {
	Part     Ident
	Field    Ident // zero when HasField is false
	HasField bool
	Span     source.Span
}
