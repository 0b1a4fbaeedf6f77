package ast

import "partref/internal/source"

type PartDeclKind uint8

const (
	// PartOpaque — `part Name`: участвует в списках, но не имеет поля.
	PartOpaque PartDeclKind = iota
	// PartField — `part Name: <go-type>`: привязывается к полю записи.
	PartField
	// PartRecord — `part Name: record M`: поле с типом другой записи,
	// допускает вложенные пути в видах.
	PartRecord
)

func (k PartDeclKind) String() string {
	switch k {
	case PartOpaque:
		return "opaque"
	case PartField:
		return "field"
	case PartRecord:
		return "record"
	default:
		return "unknown"
	}
}

type PartDecl struct {
	Name   Ident
	Kind   PartDeclKind
	Type   *TypeExpr // только PartField
	Record Ident     // только PartRecord
	Span   source.Span
}
