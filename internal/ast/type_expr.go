package ast

import (
	"strings"

	"partref/internal/source"
)

type TypeExprKind uint8

const (
	TypeName TypeExprKind = iota // float64, time.Duration
	TypePointer
	TypeSlice
	TypeArray
	TypeMap
)

// TypeExpr — Go-тип поля ровно в том объёме, который нужен генератору:
// именованные типы (в т.ч. с квалификатором пакета), указатели, срезы,
// массивы и map.
type TypeExpr struct {
	Kind TypeExprKind
	Span source.Span
	Name string    // TypeName: "float64", "time.Duration"
	Len  string    // TypeArray: literal as written, "16" or "1_000"
	Key  *TypeExpr // TypeMap
	Elem *TypeExpr // pointer/slice/array target, map value
}

// String renders the type back as Go source. gen prints this verbatim
// into accessor signatures.
func (t *TypeExpr) String() string {
	var sb strings.Builder
	t.write(&sb)
	return sb.String()
}

func (t *TypeExpr) write(sb *strings.Builder) {
	switch t.Kind {
	case TypeName:
		sb.WriteString(t.Name)
	case TypePointer:
		sb.WriteByte('*')
		t.Elem.write(sb)
	case TypeSlice:
		sb.WriteString("[]")
		t.Elem.write(sb)
	case TypeArray:
		sb.WriteByte('[')
		sb.WriteString(t.Len)
		sb.WriteByte(']')
		t.Elem.write(sb)
	case TypeMap:
		sb.WriteString("map[")
		t.Key.write(sb)
		sb.WriteByte(']')
		t.Elem.write(sb)
	}
}
