package ast

import "partref/internal/source"

type TransferKind uint8

const (
	// TransferBorrow — `borrow Dst from Src`: источник продолжает жить,
	// эксклюзивные записи остатка понижаются до shared.
	TransferBorrow TransferKind = iota
	// TransferSplit — `split Dst from Src`: источник потребляется,
	// эксклюзивные записи уходят из остатка целиком.
	TransferSplit
)

func (k TransferKind) String() string {
	switch k {
	case TransferBorrow:
		return "borrow"
	case TransferSplit:
		return "split"
	default:
		return "unknown"
	}
}

// TransferDecl requests generated narrowing from view Src to view Dst.
type TransferDecl struct {
	Kind TransferKind
	Dst  Ident
	Src  Ident
	Span source.Span
}
