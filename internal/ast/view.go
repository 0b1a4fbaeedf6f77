package ast

import "partref/internal/source"

// ViewDecl declares a named capability list over a record:
// `view V of R = mut A, B, mut C.D`.
type ViewDecl struct {
	Name    Ident
	Record  Ident
	Entries []ViewEntry
	Span    source.Span
}

// ViewEntry is one comma-separated element of a view body. Path has at
// least one atom; dotted paths descend through record-typed parts.
type ViewEntry struct {
	Mut     bool
	MutSpan source.Span // zero unless Mut
	Path    []Ident
	Span    source.Span
}

// PathString joins the path atoms with dots, for diagnostics.
func (e *ViewEntry) PathString() string {
	s := e.Path[0].Name
	for _, id := range e.Path[1:] {
		s += "." + id.Name
	}
	return s
}
