package caps

// Binding — одна привязка части в записи. Field пусто для opaque-частей.
type Binding struct {
	Part  PartID
	Field string
}

// Record describes one Go struct: which parts it carries and in which
// fields. Binding order is declaration order; maximal views and entry
// expansion depend on it.
type Record struct {
	Name     string
	Bindings []Binding
	byPart   map[PartID]int // индекс в Bindings
}

// Binding returns the binding of part in this record.
func (r *Record) Binding(part PartID) (Binding, bool) {
	i, ok := r.byPart[part]
	if !ok {
		return Binding{}, false
	}
	return r.Bindings[i], true
}

// Has reports whether the record binds the part.
func (r *Record) Has(part PartID) bool {
	_, ok := r.byPart[part]
	return ok
}
