package caps

type MismatchKind uint8

const (
	// MismatchMissing — ни одна запись держателя не покрывает запрошенный путь.
	MismatchMissing MismatchKind = iota
	// MismatchModeConflict — путь покрыт, но режим держателя слабее.
	MismatchModeConflict
)

func (k MismatchKind) String() string {
	switch k {
	case MismatchMissing:
		return "missing"
	case MismatchModeConflict:
		return "mode conflict"
	default:
		return "unknown"
	}
}

// Mismatch — первый неудовлетворимый want. Held заполнен только для
// MismatchModeConflict (блокирующая запись); для Missing его Path == nil.
type Mismatch struct {
	Kind MismatchKind
	Want Entry
	Held Entry
}

// Narrow plucks every wanted entry, in order, from a working copy of the
// held list and returns the exact remainder. On the first unsatisfiable
// entry it returns (nil, mismatch); there are no partial successes.
//
// Pluck rules, per wanted entry:
//   - exact path match: shared want leaves the entry downgraded to shared;
//     exclusive want removes an exclusive entry and conflicts with a
//     shared one.
//   - held strictly prefixes want: a shared holder satisfies shared wants
//     untouched (read-through) and conflicts with exclusive wants; an
//     exclusive holder is expanded one record level and the pluck retried.
//   - nothing matches or prefixes: the part is missing.
func Narrow(reg *Registry, held, want List) (List, *Mismatch) {
	rem := held.Clone()
	for _, w := range want {
		var mm *Mismatch
		rem, mm = pluck(reg, rem, w)
		if mm != nil {
			return nil, mm
		}
	}
	return rem, nil
}

// pluck забирает одну want-запись из списка. Владеет held (клон Narrow)
// и может менять его на месте.
func pluck(reg *Registry, held List, w Entry) (List, *Mismatch) {
	for i := range held {
		h := held[i]
		switch {
		case h.Path.Equal(w.Path):
			if w.Mode == ModeShared {
				// shared-заём блокирует записи через оригинал: остаток
				// держит запись пониженной
				held[i].Mode = ModeShared
				return held, nil
			}
			if h.Mode != ModeExclusive {
				return nil, &Mismatch{Kind: MismatchModeConflict, Want: w, Held: h}
			}
			return append(held[:i], held[i+1:]...), nil

		case w.Path.HasPrefix(h.Path):
			if h.Mode == ModeShared {
				if w.Mode == ModeShared {
					// чтение сквозь shared-контейнер ничего не забирает
					return held, nil
				}
				return nil, &Mismatch{Kind: MismatchModeConflict, Want: w, Held: h}
			}
			return pluck(reg, expandAt(reg, held, i), w)
		}
	}
	return nil, &Mismatch{Kind: MismatchMissing, Want: w}
}

// expandAt разворачивает эксклюзивную запись-контейнер held[i] на один
// уровень: по одной эксклюзивной записи на биндинг записи-типа, в порядке
// объявления, вложенной под путь контейнера.
func expandAt(reg *Registry, held List, i int) List {
	h := held[i]
	rec := reg.recordAt(h.Path)
	if !rec.IsValid() {
		panic("caps: expand through a non-record part " + reg.FormatPath(h.Path))
	}
	bindings := reg.record(rec).Bindings
	expanded := make(List, 0, len(held)+len(bindings)-1)
	expanded = append(expanded, held[:i]...)
	for _, b := range bindings {
		expanded = append(expanded, Entry{Path: h.Path.Child(b.Part), Mode: ModeExclusive})
	}
	return append(expanded, held[i+1:]...)
}
