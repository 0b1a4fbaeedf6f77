package caps

// Selector — цепочка полей от корня записи до хранилища части: результат
// разрешения пути. Одна адресная операция, без ветвлений.
type Selector struct {
	// Fields — имена полей по цепочке: путь Motor.RPM над record Machine
	// даёт ["motor", "rpm"].
	Fields []string
	// Type — Go-тип конечного поля; пусто, если Addressable=false.
	Type string
	// Addressable=false для путей, оканчивающихся opaque-частью: права
	// учитываются, адреса нет, аксессоры не генерируются.
	Addressable bool
}

type ResolveReason uint8

const (
	// ResolveNotBound — часть не привязана записью на этом уровне.
	ResolveNotBound ResolveReason = iota
	// ResolveNotNestable — путь продолжается ниже части, которая не
	// типизирована записью (opaque или обычное поле).
	ResolveNotNestable
)

// ResolveError names the path atom that failed and why; sema maps it to
// a diagnostic with the atom's span.
type ResolveError struct {
	Index  int      // позиция атома в пути
	Part   PartID   // атом
	Record RecordID // запись, в которой его искали (ResolveNotBound)
	Reason ResolveReason
}

func (e *ResolveError) Error() string {
	switch e.Reason {
	case ResolveNotNestable:
		return "path continues through a non-record part"
	default:
		return "part is not bound by the record"
	}
}

// ResolveSelector разрешает путь части против записи. Каждый атом должен
// быть привязан записью текущего уровня; продолжение пути требует
// record-типизированной части.
func (reg *Registry) ResolveSelector(rec RecordID, path Path) (Selector, *ResolveError) {
	var sel Selector
	cur := rec
	for i, pid := range path {
		r := reg.record(cur)
		b, ok := r.Binding(pid)
		if !ok {
			return Selector{}, &ResolveError{Index: i, Part: pid, Record: cur, Reason: ResolveNotBound}
		}
		part := reg.part(pid)
		last := i == len(path)-1
		if part.Shape == ShapeOpaque {
			if !last {
				return Selector{}, &ResolveError{Index: i, Part: pid, Reason: ResolveNotNestable}
			}
			// терминальная opaque-часть: только учёт, адреса нет
			sel.Type = ""
			sel.Addressable = false
			return sel, nil
		}
		sel.Fields = append(sel.Fields, b.Field)
		if last {
			sel.Type = part.Type
			sel.Addressable = true
			return sel, nil
		}
		if !part.Nestable() {
			return Selector{}, &ResolveError{Index: i, Part: pid, Reason: ResolveNotNestable}
		}
		cur = part.Record
	}
	panic("caps: empty path")
}
