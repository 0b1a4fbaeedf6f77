package caps

import (
	"fmt"
	"strings"

	"fortio.org/safecast"
)

// Registry provides stable PartIDs and RecordIDs for one declaration file.
// Index 0 of both tables is a reserved invalid sentinel.
type Registry struct {
	parts       []Part
	records     []Record
	partIndex   map[string]PartID
	recordIndex map[string]RecordID
}

func NewRegistry() *Registry {
	reg := &Registry{
		partIndex:   make(map[string]PartID, 16),
		recordIndex: make(map[string]RecordID, 4),
	}
	reg.parts = append(reg.parts, Part{}) // 0 — invalid sentinel
	reg.records = append(reg.records, Record{})
	return reg
}

// AddPart регистрирует часть. Уникальность имени проверяет sema;
// дубликат здесь — нарушение внутреннего инварианта.
func (reg *Registry) AddPart(p Part) PartID {
	if _, ok := reg.partIndex[p.Name]; ok {
		panic("caps: duplicate part " + p.Name)
	}
	n, err := safecast.Conv[uint32](len(reg.parts))
	if err != nil {
		panic(fmt.Errorf("caps: part count overflow: %w", err))
	}
	id := PartID(n)
	reg.parts = append(reg.parts, p)
	reg.partIndex[p.Name] = id
	return id
}

// AddRecord регистрирует запись с пустым телом; биндинги заполняет
// SetBindings отдельным проходом, чтобы record-типизированные части
// могли ссылаться на записи, объявленные позже.
func (reg *Registry) AddRecord(name string) RecordID {
	if _, ok := reg.recordIndex[name]; ok {
		panic("caps: duplicate record " + name)
	}
	n, err := safecast.Conv[uint32](len(reg.records))
	if err != nil {
		panic(fmt.Errorf("caps: record count overflow: %w", err))
	}
	id := RecordID(n)
	reg.records = append(reg.records, Record{Name: name})
	reg.recordIndex[name] = id
	return id
}

// SetBindings fills the record body. Per-record uniqueness of parts is
// sema's check; the index map here assumes it.
func (reg *Registry) SetBindings(id RecordID, bindings []Binding) {
	rec := reg.record(id)
	rec.Bindings = bindings
	rec.byPart = make(map[PartID]int, len(bindings))
	for i, b := range bindings {
		rec.byPart[b.Part] = i
	}
}

// SetPartRecord late-binds the record type of a `part X: record M` part.
func (reg *Registry) SetPartRecord(id PartID, rec RecordID) {
	reg.part(id).Record = rec
}

func (reg *Registry) PartByName(name string) (PartID, bool) {
	id, ok := reg.partIndex[name]
	return id, ok
}

func (reg *Registry) RecordByName(name string) (RecordID, bool) {
	id, ok := reg.recordIndex[name]
	return id, ok
}

// Part returns the part for the given ID; panics on the invalid sentinel.
func (reg *Registry) Part(id PartID) *Part {
	return reg.part(id)
}

// Record returns the record for the given ID; panics on the invalid sentinel.
func (reg *Registry) Record(id RecordID) *Record {
	return reg.record(id)
}

func (reg *Registry) part(id PartID) *Part {
	if !id.IsValid() || int(id) >= len(reg.parts) {
		panic("caps: invalid PartID")
	}
	return &reg.parts[id]
}

func (reg *Registry) record(id RecordID) *Record {
	if !id.IsValid() || int(id) >= len(reg.records) {
		panic("caps: invalid RecordID")
	}
	return &reg.records[id]
}

// MaxList — максимальный список записи: по одной записи на биндинг,
// в порядке объявления, все в заданном режиме. Основа конвертаций
// ExclusiveR/SharedR.
func (reg *Registry) MaxList(rec RecordID, mode Mode) List {
	r := reg.record(rec)
	out := make(List, 0, len(r.Bindings))
	for _, b := range r.Bindings {
		out = append(out, Entry{Path: Path{b.Part}, Mode: mode})
	}
	return out
}

// recordAt — запись, типизирующая часть в конце пути. NoRecordID, если
// последняя часть не record-типизирована.
func (reg *Registry) recordAt(path Path) RecordID {
	return reg.part(path[len(path)-1]).Record
}

// FormatPath renders a path in surface syntax: "Motor.RPM".
func (reg *Registry) FormatPath(p Path) string {
	var sb strings.Builder
	for i, pid := range p {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(reg.part(pid).Name)
	}
	return sb.String()
}

// FormatEntry renders an entry in surface syntax: "mut Motor.RPM".
func (reg *Registry) FormatEntry(e Entry) string {
	if e.Mode == ModeExclusive {
		return "mut " + reg.FormatPath(e.Path)
	}
	return reg.FormatPath(e.Path)
}

// FormatList renders a list in surface syntax: "mut Weights, Colors".
func (reg *Registry) FormatList(l List) string {
	var sb strings.Builder
	for i, e := range l {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(reg.FormatEntry(e))
	}
	return sb.String()
}

// ContainmentCycle ищет цикл вложенности записей (запись содержит часть,
// типизированную самой собой, прямо или транзитивно). Возвращает записи
// цикла в порядке обхода, nil если вложенность ациклична.
func (reg *Registry) ContainmentCycle() []RecordID {
	const (
		white = 0
		grey  = 1
		black = 2
	)
	color := make([]uint8, len(reg.records))
	var stack []RecordID

	var visit func(id RecordID) []RecordID
	visit = func(id RecordID) []RecordID {
		color[id] = grey
		stack = append(stack, id)
		for _, b := range reg.records[id].Bindings {
			next := reg.part(b.Part).Record
			if !next.IsValid() {
				continue
			}
			switch color[next] {
			case grey:
				// цикл: вырезаем отрезок стека от next до вершины
				for i, rid := range stack {
					if rid == next {
						return append([]RecordID(nil), stack[i:]...)
					}
				}
			case white:
				if cycle := visit(next); cycle != nil {
					return cycle
				}
			}
		}
		stack = stack[:len(stack)-1]
		color[id] = black
		return nil
	}

	for i := 1; i < len(reg.records); i++ {
		id := RecordID(i)
		if color[id] == white {
			if cycle := visit(id); cycle != nil {
				return cycle
			}
		}
	}
	return nil
}
