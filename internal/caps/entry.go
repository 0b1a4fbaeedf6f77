package caps

import (
	"strconv"
	"strings"
)

// Path — путь части: внешняя часть, затем спуск по record-типизированным
// частям. Никогда не пустой.
type Path []PartID

func (p Path) Equal(q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether p starts with q. A path is its own prefix.
func (p Path) HasPrefix(q Path) bool {
	if len(q) > len(p) {
		return false
	}
	for i := range q {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

func (p Path) Clone() Path {
	return append(Path(nil), p...)
}

// Child returns p extended by one part.
func (p Path) Child(part PartID) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = part
	return out
}

// Entry — одна запись списка прав: путь плюс режим.
type Entry struct {
	Path Path
	Mode Mode
}

func (e Entry) Clone() Entry {
	return Entry{Path: e.Path.Clone(), Mode: e.Mode}
}

// List — упорядоченная последовательность записей. Порядок семантически
// не важен для безопасности, но детерминирован (порядок объявления):
// от него зависят генерируемые артефакты.
type List []Entry

func (l List) Clone() List {
	out := make(List, len(l))
	for i, e := range l {
		out[i] = e.Clone()
	}
	return out
}

func (l List) Equal(m List) bool {
	if len(l) != len(m) {
		return false
	}
	for i := range l {
		if l[i].Mode != m[i].Mode || !l[i].Path.Equal(m[i].Path) {
			return false
		}
	}
	return true
}

// Key — канонический ключ списка для дедупликации типов остатков.
// Не предназначен для людей; для диагностик см. Registry.FormatList.
func (l List) Key() string {
	var sb strings.Builder
	for i, e := range l {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if e.Mode == ModeExclusive {
			sb.WriteByte('!')
		}
		for j, pid := range e.Path {
			if j > 0 {
				sb.WriteByte('.')
			}
			sb.WriteString(strconv.FormatUint(uint64(pid), 10))
		}
	}
	return sb.String()
}
