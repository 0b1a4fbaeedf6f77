package gen

import (
	"sort"
	"unicode"
	"unicode/utf8"

	"partref/internal/caps"
)

// collectImports собирает квалификаторы типов всех привязанных полевых
// частей. Каждая такая часть достижима минимум из максимального вида
// своей записи, так что её тип обязательно печатается.
func (e *emitter) collectImports() {
	quals := make(map[string]bool)
	for _, rid := range e.mod.Records {
		for _, b := range e.reg.Record(rid).Bindings {
			p := e.reg.Part(b.Part)
			if p.Shape != caps.ShapeField {
				continue
			}
			for _, q := range typeQualifiers(p.Type) {
				quals[q] = true
			}
		}
	}
	for q := range quals {
		path, ok := e.opts.Imports[q]
		if !ok {
			path = q
		}
		// Для пути из манифеста реальное имя пакета не проверить, поэтому
		// алиас ставится всегда; голый квалификатор импортирует сам себя.
		spec := importSpec{path: path}
		if path != q {
			spec.alias = q
		}
		e.imports = append(e.imports, spec)
	}
	sort.Slice(e.imports, func(i, j int) bool { return e.imports[i].path < e.imports[j].path })
}

// typeQualifiers извлекает пакетные квалификаторы из текста Go-типа:
// map[string]*units.Torque даёт ["units"]. Грамматика типов допускает
// одну точку на имя, поэтому слово перед точкой всегда квалификатор.
func typeQualifiers(typ string) []string {
	var quals []string
	for i := 0; i < len(typ); {
		r, sz := utf8.DecodeRuneInString(typ[i:])
		if !isQualRune(r, true) {
			i += sz
			continue
		}
		j := i + sz
		for j < len(typ) {
			r2, sz2 := utf8.DecodeRuneInString(typ[j:])
			if !isQualRune(r2, false) {
				break
			}
			j += sz2
		}
		word := typ[i:j]
		i = j
		if j < len(typ) && typ[j] == '.' {
			quals = append(quals, word)
			i = j + 1
		}
	}
	return quals
}

func isQualRune(r rune, start bool) bool {
	if r == '_' || unicode.IsLetter(r) {
		return true
	}
	if start {
		return false
	}
	return unicode.IsDigit(r) || unicode.IsMark(r)
}
