package gen

import (
	"fmt"
	"strings"

	"partref/internal/caps"
	"partref/internal/sema"
)

// Options настраивают один прогон генератора.
type Options struct {
	// Imports разрешает квалификаторы типов частей (time в time.Duration)
	// в пути импортов. Квалификатор без записи импортируется как путь,
	// равный самому квалификатору: случай stdlib.
	Imports map[string]string
}

type importSpec struct {
	alias string // пуст, когда базовое имя пути совпадает с квалификатором
	path  string
}

type emitter struct {
	mod     *sema.Module
	reg     *caps.Registry
	opts    Options
	buf     strings.Builder
	imports []importSpec
}

// EmitFile печатает Go-файл по проверенному модулю. Вход валиден по
// построению (sema не отдаёт Module с ошибками генерации), поэтому
// ошибок нет, а внутренние нарушения паникуют.
func EmitFile(mod *sema.Module, opts Options) []byte {
	e := &emitter{mod: mod, reg: mod.Registry, opts: opts}
	e.collectImports()
	e.emitHeader()
	for _, rid := range mod.Records {
		e.emitRecord(rid)
	}
	return []byte(e.buf.String())
}

func (e *emitter) emitHeader() {
	e.buf.WriteString("// Code generated by partref. DO NOT EDIT.\n")
	e.buf.WriteString("//\n")
	e.buf.WriteString("// Accessors without a Mut suffix are read contracts: do not write\n")
	e.buf.WriteString("// through the pointers they return.\n")
	e.buf.WriteString("\npackage " + e.mod.Package + "\n")
	if len(e.imports) == 0 {
		return
	}
	e.buf.WriteString("\nimport (\n")
	for _, im := range e.imports {
		if im.alias != "" {
			fmt.Fprintf(&e.buf, "\t%s %q\n", im.alias, im.path)
		} else {
			fmt.Fprintf(&e.buf, "\t%q\n", im.path)
		}
	}
	e.buf.WriteString(")\n")
}

// emitRecord печатает все виды одной записи: объявленные пользователем,
// затем конвертационные, затем синтетические остатки.
func (e *emitter) emitRecord(rid caps.RecordID) {
	maximal := e.mod.Maximal[rid]
	var user, remainders []*sema.View
	for _, v := range e.mod.RecordViews(rid) {
		switch {
		case !v.Synthetic:
			user = append(user, v)
		case v == maximal.Excl || v == maximal.Shared || v == maximal.Ref:
			// печатаются между пользовательскими и остатками
		default:
			remainders = append(remainders, v)
		}
	}

	for _, v := range user {
		e.emitView(v)
	}
	e.emitView(maximal.Excl)
	e.emitView(maximal.Shared)
	e.emitView(maximal.Ref)
	for _, v := range remainders {
		e.emitView(v)
	}
}
