package sema

import (
	"partref/internal/ast"
	"partref/internal/caps"
	"partref/internal/source"
)

// Module — семантический результат одного файла: реестр частей и записей,
// разрешённые виды, проверенные переносы. Вход генератора.
type Module struct {
	Package  string
	Registry *caps.Registry

	// Records — в порядке объявления; от него зависит порядок типов в
	// генерируемом файле.
	Records []caps.RecordID

	// Views — объявленные виды в порядке объявления, затем синтетические
	// виды-остатки, выведенные для split-переносов.
	Views []*View

	// Maximal — конвертационные виды каждой записи: все биндинги mut,
	// все shared, пустой список.
	Maximal map[caps.RecordID]MaximalViews

	Transfers []Transfer
}

// MaximalViews — тройка входных видов записи.
type MaximalViews struct {
	Excl   *View
	Shared *View
	Ref    *View
}

// View — разрешённый вид: именованный список прав над записью.
type View struct {
	Name   string
	Record caps.RecordID
	List   caps.List
	Span   source.Span

	// EntrySpans параллелен List; у синтетических видов пуст.
	EntrySpans []source.Span

	// Splits параллелен List: остатки одношаговых расщеплений каждой
	// записи, заранее разрешённые в виды. У opaque-записей обе ссылки
	// nil: изымать нечего, адреса нет.
	Splits []SplitRemainders

	// Synthetic — вид не объявлен пользователем, а выведен как остаток
	// split-переноса (или максимальный/пустой вид записи).
	Synthetic bool
}

// SplitRemainders — что остаётся от вида после изъятия одной записи.
type SplitRemainders struct {
	// Shared — остаток shared-изъятия: сама запись понижена, прочие
	// нетронуты.
	Shared *View
	// Excl — остаток эксклюзивного изъятия; nil, если запись shared.
	Excl *View
}

// Transfer — проверенный перенос: narrowing от Src к Dst.
type Transfer struct {
	Kind ast.TransferKind
	Dst  *View
	Src  *View
	// Remainder — точный остаток Narrow(Src.List, Dst.List); для split
	// материализуется в генерируемом коде отдельным видом.
	Remainder *View
	Span      source.Span
}

// ViewByName returns the named user view.
func (m *Module) ViewByName(name string) *View {
	for _, v := range m.Views {
		if !v.Synthetic && v.Name == name {
			return v
		}
	}
	return nil
}

// RecordViews returns the views over one record, declaration order,
// synthetic remainders last.
func (m *Module) RecordViews(rec caps.RecordID) []*View {
	var out []*View
	for _, v := range m.Views {
		if v.Record == rec {
			out = append(out, v)
		}
	}
	return out
}
