package sema

import (
	"strings"

	"partref/internal/ast"
	"partref/internal/caps"
	"partref/internal/diag"
	"partref/internal/source"
)

// Имена генерируемой поверхности. Генератор печатает ровно эти имена,
// а проход checkDerivedNames резервирует их заранее, чтобы коллизии
// всплывали здесь, а не как ошибка компиляции сгенерированного файла.

// MethodBase — стержень аксессора записи: атомы пути подряд,
// Motor.RPM даёт MotorRPM.
func MethodBase(reg *caps.Registry, p caps.Path) string {
	var sb strings.Builder
	for _, pid := range p {
		sb.WriteString(reg.Part(pid).Name)
	}
	return sb.String()
}

func ExclusiveCtor(record string) string { return "Exclusive" + record }
func SharedCtor(record string) string    { return "Shared" + record }
func RefCtor(record string) string       { return "Ref" + record }
func UncheckedCtor(view string) string   { return view + "Unchecked" }
func BorrowMethod(dst string) string     { return "Borrow" + dst }
func SplitMethod(dst string) string      { return "Split" + dst }

// remainderViewName — контентное имя синтетического остатка:
// <Record>View_<записи>, эксклюзивные с префиксом Mut.
func remainderViewName(reg *caps.Registry, rid caps.RecordID, list caps.List) string {
	var sb strings.Builder
	sb.WriteString(reg.Record(rid).Name)
	sb.WriteString("View")
	for _, e := range list {
		sb.WriteByte('_')
		if e.Mode == caps.ModeExclusive {
			sb.WriteString("Mut")
		}
		sb.WriteString(MethodBase(reg, e.Path))
	}
	return sb.String()
}

// checkDerivedNames проверяет, что генерируемые идентификаторы не
// сталкиваются: на уровне пакета и внутри набора методов каждого вида.
func (c *checker) checkDerivedNames() {
	reg := c.mod.Registry

	top := make(map[string]source.Span, len(c.mod.Views)*2)
	reserve := func(name, what string, sp source.Span) {
		if first, dup := top[name]; dup {
			c.reportNoted(diag.SemaNameCollision, sp,
				what+" "+name+" collides with another generated name",
				[]diag.Note{{Span: first, Msg: "also derived here"}})
			return
		}
		top[name] = sp
	}

	// Типы записей объявлены кодом пользователя в том же пакете,
	// поэтому резервируются первыми.
	for _, rid := range c.mod.Records {
		name := reg.Record(rid).Name
		sp := c.recordSpans[rid]
		reserve(name, "record type", sp)
		reserve(ExclusiveCtor(name), "constructor", sp)
		reserve(SharedCtor(name), "constructor", sp)
		reserve(RefCtor(name), "constructor", sp)
	}
	for _, v := range c.mod.Views {
		reserve(v.Name, "view type", v.Span)
		reserve(UncheckedCtor(v.Name), "constructor", v.Span)
	}

	for _, v := range c.mod.Views {
		methods := make(map[string]source.Span, len(v.List)*4+2)
		claim := func(name string, sp source.Span) {
			if first, dup := methods[name]; dup {
				c.reportNoted(diag.SemaNameCollision, sp,
					"method "+name+" of view "+v.Name+" collides with another generated name",
					[]diag.Note{{Span: first, Msg: "also derived here"}})
				return
			}
			methods[name] = sp
		}

		claim("Raw", v.Span)
		for i, e := range v.List {
			sel, rerr := reg.ResolveSelector(v.Record, e.Path)
			if rerr != nil || !sel.Addressable {
				continue // opaque: методов нет
			}
			sp := v.Span
			if i < len(v.EntrySpans) {
				sp = v.EntrySpans[i]
			}
			base := MethodBase(reg, e.Path)
			claim(base, sp)
			claim(SplitMethod(base), sp)
			if e.Mode == caps.ModeExclusive {
				claim(base+"Mut", sp)
				claim(SplitMethod(base+"Mut"), sp)
			}
		}
		for _, t := range c.mod.Transfers {
			if t.Src != v {
				continue
			}
			switch t.Kind {
			case ast.TransferBorrow:
				claim(BorrowMethod(t.Dst.Name), t.Span)
			case ast.TransferSplit:
				claim(SplitMethod(t.Dst.Name), t.Span)
			}
		}
	}
}
