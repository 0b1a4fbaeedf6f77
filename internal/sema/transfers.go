package sema

import (
	"partref/internal/ast"
	"partref/internal/caps"
	"partref/internal/diag"
	"partref/internal/source"
)

func (c *checker) lookupTransferView(id ast.Ident) *View {
	if v, ok := c.viewLookup[id.Name]; ok {
		return v
	}
	c.report(diag.SemaUnknownView, diag.SevError, id.Span, "unknown view "+id.Name)
	return nil
}

// checkTransfers проверяет каждый объявленный перенос алгеброй и
// материализует его остаток.
func (c *checker) checkTransfers() {
	for i := range c.file.Transfers {
		decl := &c.file.Transfers[i]
		dst := c.lookupTransferView(decl.Dst)
		src := c.lookupTransferView(decl.Src)
		if src == nil || dst == nil {
			continue
		}
		if src.Record != dst.Record {
			c.reportNoted(diag.SemaViewRecordMismatch, decl.Span,
				"view "+dst.Name+" is over record "+c.mod.Registry.Record(dst.Record).Name+
					", view "+src.Name+" is over record "+c.mod.Registry.Record(src.Record).Name,
				[]diag.Note{
					{Span: dst.Span, Msg: "destination declared here"},
					{Span: src.Span, Msg: "source declared here"},
				})
			continue
		}

		rem, mm := caps.Narrow(c.mod.Registry, src.List, dst.List)
		if mm != nil {
			c.reportMismatch(decl, src, dst, mm)
			continue
		}
		c.mod.Transfers = append(c.mod.Transfers, Transfer{
			Kind:      decl.Kind,
			Dst:       dst,
			Src:       src,
			Remainder: c.remainderView(src.Record, rem, decl.Span),
			Span:      decl.Span,
		})
	}
}

// reportMismatch — единственный класс отказа алгебры: именует
// запрошенную запись и причину (часть отсутствует либо режим держателя
// слабее, с указанием блокирующей записи).
func (c *checker) reportMismatch(decl *ast.TransferDecl, src, dst *View, mm *caps.Mismatch) {
	reg := c.mod.Registry
	head := "cannot " + decl.Kind.String() + " " + dst.Name + " from " + src.Name + ": "

	var msg string
	switch mm.Kind {
	case caps.MismatchMissing:
		msg = head + src.Name + " holds no entry covering " + reg.FormatPath(mm.Want.Path)
	case caps.MismatchModeConflict:
		msg = head + reg.FormatEntry(mm.Want) + " requires exclusive access, but " +
			src.Name + " holds " + reg.FormatPath(mm.Held.Path) + " only as shared"
	}

	var notes []diag.Note
	if sp, ok := entrySpanFor(dst, mm.Want); ok {
		notes = append(notes, diag.Note{Span: sp, Msg: "requested here"})
	}
	notes = append(notes, diag.Note{Span: src.Span, Msg: "source view declared here"})
	c.reportNoted(diag.SemaCapabilityMismatch, decl.Span, msg, notes)
}

// synthesizeSplitRemainders замыкает множество видов по одношаговым
// расщеплениям: для каждой адресуемой записи каждого вида — остаток
// shared-изъятия и, для эксклюзивных, остаток эксклюзивного изъятия.
// Worklist: новые виды дорабатываются до неподвижной точки; изъятие
// строго уменьшает суммарные права, поэтому точка достигается.
func (c *checker) synthesizeSplitRemainders() {
	reg := c.mod.Registry
	for i := 0; i < len(c.mod.Views); i++ {
		v := c.mod.Views[i]
		v.Splits = make([]SplitRemainders, len(v.List))
		for ei, e := range v.List {
			sel, rerr := reg.ResolveSelector(v.Record, e.Path)
			if rerr != nil || !sel.Addressable {
				continue // opaque: нет адреса — нечего расщеплять
			}
			if rem, mm := caps.Narrow(reg, v.List, caps.List{{Path: e.Path, Mode: caps.ModeShared}}); mm == nil {
				v.Splits[ei].Shared = c.remainderView(v.Record, rem, v.Span)
			}
			if e.Mode != caps.ModeExclusive {
				continue
			}
			if rem, mm := caps.Narrow(reg, v.List, caps.List{{Path: e.Path, Mode: caps.ModeExclusive}}); mm == nil {
				v.Splits[ei].Excl = c.remainderView(v.Record, rem, v.Span)
			}
		}
	}
}

// remainderView возвращает вид с данным списком, создавая синтетический
// при необходимости. Виды с одинаковым списком дедуплицируются; пустой
// остаток сливается с RRef записи.
func (c *checker) remainderView(rid caps.RecordID, list caps.List, origin source.Span) *View {
	key := list.Key()
	if v, ok := c.viewByKey[rid][key]; ok {
		return v
	}
	v := &View{
		Name:      remainderViewName(c.mod.Registry, rid, list),
		Record:    rid,
		List:      list,
		Span:      origin,
		Synthetic: true,
	}
	c.addViewKeyed(v)
	c.mod.Views = append(c.mod.Views, v)
	return v
}

// addViewKeyed регистрирует вид в дедупликационной карте запись→ключ→вид.
func (c *checker) addViewKeyed(v *View) {
	byKey, ok := c.viewByKey[v.Record]
	if !ok {
		byKey = make(map[string]*View, 8)
		c.viewByKey[v.Record] = byKey
	}
	if _, taken := byKey[v.List.Key()]; !taken {
		byKey[v.List.Key()] = v
	}
}
