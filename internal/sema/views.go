package sema

import (
	"partref/internal/ast"
	"partref/internal/caps"
	"partref/internal/diag"
	"partref/internal/source"
)

// synthesizeMaximalViews добавляет конвертационные виды каждой записи:
// RExcl (все биндинги, mut), RShared (все, shared), RRef (пустой список).
// Они существуют до пользовательских видов и участвуют в переносах.
func (c *checker) synthesizeMaximalViews() {
	reg := c.mod.Registry
	for _, rid := range c.mod.Records {
		name := reg.Record(rid).Name
		excl := &View{
			Name:      name + "Excl",
			Record:    rid,
			List:      reg.MaxList(rid, caps.ModeExclusive),
			Span:      c.recordSpans[rid],
			Synthetic: true,
		}
		shared := &View{
			Name:      name + "Shared",
			Record:    rid,
			List:      reg.MaxList(rid, caps.ModeShared),
			Span:      c.recordSpans[rid],
			Synthetic: true,
		}
		ref := &View{
			Name:      name + "Ref",
			Record:    rid,
			List:      nil,
			Span:      c.recordSpans[rid],
			Synthetic: true,
		}
		for _, v := range []*View{excl, shared, ref} {
			c.mod.Views = append(c.mod.Views, v)
			c.viewLookup[v.Name] = v
			c.addViewKeyed(v)
		}
		c.mod.Maximal[rid] = MaximalViews{Excl: excl, Shared: shared, Ref: ref}
	}
}

// resolveViews разрешает объявленные виды: пути по атомам, затем
// внутривидовые правила (дубликаты, пересечение эксклюзивов).
func (c *checker) resolveViews() {
	for i := range c.file.Views {
		decl := &c.file.Views[i]
		if prev, dup := c.viewLookup[decl.Name.Name]; dup {
			code := diag.SemaDuplicateView
			msg := "duplicate view " + decl.Name.Name
			if prev.Synthetic {
				code = diag.SemaNameCollision
				msg = "view " + decl.Name.Name + " collides with a generated conversion view"
			}
			c.reportNoted(code, decl.Name.Span, msg,
				[]diag.Note{{Span: prev.Span, Msg: "already taken here"}})
			continue
		}

		rid, ok := c.mod.Registry.RecordByName(decl.Record.Name)
		if !ok {
			c.report(diag.SemaUnknownRecord, diag.SevError, decl.Record.Span,
				"unknown record "+decl.Record.Name)
			continue
		}

		v := &View{
			Name:   decl.Name.Name,
			Record: rid,
			Span:   decl.Name.Span,
		}
		valid := true
		for ei := range decl.Entries {
			entry := &decl.Entries[ei]
			path, ok := c.resolveEntryPath(rid, entry)
			if !ok {
				valid = false
				continue
			}
			mode := caps.ModeShared
			if entry.Mut {
				mode = caps.ModeExclusive
			}
			v.List = append(v.List, caps.Entry{Path: path, Mode: mode})
			v.EntrySpans = append(v.EntrySpans, entry.Span)
		}
		if !valid {
			continue
		}
		if !c.checkIntraView(v) {
			continue
		}
		c.mod.Views = append(c.mod.Views, v)
		c.viewLookup[v.Name] = v
		c.addViewKeyed(v)
	}
}

// resolveEntryPath превращает атомы пути в caps.Path и валидирует его
// против записи вида.
func (c *checker) resolveEntryPath(rid caps.RecordID, entry *ast.ViewEntry) (caps.Path, bool) {
	reg := c.mod.Registry
	path := make(caps.Path, 0, len(entry.Path))
	for _, atom := range entry.Path {
		pid, ok := reg.PartByName(atom.Name)
		if !ok {
			c.report(diag.SemaUnknownPart, diag.SevError, atom.Span, "unknown part "+atom.Name)
			return nil, false
		}
		path = append(path, pid)
	}
	if _, rerr := reg.ResolveSelector(rid, path); rerr != nil {
		atom := entry.Path[rerr.Index]
		switch rerr.Reason {
		case caps.ResolveNotBound:
			c.report(diag.SemaPartNotInRecord, diag.SevError, atom.Span,
				"record "+reg.Record(rerr.Record).Name+" does not bind part "+atom.Name)
		case caps.ResolveNotNestable:
			c.report(diag.SemaNotNestable, diag.SevError, atom.Span,
				"part "+atom.Name+" is not record-typed and admits no nested parts")
		}
		return nil, false
	}
	return path, true
}

// checkIntraView — правила согласованности одного списка: без
// дубликатов путей, без префиксного пересечения, где хотя бы одна
// сторона эксклюзивна.
func (c *checker) checkIntraView(v *View) bool {
	ok := true
	for i := range v.List {
		for j := 0; j < i; j++ {
			a, b := v.List[j], v.List[i]
			switch {
			case a.Path.Equal(b.Path):
				c.reportNoted(diag.SemaDuplicateEntry, v.EntrySpans[i],
					"duplicate entry "+c.mod.Registry.FormatPath(b.Path),
					[]diag.Note{{Span: v.EntrySpans[j], Msg: "first listed here"}})
				ok = false
			case a.Path.HasPrefix(b.Path) || b.Path.HasPrefix(a.Path):
				if a.Mode == caps.ModeExclusive || b.Mode == caps.ModeExclusive {
					c.reportNoted(diag.SemaExclusiveOverlap, v.EntrySpans[i],
						"entries "+c.mod.Registry.FormatEntry(a)+" and "+
							c.mod.Registry.FormatEntry(b)+" overlap exclusively",
						[]diag.Note{{Span: v.EntrySpans[j], Msg: "overlapping entry here"}})
					ok = false
				}
			}
		}
	}
	return ok
}

// entrySpanFor находит span want-записи в виде (для нот диагностик).
func entrySpanFor(v *View, e caps.Entry) (source.Span, bool) {
	for i := range v.List {
		if v.List[i].Mode == e.Mode && v.List[i].Path.Equal(e.Path) {
			if i < len(v.EntrySpans) {
				return v.EntrySpans[i], true
			}
		}
	}
	return source.Span{}, false
}
