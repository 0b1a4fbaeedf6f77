package sema

import (
	"strings"

	"partref/internal/ast"
	"partref/internal/caps"
	"partref/internal/diag"
	"partref/internal/source"
)

// Options configure a semantic pass over a file.
type Options struct {
	Reporter diag.Reporter
}

// Check строит реестр частей и записей, разрешает виды и проверяет
// переносы. Возвращаемый Module пригоден для генерации, только если
// не было ошибок; при ошибках он отражает успешно разобранную часть.
func Check(file *ast.File, opts Options) *Module {
	c := checker{
		file:     file,
		reporter: opts.Reporter,
		mod: &Module{
			Package:  file.Package.Name.Name,
			Registry: caps.NewRegistry(),
			Maximal:  make(map[caps.RecordID]MaximalViews),
		},
		partSpans:   make(map[caps.PartID]source.Span),
		partDecls:   make(map[caps.PartID]*ast.PartDecl),
		recordSpans: make(map[caps.RecordID]source.Span),
		recordDecls: make(map[caps.RecordID]*ast.RecordDecl),
		viewLookup:  make(map[string]*View),
		viewByKey:   make(map[caps.RecordID]map[string]*View),
		boundParts:  make(map[caps.PartID]bool),
	}
	c.run()
	return c.mod
}

type checker struct {
	file     *ast.File
	reporter diag.Reporter
	mod      *Module

	partSpans   map[caps.PartID]source.Span
	partDecls   map[caps.PartID]*ast.PartDecl
	recordSpans map[caps.RecordID]source.Span
	recordDecls map[caps.RecordID]*ast.RecordDecl

	// viewLookup разрешает имена в переносах: пользовательские и
	// максимальные виды. Синтетические остатки сюда не попадают.
	viewLookup map[string]*View

	// viewByKey дедуплицирует виды по каноническому ключу списка;
	// остаток с уже существующим списком переиспользует этот вид.
	viewByKey map[caps.RecordID]map[string]*View

	boundParts map[caps.PartID]bool
}

func (c *checker) run() {
	c.declareParts()
	c.declareRecords()
	c.resolvePartRecords()
	c.fillBindings()
	if !c.checkContainment() {
		// дальше виды напоролись бы на бесконечное разворачивание
		return
	}
	c.synthesizeMaximalViews()
	c.resolveViews()
	c.checkTransfers()
	c.synthesizeSplitRemainders()
	c.checkDerivedNames()
	c.warnUnusedParts()
}

func (c *checker) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if c.reporter != nil {
		c.reporter.Report(code, sev, sp, msg, nil, nil)
	}
}

func (c *checker) reportNoted(code diag.Code, sp source.Span, msg string, notes []diag.Note) {
	if c.reporter != nil {
		c.reporter.Report(code, diag.SevError, sp, msg, notes, nil)
	}
}

// declareParts — первый проход: имена частей. Record-ссылки частей
// разрешаются позже, когда все записи объявлены.
func (c *checker) declareParts() {
	seen := make(map[string]source.Span, len(c.file.Parts))
	for i := range c.file.Parts {
		decl := &c.file.Parts[i]
		name := decl.Name.Name
		if first, dup := seen[name]; dup {
			c.reportNoted(diag.SemaDuplicatePart, decl.Name.Span,
				"duplicate part "+name,
				[]diag.Note{{Span: first, Msg: "first declared here"}})
			continue
		}
		seen[name] = decl.Name.Span

		p := caps.Part{Name: name}
		switch decl.Kind {
		case ast.PartOpaque:
			p.Shape = caps.ShapeOpaque
		case ast.PartField:
			p.Shape = caps.ShapeField
			p.Type = decl.Type.String()
		case ast.PartRecord:
			p.Shape = caps.ShapeField
			p.Type = decl.Record.Name
		}
		id := c.mod.Registry.AddPart(p)
		c.partSpans[id] = decl.Name.Span
		c.partDecls[id] = decl
	}
}

func (c *checker) declareRecords() {
	seen := make(map[string]source.Span, len(c.file.Records))
	for i := range c.file.Records {
		decl := &c.file.Records[i]
		name := decl.Name.Name
		if first, dup := seen[name]; dup {
			c.reportNoted(diag.SemaDuplicateRecord, decl.Name.Span,
				"duplicate record "+name,
				[]diag.Note{{Span: first, Msg: "first declared here"}})
			continue
		}
		seen[name] = decl.Name.Span

		id := c.mod.Registry.AddRecord(name)
		c.mod.Records = append(c.mod.Records, id)
		c.recordSpans[id] = decl.Name.Span
		c.recordDecls[id] = decl
	}
}

// resolvePartRecords — поздняя привязка `part X: record M`: запись M
// может быть объявлена ниже части.
func (c *checker) resolvePartRecords() {
	for i := range c.file.Parts {
		decl := &c.file.Parts[i]
		if decl.Kind != ast.PartRecord {
			continue
		}
		pid, ok := c.mod.Registry.PartByName(decl.Name.Name)
		if !ok || c.partDecls[pid] != decl {
			continue // дубликат, уже отрепорчен
		}
		rid, ok := c.mod.Registry.RecordByName(decl.Record.Name)
		if !ok {
			c.report(diag.SemaUnknownRecord, diag.SevError, decl.Record.Span,
				"unknown record "+decl.Record.Name)
			continue
		}
		c.mod.Registry.SetPartRecord(pid, rid)
	}
}

// fillBindings проверяет тела записей и наполняет реестр.
func (c *checker) fillBindings() {
	for i := range c.file.Records {
		decl := &c.file.Records[i]
		rid, ok := c.mod.Registry.RecordByName(decl.Name.Name)
		if !ok || c.recordDecls[rid] != decl {
			continue // дубликат записи: тело первого уже обработано или будет
		}

		var bindings []caps.Binding
		seenPart := make(map[caps.PartID]source.Span, len(decl.Bindings))
		seenField := make(map[string]source.Span, len(decl.Bindings))
		for _, b := range decl.Bindings {
			pid, ok := c.mod.Registry.PartByName(b.Part.Name)
			if !ok {
				c.report(diag.SemaUnknownPart, diag.SevError, b.Part.Span,
					"unknown part "+b.Part.Name)
				continue
			}
			if first, dup := seenPart[pid]; dup {
				c.reportNoted(diag.SemaDuplicateBinding, b.Part.Span,
					"record "+decl.Name.Name+" already binds "+b.Part.Name,
					[]diag.Note{{Span: first, Msg: "first bound here"}})
				continue
			}
			seenPart[pid] = b.Part.Span

			part := c.mod.Registry.Part(pid)
			switch {
			case part.Shape == caps.ShapeOpaque && b.HasField:
				c.report(diag.SemaOpaqueBoundToField, diag.SevError, b.Field.Span,
					"opaque part "+b.Part.Name+" cannot bind a field")
				continue
			case part.Shape == caps.ShapeField && !b.HasField:
				c.report(diag.SemaFieldNeedsBinding, diag.SevError, b.Part.Span,
					"part "+b.Part.Name+" resolves to storage and needs 'from <field>'")
				continue
			}
			if b.HasField {
				if first, dup := seenField[b.Field.Name]; dup {
					c.reportNoted(diag.SemaFieldRebound, b.Field.Span,
						"field "+b.Field.Name+" is already bound",
						[]diag.Note{{Span: first, Msg: "first bound here"}})
					continue
				}
				seenField[b.Field.Name] = b.Field.Span
			}

			bindings = append(bindings, caps.Binding{Part: pid, Field: b.Field.Name})
			c.boundParts[pid] = true
		}
		c.mod.Registry.SetBindings(rid, bindings)
	}
}

// checkContainment отвергает циклическую вложенность записей.
func (c *checker) checkContainment() bool {
	cycle := c.mod.Registry.ContainmentCycle()
	if cycle == nil {
		return true
	}
	names := make([]string, 0, len(cycle)+1)
	for _, rid := range cycle {
		names = append(names, c.mod.Registry.Record(rid).Name)
	}
	names = append(names, names[0])
	c.report(diag.SemaRecordCycle, diag.SevError, c.recordSpans[cycle[0]],
		"record containment cycle: "+strings.Join(names, " -> "))
	return false
}

// warnUnusedParts — часть, не привязанная ни одной записью, бесполезна.
func (c *checker) warnUnusedParts() {
	for i := range c.file.Parts {
		decl := &c.file.Parts[i]
		pid, ok := c.mod.Registry.PartByName(decl.Name.Name)
		if !ok || c.partDecls[pid] != decl {
			continue
		}
		if !c.boundParts[pid] {
			c.report(diag.SemaPartUnused, diag.SevWarning, decl.Name.Span,
				"part "+decl.Name.Name+" is not bound by any record")
		}
	}
}
