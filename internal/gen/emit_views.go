package gen

import (
	"fmt"

	"partref/internal/ast"
	"partref/internal/caps"
	"partref/internal/sema"
)

func (e *emitter) emitView(v *sema.View) {
	rec := e.reg.Record(v.Record).Name

	e.emitViewType(v, rec)
	e.emitCtor(v, rec)
	e.emitUnchecked(v, rec)
	e.emitRaw(v, rec)
	e.emitAccessors(v)
	e.emitSplits(v)
	e.emitTransfers(v)
}

func (e *emitter) emitViewType(v *sema.View, rec string) {
	maximal := e.mod.Maximal[v.Record]
	e.buf.WriteString("\n")
	switch v {
	case maximal.Excl:
		fmt.Fprintf(&e.buf, "// %s grants every part of %s exclusively.\n", v.Name, rec)
	case maximal.Shared:
		fmt.Fprintf(&e.buf, "// %s grants every part of %s shared.\n", v.Name, rec)
	case maximal.Ref:
		fmt.Fprintf(&e.buf, "// %s grants nothing; it is an address token for %s.\n", v.Name, rec)
	default:
		fmt.Fprintf(&e.buf, "// %s grants %s over %s.\n", v.Name, e.reg.FormatList(v.List), rec)
	}
	fmt.Fprintf(&e.buf, "type %s struct {\n\ttarget *%s\n}\n", v.Name, rec)
}

// emitCtor печатает конвертационный конструктор. Он есть только у
// максимальных видов: остальные рождаются переносами и расщеплениями.
func (e *emitter) emitCtor(v *sema.View, rec string) {
	maximal := e.mod.Maximal[v.Record]
	var name, doc string
	switch v {
	case maximal.Excl:
		name = sema.ExclusiveCtor(rec)
		doc = fmt.Sprintf("// %s grants exclusive access to every part of r.", name)
	case maximal.Shared:
		name = sema.SharedCtor(rec)
		doc = fmt.Sprintf("// %s grants shared access to every part of r.", name)
	case maximal.Ref:
		name = sema.RefCtor(rec)
		doc = fmt.Sprintf("// %s takes r's address and grants nothing.", name)
	default:
		return
	}
	fmt.Fprintf(&e.buf, "\n%s\nfunc %s(r *%s) %s {\n\treturn %s{target: r}\n}\n",
		doc, name, rec, v.Name, v.Name)
}

func (e *emitter) emitUnchecked(v *sema.View, rec string) {
	name := sema.UncheckedCtor(v.Name)
	fmt.Fprintf(&e.buf, "\n// %s reinterprets r as %s with no capability\n", name, v.Name)
	e.buf.WriteString("// accounting. The caller asserts that no other live handle of r\n")
	e.buf.WriteString("// exclusively overlaps the parts granted here.\n")
	fmt.Fprintf(&e.buf, "func %s(r *%s) %s {\n\treturn %s{target: r}\n}\n",
		name, rec, v.Name, v.Name)
}

func (e *emitter) emitRaw(v *sema.View, rec string) {
	fmt.Fprintf(&e.buf, "\nfunc (v %s) Raw() *%s {\n\treturn v.target\n}\n", v.Name, rec)
}

// selectorChain — адресное выражение записи: v.target.motor.rpm.
func (e *emitter) selectorChain(v *sema.View, entry caps.Entry) (string, string) {
	sel, rerr := e.reg.ResolveSelector(v.Record, entry.Path)
	if rerr != nil || !sel.Addressable {
		panic("gen: accessor over an unaddressable entry " + e.reg.FormatEntry(entry))
	}
	chain := "v.target"
	for _, f := range sel.Fields {
		chain += "." + f
	}
	return chain, sel.Type
}

func (e *emitter) emitAccessors(v *sema.View) {
	for i, entry := range v.List {
		if !e.addressable(v, i) {
			continue
		}
		chain, typ := e.selectorChain(v, entry)
		base := sema.MethodBase(e.reg, entry.Path)
		fmt.Fprintf(&e.buf, "\nfunc (v %s) %s() *%s {\n\treturn &%s\n}\n",
			v.Name, base, typ, chain)
		if entry.Mode == caps.ModeExclusive {
			fmt.Fprintf(&e.buf, "\nfunc (v %s) %sMut() *%s {\n\treturn &%s\n}\n",
				v.Name, base, typ, chain)
		}
	}
}

func (e *emitter) emitSplits(v *sema.View) {
	for i, entry := range v.List {
		if !e.addressable(v, i) {
			continue
		}
		chain, typ := e.selectorChain(v, entry)
		base := sema.MethodBase(e.reg, entry.Path)
		rem := v.Splits[i]
		fmt.Fprintf(&e.buf, "\nfunc (v %s) %s() (*%s, %s) {\n\treturn &%s, %s{target: v.target}\n}\n",
			v.Name, sema.SplitMethod(base), typ, rem.Shared.Name, chain, rem.Shared.Name)
		if entry.Mode == caps.ModeExclusive {
			fmt.Fprintf(&e.buf, "\nfunc (v %s) %s() (*%s, %s) {\n\treturn &%s, %s{target: v.target}\n}\n",
				v.Name, sema.SplitMethod(base+"Mut"), typ, rem.Excl.Name, chain, rem.Excl.Name)
		}
	}
}

func (e *emitter) emitTransfers(v *sema.View) {
	for _, t := range e.mod.Transfers {
		if t.Src != v {
			continue
		}
		switch t.Kind {
		case ast.TransferBorrow:
			fmt.Fprintf(&e.buf, "\nfunc (v %s) %s() %s {\n\treturn %s{target: v.target}\n}\n",
				v.Name, sema.BorrowMethod(t.Dst.Name), t.Dst.Name, t.Dst.Name)
		case ast.TransferSplit:
			fmt.Fprintf(&e.buf, "\nfunc (v %s) %s() (%s, %s) {\n\treturn %s{target: v.target}, %s{target: v.target}\n}\n",
				v.Name, sema.SplitMethod(t.Dst.Name), t.Dst.Name, t.Remainder.Name,
				t.Dst.Name, t.Remainder.Name)
		}
	}
}

// addressable — у записи есть хранилище и заранее разрешённые остатки.
func (e *emitter) addressable(v *sema.View, i int) bool {
	return i < len(v.Splits) && v.Splits[i].Shared != nil
}
