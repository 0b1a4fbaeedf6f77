package caps

import "testing"

func TestResolveFlatField(t *testing.T) {
	w := buildGraphWorld()

	sel, err := w.reg.ResolveSelector(w.graph, Path{w.weights})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sel.Addressable || sel.Type != "[]float64" {
		t.Errorf("selector: %+v", sel)
	}
	if len(sel.Fields) != 1 || sel.Fields[0] != "weights" {
		t.Errorf("fields: %v", sel.Fields)
	}
}

func TestResolveNestedChain(t *testing.T) {
	w := buildMachineWorld()

	sel, err := w.reg.ResolveSelector(w.machine, Path{w.motor, w.rpm})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sel.Type != "float64" || !sel.Addressable {
		t.Errorf("selector: %+v", sel)
	}
	if len(sel.Fields) != 2 || sel.Fields[0] != "motor" || sel.Fields[1] != "rpm" {
		t.Errorf("fields: %v", sel.Fields)
	}
}

func TestResolveRecordTypedTerminal(t *testing.T) {
	w := buildMachineWorld()

	sel, err := w.reg.ResolveSelector(w.machine, Path{w.motor})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sel.Type != "MotorParts" || !sel.Addressable {
		t.Errorf("selector: %+v", sel)
	}
}

func TestResolveOpaqueTerminal(t *testing.T) {
	w := buildGraphWorld()

	sel, err := w.reg.ResolveSelector(w.graph, Path{w.stats})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sel.Addressable || sel.Type != "" {
		t.Errorf("opaque terminal must not be addressable: %+v", sel)
	}
}

func TestResolveNotBound(t *testing.T) {
	w := buildMachineWorld()

	// RPM привязан в MotorParts, не в Machine
	_, err := w.reg.ResolveSelector(w.machine, Path{w.rpm})
	if err == nil || err.Reason != ResolveNotBound {
		t.Fatalf("expected not-bound, got %+v", err)
	}
	if err.Index != 0 || err.Part != w.rpm || err.Record != w.machine {
		t.Errorf("error details: %+v", err)
	}
}

func TestResolveNotBoundDeep(t *testing.T) {
	w := buildMachineWorld()

	_, err := w.reg.ResolveSelector(w.machine, Path{w.motor, w.label})
	if err == nil || err.Reason != ResolveNotBound {
		t.Fatalf("expected not-bound, got %+v", err)
	}
	if err.Index != 1 || err.Record != w.motorParts {
		t.Errorf("error details: %+v", err)
	}
}

func TestResolveThroughPlainField(t *testing.T) {
	w := buildMachineWorld()

	_, err := w.reg.ResolveSelector(w.machine, Path{w.label, w.rpm})
	if err == nil || err.Reason != ResolveNotNestable {
		t.Fatalf("expected not-nestable, got %+v", err)
	}
	if err.Index != 0 || err.Part != w.label {
		t.Errorf("error details: %+v", err)
	}
}

func TestResolveThroughOpaque(t *testing.T) {
	w := buildGraphWorld()

	_, err := w.reg.ResolveSelector(w.graph, Path{w.stats, w.weights})
	if err == nil || err.Reason != ResolveNotNestable {
		t.Fatalf("expected not-nestable, got %+v", err)
	}
}
