package ast

import (
	"testing"

	"github.com/modelchk/go-utap/internal/types"
	"github.com/modelchk/go-utap/pkg/position"
)

func TestExpressionEquality(t *testing.T) {
	sym := &Symbol{Name: "x", Type: types.NewPrimitive(types.Clock)}
	a := NewBinary(LE, NewIdentifier(sym, position.None), NewConstant(3, position.None), position.None)
	b := NewBinary(LE, NewIdentifier(sym, position.None), NewConstant(3, position.None), position.None)
	c := NewBinary(LE, NewIdentifier(sym, position.None), NewConstant(4, position.None), position.None)

	if !a.Equal(b) {
		t.Error("structurally equal expressions should compare equal")
	}
	if a.Equal(c) {
		t.Error("different literals should not compare equal")
	}

	other := &Symbol{Name: "x", Type: types.NewPrimitive(types.Clock)}
	d := NewBinary(LE, NewIdentifier(other, position.None), NewConstant(3, position.None), position.None)
	if a.Equal(d) {
		t.Error("identifiers compare by symbol identity, not name")
	}
}

func TestFrameLookup(t *testing.T) {
	global := NewFrame(nil)
	inner := NewFrame(global)
	g := global.Declare("g", types.NewPrimitive(types.Int), nil)
	l := inner.Declare("l", types.NewPrimitive(types.Bool), nil)

	if inner.Resolve("g") != g {
		t.Error("lookup should chain to the parent frame")
	}
	if inner.Resolve("l") != l || global.Resolve("l") != nil {
		t.Error("local symbols must stay local")
	}
	if !inner.Contains(l) || inner.Contains(g) {
		t.Error("Contains is frame-local")
	}
}

func TestFrameShadowing(t *testing.T) {
	global := NewFrame(nil)
	outer := global.Declare("x", types.NewPrimitive(types.Int), nil)
	inner := NewFrame(global)
	shadow := inner.Declare("x", types.NewPrimitive(types.Clock), nil)

	if inner.Resolve("x") != shadow || global.Resolve("x") != outer {
		t.Error("inner declarations shadow outer ones")
	}
}

func TestBaseSymbols(t *testing.T) {
	x := &Symbol{Name: "x", Type: types.NewPrimitive(types.Int)}
	arr := &Symbol{Name: "a", Type: types.NewPrimitive(types.Int)}

	assign := NewBinary(Assign,
		NewBinary(ArrayIndex, NewIdentifier(arr, position.None), NewConstant(0, position.None), position.None),
		NewIdentifier(x, position.None), position.None)

	out := make(map[*Symbol]bool)
	assign.BaseSymbols(out)
	if !out[arr] || out[x] {
		t.Errorf("expected the array base only, got %v", out)
	}
}

func TestDynamicTemplateLookup(t *testing.T) {
	sys := NewSystem()
	d := &Template{Sym: &Symbol{Name: "D"}, Dynamic: true}
	p := &Template{Sym: &Symbol{Name: "P"}}
	sys.Templates = append(sys.Templates, d, p)

	if sys.GetDynamicTemplate("D") != d {
		t.Error("dynamic template should be found")
	}
	if sys.GetDynamicTemplate("P") != nil {
		t.Error("non-dynamic templates are invisible to GetDynamicTemplate")
	}
	if sys.FindTemplate("P") != p {
		t.Error("FindTemplate sees every template")
	}
}

func TestDiagnosticBuffers(t *testing.T) {
	sys := NewSystem()
	sys.AddError(position.Position{Start: 1, End: 2}, "$Type_error", "(typechecking)")
	sys.AddWarning(position.Position{Start: 3, End: 4}, "$Strict_invariant", "(typechecking)")

	if len(sys.Errors()) != 1 || len(sys.Warnings()) != 1 {
		t.Fatal("buffers not populated")
	}
	sys.ClearDiagnostics()
	if len(sys.Errors()) != 0 || len(sys.Warnings()) != 0 {
		t.Error("buffers not flushed")
	}
}

func TestAcceptOrder(t *testing.T) {
	sys := NewSystem()
	v := &Variable{Sym: sys.Global.Declare("v", types.NewPrimitive(types.Int), nil)}
	sys.Variables = append(sys.Variables, v)
	tmpl := &Template{Sym: &Symbol{Name: "T"}, Defined: true}
	st := &State{Sym: &Symbol{Name: "s", Type: types.NewPrimitive(types.Location)}}
	tmpl.States = append(tmpl.States, st)
	sys.Templates = append(sys.Templates, tmpl)
	sys.Queries = append(sys.Queries, &Query{})

	rec := &recordingVisitor{}
	sys.Accept(rec)

	want := []string{"variable", "template", "state", "template-after", "property", "system-after"}
	if len(rec.events) != len(want) {
		t.Fatalf("expected %v, got %v", want, rec.events)
	}
	for i := range want {
		if rec.events[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, rec.events)
		}
	}
}

type recordingVisitor struct {
	events []string
}

func (r *recordingVisitor) VisitTemplateBefore(*Template) bool {
	r.events = append(r.events, "template")
	return true
}
func (r *recordingVisitor) VisitTemplateAfter(*Template) {
	r.events = append(r.events, "template-after")
}
func (r *recordingVisitor) VisitVariable(*Variable) { r.events = append(r.events, "variable") }
func (r *recordingVisitor) VisitHybridClock(*Variable) {
	r.events = append(r.events, "hybrid")
}
func (r *recordingVisitor) VisitFunction(*Function) { r.events = append(r.events, "function") }
func (r *recordingVisitor) VisitState(*State)       { r.events = append(r.events, "state") }
func (r *recordingVisitor) VisitEdge(*Edge)         { r.events = append(r.events, "edge") }
func (r *recordingVisitor) VisitInstance(*Instance) { r.events = append(r.events, "instance") }
func (r *recordingVisitor) VisitInstanceLine(*InstanceLine) {
	r.events = append(r.events, "instance-line")
}
func (r *recordingVisitor) VisitMessage(*Message)     { r.events = append(r.events, "message") }
func (r *recordingVisitor) VisitCondition(*Condition) { r.events = append(r.events, "condition") }
func (r *recordingVisitor) VisitUpdate(*Update)       { r.events = append(r.events, "update") }
func (r *recordingVisitor) VisitProgressMeasure(*Progress) {
	r.events = append(r.events, "progress")
}
func (r *recordingVisitor) VisitGanttChart(*GanttChart) { r.events = append(r.events, "gantt") }
func (r *recordingVisitor) VisitIODecl(*IODecl)         { r.events = append(r.events, "iodecl") }
func (r *recordingVisitor) VisitProperty(*Query)        { r.events = append(r.events, "property") }
func (r *recordingVisitor) VisitSystemAfter(*System)    { r.events = append(r.events, "system-after") }
