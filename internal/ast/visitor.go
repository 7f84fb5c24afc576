package ast

import "github.com/modelchk/go-utap/internal/types"

// SystemVisitor is the traversal contract between a system and the
// analyses run over it. Accept drives the hooks in declaration order;
// diagnostics are therefore emitted in declaration order too.
type SystemVisitor interface {
	// VisitTemplateBefore is called before a template's contents; a false
	// return skips the template.
	VisitTemplateBefore(*Template) bool
	VisitTemplateAfter(*Template)

	VisitVariable(*Variable)
	VisitHybridClock(*Variable)
	VisitFunction(*Function)
	VisitState(*State)
	VisitEdge(*Edge)
	VisitInstance(*Instance)
	VisitInstanceLine(*InstanceLine)
	VisitMessage(*Message)
	VisitCondition(*Condition)
	VisitUpdate(*Update)
	VisitProgressMeasure(*Progress)
	VisitGanttChart(*GanttChart)
	VisitIODecl(*IODecl)
	VisitProperty(*Query)

	// VisitSystemAfter runs once after every declaration has been visited.
	VisitSystemAfter(*System)
}

// Accept walks the system in declaration order: global variables and
// functions, then each template (variables, functions, states, edges, LSC
// elements), then instances, IO declarations, progress measures, gantt
// charts and queries.
func (s *System) Accept(v SystemVisitor) {
	for _, vr := range s.Variables {
		if vr.Sym != nil && vr.Sym.Type.Is(types.Hybrid) {
			v.VisitHybridClock(vr)
		} else {
			v.VisitVariable(vr)
		}
	}
	for _, f := range s.Functions {
		v.VisitFunction(f)
	}
	for _, t := range s.Templates {
		if !v.VisitTemplateBefore(t) {
			continue
		}
		for _, vr := range t.Variables {
			if vr.Sym != nil && vr.Sym.Type.Is(types.Hybrid) {
				v.VisitHybridClock(vr)
			} else {
				v.VisitVariable(vr)
			}
		}
		for _, f := range t.Functions {
			v.VisitFunction(f)
		}
		for _, st := range t.States {
			v.VisitState(st)
		}
		for _, e := range t.Edges {
			v.VisitEdge(e)
		}
		for _, il := range t.InstanceLines {
			v.VisitInstanceLine(il)
		}
		for _, m := range t.Messages {
			v.VisitMessage(m)
		}
		for _, c := range t.Conditions {
			v.VisitCondition(c)
		}
		for _, u := range t.Updates {
			v.VisitUpdate(u)
		}
		v.VisitTemplateAfter(t)
	}
	for _, in := range s.Instances {
		v.VisitInstance(in)
	}
	for _, io := range s.IODecls {
		v.VisitIODecl(io)
	}
	for _, p := range s.Progress {
		v.VisitProgressMeasure(p)
	}
	for _, g := range s.Gantts {
		v.VisitGanttChart(g)
	}
	for _, q := range s.Queries {
		v.VisitProperty(q)
	}
	v.VisitSystemAfter(s)
}
