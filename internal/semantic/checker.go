// Package semantic implements the type checker for timed-automata
// systems: well-formedness of declared types, type annotation of every
// expression, the guard/invariant/constraint/formula discipline,
// side-effect rules, clock-rate decomposition of invariants and property
// validation. Diagnostics accumulate on the system; the checker never
// aborts.
package semantic

import (
	"github.com/modelchk/go-utap/internal/ast"
	"github.com/modelchk/go-utap/internal/config"
	"github.com/modelchk/go-utap/internal/types"
	"github.com/modelchk/go-utap/pkg/position"
)

// TypeChecker runs over one system via the SystemVisitor contract. A
// checker instance is one-shot: build it, accept it, read the system's
// diagnostics.
type TypeChecker struct {
	system *ast.System
	opts   *config.Options

	// constants is the compile-time computable symbol set.
	constants map[*ast.Symbol]bool

	// function and template track the declaration currently being
	// checked; dynamic constructs test them.
	function *ast.Function
	template *ast.Template

	currentPos position.Position

	ioUsed  bool
	cspUsed bool
}

// New builds a checker for the system and collects the compile-time
// computable values up front.
func New(system *ast.System, opts *config.Options) *TypeChecker {
	if opts == nil {
		opts = config.Default()
	}
	tc := &TypeChecker{system: system, opts: opts}
	tc.collectCompileTimeComputableValues()
	return tc
}

// CheckSystem runs the checker over the system and reports whether no
// errors were emitted. Warnings do not affect the result.
func CheckSystem(system *ast.System, opts *config.Options) bool {
	system.Accept(New(system, opts))
	return len(system.Errors()) == 0
}

// ============================================================================
// Variables
// ============================================================================

// VisitVariable checks a declared variable and normalises its
// initialiser.
func (tc *TypeChecker) VisitVariable(v *ast.Variable) {
	tc.currentPos = v.Position
	if v.Sym == nil {
		return
	}
	if !tc.checkType(v.Sym.Type, false, false) {
		return
	}
	if v.Init == nil {
		if v.Sym.Type.IsConstant() {
			tc.handleError(v.Position, MsgConstantsNeedInit)
		}
		return
	}
	if !tc.checkExpression(v.Init) {
		return
	}
	if containsDynamic(v.Init) {
		tc.handleError(v.Init.Position, MsgDynamicOnlyOnEdges)
		return
	}
	if !isSideEffectFree(v.Init) {
		tc.handleError(v.Init.Position, MsgInitSideEffect)
		return
	}
	if !tc.isCompileTimeComputable(v.Init) {
		tc.handleError(v.Init.Position, MsgNotComputable)
		return
	}
	tc.checkInitialiser(v.Sym.Type, v.Init)
}

// VisitHybridClock checks a hybrid clock declaration; the hybrid prefix
// rules live in checkType.
func (tc *TypeChecker) VisitHybridClock(v *ast.Variable) {
	tc.currentPos = v.Position
	if v.Sym != nil {
		tc.checkType(v.Sym.Type, false, false)
	}
}

// ============================================================================
// Functions
// ============================================================================

// VisitFunction checks a function declaration: parameter and return
// types, the body, the all-paths-return rule, and the external
// read/write sets used by the side-effect analyses.
func (tc *TypeChecker) VisitFunction(f *ast.Function) {
	tc.currentPos = f.Position
	if f.Sym == nil || !f.Sym.Type.IsFunction() {
		return
	}
	ret := f.Sym.Type.ReturnType()
	if !validReturnType(ret) {
		tc.handleError(f.Position, MsgInvalidReturnType)
	}
	for _, p := range f.Sym.Type.Parameters() {
		tc.checkType(p.Type, false, false)
	}

	tc.function = f
	if f.Body != nil {
		tc.checkBlock(f.Body)
		if !ret.IsVoid() && !returnsOnAllPaths(f.Body) {
			tc.handleError(f.Position, MsgReturnStmtExpected)
		}
	}
	tc.function = nil

	tc.computeChangesAndDepends(f)
}

// computeChangesAndDepends collects the body's possible writes and reads
// and subtracts everything local to the function: its parameters and
// every symbol declared in a nested frame.
func (tc *TypeChecker) computeChangesAndDepends(f *ast.Function) {
	writes := make(map[*ast.Symbol]bool)
	reads := make(map[*ast.Symbol]bool)
	locals := make(map[*ast.Symbol]bool)

	if f.Parameters != nil {
		for i := 0; i < f.Parameters.Size(); i++ {
			locals[f.Parameters.Symbol(i)] = true
		}
	}
	if f.Body != nil {
		walkStatement(f.Body, func(e *ast.Expression) {
			collectPossibleWrites(e, writes)
			collectPossibleReads(e, reads)
		}, func(fr *ast.Frame) {
			for i := 0; i < fr.Size(); i++ {
				locals[fr.Symbol(i)] = true
			}
		})
	}
	locals[f.Sym] = true

	f.Changes = make(map[*ast.Symbol]bool)
	f.Depends = make(map[*ast.Symbol]bool)
	for s := range writes {
		if !locals[s] {
			f.Changes[s] = true
		}
	}
	for s := range reads {
		if !locals[s] {
			f.Depends[s] = true
		}
	}
}

// walkStatement applies fn to every expression and frames to every local
// frame reachable from the statement.
func walkStatement(s ast.Statement, fn func(*ast.Expression), frames func(*ast.Frame)) {
	switch st := s.(type) {
	case *ast.ExprStatement:
		fn(st.Expr)
	case *ast.AssertStatement:
		fn(st.Expr)
	case *ast.ForStatement:
		fn(st.Init)
		fn(st.Cond)
		fn(st.Step)
		walkStatement(st.Body, fn, frames)
	case *ast.IterationStatement:
		if st.Frame != nil {
			frames(st.Frame)
		}
		walkStatement(st.Body, fn, frames)
	case *ast.WhileStatement:
		fn(st.Cond)
		walkStatement(st.Body, fn, frames)
	case *ast.DoWhileStatement:
		walkStatement(st.Body, fn, frames)
		fn(st.Cond)
	case *ast.BlockStatement:
		if st.Frame != nil {
			frames(st.Frame)
			for i := 0; i < st.Frame.Size(); i++ {
				if v, ok := st.Frame.Symbol(i).Data.(*ast.Variable); ok && v.Init != nil {
					fn(v.Init)
				}
			}
		}
		for _, inner := range st.Stmts {
			walkStatement(inner, fn, frames)
		}
	case *ast.SwitchStatement:
		fn(st.Cond)
		for _, c := range st.Cases {
			walkStatement(c, fn, frames)
		}
	case *ast.CaseStatement:
		if st.Cond != nil {
			fn(st.Cond)
		}
		for _, inner := range st.Stmts {
			walkStatement(inner, fn, frames)
		}
	case *ast.DefaultStatement:
		for _, inner := range st.Stmts {
			walkStatement(inner, fn, frames)
		}
	case *ast.IfStatement:
		fn(st.Cond)
		walkStatement(st.Then, fn, frames)
		if st.Else != nil {
			walkStatement(st.Else, fn, frames)
		}
	case *ast.ReturnStatement:
		if st.Expr != nil {
			fn(st.Expr)
		}
	}
}

// ============================================================================
// States
// ============================================================================

// VisitState checks and, when rates are present, decomposes a location's
// invariant.
func (tc *TypeChecker) VisitState(s *ast.State) {
	tc.currentPos = s.Position
	if s.Invariant != nil && tc.checkExpression(s.Invariant) {
		switch {
		case !isInvariantWR(s.Invariant):
			tc.handleError(s.Invariant.Position, MsgInvalidInvariant)
		case !isSideEffectFree(s.Invariant):
			tc.handleError(s.Invariant.Position, MsgInvariantSideEffect)
		case s.Invariant.Type.Is(types.InvariantWR):
			tc.decomposeInvariant(s)
		default:
			if hasStrictUpperBound(s.Invariant) {
				tc.system.RecordStrictInvariant()
				tc.handleWarning(s.Invariant.Position, MsgStrictInvariant)
			}
		}
	}
	if s.ExpRate != nil && tc.checkExpression(s.ExpRate) {
		if !isNumber(s.ExpRate) && !s.ExpRate.Type.Is(types.Fraction) {
			tc.handleError(s.ExpRate.Position, MsgNumberExpected)
		}
	}
}

// ============================================================================
// Edges
// ============================================================================

// VisitEdge checks select bindings, guard, synchronisation, assignment
// and probability weight, and tracks the IO/CSP usage of the model.
func (tc *TypeChecker) VisitEdge(e *ast.Edge) {
	tc.currentPos = e.Position
	tc.checkSelect(e)
	guardOK := tc.checkGuard(e)
	tc.checkSync(e, guardOK)
	if e.Assign != nil {
		tc.checkAssignmentExpression(e.Assign)
	}
	if e.Prob != nil && tc.opts.Probability {
		if tc.checkExpression(e.Prob) {
			if !isNumber(e.Prob) {
				tc.handleError(e.Prob.Position, MsgNumberExpected)
			} else if !isSideEffectFree(e.Prob) {
				tc.handleError(e.Prob.Position, MsgProbSideEffect)
			}
		}
	}
}

func (tc *TypeChecker) checkSelect(e *ast.Edge) {
	if e.Select == nil {
		return
	}
	for i := 0; i < e.Select.Size(); i++ {
		t := e.Select.Symbol(i).Type
		if !tc.checkType(t, false, false) {
			continue
		}
		if !t.IsScalar() && !t.IsIntegral() {
			tc.handleError(e.Position, MsgScalarOrIntExpected)
		} else if !t.IsScalar() && !t.IsRange() {
			tc.handleError(e.Position, MsgRangeExpected)
		}
	}
}

func (tc *TypeChecker) checkGuard(e *ast.Edge) bool {
	if e.Guard == nil {
		return true
	}
	if !tc.checkExpression(e.Guard) {
		return false
	}
	if !isGuard(e.Guard) {
		tc.handleError(e.Guard.Position, MsgInvalidGuard)
		return false
	}
	if !isSideEffectFree(e.Guard) {
		tc.handleError(e.Guard.Position, MsgGuardSideEffect)
		return false
	}
	if e.Control && hasStrictLowerBound(e.Guard) {
		tc.system.RecordStrictLowerBoundOnControllableEdges()
	}
	return true
}

func (tc *TypeChecker) checkSync(e *ast.Edge, guardOK bool) {
	if e.Sync == nil {
		return
	}
	sync := e.Sync
	isCSP := sync.Dir == ast.SyncCSP

	// The model commits to one synchronisation flavor.
	switch {
	case isCSP && tc.ioUsed:
		tc.handleError(sync.Position, MsgAssumedIOFoundCSP)
	case !isCSP && tc.cspUsed:
		tc.handleError(sync.Position, MsgAssumedCSPFoundIO)
	}
	if isCSP {
		tc.cspUsed = true
		tc.system.SetSyncUsed(ast.SyncCSPUsed)
	} else {
		tc.ioUsed = true
		tc.system.SetSyncUsed(ast.SyncIO)
	}

	if !isCSP && sync.Channel != nil && tc.checkExpression(sync.Channel) {
		switch {
		case !sync.Channel.Type.IsChannel():
			tc.handleError(sync.Channel.Position, MsgChannelExpected)
		case !isSideEffectFree(sync.Channel):
			tc.handleError(sync.Channel.Position, MsgSyncSideEffect)
		default:
			tc.checkSyncChannel(e, sync, guardOK)
		}
	}

	if tc.opts.Refinement {
		if sync.Dir == ast.SyncSend && e.Control {
			tc.handleWarning(sync.Position, MsgOutputsUncontrollable)
		}
		if sync.Dir == ast.SyncRecv && !e.Control {
			tc.handleWarning(sync.Position, MsgInputsControllable)
		}
	}
}

func (tc *TypeChecker) checkSyncChannel(e *ast.Edge, sync *ast.Synchronisation, guardOK bool) {
	ch := sync.Channel.Type
	clockGuard := guardOK && e.Guard != nil && dependsOnClock(e.Guard)
	if ch.Is(types.Urgent) {
		tc.system.SetUrgentTransition()
		if clockGuard {
			tc.handleWarning(e.Guard.Position, MsgClockGuardUrgent)
		}
		if guardOK && e.Guard != nil &&
			(hasStrictLowerBound(e.Guard) || hasStrictUpperBound(e.Guard)) {
			tc.handleWarning(e.Guard.Position, MsgStrictBoundsUrgent)
		}
	}
	if sync.Dir == ast.SyncRecv && ch.Is(types.Broadcast) && clockGuard {
		tc.system.ClockGuardRecvBroadcast()
	}
}

// ============================================================================
// Instances
// ============================================================================

// VisitInstance checks a process instantiation: each bound argument must
// obey the parameter discipline and be fixed at compile time (or be a
// unique reference); the free parameters must be bounded integers or
// scalars not used in any array size.
func (tc *TypeChecker) VisitInstance(in *ast.Instance) {
	tc.currentPos = in.Position
	if in.Parameters == nil {
		return
	}
	for i := 0; i < in.Parameters.Size(); i++ {
		sym := in.Parameters.Symbol(i)
		arg, bound := in.Mapping[sym]
		if !bound {
			tc.checkFreeParameter(in, sym)
			continue
		}
		if !tc.checkExpression(arg) {
			continue
		}
		if !tc.isParameterCompatible(sym.Type, arg) {
			tc.handleError(arg.Position, MsgIncompatibleArg)
			continue
		}
		if !isSideEffectFree(arg) {
			tc.handleError(arg.Position, MsgArgumentSideEffect)
			continue
		}
		if sym.Type.Is(types.Ref) && !sym.Type.IsConstant() {
			if !tc.isUniqueReference(arg) {
				tc.handleError(arg.Position, MsgUniqueReference)
			}
		} else if !tc.isCompileTimeComputable(arg) {
			tc.handleError(arg.Position, MsgNotComputable)
		}
	}
}

// checkFreeParameter enforces the unbound-parameter rules: the type must
// be a bounded integer or scalar, and neither the parameter nor anything
// it restricts may occur in an array size of the template.
func (tc *TypeChecker) checkFreeParameter(in *ast.Instance, sym *ast.Symbol) {
	t := sym.Type
	bounded := t.IsScalar() || (t.IsIntegral() && t.IsRange())
	if !bounded || t.Is(types.Ref) {
		tc.handleError(in.Position, MsgFreeParamBoundedOrScalar)
		return
	}
	restricted := map[*ast.Symbol]bool{sym: true}
	for _, r := range in.Restricted {
		restricted[r] = true
	}
	if in.Template != nil && templateArraySizesRead(in.Template, restricted) {
		tc.handleError(in.Position, MsgFreeParamInArraySize)
	}
}

// templateArraySizesRead reports whether any array-size or range bound
// inside the template's variable types reads one of the given symbols.
func templateArraySizesRead(tmpl *ast.Template, syms map[*ast.Symbol]bool) bool {
	reads := make(map[*ast.Symbol]bool)
	for _, v := range tmpl.Variables {
		if v.Sym != nil {
			collectTypeBoundReads(v.Sym.Type, reads)
		}
	}
	for s := range reads {
		if syms[s] {
			return true
		}
	}
	return false
}

func collectTypeBoundReads(t *types.Type, out map[*ast.Symbol]bool) {
	if t == nil {
		return
	}
	for _, bound := range []types.Expr{t.Lower, t.Upper, t.Count} {
		if be, ok := bound.(*ast.Expression); ok {
			collectPossibleReads(be, out)
		}
	}
	for i := 0; i < t.Size(); i++ {
		collectTypeBoundReads(t.Sub(i), out)
	}
}

// ============================================================================
// LSC elements
// ============================================================================

// VisitInstanceLine checks an LSC lifeline like an instance, except that
// every parameter must be bound.
func (tc *TypeChecker) VisitInstanceLine(il *ast.InstanceLine) {
	tc.currentPos = il.Position
	if il.Parameters == nil {
		return
	}
	for i := 0; i < il.Parameters.Size(); i++ {
		sym := il.Parameters.Symbol(i)
		arg, bound := il.Mapping[sym]
		if !bound {
			tc.handleError(il.Position, MsgIncompatibleArg)
			continue
		}
		if tc.checkExpression(arg) && !tc.isParameterCompatible(sym.Type, arg) {
			tc.handleError(arg.Position, MsgIncompatibleArg)
		}
	}
}

// VisitMessage checks an LSC message label: a channel, side-effect free.
func (tc *TypeChecker) VisitMessage(m *ast.Message) {
	tc.currentPos = m.Position
	if m.Label == nil || !tc.checkExpression(m.Label) {
		return
	}
	if !m.Label.Type.IsChannel() {
		tc.handleError(m.Label.Position, MsgChannelExpected)
	} else if !isSideEffectFree(m.Label) {
		tc.handleError(m.Label.Position, MsgMessageSideEffect)
	}
}

// VisitCondition checks an LSC condition: boolean, side-effect free.
func (tc *TypeChecker) VisitCondition(c *ast.Condition) {
	tc.currentPos = c.Position
	if c.Label == nil || !tc.checkExpression(c.Label) {
		return
	}
	if !isIntegral(c.Label) {
		tc.handleError(c.Label.Position, MsgBooleanExpected)
	} else if !isSideEffectFree(c.Label) {
		tc.handleError(c.Label.Position, MsgConditionSideEffect)
	}
}

// VisitUpdate checks an LSC update as an assignment expression.
func (tc *TypeChecker) VisitUpdate(u *ast.Update) {
	tc.currentPos = u.Position
	if u.Label != nil {
		tc.checkAssignmentExpression(u.Label)
	}
}

// ============================================================================
// Progress, gantt charts, IO declarations
// ============================================================================

// VisitProgressMeasure checks a progress measure: the optional guard and
// the measure are integral and side-effect free.
func (tc *TypeChecker) VisitProgressMeasure(p *ast.Progress) {
	tc.currentPos = p.Position
	if p.Guard != nil && tc.checkExpression(p.Guard) {
		if !isIntegral(p.Guard) {
			tc.handleError(p.Guard.Position, MsgBooleanExpected)
		} else if !isSideEffectFree(p.Guard) {
			tc.handleError(p.Guard.Position, MsgExprSideEffect)
		}
	}
	if p.Measure != nil && tc.checkExpression(p.Measure) {
		if !isIntegral(p.Measure) {
			tc.handleError(p.Measure.Position, MsgIntegerExpected)
		} else if !isSideEffectFree(p.Measure) {
			tc.handleError(p.Measure.Position, MsgExprSideEffect)
		}
	}
}

// VisitGanttChart checks each entry's binder types, predicate and color
// mapping.
func (tc *TypeChecker) VisitGanttChart(g *ast.GanttChart) {
	tc.currentPos = g.Position
	for _, entry := range g.Entries {
		if entry.Parameters != nil {
			for i := 0; i < entry.Parameters.Size(); i++ {
				tc.checkType(entry.Parameters.Symbol(i).Type, false, false)
			}
		}
		if entry.Predicate != nil && tc.checkExpression(entry.Predicate) {
			if !isIntegral(entry.Predicate) && !isConstraint(entry.Predicate) {
				tc.handleError(entry.Predicate.Position, MsgBooleanExpected)
			}
		}
		if entry.Mapping != nil && tc.checkExpression(entry.Mapping) {
			if !isIntegral(entry.Mapping) {
				tc.handleError(entry.Mapping.Position, MsgIntegerExpected)
			}
		}
	}
}

// VisitIODecl checks that every declared input and output is a channel.
func (tc *TypeChecker) VisitIODecl(io *ast.IODecl) {
	tc.currentPos = io.Position
	for _, p := range io.Param {
		tc.checkExpression(p)
	}
	for _, list := range [][]*ast.Expression{io.Inputs, io.Outputs} {
		for _, ch := range list {
			if tc.checkExpression(ch) && !ch.Type.IsChannel() {
				tc.handleError(ch.Position, MsgChannelExpected)
			}
		}
	}
}

// ============================================================================
// Templates and system
// ============================================================================

// VisitTemplateBefore enters a template scope.
func (tc *TypeChecker) VisitTemplateBefore(t *ast.Template) bool {
	tc.template = t
	return true
}

// VisitTemplateAfter leaves the template scope.
func (tc *TypeChecker) VisitTemplateAfter(*ast.Template) {
	tc.template = nil
}

// VisitSystemAfter checks the system-level update blocks and the
// IO-versus-CSP verdict once every edge has been seen.
func (tc *TypeChecker) VisitSystemAfter(s *ast.System) {
	for _, e := range s.GetBeforeUpdate() {
		tc.checkAssignmentExpression(e)
	}
	for _, e := range s.GetAfterUpdate() {
		tc.checkAssignmentExpression(e)
	}
	if tc.ioUsed && tc.cspUsed {
		tc.handleError(position.None, MsgSyncMixed)
	}
}
