package semantic

import (
	"github.com/modelchk/go-utap/internal/ast"
	"github.com/modelchk/go-utap/internal/types"
)

// VisitProperty validates a top-level property expression: formula
// shape, side-effect freedom, the nesting rule for non-game properties,
// observation constraints for partial-observability games, the run and
// bound discipline of statistical queries and MITL placement.
func (tc *TypeChecker) VisitProperty(q *ast.Query) {
	tc.currentPos = q.Position
	e := q.Formula
	if e == nil || !tc.checkExpression(e) {
		return
	}
	if !isSideEffectFree(e) {
		tc.handleError(e.Position, MsgPropertySideEffect)
		return
	}
	if !isFormula(e) && !e.Type.Is(types.TIOGraph) {
		tc.handleError(e.Position, MsgPropertyMustBeFormula)
		return
	}
	if hasMITLInQuantifiedSub(e) {
		tc.handleError(e.Position, MsgMitlInsideQuantifier)
	}
	if !isGameProperty(e) {
		tc.checkNesting(e)
	}
	if e.Kind == ast.PoControl {
		n := len(e.Children)
		for _, obs := range e.Children[:n-1] {
			tc.checkObservationConstraints(obs)
		}
	}
	if e.Kind.IsStatistical() {
		tc.checkStatisticalDiscipline(e)
	}
}

// checkNesting enforces that a path-quantified formula only has
// constraint-typed immediate children: no quantifier below a quantifier.
func (tc *TypeChecker) checkNesting(e *ast.Expression) {
	if e.Kind.IsPathQuantifier() {
		for _, c := range e.Children {
			if !isConstraint(c) {
				tc.handleError(c.Position, MsgNestingPathQuantifiers)
			}
		}
	}
	for _, c := range e.Children {
		tc.checkNesting(c)
	}
}

// checkObservationConstraints restricts the observation predicates of a
// partial-observability control property: clock lower bounds must be
// weak, clock upper bounds strict, and clock differences are not
// supported at all.
func (tc *TypeChecker) checkObservationConstraints(e *ast.Expression) {
	if e == nil {
		return
	}
	switch e.Kind {
	case ast.LT, ast.LE, ast.GT, ast.GE:
		a, b := e.Children[0], e.Children[1]
		if (isClock(a) && isClock(b)) || isDiff(a) || isDiff(b) {
			tc.handleError(e.Position, MsgClockDifferences)
			return
		}
		clockLeft := isClock(a) && !isClock(b)
		clockRight := isClock(b) && !isClock(a)
		if clockLeft || clockRight {
			upper := (clockLeft && (e.Kind == ast.LT || e.Kind == ast.LE)) ||
				(clockRight && (e.Kind == ast.GT || e.Kind == ast.GE))
			strict := e.Kind == ast.LT || e.Kind == ast.GT
			if upper && !strict {
				tc.handleError(e.Position, MsgClockBoundStrictness)
			}
			if !upper && strict {
				tc.handleError(e.Position, MsgClockBoundStrictness)
			}
		}
	case ast.Minus:
		if isClock(e.Children[0]) && isClock(e.Children[1]) {
			tc.handleError(e.Position, MsgClockDifferences)
			return
		}
	}
	for _, c := range e.Children {
		tc.checkObservationConstraints(c)
	}
}

// checkStatisticalDiscipline validates the run count and bound of an SMC
// query. The builder encodes an omitted run count as the literal -1; the
// estimation queries then pick the number of runs from the confidence
// settings, but explicit counts must be positive and simulation queries
// must state one.
func (tc *TypeChecker) checkStatisticalDiscipline(e *ast.Expression) {
	if len(e.Children) < 3 {
		return
	}
	runs, boundVar, bound := e.Children[0], e.Children[1], e.Children[2]

	needsRuns := e.Kind == ast.Simulate || e.Kind == ast.SimulateReach
	if runs.Kind == ast.Constant {
		omitted := runs.Value == -1 && !needsRuns
		if !omitted && runs.Value <= 0 {
			tc.handleError(runs.Position, MsgInvalidRunCount)
		}
	} else if !tc.isCompileTimeComputable(runs) {
		tc.handleError(runs.Position, MsgNotComputable)
	}

	if !boundVar.Type.IsClock() {
		constInt := isIntegral(boundVar) &&
			(boundVar.Kind == ast.Constant || tc.isCompileTimeComputable(boundVar))
		if !constInt {
			tc.handleError(boundVar.Position, MsgClockExpected)
		}
	}

	if !tc.isCompileTimeComputable(bound) {
		tc.handleError(bound.Position, MsgNotComputable)
	}

	// The box estimation runs until its until-condition, which must be
	// the literal false: the query observes the whole bounded run.
	if e.Kind == ast.ProbaBox && len(e.Children) >= 5 {
		until := e.Children[4]
		if until.Kind != ast.Constant || until.Value != 0 {
			tc.handleError(until.Position, MsgBooleanExpected)
		}
	}
}
