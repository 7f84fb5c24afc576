package semantic

import (
	"github.com/modelchk/go-utap/internal/ast"
	"github.com/modelchk/go-utap/internal/types"
)

// Predicates over an expression's attached type. The semantic categories
// overlap deliberately: every integral expression is an invariant, every
// invariant is a guard, every guard is a constraint, every constraint is
// a formula. The operator algebra orders its rules from most to least
// specific so the overlap never leaks into results.

func isCost(e *ast.Expression) bool  { return e.Type.IsCost() }
func isClock(e *ast.Expression) bool { return e.Type.IsClock() }
func isDiff(e *ast.Expression) bool  { return e.Type.IsDiff() }

func isDoubleValue(e *ast.Expression) bool { return e.Type.IsDouble() }
func isIntegral(e *ast.Expression) bool    { return e.Type.IsIntegral() }
func isIntegerKind(e *ast.Expression) bool { return e.Type.Is(types.Int) }
func isNumber(e *ast.Expression) bool      { return e.Type.IsNumber() }

// isInvariant: an integral expression, a clock upper bound, or a
// double-typed invariant guard on SMC models.
func isInvariant(e *ast.Expression) bool {
	return e.Type.IsIntegral() ||
		e.Type.Is(types.Invariant) ||
		e.Type.Is(types.DoubleInvGuard)
}

// isInvariantWR additionally admits rate constraints.
func isInvariantWR(e *ast.Expression) bool {
	return isInvariant(e) || e.Type.Is(types.InvariantWR)
}

// isGuard: anything usable on an edge, including invariants.
func isGuard(e *ast.Expression) bool {
	return e.Type.Is(types.Guard) || isInvariant(e)
}

// isConstraint: any clock-bearing boolean expression.
func isConstraint(e *ast.Expression) bool {
	return e.Type.Is(types.Constraint) || isGuard(e)
}

// isFormula: a temporal property or anything a property degenerates to.
func isFormula(e *ast.Expression) bool {
	return e.Type.Is(types.Formula) || isConstraint(e)
}

func isProbability(e *ast.Expression) bool {
	return e.Type.Is(types.Probability)
}

// isListOfFormulas accepts a list expression each of whose elements is a
// formula.
func isListOfFormulas(e *ast.Expression) bool {
	if e.Kind != ast.List {
		return false
	}
	for _, c := range e.Children {
		if !isFormula(c) {
			return false
		}
	}
	return true
}

// isAssignable reports whether values of the type can be stored at all.
func isAssignable(t *types.Type) bool {
	switch t.Strip().Kind {
	case types.Int, types.Bool, types.Double, types.Clock, types.Cost,
		types.Scalar, types.Record, types.Array, types.Range,
		types.ProcessVar, types.Fraction:
		return true
	}
	return false
}

// validReturnType limits functions to record, integral, scalar, double
// or void results.
func validReturnType(t *types.Type) bool {
	u := t.Strip()
	switch {
	case u.Kind == types.Record:
		for i := range u.Fields {
			if !validReturnType(u.Fields[i].Type) {
				return false
			}
		}
		return true
	case t.IsIntegral(), t.IsScalar(), t.IsDouble(), t.IsVoid():
		return true
	}
	return false
}

// isGameProperty reports whether the formula kind is a game or
// refinement property, which is exempt from the nesting rule.
func isGameProperty(e *ast.Expression) bool {
	switch e.Kind {
	case ast.Control, ast.ControlTopt, ast.PoControl, ast.SmcControl,
		ast.TioRefinement, ast.TioConsistency, ast.TioSpecification,
		ast.TioImplementation, ast.TioQuotient:
		return true
	}
	return false
}

// hasMITLInQuantifiedSub reports whether an MITL operator occurs below a
// path quantifier. MITL formulas are checked by a dedicated engine and
// cannot be nested into symbolic quantified formulas.
func hasMITLInQuantifiedSub(e *ast.Expression) bool {
	if e == nil {
		return false
	}
	if e.Kind.IsPathQuantifier() {
		for _, c := range e.Children {
			if containsMITL(c) {
				return true
			}
		}
	}
	for _, c := range e.Children {
		if hasMITLInQuantifiedSub(c) {
			return true
		}
	}
	return false
}

func containsMITL(e *ast.Expression) bool {
	if e == nil {
		return false
	}
	if e.Kind.IsMITL() {
		return true
	}
	for _, c := range e.Children {
		if containsMITL(c) {
			return true
		}
	}
	return false
}

// hasStrictLowerBound scans for a strict comparison bounding a clock from
// below: i < x or x > i for a clock x and an integer i.
func hasStrictLowerBound(e *ast.Expression) bool {
	if e == nil {
		return false
	}
	switch e.Kind {
	case ast.LT: // i < x
		if isIntegral(e.Children[0]) && isClock(e.Children[1]) {
			return true
		}
	case ast.GT: // x > i
		if isClock(e.Children[0]) && isIntegral(e.Children[1]) {
			return true
		}
	}
	for _, c := range e.Children {
		if hasStrictLowerBound(c) {
			return true
		}
	}
	return false
}

// hasStrictUpperBound scans for a strict comparison bounding a clock from
// above: x < i or i > x for a clock x and an integer i.
func hasStrictUpperBound(e *ast.Expression) bool {
	if e == nil {
		return false
	}
	switch e.Kind {
	case ast.LT: // x < i
		if isClock(e.Children[0]) && isIntegral(e.Children[1]) {
			return true
		}
	case ast.GT: // i > x
		if isIntegral(e.Children[0]) && isClock(e.Children[1]) {
			return true
		}
	}
	for _, c := range e.Children {
		if hasStrictUpperBound(c) {
			return true
		}
	}
	return false
}

// dependsOnClock reports whether any identifier in the tree has clock
// type.
func dependsOnClock(e *ast.Expression) bool {
	if e == nil {
		return false
	}
	if e.Kind == ast.Identifier && e.Type.IsClock() {
		return true
	}
	for _, c := range e.Children {
		if dependsOnClock(c) {
			return true
		}
	}
	return false
}
