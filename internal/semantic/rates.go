package semantic

import (
	"github.com/modelchk/go-utap/internal/ast"
	"github.com/modelchk/go-utap/internal/types"
)

// rateDecomposition accumulates the result of splitting an
// invariant-with-rate into a residual invariant and the cost rate.
type rateDecomposition struct {
	invariant      *ast.Expression
	costRate       *ast.Expression
	countCostRates int
	hasClockRates  bool
	hasStrictUpper bool
}

// conjoin extends the residual with e, preserving declaration order.
func (rd *rateDecomposition) conjoin(e *ast.Expression) {
	if rd.invariant == nil {
		rd.invariant = e
		return
	}
	and := ast.NewBinary(ast.And, rd.invariant, e, e.Position)
	and.SetType(types.NewPrimitive(types.Invariant))
	rd.invariant = and
}

// decompose walks a conjunction of invariant predicates and rate
// equations. Cost rates are extracted; clock rates (stopwatches) stay in
// the residual but are recorded; foralls are kept whole, with their body
// scanned only to detect clock rates.
func (rd *rateDecomposition) decompose(e *ast.Expression, inForall bool) {
	switch e.Kind {
	case ast.And:
		rd.decompose(e.Children[0], inForall)
		rd.decompose(e.Children[1], inForall)
		return
	case ast.Forall:
		rd.scanForClockRates(e.Children[0])
		rd.conjoin(e)
		return
	case ast.EQ:
		if rate, rhs, ok := rateEquation(e); ok {
			if isCost(rate.Children[0]) && !inForall {
				rd.costRate = rhs
				rd.countCostRates++
				return
			}
			if !isCost(rate.Children[0]) {
				rd.hasClockRates = true
			}
			rd.conjoin(e)
			return
		}
	}
	if !inForall {
		if hasStrictUpperBound(e) {
			rd.hasStrictUpper = true
		}
		rd.conjoin(e)
	}
}

// scanForClockRates only looks for rate equations; the enclosing forall
// is preserved verbatim in the residual.
func (rd *rateDecomposition) scanForClockRates(e *ast.Expression) {
	if e == nil {
		return
	}
	if e.Kind == ast.EQ {
		if rate, _, ok := rateEquation(e); ok && !isCost(rate.Children[0]) {
			rd.hasClockRates = true
		}
	}
	for _, c := range e.Children {
		rd.scanForClockRates(c)
	}
}

// rateEquation matches EQ(rate(x), rhs) in either orientation.
func rateEquation(e *ast.Expression) (rate, rhs *ast.Expression, ok bool) {
	if e.Children[0].Kind == ast.RatePrime {
		return e.Children[0], e.Children[1], true
	}
	if e.Children[1].Kind == ast.RatePrime {
		return e.Children[1], e.Children[0], true
	}
	return nil, nil, false
}

// decomposeInvariant splits a state's checked invariant-with-rate and
// writes the residual and cost rate back onto the state. Multiple cost
// rates are an error; clock rates mark the system as containing
// stopwatches; a strict upper bound marks the invariant strict.
func (tc *TypeChecker) decomposeInvariant(state *ast.State) {
	rd := &rateDecomposition{}
	rd.decompose(state.Invariant, false)

	if rd.countCostRates > 1 {
		tc.handleError(state.Invariant.Position, MsgOneCostRate)
	}
	if rd.hasClockRates {
		tc.system.RecordStopWatch()
	}
	if rd.hasStrictUpper {
		tc.system.RecordStrictInvariant()
		tc.handleWarning(state.Invariant.Position, MsgStrictInvariant)
	}

	residual := rd.invariant
	if residual == nil {
		residual = ast.NewConstant(1, state.Invariant.Position)
		residual.SetType(types.NewPrimitive(types.Bool))
	}
	state.Invariant = residual
	state.CostRate = rd.costRate
}
