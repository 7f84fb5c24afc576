package semantic

import (
	"github.com/modelchk/go-utap/internal/ast"
	"github.com/modelchk/go-utap/internal/types"
)

func prim(k types.Kind) *types.Type { return types.NewPrimitive(k) }

// checkExpression type-annotates the expression bottom-up. Children are
// checked first; a failed child aborts the parent so one defect produces
// one diagnostic. When no rule of the operator algebra matches, a generic
// type error is emitted.
func (tc *TypeChecker) checkExpression(e *ast.Expression) bool {
	if e == nil {
		return false
	}
	ok := true
	for _, c := range e.Children {
		if !tc.checkExpression(c) {
			ok = false
		}
	}
	if !ok {
		return false
	}
	t, reported := tc.typeOfExpression(e)
	if t == nil {
		if !reported {
			tc.handleError(e.Position, MsgTypeError)
		}
		return false
	}
	e.SetType(t)
	return true
}

// typeOfExpression is the operator algebra: one row per expression kind,
// mapping operand shapes to the result type. A nil result with reported
// false means no rule matched.
func (tc *TypeChecker) typeOfExpression(e *ast.Expression) (*types.Type, bool) {
	switch e.Kind {
	case ast.Constant:
		return prim(types.Int), false
	case ast.DoubleConstant:
		return prim(types.Double), false
	case ast.Deadlock:
		return prim(types.Constraint), false
	case ast.Identifier:
		if e.Symbol == nil || e.Symbol.Type == nil {
			return nil, false
		}
		return e.Symbol.Type, false

	case ast.Plus:
		return tc.typeOfAdd(e)
	case ast.Minus:
		return tc.typeOfSub(e)
	case ast.Mult, ast.Div, ast.Min, ast.Max:
		a, b := e.Children[0], e.Children[1]
		switch {
		case isIntegral(a) && isIntegral(b):
			return prim(types.Int), false
		case isNumber(a) && isNumber(b):
			return prim(types.Double), false
		}
		return nil, false
	case ast.Mod, ast.BitAnd, ast.BitOr, ast.BitXor, ast.LShift, ast.RShift:
		if isIntegral(e.Children[0]) && isIntegral(e.Children[1]) {
			return prim(types.Int), false
		}
		return nil, false

	case ast.And:
		return tc.typeOfAnd(e)
	case ast.Or:
		return tc.typeOfOr(e)
	case ast.Not:
		a := e.Children[0]
		switch {
		case isIntegral(a):
			return prim(types.Bool), false
		case isConstraint(a):
			return prim(types.Constraint), false
		}
		return nil, false
	case ast.UnaryMinus:
		a := e.Children[0]
		switch {
		case isIntegral(a):
			return prim(types.Int), false
		case isNumber(a):
			return prim(types.Double), false
		}
		return nil, false

	case ast.LT, ast.LE, ast.GT, ast.GE:
		return tc.typeOfOrdering(e)
	case ast.EQ:
		return tc.typeOfEquality(e, false)
	case ast.NEQ:
		return tc.typeOfEquality(e, true)

	case ast.RatePrime:
		a := e.Children[0]
		if isCost(a) || isClock(a) {
			return prim(types.Rate), false
		}
		return nil, false
	case ast.FractionOp:
		if isIntegral(e.Children[0]) && isIntegral(e.Children[1]) {
			return prim(types.Fraction), false
		}
		return nil, false

	case ast.Assign:
		a, b := e.Children[0], e.Children[1]
		if !AreAssignmentCompatible(a.Type, b.Type, false) {
			tc.handleError(e.Position, MsgIncompatibleType)
			return nil, true
		}
		if !tc.isModifiableLValue(a) {
			tc.handleError(a.Position, MsgLHSExpected)
			return nil, true
		}
		return a.Type, false
	case ast.AssPlus:
		a, b := e.Children[0], e.Children[1]
		if !(a.Type.Is(types.Int) || a.Type.IsCost()) || !isIntegral(b) {
			tc.handleError(e.Position, MsgIncompatibleType)
			return nil, true
		}
		if !tc.isModifiableLValue(a) {
			tc.handleError(a.Position, MsgLHSExpected)
			return nil, true
		}
		return a.Type, false
	case ast.AssMinus, ast.AssMult, ast.AssDiv, ast.AssMod,
		ast.AssAnd, ast.AssOr, ast.AssXor, ast.AssLShift, ast.AssRShift:
		a, b := e.Children[0], e.Children[1]
		if !isIntegral(a) || !isIntegral(b) {
			tc.handleError(e.Position, MsgIncompatibleType)
			return nil, true
		}
		if !tc.isModifiableLValue(a) {
			tc.handleError(a.Position, MsgLHSExpected)
			return nil, true
		}
		return a.Type, false

	case ast.PreIncrement, ast.PostIncrement, ast.PreDecrement, ast.PostDecrement:
		a := e.Children[0]
		if !a.Type.Is(types.Int) {
			tc.handleError(e.Position, MsgIntegerExpected)
			return nil, true
		}
		if !tc.isModifiableLValue(a) {
			tc.handleError(a.Position, MsgLHSExpected)
			return nil, true
		}
		return prim(types.Int), false

	case ast.InlineIf:
		c, a, b := e.Children[0], e.Children[1], e.Children[2]
		if !isIntegral(c) {
			tc.handleError(c.Position, MsgIntegerExpected)
			return nil, true
		}
		if isIntegral(a) && isIntegral(b) {
			return a.Type, false
		}
		if AreEquivalent(a.Type, b.Type) {
			return a.Type, false
		}
		tc.handleError(e.Position, MsgIncompatibleInlineIf)
		return nil, true

	case ast.Comma:
		a, b := e.Children[0], e.Children[1]
		if !isAssignable(a.Type) && !a.Type.IsVoid() {
			tc.handleError(a.Position, MsgIncompatibleType)
			return nil, true
		}
		if !isAssignable(b.Type) && !b.Type.IsVoid() {
			tc.handleError(b.Position, MsgIncompatibleType)
			return nil, true
		}
		if isSideEffectFree(a) {
			tc.handleWarning(a.Position, MsgNoEffect)
		}
		return b.Type, false

	case ast.Dot:
		return tc.typeOfDot(e)
	case ast.ArrayIndex:
		return tc.typeOfIndex(e)
	case ast.FunCall:
		return tc.typeOfCall(e)

	case ast.List:
		fields := make([]types.Field, len(e.Children))
		for i, c := range e.Children {
			label := ""
			if e.Labels != nil {
				label = e.Labels[i]
			}
			fields[i] = types.Field{Label: label, Type: c.Type}
		}
		return types.NewList(fields), false

	case ast.Forall:
		return tc.typeOfForall(e)
	case ast.Exists:
		return tc.typeOfExists(e)
	case ast.Sum:
		return tc.typeOfSum(e)

	case ast.Spawn:
		return tc.typeOfSpawn(e)
	case ast.Exit:
		if tc.function != nil {
			tc.handleError(e.Position, MsgDynamicOnlyOnEdges)
			return nil, true
		}
		if tc.template == nil || !tc.template.Dynamic {
			tc.handleError(e.Position, MsgExitOnlyDynamic)
			return nil, true
		}
		return prim(types.Int), false
	case ast.NumOf:
		if e.Symbol == nil || tc.system.GetDynamicTemplate(e.Symbol.Name) == nil {
			tc.handleError(e.Position, MsgNotDynamicTemplate)
			return nil, true
		}
		return prim(types.Int), false

	case ast.EF, ast.EG, ast.AF, ast.AG, ast.Pmax:
		if !isFormula(e.Children[0]) {
			tc.handleError(e.Position, MsgPropertyMustBeFormula)
			return nil, true
		}
		return prim(types.Formula), false
	case ast.LeadsTo, ast.AUntil, ast.AWeakUntil, ast.ABuchi:
		for _, c := range e.Children {
			if !isFormula(c) {
				tc.handleError(e.Position, MsgPropertyMustBeFormula)
				return nil, true
			}
		}
		return prim(types.Formula), false
	case ast.Control:
		if !isFormula(e.Children[0]) {
			tc.handleError(e.Position, MsgPropertyMustBeFormula)
			return nil, true
		}
		return prim(types.Formula), false
	case ast.ControlTopt:
		if !isIntegral(e.Children[0]) || !isIntegral(e.Children[1]) {
			tc.handleError(e.Position, MsgIntegerExpected)
			return nil, true
		}
		if !isFormula(e.Children[2]) {
			tc.handleError(e.Position, MsgPropertyMustBeFormula)
			return nil, true
		}
		return prim(types.Formula), false
	case ast.PoControl:
		n := len(e.Children)
		for _, c := range e.Children[:n-1] {
			if !isConstraint(c) {
				tc.handleError(c.Position, MsgBooleanExpected)
				return nil, true
			}
		}
		if !isFormula(e.Children[n-1]) {
			tc.handleError(e.Position, MsgPropertyMustBeFormula)
			return nil, true
		}
		return prim(types.Formula), false
	case ast.SmcControl:
		return tc.typeOfStatistical(e)
	case ast.Scenario:
		if e.Symbol == nil {
			return nil, false
		}
		return prim(types.Formula), false

	case ast.ProbaBox, ast.ProbaDiamond, ast.ProbaMinBox, ast.ProbaMinDiamond,
		ast.ProbaExp, ast.Simulate, ast.SimulateReach:
		return tc.typeOfStatistical(e)
	case ast.ProbaCmp:
		a, b := e.Children[0], e.Children[1]
		aOK := a.Kind == ast.ProbaBox || a.Kind == ast.ProbaDiamond
		bOK := b.Kind == ast.ProbaBox || b.Kind == ast.ProbaDiamond
		if !aOK || !bOK {
			tc.handleError(e.Position, MsgPropertyMustBeFormula)
			return nil, true
		}
		return prim(types.Formula), false
	case ast.SupVar, ast.InfVar:
		if len(e.Children) > 0 {
			first := e.Children[0]
			if !isIntegral(first) && !isConstraint(first) {
				tc.handleError(first.Position, MsgBooleanExpected)
				return nil, true
			}
			for _, c := range e.Children[1:] {
				if !isClock(c) && !isIntegral(c) {
					tc.handleError(c.Position, MsgNumberExpected)
					return nil, true
				}
			}
		}
		return prim(types.Formula), false

	case ast.TioComposition, ast.TioConjunction, ast.TioQuotient:
		for _, c := range e.Children {
			if !isTIOOperand(c) {
				tc.handleError(c.Position, MsgCompositionExpected)
				return nil, true
			}
		}
		return prim(types.TIOGraph), false
	case ast.TioRefinement, ast.TioConsistency, ast.TioSpecification,
		ast.TioImplementation:
		for _, c := range e.Children {
			if !isTIOOperand(c) {
				tc.handleError(c.Position, MsgCompositionExpected)
				return nil, true
			}
		}
		return prim(types.Formula), false

	case ast.MitlUntil, ast.MitlRelease, ast.MitlNext, ast.MitlDiamond, ast.MitlBox:
		for _, c := range e.Children {
			if !isFormula(c) && !isIntegral(c) {
				tc.handleError(c.Position, MsgPropertyMustBeFormula)
				return nil, true
			}
		}
		return prim(types.Formula), false
	}

	// Floating point library.
	switch {
	case e.Kind.IsMathUnaryDouble():
		if isNumber(e.Children[0]) {
			return prim(types.Double), false
		}
		tc.handleError(e.Children[0].Position, MsgNumberExpected)
		return nil, true
	case e.Kind.IsMathBinaryDouble():
		if isNumber(e.Children[0]) && isNumber(e.Children[1]) {
			return prim(types.Double), false
		}
		tc.handleError(e.Position, MsgNumberExpected)
		return nil, true
	case e.Kind.IsMathTernaryDouble():
		for _, c := range e.Children {
			if !isNumber(c) {
				tc.handleError(c.Position, MsgNumberExpected)
				return nil, true
			}
		}
		return prim(types.Double), false
	}
	switch e.Kind {
	case ast.FnAbs, ast.FnFpClassify:
		if isIntegral(e.Children[0]) {
			return prim(types.Int), false
		}
		tc.handleError(e.Children[0].Position, MsgIntegerExpected)
		return nil, true
	case ast.FnILogb, ast.FnFInt:
		if isNumber(e.Children[0]) {
			return prim(types.Int), false
		}
		tc.handleError(e.Children[0].Position, MsgNumberExpected)
		return nil, true
	case ast.FnIsNan, ast.FnIsInf, ast.FnIsFinite, ast.FnIsNormal, ast.FnSignBit:
		if isNumber(e.Children[0]) {
			return prim(types.Bool), false
		}
		tc.handleError(e.Children[0].Position, MsgNumberExpected)
		return nil, true
	case ast.FnIsUnordered:
		if isNumber(e.Children[0]) && isNumber(e.Children[1]) {
			return prim(types.Bool), false
		}
		tc.handleError(e.Position, MsgNumberExpected)
		return nil, true
	}

	return nil, false
}

// ============================================================================
// Arithmetic
// ============================================================================

func (tc *TypeChecker) typeOfAdd(e *ast.Expression) (*types.Type, bool) {
	a, b := e.Children[0], e.Children[1]
	switch {
	case isIntegral(a) && isIntegral(b):
		return prim(types.Int), false
	case isIntegral(a) && isClock(b), isClock(a) && isIntegral(b):
		return prim(types.Clock), false
	case isIntegral(a) && isDiff(b), isDiff(a) && isIntegral(b):
		return prim(types.Diff), false
	case isNumber(a) && isNumber(b):
		return prim(types.Double), false
	}
	return nil, false
}

func (tc *TypeChecker) typeOfSub(e *ast.Expression) (*types.Type, bool) {
	a, b := e.Children[0], e.Children[1]
	switch {
	case isIntegral(a) && isIntegral(b):
		return prim(types.Int), false
	case isClock(a) && isIntegral(b):
		return prim(types.Clock), false
	case isClock(a) && isClock(b):
		return prim(types.Diff), false
	case isIntegral(a) && isDiff(b), isDiff(a) && isIntegral(b):
		return prim(types.Diff), false
	case isNumber(a) && isNumber(b):
		return prim(types.Double), false
	}
	return nil, false
}

// ============================================================================
// Logic
// ============================================================================

func (tc *TypeChecker) typeOfAnd(e *ast.Expression) (*types.Type, bool) {
	a, b := e.Children[0], e.Children[1]
	switch {
	case isIntegral(a) && isIntegral(b):
		return prim(types.Bool), false
	case isInvariant(a) && isInvariant(b):
		return prim(types.Invariant), false
	case isInvariantWR(a) && isInvariantWR(b):
		return prim(types.InvariantWR), false
	case isGuard(a) && isGuard(b):
		return prim(types.Guard), false
	case isConstraint(a) && isConstraint(b):
		return prim(types.Constraint), false
	case isFormula(a) && isFormula(b):
		return prim(types.Formula), false
	}
	return nil, false
}

func (tc *TypeChecker) typeOfOr(e *ast.Expression) (*types.Type, bool) {
	a, b := e.Children[0], e.Children[1]
	switch {
	case isIntegral(a) && isIntegral(b):
		return prim(types.Bool), false
	case isIntegral(a) && isInvariant(b), isInvariant(a) && isIntegral(b):
		return prim(types.Invariant), false
	case isIntegral(a) && isInvariantWR(b), isInvariantWR(a) && isIntegral(b):
		return prim(types.InvariantWR), false
	case isIntegral(a) && isGuard(b), isGuard(a) && isIntegral(b):
		return prim(types.Guard), false
	case isConstraint(a) && isConstraint(b):
		return prim(types.Constraint), false
	}
	return nil, false
}

// ============================================================================
// Comparisons
// ============================================================================

// typeOfOrdering implements <, <=, > and >=. Upper bounds on clocks are
// invariants; lower bounds are only guards. Comparisons of two clocks and
// bounds on clock differences are invariants in either direction.
func (tc *TypeChecker) typeOfOrdering(e *ast.Expression) (*types.Type, bool) {
	a, b := e.Children[0], e.Children[1]
	upperOnLeft := e.Kind == ast.LT || e.Kind == ast.LE
	switch {
	case isIntegral(a) && isIntegral(b):
		return prim(types.Bool), false
	case isClock(a) && isClock(b):
		return prim(types.Invariant), false
	case isClock(a) && isIntegral(b):
		if upperOnLeft {
			return prim(types.Invariant), false
		}
		return prim(types.Guard), false
	case isIntegral(a) && isClock(b):
		if upperOnLeft {
			return prim(types.Guard), false
		}
		return prim(types.Invariant), false
	case isDiff(a) && isIntegral(b), isIntegral(a) && isDiff(b):
		return prim(types.Invariant), false
	case isNumber(a) && isNumber(b):
		return prim(types.Bool), false
	}
	return nil, false
}

func (tc *TypeChecker) typeOfEquality(e *ast.Expression, negated bool) (*types.Type, bool) {
	a, b := e.Children[0], e.Children[1]

	// Rate constraints: x' == expr inside invariants.
	if !negated {
		if (a.Type.Is(types.Rate) && isNumber(b)) ||
			(isNumber(a) && b.Type.Is(types.Rate)) {
			return prim(types.InvariantWR), false
		}
	}

	if AreEqCompatible(a.Type, b.Type) {
		return prim(types.Bool), false
	}

	clockish := func(x *ast.Expression) bool { return isClock(x) || isDiff(x) }
	if (clockish(a) && (clockish(b) || isIntegral(b))) ||
		(clockish(b) && isIntegral(a)) {
		if negated {
			return prim(types.Constraint), false
		}
		return prim(types.Guard), false
	}
	return nil, false
}

// ============================================================================
// Structure
// ============================================================================

func (tc *TypeChecker) typeOfDot(e *ast.Expression) (*types.Type, bool) {
	base := e.Children[0]
	t := base.Type
	switch {
	case t.IsRecord():
		r := t.Strip()
		if e.Value < 0 || e.Value >= r.Size() {
			tc.handleError(e.Position, MsgUnknownField)
			return nil, true
		}
		return r.Sub(e.Value), false
	case t.Is(types.Process):
		if e.Symbol == nil || e.Symbol.Type == nil {
			return nil, false
		}
		return e.Symbol.Type, false
	}
	return nil, false
}

func (tc *TypeChecker) typeOfIndex(e *ast.Expression) (*types.Type, bool) {
	base, idx := e.Children[0], e.Children[1]
	if !base.Type.IsArray() {
		tc.handleError(base.Position, MsgIncompatibleType)
		return nil, true
	}
	size := base.Type.ArraySize()
	if size.IsScalar() {
		if !sameScalar(size, idx.Type) {
			tc.handleError(idx.Position, MsgIncompatibleType)
			return nil, true
		}
	} else if !isIntegral(idx) {
		tc.handleError(idx.Position, MsgIntegerExpected)
		return nil, true
	}
	return base.Type.Strip().Sub(0), false
}

func (tc *TypeChecker) typeOfCall(e *ast.Expression) (*types.Type, bool) {
	callee := e.Children[0]
	if !callee.Type.IsFunction() {
		tc.handleError(callee.Position, MsgIncompatibleType)
		return nil, true
	}
	params := callee.Type.Parameters()
	args := e.Children[1:]
	if len(args) != len(params) {
		tc.handleError(e.Position, MsgIncompatibleArg)
		return nil, true
	}
	ok := true
	for i, arg := range args {
		if !tc.isParameterCompatible(params[i].Type, arg) {
			tc.handleError(arg.Position, MsgIncompatibleArg)
			ok = false
		}
	}
	if !ok {
		return nil, true
	}
	return callee.Type.ReturnType(), false
}

// ============================================================================
// Quantifiers
// ============================================================================

func (tc *TypeChecker) checkQuantifierBinder(e *ast.Expression) bool {
	if e.Symbol == nil {
		return false
	}
	ok := tc.checkType(e.Symbol.Type, false, false)
	if !isSideEffectFree(e.Children[0]) {
		tc.handleError(e.Children[0].Position, MsgExprSideEffect)
		ok = false
	}
	return ok
}

func (tc *TypeChecker) typeOfForall(e *ast.Expression) (*types.Type, bool) {
	if !tc.checkQuantifierBinder(e) {
		return nil, true
	}
	bt := e.Children[0].Type
	switch {
	case bt.IsIntegral():
		return prim(types.Bool), false
	case bt.Is(types.Invariant):
		return prim(types.Invariant), false
	case bt.Is(types.InvariantWR):
		return prim(types.InvariantWR), false
	case bt.Is(types.Guard):
		return prim(types.Guard), false
	case bt.Is(types.Constraint):
		return prim(types.Constraint), false
	}
	tc.handleError(e.Children[0].Position, MsgBooleanExpected)
	return nil, true
}

func (tc *TypeChecker) typeOfExists(e *ast.Expression) (*types.Type, bool) {
	if !tc.checkQuantifierBinder(e) {
		return nil, true
	}
	body := e.Children[0]
	switch {
	case isIntegral(body):
		return prim(types.Bool), false
	case isConstraint(body):
		return prim(types.Constraint), false
	}
	tc.handleError(body.Position, MsgBooleanExpected)
	return nil, true
}

func (tc *TypeChecker) typeOfSum(e *ast.Expression) (*types.Type, bool) {
	if !tc.checkQuantifierBinder(e) {
		return nil, true
	}
	body := e.Children[0]
	switch {
	case isIntegral(body):
		return prim(types.Int), false
	case isNumber(body):
		return prim(types.Double), false
	}
	tc.handleError(body.Position, MsgNumberExpected)
	return nil, true
}

// ============================================================================
// Dynamic templates
// ============================================================================

func (tc *TypeChecker) typeOfSpawn(e *ast.Expression) (*types.Type, bool) {
	if tc.function != nil {
		tc.handleError(e.Position, MsgDynamicOnlyOnEdges)
		return nil, true
	}
	if e.Symbol == nil {
		return nil, false
	}
	tmpl := tc.system.FindTemplate(e.Symbol.Name)
	if tmpl == nil || !tmpl.Dynamic {
		tc.handleError(e.Position, MsgSpawnNonDynamic)
		return nil, true
	}
	if !tmpl.Defined {
		tc.handleError(e.Position, MsgTemplateNotDefined)
		return nil, true
	}
	params := tmpl.Parameters
	n := 0
	if params != nil {
		n = params.Size()
	}
	if len(e.Children) != n {
		tc.handleError(e.Position, MsgIncompatibleArg)
		return nil, true
	}
	ok := true
	for i, arg := range e.Children {
		pt := params.Symbol(i).Type
		if pt.Is(types.Ref) || !AreAssignmentCompatible(pt, arg.Type, false) {
			tc.handleError(arg.Position, MsgIncompatibleArg)
			ok = false
		}
	}
	if !ok {
		return nil, true
	}
	return prim(types.Int), false
}

// ============================================================================
// Statistical queries
// ============================================================================

// typeOfStatistical checks the operand types shared by the SMC query
// kinds; run counts and bounds are validated against the statistical
// discipline by the property checker.
func (tc *TypeChecker) typeOfStatistical(e *ast.Expression) (*types.Type, bool) {
	if len(e.Children) < 3 {
		return nil, false
	}
	runs, boundVar, bound := e.Children[0], e.Children[1], e.Children[2]
	if !isIntegral(runs) {
		tc.handleError(runs.Position, MsgIntegerExpected)
		return nil, true
	}
	if !isIntegral(boundVar) && !isClock(boundVar) && !boundVar.Type.IsDouble() {
		tc.handleError(boundVar.Position, MsgClockExpected)
		return nil, true
	}
	if !isNumber(bound) {
		tc.handleError(bound.Position, MsgNumberExpected)
		return nil, true
	}
	for _, c := range e.Children[3:] {
		switch {
		case isIntegral(c), isConstraint(c), isNumber(c):
		default:
			tc.handleError(c.Position, MsgBooleanExpected)
			return nil, true
		}
	}
	return prim(types.Formula), false
}

func isTIOOperand(e *ast.Expression) bool {
	return e.Type.Is(types.Process) || e.Type.Is(types.TIOGraph)
}
