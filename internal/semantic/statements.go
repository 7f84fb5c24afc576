package semantic

import (
	"github.com/modelchk/go-utap/internal/ast"
	"github.com/modelchk/go-utap/internal/types"
)

// checkStatement type-checks one statement of a function body. It is a
// single recursive type-switch over the closed statement set.
func (tc *TypeChecker) checkStatement(s ast.Statement) bool {
	switch st := s.(type) {
	case *ast.EmptyStatement:
		return true

	case *ast.ExprStatement:
		return tc.checkAssignmentExpression(st.Expr)

	case *ast.AssertStatement:
		if !tc.checkExpression(st.Expr) {
			return false
		}
		if !isSideEffectFree(st.Expr) {
			tc.handleError(st.Expr.Position, MsgAssertionSideEffect)
			return false
		}
		return true

	case *ast.ForStatement:
		ok := tc.checkAssignmentExpression(st.Init)
		ok = tc.checkIntegralCondition(st.Cond) && ok
		ok = tc.checkAssignmentExpression(st.Step) && ok
		return tc.checkStatement(st.Body) && ok

	case *ast.IterationStatement:
		ok := true
		t := st.Sym.Type
		if !tc.checkType(t, false, false) {
			ok = false
		} else if !t.IsScalar() && !t.IsIntegral() {
			tc.handleError(st.Position, MsgScalarOrIntExpected)
			ok = false
		} else if !t.IsScalar() && !t.IsRange() {
			tc.handleError(st.Position, MsgRangeExpected)
			ok = false
		}
		return tc.checkStatement(st.Body) && ok

	case *ast.WhileStatement:
		ok := tc.checkIntegralCondition(st.Cond)
		return tc.checkStatement(st.Body) && ok

	case *ast.DoWhileStatement:
		ok := tc.checkStatement(st.Body)
		return tc.checkIntegralCondition(st.Cond) && ok

	case *ast.BlockStatement:
		return tc.checkBlock(st)

	case *ast.SwitchStatement:
		ok := tc.checkIntegralCondition(st.Cond)
		for _, c := range st.Cases {
			ok = tc.checkStatement(c) && ok
		}
		return ok

	case *ast.CaseStatement:
		ok := true
		if st.Cond != nil {
			ok = tc.checkIntegralCondition(st.Cond)
		}
		for _, inner := range st.Stmts {
			ok = tc.checkStatement(inner) && ok
		}
		return ok

	case *ast.DefaultStatement:
		ok := true
		for _, inner := range st.Stmts {
			ok = tc.checkStatement(inner) && ok
		}
		return ok

	case *ast.BreakStatement, *ast.ContinueStatement:
		return true

	case *ast.IfStatement:
		ok := tc.checkIntegralCondition(st.Cond)
		ok = tc.checkStatement(st.Then) && ok
		if st.Else != nil {
			ok = tc.checkStatement(st.Else) && ok
		}
		return ok

	case *ast.ReturnStatement:
		return tc.checkReturn(st)
	}
	return false
}

// checkIntegralCondition requires an integral expression.
func (tc *TypeChecker) checkIntegralCondition(e *ast.Expression) bool {
	if !tc.checkExpression(e) {
		return false
	}
	if !isIntegral(e) {
		tc.handleError(e.Position, MsgBooleanExpected)
		return false
	}
	return true
}

// checkBlock checks a braced scope: local declarations first, then the
// contained statements.
func (tc *TypeChecker) checkBlock(b *ast.BlockStatement) bool {
	ok := true
	if b.Frame != nil {
		for i := 0; i < b.Frame.Size(); i++ {
			sym := b.Frame.Symbol(i)
			if !tc.checkType(sym.Type, false, false) {
				ok = false
			}
			v, _ := sym.Data.(*ast.Variable)
			if v == nil || v.Init == nil {
				continue
			}
			if !tc.checkExpression(v.Init) {
				ok = false
				continue
			}
			if !isSideEffectFree(v.Init) {
				tc.handleError(v.Init.Position, MsgInitSideEffect)
				ok = false
				continue
			}
			if !tc.checkInitialiser(sym.Type, v.Init) {
				ok = false
			}
		}
	}
	for _, s := range b.Stmts {
		ok = tc.checkStatement(s) && ok
	}
	return ok
}

// checkReturn tests the returned value against the enclosing function's
// declared return type.
func (tc *TypeChecker) checkReturn(st *ast.ReturnStatement) bool {
	if st.Expr == nil {
		return true
	}
	if !tc.checkExpression(st.Expr) {
		return false
	}
	if tc.function == nil {
		return false
	}
	ret := tc.function.Sym.Type.ReturnType()
	if !tc.isParameterCompatible(ret, st.Expr) {
		tc.handleError(st.Position, MsgIncompatibleType)
		return false
	}
	return true
}

// checkAssignmentExpression checks an expression in statement position:
// it must produce a storable value or void, and ought to do something.
// The constant 1 is tolerated silently; any other side-effect-free
// expression draws a warning.
func (tc *TypeChecker) checkAssignmentExpression(e *ast.Expression) bool {
	if !tc.checkExpression(e) {
		return false
	}
	if !isAssignable(e.Type) && !e.Type.IsVoid() &&
		!e.Type.Is(types.Location) {
		tc.handleError(e.Position, MsgInvalidAssignment)
		return false
	}
	if isSideEffectFree(e) && !e.IsTrue() {
		tc.handleWarning(e.Position, MsgNoEffect)
	}
	return true
}

// returnsOnAllPaths is a conservative all-paths-return analysis: an if
// without an else never counts as returning, and loops are ignored.
func returnsOnAllPaths(s ast.Statement) bool {
	switch st := s.(type) {
	case *ast.ReturnStatement:
		return true
	case *ast.BlockStatement:
		if len(st.Stmts) == 0 {
			return false
		}
		return returnsOnAllPaths(st.Stmts[len(st.Stmts)-1])
	case *ast.IfStatement:
		return st.Else != nil &&
			returnsOnAllPaths(st.Then) && returnsOnAllPaths(st.Else)
	}
	return false
}
