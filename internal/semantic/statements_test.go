package semantic

import (
	"testing"

	"github.com/modelchk/go-utap/internal/ast"
	"github.com/modelchk/go-utap/internal/types"
)

// declareFunction adds a global function with the given return type,
// parameters and body.
func declareFunction(sys *ast.System, name string, ret *types.Type, params []types.Field, body *ast.BlockStatement) *ast.Function {
	sym := sys.Global.Declare(name, types.NewFunction(ret, params), nil)
	frame := ast.NewFrame(sys.Global)
	for _, p := range params {
		frame.Declare(p.Label, p.Type, nil)
	}
	fn := &ast.Function{Sym: sym, Parameters: frame, Body: body, Position: pos(0)}
	sym.Data = fn
	sys.Functions = append(sys.Functions, fn)
	return fn
}

func block(stmts ...ast.Statement) *ast.BlockStatement {
	return &ast.BlockStatement{Stmts: stmts, Position: pos(0)}
}

func TestUselessExpressionStatementWarns(t *testing.T) {
	// { 1+1; return; } in a void function: the addition has no effect,
	// the bare return is fine.
	sys := ast.NewSystem()
	declareFunction(sys, "f", types.NewPrimitive(types.Void), nil, block(
		&ast.ExprStatement{Expr: binary(ast.Plus, num(1), num(1))},
		&ast.ReturnStatement{Position: pos(0)},
	))
	sys.Accept(newChecker(sys))
	expectNoErrors(t, sys)
	expectWarning(t, sys, MsgNoEffect)
}

func TestForLoop(t *testing.T) {
	sys := ast.NewSystem()
	i := declareVar(sys, "i", intType(), nil)
	declareFunction(sys, "f", types.NewPrimitive(types.Void), nil, block(
		&ast.ForStatement{
			Init: binary(ast.Assign, ident(i), num(0)),
			Cond: binary(ast.LT, ident(i), num(10)),
			Step: unary(ast.PostIncrement, ident(i)),
			Body: &ast.EmptyStatement{Position: pos(0)},
		},
	))
	sys.Accept(newChecker(sys))
	expectNoErrors(t, sys)
}

func TestWhileConditionMustBeIntegral(t *testing.T) {
	sys := ast.NewSystem()
	x := declareVar(sys, "x", clockType(), nil)
	declareFunction(sys, "f", types.NewPrimitive(types.Void), nil, block(
		&ast.WhileStatement{
			Cond: ident(x),
			Body: &ast.EmptyStatement{Position: pos(0)},
		},
	))
	sys.Accept(newChecker(sys))
	expectError(t, sys, MsgBooleanExpected)
}

func TestIterationOverRange(t *testing.T) {
	sys := ast.NewSystem()
	frame := ast.NewFrame(sys.Global)
	it := frame.Declare("k", types.NewRange(intType(), num(0), num(3)), nil)
	_ = it
	declareFunction(sys, "f", types.NewPrimitive(types.Void), nil, block(
		&ast.IterationStatement{
			Frame:    frame,
			Sym:      frame.Symbol(0),
			Body:     &ast.EmptyStatement{Position: pos(0)},
			Position: pos(0),
		},
	))
	sys.Accept(newChecker(sys))
	expectNoErrors(t, sys)
}

func TestIterationNeedsRange(t *testing.T) {
	sys := ast.NewSystem()
	frame := ast.NewFrame(sys.Global)
	frame.Declare("k", intType(), nil)
	declareFunction(sys, "f", types.NewPrimitive(types.Void), nil, block(
		&ast.IterationStatement{
			Frame:    frame,
			Sym:      frame.Symbol(0),
			Body:     &ast.EmptyStatement{Position: pos(0)},
			Position: pos(0),
		},
	))
	sys.Accept(newChecker(sys))
	expectError(t, sys, MsgRangeExpected)
}

func TestAssertMustBeSideEffectFree(t *testing.T) {
	sys := ast.NewSystem()
	i := declareVar(sys, "i", intType(), nil)
	declareFunction(sys, "f", types.NewPrimitive(types.Void), nil, block(
		&ast.AssertStatement{
			Expr:     binary(ast.Assign, ident(i), num(1)),
			Position: pos(0),
		},
	))
	sys.Accept(newChecker(sys))
	expectError(t, sys, MsgAssertionSideEffect)
}

func TestReturnTypeChecked(t *testing.T) {
	sys := ast.NewSystem()
	x := declareVar(sys, "x", clockType(), nil)
	declareFunction(sys, "f", intType(), nil, block(
		&ast.ReturnStatement{Expr: ident(x), Position: pos(0)},
	))
	sys.Accept(newChecker(sys))
	expectError(t, sys, MsgIncompatibleType)
}

func TestMissingReturnDetected(t *testing.T) {
	sys := ast.NewSystem()
	declareFunction(sys, "f", intType(), nil, block(
		&ast.IfStatement{
			Cond:     num(1),
			Then:     &ast.ReturnStatement{Expr: num(1), Position: pos(0)},
			Position: pos(0),
		},
	))
	sys.Accept(newChecker(sys))
	// An if without an else never counts as returning on all paths.
	expectError(t, sys, MsgReturnStmtExpected)
}

func TestAllPathsReturn(t *testing.T) {
	sys := ast.NewSystem()
	declareFunction(sys, "f", intType(), nil, block(
		&ast.IfStatement{
			Cond:     num(1),
			Then:     &ast.ReturnStatement{Expr: num(1), Position: pos(0)},
			Else:     &ast.ReturnStatement{Expr: num(2), Position: pos(0)},
			Position: pos(0),
		},
	))
	sys.Accept(newChecker(sys))
	expectNoErrors(t, sys)
}

func TestBlockLocalInitialiser(t *testing.T) {
	sys := ast.NewSystem()
	frame := ast.NewFrame(sys.Global)
	sym := frame.Declare("v", intType(), nil)
	sym.Data = &ast.Variable{Sym: sym, Init: num(3), Position: pos(0)}
	declareFunction(sys, "f", types.NewPrimitive(types.Void), nil,
		&ast.BlockStatement{Frame: frame, Position: pos(0)})
	sys.Accept(newChecker(sys))
	expectNoErrors(t, sys)
}

func TestInvalidReturnType(t *testing.T) {
	sys := ast.NewSystem()
	declareFunction(sys, "f", chanType(), nil, block())
	sys.Accept(newChecker(sys))
	expectError(t, sys, MsgInvalidReturnType)
}

func TestChangesAndDependsExcludeLocals(t *testing.T) {
	sys := ast.NewSystem()
	g := declareVar(sys, "g", intType(), nil)
	h := declareVar(sys, "h", intType(), nil)

	frame := ast.NewFrame(sys.Global)
	local := frame.Declare("l", intType(), nil)
	fn := declareFunction(sys, "f", types.NewPrimitive(types.Void),
		[]types.Field{{Label: "p", Type: intType()}},
		&ast.BlockStatement{Frame: frame, Stmts: []ast.Statement{
			&ast.ExprStatement{Expr: binary(ast.Assign, ident(g), ident(h))},
			&ast.ExprStatement{Expr: binary(ast.Assign, ident(local), num(1))},
		}, Position: pos(0)})

	sys.Accept(newChecker(sys))
	expectNoErrors(t, sys)

	if !fn.Changes[g] {
		t.Error("changes must contain the written global")
	}
	if fn.Changes[local] {
		t.Error("changes must not contain locals")
	}
	if !fn.Depends[h] {
		t.Error("depends must contain the read global")
	}
	param := fn.Parameters.Symbol(0)
	if fn.Depends[param] || fn.Changes[param] {
		t.Error("parameters are local to the function")
	}
}
