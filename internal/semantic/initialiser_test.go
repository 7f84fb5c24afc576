package semantic

import (
	"testing"

	"github.com/modelchk/go-utap/internal/ast"
	"github.com/modelchk/go-utap/internal/types"
)

func pointType() *types.Type {
	return types.NewRecord([]types.Field{
		{Label: "x", Type: intType()},
		{Label: "y", Type: intType()},
	})
}

func initList(labels []string, exprs ...*ast.Expression) *ast.Expression {
	e := ast.NewNary(ast.List, exprs, pos(0))
	e.Labels = labels
	return e
}

func TestRecordInitialiserIsReordered(t *testing.T) {
	// { y = 1, x = 2 } against struct { int x; int y; }
	sys := ast.NewSystem()
	init := initList([]string{"y", "x"}, num(1), num(2))
	declareVar(sys, "p", pointType(), init)
	sys.Accept(newChecker(sys))
	expectNoErrors(t, sys)

	if len(init.Children) != 2 {
		t.Fatalf("expected two children, got %d", len(init.Children))
	}
	if init.Children[0].Value != 2 || init.Children[1].Value != 1 {
		t.Errorf("expected reordering to {x = 2, y = 1}, got %s", init)
	}
	if init.Labels[0] != "x" || init.Labels[1] != "y" {
		t.Errorf("labels not normalised: %v", init.Labels)
	}
}

func TestPositionalRecordInitialiser(t *testing.T) {
	sys := ast.NewSystem()
	init := initList(nil, num(1), num(2))
	declareVar(sys, "p", pointType(), init)
	sys.Accept(newChecker(sys))
	expectNoErrors(t, sys)
}

func TestUnknownFieldInInitialiser(t *testing.T) {
	sys := ast.NewSystem()
	init := initList([]string{"z", ""}, num(1), num(2))
	declareVar(sys, "p", pointType(), init)
	sys.Accept(newChecker(sys))
	expectError(t, sys, MsgUnknownField)
}

func TestIncompleteInitialiser(t *testing.T) {
	sys := ast.NewSystem()
	init := initList(nil, num(1))
	declareVar(sys, "p", pointType(), init)
	sys.Accept(newChecker(sys))
	expectError(t, sys, MsgIncompleteInit)
}

func TestTooManyElements(t *testing.T) {
	sys := ast.NewSystem()
	init := initList(nil, num(1), num(2), num(3))
	declareVar(sys, "p", pointType(), init)
	sys.Accept(newChecker(sys))
	expectError(t, sys, MsgTooManyElements)
}

func TestMultipleInitialisersForField(t *testing.T) {
	sys := ast.NewSystem()
	init := initList([]string{"x", "x"}, num(1), num(2))
	declareVar(sys, "p", pointType(), init)
	sys.Accept(newChecker(sys))
	expectError(t, sys, MsgMultipleInitForField)
}

func TestFieldNamesRejectedInArrayInitialiser(t *testing.T) {
	sys := ast.NewSystem()
	size := types.NewRange(intType(), num(0), num(1))
	init := initList([]string{"x", ""}, num(1), num(2))
	declareVar(sys, "a", types.NewArray(intType(), size), init)
	sys.Accept(newChecker(sys))
	expectError(t, sys, MsgFieldNameInArray)
}

func TestInitialiserMustBeComputable(t *testing.T) {
	sys := ast.NewSystem()
	i := declareVar(sys, "i", intType(), nil)
	declareVar(sys, "j", intType(), ident(i))
	sys.Accept(newChecker(sys))
	expectError(t, sys, MsgNotComputable)
}

func TestInitialiserMustBeSideEffectFree(t *testing.T) {
	sys := ast.NewSystem()
	i := declareVar(sys, "i", intType(), nil)
	declareVar(sys, "j", intType(), binary(ast.Assign, ident(i), num(1)))
	sys.Accept(newChecker(sys))
	expectError(t, sys, MsgInitSideEffect)
}

func TestScalarInitialiserCompatibility(t *testing.T) {
	sys := ast.NewSystem()
	declareVar(sys, "x", clockType(), ast.NewDouble(1.5, pos(0)))
	sys.Accept(newChecker(sys))
	expectNoErrors(t, sys)

	sys2 := ast.NewSystem()
	declareVar(sys2, "x", clockType(), num(1))
	sys2.Accept(newChecker(sys2))
	expectError(t, sys2, MsgInvalidInit)
}
