package semantic

import (
	"strings"
	"testing"

	"github.com/modelchk/go-utap/internal/ast"
	"github.com/modelchk/go-utap/internal/config"
	"github.com/modelchk/go-utap/internal/types"
	"github.com/modelchk/go-utap/pkg/position"
)

// ============================================================================
// Builders
// ============================================================================

func pos(n uint32) position.Position {
	return position.Position{Start: n, End: n + 1}
}

func intType() *types.Type    { return types.NewPrimitive(types.Int) }
func boolType() *types.Type   { return types.NewPrimitive(types.Bool) }
func clockType() *types.Type  { return types.NewPrimitive(types.Clock) }
func costType() *types.Type   { return types.NewPrimitive(types.Cost) }
func doubleType() *types.Type { return types.NewPrimitive(types.Double) }
func chanType() *types.Type   { return types.NewPrimitive(types.Channel) }

func num(v int) *ast.Expression {
	return ast.NewConstant(v, pos(0))
}

func ident(sym *ast.Symbol) *ast.Expression {
	return ast.NewIdentifier(sym, pos(0))
}

func binary(k ast.ExprKind, l, r *ast.Expression) *ast.Expression {
	return ast.NewBinary(k, l, r, pos(0))
}

func unary(k ast.ExprKind, e *ast.Expression) *ast.Expression {
	return ast.NewUnary(k, e, pos(0))
}

// declareVar declares a global variable and returns its symbol.
func declareVar(sys *ast.System, name string, t *types.Type, init *ast.Expression) *ast.Symbol {
	sym := sys.Global.Declare(name, t, nil)
	v := &ast.Variable{Sym: sym, Init: init, Position: pos(0)}
	sym.Data = v
	sys.Variables = append(sys.Variables, v)
	return sym
}

// newChecker builds a checker over the system with default options.
func newChecker(sys *ast.System) *TypeChecker {
	return New(sys, config.Default())
}

// checkedExpr type-checks an expression against a fresh system and
// returns the checker for further assertions.
func checkedExpr(t *testing.T, e *ast.Expression) *TypeChecker {
	t.Helper()
	sys := ast.NewSystem()
	tc := newChecker(sys)
	tc.checkExpression(e)
	return tc
}

// ============================================================================
// Assertions
// ============================================================================

func expectNoErrors(t *testing.T, sys *ast.System) {
	t.Helper()
	if errs := sys.Errors(); len(errs) > 0 {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func expectError(t *testing.T, sys *ast.System, id string) {
	t.Helper()
	for _, d := range sys.Errors() {
		if strings.Contains(d.Message, id) {
			return
		}
	}
	t.Errorf("expected error %s, got: %v", id, sys.Errors())
}

func expectNoError(t *testing.T, sys *ast.System, id string) {
	t.Helper()
	for _, d := range sys.Errors() {
		if strings.Contains(d.Message, id) {
			t.Errorf("did not expect error %s, got: %v", id, sys.Errors())
		}
	}
}

func expectWarning(t *testing.T, sys *ast.System, id string) {
	t.Helper()
	for _, d := range sys.Warnings() {
		if strings.Contains(d.Message, id) {
			return
		}
	}
	t.Errorf("expected warning %s, got: %v", id, sys.Warnings())
}

func expectType(t *testing.T, e *ast.Expression, k types.Kind) {
	t.Helper()
	if e.Type == nil {
		t.Fatalf("expression %s has no type", e)
	}
	if e.Type.Strip().Kind != k {
		t.Errorf("expected %s, got %s for %s", k, e.Type, e)
	}
}
