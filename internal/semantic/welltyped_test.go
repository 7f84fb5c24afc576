package semantic

import (
	"testing"

	"github.com/modelchk/go-utap/internal/ast"
	"github.com/modelchk/go-utap/internal/types"
)

func checkDeclaredType(t *types.Type) *ast.System {
	sys := ast.NewSystem()
	declareVar(sys, "v", t, nil)
	sys.Accept(newChecker(sys))
	return sys
}

func TestPrefixLegality(t *testing.T) {
	tests := []struct {
		name string
		typ  *types.Type
		id   string
	}{
		{"urgent chan ok", types.NewPrefix(types.Urgent, chanType()), ""},
		{"urgent int", types.NewPrefix(types.Urgent, intType()), MsgUrgentOnlyLocChan},
		{"broadcast chan ok", types.NewPrefix(types.Broadcast, chanType()), ""},
		{"broadcast clock", types.NewPrefix(types.Broadcast, clockType()), MsgBroadcastOnlyChan},
		{"committed int", types.NewPrefix(types.Committed, intType()), MsgCommittedOnlyLoc},
		{"hybrid clock ok", types.NewPrefix(types.Hybrid, clockType()), ""},
		{"hybrid int", types.NewPrefix(types.Hybrid, intType()), MsgHybridOnlyClocks},
		{"const clock", types.NewPrefix(types.Constant, clockType()), MsgConstNotClocks},
		{"meta clock", types.NewPrefix(types.SystemMeta, clockType()), MsgMetaNotClocks},
		{"const chan", types.NewPrefix(types.Constant, chanType()), MsgNotConstOrMeta},
		{"ref clock ok", types.NewPrefix(types.Ref, clockType()), ""},
		{"ref void", types.NewPrefix(types.Ref, types.NewPrimitive(types.Void)), MsgRefNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := checkDeclaredType(tt.typ)
			if tt.id == "" {
				expectNoErrors(t, sys)
			} else {
				expectError(t, sys, tt.id)
			}
		})
	}
}

func TestHybridClockArray(t *testing.T) {
	size := types.NewRange(intType(), num(0), num(3))
	arr := types.NewArray(clockType(), size)
	sys := checkDeclaredType(types.NewPrefix(types.Hybrid, arr))
	expectNoErrors(t, sys)
}

func TestRangeBoundsMustBeComputableIntegers(t *testing.T) {
	sys := ast.NewSystem()
	n := declareVar(sys, "n", intType(), nil) // not constant
	declareVar(sys, "v", types.NewRange(intType(), num(0), ident(n)), nil)
	sys.Accept(newChecker(sys))
	expectError(t, sys, MsgNotComputable)

	sys2 := ast.NewSystem()
	d := declareVar(sys2, "d", doubleType(), nil)
	declareVar(sys2, "v", types.NewRange(intType(), num(0), ident(d)), nil)
	sys2.Accept(newChecker(sys2))
	expectError(t, sys2, MsgIntegerExpected)
}

func TestArrayOverConstantSize(t *testing.T) {
	// const int n = 5; int a[n]  -- the builder expands the size to the
	// range [0, n-1].
	sys := ast.NewSystem()
	n := declareVar(sys, "n", types.NewPrefix(types.Constant, intType()), num(5))
	size := types.NewRange(intType(), num(0),
		binary(ast.Minus, ident(n), num(1)))
	arr := types.NewArray(intType(), size)
	a := declareVar(sys, "a", arr, nil)
	sys.Accept(newChecker(sys))
	expectNoErrors(t, sys)

	if !a.Type.IsArray() || !a.Type.ArraySize().Is(types.Range) {
		t.Errorf("expected an integer-range array, got %s", a.Type)
	}
}

func TestInvalidArraySize(t *testing.T) {
	sys := checkDeclaredType(types.NewArray(intType(), doubleType()))
	expectError(t, sys, MsgInvalidArraySize)
}

func TestNoDoublesInsideStructs(t *testing.T) {
	rec := types.NewRecord([]types.Field{{Label: "d", Type: doubleType()}})
	sys := checkDeclaredType(rec)
	expectError(t, sys, MsgNotAllowedInStruct)
}

func TestConstantsRequireInitialisers(t *testing.T) {
	sys := checkDeclaredType(types.NewPrefix(types.Constant, intType()))
	expectError(t, sys, MsgConstantsNeedInit)
}
