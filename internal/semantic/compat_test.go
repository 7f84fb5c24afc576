package semantic

import (
	"testing"

	"github.com/modelchk/go-utap/internal/ast"
	"github.com/modelchk/go-utap/internal/types"
)

func TestEquivalenceIgnoresTransparentPrefixes(t *testing.T) {
	a := types.NewPrefix(types.Constant, intType())
	b := types.NewPrefix(types.SystemMeta, intType())
	if !AreEquivalent(a, b) {
		t.Error("const int and meta int should be equivalent")
	}
	if !AreEquivalent(types.NewPrefix(types.Ref, clockType()), clockType()) {
		t.Error("ref clock and clock should be equivalent")
	}
}

func TestEquivalenceOfRanges(t *testing.T) {
	r1 := types.NewRange(intType(), num(0), num(4))
	r2 := types.NewRange(intType(), num(0), num(4))
	r3 := types.NewRange(intType(), num(0), num(5))
	if !AreEquivalent(r1, r2) {
		t.Error("ranges with equal endpoints should be equivalent")
	}
	if AreEquivalent(r1, r3) {
		t.Error("ranges with different endpoints should differ")
	}
	if AreEquivalent(r1, intType()) {
		t.Error("a range and a plain int should differ")
	}
}

func TestEquivalenceOfRecords(t *testing.T) {
	mk := func(first string) *types.Type {
		return types.NewRecord([]types.Field{
			{Label: first, Type: intType()},
			{Label: "y", Type: boolType()},
		})
	}
	if !AreEquivalent(mk("x"), mk("x")) {
		t.Error("identical records should be equivalent")
	}
	if AreEquivalent(mk("x"), mk("z")) {
		t.Error("records with different field names should differ")
	}
}

func TestEquivalenceOfChannels(t *testing.T) {
	plain := chanType()
	urgent := types.NewPrefix(types.Urgent, chanType())
	bcast := types.NewPrefix(types.Broadcast, chanType())
	if !AreEquivalent(urgent, urgent) || !AreEquivalent(bcast, bcast) {
		t.Error("channels of the same capability should be equivalent")
	}
	if AreEquivalent(plain, urgent) || AreEquivalent(bcast, urgent) {
		t.Error("channels of different capability should differ")
	}
}

// Reflexivity and symmetry over a representative sample.
func TestEquivalenceProperties(t *testing.T) {
	sample := []*types.Type{
		intType(), boolType(), doubleType(), clockType(), costType(),
		chanType(),
		types.NewRange(intType(), num(0), num(4)),
		types.NewArray(intType(), types.NewRange(intType(), num(0), num(4))),
		types.NewRecord([]types.Field{{Label: "x", Type: intType()}}),
	}
	for _, a := range sample {
		if !AreEquivalent(a, a) {
			t.Errorf("equivalence not reflexive for %s", a)
		}
		if !AreAssignmentCompatible(a, a, false) {
			t.Errorf("assignment compatibility not reflexive for %s", a)
		}
		for _, b := range sample {
			if AreEquivalent(a, b) != AreEquivalent(b, a) {
				t.Errorf("equivalence not symmetric for %s, %s", a, b)
			}
		}
	}
}

func TestAssignmentCompatibility(t *testing.T) {
	if !AreAssignmentCompatible(intType(), boolType(), false) {
		t.Error("integral to integral should be compatible")
	}
	if !AreAssignmentCompatible(clockType(), intType(), false) {
		t.Error("clock accepts any number outside initialisers")
	}
	if !AreAssignmentCompatible(clockType(), doubleType(), true) {
		t.Error("clock accepts a double in initialisers")
	}
	if AreAssignmentCompatible(clockType(), intType(), true) {
		t.Error("clock must not accept an int in initialisers")
	}
	if AreAssignmentCompatible(intType(), clockType(), false) {
		t.Error("int must not accept a clock")
	}
}

func TestEqCompatibilityExcludesClocks(t *testing.T) {
	if !AreEqCompatible(intType(), boolType()) {
		t.Error("integrals are mutually eq-compatible")
	}
	if AreEqCompatible(clockType(), clockType()) {
		t.Error("clock equality is a guard, not a boolean")
	}
	pv := types.NewPrimitive(types.ProcessVar)
	if !AreEqCompatible(pv, pv) {
		t.Error("process vars are mutually eq-compatible")
	}
}

func TestChannelCapabilityOrder(t *testing.T) {
	urgent := types.NewPrefix(types.Urgent, chanType())
	bcast := types.NewPrefix(types.Broadcast, chanType())
	plain := chanType()
	if urgent.ChannelCapability() != 0 || bcast.ChannelCapability() != 1 ||
		plain.ChannelCapability() != 2 {
		t.Error("capability order must be urgent < broadcast < plain")
	}
}

// ============================================================================
// Lvalue analyses
// ============================================================================

func TestLValueImplications(t *testing.T) {
	sys := ast.NewSystem()
	i := declareVar(sys, "i", intType(), nil)
	k := declareVar(sys, "k", types.NewPrefix(types.Constant, intType()), num(1))
	size := types.NewRange(intType(), num(0), num(4))
	arr := declareVar(sys, "a", types.NewArray(intType(), size), nil)
	tc := newChecker(sys)

	exprs := []*ast.Expression{
		ident(i),
		ident(k),
		binary(ast.ArrayIndex, ident(arr), num(2)),
		binary(ast.ArrayIndex, ident(arr), ident(i)),
		num(7),
	}
	for _, e := range exprs {
		tc.checkExpression(e)
		if tc.isModifiableLValue(e) && !tc.isLValue(e) {
			t.Errorf("modifiable lvalue that is not an lvalue: %s", e)
		}
		if tc.isUniqueReference(e) && !tc.isLValue(e) {
			t.Errorf("unique reference that is not an lvalue: %s", e)
		}
	}

	if tc.isModifiableLValue(ident(k)) {
		t.Error("a constant is not a modifiable lvalue")
	}
	if !tc.isLValue(ck(tc, ident(k))) {
		t.Error("a constant is still an lvalue")
	}
}

// ck checks the expression and returns it, for inline assertions.
func ck(tc *TypeChecker, e *ast.Expression) *ast.Expression {
	tc.checkExpression(e)
	return e
}

func TestUniqueReferenceNeedsComputableIndices(t *testing.T) {
	sys := ast.NewSystem()
	size := types.NewRange(intType(), num(0), num(4))
	arr := declareVar(sys, "a", types.NewArray(intType(), size), nil)
	i := declareVar(sys, "i", intType(), nil)
	n := declareVar(sys, "n", types.NewPrefix(types.Constant, intType()), num(2))
	tc := newChecker(sys)

	if !tc.isUniqueReference(ck(tc, binary(ast.ArrayIndex, ident(arr), num(1)))) {
		t.Error("constant index should give a unique reference")
	}
	if !tc.isUniqueReference(ck(tc, binary(ast.ArrayIndex, ident(arr), ident(n)))) {
		t.Error("const-symbol index should give a unique reference")
	}
	if tc.isUniqueReference(ck(tc, binary(ast.ArrayIndex, ident(arr), ident(i)))) {
		t.Error("variable index must not give a unique reference")
	}
}
