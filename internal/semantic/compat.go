package semantic

import (
	"github.com/modelchk/go-utap/internal/ast"
	"github.com/modelchk/go-utap/internal/types"
)

// unprefix strips the prefixes that are transparent to type equivalence
// (const, meta, ref) together with labels, leaving urgent/broadcast in
// place because channel capability is part of a channel's identity.
func unprefix(t *types.Type) *types.Type {
	for t != nil {
		switch t.Kind {
		case types.Constant, types.SystemMeta, types.Ref, types.Label:
			t = t.Sub(0)
		default:
			return t
		}
	}
	return t
}

// exprEqual compares two optional bound expressions structurally.
func exprEqual(a, b types.Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

// sameScalar compares scalar sets by identity, or by their declared name
// when both carry one. Ref prefixes are transparent here.
func sameScalar(a, b *types.Type) bool {
	an, at := scalarIdentity(a)
	bn, bt := scalarIdentity(b)
	if at != nil && at == bt {
		return true
	}
	return an != "" && an == bn
}

// scalarIdentity finds the scalar node and the innermost label naming it.
func scalarIdentity(t *types.Type) (string, *types.Type) {
	name := ""
	for t != nil {
		switch t.Kind {
		case types.Label:
			name = t.FieldLabel(0)
			t = t.Sub(0)
		case types.Constant, types.SystemMeta, types.Ref, types.Range:
			t = t.Sub(0)
		case types.Scalar:
			return name, t
		default:
			return name, nil
		}
	}
	return name, nil
}

// AreEquivalent implements structural type equivalence. The const, meta
// and ref prefixes are ignored; integer ranges compare their endpoints by
// expression equality, not by value; channels compare capability; scalar
// sets compare by name equivalence.
func AreEquivalent(a, b *types.Type) bool {
	a, b = unprefix(a), unprefix(b)
	if a == nil || b == nil {
		return a == b
	}
	switch {
	case a.Is(types.Int) && b.Is(types.Int):
		al, au := a.GetRange()
		bl, bu := b.GetRange()
		if (al == nil) != (bl == nil) {
			return false
		}
		return exprEqual(al, bl) && exprEqual(au, bu)
	case a.Is(types.Bool) && b.Is(types.Bool):
		return true
	case a.IsChannel() && b.IsChannel():
		return a.ChannelCapability() == b.ChannelCapability()
	case a.Is(types.Record) && b.Is(types.Record):
		ra, rb := a.Strip(), b.Strip()
		if ra.Size() != rb.Size() {
			return false
		}
		for i := 0; i < ra.Size(); i++ {
			if ra.FieldLabel(i) != rb.FieldLabel(i) {
				return false
			}
			if !AreEquivalent(ra.Sub(i), rb.Sub(i)) {
				return false
			}
		}
		return true
	case a.Is(types.Array) && b.Is(types.Array):
		sa, sb := a.ArraySize(), b.ArraySize()
		if !arraySizesEquivalent(sa, sb) {
			return false
		}
		return AreEquivalent(a.Strip().Sub(0), b.Strip().Sub(0))
	case a.Is(types.Scalar) && b.Is(types.Scalar):
		return sameScalar(a, b)
	}
	ka, kb := a.Strip().Kind, b.Strip().Kind
	if ka == kb {
		switch ka {
		case types.Clock, types.Double, types.Cost, types.Void,
			types.Fraction, types.Rate, types.Diff, types.Process,
			types.ProcessVar, types.TIOGraph, types.DoubleInvGuard,
			types.Location:
			return true
		}
	}
	return false
}

func arraySizesEquivalent(a, b *types.Type) bool {
	if a == nil || b == nil {
		return false
	}
	if a.Is(types.Scalar) && b.Is(types.Scalar) {
		return sameScalar(a, b)
	}
	al, au := a.GetRange()
	bl, bu := b.GetRange()
	return exprEqual(al, bl) && exprEqual(au, bu)
}

// AreAssignmentCompatible decides whether an rvalue of type r may be
// stored into an lvalue of type l. In initialiser mode only a double may
// seed a clock; outside initialisers clocks and doubles accept any
// number.
func AreAssignmentCompatible(l, r *types.Type, init bool) bool {
	switch {
	case l.IsIntegral() && r.IsIntegral():
		return true
	case !init && (l.IsClock() || l.IsDouble()) && r.IsNumber():
		return true
	case init && l.IsClock() && r.IsDouble():
		return true
	}
	return AreEquivalent(l, r)
}

// AreEqCompatible decides whether == and != make a plain boolean of the
// two types. Clocks are deliberately absent: clock equalities become
// guards and are handled by the operator algebra.
func AreEqCompatible(a, b *types.Type) bool {
	switch {
	case a.IsIntegral() && b.IsIntegral():
		return true
	case a.Is(types.ProcessVar) && b.Is(types.ProcessVar):
		return true
	case a.IsClock() || b.IsClock():
		return false
	}
	return AreEquivalent(a, b)
}

// ============================================================================
// Lvalue analyses
// ============================================================================

// isModifiableLValue reports whether the expression denotes a storage
// location whose type permits writing.
func (tc *TypeChecker) isModifiableLValue(e *ast.Expression) bool {
	switch e.Kind {
	case ast.Identifier:
		return e.Symbol != nil && e.Type != nil &&
			!e.Type.IsConstant() && !e.Type.IsFunction() &&
			!e.Type.IsLocation()
	case ast.Dot, ast.ArrayIndex:
		return tc.isModifiableLValue(e.Children[0])
	case ast.InlineIf:
		return tc.isModifiableLValue(e.Children[1]) &&
			tc.isModifiableLValue(e.Children[2]) &&
			AreEquivalent(e.Children[1].Type, e.Children[2].Type)
	case ast.Comma:
		return tc.isModifiableLValue(e.Children[1])
	}
	if e.Kind.IsAssignment() || e.Kind == ast.PreIncrement || e.Kind == ast.PreDecrement {
		return tc.isModifiableLValue(e.Children[0])
	}
	return false
}

// isLValue reports whether the expression denotes a storage location at
// all, writable or not.
func (tc *TypeChecker) isLValue(e *ast.Expression) bool {
	switch e.Kind {
	case ast.Identifier:
		return e.Symbol != nil && e.Type != nil && !e.Type.IsFunction()
	case ast.Dot, ast.ArrayIndex:
		return tc.isLValue(e.Children[0])
	case ast.InlineIf:
		return tc.isLValue(e.Children[1]) &&
			tc.isLValue(e.Children[2]) &&
			AreEquivalent(e.Children[1].Type, e.Children[2].Type)
	case ast.Comma:
		return tc.isLValue(e.Children[1])
	}
	if e.Kind.IsAssignment() || e.Kind == ast.PreIncrement || e.Kind == ast.PreDecrement {
		return true
	}
	return false
}

// isUniqueReference reports whether the lvalue's identity is fixed at
// compile time: every array index on the path must be compile-time
// computable.
func (tc *TypeChecker) isUniqueReference(e *ast.Expression) bool {
	switch e.Kind {
	case ast.Identifier:
		return e.Symbol != nil && e.Type != nil && !e.Type.IsFunction()
	case ast.Dot:
		return tc.isUniqueReference(e.Children[0])
	case ast.ArrayIndex:
		return tc.isUniqueReference(e.Children[0]) &&
			tc.isCompileTimeComputable(e.Children[1])
	case ast.Comma:
		return tc.isUniqueReference(e.Children[1])
	}
	if e.Kind.IsAssignment() {
		return tc.isUniqueReference(e.Children[0])
	}
	return false
}

// isParameterCompatible decides whether an argument expression fits a
// declared parameter type: reference parameters demand lvalues of an
// equivalent type, channels obey the capability order, everything else is
// assignment compatibility.
func (tc *TypeChecker) isParameterCompatible(param *types.Type, arg *ast.Expression) bool {
	isRef := param.Is(types.Ref)
	isConst := param.IsConstant()
	switch {
	case isRef && !isConst && !tc.isModifiableLValue(arg):
		return false
	case param.IsChannel() && arg.Type.IsChannel():
		return arg.Type.ChannelCapability() >= param.ChannelCapability()
	case isRef && tc.isLValue(arg):
		return AreEquivalent(param, arg.Type)
	default:
		return AreAssignmentCompatible(param, arg.Type, false)
	}
}
