package semantic

import (
	"github.com/modelchk/go-utap/internal/ast"
	"github.com/modelchk/go-utap/internal/types"
	"github.com/modelchk/go-utap/pkg/position"
)

// checkType validates a declared type: prefix legality, range bounds,
// array sizes and struct field rules. initialisable is forced once a
// const or meta prefix is crossed; inStruct tracks record nesting.
func (tc *TypeChecker) checkType(t *types.Type, initialisable, inStruct bool) bool {
	if t == nil {
		return false
	}
	pos := tc.typePos(t)
	switch t.Kind {
	case types.Label:
		return tc.checkType(t.Sub(0), initialisable, inStruct)

	case types.Urgent:
		u := t.Sub(0).StripArray()
		if !u.IsLocation() && !u.IsChannel() {
			tc.handleError(pos, MsgUrgentOnlyLocChan)
			return false
		}
		return tc.checkType(t.Sub(0), initialisable, inStruct)

	case types.Broadcast:
		if !t.Sub(0).StripArray().IsChannel() {
			tc.handleError(pos, MsgBroadcastOnlyChan)
			return false
		}
		return tc.checkType(t.Sub(0), initialisable, inStruct)

	case types.Committed:
		if !t.Sub(0).StripArray().IsLocation() {
			tc.handleError(pos, MsgCommittedOnlyLoc)
			return false
		}
		return tc.checkType(t.Sub(0), initialisable, inStruct)

	case types.Hybrid:
		if !t.Sub(0).StripArray().IsClock() {
			tc.handleError(pos, MsgHybridOnlyClocks)
			return false
		}
		return tc.checkType(t.Sub(0), initialisable, inStruct)

	case types.Constant:
		if t.Sub(0).StripArray().IsClock() {
			tc.handleError(pos, MsgConstNotClocks)
			return false
		}
		return tc.checkType(t.Sub(0), true, inStruct)

	case types.SystemMeta:
		if t.Sub(0).StripArray().IsClock() {
			tc.handleError(pos, MsgMetaNotClocks)
			return false
		}
		return tc.checkType(t.Sub(0), true, inStruct)

	case types.Ref:
		u := t.Sub(0)
		if !(u.IsIntegral() || u.IsArray() || u.IsRecord() || u.IsChannel() ||
			u.IsClock() || u.IsScalar() || u.IsDouble()) {
			tc.handleError(pos, MsgRefNotAllowed)
			return false
		}
		return tc.checkType(u, initialisable, inStruct)

	case types.Range:
		lower, upper := t.GetRange()
		ok := tc.checkType(t.Sub(0), initialisable, inStruct)
		for _, bound := range []types.Expr{lower, upper} {
			be, isExpr := bound.(*ast.Expression)
			if !isExpr || !tc.checkExpression(be) {
				ok = false
				continue
			}
			if !isIntegral(be) {
				tc.handleError(be.Position, MsgIntegerExpected)
				ok = false
			} else if !tc.isCompileTimeComputable(be) {
				tc.handleError(be.Position, MsgNotComputable)
				ok = false
			}
		}
		return ok

	case types.Array:
		size := t.ArraySize()
		ok := true
		if size == nil || !(size.Is(types.Range) || size.Is(types.Scalar)) {
			tc.handleError(pos, MsgInvalidArraySize)
			ok = false
		} else if !tc.checkType(size, false, inStruct) {
			ok = false
		}
		return tc.checkType(t.Sub(0), initialisable, inStruct) && ok

	case types.Record:
		ok := true
		for i := 0; i < t.Size(); i++ {
			if !tc.checkType(t.Sub(i), initialisable, true) {
				ok = false
			}
		}
		return ok

	case types.Double:
		if inStruct {
			tc.handleError(pos, MsgNotAllowedInStruct)
			return false
		}
		return true

	case types.Int, types.Bool, types.Scalar:
		return true

	case types.Clock:
		// The const/meta cases are rejected at the prefix; a bare clock is
		// never initialisable.
		if initialisable {
			tc.handleError(pos, MsgNotConstOrMeta)
			return false
		}
		return true
	}

	if initialisable {
		tc.handleError(pos, MsgNotConstOrMeta)
		return false
	}
	return true
}

// typePos picks a position for type diagnostics: the declaration the
// checker is currently visiting.
func (tc *TypeChecker) typePos(*types.Type) position.Position {
	return tc.currentPos
}
