package semantic

import (
	"github.com/modelchk/go-utap/internal/ast"
	"github.com/modelchk/go-utap/internal/types"
)

// checkInitialiser validates an already type-checked initialiser against
// the declared type and normalises it in place: record initialisers are
// reordered so that the i-th child corresponds to the i-th declared
// field. Reordering is safe because initialisers have been verified side
// effect free before this point.
func (tc *TypeChecker) checkInitialiser(decl *types.Type, init *ast.Expression) bool {
	u := decl.Strip()
	switch {
	case u.Kind == types.Array && init.Kind == ast.List:
		return tc.checkArrayInitialiser(u, init)
	case u.Kind == types.Record && init.Kind == ast.List:
		return tc.checkRecordInitialiser(u, init)
	case init.Kind == ast.List:
		tc.handleError(init.Position, MsgInvalidInit)
		return false
	}
	if !AreAssignmentCompatible(decl, init.Type, true) {
		tc.handleError(init.Position, MsgInvalidInit)
		return false
	}
	init.SetType(decl)
	return true
}

func (tc *TypeChecker) checkArrayInitialiser(arr *types.Type, init *ast.Expression) bool {
	elem := arr.Sub(0)
	ok := true
	for i, c := range init.Children {
		if init.Labels != nil && init.Labels[i] != "" {
			tc.handleError(c.Position, MsgFieldNameInArray)
			ok = false
			continue
		}
		if !tc.checkInitialiser(elem, c) {
			ok = false
		}
	}
	if ok {
		init.SetType(arr)
	}
	return ok
}

// checkRecordInitialiser matches children to fields by name or position,
// then rewrites the child list into declaration order.
func (tc *TypeChecker) checkRecordInitialiser(rec *types.Type, init *ast.Expression) bool {
	n := rec.Size()
	ordered := make([]*ast.Expression, n)
	ok := true
	next := 0
	for i, c := range init.Children {
		index := -1
		if init.Labels != nil && init.Labels[i] != "" {
			index = rec.FindIndexOf(init.Labels[i])
			if index < 0 {
				tc.handleError(c.Position, MsgUnknownField)
				ok = false
				continue
			}
		} else {
			if next >= n {
				tc.handleError(c.Position, MsgTooManyElements)
				ok = false
				continue
			}
			index = next
		}
		if ordered[index] != nil {
			tc.handleError(c.Position, MsgMultipleInitForField)
			ok = false
			continue
		}
		ordered[index] = c
		next = index + 1
	}
	for i := 0; i < n; i++ {
		if ordered[i] == nil {
			tc.handleError(init.Position, MsgIncompleteInit)
			ok = false
			continue
		}
		if !tc.checkInitialiser(rec.Sub(i), ordered[i]) {
			ok = false
		}
	}
	if !ok {
		return false
	}
	labels := make([]string, n)
	for i := 0; i < n; i++ {
		labels[i] = rec.FieldLabel(i)
	}
	init.Children = ordered
	init.Labels = labels
	init.SetType(rec)
	return true
}
