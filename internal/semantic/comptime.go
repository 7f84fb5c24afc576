package semantic

import (
	"github.com/modelchk/go-utap/internal/ast"
	"github.com/modelchk/go-utap/internal/types"
)

// collectCompileTimeComputableValues populates the set of symbols whose
// value is fixed before the system runs: top-level constants, and
// constant-typed instance parameters that are neither references nor
// doubles. Function symbols are always acceptable reads and need no
// entry.
func (tc *TypeChecker) collectCompileTimeComputableValues() {
	tc.constants = make(map[*ast.Symbol]bool)
	for _, v := range tc.system.Variables {
		if v.Sym != nil && v.Sym.Type.IsConstant() {
			tc.constants[v.Sym] = true
		}
	}
	for _, in := range tc.system.Instances {
		if in.Parameters == nil {
			continue
		}
		for i := 0; i < in.Parameters.Size(); i++ {
			sym := in.Parameters.Symbol(i)
			t := sym.Type
			if t.IsConstant() && !t.Is(types.Ref) && !t.IsDouble() {
				tc.constants[sym] = true
			}
		}
	}
}

// isCompileTimeComputable reports whether every symbol the expression may
// read — transitively through function calls, excluding those functions'
// locals — is either a function or a member of the computable set.
func (tc *TypeChecker) isCompileTimeComputable(e *ast.Expression) bool {
	if e == nil {
		return false
	}
	reads := make(map[*ast.Symbol]bool)
	collectPossibleReads(e, reads)
	for s := range reads {
		if s.Type.IsFunction() {
			continue
		}
		if !tc.constants[s] {
			return false
		}
	}
	return true
}
