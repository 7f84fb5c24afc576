package semantic

import (
	"github.com/modelchk/go-utap/internal/ast"
)

// collectPossibleWrites adds every symbol an expression may store into,
// including the external writes of any function it calls.
func collectPossibleWrites(e *ast.Expression, out map[*ast.Symbol]bool) {
	if e == nil {
		return
	}
	if e.Kind.IsAssignment() || e.Kind.IsIncrement() {
		e.Children[0].BaseSymbols(out)
	}
	if e.Kind == ast.FunCall {
		if fn := calledFunction(e); fn != nil {
			for s := range fn.Changes {
				out[s] = true
			}
		}
	}
	for _, c := range e.Children {
		collectPossibleWrites(c, out)
	}
}

// collectPossibleReads adds every symbol an expression may read,
// including the external reads of any function it calls. Quantifier
// binders are local and excluded.
func collectPossibleReads(e *ast.Expression, out map[*ast.Symbol]bool) {
	if e == nil {
		return
	}
	switch e.Kind {
	case ast.Identifier:
		if e.Symbol != nil {
			out[e.Symbol] = true
		}
	case ast.FunCall:
		if e.Children[0].Symbol != nil {
			out[e.Children[0].Symbol] = true
		}
		if fn := calledFunction(e); fn != nil {
			for s := range fn.Depends {
				out[s] = true
			}
		}
		for _, c := range e.Children[1:] {
			collectPossibleReads(c, out)
		}
		return
	case ast.Forall, ast.Exists, ast.Sum:
		inner := make(map[*ast.Symbol]bool)
		collectPossibleReads(e.Children[0], inner)
		delete(inner, e.Symbol)
		for s := range inner {
			out[s] = true
		}
		return
	}
	for _, c := range e.Children {
		collectPossibleReads(c, out)
	}
}

// calledFunction resolves the function declaration behind a call's callee
// symbol, when the builder attached one.
func calledFunction(call *ast.Expression) *ast.Function {
	sym := call.Children[0].Symbol
	if sym == nil {
		return nil
	}
	fn, _ := sym.Data.(*ast.Function)
	return fn
}

// changesAnyVariable reports whether evaluating the expression can write
// any variable: the side-effect test used throughout the checker.
func changesAnyVariable(e *ast.Expression) bool {
	if e == nil {
		return false
	}
	writes := make(map[*ast.Symbol]bool)
	collectPossibleWrites(e, writes)
	if len(writes) > 0 {
		return true
	}
	// Dynamic constructs mutate the process population.
	return containsDynamic(e)
}

func containsDynamic(e *ast.Expression) bool {
	if e == nil {
		return false
	}
	if e.Kind == ast.Spawn || e.Kind == ast.Exit {
		return true
	}
	for _, c := range e.Children {
		if containsDynamic(c) {
			return true
		}
	}
	return false
}

// isSideEffectFree is the positive phrasing used at check sites.
func isSideEffectFree(e *ast.Expression) bool {
	return !changesAnyVariable(e)
}
