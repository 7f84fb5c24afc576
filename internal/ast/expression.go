package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/modelchk/go-utap/internal/types"
	"github.com/modelchk/go-utap/pkg/position"
)

// Expression is one node of the expression forest. Structure is fixed by
// the builder; the checker only writes the Type field and, for record
// initialisers, reorders Children and Labels in lockstep.
type Expression struct {
	Kind     ExprKind
	Children []*Expression

	// Labels names initialiser children on List nodes; empty entries are
	// positional. Always either nil or the same length as Children.
	Labels []string

	// Symbol is set on identifiers and quantifier binders; for Spawn and
	// NumOf it names the template.
	Symbol *Symbol

	// Value holds the integer literal for Constant nodes and the resolved
	// field index for Dot nodes.
	Value int

	// Number holds the literal for DoubleConstant nodes.
	Number float64

	Position position.Position

	// Type is assigned by the checker; nil means unchecked or failed.
	Type *types.Type
}

// ============================================================================
// Constructors
// ============================================================================

// NewConstant builds an integer literal.
func NewConstant(v int, pos position.Position) *Expression {
	return &Expression{Kind: Constant, Value: v, Position: pos}
}

// NewDouble builds a floating-point literal.
func NewDouble(v float64, pos position.Position) *Expression {
	return &Expression{Kind: DoubleConstant, Number: v, Position: pos}
}

// NewIdentifier builds a reference to sym.
func NewIdentifier(sym *Symbol, pos position.Position) *Expression {
	return &Expression{Kind: Identifier, Symbol: sym, Position: pos}
}

// NewUnary builds a one-child node.
func NewUnary(k ExprKind, sub *Expression, pos position.Position) *Expression {
	return &Expression{Kind: k, Children: []*Expression{sub}, Position: pos}
}

// NewBinary builds a two-child node.
func NewBinary(k ExprKind, left, right *Expression, pos position.Position) *Expression {
	return &Expression{Kind: k, Children: []*Expression{left, right}, Position: pos}
}

// NewNary builds a node with arbitrary arity.
func NewNary(k ExprKind, children []*Expression, pos position.Position) *Expression {
	return &Expression{Kind: k, Children: children, Position: pos}
}

// ============================================================================
// Accessors
// ============================================================================

// Size returns the number of children.
func (e *Expression) Size() int { return len(e.Children) }

// Get returns the i-th child.
func (e *Expression) Get(i int) *Expression { return e.Children[i] }

// GetType returns the attached type; nil until checked.
func (e *Expression) GetType() *types.Type { return e.Type }

// SetType attaches the checker's result.
func (e *Expression) SetType(t *types.Type) { e.Type = t }

// IsTrue reports whether the expression is the constant 1.
func (e *Expression) IsTrue() bool {
	return e != nil && e.Kind == Constant && e.Value == 1
}

// ============================================================================
// Structural equality
// ============================================================================

// Equal reports structural equality: same kind, literal values, symbols
// and children. Range bounds are compared with this, not by value.
func (e *Expression) Equal(o types.Expr) bool {
	other, ok := o.(*Expression)
	if !ok {
		return false
	}
	if e == nil || other == nil {
		return e == other
	}
	if e.Kind != other.Kind ||
		e.Value != other.Value ||
		e.Number != other.Number ||
		e.Symbol != other.Symbol ||
		len(e.Children) != len(other.Children) ||
		len(e.Labels) != len(other.Labels) {
		return false
	}
	for i, l := range e.Labels {
		if l != other.Labels[i] {
			return false
		}
	}
	for i, c := range e.Children {
		if !c.Equal(other.Children[i]) {
			return false
		}
	}
	return true
}

// ============================================================================
// Symbol collection
// ============================================================================

// CollectIdentifiers adds every symbol referenced anywhere in the tree.
func (e *Expression) CollectIdentifiers(out map[*Symbol]bool) {
	if e == nil {
		return
	}
	if e.Symbol != nil {
		out[e.Symbol] = true
	}
	for _, c := range e.Children {
		c.CollectIdentifiers(out)
	}
}

// BaseSymbols adds the symbols an lvalue expression may denote. For
// non-lvalues it descends into whichever children could carry the
// location.
func (e *Expression) BaseSymbols(out map[*Symbol]bool) {
	if e == nil {
		return
	}
	switch e.Kind {
	case Identifier:
		if e.Symbol != nil {
			out[e.Symbol] = true
		}
	case Dot, ArrayIndex:
		e.Children[0].BaseSymbols(out)
	case Comma:
		e.Children[1].BaseSymbols(out)
	case InlineIf:
		e.Children[1].BaseSymbols(out)
		e.Children[2].BaseSymbols(out)
	default:
		if e.Kind.IsAssignment() || e.Kind.IsIncrement() {
			e.Children[0].BaseSymbols(out)
		}
	}
}

// ============================================================================
// Debug rendering
// ============================================================================

// String renders the expression for diagnostics and tests. The rendering
// is a debugging aid, not a pretty-printer.
func (e *Expression) String() string {
	if e == nil {
		return ""
	}
	switch e.Kind {
	case Constant:
		return strconv.Itoa(e.Value)
	case DoubleConstant:
		return strconv.FormatFloat(e.Number, 'g', -1, 64)
	case Identifier:
		if e.Symbol != nil {
			return e.Symbol.Name
		}
		return "?"
	case Deadlock:
		return "deadlock"
	case Dot:
		return e.Children[0].String() + "." + strconv.Itoa(e.Value)
	case ArrayIndex:
		return e.Children[0].String() + "[" + e.Children[1].String() + "]"
	case RatePrime:
		return e.Children[0].String() + "'"
	case Not:
		return "!" + e.Children[0].String()
	case UnaryMinus:
		return "-" + e.Children[0].String()
	case InlineIf:
		return fmt.Sprintf("%s ? %s : %s",
			e.Children[0], e.Children[1], e.Children[2])
	case FunCall:
		args := make([]string, len(e.Children)-1)
		for i, c := range e.Children[1:] {
			args[i] = c.String()
		}
		return e.Children[0].String() + "(" + strings.Join(args, ", ") + ")"
	case List:
		parts := make([]string, len(e.Children))
		for i, c := range e.Children {
			parts[i] = c.String()
			if e.Labels != nil && e.Labels[i] != "" {
				parts[i] = e.Labels[i] + ": " + parts[i]
			}
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case Forall, Exists, Sum:
		name := "?"
		if e.Symbol != nil {
			name = e.Symbol.Name
		}
		return fmt.Sprintf("%s (%s) %s", e.Kind, name, e.Children[0])
	}
	if len(e.Children) == 2 {
		return fmt.Sprintf("(%s %s %s)", e.Children[0], e.Kind, e.Children[1])
	}
	if len(e.Children) == 1 {
		return fmt.Sprintf("%s(%s)", e.Kind, e.Children[0])
	}
	parts := make([]string, len(e.Children))
	for i, c := range e.Children {
		parts[i] = c.String()
	}
	return fmt.Sprintf("%s(%s)", e.Kind, strings.Join(parts, ", "))
}
