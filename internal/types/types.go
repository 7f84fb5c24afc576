package types

import "strings"

// Kind enumerates every node kind a Type can have. The set is closed; the
// checker's operator algebra is exhaustive over it.
type Kind int

const (
	Unknown Kind = iota

	// Primitives.
	Void
	Int
	Bool
	Double
	Clock
	Cost
	Scalar
	Channel
	Fraction
	Rate
	Diff
	Location
	Process
	ProcessVar
	TIOGraph
	DoubleInvGuard

	// Constructors.
	Range
	Array
	Record
	Function
	Label
	List

	// Prefixes. Each wraps exactly one subtype.
	Urgent
	Broadcast
	Committed
	Hybrid
	Constant
	SystemMeta
	Ref

	// Semantic categories assigned by the checker.
	Guard
	Invariant
	InvariantWR
	Constraint
	Formula
	Probability
)

var kindNames = map[Kind]string{
	Unknown:        "unknown",
	Void:           "void",
	Int:            "int",
	Bool:           "bool",
	Double:         "double",
	Clock:          "clock",
	Cost:           "cost",
	Scalar:         "scalar",
	Channel:        "chan",
	Fraction:       "fraction",
	Rate:           "rate",
	Diff:           "diff",
	Location:       "location",
	Process:        "process",
	ProcessVar:     "processvar",
	TIOGraph:       "tiograph",
	DoubleInvGuard: "double invariant guard",
	Range:          "range",
	Array:          "array",
	Record:         "struct",
	Function:       "function",
	Label:          "label",
	List:           "list",
	Urgent:         "urgent",
	Broadcast:      "broadcast",
	Committed:      "committed",
	Hybrid:         "hybrid",
	Constant:       "const",
	SystemMeta:     "meta",
	Ref:            "ref",
	Guard:          "guard",
	Invariant:      "invariant",
	InvariantWR:    "invariant and rate",
	Constraint:     "constraint",
	Formula:        "formula",
	Probability:    "probability",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// IsPrefix reports whether the kind is a declaration prefix.
func (k Kind) IsPrefix() bool {
	switch k {
	case Urgent, Broadcast, Committed, Hybrid, Constant, SystemMeta, Ref:
		return true
	}
	return false
}

// Expr is the slice of the expression API the type tree needs: range
// bounds and scalar counts are expressions, and type equivalence compares
// them structurally rather than by value.
type Expr interface {
	Equal(Expr) bool
	String() string
}

// Field is a labelled subtype: a record field, a function parameter, or an
// anonymous child (empty label).
type Field struct {
	Label string
	Type  *Type
}

// Type is one node of the type tree.
type Type struct {
	Kind   Kind
	Fields []Field

	// Lower and Upper are set on Range nodes only.
	Lower Expr
	Upper Expr

	// Count is set on Scalar nodes: the declared size of the scalar set.
	Count Expr
}

// ============================================================================
// Constructors
// ============================================================================

var primitives = map[Kind]*Type{}

func init() {
	for _, k := range []Kind{
		Void, Int, Bool, Double, Clock, Cost, Channel, Fraction, Rate,
		Diff, Location, Process, ProcessVar, TIOGraph, DoubleInvGuard,
		Guard, Invariant, InvariantWR, Constraint, Formula, Probability,
		Unknown,
	} {
		primitives[k] = &Type{Kind: k}
	}
}

// NewPrimitive returns the shared node for a primitive or category kind.
func NewPrimitive(k Kind) *Type {
	if t, ok := primitives[k]; ok {
		return t
	}
	return &Type{Kind: k}
}

// NewPrefix wraps sub in a declaration prefix.
func NewPrefix(k Kind, sub *Type) *Type {
	return &Type{Kind: k, Fields: []Field{{Type: sub}}}
}

// NewRange builds a bounded integer type over sub with inclusive bounds.
func NewRange(sub *Type, lower, upper Expr) *Type {
	return &Type{Kind: Range, Fields: []Field{{Type: sub}}, Lower: lower, Upper: upper}
}

// NewArray builds an array of elem indexed by size, which must be an
// integer range or a scalar set.
func NewArray(elem, size *Type) *Type {
	return &Type{Kind: Array, Fields: []Field{{Type: elem}, {Type: size}}}
}

// NewRecord builds a record from its fields in declaration order.
func NewRecord(fields []Field) *Type {
	return &Type{Kind: Record, Fields: fields}
}

// NewFunction builds a function type: field 0 is the return type, the rest
// are parameters in declaration order.
func NewFunction(ret *Type, params []Field) *Type {
	fields := make([]Field, 0, len(params)+1)
	fields = append(fields, Field{Type: ret})
	fields = append(fields, params...)
	return &Type{Kind: Function, Fields: fields}
}

// NewLabel names sub; labels are transparent to every structural query.
func NewLabel(name string, sub *Type) *Type {
	return &Type{Kind: Label, Fields: []Field{{Label: name, Type: sub}}}
}

// NewScalar builds a scalar set of the given size. Scalar sets are compared
// by identity: two declarations of scalar[3] are distinct types.
func NewScalar(count Expr) *Type {
	return &Type{Kind: Scalar, Count: count}
}

// NewList builds the tuple type of an initialiser or argument list.
func NewList(fields []Field) *Type {
	return &Type{Kind: List, Fields: fields}
}

// ============================================================================
// Structure
// ============================================================================

// Size returns the number of children: field count for records, return plus
// parameter count for functions.
func (t *Type) Size() int {
	return len(t.Fields)
}

// Sub returns the i-th subtype. For prefixes, ranges and labels, Sub(0) is
// the wrapped type; for arrays it is the element type.
func (t *Type) Sub(i int) *Type {
	return t.Fields[i].Type
}

// FieldLabel returns the label of the i-th child.
func (t *Type) FieldLabel(i int) string {
	return t.Fields[i].Label
}

// FindIndexOf returns the index of the named field, or -1. The search
// descends through prefixes and labels to the underlying record.
func (t *Type) FindIndexOf(name string) int {
	u := t.Strip()
	if u.Kind != Record {
		return -1
	}
	for i := range u.Fields {
		if u.Fields[i].Label == name {
			return i
		}
	}
	return -1
}

// ArraySize returns the index type of an array: an integer range or a
// scalar set.
func (t *Type) ArraySize() *Type {
	u := t.Strip()
	if u.Kind != Array {
		return nil
	}
	return u.Fields[1].Type
}

// GetRange returns the bounds of the underlying range type.
func (t *Type) GetRange() (Expr, Expr) {
	u := t
	for u != nil && (u.Kind.IsPrefix() || u.Kind == Label) {
		u = u.Sub(0)
	}
	if u == nil || u.Kind != Range {
		return nil, nil
	}
	return u.Lower, u.Upper
}

// Strip removes all prefixes and labels, but keeps ranges.
func (t *Type) Strip() *Type {
	u := t
	for u != nil && (u.Kind.IsPrefix() || u.Kind == Label) {
		u = u.Sub(0)
	}
	return u
}

// StripArray removes prefixes, labels and array constructors, yielding the
// ultimate element type.
func (t *Type) StripArray() *Type {
	u := t.Strip()
	for u != nil && u.Kind == Array {
		u = u.Sub(0).Strip()
	}
	return u
}

// Is reports whether the type has the given kind, looking through
// prefixes, labels and ranges. A range of int both Is(Range) and Is(Int).
func (t *Type) Is(k Kind) bool {
	if t == nil {
		return k == Unknown
	}
	if t.Kind == k {
		return true
	}
	switch t.Kind {
	case Range, Label,
		Urgent, Broadcast, Committed, Hybrid, Constant, SystemMeta, Ref:
		return t.Sub(0).Is(k)
	}
	return false
}

// ============================================================================
// Classification
// ============================================================================

// IsIntegral reports whether values of the type are integers, counting
// bool as integral.
func (t *Type) IsIntegral() bool {
	return t.Is(Int) || t.Is(Bool)
}

func (t *Type) IsClock() bool   { return t.Is(Clock) }
func (t *Type) IsDouble() bool  { return t.Is(Double) }
func (t *Type) IsChannel() bool { return t.Is(Channel) }
func (t *Type) IsArray() bool   { return t.Is(Array) }
func (t *Type) IsRecord() bool  { return t.Is(Record) }
func (t *Type) IsScalar() bool  { return t.Is(Scalar) }
func (t *Type) IsVoid() bool    { return t.Is(Void) }
func (t *Type) IsFunction() bool {
	return t != nil && t.Strip().Kind == Function
}
func (t *Type) IsLocation() bool { return t.Is(Location) }
func (t *Type) IsCost() bool     { return t.Is(Cost) }
func (t *Type) IsDiff() bool     { return t.Is(Diff) }

// IsNumber reports whether values of the type participate in arithmetic.
// Clocks count as numbers; the operator algebra orders its rules so that
// the clock-specific pairings win over the generic number rules.
func (t *Type) IsNumber() bool {
	return t.IsIntegral() || t.IsDouble() || t.IsClock()
}

// IsRange reports whether the type is a bounded integer range.
func (t *Type) IsRange() bool { return t.Is(Range) }

// IsConstant reports whether every value of the type is constant: a const
// prefix anywhere on the spine, or a record all of whose fields are
// constant.
func (t *Type) IsConstant() bool {
	if t == nil {
		return false
	}
	switch t.Kind {
	case Constant:
		return true
	case Urgent, Broadcast, Committed, Hybrid, SystemMeta, Ref, Range, Label, Array:
		return t.Sub(0).IsConstant()
	case Record:
		for i := range t.Fields {
			if !t.Fields[i].Type.IsConstant() {
				return false
			}
		}
		return len(t.Fields) > 0
	}
	return false
}

// ReturnType returns a function type's declared return type.
func (t *Type) ReturnType() *Type {
	u := t.Strip()
	if u.Kind != Function || len(u.Fields) == 0 {
		return nil
	}
	return u.Fields[0].Type
}

// Parameters returns a function type's parameters in declaration order.
func (t *Type) Parameters() []Field {
	u := t.Strip()
	if u.Kind != Function || len(u.Fields) == 0 {
		return nil
	}
	return u.Fields[1:]
}

// ChannelCapability grades a channel for parameter passing: urgent
// channels are the least capable, broadcast sits in the middle, plain
// channels can stand in for either.
func (t *Type) ChannelCapability() int {
	switch {
	case t.Is(Urgent):
		return 0
	case t.Is(Broadcast):
		return 1
	default:
		return 2
	}
}

// String renders the type for diagnostics and debugging.
func (t *Type) String() string {
	if t == nil {
		return "unknown"
	}
	switch t.Kind {
	case Range:
		var b strings.Builder
		b.WriteString(t.Sub(0).String())
		if t.Lower != nil && t.Upper != nil {
			b.WriteString("[" + t.Lower.String() + "," + t.Upper.String() + "]")
		}
		return b.String()
	case Array:
		return t.Sub(0).String() + "[" + t.Fields[1].Type.String() + "]"
	case Record:
		var b strings.Builder
		b.WriteString("struct {")
		for i, f := range t.Fields {
			if i > 0 {
				b.WriteString("; ")
			}
			b.WriteString(f.Type.String())
			if f.Label != "" {
				b.WriteString(" " + f.Label)
			}
		}
		b.WriteString("}")
		return b.String()
	case Function:
		var b strings.Builder
		b.WriteString(t.Fields[0].Type.String())
		b.WriteString(" (")
		for i, f := range t.Fields[1:] {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(f.Type.String())
		}
		b.WriteString(")")
		return b.String()
	case Label:
		return t.Fields[0].Label
	case Scalar:
		if t.Count != nil {
			return "scalar[" + t.Count.String() + "]"
		}
		return "scalar"
	case List:
		parts := make([]string, len(t.Fields))
		for i, f := range t.Fields {
			parts[i] = f.Type.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	}
	if t.Kind.IsPrefix() {
		return t.Kind.String() + " " + t.Sub(0).String()
	}
	return t.Kind.String()
}
