// Package types defines the type tree of the timed-automata modeling
// language: primitive kinds (integers, clocks, channels, costs, scalars),
// type constructors (ranges, arrays, records, functions), declaration
// prefixes (urgent, broadcast, committed, hybrid, const, meta, ref) and the
// semantic categories the checker assigns to boolean-ish expressions
// (guard, invariant, invariant-with-rate, constraint, formula).
//
// A Type is an immutable tagged tree. Prefixes wrap a single subtype and
// are transparent to Is, so a "const int[0,5]" still Is(Int). Range bounds
// and scalar-set counts are expressions owned by the enclosing system; the
// package only needs structural equality on them, expressed through the
// Expr interface.
package types
