// Package ast defines the abstract syntax forest of a timed-automata
// system: expressions, statements, symbols and frames, and the system
// model of templates, states, edges, instances and queries that the
// builder produces and the semantic checker annotates.
//
// Expressions are a single tagged node type rather than an interface
// hierarchy: the kind set is closed, and every analysis over expressions
// is one recursive function switching on the kind. The only mutations the
// checker performs are attaching types, rewriting decomposed invariants,
// and reordering record initialiser children.
package ast
