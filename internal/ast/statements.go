package ast

import "github.com/modelchk/go-utap/pkg/position"

// Statement is the closed set of statement nodes a function body can
// contain. The checker walks statements with a single recursive
// type-switch.
type Statement interface {
	stmtNode()
	Pos() position.Position
}

// EmptyStatement is a lone semicolon.
type EmptyStatement struct {
	Position position.Position
}

// ExprStatement evaluates an expression for its side effects.
type ExprStatement struct {
	Expr *Expression
}

// AssertStatement checks a side-effect-free condition.
type AssertStatement struct {
	Expr     *Expression
	Position position.Position
}

// ForStatement is the C-style three-clause loop.
type ForStatement struct {
	Init     *Expression
	Cond     *Expression
	Step     *Expression
	Body     Statement
	Position position.Position
}

// IterationStatement ranges a fresh symbol over a scalar set or bounded
// integer: for (x : T) body.
type IterationStatement struct {
	Frame    *Frame
	Sym      *Symbol
	Body     Statement
	Position position.Position
}

// WhileStatement loops while the condition holds.
type WhileStatement struct {
	Cond     *Expression
	Body     Statement
	Position position.Position
}

// DoWhileStatement runs the body at least once.
type DoWhileStatement struct {
	Body     Statement
	Cond     *Expression
	Position position.Position
}

// BlockStatement is a braced scope: local declarations in Frame (each
// symbol's Data is a *Variable carrying its initialiser), then the
// contained statements in order.
type BlockStatement struct {
	Frame    *Frame
	Stmts    []Statement
	Position position.Position
}

// SwitchStatement dispatches on an integral condition. Its children are
// CaseStatement and DefaultStatement blocks in source order.
type SwitchStatement struct {
	Cond     *Expression
	Cases    []Statement
	Position position.Position
}

// CaseStatement is one labelled arm of a switch.
type CaseStatement struct {
	Cond     *Expression
	Stmts    []Statement
	Position position.Position
}

// DefaultStatement is the default arm of a switch.
type DefaultStatement struct {
	Stmts    []Statement
	Position position.Position
}

// BreakStatement exits the innermost loop or switch.
type BreakStatement struct {
	Position position.Position
}

// ContinueStatement restarts the innermost loop.
type ContinueStatement struct {
	Position position.Position
}

// IfStatement branches on an integral condition; Else may be nil.
type IfStatement struct {
	Cond     *Expression
	Then     Statement
	Else     Statement
	Position position.Position
}

// ReturnStatement leaves the function; Expr is nil for a bare return.
type ReturnStatement struct {
	Expr     *Expression
	Position position.Position
}

func (*EmptyStatement) stmtNode()     {}
func (*ExprStatement) stmtNode()      {}
func (*AssertStatement) stmtNode()    {}
func (*ForStatement) stmtNode()       {}
func (*IterationStatement) stmtNode() {}
func (*WhileStatement) stmtNode()     {}
func (*DoWhileStatement) stmtNode()   {}
func (*BlockStatement) stmtNode()     {}
func (*SwitchStatement) stmtNode()    {}
func (*CaseStatement) stmtNode()      {}
func (*DefaultStatement) stmtNode()   {}
func (*BreakStatement) stmtNode()     {}
func (*ContinueStatement) stmtNode()  {}
func (*IfStatement) stmtNode()        {}
func (*ReturnStatement) stmtNode()    {}

func (s *EmptyStatement) Pos() position.Position  { return s.Position }
func (s *ExprStatement) Pos() position.Position   { return s.Expr.Position }
func (s *AssertStatement) Pos() position.Position { return s.Position }
func (s *ForStatement) Pos() position.Position    { return s.Position }
func (s *IterationStatement) Pos() position.Position {
	return s.Position
}
func (s *WhileStatement) Pos() position.Position   { return s.Position }
func (s *DoWhileStatement) Pos() position.Position { return s.Position }
func (s *BlockStatement) Pos() position.Position   { return s.Position }
func (s *SwitchStatement) Pos() position.Position  { return s.Position }
func (s *CaseStatement) Pos() position.Position    { return s.Position }
func (s *DefaultStatement) Pos() position.Position { return s.Position }
func (s *BreakStatement) Pos() position.Position   { return s.Position }
func (s *ContinueStatement) Pos() position.Position {
	return s.Position
}
func (s *IfStatement) Pos() position.Position     { return s.Position }
func (s *ReturnStatement) Pos() position.Position { return s.Position }
