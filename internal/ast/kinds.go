package ast

// ExprKind tags an expression node. The set is closed; the checker's
// operator algebra and the side-effect/read/write collectors are
// exhaustive over it.
type ExprKind int

const (
	// Literals and identifiers.
	Constant ExprKind = iota // integer literal, Value holds the value
	DoubleConstant
	Identifier
	Deadlock

	// Arithmetic.
	Plus
	Minus
	Mult
	Div
	Mod
	Min
	Max
	BitAnd
	BitOr
	BitXor
	LShift
	RShift
	UnaryMinus

	// Logic and comparison.
	And
	Or
	Not
	LT
	LE
	EQ
	NEQ
	GE
	GT

	// Assignment and mutation.
	Assign
	AssPlus
	AssMinus
	AssMult
	AssDiv
	AssMod
	AssAnd
	AssOr
	AssXor
	AssLShift
	AssRShift
	PreIncrement
	PostIncrement
	PreDecrement
	PostDecrement

	// Structure.
	InlineIf
	Comma
	Dot
	ArrayIndex
	FunCall
	List

	// Clocks, costs and rates.
	RatePrime // x' in an invariant
	FractionOp

	// Quantifiers.
	Forall
	Exists
	Sum

	// Dynamic templates.
	Spawn
	Exit
	NumOf

	// Path and game formulas.
	EF
	EG
	AF
	AG
	LeadsTo
	AUntil
	AWeakUntil
	ABuchi
	Control
	ControlTopt
	PoControl
	SmcControl
	Pmax
	Scenario

	// Statistical queries.
	ProbaBox
	ProbaDiamond
	ProbaMinBox
	ProbaMinDiamond
	ProbaCmp
	ProbaExp
	Simulate
	SimulateReach
	SupVar
	InfVar

	// Timed-IO graph operators.
	TioComposition
	TioConjunction
	TioRefinement
	TioQuotient
	TioConsistency
	TioSpecification
	TioImplementation

	// MITL operators.
	MitlUntil
	MitlRelease
	MitlNext
	MitlDiamond
	MitlBox

	// Floating point library, unary number -> double.
	FnExp
	FnExp2
	FnExpm1
	FnLn
	FnLog
	FnLog10
	FnLog2
	FnLog1p
	FnSqrt
	FnCbrt
	FnSin
	FnCos
	FnTan
	FnAsin
	FnAcos
	FnAtan
	FnSinh
	FnCosh
	FnTanh
	FnAsinh
	FnAcosh
	FnAtanh
	FnErf
	FnErfc
	FnTGamma
	FnLGamma
	FnCeil
	FnFloor
	FnTrunc
	FnRound
	FnLogb
	FnRandom
	FnRandomPoisson

	// Floating point library, binary number x number -> double.
	FnPow
	FnHypot
	FnAtan2
	FnFmod
	FnFmin
	FnFmax
	FnFdim
	FnCopySign
	FnNextAfter
	FnLdexp
	FnRandomArcsine
	FnRandomBeta
	FnRandomGamma
	FnRandomNormal
	FnRandomWeibull

	// Floating point library, ternary number -> double.
	FnFma
	FnRandomTri

	// Integer results.
	FnAbs        // integer -> int
	FnFpClassify // integer -> int
	FnILogb      // number -> int
	FnFInt       // number -> int

	// Boolean results.
	FnIsNan
	FnIsInf
	FnIsFinite
	FnIsNormal
	FnSignBit
	FnIsUnordered // number x number -> bool
)

var exprKindNames = map[ExprKind]string{
	Constant: "constant", DoubleConstant: "double constant",
	Identifier: "identifier", Deadlock: "deadlock",
	Plus: "+", Minus: "-", Mult: "*", Div: "/", Mod: "%",
	Min: "<?", Max: ">?",
	BitAnd: "&", BitOr: "|", BitXor: "^", LShift: "<<", RShift: ">>",
	UnaryMinus: "unary -",
	And:        "&&", Or: "||", Not: "!",
	LT: "<", LE: "<=", EQ: "==", NEQ: "!=", GE: ">=", GT: ">",
	Assign: "=", AssPlus: "+=", AssMinus: "-=", AssMult: "*=",
	AssDiv: "/=", AssMod: "%=", AssAnd: "&=", AssOr: "|=", AssXor: "^=",
	AssLShift: "<<=", AssRShift: ">>=",
	PreIncrement: "++ (pre)", PostIncrement: "++ (post)",
	PreDecrement: "-- (pre)", PostDecrement: "-- (post)",
	InlineIf: "?:", Comma: ",", Dot: ".", ArrayIndex: "[]",
	FunCall: "call", List: "list",
	RatePrime: "'", FractionOp: "fraction",
	Forall: "forall", Exists: "exists", Sum: "sum",
	Spawn: "spawn", Exit: "exit", NumOf: "numof",
	EF: "E<>", EG: "E[]", AF: "A<>", AG: "A[]",
	LeadsTo: "-->", AUntil: "A until", AWeakUntil: "A weak until",
	ABuchi: "A buchi", Control: "control", ControlTopt: "control_t*",
	PoControl: "po_control", SmcControl: "smc control", Pmax: "pmax",
	Scenario: "scenario",
	ProbaBox: "Pr[]", ProbaDiamond: "Pr<>",
	ProbaMinBox: "Pr min []", ProbaMinDiamond: "Pr min <>",
	ProbaCmp: "Pr cmp", ProbaExp: "E[...]",
	Simulate: "simulate", SimulateReach: "simulate reach",
	SupVar: "sup", InfVar: "inf",
	TioComposition: "||", TioConjunction: "&&&", TioRefinement: "<=",
	TioQuotient: "\\", TioConsistency: "consistency",
	TioSpecification: "specification", TioImplementation: "implementation",
	MitlUntil: "U", MitlRelease: "R", MitlNext: "X",
	MitlDiamond: "<>", MitlBox: "[]",
}

func (k ExprKind) String() string {
	if s, ok := exprKindNames[k]; ok {
		return s
	}
	switch {
	case k.IsMathUnaryDouble():
		return "fp unary"
	case k.IsMathBinaryDouble():
		return "fp binary"
	}
	return "expression"
}

// IsAssignment reports whether the kind stores into its first operand.
func (k ExprKind) IsAssignment() bool {
	switch k {
	case Assign, AssPlus, AssMinus, AssMult, AssDiv, AssMod,
		AssAnd, AssOr, AssXor, AssLShift, AssRShift:
		return true
	}
	return false
}

// IsIncrement reports whether the kind is one of the four in/decrements.
func (k ExprKind) IsIncrement() bool {
	switch k {
	case PreIncrement, PostIncrement, PreDecrement, PostDecrement:
		return true
	}
	return false
}

// IsDynamic reports whether the kind is a dynamic-process construct:
// spawn, exit or numof.
func (k ExprKind) IsDynamic() bool {
	switch k {
	case Spawn, Exit, NumOf:
		return true
	}
	return false
}

// IsMITL reports whether the kind is an MITL operator.
func (k ExprKind) IsMITL() bool {
	switch k {
	case MitlUntil, MitlRelease, MitlNext, MitlDiamond, MitlBox:
		return true
	}
	return false
}

// IsPathQuantifier reports whether the kind quantifies over paths.
func (k ExprKind) IsPathQuantifier() bool {
	switch k {
	case EF, EG, AF, AG, LeadsTo, AUntil, AWeakUntil, ABuchi, Pmax:
		return true
	}
	return false
}

// IsStatistical reports whether the kind is a statistical (SMC) query.
func (k ExprKind) IsStatistical() bool {
	switch k {
	case ProbaBox, ProbaDiamond, ProbaMinBox, ProbaMinDiamond,
		ProbaCmp, ProbaExp, Simulate, SimulateReach, SmcControl:
		return true
	}
	return false
}

// IsTIO reports whether the kind is a timed-IO graph operator.
func (k ExprKind) IsTIO() bool {
	switch k {
	case TioComposition, TioConjunction, TioRefinement, TioQuotient,
		TioConsistency, TioSpecification, TioImplementation:
		return true
	}
	return false
}

// IsMathUnaryDouble reports the unary library calls typed number -> double.
func (k ExprKind) IsMathUnaryDouble() bool {
	return k >= FnExp && k <= FnRandomPoisson
}

// IsMathBinaryDouble reports the binary library calls typed
// number x number -> double.
func (k ExprKind) IsMathBinaryDouble() bool {
	return k >= FnPow && k <= FnRandomWeibull
}

// IsMathTernaryDouble reports the ternary library calls typed
// number x number x number -> double.
func (k ExprKind) IsMathTernaryDouble() bool {
	return k == FnFma || k == FnRandomTri
}
