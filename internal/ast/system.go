package ast

import (
	"github.com/modelchk/go-utap/pkg/position"
)

// ============================================================================
// Declarations
// ============================================================================

// Variable is a declared variable with an optional initialiser. The
// checker normalises the initialiser in place.
type Variable struct {
	Sym      *Symbol
	Init     *Expression
	Position position.Position
}

// Function is a declared function. Changes and Depends are computed by
// the checker: the external symbols the body may write and read.
type Function struct {
	Sym        *Symbol
	Parameters *Frame
	Body       *BlockStatement
	Changes    map[*Symbol]bool
	Depends    map[*Symbol]bool
	Position   position.Position
}

// State is a location of a template. The checker rewrites Invariant and
// fills CostRate when the declared invariant carries rates.
type State struct {
	Sym       *Symbol
	Invariant *Expression
	CostRate  *Expression
	ExpRate   *Expression
	Urgent    bool
	Committed bool
	Position  position.Position
}

// SyncDir distinguishes the synchronisation flavors.
type SyncDir int

const (
	SyncCSP  SyncDir = iota // name-matched CSP label
	SyncSend                // a!
	SyncRecv                // a?
)

// Synchronisation is an edge's sync label. Channel is nil for CSP
// synchronisation, where only the action name matters.
type Synchronisation struct {
	Channel  *Expression
	Dir      SyncDir
	Action   string
	Position position.Position
}

// Edge connects two states of a template.
type Edge struct {
	Source   *State
	Target   *State
	Select   *Frame
	Guard    *Expression
	Sync     *Synchronisation
	Assign   *Expression
	Prob     *Expression
	Control  bool
	Position position.Position
}

// Template is an automaton template; Dynamic templates may be spawned at
// runtime, and a dynamic template may be declared before it is defined.
type Template struct {
	Sym        *Symbol
	Frame      *Frame
	Parameters *Frame
	Variables  []*Variable
	Functions  []*Function
	States     []*State
	Edges      []*Edge
	Init       *State
	Dynamic    bool
	Defined    bool

	// Live-sequence-chart elements, present on scenario templates only.
	InstanceLines []*InstanceLine
	Messages      []*Message
	Conditions    []*Condition
	Updates       []*Update

	Position position.Position
}

// Instance is a process built from a template with a partial argument
// map. Unbound counts the leading parameters left free; Restricted lists
// the symbols the free parameters transitively restrict.
type Instance struct {
	Sym        *Symbol
	Template   *Template
	Parameters *Frame
	Mapping    map[*Symbol]*Expression
	Arguments  int
	Unbound    int
	Restricted []*Symbol
	Position   position.Position
}

// Query is a property to be checked against the system.
type Query struct {
	Formula  *Expression
	Comment  string
	Position position.Position
}

// Progress is a progress measure: Guard may be nil.
type Progress struct {
	Guard    *Expression
	Measure  *Expression
	Position position.Position
}

// GanttEntry is one line of a gantt chart: when the predicate holds the
// mapping selects a color.
type GanttEntry struct {
	Parameters *Frame
	Predicate  *Expression
	Mapping    *Expression
	Position   position.Position
}

// GanttChart is a declared gantt visualisation.
type GanttChart struct {
	Name     string
	Entries  []*GanttEntry
	Position position.Position
}

// IODecl partitions the channels of an instance into inputs and outputs
// for timed-IO analyses.
type IODecl struct {
	Instance string
	Param    []*Expression
	Inputs   []*Expression
	Outputs  []*Expression
	Position position.Position
}

// InstanceLine is an LSC lifeline anchored to an instance.
type InstanceLine struct {
	Instance
}

// Message is an LSC message between two lifelines.
type Message struct {
	Src      *InstanceLine
	Dst      *InstanceLine
	Label    *Expression
	Position position.Position
}

// Condition is an LSC condition over one or more lifelines.
type Condition struct {
	Anchors  []*InstanceLine
	Label    *Expression
	Hot      bool
	Position position.Position
}

// Update is an LSC local update on a lifeline.
type Update struct {
	Anchor   *InstanceLine
	Label    *Expression
	Position position.Position
}

// ============================================================================
// Diagnostics
// ============================================================================

// Diagnostic is one checker finding.
type Diagnostic struct {
	Position position.Position
	Message  string
	Category string
}

func (d Diagnostic) String() string {
	return d.Position.String() + ": " + d.Message + " " + d.Category
}

// ============================================================================
// System
// ============================================================================

// SyncUsage records which synchronisation flavor the model committed to.
type SyncUsage int

const (
	SyncUnused SyncUsage = iota
	SyncIO
	SyncCSPUsed
)

// System is the root of the abstract syntax forest: global declarations,
// templates, instances and queries, plus the diagnostic buffer and the
// semantic flags the checker records.
type System struct {
	Global    *Frame
	Variables []*Variable
	Functions []*Function
	Templates []*Template
	Instances []*Instance
	Queries   []*Query
	Progress  []*Progress
	Gantts    []*GanttChart
	IODecls   []*IODecl

	// Update blocks run around each simulation step.
	BeforeUpdate []*Expression
	AfterUpdate  []*Expression

	errors   []Diagnostic
	warnings []Diagnostic

	syncUsed SyncUsage

	hasStopWatch               bool
	hasStrictInvariant         bool
	hasStrictLowerBound        bool // on controllable edges
	hasUrgentTransition        bool
	hasClockGuardRecvBroadcast bool
}

// NewSystem creates an empty system with a fresh global frame.
func NewSystem() *System {
	return &System{Global: NewFrame(nil)}
}

// AddError appends an error diagnostic.
func (s *System) AddError(pos position.Position, msg, category string) {
	s.errors = append(s.errors, Diagnostic{Position: pos, Message: msg, Category: category})
}

// AddWarning appends a warning diagnostic.
func (s *System) AddWarning(pos position.Position, msg, category string) {
	s.warnings = append(s.warnings, Diagnostic{Position: pos, Message: msg, Category: category})
}

// Errors returns the accumulated errors in emission order.
func (s *System) Errors() []Diagnostic { return s.errors }

// Warnings returns the accumulated warnings in emission order.
func (s *System) Warnings() []Diagnostic { return s.warnings }

// ClearDiagnostics flushes both buffers.
func (s *System) ClearDiagnostics() {
	s.errors = nil
	s.warnings = nil
}

// SetSyncUsed commits the model to one synchronisation flavor.
func (s *System) SetSyncUsed(u SyncUsage) { s.syncUsed = u }

// GetSyncUsed returns the committed flavor.
func (s *System) GetSyncUsed() SyncUsage { return s.syncUsed }

// RecordStopWatch notes that some clock has a rate other than one.
func (s *System) RecordStopWatch() { s.hasStopWatch = true }

// HasStopWatch reports whether a stopwatch was recorded.
func (s *System) HasStopWatch() bool { return s.hasStopWatch }

// RecordStrictInvariant notes a strict upper bound inside an invariant.
func (s *System) RecordStrictInvariant() { s.hasStrictInvariant = true }

// HasStrictInvariant reports whether a strict invariant was recorded.
func (s *System) HasStrictInvariant() bool { return s.hasStrictInvariant }

// RecordStrictLowerBoundOnControllableEdges notes a strict lower bound on
// a controllable edge's guard.
func (s *System) RecordStrictLowerBoundOnControllableEdges() {
	s.hasStrictLowerBound = true
}

// HasStrictLowerBoundOnControllableEdges reports the recorded flag.
func (s *System) HasStrictLowerBoundOnControllableEdges() bool {
	return s.hasStrictLowerBound
}

// SetUrgentTransition notes that some edge synchronises on an urgent
// channel.
func (s *System) SetUrgentTransition() { s.hasUrgentTransition = true }

// HasUrgentTransition reports the recorded flag.
func (s *System) HasUrgentTransition() bool { return s.hasUrgentTransition }

// ClockGuardRecvBroadcast notes a clock guard on a broadcast receiver.
func (s *System) ClockGuardRecvBroadcast() { s.hasClockGuardRecvBroadcast = true }

// HasClockGuardRecvBroadcast reports the recorded flag.
func (s *System) HasClockGuardRecvBroadcast() bool {
	return s.hasClockGuardRecvBroadcast
}

// GetDynamicTemplate returns the dynamic template of the given name, or
// nil when no such template exists.
func (s *System) GetDynamicTemplate(name string) *Template {
	for _, t := range s.Templates {
		if t.Dynamic && t.Sym != nil && t.Sym.Name == name {
			return t
		}
	}
	return nil
}

// FindTemplate returns the template of the given name, dynamic or not.
func (s *System) FindTemplate(name string) *Template {
	for _, t := range s.Templates {
		if t.Sym != nil && t.Sym.Name == name {
			return t
		}
	}
	return nil
}

// GetBeforeUpdate returns the statements run before each update step.
func (s *System) GetBeforeUpdate() []*Expression { return s.BeforeUpdate }

// GetAfterUpdate returns the statements run after each update step.
func (s *System) GetAfterUpdate() []*Expression { return s.AfterUpdate }
