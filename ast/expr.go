/*
File    : modlc/ast/expr.go

Package ast defines the tagged tree of expression and symbol nodes the
parser builds, and the Module container those symbols live in.

The teacher repo (go-mix) models its AST as a polymorphic Node interface
dispatched through a Visitor. Per the spec's design notes ("replace [the
downcast-by-kind discipline] with a tagged variant and pattern matching"),
this AST instead gives every node a Kind() method and leans on Go's type
switch as the pattern-matching mechanism; the As* helpers below are the
"pattern-matched accessors" the design notes ask for in place of is_*()
predicates.
*/
package ast

import "modlc/diag"

// Kind tags the dynamic type of an Expr node.
type Kind int

const (
	KindInteger Kind = iota
	KindReal
	KindIdentifier
	KindCall
	KindUnary
	KindBinary
	KindBlock
	KindIf
	KindLocalDecl
	KindSolve
	KindConductance
	KindStoichTerm
	KindStoich
	KindReaction
	KindConserve
	KindInitial
	KindAssignment
)

func (k Kind) String() string {
	names := [...]string{
		"Integer", "Real", "Identifier", "Call", "Unary", "Binary", "Block",
		"If", "LocalDecl", "Solve", "Conductance", "StoichTerm", "Stoich",
		"Reaction", "Conserve", "Initial", "Assignment",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// Expr is the single polymorphic expression type: every AST node
// implements it. Each node is owned by exactly one parent; the tree is
// strictly acyclic (§3.3 Ownership & invariants).
type Expr interface {
	Kind() Kind
	Location() diag.Location
}

// IonKind names the ion (or absence of one) a ConductanceExpr refers to.
type IonKind string

const (
	IonNa           IonKind = "na"
	IonK            IonKind = "k"
	IonCa           IonKind = "ca"
	IonNonspecific  IonKind = "nonspecific"
	IonOther        IonKind = "other"
)

// SolveMethod is the numerical method named in a SOLVE statement.
type SolveMethod string

const (
	MethodCnexp SolveMethod = "cnexp"
	MethodSparse SolveMethod = "sparse"
	MethodNone   SolveMethod = "none"
)

// --- Literal nodes ---------------------------------------------------

type IntegerExpr struct {
	Loc   diag.Location
	Value int64
}

func (e *IntegerExpr) Kind() Kind            { return KindInteger }
func (e *IntegerExpr) Location() diag.Location { return e.Loc }

type RealExpr struct {
	Loc   diag.Location
	Value float64
}

func (e *RealExpr) Kind() Kind              { return KindReal }
func (e *RealExpr) Location() diag.Location { return e.Loc }

// IdentifierExpr holds a bare name; binding to a Symbol is a downstream
// pass's job (§3.3: "Identifier nodes hold names only").
type IdentifierExpr struct {
	Loc  diag.Location
	Name string
}

func (e *IdentifierExpr) Kind() Kind              { return KindIdentifier }
func (e *IdentifierExpr) Location() diag.Location { return e.Loc }

// --- Operators ---------------------------------------------------------

type CallExpr struct {
	Loc    diag.Location
	Callee string
	Args   []Expr
}

func (e *CallExpr) Kind() Kind              { return KindCall }
func (e *CallExpr) Location() diag.Location { return e.Loc }

// UnaryOp is one of the operators legal on a UnaryExpr: +, -, exp, log, abs.
type UnaryOp string

const (
	OpUnaryPlus  UnaryOp = "+"
	OpUnaryMinus UnaryOp = "-"
	OpExp        UnaryOp = "exp"
	OpLog        UnaryOp = "log"
	OpAbs        UnaryOp = "abs"
)

type UnaryExpr struct {
	Loc     diag.Location
	Op      UnaryOp
	Operand Expr
}

func (e *UnaryExpr) Kind() Kind              { return KindUnary }
func (e *UnaryExpr) Location() diag.Location { return e.Loc }

// BinaryOp is one of the operators legal on a BinaryExpr.
type BinaryOp string

const (
	OpAdd BinaryOp = "+"
	OpSub BinaryOp = "-"
	OpMul BinaryOp = "*"
	OpDiv BinaryOp = "/"
	OpPow BinaryOp = "^"
	OpAssign BinaryOp = "="
	OpLT  BinaryOp = "<"
	OpLE  BinaryOp = "<="
	OpGT  BinaryOp = ">"
	OpGE  BinaryOp = ">="
	OpEQ  BinaryOp = "=="
	OpNE  BinaryOp = "!="
	OpMin BinaryOp = "min"
	OpMax BinaryOp = "max"
)

type BinaryExpr struct {
	Loc   diag.Location
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (e *BinaryExpr) Kind() Kind              { return KindBinary }
func (e *BinaryExpr) Location() diag.Location { return e.Loc }

// AssignmentExpr is kept distinct from BinaryExpr(OpAssign) even though
// both exist conceptually in the grammar: only AssignmentExpr enforces the
// lvalue restriction (§3.3, §4.6), and keeping it separate lets a type
// switch distinguish "this is an assignment statement" from "this is an
// equality test inside CONSERVE's rhs" without inspecting Op.
type AssignmentExpr struct {
	Loc   diag.Location
	Left  Expr // identifier or qualified identifier (an lvalue)
	Right Expr
}

func (e *AssignmentExpr) Kind() Kind              { return KindAssignment }
func (e *AssignmentExpr) Location() diag.Location { return e.Loc }

// --- Structured statements --------------------------------------------

type BlockExpr struct {
	Loc        diag.Location
	Statements []Expr
	IsNested   bool
}

func (e *BlockExpr) Kind() Kind              { return KindBlock }
func (e *BlockExpr) Location() diag.Location { return e.Loc }

// IfExpr's FalseBranch is either a *BlockExpr, an *IfExpr (an "else if"),
// or nil (no else clause).
type IfExpr struct {
	Loc         diag.Location
	Condition   Expr
	TrueBranch  *BlockExpr
	FalseBranch Expr
}

func (e *IfExpr) Kind() Kind              { return KindIf }
func (e *IfExpr) Location() diag.Location { return e.Loc }

// LocalDecl preserves declaration order; duplicates are rejected at parse
// time (§3.3).
type LocalDecl struct {
	Loc   diag.Location
	Names []string
}

func (e *LocalDecl) Kind() Kind              { return KindLocalDecl }
func (e *LocalDecl) Location() diag.Location { return e.Loc }

type SolveExpr struct {
	Loc    diag.Location
	Target string
	Method SolveMethod
}

func (e *SolveExpr) Kind() Kind              { return KindSolve }
func (e *SolveExpr) Location() diag.Location { return e.Loc }

type ConductanceExpr struct {
	Loc  diag.Location
	Name string
	Ion  IonKind
}

func (e *ConductanceExpr) Kind() Kind              { return KindConductance }
func (e *ConductanceExpr) Location() diag.Location { return e.Loc }

// --- Stoichiometric / kinetic grammar ----------------------------------

// StoichTermExpr is a signed, coefficiented species reference: "-2a" is
// {Coefficient: -2, Name: "a"}.
type StoichTermExpr struct {
	Loc         diag.Location
	Coefficient int64
	Name        string
}

func (e *StoichTermExpr) Kind() Kind              { return KindStoichTerm }
func (e *StoichTermExpr) Location() diag.Location { return e.Loc }

type StoichExpr struct {
	Loc   diag.Location
	Terms []*StoichTermExpr
}

func (e *StoichExpr) Kind() Kind              { return KindStoich }
func (e *StoichExpr) Location() diag.Location { return e.Loc }

type ReactionExpr struct {
	Loc          diag.Location
	Left         *StoichExpr
	Right        *StoichExpr
	ForwardRate  Expr
	ReverseRate  Expr
}

func (e *ReactionExpr) Kind() Kind              { return KindReaction }
func (e *ReactionExpr) Location() diag.Location { return e.Loc }

type ConserveExpr struct {
	Loc   diag.Location
	Left  *StoichExpr
	Right Expr
}

func (e *ConserveExpr) Kind() Kind              { return KindConserve }
func (e *ConserveExpr) Location() diag.Location { return e.Loc }

type InitialExpr struct {
	Loc  diag.Location
	Body *BlockExpr
}

func (e *InitialExpr) Kind() Kind              { return KindInitial }
func (e *InitialExpr) Location() diag.Location { return e.Loc }

// --- Pattern-matched accessors ------------------------------------------
//
// These replace the teacher's is_number()/is_binary()/... discipline: a
// type switch (or one of these helpers) is how callers downcast a tagged
// Expr to its concrete payload.

func AsInteger(e Expr) (*IntegerExpr, bool)       { v, ok := e.(*IntegerExpr); return v, ok }
func AsReal(e Expr) (*RealExpr, bool)             { v, ok := e.(*RealExpr); return v, ok }
func AsIdentifier(e Expr) (*IdentifierExpr, bool) { v, ok := e.(*IdentifierExpr); return v, ok }
func AsCall(e Expr) (*CallExpr, bool)             { v, ok := e.(*CallExpr); return v, ok }
func AsUnary(e Expr) (*UnaryExpr, bool)           { v, ok := e.(*UnaryExpr); return v, ok }
func AsBinary(e Expr) (*BinaryExpr, bool)         { v, ok := e.(*BinaryExpr); return v, ok }
func AsBlock(e Expr) (*BlockExpr, bool)           { v, ok := e.(*BlockExpr); return v, ok }
func AsIf(e Expr) (*IfExpr, bool)                 { v, ok := e.(*IfExpr); return v, ok }
func AsLocalDecl(e Expr) (*LocalDecl, bool)       { v, ok := e.(*LocalDecl); return v, ok }
func AsSolve(e Expr) (*SolveExpr, bool)           { v, ok := e.(*SolveExpr); return v, ok }
func AsConductance(e Expr) (*ConductanceExpr, bool) {
	v, ok := e.(*ConductanceExpr)
	return v, ok
}
func AsReaction(e Expr) (*ReactionExpr, bool)   { v, ok := e.(*ReactionExpr); return v, ok }
func AsConserve(e Expr) (*ConserveExpr, bool)   { v, ok := e.(*ConserveExpr); return v, ok }
func AsInitial(e Expr) (*InitialExpr, bool)     { v, ok := e.(*InitialExpr); return v, ok }
func AsAssignment(e Expr) (*AssignmentExpr, bool) {
	v, ok := e.(*AssignmentExpr)
	return v, ok
}

// IsLvalue reports whether e is legal as an assignment target: a bare
// identifier, or — per §3's "qualified identifier" allowance for ion
// variables like "ena" — still just an IdentifierExpr at this layer (the
// qualification is a naming convention resolved by the downstream binder,
// not a distinct syntactic form).
func IsLvalue(e Expr) bool {
	_, ok := AsIdentifier(e)
	return ok
}
