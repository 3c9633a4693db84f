package parser

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modlc/ast"
	"modlc/diag"
)

// evalNumeric folds a pure-numeric expression tree to a float64, for
// property tests that want to assert a computed value rather than just a
// tree shape. This is test-only scaffolding, not a module evaluator — the
// front end itself never evaluates expressions (Non-goals).
func evalNumeric(e ast.Expr) float64 {
	switch n := e.(type) {
	case *ast.IntegerExpr:
		return float64(n.Value)
	case *ast.RealExpr:
		return n.Value
	case *ast.UnaryExpr:
		v := evalNumeric(n.Operand)
		switch n.Op {
		case ast.OpUnaryMinus:
			return -v
		case ast.OpExp:
			return math.Exp(v)
		case ast.OpLog:
			return math.Log(v)
		case ast.OpAbs:
			return math.Abs(v)
		default:
			return v
		}
	case *ast.BinaryExpr:
		l, r := evalNumeric(n.Left), evalNumeric(n.Right)
		switch n.Op {
		case ast.OpAdd:
			return l + r
		case ast.OpSub:
			return l - r
		case ast.OpMul:
			return l * r
		case ast.OpDiv:
			return l / r
		case ast.OpPow:
			return math.Pow(l, r)
		}
	}
	return math.NaN()
}

func parseExprString(t *testing.T, src string) ast.Expr {
	t.Helper()
	p := New(src)
	e := p.ParseExpression()
	require.Equal(t, diag.Happy, p.Status(), "unexpected parse error for %q", src)
	return e
}

// TestExpr_PowerIsRightAssociative is the §8 precedence round-trip case:
// 2^3^2 must equal 512 (right-assoc), not 64 (left-assoc).
func TestExpr_PowerIsRightAssociative(t *testing.T) {
	e := parseExprString(t, "2^3^2")
	assert.Equal(t, 512.0, evalNumeric(e))

	top, ok := ast.AsBinary(e)
	require.True(t, ok)
	assert.Equal(t, ast.OpPow, top.Op)
	_, leftIsLiteral := ast.AsInteger(top.Left)
	assert.True(t, leftIsLiteral, "2^(3^2): left child of the top node must be the literal 2")
	_, rightIsBinary := ast.AsBinary(top.Right)
	assert.True(t, rightIsBinary, "2^(3^2): right child of the top node must be the nested 3^2")
}

func TestExpr_ParenthesesOverridePrecedence(t *testing.T) {
	e := parseExprString(t, "(2^2)^3")
	assert.Equal(t, 64.0, evalNumeric(e))
}

func TestExpr_ParenthesizedAssignmentIsRejected(t *testing.T) {
	p := New("(x=3)")
	p.ParseExpression()
	assert.Equal(t, diag.Error, p.Status())
}

func TestExpr_UnaryBindsTighterThanPower(t *testing.T) {
	// -2^2 is (-2)^2 == 4 under this grammar's stated precedence (unary
	// binds tighter than '^'), not -(2^2) == -4.
	e := parseExprString(t, "-2^2")
	assert.Equal(t, 4.0, evalNumeric(e))
}

func TestExpr_IntrinsicUnaryDispatch(t *testing.T) {
	e := parseExprString(t, "exp(1)")
	u, ok := ast.AsUnary(e)
	require.True(t, ok)
	assert.Equal(t, ast.OpExp, u.Op)
}

func TestExpr_IntrinsicWithWrongArityIsPlainCall(t *testing.T) {
	e := parseExprString(t, "exp(1, 2)")
	c, ok := ast.AsCall(e)
	require.True(t, ok)
	assert.Equal(t, "exp", c.Callee)
	assert.Len(t, c.Args, 2)
}

func TestExpr_MinMaxIsBinary(t *testing.T) {
	e := parseExprString(t, "min(a, b)")
	b, ok := ast.AsBinary(e)
	require.True(t, ok)
	assert.Equal(t, ast.OpMin, b.Op)
}

func TestExpr_DerivativeNotationFoldsPrime(t *testing.T) {
	e := parseExprString(t, "m'")
	id, ok := ast.AsIdentifier(e)
	require.True(t, ok)
	assert.Equal(t, "m'", id.Name)
}

func TestExpr_GenericCall(t *testing.T) {
	e := parseExprString(t, "rates(v, cai)")
	c, ok := ast.AsCall(e)
	require.True(t, ok)
	assert.Equal(t, "rates", c.Callee)
	assert.Len(t, c.Args, 2)
}

func TestLineExpression_AssignmentAtStatementLevel(t *testing.T) {
	p := New("m = alpha / (alpha + beta)")
	e := p.ParseLineExpression()
	require.Equal(t, diag.Happy, p.Status())
	a, ok := ast.AsAssignment(e)
	require.True(t, ok)
	_, leftIsIdent := ast.AsIdentifier(a.Left)
	assert.True(t, leftIsIdent)
}

func TestLocal_CommaSeparatedNames(t *testing.T) {
	p := New("LOCAL x, y, z")
	decl := p.ParseLocal()
	require.Equal(t, diag.Happy, p.Status())
	assert.Equal(t, []string{"x", "y", "z"}, decl.Names)
}

func TestLocal_TrailingCommaIsError(t *testing.T) {
	p := New("LOCAL x, y, z,")
	p.ParseLocal()
	assert.Equal(t, diag.Error, p.Status())
}

func TestSolve_WithMethod(t *testing.T) {
	p := New("SOLVE states METHOD cnexp")
	s := p.ParseSolve()
	require.Equal(t, diag.Happy, p.Status())
	assert.Equal(t, "states", s.Target)
	assert.Equal(t, ast.MethodCnexp, s.Method)
}

func TestSolve_WithoutMethod(t *testing.T) {
	p := New("SOLVE states")
	s := p.ParseSolve()
	require.Equal(t, diag.Happy, p.Status())
	assert.Equal(t, ast.MethodNone, s.Method)
}

func TestConductance_WithUseion(t *testing.T) {
	p := New("CONDUCTANCE g USEION na")
	c := p.ParseConductance()
	require.Equal(t, diag.Happy, p.Status())
	assert.Equal(t, "g", c.Name)
	assert.Equal(t, ast.IonNa, c.Ion)
}

func TestConductance_WithoutUseionBindsNonspecific(t *testing.T) {
	p := New("CONDUCTANCE gnda")
	c := p.ParseConductance()
	require.Equal(t, diag.Happy, p.Status())
	assert.Equal(t, ast.IonNonspecific, c.Ion)
}

func TestReaction_StoichTermsAndRates(t *testing.T) {
	p := New("~ A + B <-> C + D (k1, k2)")
	r := p.ParseReactionExpression()
	require.Equal(t, diag.Happy, p.Status())
	require.Len(t, r.Left.Terms, 2)
	assert.Equal(t, "A", r.Left.Terms[0].Name)
	assert.Equal(t, int64(1), r.Left.Terms[0].Coefficient)
	assert.Equal(t, "B", r.Left.Terms[1].Name)
	require.Len(t, r.Right.Terms, 2)
	assert.Equal(t, "C", r.Right.Terms[0].Name)
	assert.Equal(t, "D", r.Right.Terms[1].Name)
	id, ok := ast.AsIdentifier(r.ForwardRate)
	require.True(t, ok)
	assert.Equal(t, "k1", id.Name)
}

func TestConserve_StoichCoefficientOrder(t *testing.T) {
	p := New("CONSERVE -2a + b -c = foo*2.3-bar")
	c := p.ParseConserveExpression()
	require.Equal(t, diag.Happy, p.Status())
	require.Len(t, c.Left.Terms, 3)
	assert.Equal(t, []int64{-2, 1, -1}, []int64{
		c.Left.Terms[0].Coefficient, c.Left.Terms[1].Coefficient, c.Left.Terms[2].Coefficient,
	})
	assert.Equal(t, []string{"a", "b", "c"}, []string{
		c.Left.Terms[0].Name, c.Left.Terms[1].Name, c.Left.Terms[2].Name,
	})
	_, rightIsBinary := ast.AsBinary(c.Right)
	assert.True(t, rightIsBinary)
}

// TestStoich_ScientificNotationCoefficientIsRejected is the §8 case:
// "3e2a" cannot be parsed as coefficient 3 applied to species "e2a", nor
// as coefficient "3e2" applied to species "a" — the lexer hands back a
// single Real token "3e2" for the numeric prefix, which ParseStoichTerm
// refuses as a non-integer coefficient.
func TestStoich_ScientificNotationCoefficientIsRejected(t *testing.T) {
	p := New("3e2a")
	p.ParseStoichTerm()
	assert.Equal(t, diag.Error, p.Status())
}

func TestStoich_ImplicitLeadingSign(t *testing.T) {
	p := New("a + 2b - c")
	s := p.ParseStoichExpression()
	require.Equal(t, diag.Happy, p.Status())
	require.Len(t, s.Terms, 3)
	assert.Equal(t, int64(1), s.Terms[0].Coefficient)
	assert.Equal(t, int64(2), s.Terms[1].Coefficient)
	assert.Equal(t, int64(-1), s.Terms[2].Coefficient)
}

// TestIf_NestedElseIfShape verifies the §8 "if/else if/else" structural
// invariant: each "else if" becomes a single nested IfExpr in
// FalseBranch, not a BlockExpr wrapping one.
func TestIf_NestedElseIfShape(t *testing.T) {
	src := `if (v > 0) { x = 1 } else if (v < 0) { x = -1 } else { x = 0 }`
	p := New(src)
	node := p.ParseIf()
	require.Equal(t, diag.Happy, p.Status())

	elseIf, ok := ast.AsIf(node.FalseBranch)
	require.True(t, ok, "else-if must be a nested IfExpr, not a block")
	assert.True(t, elseIf.TrueBranch.IsNested)

	finalBlock, ok := ast.AsBlock(elseIf.FalseBranch)
	require.True(t, ok, "trailing else must be a BlockExpr")
	assert.True(t, finalBlock.IsNested)
}

func TestModule_FullMechanism(t *testing.T) {
	src := `
TITLE simple sodium channel

NEURON {
	SUFFIX na
	USEION na READ ena WRITE ina
	RANGE gbar
}

STATE { m h }

PARAMETER {
	gbar = 0.12 (S/cm2)
	celsius (degC)
}

ASSIGNED {
	v (mV)
	ina (mA/cm2)
}

BREAKPOINT {
	SOLVE states METHOD cnexp
	ina = gbar*m*h*(v - ena)
}

DERIVATIVE states {
	m' = (1 - m) / 10
}
`
	mod := Parse(src)
	if mod.Status() != diag.Happy {
		d, _ := mod.FirstError()
		t.Fatalf("unexpected parse error: %v", d)
	}

	assert.Equal(t, "simple sodium channel", mod.Title())

	info := mod.NeuronInfo()
	assert.Equal(t, "na", info.Suffix)
	require.Len(t, info.Ions, 1)
	assert.Equal(t, "na", info.Ions[0].Ion)
	assert.Equal(t, []string{"ena"}, info.Ions[0].Reads)
	assert.Equal(t, []string{"ina"}, info.Ions[0].Writes)

	states := mod.Variables(ast.VisState)
	require.Len(t, states, 2)
	assert.Equal(t, "m", states[0].Name)
	assert.Equal(t, "h", states[1].Name)

	gbar, ok := mod.Lookup("gbar")
	require.True(t, ok)
	assert.True(t, gbar.HasDefault)
	assert.Equal(t, 0.12, gbar.Default)

	bp, ok := mod.Lookup("BREAKPOINT")
	require.True(t, ok)
	require.NotNil(t, bp.Body)
	assert.Len(t, bp.Body.Statements, 2)

	deriv, ok := mod.Lookup("states")
	require.True(t, ok)
	assert.Equal(t, ast.ProcDerivative, deriv.Kind)
	require.NotNil(t, deriv.Body)
	require.Len(t, deriv.Body.Statements, 1)
	assign, ok := ast.AsAssignment(deriv.Body.Statements[0])
	require.True(t, ok)
	id, ok := ast.AsIdentifier(assign.Left)
	require.True(t, ok)
	assert.Equal(t, "m'", id.Name)
}

// TestModule_DuplicateSymbolIsError covers §3.3's duplicate-name
// invariant across a two-pass parse.
func TestModule_DuplicateSymbolIsError(t *testing.T) {
	src := `
STATE { m m }
`
	mod := Parse(src)
	assert.Equal(t, diag.Error, mod.Status())
	d, ok := mod.FirstError()
	require.True(t, ok)
	assert.Equal(t, "E-DUP-SYM", d.Code)
}

// TestModule_Pass2IsIdempotent is the §8 idempotent-pass-2 property:
// parsing the same source twice must produce structurally identical
// procedure bodies.
func TestModule_Pass2IsIdempotent(t *testing.T) {
	src := `
STATE { m }
DERIVATIVE states {
	m' = 1 - m
}
`
	first := Parse(src)
	second := Parse(src)
	require.Equal(t, diag.Happy, first.Status())
	require.Equal(t, diag.Happy, second.Status())

	d1, _ := first.Lookup("states")
	d2, _ := second.Lookup("states")
	require.Len(t, d1.Body.Statements, 1)
	require.Len(t, d2.Body.Statements, 1)
	a1, _ := ast.AsAssignment(d1.Body.Statements[0])
	a2, _ := ast.AsAssignment(d2.Body.Statements[0])
	id1, _ := ast.AsIdentifier(a1.Left)
	id2, _ := ast.AsIdentifier(a2.Left)
	assert.Equal(t, id1.Name, id2.Name)
}
