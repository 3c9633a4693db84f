/*
File    : modlc/lexer/lexer_test.go
*/
package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"modlc/diag"
)

type tokenCase struct {
	Input    string
	Expected []Token
}

func kinds(toks []Token) []Kind {
	out := make([]Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func spellings(toks []Token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Spelling
	}
	return out
}

func TestLexer_ConsumeTokens(t *testing.T) {
	tests := []tokenCase{
		{
			Input: `STATE { m h }`,
			Expected: []Token{
				{Kind: KwState}, {Kind: LBrace}, {Kind: Identifier, Spelling: "m"},
				{Kind: Identifier, Spelling: "h"}, {Kind: RBrace},
			},
		},
		{
			Input: `2^3^2`,
			Expected: []Token{
				{Kind: Integer, Spelling: "2"}, {Kind: Caret}, {Kind: Integer, Spelling: "3"},
				{Kind: Caret}, {Kind: Integer, Spelling: "2"},
			},
		},
		{
			Input: `<= >= == != <-> -> <-`,
			Expected: []Token{
				{Kind: LE}, {Kind: GE}, {Kind: EQ}, {Kind: NE}, {Kind: ReactionArrow},
				{Kind: ArrowRight}, {Kind: ArrowLeft},
			},
		},
		{
			Input: `"hello world" foo123 "12"`,
			Expected: []Token{
				{Kind: String, Spelling: "hello world"},
				{Kind: Identifier, Spelling: "foo123"},
				{Kind: String, Spelling: "12"},
			},
		},
	}

	for _, tc := range tests {
		lx := New(tc.Input)
		toks := lx.Tokens()
		assert.Equal(t, kinds(tc.Expected), kinds(toks), tc.Input)
		for i, exp := range tc.Expected {
			if exp.Spelling != "" {
				assert.Equal(t, exp.Spelling, toks[i].Spelling, tc.Input)
			}
		}
	}
}

// TestLexer_RealVsIntegerExponent is the §4.1 critical case: "3e2" must
// lex as a single real literal, never as "3" followed by identifier "e2".
func TestLexer_RealVsIntegerExponent(t *testing.T) {
	lx := New("3e2")
	toks := lx.Tokens()
	assert.Len(t, toks, 1)
	assert.Equal(t, Real, toks[0].Kind)
	assert.Equal(t, "3e2", toks[0].Spelling)
	assert.Equal(t, 300.0, ParseRealValue(toks[0].Spelling))
}

func TestLexer_IntegerNotFollowedByDotOrExp(t *testing.T) {
	lx := New("12")
	toks := lx.Tokens()
	assert.Len(t, toks, 1)
	assert.Equal(t, Integer, toks[0].Kind)
}

func TestLexer_RealRequiresFractionOrExponent(t *testing.T) {
	lx := New("0.2")
	toks := lx.Tokens()
	assert.Len(t, toks, 1)
	assert.Equal(t, Real, toks[0].Kind)
}

func TestLexer_TrailingDotIsStillReal(t *testing.T) {
	lx := New("3.")
	toks := lx.Tokens()
	assert.Len(t, toks, 1)
	assert.Equal(t, Real, toks[0].Kind)
	assert.Equal(t, "3.", toks[0].Spelling)
}

func TestLexer_ExponentWithoutDigitsIsNotConsumed(t *testing.T) {
	// "3e" with nothing following 'e' is not a valid exponent: "3" is an
	// integer, "e" is a separate (one-letter) identifier.
	lx := New("3e q")
	toks := lx.Tokens()
	assert.Equal(t, []Kind{Integer, Identifier, Identifier}, kinds(toks))
	assert.Equal(t, []string{"3", "e", "q"}, spellings(toks))
}

func TestLexer_LineCommentsSkipped(t *testing.T) {
	lx := New("STATE : this is a comment\n{ m }")
	toks := lx.Tokens()
	assert.Equal(t, []Kind{KwState, LBrace, Identifier, RBrace}, kinds(toks))
}

func TestLexer_QuestionMarkComment(t *testing.T) {
	lx := New("2 + 3 ? trailing remark")
	toks := lx.Tokens()
	assert.Equal(t, []Kind{Integer, Plus, Integer}, kinds(toks))
}

func TestLexer_LineColumnTracking(t *testing.T) {
	lx := New("a\nb")
	first := lx.Get()
	assert.Equal(t, 1, first.Loc.Line)
	second := lx.Get()
	assert.Equal(t, 2, second.Loc.Line)
	assert.Equal(t, 1, second.Loc.Column)
}

func TestLexer_PeekDoesNotConsume(t *testing.T) {
	lx := New("a b")
	p1 := lx.Peek()
	p2 := lx.Peek()
	assert.Equal(t, p1, p2)
	got := lx.Get()
	assert.Equal(t, p1, got)
	assert.Equal(t, got, lx.Current())
}

func TestLexer_UnknownCharacterIsError(t *testing.T) {
	lx := New("@")
	tok := lx.Get()
	assert.Equal(t, ERROR, tok.Kind)
	assert.Equal(t, diag.Error, lx.Status())
	d, ok := lx.FirstError()
	assert.True(t, ok)
	assert.Equal(t, "E-LEX-UNK", d.Code)
}

func TestLexer_UnterminatedString(t *testing.T) {
	lx := New(`"abc`)
	tok := lx.Get()
	assert.Equal(t, ERROR, tok.Kind)
	assert.Equal(t, diag.Error, lx.Status())
}

// TestLexer_WhitespaceIdempotence is the §8 invariant: inserting arbitrary
// whitespace/comments between tokens must not change the kind stream.
func TestLexer_WhitespaceIdempotence(t *testing.T) {
	base := "SOLVE states METHOD cnexp"
	variants := []string{
		"SOLVE states METHOD cnexp",
		"SOLVE   states\tMETHOD\ncnexp",
		"SOLVE : comment\nstates METHOD ? another\ncnexp",
		"\n\n  SOLVE states METHOD cnexp  \n",
	}
	want := kinds(New(base).Tokens())
	for _, v := range variants {
		got := kinds(New(v).Tokens())
		assert.Equal(t, want, got, v)
	}
}

func TestLexer_NewAtResumesMidBuffer(t *testing.T) {
	src := "PROCEDURE rates() { m = 1 }"
	offset := len("PROCEDURE rates() ")
	lx := NewAt(src, offset, 1, offset+1)
	tok := lx.Get()
	assert.Equal(t, LBrace, tok.Kind)
}
