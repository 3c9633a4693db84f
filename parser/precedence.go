/*
File    : modlc/parser/precedence.go

Grounded on the teacher's parser_precedence.go: a precedence-climbing
table plus a getPrecedence lookup. The level set and associativity rules
are the spec's, not the teacher's — C-style bitwise/logical operators
don't exist in this grammar, and '^' is right-associative where the
teacher's language has no exponentiation operator at all.
*/
package parser

import "modlc/lexer"

// Precedence levels, lowest to highest. Assignment binds loosest and is
// right-associative; '^' binds tightest among binary operators and is
// also right-associative (2^3^2 == 2^(3^2) == 512); unary +/-/exp/log/abs
// bind tighter still, ahead of '^', per §4.3.
const (
	PrecNone = iota
	PrecAssign
	PrecComparison
	PrecAdditive
	PrecMultiplicative
	PrecPower
	PrecUnary
	PrecCall
)

// precedenceOf returns the binding power of k as an infix operator, or
// PrecNone if k never appears in infix position.
func precedenceOf(k lexer.Kind) int {
	switch k {
	case lexer.Equal:
		return PrecAssign
	case lexer.Less, lexer.LE, lexer.Greater, lexer.GE, lexer.EQ, lexer.NE:
		return PrecComparison
	case lexer.Plus, lexer.Minus:
		return PrecAdditive
	case lexer.Star, lexer.Slash:
		return PrecMultiplicative
	case lexer.Caret:
		return PrecPower
	default:
		return PrecNone
	}
}

// rightAssociative reports whether k's infix form groups right-to-left.
func rightAssociative(k lexer.Kind) bool {
	return k == lexer.Equal || k == lexer.Caret
}
