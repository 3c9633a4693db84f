/*
File    : modlc/lexer/lexer_utils.go

Small token-kind classification helpers. Nothing in this module calls
them; the parser and the driver classify kinds directly.
*/
package lexer

// IsLiteral reports whether kind is one of the literal token kinds.
func (k Kind) IsLiteral() bool {
	switch k {
	case Integer, Real, Identifier, String:
		return true
	}
	return false
}

// IsComparisonOp reports whether kind is one of the six comparison
// operators recognised at precedence level 2 of the expression grammar.
func (k Kind) IsComparisonOp() bool {
	switch k {
	case Less, LE, Greater, GE, EQ, NE:
		return true
	}
	return false
}

// IsAdditiveOp reports whether kind is '+' or '-' used as a binary operator.
func (k Kind) IsAdditiveOp() bool {
	return k == Plus || k == Minus
}

// IsMultiplicativeOp reports whether kind is '*' or '/'.
func (k Kind) IsMultiplicativeOp() bool {
	return k == Star || k == Slash
}
