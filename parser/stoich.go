/*
File    : modlc/parser/stoich.go

Stoichiometric terms, reaction schemes, and CONSERVE statements — the
kinetic-scheme mini-grammars of §4.5. The teacher has no equivalent
construct (Go-Mix has no chemistry), so this is built directly from the
spec rather than adapted from teacher source; it still follows the
teacher's overall recursive-descent style (advance/expect, first-error
bailout) established in parser.go and blocks.go.
*/
package parser

import (
	"modlc/ast"
	"modlc/lexer"
)

// ParseStoichTerm parses one signed, coefficiented species reference:
// "a", "2a", "-2a", "+ a". A bare sign with no coefficient digits is a
// sign of magnitude 1. Per §8's property test, a term written using
// scientific-notation spelling ("3e2a") is rejected: the number must be
// an Integer token, and 3e2 lexes as a single Real token, so attempting
// to parse it as a coefficient here fails rather than silently reading
// "3" and dropping "e2".
func (p *Parser) ParseStoichTerm() *ast.StoichTermExpr {
	loc := p.curr.Loc
	sign := int64(1)
	if p.at(lexer.Plus) {
		p.advance()
	} else if p.at(lexer.Minus) {
		sign = -1
		p.advance()
	}

	coeff := int64(1)
	if p.at(lexer.Integer) {
		coeff = lexer.ParseIntegerValue(p.curr.Spelling)
		p.advance()
	} else if p.at(lexer.Real) {
		p.fail("E-PARSE-STOICH-COEFF", "stoichiometric coefficient must be an integer, got real literal "+p.curr.Spelling, p.curr.Loc)
		return nil
	}

	tok, ok := p.expect(lexer.Identifier, "as a stoichiometric species name")
	if !ok {
		return nil
	}
	return &ast.StoichTermExpr{Loc: loc, Coefficient: sign * coeff, Name: tok.Spelling}
}

// ParseStoichExpression parses a '+'-separated run of stoichiometric
// terms: "2a + b - c" is three terms with coefficients [2, 1, -1]. The
// leading term may omit its sign (implicit +1); every subsequent term's
// sign is mandatory and is consumed as part of that term by
// ParseStoichTerm.
func (p *Parser) ParseStoichExpression() *ast.StoichExpr {
	loc := p.curr.Loc
	terms := make([]*ast.StoichTermExpr, 0)
	first := p.ParseStoichTerm()
	if first == nil {
		return &ast.StoichExpr{Loc: loc, Terms: terms}
	}
	terms = append(terms, first)
	for p.at(lexer.Plus) || p.at(lexer.Minus) {
		term := p.ParseStoichTerm()
		if term == nil {
			break
		}
		terms = append(terms, term)
	}
	return &ast.StoichExpr{Loc: loc, Terms: terms}
}

// ParseReactionExpression parses a kinetic reaction scheme:
//
//	~ stoichLeft <-> stoichRight (forwardRate, reverseRate)
//
// The parser does not restrict it to KINETIC blocks: parseStatement
// accepts a '~' statement in any procedural body, and this grammar rule
// has no context of its own.
func (p *Parser) ParseReactionExpression() *ast.ReactionExpr {
	loc := p.curr.Loc
	if p.at(lexer.Tilde) {
		p.advance()
	}
	left := p.ParseStoichExpression()
	if _, ok := p.expect(lexer.ReactionArrow, "in reaction scheme"); !ok {
		return &ast.ReactionExpr{Loc: loc, Left: left}
	}
	right := p.ParseStoichExpression()
	if _, ok := p.expect(lexer.LParen, "to open reaction rate pair"); !ok {
		return &ast.ReactionExpr{Loc: loc, Left: left, Right: right}
	}
	fwd := p.parseExpression(PrecComparison)
	if _, ok := p.expect(lexer.Comma, "between reaction rates"); !ok {
		return &ast.ReactionExpr{Loc: loc, Left: left, Right: right, ForwardRate: fwd}
	}
	rev := p.parseExpression(PrecComparison)
	p.expect(lexer.RParen, "to close reaction rate pair")
	return &ast.ReactionExpr{Loc: loc, Left: left, Right: right, ForwardRate: fwd, ReverseRate: rev}
}

// parseReactionStatement is reached when a statement begins with '~',
// which only ever introduces a reaction scheme ("~ A <-> B (k1,k2)").
// CONSERVE is its own keyword-dispatched statement form (§4.4) and
// never takes a leading '~'; parseStatement dispatches it separately
// via lexer.KwConserve.
func (p *Parser) parseReactionStatement() ast.Expr {
	return p.ParseReactionExpression()
}

// ParseConserveExpression parses "CONSERVE stoichExpr = expr", where the
// right-hand side is an ordinary arithmetic expression rather than
// another stoichiometric sum (§8: CONSERVE's rhs can itself be an
// expression like "foo*2.3-bar").
func (p *Parser) ParseConserveExpression() *ast.ConserveExpr {
	loc := p.curr.Loc
	p.advance() // CONSERVE
	left := p.ParseStoichExpression()
	if _, ok := p.expect(lexer.Equal, "in CONSERVE statement"); !ok {
		return &ast.ConserveExpr{Loc: loc, Left: left}
	}
	right := p.parseExpression(PrecComparison)
	return &ast.ConserveExpr{Loc: loc, Left: left, Right: right}
}
