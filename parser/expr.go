/*
File    : modlc/parser/expr.go

The expression grammar: precedence-climbing binary/unary parsing plus the
primary-expression forms (literals, identifiers, calls, parenthesized
sub-expressions, and the exp/log/abs/min/max intrinsic dispatch). Shape
grounded on the teacher's Pratt loop (parser.go's advance/expect
discipline, parser_precedence.go's table), rewritten as precedence
climbing rather than a unary/binary function-map registry since this
grammar's operator set is small and fixed — a registry buys nothing a
switch doesn't already give directly.
*/
package parser

import (
	"modlc/ast"
	"modlc/lexer"
)

// ParseExpression parses a full expression starting at the lowest
// precedence level. An '=' is never consumed here: it ends the
// expression, and assignments are parsed only by ParseLineExpression.
// This is the §6 ParseExpression entry point.
func (p *Parser) ParseExpression() ast.Expr {
	return p.parseExpression(PrecAssign)
}

// ParseLineExpression parses one statement-level line: either an
// assignment (identifier '=' expression) or a bare expression, matching
// the grammar's rule that '=' is legal only at the outermost level of a
// statement, never nested inside a sub-expression (§4.3: "assignment
// binds only at statement level").
func (p *Parser) ParseLineExpression() ast.Expr {
	left := p.parseExpression(PrecComparison)
	if p.failed() {
		return left
	}
	if p.at(lexer.Equal) {
		if !ast.IsLvalue(left) {
			p.fail("E-PARSE-LVALUE", "left-hand side of assignment must be an identifier", left.Location())
			return left
		}
		loc := p.curr.Loc
		p.advance()
		right := p.parseExpression(PrecAssign)
		return &ast.AssignmentExpr{Loc: loc, Left: left, Right: right}
	}
	return left
}

// parseExpression implements precedence climbing: minPrec is the lowest
// binding power an operator must have to be consumed at this recursion
// level.
func (p *Parser) parseExpression(minPrec int) ast.Expr {
	left := p.parseUnary()
	if p.failed() {
		return left
	}

	for {
		op := p.curr.Kind
		prec := precedenceOf(op)
		if prec == PrecNone || prec < minPrec {
			return left
		}
		if op == lexer.Equal {
			// '=' is handled by ParseLineExpression, not here: a bare
			// parseExpression call never consumes an assignment.
			return left
		}
		loc := p.curr.Loc
		p.advance()

		nextMin := prec + 1
		if rightAssociative(op) {
			nextMin = prec
		}
		right := p.parseExpression(nextMin)
		if p.failed() {
			return left
		}
		left = &ast.BinaryExpr{Loc: loc, Op: binaryOpFor(op), Left: left, Right: right}
	}
}

func binaryOpFor(k lexer.Kind) ast.BinaryOp {
	switch k {
	case lexer.Plus:
		return ast.OpAdd
	case lexer.Minus:
		return ast.OpSub
	case lexer.Star:
		return ast.OpMul
	case lexer.Slash:
		return ast.OpDiv
	case lexer.Caret:
		return ast.OpPow
	case lexer.Less:
		return ast.OpLT
	case lexer.LE:
		return ast.OpLE
	case lexer.Greater:
		return ast.OpGT
	case lexer.GE:
		return ast.OpGE
	case lexer.EQ:
		return ast.OpEQ
	case lexer.NE:
		return ast.OpNE
	}
	return ""
}

// parseUnary handles prefix +/- (binding tighter than '^', per §4.3) and
// falls through to parsePrimary otherwise.
func (p *Parser) parseUnary() ast.Expr {
	if p.at(lexer.Plus) || p.at(lexer.Minus) {
		loc := p.curr.Loc
		op := ast.OpUnaryPlus
		if p.curr.Kind == lexer.Minus {
			op = ast.OpUnaryMinus
		}
		p.advance()
		operand := p.parseUnary()
		return &ast.UnaryExpr{Loc: loc, Op: op, Operand: operand}
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() ast.Expr {
	if p.failed() {
		return nil
	}
	tok := p.curr
	switch tok.Kind {
	case lexer.Integer:
		p.advance()
		return &ast.IntegerExpr{Loc: tok.Loc, Value: lexer.ParseIntegerValue(tok.Spelling)}
	case lexer.Real:
		p.advance()
		return &ast.RealExpr{Loc: tok.Loc, Value: lexer.ParseRealValue(tok.Spelling)}
	case lexer.LParen:
		return p.parseParenExpr()
	case lexer.KwExp, lexer.KwLog, lexer.KwAbs:
		return p.parseIntrinsicUnary(tok)
	case lexer.KwMin, lexer.KwMax:
		return p.parseIntrinsicBinary(tok)
	case lexer.Identifier:
		return p.parseIdentifierOrCall()
	}
	p.fail("E-PARSE-PRIMARY", "unexpected token "+string(tok.Kind)+" in expression", tok.Loc)
	return nil
}

// parseParenExpr parses "( expr )". Per §4.3's property test, an
// assignment is never legal inside parentheses: "(x=3)" is rejected,
// since the inner expression is parsed at PrecAssign-excluding level by
// calling parseExpression directly rather than ParseLineExpression.
func (p *Parser) parseParenExpr() ast.Expr {
	p.advance() // '('
	inner := p.parseExpression(PrecComparison)
	if p.failed() {
		return inner
	}
	if p.at(lexer.Equal) {
		p.fail("E-PARSE-PAREN-ASSIGN", "assignment is not permitted inside parentheses", p.curr.Loc)
		return inner
	}
	if _, ok := p.expect(lexer.RParen, "to close '('"); !ok {
		return inner
	}
	return inner
}

// parseArgList parses a parenthesized, comma-separated argument list,
// assuming the current token is '('.
func (p *Parser) parseArgList() []ast.Expr {
	p.advance() // '('
	args := make([]ast.Expr, 0)
	if p.at(lexer.RParen) {
		p.advance()
		return args
	}
	for {
		args = append(args, p.parseExpression(PrecComparison))
		if p.failed() {
			return args
		}
		if p.at(lexer.Comma) {
			p.advance()
			continue
		}
		break
	}
	p.expect(lexer.RParen, "to close argument list")
	return args
}

// parseIntrinsicUnary dispatches exp/log/abs: exactly one call argument
// yields a UnaryExpr (§3.3's fixed op-set for that node kind); any other
// arity yields a generic CallExpr instead, since the intrinsic's name
// still works as an ordinary function-call spelling.
func (p *Parser) parseIntrinsicUnary(tok lexer.Token) ast.Expr {
	name := string(tok.Kind)
	p.advance()
	if !p.at(lexer.LParen) {
		return &ast.IdentifierExpr{Loc: tok.Loc, Name: name}
	}
	args := p.parseArgList()
	if len(args) == 1 {
		return &ast.UnaryExpr{Loc: tok.Loc, Op: ast.UnaryOp(name), Operand: args[0]}
	}
	return &ast.CallExpr{Loc: tok.Loc, Callee: name, Args: args}
}

// parseIntrinsicBinary dispatches min/max the same way: exactly two
// arguments yields a BinaryExpr, otherwise a generic CallExpr.
func (p *Parser) parseIntrinsicBinary(tok lexer.Token) ast.Expr {
	name := string(tok.Kind)
	p.advance()
	if !p.at(lexer.LParen) {
		return &ast.IdentifierExpr{Loc: tok.Loc, Name: name}
	}
	args := p.parseArgList()
	if len(args) == 2 {
		return &ast.BinaryExpr{Loc: tok.Loc, Op: ast.BinaryOp(name), Left: args[0], Right: args[1]}
	}
	return &ast.CallExpr{Loc: tok.Loc, Callee: name, Args: args}
}

// parseIdentifierOrCall parses a bare identifier, a call expression, or
// (open question, §9) an identifier immediately followed by a prime
// token with no intervening whitespace, which folds into one identifier
// name ending in "'" for derivative notation such as m'.
func (p *Parser) parseIdentifierOrCall() ast.Expr {
	tok := p.curr
	name := tok.Spelling
	p.advance()

	if p.at(lexer.Prime) && p.adjacentToPrev(tok) {
		name += "'"
		p.advance()
	}

	if p.at(lexer.LParen) {
		args := p.parseArgList()
		return &ast.CallExpr{Loc: tok.Loc, Callee: name, Args: args}
	}
	return &ast.IdentifierExpr{Loc: tok.Loc, Name: name}
}

// adjacentToPrev reports whether the current token (assumed to be a
// Prime) directly abuts prev's spelling with no whitespace between them,
// the distinguishing test between derivative notation ("m'") and a prime
// token that happens to follow an identifier with a space in between
// (which this grammar has no use for, but should not silently misparse).
func (p *Parser) adjacentToPrev(prev lexer.Token) bool {
	return p.curr.Loc.Line == prev.Loc.Line &&
		p.curr.Loc.Column == prev.Loc.Column+len(prev.Spelling)
}
