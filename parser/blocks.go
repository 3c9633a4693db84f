/*
File    : modlc/parser/blocks.go

Pass 2: for each procedural block pass 1 recorded, positions a fresh
lexer.Lexer at the saved body offset (lexer.NewAt — no token buffering
across the two passes, per §9) and parses the block's statements into a
*ast.BlockExpr attached to its Symbol.

Statement forms grounded on the teacher's parser_statements.go (block
parsing loop shape) and parser_conditionals.go (if/else-if control flow;
unlike the teacher, an else-if is stored in IfExpr.FalseBranch as the
nested IfExpr itself, not wrapped in a single-statement block).
*/
package parser

import (
	"modlc/ast"
	"modlc/diag"
	"modlc/lexer"
)

// runPass2 drains pendingBlocks, parsing each recorded body in turn.
func (p *Parser) runPass2() {
	for _, pb := range p.pendingBlocks {
		if p.failed() {
			return
		}
		p.parsePendingBody(pb)
	}
}

// parsePendingBody rewinds the lexer to pb's recorded offset and parses
// its body as a block, then hands the result to the symbol it belongs
// to. Rewinding re-lexes rather than replays buffered tokens: the whole
// point of recording an offset instead of tokens in pass 1 was to avoid
// ever holding two passes' worth of tokens in memory at once (§5).
func (p *Parser) parsePendingBody(pb pendingBlock) {
	sub := &Parser{
		src:    p.src,
		lex:    lexer.NewAt(p.src, pb.bodyOffset, pb.bodyLine, pb.bodyColumn),
		mod:    p.mod,
		status: diag.Happy,
	}
	sub.advance()
	sub.advance()

	body := sub.parseBlockBody(false)
	if sub.failed() {
		p.status = diag.Error
		p.firstErr = sub.firstErr
		return
	}
	pb.sym.Body = body
}

// parseBlockBody parses a run of statements up to (but not consuming) a
// closing '}', wrapping them in a BlockExpr. isNested distinguishes a
// top-level procedural body from a nested if/else block (§3.3's
// BlockExpr.IsNested — nested blocks are only legal inside if/else).
func (p *Parser) parseBlockBody(isNested bool) *ast.BlockExpr {
	loc := p.curr.Loc
	stmts := make([]ast.Expr, 0)
	for !p.at(lexer.RBrace) && !p.at(lexer.EOF) && !p.failed() {
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		if p.failed() {
			break
		}
	}
	return &ast.BlockExpr{Loc: loc, Statements: stmts, IsNested: isNested}
}

// parseNestedBlock requires and consumes the enclosing '{' '}' pair,
// unlike parseBlockBody which assumes the caller already consumed '{'
// and will consume the trailing '}' itself. Used for if/else bodies.
func (p *Parser) parseNestedBlock() *ast.BlockExpr {
	if _, ok := p.expect(lexer.LBrace, "to open block"); !ok {
		return nil
	}
	block := p.parseBlockBody(true)
	p.expect(lexer.RBrace, "to close block")
	return block
}

// parseStatement dispatches on the current token to one of the statement
// forms the procedural-block grammar allows.
func (p *Parser) parseStatement() ast.Expr {
	switch p.curr.Kind {
	case lexer.KwLocal:
		return p.parseLocal()
	case lexer.KwSolve:
		return p.parseSolve()
	case lexer.KwConductance:
		return p.parseConductance()
	case lexer.KwIf:
		return p.ParseIf()
	case lexer.KwInitial:
		return p.parseInitial()
	case lexer.Tilde:
		return p.parseReactionStatement()
	case lexer.KwConserve:
		return p.ParseConserveExpression()
	default:
		return p.ParseLineExpression()
	}
}

// ParseLocal parses "LOCAL x, y, z" — a comma-separated list of names,
// with no trailing comma permitted (§8: "LOCAL x,y,z," is an error).
func (p *Parser) ParseLocal() *ast.LocalDecl { return p.parseLocal() }

func (p *Parser) parseLocal() *ast.LocalDecl {
	loc := p.curr.Loc
	p.advance() // LOCAL
	names := make([]string, 0)
	for {
		tok, ok := p.expect(lexer.Identifier, "as a LOCAL variable name")
		if !ok {
			return &ast.LocalDecl{Loc: loc, Names: names}
		}
		names = append(names, tok.Spelling)
		p.mod.Declare(ast.NewVariable(tok.Spelling, ast.VisLocal, tok.Loc))
		if !p.at(lexer.Comma) {
			break
		}
		p.advance()
		if !p.at(lexer.Identifier) {
			p.fail("E-PARSE-LOCAL-TRAILING", "trailing comma in LOCAL declaration", p.curr.Loc)
			return &ast.LocalDecl{Loc: loc, Names: names}
		}
	}
	return &ast.LocalDecl{Loc: loc, Names: names}
}

// ParseSolve parses "SOLVE target METHOD method" or "SOLVE target",
// which leaves Method == MethodNone.
func (p *Parser) ParseSolve() *ast.SolveExpr { return p.parseSolve() }

func (p *Parser) parseSolve() *ast.SolveExpr {
	loc := p.curr.Loc
	p.advance() // SOLVE
	tok, ok := p.expect(lexer.Identifier, "as SOLVE target")
	if !ok {
		return &ast.SolveExpr{Loc: loc, Method: ast.MethodNone}
	}
	method := ast.MethodNone
	if p.at(lexer.KwMethod) {
		p.advance()
		switch p.curr.Kind {
		case lexer.KwCnexp:
			method = ast.MethodCnexp
		case lexer.KwSparse:
			method = ast.MethodSparse
		default:
			p.fail("E-PARSE-METHOD", "unknown SOLVE method "+string(p.curr.Kind), p.curr.Loc)
			return &ast.SolveExpr{Loc: loc, Target: tok.Spelling, Method: method}
		}
		p.advance()
	}
	return &ast.SolveExpr{Loc: loc, Target: tok.Spelling, Method: method}
}

// ParseConductance parses "CONDUCTANCE g" or "CONDUCTANCE g USEION ion".
// Absent a USEION clause, the conductance is attributed to the
// nonspecific current (§8: "gnda with no USEION clause binds to the
// nonspecific current").
func (p *Parser) ParseConductance() *ast.ConductanceExpr { return p.parseConductance() }

func (p *Parser) parseConductance() *ast.ConductanceExpr {
	loc := p.curr.Loc
	p.advance() // CONDUCTANCE
	tok, ok := p.expect(lexer.Identifier, "as CONDUCTANCE variable name")
	if !ok {
		return &ast.ConductanceExpr{Loc: loc, Ion: ast.IonNonspecific}
	}
	ion := ast.IonNonspecific
	if p.at(lexer.KwUseion) {
		p.advance()
		ionTok, ok := p.expect(lexer.Identifier, "as ion name")
		if !ok {
			return &ast.ConductanceExpr{Loc: loc, Name: tok.Spelling, Ion: ion}
		}
		switch ionTok.Spelling {
		case "na":
			ion = ast.IonNa
		case "k":
			ion = ast.IonK
		case "ca":
			ion = ast.IonCa
		default:
			ion = ast.IonOther
		}
	}
	return &ast.ConductanceExpr{Loc: loc, Name: tok.Spelling, Ion: ion}
}

// ParseIf parses an if statement with optional else/else-if, following
// the teacher's parseIfStatement control flow, except that an else
// immediately followed by IF is stored as a single nested IfExpr rather
// than a block containing one.
func (p *Parser) ParseIf() *ast.IfExpr {
	loc := p.curr.Loc
	p.advance() // IF
	if _, ok := p.expect(lexer.LParen, "to open IF condition"); !ok {
		return nil
	}
	cond := p.parseExpression(PrecComparison)
	if _, ok := p.expect(lexer.RParen, "to close IF condition"); !ok {
		return nil
	}
	trueBranch := p.parseNestedBlock()

	node := &ast.IfExpr{Loc: loc, Condition: cond, TrueBranch: trueBranch}
	if p.at(lexer.KwElse) {
		p.advance()
		if p.at(lexer.KwIf) {
			if nested := p.ParseIf(); nested != nil {
				node.FalseBranch = nested
			}
		} else if block := p.parseNestedBlock(); block != nil {
			node.FalseBranch = block
		}
	}
	return node
}

// parseInitial parses a nested INITIAL block used inside a KINETIC or
// DERIVATIVE body to set initial state values (distinct from the
// top-level INITIAL procedural block pass 1 already handles).
func (p *Parser) parseInitial() *ast.InitialExpr {
	loc := p.curr.Loc
	p.advance() // INITIAL
	body := p.parseNestedBlock()
	return &ast.InitialExpr{Loc: loc, Body: body}
}
