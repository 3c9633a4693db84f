/*
File    : modlc/parser/descriptive.go

Pass 1: walks the top-level block sequence once. Descriptive blocks
(TITLE, NEURON, STATE, PARAMETER, ASSIGNED, UNITS) are parsed in full and
populate the Module's symbol table and descriptive fields immediately.
Procedural blocks (PROCEDURE, FUNCTION, INITIAL, BREAKPOINT, KINETIC,
DERIVATIVE, NET_RECEIVE, LINEAR) are only skipped over here: their header
is parsed enough to declare a Symbol and record formal parameters, but
their body is brace-counted and skipped, with its byte offset recorded
for pass 2 (§9, "two-pass via lexer rewind").
*/
package parser

import "modlc/ast"
import "modlc/lexer"

func (p *Parser) runPass1() {
	for !p.at(lexer.EOF) && !p.failed() {
		switch p.curr.Kind {
		case lexer.KwTitle:
			p.parseTitleBlock()
		case lexer.KwNeuron:
			p.parseNeuronBlock()
		case lexer.KwState:
			p.parseNameListBlock(ast.VisState)
		case lexer.KwAssigned:
			p.parseAssignedBlock()
		case lexer.KwParameter:
			p.parseParameterBlock()
		case lexer.KwUnits:
			p.parseUnitsBlock()
		case lexer.KwProcedure:
			p.parseProceduralHeader(ast.ProcNormal, true)
		case lexer.KwFunction:
			p.parseProceduralHeader(ast.ProcFunction, true)
		case lexer.KwInitial:
			p.parseProceduralHeader(ast.ProcInitial, false)
		case lexer.KwBreakpoint:
			p.parseProceduralHeader(ast.ProcBreakpoint, false)
		case lexer.KwKinetic:
			p.parseProceduralHeader(ast.ProcKinetic, false)
		case lexer.KwDerivative:
			p.parseProceduralHeader(ast.ProcDerivative, false)
		case lexer.KwLinear:
			p.parseProceduralHeader(ast.ProcLinear, false)
		case lexer.KwNetReceive:
			p.parseNetReceiveHeader()
		default:
			p.fail("E-PARSE-TOPLEVEL", "unexpected token "+string(p.curr.Kind)+" at top level", p.curr.Loc)
		}
	}
}

// parseTitleBlock captures every token on the same source line as the
// TITLE keyword as free text, joined by single spaces; NMODL's TITLE
// line is prose, not grammar, so there is nothing else to parse here.
func (p *Parser) parseTitleBlock() {
	line := p.curr.Loc.Line
	p.advance() // TITLE
	text := ""
	for p.curr.Loc.Line == line && !p.at(lexer.EOF) {
		if text != "" {
			text += " "
		}
		text += p.curr.Spelling
		p.advance()
	}
	p.mod.SetTitle(text)
}

// parseNameListBlock parses "KEYWORD { name (unit)? name (unit)? ... }" and
// declares each name as a Variable symbol with the given visibility, with
// an optional parenthesized unit per entry (§4.2). Used for STATE.
func (p *Parser) parseNameListBlock(vis ast.Visibility) {
	p.advance() // keyword
	if _, ok := p.expect(lexer.LBrace, "to open block"); !ok {
		return
	}
	for p.at(lexer.Identifier) {
		tok := p.curr
		p.advance()
		sym := ast.NewVariable(tok.Spelling, vis, tok.Loc)
		sym.Unit = p.parseOptionalUnit()
		p.mod.Declare(sym)
	}
	p.expect(lexer.RBrace, "to close block")
}

// parseAssignedBlock parses "ASSIGNED { name (unit) ... }": each entry is
// a name with an optional parenthesized unit.
func (p *Parser) parseAssignedBlock() {
	p.advance() // ASSIGNED
	if _, ok := p.expect(lexer.LBrace, "to open ASSIGNED block"); !ok {
		return
	}
	for p.at(lexer.Identifier) {
		tok := p.curr
		p.advance()
		sym := ast.NewVariable(tok.Spelling, ast.VisAssigned, tok.Loc)
		sym.Unit = p.parseOptionalUnit()
		p.mod.Declare(sym)
	}
	p.expect(lexer.RBrace, "to close ASSIGNED block")
}

// parseParameterBlock parses "PARAMETER { name = value (unit) <lo,hi> }"
// entries; '=' default, unit, and <lo,hi> range are each optional.
func (p *Parser) parseParameterBlock() {
	p.advance() // PARAMETER
	if _, ok := p.expect(lexer.LBrace, "to open PARAMETER block"); !ok {
		return
	}
	for p.at(lexer.Identifier) {
		tok := p.curr
		p.advance()
		sym := ast.NewVariable(tok.Spelling, ast.VisParameter, tok.Loc)

		if p.at(lexer.Equal) {
			p.advance()
			sym.Default = p.parseSignedNumber()
			sym.HasDefault = true
		}
		sym.Unit = p.parseOptionalUnit()

		if p.at(lexer.Less) {
			p.advance()
			sym.Lo = p.parseSignedNumber()
			p.expect(lexer.Comma, "between PARAMETER range bounds")
			sym.Hi = p.parseSignedNumber()
			p.expect(lexer.Greater, "to close PARAMETER range")
			sym.HasRange = true
		}
		p.mod.Declare(sym)
		if p.failed() {
			return
		}
	}
	p.expect(lexer.RBrace, "to close PARAMETER block")
}

// parseOptionalUnit consumes a parenthesized unit string like "(mV)" if
// present, returning its raw text including the parentheses, or "" if no
// unit follows.
func (p *Parser) parseOptionalUnit() string {
	if !p.at(lexer.LParen) {
		return ""
	}
	text := "("
	p.advance()
	for !p.at(lexer.RParen) && !p.at(lexer.EOF) && !p.failed() {
		if len(text) > 1 {
			text += " "
		}
		text += p.curr.Spelling
		p.advance()
	}
	p.expect(lexer.RParen, "to close unit")
	return text + ")"
}

// parseSignedNumber parses an optionally-signed integer or real literal
// and returns its float64 value, used for PARAMETER defaults and ranges.
func (p *Parser) parseSignedNumber() float64 {
	sign := 1.0
	if p.at(lexer.Minus) {
		sign = -1.0
		p.advance()
	} else if p.at(lexer.Plus) {
		p.advance()
	}
	switch p.curr.Kind {
	case lexer.Integer:
		v := float64(lexer.ParseIntegerValue(p.curr.Spelling))
		p.advance()
		return sign * v
	case lexer.Real:
		v := lexer.ParseRealValue(p.curr.Spelling)
		p.advance()
		return sign * v
	}
	p.fail("E-PARSE-NUMBER", "expected a number, got "+string(p.curr.Kind), p.curr.Loc)
	return 0
}

// parseUnitsBlock parses "UNITS { (mV) = (millivolt) ... }" pairs.
func (p *Parser) parseUnitsBlock() {
	p.advance() // UNITS
	if _, ok := p.expect(lexer.LBrace, "to open UNITS block"); !ok {
		return
	}
	for p.at(lexer.LParen) {
		loc := p.curr.Loc
		lhs := p.parseOptionalUnit()
		if _, ok := p.expect(lexer.Equal, "between UNITS conversion pair"); !ok {
			return
		}
		rhs := p.parseOptionalUnit()
		p.mod.AddUnit(ast.UnitConversion{LHS: lhs, RHS: rhs, Loc: loc})
	}
	p.expect(lexer.RBrace, "to close UNITS block")
}

// parseNeuronBlock parses the NEURON block's clauses: SUFFIX/POINT_PROCESS,
// USEION ... READ ... WRITE ... VALENCE ..., NONSPECIFIC_CURRENT, RANGE,
// GLOBAL. Every USEION READ/WRITE name and every NONSPECIFIC_CURRENT name
// also becomes a Variable symbol (VisIndexedIon); RANGE and GLOBAL names
// are recorded only in NeuronInfo and are not declared as symbols.
func (p *Parser) parseNeuronBlock() {
	p.advance() // NEURON
	if _, ok := p.expect(lexer.LBrace, "to open NEURON block"); !ok {
		return
	}
	var info ast.NeuronInfo
	for !p.at(lexer.RBrace) && !p.at(lexer.EOF) && !p.failed() {
		switch p.curr.Kind {
		case lexer.KwSuffix:
			p.advance()
			if tok, ok := p.expect(lexer.Identifier, "as SUFFIX name"); ok {
				info.Suffix = tok.Spelling
			}
		case lexer.KwPointProc:
			p.advance()
			info.PointProcess = true
		case lexer.KwUseion:
			info.Ions = append(info.Ions, p.parseUseionClause())
		case lexer.KwNonspecific:
			p.advance()
			for p.at(lexer.Identifier) {
				info.NonspecificCurrents = append(info.NonspecificCurrents, p.curr.Spelling)
				p.mod.Declare(ast.NewVariable(p.curr.Spelling, ast.VisIndexedIon, p.curr.Loc))
				p.advance()
			}
		case lexer.KwRange:
			p.advance()
			for p.at(lexer.Identifier) {
				info.RangeVars = append(info.RangeVars, p.curr.Spelling)
				p.advance()
			}
		case lexer.KwGlobal:
			p.advance()
			for p.at(lexer.Identifier) {
				info.GlobalVars = append(info.GlobalVars, p.curr.Spelling)
				p.advance()
			}
		default:
			p.fail("E-PARSE-NEURON", "unexpected token "+string(p.curr.Kind)+" inside NEURON block", p.curr.Loc)
			return
		}
	}
	p.expect(lexer.RBrace, "to close NEURON block")
	p.mod.SetNeuronInfo(info)
}

// parseUseionClause parses "USEION name READ r1,r2 WRITE w1,w2 VALENCE n".
// READ/WRITE/VALENCE are each optional and may appear in either order.
func (p *Parser) parseUseionClause() ast.IonBinding {
	p.advance() // USEION
	var binding ast.IonBinding
	if tok, ok := p.expect(lexer.Identifier, "as ion name"); ok {
		binding.Ion = tok.Spelling
	}
	for {
		switch p.curr.Kind {
		case lexer.KwRead:
			p.advance()
			binding.Reads = p.parseIdentList()
			for _, name := range binding.Reads {
				p.mod.Declare(ast.NewVariable(name, ast.VisIndexedIon, p.curr.Loc))
			}
		case lexer.KwWrite:
			p.advance()
			binding.Writes = p.parseIdentList()
			for _, name := range binding.Writes {
				p.mod.Declare(ast.NewVariable(name, ast.VisIndexedIon, p.curr.Loc))
			}
		case lexer.KwValence:
			p.advance()
			binding.Valence = int(p.parseSignedNumber())
			binding.HasValence = true
		default:
			return binding
		}
		if p.failed() {
			return binding
		}
	}
}

// parseIdentList parses a comma-separated run of identifiers.
func (p *Parser) parseIdentList() []string {
	out := make([]string, 0)
	for p.at(lexer.Identifier) {
		out = append(out, p.curr.Spelling)
		p.advance()
		if p.at(lexer.Comma) {
			p.advance()
			continue
		}
		break
	}
	return out
}

// parseProceduralHeader handles PROCEDURE/FUNCTION/INITIAL/BREAKPOINT/
// KINETIC/DERIVATIVE/LINEAR headers: an optional name (requireName controls
// whether one is required, since INITIAL/BREAKPOINT never have one while
// PROCEDURE/FUNCTION always do; KINETIC/DERIVATIVE/LINEAR take an
// optional name naming the SOLVE target), an optional parenthesized
// parameter list, then the '{'-delimited body, which is skipped and
// recorded for pass 2. A block without a name is declared under its
// keyword spelling (e.g. "BREAKPOINT").
func (p *Parser) parseProceduralHeader(kind ast.ProcedureKind, requireName bool) {
	headerLoc := p.curr.Loc
	keyword := p.curr.Spelling
	p.advance() // keyword

	name := ""
	if requireName {
		tok, ok := p.expect(lexer.Identifier, "as block name")
		if !ok {
			return
		}
		name = tok.Spelling
	} else if p.at(lexer.Identifier) {
		name = p.curr.Spelling
		p.advance()
	}
	if name == "" {
		name = keyword
	}

	var params []string
	if p.at(lexer.LParen) {
		params = p.parseParamList()
	}

	if _, ok := p.expect(lexer.LBrace, "to open "+name+" body"); !ok {
		return
	}
	sym := ast.NewProcedure(name, kind, params, headerLoc)
	if name != "" {
		p.mod.Declare(sym)
	}
	p.recordAndSkipBody(sym)
}

// parseNetReceiveHeader handles "NET_RECEIVE(args) { ... }", the one
// procedural block whose parenthesized list follows the keyword directly
// with no name in between, and whose arguments are recorded separately
// as event-delivery arguments rather than ordinary formal parameters.
func (p *Parser) parseNetReceiveHeader() {
	headerLoc := p.curr.Loc
	p.advance() // NET_RECEIVE
	var args []string
	if p.at(lexer.LParen) {
		args = p.parseParamList()
	}
	if _, ok := p.expect(lexer.LBrace, "to open NET_RECEIVE body"); !ok {
		return
	}
	sym := ast.NewProcedure("NET_RECEIVE", ast.ProcNetReceive, nil, headerLoc)
	sym.NetReceiveArgs = args
	p.mod.Declare(sym)
	p.recordAndSkipBody(sym)
}

// parseParamList parses "( name (unit), name (unit), ... )", discarding
// per-parameter units — dimensional analysis of formal parameters is out
// of scope (Non-goals) — and returning just the bare names in order.
func (p *Parser) parseParamList() []string {
	p.advance() // '('
	out := make([]string, 0)
	for !p.at(lexer.RParen) && !p.at(lexer.EOF) && !p.failed() {
		tok, ok := p.expect(lexer.Identifier, "as parameter name")
		if !ok {
			return out
		}
		out = append(out, tok.Spelling)
		p.parseOptionalUnit()
		if p.at(lexer.Comma) {
			p.advance()
			continue
		}
		break
	}
	p.expect(lexer.RParen, "to close parameter list")
	return out
}

// recordAndSkipBody is called with the current token positioned just
// past a procedural block's opening '{'. It brace-counts to the matching
// '}', recording the byte offset/line/column of the first body token (or
// of the closing brace itself, for an empty body) so pass 2 can re-lex
// exactly this span with lexer.NewAt.
func (p *Parser) recordAndSkipBody(sym *ast.Symbol) {
	offset, line, col := p.bodyStartPosition()

	depth := 1
	for depth > 0 {
		switch p.curr.Kind {
		case lexer.LBrace:
			depth++
		case lexer.RBrace:
			depth--
		case lexer.EOF:
			p.fail("E-PARSE-UNCLOSED", "unterminated block body for '"+sym.Name+"'", p.curr.Loc)
			return
		}
		if depth == 0 {
			break
		}
		p.advance()
	}
	p.advance() // consume the matching '}'

	p.pendingBlocks = append(p.pendingBlocks, pendingBlock{
		sym:        sym,
		bodyOffset: offset,
		bodyLine:   line,
		bodyColumn: col,
	})
}

// bodyStartPosition computes the byte offset of the current token (the
// first token of the body, immediately after the '{' that
// parseProceduralHeader/parseNetReceiveHeader just consumed) by scanning
// src for the token's line/column — the Lexer itself doesn't expose raw
// byte offsets on Token, only Line/Column, so this walks src once to
// translate; cheap relative to parsing and only ever done once per
// procedural block header (§5's "single pass over the descriptive
// portion" budget is about token scanning, not this bookkeeping).
func (p *Parser) bodyStartPosition() (offset, line, col int) {
	loc := p.curr.Loc
	line, col = 1, 1
	for i := 0; i < len(p.src); i++ {
		if line == loc.Line && col == loc.Column {
			return i, line, col
		}
		if p.src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return len(p.src), line, col
}
