/*
File    : modlc/parser/entrypoints.go

The remaining §6 grammar entry points: ParseProcedure, ParseFunction, and
ParseStateBlock parse one standalone construct start-to-finish in a
single pass, rather than going through the file-level pass1/pass2 split,
so a caller holding one fragment gets its whole AST back immediately,
not a two-phase Module. The grammar-entry-point REPL (internal/replviz)
does not offer these three.
*/
package parser

import (
	"modlc/ast"
	"modlc/lexer"
)

// ParseProcedure parses a complete "PROCEDURE name(args) { body }"
// construct, header and body together, and declares it in the Module.
func (p *Parser) ParseProcedure() *ast.Symbol {
	return p.parseStandaloneProcedural(ast.ProcNormal, true)
}

// ParseFunction parses a complete "FUNCTION name(args) { body }"
// construct the same way.
func (p *Parser) ParseFunction() *ast.Symbol {
	return p.parseStandaloneProcedural(ast.ProcFunction, true)
}

func (p *Parser) parseStandaloneProcedural(kind ast.ProcedureKind, requireName bool) *ast.Symbol {
	headerLoc := p.curr.Loc
	p.advance() // keyword

	name := ""
	if requireName {
		tok, ok := p.expect(lexer.Identifier, "as block name")
		if !ok {
			return nil
		}
		name = tok.Spelling
	} else if p.at(lexer.Identifier) {
		name = p.curr.Spelling
		p.advance()
	}

	var params []string
	if p.at(lexer.LParen) {
		params = p.parseParamList()
	}

	sym := ast.NewProcedure(name, kind, params, headerLoc)
	body := p.parseNestedBlock()
	if p.failed() {
		return nil
	}
	sym.Body = body
	if name != "" {
		p.mod.Declare(sym)
	}
	return sym
}

// ParseStateBlock parses a complete "STATE { name (unit)? ... }" construct
// and declares each name as a state variable in the Module, with an
// optional parenthesized unit per entry (§4.2).
func (p *Parser) ParseStateBlock() []*ast.Symbol {
	p.advance() // STATE
	if _, ok := p.expect(lexer.LBrace, "to open STATE block"); !ok {
		return nil
	}
	out := make([]*ast.Symbol, 0)
	for p.at(lexer.Identifier) {
		tok := p.curr
		p.advance()
		sym := ast.NewVariable(tok.Spelling, ast.VisState, tok.Loc)
		sym.Unit = p.parseOptionalUnit()
		p.mod.Declare(sym)
		out = append(out, sym)
	}
	p.expect(lexer.RBrace, "to close STATE block")
	return out
}
