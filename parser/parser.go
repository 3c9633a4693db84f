/*
File    : modlc/parser/parser.go

Package parser implements the two-pass recursive-descent parser: pass 1
walks the descriptive blocks (TITLE, NEURON, STATE, PARAMETER, ASSIGNED,
UNITS) and records where each procedural block's body starts without
parsing it; pass 2 re-lexes each recorded body from its saved offset and
builds the statement/expression AST attached to that block's Symbol.

The Parser owns a *lexer.Lexer by composition, the way the spec's design
notes ask for: the teacher's Parser embeds lexer.Lexer directly (an
inheritance-flavored "is-a" relationship in a language that doesn't even
have subtyping, just field promotion); this Parser instead holds the
lexer as a named field and forwards to it explicitly, so a type switch on
*Parser never accidentally satisfies a lexer-shaped interface.
*/
package parser

import (
	"modlc/ast"
	"modlc/diag"
	"modlc/lexer"
)

// Parser drives pass 1 and pass 2 over a single source buffer.
type Parser struct {
	src string
	lex *lexer.Lexer

	curr lexer.Token
	peek lexer.Token

	mod      *ast.Module
	status   diag.Status
	firstErr *diag.Diagnostic

	// pendingBlocks holds the procedural-block headers pass 1 recorded
	// but did not parse, in declaration order; pass 2 drains this list.
	pendingBlocks []pendingBlock
}

// pendingBlock is what pass 1 records for a procedural block: enough to
// re-lex its body in pass 2 without having kept any tokens around.
type pendingBlock struct {
	sym        *ast.Symbol
	bodyOffset int
	bodyLine   int
	bodyColumn int
}

// New creates a Parser over src, ready to run Parse.
func New(src string) *Parser {
	p := &Parser{src: src, lex: lexer.New(src), mod: ast.NewModule(), status: diag.Happy}
	p.advance()
	p.advance()
	return p
}

// advance shifts curr/peek forward by one token, the same two-token
// lookahead discipline the teacher's Parser.advance uses.
func (p *Parser) advance() {
	p.curr = p.peek
	p.peek = p.lex.Get()
}

// at reports whether the current token has the given kind.
func (p *Parser) at(k lexer.Kind) bool { return p.curr.Kind == k }

// peekAt reports whether the lookahead token has the given kind.
func (p *Parser) peekAt(k lexer.Kind) bool { return p.peek.Kind == k }

// expect consumes the current token if it matches kind, else records a
// diagnostic (first-error-wins, §4.6) and leaves the token stream
// unconsumed so the caller can attempt to continue locally if it wants
// to, though this grammar never does: one failure halts the whole parse.
func (p *Parser) expect(k lexer.Kind, hint string) (lexer.Token, bool) {
	if !p.at(k) {
		p.fail("E-PARSE-EXPECT", "expected "+string(k)+" "+hint+", got "+string(p.curr.Kind), p.curr.Loc)
		return lexer.Token{}, false
	}
	t := p.curr
	p.advance()
	return t, true
}

func (p *Parser) fail(code, message string, loc diag.Location) {
	p.status = diag.Error
	if p.firstErr == nil {
		d := diag.New(code, message, loc)
		p.firstErr = &d
	}
	p.mod.Fail(code, message, loc)
}

// failed reports whether the parser has already recorded its one and
// only diagnostic; every recursive-descent routine checks this before
// doing further work so a first error actually stops the parse (§4.6).
func (p *Parser) failed() bool { return p.status == diag.Error }

// Parse runs both passes over src and returns the resulting Module. The
// Module's Status/FirstError report whether parsing succeeded.
func Parse(src string) *ast.Module {
	p := New(src)
	p.runPass1()
	if !p.failed() {
		p.runPass2()
	}
	return p.mod
}

// Status and FirstError mirror the Module's, for callers that only have
// a *Parser in hand (the grammar-entry-point REPL, mid-parse).
func (p *Parser) Status() diag.Status { return p.mod.Status() }

func (p *Parser) FirstError() (diag.Diagnostic, bool) {
	return p.mod.FirstError()
}

// Module returns the Module under construction.
func (p *Parser) Module() *ast.Module { return p.mod }
