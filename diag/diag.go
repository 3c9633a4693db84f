/*
File    : modlc/diag/diag.go

Package diag carries the location and diagnostic types shared by the lexer,
the AST, and the parser (and read by the driver packages that render
them). It has no dependencies of its own.
*/
package diag

import "fmt"

// Location is a 1-indexed line/column pair attached to every token and every
// AST node.
type Location struct {
	Line   int
	Column int
}

// String renders a Location as "line:column", the form used in diagnostics.
func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// Status reflects whether a Lexer or Parser has encountered an error.
type Status int

const (
	Happy Status = iota
	Error
)

func (s Status) String() string {
	if s == Error {
		return "error"
	}
	return "happy"
}

// Diagnostic is a single recorded error: a message, the location it refers
// to, and a short stable code identifying the error kind (supplemental to
// the core taxonomy — see SPEC_FULL.md).
type Diagnostic struct {
	Code    string
	Message string
	Loc     Location
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s [%s]", d.Loc, d.Message, d.Code)
}

func New(code, message string, loc Location) Diagnostic {
	return Diagnostic{Code: code, Message: message, Loc: loc}
}
