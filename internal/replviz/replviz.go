/*
File    : modlc/internal/replviz/replviz.go

Package replviz implements the grammar-entry-point REPL: a small
readline loop that lets a user type one grammar fragment at a time
(`expr: 2^3^2`, `stoich: -2a+b`, `local: LOCAL x,y,z`, ...) and see the
resulting AST printed with go-spew, rather than requiring a whole .mod
file. It exercises the §6 exported grammar entry points directly.

Grounded on the teacher's repl/repl.go: same readline.New/rl.Readline
loop shape, the same color-coded banner/prompt/error convention (though
the palette and commands are this REPL's own), and the same "recover
from panics, keep the loop alive" discipline in executeWithRecovery. AST
rendering replaces the teacher's PrintingVisitor (root print_visitor.go)
with spew.Sdump, since this AST has no Visitor to accept one (§9: tagged
variant over polymorphic dispatch).
*/
package replviz

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"

	"modlc/diag"
	"modlc/parser"
)

var (
	blueColor   = color.New(color.FgBlue)
	greenColor  = color.New(color.FgGreen)
	redColor    = color.New(color.FgRed)
	yellowColor = color.New(color.FgYellow)
)

const banner = `
 _ __  _ __ ___   ___   __| | | | ___ (_) _ __ ___   _ __    __ _  _ __ ___   _ __ ___   __ _  _ __
| '_ \| '_ ' _ \ / _ \ / _' | | |/ _ \| || '__/ __| | '_ \  / _' || '__/ __| | '_ ' _ \ / _' || '_ \
| | | | | | | | | (_) | (_| | | | (_) | || |  \__ \ | |_) || (_| || |  \__ \ | | | | | | (_| || |_) |
|_| |_|_| |_| |_|\___/ \__,_| |_|\___/|_||_|  |___/ | .__/  \__,_||_|  |___/ |_| |_| |_|\__,_|| .__/
                                                     | |                                       | |
                                                     |_|                                       |_|
`

const prompt = "nmodl> "

// Run starts the grammar-entry-point REPL, reading from os.Stdin-backed
// readline and writing to w.
func Run(w io.Writer) error {
	blueColor.Fprintln(w, strings.Repeat("-", 72))
	greenColor.Fprintln(w, banner)
	blueColor.Fprintln(w, strings.Repeat("-", 72))
	yellowColor.Fprintln(w, "grammar-entry-point REPL — type one of:")
	yellowColor.Fprintln(w, "  expr: <expression>        e.g. expr: 2^3^2")
	yellowColor.Fprintln(w, "  line: <statement line>     e.g. line: m = alpha/(alpha+beta)")
	yellowColor.Fprintln(w, "  stoich: <stoich sum>        e.g. stoich: -2a + b")
	yellowColor.Fprintln(w, "  reaction: <reaction scheme> e.g. reaction: ~ A + B <-> C (k1,k2)")
	yellowColor.Fprintln(w, "Type '.exit' to quit.")
	blueColor.Fprintln(w, strings.Repeat("-", 72))

	rl, err := readline.New(prompt)
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			fmt.Fprintln(w, "Good bye!")
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ".exit" {
			fmt.Fprintln(w, "Good bye!")
			return nil
		}
		rl.SaveHistory(line)
		evalLine(w, line)
	}
}

// evalLine dispatches one REPL line to the matching §6 grammar entry
// point and dumps its result, recovering from any panic the way the
// teacher's executeWithRecovery does so a single bad fragment never
// kills the REPL loop.
func evalLine(w io.Writer, line string) {
	defer func() {
		if r := recover(); r != nil {
			redColor.Fprintf(w, "[panic] %v\n", r)
		}
	}()

	kind, body, ok := strings.Cut(line, ":")
	if !ok {
		redColor.Fprintln(w, "expected '<kind>: <fragment>', e.g. 'expr: 2^3^2'")
		return
	}
	body = strings.TrimSpace(body)

	var value any
	var p *parser.Parser

	switch strings.TrimSpace(kind) {
	case "expr":
		p = parser.New(body)
		value = p.ParseExpression()
	case "line":
		p = parser.New(body)
		value = p.ParseLineExpression()
	case "stoich":
		p = parser.New(body)
		value = p.ParseStoichExpression()
	case "reaction":
		p = parser.New(body)
		value = p.ParseReactionExpression()
	case "conserve":
		p = parser.New(body)
		value = p.ParseConserveExpression()
	case "local":
		p = parser.New(body)
		value = p.ParseLocal()
	default:
		redColor.Fprintf(w, "unknown fragment kind %q\n", kind)
		return
	}

	if p.Status() == diag.Error {
		if d, ok := p.FirstError(); ok {
			redColor.Fprintf(w, "%s: %s [%s]\n", d.Loc, d.Message, d.Code)
		}
		return
	}
	greenColor.Fprintln(w, spew.Sdump(value))
}
