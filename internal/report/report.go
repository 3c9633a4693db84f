/*
File    : modlc/internal/report/report.go

Package report is the driver-side diagnostics and trace-logging layer.
It never touches the lexer/ast/parser packages' internals directly — it
only ever renders the diag.Diagnostic and ast.Module values those
packages already produce, keeping the core side-effect free as §5
requires.

Structured tracing is grounded on hemanta212-scaf's zap usage in
lsp/diagnostics.go (zap.String/zap.Int field style); terminal rendering
is grounded on the teacher's own repl.go color usage
(blueColor/redColor/... via fatih/color).
*/
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"modlc/diag"
)

// NewTraceLogger builds the zap logger the driver passes down for -v
// verbose tracing of which file was parsed and with what status. It is never
// constructed by, or passed into, the core packages — only the CLI
// command handlers hold one.
func NewTraceLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// TraceParse logs that a file's parse has finished, with its status, the
// one bit of structured tracing this driver needs.
func TraceParse(log *zap.Logger, path string, status diag.Status) {
	log.Debug("parse finished",
		zap.String("file", path),
		zap.String("status", status.String()))
}

// Renderer prints diagnostics to a terminal, colorizing when the target
// is an actual TTY (mattn/go-isatty) and routing through go-colorable so
// ANSI sequences still render correctly on Windows consoles — the same
// pairing the teacher pulls in indirectly for its own REPL.
type Renderer struct {
	out    io.Writer
	red    *color.Color
	yellow *color.Color
	cyan   *color.Color
}

// NewRenderer wraps w (typically os.Stdout) for diagnostic rendering. If
// w is *os.File it is wrapped through go-colorable, and if it isn't a
// terminal, color is disabled by setting fatih/color's global NoColor.
func NewRenderer(w io.Writer) *Renderer {
	out := w
	if f, ok := w.(*os.File); ok {
		out = colorable.NewColorable(f)
		if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
			color.NoColor = true
		}
	}
	return &Renderer{
		out:    out,
		red:    color.New(color.FgRed),
		yellow: color.New(color.FgYellow),
		cyan:   color.New(color.FgCyan),
	}
}

// Diagnostic renders one diagnostic as "path:line:col: message [code]" in
// red, matching the teacher's redColor.Fprintf convention for errors.
func (r *Renderer) Diagnostic(path string, d diag.Diagnostic) {
	r.red.Fprintf(r.out, "%s:%s: %s [%s]\n", path, d.Loc, d.Message, d.Code)
}

// Success renders a one-line "ok" summary in cyan.
func (r *Renderer) Success(path string, symbolCount int) {
	r.cyan.Fprintf(r.out, "%s: parsed ok, %d symbols\n", path, symbolCount)
}

// Info renders an informational line (used for --dump-tokens/--dump-ast
// section headers) in yellow.
func (r *Renderer) Info(format string, args ...any) {
	r.yellow.Fprintf(r.out, format+"\n", args...)
}

// CollectErrors aggregates one diagnostic-derived error per input file
// into a single multierr error the driver can return as its process
// exit cause, grounded on hemanta212-scaf's pairing of zap with
// multierr for reporting multiple independent failures from one run.
func CollectErrors(paths []string, failed map[string]diag.Diagnostic) error {
	var combined error
	for _, path := range paths {
		if d, ok := failed[path]; ok {
			combined = multierr.Append(combined, fmt.Errorf("%s:%s: %s [%s]", path, d.Loc, d.Message, d.Code))
		}
	}
	return combined
}
