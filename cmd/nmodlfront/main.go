/*
File    : modlc/cmd/nmodlfront/main.go

nmodlfront is the thin harness proving the front end runs end to end: it
lexes and parses one or more mechanism files and prints their symbols,
tokens, or AST. It performs no semantic analysis and no code generation —
the same role the teacher's own main.go/repl.go play for go-mix's
evaluator, rebuilt here around urfave/cli/v3 (grounded on
hemanta212-scaf's cmd/scaf command tree) instead of a single flat main.
*/
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/urfave/cli/v3"

	"modlc/ast"
	"modlc/diag"
	"modlc/internal/config"
	"modlc/internal/replviz"
	"modlc/internal/report"
	"modlc/lexer"
	"modlc/parser"
)

func main() {
	cmd := &cli.Command{
		Name:  "nmodlfront",
		Usage: "lex and parse mechanism description files",
		Commands: []*cli.Command{
			parseCommand(),
			replCommand(),
		},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func parseCommand() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "parse one or more .mod files and print their symbols and diagnostics",
		ArgsUsage: "<file.mod> [file2.mod ...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "trace parse progress"},
			&cli.BoolFlag{Name: "dump-tokens", Usage: "print the token stream instead of symbols"},
			&cli.BoolFlag{Name: "dump-ast", Usage: "print every procedural block's AST via go-spew"},
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "project file (.toml or .yaml)"},
		},
		Action: runParse,
	}
}

func runParse(ctx context.Context, cmd *cli.Command) error {
	paths := cmd.Args().Slice()
	if len(paths) == 0 {
		return fmt.Errorf("nmodlfront parse: no input files given")
	}

	proj := config.Default()
	if path := cmd.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		proj = loaded
	}

	log, err := report.NewTraceLogger(cmd.Bool("verbose"))
	if err != nil {
		return err
	}
	defer log.Sync()

	renderer := report.NewRenderer(os.Stdout)
	failures := make(map[string]diag.Diagnostic)

	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		mod := parser.Parse(string(src))
		report.TraceParse(log, path, mod.Status())

		if mod.Status() == diag.Error {
			if d, ok := mod.FirstError(); ok && !proj.Suppresses(d.Code) {
				failures[path] = d
				renderer.Diagnostic(path, d)
			}
			continue
		}

		switch {
		case cmd.Bool("dump-tokens"):
			dumpTokens(renderer, string(src))
		case cmd.Bool("dump-ast"):
			dumpAST(renderer, mod)
		default:
			renderer.Success(path, len(mod.Symbols()))
			for _, sym := range mod.Symbols() {
				renderer.Info("  %s", sym.String())
			}
		}
	}

	return report.CollectErrors(paths, failures)
}

func dumpTokens(renderer *report.Renderer, src string) {
	lx := lexer.New(src)
	for _, t := range lx.Tokens() {
		renderer.Info("%s", t.String())
	}
}

func dumpAST(renderer *report.Renderer, mod *ast.Module) {
	for _, sym := range mod.Procedures() {
		renderer.Info("--- %s (%s) ---", sym.Name, sym.Kind)
		if sym.Body != nil {
			fmt.Println(spew.Sdump(sym.Body))
		}
	}
}

func replCommand() *cli.Command {
	return &cli.Command{
		Name:   "repl",
		Usage:  "interactive grammar-entry-point REPL",
		Action: func(ctx context.Context, cmd *cli.Command) error { return replviz.Run(os.Stdout) },
	}
}
