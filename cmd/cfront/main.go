/*
File   : cfront/cmd/cfront/main.go
cfront is the command-line entry point described by spec.md §6: it is
a thin shell around the four-pass pipeline and does none of the
checking itself.
*/
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cfront-lang/cfront/internal/config"
	"github.com/cfront-lang/cfront/internal/diagnostics"
	"github.com/cfront-lang/cfront/internal/lexer"
	"github.com/cfront-lang/cfront/internal/parser"
	"github.com/cfront-lang/cfront/internal/printer"
	"github.com/cfront-lang/cfront/internal/replshell"
	"github.com/cfront-lang/cfront/internal/scope"
	"github.com/cfront-lang/cfront/internal/typecheck"
)

func main() {
	os.Exit(run())
}

func run() int {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		return 1
	}
	return exitCode
}

// exitCode is set from runFile by the root command's RunE so main can report spec.md §6's
// exit status after cobra has already printed anything it owns (usage,
// flag errors); cobra's own Execute return only covers its own errors.
var exitCode int

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "cfront [source-file]",
		Short: "Check a C-like source file through the four-pass front-end",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exitCode = runFile(args[0])
			return nil
		},
	}
	root.AddCommand(newReplCommand())
	return root
}

func newReplCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactively check declarations and statements one line at a time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return replshell.New(cfg).Start(os.Stdout)
		},
	}
}

func loadConfig() (*config.Config, error) {
	return config.Load(".cfront.yaml")
}

// runFile reads path, runs all four passes, and either dumps the
// annotated AST to stdout or reports the first diagnostic to stderr,
// returning the exit code spec.md §6 specifies.
func runFile(path string) int {
	cfg, err := loadConfig()
	if err != nil {
		return diagnostics.Report(err, true)
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return diagnostics.Report(err, cfg.Colorize)
	}

	tokens, err := lexer.Lex(string(src))
	if err != nil {
		return diagnostics.Report(err, cfg.Colorize)
	}

	program, err := parser.NewWithAliases(tokens, cfg.TypeAliases).ParseProgram()
	if err != nil {
		return diagnostics.Report(err, cfg.Colorize)
	}

	global, err := scope.Analyze(program)
	if err != nil {
		return diagnostics.Report(err, cfg.Colorize)
	}

	if err := typecheck.Check(program, global); err != nil {
		return diagnostics.Report(err, cfg.Colorize)
	}

	printer.Fprint(os.Stdout, program)
	return 0
}
