/*
File   : cfront/internal/replshell/replshell.go
Package replshell implements the interactive `cfront repl` subcommand.
*/

// Package replshell is an interactive read-check-print loop: each line
// the user types runs through the same four passes as a file (lex,
// parse, resolve scope, type-check) and either an error or the
// annotated dump of that line's Program is printed back. It never
// evaluates or executes anything, so it sits entirely within spec.md's
// Non-goals.
//
// Grounded on the teacher's repl/repl.go
// (_examples/akashmaji946-go-mix/repl/repl.go): same banner/color
// layout, same readline-based line editor and history, same `.exit`
// command and panic-recovery-per-line discipline, with the evaluator
// swapped out for the checking pipeline.
package replshell

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/cfront-lang/cfront/internal/config"
	"github.com/cfront-lang/cfront/internal/diagnostics"
	"github.com/cfront-lang/cfront/internal/lexer"
	"github.com/cfront-lang/cfront/internal/parser"
	"github.com/cfront-lang/cfront/internal/printer"
	"github.com/cfront-lang/cfront/internal/scope"
	"github.com/cfront-lang/cfront/internal/typecheck"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

const banner = `
   ____ _____  ____   ___  _   _ _____
  / ___|  ___|| _ \ / _ \| \ | |_   _|
 | |   | |_   |  _/| | | |  \| | | |
 | |___|  _|  | |  | |_| | |\  | | |
  \____|_|    |_|   \___/|_| \_| |_|
`

// Repl holds the cosmetic configuration of an interactive session.
type Repl struct {
	Banner  string
	Version string
	Prompt  string
	Cfg     *config.Config
}

// New builds a Repl with the project's default banner and a loaded
// configuration (or config.Default() when none is present).
func New(cfg *config.Config) *Repl {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Repl{Banner: banner, Version: "0.1", Prompt: "cfront >>> ", Cfg: cfg}
}

func (r *Repl) printBanner(w io.Writer) {
	if !r.Cfg.Colorize {
		io.WriteString(w, r.Banner+"\n")
		io.WriteString(w, "cfront "+r.Version+" — type a declaration or statement, '.exit' to quit\n")
		return
	}
	greenColor.Fprintf(w, "%s\n", r.Banner)
	blueColor.Fprintln(w, strings.Repeat("-", 48))
	yellowColor.Fprintf(w, "cfront %s\n", r.Version)
	cyanColor.Fprintln(w, "Type a declaration or statement and press enter.")
	cyanColor.Fprintln(w, "Type '.exit' to quit.")
	blueColor.Fprintln(w, strings.Repeat("-", 48))
}

// Start runs the loop until '.exit', EOF, or a readline error.
func (r *Repl) Start(w io.Writer) error {
	r.printBanner(w)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			io.WriteString(w, "Good bye!\n")
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ".exit" {
			io.WriteString(w, "Good bye!\n")
			return nil
		}
		rl.SaveHistory(line)
		r.runLine(w, line)
	}
}

// runLine drives the four passes over one line of input, reporting the
// first diagnostic or printing the resulting annotated Program.
func (r *Repl) runLine(w io.Writer, line string) {
	defer func() {
		if recovered := recover(); recovered != nil {
			redColor.Fprintf(w, "[internal error] %v\n", recovered)
		}
	}()

	tokens, err := lexer.Lex(line)
	if err != nil {
		r.reportError(w, err)
		return
	}
	program, err := parser.NewWithAliases(tokens, r.Cfg.TypeAliases).ParseProgram()
	if err != nil {
		r.reportError(w, err)
		return
	}
	global, err := scope.Analyze(program)
	if err != nil {
		r.reportError(w, err)
		return
	}
	if err := typecheck.Check(program, global); err != nil {
		r.reportError(w, err)
		return
	}
	printer.Fprint(w, program)
}

func (r *Repl) reportError(w io.Writer, err error) {
	d, ok := diagnostics.FromError(err)
	if !ok {
		redColor.Fprintf(w, "%v\n", err)
		return
	}
	if r.Cfg.Colorize {
		redColor.Fprintln(w, d.String())
	} else {
		io.WriteString(w, d.String()+"\n")
	}
}
