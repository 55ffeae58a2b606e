/*
File   : cfront/internal/diagnostics/diagnostics.go
Package diagnostics normalizes the four passes' distinct error types
into the single-line report format of spec.md §7.
*/

// Package diagnostics turns whatever typed error a pass returned
// (lexer.Error, parser.Error, scope.Error, typecheck.Error, or a plain
// I/O error) into one Diagnostic: a category name, a message, and a
// line/column where available. This is the "driver catches each of the
// four error categories distinctly" piece spec.md §7 describes, kept
// as its own small package so cmd/cfront and internal/replshell share
// one formatting path instead of duplicating the type switch.
package diagnostics

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/cfront-lang/cfront/internal/lexer"
	"github.com/cfront-lang/cfront/internal/parser"
	"github.com/cfront-lang/cfront/internal/scope"
	"github.com/cfront-lang/cfront/internal/typecheck"
)

// errWriter is where Report writes; a package variable (not a hardcoded
// os.Stderr call) so tests can redirect it.
var errWriter io.Writer = os.Stderr

// Diagnostic is the normalized shape every pass error is reduced to.
type Diagnostic struct {
	Category string
	Message  string
	Line     int
	Column   int // 0 when the originating error carries no column
}

// FromError classifies err against the four pass error types. A nil err
// or an unrecognized error both return ok == false; the caller should
// treat the latter as a bare I/O failure and report it as-is.
func FromError(err error) (Diagnostic, bool) {
	switch e := err.(type) {
	case *lexer.Error:
		return Diagnostic{Category: "LexError: " + e.Kind.String(), Message: e.Message, Line: e.Line, Column: e.Column}, true
	case *parser.Error:
		return Diagnostic{Category: "ParseError: " + e.Kind.String(), Message: e.Message, Line: e.Line}, true
	case *scope.Error:
		return Diagnostic{Category: "ScopeError: " + e.Kind.String(), Message: e.Message, Line: e.Line}, true
	case *typecheck.Error:
		return Diagnostic{Category: "TypeError: " + e.Kind.String(), Message: e.Message, Line: e.Line}, true
	default:
		return Diagnostic{}, false
	}
}

// String renders the diagnostic's single line, column omitted when zero.
func (d Diagnostic) String() string {
	if d.Column != 0 {
		return fmt.Sprintf("%s: %s (line %d, column %d)", d.Category, d.Message, d.Line, d.Column)
	}
	return fmt.Sprintf("%s: %s (line %d)", d.Category, d.Message, d.Line)
}

// Report prints err to stderr via errWriter, colorizing the
// category in red when colorize is true, and returns the process exit
// code spec.md §6 assigns to any failing run.
func Report(err error, colorize bool) int {
	d, ok := FromError(err)
	if !ok {
		if colorize {
			color.New(color.FgRed).Fprintf(errWriter, "IOError: %v\n", err)
		} else {
			fmt.Fprintf(errWriter, "IOError: %v\n", err)
		}
		return 1
	}
	if colorize {
		color.New(color.FgRed).Fprintln(errWriter, d.String())
	} else {
		fmt.Fprintln(errWriter, d.String())
	}
	return 1
}
