/*
File   : cfront/internal/printer/printer.go
Package printer renders an annotated AST to the stable dump format of
spec.md §6.
*/

// Package printer walks a *ast.Program after all four passes have
// annotated it and writes the indented, one-node-per-line dump defined
// in spec.md §6: `NodeKind(attrs) [line: N]`, two spaces per depth
// level. The walk itself is grounded on the teacher's PrintingVisitor
// (_examples/akashmaji946-go-mix/print_visitor.go) — an indenting
// buffer-writer visitor — adapted from its visitor-interface dispatch
// to a type switch over the ast package's tagged-sum node set.
package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/cfront-lang/cfront/internal/ast"
)

const indentWidth = 2

// Printer holds the running indent depth and output sink.
type Printer struct {
	w     io.Writer
	depth int
}

// New wraps w for a single Print(program) call.
func New(w io.Writer) *Printer { return &Printer{w: w} }

// Fprint dumps program to w in one call.
func Fprint(w io.Writer, program *ast.Program) {
	New(w).Print(program)
}

func (p *Printer) line(format string, args ...any) {
	fmt.Fprintf(p.w, "%s%s\n", strings.Repeat(" ", p.depth*indentWidth), fmt.Sprintf(format, args...))
}

func (p *Printer) indented(body func()) {
	p.depth++
	body()
	p.depth--
}

// Print dumps program's globals followed by its functions, in source
// order, matching the Program's own field ordering.
func (p *Printer) Print(program *ast.Program) {
	p.line("Program")
	p.indented(func() {
		for _, g := range program.Globals {
			p.printStmt(g)
		}
		for _, f := range program.Functions {
			p.printFunction(f)
		}
	})
}

func (p *Printer) printFunction(f *ast.FunctionDecl) {
	p.line("FunctionDecl(%s, returns: %s) [line: %d]", f.Name, f.ResolvedReturn, f.SourceLine())
	p.indented(func() {
		for _, param := range f.Params {
			p.line("Param(%s, type: %s) [line: %d]", param.Name, param.Type, param.Line)
		}
		p.printStmt(f.Body)
	})
}

func (p *Printer) printStmt(node ast.Stmt) {
	switch n := node.(type) {
	case nil:
		return
	case *ast.Block:
		p.line("Block [line: %d]", n.SourceLine())
		p.indented(func() {
			for _, s := range n.Statements {
				p.printStmt(s)
			}
		})
	case *ast.VarDecl:
		if n.Initializer != nil {
			p.line("VarDecl(%s, type: %s) [line: %d]", n.Name, n.ResolvedType, n.SourceLine())
			p.indented(func() { p.printExpr(n.Initializer) })
		} else {
			p.line("VarDecl(%s, type: %s) [line: %d]", n.Name, n.ResolvedType, n.SourceLine())
		}
	case *ast.ExpressionStmt:
		p.line("ExpressionStmt [line: %d]", n.SourceLine())
		p.indented(func() { p.printExpr(n.Expression) })
	case *ast.If:
		p.line("If [line: %d]", n.SourceLine())
		p.indented(func() {
			p.printExpr(n.Cond)
			p.printStmt(n.Then)
			if n.Else != nil {
				p.printStmt(n.Else)
			}
		})
	case *ast.While:
		p.line("While [line: %d]", n.SourceLine())
		p.indented(func() {
			p.printExpr(n.Cond)
			p.printStmt(n.Body)
		})
	case *ast.For:
		p.line("For [line: %d]", n.SourceLine())
		p.indented(func() {
			if n.Init != nil {
				p.printStmt(n.Init)
			}
			if n.Cond != nil {
				p.printExpr(n.Cond)
			}
			if n.Step != nil {
				p.printExpr(n.Step)
			}
			p.printStmt(n.Body)
		})
	case *ast.Return:
		p.line("Return [line: %d]", n.SourceLine())
		if n.Value != nil {
			p.indented(func() { p.printExpr(n.Value) })
		}
	case *ast.Break:
		p.line("Break [line: %d]", n.SourceLine())
	case *ast.Continue:
		p.line("Continue [line: %d]", n.SourceLine())
	}
}

func (p *Printer) printExpr(node ast.Expr) {
	switch n := node.(type) {
	case nil:
		return
	case *ast.NumberLiteral:
		p.line("NumberLiteral(%s, type: %s) [line: %d]", n.Lexeme, n.InferredType, n.SourceLine())
	case *ast.StringLiteral:
		p.line("StringLiteral(%q, type: %s) [line: %d]", n.Value, n.InferredType, n.SourceLine())
	case *ast.CharLiteral:
		p.line("CharLiteral(%s, type: %s) [line: %d]", n.Value, n.InferredType, n.SourceLine())
	case *ast.BoolLiteral:
		p.line("BoolLiteral(%t, type: %s) [line: %d]", n.Value, n.InferredType, n.SourceLine())
	case *ast.Identifier:
		p.line("Identifier(%s, type: %s) [line: %d]", n.Name, n.InferredType, n.SourceLine())
	case *ast.BinaryOp:
		p.line("BinaryOp(%s, type: %s) [line: %d]", n.Op, n.InferredType, n.SourceLine())
		p.indented(func() {
			p.printExpr(n.Left)
			p.printExpr(n.Right)
		})
	case *ast.UnaryOp:
		p.line("UnaryOp(%s, type: %s) [line: %d]", n.Op, n.InferredType, n.SourceLine())
		p.indented(func() { p.printExpr(n.Operand) })
	case *ast.Assignment:
		p.line("Assignment(%s, type: %s) [line: %d]", n.Target.Name, n.InferredType, n.SourceLine())
		p.indented(func() { p.printExpr(n.Value) })
	case *ast.FunctionCall:
		p.line("FunctionCall(%s, type: %s) [line: %d]", n.Callee, n.InferredType, n.SourceLine())
		p.indented(func() {
			for _, arg := range n.Args {
				p.printExpr(arg)
			}
		})
	}
}
