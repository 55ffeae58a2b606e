/*
File   : cfront/internal/scope/scope.go
Package scope implements pass 3: AST -> a lexical symbol-table tree.
*/

// Package scope walks a parsed Program once, building the scope tree
// rooted at the global scope and checking every name reference against
// it. It is grounded on the original compiler's scope_analyzer.h
// (_examples/original_source/scope_analyzer.h), translated from that
// file's pointer-keyed child-scope map to a Go map keyed by ast.Node
// identity, so internal/typecheck can re-enter the same scopes without
// a second walk.
package scope

import (
	"fmt"

	"github.com/cfront-lang/cfront/internal/ast"
)

// ErrorKind is the closed scope-analysis error taxonomy of spec.md §4.3.
type ErrorKind int

const (
	UndeclaredVariableAccessed ErrorKind = iota
	UndefinedFunctionCalled
	VariableRedefinition
	FunctionRedefinition
)

func (k ErrorKind) String() string {
	switch k {
	case UndeclaredVariableAccessed:
		return "UndeclaredVariableAccessed"
	case UndefinedFunctionCalled:
		return "UndefinedFunctionCalled"
	case VariableRedefinition:
		return "VariableRedefinition"
	case FunctionRedefinition:
		return "FunctionRedefinition"
	default:
		return "UnknownScopeError"
	}
}

// Error is the single failure a scope-analysis run stops on.
type Error struct {
	Kind    ErrorKind
	Message string
	Line    int
}

func (e *Error) Error() string { return e.Message }

// Kind tells apart a variable binding from a function binding; a
// function-call lookup only matches the latter.
type Kind int

const (
	Variable Kind = iota
	Function
)

// Symbol is one name bound in a Scope. TypeName is mutated in place by
// internal/typecheck once the type of its declaration is resolved, so
// every later reference to the same Symbol sees the resolved type.
type Symbol struct {
	Name           string
	TypeName       string
	Kind           Kind
	DefinitionLine int
	Params         []ast.Param
}

// Scope is one lexical level. Children is keyed by the identity of the
// AST node that opened it (FunctionDecl, Block, or For), letting
// internal/typecheck re-enter exactly the scopes this pass built.
type Scope struct {
	Symbols  map[string]*Symbol
	Parent   *Scope
	Children map[ast.Node]*Scope
}

func newScope(parent *Scope) *Scope {
	return &Scope{
		Symbols:  make(map[string]*Symbol),
		Parent:   parent,
		Children: make(map[ast.Node]*Scope),
	}
}

// Analyzer holds the walk's mutable cursor: the scope currently open.
type Analyzer struct {
	global  *Scope
	current *Scope
}

// New creates an Analyzer with an empty global scope.
func New() *Analyzer {
	g := newScope(nil)
	return &Analyzer{global: g, current: g}
}

// Analyze runs the full scope-analysis pass and returns the global scope
// on success, or the first Error encountered.
func Analyze(program *ast.Program) (*Scope, error) {
	a := New()
	if err := a.visitProgram(program); err != nil {
		return nil, err
	}
	return a.global, nil
}

func (a *Analyzer) enterScope(key ast.Node) {
	child := newScope(a.current)
	a.current.Children[key] = child
	a.current = child
}

func (a *Analyzer) exitScope() {
	a.current = a.current.Parent
}

func (a *Analyzer) addSymbol(sym *Symbol) error {
	if existing, ok := a.current.Symbols[sym.Name]; ok {
		kindWord := "Variable"
		errKind := VariableRedefinition
		if sym.Kind == Function {
			kindWord = "Function"
			errKind = FunctionRedefinition
		}
		return &Error{
			Kind: errKind,
			Message: fmt.Sprintf("%s '%s' redefined on line %d. Previously defined on line %d.",
				kindWord, sym.Name, sym.DefinitionLine, existing.DefinitionLine),
			Line: sym.DefinitionLine,
		}
	}
	a.current.Symbols[sym.Name] = sym
	return nil
}

// findSymbol searches outward from the current scope. When isCall is
// true a match whose Kind is not Function is skipped (a variable binding
// does not satisfy a call), and the search continues into the parent.
func (a *Analyzer) findSymbol(name string, isCall bool) *Symbol {
	for s := a.current; s != nil; s = s.Parent {
		if sym, ok := s.Symbols[name]; ok {
			if isCall && sym.Kind != Function {
				continue
			}
			return sym
		}
	}
	return nil
}

func (a *Analyzer) visitProgram(node *ast.Program) error {
	for _, f := range node.Functions {
		if err := a.addSymbol(&Symbol{
			Name: f.Name, TypeName: f.ReturnType, Kind: Function,
			DefinitionLine: f.SourceLine(), Params: f.Params,
		}); err != nil {
			return err
		}
	}
	for _, g := range node.Globals {
		if err := a.visitVarDecl(g); err != nil {
			return err
		}
	}
	for _, f := range node.Functions {
		if err := a.visitFunctionDecl(f); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) visitFunctionDecl(node *ast.FunctionDecl) error {
	a.enterScope(node)
	defer a.exitScope()
	for _, param := range node.Params {
		if err := a.addSymbol(&Symbol{
			Name: param.Name, TypeName: param.Type, Kind: Variable,
			DefinitionLine: param.Line,
		}); err != nil {
			return err
		}
	}
	return a.visitBlock(node.Body)
}

func (a *Analyzer) visitBlock(node *ast.Block) error {
	a.enterScope(node)
	defer a.exitScope()
	for _, s := range node.Statements {
		if err := a.visitStmt(s); err != nil {
			return err
		}
	}
	return nil
}

// visitStmt dispatches on concrete statement type, matching the
// original's dynamic_cast chain with a Go type switch.
func (a *Analyzer) visitStmt(node ast.Stmt) error {
	switch n := node.(type) {
	case nil:
		return nil
	case *ast.Block:
		return a.visitBlock(n)
	case *ast.VarDecl:
		return a.visitVarDecl(n)
	case *ast.ExpressionStmt:
		return a.visitExpr(n.Expression)
	case *ast.If:
		return a.visitIf(n)
	case *ast.While:
		return a.visitWhile(n)
	case *ast.For:
		return a.visitFor(n)
	case *ast.Return:
		if n.Value != nil {
			return a.visitExpr(n.Value)
		}
		return nil
	case *ast.Break, *ast.Continue:
		return nil
	default:
		return nil
	}
}

func (a *Analyzer) visitVarDecl(node *ast.VarDecl) error {
	if node.Initializer != nil {
		if err := a.visitExpr(node.Initializer); err != nil {
			return err
		}
	}
	return a.addSymbol(&Symbol{
		Name: node.Name, TypeName: node.Type, Kind: Variable,
		DefinitionLine: node.SourceLine(),
	})
}

// visitIf and visitWhile do not open a scope: spec.md §4.3 has them
// delegate straight to their child statements.
func (a *Analyzer) visitIf(node *ast.If) error {
	if err := a.visitExpr(node.Cond); err != nil {
		return err
	}
	if err := a.visitStmt(node.Then); err != nil {
		return err
	}
	if node.Else != nil {
		return a.visitStmt(node.Else)
	}
	return nil
}

func (a *Analyzer) visitWhile(node *ast.While) error {
	if err := a.visitExpr(node.Cond); err != nil {
		return err
	}
	return a.visitStmt(node.Body)
}

// visitFor opens the one scope that encloses all four clauses; Body, if
// a Block, opens a further nested scope of its own via visitStmt.
func (a *Analyzer) visitFor(node *ast.For) error {
	a.enterScope(node)
	defer a.exitScope()
	if node.Init != nil {
		if err := a.visitStmt(node.Init); err != nil {
			return err
		}
	}
	if node.Cond != nil {
		if err := a.visitExpr(node.Cond); err != nil {
			return err
		}
	}
	if node.Step != nil {
		if err := a.visitExpr(node.Step); err != nil {
			return err
		}
	}
	return a.visitStmt(node.Body)
}

func (a *Analyzer) visitExpr(node ast.Expr) error {
	switch n := node.(type) {
	case nil:
		return nil
	case *ast.BinaryOp:
		if err := a.visitExpr(n.Left); err != nil {
			return err
		}
		return a.visitExpr(n.Right)
	case *ast.UnaryOp:
		return a.visitExpr(n.Operand)
	case *ast.Assignment:
		if err := a.visitExpr(n.Target); err != nil {
			return err
		}
		return a.visitExpr(n.Value)
	case *ast.Identifier:
		if sym := a.findSymbol(n.Name, false); sym == nil {
			return &Error{
				Kind:    UndeclaredVariableAccessed,
				Message: fmt.Sprintf("Undeclared variable '%s' used on line %d.", n.Name, n.SourceLine()),
				Line:    n.SourceLine(),
			}
		}
		return nil
	case *ast.FunctionCall:
		if sym := a.findSymbol(n.Callee, true); sym == nil {
			return &Error{
				Kind:    UndefinedFunctionCalled,
				Message: fmt.Sprintf("Call to undefined function '%s' on line %d.", n.Callee, n.SourceLine()),
				Line:    n.SourceLine(),
			}
		}
		for _, arg := range n.Args {
			if err := a.visitExpr(arg); err != nil {
				return err
			}
		}
		return nil
	default:
		// Literals carry no names to resolve.
		return nil
	}
}
