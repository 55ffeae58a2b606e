/*
File   : cfront/internal/ast/ast.go
Package ast defines the tree the parser builds and passes 3-4 annotate.
*/

// Package ast defines the node variants of spec.md §3: expressions,
// statements, top-level declarations, and the Program root. Every node
// carries its source line; Expr nodes additionally carry InferredType,
// set by internal/typecheck; declarations carry ResolvedType.
//
// The tree is strictly parent-owned: a node never holds a pointer back
// to its parent. Name resolution happens by walking the separate scope
// tree (internal/scope), not by climbing the AST.
package ast

// Node is implemented by every AST node.
type Node interface {
	SourceLine() int
}

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Base carries the one field every node has: its source line. It is
// exported so constructors in other packages (the parser) can set it
// directly in a composite literal.
type Base struct{ Line int }

func (b Base) SourceLine() int { return b.Line }

// --- Expressions ---------------------------------------------------------

// NumberLiteral is an integer or floating literal; Lexeme is the raw
// source text (e.g. "42" or "3.14") so the type checker can decide
// int-vs-double by checking for a '.'.
type NumberLiteral struct {
	Base
	Lexeme       string
	InferredType string
}

func (*NumberLiteral) exprNode() {}

// StringLiteral holds the literal's inner bytes (escapes preserved
// literally, per spec.md §4.1 step 6).
type StringLiteral struct {
	Base
	Value        string
	InferredType string
}

func (*StringLiteral) exprNode() {}

// CharLiteral holds the literal's inner bytes (spec.md §9's resolved
// open question: the inner-bytes variant, not the quoted one).
type CharLiteral struct {
	Base
	Value        string
	InferredType string
}

func (*CharLiteral) exprNode() {}

// BoolLiteral is the "true"/"false" keyword literal.
type BoolLiteral struct {
	Base
	Value        bool
	InferredType string
}

func (*BoolLiteral) exprNode() {}

// Identifier references a declared variable, or names the left side of
// an Assignment before it is wrapped.
type Identifier struct {
	Base
	Name         string
	InferredType string
}

func (*Identifier) exprNode() {}

// BinaryOp is a two-operand expression; Op is the operator lexeme
// (spec.md §9: logical and bitwise roles are told apart by this string,
// not by distinct node kinds — "&" and "|" serve double duty at the
// logical-and/logical-or precedence level).
type BinaryOp struct {
	Base
	Left, Right  Expr
	Op           string
	InferredType string
}

func (*BinaryOp) exprNode() {}

// UnaryOp is a prefix operator (!, -, ++, --) applied to Operand.
type UnaryOp struct {
	Base
	Op           string
	Operand      Expr
	InferredType string
}

func (*UnaryOp) exprNode() {}

// Assignment is `target = Value`; Target must resolve to an Identifier
// at parse time (spec.md §4.2 — any other LHS is InvalidAssignmentTarget).
type Assignment struct {
	Base
	Target       *Identifier
	Value        Expr
	InferredType string
}

func (*Assignment) exprNode() {}

// FunctionCall invokes Callee with Args, in source order.
type FunctionCall struct {
	Base
	Callee       string
	Args         []Expr
	InferredType string
}

func (*FunctionCall) exprNode() {}

// --- Statements -----------------------------------------------------------

// Block is `{ stmts }`; it opens a lexical scope (spec.md invariant 5).
type Block struct {
	Base
	Statements []Stmt
}

func (*Block) stmtNode() {}

// ExpressionStmt is a bare expression followed by ';'.
type ExpressionStmt struct {
	Base
	Expression Expr
}

func (*ExpressionStmt) stmtNode() {}

// VarDecl is `type name [= initializer];`. Used both as a local statement
// and, at Program scope, as a global.
type VarDecl struct {
	Base
	Type         string
	Name         string
	Initializer  Expr // nil when absent
	ResolvedType string
}

func (*VarDecl) stmtNode() {}

// If is `if (cond) Then [else Else]`. Does not open a scope itself
// (spec.md §4.3) — only Block/For/FunctionDecl do.
type If struct {
	Base
	Cond Expr
	Then Stmt
	Else Stmt // nil when absent
}

func (*If) stmtNode() {}

// While is `while (cond) Body`.
type While struct {
	Base
	Cond Expr
	Body Stmt
}

func (*While) stmtNode() {}

// For is `for (init; cond; step) Body`; it opens the one scope that
// encloses all four clauses (spec.md §4.3).
type For struct {
	Base
	Init Stmt // nil when absent; VarDecl or ExpressionStmt
	Cond Expr // nil when absent
	Step Expr // nil when absent
	Body Stmt
}

func (*For) stmtNode() {}

// Return is `return [value];`.
type Return struct {
	Base
	Value Expr // nil for a bare `return;`
}

func (*Return) stmtNode() {}

// Break is `break;`; legal only inside a While/For body.
type Break struct{ Base }

func (*Break) stmtNode() {}

// Continue is `continue;`; legal only inside a While/For body.
type Continue struct{ Base }

func (*Continue) stmtNode() {}

// --- Top level -------------------------------------------------------------

// Param is one `type name` entry in a function's parameter list.
type Param struct {
	Type string
	Name string
	Line int
}

// FunctionDecl is `returnType name(params) body`; it opens the scope its
// parameters are declared into (spec.md §4.3), then Body opens a nested
// scope of its own.
type FunctionDecl struct {
	Base
	ReturnType     string
	Name           string
	Params         []Param
	Body           *Block
	ResolvedReturn string
}

func (*FunctionDecl) stmtNode() {}

// Program is the parser's output: ordered globals, ordered functions.
type Program struct {
	Globals   []*VarDecl
	Functions []*FunctionDecl
}
