/*
File   : cfront/internal/parser/parser.go
Package parser implements pass 2: tokens -> *ast.Program.
*/

// Package parser is a hand-written recursive-descent parser with one
// token of lookahead, grounded on the original compiler's parser.h
// (see _examples/original_source/parser.h for the traced precedence
// climb) but returning Go errors instead of throwing/panicking.
//
// Grammar and precedence are exactly spec.md §4.2; the error taxonomy is
// its closed ErrorKind set below.
package parser

import (
	"fmt"

	"github.com/cfront-lang/cfront/internal/ast"
	"github.com/cfront-lang/cfront/internal/token"
)

// ErrorKind is the closed parser error taxonomy of spec.md §4.2.
type ErrorKind int

const (
	UnexpectedEOF ErrorKind = iota
	ExpectedTypeSpecifier
	ExpectedIdentifier
	UnexpectedToken
	ExpectedExpression
	ExpectedSemicolonAfterStatement
	ExpectedLeftParenAfterKeyword
	ExpectedRightParenAfterCondition
	InvalidAssignmentTarget
	ExpectedLeftBraceForBody
	FailedToFindToken
)

var errorKindNames = [...]string{
	"UnexpectedEOF", "ExpectedTypeSpecifier", "ExpectedIdentifier",
	"UnexpectedToken", "ExpectedExpression", "ExpectedSemicolonAfterStatement",
	"ExpectedLeftParenAfterKeyword", "ExpectedRightParenAfterCondition",
	"InvalidAssignmentTarget", "ExpectedLeftBraceForBody", "FailedToFindToken",
}

func (k ErrorKind) String() string {
	if int(k) >= 0 && int(k) < len(errorKindNames) {
		return errorKindNames[k]
	}
	return "UnknownParseError"
}

// Error is the single failure a Parse run stops on; every error carries
// the offending token's line (spec.md §4.2).
type Error struct {
	Kind    ErrorKind
	Message string
	Line    int
}

func (e *Error) Error() string { return e.Message }

// typeSpecifiers is the subset of reserved words the parser accepts as a
// type (spec.md §4.2, §6). The bare identifier "string" and configured
// type aliases are accepted separately, in isTypeSpecifier.
var typeSpecifiers = map[token.Kind]bool{
	token.KwVoid: true, token.KwChar: true, token.KwInt: true,
	token.KwFloat: true, token.KwDouble: true, token.KwBool: true,
	token.KwAuto: true,
}

// Parser walks a fixed token slice produced by internal/lexer.
type Parser struct {
	tokens []token.Token
	pos    int
	// TypeAliases maps a project-configured identifier onto one of the
	// seven built-in type names (internal/config's type_aliases), so it
	// is accepted in type position and resolved to its target before
	// reaching the AST. Nil means no aliases are configured.
	TypeAliases map[string]string
}

// New wraps a token slice (which must end in an EOF token) for parsing.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// NewWithAliases is New plus a configured type-alias map (internal/config's
// type_aliases section).
func NewWithAliases(tokens []token.Token, aliases map[string]string) *Parser {
	return &Parser{tokens: tokens, TypeAliases: aliases}
}

// resolveType maps an alias identifier to its configured built-in
// target; any other lexeme passes through unchanged.
func (p *Parser) resolveType(lexeme string) string {
	if target, ok := p.TypeAliases[lexeme]; ok {
		return target
	}
	return lexeme
}

// Parse runs New(tokens).ParseProgram in one call.
func Parse(tokens []token.Token) (*ast.Program, error) {
	return New(tokens).ParseProgram()
}

func (p *Parser) peek() token.Token { return p.tokens[p.pos] }

func (p *Parser) previous() token.Token {
	if p.pos == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.pos-1]
}

func (p *Parser) atEnd() bool { return p.peek().Kind == token.EOF }

func (p *Parser) advance() token.Token {
	if !p.atEnd() {
		p.pos++
	}
	return p.previous()
}

func (p *Parser) check(k token.Kind) bool {
	return !p.atEnd() && p.peek().Kind == k
}

func (p *Parser) match(k token.Kind) bool {
	if p.check(k) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) consume(k token.Kind, kind ErrorKind, message string) (token.Token, error) {
	if p.check(k) {
		return p.advance(), nil
	}
	if p.atEnd() {
		return token.Token{}, &Error{Kind: UnexpectedEOF, Message: message + " (unexpected end of file)", Line: p.peek().Line}
	}
	return token.Token{}, &Error{Kind: kind, Message: fmt.Sprintf("%s at line %d", message, p.peek().Line), Line: p.peek().Line}
}

// isTypeSpecifier reports whether the current token may open a type in
// type position: one of the accepted keywords, the identifier
// "string" (spec.md's documented first-class-but-unconverted string
// type, §9 open questions), or an identifier listed in TypeAliases.
func (p *Parser) isTypeSpecifier() bool {
	if p.atEnd() {
		return false
	}
	t := p.peek()
	if t.Kind == token.Identifier {
		if t.Lexeme == "string" {
			return true
		}
		_, aliased := p.TypeAliases[t.Lexeme]
		return aliased
	}
	return typeSpecifiers[t.Kind]
}

// ParseProgram parses the whole token stream into a Program: a sequence
// of top-level function and global-variable declarations (spec.md
// grammar's `program := { top-decl }`).
func (p *Parser) ParseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	for !p.atEnd() {
		line := p.peek().Line
		if !p.isTypeSpecifier() {
			return nil, &Error{Kind: ExpectedTypeSpecifier, Message: fmt.Sprintf("expected a type specifier for top-level declaration at line %d", line), Line: line}
		}
		typ := p.resolveType(p.advance().Lexeme)
		nameTok, err := p.consume(token.Identifier, ExpectedIdentifier, "expected identifier for declaration")
		if err != nil {
			return nil, err
		}
		name := nameTok.Lexeme

		switch {
		case p.check(token.LParen):
			fn, err := p.finishFunction(typ, name, line)
			if err != nil {
				return nil, err
			}
			prog.Functions = append(prog.Functions, fn)
		case p.check(token.Assign) || p.check(token.Semicolon):
			decl, err := p.finishVarDecl(typ, name, line)
			if err != nil {
				return nil, err
			}
			prog.Globals = append(prog.Globals, decl)
		default:
			if _, err := p.consume(token.LParen, FailedToFindToken, "expected '(' for function declaration or '=' or ';' for variable declaration"); err != nil {
				return nil, err
			}
		}
	}
	return prog, nil
}

func (p *Parser) finishFunction(returnType, name string, line int) (*ast.FunctionDecl, error) {
	if _, err := p.consume(token.LParen, FailedToFindToken, "expected '(' after function name"); err != nil {
		return nil, err
	}
	var params []ast.Param
	if !p.check(token.RParen) {
		for {
			if !p.isTypeSpecifier() {
				return nil, &Error{Kind: ExpectedTypeSpecifier, Message: "expected parameter type", Line: p.peek().Line}
			}
			paramType := p.resolveType(p.advance().Lexeme)
			paramName, err := p.consume(token.Identifier, ExpectedIdentifier, "expected parameter name")
			if err != nil {
				return nil, err
			}
			params = append(params, ast.Param{Type: paramType, Name: paramName.Lexeme, Line: paramName.Line})
			if !p.match(token.Comma) {
				break
			}
		}
	}
	if _, err := p.consume(token.RParen, FailedToFindToken, "expected ')' after parameters"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDecl{
		Base:       ast.Base{Line: line},
		ReturnType: returnType, Name: name, Params: params, Body: body,
		ResolvedReturn: returnType,
	}, nil
}

func (p *Parser) finishVarDecl(typ, name string, line int) (*ast.VarDecl, error) {
	var initializer ast.Expr
	if p.match(token.Assign) {
		var err error
		initializer, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.Semicolon, ExpectedSemicolonAfterStatement, "expected ';' after variable declaration"); err != nil {
		return nil, err
	}
	return &ast.VarDecl{Base: ast.Base{Line: line}, Type: typ, Name: name, Initializer: initializer, ResolvedType: typ}, nil
}

// parseStatement dispatches on the leading token, mirroring the original
// compiler's parse_statement (_examples/original_source/parser.h).
func (p *Parser) parseStatement() (ast.Stmt, error) {
	line := p.peek().Line
	switch {
	case p.match(token.KwIf):
		return p.parseIfStatement(line)
	case p.match(token.KwWhile):
		return p.parseWhileStatement(line)
	case p.match(token.KwFor):
		return p.parseForStatement(line)
	case p.match(token.KwReturn):
		return p.parseReturnStatement(line)
	case p.match(token.KwBreak):
		return p.parseBreakStatement(line)
	case p.match(token.KwContinue):
		return p.parseContinueStatement(line)
	case p.check(token.LBrace):
		return p.parseBlock()
	case p.isTypeSpecifier():
		return p.parseVariableDeclarationStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseVariableDeclarationStatement() (ast.Stmt, error) {
	line := p.peek().Line
	typ := p.resolveType(p.advance().Lexeme)
	nameTok, err := p.consume(token.Identifier, ExpectedIdentifier, "expected variable name")
	if err != nil {
		return nil, err
	}
	return p.finishVarDecl(typ, nameTok.Lexeme, line)
}

func (p *Parser) parseExpressionStatement() (ast.Stmt, error) {
	line := p.peek().Line
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Semicolon, ExpectedSemicolonAfterStatement, "expected ';' after expression"); err != nil {
		return nil, err
	}
	return &ast.ExpressionStmt{Base: ast.Base{Line: line}, Expression: expr}, nil
}

// parseBlock parses `{ stmt* }`; it is also the function-body parser, so
// its return type is the concrete *ast.Block the caller needs.
func (p *Parser) parseBlock() (*ast.Block, error) {
	line := p.peek().Line
	if _, err := p.consume(token.LBrace, ExpectedLeftBraceForBody, "expected '{' to start a block"); err != nil {
		return nil, err
	}
	var statements []ast.Stmt
	for !p.check(token.RBrace) && !p.atEnd() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	if _, err := p.consume(token.RBrace, FailedToFindToken, "expected '}' to end a block"); err != nil {
		return nil, err
	}
	return &ast.Block{Base: ast.Base{Line: line}, Statements: statements}, nil
}

func (p *Parser) parseIfStatement(line int) (ast.Stmt, error) {
	if _, err := p.consume(token.LParen, ExpectedLeftParenAfterKeyword, "expected '(' after 'if'"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RParen, ExpectedRightParenAfterCondition, "expected ')' after if condition"); err != nil {
		return nil, err
	}
	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	var elseBranch ast.Stmt
	if p.match(token.KwElse) {
		elseBranch, err = p.parseStatement()
		if err != nil {
			return nil, err
		}
	}
	return &ast.If{Base: ast.Base{Line: line}, Cond: cond, Then: then, Else: elseBranch}, nil
}

func (p *Parser) parseWhileStatement(line int) (ast.Stmt, error) {
	if _, err := p.consume(token.LParen, ExpectedLeftParenAfterKeyword, "expected '(' after 'while'"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RParen, ExpectedRightParenAfterCondition, "expected ')' after while condition"); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.While{Base: ast.Base{Line: line}, Cond: cond, Body: body}, nil
}

func (p *Parser) parseForStatement(line int) (ast.Stmt, error) {
	if _, err := p.consume(token.LParen, ExpectedLeftParenAfterKeyword, "expected '(' after 'for'"); err != nil {
		return nil, err
	}
	var init ast.Stmt
	switch {
	case p.match(token.Semicolon):
		// no initializer
	case p.isTypeSpecifier():
		var err error
		init, err = p.parseVariableDeclarationStatement()
		if err != nil {
			return nil, err
		}
	default:
		var err error
		init, err = p.parseExpressionStatement()
		if err != nil {
			return nil, err
		}
	}

	var cond ast.Expr
	if !p.check(token.Semicolon) {
		var err error
		cond, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.Semicolon, ExpectedSemicolonAfterStatement, "expected ';' after loop condition"); err != nil {
		return nil, err
	}

	var step ast.Expr
	if !p.check(token.RParen) {
		var err error
		step, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.RParen, ExpectedRightParenAfterCondition, "expected ')' after for clauses"); err != nil {
		return nil, err
	}

	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.For{Base: ast.Base{Line: line}, Init: init, Cond: cond, Step: step, Body: body}, nil
}

func (p *Parser) parseReturnStatement(line int) (ast.Stmt, error) {
	var value ast.Expr
	if !p.check(token.Semicolon) {
		var err error
		value, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.Semicolon, ExpectedSemicolonAfterStatement, "expected ';' after return value"); err != nil {
		return nil, err
	}
	return &ast.Return{Base: ast.Base{Line: line}, Value: value}, nil
}

func (p *Parser) parseBreakStatement(line int) (ast.Stmt, error) {
	if _, err := p.consume(token.Semicolon, ExpectedSemicolonAfterStatement, "expected ';' after 'break'"); err != nil {
		return nil, err
	}
	return &ast.Break{Base: ast.Base{Line: line}}, nil
}

func (p *Parser) parseContinueStatement(line int) (ast.Stmt, error) {
	if _, err := p.consume(token.Semicolon, ExpectedSemicolonAfterStatement, "expected ';' after 'continue'"); err != nil {
		return nil, err
	}
	return &ast.Continue{Base: ast.Base{Line: line}}, nil
}

// --- Expressions, low to high precedence -----------------------------------

func (p *Parser) parseExpression() (ast.Expr, error) { return p.parseAssignment() }

// parseAssignment is the one right-associative level: `target = value`.
// The target must already have parsed as an *ast.Identifier.
func (p *Parser) parseAssignment() (ast.Expr, error) {
	expr, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	if p.match(token.Assign) {
		line := p.previous().Line
		value, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		id, ok := expr.(*ast.Identifier)
		if !ok {
			return nil, &Error{Kind: InvalidAssignmentTarget, Message: fmt.Sprintf("invalid assignment target at line %d", line), Line: line}
		}
		return &ast.Assignment{Base: ast.Base{Line: line}, Target: id, Value: value}, nil
	}
	return expr, nil
}

// parseLogicalOr is the `|` level (spec.md §4.2: the single-char token
// serves as logical-or here, not bitwise-or — there is no separate
// bitwise-or precedence level in this grammar).
func (p *Parser) parseLogicalOr() (ast.Expr, error) {
	expr, err := p.parseLogicalAnd()
	if err != nil {
		return nil, err
	}
	for p.match(token.Pipe) {
		line := p.previous().Line
		op := p.previous().Lexeme
		right, err := p.parseLogicalAnd()
		if err != nil {
			return nil, err
		}
		expr = &ast.BinaryOp{Base: ast.Base{Line: line}, Left: expr, Op: op, Right: right}
	}
	return expr, nil
}

// parseLogicalAnd is the `&` level (logical-and; same conflation as above).
func (p *Parser) parseLogicalAnd() (ast.Expr, error) {
	expr, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.match(token.Amp) {
		line := p.previous().Line
		op := p.previous().Lexeme
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		expr = &ast.BinaryOp{Base: ast.Base{Line: line}, Left: expr, Op: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) parseEquality() (ast.Expr, error) {
	expr, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.check(token.Eq) || p.check(token.Ne) {
		line := p.peek().Line
		p.advance()
		op := p.previous().Lexeme
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		expr = &ast.BinaryOp{Base: ast.Base{Line: line}, Left: expr, Op: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) parseComparison() (ast.Expr, error) {
	expr, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.check(token.Lt) || p.check(token.Gt) || p.check(token.Le) || p.check(token.Ge) {
		line := p.peek().Line
		p.advance()
		op := p.previous().Lexeme
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		expr = &ast.BinaryOp{Base: ast.Base{Line: line}, Left: expr, Op: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) parseTerm() (ast.Expr, error) {
	expr, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.check(token.Plus) || p.check(token.Minus) {
		line := p.peek().Line
		p.advance()
		op := p.previous().Lexeme
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		expr = &ast.BinaryOp{Base: ast.Base{Line: line}, Left: expr, Op: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) parseFactor() (ast.Expr, error) {
	expr, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.check(token.Star) || p.check(token.Slash) || p.check(token.Percent) {
		line := p.peek().Line
		p.advance()
		op := p.previous().Lexeme
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		expr = &ast.BinaryOp{Base: ast.Base{Line: line}, Left: expr, Op: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	if p.check(token.Bang) || p.check(token.Minus) || p.check(token.Inc) || p.check(token.Dec) {
		line := p.peek().Line
		p.advance()
		op := p.previous().Lexeme
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Base: ast.Base{Line: line}, Op: op, Operand: operand}, nil
	}
	return p.parseCall()
}

// parseCall recognizes a call only when a parenthesized argument list
// immediately follows a bare identifier (spec.md's call precedence level
// sits directly above primary).
func (p *Parser) parseCall() (ast.Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if id, ok := expr.(*ast.Identifier); ok && p.match(token.LParen) {
		line := id.Line
		var args []ast.Expr
		if !p.check(token.RParen) {
			for {
				arg, err := p.parseExpression()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if !p.match(token.Comma) {
					break
				}
			}
		}
		if _, err := p.consume(token.RParen, FailedToFindToken, "expected ')' after arguments"); err != nil {
			return nil, err
		}
		return &ast.FunctionCall{Base: ast.Base{Line: line}, Callee: id.Name, Args: args}, nil
	}
	return expr, nil
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	line := p.peek().Line
	if p.match(token.IntLit) || p.match(token.FloatLit) {
		return &ast.NumberLiteral{Base: ast.Base{Line: line}, Lexeme: p.previous().Lexeme}, nil
	}
	if p.match(token.CharLit) {
		return &ast.CharLiteral{Base: ast.Base{Line: line}, Value: p.previous().Lexeme}, nil
	}
	if p.match(token.StringLit) {
		return &ast.StringLiteral{Base: ast.Base{Line: line}, Value: p.previous().Lexeme}, nil
	}
	if p.match(token.KwTrue) {
		return &ast.BoolLiteral{Base: ast.Base{Line: line}, Value: true}, nil
	}
	if p.match(token.KwFalse) {
		return &ast.BoolLiteral{Base: ast.Base{Line: line}, Value: false}, nil
	}
	if p.match(token.Identifier) {
		return &ast.Identifier{Base: ast.Base{Line: line}, Name: p.previous().Lexeme}, nil
	}
	if p.match(token.LParen) {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RParen, FailedToFindToken, "expected ')' after expression"); err != nil {
			return nil, err
		}
		return expr, nil
	}
	return nil, &Error{Kind: ExpectedExpression, Message: fmt.Sprintf("expected an expression at line %d", line), Line: line}
}
