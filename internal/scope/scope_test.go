package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cfront-lang/cfront/internal/lexer"
	"github.com/cfront-lang/cfront/internal/parser"
)

func analyzeSource(t *testing.T, src string) (*Scope, error) {
	t.Helper()
	tokens, err := lexer.Lex(src)
	require.NoError(t, err)
	prog, err := parser.Parse(tokens)
	require.NoError(t, err)
	return Analyze(prog)
}

func TestAnalyzeValidProgram(t *testing.T) {
	global, err := analyzeSource(t, `int x = 1; int f() { return x; }`)
	require.NoError(t, err)
	require.NotNil(t, global)
	sym, ok := global.Symbols["x"]
	require.True(t, ok)
	assert.Equal(t, Variable, sym.Kind)
	_, ok = global.Symbols["f"]
	assert.True(t, ok)
}

func TestAnalyzeUndeclaredVariableAccessed(t *testing.T) {
	_, err := analyzeSource(t, `int f() { return y; }`)
	var scopeErr *Error
	require.ErrorAs(t, err, &scopeErr)
	assert.Equal(t, UndeclaredVariableAccessed, scopeErr.Kind)
}

func TestAnalyzeUndefinedFunctionCalled(t *testing.T) {
	_, err := analyzeSource(t, `int f() { return g(); }`)
	var scopeErr *Error
	require.ErrorAs(t, err, &scopeErr)
	assert.Equal(t, UndefinedFunctionCalled, scopeErr.Kind)
}

func TestAnalyzeVariableRedefinitionInSameScope(t *testing.T) {
	_, err := analyzeSource(t, `int f() { int x = 1; int x = 2; }`)
	var scopeErr *Error
	require.ErrorAs(t, err, &scopeErr)
	assert.Equal(t, VariableRedefinition, scopeErr.Kind)
}

func TestAnalyzeFunctionRedefinition(t *testing.T) {
	_, err := analyzeSource(t, `int f() { return 1; } int f() { return 2; }`)
	var scopeErr *Error
	require.ErrorAs(t, err, &scopeErr)
	assert.Equal(t, FunctionRedefinition, scopeErr.Kind)
}

func TestAnalyzeShadowingInNestedBlockIsAllowed(t *testing.T) {
	_, err := analyzeSource(t, `int f() { int x = 1; { int x = 2; } }`)
	assert.NoError(t, err)
}

func TestAnalyzeMutualRecursionAllowed(t *testing.T) {
	_, err := analyzeSource(t, `
		bool isEven(int n) { return isOdd(n); }
		bool isOdd(int n) { return isEven(n); }
	`)
	assert.NoError(t, err)
}

func TestAnalyzeForLoopVariableScopedToLoop(t *testing.T) {
	global, err := analyzeSource(t, `int f() { for (int i = 0; i < 1; i = i + 1) { } return 1; }`)
	require.NoError(t, err)
	_, ok := global.Symbols["i"]
	assert.False(t, ok, "loop variable must not leak into an outer scope")
}

func TestAnalyzeIfDoesNotOpenItsOwnScope(t *testing.T) {
	// spec.md §4.3: if/while do not open a scope. The If's Then block
	// opens its own scope, which must hang directly under the function
	// body's scope (global -> f -> body -> Then), with x bound there.
	global, err := analyzeSource(t, `int f() { if (true) { int x = 1; } return 1; }`)
	require.NoError(t, err)
	s := global
	for depth := 0; depth < 3; depth++ {
		require.Len(t, s.Children, 1)
		for _, child := range s.Children {
			s = child
		}
	}
	_, ok := s.Symbols["x"]
	assert.True(t, ok, "x must be bound in the Then block's scope, directly under the body's scope")
}
