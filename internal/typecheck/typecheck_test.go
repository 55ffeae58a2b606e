package typecheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cfront-lang/cfront/internal/ast"
	"github.com/cfront-lang/cfront/internal/lexer"
	"github.com/cfront-lang/cfront/internal/parser"
	"github.com/cfront-lang/cfront/internal/scope"
	"github.com/cfront-lang/cfront/internal/types"
)

func checkSource(t *testing.T, src string) (*ast.Program, error) {
	t.Helper()
	tokens, err := lexer.Lex(src)
	require.NoError(t, err)
	prog, err := parser.Parse(tokens)
	require.NoError(t, err)
	global, err := scope.Analyze(prog)
	require.NoError(t, err)
	return prog, Check(prog, global)
}

func TestCheckBinaryOpInfersIntForIntegerAddition(t *testing.T) {
	prog, err := checkSource(t, `int x = 1 + 2;`)
	require.NoError(t, err)
	bin := prog.Globals[0].Initializer.(*ast.BinaryOp)
	assert.Equal(t, types.Int, bin.InferredType)
}

func TestCheckMutualRecursionInfersIntOnBothCallSites(t *testing.T) {
	prog, err := checkSource(t, `
		int ping(int n) { return pong(n); }
		int pong(int n) { return ping(n); }
	`)
	require.NoError(t, err)
	pingReturn := prog.Functions[0].Body.Statements[0].(*ast.Return)
	pongCall := pingReturn.Value.(*ast.FunctionCall)
	assert.Equal(t, types.Int, pongCall.InferredType)

	pongReturn := prog.Functions[1].Body.Statements[0].(*ast.Return)
	pingCall := pongReturn.Value.(*ast.FunctionCall)
	assert.Equal(t, types.Int, pingCall.InferredType)
}

func TestCheckNonBooleanIfConditionReportsNonBooleanCondStmt(t *testing.T) {
	_, err := checkSource(t, `int f() { if (1) { } return 1; }`)
	var typeErr *Error
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, NonBooleanCondStmt, typeErr.Kind)
}

func TestCheckVarDeclWithMismatchedInitializerReportsErroneousVarDecl(t *testing.T) {
	_, err := checkSource(t, `
		bool ok() { return true; }
		int f() { int x = ok(); return x; }
	`)
	var typeErr *Error
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, ErroneousVarDecl, typeErr.Kind)
}

func TestCheckCallWithWrongArgumentTypeReportsFnCallParamType(t *testing.T) {
	_, err := checkSource(t, `
		int takesInt(int n) { return n; }
		bool f() { bool b = true; int x = takesInt(b); return b; }
	`)
	var typeErr *Error
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, FnCallParamType, typeErr.Kind)
}

func TestCheckTopLevelBreakOutsideLoopReportsErroneousBreak(t *testing.T) {
	_, err := checkSource(t, `int f() { break; return 1; }`)
	var typeErr *Error
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, ErroneousBreak, typeErr.Kind)
}

func TestCheckContinueOutsideLoopReportsErroneousContinue(t *testing.T) {
	_, err := checkSource(t, `int f() { continue; return 1; }`)
	var typeErr *Error
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, ErroneousContinue, typeErr.Kind)
}

func TestCheckBreakInsideLoopIsAllowed(t *testing.T) {
	_, err := checkSource(t, `int f() { while (true) { break; } return 1; }`)
	assert.NoError(t, err)
}

func TestCheckArithmeticWideningIsCommutative(t *testing.T) {
	progA, err := checkSource(t, `double x = 1 + 2.0;`)
	require.NoError(t, err)
	progB, err := checkSource(t, `double x = 2.0 + 1;`)
	require.NoError(t, err)
	assert.Equal(t, types.Double, progA.Globals[0].Initializer.(*ast.BinaryOp).InferredType)
	assert.Equal(t, types.Double, progB.Globals[0].Initializer.(*ast.BinaryOp).InferredType)
}

func TestCheckFunctionCallParamCountMismatch(t *testing.T) {
	_, err := checkSource(t, `
		int add(int a, int b) { return a + b; }
		int f() { return add(1); }
	`)
	var typeErr *Error
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, FnCallParamCount, typeErr.Kind)
}

func TestCheckFunctionReturnTypePropagatesToCallSites(t *testing.T) {
	// A call site's type is the callee symbol's TypeName, which the
	// checker overwrites with the callee's ResolvedReturn (its declared
	// return type) once the callee's body finishes checking.
	prog, err := checkSource(t, `
		int constant() { return 1; }
		int f() { return constant(); }
	`)
	require.NoError(t, err)
	fn := prog.Functions[0]
	assert.Equal(t, types.Int, fn.ResolvedReturn)
	call := prog.Functions[1].Body.Statements[0].(*ast.Return).Value.(*ast.FunctionCall)
	assert.Equal(t, types.Int, call.InferredType)
}

func TestCheckLogicalOperatorsRequireBooleanOperands(t *testing.T) {
	_, err := checkSource(t, `bool r = 1 & 2;`)
	var typeErr *Error
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, ExpressionTypeMismatch, typeErr.Kind)
}

func TestCheckLogicalOperatorsOnBooleansProduceBool(t *testing.T) {
	prog, err := checkSource(t, `bool r = true | false;`)
	require.NoError(t, err)
	bin := prog.Globals[0].Initializer.(*ast.BinaryOp)
	assert.Equal(t, types.Bool, bin.InferredType)
}

func TestCheckModuloRequiresIntegerOperands(t *testing.T) {
	_, err := checkSource(t, `double x = 1.5 % 2.0;`)
	var typeErr *Error
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, AttemptedOpOnNonInt, typeErr.Kind)
}

func TestCheckInvalidAssignmentReportsInvalidAssignment(t *testing.T) {
	_, err := checkSource(t, `int f() { bool b = true; b = 1; return 1; }`)
	var typeErr *Error
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, InvalidAssignment, typeErr.Kind)
}
