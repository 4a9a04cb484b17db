package eval_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/retrobasic/ast"
	"github.com/jcorbin/retrobasic/eval"
	"github.com/jcorbin/retrobasic/parser"
	"github.com/jcorbin/retrobasic/vars"
)

// fakeEnv is a minimal eval.Env backed by a vars.Store, for testing
// expression evaluation in isolation from the interpreter.
type fakeEnv struct {
	store   *vars.Store
	fns     map[string]*ast.DefFn
	randSeq []float64
	randIdx int
	points  map[[2]int]float64
}

func newFakeEnv() *fakeEnv {
	return &fakeEnv{store: vars.NewStore(), fns: map[string]*ast.DefFn{}, points: map[[2]int]float64{}}
}

func (e *fakeEnv) GetScalar(name string) vars.Value { return e.store.Get(name) }

func (e *fakeEnv) GetArrayElement(name string, subs []int) (vars.Value, error) {
	a, ok := e.store.Array(name)
	if !ok {
		return vars.Value{}, fmt.Errorf("array %s not declared", name)
	}
	return a.Get(subs)
}

func (e *fakeEnv) CallUserFunc(name string, arg vars.Value) (vars.Value, error) {
	fn, ok := e.fns[name]
	if !ok {
		return vars.Value{}, fmt.Errorf("undefined function %s", name)
	}
	saved := e.store.Get(fn.Param)
	e.store.Set(fn.Param, arg)
	defer e.store.Set(fn.Param, saved)
	return eval.Evaluate(fn.Expr, e)
}

func (e *fakeEnv) Rand() float64 {
	if e.randIdx < len(e.randSeq) {
		v := e.randSeq[e.randIdx]
		e.randIdx++
		return v
	}
	return 0.5
}

func (e *fakeEnv) Point(x, y int) (float64, error) {
	return e.points[[2]int{x, y}], nil
}

func evalSrc(t *testing.T, env *fakeEnv, src string) vars.Value {
	t.Helper()
	expr, err := parser.ParseExpr(src)
	require.NoError(t, err)
	v, err := eval.Evaluate(expr, env)
	require.NoError(t, err)
	return v
}

func TestEvalArithmetic(t *testing.T) {
	env := newFakeEnv()
	assert.Equal(t, 7.0, evalSrc(t, env, "1 + 2 * 3").Num)
	assert.Equal(t, 9.0, evalSrc(t, env, "(1 + 2) * 3").Num)
	assert.Equal(t, 8.0, evalSrc(t, env, "2 ^ 3").Num)
	assert.Equal(t, -2.0, evalSrc(t, env, "-2").Num)
}

func TestEvalDivisionByZero(t *testing.T) {
	env := newFakeEnv()
	_, err := eval.Evaluate(mustParseExpr(t, "1 / 0"), env)
	require.Error(t, err)
	var evErr *eval.Error
	require.ErrorAs(t, err, &evErr)
	assert.Equal(t, eval.ErrDivisionByZero, evErr.Kind)
}

func TestEvalStringConcatAndCoercion(t *testing.T) {
	env := newFakeEnv()
	assert.Equal(t, "AB", evalSrc(t, env, `"A" + "B"`).Str)
	assert.Equal(t, "A1", evalSrc(t, env, `"A" + 1`).Str)
}

func TestEvalRelationalBoolConvention(t *testing.T) {
	env := newFakeEnv()
	assert.Equal(t, -1.0, evalSrc(t, env, "1 < 2").Num)
	assert.Equal(t, 0.0, evalSrc(t, env, "1 > 2").Num)
}

func TestEvalRelationalTypeMismatch(t *testing.T) {
	env := newFakeEnv()
	_, err := eval.Evaluate(mustParseExpr(t, `1 = "A"`), env)
	require.Error(t, err)
}

func TestEvalNotBitwise(t *testing.T) {
	env := newFakeEnv()
	assert.Equal(t, -1.0, evalSrc(t, env, "NOT 0").Num)
	assert.Equal(t, 0.0, evalSrc(t, env, "NOT -1").Num)
}

func TestEvalIdentReadsScalar(t *testing.T) {
	env := newFakeEnv()
	env.store.Set("X", vars.NumberValue(42))
	assert.Equal(t, 42.0, evalSrc(t, env, "X").Num)
}

func TestEvalArrayAccess(t *testing.T) {
	env := newFakeEnv()
	require.NoError(t, env.store.Dim("A", []int{5}))
	a, _ := env.store.Array("A")
	require.NoError(t, a.Set([]int{3}, vars.NumberValue(99)))
	assert.Equal(t, 99.0, evalSrc(t, env, "A(3)").Num)
}

func TestEvalBuiltinFunctions(t *testing.T) {
	env := newFakeEnv()
	assert.Equal(t, 5.0, evalSrc(t, env, "ABS(-5)").Num)
	assert.Equal(t, 3.0, evalSrc(t, env, "INT(3.7)").Num)
	assert.Equal(t, "5", evalSrc(t, env, "STR$(5)").Str)
	assert.Equal(t, "A", evalSrc(t, env, "CHR$(65)").Str)
	assert.Equal(t, 65.0, evalSrc(t, env, `ASC("A")`).Num)
	assert.Equal(t, 5.0, evalSrc(t, env, `LEN("HELLO")`).Num)
	assert.Equal(t, 42.0, evalSrc(t, env, `VAL("42X")`).Num)
	assert.Equal(t, "HEL", evalSrc(t, env, `LEFT$("HELLO", 3)`).Str)
	assert.Equal(t, "LLO", evalSrc(t, env, `RIGHT$("HELLO", 3)`).Str)
	assert.Equal(t, "ELL", evalSrc(t, env, `MID$("HELLO", 2, 3)`).Str)
	assert.Equal(t, "ELLO", evalSrc(t, env, `MID$("HELLO", 2)`).Str)
}

func TestEvalSqrNegativeErrors(t *testing.T) {
	env := newFakeEnv()
	_, err := eval.Evaluate(mustParseExpr(t, "SQR(-1)"), env)
	require.Error(t, err)
}

func TestEvalUndefinedFunction(t *testing.T) {
	env := newFakeEnv()
	_, err := eval.Evaluate(mustParseExpr(t, "NOSUCH(1)"), env)
	require.Error(t, err)
}

func TestEvalDefFnCall(t *testing.T) {
	env := newFakeEnv()
	fnExpr, err := parser.ParseExpr("X * X")
	require.NoError(t, err)
	env.fns["SQ"] = &ast.DefFn{Name: "SQ", Param: "X", Expr: fnExpr}

	call := &ast.Call{Name: "SQ", FN: true, Args: []ast.Expr{&ast.NumberLit{Value: 7}}}
	v, err := eval.Evaluate(call, env)
	require.NoError(t, err)
	assert.Equal(t, 49.0, v.Num)
}

func TestEvalRnd(t *testing.T) {
	env := newFakeEnv()
	env.randSeq = []float64{0.25}
	v := evalSrc(t, env, "RND(1)")
	assert.Equal(t, 0.25, v.Num)
}

func mustParseExpr(t *testing.T, src string) ast.Expr {
	t.Helper()
	e, err := parser.ParseExpr(src)
	require.NoError(t, err)
	return e
}
