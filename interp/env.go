package interp

import (
	"fmt"

	"github.com/jcorbin/retrobasic/eval"
	"github.com/jcorbin/retrobasic/vars"
)

// Interpreter implements eval.Env directly: expression evaluation reads
// straight through to the live variable store and function table,
// rather than through a copying adapter.
var _ eval.Env = (*Interpreter)(nil)

func (in *Interpreter) GetScalar(name string) vars.Value { return in.store.Get(name) }

func (in *Interpreter) GetArrayElement(name string, subs []int) (vars.Value, error) {
	a, ok := in.store.Array(name)
	if !ok {
		return vars.Value{}, &eval.Error{Kind: ErrArrayNotDeclared, Message: fmt.Sprintf("array %s not declared", name)}
	}
	v, err := a.Get(subs)
	if err != nil {
		return vars.Value{}, &eval.Error{Kind: ErrSubscriptRange, Message: err.Error()}
	}
	return v, nil
}

// CallUserFunc evaluates a DEF FN call: arg is bound to the function's
// single parameter, shadowing only that name, then the function body
// is evaluated and the binding is restored (spec.md §4.3.7).
func (in *Interpreter) CallUserFunc(name string, arg vars.Value) (vars.Value, error) {
	fn, ok := in.fns[name]
	if !ok {
		return vars.Value{}, &eval.Error{Kind: ErrUndefinedFunction, Message: fmt.Sprintf("undefined function FN %s", name)}
	}
	saved := in.store.Get(fn.Param)
	in.store.Set(fn.Param, arg)
	defer in.store.Set(fn.Param, saved)
	return eval.Evaluate(fn.Expr, in)
}

func (in *Interpreter) Rand() float64 { return in.rng.Float64() }

func (in *Interpreter) Point(x, y int) (float64, error) { return in.graphics.Point(x, y) }
