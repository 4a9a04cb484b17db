package interp

import (
	"context"
	"math"

	"github.com/jcorbin/retrobasic/ast"
	"github.com/jcorbin/retrobasic/eval"
	"github.com/jcorbin/retrobasic/vars"
)

// exec executes the statement at idx and returns the next instruction
// pointer (idx+1 for ordinary fallthrough, something else for a jump).
func (in *Interpreter) exec(ctx context.Context, idx int, stmt ast.Stmt) (int, error) {
	switch s := stmt.(type) {
	case *ast.Let:
		return in.execLet(idx, s)
	case *ast.ArraySet:
		return in.execArraySet(idx, s)
	case *ast.Print:
		return in.execPrint(idx, s)
	case *ast.Input:
		return in.execInput(ctx, idx, s)
	case *ast.If:
		return in.execIf(ctx, idx, s)
	case *ast.For:
		return in.execFor(idx, s)
	case *ast.Next:
		return in.execNext(idx, s)
	case *ast.While:
		return in.execWhile(idx, s)
	case *ast.Wend:
		return in.execWend(idx, s)
	case *ast.Do:
		return in.execDo(idx, s)
	case *ast.LoopStmt:
		return in.execLoop(idx, s)
	case *ast.Goto:
		return in.execGoto(idx, s)
	case *ast.Gosub:
		return in.execGosub(idx, s)
	case *ast.Return:
		return in.execReturn(idx, s)
	case *ast.On:
		return in.execOn(idx, s)
	case *ast.Dim:
		return in.execDim(idx, s)
	case *ast.Data:
		return idx + 1, nil // harvested at load time, spec.md §4.3.8
	case *ast.Read:
		return in.execRead(idx, s)
	case *ast.Restore:
		in.restoreTo(s.Line)
		return idx + 1, nil
	case *ast.DefFn:
		in.fns[s.Name] = s
		return idx + 1, nil
	case *ast.End, *ast.Stop:
		in.setState(StateStopped)
		return idx + 1, nil
	case *ast.Rem:
		return idx + 1, nil
	case *ast.Meta:
		return in.execMeta(idx, s)
	case *ast.Peripheral:
		return in.execPeripheral(idx, s)
	default:
		return idx + 1, runtimeErrf(ErrSyntax, in.lineAt(idx), "unsupported statement %T", stmt)
	}
}

func (in *Interpreter) execLet(idx int, s *ast.Let) (int, error) {
	v, err := eval.Evaluate(s.Expr, in)
	if err != nil {
		return idx, err
	}
	in.store.Set(s.Name, v)
	return idx + 1, nil
}

func (in *Interpreter) execArraySet(idx int, s *ast.ArraySet) (int, error) {
	subs, err := in.evalSubs(s.Subs)
	if err != nil {
		return idx, err
	}
	v, err := eval.Evaluate(s.Expr, in)
	if err != nil {
		return idx, err
	}
	a, ok := in.store.Array(s.Name)
	if !ok {
		return idx, &eval.Error{Kind: ErrArrayNotDeclared, Message: "array " + s.Name + " not declared"}
	}
	if err := a.Set(subs, v); err != nil {
		return idx, &eval.Error{Kind: ErrSubscriptRange, Message: err.Error()}
	}
	return idx + 1, nil
}

func (in *Interpreter) execDim(idx int, s *ast.Dim) (int, error) {
	dims, err := in.evalSubs(s.Dims)
	if err != nil {
		return idx, err
	}
	if err := in.store.Dim(s.Name, dims); err != nil {
		return idx, &eval.Error{Kind: ErrIllegalQuantity, Message: err.Error()}
	}
	return idx + 1, nil
}

func (in *Interpreter) execRead(idx int, s *ast.Read) (int, error) {
	for _, name := range s.Vars {
		v, err := in.readNext(name)
		if err != nil {
			return idx, err
		}
		in.store.Set(name, v)
	}
	return idx + 1, nil
}

// evalSubs evaluates a subscript/dimension expression list to integers,
// flooring each per spec.md §4.4's array-access rule.
func (in *Interpreter) evalSubs(exprs []ast.Expr) ([]int, error) {
	subs := make([]int, len(exprs))
	for i, e := range exprs {
		v, err := eval.Evaluate(e, in)
		if err != nil {
			return nil, err
		}
		if v.Kind != vars.Number {
			return nil, &eval.Error{Kind: ErrTypeMismatch, Message: "subscript must be numeric"}
		}
		subs[i] = int(math.Floor(v.Num))
	}
	return subs, nil
}
