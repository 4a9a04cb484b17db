package interp

import (
	"context"
	"math"

	"github.com/jcorbin/retrobasic/ast"
	"github.com/jcorbin/retrobasic/eval"
	"github.com/jcorbin/retrobasic/vars"
)

// execIf evaluates the condition and recursively executes the chosen
// branch's statements in place, one at a time, via the same exec
// dispatch (spec.md §4.3.6: "nested invocation of the statement-
// execution function"). A branch statement that jumps (GOTO, GOSUB,
// RETURN, ON...) ends the branch, and its target becomes the IF's next
// instruction pointer. Statements inside a multi-line IF carry no
// line number (parser.parseBlockUntil), so they are never a GOTO
// target and never observed by the debugger individually. FOR/WHILE/DO
// are not meaningfully nestable in a THEN/ELSE body: their stack
// bookkeeping needs a real index into the flat statement vector, which
// nested statements don't have; well-formed programs keep loop
// openers/closers at top level.
func (in *Interpreter) execIf(ctx context.Context, idx int, s *ast.If) (int, error) {
	cond, err := eval.Evaluate(s.Cond, in)
	if err != nil {
		return idx, err
	}
	branch := s.Else
	if cond.Truthy() {
		branch = s.Then
	}
	for _, inner := range branch {
		next, err := in.exec(ctx, idx, inner)
		if err != nil {
			return idx, err
		}
		if next != idx+1 {
			return next, nil
		}
	}
	return idx + 1, nil
}

func (in *Interpreter) execFor(idx int, s *ast.For) (int, error) {
	start, err := in.evalNumber(s.Start)
	if err != nil {
		return idx, err
	}
	end, err := in.evalNumber(s.End)
	if err != nil {
		return idx, err
	}
	step := 1.0
	if s.Step != nil {
		step, err = in.evalNumber(s.Step)
		if err != nil {
			return idx, err
		}
	}
	nextIdx, err := in.findMatchingNext(idx, s.Var)
	if err != nil {
		return idx, err
	}
	in.store.Set(s.Var, vars.NumberValue(start))

	entryOK := start <= end
	if step < 0 {
		entryOK = start >= end
	}
	if !entryOK {
		return nextIdx + 1, nil
	}
	in.loopStack = append(in.loopStack, loopFrame{
		Kind: frameFor, Var: s.Var, End: end, Step: step,
		Start: idx, Last: nextIdx,
	})
	return idx + 1, nil
}

func (in *Interpreter) execNext(idx int, s *ast.Next) (int, error) {
	if len(in.loopStack) == 0 {
		return idx, runtimeErrf(ErrNextWithoutFor, in.lineAt(idx), "NEXT without FOR")
	}
	top := in.loopStack[len(in.loopStack)-1]
	if top.Kind != frameFor {
		return idx, runtimeErrf(ErrNextWithoutFor, in.lineAt(idx), "NEXT without FOR")
	}
	if s.Var != "" && s.Var != top.Var {
		return idx, runtimeErrf(ErrNextWithoutFor, in.lineAt(idx), "NEXT %s does not match FOR %s", s.Var, top.Var)
	}
	v := in.store.Get(top.Var).Num + top.Step
	in.store.Set(top.Var, vars.NumberValue(v))

	cont := v <= top.End
	if top.Step < 0 {
		cont = v >= top.End
	}
	if cont {
		return top.Start + 1, nil
	}
	in.loopStack = in.loopStack[:len(in.loopStack)-1]
	return idx + 1, nil
}

func (in *Interpreter) execWhile(idx int, s *ast.While) (int, error) {
	wendIdx, err := in.findMatchingWend(idx)
	if err != nil {
		return idx, err
	}
	cond, err := eval.Evaluate(s.Cond, in)
	if err != nil {
		return idx, err
	}
	if !cond.Truthy() {
		return wendIdx + 1, nil
	}
	in.loopStack = append(in.loopStack, loopFrame{Kind: frameWhile, Start: idx, Last: wendIdx})
	return idx + 1, nil
}

func (in *Interpreter) execWend(idx int, s *ast.Wend) (int, error) {
	if len(in.loopStack) == 0 || in.loopStack[len(in.loopStack)-1].Kind != frameWhile {
		return idx, runtimeErrf(ErrSyntax, in.lineAt(idx), "WEND without WHILE")
	}
	top := in.loopStack[len(in.loopStack)-1]
	in.loopStack = in.loopStack[:len(in.loopStack)-1]
	return top.Start, nil
}

func (in *Interpreter) execDo(idx int, s *ast.Do) (int, error) {
	loopIdx, err := in.findMatchingLoop(idx)
	if err != nil {
		return idx, err
	}
	if s.PreCond != ast.CondNone {
		cond, err := eval.Evaluate(s.PreExpr, in)
		if err != nil {
			return idx, err
		}
		exit := cond.Truthy() // UNTIL exits on truthy
		if s.PreCond == ast.CondWhile {
			exit = !cond.Truthy() // WHILE exits on falsy
		}
		if exit {
			return loopIdx + 1, nil
		}
	}
	in.loopStack = append(in.loopStack, loopFrame{Kind: frameDo, Start: idx, Last: loopIdx})
	return idx + 1, nil
}

func (in *Interpreter) execLoop(idx int, s *ast.LoopStmt) (int, error) {
	if len(in.loopStack) == 0 || in.loopStack[len(in.loopStack)-1].Kind != frameDo {
		return idx, runtimeErrf(ErrSyntax, in.lineAt(idx), "LOOP without DO")
	}
	top := in.loopStack[len(in.loopStack)-1]
	if s.PostCond == ast.CondNone {
		in.loopStack = in.loopStack[:len(in.loopStack)-1]
		return top.Start, nil
	}
	cond, err := eval.Evaluate(s.PostExpr, in)
	if err != nil {
		return idx, err
	}
	exit := cond.Truthy()
	if s.PostCond == ast.CondWhile {
		exit = !cond.Truthy()
	}
	in.loopStack = in.loopStack[:len(in.loopStack)-1]
	if exit {
		return idx + 1, nil
	}
	return top.Start, nil
}

func (in *Interpreter) execGoto(idx int, s *ast.Goto) (int, error) {
	target, ok := in.prog.IndexOf(s.Target)
	if !ok {
		return idx, runtimeErrf(ErrUndefinedLine, in.lineAt(idx), "undefined line %d", s.Target)
	}
	in.trimLoopStack(target)
	return target, nil
}

func (in *Interpreter) execGosub(idx int, s *ast.Gosub) (int, error) {
	target, ok := in.prog.IndexOf(s.Target)
	if !ok {
		return idx, runtimeErrf(ErrUndefinedLine, in.lineAt(idx), "undefined line %d", s.Target)
	}
	in.gosubStack = append(in.gosubStack, idx+1)
	return target, nil
}

func (in *Interpreter) execReturn(idx int, s *ast.Return) (int, error) {
	if len(in.gosubStack) == 0 {
		return idx, runtimeErrf(ErrReturnWithoutGosub, in.lineAt(idx), "RETURN without GOSUB")
	}
	target := in.gosubStack[len(in.gosubStack)-1]
	in.gosubStack = in.gosubStack[:len(in.gosubStack)-1]
	in.trimLoopStack(target)
	return target, nil
}

func (in *Interpreter) execOn(idx int, s *ast.On) (int, error) {
	v, err := eval.Evaluate(s.Expr, in)
	if err != nil {
		return idx, err
	}
	n := int(math.Floor(v.Num))
	if n < 1 || n > len(s.Targets) {
		return idx + 1, nil // silently ignored, spec.md §4.3.2
	}
	line := s.Targets[n-1]
	target, ok := in.prog.IndexOf(line)
	if !ok {
		return idx, runtimeErrf(ErrUndefinedLine, in.lineAt(idx), "undefined line %d", line)
	}
	if s.IsGosub {
		in.gosubStack = append(in.gosubStack, idx+1)
	} else {
		in.trimLoopStack(target)
	}
	return target, nil
}

func (in *Interpreter) evalNumber(e ast.Expr) (float64, error) {
	v, err := eval.Evaluate(e, in)
	if err != nil {
		return 0, err
	}
	if v.Kind != vars.Number {
		return 0, &eval.Error{Kind: ErrTypeMismatch, Message: "expected numeric value"}
	}
	return v.Num, nil
}
