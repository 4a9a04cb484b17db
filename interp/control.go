package interp

import "github.com/jcorbin/retrobasic/ast"

// frameKind tags a loopStack entry so the debugger's call-stack mirror
// and the GOTO-escape trim logic both know what they're looking at.
type frameKind int

const (
	frameFor frameKind = iota
	frameWhile
	frameDo
)

// loopFrame is a single FOR, WHILE or DO frame. Start/Last are the
// statement indices of the opening and closing statement of the block
// (spec.md §9's adopted resolution trims frames whose [Start, Last]
// range no longer contains the instruction pointer after a GOTO).
type loopFrame struct {
	Kind  frameKind
	Var   string  // FOR only
	End   float64 // FOR only: loop bound
	Step  float64 // FOR only
	Start int     // index of the FOR/WHILE/DO statement
	Last  int     // index of the matching NEXT/WEND/LOOP statement
}

// trimLoopStack drops stale frames whose body no longer contains newIP,
// checked whenever the instruction pointer is set by an explicit jump
// (GOTO, ON...GOTO, RETURN) per spec.md §9. GOSUB and ON...GOSUB do not
// trim: the caller's loops stay open until the subroutine returns.
func (in *Interpreter) trimLoopStack(newIP int) {
	for len(in.loopStack) > 0 {
		top := in.loopStack[len(in.loopStack)-1]
		if newIP >= top.Start && newIP <= top.Last {
			break
		}
		in.loopStack = in.loopStack[:len(in.loopStack)-1]
	}
}

// findMatchingNext scans forward from a FOR statement for its NEXT,
// honoring nesting depth so an inner loop's NEXT (named or bare) never
// satisfies an outer FOR's search (spec.md §4.3.4).
func (in *Interpreter) findMatchingNext(forIdx int, forVar string) (int, error) {
	depth := 0
	for i := forIdx + 1; i < len(in.prog.Stmts); i++ {
		switch s := in.prog.Stmts[i].(type) {
		case *ast.For:
			depth++
		case *ast.Next:
			if depth > 0 {
				depth--
				continue
			}
			if s.Var == "" || s.Var == forVar {
				return i, nil
			}
		}
	}
	return 0, runtimeErrf(ErrForWithoutNext, in.lineAt(forIdx), "FOR without matching NEXT")
}

// findMatchingWend scans forward from a WHILE statement for its WEND.
func (in *Interpreter) findMatchingWend(whileIdx int) (int, error) {
	depth := 0
	for i := whileIdx + 1; i < len(in.prog.Stmts); i++ {
		switch in.prog.Stmts[i].(type) {
		case *ast.While:
			depth++
		case *ast.Wend:
			if depth == 0 {
				return i, nil
			}
			depth--
		}
	}
	return 0, runtimeErrf(ErrSyntax, in.lineAt(whileIdx), "WHILE without matching WEND")
}

// findMatchingLoop scans forward from a DO statement for its LOOP.
func (in *Interpreter) findMatchingLoop(doIdx int) (int, error) {
	depth := 0
	for i := doIdx + 1; i < len(in.prog.Stmts); i++ {
		switch in.prog.Stmts[i].(type) {
		case *ast.Do:
			depth++
		case *ast.LoopStmt:
			if depth == 0 {
				return i, nil
			}
			depth--
		}
	}
	return 0, runtimeErrf(ErrSyntax, in.lineAt(doIdx), "DO without matching LOOP")
}

// lineAt returns the BASIC line number that covers statement index idx,
// walking backward to the nearest preceding line-numbered statement
// (statements after a ':' separator share their line's number).
func (in *Interpreter) lineAt(idx int) int {
	for i := idx; i >= 0; i-- {
		if liner, ok := in.prog.Stmts[i].(ast.Liner); ok {
			if ln := liner.LineNumber(); ln != 0 {
				return ln
			}
		}
	}
	return 0
}
