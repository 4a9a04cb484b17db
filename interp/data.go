package interp

import (
	"strconv"
	"strings"

	"github.com/jcorbin/retrobasic/ast"
	"github.com/jcorbin/retrobasic/vars"
)

// dataMark records the DATA pool index contributed by the first DATA
// statement at or after a given line number, for RESTORE <lineno>
// (spec.md §9's adopted resolution of the RESTORE-by-line question).
type dataMark struct {
	line  int
	index int
}

// harvestData walks the statement vector once at load time and
// concatenates every DATA statement's literals into the pool in
// source order (spec.md §4.3.8).
func (in *Interpreter) harvestData() {
	in.dataPool = in.dataPool[:0]
	in.dataMarks = in.dataMarks[:0]
	for _, s := range in.prog.Stmts {
		d, ok := s.(*ast.Data)
		if !ok {
			continue
		}
		start := len(in.dataPool)
		for _, lit := range d.Values {
			switch v := lit.(type) {
			case *ast.NumberLit:
				in.dataPool = append(in.dataPool, vars.NumberValue(v.Value))
			case *ast.StringLit:
				in.dataPool = append(in.dataPool, vars.StringValue(v.Value))
			}
		}
		if line := d.LineNumber(); line != 0 && len(d.Values) > 0 {
			in.dataMarks = append(in.dataMarks, dataMark{line: line, index: start})
		}
	}
	in.dataPtr = 0
}

// restoreTo repositions the DATA pointer. line == 0 is unqualified
// RESTORE (reset to the start of the pool); otherwise the pointer
// moves to the first datum contributed by a DATA statement at or after
// that line.
func (in *Interpreter) restoreTo(line int) {
	if line == 0 {
		in.dataPtr = 0
		return
	}
	for _, m := range in.dataMarks {
		if m.line >= line {
			in.dataPtr = m.index
			return
		}
	}
	in.dataPtr = len(in.dataPool)
}

// readNext consumes the next pool value and coerces it to name's
// declared kind (spec.md §4.3.8: numeric receives a parsed number, or
// 0 if the literal doesn't parse; string receives the literal text).
func (in *Interpreter) readNext(name string) (vars.Value, error) {
	if in.dataPtr >= len(in.dataPool) {
		return vars.Value{}, runtimeErrf(ErrOutOfData, in.lineAt(in.ip), "out of DATA reading %s", name)
	}
	lit := in.dataPool[in.dataPtr]
	in.dataPtr++
	if vars.SuffixKind(name) == vars.String {
		return vars.StringValue(lit.String()), nil
	}
	if lit.Kind == vars.Number {
		return lit, nil
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(lit.Str), 64)
	if err != nil {
		return vars.NumberValue(0), nil
	}
	return vars.NumberValue(n), nil
}
