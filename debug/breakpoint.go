package debug

import (
	"fmt"
	"sort"

	"github.com/jcorbin/retrobasic/ast"
	"github.com/jcorbin/retrobasic/parser"
)

// Breakpoint pauses the run at Line, optionally only when Cond
// evaluates truthy against the current variable snapshot (spec.md
// §4.5).
type Breakpoint struct {
	Line    int
	Cond    ast.Expr
	Enabled bool
}

// SetBreakpoint arms a breakpoint at line. An empty cond means
// unconditional; otherwise cond is parsed as a BASIC expression
// evaluated against the interpreter's live variables each time line is
// about to execute.
func (d *Debugger) SetBreakpoint(line int, cond string) error {
	var expr ast.Expr
	if cond != "" {
		var err error
		expr, err = parser.ParseExpr(cond)
		if err != nil {
			return fmt.Errorf("breakpoint condition: %w", err)
		}
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.breakpoints[line] = &Breakpoint{Line: line, Cond: expr, Enabled: true}
	return nil
}

// ClearBreakpoint removes any breakpoint at line.
func (d *Debugger) ClearBreakpoint(line int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.breakpoints, line)
}

// Breakpoints returns the currently armed breakpoint lines, sorted.
func (d *Debugger) Breakpoints() []int {
	d.mu.Lock()
	defer d.mu.Unlock()
	lines := make([]int, 0, len(d.breakpoints))
	for line, bp := range d.breakpoints {
		if bp.Enabled {
			lines = append(lines, line)
		}
	}
	sort.Ints(lines)
	return lines
}
