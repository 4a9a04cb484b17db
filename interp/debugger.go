package interp

import "github.com/jcorbin/retrobasic/vars"

// Debugger is the interface the driver loop calls at each
// line-numbered statement boundary (spec.md §4.5). Package debug
// implements it; interp has no dependency on debug, avoiding an
// import cycle while still letting the debugger observe every line
// and drive breakpoint pauses.
type Debugger interface {
	// Observe is called before executing the statement at line, with a
	// snapshot of the current scalar variables. It returns true if
	// execution should pause (a breakpoint matched).
	Observe(line int, snapshot vars.Snapshot) (pause bool)

	// SetTrace toggles the debugger's line trace, wired to the TRON/
	// TROFF statements.
	SetTrace(on bool)
}

// SetDebugger attaches or replaces the debugger observer after
// construction. Package debug's Debugger needs a live *Interpreter to
// introspect (its CallStack mirror), so it can't be built before New
// returns; WithDebugger remains the right choice whenever the debugger
// doesn't need a reference back to this Interpreter.
func (in *Interpreter) SetDebugger(d Debugger) { in.debugger = d }
