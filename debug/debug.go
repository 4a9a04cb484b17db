// Package debug implements the passive debugger facility of spec.md
// §4.5: breakpoints, watches, a call-stack mirror, a bounded trace
// ring buffer, and a per-line profiling table, all hung off the
// interpreter's single observe-before-each-statement hook.
//
// Debugger holds a reference to the live *interp.Interpreter the way
// the teacher's vmDumper holds a reference to the live *VM
// (gothird/dumper.go): it introspects rather than duplicates state,
// so CallStack() always reflects the interpreter's current stacks.
package debug

import (
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/jcorbin/retrobasic/eval"
	"github.com/jcorbin/retrobasic/interp"
	"github.com/jcorbin/retrobasic/vars"
)

// Debugger satisfies interp.Debugger and is attached via
// (*interp.Interpreter).SetDebugger.
type Debugger struct {
	mu sync.Mutex

	in   *interp.Interpreter
	logf func(mess string, args ...interface{})

	tracing  bool
	trace    []TraceEntry
	traceCap int

	breakpoints map[int]*Breakpoint
	watches     []*Watch
	watchSem    *semaphore.Weighted

	profile  map[int]*lineProfile
	lastLine int
	lastAt   time.Time
}

var _ interp.Debugger = (*Debugger)(nil)

// Option configures a Debugger at construction, mirroring interp's own
// functional-options shape (interp/options.go).
type Option func(d *Debugger)

// WithTraceCapacity bounds the trace ring buffer to n entries (default
// 256). Oldest entries are dropped once full.
func WithTraceCapacity(n int) Option {
	return func(d *Debugger) { d.traceCap = n }
}

// WithLogf attaches a log sink for trace lines and watch-change events
// (spec.md §4.5; SPEC_FULL.md §4.3's TRON/TROFF wiring through
// internal/logio).
func WithLogf(logf func(mess string, args ...interface{})) Option {
	return func(d *Debugger) { d.logf = logf }
}

// WithWatchConcurrency bounds how many watch expressions are evaluated
// concurrently (default 4) via golang.org/x/sync/semaphore.
func WithWatchConcurrency(n int64) Option {
	return func(d *Debugger) { d.watchSem = semaphore.NewWeighted(n) }
}

// New constructs a Debugger observing in. Attach it with
// in.SetDebugger(dbg) before running.
func New(in *interp.Interpreter, opts ...Option) *Debugger {
	d := &Debugger{
		in:          in,
		traceCap:    256,
		breakpoints: map[int]*Breakpoint{},
		profile:     map[int]*lineProfile{},
		logf:        func(string, ...interface{}) {},
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.watchSem == nil {
		d.watchSem = semaphore.NewWeighted(4)
	}
	return d
}

// Observe is the interpreter's before-each-statement hook (spec.md
// §4.5). While tracing is on it records a trace entry and logs the line
// through the log sink. It also accumulates profiling time for the
// previously observed line, re-evaluates watches, and reports whether
// a breakpoint at line demands a pause.
func (d *Debugger) Observe(line int, snapshot vars.Snapshot) bool {
	d.mu.Lock()
	now := time.Now()
	if d.lastLine != 0 {
		d.recordProfile(d.lastLine, now.Sub(d.lastAt))
	}
	d.lastLine, d.lastAt = line, now

	if d.tracing {
		d.appendTrace(TraceEntry{Line: line, At: now, Snapshot: snapshot})
		d.logf("TRACE line %d", line)
	}
	bp := d.breakpoints[line]
	d.mu.Unlock()

	d.evaluateWatches()

	if bp == nil || !bp.Enabled {
		return false
	}
	if bp.Cond == nil {
		return true
	}
	v, err := eval.Evaluate(bp.Cond, d.in)
	if err != nil {
		d.logf("BREAKPOINT line %d: condition error: %v", line, err)
		return false
	}
	return v.Truthy()
}

// SetTrace turns the trace ring buffer on or off, the same facility
// TRON/TROFF toggle at runtime (SPEC_FULL.md §4.3).
func (d *Debugger) SetTrace(on bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tracing = on
	d.logf("TRACE %v", on)
}

// CallStack returns the interpreter's current GOSUB/FOR mirror
// (interp.Interpreter.CallStack).
func (d *Debugger) CallStack() []interp.CallFrame {
	return d.in.CallStack()
}
