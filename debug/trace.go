package debug

import (
	"time"

	"github.com/jcorbin/retrobasic/vars"
)

// TraceEntry is one ring-buffer sample: the line about to execute, its
// wall-clock time, and the variable snapshot at that moment (spec.md
// §4.5; SPEC_FULL.md §3's Snapshot supplement).
type TraceEntry struct {
	Line     int
	At       time.Time
	Snapshot vars.Snapshot
}

// appendTrace pushes e onto the ring buffer, must be called with d.mu
// held.
func (d *Debugger) appendTrace(e TraceEntry) {
	d.trace = append(d.trace, e)
	if over := len(d.trace) - d.traceCap; over > 0 {
		d.trace = d.trace[over:]
	}
}

// Trace returns a copy of the current ring buffer contents, oldest
// first.
func (d *Debugger) Trace() []TraceEntry {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]TraceEntry, len(d.trace))
	copy(out, d.trace)
	return out
}

// ClearTrace empties the ring buffer without disabling tracing.
func (d *Debugger) ClearTrace() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.trace = d.trace[:0]
}
