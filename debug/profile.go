package debug

import (
	"sort"
	"time"
)

// lineProfile accumulates per-line timing (spec.md §4.5: "Profiling
// adds per-statement start and end timestamps, accumulating totals per
// line").
type lineProfile struct {
	count int
	total time.Duration
}

// ProfileEntry is one line's accumulated execution stats, exported for
// package profile's analysis pass (spec.md §4.6).
type ProfileEntry struct {
	Line  int
	Count int
	Total time.Duration
	Mean  time.Duration
}

// recordProfile adds one elapsed sample for line, must be called with
// d.mu held.
func (d *Debugger) recordProfile(line int, elapsed time.Duration) {
	p, ok := d.profile[line]
	if !ok {
		p = &lineProfile{}
		d.profile[line] = p
	}
	p.count++
	p.total += elapsed
}

// ProfileTable returns the accumulated per-line stats, sorted by line
// number. The statement being executed when the run ends has no
// closing sample and is not included in its own total until a
// subsequent Observe call accounts for it.
func (d *Debugger) ProfileTable() []ProfileEntry {
	d.mu.Lock()
	defer d.mu.Unlock()
	entries := make([]ProfileEntry, 0, len(d.profile))
	for line, p := range d.profile {
		mean := time.Duration(0)
		if p.count > 0 {
			mean = p.total / time.Duration(p.count)
		}
		entries = append(entries, ProfileEntry{Line: line, Count: p.count, Total: p.total, Mean: mean})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Line < entries[j].Line })
	return entries
}

// ClearProfile discards all accumulated profiling data.
func (d *Debugger) ClearProfile() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.profile = map[int]*lineProfile{}
	d.lastLine = 0
}
