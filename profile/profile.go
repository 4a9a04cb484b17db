// Package profile implements the profiling analyzer of spec.md §4.6: a
// pure function from a debugger's per-line profiling table to a
// derived report (totals, hotspots by severity, heuristic suggestions,
// extrema), plus a plain-text serialization.
package profile

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jcorbin/retrobasic/debug"
)

// Severity classifies a Hotspot by its share of total execution time
// (spec.md §4.6).
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "CRITICAL"
	case SeverityHigh:
		return "HIGH"
	case SeverityMedium:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

// severityOf classifies a time share (spec.md §4.6: critical >= 50%,
// high >= 30%, medium >= 10%, else low).
func severityOf(share float64) Severity {
	switch {
	case share >= 0.50:
		return SeverityCritical
	case share >= 0.30:
		return SeverityHigh
	case share >= 0.10:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// hotspotThreshold is the minimum time share a line needs to be
// reported as a hotspot at all (spec.md §4.6's default 10%).
const hotspotThreshold = 0.10

// Hotspot is one line whose share of total execution time meets or
// exceeds hotspotThreshold.
type Hotspot struct {
	Line     int
	Share    float64
	Severity Severity
	Entry    debug.ProfileEntry
}

// Report is the profiling analyzer's output.
type Report struct {
	Total        time.Duration
	Hotspots     []Hotspot
	Suggestions  []string
	Slowest      *debug.ProfileEntry // by total time
	Fastest      *debug.ProfileEntry // by mean time, among executed lines
	MostExecuted *debug.ProfileEntry // by count
}

// Analyze derives a Report from a profiling table (typically
// (*debug.Debugger).ProfileTable()).
func Analyze(entries []debug.ProfileEntry) Report {
	var r Report
	for _, e := range entries {
		r.Total += e.Total
	}

	for i, e := range entries {
		if r.Total > 0 {
			share := float64(e.Total) / float64(r.Total)
			if share >= hotspotThreshold {
				r.Hotspots = append(r.Hotspots, Hotspot{Line: e.Line, Share: share, Severity: severityOf(share), Entry: e})
			}
		}
		if r.Slowest == nil || e.Total > r.Slowest.Total {
			r.Slowest = &entries[i]
		}
		if r.Fastest == nil || e.Mean < r.Fastest.Mean {
			r.Fastest = &entries[i]
		}
		if r.MostExecuted == nil || e.Count > r.MostExecuted.Count {
			r.MostExecuted = &entries[i]
		}
	}
	sort.Slice(r.Hotspots, func(i, j int) bool { return r.Hotspots[i].Share > r.Hotspots[j].Share })

	r.Suggestions = suggest(entries, r.Hotspots)
	return r
}

// suggest applies spec.md §4.6's heuristic rules: a critical-severity
// line is called out for priority attention, and a line with a high
// execution count and a slow mean time suggests hoisting invariant
// work out of its enclosing loop.
func suggest(entries []debug.ProfileEntry, hotspots []Hotspot) []string {
	var out []string
	for _, h := range hotspots {
		if h.Severity == SeverityCritical {
			out = append(out, fmt.Sprintf("line %d: critical severity (%.0f%% of total time) — prioritize", h.Line, h.Share*100))
		}
	}
	var meanTotal time.Duration
	var meanCount int
	for _, e := range entries {
		meanTotal += e.Mean
		meanCount++
	}
	if meanCount == 0 {
		return out
	}
	avgMean := meanTotal / time.Duration(meanCount)
	for _, e := range entries {
		if e.Count >= 100 && e.Mean > avgMean*2 {
			out = append(out, fmt.Sprintf("line %d: executed %d times at %v mean — hoist invariant work out of its loop", e.Line, e.Count, e.Mean))
		}
	}
	return out
}

// String renders the report as a plain-text summary (spec.md §4.6:
// "Report is serializable to plain text").
func (r Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total execution time: %v\n", r.Total)
	if r.MostExecuted != nil {
		fmt.Fprintf(&b, "Most executed: line %d (%d times)\n", r.MostExecuted.Line, r.MostExecuted.Count)
	}
	if r.Slowest != nil {
		fmt.Fprintf(&b, "Slowest: line %d (%v total)\n", r.Slowest.Line, r.Slowest.Total)
	}
	if r.Fastest != nil {
		fmt.Fprintf(&b, "Fastest: line %d (%v mean)\n", r.Fastest.Line, r.Fastest.Mean)
	}
	if len(r.Hotspots) == 0 {
		b.WriteString("Hotspots: none\n")
	} else {
		b.WriteString("Hotspots:\n")
		for _, h := range r.Hotspots {
			fmt.Fprintf(&b, "  line %d: %.1f%% %s\n", h.Line, h.Share*100, h.Severity)
		}
	}
	if len(r.Suggestions) > 0 {
		b.WriteString("Suggestions:\n")
		for _, s := range r.Suggestions {
			fmt.Fprintf(&b, "  - %s\n", s)
		}
	}
	return b.String()
}
