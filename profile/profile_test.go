package profile_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jcorbin/retrobasic/debug"
	"github.com/jcorbin/retrobasic/profile"
)

func entries() []debug.ProfileEntry {
	return []debug.ProfileEntry{
		{Line: 10, Count: 1, Total: 10 * time.Millisecond, Mean: 10 * time.Millisecond},
		{Line: 20, Count: 200, Total: 600 * time.Millisecond, Mean: 3 * time.Millisecond},
		{Line: 30, Count: 200, Total: 390 * time.Millisecond, Mean: time.Millisecond + 950*time.Microsecond},
	}
}

func TestAnalyzeTotalsAndExtrema(t *testing.T) {
	r := profile.Analyze(entries())
	require.Equal(t, time.Second, r.Total)
	require.NotNil(t, r.Slowest)
	require.Equal(t, 20, r.Slowest.Line)
	require.NotNil(t, r.Fastest)
	require.Equal(t, 30, r.Fastest.Line)
	require.NotNil(t, r.MostExecuted)
	require.Equal(t, 20, r.MostExecuted.Line)
}

func TestAnalyzeHotspotSeverity(t *testing.T) {
	r := profile.Analyze(entries())
	require.Len(t, r.Hotspots, 2)
	// sorted by descending share: line 20 (60%) then line 30 (39%)
	require.Equal(t, 20, r.Hotspots[0].Line)
	require.Equal(t, profile.SeverityCritical, r.Hotspots[0].Severity)
	require.Equal(t, 30, r.Hotspots[1].Line)
	require.Equal(t, profile.SeverityHigh, r.Hotspots[1].Severity)
}

func TestAnalyzeSuggestsHoistingHotLoop(t *testing.T) {
	// line 30 dominates total time (critical severity) and is also run
	// often at a mean far above the other lines' average, so it should
	// collect both a "prioritize" and a "hoist" suggestion.
	r := profile.Analyze([]debug.ProfileEntry{
		{Line: 10, Count: 500, Total: 500 * time.Millisecond, Mean: time.Millisecond},
		{Line: 20, Count: 500, Total: 500 * time.Millisecond, Mean: time.Millisecond},
		{Line: 30, Count: 200, Total: 4000 * time.Millisecond, Mean: 20 * time.Millisecond},
	})
	var sawCritical, sawHoist bool
	for _, s := range r.Suggestions {
		if strings.Contains(s, "line 30") && strings.Contains(s, "critical") {
			sawCritical = true
		}
		if strings.Contains(s, "line 30") && strings.Contains(s, "hoist") {
			sawHoist = true
		}
	}
	require.True(t, sawCritical, "expected a suggestion for the critical-severity line")
	require.True(t, sawHoist, "expected a hoist suggestion for a hot, slow line")
}

func TestAnalyzeEmptyTable(t *testing.T) {
	r := profile.Analyze(nil)
	require.Equal(t, time.Duration(0), r.Total)
	require.Empty(t, r.Hotspots)
	require.Nil(t, r.Slowest)
}

func TestReportStringIncludesHotspotsAndSuggestions(t *testing.T) {
	r := profile.Analyze(entries())
	s := r.String()
	require.Contains(t, s, "Total execution time:")
	require.Contains(t, s, "Hotspots:")
	require.Contains(t, s, "line 20")
}
