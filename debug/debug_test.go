package debug_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jcorbin/retrobasic/debug"
	"github.com/jcorbin/retrobasic/interp"
	"github.com/jcorbin/retrobasic/parser"
)

// waitForState polls until in reaches want or the test times out; the
// debugger's pause blocks inside Run on another goroutine resuming it
// (interp/state.go's Resume), so the test drives Run concurrently.
func waitForState(t *testing.T, in *interp.Interpreter, want interp.State) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if in.State() == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	require.Equal(t, want, in.State())
}

func TestBreakpointPausesRun(t *testing.T) {
	prog, err := parser.Parse(`
10 X = 0
20 X = X + 1
30 X = X + 1
40 PRINT X
`)
	require.NoError(t, err)

	var buf bytes.Buffer
	in := interp.New(interp.WithOutput(&buf))
	in.LoadProgram(prog)

	dbg := debug.New(in)
	in.SetDebugger(dbg)
	require.NoError(t, dbg.SetBreakpoint(30, ""))

	done := make(chan error, 1)
	go func() { done <- in.Run(context.Background()) }()

	waitForState(t, in, interp.StatePaused)
	in.Resume()

	require.NoError(t, <-done)
	require.Equal(t, "2\n", buf.String())
}

func TestConditionalBreakpointOnlyPausesWhenTrue(t *testing.T) {
	prog, err := parser.Parse(`
10 FOR I = 1 TO 5
20 PRINT I
30 NEXT I
`)
	require.NoError(t, err)

	var buf bytes.Buffer
	in := interp.New(interp.WithOutput(&buf))
	in.LoadProgram(prog)

	dbg := debug.New(in)
	in.SetDebugger(dbg)
	require.NoError(t, dbg.SetBreakpoint(20, "I = 3"))

	done := make(chan error, 1)
	go func() { done <- in.Run(context.Background()) }()

	waitForState(t, in, interp.StatePaused)
	require.Equal(t, "1\n2\n", buf.String())
	in.Resume()

	require.NoError(t, <-done)
	require.Equal(t, "1\n2\n3\n4\n5\n", buf.String())
}

func TestWatchTracksChanges(t *testing.T) {
	// Observe fires before each statement executes, so a watch's cached
	// value always lags the most recent assignment by one statement; a
	// trailing statement after the last assignment lets the final
	// Observe call pick up X's last-written value.
	prog, err := parser.Parse(`
10 X = 1
20 X = 2
30 X = 2
40 X = 3
50 PRINT X
`)
	require.NoError(t, err)

	in := interp.New(interp.WithOutput(&bytes.Buffer{}))
	in.LoadProgram(prog)

	dbg := debug.New(in)
	in.SetDebugger(dbg)
	require.NoError(t, dbg.AddWatch("x", "X"))

	require.NoError(t, in.Run(context.Background()))

	values := dbg.Watches()
	require.Len(t, values, 1)
	require.Equal(t, "x", values[0].Name)
	require.Equal(t, 3.0, values[0].Value.Num)
}

func TestCallStackMirrorsGosubAndFor(t *testing.T) {
	prog, err := parser.Parse(`
10 GOSUB 100
20 END
100 FOR I = 1 TO 3
110 NEXT I
120 RETURN
`)
	require.NoError(t, err)

	in := interp.New(interp.WithOutput(&bytes.Buffer{}))
	in.LoadProgram(prog)

	dbg := debug.New(in)
	in.SetDebugger(dbg)
	require.NoError(t, dbg.SetBreakpoint(110, ""))

	done := make(chan error, 1)
	go func() { done <- in.Run(context.Background()) }()
	waitForState(t, in, interp.StatePaused)
	defer func() {
		in.Resume()
		<-done
	}()

	frames := in.CallStack()
	var sawGosub, sawFor bool
	for _, f := range frames {
		switch f.Kind {
		case interp.FrameGosub:
			sawGosub = true
		case interp.FrameFor:
			sawFor = true
			require.Equal(t, "I", f.Var)
		}
	}
	require.True(t, sawGosub, "expected an active GOSUB frame")
	require.True(t, sawFor, "expected an active FOR frame")
}

func TestTraceRingBufferBounded(t *testing.T) {
	prog, err := parser.Parse(`
10 FOR I = 1 TO 10
20 PRINT I
30 NEXT I
`)
	require.NoError(t, err)

	in := interp.New(interp.WithOutput(&bytes.Buffer{}))
	in.LoadProgram(prog)

	dbg := debug.New(in, debug.WithTraceCapacity(3))
	in.SetDebugger(dbg)
	dbg.SetTrace(true)

	require.NoError(t, in.Run(context.Background()))
	require.LessOrEqual(t, len(dbg.Trace()), 3)
}

func TestProfileTableAccumulatesPerLine(t *testing.T) {
	prog, err := parser.Parse(`
10 FOR I = 1 TO 5
20 PRINT I
30 NEXT I
`)
	require.NoError(t, err)

	in := interp.New(interp.WithOutput(&bytes.Buffer{}))
	in.LoadProgram(prog)

	dbg := debug.New(in)
	in.SetDebugger(dbg)

	require.NoError(t, in.Run(context.Background()))
	table := dbg.ProfileTable()
	require.NotEmpty(t, table)

	byLine := map[int]int{}
	for _, e := range table {
		byLine[e.Line] = e.Count
	}
	require.Equal(t, 5, byLine[20])
}
