package interp_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jcorbin/retrobasic/interp"
	"github.com/jcorbin/retrobasic/parser"
)

// run parses source, runs it to completion with a buffered output sink,
// and returns the captured output.
func run(t *testing.T, source string) (string, *interp.Interpreter) {
	t.Helper()
	prog, err := parser.Parse(source)
	require.NoError(t, err)
	var buf bytes.Buffer
	in := interp.New(interp.WithOutput(&buf))
	in.LoadProgram(prog)
	require.NoError(t, in.Run(context.Background()))
	return buf.String(), in
}

// S1 — counted loop with accumulator (spec.md §8).
func TestCountedLoopAccumulator(t *testing.T) {
	out, in := run(t, `
10 S = 0
20 FOR I = 1 TO 10
30 S = S + I
40 NEXT I
50 PRINT S
`)
	require.Equal(t, "55\n", out)
	snap := in.Snapshot()
	require.Equal(t, 55.0, snap["S"].Num)
	require.Equal(t, 11.0, snap["I"].Num)
}

// S2 — GOSUB/RETURN with GOTO fallthrough prevention.
func TestGosubReturnFallthroughPrevention(t *testing.T) {
	out, _ := run(t, `
10 GOSUB 100
20 PRINT "BACK"
30 END
100 PRINT "IN SUB"
110 RETURN
`)
	require.Equal(t, "IN SUB\nBACK\n", out)
}

// S3 — WHILE/WEND with early exit via GOTO must not corrupt interpreter
// state even though the GOTO leaves the WHILE block mid-iteration.
func TestWhileWendEarlyExitViaGoto(t *testing.T) {
	out, _ := run(t, `
10 I = 0
20 WHILE I < 100
30 I = I + 1
40 IF I = 5 THEN GOTO 70
50 WEND
70 PRINT I
`)
	require.Equal(t, "5\n", out)
}

// S4 — DATA/READ with mixed types.
func TestDataReadMixedTypes(t *testing.T) {
	out, _ := run(t, `
10 DATA 1, 2, "THREE", 4
20 READ A, B, C$, D
30 PRINT A + B + D; " "; C$
`)
	require.Equal(t, "7 THREE\n", out)
}

// S5 — DEF FN.
func TestDefFn(t *testing.T) {
	out, _ := run(t, `
10 DEF FN SQ(X) = X * X
20 PRINT FN SQ(7)
`)
	require.Equal(t, "49\n", out)
}

// S6 — ON ... GOTO out-of-range is silent.
func TestOnGotoOutOfRangeSilent(t *testing.T) {
	out, _ := run(t, `
10 X = 5
20 ON X GOTO 100, 110, 120
30 PRINT "FELL THROUGH"
40 END
100 PRINT "A" : END
110 PRINT "B" : END
120 PRINT "C" : END
`)
	require.Equal(t, "FELL THROUGH\n", out)
}

// Invariant 7: NEW resets the variable store, the statement vector, and
// the run state.
func TestNewResetsEverything(t *testing.T) {
	_, in := run(t, `
10 X = 42
20 PRINT X
`)
	meta, err := parser.Parse("10 NEW")
	require.NoError(t, err)
	in.LoadProgram(meta)
	require.NoError(t, in.Run(context.Background()))

	snap := in.Snapshot()
	require.Empty(t, snap)
	require.Empty(t, in.Program().Stmts)
	require.Contains(t, []interp.State{interp.StateReady, interp.StateStopped}, in.State())
}
