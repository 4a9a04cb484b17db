package interp

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jcorbin/retrobasic/parser"
)

// Invariant 2: for any execution that terminates normally, the FOR stack
// and the GOSUB stack are both empty at termination.
func TestStacksEmptyAtNormalTermination(t *testing.T) {
	prog, err := parser.Parse(`
10 GOSUB 100
20 FOR I = 1 TO 3
30 NEXT I
40 END
100 PRINT "HI"
110 RETURN
`)
	require.NoError(t, err)
	in := New(WithOutput(&bytes.Buffer{}))
	in.LoadProgram(prog)
	require.NoError(t, in.Run(context.Background()))
	require.Empty(t, in.loopStack)
	require.Empty(t, in.gosubStack)
}

// Invariant 4: for FOR v = a TO b STEP s with s > 0, the number of body
// executions equals max(0, floor((b-a)/s)+1); symmetric for s < 0.
func TestForIterationCountFormula(t *testing.T) {
	prog, err := parser.Parse(`
10 N = 0
20 FOR I = 2 TO 9 STEP 2
30 N = N + 1
40 NEXT I
50 PRINT N
`)
	require.NoError(t, err)
	var buf bytes.Buffer
	in := New(WithOutput(&buf))
	in.LoadProgram(prog)
	require.NoError(t, in.Run(context.Background()))
	require.Equal(t, "4\n", buf.String()) // floor((9-2)/2)+1 = 4
}

// A FOR whose start is already past its end runs zero times.
func TestForZeroIterations(t *testing.T) {
	prog, err := parser.Parse(`
10 N = 0
20 FOR I = 5 TO 1
30 N = N + 1
40 NEXT I
50 PRINT N
`)
	require.NoError(t, err)
	var buf bytes.Buffer
	in := New(WithOutput(&buf))
	in.LoadProgram(prog)
	require.NoError(t, in.Run(context.Background()))
	require.Equal(t, "0\n", buf.String())
	require.Empty(t, in.loopStack)
}

// Invariant 3: for GOSUB lineno followed by execution until a matching
// RETURN, the instruction pointer after RETURN equals the statement index
// immediately following the GOSUB.
func TestGosubReturnIPSymmetry(t *testing.T) {
	prog, err := parser.Parse(`
10 GOSUB 100
20 PRINT "DONE"
30 END
100 RETURN
`)
	require.NoError(t, err)
	var buf bytes.Buffer
	in := New(WithOutput(&buf))
	in.LoadProgram(prog)
	require.NoError(t, in.Run(context.Background()))
	// RETURN resumes at the statement immediately after GOSUB (line 20),
	// not a re-run of the subroutine or anything past END.
	require.Equal(t, "DONE\n", buf.String())
}

// Invariant 1: for every line number present in a program, IndexOf(L)
// points to a statement whose own line number equals L.
func TestLineMapConsistency(t *testing.T) {
	prog, err := parser.Parse(`
10 PRINT "A"
20 PRINT "B"
30 PRINT "C"
`)
	require.NoError(t, err)
	for _, line := range []int{10, 20, 30} {
		idx, ok := prog.IndexOf(line)
		require.True(t, ok)
		liner, is := prog.Stmts[idx].(interface{ LineNumber() int })
		require.True(t, is)
		require.Equal(t, line, liner.LineNumber())
	}
}

// Invariant 5: the sequence of values READ produces is a prefix of the
// DATA pool harvested in source order, even across a RESTORE.
func TestDataReadIsPrefixOfPool(t *testing.T) {
	prog, err := parser.Parse(`
10 DATA 10, 20, 30
20 READ A
30 READ B
40 RESTORE
50 READ C
`)
	require.NoError(t, err)
	var buf bytes.Buffer
	in := New(WithOutput(&buf))
	in.LoadProgram(prog)
	require.NoError(t, in.Run(context.Background()))
	snap := in.Snapshot()
	require.Equal(t, 10.0, snap["A"].Num)
	require.Equal(t, 20.0, snap["B"].Num)
	require.Equal(t, 10.0, snap["C"].Num) // RESTORE rewinds to the start
}

// READ past the end of the DATA pool is an Out of data error.
func TestReadOutOfDataErrors(t *testing.T) {
	prog, err := parser.Parse(`
10 DATA 1
20 READ A
30 READ B
`)
	require.NoError(t, err)
	in := New(WithOutput(&bytes.Buffer{}))
	in.LoadProgram(prog)
	err = in.Run(context.Background())
	require.Error(t, err)
	var re *RuntimeError
	require.ErrorAs(t, err, &re)
	require.Equal(t, ErrOutOfData, re.Kind)
}

// Subscript out of range is reported with the precise error kind, not a
// generic fallback.
func TestArraySubscriptOutOfRangeKind(t *testing.T) {
	prog, err := parser.Parse(`
10 DIM A(3)
20 A(10) = 1
`)
	require.NoError(t, err)
	in := New(WithOutput(&bytes.Buffer{}))
	in.LoadProgram(prog)
	err = in.Run(context.Background())
	require.Error(t, err)
	var re *RuntimeError
	require.ErrorAs(t, err, &re)
	require.Equal(t, ErrSubscriptRange, re.Kind)
}
