package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseBreakpointFlag(t *testing.T) {
	cases := []struct {
		raw      string
		wantLine int
		wantCond string
	}{
		{"30", 30, ""},
		{"30:I = 3", 30, "I = 3"},
		{" 40 ", 40, ""},
	}
	for _, c := range cases {
		line, cond := parseBreakpointFlag(c.raw)
		require.Equal(t, c.wantLine, line, "raw=%q", c.raw)
		require.Equal(t, c.wantCond, cond, "raw=%q", c.raw)
	}
}

func TestStringListAccumulatesAndJoins(t *testing.T) {
	var l stringList
	require.NoError(t, l.Set("10"))
	require.NoError(t, l.Set("20:X=1"))
	require.Equal(t, "10,20:X=1", l.String())
}
