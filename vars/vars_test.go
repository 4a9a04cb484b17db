package vars_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/retrobasic/vars"
)

func TestStoreUninitializedScalarDefaults(t *testing.T) {
	s := vars.NewStore()
	assert.Equal(t, vars.NumberValue(0), s.Get("X"))
	assert.Equal(t, vars.StringValue(""), s.Get("N$"))
}

func TestStoreSetGet(t *testing.T) {
	s := vars.NewStore()
	s.Set("X", vars.NumberValue(42))
	assert.Equal(t, 42.0, s.Get("X").Num)
}

func TestStoreDimRedeclareErrors(t *testing.T) {
	s := vars.NewStore()
	require.NoError(t, s.Dim("A", []int{10}))
	err := s.Dim("A", []int{20})
	assert.Error(t, err)
}

func TestArrayGetSetBounds(t *testing.T) {
	s := vars.NewStore()
	require.NoError(t, s.Dim("A", []int{2, 3}))
	a, ok := s.Array("A")
	require.True(t, ok)

	require.NoError(t, a.Set([]int{1, 2}, vars.NumberValue(9)))
	v, err := a.Get([]int{1, 2})
	require.NoError(t, err)
	assert.Equal(t, 9.0, v.Num)

	_, err = a.Get([]int{3, 0})
	assert.Error(t, err)

	_, err = a.Get([]int{1})
	assert.Error(t, err)
}

func TestArrayUndeclaredAccess(t *testing.T) {
	s := vars.NewStore()
	_, ok := s.Array("B")
	assert.False(t, ok)
}

func TestStoreClearResetsBothNamespaces(t *testing.T) {
	s := vars.NewStore()
	s.Set("X", vars.NumberValue(1))
	require.NoError(t, s.Dim("A", []int{5}))
	s.Clear()
	assert.Equal(t, vars.NumberValue(0), s.Get("X"))
	_, ok := s.Array("A")
	assert.False(t, ok)
}

func TestSnapshotIsIndependentCopy(t *testing.T) {
	s := vars.NewStore()
	s.Set("X", vars.NumberValue(1))
	snap := s.Snapshot()
	s.Set("X", vars.NumberValue(2))
	assert.Equal(t, 1.0, snap["X"].Num)
	assert.Equal(t, 2.0, s.Get("X").Num)
}

func TestTruthiness(t *testing.T) {
	assert.True(t, vars.NumberValue(1).Truthy())
	assert.False(t, vars.NumberValue(0).Truthy())
	assert.True(t, vars.StringValue("x").Truthy())
	assert.False(t, vars.StringValue("").Truthy())
}

func TestSuffixKind(t *testing.T) {
	assert.Equal(t, vars.String, vars.SuffixKind("A$"))
	assert.Equal(t, vars.Number, vars.SuffixKind("A%"))
	assert.Equal(t, vars.Number, vars.SuffixKind("A"))
}
