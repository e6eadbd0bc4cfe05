package tsp_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tspdeep/tsp"
)

func TestValidatePermutation(t *testing.T) {
	require.NoError(t, tsp.ValidatePermutation([]int{2, 0, 1}, 3))
	require.NoError(t, tsp.ValidatePermutation(nil, 0))
	require.ErrorIs(t, tsp.ValidatePermutation([]int{0, 1}, 3), tsp.ErrDimensionMismatch)
	require.ErrorIs(t, tsp.ValidatePermutation([]int{0, 1, 1}, 3), tsp.ErrDimensionMismatch)
	require.ErrorIs(t, tsp.ValidatePermutation([]int{0, 1, 3}, 3), tsp.ErrDimensionMismatch)
	require.ErrorIs(t, tsp.ValidatePermutation([]int{0, -1, 2}, 3), tsp.ErrDimensionMismatch)
}

func TestTourLength(t *testing.T) {
	o := matrixOracle(t, [][]int64{
		{0, 1, 4, 2},
		{1, 0, 3, 5},
		{4, 3, 0, 6},
		{2, 5, 6, 0},
	})
	require.Equal(t, int64(1+3+6+2), tsp.TourLength(o, []int{0, 1, 2, 3}))
	require.Equal(t, int64(4+3+5+2), tsp.TourLength(o, []int{0, 2, 1, 3}))
	require.Equal(t, int64(0), tsp.TourLength(o, []int{3}))
}

func TestCanonicalizeInPlace(t *testing.T) {
	for _, tc := range []struct {
		in, want []int
	}{
		{[]int{2, 3, 0, 1}, []int{0, 1, 2, 3}},
		{[]int{3, 2, 1, 0}, []int{0, 1, 2, 3}},
		{[]int{1, 0, 4, 3, 2}, []int{0, 1, 2, 3, 4}},
		{[]int{4, 2, 0, 3, 1}, []int{0, 2, 4, 1, 3}},
		{[]int{1, 0}, []int{0, 1}},
		{[]int{0}, []int{0}},
	} {
		got := append([]int(nil), tc.in...)
		tsp.CanonicalizeInPlace(got)
		require.Equal(t, tc.want, got, "input %v", tc.in)
	}
}

func TestDeriveSeed(t *testing.T) {
	var (
		seen = make(map[int64]bool)
		i    uint64
	)
	for i = 0; i < 64; i++ {
		s := tsp.DeriveSeed(1, i)
		require.False(t, seen[s], "stream %d collides", i)
		seen[s] = true
		require.Equal(t, s, tsp.DeriveSeed(1, i))
	}
	require.NotEqual(t, tsp.DeriveSeed(1, 0), tsp.DeriveSeed(2, 0))
}

func TestNewRand_ZeroSeedIsDefault(t *testing.T) {
	a, b := tsp.NewRand(0), tsp.NewRand(1)
	var i int
	for i = 0; i < 8; i++ {
		require.Equal(t, a.Int63(), b.Int63())
	}
}
