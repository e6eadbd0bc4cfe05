package tsp_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tspdeep/tsp"
)

func TestGreedy_ConstructorErrors(t *testing.T) {
	_, err := tsp.NewGreedyConstructor(-1, 3, tsp.AugmentBest)
	require.ErrorIs(t, err, tsp.ErrDimensionMismatch)
	_, err = tsp.NewGreedyConstructor(10, -1, tsp.AugmentBest)
	require.ErrorIs(t, err, tsp.ErrInvalidNeighbors)
	_, err = tsp.NewGreedyConstructor(10, 3, tsp.AugmentationPolicy(9))
	require.ErrorIs(t, err, tsp.ErrUnknownAugmentation)

	g, err := tsp.NewGreedyConstructor(10, 3, tsp.AugmentBest)
	require.NoError(t, err)
	_, err = g.Construct(pointsOracle(t, rippledCircle(11)))
	require.ErrorIs(t, err, tsp.ErrDimensionMismatch)
	_, err = g.Construct(nil)
	require.ErrorIs(t, err, tsp.ErrNilOracle)
}

func TestGreedy_Colinear(t *testing.T) {
	// Any Hamiltonian cycle through colinear points is at least twice the span,
	// and greedy attains it.
	pts := colinear(8, 10)
	o := pointsOracle(t, pts)
	tour, err := tsp.Greedy(o, 0, tsp.AugmentBest)
	require.NoError(t, err)
	requireTour(t, euclid(t, pts), tour, 8)
	require.Equal(t, int64(140), tour.Length)
}

func TestGreedy_PoliciesAndShelfSizes(t *testing.T) {
	const n = 120
	pts := randomPoints(n, 3)
	d := euclid(t, pts)

	for _, tc := range []struct {
		name   string
		k      int
		policy tsp.AugmentationPolicy
	}{
		{"full shelf", 0, tsp.AugmentBest},
		{"k=1 best", 1, tsp.AugmentBest},
		{"k=1 first", 1, tsp.AugmentFirstFeasible},
		{"k=3 best", 3, tsp.AugmentBest},
		{"k=3 first", 3, tsp.AugmentFirstFeasible},
		{"k=10 best", 10, tsp.AugmentBest},
	} {
		t.Run(tc.name, func(t *testing.T) {
			o := newOracle(t, d)
			tour, err := tsp.Greedy(o, tc.k, tc.policy)
			require.NoError(t, err)
			requireTour(t, d, tour, n)

			// The constructed tour is registered exactly once.
			require.Equal(t, int64(1), o.Registrations())
			best, length, ok := o.Best()
			require.True(t, ok)
			require.Equal(t, tour.Length, length)
			require.Equal(t, tour.Perm, best)
		})
	}
}

func TestGreedy_FullShelfEqualsOversizedShelf(t *testing.T) {
	d := euclid(t, randomPoints(40, 5))
	a, err := tsp.Greedy(newOracle(t, d), 0, tsp.AugmentBest)
	require.NoError(t, err)
	b, err := tsp.Greedy(newOracle(t, d), 500, tsp.AugmentBest)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestGreedy_ReuseIsDeterministic(t *testing.T) {
	d := euclid(t, randomPoints(64, 9))
	g, err := tsp.NewGreedyConstructor(64, 4, tsp.AugmentBest)
	require.NoError(t, err)

	first, err := g.Construct(newOracle(t, d))
	require.NoError(t, err)
	Repeat(t, 3, func(t *testing.T) {
		again, err := g.Construct(newOracle(t, d))
		require.NoError(t, err)
		require.Equal(t, first, again)
	})
}

func TestGreedy_TinyInstances(t *testing.T) {
	for n := 0; n <= 3; n++ {
		pts := rippledCircle(n)
		o := pointsOracle(t, pts)
		tour, err := tsp.Greedy(o, 0, tsp.AugmentBest)
		require.NoError(t, err)
		requireTour(t, euclid(t, pts), tour, n)
		if n < 2 {
			require.Equal(t, int64(0), o.Registrations())
		} else {
			require.Equal(t, int64(1), o.Registrations())
		}
	}
}
