// Package tsp_test provides lightweight testing helpers shared across *_test.go
// files in this package: instance generators, oracle builders and tour checks.
package tsp_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tspdeep/oracle"
	"github.com/katalvlaran/tspdeep/tsp"
)

// -----------------------------------------------------------------------------
// Constants - single source of truth for test knobs
// -----------------------------------------------------------------------------

const (
	// seedDet is a deterministic seed for every oracle built in tests.
	seedDet = int64(7)

	// scaleXY stretches unit-square points so that EUC_2D rounding keeps enough resolution.
	scaleXY = 1000.0
)

// -----------------------------------------------------------------------------
// Instance generators
// -----------------------------------------------------------------------------

// rippledCircle places n points on a slightly perturbed circle (no exact ties).
func rippledCircle(n int) [][2]float64 {
	var (
		pts = make([][2]float64, n)
		th  float64
		r   float64
		i   int
	)
	for i = 0; i < n; i++ {
		th = 2 * math.Pi * float64(i) / float64(n)
		r = scaleXY * (1.0 + 0.025*float64(i%3))
		pts[i] = [2]float64{r * math.Cos(th), r * math.Sin(th)}
	}

	return pts
}

// randomPoints draws n points uniformly from [0,scaleXY)² with a fixed stream.
func randomPoints(n int, seed int64) [][2]float64 {
	var (
		rng = tsp.NewRand(seed)
		pts = make([][2]float64, n)
		i   int
	)
	for i = range pts {
		pts[i] = [2]float64{rng.Float64() * scaleXY, rng.Float64() * scaleXY}
	}

	return pts
}

// colinear places n points on the x-axis with the given spacing.
func colinear(n int, step float64) [][2]float64 {
	var (
		pts = make([][2]float64, n)
		i   int
	)
	for i = range pts {
		pts[i] = [2]float64{float64(i) * step, 0}
	}

	return pts
}

// -----------------------------------------------------------------------------
// Oracle builders
// -----------------------------------------------------------------------------

// euclid builds an EUC_2D distance over pts.
func euclid(t testing.TB, pts [][2]float64) *oracle.Points {
	t.Helper()
	var (
		xs = make([]float64, len(pts))
		ys = make([]float64, len(pts))
		i  int
	)
	for i = range pts {
		xs[i], ys[i] = pts[i][0], pts[i][1]
	}
	d, err := oracle.NewPoints(oracle.Euclidean2D, xs, ys)
	require.NoError(t, err)

	return d
}

// newOracle wraps d into a seeded oracle with extra options.
func newOracle(t testing.TB, d oracle.Distance, opts ...oracle.Option) *oracle.Oracle {
	t.Helper()
	o, err := oracle.New(d, append([]oracle.Option{oracle.WithSeed(seedDet)}, opts...)...)
	require.NoError(t, err)

	return o
}

// pointsOracle is euclid followed by newOracle.
func pointsOracle(t testing.TB, pts [][2]float64, opts ...oracle.Option) *oracle.Oracle {
	t.Helper()

	return newOracle(t, euclid(t, pts), opts...)
}

// matrixOracle builds an oracle over an explicit symmetric matrix.
func matrixOracle(t testing.TB, rows [][]int64, opts ...oracle.Option) *oracle.Oracle {
	t.Helper()
	m, err := oracle.NewMatrix(rows)
	require.NoError(t, err)

	return newOracle(t, m, opts...)
}

// -----------------------------------------------------------------------------
// Assertions
// -----------------------------------------------------------------------------

// Repeat runs fn n times as named subtests to catch hidden nondeterminism.
func Repeat(t *testing.T, n int, fn func(t *testing.T)) {
	t.Helper()
	var i int
	for i = 0; i < n; i++ {
		t.Run("rep", fn)
	}
}

// requireTour checks that tour is a permutation of 0..n-1 whose stored length
// matches an independent recomputation over d.
func requireTour(t testing.TB, d oracle.Distance, tour tsp.Tour, n int) {
	t.Helper()
	require.NoError(t, tsp.ValidatePermutation(tour.Perm, n))
	require.Equal(t, cycleLength(d, tour.Perm), tour.Length, "stored length differs from recomputed length")
}

// cycleLength recomputes a cyclic tour length directly on the distance source,
// bypassing the oracle's bookkeeping.
func cycleLength(d oracle.Distance, perm []int) int64 {
	var (
		n   = len(perm)
		sum int64
		i   int
	)
	if n < 2 {
		return 0
	}
	for i = 0; i < n; i++ {
		sum += d.Dist(perm[i], perm[(i+1)%n])
	}

	return sum
}

// canonical returns a canonicalized copy of perm.
func canonical(perm []int) []int {
	cp := append([]int(nil), perm...)
	tsp.CanonicalizeInPlace(cp)

	return cp
}
