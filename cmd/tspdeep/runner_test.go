package main

import (
	"bytes"
	"context"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tspdeep/metrics"
	"github.com/katalvlaran/tspdeep/oracle"
	"github.com/katalvlaran/tspdeep/tsp"
	"github.com/katalvlaran/tspdeep/tsplib"
)

func circleDistance(t *testing.T, n int) oracle.Distance {
	t.Helper()
	var (
		xs = make([]float64, n)
		ys = make([]float64, n)
		i  int
	)
	for i = 0; i < n; i++ {
		th := 2 * math.Pi * float64(i*7%n) / float64(n)
		xs[i], ys[i] = 1000*math.Cos(th), 1000*math.Sin(th)
	}
	d, err := oracle.NewPoints(oracle.Euclidean2D, xs, ys)
	require.NoError(t, err)

	return d
}

func TestRunner_RunAll(t *testing.T) {
	const n = 50
	dir := t.TempDir()
	cfg := validConfig()
	cfg.Runs = 4
	cfg.Workers = 2
	cfg.OutputDir = dir

	var buf bytes.Buffer
	d := circleDistance(t, n)
	r := &runner{
		cfg:       cfg,
		name:      "circle50",
		dist:      d,
		collector: metrics.NewCollector(prometheus.NewRegistry()),
		logger:    slog.New(slog.NewTextHandler(&buf, nil)),
	}

	results, err := r.runAll(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 4)

	seeds := make(map[int64]bool)
	for i, res := range results {
		require.Equal(t, i, res.Run)
		require.Equal(t, tsp.DeriveSeed(cfg.Seed, uint64(i)), res.Seed)
		require.False(t, seeds[res.Seed])
		seeds[res.Seed] = true
		require.LessOrEqual(t, res.Length, res.InitialLength)
		require.Equal(t, int64(res.Improvements+1), res.Registrations)

		// The written tour parses back to the reported length.
		require.Equal(t, filepath.Join(dir, "circle50."+strconv.Itoa(i)+".tour"), res.TourPath)
		f, err := os.Open(res.TourPath)
		require.NoError(t, err)
		perm, err := tsplib.ParseTour(f)
		require.NoError(t, f.Close())
		require.NoError(t, err)
		require.NoError(t, tsp.ValidatePermutation(perm, n))

		var length int64
		for k := range perm {
			length += d.Dist(perm[k], perm[(k+1)%n])
		}
		require.Equal(t, res.Length, length)
	}

	summarize(r.logger, r.name, results)
	require.Contains(t, buf.String(), "msg=summary")
}

func TestRunner_Deterministic(t *testing.T) {
	cfg := validConfig()
	cfg.Runs = 3
	cfg.Workers = 3
	d := circleDistance(t, 40)
	mk := func() []RunResult {
		r := &runner{cfg: cfg, name: "c40", dist: d, logger: slog.New(slog.DiscardHandler)}
		res, err := r.runAll(context.Background())
		require.NoError(t, err)
		return res
	}
	a, b := mk(), mk()
	for i := range a {
		require.Equal(t, a[i].Length, b[i].Length)
		require.Equal(t, a[i].Improvements, b[i].Improvements)
	}
}

func TestRunner_CancelledContext(t *testing.T) {
	cfg := validConfig()
	cfg.Runs = 2
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &runner{cfg: cfg, name: "c30", dist: circleDistance(t, 30), logger: slog.New(slog.DiscardHandler)}
	results, err := r.runAll(ctx)
	require.NoError(t, err)
	for _, res := range results {
		require.True(t, res.Terminated)
		require.Equal(t, res.InitialLength, res.Length)
	}
}

func TestRunner_LowerBound(t *testing.T) {
	cfg := validConfig()
	cfg.Runs = 2
	cfg.LowerBound = true

	var buf bytes.Buffer
	r := &runner{
		cfg:       cfg,
		name:      "c40",
		dist:      circleDistance(t, 40),
		collector: metrics.NewCollector(prometheus.NewRegistry()),
		logger:    slog.New(slog.NewTextHandler(&buf, nil)),
	}
	results, err := r.runAll(context.Background())
	require.NoError(t, err)

	best := bestLength(results)
	for _, res := range results {
		require.GreaterOrEqual(t, res.Length, best)
	}
	lb, err := r.lowerBound(context.Background(), best)
	require.NoError(t, err)
	require.Positive(t, lb.Value)
	require.LessOrEqual(t, lb.Value, best)
	require.Contains(t, buf.String(), "msg=\"lower bound\"")
}
