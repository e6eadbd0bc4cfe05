package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/tspdeep/metrics"
	"github.com/katalvlaran/tspdeep/oracle"
	"github.com/katalvlaran/tspdeep/tsp"
	"github.com/katalvlaran/tspdeep/tsplib"
)

// RunResult summarizes one independent run.
type RunResult struct {
	Run           int
	Seed          int64
	Length        int64
	InitialLength int64
	Improvements  int
	Registrations int64
	Elapsed       time.Duration
	Terminated    bool
	TourPath      string
}

// runner executes independent seeded runs on one instance.
type runner struct {
	cfg       Config
	name      string
	dist      oracle.Distance
	collector *metrics.Collector
	logger    *slog.Logger
}

// runAll executes cfg.Runs runs with at most cfg.Workers in parallel.
// Every run owns its Oracle, candidate table and tour state; only the
// read-only Distance is shared.
func (r *runner) runAll(ctx context.Context) ([]RunResult, error) {
	var (
		results = make([]RunResult, r.cfg.Runs)
		i       int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)
	for i = 0; i < r.cfg.Runs; i++ {
		run := i
		g.Go(func() error {
			res, err := r.runOne(gctx, run)
			if err != nil {
				return fmt.Errorf("run %d: %w", run, err)
			}
			results[run] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// runOne performs a single optimization run.
func (r *runner) runOne(ctx context.Context, run int) (RunResult, error) {
	var seed = tsp.DeriveSeed(r.cfg.Seed, uint64(run))
	oopts := []oracle.Option{
		oracle.WithSeed(seed),
		oracle.WithContext(ctx),
		oracle.WithMaxRegistrations(r.cfg.MaxRegistrations),
		oracle.WithTimeLimit(r.cfg.TimeLimit),
	}
	if r.cfg.Goal >= 0 {
		oopts = append(oopts, oracle.WithGoal(r.cfg.Goal))
	}
	o, err := oracle.New(r.dist, oopts...)
	if err != nil {
		return RunResult{}, err
	}

	opts, err := r.cfg.SearchOptions()
	if err != nil {
		return RunResult{}, err
	}
	opts.Logger = r.logger.With("run", run, "seed", seed)
	if r.collector != nil {
		opts.Observer = r.collector.Run(r.name, run)
	}

	res, err := tsp.Solve(o, opts)
	if err != nil {
		return RunResult{}, err
	}

	out := RunResult{
		Run:           run,
		Seed:          seed,
		Length:        res.Length,
		InitialLength: res.InitialLength,
		Improvements:  res.Improvements,
		Registrations: o.Registrations(),
		Elapsed:       o.Elapsed(),
		Terminated:    res.Terminated,
	}
	if r.cfg.OutputDir != "" {
		if out.TourPath, err = r.writeTour(run, res.Tour); err != nil {
			return RunResult{}, err
		}
	}

	return out, nil
}

// writeTour stores the tour of a run as <name>.<run>.tour in OutputDir.
func (r *runner) writeTour(run int, t tsp.Tour) (string, error) {
	if err := os.MkdirAll(r.cfg.OutputDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(r.cfg.OutputDir, fmt.Sprintf("%s.%d.tour", r.name, run))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err = tsplib.WriteTour(f, filepath.Base(path), t.Length, t.Perm); err != nil {
		_ = f.Close()
		return "", err
	}

	return path, f.Close()
}

// lowerBound computes the Held-Karp bound of the instance, using ub (the best
// run length) to steer the step size, and logs the relative gap.
func (r *runner) lowerBound(ctx context.Context, ub int64) (tsp.LowerBound, error) {
	o, err := oracle.New(r.dist, oracle.WithContext(ctx), oracle.WithTimeLimit(r.cfg.TimeLimit))
	if err != nil {
		return tsp.LowerBound{}, err
	}
	cfg := tsp.DefaultOneTreeConfig()
	cfg.MaxIter = r.cfg.LowerBoundIters
	cfg.UpperBound = ub

	lb, err := tsp.OneTreeLowerBound(o, cfg)
	if err != nil {
		return tsp.LowerBound{}, err
	}
	if r.collector != nil {
		r.collector.SetLowerBound(r.name, lb.Value)
	}

	var gap float64
	if lb.Value > 0 {
		gap = float64(ub-lb.Value) / float64(lb.Value)
	}
	r.logger.Info("lower bound",
		"instance", r.name,
		"value", lb.Value,
		"best", ub,
		"gap", gap,
		"iterations", lb.Iterations,
		"exact", lb.Exact,
		"terminated", lb.Terminated,
		"elapsed", o.Elapsed(),
	)

	return lb, nil
}

// bestLength returns the shortest length over results.
func bestLength(results []RunResult) int64 {
	var best int64 = -1
	for _, res := range results {
		if best < 0 || res.Length < best {
			best = res.Length
		}
	}

	return best
}
