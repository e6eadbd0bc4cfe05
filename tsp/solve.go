// Package tsp - single-run pipeline: candidates → greedy → deepening search.
//
// Solve is the canonical entry point of one optimization run:
//
//	Oracle → CandidateTable → GreedyConstructor → TourState.FromPath
//	      → DeepeningSearch → TourState.ToPath → Oracle.Register
//
// Design principles:
//   - Deterministic: the only randomness is Oracle.Rand.
//   - Strict sentinels for configuration errors; panics only for broken
//     internal invariants.
//   - Logging only at run boundaries, never inside the search loops.
package tsp

import (
	"log/slog"
	"time"
)

// Solve runs one complete optimization on o with opts.
//
// Errors: ErrNilOracle and the Options sentinels (see Options.Validate).
//
// Complexity: O(n²) for candidates and construction plus the search cost.
func Solve(o Oracle, opts Options) (Result, error) {
	if o == nil {
		return Result{}, ErrNilOracle
	}
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}

	var (
		logger = opts.Logger
		obs    = opts.Observer
		n      = o.N()
		began  = time.Now()
	)
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if obs == nil {
		obs = NoopObserver{}
	}
	logger = logger.With("nodes", n)

	// Stage 1 - greedy construction.
	g, err := NewGreedyConstructor(n, opts.GreedyNeighbors, opts.Augmentation)
	if err != nil {
		return Result{}, err
	}
	tour, err := g.Construct(o)
	if err != nil {
		return Result{}, err
	}
	obs.ConstructionDone(tour.Length)
	logger.Info("greedy tour constructed",
		"length", tour.Length,
		"augmentation", opts.Augmentation.String(),
		"elapsed", time.Since(began),
	)

	res := Result{Tour: tour, InitialLength: tour.Length}
	if opts.SkipLocalSearch || n < 4 {
		return res, nil
	}

	// Stage 2 - candidate lists and deepening search.
	cand, err := BuildCandidateTable(o, opts.Candidates)
	if err != nil {
		return Result{}, err
	}
	opts.Logger, opts.Observer = logger, obs
	search, err := NewDeepeningSearch(o, cand, opts)
	if err != nil {
		return Result{}, err
	}
	if res.Tour, err = search.Run(tour); err != nil {
		return Result{}, err
	}
	res.Improvements = search.Improvements()
	res.Passes = search.Passes()
	res.FinalDepth = search.Bound()
	res.Terminated = search.Terminated()

	logger.Info("local search finished",
		"length", res.Length,
		"initial", res.InitialLength,
		"improvements", res.Improvements,
		"passes", res.Passes,
		"depth", res.FinalDepth,
		"terminated", res.Terminated,
		"elapsed", time.Since(began),
	)

	return res, nil
}
