// Package tsp - validation of Options and effective parameter derivation.
//
// This file contains small helpers that:
//  1. Validate Options eagerly (depth bounds, probability, candidate count).
//  2. Derive the effective values for a concrete node count n (clamping to
//     what an instance of that size admits).
//
// Design principles:
//   - Deterministic, side-effect free functions.
//   - Invalid configuration is rejected, never silently repaired; only the
//     documented n-dependent clamps are applied.
package tsp

import "math"

// Validate checks internal consistency of Options without reference to an instance.
//
// Complexity: O(1).
func (o Options) Validate() error {
	if o.Candidates == 0 || o.Candidates < AllCandidates {
		return ErrInvalidCandidates
	}
	// Depth bounds: 1 ≤ StartDepth ≤ MaxDepth ≤ MaxSearchDepth.
	if o.StartDepth < 1 || o.MaxDepth < o.StartDepth || o.MaxDepth > MaxSearchDepth {
		return ErrInvalidDepth
	}
	if math.IsNaN(o.DepthIncreaseProb) || o.DepthIncreaseProb < 0 || o.DepthIncreaseProb > 1 {
		return ErrInvalidProbability
	}
	if o.GreedyNeighbors < 0 {
		return ErrInvalidNeighbors
	}
	switch o.Augmentation {
	case AugmentBest, AugmentFirstFeasible:
		// ok
	default:
		return ErrUnknownAugmentation
	}

	return nil
}

// effectiveCandidates maps the configured candidate count onto [1, n-1].
//
// Complexity: O(1).
func effectiveCandidates(k, n int) int {
	if n <= 1 {
		return 0
	}
	if k == AllCandidates || k >= n-1 {
		return n - 1
	}

	return k
}

// effectiveDepths clamps the configured depth bounds to [1, n-2].
// For n < 3 both results are 1; the search does not run on such instances.
//
// Complexity: O(1).
func effectiveDepths(startDepth, maxDepth, n int) (int, int) {
	var limit = n - 2
	if limit < 1 {
		limit = 1
	}
	if startDepth > limit {
		startDepth = limit
	}
	if startDepth < 1 {
		startDepth = 1
	}
	if maxDepth > limit {
		maxDepth = limit
	}
	if maxDepth < startDepth {
		maxDepth = startDepth
	}

	return startDepth, maxDepth
}
