// Package tsp - collaborator contracts consumed by the engines.
//
// The engines never load instances, measure wall-clock time or keep
// statistics themselves. Everything of that kind lives behind Oracle, and
// progress notifications go to an optional Observer.
package tsp

import "math/rand"

// Oracle is the distance and bookkeeping collaborator of one optimization run.
//
// Contract:
//   - Dist is symmetric, non-negative and Dist(i,i)==0.
//   - ShouldTerminate is cheap enough to poll in the innermost search loop.
//   - Rand returns the same seeded stream on every call; it is never shared
//     between concurrently running searches.
//   - Register is purely observational; it must not retain perm.
type Oracle interface {
	// N returns the number of nodes.
	N() int

	// Dist returns the integer distance between nodes i and j.
	Dist(i, j int) int64

	// ShouldTerminate reports whether the run must stop as soon as possible.
	ShouldTerminate() bool

	// Rand returns the run's deterministic random stream.
	Rand() *rand.Rand

	// Register records a complete tour and its length.
	Register(perm []int, length int64)
}

// Observer receives progress events from Solve and the engines.
// Implementations must be fast; they are called on the search goroutine.
type Observer interface {
	// ConstructionDone is called once the greedy tour exists.
	ConstructionDone(length int64)

	// Improved is called after every committed improving move.
	Improved(length, gain int64, depth int)

	// DepthIncreased is called when the search bound grows after a fruitless pass.
	DepthIncreased(depth int)

	// SearchDone is called when the local search returns.
	SearchDone(length int64, passes int)
}

// NoopObserver discards all events.
type NoopObserver struct{}

func (NoopObserver) ConstructionDone(int64)     {}
func (NoopObserver) Improved(int64, int64, int) {}
func (NoopObserver) DepthIncreased(int)         {}
func (NoopObserver) SearchDone(int64, int)      {}

var _ Observer = NoopObserver{}
