package tsp

import (
	"errors"
	"log/slog"
)

// Sentinel errors. Every message is prefixed with "tsp: " so that wrapped
// errors stay greppable; callers match them with errors.Is.
var (
	// ErrNilOracle is returned when a nil Oracle is passed to an entry point.
	ErrNilOracle = errors.New("tsp: nil oracle")

	// ErrDimensionMismatch signals a permutation or buffer whose length or
	// contents do not match the node count of the instance.
	ErrDimensionMismatch = errors.New("tsp: dimension mismatch")

	// ErrInvalidCapacity is returned for a non-positive edge shelf capacity.
	ErrInvalidCapacity = errors.New("tsp: shelf capacity must be positive")

	// ErrInvalidCandidates is returned when the candidate count is neither
	// positive nor the AllCandidates sentinel.
	ErrInvalidCandidates = errors.New("tsp: candidate count must be positive or AllCandidates")

	// ErrInvalidDepth is returned when depth bounds are out of order or
	// outside [1, MaxSearchDepth].
	ErrInvalidDepth = errors.New("tsp: invalid search depth bounds")

	// ErrInvalidProbability is returned when the depth-increase probability
	// is outside [0, 1] or NaN.
	ErrInvalidProbability = errors.New("tsp: depth-increase probability must be in [0,1]")

	// ErrInvalidNeighbors is returned for a negative greedy neighbor-list size.
	ErrInvalidNeighbors = errors.New("tsp: greedy neighbor count must be >= 0")

	// ErrUnknownAugmentation is returned for an AugmentationPolicy outside the known set.
	ErrUnknownAugmentation = errors.New("tsp: unknown augmentation policy")
)

// AllCandidates is the sentinel candidate count meaning "every other node".
const AllCandidates = -1

// MaxSearchDepth bounds the recursion depth of the deepening search.
// Deeper configurations are rejected at validation time.
const MaxSearchDepth = 512

// AugmentationPolicy selects how the greedy constructor completes a path when
// the bounded edge shelf did not provide enough edges.
type AugmentationPolicy uint8

const (
	// AugmentBest scans every feasible partner of the open end and keeps the
	// nearest one (ties resolved by smaller node id).
	AugmentBest AugmentationPolicy = iota
	// AugmentFirstFeasible takes the first feasible partner in ascending id order.
	AugmentFirstFeasible
)

// String implements fmt.Stringer.
func (p AugmentationPolicy) String() string {
	switch p {
	case AugmentBest:
		return "best"
	case AugmentFirstFeasible:
		return "first"
	default:
		return "unknown"
	}
}

// ParseAugmentationPolicy maps "best" and "first" to their policies.
func ParseAugmentationPolicy(s string) (AugmentationPolicy, error) {
	switch s {
	case "best", "":
		return AugmentBest, nil
	case "first", "first-feasible":
		return AugmentFirstFeasible, nil
	default:
		return 0, ErrUnknownAugmentation
	}
}

// Options configures Solve and the engines it drives.
type Options struct {
	// Candidates is the per-node candidate list length m; AllCandidates keeps all n-1.
	Candidates int

	// StartDepth is the initial (and post-improvement) search depth d0.
	StartDepth int

	// MaxDepth is the deepest bound the search may grow to (dmax).
	MaxDepth int

	// DepthIncreaseProb is the probability p of deepening after a pass
	// without improvement; otherwise the search returns.
	DepthIncreaseProb float64

	// GreedyNeighbors is the edge shelf capacity k of the greedy constructor; 0 means n-1.
	GreedyNeighbors int

	// Augmentation selects the greedy completion policy.
	Augmentation AugmentationPolicy

	// SkipLocalSearch returns the greedy tour without running the deepening search.
	SkipLocalSearch bool

	// Logger receives run-boundary events. Nil discards them.
	Logger *slog.Logger

	// Observer receives progress callbacks. Nil means NoopObserver.
	Observer Observer
}

// DefaultOptions returns the configuration used by the benchmark driver
// when nothing is overridden.
func DefaultOptions() Options {
	return Options{
		Candidates:        8,
		StartDepth:        2,
		MaxDepth:          6,
		DepthIncreaseProb: 0.5,
		GreedyNeighbors:   10,
		Augmentation:      AugmentBest,
	}
}

// Tour is a Hamiltonian cycle given as an open permutation plus its length.
type Tour struct {
	// Perm lists every node exactly once; the closing edge Perm[n-1]→Perm[0] is implied.
	Perm []int

	// Length is the total integer length of the cycle.
	Length int64
}

// Result is the outcome of Solve.
type Result struct {
	Tour

	// InitialLength is the length of the greedy tour before local search.
	InitialLength int64

	// Improvements counts committed improving moves.
	Improvements int

	// Passes counts full passes over all start nodes.
	Passes int

	// FinalDepth is the search depth bound at exit.
	FinalDepth int

	// Terminated reports whether the oracle requested termination.
	Terminated bool
}
