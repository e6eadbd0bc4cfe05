// Package oracle - the bookkeeping Oracle of one optimization run.
//
// Oracle wraps a Distance and adds what a benchmark run needs around the
// search engine: a seeded random stream, a budget (registered tours,
// wall-clock time, context cancellation, goal length), the best tour seen so
// far and a trace of improvements over time.
//
// Termination is sticky: once ShouldTerminate has returned true it keeps
// returning true. Wall-clock and context checks are sampled every 1024 calls
// so that polling from the innermost search loop stays cheap.
//
// An Oracle serves exactly one run and is not safe for concurrent use.
package oracle

import (
	"context"
	"math/rand"
	"time"

	"github.com/katalvlaran/tspdeep/tsp"
)

// clockCheckMask throttles wall-clock and context polling (every 1024 calls).
const clockCheckMask = 1023

// TracePoint records the moment a new best tour was registered.
type TracePoint struct {
	// Registration is the 1-based index of the Register call.
	Registration int64
	// Elapsed is the time since the oracle was created.
	Elapsed time.Duration
	// Length is the new best length.
	Length int64
}

// Option configures an Oracle.
type Option func(*Oracle)

// WithSeed sets the random seed (0 selects the package default seed).
func WithSeed(seed int64) Option {
	return func(o *Oracle) { o.seed = seed }
}

// WithMaxRegistrations stops the run after the given number of registered
// tours (objective evaluations). 0 means unlimited.
func WithMaxRegistrations(n int64) Option {
	return func(o *Oracle) { o.maxRegs = n }
}

// WithTimeLimit stops the run after d of wall-clock time. 0 means unlimited.
func WithTimeLimit(d time.Duration) Option {
	return func(o *Oracle) { o.timeLimit = d }
}

// WithContext stops the run when ctx is done.
func WithContext(ctx context.Context) Option {
	return func(o *Oracle) { o.ctx = ctx }
}

// WithGoal stops the run as soon as a tour of length ≤ goal is registered.
func WithGoal(goal int64) Option {
	return func(o *Oracle) { o.goal, o.hasGoal = goal, true }
}

// WithRegisterHook calls fn for every registered tour. perm must not be retained.
func WithRegisterHook(fn func(perm []int, length int64)) Option {
	return func(o *Oracle) { o.hook = fn }
}

// Oracle implements tsp.Oracle on top of a Distance.
type Oracle struct {
	dist Distance
	n    int
	seed int64
	rng  *rand.Rand
	ctx  context.Context
	hook func([]int, int64)

	maxRegs   int64
	timeLimit time.Duration
	deadline  time.Time
	goal      int64
	hasGoal   bool

	began    time.Time
	checks   uint64
	distCall int64
	stopped  bool

	registered int64
	best       []int
	bestLen    int64
	trace      []TracePoint
}

var _ tsp.Oracle = (*Oracle)(nil)

// New builds an Oracle for d.
//
// Errors: ErrNilDistance, ErrInvalidBudget.
//
// Complexity: O(1) (the best-tour buffer is allocated on first Register).
func New(d Distance, opts ...Option) (*Oracle, error) {
	if d == nil {
		return nil, ErrNilDistance
	}
	o := &Oracle{dist: d, n: d.N(), ctx: context.Background()}
	var opt Option
	for _, opt = range opts {
		opt(o)
	}
	if o.maxRegs < 0 || o.timeLimit < 0 {
		return nil, ErrInvalidBudget
	}
	if o.ctx == nil {
		o.ctx = context.Background()
	}
	o.rng = tsp.NewRand(o.seed)
	o.began = time.Now()
	if o.timeLimit > 0 {
		o.deadline = o.began.Add(o.timeLimit)
	}

	return o, nil
}

// N returns the node count.
func (o *Oracle) N() int { return o.n }

// Dist returns the distance between i and j and counts the call.
func (o *Oracle) Dist(i, j int) int64 {
	o.distCall++
	return o.dist.Dist(i, j)
}

// Rand returns the run's random stream.
func (o *Oracle) Rand() *rand.Rand { return o.rng }

// ShouldTerminate reports whether the budget is exhausted.
func (o *Oracle) ShouldTerminate() bool {
	if o.stopped {
		return true
	}
	if o.maxRegs > 0 && o.registered >= o.maxRegs {
		o.stopped = true
		return true
	}
	var c = o.checks
	o.checks++
	if c&clockCheckMask != 0 {
		return false
	}
	if o.ctx.Err() != nil || (!o.deadline.IsZero() && time.Now().After(o.deadline)) {
		o.stopped = true
	}

	return o.stopped
}

// Register records a complete tour. The tour is copied only when it improves
// on the best one so far.
func (o *Oracle) Register(perm []int, length int64) {
	o.registered++
	if o.best == nil || length < o.bestLen {
		o.best = append(o.best[:0], perm...)
		o.bestLen = length
		o.trace = append(o.trace, TracePoint{
			Registration: o.registered,
			Elapsed:      time.Since(o.began),
			Length:       length,
		})
	}
	if o.hasGoal && length <= o.goal {
		o.stopped = true
	}
	if o.hook != nil {
		o.hook(perm, length)
	}
}

// Best returns a copy of the best tour registered so far and its length.
// ok is false if nothing was registered.
func (o *Oracle) Best() (perm []int, length int64, ok bool) {
	if o.best == nil {
		return nil, 0, false
	}

	return append([]int(nil), o.best...), o.bestLen, true
}

// Registrations returns the number of Register calls.
func (o *Oracle) Registrations() int64 { return o.registered }

// DistanceCalls returns the number of Dist calls.
func (o *Oracle) DistanceCalls() int64 { return o.distCall }

// Elapsed returns the time since New.
func (o *Oracle) Elapsed() time.Duration { return time.Since(o.began) }

// Trace returns the improvement history; the slice must not be modified.
func (o *Oracle) Trace() []TracePoint { return o.trace }

// Stop forces termination.
func (o *Oracle) Stop() { o.stopped = true }
