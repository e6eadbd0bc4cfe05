// Package tsp - iterative-deepening Lin–Kernighan style local search.
//
// A probe starts at node s and builds an alternating chain of removed and
// added edges:
//
//	remove (a,b) → add (b,c) → remove (c,d) → add (d,e) → … → add (x,s)
//
// where every added partner c is taken from b's candidate list. The running
// gain is Σ removed − Σ added; a branch is pruned as soon as it is ≤ 0, and
// because candidate lists are sorted by distance the remaining candidates of
// that branch are pruned with it. At depth == bound the only partner tried is
// s itself (the close step). A closed chain is accepted iff the edited
// structure is still a single cycle (TourState.ToPath); the move is then
// committed and the probe returns immediately.
//
// The depth bound starts at StartDepth. A pass runs one probe from every node
// in random order. After a pass without improvement the bound grows by one
// with probability DepthIncreaseProb (up to MaxDepth); otherwise, or when the
// bound is already at MaxDepth, the search returns. Every improvement resets
// the bound to StartDepth.
//
// All gain arithmetic is int64, the same precision as Oracle.Dist.
//
// Complexity: one probe costs O(Σ_{d≤bound} (3·m)^d) edits in the worst case;
// pruning keeps the practical cost far lower. Memory O(n + bound).
package tsp

import (
	"log/slog"
	"math/rand"
)

// DeepeningSearch holds the mutable state of one local-search run.
// Not safe for concurrent use; parallel drivers must give every worker its
// own DeepeningSearch (and TourState).
type DeepeningSearch struct {
	o     Oracle
	cand  *CandidateTable
	state *TourState
	rng   *rand.Rand
	obs   Observer
	log   *slog.Logger

	startDepth int
	maxDepth   int
	prob       float64

	bound  int   // currentMaxDepth
	start  int   // start node of the running probe
	length int64 // committed tour length
	order  []int // start-node order of the running pass
	buf    []int // ToPath output of the last accepted close

	improvements int
	passes       int
	terminated   bool
}

// NewDeepeningSearch validates opts and binds a search to o and cand.
// Only the search fields of opts (StartDepth, MaxDepth, DepthIncreaseProb,
// Observer, Logger) are used; cand must have been built for o.
//
// Errors: ErrNilOracle, ErrDimensionMismatch, and the Options sentinels.
//
// Complexity: O(n).
func NewDeepeningSearch(o Oracle, cand *CandidateTable, opts Options) (*DeepeningSearch, error) {
	if o == nil {
		return nil, ErrNilOracle
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	var n = o.N()
	if cand == nil || cand.N() != n {
		return nil, ErrDimensionMismatch
	}

	d := &DeepeningSearch{
		o:     o,
		cand:  cand,
		state: NewTourState(n),
		rng:   o.Rand(),
		obs:   opts.Observer,
		log:   opts.Logger,
		prob:  opts.DepthIncreaseProb,
		order: make([]int, n),
		buf:   make([]int, n),
	}
	d.startDepth, d.maxDepth = effectiveDepths(opts.StartDepth, opts.MaxDepth, n)
	if d.obs == nil {
		d.obs = NoopObserver{}
	}
	if d.log == nil {
		d.log = slog.New(slog.DiscardHandler)
	}

	return d, nil
}

// Improvements returns the number of committed moves of the last Run.
func (d *DeepeningSearch) Improvements() int { return d.improvements }

// Passes returns the number of passes of the last Run.
func (d *DeepeningSearch) Passes() int { return d.passes }

// Bound returns the depth bound at the end of the last Run.
func (d *DeepeningSearch) Bound() int { return d.bound }

// Terminated reports whether the last Run stopped on Oracle.ShouldTerminate.
func (d *DeepeningSearch) Terminated() bool { return d.terminated }

// Run improves t until a local optimum under the deepening policy is reached
// or the oracle requests termination. t.Length must be the length of t.Perm.
// Every improved tour is registered with the oracle. The returned tour is
// never longer than t.
//
// Errors: ErrDimensionMismatch when t.Perm is not a permutation of the instance.
// Panics when the committed structure stops being a single cycle.
func (d *DeepeningSearch) Run(t Tour) (Tour, error) {
	if err := d.state.FromPath(t.Perm); err != nil {
		return Tour{}, err
	}
	d.length = t.Length
	d.improvements = 0
	d.passes = 0
	d.terminated = false
	d.bound = d.startDepth

	var n = d.state.N()
	if n < 4 {
		// Every tour of three or fewer nodes has the same length.
		return Tour{Perm: append([]int(nil), t.Perm...), Length: t.Length}, nil
	}

	var (
		improved bool
		gain     int64
		ok       bool
		s        int
	)
	for !d.terminated {
		if d.o.ShouldTerminate() {
			d.terminated = true
			break
		}
		d.passes++
		improved = false
		identityInto(d.order)
		shuffleIntsInPlace(d.order, d.rng)

		for _, s = range d.order {
			if d.o.ShouldTerminate() {
				d.terminated = true
				break
			}
			d.start = s
			if gain, ok = d.probe(0, s, 0); ok {
				d.length -= gain
				d.improvements++
				d.o.Register(d.buf, d.length)
				d.obs.Improved(d.length, gain, d.bound)
				d.bound = d.startDepth
				improved = true
				continue
			}
			if d.state.Pending() != 0 {
				panic("tsp: invariant: failed probe left pending edits")
			}
		}
		if d.terminated || improved {
			continue
		}
		if d.bound < d.maxDepth && d.rng.Float64() < d.prob {
			d.bound++
			d.obs.DepthIncreased(d.bound)
			d.log.Debug("search depth increased", "depth", d.bound, "length", d.length)
			continue
		}
		break
	}

	if !d.state.ToPath(d.buf) {
		panic("tsp: invariant: committed tour is not a single cycle")
	}
	d.obs.SearchDone(d.length, d.passes)

	return Tour{Perm: append([]int(nil), d.buf...), Length: d.length}, nil
}

// probe extends the exchange chain from node a at the given depth with
// accumulated gain. On success the move is committed, d.buf holds the new
// tour and the total gain is returned. On failure every edit made by this
// call has been undone.
func (d *DeepeningSearch) probe(depth, a int, gain int64) (int64, bool) {
	var (
		st      = d.state
		closing = depth == d.bound
		row     []int32
		cnt     = 1
		slot    int
		b, c    int
		idx     int
		bgain   int64
		cgain   int64
		total   int64
		ok      bool
	)
	if depth > MaxSearchDepth {
		panic("tsp: invariant: search depth exceeds MaxSearchDepth")
	}

	for slot = 0; slot < slotsPerNode; slot++ {
		b = st.Neighbor(a, slot)
		if b < 0 || st.pendAdd[b] != 0 || st.pendDel[b] != 0 {
			continue
		}
		bgain = gain + d.o.Dist(a, b)
		if !closing {
			row = d.cand.Row(b)
			cnt = len(row)
		}

		for idx = 0; idx < cnt; idx++ {
			if d.o.ShouldTerminate() {
				d.terminated = true
				return 0, false
			}
			if closing {
				c = d.start
			} else {
				c = int(row[idx])
			}
			if c == a || c == b || st.pendAdd[c] != 0 || st.Adjacent(b, c) {
				continue
			}
			cgain = bgain - d.o.Dist(b, c)
			if cgain <= 0 {
				// Candidates are sorted by distance from b; the rest cannot do better.
				break
			}

			if !st.Disconnect(a, b) {
				panic("tsp: invariant: cannot remove a current tour edge")
			}
			if !st.Connect(b, c) {
				st.UndoDisconnect(a, b)
				continue
			}

			if c == d.start {
				if st.ToPath(d.buf) {
					st.Commit()
					return cgain, true
				}
			} else if depth < d.bound && st.pendDel[c] == 0 {
				if total, ok = d.probe(depth+1, c, cgain); ok {
					st.Commit()
					return total, true
				}
				if d.terminated {
					st.UndoConnect(b, c)
					st.UndoDisconnect(a, b)
					return 0, false
				}
			}

			st.UndoConnect(b, c)
			st.UndoDisconnect(a, b)
		}
	}

	return 0, false
}
