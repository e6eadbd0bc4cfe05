// Package tsp - Held–Karp 1-tree lower bound.
//
// For multipliers π the reduced cost of an edge is c'(i,j) = d(i,j) + π_i + π_j.
// A minimum 1-tree T(π) is a spanning tree over V\{root} plus the two
// cheapest root edges. Its dual value
//
//	L(π) = c'(T(π)) − 2·Σ π_i
//
// never exceeds the optimal tour length, for every π. The multipliers follow
// the subgradient s_i = deg_T(i) − 2 so that the tree is pushed towards a
// cycle; when every degree is 2 the tree is an optimal tour and the bound
// is exact.
//
// Distances are read from the Oracle on demand; nothing of size n² is kept.
//
// Complexity:
//   - O(MaxIter · n²) distance evaluations.
//   - O(n) memory.
//
// Determinism: no randomness, ties are broken by node id.
package tsp

import (
	"errors"
	"math"
)

// ErrRootOutOfRange is returned when OneTreeConfig.Root is not a node of the instance.
var ErrRootOutOfRange = errors.New("tsp: 1-tree root out of range")

// OneTreeConfig controls the subgradient loop of OneTreeLowerBound.
type OneTreeConfig struct {
	// MaxIter is the number of subgradient iterations; values below 1 mean 1.
	MaxIter int

	// Alpha in (0, 2) scales the step; anything else falls back to 0.9.
	Alpha float64

	// UpperBound is the length of a known tour. When positive the step is
	// α·(UB−L)/‖s‖², otherwise the diminishing schedule α/(1+iter) is used.
	UpperBound int64

	// Root is the distinguished 1-tree vertex.
	Root int
}

// DefaultOneTreeConfig returns 32 iterations with α=0.9, root 0 and no upper bound.
func DefaultOneTreeConfig() OneTreeConfig {
	return OneTreeConfig{MaxIter: 32, Alpha: 0.9}
}

// LowerBound is the outcome of OneTreeLowerBound.
type LowerBound struct {
	// Value is the best bound found, rounded up to the next integer since
	// every tour length is integral.
	Value int64

	// Iterations is the number of 1-trees built.
	Iterations int

	// Exact reports that a 1-tree with all degrees equal to 2 was found,
	// so Value is the optimal tour length.
	Exact bool

	// Terminated reports that the oracle stopped the loop early. Value is
	// still a valid bound.
	Terminated bool
}

// OneTreeLowerBound computes the Held–Karp bound of the instance behind o.
// It polls o.ShouldTerminate once per Prim step and never registers tours.
func OneTreeLowerBound(o Oracle, cfg OneTreeConfig) (LowerBound, error) {
	if o == nil {
		return LowerBound{}, ErrNilOracle
	}
	n := o.N()
	if cfg.Root < 0 || (n > 0 && cfg.Root >= n) {
		return LowerBound{}, ErrRootOutOfRange
	}
	if n < 3 {
		// Only one cycle exists.
		var v int64
		if n == 2 {
			v = 2 * o.Dist(0, 1)
		}
		return LowerBound{Value: v, Exact: true}, nil
	}
	if cfg.MaxIter < 1 {
		cfg.MaxIter = 1
	}
	if !(cfg.Alpha > 0 && cfg.Alpha < 2) {
		cfg.Alpha = 0.9
	}

	e := oneTree{
		o:      o,
		n:      n,
		root:   cfg.Root,
		pi:     make([]float64, n),
		deg:    make([]int, n),
		inTree: make([]bool, n),
		parent: make([]int, n),
		key:    make([]float64, n),
	}

	var (
		res    LowerBound
		best   = math.Inf(-1)
		ub     = float64(cfg.UpperBound)
		bound  float64
		sumPi  float64
		norm2  float64
		step   float64
		diff   int
		i, itr int
	)
	for itr = 0; itr < cfg.MaxIter; itr++ {
		cost, ok := e.build()
		if !ok {
			res.Terminated = true
			break
		}
		res.Iterations++

		sumPi = 0
		for i = 0; i < n; i++ {
			sumPi += e.pi[i]
		}
		bound = cost - 2*sumPi
		if bound > best {
			best = bound
		}

		norm2 = 0
		for i = 0; i < n; i++ {
			diff = e.deg[i] - 2
			norm2 += float64(diff * diff)
		}
		if norm2 == 0 {
			res.Exact = true
			break
		}

		if cfg.UpperBound > 0 {
			step = ub - bound
			if step < 0 {
				step = 0
			}
			step = cfg.Alpha * step / norm2
		} else {
			step = cfg.Alpha / (1 + float64(itr))
		}
		if step == 0 {
			break
		}
		for i = 0; i < n; i++ {
			e.pi[i] += step * float64(e.deg[i]-2)
		}
	}

	if res.Iterations == 0 {
		return res, nil
	}
	res.Value = ceilBound(best)
	if res.Exact {
		// All multipliers cancel on a cycle; the float sum is only noise.
		res.Value = int64(math.Round(best))
	}

	return res, nil
}

// ceilBound rounds a float bound up to an integer while tolerating the
// rounding noise of long sums.
func ceilBound(x float64) int64 {
	if x <= 0 {
		return 0
	}
	eps := 1e-9*x + 1e-6

	return int64(math.Ceil(x - eps))
}

// oneTree holds the working arrays reused by every iteration.
type oneTree struct {
	o    Oracle
	n    int
	root int

	pi     []float64
	deg    []int
	inTree []bool
	parent []int
	key    []float64
}

func (e *oneTree) reduced(u, v int) float64 {
	return float64(e.o.Dist(u, v)) + e.pi[u] + e.pi[v]
}

// build constructs a minimum 1-tree on reduced costs, fills deg and returns
// the reduced cost of its edges. Prim runs over V\{root} in O(n²).
// ok is false when the oracle asked to stop before the tree was complete.
func (e *oneTree) build() (total float64, ok bool) {
	var (
		inf        = math.Inf(1)
		v, u, best int
		c          float64
		k          int
	)
	for v = 0; v < e.n; v++ {
		e.deg[v] = 0
		e.inTree[v] = false
		e.parent[v] = -1
		e.key[v] = inf
	}
	start := 0
	if start == e.root {
		start = 1
	}
	e.key[start] = 0

	for k = 0; k < e.n-1; k++ {
		if e.o.ShouldTerminate() {
			return 0, false
		}
		best = -1
		for v = 0; v < e.n; v++ {
			if v == e.root || e.inTree[v] {
				continue
			}
			if best == -1 || e.key[v] < e.key[best] {
				best = v
			}
		}
		e.inTree[best] = true
		if u = e.parent[best]; u != -1 {
			total += e.key[best]
			e.deg[best]++
			e.deg[u]++
		}
		for v = 0; v < e.n; v++ {
			if v == e.root || e.inTree[v] {
				continue
			}
			if c = e.reduced(best, v); c < e.key[v] {
				e.key[v] = c
				e.parent[v] = best
			}
		}
	}

	// Two cheapest root edges.
	var (
		m1, m2     = inf, inf
		m1To, m2To = -1, -1
	)
	for v = 0; v < e.n; v++ {
		if v == e.root {
			continue
		}
		c = e.reduced(e.root, v)
		switch {
		case c < m1:
			m2, m2To = m1, m1To
			m1, m1To = c, v
		case c < m2:
			m2, m2To = c, v
		}
	}
	total += m1 + m2
	e.deg[e.root] += 2
	e.deg[m1To]++
	e.deg[m2To]++

	return total, true
}
