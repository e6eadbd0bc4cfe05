// Package tsp - priority-edge (greedy matching) tour construction.
//
// The constructor considers edges in ascending weight and keeps every edge
// that neither raises a degree above 2 nor closes a premature cycle, exactly
// like Kruskal but with a degree cap. To avoid materializing all n(n−1)/2
// edges, only the k lightest edges per node survive in an EdgeShelf.
//
// Steps:
//  1. Offer every unordered pair to the shelf (O(n²) Dist calls, O(n·k) memory).
//  2. Drain the shelf in ascending order into the PathAssembler.
//  3. If fewer than n−1 edges were accepted (the shelf under-covers the
//     instance, which is expected), repeatedly extend OpenEnd with the
//     nearest (AugmentBest) or first (AugmentFirstFeasible) feasible partner.
//  4. Close the spanning path into a tour and register it with the Oracle.
//
// Complexity: O(n²) Dist calls dominate; augmentation adds O(n) per missing edge.
package tsp

// GreedyConstructor owns the shelf and assembler of one instance size so that
// repeated runs reuse their memory. Not safe for concurrent use.
type GreedyConstructor struct {
	n      int
	policy AugmentationPolicy
	shelf  *EdgeShelf
	path   *PathAssembler
}

// NewGreedyConstructor prepares a constructor for n nodes with shelf
// capacity k (0 ⇒ n−1).
//
// Errors: ErrDimensionMismatch (n < 0), ErrInvalidNeighbors (k < 0),
// ErrUnknownAugmentation.
//
// Complexity: O(n·k) memory.
func NewGreedyConstructor(n, k int, policy AugmentationPolicy) (*GreedyConstructor, error) {
	if n < 0 {
		return nil, ErrDimensionMismatch
	}
	if k < 0 {
		return nil, ErrInvalidNeighbors
	}
	if policy != AugmentBest && policy != AugmentFirstFeasible {
		return nil, ErrUnknownAugmentation
	}
	g := &GreedyConstructor{n: n, policy: policy}
	if n < 2 {
		return g, nil
	}
	if k == 0 || k > n-1 {
		k = n - 1
	}

	var err error
	if g.shelf, err = NewEdgeShelf(n, k); err != nil {
		return nil, err
	}
	g.path = NewPathAssembler(n)

	return g, nil
}

// Construct builds a tour for o, registers it with o and returns it.
// o.N() must equal the size the constructor was prepared for.
//
// Panics on structural invariant violations (unsorted drain, impossible
// augmentation); these indicate a bug, never bad input.
//
// Complexity: see package comment of this file.
func (g *GreedyConstructor) Construct(o Oracle) (Tour, error) {
	if o == nil {
		return Tour{}, ErrNilOracle
	}
	var n = o.N()
	if n != g.n {
		return Tour{}, ErrDimensionMismatch
	}
	if n < 2 {
		perm := make([]int, n)
		identityInto(perm)
		return Tour{Perm: perm}, nil
	}

	g.shelf.Clear()
	g.path.Reset()

	// Stage 1: offer every unordered pair.
	var i, j int
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			g.shelf.Offer(i, j, o.Dist(i, j))
		}
	}

	// Stage 2: ascending drain into the assembler.
	var (
		length int64
		prev   Edge
		e      Edge
		idx    int
		edges  = g.shelf.Drain()
	)
	for idx, e = range edges {
		if idx > 0 && CompareEdges(prev, e) >= 0 {
			panic("tsp: invariant: drained edges out of order")
		}
		prev = e
		if g.path.TryAdd(int(e.A), int(e.B)) {
			length += e.W
			if g.path.Complete() {
				break
			}
		}
	}

	// Stage 3: augmentation for nodes the shelf left uncovered.
	for !g.path.Complete() {
		length += g.augment(o)
	}

	// Stage 4: close the path.
	var a, b = g.path.Ends()
	length += o.Dist(a, b)
	perm := g.path.AppendPath(make([]int, 0, n))
	o.Register(perm, length)

	return Tour{Perm: perm, Length: length}, nil
}

// augment adds one edge at OpenEnd and returns its weight.
func (g *GreedyConstructor) augment(o Oracle) int64 {
	var (
		end   = g.path.OpenEnd()
		best  = -1
		bestD int64
		c     int
		d     int64
		ok    bool
	)
	for c, ok = g.path.NextAugmentationCandidate(end, -1); ok; c, ok = g.path.NextAugmentationCandidate(end, c) {
		d = o.Dist(end, c)
		if best < 0 || d < bestD {
			best, bestD = c, d
		}
		if g.policy == AugmentFirstFeasible {
			break
		}
	}
	if best < 0 || !g.path.TryAdd(end, best) {
		panic("tsp: invariant: no feasible augmentation for open path end")
	}

	return bestD
}

// Greedy is a one-shot helper: NewGreedyConstructor followed by Construct.
func Greedy(o Oracle, k int, policy AugmentationPolicy) (Tour, error) {
	if o == nil {
		return Tour{}, ErrNilOracle
	}
	g, err := NewGreedyConstructor(o.N(), k, policy)
	if err != nil {
		return Tour{}, err
	}

	return g.Construct(o)
}
