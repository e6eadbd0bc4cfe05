// Package tsp - bounded per-node edge shelves for greedy construction.
//
// EdgeShelf keeps, for every node, the k lightest incident edges offered so
// far. Offering all n(n−1)/2 pairs therefore costs O(n²) time but only O(n·k)
// memory, which is what makes greedy construction feasible for tens of
// thousands of nodes.
//
// Each shelf is a binary max-heap laid out in a flat arena: entry slot
// u*k+i holds the weight and the opposite endpoint of the i-th heap element
// of node u. The heap order within a shelf is (weight, opposite endpoint),
// which coincides with CompareEdges for edges sharing endpoint u.
//
// Complexity:
//   - Offer: O(1) rejection when full and not lighter than the maximum,
//     otherwise O(log k) per endpoint.
//   - Drain: O(m log m) for m held entries (sort + dedup).
//   - Clear: O(n).
package tsp

import "slices"

// EdgeShelf is owned by a single construction run; it is not safe for concurrent use.
type EdgeShelf struct {
	n     int
	k     int
	w     []int64 // heap weights, arena of n*k
	other []int32 // opposite endpoints, arena of n*k
	size  []int32 // filled entries per node
	out   []Edge  // Drain buffer reused across calls
}

// NewEdgeShelf allocates shelves of capacity k for n nodes.
// A capacity above n−1 is reduced to n−1 (a node has no more incident edges).
//
// Errors: ErrInvalidCapacity for k ≤ 0, ErrDimensionMismatch for n < 0.
//
// Complexity: O(n·k) memory.
func NewEdgeShelf(n, k int) (*EdgeShelf, error) {
	if k <= 0 {
		return nil, ErrInvalidCapacity
	}
	if n < 0 {
		return nil, ErrDimensionMismatch
	}
	if n > 1 && k > n-1 {
		k = n - 1
	}

	return &EdgeShelf{
		n:     n,
		k:     k,
		w:     make([]int64, n*k),
		other: make([]int32, n*k),
		size:  make([]int32, n),
	}, nil
}

// Capacity returns the per-node capacity k.
func (s *EdgeShelf) Capacity() int { return s.k }

// Len returns the number of entries held on node u's shelf.
func (s *EdgeShelf) Len(u int) int { return int(s.size[u]) }

// Offer presents edge (i,j) with weight d to both endpoints' shelves.
// Each shelf independently keeps only its k lightest entries.
func (s *EdgeShelf) Offer(i, j int, d int64) {
	s.push(i, int32(j), d)
	s.push(j, int32(i), d)
}

// heavier reports whether entry (wa,oa) orders after (wb,ob).
func heavier(wa int64, oa int32, wb int64, ob int32) bool {
	if wa != wb {
		return wa > wb
	}

	return oa > ob
}

// push inserts (o,d) into the shelf of u, replacing the heaviest entry when full.
func (s *EdgeShelf) push(u int, o int32, d int64) {
	var (
		base = u * s.k
		sz   = int(s.size[u])
	)
	if sz < s.k {
		s.w[base+sz] = d
		s.other[base+sz] = o
		s.size[u]++
		s.siftUp(base, sz)
		return
	}
	// Full: only a strictly lighter edge than the current maximum gets in.
	if !heavier(s.w[base], s.other[base], d, o) {
		return
	}
	s.w[base] = d
	s.other[base] = o
	s.siftDown(base, sz)
}

// siftUp restores the max-heap property upwards from local index i.
func (s *EdgeShelf) siftUp(base, i int) {
	var p int
	for i > 0 {
		p = (i - 1) / 2
		if !heavier(s.w[base+i], s.other[base+i], s.w[base+p], s.other[base+p]) {
			break
		}
		s.swap(base+i, base+p)
		i = p
	}
}

// siftDown restores the max-heap property downwards from the root.
func (s *EdgeShelf) siftDown(base, sz int) {
	var i, l, r, m int
	for {
		l = 2*i + 1
		if l >= sz {
			return
		}
		m = l
		r = l + 1
		if r < sz && heavier(s.w[base+r], s.other[base+r], s.w[base+l], s.other[base+l]) {
			m = r
		}
		if !heavier(s.w[base+m], s.other[base+m], s.w[base+i], s.other[base+i]) {
			return
		}
		s.swap(base+i, base+m)
		i = m
	}
}

func (s *EdgeShelf) swap(a, b int) {
	s.w[a], s.w[b] = s.w[b], s.w[a]
	s.other[a], s.other[b] = s.other[b], s.other[a]
}

// Held returns a fresh ascending copy of the edges on node u's shelf.
//
// Complexity: O(k log k).
func (s *EdgeShelf) Held(u int) []Edge {
	var (
		base = u * s.k
		sz   = int(s.size[u])
		out  = make([]Edge, sz)
		i    int
	)
	for i = 0; i < sz; i++ {
		out[i] = MakeEdge(u, int(s.other[base+i]), s.w[base+i])
	}
	slices.SortFunc(out, CompareEdges)

	return out
}

// Drain returns all held edges in ascending CompareEdges order; an edge kept
// by both of its endpoints appears once. The returned slice aliases an
// internal buffer that stays valid until the next Drain or Clear.
// Drain does not empty the shelves.
//
// Complexity: O(m log m) for m = Σ Len(u).
func (s *EdgeShelf) Drain() []Edge {
	var (
		out = s.out[:0]
		u   int
		i   int
		sz  int
	)
	for u = 0; u < s.n; u++ {
		sz = int(s.size[u])
		for i = 0; i < sz; i++ {
			out = append(out, MakeEdge(u, int(s.other[u*s.k+i]), s.w[u*s.k+i]))
		}
	}
	slices.SortFunc(out, CompareEdges)
	// Duplicates are adjacent after sorting since weight and endpoints agree.
	out = slices.CompactFunc(out, func(x, y Edge) bool { return x.A == y.A && x.B == y.B })
	s.out = out

	return out
}

// Clear empties every shelf without releasing memory.
//
// Complexity: O(n).
func (s *EdgeShelf) Clear() {
	clear(s.size)
	s.out = s.out[:0]
}
