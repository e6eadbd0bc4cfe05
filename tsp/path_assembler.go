// Package tsp - incremental assembly of a cycle-free spanning path.
//
// PathAssembler accepts edges one at a time and keeps the accepted set a
// forest of simple paths with maximum degree 2. Cycle rejection needs no
// union-find: every path fragment is fully described by its two ends, so for
// each end node we store the opposite end of its fragment. An edge (a,b)
// closes a cycle iff b is the opposite end of a.
//
// Bookkeeping per node (flat arrays, O(n) total):
//   - deg:   0, 1 or 2.
//   - adj:   two neighbor slots (−1 when empty).
//   - far:   for an end node (deg ≤ 1), the opposite end of its fragment;
//     an isolated node is its own opposite end. Stale for interior nodes.
//
// Complexity: TryAdd O(1); OpenEnd amortized O(1) over a whole run;
// NextAugmentationCandidate O(n) worst case per call.
package tsp

// PathAssembler is owned by a single construction run; not safe for concurrent use.
type PathAssembler struct {
	n      int
	edges  int
	deg    []uint8
	adj    []int32 // 2 slots per node
	far    []int32
	cursor int // lowest node that may still have deg < 2
}

// NewPathAssembler returns an empty assembler over n isolated nodes.
//
// Complexity: O(n).
func NewPathAssembler(n int) *PathAssembler {
	p := &PathAssembler{
		n:   n,
		deg: make([]uint8, n),
		adj: make([]int32, 2*n),
		far: make([]int32, n),
	}
	p.Reset()

	return p
}

// Reset returns the assembler to n isolated nodes without reallocating.
//
// Complexity: O(n).
func (p *PathAssembler) Reset() {
	var i int
	for i = 0; i < p.n; i++ {
		p.deg[i] = 0
		p.adj[2*i] = -1
		p.adj[2*i+1] = -1
		p.far[i] = int32(i)
	}
	p.edges = 0
	p.cursor = 0
}

// Edges returns the number of accepted edges.
func (p *PathAssembler) Edges() int { return p.edges }

// Degree returns the current degree of node u.
func (p *PathAssembler) Degree(u int) int { return int(p.deg[u]) }

// Complete reports whether n−1 edges have been accepted (one spanning path).
func (p *PathAssembler) Complete() bool { return p.n <= 1 || p.edges == p.n-1 }

// feasible reports whether edge (a,b) may be accepted.
func (p *PathAssembler) feasible(a, b int) bool {
	return a != b &&
		p.deg[a] < 2 && p.deg[b] < 2 &&
		int(p.far[a]) != b
}

// TryAdd accepts edge (a,b) iff neither endpoint has degree 2, the edge does
// not close a cycle, and fewer than n−1 edges are held.
//
// Complexity: O(1).
func (p *PathAssembler) TryAdd(a, b int) bool {
	if p.Complete() || !p.feasible(a, b) {
		return false
	}

	// Merge the fragments: their outer ends become each other's far end.
	var (
		fa = p.far[a]
		fb = p.far[b]
	)
	p.far[fa] = fb
	p.far[fb] = fa

	p.adj[2*a+int(p.deg[a])] = int32(b)
	p.adj[2*b+int(p.deg[b])] = int32(a)
	p.deg[a]++
	p.deg[b]++
	p.edges++

	return true
}

// OpenEnd returns a node of degree ≤ 1: the smallest such id. With n == 1 it is
// node 0; once the path is complete it is the lower-id end of the path.
// Returns −1 only for n == 0.
//
// Complexity: amortized O(1); degrees never decrease, so the cursor only advances.
func (p *PathAssembler) OpenEnd() int {
	for p.cursor < p.n && p.deg[p.cursor] == 2 {
		p.cursor++
	}
	if p.cursor == p.n {
		return -1
	}

	return p.cursor
}

// NextAugmentationCandidate returns the smallest node id greater than previous
// that could be joined to end without breaking the path-forest invariant.
// Pass previous = −1 to start the enumeration. ok is false when none remain.
//
// Complexity: O(n) worst case.
func (p *PathAssembler) NextAugmentationCandidate(end, previous int) (c int, ok bool) {
	if end < 0 || end >= p.n || p.deg[end] == 2 {
		return -1, false
	}
	for c = previous + 1; c < p.n; c++ {
		if p.feasible(end, c) {
			return c, true
		}
	}

	return -1, false
}

// Ends returns the two terminals of the completed path (equal for n == 1).
// It panics if the path is not complete, which indicates a logic error in the caller.
//
// Complexity: O(n).
func (p *PathAssembler) Ends() (int, int) {
	if !p.Complete() || p.n == 0 {
		panic("tsp: invariant: Ends on incomplete path")
	}
	var a = p.OpenEnd()

	return a, int(p.far[a])
}

// AppendPath appends the nodes of the completed path, walking from its first end.
//
// Complexity: O(n).
func (p *PathAssembler) AppendPath(dst []int) []int {
	if p.n == 0 {
		return dst
	}
	var (
		a, _ = p.Ends()
		prev = int32(-1)
		cur  = int32(a)
		next int32
		i    int
	)
	for i = 0; i < p.n; i++ {
		dst = append(dst, int(cur))
		next = p.adj[2*cur]
		if next == prev {
			next = p.adj[2*cur+1]
		}
		prev, cur = cur, next
	}

	return dst
}
