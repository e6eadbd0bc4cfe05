// Package tsp - per-node candidate (nearest-neighbor) lists.
//
// CandidateTable stores, for each node u, the k nodes nearest to u ordered by
// ascending distance, ties broken by ascending node id. It restricts the
// branching of the deepening search.
//
// Memory layout:
//   - A single flat arena ids[u*k : (u+1)*k] of int32 node ids; no per-node
//     slices and no per-pair allocation while building.
//   - One scratch row of k distances, reused for every node.
//
// Complexity:
//   - Build: O(n²) distance evaluations, O(log k) search + O(k) shift per
//     accepted insertion; most pairs are rejected in O(1) against the row maximum.
//   - Lookup: O(1).
package tsp

// CandidateTable is immutable once built; it may be shared read-only.
type CandidateTable struct {
	n   int
	k   int
	ids []int32
}

// BuildCandidateTable computes the k nearest neighbors of every node of o.
// k==AllCandidates (or any k ≥ n−1) keeps all n−1 other nodes, fully sorted.
//
// Errors: ErrNilOracle, ErrInvalidCandidates.
//
// Complexity: O(n²) Dist calls, O(n·k) memory.
func BuildCandidateTable(o Oracle, k int) (*CandidateTable, error) {
	if o == nil {
		return nil, ErrNilOracle
	}
	if k == 0 || k < AllCandidates {
		return nil, ErrInvalidCandidates
	}

	var n = o.N()
	k = effectiveCandidates(k, n)
	t := &CandidateTable{n: n, k: k, ids: make([]int32, n*k)}
	if k == 0 {
		return t, nil
	}

	var (
		dists = make([]int64, k) // scratch: distances of the current row
		row   []int32            // view into the arena for node u
		cnt   int                // filled entries of the current row
		u, v  int
		d     int64
		pos   int
	)
	for u = 0; u < n; u++ {
		row = t.ids[u*k : (u+1)*k]
		cnt = 0
		for v = 0; v < n; v++ {
			if v == u {
				continue
			}
			d = o.Dist(u, v)
			// v ascends, so an equal distance never beats a stored entry.
			if cnt == k && d >= dists[k-1] {
				continue
			}
			pos = upperBound(dists[:cnt], d)
			if cnt < k {
				cnt++
			}
			copy(dists[pos+1:cnt], dists[pos:cnt-1])
			copy(row[pos+1:cnt], row[pos:cnt-1])
			dists[pos] = d
			row[pos] = int32(v)
		}
	}

	return t, nil
}

// upperBound returns the first index i with a[i] > x, or len(a).
//
// Complexity: O(log len(a)).
func upperBound(a []int64, x int64) int {
	var lo, hi, mid = 0, len(a), 0
	for lo < hi {
		mid = int(uint(lo+hi) >> 1)
		if a[mid] > x {
			hi = mid
		} else {
			lo = mid + 1
		}
	}

	return lo
}

// N returns the node count the table was built for.
func (t *CandidateTable) N() int { return t.n }

// Size returns the effective candidate count k actually stored per node.
func (t *CandidateTable) Size() int { return t.k }

// Neighbor returns the rank-th nearest neighbor of node (rank is 0-based).
func (t *CandidateTable) Neighbor(node, rank int) int {
	return int(t.ids[node*t.k+rank])
}

// Row returns the candidate list of node in ascending-distance order.
// The slice aliases the table and must not be modified.
func (t *CandidateTable) Row(node int) []int32 {
	return t.ids[node*t.k : (node+1)*t.k]
}
