// Package tsp - tentative-edit tour representation for edge-exchange search.
//
// TourState stores a tour as an undirected adjacency structure over flat
// arrays and lets the search remove and add edges speculatively:
//
//	Disconnect / Connect        apply a tentative edit and push it on the log,
//	UndoDisconnect / UndoConnect pop the log top and invert it exactly,
//	Commit                      finalizes every logged edit and clears the log.
//
// Every node owns three neighbor slots. After Commit exactly slots 0 and 1 are
// filled (degree 2, one n-cycle). During a probe a node may carry one pending
// deletion and one pending addition, so its transient degree is 1, 2 or 3 and
// the third slot is enough. Counters pendAdd/pendDel (0 or 1 each) let the
// search forbid re-engaging a node that is already part of the current chain.
//
// Invariants:
//   - Undo calls must mirror the log in LIFO order; a mismatch is a logic
//     error and panics.
//   - An undo restores the exact slot that was changed, so applying a
//     sequence of edits followed by its reverse undos leaves slots, counters
//     and the log bit-identical.
//
// Complexity: every edit, undo and query is O(1); ToPath and FromPath are O(n);
// Commit is O(edits).
package tsp

// slotsPerNode is the physical neighbor capacity per node (2 committed + 1 tentative).
const slotsPerNode = 3

// editKind discriminates log entries.
type editKind uint8

const (
	editDisconnect editKind = iota + 1
	editConnect
)

// edit is one applied tentative change: nodes a,b and the slots touched in each.
type edit struct {
	kind   editKind
	a, b   int32
	sa, sb uint8
}

// TourState is owned by one local-search run; not safe for concurrent use.
type TourState struct {
	n       int
	nb      []int32 // slotsPerNode entries per node, −1 when empty
	pendAdd []uint8
	pendDel []uint8
	log     []edit
}

// NewTourState allocates an empty state for n nodes; call FromPath before use.
//
// Complexity: O(n).
func NewTourState(n int) *TourState {
	return &TourState{
		n:       n,
		nb:      make([]int32, slotsPerNode*n),
		pendAdd: make([]uint8, n),
		pendDel: make([]uint8, n),
		log:     make([]edit, 0, 2*MaxSearchDepth+4),
	}
}

// N returns the node count.
func (s *TourState) N() int { return s.n }

// FromPath initializes the committed structure from a permutation and drops
// all pending edits.
//
// Errors: ErrDimensionMismatch if perm is not a permutation of 0..n−1.
//
// Complexity: O(n).
func (s *TourState) FromPath(perm []int) error {
	if err := ValidatePermutation(perm, s.n); err != nil {
		return err
	}
	var (
		i    int
		u    int
		prev int
		next int
	)
	for i = 0; i < s.n; i++ {
		u = perm[i]
		prev = perm[(i+s.n-1)%s.n]
		next = perm[(i+1)%s.n]
		s.nb[slotsPerNode*u] = int32(prev)
		s.nb[slotsPerNode*u+1] = int32(next)
		s.nb[slotsPerNode*u+2] = -1
		s.pendAdd[u] = 0
		s.pendDel[u] = 0
	}
	s.log = s.log[:0]

	return nil
}

// Neighbor returns the node in slot (0..2) of node, or −1 if the slot is empty.
// Committed neighbors always occupy slots 0 and 1.
func (s *TourState) Neighbor(node, slot int) int {
	return int(s.nb[slotsPerNode*node+slot])
}

// Adjacent reports whether a and b are currently adjacent (committed or tentative).
func (s *TourState) Adjacent(a, b int) bool {
	return s.slotOf(a, int32(b)) >= 0
}

// PendingAdditions returns the number of tentative connects on node (0 or 1).
func (s *TourState) PendingAdditions(node int) int { return int(s.pendAdd[node]) }

// PendingDeletions returns the number of tentative disconnects on node (0 or 1).
func (s *TourState) PendingDeletions(node int) int { return int(s.pendDel[node]) }

// Pending returns the number of edits not yet committed.
func (s *TourState) Pending() int { return len(s.log) }

// slotOf returns the slot of node a holding v, or −1.
func (s *TourState) slotOf(a int, v int32) int {
	var (
		base = slotsPerNode * a
		i    int
	)
	for i = 0; i < slotsPerNode; i++ {
		if s.nb[base+i] == v {
			return i
		}
	}

	return -1
}

// Disconnect tentatively removes edge {a,b}.
// It fails (returns false, no change) if a and b are not adjacent or either
// endpoint already carries a pending deletion.
func (s *TourState) Disconnect(a, b int) bool {
	if a == b || s.pendDel[a] != 0 || s.pendDel[b] != 0 {
		return false
	}
	var (
		sa = s.slotOf(a, int32(b))
		sb = s.slotOf(b, int32(a))
	)
	if sa < 0 || sb < 0 {
		return false
	}
	s.nb[slotsPerNode*a+sa] = -1
	s.nb[slotsPerNode*b+sb] = -1
	s.pendDel[a]++
	s.pendDel[b]++
	s.log = append(s.log, edit{kind: editDisconnect, a: int32(a), b: int32(b), sa: uint8(sa), sb: uint8(sb)})

	return true
}

// Connect tentatively adds edge {a,b}.
// It fails (returns false, no change) if the nodes are already adjacent,
// either endpoint already carries a pending addition, or has no free slot.
func (s *TourState) Connect(a, b int) bool {
	if a == b || s.pendAdd[a] != 0 || s.pendAdd[b] != 0 || s.Adjacent(a, b) {
		return false
	}
	var (
		sa = s.slotOf(a, -1)
		sb = s.slotOf(b, -1)
	)
	if sa < 0 || sb < 0 {
		return false
	}
	s.nb[slotsPerNode*a+sa] = int32(b)
	s.nb[slotsPerNode*b+sb] = int32(a)
	s.pendAdd[a]++
	s.pendAdd[b]++
	s.log = append(s.log, edit{kind: editConnect, a: int32(a), b: int32(b), sa: uint8(sa), sb: uint8(sb)})

	return true
}

// pop removes the log top after checking that it is (kind,a,b).
func (s *TourState) pop(kind editKind, a, b int) edit {
	var last = len(s.log) - 1
	if last < 0 {
		panic("tsp: invariant: undo with empty edit log")
	}
	e := s.log[last]
	if e.kind != kind || int(e.a) != a || int(e.b) != b {
		panic("tsp: invariant: undo does not match last edit")
	}
	s.log = s.log[:last]

	return e
}

// UndoConnect reverts the most recent edit, which must be Connect(a,b).
func (s *TourState) UndoConnect(a, b int) {
	e := s.pop(editConnect, a, b)
	s.nb[slotsPerNode*a+int(e.sa)] = -1
	s.nb[slotsPerNode*b+int(e.sb)] = -1
	s.pendAdd[a]--
	s.pendAdd[b]--
}

// UndoDisconnect reverts the most recent edit, which must be Disconnect(a,b).
func (s *TourState) UndoDisconnect(a, b int) {
	e := s.pop(editDisconnect, a, b)
	s.nb[slotsPerNode*a+int(e.sa)] = int32(b)
	s.nb[slotsPerNode*b+int(e.sb)] = int32(a)
	s.pendDel[a]--
	s.pendDel[b]--
}

// Commit finalizes all logged edits: pending counters of touched nodes are
// cleared and their neighbors compacted into slots 0 and 1.
// Panics if a touched node does not end up with degree 2.
//
// Complexity: O(edits).
func (s *TourState) Commit() {
	var e edit
	for _, e = range s.log {
		s.settle(int(e.a))
		s.settle(int(e.b))
	}
	s.log = s.log[:0]
}

// settle compacts node u and clears its counters.
func (s *TourState) settle(u int) {
	var (
		base = slotsPerNode * u
		w    = base
		i    int
	)
	s.pendAdd[u] = 0
	s.pendDel[u] = 0
	for i = base; i < base+slotsPerNode; i++ {
		if s.nb[i] >= 0 {
			s.nb[w] = s.nb[i]
			w++
		}
	}
	if w-base != 2 {
		panic("tsp: invariant: committed node without degree 2")
	}
	s.nb[base+2] = -1
}

// degree counts filled slots of node u.
func (s *TourState) degree(u int) int {
	var (
		base = slotsPerNode * u
		d    int
		i    int
	)
	for i = base; i < base+slotsPerNode; i++ {
		if s.nb[i] >= 0 {
			d++
		}
	}

	return d
}

// otherNeighbor returns a neighbor of u different from prev (the first filled slot if prev < 0).
func (s *TourState) otherNeighbor(u, prev int) int {
	var (
		base = slotsPerNode * u
		i    int
		v    int32
	)
	for i = base; i < base+slotsPerNode; i++ {
		v = s.nb[i]
		if v >= 0 && int(v) != prev {
			return int(v)
		}
	}

	return -1
}

// ToPath linearizes the current adjacency (including tentative edits) into
// dst[0:n], starting at node 0. It returns false, leaving dst partially
// written, when the structure is not a single simple n-cycle, e.g. when a
// closing exchange split the tour into two cycles.
//
// Complexity: O(n).
func (s *TourState) ToPath(dst []int) bool {
	if len(dst) < s.n {
		return false
	}
	if s.n < 3 {
		identityInto(dst[:s.n])
		return true
	}

	var (
		prev = -1
		cur  = 0
		next int
		i    int
	)
	for i = 0; i < s.n; i++ {
		if s.degree(cur) != 2 {
			return false
		}
		dst[i] = cur
		next = s.otherNeighbor(cur, prev)
		if next < 0 {
			return false
		}
		// Returning to 0 is only legal after exactly n steps.
		if next == 0 && i != s.n-1 {
			return false
		}
		prev, cur = cur, next
	}

	return cur == 0
}
