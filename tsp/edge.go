package tsp

import "cmp"

// Edge is an undirected weighted edge in canonical form (A < B).
type Edge struct {
	A, B int32
	W    int64
}

// MakeEdge builds the canonical edge {i,j} with weight w.
func MakeEdge(i, j int, w int64) Edge {
	if i > j {
		i, j = j, i
	}

	return Edge{A: int32(i), B: int32(j), W: w}
}

// CompareEdges orders edges by weight, then by A, then by B.
// It is the total order used by the shelf and the greedy constructor.
func CompareEdges(x, y Edge) int {
	if c := cmp.Compare(x.W, y.W); c != 0 {
		return c
	}
	if c := cmp.Compare(x.A, y.A); c != 0 {
		return c
	}

	return cmp.Compare(x.B, y.B)
}
