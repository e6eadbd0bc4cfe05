// Package tsp provides the tour-construction and local-search engine of
// tspdeep for the symmetric Travelling Salesman Problem.
//
// It is built from small, single-owner components over flat int32/int64
// arenas, so that instances with tens of thousands of nodes fit in O(n·k)
// memory:
//
//   - CandidateTable - the k nearest neighbors of every node.
//
//   - EdgeShelf - per-node bounded max-heaps of the k lightest incident edges.
//
//   - PathAssembler - accepts edges while keeping a degree-≤2, cycle-free
//     path forest.
//
//   - GreedyConstructor - priority-edge construction (EdgeShelf + PathAssembler
//     + augmentation), closing the spanning path into a tour.
//
//   - TourState - adjacency with tentative Connect/Disconnect, exact undo and Commit.
//
//   - DeepeningSearch - iterative-deepening Lin–Kernighan style search.
//
//   - OneTreeLowerBound - Held–Karp 1-tree bound for judging tour quality.
//
//   - Complexity: O(n²) distance evaluations for candidates and construction.
//
//   - Memory:     O(n·k).
//
// All distances are int64 and supplied by an Oracle, which also owns the
// random stream, the cooperative termination check and the bookkeeping of
// registered tours. Everything in this package is single-threaded; run
// independent searches with independent Oracle/CandidateTable/TourState sets.
//
// Use Solve for the whole pipeline:
//
//	res, err := tsp.Solve(o, tsp.DefaultOptions())
package tsp
