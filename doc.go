// Package tspdeep is a heuristic solver for large symmetric traveling
// salesman instances: a bounded-memory greedy construction followed by an
// iterative-deepening Lin–Kernighan style local search.
//
// What is inside?
//
//	tsp/        - candidate lists, edge shelves, path assembly, greedy
//	              construction, the tentative-edit tour state and the
//	              deepening search; Solve runs the whole pipeline
//	oracle/     - distance sources (explicit matrices, TSPLIB coordinate
//	              metrics) and the per-run Oracle: seeded RNG, budgets,
//	              best tour and improvement trace
//	tsplib/     - TSPLIB 95 instance and tour files, plain or gzip
//	metrics/    - Prometheus export of search progress
//	cmd/tspdeep - benchmark driver: independent seeded runs in parallel,
//	              configured from TSPDEEP_* environment variables
//
// Why this design?
//
//   - Memory is O(n·k), never O(n²): edges are kept on per-node bounded
//     shelves and the search only looks at k nearest candidates.
//   - Every improving move is committed in O(edits) and registered with the
//     oracle, so an interrupted run still reports its best tour.
//   - Deterministic: one seed fixes the whole move sequence.
//
// Quick example:
//
//	d, _ := oracle.NewPoints(oracle.Euclidean2D, xs, ys)
//	o, _ := oracle.New(d, oracle.WithSeed(1), oracle.WithTimeLimit(time.Minute))
//	res, _ := tsp.Solve(o, tsp.DefaultOptions())
//	fmt.Println(res.Length)
//
//	go install github.com/katalvlaran/tspdeep/cmd/tspdeep@latest
//	TSPDEEP_INSTANCE=pr2392.tsp.gz TSPDEEP_RUNS=8 TSPDEEP_WORKERS=4 tspdeep
package tspdeep
