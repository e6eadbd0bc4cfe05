// Package tsplib: sentinel error set.
//
// Parse errors are wrapped with the offending line number via
// fmt.Errorf("tsplib: line %d: %w", ...); callers match the sentinel with errors.Is.
package tsplib

import "errors"

var (
	// ErrSyntax signals a malformed header line or number.
	ErrSyntax = errors.New("tsplib: syntax error")

	// ErrUnsupportedType signals a TYPE other than TSP (e.g., ATSP, HCP, CVRP).
	ErrUnsupportedType = errors.New("tsplib: unsupported problem type")

	// ErrUnsupportedWeights signals an EDGE_WEIGHT_TYPE or EDGE_WEIGHT_FORMAT
	// this reader cannot evaluate.
	ErrUnsupportedWeights = errors.New("tsplib: unsupported edge weights")

	// ErrMissingDimension signals a section that appears before DIMENSION.
	ErrMissingDimension = errors.New("tsplib: missing or invalid DIMENSION")

	// ErrTruncated signals a section with fewer entries than DIMENSION requires.
	ErrTruncated = errors.New("tsplib: truncated section")

	// ErrNodeID signals a node id outside 1..DIMENSION or a repeated id.
	ErrNodeID = errors.New("tsplib: invalid node id")
)
