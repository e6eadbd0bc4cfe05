// Package oracle: sentinel error set.
//
// Every message is prefixed with "oracle: ". Constructors return these
// sentinels directly; callers match them with errors.Is.
package oracle

import "errors"

var (
	// ErrNonSquare signals a distance matrix whose rows differ in length from its row count.
	ErrNonSquare = errors.New("oracle: matrix is not square")

	// ErrNonZeroDiagonal signals d(i,i) != 0.
	ErrNonZeroDiagonal = errors.New("oracle: diagonal not zero")

	// ErrNegativeWeight signals a negative distance.
	ErrNegativeWeight = errors.New("oracle: negative distance")

	// ErrAsymmetry signals d(i,j) != d(j,i); asymmetric instances are not supported.
	ErrAsymmetry = errors.New("oracle: matrix is not symmetric")

	// ErrCoordinates signals coordinate slices of different lengths.
	ErrCoordinates = errors.New("oracle: coordinate slices differ in length")

	// ErrUnknownMetric signals an unsupported coordinate metric.
	ErrUnknownMetric = errors.New("oracle: unknown metric")

	// ErrNilDistance signals a nil Distance passed to New.
	ErrNilDistance = errors.New("oracle: nil distance")

	// ErrInvalidBudget signals a negative evaluation or time budget.
	ErrInvalidBudget = errors.New("oracle: invalid budget")
)
