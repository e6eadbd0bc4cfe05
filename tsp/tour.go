// Package tsp - tour utilities shared by the constructor, the search and tests.
//
// Provided helpers:
//   - ValidatePermutation: verify a permutation over {0..n-1}.
//   - TourLength: independent recomputation of a cyclic tour length.
//   - CanonicalizeInPlace: rotate to start at node 0 and fix the direction.
//
// Design:
//   - No logging, no panics on user input - only sentinel errors from types.go.
//   - O(n) time for every helper.
package tsp

// ValidatePermutation checks that perm is a permutation of {0..n-1} of length n.
//
// Complexity: O(n) time, O(n) space.
func ValidatePermutation(perm []int, n int) error {
	if len(perm) != n {
		return ErrDimensionMismatch
	}
	seen := make([]bool, n)

	var (
		i int
		v int
	)
	for i = 0; i < n; i++ {
		v = perm[i]
		// Out-of-range or duplicate elements both break the bijection.
		if v < 0 || v >= n || seen[v] {
			return ErrDimensionMismatch
		}
		seen[v] = true
	}

	return nil
}

// TourLength sums Dist over consecutive nodes of perm including the closing edge.
// Tours with fewer than two nodes have length 0.
//
// Complexity: O(n) distance evaluations.
func TourLength(o Oracle, perm []int) int64 {
	var n = len(perm)
	if n < 2 {
		return 0
	}

	var (
		sum int64
		i   int
	)
	for i = 1; i < n; i++ {
		sum += o.Dist(perm[i-1], perm[i])
	}
	sum += o.Dist(perm[n-1], perm[0])

	return sum
}

// CanonicalizeInPlace rotates perm so that it starts at node 0 and orients it
// so that perm[1] < perm[n-1]. Two permutations describe the same cycle iff
// their canonical forms are equal. perm must already be a valid permutation.
//
// Complexity: O(n) time, O(1) extra space.
func CanonicalizeInPlace(perm []int) {
	var n = len(perm)
	if n < 3 {
		if n == 2 && perm[0] != 0 {
			perm[0], perm[1] = perm[1], perm[0]
		}
		return
	}

	var pivot, i int
	for i = 0; i < n; i++ {
		if perm[i] == 0 {
			pivot = i
			break
		}
	}
	// Rotate left by pivot via three reversals.
	reverseInts(perm[:pivot])
	reverseInts(perm[pivot:])
	reverseInts(perm)

	if perm[1] > perm[n-1] {
		reverseInts(perm[1:])
	}
}

// reverseInts reverses a in place.
func reverseInts(a []int) {
	var i, j int
	for i, j = 0, len(a)-1; i < j; i, j = i+1, j-1 {
		a[i], a[j] = a[j], a[i]
	}
}
