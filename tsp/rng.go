// Package tsp - RNG utilities shared by the engines and their drivers.
//
// Goals:
//   - Determinism: same seed ⇒ identical move sequence across runs.
//   - Encapsulation: a single RNG factory; no time-based sources hidden anywhere.
//   - Performance: O(1) helpers, O(n) shuffles, no allocations in hot paths.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Every run owns its own stream;
//     use DeriveSeed to give independent runs decorrelated seeds.
package tsp

import "math/rand"

// defaultRNGSeed is the fixed “zero” seed used when callers pass seed==0.
const defaultRNGSeed int64 = 1

// NewRand returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ defaultRNGSeed; otherwise the seed is used verbatim.
//
// Complexity: O(1).
func NewRand(seed int64) *rand.Rand {
	var s = seed
	if s == 0 {
		s = defaultRNGSeed
	}

	return rand.New(rand.NewSource(s))
}

// DeriveSeed mixes a parent seed and a stream identifier into a new 64-bit seed
// with a SplitMix64 finalizer, so that run i of a batch gets a seed that is
// uncorrelated with run i+1.
//
// Complexity: O(1).
func DeriveSeed(parent int64, stream uint64) int64 {
	var x uint64
	x = uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}

// shuffleIntsInPlace performs an in-place Fisher–Yates shuffle of a using rng.
// If rng==nil, the default deterministic stream is used.
//
// Complexity: O(n) time, O(1) extra space.
func shuffleIntsInPlace(a []int, rng *rand.Rand) {
	var n = len(a)
	if n <= 1 {
		return
	}

	var (
		r = rng
		i int
		j int
	)
	if r == nil {
		r = NewRand(0)
	}
	for i = n - 1; i > 0; i-- {
		j = r.Intn(i + 1)
		a[i], a[j] = a[j], a[i]
	}
}

// identityInto fills a with 0..len(a)-1.
//
// Complexity: O(n).
func identityInto(a []int) {
	var i int
	for i = range a {
		a[i] = i
	}
}
