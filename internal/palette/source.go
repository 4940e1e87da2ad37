package palette

import "math/rand/v2"

// Source supplies uniform random integers. *rand.Rand from math/rand/v2
// satisfies it, which lets tests pass a seeded generator.
type Source interface {
	// IntN returns a uniform integer in [0, n). It panics if n <= 0.
	IntN(n int) int
}

// globalSource draws from the process-wide math/rand/v2 generator,
// which is safe for concurrent use.
type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// DefaultSource returns the process-wide random source.
func DefaultSource() Source { return globalSource{} }

// NewSeededSource returns a deterministic source for the given seeds.
func NewSeededSource(seed1, seed2 uint64) Source {
	return rand.New(rand.NewPCG(seed1, seed2))
}

// Between returns a uniform integer in [lo, hi], inclusive on both ends.
func Between(src Source, lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + src.IntN(hi-lo+1)
}

// Pick returns a uniform random index into a slice of length n.
func Pick(src Source, n int) int {
	return src.IntN(n)
}

// Shuffle permutes n elements in place with a Fisher-Yates pass.
func Shuffle(src Source, n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		swap(i, j)
	}
}
