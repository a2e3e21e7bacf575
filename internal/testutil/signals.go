package testutil

import (
	"math/rand/v2"
)

// Impulse returns n samples that are zero except for amp at index at.
func Impulse(n, at int, amp int64) []int64 {
	x := make([]int64, n)
	if at >= 0 && at < n {
		x[at] = amp
	}
	return x
}

// Constant returns n copies of v.
func Constant(n int, v int64) []int64 {
	x := make([]int64, n)
	for i := range x {
		x[i] = v
	}
	return x
}

// Ramp returns n samples counting up from start and wrapping to bits bits.
func Ramp(n int, start int64, bits int) []int64 {
	x := make([]int64, n)
	for i := range x {
		x[i] = signExtend(start+int64(i), bits)
	}
	return x
}

// RandomSamples returns n uniformly distributed signed samples of the given
// width, reproducible for a given seed.
func RandomSamples(seed uint64, n, bits int) []int64 {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	x := make([]int64, n)
	for i := range x {
		x[i] = signExtend(int64(rng.Uint64()), bits)
	}
	return x
}

// ReadyAlways is a downstream that is ready on every tick.
func ReadyAlways(int) bool { return true }

// ReadyEvery returns a downstream that is ready on one tick out of every n.
func ReadyEvery(n int) func(int) bool {
	return func(tick int) bool {
		return tick%n == n-1
	}
}

// ReadyRandom returns a downstream that is ready with probability p on
// each tick, reproducible for a given seed.
func ReadyRandom(seed uint64, p float64) func(int) bool {
	rng := rand.New(rand.NewPCG(seed, ^seed))
	return func(int) bool {
		return rng.Float64() < p
	}
}

func signExtend(v int64, bits int) int64 {
	s := uint(64 - bits)
	return (v << s) >> s
}
