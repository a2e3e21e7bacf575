package testutil

import (
	"math/big"
)

// Model describes a filter for the reference computations. It mirrors the
// build parameters without depending on the datapath packages.
type Model struct {
	Stages, Factor, Delay int
	In, Out, Full         int
	Round, Saturate       bool
}

// Response returns the impulse response of the cascade at the high rate:
// the coefficients of (1 + z^-1 + ... + z^-(RM-1))^N.
func Response(stages, factor, delay int) []*big.Int {
	span := factor * delay
	h := []*big.Int{big.NewInt(1)}
	for range stages {
		next := make([]*big.Int, len(h)+span-1)
		for i := range next {
			next[i] = new(big.Int)
		}
		for i, c := range h {
			for k := range span {
				next[i+k].Add(next[i+k], c)
			}
		}
		h = next
	}
	return h
}

// convolveAt returns sum_j x[j]*h[idx-j] over the valid range.
func convolveAt(h []*big.Int, x []int64, idx int) *big.Int {
	acc := new(big.Int)
	if idx < 0 {
		return acc
	}
	term := new(big.Int)
	for j := max(0, idx-len(h)+1); j <= idx && j < len(x); j++ {
		if x[j] == 0 {
			continue
		}
		term.Mul(big.NewInt(x[j]), h[idx-j])
		acc.Add(acc, term)
	}
	return acc
}

// Format reduces a full precision value the way the output stage does:
// add the rounding constant with a guard bit, take the top Out bits, then
// clamp or wrap.
func (m Model) Format(v *big.Int) int64 {
	shift := uint(m.Full - m.Out)
	x := new(big.Int).Set(v)
	if m.Round && shift > 0 {
		x.Add(x, new(big.Int).Lsh(big.NewInt(1), shift-1))
	}
	x.Rsh(x, shift)

	maxV := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(m.Out-1)), big.NewInt(1))
	minV := new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), uint(m.Out-1)))
	if m.Saturate {
		if x.Cmp(maxV) > 0 {
			return maxV.Int64()
		}
		if x.Cmp(minV) < 0 {
			return minV.Int64()
		}
		return x.Int64()
	}

	modulus := new(big.Int).Lsh(big.NewInt(1), uint(m.Out))
	x.Mod(x, modulus)
	if x.Cmp(maxV) > 0 {
		x.Sub(x, modulus)
	}
	return x.Int64()
}

// Decimate computes the decimator output for x by direct convolution. The
// integrator cascade adds N-1 samples of latency, so output g is the
// filtered signal at index gR+R-N.
func (m Model) Decimate(x []int64) []int64 {
	h := Response(m.Stages, m.Factor, m.Delay)
	groups := len(x) / m.Factor
	out := make([]int64, groups)
	for g := range groups {
		out[g] = m.Format(convolveAt(h, x, g*m.Factor+m.Factor-m.Stages))
	}
	return out
}

// Interpolate computes the interpolator output for x by zero-stuffing and
// direct convolution. Output n is the filtered signal at index n-(N-1).
func (m Model) Interpolate(x []int64) []int64 {
	h := Response(m.Stages, m.Factor, m.Delay)
	up := make([]int64, len(x)*m.Factor)
	for i, v := range x {
		up[i*m.Factor] = v
	}
	out := make([]int64, len(up))
	for n := range out {
		out[n] = m.Format(convolveAt(h, up, n-m.Stages+1))
	}
	return out
}
