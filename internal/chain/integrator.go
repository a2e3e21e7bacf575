// Package chain implements the integrator and comb cascades of a CIC filter.
// Both chains are generic over the register type so the same code runs on
// int64 registers and on *big.Int registers for widths above 64 bits.
package chain

import (
	"github.com/tphakala/go-cic/internal/fixed"
)

// Integrator is a cascade of running accumulators.
//
// Stage 0 accumulates the feed. Every later stage accumulates the value its
// upstream stage held before the current activation, so each stage adds
// one activation of latency.
type Integrator[T any] struct {
	ops  *fixed.Ops[T]
	regs []T
}

// NewIntegrator creates a cascade of stages accumulators, all zero.
func NewIntegrator[T any](ops *fixed.Ops[T], stages int) *Integrator[T] {
	in := &Integrator[T]{
		ops:  ops,
		regs: make([]T, stages),
	}
	in.Reset()
	return in
}

// Activate clocks every stage once and returns the new value of the last
// stage.
func (in *Integrator[T]) Activate(feed T) T {
	// Walk from the last stage back so each stage still sees the value its
	// upstream neighbour had before this activation.
	for i := len(in.regs) - 1; i > 0; i-- {
		in.regs[i] = in.ops.Add(in.regs[i], in.regs[i-1])
	}
	in.regs[0] = in.ops.Add(in.regs[0], feed)

	return in.regs[len(in.regs)-1]
}

// Top returns the current value of the last stage.
func (in *Integrator[T]) Top() T {
	return in.regs[len(in.regs)-1]
}

// Registers returns a copy of the stage registers, stage 0 first.
func (in *Integrator[T]) Registers() []T {
	out := make([]T, len(in.regs))
	copy(out, in.regs)
	return out
}

// Stages returns the cascade depth.
func (in *Integrator[T]) Stages() int {
	return len(in.regs)
}

// Reset zeroes every stage.
func (in *Integrator[T]) Reset() {
	for i := range in.regs {
		in.regs[i] = in.ops.Zero()
	}
}
