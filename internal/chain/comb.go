package chain

import (
	"fmt"

	"github.com/tphakala/go-cic/internal/fixed"
)

// Comb is a cascade of differencers y = x - x[-M]. Unlike the integrator,
// each stage feeds the next within the same activation.
type Comb[T any] struct {
	ops   *fixed.Ops[T]
	lines []DelayLine[T]
}

// NewComb creates a cascade of stages differencers with delay-deep history.
func NewComb[T any](ops *fixed.Ops[T], stages, delay int) (*Comb[T], error) {
	if delay < 1 || delay > maxDelay {
		return nil, fmt.Errorf("comb delay must be 1-%d, got %d", maxDelay, delay)
	}

	c := &Comb[T]{
		ops:   ops,
		lines: make([]DelayLine[T], stages),
	}
	for i := range c.lines {
		c.lines[i] = newDelayLine(delay, ops.Zero)
	}
	return c, nil
}

// Activate pushes feed through every stage and returns the last stage's
// difference.
func (c *Comb[T]) Activate(feed T) T {
	v := feed
	for i := range c.lines {
		old := c.lines[i].Push(v)
		v = c.ops.Sub(v, old)
	}
	return v
}

// Line returns the delay line of stage s.
func (c *Comb[T]) Line(s int) *DelayLine[T] {
	return &c.lines[s]
}

// Stages returns the cascade depth.
func (c *Comb[T]) Stages() int {
	return len(c.lines)
}

// Reset clears every delay line.
func (c *Comb[T]) Reset() {
	for i := range c.lines {
		c.lines[i].clear(c.ops.Zero)
	}
}
