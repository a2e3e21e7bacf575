// Package fixed implements the fixed-point plumbing shared by the CIC
// datapaths: register width derivation, modular arithmetic at an arbitrary
// bit width, and the rounding/saturation output stage.
package fixed

import (
	"errors"
	"fmt"
	"math/bits"
)

// ErrInvalidWidth indicates a parameter outside its domain or an output
// wider than the full-precision register.
var ErrInvalidWidth = errors.New("invalid width parameters")

// Widths holds the parameters a filter was built with and the register
// widths derived from them.
type Widths struct {
	Stages int // cascade depth (N)
	Factor int // rate change factor (R)
	Delay  int // comb differential delay (M)

	In  int // input sample width in bits
	Out int // output sample width in bits

	// Growth is the worst-case bit growth STAGES*ceil(log2(R*M)).
	Growth int

	// Full is the internal register width In+Growth.
	Full int
}

// Calculate derives the register widths for a CIC filter and checks every
// parameter against its domain.
func Calculate(stages, factor, delay, in, out int) (Widths, error) {
	switch {
	case stages < minStages:
		return Widths{}, fmt.Errorf("%w: stages must be at least %d, got %d", ErrInvalidWidth, minStages, stages)
	case factor < minFactor:
		return Widths{}, fmt.Errorf("%w: rate factor must be at least %d, got %d", ErrInvalidWidth, minFactor, factor)
	case delay != 1 && delay != maxDelay:
		return Widths{}, fmt.Errorf("%w: differential delay must be 1 or %d, got %d", ErrInvalidWidth, maxDelay, delay)
	case in < minInWidth || in > MaxPortWidth:
		return Widths{}, fmt.Errorf("%w: input width must be %d-%d bits, got %d", ErrInvalidWidth, minInWidth, MaxPortWidth, in)
	case out < minOutWidth || out > MaxPortWidth:
		return Widths{}, fmt.Errorf("%w: output width must be %d-%d bits, got %d", ErrInvalidWidth, minOutWidth, MaxPortWidth, out)
	}

	growth := stages * ceilLog2(factor*delay)
	full := in + growth
	if out > full {
		return Widths{}, fmt.Errorf("%w: output width %d exceeds full precision width %d", ErrInvalidWidth, out, full)
	}

	return Widths{
		Stages: stages,
		Factor: factor,
		Delay:  delay,
		In:     in,
		Out:    out,
		Growth: growth,
		Full:   full,
	}, nil
}

// Native reports whether the full-precision registers fit an int64.
func (w Widths) Native() bool {
	return w.Full <= nativeBits
}

// Discard returns the number of low bits dropped by the output stage.
func (w Widths) Discard() int {
	return w.Full - w.Out
}

// ceilLog2 returns ceil(log2(x)) for x >= 1.
func ceilLog2(x int) int {
	return bits.Len(uint(x - 1))
}
