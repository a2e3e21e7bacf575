package fixed

// Formatter reduces a full-precision register value to an output sample.
// Rounding is applied first, then the width reduction (saturating or
// wrapping).
type Formatter struct {
	Full     int
	Out      int
	Round    bool
	Saturate bool

	maxV int64
	minV int64
}

// NewFormatter returns the output stage for the given widths.
func NewFormatter(w Widths, round, saturate bool) Formatter {
	return Formatter{
		Full:     w.Full,
		Out:      w.Out,
		Round:    round,
		Saturate: saturate,
		maxV:     MaxSigned(w.Out),
		minV:     MinSigned(w.Out),
	}
}

// Rounding reports whether round-half-up is in effect. With no discarded
// bits there is nothing to round, and the rounding constant
// 1<<(Full-Out-1) would have a negative shift.
func (f Formatter) Rounding() bool {
	return f.Round && f.Full > f.Out
}

// Shift returns the number of discarded low bits.
func (f Formatter) Shift() int {
	return f.Full - f.Out
}

// MaxV returns the largest output sample.
func (f Formatter) MaxV() int64 { return f.maxV }

// MinV returns the smallest output sample.
func (f Formatter) MinV() int64 { return f.minV }

// Reduce produces the output sample from the top Out bits of a full
// precision value (hi) and its most significant discarded bit (half).
//
// Adding 1<<(Full-Out-1) before taking the top bits is the same as adding
// half to hi. The carry out of the top bit is kept: it clamps to MaxV when
// saturating and wraps to MinV otherwise.
func (f Formatter) Reduce(hi, half int64) int64 {
	if f.Rounding() && half != 0 {
		if hi >= f.maxV {
			if f.Saturate {
				return f.maxV
			}
			return SignExtend(hi+1, f.Out)
		}
		hi++
	}

	if f.Saturate {
		switch {
		case hi > f.maxV:
			return f.maxV
		case hi < f.minV:
			return f.minV
		}
	}

	return SignExtend(hi, f.Out)
}

// Format runs a register value of type T through the output stage.
func Format[T any](f Formatter, ops *Ops[T], v T) int64 {
	hi, half := ops.Top(v, f.Shift())
	return f.Reduce(hi, half)
}
