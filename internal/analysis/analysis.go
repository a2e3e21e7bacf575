// Package analysis computes the frequency-domain behavior of CIC filters:
// the equivalent FIR coefficients, the sampled and closed-form magnitude
// responses, passband droop and worst-case alias rejection.
//
// Frequencies are in cycles per sample. Functions taking a high-rate
// frequency say so; the droop and alias helpers take frequencies relative to
// the low (decimated) rate, which is how CIC passbands are usually quoted.
package analysis

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/tphakala/simd/c128"
	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
)

// ErrInvalidParams indicates filter parameters outside their domain.
var ErrInvalidParams = errors.New("invalid analysis parameters")

// Params describes the filter being analyzed.
type Params struct {
	Stages int // N
	Factor int // R
	Delay  int // M
}

// Validate checks the parameter domain.
func (p Params) Validate() error {
	if p.Stages < 1 || p.Factor < 1 || p.Delay < 1 {
		return fmt.Errorf("%w: stages, factor and delay must be positive, got N=%d R=%d M=%d",
			ErrInvalidParams, p.Stages, p.Factor, p.Delay)
	}
	return nil
}

// span returns R*M, the boxcar length of one stage.
func (p Params) span() int {
	return p.Factor * p.Delay
}

// DCGain returns (R*M)^N.
func (p Params) DCGain() float64 {
	return math.Pow(float64(p.span()), float64(p.Stages))
}

// Coefficients returns the impulse response of the cascade at the high
// rate: N boxcars of length R*M convolved together. The result has
// N*(R*M-1)+1 taps and sums to (R*M)^N.
func Coefficients(p Params) ([]float64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	box := make([]float64, p.span())
	for i := range box {
		box[i] = 1
	}

	h := []float64{1}
	for range p.Stages {
		// zero-pad so the valid part of the convolution is the full one
		padded := make([]float64, len(h)+2*(len(box)-1))
		copy(padded[len(box)-1:], h)

		next := make([]float64, len(h)+len(box)-1)
		f64.ConvolveValid(next, padded, box)
		h = next
	}

	return h, nil
}

// Normalize returns a copy of h scaled to unity DC gain.
func Normalize(h []float64) []float64 {
	out := make([]float64, len(h))
	sum := f64.Sum(h)
	if sum == 0 {
		copy(out, h)
		return out
	}
	f64.Scale(out, h, 1/sum)
	return out
}

// MagnitudeResponse returns |H| at n/2+1 evenly spaced high-rate
// frequencies from 0 to 0.5, computed by FFT of the zero-padded
// coefficients. n must be at least len(h).
func MagnitudeResponse(h []float64, n int) ([]float64, error) {
	if n < len(h) || n < 2 {
		return nil, fmt.Errorf("%w: FFT size %d shorter than %d taps", ErrInvalidParams, n, len(h))
	}

	seq := make([]float64, n)
	copy(seq, h)

	coeffs := fourier.NewFFT(n).Coefficients(nil, seq)
	return magnitudes(coeffs), nil
}

// CascadeResponse returns |H| on the same grid as MagnitudeResponse, but
// builds it as the N-th power of a single boxcar spectrum.
func CascadeResponse(p Params, n int) ([]float64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if n < p.Stages*(p.span()-1)+1 {
		return nil, fmt.Errorf("%w: FFT size %d too short for the cascade", ErrInvalidParams, n)
	}

	seq := make([]float64, n)
	for i := range p.span() {
		seq[i] = 1
	}

	box := fourier.NewFFT(n).Coefficients(nil, seq)
	acc := make([]complex128, len(box))
	copy(acc, box)
	tmp := make([]complex128, len(box))
	for range p.Stages - 1 {
		c128.Mul(tmp, acc, box)
		acc, tmp = tmp, acc
	}

	return magnitudes(acc), nil
}

func magnitudes(c []complex128) []float64 {
	out := make([]float64, len(c))
	for i, v := range c {
		out[i] = cmplx.Abs(v)
	}
	return out
}

// ClosedForm returns |H(f)| = |sin(pi*R*M*f) / sin(pi*f)|^N at high-rate
// frequency f.
func ClosedForm(p Params, f float64) float64 {
	den := math.Sin(math.Pi * f)
	if math.Abs(den) < zeroThreshold {
		// limit at multiples of the high rate
		return p.DCGain()
	}
	num := math.Sin(math.Pi * float64(p.span()) * f)
	return math.Pow(math.Abs(num/den), float64(p.Stages))
}

// DroopDB returns the attenuation relative to DC, in dB (non-positive), at
// frequency f relative to the low rate.
func DroopDB(p Params, f float64) float64 {
	return toDB(ClosedForm(p, f/float64(p.Factor)) / p.DCGain())
}

// AliasRejection returns the worst-case attenuation in dB (positive) of
// the bands that fold onto the passband [0, bandwidth] after decimation.
// bandwidth is relative to the low rate and must be in (0, 0.5].
func AliasRejection(p Params, bandwidth float64) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	if bandwidth <= 0 || bandwidth > maxBandwidth {
		return 0, fmt.Errorf("%w: bandwidth %v outside (0, %v]", ErrInvalidParams, bandwidth, maxBandwidth)
	}
	if p.Factor == 1 {
		return math.Inf(1), nil
	}

	r := float64(p.Factor)
	var worst []float64
	for k := 1; float64(k) <= r/2; k++ {
		// alias band around k/R at the high rate
		lo := (float64(k) - bandwidth) / r
		hi := math.Min((float64(k)+bandwidth)/r, maxBandwidth)
		band := make([]float64, aliasGridPoints)
		for i := range band {
			f := lo + (hi-lo)*float64(i)/float64(aliasGridPoints-1)
			band[i] = ClosedForm(p, f)
		}
		worst = append(worst, floats.Max(band))
	}

	return -toDB(floats.Max(worst) / p.DCGain()), nil
}

// PeakIndex returns the index of the largest value in s.
func PeakIndex(s []float64) int {
	if len(s) == 0 {
		return -1
	}
	return floats.MaxIdx(s)
}

func toDB(ratio float64) float64 {
	if ratio <= 0 {
		return math.Inf(-1)
	}
	return dbPerDecade * math.Log10(ratio)
}
