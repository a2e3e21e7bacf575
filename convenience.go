package cic

import (
	"fmt"
)

// Defaults used by the simple constructors.
const (
	// DefaultStages is a third-order cascade, the usual choice ahead of a
	// compensation filter.
	DefaultStages = 3

	// DefaultWidth is the sample width for 16-bit PCM.
	DefaultWidth = 16
)

// NewSimpleDecimator creates a mono decimator for 16-bit samples with
// M=1, rounding and saturation enabled, and an output width that keeps
// the full-precision DC gain normalized back to 16 bits.
func NewSimpleDecimator(stages, factor int) (*Decimator, error) {
	return NewDecimator(&Config{
		Stages:            stages,
		Factor:            factor,
		DifferentialDelay: 1,
		InputWidth:        DefaultWidth,
		OutputWidth:       DefaultWidth,
		Round:             true,
		Saturate:          true,
	})
}

// NewSimpleInterpolator creates a mono interpolator for 16-bit samples
// with M=1, rounding and saturation enabled.
func NewSimpleInterpolator(stages, factor int) (*Interpolator, error) {
	return NewInterpolator(&Config{
		Stages:            stages,
		Factor:            factor,
		DifferentialDelay: 1,
		InputWidth:        DefaultWidth,
		OutputWidth:       DefaultWidth,
		Round:             true,
		Saturate:          true,
		Mode:              ModeInterpolate,
	})
}

// Decimate is a convenience function for one-shot decimation.
// It creates a decimator from config, processes the input and returns
// the result. Samples left in an incomplete group of Factor are dropped.
func Decimate(input []int64, config *Config) ([]int64, error) {
	d, err := NewDecimator(config)
	if err != nil {
		return nil, err
	}
	return d.Process(input)
}

// Interpolate is a convenience function for one-shot interpolation.
func Interpolate(input []int64, config *Config) ([]int64, error) {
	p, err := NewInterpolator(config)
	if err != nil {
		return nil, err
	}
	return p.Process(input)
}

// InterleaveToStereo converts two mono channels to interleaved stereo.
// Output format: [L0, R0, L1, R1, L2, R2, ...]
func InterleaveToStereo(left, right []int64) []int64 {
	minLen := min(len(left), len(right))
	result := make([]int64, minLen*stereoChannels)
	for i := range minLen {
		result[i*stereoChannels] = left[i]
		result[i*stereoChannels+1] = right[i]
	}
	return result
}

// DeinterleaveFromStereo converts interleaved stereo to two mono channels.
// Input format: [L0, R0, L1, R1, L2, R2, ...]
func DeinterleaveFromStereo(interleaved []int64) (left, right []int64) {
	numSamples := len(interleaved) / stereoChannels
	left = make([]int64, numSamples)
	right = make([]int64, numSamples)
	for i := range numSamples {
		left[i] = interleaved[i*stereoChannels]
		right[i] = interleaved[i*stereoChannels+1]
	}
	return left, right
}

// Interleave merges planar channels into frames. All channels must have
// the same length.
func Interleave(channels [][]int64) ([]int64, error) {
	if len(channels) == 0 {
		return []int64{}, nil
	}

	n := len(channels[0])
	for ch, c := range channels {
		if len(c) != n {
			return nil, fmt.Errorf("%w: channel %d has %d samples, channel 0 has %d",
				ErrChannelCount, ch, len(c), n)
		}
	}

	out := make([]int64, n*len(channels))
	for i := range n {
		for ch, c := range channels {
			out[i*len(channels)+ch] = c[i]
		}
	}
	return out, nil
}

// Deinterleave splits frames into planar channels. The input length must
// be a multiple of the channel count.
func Deinterleave(interleaved []int64, channels int) ([][]int64, error) {
	if channels < 1 {
		return nil, fmt.Errorf("%w: channel count must be at least 1, got %d", ErrChannelCount, channels)
	}
	if len(interleaved)%channels != 0 {
		return nil, fmt.Errorf("%w: %d samples is not a whole number of %d-channel frames",
			ErrChannelCount, len(interleaved), channels)
	}

	frames := len(interleaved) / channels
	out := make([][]int64, channels)
	for ch := range out {
		out[ch] = make([]int64, frames)
		for i := range frames {
			out[ch][i] = interleaved[i*channels+ch]
		}
	}
	return out, nil
}
