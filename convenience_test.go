package cic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-cic/internal/testutil"
)

// TestNewSimpleDecimator verifies the default decimator keeps unity DC gain
// at the output for power-of-two factors.
func TestNewSimpleDecimator(t *testing.T) {
	tests := []struct {
		name    string
		stages  int
		factor  int
		wantOut int
	}{
		{"N3_R8", 3, 8, 16},
		{"N5_R16", 5, 16, 16},
		{"N1_R2", 1, 2, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewSimpleDecimator(tt.stages, tt.factor)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOut, d.Widths().Out)
			assert.Equal(t, tt.factor, d.Factor())

			out, err := d.Process(testutil.Constant(tt.factor*20, 1000))
			require.NoError(t, err)
			require.Len(t, out, 20)
			assert.Equal(t, int64(1000), out[len(out)-1])
		})
	}
}

func TestNewSimpleInterpolator(t *testing.T) {
	p, err := NewSimpleInterpolator(DefaultStages, 4)
	require.NoError(t, err)

	out, err := p.Process(testutil.Constant(16, 1024))
	require.NoError(t, err)
	require.Len(t, out, 64)

	// (4^3/4) / 2^6 = 1/4 at the output
	assert.Equal(t, int64(256), out[len(out)-1])
}

func TestDecimateInterpolateErrors(t *testing.T) {
	_, err := Decimate([]int64{1}, nil)
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Interpolate([]int64{1}, &Config{Stages: 1, Factor: 1, DifferentialDelay: 1, InputWidth: 4, OutputWidth: 4})
	require.NoError(t, err)

	_, err = Interpolate([]int64{8}, &Config{Stages: 1, Factor: 1, DifferentialDelay: 1, InputWidth: 4, OutputWidth: 4})
	require.ErrorIs(t, err, ErrSampleRange)
}

func TestStereoInterleave(t *testing.T) {
	left := []int64{1, 2, 3}
	right := []int64{-1, -2, -3, -4}

	interleaved := InterleaveToStereo(left, right)
	assert.Equal(t, []int64{1, -1, 2, -2, 3, -3}, interleaved)

	l, r := DeinterleaveFromStereo(interleaved)
	assert.Equal(t, left, l)
	assert.Equal(t, right[:3], r)
}

func TestInterleave(t *testing.T) {
	channels := [][]int64{{1, 2}, {10, 20}, {100, 200}}

	frames, err := Interleave(channels)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 10, 100, 2, 20, 200}, frames)

	planar, err := Deinterleave(frames, 3)
	require.NoError(t, err)
	assert.Equal(t, channels, planar)

	_, err = Interleave([][]int64{{1}, {1, 2}})
	require.ErrorIs(t, err, ErrChannelCount)

	_, err = Deinterleave(frames, 0)
	require.ErrorIs(t, err, ErrChannelCount)

	empty, err := Interleave(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
