package chain

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-cic/internal/fixed"
)

func TestIntegrator_PipelineLatency(t *testing.T) {
	in := NewIntegrator(fixed.Int64Ops(32), 3)

	// An impulse reaches stage 2 after two activations, then grows as the
	// triangular numbers.
	var out []int64
	out = append(out, in.Activate(1))
	for range 6 {
		out = append(out, in.Activate(0))
	}

	assert.Equal(t, []int64{0, 0, 1, 3, 6, 10, 15}, out)
}

func TestIntegrator_SingleStageIsRunningSum(t *testing.T) {
	in := NewIntegrator(fixed.Int64Ops(16), 1)

	assert.Equal(t, int64(5), in.Activate(5))
	assert.Equal(t, int64(2), in.Activate(-3))
	assert.Equal(t, int64(12), in.Activate(10))
	assert.Equal(t, int64(12), in.Top())
}

func TestIntegrator_WrapsModularly(t *testing.T) {
	in := NewIntegrator(fixed.Int64Ops(8), 1)

	in.Activate(100)
	assert.Equal(t, int64(-56), in.Activate(100), "200 wraps to -56 in 8 bits")
	assert.Equal(t, int64(44), in.Activate(100), "wraps back")
}

func TestIntegrator_Reset(t *testing.T) {
	in := NewIntegrator(fixed.Int64Ops(32), 4)
	for i := range 20 {
		in.Activate(int64(i * 7))
	}
	require.NotEqual(t, []int64{0, 0, 0, 0}, in.Registers())

	in.Reset()
	assert.Equal(t, []int64{0, 0, 0, 0}, in.Registers())
	assert.Equal(t, 4, in.Stages())
}

func TestDelayLine_ShiftOrder(t *testing.T) {
	d := newDelayLine(2, func() int64 { return 0 })

	assert.Equal(t, int64(0), d.Push(1))
	assert.Equal(t, int64(0), d.Push(2))
	assert.Equal(t, int64(2), d.At(0))
	assert.Equal(t, int64(1), d.At(1))
	assert.Equal(t, int64(1), d.Tail())

	assert.Equal(t, int64(1), d.Push(3))
	assert.Equal(t, int64(3), d.At(0))
	assert.Equal(t, int64(2), d.Tail())
	assert.Equal(t, 2, d.Depth())
}

func TestDelayLine_DepthOne(t *testing.T) {
	d := newDelayLine(1, func() int64 { return 0 })

	assert.Equal(t, int64(0), d.Push(4))
	assert.Equal(t, int64(4), d.Push(9))
	assert.Equal(t, int64(9), d.Tail())
}

func TestComb_FirstDifference(t *testing.T) {
	c, err := NewComb(fixed.Int64Ops(16), 1, 1)
	require.NoError(t, err)

	var out []int64
	for _, x := range []int64{1, 4, 9, 16, 25} {
		out = append(out, c.Activate(x))
	}
	assert.Equal(t, []int64{1, 3, 5, 7, 9}, out)
}

func TestComb_DifferentialDelay(t *testing.T) {
	c, err := NewComb(fixed.Int64Ops(16), 1, 2)
	require.NoError(t, err)

	var out []int64
	for _, x := range []int64{1, 2, 4, 8, 16} {
		out = append(out, c.Activate(x))
	}
	assert.Equal(t, []int64{1, 2, 3, 6, 12}, out)
}

func TestComb_CascadeUndoesIntegrator(t *testing.T) {
	const stages = 3
	ops := fixed.Int64Ops(24)
	in := NewIntegrator(ops, stages)
	c, err := NewComb(ops, stages, 1)
	require.NoError(t, err)

	// integrators followed by combs at the same rate are a pure delay of
	// stages-1 activations
	input := []int64{5, -3, 7, 0, 2, -8, 1, 1, 4}
	var out []int64
	for _, x := range input {
		out = append(out, c.Activate(in.Activate(x)))
	}
	for range stages - 1 {
		out = append(out, c.Activate(in.Activate(0)))
	}

	assert.Equal(t, input, out[stages-1:])
}

func TestComb_Reset(t *testing.T) {
	c, err := NewComb(fixed.Int64Ops(16), 2, 2)
	require.NoError(t, err)

	fresh, err := NewComb(fixed.Int64Ops(16), 2, 2)
	require.NoError(t, err)

	for i := range 10 {
		c.Activate(int64(i))
	}
	c.Reset()

	for _, x := range []int64{3, 1, 4, 1, 5} {
		assert.Equal(t, fresh.Activate(x), c.Activate(x))
	}
}

func TestComb_InvalidDelay(t *testing.T) {
	_, err := NewComb(fixed.Int64Ops(16), 2, 3)
	require.Error(t, err)
}

func TestChains_BigRegisters(t *testing.T) {
	// 70-bit registers hold values past the int64 range without wrapping.
	ops := fixed.BigOps(70)
	in := NewIntegrator(ops, 3)

	feed := big.NewInt(1 << 62)
	var got *big.Int
	for range 5 {
		got = in.Activate(feed)
	}
	// third stage after 5 activations of a constant: 1+3+6 = 10 times feed
	want := new(big.Int).Mul(feed, big.NewInt(10))
	assert.Equal(t, 0, want.Cmp(got))

	c, err := NewComb(ops, 3, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Activate(feed).Cmp(feed))
}
