package fixed

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignExtend(t *testing.T) {
	assert.Equal(t, int64(-1), SignExtend(0xF, 4))
	assert.Equal(t, int64(7), SignExtend(0x7, 4))
	assert.Equal(t, int64(-8), SignExtend(0x18, 4))
	assert.Equal(t, int64(math.MinInt64), SignExtend(math.MinInt64, 64))
	assert.Equal(t, int64(-1), SignExtend(1, 1))
}

func TestMaxMinSigned(t *testing.T) {
	assert.Equal(t, int64(127), MaxSigned(8))
	assert.Equal(t, int64(-128), MinSigned(8))
	assert.Equal(t, int64(math.MaxInt64), MaxSigned(64))
	assert.Equal(t, int64(math.MinInt64), MinSigned(64))
}

func TestInt64Ops_Wraps(t *testing.T) {
	ops := Int64Ops(8)

	assert.Equal(t, int64(-128), ops.Add(127, 1))
	assert.Equal(t, int64(127), ops.Sub(-128, 1))
	assert.Equal(t, int64(-2), ops.Add(127, 127))
	assert.Equal(t, int64(-3), ops.FromInt64(0xFD, 8))
	assert.Equal(t, int64(5), ops.FromInt64(0x105, 4), "only the low 4 bits are kept")
}

func TestInt64Ops_FullNativeWidth(t *testing.T) {
	ops := Int64Ops(64)
	assert.Equal(t, int64(math.MinInt64), ops.Add(math.MaxInt64, 1))

	hi, half := ops.Top(math.MaxInt64, 1)
	assert.Equal(t, int64(math.MaxInt64>>1), hi)
	assert.Equal(t, int64(1), half)
}

func TestInt64Ops_Top(t *testing.T) {
	ops := Int64Ops(16)

	hi, half := ops.Top(-3, 1) // -3 = ...11101
	assert.Equal(t, int64(-2), hi)
	assert.Equal(t, int64(1), half)

	hi, half = ops.Top(0x0123, 4)
	assert.Equal(t, int64(0x12), hi)
	assert.Equal(t, int64(0), half)

	hi, half = ops.Top(42, 0)
	assert.Equal(t, int64(42), hi)
	assert.Equal(t, int64(0), half)
}

// TestBigOps_MatchesInt64 checks that both register backings agree
// wherever both can represent the width.
func TestBigOps_MatchesInt64(t *testing.T) {
	const width = 20
	small := Int64Ops(width)
	wide := BigOps(width)

	values := []int64{0, 1, -1, 524287, -524288, 300000, -300000, 12345}
	for _, a := range values {
		for _, b := range values {
			assert.Equal(t, small.Add(a, b), wide.Add(big.NewInt(a), big.NewInt(b)).Int64(),
				"Add(%d, %d)", a, b)
			assert.Equal(t, small.Sub(a, b), wide.Sub(big.NewInt(a), big.NewInt(b)).Int64(),
				"Sub(%d, %d)", a, b)
		}
		for shift := 0; shift < width; shift++ {
			hi1, half1 := small.Top(a, shift)
			hi2, half2 := wide.Top(big.NewInt(a), shift)
			assert.Equal(t, hi1, hi2, "Top(%d, %d) hi", a, shift)
			assert.Equal(t, half1, half2, "Top(%d, %d) half", a, shift)
		}
	}
}

func TestBigOps_WrapsAboveNative(t *testing.T) {
	const width = 70
	ops := BigOps(width)

	maxV := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), width-1), big.NewInt(1))
	minV := new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), width-1))

	assert.Equal(t, 0, ops.Add(maxV, big.NewInt(1)).Cmp(minV), "max+1 wraps to min")
	assert.Equal(t, 0, ops.Sub(minV, big.NewInt(1)).Cmp(maxV), "min-1 wraps to max")

	hi, half := ops.Top(maxV, width-64)
	assert.Equal(t, int64(math.MaxInt64), hi)
	assert.Equal(t, int64(1), half)

	hi, half = ops.Top(minV, width-64)
	assert.Equal(t, int64(math.MinInt64), hi)
	assert.Equal(t, int64(0), half)
}

func TestBigOps_ImmutableOperands(t *testing.T) {
	ops := BigOps(80)
	a := big.NewInt(10)
	b := big.NewInt(3)

	_ = ops.Add(a, b)
	_ = ops.Sub(a, b)

	assert.Equal(t, int64(10), a.Int64())
	assert.Equal(t, int64(3), b.Int64())
}
