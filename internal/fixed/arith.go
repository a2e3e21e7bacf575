package fixed

import (
	"math/big"
)

// Ops is a table of modular arithmetic operations on registers of type T
// holding signed values of Width bits. Every result is wrapped back into
// [-2^(Width-1), 2^(Width-1)), which is what a Width-bit hardware register
// would hold.
//
// Two instantiations exist: int64 for widths up to 64 bits and *big.Int for
// anything wider. Callers pick one at construction time and never switch.
type Ops[T any] struct {
	// Width is the register width in bits.
	Width int

	// Zero returns the reset value of a register.
	Zero func() T

	// FromInt64 keeps the low bits of v and sign-extends them to Width.
	FromInt64 func(v int64, bits int) T

	// Add returns a+b wrapped to Width.
	Add func(a, b T) T

	// Sub returns a-b wrapped to Width.
	Sub func(a, b T) T

	// Top returns v arithmetically shifted right by shift bits, together with
	// bit shift-1 of v (the most significant discarded bit, 0 when shift is 0).
	// The shifted value must fit an int64.
	Top func(v T, shift int) (hi, half int64)

	// Big converts a register value to a fresh *big.Int.
	Big func(v T) *big.Int
}

// Int64Ops returns register operations backed by int64. Width must be 1-64.
func Int64Ops(width int) *Ops[int64] {
	return &Ops[int64]{
		Width: width,
		Zero:  func() int64 { return 0 },
		FromInt64: func(v int64, bits int) int64 {
			return SignExtend(v, bits)
		},
		Add: func(a, b int64) int64 {
			return SignExtend(a+b, width)
		},
		Sub: func(a, b int64) int64 {
			return SignExtend(a-b, width)
		},
		Top: func(v int64, shift int) (int64, int64) {
			if shift == 0 {
				return v, 0
			}
			return v >> uint(shift), (v >> uint(shift-1)) & 1
		},
		Big: func(v int64) *big.Int {
			return big.NewInt(v)
		},
	}
}

// BigOps returns register operations backed by *big.Int for widths that do
// not fit an int64. Values are treated as immutable: every operation
// allocates its result.
func BigOps(width int) *Ops[*big.Int] {
	modulus := new(big.Int).Lsh(big.NewInt(1), uint(width))
	mask := new(big.Int).Sub(modulus, big.NewInt(1))

	wrap := func(x *big.Int) *big.Int {
		// And uses two's complement semantics for negative x
		x.And(x, mask)
		if x.Bit(width-1) == 1 {
			x.Sub(x, modulus)
		}
		return x
	}

	return &Ops[*big.Int]{
		Width: width,
		Zero:  func() *big.Int { return new(big.Int) },
		FromInt64: func(v int64, bits int) *big.Int {
			return big.NewInt(SignExtend(v, bits))
		},
		Add: func(a, b *big.Int) *big.Int {
			return wrap(new(big.Int).Add(a, b))
		},
		Sub: func(a, b *big.Int) *big.Int {
			return wrap(new(big.Int).Sub(a, b))
		},
		Top: func(v *big.Int, shift int) (int64, int64) {
			if shift == 0 {
				return v.Int64(), 0
			}
			hi := new(big.Int).Rsh(v, uint(shift))
			return hi.Int64(), int64(v.Bit(shift - 1))
		},
		Big: func(v *big.Int) *big.Int {
			return new(big.Int).Set(v)
		},
	}
}

// SignExtend keeps the low bits of v and sign-extends bit bits-1.
func SignExtend(v int64, bits int) int64 {
	s := uint(nativeBits - bits)
	return (v << s) >> s
}

// MaxSigned returns the largest signed value representable in bits bits.
func MaxSigned(bits int) int64 {
	return int64(uint64(1)<<uint(bits-1) - 1)
}

// MinSigned returns the smallest signed value representable in bits bits.
func MinSigned(bits int) int64 {
	return -MaxSigned(bits) - 1
}
