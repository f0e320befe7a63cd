// Package digits implements the unsigned magnitude layer of the big integer
// engine: a growable little-endian buffer of fixed-width digits together with
// the comparison, additive, multiplicative and shift kernels that operate on it.
//
// Every exported function that returns a Nat returns a freshly allocated,
// normalized buffer that does not alias its inputs. Scratch buffers handed out
// by Acquire are the only exception and never escape this package's callers.
package digits

import (
	"errors"
	"fmt"
	"math/bits"
)

// debugDigits enables representation checks on every normalization and
// precondition checks on the kernels. It is a constant so that release builds
// pay nothing for it.
const debugDigits = false

// Digit is one element of the base-2^W positional representation.
type Digit = uint32

// Double is the double-width accumulator used for digit products and
// digit-plus-carry sums.
type Double = uint64

const (
	// W is the digit width in bits, fixed for the whole module.
	W = 32
	// B is the digit base.
	B Double = 1 << W

	maxDigit = ^Digit(0)
)

// ErrNotNormalized reports a magnitude whose most significant digit is zero.
var ErrNotNormalized = errors.New("digits: magnitude has a high-order zero digit")

// Nat is an unsigned magnitude, least significant digit first. len is the
// number of significant digits and cap the number of allocated digits; the
// digits between len and cap carry no meaning.
//
// The normalized form has no high-order zero digit, so zero is the empty Nat.
type Nat []Digit

// Make returns a Nat of length n, reusing z's storage when it is large
// enough. When preserve is set the first len(z) digits keep their values;
// otherwise the contents are unspecified. Growth reallocates, after which z
// must not be used again.
func (z Nat) Make(n int, preserve bool) Nat {
	if n <= cap(z) {
		return z[:n]
	}
	if n == 1 {
		return make(Nat, 1)
	}
	// Some headroom so that a following carry does not reallocate again.
	const extra = 4
	nz := make(Nat, n, n+extra)
	if preserve {
		copy(nz, z)
	}
	return nz
}

// SetUint32 sets z to x and returns the normalized result.
func (z Nat) SetUint32(x uint32) Nat {
	if x == 0 {
		return z[:0]
	}
	z = z.Make(1, false)
	z[0] = x
	return z
}

// SetUint64 sets z to x using one or two digits.
func (z Nat) SetUint64(x uint64) Nat {
	hi, lo := Digit(x>>W), Digit(x)
	if hi == 0 {
		return z.SetUint32(lo)
	}
	z = z.Make(2, false)
	z[0], z[1] = lo, hi
	return z
}

// Clone returns a copy of x in a new buffer with room for extra more digits.
func Clone(x Nat, extra int) Nat {
	if len(x) == 0 && extra == 0 {
		return nil
	}
	z := make(Nat, len(x), len(x)+extra)
	copy(z, x)
	return z
}

// Norm strips high-order zero digits.
func (z Nat) Norm() Nat {
	i := len(z)
	for i > 0 && z[i-1] == 0 {
		i--
	}
	z = z[0:i]
	if debugDigits {
		if err := z.Validate(); err != nil {
			panic(err)
		}
	}
	return z
}

// Validate reports whether z is in normalized form.
func (z Nat) Validate() error {
	if cap(z) < len(z) {
		return fmt.Errorf("digits: capacity %d below length %d", cap(z), len(z))
	}
	if n := len(z); n > 0 && z[n-1] == 0 {
		return fmt.Errorf("%w (length %d)", ErrNotNormalized, n)
	}
	return nil
}

// IsZero reports whether x is zero.
func IsZero(x Nat) bool { return len(x) == 0 }

// IsOne reports whether x is one.
func IsOne(x Nat) bool { return len(x) == 1 && x[0] == 1 }

// Cmp compares the magnitudes x and y and returns -1, 0 or +1. Both operands
// must be normalized: the longer one is then always the larger.
func Cmp(x, y Nat) int {
	m, n := len(x), len(y)
	if m != n {
		if m < n {
			return -1
		}
		return 1
	}
	i := m - 1
	for i >= 0 && x[i] == y[i] {
		i--
	}
	switch {
	case i < 0:
		return 0
	case x[i] < y[i]:
		return -1
	default:
		return 1
	}
}

// BitLen returns the number of bits needed to represent x; zero for zero.
func BitLen(x Nat) int {
	if i := len(x) - 1; i >= 0 {
		return i*W + bits.Len32(x[i])
	}
	return 0
}

// TrailingZeros returns the number of consecutive zero bits starting at bit 0.
func TrailingZeros(x Nat) uint {
	for i, d := range x {
		if d != 0 {
			return uint(i)*W + uint(bits.TrailingZeros32(d))
		}
	}
	return 0
}

// Bit returns the value of bit i of x.
func Bit(x Nat, i uint) uint {
	j := i / W
	if j >= uint(len(x)) {
		return 0
	}
	return uint(x[j]>>(i%W)) & 1
}

// IsPowerOfTwo reports whether x has exactly one bit set.
func IsPowerOfTwo(x Nat) bool {
	n := len(x)
	if n == 0 {
		return false
	}
	for _, d := range x[:n-1] {
		if d != 0 {
			return false
		}
	}
	top := x[n-1]
	return top&(top-1) == 0
}

// LowBitsNonZero reports whether any of the n least significant bits of x is set.
func LowBitsNonZero(x Nat, n uint) bool {
	whole := n / W
	for i := uint(0); i < whole && i < uint(len(x)); i++ {
		if x[i] != 0 {
			return true
		}
	}
	if whole < uint(len(x)) {
		if s := n % W; s != 0 && x[whole]&(Digit(1)<<s-1) != 0 {
			return true
		}
	}
	return false
}
