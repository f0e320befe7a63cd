package bigint

import (
	"github.com/agbru/bigcalc/internal/digits"
)

// debugBigInt validates the sign-magnitude invariants of every result built
// by newInt.
const debugBigInt = false

// Int is an immutable arbitrary-precision signed integer. The zero value is 0.
type Int struct {
	neg bool       // sign; never set for zero
	abs digits.Nat // normalized magnitude
}

// newInt builds an Int from a magnitude the caller hands over. The magnitude
// is normalized and the sign cleared for zero.
func newInt(neg bool, abs digits.Nat) *Int {
	abs = abs.Norm()
	z := &Int{neg: neg && len(abs) > 0, abs: abs}
	if debugBigInt {
		if err := z.validate(); err != nil {
			panic(err)
		}
	}
	return z
}

// validate reports a broken representation.
func (x *Int) validate() error {
	if err := x.abs.Validate(); err != nil {
		return err
	}
	if x.neg && len(x.abs) == 0 {
		return &ArgumentError{Op: "validate", Err: ErrInvalidEncoding}
	}
	return nil
}

// NewInt32 returns a new Int set to x.
func NewInt32(x int32) *Int { return NewInt64(int64(x)) }

// NewUint32 returns a new Int set to x.
func NewUint32(x uint32) *Int { return &Int{abs: digits.Nat(nil).SetUint32(x)} }

// NewInt64 returns a new Int set to x.
func NewInt64(x int64) *Int {
	u := uint64(x)
	if x < 0 {
		u = -u
	}
	return &Int{neg: x < 0, abs: digits.Nat(nil).SetUint64(u)}
}

// NewUint64 returns a new Int set to x.
func NewUint64(x uint64) *Int { return &Int{abs: digits.Nat(nil).SetUint64(x)} }

var intOne = NewInt64(1)

// Clone returns a copy of x that shares no storage with it.
func (x *Int) Clone() *Int {
	return &Int{neg: x.neg, abs: digits.Clone(x.abs, 0)}
}

// Sign returns -1, 0 or +1 depending on the sign of x.
func (x *Int) Sign() int {
	switch {
	case len(x.abs) == 0:
		return 0
	case x.neg:
		return -1
	}
	return 1
}

// IsZero reports whether x == 0.
func (x *Int) IsZero() bool { return len(x.abs) == 0 }

// IsEven reports whether x is even. Zero is even.
func (x *Int) IsEven() bool { return len(x.abs) == 0 || x.abs[0]&1 == 0 }

// IsOdd reports whether x is odd.
func (x *Int) IsOdd() bool { return !x.IsEven() }

// Abs returns |x|.
func (x *Int) Abs() *Int { return &Int{abs: digits.Clone(x.abs, 0)} }

// Neg returns -x.
func (x *Int) Neg() *Int {
	return &Int{neg: !x.neg && len(x.abs) > 0, abs: digits.Clone(x.abs, 0)}
}

// Int64 returns the low 64 bits of x interpreted as a two's complement
// int64. The result is undefined in the mathematical sense if x does not fit,
// but it is always the truncation of the infinite two's complement form.
func (x *Int) Int64() int64 { return int64(x.Uint64()) }

// Int32 returns the low 32 bits of x interpreted as a two's complement int32.
func (x *Int) Int32() int32 { return int32(x.Uint64()) }

// Uint64 returns the low 64 bits of x in two's complement.
func (x *Int) Uint64() uint64 {
	var v uint64
	switch len(x.abs) {
	case 0:
		return 0
	case 1:
		v = uint64(x.abs[0])
	default:
		v = uint64(x.abs[1])<<digits.W | uint64(x.abs[0])
	}
	if x.neg {
		v = -v
	}
	return v
}

// IsInt64 reports whether x can be represented as an int64.
func (x *Int) IsInt64() bool {
	n := digits.BitLen(x.abs)
	if n < 64 {
		return true
	}
	// -2^63 is the only 64-bit magnitude that fits.
	return n == 64 && x.neg && digits.IsPowerOfTwo(x.abs)
}

// IsUint64 reports whether x can be represented as a uint64.
func (x *Int) IsUint64() bool { return !x.neg && len(x.abs) <= 2 }

// BitLen returns the length of |x| in bits. The bit length of 0 is 0.
func (x *Int) BitLen() int { return digits.BitLen(x.abs) }

// TrailingZeros returns the number of consecutive least significant zero
// bits of |x|.
func (x *Int) TrailingZeros() uint { return digits.TrailingZeros(x.abs) }

// IsPowerOfTwo reports whether |x| is a power of two.
func (x *Int) IsPowerOfTwo() bool { return digits.IsPowerOfTwo(x.abs) }

// Bit returns the value of bit i of x in two's complement; i must be
// non-negative. Negative values have infinitely many leading one bits.
func (x *Int) Bit(i int) uint {
	if i < 0 {
		panic("bigint: negative bit index")
	}
	if !x.neg {
		return digits.Bit(x.abs, uint(i))
	}
	// -a = ^(a-1)
	return digits.Bit(digits.SubW(x.abs, 1), uint(i)) ^ 1
}

// Bytes returns the absolute value of x as a big-endian byte slice without
// leading zeros. Zero yields an empty slice.
func (x *Int) Bytes() []byte {
	buf := make([]byte, (x.BitLen()+7)/8)
	x.fillBytes(buf)
	return buf
}

// FillBytes writes the absolute value of x into buf as a zero-extended
// big-endian number and returns the number of significant bytes. It never
// writes past len(buf): when buf is too short the low-order bytes that fit
// are written and ErrBufferTooSmall is returned.
func (x *Int) FillBytes(buf []byte) (int, error) {
	need := (x.BitLen() + 7) / 8
	x.fillBytes(buf)
	if need > len(buf) {
		return len(buf), &ArgumentError{Op: "FillBytes", Err: ErrBufferTooSmall}
	}
	return need, nil
}

func (x *Int) fillBytes(buf []byte) {
	clear(buf)
	i := len(buf)
	for _, d := range x.abs {
		for range digits.W / 8 {
			if i == 0 {
				return
			}
			i--
			buf[i] = byte(d)
			d >>= 8
		}
	}
}
