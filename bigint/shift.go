package bigint

import (
	"fortio.org/safecast"

	"github.com/agbru/bigcalc/internal/digits"
)

// shiftCount converts a signed shift count, rejecting negative values.
func shiftCount(op string, n int) (uint, error) {
	s, err := safecast.Conv[uint](n)
	if err != nil {
		return 0, &ArgumentError{Op: op, Err: ErrNegativeShiftCount}
	}
	return s, nil
}

// Lsh returns x << n, that is x * 2^n.
func (x *Int) Lsh(n int) (*Int, error) {
	s, err := shiftCount("Lsh", n)
	if err != nil {
		return nil, err
	}
	return newInt(x.neg, digits.Shl(x.abs, s)), nil
}

// Rsh returns x >> n, that is floor(x / 2^n). Negative values round towards
// negative infinity, so -1 >> n is -1 for every n.
func (x *Int) Rsh(n int) (*Int, error) {
	s, err := shiftCount("Rsh", n)
	if err != nil {
		return nil, err
	}
	z := digits.Shr(x.abs, s)
	if x.neg && digits.LowBitsNonZero(x.abs, s) {
		z = digits.AddW(z, 1)
	}
	return newInt(x.neg, z), nil
}
