package bigint

import (
	"fortio.org/safecast"

	"github.com/agbru/bigcalc/internal/digits"
)

// twos returns the n-digit two's complement image of a sign-magnitude value.
// n must exceed len(abs) so that the top bit holds the sign.
func twos(neg bool, abs digits.Nat, n int) digits.Nat {
	z := make(digits.Nat, n)
	copy(z, abs)
	if !neg {
		return z
	}
	// -a == ^(a-1); abs is nonzero so the borrow stops inside it.
	for i := range z {
		if z[i] != 0 {
			z[i]--
			break
		}
		z[i] = ^digits.Digit(0)
	}
	for i := range z {
		z[i] = ^z[i]
	}
	return z
}

// fromTwos converts a two's complement vector back to sign-magnitude form,
// reusing z.
func fromTwos(z digits.Nat) *Int {
	n := len(z)
	if n == 0 || z[n-1]>>(digits.W-1) == 0 {
		return newInt(false, z)
	}
	// -(^z + 1)
	for i := range z {
		z[i] = ^z[i]
	}
	return newInt(true, digits.AddW(z.Norm(), 1))
}

type bitOp func(a, b digits.Digit) digits.Digit

func bitwise(x, y *Int, op bitOp) *Int {
	n := max(len(x.abs), len(y.abs)) + 1
	a := twos(x.neg, x.abs, n)
	b := twos(y.neg, y.abs, n)
	for i := range a {
		a[i] = op(a[i], b[i])
	}
	return fromTwos(a)
}

// And returns x & y.
func (x *Int) And(y *Int) *Int {
	return bitwise(x, y, func(a, b digits.Digit) digits.Digit { return a & b })
}

// Or returns x | y.
func (x *Int) Or(y *Int) *Int {
	return bitwise(x, y, func(a, b digits.Digit) digits.Digit { return a | b })
}

// Xor returns x ^ y.
func (x *Int) Xor(y *Int) *Int {
	return bitwise(x, y, func(a, b digits.Digit) digits.Digit { return a ^ b })
}

// AndNot returns x &^ y.
func (x *Int) AndNot(y *Int) *Int {
	return bitwise(x, y, func(a, b digits.Digit) digits.Digit { return a &^ b })
}

// Not returns ^x, which is -(x+1).
func (x *Int) Not() *Int { return add(!x.neg, x.abs, true, intOne.abs) }

// NotWidth returns the complement of x restricted to its width least
// significant bits, i.e. (^x) mod 2^width. The result is never negative.
func (x *Int) NotWidth(width int) (*Int, error) {
	w, err := safecast.Conv[uint](width)
	if err != nil {
		return nil, &ArgumentError{Op: "NotWidth", Err: ErrNegativeWidth}
	}
	if w == 0 {
		return new(Int), nil
	}
	n := int((w + digits.W - 1) / digits.W)
	z := twos(x.neg, x.abs, max(n, len(x.abs)+1))[:n]
	for i := range z {
		z[i] = ^z[i]
	}
	if r := w % digits.W; r != 0 {
		z[n-1] &= digits.Digit(1)<<r - 1
	}
	return newInt(false, z), nil
}
