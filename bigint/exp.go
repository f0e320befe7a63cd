package bigint

import "github.com/agbru/bigcalc/internal/digits"

// Exp returns x**e. By convention 0**0 == 1.
func (x *Int) Exp(e uint32) *Int {
	z := digits.Nat{1}
	b := x.abs
	for k := e; k > 0; k >>= 1 {
		if k&1 != 0 {
			z = digits.Mul(z, b)
		}
		if k > 1 {
			b = digits.Mul(b, b)
		}
	}
	return newInt(x.neg && e&1 == 1, z)
}

// ExpMod returns x**e mod m in [0, m). A negative exponent computes the
// power of the modular inverse of x, and fails with ErrNotInvertible when x
// and m are not coprime.
func (x *Int) ExpMod(e, m *Int) (*Int, error) {
	if err := checkModulus("ExpMod", m); err != nil {
		return nil, err
	}
	base := x
	if e.neg {
		inv, err := x.ModInverse(m)
		if err != nil {
			return nil, err
		}
		base = inv
	}
	if digits.IsOne(m.abs) {
		return new(Int), nil
	}
	b := modAbs(base.neg, base.abs, m.abs)
	return newInt(false, expModNat(b, e.abs, m.abs)), nil
}

// expModNat returns x**e mod m for x already reduced below m > 1. The
// exponent is scanned from its most significant bit.
func expModNat(x, e, m digits.Nat) digits.Nat {
	z := digits.Nat{1}
	for i := digits.BitLen(e) - 1; i >= 0; i-- {
		z = digits.Rem(digits.Mul(z, z), m)
		if digits.Bit(e, uint(i)) == 1 {
			z = digits.Rem(digits.Mul(z, x), m)
		}
	}
	return z
}
