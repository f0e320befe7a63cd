package bigint

import "github.com/agbru/bigcalc/internal/digits"

// ExtendedGCD returns d = gcd(|x|, |y|) together with Bézout coefficients a
// and b such that x*a + y*b == d. d is never negative, and gcd(0, 0) == 0.
func (x *Int) ExtendedGCD(y *Int) (d, a, b *Int) {
	r0, r1 := x.Abs(), y.Abs()
	s0, s1 := NewInt64(1), new(Int)
	t0, t1 := new(Int), NewInt64(1)
	for !r1.IsZero() {
		qa, ra := digits.DivMod(r0.abs, r1.abs)
		q := newInt(false, qa)
		r0, r1 = r1, newInt(false, ra)
		s0, s1 = s1, s0.Sub(q.Mul(s1))
		t0, t1 = t1, t0.Sub(q.Mul(t1))
	}
	// The loop ran on magnitudes; flip coefficients to match the signs.
	if x.neg {
		s0 = s0.Neg()
	}
	if y.neg {
		t0 = t0.Neg()
	}
	return r0, s0, t0
}

// GCD returns gcd(|x|, |y|).
func (x *Int) GCD(y *Int) *Int {
	a, b := x.abs, y.abs
	for len(b) > 0 {
		a, b = b, digits.Rem(a, b)
	}
	return newInt(false, digits.Clone(a, 0))
}

// ModInverse returns the z in [0, m) with x*z ≡ 1 (mod m). It fails with
// ErrNotInvertible when gcd(x, m) != 1.
func (x *Int) ModInverse(m *Int) (*Int, error) {
	if err := checkModulus("ModInverse", m); err != nil {
		return nil, err
	}
	d, a, _ := x.ExtendedGCD(m)
	if !digits.IsOne(d.abs) {
		return nil, &ArithmeticError{Op: "ModInverse", Err: ErrNotInvertible}
	}
	return newInt(false, modAbs(a.neg, a.abs, m.abs)), nil
}
