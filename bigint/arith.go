package bigint

import "github.com/agbru/bigcalc/internal/digits"

// add returns the signed sum of two sign-magnitude operands.
func add(xneg bool, x digits.Nat, yneg bool, y digits.Nat) *Int {
	if xneg == yneg {
		// x + y == x + y, (-x) + (-y) == -(x + y)
		return newInt(xneg, digits.Add(x, y))
	}
	// x + (-y) == x - y == -(y - x), (-x) + y == y - x == -(x - y)
	if digits.Cmp(x, y) >= 0 {
		return newInt(xneg, digits.Sub(x, y))
	}
	return newInt(yneg, digits.Sub(y, x))
}

// Add returns x + y.
func (x *Int) Add(y *Int) *Int { return add(x.neg, x.abs, y.neg, y.abs) }

// Sub returns x - y.
func (x *Int) Sub(y *Int) *Int { return add(x.neg, x.abs, !y.neg, y.abs) }

// Mul returns x * y.
func (x *Int) Mul(y *Int) *Int {
	return newInt(x.neg != y.neg, digits.Mul(x.abs, y.abs))
}

// QuoRem returns the truncated quotient and remainder of x / y, such that
// x = q*y + r with |r| < |y|. The quotient is rounded towards zero and the
// remainder carries the sign of x.
func (x *Int) QuoRem(y *Int) (q, r *Int, err error) {
	if len(y.abs) == 0 {
		return nil, nil, divisionByZero("QuoRem")
	}
	qa, ra := digits.DivMod(x.abs, y.abs)
	return newInt(x.neg != y.neg, qa), newInt(x.neg, ra), nil
}

// Quo returns the quotient x / y truncated towards zero.
func (x *Int) Quo(y *Int) (*Int, error) {
	if len(y.abs) == 0 {
		return nil, divisionByZero("Quo")
	}
	q, _ := digits.DivMod(x.abs, y.abs)
	return newInt(x.neg != y.neg, q), nil
}

// Rem returns the remainder of the truncated division x / y. The result has
// the sign of x.
func (x *Int) Rem(y *Int) (*Int, error) {
	if len(y.abs) == 0 {
		return nil, divisionByZero("Rem")
	}
	return newInt(x.neg, digits.Rem(x.abs, y.abs)), nil
}

// Mod returns the Euclidean modulus of x by m, in the range [0, |m|).
func (x *Int) Mod(m *Int) (*Int, error) {
	if len(m.abs) == 0 {
		return nil, divisionByZero("Mod")
	}
	return newInt(false, modAbs(x.neg, x.abs, m.abs)), nil
}

// modAbs reduces a signed value into [0, m).
func modAbs(neg bool, x, m digits.Nat) digits.Nat {
	r := digits.Rem(x, m)
	if neg && len(r) > 0 {
		r = digits.Sub(m, r)
	}
	return r
}

// MulMod returns (x * y) mod m in [0, m). m must be positive.
func (x *Int) MulMod(y, m *Int) (*Int, error) {
	if err := checkModulus("MulMod", m); err != nil {
		return nil, err
	}
	p := digits.Mul(x.abs, y.abs)
	return newInt(false, modAbs(x.neg != y.neg, p, m.abs)), nil
}
