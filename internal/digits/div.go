package digits

import "math/bits"

// DivW returns x / y and x % y for a nonzero single-digit divisor.
func DivW(x Nat, y Digit) (q Nat, r Digit) {
	if y == 0 {
		panic("digits: division by zero")
	}
	m := len(x)
	switch {
	case m == 0:
		return nil, 0
	case y == 1:
		return Clone(x, 0), 0
	}
	q = make(Nat, m)
	r = divWVW(q, 0, x, y)
	return q.Norm(), r
}

// ModW returns x % y for a nonzero single-digit divisor without allocating.
func ModW(x Nat, y Digit) Digit {
	if y == 0 {
		panic("digits: division by zero")
	}
	var r Double
	for i := len(x) - 1; i >= 0; i-- {
		r = (r<<W | Double(x[i])) % Double(y)
	}
	return Digit(r)
}

// divWVW computes z = (xn<<(W*len(x)) + x) / y and returns the remainder.
// xn must be smaller than y so every partial quotient fits in one digit.
func divWVW(z []Digit, xn Digit, x []Digit, y Digit) (r Digit) {
	r = xn
	d := Double(y)
	for i := len(z) - 1; i >= 0; i-- {
		t := Double(r)<<W | Double(x[i])
		z[i] = Digit(t / d)
		r = Digit(t % d)
	}
	return r
}

// DivMod returns the truncated quotient and remainder of u / v, with
// u = q*v + r and 0 <= r < v. It panics if v is zero.
func DivMod(u, v Nat) (q, r Nat) {
	n := len(v)
	if n == 0 {
		panic("digits: division by zero")
	}
	if Cmp(u, v) < 0 {
		return nil, Clone(u, 0)
	}
	if n == 1 {
		q, r0 := DivW(u, v[0])
		return q, Nat(nil).SetUint32(r0)
	}
	return divLarge(u, v)
}

// Rem returns u % v.
func Rem(u, v Nat) Nat {
	_, r := DivMod(u, v)
	return r
}

// divLarge implements Knuth's long division (TAOCP vol. 2, 4.3.1, algorithm
// D) for len(vIn) >= 2 and uIn >= vIn.
func divLarge(uIn, vIn Nat) (q, r Nat) {
	n := len(vIn)
	m := len(uIn) - n

	// D1: scale so that the top digit of v has its high bit set. u gets one
	// extra digit to absorb the bits shifted out.
	s := uint(bits.LeadingZeros32(vIn[n-1]))
	v := Acquire(n)
	defer Release(v)
	shlVU(v, vIn, s)

	u := Acquire(len(uIn) + 1)
	defer Release(u)
	u[len(uIn)] = shlVU(u[:len(uIn)], uIn, s)

	qhatv := Acquire(n + 1)
	defer Release(qhatv)

	q = make(Nat, m+1)
	vn1, vn2 := Double(v[n-1]), Double(v[n-2])

	// D2..D7
	for j := m; j >= 0; j-- {
		// D3: estimate qhat from the top two digits of the current window and
		// refine it with the second divisor digit. u[j+n] <= vn1 holds here,
		// so num fits in a Double and qhat < B once the loop exits.
		num := Double(u[j+n])<<W | Double(u[j+n-1])
		qhat := num / vn1
		rhat := num % vn1
		for qhat >= B || qhat*vn2 > (rhat<<W|Double(u[j+n-2])) {
			qhat--
			rhat += vn1
			if rhat >= B {
				break
			}
		}

		// D4: multiply and subtract.
		qhatv[n] = mulAddVWW(qhatv[:n], v, Digit(qhat), 0)
		c := subVV(u[j:j+n+1], u[j:j+n+1], qhatv)

		// D6: qhat was still one too large; add the divisor back.
		if c != 0 {
			c := addVV(u[j:j+n], u[j:j+n], v)
			u[j+n] += c
			qhat--
		}
		q[j] = Digit(qhat)
	}

	// D8: unscale the remainder.
	r = make(Nat, n)
	shrVU(r, u[:n], s)
	return q.Norm(), r.Norm()
}
