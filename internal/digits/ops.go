package digits

// Add returns x + y.
func Add(x, y Nat) Nat {
	m, n := len(x), len(y)
	if m < n {
		return Add(y, x)
	}
	if n == 0 {
		return Clone(x, 0)
	}
	z := make(Nat, m+1)
	c := addVV(z[:n], x[:n], y)
	if m > n {
		c = addVW(z[n:m], x[n:], c)
	}
	z[m] = c
	return z.Norm()
}

// Sub returns x - y. The caller guarantees x >= y.
func Sub(x, y Nat) Nat {
	m, n := len(x), len(y)
	if debugDigits && Cmp(x, y) < 0 {
		panic("digits: Sub underflow")
	}
	if n == 0 {
		return Clone(x, 0)
	}
	z := make(Nat, m)
	c := subVV(z[:n], x[:n], y)
	if m > n {
		c = subVW(z[n:], x[n:], c)
	}
	if debugDigits && c != 0 {
		panic("digits: Sub borrow out")
	}
	return z.Norm()
}

// AddW returns x + y.
func AddW(x Nat, y Digit) Nat {
	m := len(x)
	if m == 0 {
		return Nat(nil).SetUint32(y)
	}
	z := make(Nat, m+1)
	z[m] = addVW(z[:m], x, y)
	return z.Norm()
}

// SubW returns x - y. The caller guarantees x >= y.
func SubW(x Nat, y Digit) Nat {
	m := len(x)
	if m == 0 {
		if debugDigits && y != 0 {
			panic("digits: SubW underflow")
		}
		return nil
	}
	z := make(Nat, m)
	subVW(z, x, y)
	return z.Norm()
}

// MulAddW returns x*y + r.
func MulAddW(x Nat, y, r Digit) Nat {
	m := len(x)
	if m == 0 || y == 0 {
		return Nat(nil).SetUint32(r)
	}
	z := make(Nat, m+1)
	z[m] = mulAddVWW(z[:m], x, y, r)
	return z.Norm()
}

// Mul returns x * y using schoolbook multiplication.
func Mul(x, y Nat) Nat {
	m, n := len(x), len(y)
	if m == 0 || n == 0 {
		return nil
	}
	if m < n {
		x, y = y, x
		m, n = n, m
	}
	z := make(Nat, m+n)
	for i, d := range y {
		if d != 0 {
			z[m+i] = addMulVVW(z[i:i+m], x, d)
		}
	}
	return z.Norm()
}

// Shl returns x << s.
func Shl(x Nat, s uint) Nat {
	m := len(x)
	if m == 0 {
		return nil
	}
	if s == 0 {
		return Clone(x, 0)
	}
	n := m + int(s/W)
	z := make(Nat, n+1)
	z[n] = shlVU(z[n-m:n], x, s%W)
	return z.Norm()
}

// Shr returns x >> s, discarding the bits shifted out.
func Shr(x Nat, s uint) Nat {
	m := len(x)
	n := m - int(s/W)
	if s/W >= uint(m) || n <= 0 {
		return nil
	}
	z := make(Nat, n)
	shrVU(z, x[m-n:], s%W)
	return z.Norm()
}
