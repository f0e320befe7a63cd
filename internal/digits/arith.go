// This file contains the vector kernels. They operate on equal-length digit
// vectors, never allocate and return the carry, borrow or shifted-out digit.

package digits

// addVV computes z = x + y over len(z) digits and returns the carry.
func addVV(z, x, y []Digit) (c Digit) {
	for i := range z {
		s := Double(x[i]) + Double(y[i]) + Double(c)
		z[i] = Digit(s)
		c = Digit(s >> W)
	}
	return c
}

// subVV computes z = x - y over len(z) digits and returns the borrow.
func subVV(z, x, y []Digit) (c Digit) {
	for i := range z {
		d := Double(x[i]) - Double(y[i]) - Double(c)
		z[i] = Digit(d)
		c = Digit(d>>W) & 1
	}
	return c
}

// addVW computes z = x + y where y is a single digit, and returns the carry.
func addVW(z, x []Digit, y Digit) (c Digit) {
	c = y
	for i := range z {
		s := Double(x[i]) + Double(c)
		z[i] = Digit(s)
		c = Digit(s >> W)
	}
	return c
}

// subVW computes z = x - y where y is a single digit, and returns the borrow.
func subVW(z, x []Digit, y Digit) (c Digit) {
	c = y
	for i := range z {
		d := Double(x[i]) - Double(c)
		z[i] = Digit(d)
		c = Digit(d>>W) & 1
	}
	return c
}

// mulAddVWW computes z = x*y + r and returns the high-order carry digit.
func mulAddVWW(z, x []Digit, y, r Digit) (c Digit) {
	c = r
	for i := range z {
		t := Double(x[i])*Double(y) + Double(c)
		z[i] = Digit(t)
		c = Digit(t >> W)
	}
	return c
}

// addMulVVW computes z += x*y and returns the carry. The partial sum
// (2^W-1)^2 + 2(2^W-1) still fits in a Double.
func addMulVVW(z, x []Digit, y Digit) (c Digit) {
	for i := range z {
		t := Double(x[i])*Double(y) + Double(z[i]) + Double(c)
		z[i] = Digit(t)
		c = Digit(t >> W)
	}
	return c
}

// shlVU computes z = x << s for 0 <= s < W and returns the bits shifted out
// of the top digit. z and x may be the same slice.
func shlVU(z, x []Digit, s uint) (c Digit) {
	n := len(z)
	if n == 0 {
		return 0
	}
	if s == 0 {
		copy(z, x)
		return 0
	}
	ŝ := W - s
	c = x[n-1] >> ŝ
	for i := n - 1; i > 0; i-- {
		z[i] = x[i]<<s | x[i-1]>>ŝ
	}
	z[0] = x[0] << s
	return c
}

// shrVU computes z = x >> s for 0 <= s < W and returns the bits shifted out
// of the bottom digit, left-aligned. z and x may be the same slice.
func shrVU(z, x []Digit, s uint) (c Digit) {
	n := len(z)
	if n == 0 {
		return 0
	}
	if s == 0 {
		copy(z, x)
		return 0
	}
	ŝ := W - s
	c = x[0] << ŝ
	for i := 0; i < n-1; i++ {
		z[i] = x[i]>>s | x[i+1]<<ŝ
	}
	z[n-1] = x[n-1] >> s
	return c
}
