package bigint

import (
	"fmt"
	"slices"
	"strings"

	"github.com/agbru/bigcalc/internal/digits"
)

// Radix bounds accepted by Parse and Text.
const (
	MinRadix = 2
	MaxRadix = 36
)

const digitChars = "0123456789abcdefghijklmnopqrstuvwxyz"

// radixPower returns the largest power of radix that fits in a digit,
// together with its exponent.
func radixPower(radix digits.Digit) (bb digits.Digit, n int) {
	bb, n = radix, 1
	for {
		next := digits.Double(bb) * digits.Double(radix)
		if next >= digits.B {
			return bb, n
		}
		bb = digits.Digit(next)
		n++
	}
}

// digitValue returns the value of an ASCII digit or letter, or 255 for any
// other byte. Letters are case-insensitive.
func digitValue(ch byte) digits.Digit {
	switch {
	case '0' <= ch && ch <= '9':
		return digits.Digit(ch - '0')
	case 'a' <= ch && ch <= 'z':
		return digits.Digit(ch-'a') + 10
	case 'A' <= ch && ch <= 'Z':
		return digits.Digit(ch-'A') + 10
	}
	return 255
}

// Parse interprets s as an integer in the given radix. s may start with a
// single '+' or '-' and must contain at least one digit; no other characters
// are accepted. Letters stand for the digit values 10 to 35 in either case.
func Parse(s string, radix int) (*Int, error) {
	if radix < MinRadix || radix > MaxRadix {
		return nil, &ParseError{Input: s, Radix: radix, Offset: -1, Err: ErrInvalidRadix}
	}
	r := digits.Digit(radix)

	i, neg := 0, false
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		i++
	}
	if i == len(s) {
		return nil, &ParseError{Input: s, Radix: radix, Offset: i, Err: ErrInvalidDigit}
	}

	// Accumulate chunks of up to n digits in a single word, then fold them
	// into the magnitude with one multiply-add.
	bb, n := radixPower(r)
	var z digits.Nat
	var acc, pow digits.Digit = 0, 1
	count := 0
	for j := i; j < len(s); j++ {
		d := digitValue(s[j])
		if d >= r {
			return nil, &ParseError{Input: s, Radix: radix, Offset: j, Err: ErrInvalidDigit}
		}
		acc = acc*r + d
		pow *= r
		count++
		if count == n {
			z = digits.MulAddW(z, bb, acc)
			acc, pow, count = 0, 1, 0
		}
	}
	if count > 0 {
		z = digits.MulAddW(z, pow, acc)
	}
	return newInt(neg, z), nil
}

// MustParse is like Parse but panics on error. It simplifies
// initialization of package-level values.
func MustParse(s string, radix int) *Int {
	x, err := Parse(s, radix)
	if err != nil {
		panic(err)
	}
	return x
}

// Text returns the representation of x in the given radix, using lowercase
// letters for digit values above 9 and a leading '-' for negative values.
func (x *Int) Text(radix int) (string, error) {
	if radix < MinRadix || radix > MaxRadix {
		return "", &ArgumentError{Op: "Text", Err: ErrInvalidRadix}
	}
	return string(x.appendText(nil, digits.Digit(radix))), nil
}

// appendText appends the radix representation of x to buf.
func (x *Int) appendText(buf []byte, radix digits.Digit) []byte {
	if len(x.abs) == 0 {
		return append(buf, '0')
	}
	start := len(buf)
	// Peel off chunks of n digits with one single-digit division each. Every
	// chunk but the most significant is padded to n characters.
	bb, n := radixPower(radix)
	q := x.abs
	for len(q) > 0 {
		var r digits.Digit
		q, r = digits.DivW(q, bb)
		for k := 0; k < n && (len(q) > 0 || r > 0); k++ {
			buf = append(buf, digitChars[r%radix])
			r /= radix
		}
	}
	if x.neg {
		buf = append(buf, '-')
	}
	slices.Reverse(buf[start:])
	return buf
}

// String returns the decimal representation of x.
func (x *Int) String() string {
	if x == nil {
		return "<nil>"
	}
	return string(x.appendText(nil, 10))
}

// Format implements fmt.Formatter. It accepts the verbs 'b', 'o', 'd', 'x',
// 'X', 's' and 'v', and the '+' flag.
func (x *Int) Format(s fmt.State, ch rune) {
	var radix digits.Digit
	switch ch {
	case 'b':
		radix = 2
	case 'o':
		radix = 8
	case 'd', 's', 'v':
		radix = 10
	case 'x', 'X':
		radix = 16
	default:
		fmt.Fprintf(s, "%%!%c(bigint.Int=%s)", ch, x.String())
		return
	}
	if x == nil {
		fmt.Fprint(s, "<nil>")
		return
	}
	buf := x.appendText(nil, radix)
	if s.Flag('+') && !x.neg {
		buf = append([]byte{'+'}, buf...)
	}
	out := string(buf)
	if ch == 'X' {
		out = strings.ToUpper(out)
	}
	if w, ok := s.Width(); ok && len(out) < w {
		out = strings.Repeat(" ", w-len(out)) + out
	}
	fmt.Fprint(s, out)
}
