package bigint

import (
	"errors"
	"math/rand/v2"
	"testing"
)

// subtractiveGCD is the textbook repeated-subtraction gcd, used as an
// independent reference on small magnitudes.
func subtractiveGCD(a, b uint64) uint64 {
	switch {
	case a == 0:
		return b
	case b == 0:
		return a
	}
	for a != b {
		if a > b {
			a -= b
		} else {
			b -= a
		}
	}
	return a
}

func TestExtendedGCD(t *testing.T) {
	t.Parallel()
	tests := []struct {
		x, y int64
		d    int64
	}{
		{112661, 997, 997},
		{240, 46, 2},
		{-240, 46, 2},
		{240, -46, 2},
		{-240, -46, 2},
		{0, 0, 0},
		{0, 9, 9},
		{-9, 0, 9},
		{17, 5, 1},
	}
	for _, tt := range tests {
		x, y := NewInt64(tt.x), NewInt64(tt.y)
		d, a, b := x.ExtendedGCD(y)
		if d.Int64() != tt.d {
			t.Errorf("gcd(%d, %d) = %s, want %d", tt.x, tt.y, d, tt.d)
		}
		if !x.Mul(a).Add(y.Mul(b)).Equal(d) {
			t.Errorf("Bézout fails for (%d, %d): a=%s b=%s d=%s", tt.x, tt.y, a, b, d)
		}
		if g := x.GCD(y); !g.Equal(d) {
			t.Errorf("GCD(%d, %d) = %s, want %s", tt.x, tt.y, g, d)
		}
	}
}

func TestExtendedGCDRandom(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewPCG(51, 52))
	for i := range 500 {
		xa, ya := r.Uint64N(1<<20), r.Uint64N(1<<20)
		x, y := NewUint64(xa), NewUint64(ya)
		if r.IntN(2) == 0 {
			x = x.Neg()
		}
		if r.IntN(2) == 0 {
			y = y.Neg()
		}
		d, a, b := x.ExtendedGCD(y)
		if want := subtractiveGCD(xa, ya); d.Uint64() != want {
			t.Fatalf("case %d: gcd(%s, %s) = %s, want %d", i, x, y, d, want)
		}
		if !x.Mul(a).Add(y.Mul(b)).Equal(d) {
			t.Fatalf("case %d: Bézout fails for (%s, %s)", i, x, y)
		}
	}
	for i := range 200 {
		x, y := randInt(r, 8), randInt(r, 8)
		d, a, b := x.ExtendedGCD(y)
		if !x.Mul(a).Add(y.Mul(b)).Equal(d) {
			t.Fatalf("case %d: Bézout fails for large (%s, %s)", i, x, y)
		}
		if d.Sign() < 0 {
			t.Fatalf("case %d: negative gcd %s", i, d)
		}
	}
}

func TestModInverse(t *testing.T) {
	t.Parallel()
	tests := []struct {
		x, m int64
		want int64
	}{
		{3, 11, 4},
		{-3, 11, 7},
		{10, 17, 12},
		{1, 2, 1},
		{5, 1, 0},
		{14, 11, 4},
	}
	for _, tt := range tests {
		got, err := NewInt64(tt.x).ModInverse(NewInt64(tt.m))
		if err != nil {
			t.Fatalf("ModInverse(%d, %d): %v", tt.x, tt.m, err)
		}
		if got.Int64() != tt.want {
			t.Errorf("ModInverse(%d, %d) = %s, want %d", tt.x, tt.m, got, tt.want)
		}
	}
}

func TestModInverseErrors(t *testing.T) {
	t.Parallel()
	_, err := NewInt64(2).ModInverse(NewInt64(4))
	if !errors.Is(err, ErrNotInvertible) {
		t.Errorf("ModInverse(2, 4) err = %v, want ErrNotInvertible", err)
	}
	var ae *ArithmeticError
	if !errors.As(err, &ae) || ae.Op != "ModInverse" {
		t.Errorf("ModInverse(2, 4) err = %#v, want *ArithmeticError", err)
	}
	if _, err := NewInt64(2).ModInverse(new(Int)); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("ModInverse(2, 0) err = %v", err)
	}
	if _, err := NewInt64(2).ModInverse(NewInt64(-7)); !errors.Is(err, ErrInvalidModulus) {
		t.Errorf("ModInverse(2, -7) err = %v", err)
	}
}

func TestModInverseLarge(t *testing.T) {
	t.Parallel()
	// 2^127 - 1 is prime, so every value below it is invertible.
	m := MustParse("170141183460469231731687303715884105727", 10)
	r := rand.New(rand.NewPCG(53, 54))
	for range 50 {
		x := randInt(r, 6)
		if xm, _ := x.Mod(m); xm.IsZero() {
			continue
		}
		inv, err := x.ModInverse(m)
		if err != nil {
			t.Fatal(err)
		}
		if one, _ := x.MulMod(inv, m); one.Int64() != 1 {
			t.Fatalf("%s * %s mod m = %s, want 1", x, inv, one)
		}
	}
}
