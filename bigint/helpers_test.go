package bigint

import (
	"math/big"
	"math/rand/v2"
	"testing"

	"github.com/agbru/bigcalc/internal/digits"
)

// --- Helper functions ---

// fromDigits builds an Int from raw little-endian digits.
func fromDigits(neg bool, ds []uint32) *Int {
	return newInt(neg, digits.Clone(digits.Nat(ds), 0))
}

// randInt returns a random Int of up to maxDigits digits, negative half the
// time, with a bias towards all-zero and all-one digits.
func randInt(r *rand.Rand, maxDigits int) *Int {
	ds := make([]uint32, r.IntN(maxDigits+1))
	for i := range ds {
		switch r.IntN(8) {
		case 0:
			ds[i] = 0
		case 1:
			ds[i] = ^uint32(0)
		default:
			ds[i] = r.Uint32()
		}
	}
	return fromDigits(r.IntN(2) == 0, ds)
}

// mustParse parses a decimal literal or fails the test.
func mustParse(t testing.TB, s string) *Int {
	t.Helper()
	x, err := Parse(s, 10)
	if err != nil {
		t.Fatalf("Parse(%q): %v", s, err)
	}
	return x
}

// checkValid fails the test if x breaks the sign-magnitude invariants.
func checkValid(t testing.TB, op string, x *Int) {
	t.Helper()
	if err := x.validate(); err != nil {
		t.Fatalf("%s produced an invalid value: %v", op, err)
	}
}

// sameAsBig reports whether x equals the math/big reference value.
func sameAsBig(x *Int, want *big.Int) bool {
	return x.ToBig().Cmp(want) == 0
}
