package bigint

import (
	"slices"

	"github.com/agbru/bigcalc/internal/digits"
)

// Cmp compares x and y and returns -1 if x < y, 0 if x == y and +1 if x > y.
func (x *Int) Cmp(y *Int) int {
	switch {
	case x.neg == y.neg:
		r := digits.Cmp(x.abs, y.abs)
		if x.neg {
			r = -r
		}
		return r
	case x.neg:
		return -1
	default:
		return 1
	}
}

// CmpAbs compares |x| and |y|.
func (x *Int) CmpAbs(y *Int) int { return digits.Cmp(x.abs, y.abs) }

// Equal reports whether x and y hold the same value.
func (x *Int) Equal(y *Int) bool {
	return x.neg == y.neg && slices.Equal(x.abs, y.abs)
}
