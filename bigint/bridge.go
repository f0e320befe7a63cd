package bigint

import (
	"math/big"
	"math/bits"

	"github.com/agbru/bigcalc/internal/digits"
)

// FromBig returns an Int with the value of b. A nil b yields zero.
func FromBig(b *big.Int) *Int {
	if b == nil {
		return new(Int)
	}
	words := b.Bits()
	abs := make(digits.Nat, 0, len(words)*bits.UintSize/digits.W)
	for _, w := range words {
		abs = append(abs, digits.Digit(w))
		if bits.UintSize == 64 {
			abs = append(abs, digits.Digit(uint64(w)>>32))
		}
	}
	return newInt(b.Sign() < 0, abs)
}

// ToBig returns x as a new *big.Int.
func (x *Int) ToBig() *big.Int {
	words := make([]big.Word, 0, len(x.abs))
	if bits.UintSize == 64 {
		for i := 0; i < len(x.abs); i += 2 {
			w := uint64(x.abs[i])
			if i+1 < len(x.abs) {
				w |= uint64(x.abs[i+1]) << 32
			}
			words = append(words, big.Word(w))
		}
	} else {
		for _, d := range x.abs {
			words = append(words, big.Word(d))
		}
	}
	z := new(big.Int).SetBits(words)
	if x.neg {
		z.Neg(z)
	}
	return z
}
