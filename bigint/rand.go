package bigint

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"

	"github.com/agbru/bigcalc/internal/digits"
)

// RandomSource supplies uniformly distributed 32-bit words.
type RandomSource interface {
	Uint32() uint32
}

// CryptoSource draws from the operating system's CSPRNG.
type CryptoSource struct{}

// Uint32 returns 32 random bits from crypto/rand.
func (CryptoSource) Uint32() uint32 {
	var b [4]byte
	if _, err := crand.Read(b[:]); err != nil {
		panic("bigint: crypto/rand: " + err.Error())
	}
	return binary.LittleEndian.Uint32(b[:])
}

// fastSource is the default source, backed by the runtime's ChaCha8 state.
type fastSource struct{}

func (fastSource) Uint32() uint32 { return rand.Uint32() }

func sourceOrDefault(src RandomSource) RandomSource {
	if src == nil {
		return fastSource{}
	}
	return src
}

// Random returns a non-negative integer of at most bitCount random bits.
// With exact set the top bit is forced, so the result has exactly bitCount
// bits. A nil src uses a fast non-cryptographic generator.
func Random(bitCount int, exact bool, src RandomSource) (*Int, error) {
	if bitCount < 0 {
		return nil, &ArgumentError{Op: "Random", Err: ErrNegativeBitCount}
	}
	return newInt(false, randomBits(uint(bitCount), exact, sourceOrDefault(src))), nil
}

func randomBits(n uint, exact bool, src RandomSource) digits.Nat {
	if n == 0 {
		return nil
	}
	z := make(digits.Nat, (n+digits.W-1)/digits.W)
	for i := range z {
		z[i] = src.Uint32()
	}
	top := len(z) - 1
	if r := n % digits.W; r != 0 {
		z[top] &= digits.Digit(1)<<r - 1
	}
	if exact {
		z[top] |= digits.Digit(1) << ((n - 1) % digits.W)
	}
	return z
}

// randomBelow returns a value in [0, bound) for bound > 0. It rejects
// samples at or above bound, which needs fewer than two draws on average.
func randomBelow(bound digits.Nat, src RandomSource) digits.Nat {
	n := uint(digits.BitLen(bound))
	for {
		z := randomBits(n, false, src).Norm()
		if digits.Cmp(z, bound) < 0 {
			return z
		}
	}
}
