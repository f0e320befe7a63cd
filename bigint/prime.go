package bigint

import "github.com/agbru/bigcalc/internal/digits"

// smallPrimes lists the primes below 256, used for trial division.
var smallPrimes = [...]digits.Digit{
	2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53, 59, 61, 67, 71,
	73, 79, 83, 89, 97, 101, 103, 107, 109, 113, 127, 131, 137, 139, 149, 151,
	157, 163, 167, 173, 179, 181, 191, 193, 197, 199, 211, 223, 227, 229, 233,
	239, 241, 251,
}

// deterministicBases are the first twelve primes. Miller-Rabin with these
// bases has no false positive below 3.18 * 10^23, which covers every 64-bit
// value.
var deterministicBases = [...]digits.Digit{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37}

// WitnessRounds returns the default number of random Miller-Rabin bases for
// a candidate of the given bit length. Each round lets a composite through
// with probability at most 1/4.
func WitnessRounds(bitLen int) int { return 20 + bitLen/64 }

// IsProbablePrime reports whether x is prime, with certainty below 2^64 and
// an error probability of at most 4^-WitnessRounds(x.BitLen()) above.
func (x *Int) IsProbablePrime() bool {
	return x.ProbablyPrime(WitnessRounds(x.BitLen()), nil)
}

// ProbablyPrime performs trial division followed by Miller-Rabin. Values
// below 2^64 are decided exactly with a fixed base set. Larger values are
// tested with base 2 and rounds random bases drawn from src (nil uses the
// default generator). Negative numbers, 0 and 1 are not prime.
func (x *Int) ProbablyPrime(rounds int, src RandomSource) bool {
	if x.neg || len(x.abs) == 0 {
		return false
	}
	n := x.abs
	if len(n) == 1 && n[0] < 2 {
		return false
	}
	if n[0]&1 == 0 {
		return len(n) == 1 && n[0] == 2
	}
	for _, p := range smallPrimes[1:] {
		if len(n) == 1 && n[0] == p {
			return true
		}
		if digits.ModW(n, p) == 0 {
			return false
		}
	}
	// No factor below 256 and n < 256^2 means n is prime.
	if len(n) == 1 && n[0] < 1<<16 {
		return true
	}

	t := newMillerRabin(n)
	if digits.BitLen(n) <= 64 {
		for _, b := range deterministicBases {
			if !t.witness(digits.Nat{b}) {
				return false
			}
		}
		return true
	}
	if !t.witness(digits.Nat{2}) {
		return false
	}
	src = sourceOrDefault(src)
	// Random bases are drawn from [2, n-2].
	span := digits.SubW(n, 3)
	for range rounds {
		b := digits.AddW(randomBelow(span, src), 2)
		if !t.witness(b) {
			return false
		}
	}
	return true
}

// millerRabin holds the decomposition n-1 = q * 2^k of an odd candidate.
type millerRabin struct {
	n, nm1, q digits.Nat
	k         uint
}

func newMillerRabin(n digits.Nat) *millerRabin {
	nm1 := digits.SubW(n, 1)
	k := digits.TrailingZeros(nm1)
	return &millerRabin{n: n, nm1: nm1, q: digits.Shr(nm1, k), k: k}
}

// witness reports whether n passes the strong probable prime test to base
// b, with 1 < b < n-1.
func (t *millerRabin) witness(b digits.Nat) bool {
	y := expModNat(b, t.q, t.n)
	if digits.IsOne(y) || digits.Cmp(y, t.nm1) == 0 {
		return true
	}
	for j := uint(1); j < t.k; j++ {
		y = digits.Rem(digits.Mul(y, y), t.n)
		if digits.Cmp(y, t.nm1) == 0 {
			return true
		}
		if digits.IsOne(y) {
			return false
		}
	}
	return false
}

// NextProbablePrime returns the smallest probable prime strictly greater
// than x. Anything below 2 yields 2.
func (x *Int) NextProbablePrime() *Int {
	two := digits.Nat{2}
	if x.neg || digits.Cmp(x.abs, two) < 0 {
		return NewInt64(2)
	}
	c := digits.AddW(x.abs, 1)
	if c[0]&1 == 0 {
		c = digits.AddW(c, 1)
	}
	for {
		z := &Int{abs: c}
		if z.IsProbablePrime() {
			return z
		}
		c = digits.AddW(c, 2)
	}
}
