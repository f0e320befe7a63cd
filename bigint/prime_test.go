package bigint

import (
	"math/rand/v2"
	"testing"
)

// sieve returns the primality of every integer below n.
func sieve(n int) []bool {
	composite := make([]bool, n)
	composite[0], composite[1] = true, true
	for i := 2; i*i < n; i++ {
		if !composite[i] {
			for j := i * i; j < n; j += i {
				composite[j] = true
			}
		}
	}
	isPrime := make([]bool, n)
	for i := range isPrime {
		isPrime[i] = !composite[i]
	}
	return isPrime
}

func TestIsProbablePrimeExhaustive(t *testing.T) {
	t.Parallel()
	primes := sieve(10000)
	for i := range primes {
		if got := NewInt64(int64(i)).IsProbablePrime(); got != primes[i] {
			t.Fatalf("IsProbablePrime(%d) = %v, want %v", i, got, primes[i])
		}
	}
}

func TestIsProbablePrimeKnownValues(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		x     string
		prime bool
	}{
		{"negative_prime_magnitude", "-7", false},
		{"carmichael_561", "561", false},
		{"carmichael_41041", "41041", false},
		{"prime_65537", "65537", true},
		{"square_of_257", "66049", false},
		{"mersenne_31", "2147483647", true},
		{"strong_pseudoprime_base2", "3215031751", false},
		{"mersenne_61", "2305843009213693951", true},
		{"largest_prime_below_2_64", "18446744073709551557", true},
		{"max_uint64", "18446744073709551615", false},
		{"psp_all_first_11_bases", "3825123056546413051", false},
		{"mersenne_89", "618970019642690137449562111", true},
		{"mersenne_67_composite", "147573952589676412927", false},
		{"mersenne_127", "170141183460469231731687303715884105727", true},
		{"product_of_two_64bit_primes", "340282366920938460843936948965011886881", false},
		{"chernick_carmichael_130bit", "1296000004358844004886708077826165821249", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := mustParse(t, tt.x).IsProbablePrime(); got != tt.prime {
				t.Errorf("IsProbablePrime(%s) = %v, want %v", tt.x, got, tt.prime)
			}
		})
	}
}

func TestProbablyPrimeAgreesWithMathBig(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewPCG(61, 62))
	src := rand.New(rand.NewPCG(63, 64))
	for i := range 300 {
		x := randInt(r, 4).Abs().Or(NewInt64(1))
		want := x.ToBig().ProbablyPrime(20)
		if got := x.ProbablyPrime(10, src); got != want {
			t.Fatalf("case %d: ProbablyPrime(%s) = %v, math/big says %v", i, x, got, want)
		}
	}
}

func TestNextProbablePrime(t *testing.T) {
	t.Parallel()
	tests := []struct {
		x, want string
	}{
		{"-100", "2"},
		{"0", "2"},
		{"1", "2"},
		{"2", "3"},
		{"3", "5"},
		{"7", "11"},
		{"8", "11"},
		{"113", "127"},
		{"9973", "10007"},
		{"18446744073709551557", "18446744073709551629"},
		{"170141183460469231731687303715884105727", "170141183460469231731687303715884105757"},
	}
	for _, tt := range tests {
		got := mustParse(t, tt.x).NextProbablePrime()
		checkValid(t, "NextProbablePrime", got)
		if got.String() != tt.want {
			t.Errorf("NextProbablePrime(%s) = %s, want %s", tt.x, got, tt.want)
		}
	}
}

func TestWitnessRounds(t *testing.T) {
	t.Parallel()
	if WitnessRounds(0) != 20 || WitnessRounds(64) != 21 || WitnessRounds(2048) != 52 {
		t.Errorf("WitnessRounds = %d, %d, %d", WitnessRounds(0), WitnessRounds(64), WitnessRounds(2048))
	}
}
