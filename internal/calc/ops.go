package calc

import (
	"fortio.org/safecast"

	"github.com/agbru/bigcalc/bigint"
	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// one wraps a single result.
func one(x *bigint.Int) []*bigint.Int { return []*bigint.Int{x} }

// oneErr wraps a single fallible result.
func oneErr(x *bigint.Int, err error) ([]*bigint.Int, error) {
	if err != nil {
		return nil, err
	}
	return one(x), nil
}

func binary(f func(x, y *bigint.Int) *bigint.Int) EvalFunc {
	return func(_ Env, a []*bigint.Int) ([]*bigint.Int, error) { return one(f(a[0], a[1])), nil }
}

func binaryErr(f func(x, y *bigint.Int) (*bigint.Int, error)) EvalFunc {
	return func(_ Env, a []*bigint.Int) ([]*bigint.Int, error) { return oneErr(f(a[0], a[1])) }
}

func unary(f func(x *bigint.Int) *bigint.Int) EvalFunc {
	return func(_ Env, a []*bigint.Int) ([]*bigint.Int, error) { return one(f(a[0])), nil }
}

func boolInt(b bool) *bigint.Int {
	if b {
		return bigint.NewInt64(1)
	}
	return new(bigint.Int)
}

// smallInt converts an argument that must fit a machine int, such as a shift
// count or a bit width. Negative values pass through so that the engine
// reports them with its own error.
func smallInt(field string, x *bigint.Int) (int, error) {
	if !x.IsInt64() {
		return 0, apperrors.ValidationError{Field: field, Message: "value out of range"}
	}
	n, err := safecast.Conv[int](x.Int64())
	if err != nil {
		return 0, apperrors.ValidationError{Field: field, Message: err.Error()}
	}
	return n, nil
}

// exponent converts a power argument to the 32-bit range Exp accepts.
func exponent(x *bigint.Int) (uint32, error) {
	if x.Sign() < 0 || !x.IsUint64() {
		return 0, apperrors.ValidationError{Field: "exponent", Message: "must be a non-negative 32-bit value"}
	}
	e, err := safecast.Conv[uint32](x.Uint64())
	if err != nil {
		return 0, apperrors.ValidationError{Field: "exponent", Message: "must be a non-negative 32-bit value"}
	}
	return e, nil
}

func withInt(field string, f func(x *bigint.Int, n int) (*bigint.Int, error)) EvalFunc {
	return func(_ Env, a []*bigint.Int) ([]*bigint.Int, error) {
		n, err := smallInt(field, a[1])
		if err != nil {
			return nil, err
		}
		return oneErr(f(a[0], n))
	}
}

func builtins() []Operation {
	return []Operation{
		{Name: "add", Arity: 2, Usage: "add x y", Eval: binary((*bigint.Int).Add)},
		{Name: "sub", Arity: 2, Usage: "sub x y", Eval: binary((*bigint.Int).Sub)},
		{Name: "mul", Arity: 2, Usage: "mul x y", Eval: binary((*bigint.Int).Mul)},
		{Name: "quorem", Arity: 2, Usage: "quorem x y  (truncated quotient and remainder)",
			Eval: func(_ Env, a []*bigint.Int) ([]*bigint.Int, error) {
				q, r, err := a[0].QuoRem(a[1])
				if err != nil {
					return nil, err
				}
				return []*bigint.Int{q, r}, nil
			}},
		{Name: "quo", Arity: 2, Usage: "quo x y  (truncated toward zero)", Eval: binaryErr((*bigint.Int).Quo)},
		{Name: "rem", Arity: 2, Usage: "rem x y  (sign of x)", Eval: binaryErr((*bigint.Int).Rem)},
		{Name: "mod", Arity: 2, Usage: "mod x m  (result in [0, m))", Eval: binaryErr((*bigint.Int).Mod)},
		{Name: "mulmod", Arity: 3, Usage: "mulmod x y m",
			Eval: func(_ Env, a []*bigint.Int) ([]*bigint.Int, error) { return oneErr(a[0].MulMod(a[1], a[2])) }},
		{Name: "exp", Arity: 2, Usage: "exp x e  (e < 2^32)",
			Eval: func(_ Env, a []*bigint.Int) ([]*bigint.Int, error) {
				e, err := exponent(a[1])
				if err != nil {
					return nil, err
				}
				return one(a[0].Exp(e)), nil
			}},
		{Name: "expmod", Arity: 3, Usage: "expmod x e m",
			Eval: func(_ Env, a []*bigint.Int) ([]*bigint.Int, error) { return oneErr(a[0].ExpMod(a[1], a[2])) }},
		{Name: "lsh", Arity: 2, Usage: "lsh x n", Eval: withInt("shift", (*bigint.Int).Lsh)},
		{Name: "rsh", Arity: 2, Usage: "rsh x n  (floor division by 2^n)", Eval: withInt("shift", (*bigint.Int).Rsh)},
		{Name: "and", Arity: 2, Usage: "and x y", Eval: binary((*bigint.Int).And)},
		{Name: "or", Arity: 2, Usage: "or x y", Eval: binary((*bigint.Int).Or)},
		{Name: "xor", Arity: 2, Usage: "xor x y", Eval: binary((*bigint.Int).Xor)},
		{Name: "andnot", Arity: 2, Usage: "andnot x y", Eval: binary((*bigint.Int).AndNot)},
		{Name: "not", Arity: 1, Usage: "not x  (-x-1)", Eval: unary((*bigint.Int).Not)},
		{Name: "notw", Arity: 2, Usage: "notw x width", Eval: withInt("width", (*bigint.Int).NotWidth)},
		{Name: "gcd", Arity: 2, Usage: "gcd x y", Eval: binary((*bigint.Int).GCD)},
		{Name: "egcd", Arity: 2, Usage: "egcd x y  (d, a, b with a*x + b*y = d)",
			Eval: func(_ Env, a []*bigint.Int) ([]*bigint.Int, error) {
				d, s, t := a[0].ExtendedGCD(a[1])
				return []*bigint.Int{d, s, t}, nil
			}},
		{Name: "inverse", Arity: 2, Usage: "inverse x m", Eval: binaryErr((*bigint.Int).ModInverse)},
		{Name: "isprime", Arity: 1, Usage: "isprime n  (1 if probably prime, else 0)",
			Eval: func(env Env, a []*bigint.Int) ([]*bigint.Int, error) {
				if env.Rounds == 0 && env.Source == nil {
					return one(boolInt(a[0].IsProbablePrime())), nil
				}
				rounds := env.Rounds
				if rounds == 0 {
					rounds = bigint.WitnessRounds(a[0].BitLen())
				}
				return one(boolInt(a[0].ProbablyPrime(rounds, env.Source))), nil
			}},
		{Name: "nextprime", Arity: 1, Usage: "nextprime n  (smallest probable prime > n)",
			Eval: func(_ Env, a []*bigint.Int) ([]*bigint.Int, error) { return one(a[0].NextProbablePrime()), nil }},
		{Name: "random", Arity: 1, Usage: "random bits  (uniform in [0, 2^bits))",
			Eval: func(env Env, a []*bigint.Int) ([]*bigint.Int, error) {
				n, err := smallInt("bits", a[0])
				if err != nil {
					return nil, err
				}
				return oneErr(bigint.Random(n, false, env.Source))
			}},
		{Name: "abs", Arity: 1, Usage: "abs x", Eval: unary((*bigint.Int).Abs)},
		{Name: "neg", Arity: 1, Usage: "neg x", Eval: unary((*bigint.Int).Neg)},
		{Name: "cmp", Arity: 2, Usage: "cmp x y  (-1, 0 or 1)",
			Eval: func(_ Env, a []*bigint.Int) ([]*bigint.Int, error) {
				return one(bigint.NewInt64(int64(a[0].Cmp(a[1])))), nil
			}},
		{Name: "bitlen", Arity: 1, Usage: "bitlen x",
			Eval: func(_ Env, a []*bigint.Int) ([]*bigint.Int, error) {
				return one(bigint.NewInt64(int64(a[0].BitLen()))), nil
			}},
	}
}
