// Package bigint implements arbitrary-precision signed integers.
//
// An Int is stored in sign-magnitude form: a sign flag and an unsigned
// magnitude held as little-endian 32-bit digits. Values are immutable once
// constructed. Every operation returns a fresh *Int and never modifies its
// receiver or arguments, so an *Int may be shared freely between goroutines.
//
// The zero value of Int is the number 0 and is ready to use:
//
//	var zero bigint.Int
//	x := bigint.NewInt64(113).Mul(bigint.NewInt64(997)) // 112661
//
// Division truncates towards zero: the quotient sign is the XOR of the
// operand signs and the remainder takes the sign of the dividend. Mod,
// ExpMod and ModInverse return canonical residues in [0, m).
//
// Bitwise operations behave as if the value were stored in an infinitely
// sign-extended two's complement representation, matching math/big.
//
// None of the algorithms run in constant time. The package is not suitable
// for handling secret key material where timing side channels matter.
package bigint

// Version identifies the library release.
const Version = "1.2"
