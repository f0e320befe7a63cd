package bigint

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the arithmetic operations. They are always
// wrapped in an *ArithmeticError, *ArgumentError or *ParseError and should be
// matched with errors.Is.
var (
	ErrDivisionByZero      = errors.New("division by zero")
	ErrInvalidModulus      = errors.New("modulus must be positive")
	ErrNotInvertible       = errors.New("value is not invertible for the modulus")
	ErrNegativeShiftCount  = errors.New("negative shift count")
	ErrNegativeBitCount    = errors.New("negative bit count")
	ErrNegativeWidth       = errors.New("negative bit width")
	ErrInvalidRadix        = errors.New("radix must be in [2, 36]")
	ErrInvalidDigit        = errors.New("invalid digit")
	ErrBufferTooSmall      = errors.New("buffer too small")
	ErrInvalidEncoding     = errors.New("invalid binary encoding")
	ErrUnsupportedEncoding = errors.New("unsupported encoding version")
)

// ArithmeticError reports a mathematically undefined operation such as a
// division by zero or the inverse of a non-unit.
type ArithmeticError struct {
	// Op is the name of the failing operation.
	Op string
	// Err is one of the package sentinel errors.
	Err error
}

func (e *ArithmeticError) Error() string { return "bigint: " + e.Op + ": " + e.Err.Error() }

// Unwrap returns the underlying sentinel error.
func (e *ArithmeticError) Unwrap() error { return e.Err }

// ArgumentError reports an argument outside the domain of an operation,
// like a negative shift count or an out-of-range radix.
type ArgumentError struct {
	Op  string
	Err error
}

func (e *ArgumentError) Error() string { return "bigint: " + e.Op + ": " + e.Err.Error() }

// Unwrap returns the underlying sentinel error.
func (e *ArgumentError) Unwrap() error { return e.Err }

// ParseError reports a string that is not a valid integer in the requested
// radix. Offset is the byte offset of the first offending character, or -1
// when the radix itself is invalid.
type ParseError struct {
	Input  string
	Radix  int
	Offset int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("bigint: parsing %q: %v", e.Input, e.Err)
	}
	return fmt.Sprintf("bigint: parsing %q (radix %d) at offset %d: %v", e.Input, e.Radix, e.Offset, e.Err)
}

// Unwrap returns the underlying sentinel error.
func (e *ParseError) Unwrap() error { return e.Err }

func divisionByZero(op string) error {
	return &ArithmeticError{Op: op, Err: ErrDivisionByZero}
}

// checkModulus validates a modulus for the modular operations.
func checkModulus(op string, m *Int) error {
	switch {
	case len(m.abs) == 0:
		return divisionByZero(op)
	case m.neg:
		return &ArithmeticError{Op: op, Err: ErrInvalidModulus}
	}
	return nil
}
