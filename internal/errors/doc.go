// Package apperrors defines the structured error types of the bigcalc
// application layer and the mapping from errors to process exit codes.
//
// Errors raised by the arithmetic engine itself live in package bigint; this
// package wraps them (CalculationError) and classifies them for the command
// line (ExitCodeFor).
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// All wrapping types implement the Unwrap() method to support errors.Is() and errors.As().
package apperrors
