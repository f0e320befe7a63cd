package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agbru/bigcalc/bigint"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess         = 0   // Indicates successful execution.
	ExitErrorGeneric    = 1   // Indicates a generic error.
	ExitErrorTimeout    = 2   // Indicates the operation timed out.
	ExitErrorArithmetic = 3   // Indicates an undefined arithmetic operation or bad operand.
	ExitErrorConfig     = 4   // Indicates a configuration error.
	ExitErrorCanceled   = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as an invalid flag,
// environment variable or configuration file entry.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CalculationError records which command failed while keeping the engine
// error reachable through errors.Is and errors.As.
type CalculationError struct {
	// Op is the name of the command that failed, e.g. "expmod".
	Op string
	// Cause is the underlying error that triggered this calculation error.
	Cause error
}

// Error returns the operation name followed by the cause message.
func (e CalculationError) Error() string {
	if e.Op == "" {
		return e.Cause.Error()
	}
	return e.Op + ": " + e.Cause.Error()
}

// Unwrap returns the original wrapped error.
//
// Returns:
//   - error: The underlying cause of the CalculationError.
func (e CalculationError) Unwrap() error { return e.Cause }

// TimeoutError represents a command that did not finish within the
// configured limit.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError represents an operand or argument rejected before any
// arithmetic took place: wrong arity, an unknown variable, a value out of
// the range a command accepts.
type ValidationError struct {
	// Field is the name of the argument that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCodeFor classifies err into one of the Exit* codes. Engine errors
// (arithmetic, argument and parse errors) and validation failures map to
// ExitErrorArithmetic; nil maps to ExitSuccess.
//
// Parameters:
//   - err: The error returned by a command, possibly wrapped.
//
// Returns:
//   - int: The process exit code.
func ExitCodeFor(err error) int {
	var (
		configErr     ConfigError
		timeoutErr    TimeoutError
		validationErr ValidationError
		arithErr      *bigint.ArithmeticError
		argErr        *bigint.ArgumentError
		parseErr      *bigint.ParseError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &configErr):
		return ExitErrorConfig
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &arithErr), errors.As(err, &argErr), errors.As(err, &parseErr),
		errors.As(err, &validationErr):
		return ExitErrorArithmetic
	default:
		return ExitErrorGeneric
	}
}
