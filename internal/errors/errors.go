package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the operation timed out.
	ExitErrorResource = 3   // Indicates the index space exceeds the configured limits.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorMismatch = 5   // Indicates execution lanes produced inconsistent states.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
//
// Returns:
//   - string: The error message string.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
// It allows for the creation of configuration-specific errors with dynamic
// content.
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

// GateError represents an invalid gate placement detected during eager
// validation, before any kernel pass runs. It identifies the offending
// column and wire so the failure can be traced back to the circuit
// definition.
type GateError struct {
	// Column is the zero-based circuit column of the offending gate.
	Column int
	// Wire is the target bit position of the offending gate.
	Wire int
	// Cause is the underlying validation failure.
	Cause error
}

// Error returns a formatted message identifying the gate and its failure.
//
// Returns:
//   - string: The error message string.
func (e GateError) Error() string {
	return fmt.Sprintf("column %d, wire %d: %v", e.Column, e.Wire, e.Cause)
}

// Unwrap returns the underlying validation failure, allowing for error
// chain inspection (e.g., using errors.Is or errors.As).
//
// Returns:
//   - error: The underlying cause of the GateError.
func (e GateError) Unwrap() error { return e.Cause }

// NewGateError creates a GateError for the given column and wire wrapping
// a formatted cause.
func NewGateError(column, wire int, format string, a ...any) error {
	return GateError{Column: column, Wire: wire, Cause: fmt.Errorf(format, a...)}
}

// EvaluationError encapsulates a circuit evaluation error while preserving
// the original cause. This allows for structured error handling and
// inspection of what went wrong during simulation.
type EvaluationError struct {
	// Cause is the underlying error that triggered this evaluation error.
	Cause error
}

// Error returns the error message from the underlying cause.
//
// Returns:
//   - string: The error message string from the wrapped error.
func (e EvaluationError) Error() string { return e.Cause.Error() }

// Unwrap returns the original wrapped error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
//
// Returns:
//   - error: The underlying cause of the EvaluationError.
func (e EvaluationError) Unwrap() error { return e.Cause }

// TimeoutError represents an evaluation timeout. It captures the operation
// name and the duration limit that was exceeded.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
//
// Returns:
//   - string: The error message string.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ResourceError represents an index space that exceeds the execution
// backend's addressable buffer size. It captures the requested and maximum
// buffer lengths for diagnostic purposes. It is always raised before any
// kernel pass executes.
type ResourceError struct {
	// Qubits is the requested qubit count.
	Qubits int
	// Requested is the amplitude count the request implies (2^Qubits).
	Requested uint64
	// Limit is the configured maximum amplitude count.
	Limit uint64
}

// Error returns a formatted message describing the resource error.
//
// Returns:
//   - string: The error message string.
func (e ResourceError) Error() string {
	return fmt.Sprintf("resource error: %d qubits require %d amplitudes, limit is %d", e.Qubits, e.Requested, e.Limit)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
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
//
// Parameters:
//   - err: The error to check.
//
// Returns:
//   - bool: true if the error is a context error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCodeFor maps an error to the application exit code that should be
// reported to the OS. Nil maps to ExitSuccess.
func ExitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	default:
	}

	var timeoutErr TimeoutError
	if errors.As(err, &timeoutErr) {
		return ExitErrorTimeout
	}
	var resErr ResourceError
	if errors.As(err, &resErr) {
		return ExitErrorResource
	}
	var cfgErr ConfigError
	var gateErr GateError
	if errors.As(err, &cfgErr) || errors.As(err, &gateErr) {
		return ExitErrorConfig
	}
	return ExitErrorGeneric
}
