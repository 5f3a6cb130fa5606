// Package apperrors defines structured application error types,
// allowing for a clear distinction between error classes (configuration,
// resource, evaluation, etc.) and for carrying the underlying cause.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// All error types implement the Unwrap() method to support errors.Is() and errors.As().
//
// Numeric degeneracy (NaN/Inf amplitudes produced by non-unitary operators)
// is deliberately NOT an error class: it propagates as buffer data and is
// flagged by display layers, never by the engine.
package apperrors
