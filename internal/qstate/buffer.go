// Package qstate defines the state containers of the simulation engine:
// the complex amplitude buffer, the per-index control mask, and the pools
// that recycle them across pipeline steps.
package qstate

import (
	"fmt"
	"math"
	"math/bits"
)

// Buffer is a flat, index-addressable vector of complex amplitudes.
// Its length is always an exact power of two: bit q of an index encodes
// the classical basis value of qubit q. No normalization invariant is
// enforced; degenerate (non-unitary) operators may legitimately produce
// non-normalized or non-finite contents.
//
// A Buffer is produced once per pipeline step and must be treated as
// immutable afterward (ping-pong buffering): kernels read a completed
// Buffer and write a fresh one.
type Buffer []complex128

// NewBuffer allocates a zeroed buffer for the given qubit count.
func NewBuffer(qubits int) Buffer {
	return make(Buffer, 1<<qubits)
}

// NewImpulse allocates a buffer holding the impulse basis state: amplitude
// 1 at index 0, zero elsewhere. This is the conventional initial state of
// a circuit evaluation.
func NewImpulse(qubits int) Buffer {
	b := NewBuffer(qubits)
	b[0] = 1
	return b
}

// Qubits returns the number of simulated qubits (log2 of the length).
func (b Buffer) Qubits() int {
	if len(b) == 0 {
		return 0
	}
	return bits.Len(uint(len(b))) - 1
}

// Clone returns a deep copy of the buffer.
func (b Buffer) Clone() Buffer {
	out := make(Buffer, len(b))
	copy(out, b)
	return out
}

// Components returns the buffer as a flat ordered sequence of
// (real, imaginary) pairs in index order. This is the read-only view
// handed to display and statistics collaborators.
func (b Buffer) Components() []float64 {
	out := make([]float64, 0, 2*len(b))
	for _, a := range b {
		out = append(out, real(a), imag(a))
	}
	return out
}

// IsFinite reports whether every amplitude has finite real and imaginary
// parts. Non-finite contents are valid buffer data (see the NumericError
// policy); display layers use this to flag degenerate states distinctly.
func (b Buffer) IsFinite() bool {
	for _, a := range b {
		if math.IsNaN(real(a)) || math.IsInf(real(a), 0) ||
			math.IsNaN(imag(a)) || math.IsInf(imag(a), 0) {
			return false
		}
	}
	return true
}

// Norm returns the squared 2-norm of the buffer (the total probability for
// a normalized state).
func (b Buffer) Norm() float64 {
	var sum float64
	for _, a := range b {
		sum += real(a)*real(a) + imag(a)*imag(a)
	}
	return sum
}

// CheckSize validates that length is a positive exact power of two.
//
// Returns:
//   - error: nil when the length is valid.
func CheckSize(length int) error {
	if length <= 0 || length&(length-1) != 0 {
		return fmt.Errorf("buffer length %d is not a power of two", length)
	}
	return nil
}
