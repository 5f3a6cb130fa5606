// Package gate defines the value types consumed by the simulation kernels:
// complex linear operators, the standard gate library built from them, and
// control-qubit constraint sets.
package gate

import (
	"fmt"
	"math/bits"
)

// Operator is an immutable square matrix of complex entries of size
// 2^k x 2^k, applied to amplitude groups selected by a target bit-field of
// width k. All standard single-qubit gates have k = 1; SWAP has k = 2.
//
// Entries are stored row-major. Operators are plain values; they are never
// mutated after construction.
type Operator struct {
	dim int
	els []complex128
}

// NewOperator builds an operator from row-major rows. The matrix must be
// square with a power-of-two dimension.
//
// Parameters:
//   - rows: The matrix rows; each row must have len(rows) entries.
//
// Returns:
//   - Operator: The constructed operator.
//   - error: Non-nil when the shape is not a square power of two.
func NewOperator(rows [][]complex128) (Operator, error) {
	dim := len(rows)
	if dim == 0 || dim&(dim-1) != 0 {
		return Operator{}, fmt.Errorf("operator dimension %d is not a power of two", dim)
	}
	els := make([]complex128, 0, dim*dim)
	for r, row := range rows {
		if len(row) != dim {
			return Operator{}, fmt.Errorf("operator row %d has %d entries, want %d", r, len(row), dim)
		}
		els = append(els, row...)
	}
	return Operator{dim: dim, els: els}, nil
}

// mustOperator builds an operator from literal rows, panicking on shape
// errors. Reserved for the compile-time gate library below.
func mustOperator(rows [][]complex128) Operator {
	op, err := NewOperator(rows)
	if err != nil {
		panic(err)
	}
	return op
}

// Dim returns the matrix dimension (2^k).
func (o Operator) Dim() int { return o.dim }

// Width returns the target bit-field width k (log2 of the dimension).
func (o Operator) Width() int {
	if o.dim == 0 {
		return 0
	}
	return bits.Len(uint(o.dim)) - 1
}

// At returns the entry at row r, column c.
func (o Operator) At(r, c int) complex128 { return o.els[r*o.dim+c] }

// IsZero reports whether every entry is exactly zero.
func (o Operator) IsZero() bool {
	for _, e := range o.els {
		if e != 0 {
			return false
		}
	}
	return true
}

// Identity returns the identity operator over a width-k bit-field.
func Identity(k int) Operator {
	dim := 1 << k
	els := make([]complex128, dim*dim)
	for i := 0; i < dim; i++ {
		els[i*dim+i] = 1
	}
	return Operator{dim: dim, els: els}
}

// Zero returns the all-zero operator over a width-k bit-field. It is not
// unitary; it exists for display of degenerate states and for the
// exact-zero output guarantee of the gate kernel.
func Zero(k int) Operator {
	dim := 1 << k
	return Operator{dim: dim, els: make([]complex128, dim*dim)}
}
