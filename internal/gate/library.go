// This file defines the standard gate library. Every gate here is a plain
// Operator; the gate kernel parameterized by the operator, target bit and
// control mask implements all of them uniformly.

package gate

import (
	"math"
	"math/cmplx"
)

// invSqrt2 is 1/sqrt(2), the Hadamard normalization factor.
var invSqrt2 = complex(1/math.Sqrt2, 0)

// Hadamard returns the Hadamard gate.
func Hadamard() Operator {
	return mustOperator([][]complex128{
		{invSqrt2, invSqrt2},
		{invSqrt2, -invSqrt2},
	})
}

// X returns the Pauli-X (NOT) gate.
func X() Operator {
	return mustOperator([][]complex128{
		{0, 1},
		{1, 0},
	})
}

// Y returns the Pauli-Y gate.
func Y() Operator {
	return mustOperator([][]complex128{
		{0, -1i},
		{1i, 0},
	})
}

// Z returns the Pauli-Z gate.
func Z() Operator {
	return mustOperator([][]complex128{
		{1, 0},
		{0, -1},
	})
}

// S returns the phase gate S (or its adjoint when dagger is true).
func S(dagger bool) Operator {
	p := complex128(1i)
	if dagger {
		p = -1i
	}
	return mustOperator([][]complex128{
		{1, 0},
		{0, p},
	})
}

// T returns the T gate (or its adjoint when dagger is true).
func T(dagger bool) Operator {
	angle := math.Pi / 4
	if dagger {
		angle = -angle
	}
	return Phase(angle)
}

// Phase returns the phase gate diag(1, e^{i*theta}).
func Phase(theta float64) Operator {
	return mustOperator([][]complex128{
		{1, 0},
		{0, cmplx.Exp(complex(0, theta))},
	})
}

// RX returns the rotation about the X axis by theta.
func RX(theta float64) Operator {
	c := complex(math.Cos(theta/2), 0)
	js := complex(0, -math.Sin(theta/2))
	return mustOperator([][]complex128{
		{c, js},
		{js, c},
	})
}

// RY returns the rotation about the Y axis by theta.
func RY(theta float64) Operator {
	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)
	return mustOperator([][]complex128{
		{c, -s},
		{s, c},
	})
}

// RZ returns the rotation about the Z axis by theta.
func RZ(theta float64) Operator {
	p := cmplx.Exp(complex(0, theta/2))
	return mustOperator([][]complex128{
		{cmplx.Conj(p), 0},
		{0, p},
	})
}

// Swap returns the two-bit SWAP operator over a contiguous width-2 target
// bit-field.
func Swap() Operator {
	return mustOperator([][]complex128{
		{1, 0, 0, 0},
		{0, 0, 1, 0},
		{0, 1, 0, 0},
		{0, 0, 0, 1},
	})
}
