// Package stats computes display statistics from exposed amplitude
// buffers. It is a read-only collaborator of the engine: nothing here
// feeds back into a kernel pass.
package stats

import (
	"math"
	"math/cmplx"

	"github.com/agbru/qsim/internal/qstate"
)

// WireProbability is the measurement distribution of one wire.
type WireProbability struct {
	// Zero is the summed probability of the wire reading 0.
	Zero float64
	// One is the summed probability of the wire reading 1.
	One float64
}

// WireProbabilities sums |amplitude|^2 per wire value over the whole
// buffer. The result is unnormalized exactly when the buffer is: callers
// displaying degenerate (non-unitary) states get the raw sums.
func WireProbabilities(state qstate.Buffer) []WireProbability {
	qubits := state.Qubits()
	probs := make([]WireProbability, qubits)
	for i, amp := range state {
		p := real(amp)*real(amp) + imag(amp)*imag(amp)
		for q := 0; q < qubits; q++ {
			if i&(1<<q) != 0 {
				probs[q].One += p
			} else {
				probs[q].Zero += p
			}
		}
	}
	return probs
}

// TotalProbability returns the squared norm of the buffer, 1 for any
// normalized state.
func TotalProbability(state qstate.Buffer) float64 {
	var total float64
	for _, amp := range state {
		total += real(amp)*real(amp) + imag(amp)*imag(amp)
	}
	return total
}

// Amplitude describes one basis state for display.
type Amplitude struct {
	Index       int
	Value       complex128
	Probability float64
	// Finite is false when the amplitude carries NaN or Inf, which the
	// display layer must flag distinctly.
	Finite bool
}

// Amplitudes lists every basis state of the buffer in index order.
func Amplitudes(state qstate.Buffer) []Amplitude {
	out := make([]Amplitude, len(state))
	for i, amp := range state {
		out[i] = Amplitude{
			Index:       i,
			Value:       amp,
			Probability: real(amp)*real(amp) + imag(amp)*imag(amp),
			Finite:      !cmplx.IsNaN(amp) && !cmplx.IsInf(amp),
		}
	}
	return out
}

// NonZero filters Amplitudes down to entries whose probability exceeds
// the threshold, keeping non-finite entries so they are never hidden.
func NonZero(amps []Amplitude, threshold float64) []Amplitude {
	var out []Amplitude
	for _, a := range amps {
		if !a.Finite || a.Probability > threshold || math.IsNaN(a.Probability) {
			out = append(out, a)
		}
	}
	return out
}
