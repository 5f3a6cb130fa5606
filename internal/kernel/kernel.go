package kernel

import (
	"fmt"

	"github.com/agbru/qsim/internal/qstate"
)

// Options carries the execution tuning shared by all kernels.
type Options struct {
	// ParallelThreshold is the minimum index-space size for parallel
	// dispatch; <= 0 selects the substrate default.
	ParallelThreshold int
}

// checkShapes validates that dst, src and control share the same
// power-of-two size. Every kernel runs this before touching a cell, so a
// failed pass never partially writes dst.
func checkShapes(dst, src qstate.Buffer, control qstate.Mask) error {
	if err := qstate.CheckSize(len(src)); err != nil {
		return err
	}
	if len(dst) != len(src) {
		return fmt.Errorf("output length %d does not match state length %d", len(dst), len(src))
	}
	if control.Len() != len(src) {
		return fmt.Errorf("control mask length %d does not match state length %d", control.Len(), len(src))
	}
	return nil
}

// checkTargetField validates that the bit-field [t, t+width) lies inside
// the index space of a buffer with the given qubit count.
func checkTargetField(qubits, t, width int) error {
	if t < 0 || width < 1 || t+width > qubits {
		return fmt.Errorf("target bit-field [%d,%d) outside register of %d qubits", t, t+width, qubits)
	}
	return nil
}
