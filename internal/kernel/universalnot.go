package kernel

import (
	"context"
	"math/cmplx"

	"github.com/agbru/qsim/internal/parallel"
	"github.com/agbru/qsim/internal/qstate"
)

// ApplyUniversalNot applies the anti-unitary bit-flip-and-conjugate
// transform on target bit t: for every controlled index i,
//
//	out[i] = sign(i) * conj(state[i XOR 1<<t])
//
// where sign(i) is +1 when bit t of i is clear and -1 otherwise.
// Uncontrolled indices pass through unchanged.
//
// When the control does not constrain bit t, applying the kernel twice
// with the same t and control negates the controlled subspace exactly
// (sign(i)*sign(partner(i)) == -1) and leaves the rest untouched; it is
// not an involution. A control on bit t itself breaks the pairing: the
// partner index is then uncontrolled and passes through, so the second
// pass reads the unmodified partner again.
func ApplyUniversalNot(ctx context.Context, dst, src qstate.Buffer, t int, control qstate.Mask, opts Options) error {
	if err := checkShapes(dst, src, control); err != nil {
		return err
	}
	if err := checkTargetField(src.Qubits(), t, 1); err != nil {
		return err
	}

	bit := 1 << t
	return parallel.For(ctx, len(src), opts.ParallelThreshold, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			if !control.Test(i) {
				dst[i] = src[i]
				continue
			}
			partner := cmplx.Conj(src[i^bit])
			if i&bit == 0 {
				dst[i] = partner
			} else {
				dst[i] = -partner
			}
		}
		return nil
	})
}
