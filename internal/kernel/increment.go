package kernel

import (
	"context"

	"github.com/agbru/qsim/internal/parallel"
	"github.com/agbru/qsim/internal/qstate"
)

// ApplyIncrement applies modular addition of amount to the register
// occupying index bits [t, t+span). For every controlled output index the
// kernel gathers from the source index whose register value is
// (reg - amount) mod 2^span (non-negative modulo), so the register's
// classical content is advanced by amount. amount may be negative;
// amount == 0 is the identity.
//
// The pass is a pure gather: every output cell reads exactly one source
// cell, so it is hazard-free under any dispatch order.
//
// The control check is evaluated on the output index. This matches the
// intended "controlled register increment" only when every constrained
// control qubit lies outside [t, t+span); that disjointness is a caller
// precondition, not checked here, because the literal per-index formula
// is still well defined without it.
func ApplyIncrement(ctx context.Context, dst, src qstate.Buffer, t, span int, amount int64, control qstate.Mask, opts Options) error {
	if err := checkShapes(dst, src, control); err != nil {
		return err
	}
	if err := checkTargetField(src.Qubits(), t, span); err != nil {
		return err
	}

	size := int64(1) << span
	// Non-negative modulo of -amount, so srcReg = (reg - amount) mod 2^span
	// reduces to an addition inside the loop.
	delta := int(((-amount)%size + size) % size)
	regMask := (int(size) - 1) << t

	return parallel.For(ctx, len(src), opts.ParallelThreshold, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			if !control.Test(i) {
				dst[i] = src[i]
				continue
			}
			base := i &^ regMask
			reg := (i & regMask) >> t
			srcReg := (reg + delta) & (int(size) - 1)
			dst[i] = src[base|(srcReg<<t)]
		}
		return nil
	})
}
