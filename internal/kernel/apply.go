package kernel

import (
	"context"

	"github.com/agbru/qsim/internal/gate"
	"github.com/agbru/qsim/internal/parallel"
	"github.com/agbru/qsim/internal/qstate"
)

// ApplyOperator applies a 2^k-dimensional linear operator to amplitude
// groups sharing all index bits except the target bit-field [t, t+k),
// gated per index by the control mask. This single kernel, parameterized
// only by the operator, the target and the mask, implements every standard
// one- and two-qubit gate, including multi-control gates via the mask.
//
// For every index i with control[i] set, the output is the operator row
// selected by the target-field value of i, multiplied against the 2^k
// sibling amplitudes of i. Indices with control[i] clear pass through
// unchanged. Zero operator entries are skipped in the accumulation, so an
// all-zero row yields an exact-zero amplitude even when siblings hold NaN
// or Inf.
//
// Parameters:
//   - ctx: The context for cancellation between chunks.
//   - dst: The output buffer (same size as src, fully overwritten).
//   - src: The completed input buffer; never written.
//   - op: The operator; its width k determines the target field.
//   - t: The low bit position of the target field.
//   - control: The gating mask produced for this column.
//   - opts: Execution tuning.
//
// Returns:
//   - error: Non-nil on shape or target-field validation failure; dst is
//     untouched in that case.
func ApplyOperator(ctx context.Context, dst, src qstate.Buffer, op gate.Operator, t int, control qstate.Mask, opts Options) error {
	if err := checkShapes(dst, src, control); err != nil {
		return err
	}
	k := op.Width()
	if err := checkTargetField(src.Qubits(), t, k); err != nil {
		return err
	}

	dim := op.Dim()
	fieldMask := (dim - 1) << t

	return parallel.For(ctx, len(src), opts.ParallelThreshold, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			if !control.Test(i) {
				dst[i] = src[i]
				continue
			}
			base := i &^ fieldMask
			row := (i & fieldMask) >> t
			var sum complex128
			for j := 0; j < dim; j++ {
				m := op.At(row, j)
				if m == 0 {
					continue
				}
				sum += m * src[base|(j<<t)]
			}
			dst[i] = sum
		}
		return nil
	})
}
