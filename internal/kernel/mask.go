package kernel

import (
	"context"

	"github.com/agbru/qsim/internal/gate"
	"github.com/agbru/qsim/internal/parallel"
	"github.com/agbru/qsim/internal/qstate"
)

// BuildControlMask produces the per-index gating signal for a control set
// over an index space of size n: cell i is set iff for every constrained
// qubit q, bit q of i equals the required value. The empty control set
// yields an all-set mask.
//
// Each backing word covers 64 consecutive indices and is computed
// independently, so the pass parallelizes without write hazards.
//
// Constraints on qubits at or above log2(n) are not an error: every index
// has a zero bit there, so a required false is trivially satisfied and a
// required true clears the whole mask.
//
// Parameters:
//   - ctx: The context for cancellation between chunks.
//   - controls: The per-qubit constraints.
//   - n: The index-space size (power of two).
//   - opts: Execution tuning.
//
// Returns:
//   - qstate.Mask: The produced mask, one boolean per index.
//   - error: Non-nil when n is not a power of two.
func BuildControlMask(ctx context.Context, controls gate.Controls, n int, opts Options) (qstate.Mask, error) {
	if err := qstate.CheckSize(n); err != nil {
		return qstate.Mask{}, err
	}
	if controls.IsUnconditional() {
		return qstate.AllSet(n), nil
	}

	numWords := (n + qstate.MaskWords - 1) / qstate.MaskWords
	words := make([]uint64, numWords)
	err := parallel.For(ctx, numWords, opts.ParallelThreshold/qstate.MaskWords, func(lo, hi int) error {
		for w := lo; w < hi; w++ {
			base := w * qstate.MaskWords
			var word uint64
			for b := 0; b < qstate.MaskWords && base+b < n; b++ {
				if controls.Accepts(base + b) {
					word |= 1 << b
				}
			}
			words[w] = word
		}
		return nil
	})
	if err != nil {
		return qstate.Mask{}, err
	}
	return qstate.FromWords(words, n), nil
}
