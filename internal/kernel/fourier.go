package kernel

import (
	"context"
	"fmt"
	"math"
	"math/bits"
	"math/cmplx"

	"github.com/agbru/qsim/internal/parallel"
	"github.com/agbru/qsim/internal/qstate"
)

// ApplyFourierStep applies one butterfly stage of an iterative
// decimation-in-frequency discrete Fourier transform over the index space.
// For every controlled pair of indices differing only in bit t, with
// a = state at the bit-clear index and b = state at the bit-set index:
//
//	out[clear] = (a + b) / sqrt(2)
//	out[set]   = e^{i*theta} * (a - b) / sqrt(2)
//
// where theta = pi * r / 2^span and r is the value of the span bits
// immediately below t, bits [t-span, t). Span 0 folds no lower bits and
// the stage degenerates to a plain Hadamard on bit t.
//
// Applying stages t = n-1 .. 0 with span = t performs the full forward
// transform of an n-qubit register up to the final bit-reversal
// permutation (see ApplyBitReversal). invert conjugates the twiddle and
// swaps the combine so that the inverse stage undoes the forward stage
// exactly; running inverse stages in the opposite order inverts the
// transform.
//
// Uncontrolled indices pass through unchanged. For a controlled transform
// the constrained qubits must be disjoint from bit t and the span bits,
// so partners always share their mask cell value.
func ApplyFourierStep(ctx context.Context, dst, src qstate.Buffer, t, span int, invert bool, control qstate.Mask, opts Options) error {
	if err := checkShapes(dst, src, control); err != nil {
		return err
	}
	if err := checkTargetField(src.Qubits(), t, 1); err != nil {
		return err
	}
	if span < 0 || span > t {
		return fmt.Errorf("fold span %d does not fit below target bit %d", span, t)
	}

	bit := 1 << t
	spanMask := ((1 << span) - 1) << (t - span)
	angleUnit := math.Pi / float64(int(1)<<span)
	norm := complex(1/math.Sqrt2, 0)

	return parallel.For(ctx, len(src), opts.ParallelThreshold, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			if !control.Test(i) {
				dst[i] = src[i]
				continue
			}
			r := (i & spanMask) >> (t - span)
			theta := angleUnit * float64(r)
			if invert {
				theta = -theta
			}
			twiddle := cmplx.Exp(complex(0, theta))

			if i&bit == 0 {
				a, b := src[i], src[i|bit]
				if invert {
					// Inverse combine: a' = (a + w^-1 b)/sqrt(2).
					dst[i] = (a + twiddle*b) * norm
				} else {
					dst[i] = (a + b) * norm
				}
			} else {
				a, b := src[i^bit], src[i]
				if invert {
					dst[i] = (a - twiddle*b) * norm
				} else {
					dst[i] = twiddle * (a - b) * norm
				}
			}
		}
		return nil
	})
}

// ApplyBitReversal permutes the register occupying index bits [t, t+span)
// by reversing its bit order, gated per output index by the control mask.
// Together with the forward Fourier stages it completes a natural-order
// QFT. Like the increment kernel it is a pure gather.
func ApplyBitReversal(ctx context.Context, dst, src qstate.Buffer, t, span int, control qstate.Mask, opts Options) error {
	if err := checkShapes(dst, src, control); err != nil {
		return err
	}
	if err := checkTargetField(src.Qubits(), t, span); err != nil {
		return err
	}

	regMask := ((1 << span) - 1) << t
	shift := 64 - span

	return parallel.For(ctx, len(src), opts.ParallelThreshold, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			if !control.Test(i) {
				dst[i] = src[i]
				continue
			}
			base := i &^ regMask
			reg := uint64(i&regMask) >> t
			rev := int(bits.Reverse64(reg) >> shift)
			dst[i] = src[base|(rev<<t)]
		}
		return nil
	})
}
