// Package engine evaluates a circuit against an amplitude buffer by
// driving the simulation kernels column by column. Columns are strict
// barriers: a column's passes all read the fully materialized output of
// the previous one (ping-pong), and cancellation is honored only between
// passes, never inside a kernel.
package engine

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/qsim/internal/circuit"
	apperrors "github.com/agbru/qsim/internal/errors"
	"github.com/agbru/qsim/internal/kernel"
	"github.com/agbru/qsim/internal/logging"
	"github.com/agbru/qsim/internal/qstate"
)

// Limits bounds the index space the engine will address. They are passed
// in explicitly at construction; the engine keeps no ambient size state.
type Limits struct {
	// MaxQubits caps the register size; <= 0 means no qubit cap beyond
	// MaxAmplitudes.
	MaxQubits int
	// MaxAmplitudes caps the buffer length (index-space size).
	MaxAmplitudes uint64
}

// DefaultLimits suits interactive use: 24 qubits is a 256 MiB amplitude
// buffer.
func DefaultLimits() Limits {
	return Limits{MaxQubits: 24, MaxAmplitudes: 1 << 24}
}

// PassRecorder receives kernel pass timings and evaluation counts.
// Implementations must be safe for concurrent use.
type PassRecorder interface {
	// ObserveKernelPass records one completed kernel pass.
	ObserveKernelPass(kernelName string, elapsed time.Duration)
	// IncEvaluations counts one finished evaluation by outcome
	// ("ok", "error" or "canceled").
	IncEvaluations(outcome string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveKernelPass(string, time.Duration) {}
func (nopRecorder) IncEvaluations(string)                   {}

// ProgressUpdate reports a completed column.
type ProgressUpdate struct {
	Column int // 1-based completed column
	Total  int
}

// Engine runs circuit evaluations. Construct with New; the zero value is
// not usable.
type Engine struct {
	limits   Limits
	kernOpts kernel.Options
	log      logging.Logger
	recorder PassRecorder
	tracer   trace.Tracer
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger routes engine logging to the given logger.
func WithLogger(log logging.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithRecorder attaches a metrics recorder.
func WithRecorder(r PassRecorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// WithParallelThreshold sets the minimum index-space size for parallel
// kernel dispatch.
func WithParallelThreshold(threshold int) Option {
	return func(e *Engine) { e.kernOpts.ParallelThreshold = threshold }
}

// New builds an engine with the given limits.
func New(limits Limits, options ...Option) *Engine {
	e := &Engine{
		limits:   limits,
		log:      logging.NewDefaultLogger(),
		recorder: nopRecorder{},
		tracer:   otel.Tracer("qsim/engine"),
	}
	for _, opt := range options {
		opt(e)
	}
	return e
}

// CheckLimits validates a register size against the engine's limits
// without evaluating anything.
func (e *Engine) CheckLimits(qubits int) error {
	if qubits < 1 {
		return apperrors.NewConfigError("register needs at least one qubit, got %d", qubits)
	}
	requested := uint64(1) << qubits
	if e.limits.MaxQubits > 0 && qubits > e.limits.MaxQubits {
		return apperrors.ResourceError{Qubits: qubits, Requested: requested, Limit: uint64(1) << e.limits.MaxQubits}
	}
	if e.limits.MaxAmplitudes > 0 && requested > e.limits.MaxAmplitudes {
		return apperrors.ResourceError{Qubits: qubits, Requested: requested, Limit: e.limits.MaxAmplitudes}
	}
	return nil
}

// Evaluate runs the circuit against the initial buffer and returns the
// final amplitude buffer.
//
// Validation is eager: resource and placement errors surface before any
// kernel pass runs, and the initial buffer is never modified. The
// returned buffer is freshly produced (pool-backed); the caller owns it
// and may hand it back via qstate.ReleaseBuffer.
//
// If progress is non-nil, a ProgressUpdate is offered (never blocking)
// after each column barrier.
//
// Parameters:
//   - ctx: The context; checked between kernel passes only.
//   - circ: The circuit to evaluate.
//   - initial: The starting amplitude buffer, len 2^circ.Qubits.
//   - progress: Optional column-completion updates.
//
// Returns:
//   - qstate.Buffer: The final amplitude buffer.
//   - error: Non-nil on validation failure, kernel failure or
//     cancellation; no buffer is returned in that case.
func (e *Engine) Evaluate(ctx context.Context, circ *circuit.Circuit, initial qstate.Buffer, progress chan<- ProgressUpdate) (qstate.Buffer, error) {
	if err := e.validate(circ, initial); err != nil {
		e.recorder.IncEvaluations("error")
		return nil, err
	}

	ctx, span := e.tracer.Start(ctx, "engine.Evaluate",
		trace.WithAttributes(
			attribute.Int("qubits", circ.Qubits),
			attribute.Int("columns", circ.Depth()),
		))
	defer span.End()

	start := time.Now()
	e.log.Debug("evaluation started",
		logging.Int("qubits", circ.Qubits),
		logging.Int("columns", circ.Depth()),
		logging.Int("amplitudes", len(initial)))

	cur := qstate.AcquireBuffer(len(initial))
	copy(cur, initial)

	for col := range circ.Columns {
		if err := ctx.Err(); err != nil {
			qstate.ReleaseBuffer(cur)
			e.recorder.IncEvaluations("canceled")
			return nil, err
		}
		next, err := e.runColumn(ctx, circ, col, cur)
		qstate.ReleaseBuffer(cur)
		if err != nil {
			e.recorder.IncEvaluations(outcomeOf(err))
			return nil, err
		}
		cur = next
		span.AddEvent("column", trace.WithAttributes(attribute.Int("index", col)))
		if progress != nil {
			select {
			case progress <- ProgressUpdate{Column: col + 1, Total: circ.Depth()}:
			default:
			}
		}
	}

	e.log.Info("evaluation finished",
		logging.Int("columns", circ.Depth()),
		logging.String("elapsed", time.Since(start).String()))
	e.recorder.IncEvaluations("ok")
	return cur, nil
}

// validate performs the eager checks: limits, buffer sizing, placements.
func (e *Engine) validate(circ *circuit.Circuit, initial qstate.Buffer) error {
	if circ == nil {
		return apperrors.NewConfigError("nil circuit")
	}
	if err := e.CheckLimits(circ.Qubits); err != nil {
		return err
	}
	if err := circ.Validate(); err != nil {
		return err
	}
	if want := 1 << circ.Qubits; len(initial) != want {
		return apperrors.NewConfigError("initial buffer has %d amplitudes, circuit needs %d", len(initial), want)
	}
	return nil
}

// runColumn executes every placement of one column as its own kernel
// pass, ping-ponging between pooled buffers. Placements in a column act
// on disjoint wires, so the pass order inside a column is immaterial.
func (e *Engine) runColumn(ctx context.Context, circ *circuit.Circuit, col int, cur qstate.Buffer) (qstate.Buffer, error) {
	out := cur
	owned := false
	for _, p := range circ.Columns[col].Placements {
		next, err := e.runPlacement(ctx, circ, col, p, out)
		if owned {
			qstate.ReleaseBuffer(out)
		}
		if err != nil {
			return nil, err
		}
		out = next
		owned = true
	}
	if !owned {
		// Empty column: still a barrier, still a fresh buffer.
		next := qstate.AcquireBuffer(len(cur))
		copy(next, cur)
		out = next
	}
	return out, nil
}

// runPlacement builds the placement's control mask and dispatches the
// kernel passes it requires. A Fourier placement expands into its stage
// cascade (and bit-reversal) here.
func (e *Engine) runPlacement(ctx context.Context, circ *circuit.Circuit, col int, p circuit.Placement, src qstate.Buffer) (qstate.Buffer, error) {
	mask, err := kernel.BuildControlMask(ctx, p.Controls, len(src), e.kernOpts)
	if err != nil {
		return nil, apperrors.EvaluationError{Cause: apperrors.NewGateError(col, p.Target, "control mask: %v", err)}
	}

	fail := func(err error) (qstate.Buffer, error) {
		if apperrors.IsContextError(err) {
			return nil, err
		}
		return nil, apperrors.EvaluationError{Cause: apperrors.NewGateError(col, p.Target, "gate %q: %v", p.Name, err)}
	}

	switch p.Kind {
	case circuit.KindOperator:
		dst := qstate.AcquireBuffer(len(src))
		if err := e.timedPass("operator", func() error {
			return kernel.ApplyOperator(ctx, dst, src, p.Operator, p.Target, mask, e.kernOpts)
		}); err != nil {
			qstate.ReleaseBuffer(dst)
			return fail(err)
		}
		return dst, nil

	case circuit.KindUniversalNot:
		dst := qstate.AcquireBuffer(len(src))
		if err := e.timedPass("unot", func() error {
			return kernel.ApplyUniversalNot(ctx, dst, src, p.Target, mask, e.kernOpts)
		}); err != nil {
			qstate.ReleaseBuffer(dst)
			return fail(err)
		}
		return dst, nil

	case circuit.KindIncrement:
		dst := qstate.AcquireBuffer(len(src))
		if err := e.timedPass("increment", func() error {
			return kernel.ApplyIncrement(ctx, dst, src, p.Target, p.Span, p.Amount, mask, e.kernOpts)
		}); err != nil {
			qstate.ReleaseBuffer(dst)
			return fail(err)
		}
		return dst, nil

	case circuit.KindFourier:
		dst, err := e.runFourier(ctx, p, src, mask)
		if err != nil {
			return fail(err)
		}
		return dst, nil
	}
	return nil, apperrors.EvaluationError{Cause: apperrors.NewGateError(col, p.Target, "unknown gate kind %d", int(p.Kind))}
}

// runFourier expands a Fourier placement into its butterfly stages plus
// the bit-reversal permutation. The forward transform runs stages from
// the high wire down then reverses; the inverse first reverses, then runs
// conjugate stages from the low wire up, exactly undoing a forward
// placement.
func (e *Engine) runFourier(ctx context.Context, p circuit.Placement, src qstate.Buffer, mask qstate.Mask) (qstate.Buffer, error) {
	cur := src
	owned := false
	step := func(name string, run func(dst qstate.Buffer) error) error {
		dst := qstate.AcquireBuffer(len(src))
		err := e.timedPass(name, func() error { return run(dst) })
		if owned {
			qstate.ReleaseBuffer(cur)
		}
		if err != nil {
			qstate.ReleaseBuffer(dst)
			return err
		}
		cur = dst
		owned = true
		return nil
	}

	reverse := func() error {
		return step("bitreverse", func(dst qstate.Buffer) error {
			return kernel.ApplyBitReversal(ctx, dst, cur, p.Target, p.Span, mask, e.kernOpts)
		})
	}
	stage := func(target int) error {
		return step("fourier", func(dst qstate.Buffer) error {
			return kernel.ApplyFourierStep(ctx, dst, cur, target, target-p.Target, p.Invert, mask, e.kernOpts)
		})
	}

	if p.Invert {
		if err := reverse(); err != nil {
			return nil, err
		}
		for target := p.Target; target < p.Target+p.Span; target++ {
			if err := stage(target); err != nil {
				return nil, err
			}
		}
		return cur, nil
	}

	for target := p.Target + p.Span - 1; target >= p.Target; target-- {
		if err := stage(target); err != nil {
			return nil, err
		}
	}
	if err := reverse(); err != nil {
		return nil, err
	}
	return cur, nil
}

// timedPass runs one kernel pass and reports its duration.
func (e *Engine) timedPass(name string, run func() error) error {
	start := time.Now()
	err := run()
	elapsed := time.Since(start)
	e.recorder.ObserveKernelPass(name, elapsed)
	if err != nil {
		return err
	}
	e.log.Debug("kernel pass", logging.String("kernel", name), logging.String("elapsed", elapsed.String()))
	return nil
}

// outcomeOf maps an evaluation error to its metrics outcome label.
func outcomeOf(err error) string {
	if apperrors.IsContextError(err) {
		return "canceled"
	}
	return "error"
}
