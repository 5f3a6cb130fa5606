// Package calibration benchmarks kernel dispatch at candidate parallel
// thresholds and picks the fastest one for this machine. The benchmark
// evaluates a fixed circuit that exercises every kernel family, so the
// winning threshold reflects real pass costs rather than a synthetic
// loop.
package calibration

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/agbru/qsim/internal/circuit"
	"github.com/agbru/qsim/internal/engine"
	apperrors "github.com/agbru/qsim/internal/errors"
	"github.com/agbru/qsim/internal/qstate"
)

// sequentialThreshold is a threshold no realistic buffer reaches, so the
// candidate runs every pass on the calling goroutine.
const sequentialThreshold = 1 << 62

// DefaultQubits sizes the benchmark register: 16 qubits is a 65536-entry
// buffer, large enough for parallel dispatch to matter and small enough
// to calibrate in well under a second per candidate.
const DefaultQubits = 16

// rounds is the number of evaluations per candidate; the fastest round
// wins, which filters out scheduler noise.
const rounds = 3

// Result is the timing of one candidate threshold.
type Result struct {
	Threshold int
	Duration  time.Duration
	Err       error
}

// Sequential reports whether this candidate disabled parallel dispatch.
func (r Result) Sequential() bool {
	return r.Threshold >= sequentialThreshold
}

// CandidateThresholds returns the thresholds worth testing on this
// machine. A single-core host only gets the sequential candidate;
// more cores add progressively smaller thresholds, since fine-grained
// dispatch only pays off when enough workers exist.
func CandidateThresholds() []int {
	numCPU := runtime.NumCPU()

	candidates := []int{sequentialThreshold}
	switch {
	case numCPU == 1:
		return candidates
	case numCPU <= 4:
		return append(candidates, 1<<14, 1<<12)
	case numCPU <= 8:
		return append(candidates, 1<<14, 1<<12, 1<<10)
	default:
		return append(candidates, 1<<16, 1<<14, 1<<12, 1<<10)
	}
}

// BenchmarkCircuit builds the calibration workload: a Hadamard wall, a
// controlled flip, an increment and a Fourier round trip over the whole
// register, touching the mask, operator, increment and butterfly kernels.
func BenchmarkCircuit(qubits int) (*circuit.Circuit, error) {
	if qubits < 2 {
		return nil, apperrors.NewConfigError("calibration needs at least 2 qubits, got %d", qubits)
	}
	wall := make([]string, qubits)
	for q := 0; q < qubits; q++ {
		wall[q] = fmt.Sprintf("h%d", q)
	}
	hi := qubits - 1
	notation := fmt.Sprintf("%s / cx0.%d / inc0-%d:+3 / qft0-%d / iqft0-%d",
		strings.Join(wall, " "), hi, hi, hi, hi)
	return circuit.Parse(notation, qubits)
}

// Run times the benchmark circuit at every candidate threshold and
// returns the fastest one together with the per-candidate results.
//
// Parameters:
//   - ctx: The context bounding the whole calibration.
//   - qubits: The benchmark register size; <= 0 selects DefaultQubits.
//
// Returns:
//   - int: The winning threshold.
//   - []Result: The timing of every candidate, in test order.
//   - error: A config error when the circuit cannot be built, or the
//     first error if every candidate failed.
func Run(ctx context.Context, qubits int) (int, []Result, error) {
	if qubits <= 0 {
		qubits = DefaultQubits
	}
	circ, err := BenchmarkCircuit(qubits)
	if err != nil {
		return 0, nil, err
	}
	initial := qstate.NewImpulse(qubits)
	limits := engine.Limits{MaxQubits: qubits, MaxAmplitudes: uint64(1) << qubits}

	candidates := CandidateThresholds()
	results := make([]Result, 0, len(candidates))
	for _, threshold := range candidates {
		eng := engine.New(limits, engine.WithParallelThreshold(threshold))
		results = append(results, timeCandidate(ctx, eng, circ, initial, threshold))
	}

	best, found := Result{}, false
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		if !found || r.Duration < best.Duration {
			best, found = r, true
		}
	}
	if !found {
		return 0, results, results[0].Err
	}
	return best.Threshold, results, nil
}

// timeCandidate runs the benchmark and keeps the fastest round.
func timeCandidate(ctx context.Context, eng *engine.Engine, circ *circuit.Circuit, initial qstate.Buffer, threshold int) Result {
	res := Result{Threshold: threshold}
	for round := 0; round < rounds; round++ {
		start := time.Now()
		if _, err := eng.Evaluate(ctx, circ, initial, nil); err != nil {
			res.Err = err
			return res
		}
		elapsed := time.Since(start)
		if round == 0 || elapsed < res.Duration {
			res.Duration = elapsed
		}
	}
	return res
}
