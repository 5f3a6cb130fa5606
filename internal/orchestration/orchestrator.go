package orchestration

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/cmplx"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/qsim/internal/circuit"
	"github.com/agbru/qsim/internal/config"
	"github.com/agbru/qsim/internal/engine"
	apperrors "github.com/agbru/qsim/internal/errors"
	"github.com/agbru/qsim/internal/qstate"
)

// Lane pairs a named engine configuration with the engine that runs it.
// Comparison mode evaluates the same circuit on every lane.
type Lane struct {
	// Name identifies the lane in progress output and result tables.
	Name string
	// Engine is the configured evaluation engine for this lane.
	Engine *engine.Engine
}

// ProgressBufferMultiplier defines the buffer size multiplier for the
// per-lane progress channels. A larger buffer reduces the likelihood of
// blocking evaluation goroutines when the UI is slow to consume updates.
const ProgressBufferMultiplier = 5

// MismatchTolerance is the per-amplitude absolute deviation above which two
// lane states are considered inconsistent.
const MismatchTolerance = 1e-9

// ExecuteEvaluations orchestrates the concurrent execution of one or more
// circuit evaluations.
//
// It manages the lifecycle of evaluation goroutines, collects their results,
// and coordinates the display of progress updates. Each lane receives its own
// engine progress channel; a forwarder per lane converts column counts into
// fractional updates on the shared reporter channel.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - lanes: The execution lanes to run.
//   - circ: The circuit to evaluate on every lane.
//   - initial: The initial amplitude buffer. It is never modified.
//   - progressReporter: The progress reporter for displaying updates (use NullProgressReporter for quiet mode).
//   - out: The io.Writer for displaying progress updates.
//
// Returns:
//   - []EvaluationResult: A slice containing the result of each lane.
func ExecuteEvaluations(ctx context.Context, lanes []Lane, circ *circuit.Circuit, initial qstate.Buffer, progressReporter ProgressReporter, out io.Writer) []EvaluationResult {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]EvaluationResult, len(lanes))
	progressChan := make(chan ProgressUpdate, len(lanes)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(lanes), out)

	var forwardWg sync.WaitGroup
	for i, l := range lanes {
		idx, lane := i, l
		laneChan := make(chan engine.ProgressUpdate, ProgressBufferMultiplier)

		forwardWg.Add(1)
		go func() {
			defer forwardWg.Done()
			for u := range laneChan {
				if u.Total <= 0 {
					continue
				}
				progressChan <- ProgressUpdate{LaneIndex: idx, Value: float64(u.Column) / float64(u.Total)}
			}
		}()

		g.Go(func() error {
			startTime := time.Now()
			state, err := lane.Engine.Evaluate(ctx, circ, initial, laneChan)
			close(laneChan)
			results[idx] = EvaluationResult{
				Name: lane.Name, State: state, Duration: time.Since(startTime), Err: err,
			}
			return nil
		})
	}

	g.Wait()
	forwardWg.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// AnalyzeComparisonResults processes the results from multiple lanes and
// generates a summary report.
//
// It sorts the results by execution time, validates consistency across
// successful evaluations, and displays a comparative table. It handles the
// logic for determining global success or failure based on the individual
// outcomes.
//
// Parameters:
//   - results: The slice of evaluation results to analyze.
//   - cfg: The application configuration.
//   - presenter: The result presenter for display formatting.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeComparisonResults(results []EvaluationResult, cfg config.AppConfig, presenter ComparisonPresenter, out io.Writer) int {
	sort.Slice(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstValidResult *EvaluationResult
	var firstError error
	successCount := 0

	for i := range results {
		if results[i].Err != nil {
			if firstError == nil {
				firstError = results[i].Err
			}
		} else {
			successCount++
			if firstValidResult == nil {
				firstValidResult = &results[i]
			}
		}
	}

	presenter.PresentComparisonTable(results, out)

	if successCount == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No lane could complete the evaluation.\n")
		return presenter.HandleError(firstError, 0, out)
	}

	mismatch := false
	for _, res := range results {
		if res.Err == nil && !StatesMatch(res.State, firstValidResult.State, MismatchTolerance) {
			mismatch = true
			break
		}
	}
	if mismatch {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! An inconsistency was detected between the states produced by the lanes.")
		return apperrors.ExitErrorMismatch
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All lane states are consistent.\n")
	presenter.PresentResult(*firstValidResult, cfg, out)
	return apperrors.ExitSuccess
}

// StatesMatch reports whether two amplitude buffers agree within tolerance.
// Non-finite amplitudes must appear at the same indices in both buffers;
// their values are otherwise not compared, since NaN never equals itself.
func StatesMatch(a, b qstate.Buffer, tolerance float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		af, bf := isFinite(a[i]), isFinite(b[i])
		if af != bf {
			return false
		}
		if !af {
			continue
		}
		if cmplx.Abs(a[i]-b[i]) > tolerance {
			return false
		}
	}
	return true
}

func isFinite(c complex128) bool {
	return !math.IsNaN(real(c)) && !math.IsNaN(imag(c)) &&
		!math.IsInf(real(c), 0) && !math.IsInf(imag(c), 0)
}
