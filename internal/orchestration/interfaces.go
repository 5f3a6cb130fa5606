package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/qsim/internal/config"
	"github.com/agbru/qsim/internal/qstate"
)

// EvaluationResult encapsulates the outcome of a single circuit evaluation.
// It serves as the shared domain type between orchestration and presentation
// layers.
type EvaluationResult struct {
	// Name identifies the execution lane (e.g., "Parallel").
	Name string
	// State is the final amplitude buffer. It is nil if an error occurred.
	State qstate.Buffer
	// Duration is the time taken to complete the evaluation.
	Duration time.Duration
	// Err contains any error that occurred during the evaluation.
	Err error
}

// ProgressUpdate carries a progress fraction from one execution lane.
type ProgressUpdate struct {
	// LaneIndex is the index of the lane that sent the update.
	LaneIndex int
	// Value is the completed fraction of the circuit, from 0.0 to 1.0.
	Value float64
}

// ProgressReporter defines the interface for displaying evaluation progress.
// This interface decouples the orchestration layer from the presentation
// layer: implementations handle the visual representation of progress
// (spinners, progress bars, etc.) while the orchestration layer focuses on
// coordinating the evaluations.
type ProgressReporter interface {
	// DisplayProgress starts displaying progress updates from the channel.
	// It should be called in a separate goroutine and will run until the
	// progressChan is closed.
	//
	// Parameters:
	//   - wg: A WaitGroup to signal when display is complete.
	//   - progressChan: Channel receiving progress updates from lanes.
	//   - numLanes: The number of concurrent lanes being tracked.
	//   - out: The writer for progress output.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numLanes int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
// This allows passing a function directly where a ProgressReporter is expected.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numLanes int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numLanes int, out io.Writer) {
	f(wg, progressChan, numLanes, out)
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
// It drains the progress channel without displaying anything.
// Useful for quiet mode or testing.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	for range progressChan {
		// Drain channel silently
	}
}

// ResultPresenter defines the interface for presenting evaluation results.
// This interface decouples the orchestration layer from presentation
// concerns, allowing different output formats without modifying the
// orchestration logic.
type ResultPresenter interface {
	// PresentComparisonTable displays the lane comparison summary table.
	PresentComparisonTable(results []EvaluationResult, out io.Writer)

	// PresentResult displays the final evaluated state.
	PresentResult(result EvaluationResult, cfg config.AppConfig, out io.Writer)
}

// ErrorHandler handles evaluation errors and returns exit codes.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}

// ComparisonPresenter combines result presentation and error handling, the
// full surface AnalyzeComparisonResults needs.
type ComparisonPresenter interface {
	ResultPresenter
	ErrorHandler
}
