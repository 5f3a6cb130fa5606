// Package orchestration coordinates concurrent execution of circuit
// evaluations across execution lanes and aggregates results for comparison.
// It decouples business logic from presentation via ProgressReporter and
// ResultPresenter interfaces.
package orchestration
