package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	dto "github.com/prometheus/client_model/go"

	"github.com/agbru/qsim/internal/config"
	apperrors "github.com/agbru/qsim/internal/errors"
	"github.com/agbru/qsim/internal/format"
	"github.com/agbru/qsim/internal/metrics"
	"github.com/agbru/qsim/internal/orchestration"
	"github.com/agbru/qsim/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter for CLI
// output. It wraps the DisplayProgress function to provide a spinner and
// progress bar display during evaluations.
type CLIProgressReporter struct{}

// Verify that CLIProgressReporter implements orchestration.ProgressReporter.
var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar for ongoing evaluations.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numLanes int, out io.Writer) {
	DisplayProgress(wg, progressChan, numLanes, out)
}

// CLIResultPresenter implements orchestration.ComparisonPresenter for CLI
// output. It provides formatted, colorized output for evaluation results in
// the command-line interface.
type CLIResultPresenter struct{}

// Verify interface compliance.
var (
	_ orchestration.ResultPresenter     = CLIResultPresenter{}
	_ orchestration.ErrorHandler        = CLIResultPresenter{}
	_ orchestration.ComparisonPresenter = CLIResultPresenter{}
)

// PresentComparisonTable displays the comparison summary table with lane
// names, durations, and status in a formatted tabular layout.
// Uses manual padding to correctly handle ANSI color codes.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.EvaluationResult, out io.Writer) {
	th := theme()
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	// Find the maximum lane name width for proper alignment
	maxNameLen := 4     // "Lane" header length
	maxDurationLen := 8 // "Duration" header length
	for _, res := range results {
		if len(res.Name) > maxNameLen {
			maxNameLen = len(res.Name)
		}
		duration := comparisonDuration(res.Duration)
		if len(duration) > maxDurationLen {
			maxDurationLen = len(duration)
		}
	}

	// Print header with proper padding
	fmt.Fprintf(out, "%sLane%s%s   %sDuration%s%s   %sStatus%s\n",
		th.Bold, th.Reset, padRight("", maxNameLen-4),
		th.Bold, th.Reset, padRight("", maxDurationLen-8),
		th.Bold, th.Reset)

	// Print each result row
	for _, res := range results {
		var status string
		if res.Err != nil {
			status = ui.Colorize(th.Error, fmt.Sprintf("failure (%v)", res.Err))
		} else {
			status = ui.Colorize(th.Success, "success")
		}
		duration := comparisonDuration(res.Duration)
		fmt.Fprintf(out, "%s%s   %s%s   %s\n",
			ui.Colorize(th.Primary, res.Name), padRight("", maxNameLen-len(res.Name)),
			ui.Colorize(th.Warning, duration), padRight("", maxDurationLen-len(duration)),
			status)
	}
}

// comparisonDuration formats a lane duration for the summary table.
func comparisonDuration(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

// padRight returns a string of spaces with the given length.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// PresentResult displays the final evaluated state using the CLI's
// DisplayResult function.
func (CLIResultPresenter) PresentResult(result orchestration.EvaluationResult, cfg config.AppConfig, out io.Writer) {
	DisplayResult(result.State, result.Duration, cfg.ShowAmplitudes, cfg.MinProbability, out)
}

// FormatDuration formats a duration for display using the CLI's standard
// duration formatting.
func (CLIResultPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// HandleError prints an evaluation error and returns the matching exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	th := theme()
	if err == nil {
		return apperrors.ExitSuccess
	}
	if duration > 0 {
		fmt.Fprintf(out, "%sError after %s: %v%s\n",
			th.Error, format.FormatExecutionDuration(duration), err, th.Reset)
	} else {
		fmt.Fprintf(out, "%sError: %v%s\n", th.Error, err, th.Reset)
	}
	return apperrors.ExitCodeFor(err)
}

// DisplayMemoryStats shows memory statistics after an evaluation.
func DisplayMemoryStats(snapshot metrics.MemorySnapshot, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Peak heap:       %s\n", format.FormatBytes(snapshot.HeapAlloc))
	fmt.Fprintf(out, "  Heap from OS:    %s\n", format.FormatBytes(snapshot.HeapSys))
	fmt.Fprintf(out, "  Heap objects:    %s\n", format.FormatNumberString(fmt.Sprintf("%d", snapshot.HeapObjects)))
	fmt.Fprintf(out, "  GC cycles:       %d\n", snapshot.NumGC)
	if snapshot.PauseTotalNs > 0 {
		fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(snapshot.PauseTotalNs)/1e6)
	} else {
		fmt.Fprintf(out, "  GC pause total:  0ms (GC disabled)\n")
	}
}

// DisplayMetricFamilies prints the gathered evaluation metrics as one
// line per sample. Histograms report their observation count and sum.
func DisplayMetricFamilies(families []*dto.MetricFamily, out io.Writer) {
	fmt.Fprintf(out, "\nEvaluation Metrics:\n")
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			name := mf.GetName() + metricLabels(m)
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				fmt.Fprintf(out, "  %s = %g\n", name, m.GetCounter().GetValue())
			case dto.MetricType_GAUGE:
				fmt.Fprintf(out, "  %s = %g\n", name, m.GetGauge().GetValue())
			case dto.MetricType_HISTOGRAM:
				h := m.GetHistogram()
				fmt.Fprintf(out, "  %s = %d observations, %.6fs total\n", name, h.GetSampleCount(), h.GetSampleSum())
			}
		}
	}
}

// metricLabels renders a metric's label pairs as {k="v",...}, or empty
// when there are none.
func metricLabels(m *dto.Metric) string {
	if len(m.GetLabel()) == 0 {
		return ""
	}
	parts := make([]string, 0, len(m.GetLabel()))
	for _, lp := range m.GetLabel() {
		parts = append(parts, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
	}
	return "{" + strings.Join(parts, ",") + "}"
}
