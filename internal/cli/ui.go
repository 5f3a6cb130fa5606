package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/qsim/internal/format"
	"github.com/agbru/qsim/internal/orchestration"
	"github.com/agbru/qsim/internal/ui"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the progress bar.
	// Optimized to 200ms to reduce updates and improve performance.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// This allows for the decoupling of the `DisplayProgress` function from a
// specific spinner implementation, facilitating easier testing and maintenance.
// It defines the essential controls for a spinner: starting, stopping, and
// updating its status message.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	//
	// Parameters:
	//   - suffix: The text string to display.
	UpdateSuffix(suffix string)
}

// realSpinner is a wrapper for the `spinner.Spinner` that implements the
// `Spinner` interface. This adapter allows the `spinner` library to be used
// within the application's CLI framework.
type realSpinner struct {
	s *spinner.Spinner
}

// Start begins the spinner animation.
func (rs *realSpinner) Start() {
	rs.s.Start()
}

// Stop halts the spinner animation.
func (rs *realSpinner) Stop() {
	rs.s.Stop()
}

// UpdateSuffix sets the text that is displayed after the spinner.
//
// Parameters:
//   - suffix: The string to display.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Suffix = suffix
}

var newSpinner = func(options ...spinner.Option) Spinner {
	// Using the same interval as ProgressRefreshRate to synchronize
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress renders a consolidated progress bar for one or more
// evaluation lanes. It consumes updates from progressChan until the channel
// closes, aggregating per-lane fractions into a single bar with an ETA
// estimate. It satisfies the signature expected by
// orchestration.ProgressReporter and is normally run in its own goroutine.
//
// Parameters:
//   - wg: Signaled when the display loop finishes.
//   - progressChan: Channel of per-lane progress updates.
//   - numLanes: The number of lanes being tracked.
//   - out: The writer for spinner and progress output.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numLanes int, out io.Writer) {
	defer wg.Done()

	agg := orchestration.NewProgressAggregator(numLanes)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	sp := newSpinner(spinner.WithWriter(out))
	sp.UpdateSuffix(progressSuffix(0, 0, agg))
	sp.Start()
	defer sp.Stop()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				sp.UpdateSuffix(progressSuffix(1, 0, agg))
				return
			}
			res := agg.Update(update)
			sp.UpdateSuffix(progressSuffix(res.AverageProgress, res.ETA, agg))
		case <-ticker.C:
			sp.UpdateSuffix(progressSuffix(agg.CalculateAverage(), agg.GetETA(), agg))
		}
	}
}

// progressSuffix builds the spinner suffix from the aggregated progress.
func progressSuffix(progress float64, eta time.Duration, agg *orchestration.ProgressAggregator) string {
	bar := format.FormatProgressBarWithETA(progress, eta, ProgressBarWidth)
	if agg.IsMultiLane() {
		return fmt.Sprintf(" %s (%d lanes)", bar, agg.NumLanes())
	}
	return " " + bar
}

// theme is a typing shortcut for the active color theme.
func theme() ui.Theme {
	return ui.GetCurrentTheme()
}
