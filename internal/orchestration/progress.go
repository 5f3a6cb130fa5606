package orchestration

import (
	"time"

	"github.com/agbru/qsim/internal/format"
)

// ProgressAggregator manages multi-lane progress aggregation.
// It wraps format.ProgressWithETA and provides a higher-level API
// for consuming progress updates from a channel. Both CLI and TUI
// use this to avoid duplicating the aggregation setup and update logic.
type ProgressAggregator struct {
	state    *format.ProgressWithETA
	numLanes int
}

// NewProgressAggregator creates a new aggregator for the given number
// of lanes. Returns nil if numLanes <= 0.
func NewProgressAggregator(numLanes int) *ProgressAggregator {
	if numLanes <= 0 {
		return nil
	}
	return &ProgressAggregator{
		state:    format.NewProgressWithETA(numLanes),
		numLanes: numLanes,
	}
}

// AggregatedProgress holds the result of processing a single progress update.
type AggregatedProgress struct {
	// LaneIndex is the index of the lane that sent the update.
	LaneIndex int
	// Value is the raw progress value from the update (0.0 to 1.0).
	Value float64
	// AverageProgress is the aggregated average across all lanes.
	AverageProgress float64
	// ETA is the estimated time remaining based on smoothed progress rate.
	ETA time.Duration
}

// Update processes a single progress update and returns the aggregated result.
func (a *ProgressAggregator) Update(update ProgressUpdate) AggregatedProgress {
	avgProgress, eta := a.state.UpdateWithETA(update.LaneIndex, update.Value)
	return AggregatedProgress{
		LaneIndex:       update.LaneIndex,
		Value:           update.Value,
		AverageProgress: avgProgress,
		ETA:             eta,
	}
}

// CalculateAverage returns the current average progress without updating.
// Useful for periodic refresh between updates (e.g., CLI ticker).
func (a *ProgressAggregator) CalculateAverage() float64 {
	return a.state.CalculateAverage()
}

// GetETA returns the current ETA estimate without updating.
// Useful for periodic refresh between updates (e.g., CLI ticker).
func (a *ProgressAggregator) GetETA() time.Duration {
	return a.state.GetETA()
}

// NumLanes returns the number of lanes being tracked.
func (a *ProgressAggregator) NumLanes() int {
	return a.numLanes
}

// IsMultiLane returns true if tracking more than one lane.
func (a *ProgressAggregator) IsMultiLane() bool {
	return a.numLanes > 1
}

// DrainChannel reads all updates from the channel without processing.
// Use this when numLanes <= 0 and updates should be discarded.
func DrainChannel(progressChan <-chan ProgressUpdate) {
	for range progressChan {
	}
}
