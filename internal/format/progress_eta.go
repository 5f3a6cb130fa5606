package format

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// maxETA caps displayed estimates; anything beyond this is noise.
const maxETA = 24 * time.Hour

// ProgressState tracks the last reported progress fraction of each
// concurrent evaluation lane.
type ProgressState struct {
	progresses []float64
	numLanes   int
}

// NewProgressState tracks the given number of lanes.
func NewProgressState(lanes int) *ProgressState {
	return &ProgressState{
		progresses: make([]float64, lanes),
		numLanes:   lanes,
	}
}

// Update records a lane's progress fraction. Out-of-range lanes are
// ignored; fractions are clamped to [0, 1].
func (ps *ProgressState) Update(lane int, fraction float64) {
	if lane < 0 || lane >= ps.numLanes {
		return
	}
	ps.progresses[lane] = math.Min(1, math.Max(0, fraction))
}

// CalculateAverage returns the mean progress across all lanes, 0 when
// there are none.
func (ps *ProgressState) CalculateAverage() float64 {
	if ps.numLanes == 0 {
		return 0
	}
	var sum float64
	for _, f := range ps.progresses {
		sum += f
	}
	return sum / float64(ps.numLanes)
}

// ProgressWithETA extends ProgressState with a completion estimate
// derived from the observed progress rate. It is not safe for concurrent
// use; feed it from the single goroutine draining progress updates.
type ProgressWithETA struct {
	*ProgressState

	progressRate float64 // average fraction per second
	startTime    time.Time
}

// NewProgressWithETA tracks the given number of lanes.
func NewProgressWithETA(lanes int) *ProgressWithETA {
	return &ProgressWithETA{
		ProgressState: NewProgressState(lanes),
		startTime:     time.Now(),
	}
}

// UpdateWithETA records a lane's progress and returns the new average
// progress together with the current completion estimate.
func (p *ProgressWithETA) UpdateWithETA(lane int, fraction float64) (float64, time.Duration) {
	p.Update(lane, fraction)
	avg := p.CalculateAverage()
	if elapsed := time.Since(p.startTime).Seconds(); elapsed > 0 && avg > 0 {
		p.progressRate = avg / elapsed
	}
	return avg, p.GetETA()
}

// GetETA estimates the remaining time from the observed progress rate,
// capped at 24 hours. Zero means no estimate is available yet.
func (p *ProgressWithETA) GetETA() time.Duration {
	if p.progressRate <= 0 {
		return 0
	}
	remaining := 1 - p.CalculateAverage()
	if remaining <= 0 {
		return 0
	}
	eta := time.Duration(remaining / p.progressRate * float64(time.Second))
	if eta > maxETA {
		return maxETA
	}
	return eta
}

// FormatETA renders an estimate compactly: "45s", "2m30s", "1h15m".
// Non-positive estimates render as "calculating...".
func FormatETA(eta time.Duration) string {
	if eta <= 0 {
		return "calculating..."
	}
	if eta < time.Second {
		return "< 1s"
	}
	eta = eta.Round(time.Second)
	h := int(eta.Hours())
	m := int(eta.Minutes()) % 60
	s := int(eta.Seconds()) % 60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh%dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	case m > 0 && s > 0:
		return fmt.Sprintf("%dm%ds", m, s)
	case m > 0:
		return fmt.Sprintf("%dm", m)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

// ProgressBar renders a fixed-width bar of filled and empty blocks.
// Progress is clamped to [0, 1].
func ProgressBar(progress float64, length int) string {
	progress = math.Min(1, math.Max(0, progress))
	filled := int(progress*float64(length) + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}

// FormatProgressBarWithETA combines the bar, the percentage and the ETA
// into one status line.
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("[%s] %5.1f%% ETA: %s", ProgressBar(progress, width), math.Min(1, math.Max(0, progress))*100, FormatETA(eta))
}

// FormatNumberString inserts thousand separators into a decimal string.
// A leading sign is preserved; the empty string passes through.
func FormatNumberString(s string) string {
	if s == "" {
		return s
	}
	sign := ""
	if s[0] == '-' || s[0] == '+' {
		sign, s = s[:1], s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return sign + b.String()
}
