package cli

import (
	"bytes"
	"io"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/qsim/internal/orchestration"
	"github.com/agbru/qsim/internal/qstate"
	"github.com/agbru/qsim/internal/ui"
)

// MockSpinner for testing
type MockSpinner struct {
	mu       sync.Mutex
	started  bool
	stopped  bool
	suffixes []string
}

func (m *MockSpinner) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = true
}

func (m *MockSpinner) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
}

func (m *MockSpinner) UpdateSuffix(suffix string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suffixes = append(m.suffixes, suffix)
}

func (m *MockSpinner) lastSuffix() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.suffixes) == 0 {
		return ""
	}
	return m.suffixes[len(m.suffixes)-1]
}

// withMockSpinner swaps the spinner constructor for the test's duration.
func withMockSpinner(t *testing.T) *MockSpinner {
	t.Helper()
	mock := &MockSpinner{}
	orig := newSpinner
	newSpinner = func(options ...spinner.Option) Spinner { return mock }
	t.Cleanup(func() { newSpinner = orig })
	return mock
}

func TestDisplayProgressDrivesSpinner(t *testing.T) {
	ui.InitTheme(true)
	mock := withMockSpinner(t)

	progressChan := make(chan orchestration.ProgressUpdate, 4)
	var wg sync.WaitGroup
	wg.Add(1)
	go DisplayProgress(&wg, progressChan, 1, io.Discard)

	progressChan <- orchestration.ProgressUpdate{LaneIndex: 0, Value: 0.5}
	progressChan <- orchestration.ProgressUpdate{LaneIndex: 0, Value: 1.0}
	close(progressChan)
	wg.Wait()

	if !mock.started {
		t.Error("spinner was never started")
	}
	if !mock.stopped {
		t.Error("spinner was never stopped")
	}
	last := mock.lastSuffix()
	if !strings.Contains(last, "100.0%") {
		t.Errorf("final suffix %q does not report completion", last)
	}
}

func TestDisplayProgressMultiLaneSuffix(t *testing.T) {
	ui.InitTheme(true)
	mock := withMockSpinner(t)

	progressChan := make(chan orchestration.ProgressUpdate, 4)
	var wg sync.WaitGroup
	wg.Add(1)
	go DisplayProgress(&wg, progressChan, 2, io.Discard)

	progressChan <- orchestration.ProgressUpdate{LaneIndex: 0, Value: 1.0}
	close(progressChan)
	wg.Wait()

	found := false
	for _, s := range mock.suffixes {
		if strings.Contains(s, "(2 lanes)") {
			found = true
		}
	}
	if !found {
		t.Error("multi-lane suffix never mentioned the lane count")
	}
}

func TestDisplayProgressZeroLanesDrains(t *testing.T) {
	progressChan := make(chan orchestration.ProgressUpdate, 2)
	progressChan <- orchestration.ProgressUpdate{LaneIndex: 0, Value: 0.5}
	close(progressChan)

	var wg sync.WaitGroup
	wg.Add(1)
	DisplayProgress(&wg, progressChan, 0, io.Discard)
	wg.Wait()
}

func TestDisplayResult(t *testing.T) {
	ui.InitTheme(true)

	inv := complex(1/math.Sqrt2, 0)
	state := qstate.Buffer{inv, 0, 0, inv}

	var buf bytes.Buffer
	DisplayResult(state, 3*time.Millisecond, false, 1e-9, &buf)
	out := buf.String()

	for _, want := range []string{"Final State", "|00>", "|11>", "wire  0", "wire  1", "Total probability", "Evaluation time"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "|01>") {
		t.Error("zero amplitude |01> should be below the display cutoff")
	}
}

func TestFormatStateTableShowAll(t *testing.T) {
	ui.InitTheme(true)

	state := qstate.Buffer{1, 0}
	table := FormatStateTable(state, true, 1e-9)
	if !strings.Contains(table, "|0>") || !strings.Contains(table, "|1>") {
		t.Errorf("show-all table missing rows:\n%s", table)
	}

	filtered := FormatStateTable(state, false, 1e-9)
	if strings.Contains(filtered, "|1>") {
		t.Errorf("filtered table should omit the zero amplitude:\n%s", filtered)
	}
	if !strings.Contains(filtered, "below display cutoff") {
		t.Errorf("filtered table should count skipped rows:\n%s", filtered)
	}
}

func TestFormatStateTableFlagsNonFinite(t *testing.T) {
	ui.InitTheme(true)

	state := qstate.Buffer{complex(math.NaN(), 0), 1}
	table := FormatStateTable(state, false, 1e-9)
	if !strings.Contains(table, "non-finite") {
		t.Errorf("NaN amplitude not flagged:\n%s", table)
	}
}
