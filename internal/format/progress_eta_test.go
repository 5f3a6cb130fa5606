package format

import (
	"strings"
	"testing"
	"time"
)

func TestProgressStateAveragesLanes(t *testing.T) {
	t.Parallel()
	ps := NewProgressState(2)

	ps.Update(0, 0.5)
	ps.Update(1, 1.0)
	if avg := ps.CalculateAverage(); avg != 0.75 {
		t.Errorf("average = %f, want 0.75", avg)
	}
}

func TestProgressStateClampsFractions(t *testing.T) {
	t.Parallel()
	ps := NewProgressState(2)

	ps.Update(0, 1.5)
	ps.Update(1, -0.5)
	if avg := ps.CalculateAverage(); avg != 0.5 {
		t.Errorf("average after clamping = %f, want 0.5", avg)
	}
}

func TestProgressStateIgnoresUnknownLanes(t *testing.T) {
	t.Parallel()
	ps := NewProgressState(2)

	ps.Update(5, 0.5)
	ps.Update(-1, 0.5)
	if avg := ps.CalculateAverage(); avg != 0 {
		t.Errorf("average = %f, want 0 after out-of-range updates", avg)
	}
}

func TestProgressStateZeroLanes(t *testing.T) {
	t.Parallel()
	ps := NewProgressState(0)
	if avg := ps.CalculateAverage(); avg != 0 {
		t.Errorf("average = %f, want 0", avg)
	}
}

func TestUpdateWithETAAveragesLanes(t *testing.T) {
	t.Parallel()
	p := NewProgressWithETA(2)

	progress, eta := p.UpdateWithETA(0, 0.25)
	if progress != 0.125 {
		t.Errorf("progress after one lane = %f, want 0.125", progress)
	}
	if eta < 0 {
		t.Errorf("ETA = %v, want non-negative", eta)
	}

	progress, _ = p.UpdateWithETA(1, 0.5)
	if progress != 0.375 {
		t.Errorf("progress after both lanes = %f, want 0.375", progress)
	}
}

func TestGetETAFromObservedRate(t *testing.T) {
	t.Parallel()
	p := NewProgressWithETA(1)

	if eta := p.GetETA(); eta != 0 {
		t.Errorf("ETA before any progress = %v, want 0", eta)
	}

	p.Update(0, 0.5)
	p.progressRate = 0.1

	// 50% remaining at 10% per second is about five seconds.
	eta := p.GetETA()
	if eta < 4*time.Second || eta > 6*time.Second {
		t.Errorf("ETA = %v, want about 5s", eta)
	}
}

func TestGetETACapped(t *testing.T) {
	t.Parallel()
	p := NewProgressWithETA(1)
	p.Update(0, 0.001)
	p.progressRate = 1e-9

	if eta := p.GetETA(); eta > maxETA {
		t.Errorf("ETA = %v, want at most %v", eta, maxETA)
	}
}

func TestFormatETA(t *testing.T) {
	t.Parallel()
	tests := []struct {
		eta  time.Duration
		want string
	}{
		{0, "calculating..."},
		{-time.Second, "calculating..."},
		{500 * time.Millisecond, "< 1s"},
		{45 * time.Second, "45s"},
		{time.Minute, "1m"},
		{2*time.Minute + 30*time.Second, "2m30s"},
		{time.Hour, "1h"},
		{time.Hour + 15*time.Minute, "1h15m"},
		{3*time.Hour + 45*time.Minute, "3h45m"},
	}
	for _, tt := range tests {
		if got := FormatETA(tt.eta); got != tt.want {
			t.Errorf("FormatETA(%v) = %q, want %q", tt.eta, got, tt.want)
		}
	}
}

func TestProgressBar(t *testing.T) {
	t.Parallel()
	tests := []struct {
		progress float64
		want     string
	}{
		{0.0, "░░░░░░░░░░"},
		{0.5, "█████░░░░░"},
		{1.0, "██████████"},
		{1.2, "██████████"},
		{-0.1, "░░░░░░░░░░"},
	}
	for _, tt := range tests {
		if got := ProgressBar(tt.progress, 10); got != tt.want {
			t.Errorf("ProgressBar(%f, 10) = %s, want %s", tt.progress, got, tt.want)
		}
	}
}

func TestFormatProgressBarWithETA(t *testing.T) {
	t.Parallel()
	line := FormatProgressBarWithETA(0.5, 30*time.Second, 20)

	for _, want := range []string{"[", "]", "50.0%", "ETA: 30s"} {
		if !strings.Contains(line, want) {
			t.Errorf("status line %q missing %q", line, want)
		}
	}
}

func TestFormatNumberString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"123", "123"},
		{"1234", "1,234"},
		{"1234567", "1,234,567"},
		{"-1234", "-1,234"},
		{"+1234", "+1,234"},
	}
	for _, tt := range tests {
		if got := FormatNumberString(tt.input); got != tt.want {
			t.Errorf("FormatNumberString(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
