package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/agbru/qsim/internal/config"
	apperrors "github.com/agbru/qsim/internal/errors"
	"github.com/agbru/qsim/internal/metrics"
	"github.com/agbru/qsim/internal/orchestration"
	"github.com/agbru/qsim/internal/qstate"
	"github.com/agbru/qsim/internal/ui"
)

func TestPresentComparisonTable(t *testing.T) {
	ui.InitTheme(true)
	results := []orchestration.EvaluationResult{
		{Name: "Parallel", State: qstate.Buffer{1, 0}, Duration: 2 * time.Millisecond},
		{Name: "Sequential", Duration: 5 * time.Millisecond, Err: apperrors.NewConfigError("boom")},
	}

	var buf bytes.Buffer
	CLIResultPresenter{}.PresentComparisonTable(results, &buf)
	out := buf.String()

	for _, want := range []string{"Comparison Summary", "Lane", "Duration", "Status", "Parallel", "Sequential", "success", "failure"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestPresentComparisonTableZeroDuration(t *testing.T) {
	ui.InitTheme(true)
	results := []orchestration.EvaluationResult{
		{Name: "Parallel", State: qstate.Buffer{1}, Duration: 0},
	}

	var buf bytes.Buffer
	CLIResultPresenter{}.PresentComparisonTable(results, &buf)
	if !strings.Contains(buf.String(), "< 1µs") {
		t.Errorf("zero duration not rendered as < 1µs:\n%s", buf.String())
	}
}

func TestPresentResult(t *testing.T) {
	ui.InitTheme(true)
	res := orchestration.EvaluationResult{
		Name:     "Parallel",
		State:    qstate.Buffer{1, 0},
		Duration: time.Millisecond,
	}

	var buf bytes.Buffer
	CLIResultPresenter{}.PresentResult(res, config.DefaultConfig(), &buf)
	if !strings.Contains(buf.String(), "Final State") {
		t.Errorf("result display missing state section:\n%s", buf.String())
	}
}

func TestHandleError(t *testing.T) {
	ui.InitTheme(true)
	p := CLIResultPresenter{}

	var buf bytes.Buffer
	if code := p.HandleError(nil, 0, &buf); code != apperrors.ExitSuccess {
		t.Errorf("nil error exit code = %d, want %d", code, apperrors.ExitSuccess)
	}

	code := p.HandleError(apperrors.NewConfigError("bad flag"), time.Second, &buf)
	if code != apperrors.ExitErrorConfig {
		t.Errorf("config error exit code = %d, want %d", code, apperrors.ExitErrorConfig)
	}
	if !strings.Contains(buf.String(), "bad flag") {
		t.Errorf("error text missing from output:\n%s", buf.String())
	}
}

func TestDisplayMemoryStats(t *testing.T) {
	snapshot := metrics.MemorySnapshot{
		HeapAlloc:    2 * 1024 * 1024,
		HeapSys:      8 * 1024 * 1024,
		HeapObjects:  1234,
		NumGC:        3,
		PauseTotalNs: 1_500_000,
	}

	var buf bytes.Buffer
	DisplayMemoryStats(snapshot, &buf)
	out := buf.String()

	for _, want := range []string{"Memory Stats", "2.0 MiB", "8.0 MiB", "1,234", "GC cycles:       3", "1.50ms"} {
		if !strings.Contains(out, want) {
			t.Errorf("memory stats missing %q:\n%s", want, out)
		}
	}
}

func TestDisplayMetricFamilies(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := metrics.NewRecorder()
	if err := rec.Register(reg); err != nil {
		t.Fatalf("Register: %v", err)
	}
	rec.IncEvaluations("ok")
	rec.ObserveKernelPass("qft", 2*time.Millisecond)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}

	var buf bytes.Buffer
	DisplayMetricFamilies(families, &buf)
	out := buf.String()

	for _, want := range []string{
		"Evaluation Metrics:",
		`qsim_evaluations_total{outcome="ok"} = 1`,
		`qsim_kernel_pass_duration_seconds{kernel="qft"} = 1 observations`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("metrics output missing %q:\n%s", want, out)
		}
	}
}

func TestDisplayMemoryStatsGCDisabled(t *testing.T) {
	var buf bytes.Buffer
	DisplayMemoryStats(metrics.MemorySnapshot{}, &buf)
	if !strings.Contains(buf.String(), "GC disabled") {
		t.Errorf("zero pause total should note disabled GC:\n%s", buf.String())
	}
}
