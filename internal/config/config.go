// Package config defines the application configuration and its resolution
// chain: CLI flags take priority over QSIM_-prefixed environment
// variables, which take priority over defaults. Engine size limits live
// here and are passed into the engine explicitly.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	apperrors "github.com/agbru/qsim/internal/errors"
)

// EnvPrefix is prepended to every environment variable override key.
const EnvPrefix = "QSIM_"

// Defaults for the interactive CLI.
const (
	DefaultQubits        = 3
	DefaultTimeout       = 1 * time.Minute
	DefaultMaxQubits     = 24
	DefaultMinProbMagnit = 1e-9
)

// AppConfig holds every runtime setting of the application.
type AppConfig struct {
	// Qubits is the register size.
	Qubits int
	// Circuit is the gate notation to evaluate.
	Circuit string
	// Timeout bounds one evaluation.
	Timeout time.Duration
	// ParallelThreshold is the minimum index-space size for parallel
	// kernel dispatch; 0 selects an adaptive estimate.
	ParallelThreshold int
	// MaxQubits caps the register size accepted by the engine.
	MaxQubits int
	// Compare runs the circuit on both the sequential and the parallel
	// lane and reports both timings.
	Compare bool
	// ShowAmplitudes prints the full amplitude table instead of only the
	// non-negligible entries.
	ShowAmplitudes bool
	// MinProbability is the display cutoff for amplitude rows.
	MinProbability float64
	// Verbose enables debug logging.
	Verbose bool
	// Quiet suppresses progress output.
	Quiet bool
	// TUI starts the interactive column-by-column inspector.
	TUI bool
	// OutputFile receives the final amplitude table ("" for none).
	OutputFile string
	// Completion names a shell to emit a completion script for ("" for none).
	Completion string
	// REPL starts the interactive read-eval-print loop.
	REPL bool
	// Calibrate benchmarks candidate parallel thresholds before running.
	Calibrate bool
}

// DefaultConfig returns the defaults before flag and env resolution.
func DefaultConfig() AppConfig {
	return AppConfig{
		Qubits:         DefaultQubits,
		Circuit:        "",
		Timeout:        DefaultTimeout,
		MaxQubits:      DefaultMaxQubits,
		MinProbability: DefaultMinProbMagnit,
	}
}

// ParseConfig resolves the configuration from the given command line.
//
// Parameters:
//   - args: The raw arguments, without the program name.
//   - output: Destination for flag usage text.
//
// Returns:
//   - AppConfig: The resolved configuration.
//   - error: Non-nil on unknown flags or invalid values.
func ParseConfig(args []string, output io.Writer) (AppConfig, error) {
	cfg := DefaultConfig()
	fs := flag.NewFlagSet("qsim", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.IntVar(&cfg.Qubits, "qubits", cfg.Qubits, "register size in qubits")
	fs.IntVar(&cfg.Qubits, "q", cfg.Qubits, "register size in qubits (shorthand)")
	fs.StringVar(&cfg.Circuit, "circuit", cfg.Circuit, "gate notation, e.g. 'h0 / cx0.1'")
	fs.StringVar(&cfg.Circuit, "c", cfg.Circuit, "gate notation (shorthand)")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "evaluation time limit")
	fs.IntVar(&cfg.ParallelThreshold, "parallel-threshold", cfg.ParallelThreshold, "minimum index-space size for parallel kernels (0 = adaptive)")
	fs.IntVar(&cfg.MaxQubits, "max-qubits", cfg.MaxQubits, "largest register the engine accepts")
	fs.BoolVar(&cfg.Compare, "compare", cfg.Compare, "run sequential and parallel lanes and compare timings")
	fs.BoolVar(&cfg.ShowAmplitudes, "all-amplitudes", cfg.ShowAmplitudes, "print every amplitude, including negligible ones")
	fs.Float64Var(&cfg.MinProbability, "min-probability", cfg.MinProbability, "display cutoff for amplitude rows")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "enable debug logging")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "enable debug logging (shorthand)")
	fs.BoolVar(&cfg.Quiet, "quiet", cfg.Quiet, "suppress progress output")
	fs.BoolVar(&cfg.TUI, "tui", cfg.TUI, "interactive column-by-column inspector")
	fs.StringVar(&cfg.OutputFile, "output", cfg.OutputFile, "write the final amplitude table to a file")
	fs.StringVar(&cfg.OutputFile, "o", cfg.OutputFile, "write the final amplitude table to a file (shorthand)")
	fs.StringVar(&cfg.Completion, "completion", cfg.Completion, "emit a shell completion script (bash, zsh, fish, powershell)")
	fs.BoolVar(&cfg.REPL, "interactive", cfg.REPL, "start the interactive read-eval-print loop")
	fs.BoolVar(&cfg.REPL, "i", cfg.REPL, "start the interactive read-eval-print loop (shorthand)")
	fs.BoolVar(&cfg.Calibrate, "calibrate", cfg.Calibrate, "benchmark parallel thresholds and use the fastest")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			// -help is not a configuration mistake; the caller maps it
			// to a clean exit.
			return cfg, err
		}
		return cfg, apperrors.NewConfigError("%v", err)
	}
	applyEnvOverrides(&cfg, fs)
	cfg = ApplyAdaptiveThresholds(cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks settings that flag parsing cannot.
func (c AppConfig) Validate() error {
	if c.Qubits < 1 {
		return apperrors.NewConfigError("qubits must be at least 1, got %d", c.Qubits)
	}
	if c.MaxQubits < 1 || c.MaxQubits > 62 {
		return apperrors.NewConfigError("max-qubits must be in [1,62], got %d", c.MaxQubits)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	}
	if c.MinProbability < 0 {
		return apperrors.NewConfigError("min-probability must be non-negative, got %g", c.MinProbability)
	}
	if c.Quiet && c.Verbose {
		return apperrors.NewConfigError("quiet and verbose are mutually exclusive")
	}
	return nil
}

// MaxAmplitudes derives the buffer-length limit from MaxQubits.
func (c AppConfig) MaxAmplitudes() uint64 {
	return uint64(1) << c.MaxQubits
}

// String summarizes the configuration for logging.
func (c AppConfig) String() string {
	return fmt.Sprintf("qubits=%d columns=%q timeout=%s threshold=%d", c.Qubits, c.Circuit, c.Timeout, c.ParallelThreshold)
}
