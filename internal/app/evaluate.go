package app

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/agbru/qsim/internal/circuit"
	"github.com/agbru/qsim/internal/cli"
	"github.com/agbru/qsim/internal/engine"
	apperrors "github.com/agbru/qsim/internal/errors"
	"github.com/agbru/qsim/internal/metrics"
	"github.com/agbru/qsim/internal/orchestration"
	"github.com/agbru/qsim/internal/qstate"
	"github.com/agbru/qsim/internal/tui"
)

// limits derives the engine resource limits from the configuration.
func (a *Application) limits() engine.Limits {
	return engine.Limits{
		MaxQubits:     a.Config.MaxQubits,
		MaxAmplitudes: a.Config.MaxAmplitudes(),
	}
}

// lanes builds the execution lanes with the application's logger and
// metrics recorder attached to every engine.
func (a *Application) lanes() []orchestration.Lane {
	return orchestration.SelectLanes(a.Config, a.limits(),
		engine.WithLogger(a.log),
		engine.WithRecorder(a.recorder))
}

// groundState returns the |0...0> register for the configured size.
func (a *Application) groundState() qstate.Buffer {
	state := make(qstate.Buffer, uint64(1)<<a.Config.Qubits)
	state[0] = 1
	return state
}

// runEvaluate orchestrates the one-shot CLI evaluation command.
func (a *Application) runEvaluate(ctx context.Context, out io.Writer) int {
	if a.Config.Circuit == "" {
		fmt.Fprintf(a.ErrWriter, "No circuit given: pass one with -c, or start -interactive or -tui.\n")
		return apperrors.ExitErrorConfig
	}

	circ, err := circuit.Parse(a.Config.Circuit, a.Config.Qubits)
	if err != nil {
		return cli.CLIResultPresenter{}.HandleError(err, 0, a.ErrWriter)
	}

	// Setup lifecycle (timeout + signals)
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	lanes := a.lanes()

	// Refuse oversized registers before allocating the amplitude buffer;
	// a 2^q allocation for a register the limits reject would OOM first.
	if err := lanes[0].Engine.CheckLimits(a.Config.Qubits); err != nil {
		return cli.CLIResultPresenter{}.HandleError(err, 0, a.ErrWriter)
	}

	// Skip verbose output in quiet mode
	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(lanes, out)
	}

	// Choose progress reporter based on quiet mode
	var progressReporter orchestration.ProgressReporter
	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
		progressReporter = orchestration.NullProgressReporter{}
	} else {
		progressReporter = cli.CLIProgressReporter{}
	}

	results := orchestration.ExecuteEvaluations(ctx, lanes, circ, a.groundState(), progressReporter, progressOut)

	outputCfg := cli.OutputConfig{
		OutputFile:     a.Config.OutputFile,
		Quiet:          a.Config.Quiet,
		ShowAmplitudes: a.Config.ShowAmplitudes,
		MinProbability: a.Config.MinProbability,
	}
	return a.analyzeResultsWithOutput(results, outputCfg, out)
}

// analyzeResultsWithOutput presents the lane results and handles quiet mode
// and file output.
func (a *Application) analyzeResultsWithOutput(results []orchestration.EvaluationResult, outputCfg cli.OutputConfig, out io.Writer) int {
	bestResult := findBestResult(results)

	// Handle quiet mode for single result
	if outputCfg.Quiet && bestResult != nil {
		cli.DisplayQuietResult(out, bestResult.State)
		if err := a.saveResultIfNeeded(bestResult, outputCfg); err != nil {
			return apperrors.ExitErrorGeneric
		}
		return apperrors.ExitSuccess
	}

	exitCode := orchestration.AnalyzeComparisonResults(results, a.Config, cli.CLIResultPresenter{}, out)

	// Handle file output for non-quiet mode
	if bestResult != nil && exitCode == apperrors.ExitSuccess {
		if err := a.saveResultIfNeeded(bestResult, outputCfg); err != nil {
			return apperrors.ExitErrorGeneric
		}
		if outputCfg.OutputFile != "" {
			fmt.Fprintf(out, "\nState saved to: %s\n", outputCfg.OutputFile)
		}
	}

	if a.Config.Verbose {
		cli.DisplayMemoryStats(metrics.NewMemoryCollector().Snapshot(), out)
		if families, err := a.registry.Gather(); err == nil {
			cli.DisplayMetricFamilies(families, out)
		}
	}

	return exitCode
}

// findBestResult returns the fastest successful lane, or nil.
func findBestResult(results []orchestration.EvaluationResult) *orchestration.EvaluationResult {
	var bestResult *orchestration.EvaluationResult
	for i := range results {
		if results[i].Err == nil {
			if bestResult == nil || results[i].Duration < bestResult.Duration {
				bestResult = &results[i]
			}
		}
	}
	return bestResult
}

// saveResultIfNeeded writes the state file when an output path is set.
func (a *Application) saveResultIfNeeded(res *orchestration.EvaluationResult, cfg cli.OutputConfig) error {
	if cfg.OutputFile == "" {
		return nil
	}
	if err := cli.WriteStateToFile(res.State, a.Config.Circuit, res.Duration, res.Name, cfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving state: %v\n", err)
		return err
	}
	return nil
}

// runREPL starts the interactive session. A sequential lane is always
// included so the compare command works regardless of the -compare flag.
func (a *Application) runREPL(out io.Writer) int {
	cfg := a.Config
	cfg.Compare = true
	lanes := orchestration.SelectLanes(cfg, a.limits(),
		engine.WithLogger(a.log),
		engine.WithRecorder(a.recorder))

	repl := cli.NewREPL(lanes, cli.REPLConfig{
		Qubits:         a.Config.Qubits,
		MaxQubits:      a.Config.MaxQubits,
		Timeout:        a.Config.Timeout,
		ShowAmplitudes: a.Config.ShowAmplitudes,
		MinProbability: a.Config.MinProbability,
	})
	repl.SetOutput(out)
	repl.Start()
	return apperrors.ExitSuccess
}

// runTUI launches the interactive circuit inspector.
func (a *Application) runTUI(ctx context.Context, _ io.Writer) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	return tui.Run(ctx, a.Config, Version)
}
