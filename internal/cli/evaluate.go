package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/qsim/internal/config"
	"github.com/agbru/qsim/internal/orchestration"
	"github.com/agbru/qsim/internal/ui"
)

// PrintExecutionConfig displays the current execution configuration to the
// user. It shows the register size, timeout, environment details, and the
// parallel dispatch threshold.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	th := theme()
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Evaluating a %s qubit register (%s amplitudes) with a timeout of %s.\n",
		ui.Colorize(th.Info, fmt.Sprintf("%d", cfg.Qubits)),
		ui.Colorize(th.Info, fmt.Sprintf("%d", 1<<cfg.Qubits)),
		ui.Colorize(th.Warning, cfg.Timeout.String()))
	fmt.Fprintf(out, "Environment: %s logical processors, Go %s.\n",
		ui.Colorize(th.Info, fmt.Sprintf("%d", runtime.NumCPU())),
		ui.Colorize(th.Info, runtime.Version()))
	fmt.Fprintf(out, "Parallel dispatch threshold: %s amplitudes.\n",
		ui.Colorize(th.Info, fmt.Sprintf("%d", cfg.ParallelThreshold)))
}

// PrintExecutionMode displays the execution mode (single lane vs comparison).
//
// Parameters:
//   - lanes: The execution lanes that will run.
//   - out: The writer for standard output.
func PrintExecutionMode(lanes []orchestration.Lane, out io.Writer) {
	th := theme()
	var modeDesc string
	if len(lanes) > 1 {
		modeDesc = "Comparison of sequential and parallel execution"
	} else {
		modeDesc = fmt.Sprintf("Single evaluation on the %s lane",
			ui.Colorize(th.Success, lanes[0].Name))
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Evaluation ---\n")
}
