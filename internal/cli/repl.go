// Package cli provides the REPL (Read-Eval-Print Loop) functionality
// for interactive circuit evaluation.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/qsim/internal/circuit"
	"github.com/agbru/qsim/internal/format"
	"github.com/agbru/qsim/internal/orchestration"
	"github.com/agbru/qsim/internal/qstate"
	"github.com/agbru/qsim/internal/ui"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Qubits is the initial register size.
	Qubits int
	// MaxQubits caps the register size accepted by the session.
	MaxQubits int
	// Timeout is the maximum duration for each evaluation.
	Timeout time.Duration
	// ShowAmplitudes includes every amplitude row when true.
	ShowAmplitudes bool
	// MinProbability is the display cutoff for amplitude rows.
	MinProbability float64
}

// REPL represents an interactive circuit evaluation session. The session
// carries a register state across commands: each evaluated circuit is
// applied to the current state, not to a fresh register.
type REPL struct {
	config REPLConfig
	lanes  []orchestration.Lane
	qubits int
	state  qstate.Buffer
	in     io.Reader
	out    io.Writer
}

// NewREPL creates a new REPL instance.
//
// Parameters:
//   - lanes: The execution lanes; the first lane runs normal evaluations,
//     all lanes participate in the compare command.
//   - config: REPL configuration.
//
// Returns:
//   - *REPL: A new REPL instance.
func NewREPL(lanes []orchestration.Lane, config REPLConfig) *REPL {
	qubits := config.Qubits
	if qubits < 1 {
		qubits = 1
	}
	if config.MaxQubits > 0 && qubits > config.MaxQubits {
		qubits = config.MaxQubits
	}
	return &REPL{
		config: config,
		lanes:  lanes,
		qubits: qubits,
		state:  groundState(qubits),
		in:     os.Stdin,
		out:    os.Stdout,
	}
}

// groundState returns the |0...0> register of the given size.
func groundState(qubits int) qstate.Buffer {
	state := make(qstate.Buffer, 1<<qubits)
	state[0] = 1
	return state
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start begins the interactive REPL session.
// It continuously reads user input and processes commands until
// the user exits or EOF is reached.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	th := theme()
	reader := bufio.NewReader(r.in)

	for {
		fmt.Fprint(r.out, ui.Colorize(th.Success, "qsim> "))

		input, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(r.out, "%s\n", ui.Colorize(th.Error, fmt.Sprintf("Read error: %v", err)))
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if !r.processCommand(input) {
			return // Exit command received
		}
	}
}

// printBanner displays the REPL welcome banner.
func (r *REPL) printBanner() {
	th := theme()
	fmt.Fprintf(r.out, "\n%s\n", ui.Colorize(th.Primary, "╔══════════════════════════════════════════════════════════╗"))
	fmt.Fprintf(r.out, "%s     %s            %s\n",
		ui.Colorize(th.Primary, "║"),
		ui.Colorize(th.Bold, "Quantum Register Simulator - Interactive Mode"),
		ui.Colorize(th.Primary, "║"))
	fmt.Fprintf(r.out, "%s\n\n", ui.Colorize(th.Primary, "╚══════════════════════════════════════════════════════════╝"))
}

// printHelp displays available commands.
func (r *REPL) printHelp() {
	th := theme()
	cmd := func(s string) string { return ui.Colorize(th.Warning, s) }
	fmt.Fprintf(r.out, "%s\n", ui.Colorize(th.Bold, "Available commands:"))
	fmt.Fprintf(r.out, "  %s   - Apply a circuit to the current state, e.g. run h0 / cx0.1\n", cmd("run <circuit>"))
	fmt.Fprintf(r.out, "  %s - Time the circuit on every lane without changing state\n", cmd("compare <circuit>"))
	fmt.Fprintf(r.out, "  %s    - Resize the register and reset it to |0...0>\n", cmd("qubits <n>"))
	fmt.Fprintf(r.out, "  %s         - Reset the register to |0...0>\n", cmd("reset"))
	fmt.Fprintf(r.out, "  %s         - Display the current amplitude table\n", cmd("state"))
	fmt.Fprintf(r.out, "  %s          - Toggle display of negligible amplitudes\n", cmd("amps"))
	fmt.Fprintf(r.out, "  %s        - Display current configuration\n", cmd("status"))
	fmt.Fprintf(r.out, "  %s          - Display this help\n", cmd("help"))
	fmt.Fprintf(r.out, "  %s / %s   - Exit interactive mode\n", cmd("exit"), cmd("quit"))
	fmt.Fprintf(r.out, "Any other input is evaluated directly as circuit notation.\n")
}

// processCommand parses and executes a user command.
// Returns false if the REPL should exit.
func (r *REPL) processCommand(input string) bool {
	th := theme()
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	rest := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))

	switch cmd {
	case "run", "r":
		r.cmdRun(rest)
	case "compare", "cmp":
		r.cmdCompare(rest)
	case "qubits", "n":
		r.cmdQubits(parts[1:])
	case "reset":
		r.state = groundState(r.qubits)
		fmt.Fprintf(r.out, "Register reset to %s.\n", ui.Colorize(th.Primary, format.FormatBasisState(0, r.qubits)))
	case "state", "st":
		DisplayResult(r.state, 0, r.config.ShowAmplitudes, r.config.MinProbability, r.out)
	case "amps":
		r.cmdAmps()
	case "status":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%s\n", ui.Colorize(th.Success, "Goodbye!"))
		return false
	default:
		// Anything else is treated as circuit notation for quick evaluation
		r.cmdRun(input)
	}

	return true
}

// cmdRun evaluates circuit notation against the current state and adopts
// the result.
func (r *REPL) cmdRun(notation string) {
	th := theme()
	if notation == "" {
		fmt.Fprintf(r.out, "%s\n", ui.Colorize(th.Error, "Usage: run <circuit>"))
		return
	}

	circ, err := circuit.Parse(notation, r.qubits)
	if err != nil {
		fmt.Fprintf(r.out, "%s\n", ui.Colorize(th.Error, fmt.Sprintf("Parse error: %v", err)))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()

	fmt.Fprintf(r.out, "Evaluating %s on %s qubits...\n",
		ui.Colorize(th.Info, notation),
		ui.Colorize(th.Primary, strconv.Itoa(r.qubits)))

	start := time.Now()
	results := orchestration.ExecuteEvaluations(ctx, r.lanes[:1], circ, r.state, CLIProgressReporter{}, r.out)
	duration := time.Since(start)

	res := results[0]
	if res.Err != nil {
		fmt.Fprintf(r.out, "%s\n", ui.Colorize(th.Error, fmt.Sprintf("Error: %v", res.Err)))
		return
	}

	r.state = res.State
	DisplayResult(r.state, duration, r.config.ShowAmplitudes, r.config.MinProbability, r.out)
}

// cmdCompare times the circuit on every lane without changing the session
// state.
func (r *REPL) cmdCompare(notation string) {
	th := theme()
	if notation == "" {
		fmt.Fprintf(r.out, "%s\n", ui.Colorize(th.Error, "Usage: compare <circuit>"))
		return
	}
	if len(r.lanes) < 2 {
		fmt.Fprintf(r.out, "%s\n", ui.Colorize(th.Warning, "Only one lane is configured; start with -compare for a second lane."))
		return
	}

	circ, err := circuit.Parse(notation, r.qubits)
	if err != nil {
		fmt.Fprintf(r.out, "%s\n", ui.Colorize(th.Error, fmt.Sprintf("Parse error: %v", err)))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()

	results := orchestration.ExecuteEvaluations(ctx, r.lanes, circ, r.state, orchestration.NullProgressReporter{}, r.out)
	CLIResultPresenter{}.PresentComparisonTable(results, r.out)

	var first *orchestration.EvaluationResult
	for i := range results {
		if results[i].Err == nil {
			first = &results[i]
			break
		}
	}
	if first == nil {
		return
	}
	for _, res := range results {
		if res.Err == nil && !orchestration.StatesMatch(res.State, first.State, orchestration.MismatchTolerance) {
			fmt.Fprintf(r.out, "%s\n", ui.Colorize(th.Error, "Lanes disagree on the final state!"))
			return
		}
	}
	fmt.Fprintf(r.out, "All lane states are consistent.\n")
}

// cmdQubits resizes the register, resetting it to the ground state.
func (r *REPL) cmdQubits(args []string) {
	th := theme()
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%s\n", ui.Colorize(th.Error, "Usage: qubits <n>"))
		return
	}

	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		fmt.Fprintf(r.out, "%s\n", ui.Colorize(th.Error, fmt.Sprintf("Invalid register size: %s", args[0])))
		return
	}
	if n > r.config.MaxQubits {
		fmt.Fprintf(r.out, "%s\n", ui.Colorize(th.Error, fmt.Sprintf("Register size %d exceeds the limit of %d qubits", n, r.config.MaxQubits)))
		return
	}

	r.qubits = n
	r.state = groundState(n)
	fmt.Fprintf(r.out, "Register resized to %s qubits and reset.\n", ui.Colorize(th.Success, strconv.Itoa(n)))
}

// cmdAmps toggles full amplitude display.
func (r *REPL) cmdAmps() {
	th := theme()
	r.config.ShowAmplitudes = !r.config.ShowAmplitudes
	status := "hidden"
	if r.config.ShowAmplitudes {
		status = "shown"
	}
	fmt.Fprintf(r.out, "Negligible amplitudes: %s\n", ui.Colorize(th.Success, status))
}

// cmdStatus displays current REPL configuration.
func (r *REPL) cmdStatus() {
	th := theme()
	val := func(s string) string { return ui.Colorize(th.Info, s) }
	fmt.Fprintf(r.out, "\n%s\n", ui.Colorize(th.Bold, "Current configuration:"))
	fmt.Fprintf(r.out, "  Qubits:          %s\n", val(strconv.Itoa(r.qubits)))
	fmt.Fprintf(r.out, "  Amplitudes:      %s\n", val(strconv.Itoa(len(r.state))))
	fmt.Fprintf(r.out, "  Timeout:         %s\n", val(r.config.Timeout.String()))
	fmt.Fprintf(r.out, "  Lanes:           %s\n", val(strconv.Itoa(len(r.lanes))))
	showAll := "no"
	if r.config.ShowAmplitudes {
		showAll = "yes"
	}
	fmt.Fprintf(r.out, "  All amplitudes:  %s\n", val(showAll))
	fmt.Fprintln(r.out)
}
