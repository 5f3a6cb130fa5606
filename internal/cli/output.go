// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayResult], [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     They are pure functions suitable for composition.
//     Examples: [FormatStateTable], [FormatQuietResult].
//
//   - Write* functions write data to files on the filesystem.
//     They handle file creation, directory setup, and error handling.
//     Examples: [WriteStateToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/qsim/internal/format"
	"github.com/agbru/qsim/internal/qstate"
	"github.com/agbru/qsim/internal/stats"
	"github.com/agbru/qsim/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Quiet mode suppresses verbose output.
	Quiet bool
	// ShowAmplitudes includes every amplitude row when true.
	ShowAmplitudes bool
	// MinProbability is the row cutoff when ShowAmplitudes is false.
	MinProbability float64
}

// WriteStateToFile writes a final state to a file.
//
// Parameters:
//   - state: The final amplitude buffer.
//   - notation: The circuit notation that was evaluated.
//   - duration: The evaluation duration.
//   - lane: The name of the lane that produced the state.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteStateToFile(state qstate.Buffer, notation string, duration time.Duration, lane string, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	// Ensure directory exists
	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	qubits := state.Qubits()

	// Write header
	fmt.Fprintf(file, "# Circuit Evaluation Result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Lane: %s\n", lane)
	fmt.Fprintf(file, "# Duration: %s\n", duration)
	fmt.Fprintf(file, "# Circuit: %s\n", notation)
	fmt.Fprintf(file, "# Qubits: %d\n", qubits)
	fmt.Fprintf(file, "# Amplitudes: %d\n", len(state))
	fmt.Fprintf(file, "# Total probability: %.9f\n", stats.TotalProbability(state))
	fmt.Fprintf(file, "\n")

	// Write the full table, uncolored
	for _, amp := range stats.Amplitudes(state) {
		fmt.Fprintf(file, "%s %s %s\n",
			format.FormatBasisState(amp.Index, qubits),
			format.FormatAmplitude(amp.Value),
			format.FormatProbability(amp.Probability))
	}

	return nil
}

// FormatQuietResult formats a state for quiet mode output.
// Returns one bare amplitude per line, suitable for scripting.
//
// Parameters:
//   - state: The final amplitude buffer.
//
// Returns:
//   - string: The formatted result string.
func FormatQuietResult(state qstate.Buffer) string {
	var b []byte
	for _, amp := range state {
		b = append(b, format.FormatAmplitude(amp)...)
		b = append(b, '\n')
	}
	return string(b)
}

// DisplayQuietResult outputs a state in quiet mode (minimal output).
//
// Parameters:
//   - out: The output writer.
//   - state: The final amplitude buffer.
func DisplayQuietResult(out io.Writer, state qstate.Buffer) {
	fmt.Fprint(out, FormatQuietResult(state))
}

// DisplayResultWithConfig displays a result with the given output
// configuration. This is a unified function that handles all output modes.
//
// Parameters:
//   - out: The output writer.
//   - state: The final amplitude buffer.
//   - notation: The circuit notation that was evaluated.
//   - duration: The evaluation duration.
//   - lane: The name of the lane that produced the state.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if file output fails.
func DisplayResultWithConfig(out io.Writer, state qstate.Buffer, notation string, duration time.Duration, lane string, config OutputConfig) error {
	// Handle quiet mode
	if config.Quiet {
		DisplayQuietResult(out, state)
	} else {
		// Use standard display
		DisplayResult(state, duration, config.ShowAmplitudes, config.MinProbability, out)
	}

	// Save to file if requested
	if config.OutputFile != "" {
		if err := WriteStateToFile(state, notation, duration, lane, config); err != nil {
			return err
		}
		if !config.Quiet {
			th := theme()
			fmt.Fprintf(out, "\n%sState saved to: %s\n",
				ui.Colorize(th.Success, "✓ "), ui.Colorize(th.Info, config.OutputFile))
		}
	}

	return nil
}
