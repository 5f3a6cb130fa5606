package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/agbru/qsim/internal/format"
	"github.com/agbru/qsim/internal/qstate"
	"github.com/agbru/qsim/internal/stats"
	"github.com/agbru/qsim/internal/ui"
)

// DisplayResult writes the final state summary: per-wire probabilities,
// the amplitude table and the evaluation duration.
//
// Parameters:
//   - state: The final amplitude buffer.
//   - duration: The evaluation duration.
//   - showAll: When true, every amplitude row is printed.
//   - minProbability: Display cutoff for amplitude rows when showAll is false.
//   - out: The writer for standard output.
func DisplayResult(state qstate.Buffer, duration time.Duration, showAll bool, minProbability float64, out io.Writer) {
	th := theme()
	qubits := state.Qubits()

	fmt.Fprintf(out, "\n%s--- Final State ---%s\n", th.Bold, th.Reset)
	DisplayWireProbabilities(state, out)
	DisplayAmplitudes(state, showAll, minProbability, out)

	total := stats.TotalProbability(state)
	fmt.Fprintf(out, "Wires: %s   Total probability: %s\n",
		ui.Colorize(th.Info, fmt.Sprintf("%d", qubits)),
		ui.Colorize(th.Info, fmt.Sprintf("%.6f", total)))
	fmt.Fprintf(out, "Evaluation time: %s\n",
		ui.Colorize(th.Success, format.FormatExecutionDuration(duration)))
}

// DisplayWireProbabilities prints the chance of measuring 1 on each wire.
func DisplayWireProbabilities(state qstate.Buffer, out io.Writer) {
	th := theme()
	probs := stats.WireProbabilities(state)
	for wire, p := range probs {
		bar := format.ProgressBar(p.One, 20)
		fmt.Fprintf(out, "  wire %s  %s %s\n",
			ui.Colorize(th.Primary, fmt.Sprintf("%2d", wire)),
			bar,
			ui.Colorize(th.Info, format.FormatProbability(p.One)))
	}
}

// DisplayAmplitudes prints the amplitude table. Rows whose probability
// falls below minProbability are skipped unless showAll is set; non-finite
// amplitudes are always shown and flagged.
func DisplayAmplitudes(state qstate.Buffer, showAll bool, minProbability float64, out io.Writer) {
	fmt.Fprint(out, FormatStateTable(state, showAll, minProbability))
}

// FormatStateTable renders the amplitude table as a string without
// performing I/O.
//
// Parameters:
//   - state: The amplitude buffer to render.
//   - showAll: When true, include every row.
//   - minProbability: Row cutoff when showAll is false.
//
// Returns:
//   - string: The formatted table, one basis state per line.
func FormatStateTable(state qstate.Buffer, showAll bool, minProbability float64) string {
	th := theme()
	qubits := state.Qubits()

	amps := stats.Amplitudes(state)
	if !showAll {
		amps = stats.NonZero(amps, minProbability)
	}

	var b strings.Builder
	skipped := len(state) - len(amps)
	for _, amp := range amps {
		basis := format.FormatBasisState(amp.Index, qubits)
		line := fmt.Sprintf("  %s  %s  %s",
			ui.Colorize(th.Primary, basis),
			format.FormatAmplitude(amp.Value),
			ui.Colorize(th.Info, format.FormatProbability(amp.Probability)))
		if !amp.Finite {
			line += ui.Colorize(th.Warning, "  (non-finite)")
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if skipped > 0 {
		b.WriteString(fmt.Sprintf("  (%s amplitudes below display cutoff)\n",
			format.FormatNumberString(fmt.Sprintf("%d", skipped))))
	}
	return b.String()
}
