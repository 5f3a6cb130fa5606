package calibration

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/agbru/qsim/internal/format"
	"github.com/agbru/qsim/internal/ui"
)

// PrintResults writes the per-candidate timing table with the winner
// highlighted.
func PrintResults(out io.Writer, results []Result, best int) {
	theme := ui.GetCurrentTheme()

	fmt.Fprintf(out, "\n--- Calibration Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "  %s │ %s\n",
		ui.Colorize(theme.Bold, "Threshold"),
		ui.Colorize(theme.Bold, "Evaluation Time"))
	fmt.Fprintf(tw, "  %s┼%s\n", strings.Repeat("─", 14), strings.Repeat("─", 25))
	for _, res := range results {
		label := fmt.Sprintf("%d amplitudes", res.Threshold)
		if res.Sequential() {
			label = "Sequential"
		}
		durationStr := ui.Colorize(theme.Error, "N/A")
		if res.Err == nil {
			d := format.FormatExecutionDuration(res.Duration)
			if res.Duration == 0 {
				d = "< 1µs"
			}
			durationStr = ui.Colorize(theme.Warning, d)
		}
		highlight := ""
		if res.Threshold == best && res.Err == nil {
			highlight = " " + ui.Colorize(theme.Success, "(Optimal)")
		}
		fmt.Fprintf(tw, "  %s │ %s%s\n", ui.Colorize(theme.Info, fmt.Sprintf("%-14s", label)), durationStr, highlight)
	}
	tw.Flush()
}

// PrintSelection writes the one-line calibration outcome used when a
// circuit evaluation follows.
func PrintSelection(out io.Writer, best int) {
	theme := ui.GetCurrentTheme()
	label := fmt.Sprintf("%d amplitudes", best)
	if best >= sequentialThreshold {
		label = "sequential"
	}
	fmt.Fprintf(out, "%s: parallel threshold set to %s\n",
		ui.Colorize(theme.Success, "Auto-calibration"),
		ui.Colorize(theme.Warning, label))
}
