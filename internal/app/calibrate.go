package app

import (
	"context"
	"fmt"
	"io"

	"github.com/agbru/qsim/internal/calibration"
	apperrors "github.com/agbru/qsim/internal/errors"
	"github.com/agbru/qsim/internal/logging"
)

// runCalibrate benchmarks candidate parallel thresholds and adopts the
// winner for the rest of the run. Results are printed unless quiet mode
// is on.
func (a *Application) runCalibrate(ctx context.Context, out io.Writer) int {
	qubits := calibration.DefaultQubits
	if a.Config.MaxQubits < qubits {
		qubits = a.Config.MaxQubits
	}

	best, results, err := calibration.Run(ctx, qubits)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Calibration failed: %v\n", err)
		return apperrors.ExitCodeFor(err)
	}

	if !a.Config.Quiet {
		calibration.PrintResults(out, results, best)
		calibration.PrintSelection(out, best)
	}
	a.log.Debug("calibration finished", logging.Int("threshold", best))
	a.Config.ParallelThreshold = best
	return apperrors.ExitSuccess
}
