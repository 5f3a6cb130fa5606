package orchestration

import (
	"github.com/agbru/qsim/internal/config"
	"github.com/agbru/qsim/internal/engine"
)

// sequentialThreshold is a parallel threshold no realistic buffer reaches,
// forcing every kernel pass onto a single goroutine.
const sequentialThreshold = 1 << 62

// SelectLanes builds the execution lanes for the configuration.
//
// The default is a single lane using the configured parallel threshold.
// In comparison mode a sequential lane is added so the same circuit runs
// once per execution strategy and the timings can be compared.
//
// Parameters:
//   - cfg: The application configuration.
//   - limits: The resource limits shared by every lane's engine.
//   - options: Extra engine options (logger, recorder) applied to every lane.
//
// Returns:
//   - []Lane: The lanes to execute, parallel lane first.
func SelectLanes(cfg config.AppConfig, limits engine.Limits, options ...engine.Option) []Lane {
	parallel := append([]engine.Option{engine.WithParallelThreshold(cfg.ParallelThreshold)}, options...)
	lanes := []Lane{
		{Name: "Parallel", Engine: engine.New(limits, parallel...)},
	}
	if cfg.Compare {
		sequential := append([]engine.Option{engine.WithParallelThreshold(sequentialThreshold)}, options...)
		lanes = append(lanes, Lane{Name: "Sequential", Engine: engine.New(limits, sequential...)})
	}
	return lanes
}
