package config

import "runtime"

// Threshold resolution chain (highest priority first):
//  1. CLI flag (--parallel-threshold)
//  2. Environment variable (QSIM_PARALLEL_THRESHOLD)
//  3. Adaptive hardware estimation (this file)

// ApplyAdaptiveThresholds fills in the parallel dispatch threshold from
// hardware characteristics when it is still at its zero default,
// preserving any user-specified value.
func ApplyAdaptiveThresholds(cfg AppConfig) AppConfig {
	if cfg.ParallelThreshold == 0 {
		cfg.ParallelThreshold = EstimateOptimalParallelThreshold()
	}
	return cfg
}

// EstimateOptimalParallelThreshold provides a heuristic estimate of the
// index-space size below which parallel dispatch costs more than it
// saves, without running benchmarks.
func EstimateOptimalParallelThreshold() int {
	numCPU := runtime.NumCPU()

	switch {
	case numCPU == 1:
		return 1 << 62 // No parallelism
	case numCPU <= 2:
		return 1 << 16 // High threshold - parallelism overhead is significant
	case numCPU <= 8:
		return 1 << 14 // Default
	default:
		return 1 << 12 // High core count - aggressive parallelism
	}
}
