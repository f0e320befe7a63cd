package config

import "runtime"

// Worker resolution chain (highest priority first):
//   1. CLI flag (--workers)
//   2. Environment variable (BIGCALC_WORKERS)
//   3. Configuration file (workers = N)
//   4. Hardware estimation (this file)

// ApplyAdaptiveWorkers returns workers unchanged when it was set, and a
// hardware-based estimate when it is zero.
func ApplyAdaptiveWorkers(workers int) int {
	if workers == 0 {
		return EstimateOptimalWorkers()
	}
	return workers
}

// EstimateOptimalWorkers provides a heuristic estimate of the number of
// concurrent primality tests worth running. Each test is CPU bound and
// allocation heavy, so one core is left for the GC on larger machines.
func EstimateOptimalWorkers() int {
	numCPU := runtime.NumCPU()

	switch {
	case numCPU <= 2:
		return numCPU
	case numCPU <= 8:
		return numCPU - 1
	default:
		return numCPU - 2
	}
}
