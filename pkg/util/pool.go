package util

import "runtime"

// OptimalPoolSize returns the worker count for parallel file processing:
// min(max(NumCPU × 2, 4), 32). Parsing is cheap per file, so the win comes
// from overlapping disk reads with extraction.
func OptimalPoolSize() int {
	size := runtime.NumCPU() * 2
	if size < 4 {
		size = 4
	}
	if size > 32 {
		size = 32
	}
	return size
}

// PoolSizeWithOverride returns override when positive, otherwise the
// computed optimum. Useful for tests and tuning.
func PoolSizeWithOverride(override int) int {
	if override > 0 {
		return override
	}
	return OptimalPoolSize()
}
