package games

import (
	"time"

	"github.com/bramv/brainsparks/internal/difficulty"
)

// TrialDelay draws a random wait before the go signal, within the tier's
// delay bounds.
func TrialDelay(cfg difficulty.ReactionConfig, rnd Rand) time.Duration {
	ms := intBetween(rnd, cfg.MinDelayMs, cfg.MaxDelayMs)
	return time.Duration(ms) * time.Millisecond
}

// MedianMs returns the median of the recorded reaction times in
// milliseconds, averaging the middle pair for even counts. Zero for an
// empty slice.
func MedianMs(times []int) int {
	if len(times) == 0 {
		return 0
	}
	sorted := make([]int, len(times))
	copy(sorted, times)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j] < sorted[j-1]; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid] + 1) / 2
	}
	return sorted[mid]
}
