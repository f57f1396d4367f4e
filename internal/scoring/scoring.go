// Package scoring converts raw mini-game performance into comparable scores
// and derives the brain-age estimate from a finished session.
package scoring

import "math"

// Arithmetic scores the timed arithmetic drill. Ten points per correct
// answer, five off per mistake, two per second left on the clock.
func Arithmetic(correct, mistakes int, timeLeftSecs float64) int {
	bonus := int(math.Max(0, math.Round(timeLeftSecs*2)))
	score := correct*10 - mistakes*5 + bonus
	if score < 0 {
		return 0
	}
	return score
}

// Memory scores the digit-span drill from the longest recalled sequence and
// the round accuracy. Accuracy is clamped to [0,1] even though callers
// should already bound it.
func Memory(longest int, accuracy float64) int {
	return int(math.Round(float64(longest)*15 + clamp01(accuracy)*10*float64(longest)))
}

// Reaction scores the reaction drill from the median response time. Zero at
// or above 500ms, rising linearly to 500 at an (impossible) 0ms median.
func Reaction(medianMs float64) int {
	base := math.Max(0, 500-medianMs)
	return int(math.Round(base / 500 * 500))
}

// OddOneOut scores the visual search drill. Twelve points per hit, six off
// per miss, one per second left.
func OddOneOut(correct, mistakes int, timeLeftSecs float64) int {
	bonus := int(math.Max(0, math.Round(timeLeftSecs)))
	score := correct*12 - mistakes*6 + bonus
	if score < 0 {
		return 0
	}
	return score
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
