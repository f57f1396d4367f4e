package scoring

import (
	"math"

	"github.com/bramv/brainsparks/internal/history"
)

// Brain-age bounds. The estimate is clamped so extreme sessions still map
// to a plausible human age.
const (
	MinBrainAge = 18
	MaxBrainAge = 80
)

// BrainAge aggregates a finished session's per-kind scores into a single
// estimated age. The map holds exactly the kinds played that session; a
// finished session always has at least one, so an empty map is a caller bug
// and reports the midpoint-ish default of the formula at z = 0.
func BrainAge(scores map[history.TestKind]int) int {
	if len(scores) == 0 {
		return int(clampAge(70))
	}

	var sum float64
	for kind, score := range scores {
		sum += Normalise(score, kind)
	}
	average := sum / float64(len(scores))

	mapped := 40 - average*12 + 30
	return int(math.Round(clampAge(mapped)))
}

func clampAge(v float64) float64 {
	return math.Min(MaxBrainAge, math.Max(MinBrainAge, v))
}
