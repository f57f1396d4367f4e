package scoring

import "github.com/bramv/brainsparks/internal/history"

// Per-kind reference points for normalization. A score at the baseline maps
// to z = 0; spread is the population-like scale of one z unit.
var baselines = map[history.TestKind]float64{
	history.KindArithmetic: 420,
	history.KindMemory:     360,
	history.KindReaction:   280,
	history.KindOddOneOut:  400,
}

var spreads = map[history.TestKind]float64{
	history.KindArithmetic: 110,
	history.KindMemory:     90,
	history.KindReaction:   100,
	history.KindOddOneOut:  95,
}

// Normalise maps a raw score to its z value for the kind. The kind
// enumeration is closed; callers never pass anything outside it.
func Normalise(score int, kind history.TestKind) float64 {
	return (float64(score) - baselines[kind]) / spreads[kind]
}

// FeedbackClass is the qualitative judgement shown after a test.
type FeedbackClass string

const (
	FeedbackPositive FeedbackClass = "positive"
	FeedbackNeutral  FeedbackClass = "neutral"
	FeedbackNegative FeedbackClass = "negative"
)

// Feedback classifies a score relative to the kind's baseline: positive a
// full spread above, negative 0.4 spreads below, neutral in between.
func Feedback(score int, kind history.TestKind) FeedbackClass {
	base := baselines[kind]
	spread := spreads[kind]
	s := float64(score)
	switch {
	case s >= base+spread:
		return FeedbackPositive
	case s >= base-spread*0.4:
		return FeedbackNeutral
	default:
		return FeedbackNegative
	}
}
