// Package badges evaluates achievement rules over a finished session and
// the updated streak. Badges accumulate and are never removed.
package badges

import (
	"github.com/bramv/brainsparks/internal/history"
	"github.com/bramv/brainsparks/internal/streak"
)

// Badge identifiers. The set is closed; persisted data may only ever
// contain these ids.
const (
	Streak3       = "streak-3"
	Streak5       = "streak-5"
	Streak10      = "streak-10"
	ReactionQuick = "reaction-quick"
	ArithmeticAce = "arithmetic-ace"
	MemoryMarvel  = "memory-marvel"
)

// Rule decides whether a badge is earned by the given finished session and
// post-session streak.
type Rule func(sess *history.Session, st streak.State) bool

// Definition pairs a badge id with its rule and a display label.
type Definition struct {
	ID    string
	Label string
	Rule  Rule
}

// Registry returns the badge definitions in display order.
func Registry() []Definition {
	return []Definition{
		{Streak3, "3-Day Streak", streakAtLeast(3)},
		{Streak5, "5-Day Streak", streakAtLeast(5)},
		{Streak10, "10-Day Streak", streakAtLeast(10)},
		{ReactionQuick, "Quick Reflexes", reactionQuick},
		{ArithmeticAce, "Arithmetic Ace", arithmeticAce},
		{MemoryMarvel, "Memory Marvel", memoryMarvel},
	}
}

func streakAtLeast(days int) Rule {
	return func(_ *history.Session, st streak.State) bool {
		return st.Current >= days
	}
}

func reactionQuick(sess *history.Session, _ streak.State) bool {
	outcome := sess.Outcome(history.KindReaction)
	if outcome == nil {
		return false
	}
	median, ok := outcome.Meta.Float("medianMs")
	return ok && median < 250
}

func arithmeticAce(sess *history.Session, _ streak.State) bool {
	outcome := sess.Outcome(history.KindArithmetic)
	return outcome != nil && outcome.Score >= 500
}

func memoryMarvel(sess *history.Session, _ streak.State) bool {
	outcome := sess.Outcome(history.KindMemory)
	if outcome == nil {
		return false
	}
	if outcome.Score >= 400 {
		return true
	}
	longest, ok := outcome.Meta.Float("longest")
	return ok && longest >= 10
}

// Derive unions the existing badge set with everything the session and
// streak newly earn. It returns the merged set (registry order, then any
// unknown ids carried over from older data) and the ids unlocked by this
// call, for one-time notification.
func Derive(existing []string, sess *history.Session, st streak.State) (merged, unlocked []string) {
	have := make(map[string]bool, len(existing))
	for _, id := range existing {
		have[id] = true
	}

	for _, def := range Registry() {
		if def.Rule(sess, st) {
			if !have[def.ID] {
				unlocked = append(unlocked, def.ID)
			}
			have[def.ID] = true
		}
	}

	for _, def := range Registry() {
		if have[def.ID] {
			merged = append(merged, def.ID)
			delete(have, def.ID)
		}
	}
	// Preserve ids we no longer recognise rather than dropping them.
	for _, id := range existing {
		if have[id] {
			merged = append(merged, id)
			delete(have, id)
		}
	}
	if merged == nil {
		merged = []string{}
	}
	return merged, unlocked
}
