// Package streak tracks consecutive days of play.
package streak

import "time"

// DayFormat is the canonical calendar-day encoding used in persisted state.
const DayFormat = "2006-01-02"

// State is the daily-play streak. The zero value means "never played".
type State struct {
	Current int    `json:"current"`
	Best    int    `json:"best"`
	LastDay string `json:"lastDay,omitempty"` // DayFormat, empty when unset
}

// DayOf truncates t to its calendar day in UTC.
func DayOf(t time.Time) string {
	return t.UTC().Format(DayFormat)
}

// Update applies a newly finalized day to the streak and returns the result.
// Same-day updates are no-ops, a one-day gap extends the streak, anything
// longer resets it to 1. Best never decreases.
func Update(s State, day string) State {
	if s.LastDay == "" {
		return State{Current: 1, Best: max(1, s.Best), LastDay: day}
	}

	gap := dayGap(s.LastDay, day)
	switch {
	case gap == 0:
		return s
	case gap == 1:
		current := s.Current + 1
		return State{Current: current, Best: max(s.Best, current), LastDay: day}
	default:
		return State{Current: 1, Best: max(s.Best, 1), LastDay: day}
	}
}

// dayGap returns the whole calendar days from a to b. Unparseable input is
// treated as a long gap so a corrupt stored day resets rather than crashes.
func dayGap(a, b string) int {
	ta, errA := time.Parse(DayFormat, a)
	tb, errB := time.Parse(DayFormat, b)
	if errA != nil || errB != nil {
		return 1 << 20
	}
	return int(tb.Sub(ta) / (24 * time.Hour))
}
