package store

import (
	"context"
	"time"
)

// TestScore is a per-test result attached to a session event.
type TestScore struct {
	Kind  string
	Score int
}

// SessionEventData captures one finalized training session for the
// append-only event log.
type SessionEventData struct {
	SessionID  string
	Day        string // YYYY-MM-DD
	TotalScore int
	BrainAge   int
	Tests      []TestScore
	Timestamp  time.Time // zero on append; populated on read
}

// Totals aggregates the event log for the stats view.
type Totals struct {
	Sessions     int
	BestScore    int
	BestBrainAge int // lowest estimate seen, 0 when no sessions
	ScoreSum     int
}

// EventRepo provides append and query access to the session event log.
type EventRepo interface {
	// AppendSessionFinalized records a finalized session.
	AppendSessionFinalized(ctx context.Context, data SessionEventData) error

	// Recent returns the most recent events, newest first.
	Recent(ctx context.Context, limit int) ([]SessionEventData, error)

	// Totals aggregates over the whole log.
	Totals(ctx context.Context) (Totals, error)
}
