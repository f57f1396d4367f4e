package store

import (
	"context"
	"fmt"

	"github.com/bramv/brainsparks/ent"
	entschema "github.com/bramv/brainsparks/ent/schema"
	"github.com/bramv/brainsparks/ent/sessionevent"

	"github.com/bramv/brainsparks/internal/history"
	"github.com/bramv/brainsparks/internal/streak"
)

// eventRepo implements EventRepo using the ent client.
type eventRepo struct {
	client *ent.Client
	seq    *sequenceCounter
}

func (r *eventRepo) AppendSessionFinalized(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	var tests []entschema.TestSummary
	for _, t := range data.Tests {
		tests = append(tests, entschema.TestSummary{
			Kind:  t.Kind,
			Score: t.Score,
		})
	}

	builder := r.client.SessionEvent.Create().
		SetSequence(seqNum).
		SetSessionID(data.SessionID).
		SetDay(data.Day).
		SetTotalScore(data.TotalScore).
		SetBrainAge(data.BrainAge)

	if len(tests) > 0 {
		builder = builder.SetTests(tests)
	}

	_, err = builder.Save(ctx)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) Recent(ctx context.Context, limit int) ([]SessionEventData, error) {
	q := r.client.SessionEvent.Query().
		Order(ent.Desc(sessionevent.FieldSequence))
	if limit > 0 {
		q = q.Limit(limit)
	}
	events, err := q.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query recent events: %w", err)
	}

	out := make([]SessionEventData, 0, len(events))
	for _, e := range events {
		data := SessionEventData{
			SessionID:  e.SessionID,
			Day:        e.Day,
			TotalScore: e.TotalScore,
			BrainAge:   e.BrainAge,
			Timestamp:  e.Timestamp,
		}
		for _, t := range e.Tests {
			data.Tests = append(data.Tests, TestScore{Kind: t.Kind, Score: t.Score})
		}
		out = append(out, data)
	}
	return out, nil
}

func (r *eventRepo) Totals(ctx context.Context) (Totals, error) {
	events, err := r.client.SessionEvent.Query().All(ctx)
	if err != nil {
		return Totals{}, fmt.Errorf("query events for totals: %w", err)
	}

	var totals Totals
	totals.Sessions = len(events)
	for _, e := range events {
		totals.ScoreSum += e.TotalScore
		if e.TotalScore > totals.BestScore {
			totals.BestScore = e.TotalScore
		}
		if totals.BestBrainAge == 0 || e.BrainAge < totals.BestBrainAge {
			totals.BestBrainAge = e.BrainAge
		}
	}
	return totals, nil
}

// SessionRecorder bridges the orchestrator to the event log.
type SessionRecorder struct {
	events EventRepo
}

// SessionFinalized appends the finalized session to the log.
func (r *SessionRecorder) SessionFinalized(sess history.Session) error {
	data := SessionEventData{
		SessionID:  sess.ID,
		Day:        streak.DayOf(sess.Date),
		TotalScore: sess.TotalScore,
		BrainAge:   sess.BrainAge,
	}
	for _, t := range sess.Tests {
		data.Tests = append(data.Tests, TestScore{Kind: string(t.Kind), Score: t.Score})
	}
	return r.events.AppendSessionFinalized(context.Background(), data)
}
