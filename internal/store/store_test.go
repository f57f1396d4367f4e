package store

import (
	"context"
	"testing"
	"time"

	"github.com/bramv/brainsparks/internal/history"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Client() == nil {
		t.Fatal("expected non-nil ent client")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here. It is tested with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestRecordKVRoundTrip(t *testing.T) {
	s := openTestStore(t)
	kv := s.KV()

	_, ok, err := kv.Get("brainSparks:v1")
	if err != nil {
		t.Fatalf("get (empty): %v", err)
	}
	if ok {
		t.Fatal("expected missing key before set")
	}

	if err := kv.Set("brainSparks:v1", `{"version":1}`); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, ok, err := kv.Get("brainSparks:v1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatal("expected key after set")
	}
	if got != `{"version":1}` {
		t.Errorf("value = %q, want %q", got, `{"version":1}`)
	}
}

func TestRecordKVSetReplaces(t *testing.T) {
	s := openTestStore(t)
	kv := s.KV()

	if err := kv.Set("k", "first"); err != nil {
		t.Fatalf("set first: %v", err)
	}
	if err := kv.Set("k", "second"); err != nil {
		t.Fatalf("set second: %v", err)
	}

	got, _, err := kv.Get("k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "second" {
		t.Errorf("value = %q, want %q", got, "second")
	}

	count, err := s.Client().Record.Query().Count(context.Background())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("record rows = %d, want 1", count)
	}
}

func TestRecordKVRemove(t *testing.T) {
	s := openTestStore(t)
	kv := s.KV()

	if err := kv.Set("k", "v"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Remove("k"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	_, ok, err := kv.Get("k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatal("expected key gone after remove")
	}

	// Removing a missing key is not an error.
	if err := kv.Remove("absent"); err != nil {
		t.Errorf("remove absent: %v", err)
	}
}

func TestSessionEventAppendAndRecent(t *testing.T) {
	s := openTestStore(t)
	repo := s.Events()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := repo.AppendSessionFinalized(ctx, SessionEventData{
			SessionID:  "s-" + string(rune('a'+i)),
			Day:        "2025-03-0" + string(rune('1'+i)),
			TotalScore: 100 * (i + 1),
			BrainAge:   40 - i,
			Tests: []TestScore{
				{Kind: "arithmetic", Score: 100 * (i + 1)},
			},
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	events, err := repo.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("recent returned %d events, want 2", len(events))
	}
	if events[0].SessionID != "s-c" {
		t.Errorf("newest event = %q, want s-c", events[0].SessionID)
	}
	if events[0].TotalScore != 300 {
		t.Errorf("newest total = %d, want 300", events[0].TotalScore)
	}
	if len(events[0].Tests) != 1 || events[0].Tests[0].Kind != "arithmetic" {
		t.Errorf("tests not preserved: %+v", events[0].Tests)
	}
}

func TestSessionEventTotals(t *testing.T) {
	s := openTestStore(t)
	repo := s.Events()
	ctx := context.Background()

	totals, err := repo.Totals(ctx)
	if err != nil {
		t.Fatalf("totals (empty): %v", err)
	}
	if totals.Sessions != 0 || totals.BestBrainAge != 0 {
		t.Errorf("empty totals = %+v", totals)
	}

	appends := []SessionEventData{
		{SessionID: "a", Day: "2025-03-01", TotalScore: 400, BrainAge: 45},
		{SessionID: "b", Day: "2025-03-02", TotalScore: 900, BrainAge: 32},
		{SessionID: "c", Day: "2025-03-03", TotalScore: 600, BrainAge: 38},
	}
	for _, data := range appends {
		if err := repo.AppendSessionFinalized(ctx, data); err != nil {
			t.Fatalf("append %s: %v", data.SessionID, err)
		}
	}

	totals, err = repo.Totals(ctx)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if totals.Sessions != 3 {
		t.Errorf("sessions = %d, want 3", totals.Sessions)
	}
	if totals.BestScore != 900 {
		t.Errorf("best score = %d, want 900", totals.BestScore)
	}
	if totals.BestBrainAge != 32 {
		t.Errorf("best brain age = %d, want 32", totals.BestBrainAge)
	}
	if totals.ScoreSum != 1900 {
		t.Errorf("score sum = %d, want 1900", totals.ScoreSum)
	}
}

func TestRecorderAppendsFinalizedSession(t *testing.T) {
	s := openTestStore(t)
	rec := s.Recorder()

	sess := history.Session{
		ID:         "sess-1",
		Date:       time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		TotalScore: 750,
		BrainAge:   36,
		Tests: []history.Outcome{
			{Kind: history.KindMemory, Score: 350},
			{Kind: history.KindReaction, Score: 400},
		},
	}
	if err := rec.SessionFinalized(sess); err != nil {
		t.Fatalf("record: %v", err)
	}

	events, err := s.Events().Recent(context.Background(), 0)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	got := events[0]
	if got.SessionID != "sess-1" || got.Day != "2025-03-01" {
		t.Errorf("event = %+v", got)
	}
	if len(got.Tests) != 2 || got.Tests[0].Kind != "memory" {
		t.Errorf("tests = %+v", got.Tests)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"records", "session_events"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("query sqlite_master for %s: %v", table, err)
		}
		if name != table {
			t.Errorf("table name = %q, want %q", name, table)
		}
	}
}
