package session

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bramv/brainsparks/internal/history"
	"github.com/bramv/brainsparks/internal/logger"
	"github.com/bramv/brainsparks/internal/scoring"
)

// memKV is an in-memory key-value store for orchestrator tests.
type memKV struct {
	data map[string]string
}

func newMemKV() *memKV { return &memKV{data: make(map[string]string)} }

func (m *memKV) Get(key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}
func (m *memKV) Set(key, value string) error { m.data[key] = value; return nil }
func (m *memKV) Remove(key string) error     { delete(m.data, key); return nil }

// seqRand returns scripted values, cycling when exhausted.
type seqRand struct {
	values []int
	pos    int
}

func (r *seqRand) IntN(n int) int {
	if len(r.values) == 0 {
		return 0
	}
	v := r.values[r.pos%len(r.values)] % n
	r.pos++
	return v
}

type recordedEvents struct {
	sessions []history.Session
	fail     bool
}

func (r *recordedEvents) SessionFinalized(sess history.Session) error {
	if r.fail {
		return errors.New("event store down")
	}
	r.sessions = append(r.sessions, sess)
	return nil
}

func fixedClock(day string) func() time.Time {
	t, err := time.Parse("2006-01-02", day)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t.Add(14 * time.Hour) } // mid-afternoon
}

func newTestOrchestrator(kv *memKV, day string, opts ...Option) *Orchestrator {
	svc := history.NewService(kv, logger.New(logger.WithOutput(io.Discard)))
	base := []Option{
		WithClock(fixedClock(day)),
		WithRand(&seqRand{}),
		WithLogger(logger.New(logger.WithOutput(io.Discard))),
	}
	return New(svc, append(base, opts...)...)
}

func TestStartOrResumeBuildsThreeDistinctKinds(t *testing.T) {
	o := newTestOrchestrator(newMemKV(), "2025-03-01")

	active := o.StartOrResume()
	require.NotNil(t, active)
	require.Len(t, active.Tests, TestsPerSession)

	seen := make(map[history.TestKind]bool)
	for _, test := range active.Tests {
		assert.True(t, test.Kind.Valid())
		assert.False(t, seen[test.Kind], "kind %s repeated", test.Kind)
		assert.Equal(t, history.StatusPending, test.Status)
		assert.Zero(t, test.Score)
		seen[test.Kind] = true
	}
	assert.Zero(t, active.CurrentIndex)
	assert.Equal(t, "2025-03-01", active.Day())
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), active.Date, "date anchored to day start")
}

func TestStartOrResumeIsIdempotentWithinADay(t *testing.T) {
	o := newTestOrchestrator(newMemKV(), "2025-03-01")

	first := o.StartOrResume()
	second := o.StartOrResume()
	assert.Equal(t, first.ID, second.ID, "same-day start must resume, not recreate")
}

func TestStartOrResumeSurvivesRestart(t *testing.T) {
	kv := newMemKV()
	first := newTestOrchestrator(kv, "2025-03-01").StartOrResume()

	restarted := newTestOrchestrator(kv, "2025-03-01")
	resumed := restarted.StartOrResume()
	assert.Equal(t, first.ID, resumed.ID, "snapshot must survive a process restart")
}

func TestStartOrResumeReplacesStaleSession(t *testing.T) {
	kv := newMemKV()
	stale := newTestOrchestrator(kv, "2025-03-01").StartOrResume()

	o := newTestOrchestrator(kv, "2025-03-02")
	fresh := o.StartOrResume()
	assert.NotEqual(t, stale.ID, fresh.ID, "yesterday's session must not resume today")
}

func TestCompleteFlowFinalizes(t *testing.T) {
	kv := newMemKV()
	events := &recordedEvents{}
	o := newTestOrchestrator(kv, "2025-03-01", WithEventRecorder(events))
	o.StartOrResume()

	res, err := o.CompleteCurrentTest(480, history.Meta{"correct": 40})
	require.NoError(t, err)
	assert.Nil(t, res, "two tests still pending")

	res, err = o.CompleteCurrentTest(300, nil)
	require.NoError(t, err)
	assert.Nil(t, res)

	res, err = o.CompleteCurrentTest(220, history.Meta{"timeLeft": 3})
	require.NoError(t, err)
	require.NotNil(t, res, "third completion must finalize")

	assert.Equal(t, 1000, res.Session.TotalScore)
	assert.Len(t, res.Session.Tests, 3)
	assert.GreaterOrEqual(t, res.Session.BrainAge, scoring.MinBrainAge)
	assert.LessOrEqual(t, res.Session.BrainAge, scoring.MaxBrainAge)
	assert.Equal(t, 1, res.Streak.Current)

	assert.Nil(t, o.Active(), "active session cleared after finalization")
	state := o.State()
	require.Len(t, state.Sessions, 1)
	assert.Equal(t, res.Session.ID, state.Sessions[0].ID)

	_, stored := kv.data[history.KeyActiveSession]
	assert.False(t, stored, "snapshot removed from store")

	require.Len(t, events.sessions, 1)
	assert.Equal(t, res.Session.ID, events.sessions[0].ID)
}

func TestCompleteMergesMetadataOverExisting(t *testing.T) {
	o := newTestOrchestrator(newMemKV(), "2025-03-01")
	active := o.StartOrResume()
	kind := active.Tests[0].Kind

	_, err := o.CompleteCurrentTest(100, history.Meta{"correct": 5, "timeLeft": 9})
	require.NoError(t, err)

	got := o.Active()
	require.NotNil(t, got)
	assert.Equal(t, history.StatusComplete, got.Tests[0].Status)
	assert.Equal(t, kind, got.Tests[0].Kind)
	assert.Equal(t, history.Meta{"correct": 5, "timeLeft": 9}, got.Tests[0].Meta)
	assert.Equal(t, 1, got.CurrentIndex)
}

func TestSkipCompletesWithZero(t *testing.T) {
	o := newTestOrchestrator(newMemKV(), "2025-03-01")
	o.StartOrResume()

	_, err := o.SkipCurrentTest()
	require.NoError(t, err)

	got := o.Active()
	assert.Equal(t, history.StatusComplete, got.Tests[0].Status)
	assert.Zero(t, got.Tests[0].Score)
	assert.Nil(t, got.Tests[0].Meta)
}

func TestAllSkippedStillFinalizes(t *testing.T) {
	o := newTestOrchestrator(newMemKV(), "2025-03-01")
	o.StartOrResume()

	var res *FinalizeResult
	var err error
	for i := 0; i < TestsPerSession; i++ {
		res, err = o.SkipCurrentTest()
		require.NoError(t, err)
	}
	require.NotNil(t, res, "skips count as complete-with-zero")
	assert.Zero(t, res.Session.TotalScore)
	assert.Len(t, res.Session.Tests, TestsPerSession)
}

func TestCancelDiscardsWithoutHistory(t *testing.T) {
	o := newTestOrchestrator(newMemKV(), "2025-03-01")
	o.StartOrResume()
	_, err := o.CompleteCurrentTest(500, nil)
	require.NoError(t, err)

	o.CancelSession()

	assert.Nil(t, o.Active())
	assert.Empty(t, o.State().Sessions, "cancelled session leaves no history entry")
}

func TestCompleteWithoutSessionFails(t *testing.T) {
	o := newTestOrchestrator(newMemKV(), "2025-03-01")

	_, err := o.CompleteCurrentTest(100, nil)
	assert.ErrorIs(t, err, ErrNoSession)
	_, err = o.SkipCurrentTest()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestRefinalizationSameIdReplacesSession(t *testing.T) {
	kv := newMemKV()
	svc := history.NewService(kv, logger.New(logger.WithOutput(io.Discard)))

	snapshot := &history.Active{
		ID:   "repeat-1",
		Date: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Tests: []history.ActiveTest{
			{Outcome: history.Outcome{Kind: history.KindArithmetic, Score: 400}, Status: history.StatusComplete},
			{Outcome: history.Outcome{Kind: history.KindMemory}, Status: history.StatusPending},
		},
		CurrentIndex: 1,
	}

	require.NoError(t, svc.SaveActive(snapshot))
	o := newTestOrchestrator(kv, "2025-03-01")
	res, err := o.CompleteCurrentTest(100, nil)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 500, res.Session.TotalScore)

	// Same snapshot replayed: same id, different final score.
	require.NoError(t, svc.SaveActive(snapshot))
	o2 := newTestOrchestrator(kv, "2025-03-01")
	res2, err := o2.CompleteCurrentTest(250, nil)
	require.NoError(t, err)
	require.NotNil(t, res2)

	state := o2.State()
	require.Len(t, state.Sessions, 1, "re-finalization must replace, not duplicate")
	assert.Equal(t, "repeat-1", state.Sessions[0].ID)
	assert.Equal(t, 650, state.Sessions[0].TotalScore, "later write wins")
	assert.Equal(t, 1, state.Streak.Current, "same-day re-finalization must not double-count")
}

func TestZeroCompleteFinalizationIsNoOp(t *testing.T) {
	kv := newMemKV()
	svc := history.NewService(kv, logger.New(logger.WithOutput(io.Discard)))

	// A finished-index snapshot with nothing complete: the repair path
	// finalizes it, which must leave no history entry.
	require.NoError(t, svc.SaveActive(&history.Active{
		ID:   "empty-1",
		Date: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Tests: []history.ActiveTest{
			{Outcome: history.Outcome{Kind: history.KindReaction}, Status: history.StatusPending},
		},
		CurrentIndex: 1,
	}))

	o := newTestOrchestrator(kv, "2025-03-01")
	res, err := o.CompleteCurrentTest(100, nil)
	require.NoError(t, err)
	assert.Nil(t, res)
	assert.Empty(t, o.State().Sessions)
	assert.Nil(t, o.Active())
}

func TestEventRecorderFailureDoesNotBlockFinalization(t *testing.T) {
	o := newTestOrchestrator(newMemKV(), "2025-03-01", WithEventRecorder(&recordedEvents{fail: true}))
	o.StartOrResume()

	var res *FinalizeResult
	for i := 0; i < TestsPerSession; i++ {
		var err error
		res, err = o.CompleteCurrentTest(100, nil)
		require.NoError(t, err)
	}
	require.NotNil(t, res)
	assert.Len(t, o.State().Sessions, 1)
}

func TestStreakAcrossDays(t *testing.T) {
	kv := newMemKV()
	days := []string{"2025-03-01", "2025-03-02", "2025-03-04"}
	wantCurrent := []int{1, 2, 1}
	wantBest := []int{1, 2, 2}

	for i, day := range days {
		o := newTestOrchestrator(kv, day)
		o.StartOrResume()
		for j := 0; j < TestsPerSession; j++ {
			_, err := o.CompleteCurrentTest(300, nil)
			require.NoError(t, err)
		}
		state := o.State()
		assert.Equal(t, wantCurrent[i], state.Streak.Current, "day %s current", day)
		assert.Equal(t, wantBest[i], state.Streak.Best, "day %s best", day)
	}
}

func TestImportSwapsAtomically(t *testing.T) {
	kv := newMemKV()
	o := newTestOrchestrator(kv, "2025-03-01")
	o.StartOrResume()
	for i := 0; i < TestsPerSession; i++ {
		_, err := o.CompleteCurrentTest(200, nil)
		require.NoError(t, err)
	}
	before := o.State()

	err := o.Import([]byte(`{"version":1,"streak":`))
	require.Error(t, err, "malformed import must fail")
	assert.Equal(t, before, o.State(), "failed import leaves state untouched")

	data, _, err := o.Export()
	require.NoError(t, err)

	o.ResetAll()
	assert.Empty(t, o.State().Sessions)

	require.NoError(t, o.Import(data))
	assert.Equal(t, before, o.State(), "export/import round-trips through the orchestrator")
}

func TestResetAllKeepsLanguage(t *testing.T) {
	o := newTestOrchestrator(newMemKV(), "2025-03-01")
	o.SetLanguage("nl")
	settings := o.Settings()
	settings.Difficulty = "hard"
	o.SetSettings(settings)

	o.ResetAll()

	got := o.Settings()
	assert.Equal(t, "nl", got.Lang, "language survives a reset")
	assert.Equal(t, history.DefaultSettings().Difficulty, got.Difficulty)
}

func TestSetSettingsPersists(t *testing.T) {
	kv := newMemKV()
	o := newTestOrchestrator(kv, "2025-03-01")
	settings := o.Settings()
	settings.Sound = false
	settings.Difficulty = "easy"
	o.SetSettings(settings)

	reloaded := newTestOrchestrator(kv, "2025-03-01")
	got := reloaded.Settings()
	assert.False(t, got.Sound)
	assert.Equal(t, settings.Difficulty, got.Difficulty)
}
