package history

import (
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bramv/brainsparks/internal/difficulty"
	"github.com/bramv/brainsparks/internal/logger"
	"github.com/bramv/brainsparks/internal/streak"
)

// memKV is an in-memory KV for tests. failing makes every call error.
type memKV struct {
	data    map[string]string
	failing bool
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string]string)}
}

func (m *memKV) Get(key string) (string, bool, error) {
	if m.failing {
		return "", false, errors.New("kv unavailable")
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Set(key, value string) error {
	if m.failing {
		return errors.New("kv unavailable")
	}
	m.data[key] = value
	return nil
}

func (m *memKV) Remove(key string) error {
	if m.failing {
		return errors.New("kv unavailable")
	}
	delete(m.data, key)
	return nil
}

func quietLogger() *logger.Logger {
	return logger.New(logger.WithOutput(io.Discard))
}

func newTestService() (*Service, *memKV) {
	kv := newMemKV()
	return NewService(kv, quietLogger()), kv
}

func sampleState() State {
	state := DefaultState()
	state.Sessions = []Session{{
		ID:   "sess-1",
		Date: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Tests: []Outcome{
			{Kind: KindArithmetic, Score: 480, Meta: Meta{"correct": 40.0, "mistakes": 2.0, "timeLeft": 5.0}},
			{Kind: KindReaction, Score: 310, Meta: Meta{"medianMs": 190.0}},
		},
		TotalScore: 790,
		BrainAge:   34,
	}}
	state.Streak = streak.State{Current: 2, Best: 4, LastDay: "2025-03-01"}
	state.Badges = []string{"reaction-quick"}
	state.Settings.Difficulty = difficulty.TierHard
	return state
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	svc, kv := newTestService()
	state := sampleState()

	require.NoError(t, svc.Save(state))
	assert.Equal(t, "en", kv.data[KeyLanguage], "language mirrored to its own key")

	loaded := svc.Load()
	assert.Equal(t, state, loaded)
}

func TestLoadMissingStoreReturnsDefaults(t *testing.T) {
	svc, _ := newTestService()
	state := svc.Load()

	assert.NotNil(t, state.Sessions, "sessions must be an empty list, not absent")
	assert.Empty(t, state.Sessions)
	assert.GreaterOrEqual(t, state.Streak.Best, state.Streak.Current)
	assert.Equal(t, SchemaVersion, state.Version)
	assert.Equal(t, difficulty.TierNormal, state.Settings.Difficulty)
}

func TestLoadCorruptBlobFallsBackToDefaults(t *testing.T) {
	svc, kv := newTestService()
	kv.data[KeyState] = `{"sessions": "oops`

	state := svc.Load()
	assert.Empty(t, state.Sessions)
	assert.Equal(t, SchemaVersion, state.Version)
}

func TestLoadUnrecognisedVersionFallsBack(t *testing.T) {
	svc, kv := newTestService()
	future := sampleState()
	data, err := json.Marshal(future)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	doc["version"] = 99
	mutated, err := json.Marshal(doc)
	require.NoError(t, err)
	kv.data[KeyState] = string(mutated)

	state := svc.Load()
	assert.Empty(t, state.Sessions, "future schema must fail closed to defaults")
}

func TestLoadLanguageSurvivesCorruptMainBlob(t *testing.T) {
	svc, kv := newTestService()
	kv.data[KeyState] = "garbage"
	kv.data[KeyLanguage] = "nl"

	state := svc.Load()
	assert.Equal(t, "nl", state.Settings.Lang)
}

func TestLoadFailingStoreNeverPanics(t *testing.T) {
	kv := newMemKV()
	kv.failing = true
	svc := NewService(kv, quietLogger())

	state := svc.Load()
	assert.Equal(t, SchemaVersion, state.Version)
	assert.Nil(t, svc.LoadActive())
}

func TestNilKVDegradesToNoOps(t *testing.T) {
	svc := NewService(nil, quietLogger())

	state := svc.Load()
	assert.Equal(t, SchemaVersion, state.Version)
	assert.NoError(t, svc.Save(state))
	assert.NoError(t, svc.SaveActive(nil))
	assert.NoError(t, svc.Clear())
	assert.Nil(t, svc.LoadActive())
}

func TestActiveSessionRoundTrip(t *testing.T) {
	svc, _ := newTestService()
	active := &Active{
		ID:   "act-1",
		Date: time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
		Tests: []ActiveTest{
			{Outcome: Outcome{Kind: KindMemory, Score: 120, Meta: Meta{"longest": 6.0}}, Status: StatusComplete},
			{Outcome: Outcome{Kind: KindOddOneOut}, Status: StatusPending},
		},
		CurrentIndex: 1,
	}

	require.NoError(t, svc.SaveActive(active))
	loaded := svc.LoadActive()
	require.NotNil(t, loaded)
	assert.Equal(t, active, loaded)
}

func TestSaveActiveNilDeletesSnapshot(t *testing.T) {
	svc, kv := newTestService()
	require.NoError(t, svc.SaveActive(&Active{ID: "a", Date: time.Now().UTC(), Tests: nil}))
	require.NoError(t, svc.SaveActive(nil))
	_, ok := kv.data[KeyActiveSession]
	assert.False(t, ok)
}

func TestLoadActiveDiscardsCorruptSnapshot(t *testing.T) {
	svc, kv := newTestService()
	kv.data[KeyActiveSession] = `{"id":"a","date":"2025-03-02T00:00:00Z","tests":[],"currentIndex":5}`

	assert.Nil(t, svc.LoadActive(), "out-of-range index must be discarded")
	_, ok := kv.data[KeyActiveSession]
	assert.False(t, ok, "corrupt snapshot removed from store")
}

func TestExportImportRoundTrips(t *testing.T) {
	svc, _ := newTestService()
	state := sampleState()

	data, filename, err := svc.Export(state)
	require.NoError(t, err)
	assert.Regexp(t, `^brain-sparks-\d{4}-\d{2}-\d{2}\.json$`, filename)
	assert.Contains(t, string(data), "\n  ", "export is pretty-printed")

	imported, err := svc.Import(data)
	require.NoError(t, err)
	assert.Equal(t, state, imported)
}

func TestImportRejectsForeignShape(t *testing.T) {
	svc, _ := newTestService()

	cases := map[string]string{
		"not json":        `{"streak":`,
		"missing streak":  `{"version":1}`,
		"wrong version":   `{"version":2,"streak":{"current":0,"best":0}}`,
		"bad kind":        `{"version":1,"streak":{"current":0,"best":0},"sessions":[{"id":"x","date":"2025-03-01T00:00:00Z","totalScore":1,"brainAge":30,"tests":[{"kind":"sudoku","score":1}]}]}`,
		"bad difficulty":  `{"version":1,"streak":{"current":0,"best":0},"settings":{"difficulty":"impossible"}}`,
		"negative streak": `{"version":1,"streak":{"current":-1,"best":0}}`,
	}

	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Import([]byte(payload))
			require.Error(t, err)
			var verr *ValidationError
			assert.ErrorAs(t, err, &verr, "import failures must be structured")
		})
	}
}

func TestImportDefaultsOptionalFields(t *testing.T) {
	svc, _ := newTestService()
	minimal := `{"version":1,"streak":{"current":1,"best":2,"lastDay":"2025-03-01"}}`

	state, err := svc.Import([]byte(minimal))
	require.NoError(t, err)
	assert.NotNil(t, state.Sessions)
	assert.NotNil(t, state.Badges)
	assert.Equal(t, DefaultSettings(), state.Settings)
	assert.Equal(t, 1, state.Streak.Current)
}

func TestParseStateRepairsBestBelowCurrent(t *testing.T) {
	payload := `{"version":1,"streak":{"current":5,"best":2}}`
	state, err := ParseState([]byte(payload))
	require.NoError(t, err)
	assert.Equal(t, 5, state.Streak.Best)
}

func TestUpsertSessionReplacesById(t *testing.T) {
	state := DefaultState()
	first := Session{ID: "s", TotalScore: 100}
	second := Session{ID: "s", TotalScore: 250}

	state.UpsertSession(first)
	state.UpsertSession(second)

	require.Len(t, state.Sessions, 1)
	assert.Equal(t, 250, state.Sessions[0].TotalScore, "later write wins")
}

func TestMetaMerge(t *testing.T) {
	base := Meta{"correct": 3, "timeLeft": 10}
	merged := base.Merge(Meta{"timeLeft": 4, "mistakes": 1})

	assert.Equal(t, Meta{"correct": 3, "timeLeft": 4, "mistakes": 1}, merged)
	assert.Equal(t, Meta{"correct": 3, "timeLeft": 10}, base, "merge must not mutate the receiver")
}
