// Package session owns the in-progress session and the long-term state,
// advancing test by test and committing finished sessions to persistence.
package session

import (
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bramv/brainsparks/internal/badges"
	"github.com/bramv/brainsparks/internal/history"
	"github.com/bramv/brainsparks/internal/logger"
	"github.com/bramv/brainsparks/internal/scoring"
	"github.com/bramv/brainsparks/internal/streak"
)

// TestsPerSession is how many distinct kinds a daily session plays.
const TestsPerSession = 3

// ErrNoSession is returned when a test operation arrives with no session in
// progress. Callers treat it as an integration bug, not a user condition.
var ErrNoSession = errors.New("no session in progress")

// Rand is the random source used for test-kind sampling.
type Rand interface {
	IntN(n int) int
}

// EventRecorder receives a notification for every finalized session. Used
// to append to the analytics event log; failures there must never block
// play, so implementations report errors and the orchestrator logs them.
type EventRecorder interface {
	SessionFinalized(sess history.Session) error
}

// FinalizeResult describes what a completed session produced.
type FinalizeResult struct {
	Session  history.Session
	Streak   streak.State
	Unlocked []string // badge ids newly earned by this session
}

// Orchestrator is the single stateful owner of history and the active
// session. All transitions are applied under one lock so a concurrent
// completion and cancellation can never interleave, then written through to
// persistence. Construct one per process and inject it where needed.
type Orchestrator struct {
	mu      sync.Mutex
	persist *history.Service
	state   history.State
	active  *history.Active

	rnd    Rand
	now    func() time.Time
	events EventRecorder
	log    *logger.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithRand injects the random source used for test selection.
func WithRand(rnd Rand) Option {
	return func(o *Orchestrator) { o.rnd = rnd }
}

// WithClock injects the time source.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// WithEventRecorder attaches an analytics sink for finalized sessions.
func WithEventRecorder(events EventRecorder) Option {
	return func(o *Orchestrator) { o.events = events }
}

// WithLogger sets the logger for persistence warnings.
func WithLogger(log *logger.Logger) Option {
	return func(o *Orchestrator) { o.log = log }
}

// New loads the stored state and snapshot and returns a ready Orchestrator.
func New(persist *history.Service, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		persist: persist,
		rnd:     rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
		now:     time.Now,
		log:     logger.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.state = persist.Load()
	o.active = persist.LoadActive()
	return o
}

// State returns a copy of the long-term state.
func (o *Orchestrator) State() history.State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return copyState(o.state)
}

// Settings returns the current user settings.
func (o *Orchestrator) Settings() history.Settings {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state.Settings
}

// Active returns a copy of the in-progress session, or nil.
func (o *Orchestrator) Active() *history.Active {
	o.mu.Lock()
	defer o.mu.Unlock()
	return copyActive(o.active)
}

// StartOrResume returns today's session, resuming an existing one
// unchanged or building a fresh one with three distinct kinds picked at
// random. Calling it twice on the same day yields the same session id.
func (o *Orchestrator) StartOrResume() *history.Active {
	o.mu.Lock()
	defer o.mu.Unlock()

	today := o.now().UTC()
	day := streak.DayOf(today)
	if o.active != nil && o.active.Day() == day {
		return copyActive(o.active)
	}

	kinds := history.AllKinds()
	for i := len(kinds) - 1; i > 0; i-- {
		j := o.rnd.IntN(i + 1)
		kinds[i], kinds[j] = kinds[j], kinds[i]
	}

	tests := make([]history.ActiveTest, 0, TestsPerSession)
	for _, kind := range kinds[:TestsPerSession] {
		tests = append(tests, history.ActiveTest{
			Outcome: history.Outcome{Kind: kind},
			Status:  history.StatusPending,
		})
	}

	o.active = &history.Active{
		ID:    uuid.NewString(),
		Date:  dayStart(today),
		Tests: tests,
	}
	o.persistActive()
	return copyActive(o.active)
}

// CompleteCurrentTest records the outcome of the test being played, merges
// its metadata over anything already stored, and advances. When the last
// test completes the session is finalized and the result returned;
// otherwise the result is nil.
func (o *Orchestrator) CompleteCurrentTest(score int, meta history.Meta) (*FinalizeResult, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.advance(score, meta, true)
}

// SkipCurrentTest completes the current test with score zero and no
// metadata.
func (o *Orchestrator) SkipCurrentTest() (*FinalizeResult, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.advance(0, nil, false)
}

// CancelSession discards the in-progress session without finalizing.
func (o *Orchestrator) CancelSession() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.active = nil
	o.persistActive()
}

func (o *Orchestrator) advance(score int, meta history.Meta, mergeMeta bool) (*FinalizeResult, error) {
	if o.active == nil {
		return nil, ErrNoSession
	}
	current := o.active.Current()
	if current == nil {
		// A stored index == len(tests) means a finished session escaped
		// finalization; repair by finalizing now.
		return o.finalize(), nil
	}

	current.Status = history.StatusComplete
	current.Score = score
	if mergeMeta {
		current.Meta = current.Meta.Merge(meta)
	}
	o.active.CurrentIndex++

	if o.active.Finished() {
		return o.finalize(), nil
	}
	o.persistActive()
	return nil, nil
}

// finalize turns the completed active session into a history Session,
// updates streak and badges, commits everything and clears the snapshot.
// Zero completed tests leave history untouched. Caller holds the lock.
func (o *Orchestrator) finalize() *FinalizeResult {
	active := o.active
	o.active = nil

	var complete []history.Outcome
	scores := make(map[history.TestKind]int)
	total := 0
	for _, t := range active.Tests {
		if t.Status != history.StatusComplete {
			continue
		}
		complete = append(complete, t.Outcome)
		scores[t.Kind] = t.Score
		total += t.Score
	}

	if len(complete) == 0 {
		o.persistActive()
		return nil
	}

	sess := history.Session{
		ID:         active.ID,
		Date:       active.Date,
		Tests:      complete,
		TotalScore: total,
		BrainAge:   scoring.BrainAge(scores),
	}

	o.state.UpsertSession(sess)
	o.state.Streak = streak.Update(o.state.Streak, streak.DayOf(sess.Date))
	merged, unlocked := badges.Derive(o.state.Badges, &sess, o.state.Streak)
	o.state.Badges = merged

	o.persistState()
	o.persistActive()

	if o.events != nil {
		if err := o.events.SessionFinalized(sess); err != nil {
			o.log.Warn("record session event: %v", err)
		}
	}

	return &FinalizeResult{Session: sess, Streak: o.state.Streak, Unlocked: unlocked}
}

// SetSettings replaces the user settings and persists.
func (o *Orchestrator) SetSettings(s history.Settings) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.state.Settings = s
	o.persistState()
}

// SetLanguage changes only the language preference.
func (o *Orchestrator) SetLanguage(lang string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.state.Settings.Lang = lang
	o.persistState()
}

// Export serializes the current state for backup.
func (o *Orchestrator) Export() (data []byte, filename string, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.persist.Export(o.state)
}

// Import validates the supplied document and, only on success, swaps it in
// as the full new state. A failed import leaves everything untouched.
func (o *Orchestrator) Import(data []byte) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	state, err := o.persist.Import(data)
	if err != nil {
		return err
	}
	o.state = state
	o.persistState()
	return nil
}

// ResetAll restores the default state but keeps the language preference,
// and discards any in-progress session.
func (o *Orchestrator) ResetAll() {
	o.mu.Lock()
	defer o.mu.Unlock()

	lang := o.state.Settings.Lang
	o.state = history.DefaultState()
	o.state.Settings.Lang = lang
	o.active = nil
	o.persistState()
	o.persistActive()
}

// Durability writes are fire-and-forget: in-memory state is the source of
// truth and a failed write must not interrupt play.

func (o *Orchestrator) persistState() {
	if err := o.persist.Save(o.state); err != nil {
		o.log.Warn("persist state: %v", err)
	}
}

func (o *Orchestrator) persistActive() {
	if err := o.persist.SaveActive(o.active); err != nil {
		o.log.Warn("persist active session: %v", err)
	}
}

func dayStart(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func copyState(s history.State) history.State {
	out := s
	out.Sessions = append([]history.Session(nil), s.Sessions...)
	out.Badges = append([]string(nil), s.Badges...)
	return out
}

func copyActive(a *history.Active) *history.Active {
	if a == nil {
		return nil
	}
	out := *a
	out.Tests = append([]history.ActiveTest(nil), a.Tests...)
	return &out
}
