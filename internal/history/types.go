// Package history owns the long-term player state: finished sessions,
// streak, settings and badges, together with its validated persistence.
package history

import (
	"time"

	"github.com/bramv/brainsparks/internal/difficulty"
	"github.com/bramv/brainsparks/internal/streak"
)

// SchemaVersion is the only recognised version of the persisted state.
// Anything else fails closed to defaults on load and is rejected on import.
const SchemaVersion = 1

// TestKind identifies one of the four mini-games.
type TestKind string

const (
	KindArithmetic TestKind = "arithmetic"
	KindMemory     TestKind = "memory"
	KindReaction   TestKind = "reaction"
	KindOddOneOut  TestKind = "oddOneOut"
)

// AllKinds returns every test kind in presentation order.
func AllKinds() []TestKind {
	return []TestKind{KindArithmetic, KindMemory, KindReaction, KindOddOneOut}
}

// Valid reports whether k is one of the known kinds.
func (k TestKind) Valid() bool {
	switch k {
	case KindArithmetic, KindMemory, KindReaction, KindOddOneOut:
		return true
	}
	return false
}

// DisplayName returns a human-readable label for the kind.
func (k TestKind) DisplayName() string {
	switch k {
	case KindArithmetic:
		return "Arithmetic"
	case KindMemory:
		return "Digit Span"
	case KindReaction:
		return "Reaction"
	case KindOddOneOut:
		return "Odd One Out"
	default:
		return string(k)
	}
}

// Meta is the kind-specific metadata attached to an outcome. Keys vary per
// kind (correct/mistakes/timeLeft, medianMs, longest/accuracy) and older
// persisted data may carry keys we no longer write, so consumers must
// tolerate missing entries.
type Meta map[string]any

// Float reads a numeric metadata value. JSON decoding yields float64 for all
// numbers, but values set in-process may still be ints.
func (m Meta) Float(key string) (float64, bool) {
	v, ok := m[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// Merge returns m with the entries of other applied on top. Keys present in
// both take other's value; m itself is not modified.
func (m Meta) Merge(other Meta) Meta {
	if len(other) == 0 {
		return m
	}
	merged := make(Meta, len(m)+len(other))
	for k, v := range m {
		merged[k] = v
	}
	for k, v := range other {
		merged[k] = v
	}
	return merged
}

// Outcome is the final result of one mini-game.
type Outcome struct {
	Kind  TestKind `json:"kind"`
	Score int      `json:"score"`
	Meta  Meta     `json:"meta,omitempty"`
}

// Session is one day's finalized record. Immutable once built; a later
// finalization with the same ID replaces it wholesale.
type Session struct {
	ID         string    `json:"id"`
	Date       time.Time `json:"date"`
	Tests      []Outcome `json:"tests"`
	TotalScore int       `json:"totalScore"`
	BrainAge   int       `json:"brainAge"`
}

// Outcome returns the session's outcome for the given kind, or nil.
func (s *Session) Outcome(kind TestKind) *Outcome {
	for i := range s.Tests {
		if s.Tests[i].Kind == kind {
			return &s.Tests[i]
		}
	}
	return nil
}

// FontScale is the UI font sizing preference.
type FontScale string

const (
	FontSmall  FontScale = "small"
	FontMedium FontScale = "medium"
	FontLarge  FontScale = "large"
)

// ThemeMode selects light/dark rendering.
type ThemeMode string

const (
	ThemeSystem ThemeMode = "system"
	ThemeLight  ThemeMode = "light"
	ThemeDark   ThemeMode = "dark"
)

// Settings are the user preferences. Persisted with the main state; the
// language additionally lives under its own key so it survives a corrupted
// main blob.
type Settings struct {
	Lang       string          `json:"lang"`
	Dark       bool            `json:"dark"`
	Sound      bool            `json:"sound"`
	Vibration  bool            `json:"vibration"`
	Difficulty difficulty.Tier `json:"difficulty"`
	FontScale  FontScale       `json:"fontScale"`
	Theme      ThemeMode       `json:"theme"`
}

// State is the top-level persisted document.
type State struct {
	Sessions []Session    `json:"sessions"`
	Streak   streak.State `json:"streak"`
	Settings Settings     `json:"settings"`
	Badges   []string     `json:"badges"`
	Version  int          `json:"version"`
}

// HasBadge reports whether the badge id has been unlocked.
func (s *State) HasBadge(id string) bool {
	for _, b := range s.Badges {
		if b == id {
			return true
		}
	}
	return false
}

// SessionByID returns the stored session with the given id, or nil.
func (s *State) SessionByID(id string) *Session {
	for i := range s.Sessions {
		if s.Sessions[i].ID == id {
			return &s.Sessions[i]
		}
	}
	return nil
}

// UpsertSession replaces the session sharing sess.ID, or appends it.
func (s *State) UpsertSession(sess Session) {
	for i := range s.Sessions {
		if s.Sessions[i].ID == sess.ID {
			s.Sessions[i] = sess
			return
		}
	}
	s.Sessions = append(s.Sessions, sess)
}

// SortedSessions returns the sessions ordered newest first.
func (s *State) SortedSessions() []Session {
	out := make([]Session, len(s.Sessions))
	copy(out, s.Sessions)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Date.After(out[j-1].Date); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// DefaultSettings returns the settings used when nothing is stored.
func DefaultSettings() Settings {
	return Settings{
		Lang:       "en",
		Dark:       false,
		Sound:      true,
		Vibration:  true,
		Difficulty: difficulty.TierNormal,
		FontScale:  FontMedium,
		Theme:      ThemeSystem,
	}
}

// DefaultState returns the safe empty state.
func DefaultState() State {
	return State{
		Sessions: []Session{},
		Streak:   streak.State{},
		Settings: DefaultSettings(),
		Badges:   []string{},
		Version:  SchemaVersion,
	}
}
