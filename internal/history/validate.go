package history

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/bramv/brainsparks/internal/difficulty"
	"github.com/bramv/brainsparks/internal/streak"
)

// ValidationError describes why a persisted or imported document was
// rejected. Field is a dotted path into the document.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid state: %s: %s", e.Field, e.Reason)
}

func invalid(field, reason string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(reason, args...)}
}

// Raw DTOs mirror the stored JSON with optional fields as pointers so a
// missing field is distinguishable from a zero one. Type mismatches surface
// as unmarshal errors, which is the strictness the schema wants.

type rawSettings struct {
	Lang       *string `json:"lang"`
	Dark       *bool   `json:"dark"`
	Sound      *bool   `json:"sound"`
	Vibration  *bool   `json:"vibration"`
	Difficulty *string `json:"difficulty"`
	FontScale  *string `json:"fontScale"`
	Theme      *string `json:"theme"`
}

type rawOutcome struct {
	Kind  string         `json:"kind"`
	Score *float64       `json:"score"`
	Meta  map[string]any `json:"meta"`
}

type rawSession struct {
	ID         string       `json:"id"`
	Date       string       `json:"date"`
	Tests      []rawOutcome `json:"tests"`
	TotalScore *float64     `json:"totalScore"`
	BrainAge   *float64     `json:"brainAge"`
}

type rawStreak struct {
	Current *float64 `json:"current"`
	Best    *float64 `json:"best"`
	LastDay string   `json:"lastDay"`
}

type rawState struct {
	Sessions []rawSession `json:"sessions"`
	Streak   *rawStreak   `json:"streak"`
	Settings *rawSettings `json:"settings"`
	Badges   []string     `json:"badges"`
	Version  *int         `json:"version"`
}

type rawActiveTest struct {
	Kind   string         `json:"kind"`
	Score  *float64       `json:"score"`
	Meta   map[string]any `json:"meta"`
	Status string         `json:"status"`
}

type rawActive struct {
	ID           string          `json:"id"`
	Date         string          `json:"date"`
	Tests        []rawActiveTest `json:"tests"`
	CurrentIndex *int            `json:"currentIndex"`
}

// ParseState decodes and normalizes a stored history document. Optional
// fields default; wrong types, unknown enum values and unrecognised schema
// versions are rejected.
func ParseState(data []byte) (State, error) {
	var raw rawState
	if err := json.Unmarshal(data, &raw); err != nil {
		return State{}, invalid("$", "not a state document: %v", err)
	}

	if raw.Version == nil {
		return State{}, invalid("version", "missing")
	}
	if *raw.Version != SchemaVersion {
		return State{}, invalid("version", "unrecognised version %d", *raw.Version)
	}

	out := DefaultState()

	if raw.Streak == nil {
		return State{}, invalid("streak", "missing")
	}
	st, err := parseStreak(raw.Streak)
	if err != nil {
		return State{}, err
	}
	out.Streak = st

	settings, err := parseSettings(raw.Settings)
	if err != nil {
		return State{}, err
	}
	out.Settings = settings

	out.Sessions = make([]Session, 0, len(raw.Sessions))
	for i, rs := range raw.Sessions {
		sess, err := parseSession(rs, fmt.Sprintf("sessions[%d]", i))
		if err != nil {
			return State{}, err
		}
		out.Sessions = append(out.Sessions, sess)
	}

	if raw.Badges != nil {
		out.Badges = raw.Badges
	}

	return out, nil
}

func parseStreak(raw *rawStreak) (streak.State, error) {
	if raw.Current == nil || raw.Best == nil {
		return streak.State{}, invalid("streak", "current and best are required")
	}
	st := streak.State{
		Current: int(*raw.Current),
		Best:    int(*raw.Best),
		LastDay: raw.LastDay,
	}
	if st.Current < 0 || st.Best < 0 {
		return streak.State{}, invalid("streak", "counts must be non-negative")
	}
	// Repair rather than reject: best can never trail current.
	if st.Best < st.Current {
		st.Best = st.Current
	}
	if st.LastDay != "" {
		if _, err := time.Parse(streak.DayFormat, st.LastDay); err != nil {
			return streak.State{}, invalid("streak.lastDay", "not a %s day", streak.DayFormat)
		}
	}
	return st, nil
}

func parseSettings(raw *rawSettings) (Settings, error) {
	out := DefaultSettings()
	if raw == nil {
		return out, nil
	}
	if raw.Lang != nil {
		if *raw.Lang != "en" && *raw.Lang != "nl" {
			return Settings{}, invalid("settings.lang", "unsupported language %q", *raw.Lang)
		}
		out.Lang = *raw.Lang
	}
	if raw.Dark != nil {
		out.Dark = *raw.Dark
	}
	if raw.Sound != nil {
		out.Sound = *raw.Sound
	}
	if raw.Vibration != nil {
		out.Vibration = *raw.Vibration
	}
	if raw.Difficulty != nil {
		tier := difficulty.Tier(*raw.Difficulty)
		if !tier.Valid() {
			return Settings{}, invalid("settings.difficulty", "unknown tier %q", *raw.Difficulty)
		}
		out.Difficulty = tier
	}
	if raw.FontScale != nil {
		switch FontScale(*raw.FontScale) {
		case FontSmall, FontMedium, FontLarge:
			out.FontScale = FontScale(*raw.FontScale)
		default:
			return Settings{}, invalid("settings.fontScale", "unknown scale %q", *raw.FontScale)
		}
	}
	if raw.Theme != nil {
		switch ThemeMode(*raw.Theme) {
		case ThemeSystem, ThemeLight, ThemeDark:
			out.Theme = ThemeMode(*raw.Theme)
		default:
			return Settings{}, invalid("settings.theme", "unknown theme %q", *raw.Theme)
		}
	}
	return out, nil
}

func parseSession(raw rawSession, path string) (Session, error) {
	if raw.ID == "" {
		return Session{}, invalid(path+".id", "missing")
	}
	date, err := parseDate(raw.Date)
	if err != nil {
		return Session{}, invalid(path+".date", "%v", err)
	}
	if raw.TotalScore == nil || raw.BrainAge == nil {
		return Session{}, invalid(path, "totalScore and brainAge are required")
	}

	sess := Session{
		ID:         raw.ID,
		Date:       date,
		Tests:      make([]Outcome, 0, len(raw.Tests)),
		TotalScore: int(*raw.TotalScore),
		BrainAge:   int(*raw.BrainAge),
	}
	for i, rt := range raw.Tests {
		kind := TestKind(rt.Kind)
		if !kind.Valid() {
			return Session{}, invalid(fmt.Sprintf("%s.tests[%d].kind", path, i), "unknown kind %q", rt.Kind)
		}
		if rt.Score == nil {
			return Session{}, invalid(fmt.Sprintf("%s.tests[%d].score", path, i), "missing")
		}
		sess.Tests = append(sess.Tests, Outcome{Kind: kind, Score: int(*rt.Score), Meta: Meta(rt.Meta)})
	}
	return sess, nil
}

// ParseActive decodes and normalizes a stored in-progress session.
func ParseActive(data []byte) (*Active, error) {
	var raw rawActive
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, invalid("$", "not an active session: %v", err)
	}
	if raw.ID == "" {
		return nil, invalid("id", "missing")
	}
	date, err := parseDate(raw.Date)
	if err != nil {
		return nil, invalid("date", "%v", err)
	}
	if raw.CurrentIndex == nil {
		return nil, invalid("currentIndex", "missing")
	}
	idx := *raw.CurrentIndex
	if idx < 0 || idx > len(raw.Tests) {
		return nil, invalid("currentIndex", "%d out of range for %d tests", idx, len(raw.Tests))
	}

	active := &Active{ID: raw.ID, Date: date, CurrentIndex: idx}
	for i, rt := range raw.Tests {
		kind := TestKind(rt.Kind)
		if !kind.Valid() {
			return nil, invalid(fmt.Sprintf("tests[%d].kind", i), "unknown kind %q", rt.Kind)
		}
		status := TestStatus(rt.Status)
		if status != StatusPending && status != StatusComplete {
			return nil, invalid(fmt.Sprintf("tests[%d].status", i), "unknown status %q", rt.Status)
		}
		score := 0
		if rt.Score != nil {
			score = int(*rt.Score)
		}
		active.Tests = append(active.Tests, ActiveTest{
			Outcome: Outcome{Kind: kind, Score: score, Meta: Meta(rt.Meta)},
			Status:  status,
		})
	}
	return active, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("missing")
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("not an RFC 3339 timestamp")
	}
	return t, nil
}
