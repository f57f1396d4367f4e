package history

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bramv/brainsparks/internal/logger"
)

// Persisted key names. Fixed for compatibility with existing stores.
const (
	KeyState         = "brainSparks:v1"
	KeyActiveSession = "brainSparks:activeSession"
	KeyLanguage      = "brainSparks:lang"
)

// KV is the durable key-value medium underneath the persistence layer.
type KV interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// Service is the validated persistence layer for history state, the
// in-progress session snapshot and the language preference. A nil KV (no
// storage backend) degrades every operation to an in-memory no-op.
type Service struct {
	kv  KV
	log *logger.Logger
	now func() time.Time
}

// NewService creates a Service over the given store.
func NewService(kv KV, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Default()
	}
	return &Service{kv: kv, log: log, now: time.Now}
}

// Load reads the long-term state. Absence, unreadable bytes and schema
// violations all fall back to a safe default state; corruption is logged
// but never surfaced. The language preference is overlaid from its own key
// so it survives a corrupted main blob.
func (s *Service) Load() State {
	state := DefaultState()
	state.Settings.Lang = detectLang()

	if s.kv == nil {
		return state
	}

	raw, ok, err := s.kv.Get(KeyState)
	if err != nil {
		s.log.Warn("read stored state: %v", err)
		return s.overlayLang(state)
	}
	if ok {
		parsed, perr := ParseState([]byte(raw))
		if perr != nil {
			s.log.Warn("stored state failed validation, resetting to defaults: %v", perr)
		} else {
			state = parsed
		}
	}

	return s.overlayLang(state)
}

func (s *Service) overlayLang(state State) State {
	lang, ok, err := s.kv.Get(KeyLanguage)
	if err == nil && ok && (lang == "en" || lang == "nl") {
		state.Settings.Lang = lang
	}
	return state
}

// Save writes the state and mirrors the language under its own key.
func (s *Service) Save(state State) error {
	if s.kv == nil {
		return nil
	}
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := s.kv.Set(KeyState, string(data)); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	if err := s.kv.Set(KeyLanguage, state.Settings.Lang); err != nil {
		return fmt.Errorf("write language: %w", err)
	}
	return nil
}

// LoadActive reads the in-progress session snapshot. A corrupt snapshot is
// discarded and logged, never surfaced: the player simply has no session to
// resume.
func (s *Service) LoadActive() *Active {
	if s.kv == nil {
		return nil
	}
	raw, ok, err := s.kv.Get(KeyActiveSession)
	if err != nil || !ok {
		if err != nil {
			s.log.Warn("read active session: %v", err)
		}
		return nil
	}
	active, perr := ParseActive([]byte(raw))
	if perr != nil {
		s.log.Warn("stored active session discarded: %v", perr)
		_ = s.kv.Remove(KeyActiveSession)
		return nil
	}
	return active
}

// SaveActive writes the snapshot; passing nil deletes it (cancelled or
// finalized session).
func (s *Service) SaveActive(active *Active) error {
	if s.kv == nil {
		return nil
	}
	if active == nil {
		if err := s.kv.Remove(KeyActiveSession); err != nil {
			return fmt.Errorf("clear active session: %w", err)
		}
		return nil
	}
	data, err := json.Marshal(active)
	if err != nil {
		return fmt.Errorf("marshal active session: %w", err)
	}
	if err := s.kv.Set(KeyActiveSession, string(data)); err != nil {
		return fmt.Errorf("write active session: %w", err)
	}
	return nil
}

// Export serializes the state as a pretty-printed document and returns it
// with a dated filename. The output round-trips through Import.
func (s *Service) Export(state State) (data []byte, filename string, err error) {
	data, err = json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, "", fmt.Errorf("marshal state: %w", err)
	}
	filename = fmt.Sprintf("brain-sparks-%s.json", s.now().UTC().Format("2006-01-02"))
	return data, filename, nil
}

// Import validates user-supplied bytes strictly and returns the parsed
// state. Unlike Load, any failure is returned to the caller: a bad file is
// the user's problem to hear about, not ours to paper over. Prior state is
// untouched on failure.
func (s *Service) Import(data []byte) (State, error) {
	if err := validateImport(data); err != nil {
		return State{}, err
	}
	state, err := ParseState(data)
	if err != nil {
		return State{}, err
	}
	return state, nil
}

// Clear removes the stored state and snapshot but keeps the language key.
func (s *Service) Clear() error {
	if s.kv == nil {
		return nil
	}
	if err := s.kv.Remove(KeyState); err != nil {
		return fmt.Errorf("remove state: %w", err)
	}
	if err := s.kv.Remove(KeyActiveSession); err != nil {
		return fmt.Errorf("remove active session: %w", err)
	}
	return nil
}

// detectLang makes a best-effort guess from the process locale.
func detectLang() string {
	for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(env); v != "" {
			if strings.HasPrefix(strings.ToLower(v), "nl") {
				return "nl"
			}
			return "en"
		}
	}
	return "en"
}
