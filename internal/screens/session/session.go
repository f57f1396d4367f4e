package session

import (
	"math/rand/v2"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/bramv/brainsparks/internal/difficulty"
	"github.com/bramv/brainsparks/internal/games"
	"github.com/bramv/brainsparks/internal/history"
	"github.com/bramv/brainsparks/internal/router"
	"github.com/bramv/brainsparks/internal/screen"
	"github.com/bramv/brainsparks/internal/screens/summary"
	sess "github.com/bramv/brainsparks/internal/session"
	"github.com/bramv/brainsparks/internal/ui/components"
	"github.com/bramv/brainsparks/internal/ui/layout"
)

type phase int

const (
	phaseIntro phase = iota // "next up" interstitial
	phasePlaying
)

// SessionScreen plays through today's three tests.
type SessionScreen struct {
	orc *sess.Orchestrator
	cfg difficulty.Config
	rnd games.Rand

	active      *history.Active
	phase       phase
	quitConfirm bool

	arithmetic *arithmeticDrill
	memory     *memoryDrill
	reaction   *reactionDrill
	oddOneOut  *oddOneOutDrill
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)

// New creates the session screen, starting or resuming today's session.
func New(orc *sess.Orchestrator) *SessionScreen {
	return &SessionScreen{
		orc: orc,
		cfg: difficulty.ForTier(orc.Settings().Difficulty),
		rnd: rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
	}
}

func (s *SessionScreen) Init() tea.Cmd {
	s.active = s.orc.StartOrResume()
	s.phase = phaseIntro
	return nil
}

func (s *SessionScreen) Title() string {
	return "Daily Training"
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.quitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave session"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.phase == phaseIntro {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Start test"},
			{Key: "S", Description: "Skip"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	switch s.currentKind() {
	case history.KindReaction:
		return []layout.KeyHint{
			{Key: "Space", Description: "React"},
			{Key: "Esc", Description: "Quit"},
		}
	case history.KindOddOneOut:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *SessionScreen) currentKind() history.TestKind {
	if s.active == nil {
		return ""
	}
	cur := s.active.Current()
	if cur == nil {
		return ""
	}
	return cur.Kind
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		return s.handleTick()
	case revealDoneMsg:
		return s.handleRevealDone(msg)
	case reactionGoMsg:
		return s.handleReactionGo(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	// Forward everything else to the focused text input.
	if s.phase == phasePlaying && !s.quitConfirm {
		switch s.currentKind() {
		case history.KindArithmetic:
			if s.arithmetic != nil {
				var cmd tea.Cmd
				s.arithmetic.input, cmd = s.arithmetic.input.Update(msg)
				return s, cmd
			}
		case history.KindMemory:
			if s.memory != nil && !s.memory.revealing {
				var cmd tea.Cmd
				s.memory.input, cmd = s.memory.input.Update(msg)
				return s, cmd
			}
		}
	}

	return s, nil
}

// startCurrentTest builds the drill for the pending test and returns
// the command that drives it.
func (s *SessionScreen) startCurrentTest() tea.Cmd {
	s.phase = phasePlaying
	s.arithmetic, s.memory, s.reaction, s.oddOneOut = nil, nil, nil, nil

	switch s.currentKind() {
	case history.KindArithmetic:
		s.arithmetic = newArithmeticDrill(s.cfg.Arithmetic, s.rnd)
		return tea.Batch(s.arithmetic.input.Init(), tickCmd())
	case history.KindMemory:
		s.memory = newMemoryDrill(s.cfg.Memory, s.rnd)
		round := s.memory.drill.Round
		return tea.Tick(s.memory.revealDuration(), func(time.Time) tea.Msg {
			return revealDoneMsg{Round: round}
		})
	case history.KindReaction:
		s.reaction = newReactionDrill(s.cfg.Reaction, s.rnd)
		return s.armReaction()
	case history.KindOddOneOut:
		s.oddOneOut = newOddOneOutDrill(s.cfg.OddOneOut, s.rnd)
		return tickCmd()
	}
	return nil
}

func (s *SessionScreen) armReaction() tea.Cmd {
	delay := s.reaction.arm()
	seq := s.reaction.seq
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return reactionGoMsg{Seq: seq}
	})
}

// finishCurrentTest reports the drill outcome to the orchestrator and
// advances to the next interstitial or the summary.
func (s *SessionScreen) finishCurrentTest(score int, meta history.Meta) (screen.Screen, tea.Cmd) {
	s.arithmetic, s.memory, s.reaction, s.oddOneOut = nil, nil, nil, nil
	res, err := s.orc.CompleteCurrentTest(score, meta)
	if err != nil {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if res != nil {
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: summary.New(res)}
		}
	}
	s.active = s.orc.Active()
	s.phase = phaseIntro
	return s, nil
}

func (s *SessionScreen) skipCurrentTest() (screen.Screen, tea.Cmd) {
	res, err := s.orc.SkipCurrentTest()
	if err != nil {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if res != nil {
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: summary.New(res)}
		}
	}
	s.active = s.orc.Active()
	s.phase = phaseIntro
	return s, nil
}

func (s *SessionScreen) handleTick() (screen.Screen, tea.Cmd) {
	if s.phase != phasePlaying || s.quitConfirm {
		if s.arithmetic != nil || s.oddOneOut != nil {
			// Countdown pauses under the confirm overlay but the
			// ticker stays armed so play resumes cleanly.
			return s, tickCmd()
		}
		return s, nil
	}

	switch s.currentKind() {
	case history.KindArithmetic:
		if s.arithmetic == nil {
			return s, nil
		}
		s.arithmetic.secondsLeft--
		if s.arithmetic.finished() {
			score, meta := s.arithmetic.result()
			return s.finishCurrentTest(score, meta)
		}
		return s, tickCmd()
	case history.KindOddOneOut:
		if s.oddOneOut == nil {
			return s, nil
		}
		s.oddOneOut.secondsLeft--
		if s.oddOneOut.secondsLeft <= 0 {
			score, meta := s.oddOneOut.result()
			return s.finishCurrentTest(score, meta)
		}
		return s, tickCmd()
	}
	return s, nil
}

func (s *SessionScreen) handleRevealDone(msg revealDoneMsg) (screen.Screen, tea.Cmd) {
	if s.memory == nil || !s.memory.revealing || s.memory.drill.Round != msg.Round {
		return s, nil
	}
	s.memory.revealing = false
	s.memory.input = newDigitInput()
	return s, s.memory.input.Init()
}

func (s *SessionScreen) handleReactionGo(msg reactionGoMsg) (screen.Screen, tea.Cmd) {
	if s.reaction == nil || msg.Seq != s.reaction.seq {
		return s, nil
	}
	s.reaction.armed = true
	s.reaction.goAt = time.Now()
	return s, nil
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.quitConfirm {
		switch key {
		case "y", "Y":
			s.orc.CancelSession()
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.quitConfirm = false
		}
		return s, nil
	}

	if key == "esc" {
		s.quitConfirm = true
		return s, nil
	}

	if s.phase == phaseIntro {
		switch key {
		case "enter":
			return s, s.startCurrentTest()
		case "s", "S":
			return s.skipCurrentTest()
		}
		return s, nil
	}

	switch s.currentKind() {
	case history.KindArithmetic:
		return s.handleArithmeticKey(msg)
	case history.KindMemory:
		return s.handleMemoryKey(msg)
	case history.KindReaction:
		return s.handleReactionKey(key)
	case history.KindOddOneOut:
		return s.handleOddOneOutKey(msg)
	}
	return s, nil
}

func (s *SessionScreen) handleArithmeticKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.arithmetic == nil {
		return s, nil
	}
	if msg.String() == "enter" {
		s.arithmetic.submit()
		if s.arithmetic.finished() {
			score, meta := s.arithmetic.result()
			return s.finishCurrentTest(score, meta)
		}
		return s, s.arithmetic.input.Init()
	}
	var cmd tea.Cmd
	s.arithmetic.input, cmd = s.arithmetic.input.Update(msg)
	return s, cmd
}

func (s *SessionScreen) handleMemoryKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.memory == nil || s.memory.revealing {
		return s, nil
	}
	if msg.String() == "enter" {
		if s.memory.submit() {
			score, meta := s.memory.result()
			return s.finishCurrentTest(score, meta)
		}
		round := s.memory.drill.Round
		return s, tea.Tick(s.memory.revealDuration(), func(time.Time) tea.Msg {
			return revealDoneMsg{Round: round}
		})
	}
	var cmd tea.Cmd
	s.memory.input, cmd = s.memory.input.Update(msg)
	return s, cmd
}

func (s *SessionScreen) handleReactionKey(key string) (screen.Screen, tea.Cmd) {
	if s.reaction == nil {
		return s, nil
	}
	if key != "space" && key != " " && key != "enter" {
		return s, nil
	}
	rearm, finished := s.reaction.press(time.Now())
	if finished {
		score, meta := s.reaction.result()
		return s.finishCurrentTest(score, meta)
	}
	if rearm {
		return s, s.armReaction()
	}
	return s, nil
}

func (s *SessionScreen) handleOddOneOutKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.oddOneOut == nil {
		return s, nil
	}
	s.oddOneOut.choice, _ = s.oddOneOut.choice.Update(msg)
	if s.oddOneOut.choice.Submitted {
		s.oddOneOut.advance()
	}
	return s, nil
}

func newDigitInput() components.TextInput {
	return components.NewTextInput("digits", true, 16)
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
