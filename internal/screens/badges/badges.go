package badges

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/bramv/brainsparks/internal/badges"
	"github.com/bramv/brainsparks/internal/router"
	"github.com/bramv/brainsparks/internal/screen"
	"github.com/bramv/brainsparks/internal/session"
	"github.com/bramv/brainsparks/internal/ui/layout"
	"github.com/bramv/brainsparks/internal/ui/theme"
)

// BadgesScreen shows every known badge, unlocked or locked, plus any
// legacy ids carried in from an import.
type BadgesScreen struct {
	unlocked map[string]bool
	legacy   []string
}

var _ screen.Screen = (*BadgesScreen)(nil)
var _ screen.KeyHintProvider = (*BadgesScreen)(nil)

// New creates a new BadgesScreen from the orchestrator's state.
func New(orc *session.Orchestrator) *BadgesScreen {
	state := orc.State()
	unlocked := make(map[string]bool, len(state.Badges))
	for _, id := range state.Badges {
		unlocked[id] = true
	}

	known := make(map[string]bool)
	for _, def := range badges.Registry() {
		known[def.ID] = true
	}
	var legacy []string
	for _, id := range state.Badges {
		if !known[id] {
			legacy = append(legacy, id)
		}
	}

	return &BadgesScreen{unlocked: unlocked, legacy: legacy}
}

func (s *BadgesScreen) Init() tea.Cmd {
	return nil
}

func (s *BadgesScreen) Title() string {
	return "Badges"
}

func (s *BadgesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *BadgesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		if kmsg.String() == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *BadgesScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")

	for _, def := range badges.Registry() {
		var line string
		if s.unlocked[def.ID] {
			line = lipgloss.NewStyle().
				Foreground(theme.Accent).
				Bold(true).
				Render("★ " + def.Label)
		} else {
			line = lipgloss.NewStyle().
				Foreground(theme.TextDim).
				Render("☆ " + def.Label + "  (locked)")
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}

	// Imported badges we have no definition for are still shown; they
	// are never dropped from the profile.
	for _, id := range s.legacy {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Secondary).Render("★ "+id)))
		b.WriteString("\n")
	}

	return b.String()
}
