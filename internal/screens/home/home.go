package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/bramv/brainsparks/internal/history"
	"github.com/bramv/brainsparks/internal/router"
	"github.com/bramv/brainsparks/internal/screen"
	"github.com/bramv/brainsparks/internal/screens/badges"
	historyscreen "github.com/bramv/brainsparks/internal/screens/history"
	sessionscreen "github.com/bramv/brainsparks/internal/screens/session"
	"github.com/bramv/brainsparks/internal/screens/settings"
	"github.com/bramv/brainsparks/internal/session"
	"github.com/bramv/brainsparks/internal/ui/components"
	"github.com/bramv/brainsparks/internal/ui/layout"
	"github.com/bramv/brainsparks/internal/ui/theme"
)

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	orc  *session.Orchestrator
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(orc *session.Orchestrator) *HomeScreen {
	items := []components.MenuItem{
		{Label: "Start training", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: sessionscreen.New(orc)}
			}
		}},
		{Label: "History", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: historyscreen.New(orc)}
			}
		}},
		{Label: "Badges", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: badges.New(orc)}
			}
		}},
		{Label: "Settings", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: settings.New(orc)}
			}
		}},
		{Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		orc:  orc,
		menu: components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	state := h.orc.State()
	sessions := state.SortedSessions()

	var sections []string

	banner := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("⚡ BRAIN SPARKS ⚡")
	tagline := theme.Subtitle.Render("Four quick drills a day keeps the fog away")
	sections = append(sections, banner, tagline, "")

	sections = append(sections, renderStats(state, sessions), "")

	if h.orc.Active() != nil {
		resume := lipgloss.NewStyle().Foreground(theme.Accent).
			Render("A session is in progress. Start training to resume it.")
		sections = append(sections, resume, "")
	}

	sections = append(sections, h.menu.View())

	content := strings.Join(sections, "\n")
	centered := make([]string, 0, len(sections))
	for _, line := range strings.Split(content, "\n") {
		centered = append(centered, lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
	}

	body := strings.Join(centered, "\n")
	return lipgloss.PlaceVertical(height, lipgloss.Center, body)
}

// renderStats shows the streak and the latest session at a glance.
func renderStats(state history.State, sessions []history.Session) string {
	streakStyle := lipgloss.NewStyle().Foreground(theme.Accent)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	streak := fmt.Sprintf("⚡ %d day streak", state.Streak.Current)
	if state.Streak.Best > state.Streak.Current {
		streak += dimStyle.Render(fmt.Sprintf("  (best %d)", state.Streak.Best))
	}

	played := dimStyle.Render(fmt.Sprintf("%d sessions played", len(sessions)))
	if len(sessions) == 0 {
		return streakStyle.Render(streak) + "\n" + played
	}

	last := sessions[0]
	latest := fmt.Sprintf("Last: score %d, brain age %d", last.TotalScore, last.BrainAge)
	return streakStyle.Render(streak) + "\n" +
		lipgloss.NewStyle().Foreground(theme.Secondary).Render(latest) + "\n" +
		played
}
