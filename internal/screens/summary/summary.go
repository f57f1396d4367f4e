package summary

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/bramv/brainsparks/internal/badges"
	"github.com/bramv/brainsparks/internal/router"
	"github.com/bramv/brainsparks/internal/scoring"
	"github.com/bramv/brainsparks/internal/screen"
	"github.com/bramv/brainsparks/internal/session"
	"github.com/bramv/brainsparks/internal/ui/layout"
	"github.com/bramv/brainsparks/internal/ui/theme"
)

// SummaryScreen shows the result of a finalized session.
type SummaryScreen struct {
	result *session.FinalizeResult
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(result *session.FinalizeResult) *SummaryScreen {
	return &SummaryScreen{result: result}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	res := s.result
	if res == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Session complete!"))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf("Total score: %d", res.Session.TotalScore)))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("Brain age: %d", res.Session.BrainAge)))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Accent).
		Render(fmt.Sprintf("⚡ %d day streak", res.Streak.Current)))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Tests")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	for _, outcome := range res.Session.Tests {
		class := scoring.Feedback(outcome.Score, outcome.Kind)
		line := fmt.Sprintf("%-12s  %4d  %s",
			outcome.Kind.DisplayName(), outcome.Score, feedbackLabel(class))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(feedbackColor(class)).Render(line)))
		b.WriteString("\n")
	}

	if len(res.Unlocked) > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Bold(true).
			Render("New badges!"))
		b.WriteString("\n")
		for _, id := range res.Unlocked {
			b.WriteString(lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Foreground(theme.Text).
				Render("★ " + badgeLabel(id)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Press Enter to continue"))

	return b.String()
}

func badgeLabel(id string) string {
	for _, def := range badges.Registry() {
		if def.ID == id {
			return def.Label
		}
	}
	return id
}

func feedbackLabel(class scoring.FeedbackClass) string {
	switch class {
	case scoring.FeedbackPositive:
		return "sharp"
	case scoring.FeedbackNegative:
		return "room to grow"
	}
	return "steady"
}

func feedbackColor(class scoring.FeedbackClass) color.Color {
	switch class {
	case scoring.FeedbackPositive:
		return theme.Success
	case scoring.FeedbackNegative:
		return theme.Error
	}
	return theme.Text
}
