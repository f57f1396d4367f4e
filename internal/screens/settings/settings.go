package settings

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/bramv/brainsparks/internal/difficulty"
	"github.com/bramv/brainsparks/internal/history"
	"github.com/bramv/brainsparks/internal/router"
	"github.com/bramv/brainsparks/internal/screen"
	"github.com/bramv/brainsparks/internal/session"
	"github.com/bramv/brainsparks/internal/ui/layout"
	"github.com/bramv/brainsparks/internal/ui/theme"
)

var languages = []string{"en", "es", "fr", "de", "nl"}

// row indexes into the settings list.
const (
	rowDifficulty = iota
	rowSound
	rowVibration
	rowTheme
	rowFontScale
	rowLanguage
	rowReset
	rowCount
)

// SettingsScreen edits user preferences through the orchestrator.
type SettingsScreen struct {
	orc          *session.Orchestrator
	selected     int
	resetConfirm bool
	resetDone    bool
}

var _ screen.Screen = (*SettingsScreen)(nil)
var _ screen.KeyHintProvider = (*SettingsScreen)(nil)

// New creates a new SettingsScreen.
func New(orc *session.Orchestrator) *SettingsScreen {
	return &SettingsScreen{orc: orc}
}

func (s *SettingsScreen) Init() tea.Cmd {
	return nil
}

func (s *SettingsScreen) Title() string {
	return "Settings"
}

func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	if s.resetConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Erase everything"},
			{Key: "N", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter/→", Description: "Change"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	key := kmsg.String()

	if s.resetConfirm {
		switch key {
		case "y", "Y":
			s.orc.ResetAll()
			s.resetConfirm = false
			s.resetDone = true
		case "n", "N", "esc":
			s.resetConfirm = false
		}
		return s, nil
	}

	switch key {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < rowCount-1 {
			s.selected++
		}
	case "enter", "right", "l", " ", "space":
		s.apply(1)
	case "left", "h":
		s.apply(-1)
	}
	return s, nil
}

// apply changes the selected row, cycling enums by dir.
func (s *SettingsScreen) apply(dir int) {
	cfg := s.orc.Settings()

	switch s.selected {
	case rowDifficulty:
		cfg.Difficulty = cycle(difficulty.AllTiers(), cfg.Difficulty, dir)
	case rowSound:
		cfg.Sound = !cfg.Sound
	case rowVibration:
		cfg.Vibration = !cfg.Vibration
	case rowTheme:
		cfg.Theme = cycle([]history.ThemeMode{
			history.ThemeSystem, history.ThemeLight, history.ThemeDark,
		}, cfg.Theme, dir)
		cfg.Dark = cfg.Theme == history.ThemeDark
	case rowFontScale:
		cfg.FontScale = cycle([]history.FontScale{
			history.FontSmall, history.FontMedium, history.FontLarge,
		}, cfg.FontScale, dir)
	case rowLanguage:
		s.orc.SetLanguage(cycle(languages, cfg.Lang, dir))
		return
	case rowReset:
		s.resetConfirm = true
		return
	}

	s.orc.SetSettings(cfg)
}

func cycle[T comparable](options []T, current T, dir int) T {
	for i, opt := range options {
		if opt == current {
			next := (i + dir + len(options)) % len(options)
			return options[next]
		}
	}
	return options[0]
}

func (s *SettingsScreen) View(width, height int) string {
	cfg := s.orc.Settings()

	if s.resetConfirm {
		var b strings.Builder
		b.WriteString("\n\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Error).Bold(true).
				Render("Erase all progress?")))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render("Sessions, streak and badges are deleted. Language is kept.")))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Error).Render("[Y] Yes, erase")))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Primary).Render("[N] Cancel")))
		return b.String()
	}

	rows := []struct {
		label string
		value string
	}{
		{"Difficulty", string(cfg.Difficulty)},
		{"Sound", onOff(cfg.Sound)},
		{"Vibration", onOff(cfg.Vibration)},
		{"Theme", string(cfg.Theme)},
		{"Font scale", string(cfg.FontScale)},
		{"Language", cfg.Lang},
		{"Reset all data", ""},
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, row := range rows {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%-16s %s", prefix, row.label, row.value)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == rowReset {
			style = lipgloss.NewStyle().Foreground(theme.Error)
		}
		if i == s.selected {
			style = style.Bold(true)
			if i != rowReset {
				style = style.Foreground(theme.Primary)
			}
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	if s.resetDone {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render("All progress erased.")))
	}

	return b.String()
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
