package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/bramv/brainsparks/internal/history"
	"github.com/bramv/brainsparks/internal/logger"
	"github.com/bramv/brainsparks/internal/router"
	"github.com/bramv/brainsparks/internal/screen"
	"github.com/bramv/brainsparks/internal/screens/home"
	"github.com/bramv/brainsparks/internal/session"
	"github.com/bramv/brainsparks/internal/store"
	"github.com/bramv/brainsparks/internal/ui/layout"
)

// Options configures the application run.
type Options struct {
	DBPath string
	Log    *logger.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	orc    *session.Orchestrator
	width  int
	height int
}

func newAppModel(orc *session.Orchestrator) AppModel {
	return AppModel{
		router: router.New(home.New(orc)),
		orc:    orc,
	}
}

func (m AppModel) Init() tea.Cmd {
	active := m.router.Active()
	if active == nil {
		return nil
	}
	return active.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Esc is left to the screens; the session screen needs it
		// for its quit confirmation.
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	state := m.orc.State()
	brainAge := 0
	if sessions := state.SortedSessions(); len(sessions) > 0 {
		brainAge = sessions[0].BrainAge
	}

	header := layout.RenderHeader(title, brainAge, state.Streak.Current, m.width)

	footerHints := []layout.KeyHint{
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if provider, ok := active.(screen.KeyHintProvider); ok {
		footerHints = append(provider.KeyHints(), footerHints...)
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run opens the store, wires the orchestrator and starts the TUI.
func Run(opts Options) error {
	log := opts.Log
	if log == nil {
		log = logger.Default()
	}

	st, err := store.Open(opts.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	persist := history.NewService(st.KV(), log)
	orc := session.New(persist,
		session.WithEventRecorder(st.Recorder()),
		session.WithLogger(log),
	)

	p := tea.NewProgram(newAppModel(orc))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
