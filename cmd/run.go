package cmd

import (
	"fmt"

	"github.com/bramv/brainsparks/internal/app"
	"github.com/bramv/brainsparks/internal/history"
	"github.com/bramv/brainsparks/internal/logger"
	"github.com/bramv/brainsparks/internal/session"
	"github.com/bramv/brainsparks/internal/store"
	"github.com/spf13/cobra"
)

// runApp resolves the database path and launches the TUI.
func runApp(cmd *cobra.Command) error {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	return app.Run(app.Options{DBPath: dbPath})
}

// openOrchestrator builds the orchestrator for the non-interactive
// commands. The caller must close the returned store.
func openOrchestrator(cmd *cobra.Command) (*session.Orchestrator, *store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	log := logger.Default()
	persist := history.NewService(st.KV(), log)
	orc := session.New(persist,
		session.WithEventRecorder(st.Recorder()),
		session.WithLogger(log),
	)
	return orc, st, nil
}
