package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/libris/internal/tui/library"
)

func runDashboard(cmd *cobra.Command, app *AppContext) error {
	ctx, log := app.CommandContext(cmd, "command.dashboard")
	log.Info(ctx, "launching interface", "authenticated", app.Session.Authenticated())

	// The terminal background must be queried before bubbletea owns it.
	store := app.Theme()

	relay := library.NewRelay(nil)
	teardown := library.WatchTheme(store, relay)
	defer teardown()

	m := library.NewModel(library.Options{
		Service: app.Catalog,
		Session: app.Session.Snapshot(),
		Events:  app.Events,
		Relay:   relay,
		Theme:   store,
		Logger:  app.Logger,
		Context: ctx,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	relay.Attach(p)

	final, err := p.Run()
	if model, ok := final.(library.Model); ok {
		model.Close()
	}
	if err != nil {
		log.Error(ctx, "interface execution failed", "error", err)
		return fmt.Errorf("failed to run interface: %w", err)
	}

	log.Info(ctx, "interface closed")
	return nil
}
