package main

import (
	"fmt"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/justinpbarnett/healtop/internal/ui"
	"github.com/justinpbarnett/healtop/internal/ui/styles"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func runTUI(cmd *cobra.Command, _ []string) error {
	c, err := build(false)
	if err != nil {
		return err
	}
	defer c.close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
	defer stop()

	styles.Apply(c.cfg.UI.Theme)
	app := ui.NewApp(c.cfg, c.store, c.ctrl, c.console, c.log.Named("ui"),
		ui.WithContext(ctx),
		ui.WithInput(input),
	)

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	c.log.Info("starting tui", zap.String("theme", styles.Current()))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
