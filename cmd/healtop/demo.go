package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinpbarnett/healtop/internal/agentsim"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	demoAddr   string
	demoScript string
	demoPace   time.Duration
)

var scripts = map[string]agentsim.Script{
	"healing":       agentsim.HealingScript,
	"clean":         agentsim.CleanScript,
	"clone-failure": agentsim.CloneFailureScript,
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Serve a simulated agent for trying the dashboard locally",
	RunE: func(cmd *cobra.Command, _ []string) error {
		script, ok := scripts[demoScript]
		if !ok {
			return fmt.Errorf("unknown script %q (want healing, clean or clone-failure)", demoScript)
		}

		_, log, err := loadLogger()
		if err != nil {
			return err
		}
		defer log.Sync() //nolint:errcheck

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv := agentsim.New(
			agentsim.WithScript(agentsim.Paced(script, demoPace)),
			agentsim.WithLogger(log.Named("agentsim")),
		)
		log.Info("demo agent listening",
			zap.String("addr", demoAddr),
			zap.String("script", demoScript),
			zap.Duration("pace", demoPace),
		)
		fmt.Fprintf(cmd.OutOrStdout(), "Demo agent on http://%s (ctrl+c to stop)\n", demoAddr)
		return srv.Serve(ctx, demoAddr)
	},
}

func init() {
	demoCmd.Flags().StringVar(&demoAddr, "addr", "127.0.0.1:8000", "listen address")
	demoCmd.Flags().StringVar(&demoScript, "script", "healing", "scenario: healing, clean or clone-failure")
	demoCmd.Flags().DurationVar(&demoPace, "pace", 400*time.Millisecond, "delay between emitted events")
	rootCmd.AddCommand(demoCmd)
}
