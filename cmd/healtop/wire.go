package main

import (
	"fmt"

	"github.com/justinpbarnett/healtop/internal/agent"
	"github.com/justinpbarnett/healtop/internal/config"
	"github.com/justinpbarnett/healtop/internal/controller"
	"github.com/justinpbarnett/healtop/internal/logbuf"
	"github.com/justinpbarnett/healtop/internal/logging"
	"github.com/justinpbarnett/healtop/internal/run"
	"github.com/justinpbarnett/healtop/internal/stream"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// components is everything one run needs, built from the loaded config.
type components struct {
	cfg     *config.Config
	log     *zap.Logger
	store   *run.Store
	console *logbuf.RingBuffer
	ctrl    *controller.Controller
}

// loadLogger loads the config and builds the stderr logger used by the
// non-interactive commands.
func loadLogger() (*config.Config, *zap.Logger, error) {
	return load(true)
}

func load(headless bool) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	log, err := logging.New(cfg.Log, headless)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func build(headless bool) (*components, error) {
	cfg, log, err := load(headless)
	if err != nil {
		return nil, err
	}

	store := run.NewStore()
	console := logbuf.NewRingBuffer(cfg.UI.ConsoleLines)

	trigger := agent.NewClient(cfg.Agent.BaseURL, cfg.Agent.TriggerPath, cfg.Agent.Timeout(),
		agent.WithLogger(log.Named("agent")))
	streams := stream.NewClient(cfg.Agent.BaseURL, cfg.Agent.StreamPath,
		stream.WithBufferSize(cfg.Stream.BufferSize),
		stream.WithMaxEventBytes(cfg.Stream.MaxEventBytes),
		stream.WithLogger(log.Named("stream")),
	)
	ctrl := controller.New(store, trigger, controller.StreamDialer(streams),
		controller.WithConsole(console),
		controller.WithLogger(log.Named("controller")),
	)

	log.Debug("configured",
		zap.String("trigger", trigger.URL()),
		zap.String("stream", streams.URL(stream.RunIDPlaceholder)),
	)
	return &components{cfg: cfg, log: log, store: store, console: console, ctrl: ctrl}, nil
}

// close drops any live stream without changing run status and flushes the
// logger.
func (c *components) close() {
	c.ctrl.Close()
	_ = c.log.Sync()
}

var input run.Input

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&input.RepoURL, "repo", "", "repository URL to repair")
	cmd.Flags().StringVar(&input.TeamName, "team", "", "team name")
	cmd.Flags().StringVar(&input.LeaderName, "leader", "", "team leader name")
}

func requireInput() error {
	in := input.Normalize()
	var missing []string
	if in.RepoURL == "" {
		missing = append(missing, "--repo")
	}
	if in.TeamName == "" {
		missing = append(missing, "--team")
	}
	if in.LeaderName == "" {
		missing = append(missing, "--leader")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required flags: %v", missing)
	}
	return nil
}
