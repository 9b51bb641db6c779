package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError collects multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// validate checks the config for internal consistency and returns a
// ValidationError if any checks fail. All checks run and errors are collected.
func validate(cfg *Config) error {
	var errs []string

	u, err := url.Parse(cfg.Agent.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Sprintf("agent.base_url %q must be an absolute http(s) URL", cfg.Agent.BaseURL))
	}
	if !strings.HasPrefix(cfg.Agent.TriggerPath, "/") {
		errs = append(errs, fmt.Sprintf("agent.trigger_path %q must start with /", cfg.Agent.TriggerPath))
	}
	if !strings.Contains(cfg.Agent.StreamPath, "{run_id}") {
		errs = append(errs, fmt.Sprintf("agent.stream_path %q must contain {run_id}", cfg.Agent.StreamPath))
	}

	// Positive value checks
	if cfg.Agent.TriggerTimeout <= 0 {
		errs = append(errs, "agent.trigger_timeout must be positive")
	}
	if cfg.Stream.BufferSize <= 0 {
		errs = append(errs, "stream.buffer_size must be positive")
	}
	if cfg.Stream.MaxEventBytes <= 0 {
		errs = append(errs, "stream.max_event_bytes must be positive")
	}
	if cfg.UI.ConsoleLines <= 0 {
		errs = append(errs, "ui.console_lines must be positive")
	}

	switch cfg.UI.Theme {
	case "default", "mono":
	default:
		errs = append(errs, fmt.Sprintf("ui.theme %q must be \"default\" or \"mono\"", cfg.UI.Theme))
	}

	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("log.level %q must be \"debug\", \"info\", \"warn\", or \"error\"", cfg.Log.Level))
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
