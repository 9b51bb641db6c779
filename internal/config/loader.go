package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load discovers a config file from the working directory, merges it with
// defaults, applies environment variable overrides, validates the result, and
// returns the final config. A non-empty explicit path skips discovery.
func Load(explicit string) (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	return LoadFrom(cwd, explicit)
}

// LoadFrom is Load with dir as the project directory.
func LoadFrom(dir, explicit string) (*Config, error) {
	cfg := DefaultConfig()

	path := explicit
	if path == "" {
		path = discoverConfigPath(dir)
	}

	if path != "" {
		override, err := loadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		merge(&cfg, override)
	}

	if err := loadDotEnv(dir); err != nil {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	applyEnvOverrides(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// discoverConfigPath returns the first config file in the discovery chain, or
// "" when none exists (defaults-only mode).
func discoverConfigPath(dir string) string {
	candidates := []string{
		filepath.Join(dir, "healtop.yaml"),
		filepath.Join(dir, "healtop.toml"),
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(home, ".config", "healtop", "config.yaml"),
			filepath.Join(home, ".config", "healtop", "config.toml"),
		)
	}

	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// loadFromFile reads a YAML or TOML config file, chosen by extension.
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("parsing TOML: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing YAML: %w", err)
		}
	}

	return &cfg, nil
}

// loadDotEnv reads dir/.env without overriding variables already set.
func loadDotEnv(dir string) error {
	err := godotenv.Load(filepath.Join(dir, ".env"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// merge overlays override onto base. Scalar fields override when non-zero;
// pointer-to-bool fields override when non-nil.
func merge(base *Config, override *Config) {
	// Agent
	if override.Agent.BaseURL != "" {
		base.Agent.BaseURL = override.Agent.BaseURL
	}
	if override.Agent.TriggerPath != "" {
		base.Agent.TriggerPath = override.Agent.TriggerPath
	}
	if override.Agent.StreamPath != "" {
		base.Agent.StreamPath = override.Agent.StreamPath
	}
	if override.Agent.TriggerTimeout != 0 {
		base.Agent.TriggerTimeout = override.Agent.TriggerTimeout
	}

	// Stream
	if override.Stream.BufferSize != 0 {
		base.Stream.BufferSize = override.Stream.BufferSize
	}
	if override.Stream.MaxEventBytes != 0 {
		base.Stream.MaxEventBytes = override.Stream.MaxEventBytes
	}

	// UI
	if override.UI.Theme != "" {
		base.UI.Theme = override.UI.Theme
	}
	if override.UI.ShowConsole != nil {
		base.UI.ShowConsole = override.UI.ShowConsole
	}
	if override.UI.ConsoleLines != 0 {
		base.UI.ConsoleLines = override.UI.ConsoleLines
	}

	// Log
	if override.Log.Level != "" {
		base.Log.Level = override.Log.Level
	}
	if override.Log.File != "" {
		base.Log.File = override.Log.File
	}
}

// applyEnvOverrides applies HEALTOP_* environment variables on top of the config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HEALTOP_AGENT_URL"); v != "" {
		cfg.Agent.BaseURL = v
	}
	if v := os.Getenv("HEALTOP_TRIGGER_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Agent.TriggerTimeout = n
		} else {
			fmt.Fprintf(os.Stderr, "warning: HEALTOP_TRIGGER_TIMEOUT=%q is not a valid integer, ignoring\n", v)
		}
	}
	if v := os.Getenv("HEALTOP_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("HEALTOP_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}
