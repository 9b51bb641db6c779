package config

import (
	"os"
	"path/filepath"
	"time"
)

func boolPtr(b bool) *bool { return &b }

func DefaultConfig() Config {
	return Config{
		Agent: AgentConfig{
			BaseURL:        "http://127.0.0.1:8000",
			TriggerPath:    "/api/run-agent",
			StreamPath:     "/api/stream/{run_id}",
			TriggerTimeout: 30,
		},
		Stream: StreamConfig{
			BufferSize:    64,
			MaxEventBytes: 1024 * 1024,
		},
		UI: UIConfig{
			Theme:        "default",
			ShowConsole:  boolPtr(true),
			ConsoleLines: 500,
		},
		Log: LogConfig{
			Level: "info",
			File:  defaultLogFile(),
		},
	}
}

func defaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "healtop.log")
	}
	return filepath.Join(dir, "healtop", "healtop.log")
}

func (a AgentConfig) Timeout() time.Duration {
	return time.Duration(a.TriggerTimeout) * time.Second
}

// ConsoleEnabled reports whether the console panel is shown.
func (u UIConfig) ConsoleEnabled() bool {
	return u.ShowConsole == nil || *u.ShowConsole
}
