package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// isolate points HOME at an empty directory so a developer's own config is
// never discovered.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, k := range []string{"HEALTOP_AGENT_URL", "HEALTOP_TRIGGER_TIMEOUT", "HEALTOP_LOG_LEVEL", "HEALTOP_LOG_FILE"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	return home
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	tmp := t.TempDir()

	cfg, err := LoadFrom(tmp, "")
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	if cfg.Agent.BaseURL != "http://127.0.0.1:8000" {
		t.Errorf("expected default base url, got %q", cfg.Agent.BaseURL)
	}
	if cfg.Agent.StreamPath != "/api/stream/{run_id}" {
		t.Errorf("expected default stream path, got %q", cfg.Agent.StreamPath)
	}
	if cfg.Agent.Timeout() != 30*time.Second {
		t.Errorf("expected 30s trigger timeout, got %s", cfg.Agent.Timeout())
	}
	if !cfg.UI.ConsoleEnabled() {
		t.Error("expected console to be enabled by default")
	}
	if cfg.Log.Level != "info" {
		t.Errorf("expected log level info, got %q", cfg.Log.Level)
	}
}

func TestLoadFromYAML(t *testing.T) {
	isolate(t)
	tmp := t.TempDir()

	yaml := `
agent:
  base_url: http://agent.local:9000
  trigger_timeout: 5
ui:
  theme: mono
  show_console: false
`
	os.WriteFile(filepath.Join(tmp, "healtop.yaml"), []byte(yaml), 0644)

	cfg, err := LoadFrom(tmp, "")
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	if cfg.Agent.BaseURL != "http://agent.local:9000" {
		t.Errorf("expected base url override, got %q", cfg.Agent.BaseURL)
	}
	if cfg.Agent.TriggerTimeout != 5 {
		t.Errorf("expected trigger timeout 5, got %d", cfg.Agent.TriggerTimeout)
	}
	if cfg.Agent.TriggerPath != "/api/run-agent" {
		t.Errorf("expected trigger path default preserved, got %q", cfg.Agent.TriggerPath)
	}
	if cfg.UI.Theme != "mono" {
		t.Errorf("expected theme mono, got %q", cfg.UI.Theme)
	}
	if cfg.UI.ConsoleEnabled() {
		t.Error("expected show_console: false to disable the console")
	}
}

func TestLoadFromTOML(t *testing.T) {
	isolate(t)
	tmp := t.TempDir()

	toml := `
[agent]
base_url = "https://agent.example.com"
stream_path = "/events/{run_id}"

[stream]
buffer_size = 8
`
	os.WriteFile(filepath.Join(tmp, "healtop.toml"), []byte(toml), 0644)

	cfg, err := LoadFrom(tmp, "")
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.Agent.BaseURL != "https://agent.example.com" {
		t.Errorf("expected TOML base url, got %q", cfg.Agent.BaseURL)
	}
	if cfg.Agent.StreamPath != "/events/{run_id}" {
		t.Errorf("expected TOML stream path, got %q", cfg.Agent.StreamPath)
	}
	if cfg.Stream.BufferSize != 8 {
		t.Errorf("expected buffer size 8, got %d", cfg.Stream.BufferSize)
	}
}

func TestYAMLWinsOverTOML(t *testing.T) {
	isolate(t)
	tmp := t.TempDir()
	os.WriteFile(filepath.Join(tmp, "healtop.yaml"), []byte("ui:\n  theme: mono\n"), 0644)
	os.WriteFile(filepath.Join(tmp, "healtop.toml"), []byte("[ui]\ntheme = \"bogus\"\n"), 0644)

	cfg, err := LoadFrom(tmp, "")
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.UI.Theme != "mono" {
		t.Errorf("expected healtop.yaml to win, got theme %q", cfg.UI.Theme)
	}
}

func TestUserConfigFallback(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".config", "healtop")
	os.MkdirAll(dir, 0755)
	os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("log:\n  level: debug\n"), 0644)

	cfg, err := LoadFrom(t.TempDir(), "")
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected user config level debug, got %q", cfg.Log.Level)
	}
}

func TestExplicitPathSkipsDiscovery(t *testing.T) {
	isolate(t)
	tmp := t.TempDir()
	os.WriteFile(filepath.Join(tmp, "healtop.yaml"), []byte("ui:\n  theme: mono\n"), 0644)
	explicit := filepath.Join(t.TempDir(), "custom.yaml")
	os.WriteFile(explicit, []byte("log:\n  level: warn\n"), 0644)

	cfg, err := LoadFrom(tmp, explicit)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.UI.Theme != "default" {
		t.Errorf("expected discovered file to be ignored, got theme %q", cfg.UI.Theme)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("expected explicit file level warn, got %q", cfg.Log.Level)
	}
}

func TestExplicitPathMissing(t *testing.T) {
	isolate(t)
	_, err := LoadFrom(t.TempDir(), filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	isolate(t)
	tmp := t.TempDir()
	os.WriteFile(filepath.Join(tmp, "healtop.yaml"), []byte("agent: [unclosed"), 0644)

	_, err := LoadFrom(tmp, "")
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "parsing YAML") {
		t.Errorf("expected YAML parse error, got: %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("HEALTOP_AGENT_URL", "http://10.0.0.5:8000")
	t.Setenv("HEALTOP_TRIGGER_TIMEOUT", "12")
	t.Setenv("HEALTOP_LOG_LEVEL", "error")

	cfg, err := LoadFrom(t.TempDir(), "")
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.Agent.BaseURL != "http://10.0.0.5:8000" {
		t.Errorf("expected env base url, got %q", cfg.Agent.BaseURL)
	}
	if cfg.Agent.TriggerTimeout != 12 {
		t.Errorf("expected env timeout 12, got %d", cfg.Agent.TriggerTimeout)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("expected env log level, got %q", cfg.Log.Level)
	}
}

func TestEnvOverrideInvalidTimeoutIgnored(t *testing.T) {
	isolate(t)
	t.Setenv("HEALTOP_TRIGGER_TIMEOUT", "soon")

	cfg, err := LoadFrom(t.TempDir(), "")
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.Agent.TriggerTimeout != 30 {
		t.Errorf("expected default timeout kept, got %d", cfg.Agent.TriggerTimeout)
	}
}

func TestDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	isolate(t)
	tmp := t.TempDir()
	os.WriteFile(filepath.Join(tmp, ".env"), []byte("HEALTOP_LOG_LEVEL=debug\nHEALTOP_AGENT_URL=http://from-dotenv:1\n"), 0644)
	t.Setenv("HEALTOP_AGENT_URL", "http://from-env:2")

	cfg, err := LoadFrom(tmp, "")
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.Agent.BaseURL != "http://from-env:2" {
		t.Errorf("expected process env to win over .env, got %q", cfg.Agent.BaseURL)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected .env to supply log level, got %q", cfg.Log.Level)
	}
}

func TestMergePreservesDefaults(t *testing.T) {
	t.Parallel()
	base := DefaultConfig()
	override := &Config{
		Agent: AgentConfig{BaseURL: "http://override:1"},
		UI:    UIConfig{ShowConsole: boolPtr(false)},
	}

	merge(&base, override)

	if base.Agent.BaseURL != "http://override:1" {
		t.Errorf("expected base url override, got %q", base.Agent.BaseURL)
	}
	if base.Agent.StreamPath != "/api/stream/{run_id}" {
		t.Errorf("expected stream path preserved, got %q", base.Agent.StreamPath)
	}
	if base.UI.ShowConsole == nil || *base.UI.ShowConsole {
		t.Error("expected ShowConsole overridden to false")
	}
	if base.UI.ConsoleLines != 500 {
		t.Errorf("expected console lines preserved as 500, got %d", base.UI.ConsoleLines)
	}
}
