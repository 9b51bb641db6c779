package config

type Config struct {
	Agent  AgentConfig  `yaml:"agent" toml:"agent"`
	Stream StreamConfig `yaml:"stream" toml:"stream"`
	UI     UIConfig     `yaml:"ui" toml:"ui"`
	Log    LogConfig    `yaml:"log" toml:"log"`
}

type AgentConfig struct {
	BaseURL     string `yaml:"base_url" toml:"base_url"`
	TriggerPath string `yaml:"trigger_path" toml:"trigger_path"`
	StreamPath  string `yaml:"stream_path" toml:"stream_path"`
	// TriggerTimeout is in seconds.
	TriggerTimeout int `yaml:"trigger_timeout" toml:"trigger_timeout"`
}

type StreamConfig struct {
	BufferSize    int `yaml:"buffer_size" toml:"buffer_size"`
	MaxEventBytes int `yaml:"max_event_bytes" toml:"max_event_bytes"`
}

type UIConfig struct {
	Theme        string `yaml:"theme" toml:"theme"`
	ShowConsole  *bool  `yaml:"show_console" toml:"show_console"`
	ConsoleLines int    `yaml:"console_lines" toml:"console_lines"`
}

type LogConfig struct {
	Level string `yaml:"level" toml:"level"`
	File  string `yaml:"file" toml:"file"`
}
