package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Hotkey   HotkeyConfig `yaml:"hotkey"`
	Audio    AudioConfig  `yaml:"audio"`
	Inject   InjectConfig `yaml:"inject"`
	STT      STTConfig    `yaml:"stt"`
	LogLevel string       `yaml:"log_level"`
}

// HotkeyConfig holds hotkey-related settings.
type HotkeyConfig struct {
	Keys []string `yaml:"keys"`
	Mode string   `yaml:"mode"` // "hold" or "toggle"
}

// AudioConfig holds audio capture settings.
type AudioConfig struct {
	SampleRate uint32 `yaml:"sample_rate"`
	Channels   uint32 `yaml:"channels"`
}

// InjectConfig holds text injection settings. The settle intervals are
// empirical waits around window-manager focus transfers; they are exposed
// here precisely because no universal value exists.
type InjectConfig struct {
	Method        string `yaml:"method"`          // "auto" (type, fall back to paste), "type" (no fallback), or "paste"
	FocusSettleMS int    `yaml:"focus_settle_ms"` // wait after releasing focus, before typing
	PasteSettleMS int    `yaml:"paste_settle_ms"` // wait between clipboard write and paste combo
	PasteModifier string `yaml:"paste_modifier"`  // empty = platform default
}

// STTConfig holds speech-to-text backend settings.
type STTConfig struct {
	Backend  string `yaml:"backend"` // "whisper-api"
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"` // empty = OpenAI
	Model    string `yaml:"model"`
	Language string `yaml:"language"` // empty = auto-detect
}

// DefaultConfigDir returns the default config directory path.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "voxtype")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// Default returns a Config with sensible default values. The STT API key
// defaults to the OPENAI_API_KEY environment variable.
func Default() *Config {
	return &Config{
		Hotkey: HotkeyConfig{
			Keys: []string{"ctrl", "shift", "r"},
			Mode: "hold",
		},
		Audio: AudioConfig{
			SampleRate: 16000,
			Channels:   1,
		},
		Inject: InjectConfig{
			Method:        "auto",
			FocusSettleMS: 50,
			PasteSettleMS: 100,
		},
		STT: STTConfig{
			Backend: "whisper-api",
			APIKey:  os.Getenv("OPENAI_API_KEY"),
			Model:   "whisper-1",
		},
		LogLevel: "info",
	}
}

// Load reads and parses a YAML config file. Missing fields are filled
// with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// Validate checks the config for invalid values.
func (c *Config) Validate() error {
	if len(c.Hotkey.Keys) == 0 {
		return fmt.Errorf("hotkey.keys must not be empty")
	}

	switch c.Hotkey.Mode {
	case "hold", "toggle":
	default:
		return fmt.Errorf("hotkey.mode must be \"hold\" or \"toggle\", got %q", c.Hotkey.Mode)
	}

	if c.Audio.SampleRate == 0 {
		return fmt.Errorf("audio.sample_rate must be > 0")
	}

	if c.Audio.Channels == 0 {
		return fmt.Errorf("audio.channels must be > 0")
	}

	switch c.Inject.Method {
	case "auto", "type", "paste":
	default:
		return fmt.Errorf("inject.method must be \"auto\", \"type\", or \"paste\", got %q", c.Inject.Method)
	}

	if c.Inject.FocusSettleMS < 0 {
		return fmt.Errorf("inject.focus_settle_ms must be >= 0")
	}

	if c.Inject.PasteSettleMS < 0 {
		return fmt.Errorf("inject.paste_settle_ms must be >= 0")
	}

	if c.STT.Backend != "whisper-api" {
		return fmt.Errorf("stt.backend must be \"whisper-api\", got %q", c.STT.Backend)
	}

	if c.STT.APIKey == "" {
		return fmt.Errorf("stt.api_key must be set (or export OPENAI_API_KEY)")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn, or error, got %q", c.LogLevel)
	}

	return nil
}
