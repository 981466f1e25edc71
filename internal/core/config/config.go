// Package config handles configuration loading and validation for devteam.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	GitPath  string       `yaml:"git_path"`
	TmuxPath string       `yaml:"tmux_path"`
	Ignore   []string     `yaml:"ignore"`
	Agents   AgentsConfig `yaml:"agents"`
	Review   ReviewConfig `yaml:"review"`
	TUI      TUIConfig    `yaml:"tui"`
	DataDir  string       `yaml:"-"` // set by caller, not from config file
}

// AgentsConfig selects the default agent tool and carries per-tool launch
// overrides.
type AgentsConfig struct {
	Default  string                  `yaml:"default"`
	Profiles map[string]AgentProfile `yaml:"profiles"`
}

// AgentProfile overrides how a tool's binary is launched.
type AgentProfile struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
}

// ReviewConfig tunes comment delivery.
type ReviewConfig struct {
	// SettleDelayMS is the pause between injecting a prompt and re-reading
	// the pane to verify it arrived.
	SettleDelayMS int `yaml:"settle_delay_ms"`
	// CaptureLines is how much scrollback to request when classifying a
	// session's agent.
	CaptureLines int `yaml:"capture_lines"`
}

// TUIConfig holds presentation settings.
type TUIConfig struct {
	Theme string `yaml:"theme"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		GitPath:  "git",
		TmuxPath: "tmux",
		Agents: AgentsConfig{
			Default:  "claude",
			Profiles: map[string]AgentProfile{},
		},
		Review: ReviewConfig{
			SettleDelayMS: 500,
			CaptureLines:  2000,
		},
		TUI: TUIConfig{
			Theme: "tokyo-night",
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided
// dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.GitPath == "" {
		c.GitPath = defaults.GitPath
	}
	if c.TmuxPath == "" {
		c.TmuxPath = defaults.TmuxPath
	}
	if c.Agents.Default == "" {
		c.Agents.Default = defaults.Agents.Default
	}
	if c.Agents.Profiles == nil {
		c.Agents.Profiles = map[string]AgentProfile{}
	}
	if c.Review.SettleDelayMS == 0 {
		c.Review.SettleDelayMS = defaults.Review.SettleDelayMS
	}
	if c.Review.CaptureLines == 0 {
		c.Review.CaptureLines = defaults.Review.CaptureLines
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.GitPath == "" {
		return fmt.Errorf("git_path cannot be empty")
	}

	if c.TmuxPath == "" {
		return fmt.Errorf("tmux_path cannot be empty")
	}

	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	if c.Review.SettleDelayMS < 0 {
		return fmt.Errorf("review.settle_delay_ms cannot be negative")
	}

	if c.Review.CaptureLines < 0 {
		return fmt.Errorf("review.capture_lines cannot be negative")
	}

	if c.Agents.Default == "" {
		return fmt.Errorf("agents.default cannot be empty")
	}

	for i, pat := range c.Ignore {
		if !doublestar.ValidatePattern(pat) {
			return fmt.Errorf("ignore[%d]: invalid pattern %q", i, pat)
		}
	}

	return nil
}

// StateFile returns the path to the UI state snapshot.
func (c *Config) StateFile() string {
	return filepath.Join(c.DataDir, "state.json")
}
