// Package config handles configuration loading and validation for nexusdl.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// secondsToDuration converts a fractional seconds value to a Duration.
func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// Default values mirror the delays the tool shipped with; they are tuned
// for a browser on a normal connection and can all be overridden per run.
const (
	DefaultBaseURL     = "https://www.nexusmods.com"
	DefaultGameDomain  = "cyberpunk2077"
	DefaultBatchSize   = 50
	DefaultConfidence  = 0.8
	DefaultProgressLog = "downloaded_mods.txt"
	DefaultTemplate    = "templates/slow_download_button.png"
)

// Capture region captured around a recorded click when bootstrapping a
// vision template.
const (
	DefaultTemplateWidth  = 200
	DefaultTemplateHeight = 100
)

// Config holds the application configuration. It is constructed once at
// startup (file values overlaid by CLI flags) and never mutated afterwards;
// every component receives it explicitly.
type Config struct {
	BaseURL     string  `yaml:"base_url"`
	GameDomain  string  `yaml:"game"`
	ProgressLog string  `yaml:"progress_file"`
	AutoClose   *bool   `yaml:"auto_close"` // nil = default true
	BatchSize   int     `yaml:"batch_size"`
	ForceFocus  bool    `yaml:"force_focus"`
	Detect      bool    `yaml:"detect"` // vision-based target acquisition
	Template    string  `yaml:"template"`
	Confidence  float64 `yaml:"confidence"`

	Delays Delays `yaml:"delays"`
}

// Delays are the fixed unconditional waits between automation steps,
// expressed in fractional seconds to match the CLI flags. There are no
// condition-driven timeouts anywhere; these are it.
type Delays struct {
	BeforeClick float64 `yaml:"before_click"` // page load settle
	Download    float64 `yaml:"download"`     // let a download start before closing
	BetweenMods float64 `yaml:"between_mods"`
	TabClose    float64 `yaml:"tab_close"`    // between batched Ctrl+W presses
	BrowserOpen float64 `yaml:"browser_open"` // settle after reopening the browser
}

// Durations for each delay, for callers that sleep.
func (d Delays) BeforeClickD() time.Duration { return secondsToDuration(d.BeforeClick) }
func (d Delays) DownloadD() time.Duration    { return secondsToDuration(d.Download) }
func (d Delays) BetweenModsD() time.Duration { return secondsToDuration(d.BetweenMods) }
func (d Delays) TabCloseD() time.Duration    { return secondsToDuration(d.TabClose) }
func (d Delays) BrowserOpenD() time.Duration { return secondsToDuration(d.BrowserOpen) }

// DefaultConfig returns a Config with the stock delays and paths.
func DefaultConfig() Config {
	return Config{
		BaseURL:     DefaultBaseURL,
		GameDomain:  DefaultGameDomain,
		ProgressLog: DefaultProgressLog,
		BatchSize:   DefaultBatchSize,
		Template:    DefaultTemplate,
		Confidence:  DefaultConfidence,
		Delays: Delays{
			BeforeClick: 2.0,
			Download:    6.0,
			BetweenMods: 0.5,
			TabClose:    0.3,
			BrowserOpen: 5.0,
		},
	}
}

// AutoCloseEnabled resolves the tri-state auto_close field (default true).
func (c *Config) AutoCloseEnabled() bool {
	return c.AutoClose == nil || *c.AutoClose
}

// Load reads configuration from the given path. A missing file is not an
// error; defaults are returned so the tool works with zero setup.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults fills zero values left by a sparse config file.
func (c *Config) applyDefaults() {
	def := DefaultConfig()

	if c.BaseURL == "" {
		c.BaseURL = def.BaseURL
	}
	if c.GameDomain == "" {
		c.GameDomain = def.GameDomain
	}
	if c.ProgressLog == "" {
		c.ProgressLog = def.ProgressLog
	}
	if c.BatchSize == 0 {
		c.BatchSize = def.BatchSize
	}
	if c.Template == "" {
		c.Template = def.Template
	}
	if c.Confidence == 0 {
		c.Confidence = def.Confidence
	}
	if c.Delays.BeforeClick == 0 {
		c.Delays.BeforeClick = def.Delays.BeforeClick
	}
	if c.Delays.Download == 0 {
		c.Delays.Download = def.Delays.Download
	}
	if c.Delays.BetweenMods == 0 {
		c.Delays.BetweenMods = def.Delays.BetweenMods
	}
	if c.Delays.TabClose == 0 {
		c.Delays.TabClose = def.Delays.TabClose
	}
	if c.Delays.BrowserOpen == 0 {
		c.Delays.BrowserOpen = def.Delays.BrowserOpen
	}
}
