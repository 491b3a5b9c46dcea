// Package config loads the labelcue configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mlsorensen/labelcue"
)

// Config is the root of labelcue.yaml.
type Config struct {
	Transport labelcue.TransportOptions `yaml:"transport"`
	Reactions ReactionsConfig           `yaml:"reactions"`
	Display   DisplayConfig             `yaml:"display"`
	Logging   LoggingConfig             `yaml:"logging"`
}

// ReactionsConfig points at the table file the training tool writes.
type ReactionsConfig struct {
	// File is the table path. Empty means the built-in table.
	File     string        `yaml:"file"`
	Watch    bool          `yaml:"watch"`
	Debounce time.Duration `yaml:"debounce"`
}

type DisplayConfig struct {
	Kind  string `yaml:"kind"` // term or gui
	Color bool   `yaml:"color"`
	Bell  bool   `yaml:"bell"`
	Title string `yaml:"title"`
}

type LoggingConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

const (
	DisplayTerm = "term"
	DisplayGUI  = "gui"
)

// DefaultConfig advertises over BLE and draws on the terminal.
func DefaultConfig() *Config {
	return &Config{
		Transport: labelcue.TransportOptions{
			Kind:      "nus",
			LocalName: "labelcue",
			BaudRate:  115200,
		},
		Reactions: ReactionsConfig{
			Watch:    true,
			Debounce: 250 * time.Millisecond,
		},
		Display: DisplayConfig{
			Kind:  DisplayTerm,
			Color: true,
			Title: "labelcue",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads path over the defaults. A missing file is not an error.
// Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing %s: %w", path, err)
			}
			// A relative table path is relative to the config file.
			if f := cfg.Reactions.File; f != "" && !filepath.IsAbs(f) {
				cfg.Reactions.File = filepath.Join(filepath.Dir(path), f)
			}
		}
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config dir: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks values that cannot be checked later without side effects.
func (c *Config) Validate() error {
	switch c.Display.Kind {
	case DisplayTerm, DisplayGUI:
	default:
		return fmt.Errorf("display.kind must be %q or %q, got %q", DisplayTerm, DisplayGUI, c.Display.Kind)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
	if c.Transport.Kind == "" {
		return errors.New("transport.kind is required")
	}
	// At most one complete line may wait for the gate.
	if c.Transport.Buffer < 0 || c.Transport.Buffer > 1 {
		return fmt.Errorf("transport.buffer must be 0 or 1, got %d", c.Transport.Buffer)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("LABELCUE_TRANSPORT"); v != "" {
		c.Transport.Kind = v
	}
	if v := os.Getenv("LABELCUE_SERIAL_PORT"); v != "" {
		c.Transport.Port = v
	}
	if v := os.Getenv("LABELCUE_REACTIONS"); v != "" {
		c.Reactions.File = v
	}
}
