package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/philipparndt/workdraw/pkg/sketch"
	"gopkg.in/yaml.v3"
)

// LogConfig controls log output
type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// WindowConfig controls the initial size of the desktop window
type WindowConfig struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

// Config is the complete application configuration
type Config struct {
	Sketch sketch.Config `yaml:"sketch"`
	Log    LogConfig     `yaml:"log"`
	Window WindowConfig  `yaml:"window"`
}

// Default returns the configuration used when no file is given
func Default() Config {
	return Config{
		Sketch: sketch.DefaultConfig(),
		Log:    LogConfig{Level: "info", Pretty: true},
		Window: WindowConfig{Width: 1200, Height: 800},
	}
}

// Load reads a YAML configuration file on top of the defaults. An empty path
// returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := Parse(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML into cfg, rejecting unknown keys, and validates the result
func Parse(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return cfg.Validate()
}

// Validate reports all invalid settings
func (c Config) Validate() error {
	var errs []error
	if err := c.Sketch.Validate(); err != nil {
		errs = append(errs, err)
	}
	switch c.Log.Level {
	case "trace", "debug", "info", "warn", "error", "disabled":
	default:
		errs = append(errs, fmt.Errorf("unknown log level %q", c.Log.Level))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %vx%v", c.Window.Width, c.Window.Height))
	}
	return errors.Join(errs...)
}
