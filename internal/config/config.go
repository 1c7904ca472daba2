// Package config loads the glimpse YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ukaji3/glimpse-go/pkg/glimpse"
	"github.com/ukaji3/glimpse-go/pkg/glimpse/colorscale"
	"github.com/ukaji3/glimpse-go/pkg/glimpse/models"
	"github.com/ukaji3/glimpse-go/pkg/glimpse/palette"
)

// RenderConfig sizes rendered images, in points.
type RenderConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Config holds the settings shared by every subcommand.
type Config struct {
	LogLevel string `yaml:"log-level"` // debug, info, warn, error (default "info")
	Mode     string `yaml:"mode"`      // light, standard, verbose

	// IdentityColumns is the number of leading qualifier columns
	// (scenario, region, ...) in a result table.
	IdentityColumns int    `yaml:"identity-columns"`
	LegendColumn    string `yaml:"legend-column,omitempty"`
	ChartKind       string `yaml:"chart-kind"`

	Palette   models.PaletteID `yaml:"palette"`
	Scope     colorscale.Scope `yaml:"scope"`
	Symmetric bool             `yaml:"symmetric"`

	Render RenderConfig `yaml:"render"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel:        "info",
		Mode:            string(glimpse.ModeStandard),
		IdentityColumns: 2,
		ChartKind:       string(models.KindCategory),
		Palette:         palette.DefaultID,
		Scope:           colorscale.ScopeLocal,
		Render:          RenderConfig{Width: 432, Height: 288},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	var errs []error
	if c.IdentityColumns < 0 {
		errs = append(errs, fmt.Errorf("identity-columns must be >= 0, got %d", c.IdentityColumns))
	}
	if _, ok := glimpse.ParseMode(c.Mode); !ok {
		errs = append(errs, fmt.Errorf("mode %q must be light, standard, or verbose", c.Mode))
	}
	if _, err := models.ParseChartKind(c.ChartKind); err != nil {
		errs = append(errs, err)
	}
	if c.Palette.Name == "" {
		errs = append(errs, errors.New("palette name is required"))
	}
	if c.Palette.Classes < 3 {
		errs = append(errs, fmt.Errorf("palette classes must be >= 3, got %d", c.Palette.Classes))
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		errs = append(errs, fmt.Errorf("render size must be positive, got %gx%g", c.Render.Width, c.Render.Height))
	}
	return errors.Join(errs...)
}

// SlogLevel maps the LogLevel string to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LoadOptions returns the loading options selected by the configuration.
func (c *Config) LoadOptions() glimpse.Options {
	mode, ok := glimpse.ParseMode(c.Mode)
	if !ok {
		mode = glimpse.ModeStandard
	}
	return glimpse.Options{Mode: mode}
}
