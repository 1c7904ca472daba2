package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/glimpse-go/pkg/glimpse"
	"github.com/ukaji3/glimpse-go/pkg/glimpse/colorscale"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "glimpse.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	require.NoError(t, cfg.Validate())
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
log-level: debug
mode: verbose
identity-columns: 3
legend-column: sector
chart-kind: xy
palette:
  name: RdBu
  classes: 7
  reversed: false
scope: across-year
symmetric: true
render:
  width: 600
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, glimpse.ModeVerbose, cfg.LoadOptions().Mode)
	assert.Equal(t, 3, cfg.IdentityColumns)
	assert.Equal(t, "sector", cfg.LegendColumn)
	assert.Equal(t, "xy", cfg.ChartKind)
	assert.Equal(t, "RdBu", cfg.Palette.Name)
	assert.Equal(t, 7, cfg.Palette.Classes)
	assert.False(t, cfg.Palette.Reversed)
	assert.Equal(t, colorscale.ScopeAcrossYear, cfg.Scope)
	assert.True(t, cfg.Symmetric)
	assert.Equal(t, 600.0, cfg.Render.Width)
	// Unset keys keep their defaults.
	assert.Equal(t, Default().Render.Height, cfg.Render.Height)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read config")

	_, err = Load(writeConfig(t, "identity-columns: [1"))
	assert.ErrorContains(t, err, "parse config")

	_, err = Load(writeConfig(t, "scope: sideways"))
	assert.ErrorContains(t, err, "parse config")

	_, err = Load(writeConfig(t, "identity-columns: -1\nchart-kind: pie\n"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "identity-columns")
	assert.ErrorContains(t, err, "pie")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"bad mode", func(c *Config) { c.Mode = "fast" }, false},
		{"no palette", func(c *Config) { c.Palette.Name = "" }, false},
		{"too few classes", func(c *Config) { c.Palette.Classes = 2 }, false},
		{"zero render", func(c *Config) { c.Render.Height = 0 }, false},
		{"box kind", func(c *Config) { c.ChartKind = "box" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			if tt.ok {
				assert.NoError(t, cfg.Validate())
			} else {
				assert.Error(t, cfg.Validate())
			}
		})
	}
}

func TestSlogLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	} {
		cfg := &Config{LogLevel: in}
		assert.Equal(t, want, cfg.SlogLevel(), in)
	}
}
