package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idralyuk/GradienTea-sub001/internal/dome"
)

func noEnv(string) (string, bool) { return "", false }

func envOf(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dome.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
	assert.Equal(t, 10*time.Second, Default().Show.Period())
}

func TestLoadDefaultsOnly(t *testing.T) {
	cfg, err := LoadWithEnv("", noEnv)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `{
		"dome": {"frequency": 4, "total_layers": 6, "lighted_layers": 5},
		"output": {"pixels_per_face": 2},
		"show": {"animation": "pulse", "compositor": "additive"},
		"log_level": "debug"
	}`)
	cfg, err := LoadWithEnv(path, noEnv)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Dome.Frequency)
	assert.Equal(t, 6, cfg.Dome.TotalLayers)
	assert.Equal(t, 5, cfg.Dome.LightedLayers)
	assert.Equal(t, 10.0, cfg.Dome.Radius) // untouched default
	assert.Equal(t, 2, cfg.Output.PixelsPerFace)
	assert.Equal(t, 1, cfg.Output.StartChannel)
	assert.Equal(t, "pulse", cfg.Show.Animation)
	assert.Equal(t, "additive", cfg.Show.Compositor)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `{"dome": {"frequency": 4}, "server": {"addr": ":9000"}}`)
	cfg, err := LoadWithEnv(path, envOf(map[string]string{
		"DOME_FREQUENCY":      "2",
		"DOME_TOTAL_LAYERS":   "4",
		"DOME_LIGHTED_LAYERS": "3",
		"DOME_RADIUS":         "7.5",
		"DOME_ANIMATION":      "noise",
		"PORT":                "2022",
	}))
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Dome.Frequency)
	assert.Equal(t, 4, cfg.Dome.TotalLayers)
	assert.Equal(t, 7.5, cfg.Dome.Radius)
	assert.Equal(t, "noise", cfg.Show.Animation)
	assert.Equal(t, ":2022", cfg.Server.Addr)

	// An explicit DOME_ADDR wins over PORT.
	cfg, err = LoadWithEnv("", envOf(map[string]string{"PORT": "2022", "DOME_ADDR": "127.0.0.1:22"}))
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:22", cfg.Server.Addr)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
	}{
		{"bad json", `{"dome":`, nil},
		{"unknown key", `{"dome": {"frequncy": 3}}`, nil},
		{"wrong type", `{"dome": {"frequency": "lots"}}`, nil},
		{"fractional frequency", `{"dome": {"frequency": 3.5}}`, nil},
		{"fractional pixels per face", `{"output": {"pixels_per_face": 1.2}}`, nil},
		{"fractional env layers", `{}`, map[string]string{"DOME_TOTAL_LAYERS": "4.5"}},
		{"invalid dome", `{"dome": {"radius": -1}}`, nil},
		{"layers past sphere", `{"dome": {"total_layers": 10}}`, nil},
		{"bad start channel", `{"output": {"start_channel": 511}}`, nil},
		{"too many pixels", `{"output": {"pixels_per_face": 10}}`, nil},
		{"unknown animation", `{"show": {"animation": "strobe"}}`, nil},
		{"unknown compositor", `{"show": {"compositor": "multiply"}}`, nil},
		{"zero period", `{"show": {"period_seconds": 0}}`, nil},
		{"zero frame rate", `{}`, map[string]string{"DOME_FRAME_RATE": "0"}},
		{"bad log level", `{"log_level": "loud"}`, nil},
		{"empty addr", `{"server": {"addr": ""}}`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadWithEnv(writeConfig(t, tt.body), envOf(tt.env))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoadAcceptsWholeFloats(t *testing.T) {
	cfg, err := LoadWithEnv(writeConfig(t, `{"dome": {"frequency": 4.0}, "show": {"period_seconds": 2.5}}`), envOf(nil))
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Dome.Frequency)
	assert.InDelta(t, 2.5, cfg.Show.Period().Seconds(), 1e-9)
}

func TestValidateKeepsDomeSentinel(t *testing.T) {
	cfg := Default()
	cfg.Dome.Frequency = 0
	err := cfg.Validate()
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.ErrorIs(t, err, dome.ErrInvalidSpec)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadWithEnv(filepath.Join(t.TempDir(), "nope.json"), noEnv)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
