// Package config loads the settings of the dome binaries from a JSON file
// and DOME_* environment variables.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"reflect"
	"slices"
	"time"

	"github.com/go-viper/mapstructure/v2"

	"github.com/idralyuk/GradienTea-sub001/internal/anim"
	"github.com/idralyuk/GradienTea-sub001/internal/color"
	"github.com/idralyuk/GradienTea-sub001/internal/dmx"
	"github.com/idralyuk/GradienTea-sub001/internal/dome"
)

// ErrInvalidConfig is returned when a file cannot be decoded or a value is
// out of range.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Output controls how lighted faces are addressed.
type Output struct {
	StartChannel  int `mapstructure:"start_channel" json:"start_channel"`
	PixelsPerFace int `mapstructure:"pixels_per_face" json:"pixels_per_face"`
}

// Show controls playback.
type Show struct {
	FrameRate     int     `mapstructure:"frame_rate" json:"frame_rate"`
	PeriodSeconds float64 `mapstructure:"period_seconds" json:"period_seconds"`
	Animation     string  `mapstructure:"animation" json:"animation"`
	Compositor    string  `mapstructure:"compositor" json:"compositor"`
}

// Period is the length of one animation cycle.
func (s Show) Period() time.Duration {
	return time.Duration(s.PeriodSeconds * float64(time.Second))
}

// Server controls the SSH frame monitor.
type Server struct {
	Addr    string `mapstructure:"addr" json:"addr"`
	HostKey string `mapstructure:"host_key" json:"host_key"`
}

// Config is the full configuration.
type Config struct {
	Dome     dome.Spec `mapstructure:"dome" json:"dome"`
	Output   Output    `mapstructure:"output" json:"output"`
	Show     Show      `mapstructure:"show" json:"show"`
	Server   Server    `mapstructure:"server" json:"server"`
	LogLevel string    `mapstructure:"log_level" json:"log_level"`
}

// Default returns a 3V dome with four lighted layers, one pixel per face.
func Default() Config {
	return Config{
		Dome: dome.Spec{
			Frequency:      3,
			TotalLayers:    5,
			LightedLayers:  4,
			Radius:         10,
			MaxPanelHeight: 4,
			PanelThickness: 0.25,
		},
		Output: Output{StartChannel: 1, PixelsPerFace: 1},
		Show: Show{
			FrameRate:     40,
			PeriodSeconds: 10,
			Animation:     "rainbow",
			Compositor:    "average",
		},
		Server:   Server{Addr: ":2222", HostKey: "host_key"},
		LogLevel: "info",
	}
}

// envKeys maps environment variables to config paths.
var envKeys = map[string][]string{
	"DOME_FREQUENCY":        {"dome", "frequency"},
	"DOME_TOTAL_LAYERS":     {"dome", "total_layers"},
	"DOME_LIGHTED_LAYERS":   {"dome", "lighted_layers"},
	"DOME_RADIUS":           {"dome", "radius"},
	"DOME_MAX_PANEL_HEIGHT": {"dome", "max_panel_height"},
	"DOME_PANEL_THICKNESS":  {"dome", "panel_thickness"},
	"DOME_START_CHANNEL":    {"output", "start_channel"},
	"DOME_PIXELS_PER_FACE":  {"output", "pixels_per_face"},
	"DOME_FRAME_RATE":       {"show", "frame_rate"},
	"DOME_PERIOD_SECONDS":   {"show", "period_seconds"},
	"DOME_ANIMATION":        {"show", "animation"},
	"DOME_COMPOSITOR":       {"show", "compositor"},
	"DOME_ADDR":             {"server", "addr"},
	"DOME_HOST_KEY":         {"server", "host_key"},
	"DOME_LOG_LEVEL":        {"log_level"},
}

// Load reads path (skipped when empty), overlays the process environment
// and validates the result.
func Load(path string) (Config, error) {
	return LoadWithEnv(path, os.LookupEnv)
}

// LoadWithEnv is Load with an explicit environment lookup.
func LoadWithEnv(path string, lookup func(string) (string, bool)) (Config, error) {
	raw := map[string]any{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %v: %w", path, err, ErrInvalidConfig)
		}
	}
	applyEnv(raw, lookup)

	cfg := Default()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       rejectFractionalInts,
	})
	if err != nil {
		return Config{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("decode config: %v: %w", err, ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(raw map[string]any, lookup func(string) (string, bool)) {
	// PORT is honored for hosts that assign the listen port.
	if port, ok := lookup("PORT"); ok && port != "" {
		setPath(raw, []string{"server", "addr"}, ":"+port)
	}
	for env, path := range envKeys {
		if v, ok := lookup(env); ok {
			setPath(raw, path, v)
		}
	}
}

func setPath(raw map[string]any, path []string, v any) {
	m := raw
	for _, k := range path[:len(path)-1] {
		next, ok := m[k].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[k] = next
		}
		m = next
	}
	m[path[len(path)-1]] = v
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}

// Validate checks every section and reports all problems joined together.
func (c Config) Validate() error {
	var errs []error
	if err := c.Dome.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Output.StartChannel < 1 || c.Output.StartChannel > dmx.LastPixelChannel {
		errs = append(errs, fmt.Errorf("start_channel %d not in [1,%d]", c.Output.StartChannel, dmx.LastPixelChannel))
	}
	if c.Output.PixelsPerFace < 1 {
		errs = append(errs, fmt.Errorf("pixels_per_face %d must be positive", c.Output.PixelsPerFace))
	}
	if len(errs) == 0 {
		faces, _ := c.Dome.PredictedFaceCount(c.Dome.LightedLayers)
		if need, room := faces*c.Output.PixelsPerFace, dmx.Capacity(c.Output.StartChannel); need > room {
			errs = append(errs, fmt.Errorf("%d pixels do not fit in %d addresses from channel %d", need, room, c.Output.StartChannel))
		}
	}
	if c.Show.FrameRate < 1 || c.Show.FrameRate > 1000 {
		errs = append(errs, fmt.Errorf("frame_rate %d not in [1,1000]", c.Show.FrameRate))
	}
	if !(c.Show.PeriodSeconds > 0) {
		errs = append(errs, fmt.Errorf("period_seconds %g must be positive", c.Show.PeriodSeconds))
	}
	if !slices.Contains(anim.Names(), c.Show.Animation) {
		errs = append(errs, fmt.Errorf("animation %q not one of %v", c.Show.Animation, anim.Names()))
	}
	if _, err := color.CompositorByName(c.Show.Compositor); err != nil {
		errs = append(errs, fmt.Errorf("compositor %q not one of %v", c.Show.Compositor, color.CompositorNames()))
	}
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server addr is empty"))
	}
	if !logLevels[c.LogLevel] {
		errs = append(errs, fmt.Errorf("log_level %q unknown", c.LogLevel))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// rejectFractionalInts stops a JSON number such as 3.5 from being truncated
// into an int field.
func rejectFractionalInts(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.Float64 {
		return data, nil
	}
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if v := data.(float64); v != math.Trunc(v) {
			return nil, fmt.Errorf("%v is not an integer", v)
		}
	}
	return data, nil
}
