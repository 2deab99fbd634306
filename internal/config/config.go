// Package config loads the application configuration: embedded defaults
// overlaid by an optional YAML file.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/iburimskiy/ambient-canvas/internal/canvas"
	"github.com/iburimskiy/ambient-canvas/internal/scene"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all configuration parameters.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Scene     SceneConfig     `yaml:"scene"`
	Audio     AudioConfig     `yaml:"audio"`
	Prefs     PrefsConfig     `yaml:"prefs"`
	Theme     ThemeConfig     `yaml:"theme"`
	UI        UIConfig        `yaml:"ui"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WindowConfig holds desktop window settings.
type WindowConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	TPS       int    `yaml:"tps"`
	Resizable bool   `yaml:"resizable"`
}

// SceneConfig holds the startup scene.
type SceneConfig struct {
	InitialMode string `yaml:"initial_mode"`
	Seed        uint64 `yaml:"seed"` // 0 = seed from the clock
}

// AudioConfig holds ambience settings.
type AudioConfig struct {
	Source         string  `yaml:"source"`          // URL or local file
	PreviewSeconds float64 `yaml:"preview_seconds"` // Length of a volume preview
}

// PrefsConfig locates the persisted preferences.
type PrefsConfig struct {
	Path string `yaml:"path"` // Empty = user config directory
}

// ThemeConfig holds the swatch palette.
type ThemeConfig struct {
	Swatches []string `yaml:"swatches"` // #rrggbb
	Primary  int      `yaml:"primary"`  // Index of the initially active swatch
}

// UIConfig holds page control tuning.
type UIConfig struct {
	TiltMaxDegrees  float64 `yaml:"tilt_max_degrees"`
	RevealThreshold float64 `yaml:"reveal_threshold"` // Visible share that reveals a section
	RevealDelayMS   int     `yaml:"reveal_delay_ms"`  // Skill bar delay after reveal
}

// TelemetryConfig holds frame trace settings.
type TelemetryConfig struct {
	TracePath string `yaml:"trace_path"` // Empty = no trace
}

// DerivedConfig holds values parsed from the raw fields.
type DerivedConfig struct {
	Mode        scene.Mode
	Preview     time.Duration
	RevealDelay time.Duration
	Swatches    []color.NRGBA
}

// Load reads the embedded defaults, overlays the file at path when path is
// non-empty and validates the result.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field and recomputes Derived. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		invalid("window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.TPS <= 0 {
		invalid("window tps %d", c.Window.TPS)
	}

	mode, err := scene.ParseMode(c.Scene.InitialMode)
	if err != nil {
		invalid("scene initial_mode: %v", err)
	}

	if c.Audio.Source == "" {
		invalid("audio source is empty")
	}
	if c.Audio.PreviewSeconds <= 0 {
		invalid("audio preview_seconds %v", c.Audio.PreviewSeconds)
	}

	swatches := make([]color.NRGBA, 0, len(c.Theme.Swatches))
	for _, s := range c.Theme.Swatches {
		col, ok := canvas.Hex(s)
		if !ok {
			invalid("theme swatch %q", s)
			continue
		}
		swatches = append(swatches, col)
	}
	if len(c.Theme.Swatches) > 0 && (c.Theme.Primary < 0 || c.Theme.Primary >= len(c.Theme.Swatches)) {
		invalid("theme primary %d out of %d swatches", c.Theme.Primary, len(c.Theme.Swatches))
	}

	if c.UI.TiltMaxDegrees < 0 || c.UI.TiltMaxDegrees > 90 {
		invalid("ui tilt_max_degrees %v", c.UI.TiltMaxDegrees)
	}
	if c.UI.RevealThreshold <= 0 || c.UI.RevealThreshold > 1 {
		invalid("ui reveal_threshold %v", c.UI.RevealThreshold)
	}
	if c.UI.RevealDelayMS < 0 {
		invalid("ui reveal_delay_ms %d", c.UI.RevealDelayMS)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	c.Derived = DerivedConfig{
		Mode:        mode,
		Preview:     time.Duration(c.Audio.PreviewSeconds * float64(time.Second)),
		RevealDelay: time.Duration(c.UI.RevealDelayMS) * time.Millisecond,
		Swatches:    swatches,
	}
	return nil
}

// WriteYAML saves the current config to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
