// Package config loads the runtime configuration from a TOML file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/hubastard/groveui/engine/ui"
	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Window WindowConfig `toml:"window"`
	UI     UIConfig     `toml:"ui"`
	Paths  PathsConfig  `toml:"paths"`
	Font   FontConfig   `toml:"font"`
	Debug  bool         `toml:"debug"`
}

type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	VSync  bool   `toml:"vsync"`
}

// UIConfig durations are milliseconds.
type UIConfig struct {
	Scale           float64 `toml:"scale"`
	Language        string  `toml:"language"`
	TurboDelayMs    float64 `toml:"turbo_delay_ms"`
	TurboIntervalMs float64 `toml:"turbo_interval_ms"`
	CursorBlinkMs   float64 `toml:"cursor_blink_ms"`
}

// PathsConfig directories are relative to the working directory.
type PathsConfig struct {
	UI           string `toml:"ui"`
	Scripts      string `toml:"scripts"`
	Localization string `toml:"localization"`
	Fonts        string `toml:"fonts"`
	Textures     string `toml:"textures"`
	Shaders      string `toml:"shaders"`
}

type FontConfig struct {
	File string  `toml:"file"`
	Size float64 `toml:"size"`
}

func Default() Config {
	d := ui.DefaultConfig()
	return Config{
		Window: WindowConfig{
			Title:  "groveui",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		UI: UIConfig{
			Scale:           d.Scale,
			Language:        "auto",
			TurboDelayMs:    d.TurboDelay,
			TurboIntervalMs: d.TurboInterval,
			CursorBlinkMs:   d.CursorBlink,
		},
		Paths: PathsConfig{
			UI:           "assets/ui",
			Scripts:      "assets/scripts",
			Localization: "assets/localization.json",
			Fonts:        "assets/fonts",
			Textures:     "assets/textures",
			Shaders:      "assets/shaders",
		},
		Font: FontConfig{Size: 16},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	if err := Parse(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML into cfg and validates the result.
func Parse(data []byte, cfg *Config) error {
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return cfg.Validate()
}

// Validate checks value ranges. Invalid values are reset to their defaults
// and reported together.
func (c *Config) Validate() error {
	d := Default()
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
		c.Window.Width, c.Window.Height = d.Window.Width, d.Window.Height
	}
	if c.UI.Scale <= 0 {
		errs = append(errs, fmt.Errorf("ui scale %v must be positive", c.UI.Scale))
		c.UI.Scale = d.UI.Scale
	}
	for _, f := range []struct {
		name string
		v    *float64
		def  float64
	}{
		{"turbo_delay_ms", &c.UI.TurboDelayMs, d.UI.TurboDelayMs},
		{"turbo_interval_ms", &c.UI.TurboIntervalMs, d.UI.TurboIntervalMs},
		{"cursor_blink_ms", &c.UI.CursorBlinkMs, d.UI.CursorBlinkMs},
	} {
		if *f.v <= 0 {
			errs = append(errs, fmt.Errorf("%s %v must be positive", f.name, *f.v))
			*f.v = f.def
		}
	}
	if c.Font.Size <= 0 {
		errs = append(errs, fmt.Errorf("font size %v must be positive", c.Font.Size))
		c.Font.Size = d.Font.Size
	}
	return errors.Join(errs...)
}

// Manager returns the UI manager tunables.
func (c Config) Manager() ui.Config {
	return ui.Config{
		Scale:         c.UI.Scale,
		TurboDelay:    c.UI.TurboDelayMs,
		TurboInterval: c.UI.TurboIntervalMs,
		CursorBlink:   c.UI.CursorBlinkMs,
	}
}

// DebugFromEnv reports whether GROVEUI_DEBUG asks for debug logging.
func DebugFromEnv() bool {
	v := os.Getenv("GROVEUI_DEBUG")
	return v != "" && v != "0" && v != "false"
}
