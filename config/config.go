// Package config holds the conversion settings: playback shaping,
// terminal geometry, typography, and output options. Settings come from
// an optional YAML file with flag overrides applied by the CLI layer.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/gifcast/gifcast/frames"
	"github.com/gifcast/gifcast/render"
	"github.com/gifcast/gifcast/theme"
)

// Config is the full set of conversion settings.
type Config struct {
	// Playback shaping.
	Speed             float64 `mapstructure:"speed" yaml:"speed"`
	FPSCap            int     `mapstructure:"fps_cap" yaml:"fps_cap"`
	IdleTimeLimit     float64 `mapstructure:"idle_time_limit" yaml:"idle_time_limit"` // 0 uses the recording's own limit
	LastFrameDuration float64 `mapstructure:"last_frame_duration" yaml:"last_frame_duration"`

	// Terminal geometry; zero values take the recording's size.
	Cols int `mapstructure:"cols" yaml:"cols"`
	Rows int `mapstructure:"rows" yaml:"rows"`

	// Appearance. Theme is a built-in name or an inline comma-separated
	// hex palette; empty prefers the recording's embedded theme.
	Theme      string   `mapstructure:"theme" yaml:"theme"`
	FontSize   int      `mapstructure:"font_size" yaml:"font_size"`
	LineHeight float64  `mapstructure:"line_height" yaml:"line_height"`
	FontFiles  []string `mapstructure:"font_files" yaml:"font_files"`

	// Output.
	NoLoop  bool `mapstructure:"no_loop" yaml:"no_loop"`
	Workers int  `mapstructure:"workers" yaml:"workers"` // 0 uses all CPUs
}

// Validation errors.
var (
	ErrInvalidSpeed      = errors.New("config: speed must be positive")
	ErrInvalidFPSCap     = errors.New("config: fps_cap must be positive")
	ErrInvalidIdleLimit  = errors.New("config: idle_time_limit must not be negative")
	ErrInvalidDuration   = errors.New("config: last_frame_duration must not be negative")
	ErrInvalidSize       = errors.New("config: cols and rows must not be negative")
	ErrInvalidFontSize   = errors.New("config: font_size must be positive")
	ErrInvalidLineHeight = errors.New("config: line_height must be positive")
	ErrInvalidWorkers    = errors.New("config: workers must not be negative")
)

// Default returns the configuration used when no file and no flags are
// given.
func Default() Config {
	return Config{
		Speed:             frames.DefaultSpeed,
		FPSCap:            frames.DefaultFPSCap,
		LastFrameDuration: frames.DefaultLastFrameDuration,
		FontSize:          render.DefaultFontSize,
		LineHeight:        render.DefaultLineHeight,
	}
}

// Validate checks every setting and reports the first problem. A config
// that validates here can still fail later on missing font files; those
// surface when the renderer opens them.
func (c Config) Validate() error {
	if c.Speed <= 0 {
		return fmt.Errorf("%w, got %v", ErrInvalidSpeed, c.Speed)
	}
	if c.FPSCap <= 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidFPSCap, c.FPSCap)
	}
	if c.IdleTimeLimit < 0 {
		return fmt.Errorf("%w, got %v", ErrInvalidIdleLimit, c.IdleTimeLimit)
	}
	if c.LastFrameDuration < 0 {
		return fmt.Errorf("%w, got %v", ErrInvalidDuration, c.LastFrameDuration)
	}
	if c.Cols < 0 || c.Rows < 0 {
		return fmt.Errorf("%w, got %dx%d", ErrInvalidSize, c.Cols, c.Rows)
	}
	if c.FontSize <= 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidFontSize, c.FontSize)
	}
	if c.LineHeight <= 0 {
		return fmt.Errorf("%w, got %v", ErrInvalidLineHeight, c.LineHeight)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidWorkers, c.Workers)
	}
	if c.Theme != "" {
		if _, err := c.ResolveTheme(); err != nil {
			return err
		}
	}
	return nil
}

// ResolveTheme parses the Theme setting: inline palettes contain commas,
// anything else is looked up by name. Returns nil when unset.
func (c Config) ResolveTheme() (*theme.Theme, error) {
	if c.Theme == "" {
		return nil, nil
	}
	if strings.Contains(c.Theme, ",") {
		return theme.Parse(c.Theme)
	}
	return theme.Named(c.Theme)
}

// EffectiveWorkers resolves the worker count, defaulting to the CPU
// count.
func (c Config) EffectiveWorkers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}
