package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath returns the per-user config file location.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: locate config dir: %w", err)
	}
	return filepath.Join(dir, "gifcast", "config.yaml"), nil
}

// Load reads configuration from path, or from DefaultConfigPath when
// path is empty. A missing file is not an error; defaults apply.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return Config{}, err
		}
		path = defaultPath
	}

	cfg := Default()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("speed", cfg.Speed)
	v.SetDefault("fps_cap", cfg.FPSCap)
	v.SetDefault("idle_time_limit", cfg.IdleTimeLimit)
	v.SetDefault("last_frame_duration", cfg.LastFrameDuration)
	v.SetDefault("cols", cfg.Cols)
	v.SetDefault("rows", cfg.Rows)
	v.SetDefault("theme", cfg.Theme)
	v.SetDefault("font_size", cfg.FontSize)
	v.SetDefault("line_height", cfg.LineHeight)
	v.SetDefault("font_files", cfg.FontFiles)
	v.SetDefault("no_loop", cfg.NoLoop)
	v.SetDefault("workers", cfg.Workers)

	if err := v.ReadInConfig(); err != nil {
		_, notFound := err.(viper.ConfigFileNotFoundError)
		missing := notFound || os.IsNotExist(err)
		if !missing || explicit {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// WriteDefault writes a starter config file with all defaults spelled
// out. Refuses to clobber an existing file unless overwrite is set.
func WriteDefault(path string, overwrite bool) (string, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return "", err
		}
		path = defaultPath
	}

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("config: %s already exists", path)
		}
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
