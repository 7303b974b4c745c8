// Package config loads the subrename configuration file and scans target
// directories.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/mydehq/subrename/internal/types"
	"gopkg.in/yaml.v3"
)

const (
	appName    = "subrename"
	configFile = "config.yml"
)

// GetDefaults returns the built-in configuration
func GetDefaults() types.Config {
	return types.Config{
		Language: types.LanguageConfig{
			Enabled:  true,
			Detect:   true,
			MaxBytes: 1 << 20,
		},
		Remote: types.RemoteConfig{
			Host:        "localhost",
			Port:        22,
			KnownHosts:  "~/.ssh/known_hosts",
			Timeout:     15 * time.Second,
			DialRetries: 0,
		},
	}
}

// DefaultPath returns the location of the global config file
// (~/.config/subrename/config.yml on Linux).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, appName, configFile), nil
}

// Load reads the config file at path on top of the defaults. A missing file
// is not an error.
func Load(path string) (*types.Config, error) {
	cfg := GetDefaults()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &cfg, nil
	}
	if err != nil {
		return nil, types.ErrConfig{Path: path, Err: err}
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, types.ErrConfig{Path: path, Err: err}
	}
	if err := Validate(&cfg); err != nil {
		return nil, types.ErrConfig{Path: path, Err: err}
	}
	return &cfg, nil
}

// Save writes cfg to path, creating parent directories.
func Save(path string, cfg *types.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	// The file may hold a password.
	return os.WriteFile(path, data, 0o600)
}

// Validate checks value ranges.
func Validate(cfg *types.Config) error {
	if cfg.Remote.Port < 1 || cfg.Remote.Port > 65535 {
		return fmt.Errorf("remote.port %d out of range", cfg.Remote.Port)
	}
	if cfg.Remote.DialRetries < 0 {
		return fmt.Errorf("remote.dial_retries must not be negative")
	}
	if cfg.Language.MaxBytes <= 0 {
		return fmt.Errorf("language.max_bytes must be positive")
	}
	return nil
}
