// Package config loads the client configuration from an optional YAML
// file, applies environment overrides, and fills defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultAPIBaseURL is the production notes API.
const DefaultAPIBaseURL = "https://notesapi-7r9d.onrender.com"

// Environment overrides, applied after the file.
const (
	EnvAPIBaseURL = "NOTABLY_API_URL"
	EnvTimeout    = "NOTABLY_TIMEOUT"
	EnvDataDir    = "NOTABLY_DATA_DIR"
)

// Config holds the application settings. Loaded once at startup and
// treated as immutable.
type Config struct {
	APIBaseURL     string        `yaml:"api_base_url"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	DataDir        string        `yaml:"data_dir"`
}

// NotesPath is where the guest note collection lives.
func (c Config) NotesPath() string {
	return filepath.Join(c.DataDir, "guest_notes.json")
}

// KeychainDir is where credentials live. Separate from note content: the
// two persistence classes never share storage.
func (c Config) KeychainDir() string {
	return filepath.Join(c.DataDir, "keychain")
}

// DefaultPath returns the expected config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, "notably", "config.yaml"), nil
}

// Load reads the file at path if it exists, then applies environment
// overrides and defaults. A missing file is not an error; a malformed one
// is.
func Load(path string) (Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults only.
		case err != nil:
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if v := os.Getenv(EnvAPIBaseURL); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", EnvTimeout, err)
		}
		cfg.RequestTimeout = d
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.DataDir = v
	}

	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultAPIBaseURL
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 15 * time.Second
	}
	if cfg.DataDir == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return Config{}, fmt.Errorf("failed to locate config directory: %w", err)
		}
		cfg.DataDir = filepath.Join(dir, "notably")
	}

	return cfg, nil
}
