// Package config provides the Config struct and loader for .verdict.yaml
// project-level configuration files, with VERDICT_* environment variables
// layered on top.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Default values for configuration. These are the single source of truth —
// New() references them and no other code should duplicate them.
const (
	DefaultBaseURL        = "https://api.verdicthq.com"
	DefaultRequestTimeout = 30 * time.Second
	DefaultPollInterval   = 3 * time.Second

	DefaultMode = "deep"

	DefaultVaultDirName   = "vault"
	DefaultSessionDirName = "sessions"
)

// APIConfig holds backend connection settings.
type APIConfig struct {
	BaseURL        string        `yaml:"base_url,omitempty" env:"BASE_URL"`
	RequestTimeout time.Duration `yaml:"request_timeout,omitempty" env:"REQUEST_TIMEOUT"`
}

// PollConfig holds change-detection polling settings.
type PollConfig struct {
	Interval time.Duration `yaml:"interval,omitempty" env:"POLL_INTERVAL"`
}

// PathsConfig holds local storage directories.
type PathsConfig struct {
	Vault    string `yaml:"vault,omitempty" env:"VAULT_DIR"`
	Sessions string `yaml:"sessions,omitempty" env:"SESSION_DIR"`
}

// DefaultsConfig holds default submission parameters.
type DefaultsConfig struct {
	Mode       string `yaml:"mode,omitempty" env:"MODE"`
	SessionLog *bool  `yaml:"session_log,omitempty" env:"SESSION_LOG"`
}

// Config is the top-level configuration loaded from .verdict.yaml and the
// VERDICT_* environment.
type Config struct {
	API      APIConfig      `yaml:"api,omitempty" envPrefix:"API_"`
	Poll     PollConfig     `yaml:"poll,omitempty" envPrefix:"POLL_"`
	Paths    PathsConfig    `yaml:"paths,omitempty" envPrefix:"PATHS_"`
	Defaults DefaultsConfig `yaml:"defaults,omitempty" envPrefix:"DEFAULTS_"`
}

// New returns a Config with all hard-coded defaults populated. Storage
// directories live under the user config dir unless overridden.
func New() *Config {
	base := stateDir()
	return &Config{
		API: APIConfig{
			BaseURL:        DefaultBaseURL,
			RequestTimeout: DefaultRequestTimeout,
		},
		Poll: PollConfig{
			Interval: DefaultPollInterval,
		},
		Paths: PathsConfig{
			Vault:    filepath.Join(base, DefaultVaultDirName),
			Sessions: filepath.Join(base, DefaultSessionDirName),
		},
		Defaults: DefaultsConfig{
			Mode:       DefaultMode,
			SessionLog: boolPtr(true),
		},
	}
}

// Load builds the effective configuration: defaults, overlaid by
// .verdict.yaml found by walking up from startDir, overlaid by VERDICT_*
// environment variables. A .env file in the working directory is read
// first so development overrides work without exporting.
// If no config file is found, defaults plus env apply with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("loading .env file: %w", err)
		}
	}

	cfg := New()

	data, err := findConfigFile(startDir)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("loading .verdict.yaml: %w", err)
		}
	} else {
		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("parsing .verdict.yaml: %w", err)
		}
		mergeConfig(cfg, &fileCfg)
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "VERDICT_"}); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}

// findConfigFile walks up from dir looking for .verdict.yaml (max 10
// levels). Returns os.ErrNotExist if no config file is found. Propagates
// real I/O errors (e.g. permission denied) instead of silently swallowing
// them.
func findConfigFile(dir string) ([]byte, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, ".verdict.yaml")
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *Config) {
	if src.API.BaseURL != "" {
		dst.API.BaseURL = src.API.BaseURL
	}
	if src.API.RequestTimeout != 0 {
		dst.API.RequestTimeout = src.API.RequestTimeout
	}

	if src.Poll.Interval != 0 {
		dst.Poll.Interval = src.Poll.Interval
	}

	if src.Paths.Vault != "" {
		dst.Paths.Vault = src.Paths.Vault
	}
	if src.Paths.Sessions != "" {
		dst.Paths.Sessions = src.Paths.Sessions
	}

	if src.Defaults.Mode != "" {
		dst.Defaults.Mode = src.Defaults.Mode
	}
	if src.Defaults.SessionLog != nil {
		dst.Defaults.SessionLog = src.Defaults.SessionLog
	}
}

// stateDir returns the base directory for local state. Falls back to a
// relative directory when the user config dir cannot be resolved.
func stateDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".verdict"
	}
	return filepath.Join(base, "verdict")
}

func boolPtr(b bool) *bool {
	return &b
}
