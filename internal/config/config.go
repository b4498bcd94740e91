// Package config handles refcheck configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents configuration stored in ~/.config/refcheck/config.yml.
type Config struct {
	RegistryPaths  []string `yaml:"registry_paths,omitempty" json:"registry_paths,omitempty"`   // Predatory registry CSV files
	CrossrefMailto string   `yaml:"crossref_mailto,omitempty" json:"crossref_mailto,omitempty"` // Contact address for the Crossref polite pool
	Style          string   `yaml:"style,omitempty" json:"style"`                               // Default citation style
	CachePath      string   `yaml:"cache_path,omitempty" json:"cache_path,omitempty"`           // SQLite lookup cache location
	Concurrency    int      `yaml:"concurrency,omitempty" json:"concurrency"`                   // Parallel entries for network checks
}

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "refcheck"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"

	// DefaultStyle is used when neither config nor flags set one.
	DefaultStyle = "apa"
	// DefaultConcurrency bounds network-backed checks per run.
	DefaultConcurrency = 4
)

// configCache caches the loaded config for the process.
var configCache *Config

// Path returns the path to the config file. Respects XDG_CONFIG_HOME,
// defaults to ~/.config/refcheck/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// Load loads the configuration file. Returns an empty config (not an
// error) if the file doesn't exist.
func Load() (*Config, error) {
	if configCache != nil {
		return configCache, nil
	}

	cfg := &Config{}
	path := Path()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// Missing config is fine.
		case err != nil:
			return nil, fmt.Errorf("reading config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config: %w", err)
			}
		}
	}

	applyDefaults(cfg)
	applyEnv(cfg)
	configCache = cfg
	return cfg, nil
}

// Reset drops the cached config so tests can reload with a different
// environment.
func Reset() {
	configCache = nil
}

// Save writes the configuration file, creating its directory if
// needed.
func Save(cfg *Config) error {
	path := Path()
	if path == "" {
		return errors.New("cannot determine config path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	configCache = nil
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Style == "" {
		cfg.Style = DefaultStyle
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
}

// applyEnv lets environment variables override file values.
func applyEnv(cfg *Config) {
	if v := os.Getenv("REFCHECK_REGISTRY"); v != "" {
		cfg.RegistryPaths = filepath.SplitList(v)
	}
	if v := os.Getenv("REFCHECK_CROSSREF_MAILTO"); v != "" {
		cfg.CrossrefMailto = v
	}
	if v := os.Getenv("REFCHECK_STYLE"); v != "" {
		cfg.Style = v
	}
	if v := os.Getenv("REFCHECK_CACHE"); v != "" {
		cfg.CachePath = v
	}
}
