// Package config handles the global seb configuration: defaults loaded from
// a YAML file under the user config directory, overridable per invocation by
// SEB_* environment variables and command line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the settings every command starts from. Zero values mean
// "use the built-in default".
type Config struct {
	// File is the bibliography file to operate on. When empty, commands
	// search the working directory for one.
	File string `yaml:"file,omitempty"`
	// Interact enables prompting for missing fields by default.
	Interact bool `yaml:"interact,omitempty"`
	// NoCache disables the local lookup cache.
	NoCache bool `yaml:"no_cache,omitempty"`
	// CachePath overrides where the lookup cache database lives.
	CachePath string `yaml:"cache_path,omitempty"`
}

const (
	configDir  = "seb"
	configFile = "config.yml"
	cacheFile  = "lookups.db"
)

// Path returns the location of the config file. Respects XDG_CONFIG_HOME and
// falls back to ~/.config.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, configDir, configFile)
}

// DefaultCachePath returns where the lookup cache lives when cache_path is
// not configured. Respects XDG_CACHE_HOME and falls back to ~/.cache.
func DefaultCachePath() string {
	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cacheFile
		}
		cacheHome = filepath.Join(home, ".cache")
	}
	return filepath.Join(cacheHome, configDir, cacheFile)
}

// Load reads the config file and applies environment overrides. A missing
// file is not an error; the environment still applies on top of the zero
// Config.
func Load() (*Config, error) {
	cfg := &Config{}

	if path := Path(); path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// defaults only
		case err != nil:
			return nil, fmt.Errorf("reading config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config at %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overrides fields from SEB_* environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv("SEB_FILE"); v != "" {
		c.File = v
	}
	if v := os.Getenv("SEB_INTERACT"); v != "" {
		c.Interact = isTruthy(v)
	}
	if v := os.Getenv("SEB_NO_CACHE"); v != "" {
		c.NoCache = isTruthy(v)
	}
	if v := os.Getenv("SEB_CACHE_PATH"); v != "" {
		c.CachePath = v
	}
}

func isTruthy(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

// Save writes the config back to its file, creating the directory if needed.
func (c *Config) Save() error {
	path := Path()
	if path == "" {
		return fmt.Errorf("unable to locate a config directory")
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
