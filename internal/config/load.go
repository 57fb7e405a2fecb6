package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	// Start with defaults
	cfg := Default()

	// Try to load from file (explicit path takes priority)
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	// Apply CLI flags (highest priority)
	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// EnvConfig names the environment variable that points at a config file.
// It is consulted after the -config flag and before the search path.
const EnvConfig = "SECTORCULL_CONFIG"

// configCandidates lists the search path, most specific first.
func configCandidates() []string {
	return []string{
		"sectorcull.yaml",
		"sectorcull.yml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}
}

// findConfigFile returns the config named by EnvConfig, or the first
// existing file on the search path.
func findConfigFile() string {
	if path := os.Getenv(EnvConfig); path != "" {
		return path
	}
	for _, path := range configCandidates() {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// ConfigDir returns the per-user config directory for sectorcull, falling
// back to the temp directory when the user has none.
func ConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "sectorcull")
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
