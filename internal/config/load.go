package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the settings file name looked up by Load and written by Save.
const FileName = "config.yaml"

// Load returns the effective settings: Default, overlaid by the settings
// file (the -config path, else the first existing SearchPaths entry), then
// by command-line flags. The result is validated.
func Load() (*Config, error) {
	cfg := Default()

	path := ConfigPath()
	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := cfg.Merge(path); err != nil {
			return nil, err
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SearchPaths lists the settings files Load tries, in order, when no
// -config flag is given.
func SearchPaths() []string {
	return []string{
		filepath.Join(".", FileName),
		filepath.Join(ConfigDir(), FileName),
	}
}

func findConfigFile() string {
	for _, path := range SearchPaths() {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// ConfigDir returns the per-user objview settings directory, falling back
// to the temp dir when the OS reports no user config location.
func ConfigDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "objview")
}

// Merge overlays the YAML file at path onto c. Keys missing from the file
// keep their current values.
func (c *Config) Merge(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading settings: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing settings %s: %w", path, err)
	}
	return nil
}
