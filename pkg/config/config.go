// Package config stores user preferences for env2cc.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/harlanmb/env2cc/pkg/engine"
	"github.com/harlanmb/env2cc/pkg/project"
)

// Config is the persisted configuration.
type Config struct {
	BaseCC          uint8  `json:"baseCC,omitempty"`
	TargetTrack     string `json:"targetTrack,omitempty"`
	TicksPerQuarter uint16 `json:"ticksPerQuarter,omitempty"`
}

// Default returns a config with the standard defaults.
func Default() *Config {
	return &Config{
		BaseCC:          engine.DefaultBaseCC,
		TargetTrack:     engine.DefaultTargetTrack,
		TicksPerQuarter: project.DefaultTicksPerQuarter,
	}
}

// Dir returns the config directory path.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "env2cc"), nil
}

// Path returns the full path to config.json.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config file, returning defaults when it does not exist.
// Unset fields fall back to their defaults.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Save writes the config file, creating the directory if needed.
func (c *Config) Save() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	path, err := Path()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) applyDefaults() {
	// Zero means unset; base CC 0 (bank select) is not assignable here.
	if c.BaseCC == 0 {
		c.BaseCC = engine.DefaultBaseCC
	}
	if c.TargetTrack == "" {
		c.TargetTrack = engine.DefaultTargetTrack
	}
	if c.TicksPerQuarter == 0 {
		c.TicksPerQuarter = project.DefaultTicksPerQuarter
	}
}

// Options converts the config into engine run options.
func (c *Config) Options() engine.Options {
	return engine.Options{
		BaseCC:      c.BaseCC,
		TargetTrack: c.TargetTrack,
	}
}
