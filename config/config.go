// Package config loads optional tracker settings from .grove/progress.yml.
// A missing config file is not an error; defaults apply.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mattsolo1/grove-progress/errors"
)

// configRelPath is the config file location relative to a project directory.
var configRelPath = filepath.Join(".grove", "progress.yml")

// Config holds tracker settings.
type Config struct {
	// Logging configures log output for all grove-progress components.
	Logging LoggingConfig `yaml:"logging"`

	// History controls session history retention in the progress document.
	History HistoryConfig `yaml:"history"`

	// Hooks adds extra prompt classification patterns on top of the
	// built-in ones. Keys are event kinds, values are regular expressions.
	Hooks HooksConfig `yaml:"hooks"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	// Level is the minimum log level (e.g. "debug", "info", "warn").
	// Overridden by the GROVE_PROGRESS_LOG_LEVEL environment variable.
	Level string `yaml:"level"`

	// Format is "text" (default) or "json".
	Format string `yaml:"format"`

	// File enables an additional file sink under .grove/logs/.
	File bool `yaml:"file"`
}

// HistoryConfig controls recentSessions retention.
type HistoryConfig struct {
	// MaxRecentSessions caps how many prior session records are kept in
	// recentSessions. Zero disables archiving entirely.
	MaxRecentSessions int `yaml:"max_recent_sessions"`
}

// HooksConfig carries user-supplied classification patterns.
type HooksConfig struct {
	Patterns map[string][]string `yaml:"patterns"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info", Format: "text"},
		History: HistoryConfig{MaxRecentSessions: 10},
	}
}

// Load reads and parses a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.ConfigInvalid(err.Error())
	}
	return cfg, nil
}

// LoadFrom searches startDir and its ancestors for .grove/progress.yml and
// loads the closest one. Defaults are returned when nothing is found.
func LoadFrom(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, configRelPath)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return Load(path)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return Default(), nil
}
