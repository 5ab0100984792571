// Package config loads condflat settings from a .condflat.yaml file
// discovered upward from the working directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the config file condflat looks for.
const FileName = ".condflat.yaml"

// Config holds all user-tunable settings.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Indent controls the indentation of printed replacement text.
	Indent Indent `yaml:"indent"`

	// Transforms toggles individual transforms. Unset means enabled.
	Transforms Transforms `yaml:"transforms"`
}

// Indent selects tabs or spaces for replacement text.
type Indent struct {
	Style string `yaml:"style"` // "tabs" or "spaces"
	Width int    `yaml:"width"` // space count when style is "spaces"
}

// Transforms enables or disables each transform. Nil values default to on.
type Transforms struct {
	GuardClause *bool `yaml:"guard_clause"`
	Invert      *bool `yaml:"invert"`
	Expand      *bool `yaml:"expand"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Indent:   Indent{Style: "tabs", Width: 4},
	}
}

// Unit returns the indentation unit string for the printer.
func (i Indent) Unit() string {
	if i.Style == "spaces" {
		width := i.Width
		if width <= 0 {
			width = 4
		}
		return strings.Repeat(" ", width)
	}
	return "\t"
}

func (t Transforms) GuardClauseEnabled() bool { return t.GuardClause == nil || *t.GuardClause }
func (t Transforms) InvertEnabled() bool      { return t.Invert == nil || *t.Invert }
func (t Transforms) ExpandEnabled() bool      { return t.Expand == nil || *t.Expand }

// Load reads and validates a config file. A missing file is an error here;
// use Discover when absence should fall back to defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Discover walks upward from dir looking for a config file. When none is
// found the defaults are returned.
func Discover(dir string) (*Config, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	for {
		candidate := filepath.Join(abs, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return Load(candidate)
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return Default(), nil
		}
		abs = parent
	}
}

func (c *Config) validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	switch c.Indent.Style {
	case "", "tabs", "spaces":
	default:
		return errors.New(`indent style must be "tabs" or "spaces"`)
	}
	if c.Indent.Width < 0 {
		return errors.New("indent width must not be negative")
	}
	return nil
}
