// Package config provides configuration loading for qgrid.
// Order: defaults -> YAML file -> QGRID_* environment variables. Command-line
// flags are applied on top by cmd/qgrid.
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"qcircuitgrid/internal/gate"
)

const (
	// DefaultQubits is the qubit count of the first level.
	DefaultQubits = 2

	// DefaultDepth is the number of time columns on the grid.
	DefaultDepth = 18

	// DefaultMaxQubits caps the qubit count reachable through level-ups.
	DefaultMaxQubits = 5

	// DefaultRotationStep is the angle added per rotate action.
	DefaultRotationStep = "pi/8"
)

// Config contains all qgrid configuration settings.
type Config struct {
	// Qubits is the number of grid rows.
	Qubits int `yaml:"qubits"`

	// Depth is the number of grid columns.
	Depth int `yaml:"depth"`

	// MaxQubits bounds Qubits and level progression.
	MaxQubits int `yaml:"max_qubits"`

	// RotationStep is a pi expression ("pi/8", "0.25") added or subtracted per rotate action.
	RotationStep string `yaml:"rotation_step"`

	// Seed makes measurement sampling reproducible. Zero seeds from the process.
	Seed uint64 `yaml:"seed"`

	// CollapseOnMeasure projects the state onto each measured outcome.
	CollapseOnMeasure bool `yaml:"collapse_on_measure"`

	// Log contains logging settings.
	Log LogConfig `yaml:"log"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string `yaml:"level"`

	// File receives log output. Empty means stderr for headless commands and
	// no logging for the interactive TUI.
	File string `yaml:"file"`
}

// Default returns a Config with the game's defaults.
func Default() *Config {
	return &Config{
		Qubits:            DefaultQubits,
		Depth:             DefaultDepth,
		MaxQubits:         DefaultMaxQubits,
		RotationStep:      DefaultRotationStep,
		CollapseOnMeasure: true,
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns ~/.config/qgrid/qgrid.yaml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "qgrid.yaml"
	}
	return filepath.Join(dir, "qgrid", "qgrid.yaml")
}

// Load reads path (or DefaultPath when empty) if it exists and applies
// environment overrides. A missing file is not an error unless path was given
// explicitly.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if _, err := os.Stat(path); err == nil {
		fileCfg, err := LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
		cfg = fileCfg
	} else if explicit {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// LoadFromFile loads configuration from a specific YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Qubits < 1 {
		return fmt.Errorf("qubits must be at least 1, got %d", c.Qubits)
	}
	if c.Depth < 1 {
		return fmt.Errorf("depth must be at least 1, got %d", c.Depth)
	}
	if c.MaxQubits < 1 {
		return fmt.Errorf("max_qubits must be at least 1, got %d", c.MaxQubits)
	}
	if c.Qubits > c.MaxQubits {
		return fmt.Errorf("qubits %d exceeds max_qubits %d", c.Qubits, c.MaxQubits)
	}
	if _, err := c.RotationAngle(); err != nil {
		return err
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if c.Log.Level != "" && !validLevels[c.Log.Level] {
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", c.Log.Level)
	}
	return nil
}

// RotationAngle parses RotationStep.
func (c *Config) RotationAngle() (float64, error) {
	a, ok := gate.ParseAngle(c.RotationStep)
	if !ok || a == 0 || math.IsNaN(a) || math.IsInf(a, 0) {
		return 0, fmt.Errorf("invalid rotation_step %q", c.RotationStep)
	}
	return a, nil
}

// QubitsForLevel returns the qubit count of a 1-based level: the first level
// has two qubits and each level-up doubles it, capped at MaxQubits.
func (c *Config) QubitsForLevel(level int) int {
	n := DefaultQubits
	for l := 1; l < level && n < c.MaxQubits; l++ {
		n *= 2
	}
	return min(n, c.MaxQubits)
}

// applyEnvOverrides applies QGRID_* environment variables.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("QGRID_QUBITS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Qubits = n
		}
	}
	if v := os.Getenv("QGRID_DEPTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Depth = n
		}
	}
	if v := os.Getenv("QGRID_MAX_QUBITS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxQubits = n
		}
	}
	if v := os.Getenv("QGRID_ROTATION_STEP"); v != "" {
		cfg.RotationStep = v
	}
	if v := os.Getenv("QGRID_SEED"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.Seed = n
		}
	}
	if v := os.Getenv("QGRID_COLLAPSE_ON_MEASURE"); v != "" {
		cfg.CollapseOnMeasure = v == "true" || v == "1"
	}
	if v := os.Getenv("QGRID_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("QGRID_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}
