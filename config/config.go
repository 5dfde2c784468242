// Package config provides unified configuration loading for entangle.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config contains all entangle configuration settings.
type Config struct {
	// Simulation bounds every convergence loop.
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`

	// Correction configures the correction-only strategy.
	Correction CorrectionConfig `json:"correction" yaml:"correction"`

	// Fault configures the fault-tolerance test.
	Fault FaultConfig `json:"fault" yaml:"fault"`

	// Sweep configures the compare and scale sweeps.
	Sweep SweepConfig `json:"sweep" yaml:"sweep"`

	Logging LoggingConfig `json:"logging" yaml:"logging"`

	Store StoreConfig `json:"store" yaml:"store"`
}

// SimulationConfig holds the loop budget and target.
type SimulationConfig struct {
	MaxSteps int     `json:"max_steps" yaml:"max_steps"`
	Target   float64 `json:"target" yaml:"target"`

	// Seed makes trials reproducible. 0 draws a fresh stream per trial.
	Seed int64 `json:"seed" yaml:"seed"`
}

// CorrectionConfig holds the reactive correction parameters.
type CorrectionConfig struct {
	Threshold float64 `json:"threshold" yaml:"threshold"`
	Strength  float64 `json:"strength" yaml:"strength"`
}

// FaultConfig holds the corruption fraction and trial count.
type FaultConfig struct {
	Corruption float64 `json:"corruption" yaml:"corruption"`
	Trials     int     `json:"trials" yaml:"trials"`
}

// SweepConfig holds the sweep bounds.
type SweepConfig struct {
	MaxPool int `json:"max_pool" yaml:"max_pool"`
	Trials  int `json:"trials" yaml:"trials"`
}

// LoggingConfig configures entangle's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "trace" logs coherence at every step.
	Level string `json:"level" yaml:"level"`

	// TrialLog, when set, receives one JSONL record per trial.
	TrialLog string `json:"trial_log,omitempty" yaml:"trial_log,omitempty"`
}

// StoreConfig configures result persistence.
type StoreConfig struct {
	// Path of the SQLite database. Empty disables persistence.
	Path string `json:"path" yaml:"path"`
}

// Default returns a Config with the documented defaults.
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{MaxSteps: 100, Target: 0.9, Seed: 0},
		Correction: CorrectionConfig{Threshold: 0.5, Strength: 0.3},
		Fault:      FaultConfig{Corruption: 0.5, Trials: 5},
		Sweep:      SweepConfig{MaxPool: 10000, Trials: 3},
		Logging:    LoggingConfig{Level: "info"},
		Store:      StoreConfig{Path: ""},
	}
}

// DefaultPath returns ~/.entangle/config.yaml, or "" if the home directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".entangle", "config.yaml")
}

// Load loads configuration from path (or DefaultPath when empty) and
// environment variables.
// Order: defaults -> config file -> environment variables.
// A missing default file is not an error; a missing explicit file is.
func Load(path string) (*Config, error) {
	config := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		_, statErr := os.Stat(path)
		if statErr == nil || explicit {
			fileConfig, err := LoadFromFile(path)
			if err != nil {
				return nil, fmt.Errorf("loading config file: %w", err)
			}
			config = fileConfig
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file.
// Fields absent from the file keep their defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	config.Store.Path = os.ExpandEnv(config.Store.Path)
	config.Logging.TrialLog = os.ExpandEnv(config.Logging.TrialLog)

	return config, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Simulation.MaxSteps <= 0 {
		return fmt.Errorf("max_steps must be positive, got %d", c.Simulation.MaxSteps)
	}
	if math.IsNaN(c.Simulation.Target) || c.Simulation.Target <= 0 || c.Simulation.Target > 1 {
		return fmt.Errorf("target must be in (0,1], got %f", c.Simulation.Target)
	}
	if c.Correction.Threshold < 0 || c.Correction.Threshold >= math.Pi {
		return fmt.Errorf("threshold must be in [0,π), got %f", c.Correction.Threshold)
	}
	if c.Correction.Strength <= 0 {
		return fmt.Errorf("strength must be positive, got %f", c.Correction.Strength)
	}
	if c.Fault.Corruption < 0 || c.Fault.Corruption > 1 {
		return fmt.Errorf("corruption must be between 0 and 1, got %f", c.Fault.Corruption)
	}
	if c.Fault.Trials < 1 {
		return fmt.Errorf("fault trials must be at least 1, got %d", c.Fault.Trials)
	}
	if c.Sweep.MaxPool < 1 {
		return fmt.Errorf("max_pool must be positive, got %d", c.Sweep.MaxPool)
	}
	if c.Sweep.Trials < 1 {
		return fmt.Errorf("sweep trials must be at least 1, got %d", c.Sweep.Trials)
	}

	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Unparseable numeric values are ignored.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("ENTANGLE_MAX_STEPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Simulation.MaxSteps = n
		}
	}
	if v := os.Getenv("ENTANGLE_TARGET"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Simulation.Target = f
		}
	}
	if v := os.Getenv("ENTANGLE_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.Simulation.Seed = n
		}
	}

	if v := os.Getenv("ENTANGLE_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Correction.Threshold = f
		}
	}
	if v := os.Getenv("ENTANGLE_STRENGTH"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Correction.Strength = f
		}
	}

	if v := os.Getenv("ENTANGLE_CORRUPTION"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Fault.Corruption = f
		}
	}
	if v := os.Getenv("ENTANGLE_TRIALS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Fault.Trials = n
			config.Sweep.Trials = n
		}
	}

	if v := os.Getenv("ENTANGLE_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	if v := os.Getenv("ENTANGLE_STORE_PATH"); v != "" {
		config.Store.Path = v
	}
}
