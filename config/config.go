// Package config loads planning run settings from YAML files.
package config

import (
	"errors"
	"fmt"
	"os"

	"dynprog/lake"
	"dynprog/meta"
	"dynprog/utils"

	"gopkg.in/yaml.v3"
)

var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrInvalidConfig  = errors.New("invalid config")
)

const (
	AlgorithmPolicyIteration = "pi"
	AlgorithmValueIteration  = "vi"
	AlgorithmBoth            = "both"
)

var algorithms = []string{AlgorithmPolicyIteration, AlgorithmValueIteration, AlgorithmBoth}

// Config describes one planning run on a lake.
type Config struct {
	// Map names a standard layout ("4x4", "8x8"); ignored when Rows is set.
	Map string `yaml:"map"`
	// Rows is a custom layout of S, F, H and G tiles.
	Rows       []string `yaml:"rows,omitempty"`
	Slippery   bool     `yaml:"slippery"`
	Algorithm  string   `yaml:"algorithm"`
	Gamma      float64  `yaml:"gamma"`
	Tolerance  float64  `yaml:"tolerance"`
	Goroutines int      `yaml:"goroutines"`
	Episodes   int      `yaml:"episodes"`
	Seed       uint64   `yaml:"seed"`
	Render     bool     `yaml:"render"`
	// Output is a directory for run records; empty disables them.
	Output string `yaml:"output,omitempty"`
}

func Default() *Config {
	return &Config{
		Map:        "4x4",
		Slippery:   true,
		Algorithm:  AlgorithmBoth,
		Gamma:      meta.GAMMA,
		Tolerance:  meta.TOLERANCE,
		Goroutines: meta.GO_ROUTINES,
		Episodes:   meta.EPISODES,
		Seed:       1,
	}
}

// LoadFile reads a YAML file on top of the defaults and validates the result.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Layout returns the tiles of the configured lake.
func (c *Config) Layout() []string {
	if len(c.Rows) > 0 {
		return c.Rows
	}
	return lake.Maps[c.Map]
}

func (c *Config) Validate() error {
	if len(c.Rows) > 0 {
		if err := lake.ValidateMap(c.Rows); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	} else if _, ok := lake.Maps[c.Map]; !ok {
		return fmt.Errorf("%w: unknown map %q", ErrInvalidConfig, c.Map)
	}
	if utils.FindIndex(algorithms, c.Algorithm) < 0 {
		return fmt.Errorf("%w: unknown algorithm %q", ErrInvalidConfig, c.Algorithm)
	}
	if c.Gamma < 0 || c.Gamma >= 1 {
		return fmt.Errorf("%w: gamma %g not in [0, 1)", ErrInvalidConfig, c.Gamma)
	}
	if c.Tolerance <= 0 {
		return fmt.Errorf("%w: tolerance must be positive", ErrInvalidConfig)
	}
	if c.Goroutines < 1 {
		return fmt.Errorf("%w: goroutines must be at least 1", ErrInvalidConfig)
	}
	if c.Episodes < 0 {
		return fmt.Errorf("%w: episodes must not be negative", ErrInvalidConfig)
	}
	return nil
}
