// Package config handles reading and writing coopastar.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Planner algorithms.
const (
	AlgorithmAStar    = "astar"
	AlgorithmDijkstra = "dijkstra"
)

// DefaultFile is the config file looked up when --config is not given.
const DefaultFile = "coopastar.yaml"

// Config is the top-level structure for coopastar.yaml.
type Config struct {
	Planner PlannerConfig `yaml:"planner"`
	Log     LogConfig     `yaml:"log"`
	Bench   BenchConfig   `yaml:"bench"`
}

// PlannerConfig controls the prioritized planner.
type PlannerConfig struct {
	Algorithm     string `yaml:"algorithm"`      // "astar" | "dijkstra"
	MaxExpansions int    `yaml:"max_expansions"` // per agent, 0 = unbounded
}

// LogConfig controls log output.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" | "json"
}

// BenchConfig describes the warehouse sweep run by `coopastar bench`.
type BenchConfig struct {
	Database   string   `yaml:"database"`
	Width      int      `yaml:"width"`
	Height     int      `yaml:"height"`
	Agents     []int    `yaml:"agents,flow"`
	Placements []string `yaml:"placements,flow"`
	Seed       int64    `yaml:"seed"`
}

// DefaultConfig returns a Config populated with defaults.
func DefaultConfig() *Config {
	return &Config{
		Planner: PlannerConfig{
			Algorithm: AlgorithmAStar,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Bench: BenchConfig{
			Database:   "bench.db",
			Width:      3,
			Height:     3,
			Agents:     []int{5, 10, 20},
			Placements: []string{"adjacent", "spaced", "random"},
			Seed:       1,
		},
	}
}

// ReadConfig reads a config file. Missing fields keep their defaults.
func ReadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WriteConfig writes cfg to path, creating parent directories.
func WriteConfig(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Validate checks enumerated fields and ranges.
func (c *Config) Validate() error {
	switch c.Planner.Algorithm {
	case AlgorithmAStar, AlgorithmDijkstra:
	default:
		return fmt.Errorf("config: unknown planner.algorithm %q", c.Planner.Algorithm)
	}
	if c.Planner.MaxExpansions < 0 {
		return fmt.Errorf("config: planner.max_expansions must not be negative")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown log.format %q", c.Log.Format)
	}
	for _, n := range c.Bench.Agents {
		if n < 1 {
			return fmt.Errorf("config: bench.agents entries must be positive, got %d", n)
		}
	}
	return nil
}
