package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigYAMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", DefaultFile)

	cfg := DefaultConfig()
	cfg.Planner.Algorithm = AlgorithmDijkstra
	cfg.Planner.MaxExpansions = 5000
	cfg.Bench.Agents = []int{2, 4}

	require.NoError(t, WriteConfig(path, cfg))

	loaded, err := ReadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestReadConfigKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte("planner:\n  algorithm: dijkstra\n"), 0644))

	cfg, err := ReadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, AlgorithmDijkstra, cfg.Planner.Algorithm)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "bench.db", cfg.Bench.Database)
}

func TestReadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("planner: ["), 0644))
	_, err = ReadConfig(bad)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("planner:\n  algorithm: cbs\n"), 0644))
	_, err = ReadConfig(invalid)
	assert.ErrorContains(t, err, "planner.algorithm")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"negative expansions", func(c *Config) { c.Planner.MaxExpansions = -1 }, false},
		{"xml logs", func(c *Config) { c.Log.Format = "xml" }, false},
		{"zero agents", func(c *Config) { c.Bench.Agents = []int{0} }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
