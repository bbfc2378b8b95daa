package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "comms.db", cfg.DBPath)
	assert.Equal(t, 20, cfg.DefaultLimit)
	assert.Equal(t, 500, cfg.ScanCandidateCap)
	assert.Equal(t, 4, cfg.ScanParallelism)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadYAMLOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "threadctl.yaml")
	data := `
db_path: /data/comms.db
default_limit: 50
scan_parallelism: 8
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/comms.db", cfg.DBPath)
	assert.Equal(t, 50, cfg.DefaultLimit)
	assert.Equal(t, 8, cfg.ScanParallelism)
	// Unset keys keep their defaults.
	assert.Equal(t, 500, cfg.ScanCandidateCap)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_path: [unclosed"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "threadctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_path: from-file.db\n"), 0644))

	t.Setenv("THREADCTL_DB", "from-env.db")
	t.Setenv("THREADCTL_SCAN_CANDIDATE_CAP", "100")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env.db", cfg.DBPath)
	assert.Equal(t, 100, cfg.ScanCandidateCap)
}

func TestEnvIgnoresInvalidValues(t *testing.T) {
	t.Setenv("THREADCTL_DEFAULT_LIMIT", "not-a-number")
	t.Setenv("THREADCTL_SCAN_PARALLELISM", "-3")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.DefaultLimit)
	assert.Equal(t, 4, cfg.ScanParallelism)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"EmptyDBPath", func(c *Config) { c.DBPath = "" }},
		{"ZeroLimit", func(c *Config) { c.DefaultLimit = 0 }},
		{"NegativeCandidateCap", func(c *Config) { c.ScanCandidateCap = -1 }},
		{"ZeroParallelism", func(c *Config) { c.ScanParallelism = 0 }},
		{"ExcessiveParallelism", func(c *Config) { c.ScanParallelism = 65 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
