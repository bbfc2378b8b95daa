package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds threadctl configuration.
type Config struct {
	// DBPath is the path to the comms SQLite database
	// Default: "comms.db"
	DBPath string `yaml:"db_path"`

	// DefaultLimit is the result cap applied when a search command is run
	// without an explicit --limit
	// Default: 20
	DefaultLimit int `yaml:"default_limit"`

	// ScanCandidateCap is the maximum number of thread roots examined by a
	// significance scan. 0 = unbounded
	// Default: 500
	ScanCandidateCap int `yaml:"scan_candidate_cap"`

	// ScanParallelism is the number of candidate threads reconstructed
	// concurrently during a significance scan
	// Default: 4, Range: 1-64
	ScanParallelism int `yaml:"scan_parallelism"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		DBPath:           "comms.db",
		DefaultLimit:     20,
		ScanCandidateCap: 500,
		ScanParallelism:  4,
	}
}

// Load builds the effective configuration: defaults, overlaid by the YAML
// file at path (when path is non-empty and the file exists), overlaid by
// THREADCTL_* environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays THREADCTL_* environment variables.
func (c *Config) applyEnv() {
	if val := os.Getenv("THREADCTL_DB"); val != "" {
		c.DBPath = val
	}
	if val := os.Getenv("THREADCTL_DEFAULT_LIMIT"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			c.DefaultLimit = n
		}
	}
	if val := os.Getenv("THREADCTL_SCAN_CANDIDATE_CAP"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n >= 0 {
			c.ScanCandidateCap = n
		}
	}
	if val := os.Getenv("THREADCTL_SCAN_PARALLELISM"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			c.ScanParallelism = n
		}
	}
}

// Validate checks configuration ranges.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("db_path must not be empty")
	}
	if c.DefaultLimit <= 0 {
		return fmt.Errorf("default_limit must be positive (got %d)", c.DefaultLimit)
	}
	if c.ScanCandidateCap < 0 {
		return fmt.Errorf("scan_candidate_cap must not be negative (got %d)", c.ScanCandidateCap)
	}
	if c.ScanParallelism < 1 || c.ScanParallelism > 64 {
		return fmt.Errorf("scan_parallelism must be between 1 and 64 (got %d)", c.ScanParallelism)
	}
	return nil
}
