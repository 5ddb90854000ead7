package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is looked up relative to the working directory.
const DefaultPath = "slnmeta.yaml"

type Config struct {
	Scan struct {
		// ExcludedDirs are skipped during recursive fallback scans.
		ExcludedDirs []string `yaml:"excluded_dirs"`
	} `yaml:"scan"`
	Evaluate struct {
		// Parallelism bounds concurrent project evaluations; 0 means NumCPU.
		Parallelism int `yaml:"parallelism"`
		// ProcessTimeoutSeconds caps each out-of-process evaluation.
		ProcessTimeoutSeconds int `yaml:"process_timeout_seconds"`
	} `yaml:"evaluate"`
	Designer struct {
		// ItemType is the MSBuild item type carrying designer-relevant files.
		ItemType string `yaml:"item_type"`
		// HostProperty names the property pointing at the design-time host.
		HostProperty string `yaml:"host_property"`
	} `yaml:"designer"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.Scan.ExcludedDirs = []string{"bin", "obj", ".git", "node_modules", "packages"}
	cfg.Evaluate.ProcessTimeoutSeconds = 10
	cfg.Designer.ItemType = "DesignerFile"
	cfg.Designer.HostProperty = "DesignerHostPath"
	return cfg
}

// Load reads the optional YAML config and layers environment overrides on
// top. A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	// 2. Load YAML config over the defaults
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return nil, err
	}

	// 3. Override with environment variables if present
	if v := os.Getenv("SLNMETA_PARALLELISM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Evaluate.Parallelism = n
		}
	}
	if v := os.Getenv("SLNMETA_DESIGNER_ITEM_TYPE"); v != "" {
		cfg.Designer.ItemType = v
	}

	if cfg.Evaluate.ProcessTimeoutSeconds <= 0 {
		cfg.Evaluate.ProcessTimeoutSeconds = 10
	}
	return cfg, nil
}

// Workers returns the effective fan-out width.
func (c *Config) Workers() int {
	if c.Evaluate.Parallelism > 0 {
		return c.Evaluate.Parallelism
	}
	return runtime.NumCPU()
}

// ProcessTimeout returns the out-of-process evaluation deadline.
func (c *Config) ProcessTimeout() time.Duration {
	return time.Duration(c.Evaluate.ProcessTimeoutSeconds) * time.Second
}
