// Package config loads the jobsched configuration from a YAML or JSON file
// with optional JOBSCHED_* environment overrides.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/jobsched/core/metrics"
)

// EnvPrefix prefixes environment overrides. Nested keys use "__", e.g.
// JOBSCHED_RUNLOG__BACKEND=sqlite.
const EnvPrefix = "JOBSCHED_"

type Config struct {
	Logging   LoggingConfig   `json:"logging"`
	Metrics   metrics.Config  `json:"metrics"`
	RunLog    RunLogConfig    `json:"runlog"`
	Partition PartitionConfig `json:"partition"`
}

// PartitionConfig tunes the McNaughton runner.
type PartitionConfig struct {
	// Strict turns a machine overflow into an error instead of returning
	// the partial assignment.
	Strict bool `json:"strict"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.SetDefaults()
	return cfg
}

// SetDefaults applies defaults to every section.
func (c *Config) SetDefaults() {
	c.Logging.SetDefaults()
	c.RunLog.SetDefaults()
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	return c.RunLog.Validate()
}

// Load reads path (skipped when empty), applies environment overrides,
// defaults and validation.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		var parser koanf.Parser
		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}
	// Optional environment overrides
	if err := k.Load(env.Provider(EnvPrefix, "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
