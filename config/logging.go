package config

import (
	"fmt"
)

// LoggingConfig defines application log settings.
type LoggingConfig struct {
	// Level is the minimum level: debug, info, warn or error.
	Level string `json:"level"`
}

// SetDefaults applies sane defaults.
func (c *LoggingConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
}

// Validate checks the level name.
func (c LoggingConfig) Validate() error {
	switch c.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("unknown log level %s", c.Level)
	}
}

// RunLogConfig defines settings for the run history store.
type RunLogConfig struct {
	// Backend selects the store type: "jsonl", "sqlite" or "none".
	Backend string `json:"backend"`
	// Path is the file location of the store.
	Path string `json:"path"`
}

// SetDefaults applies sane defaults.
func (c *RunLogConfig) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "none"
	}
	if c.Path == "" {
		switch c.Backend {
		case "jsonl":
			c.Path = "runs.jsonl"
		case "sqlite":
			c.Path = "runs.db"
		}
	}
}

// Validate checks mandatory fields.
func (c RunLogConfig) Validate() error {
	switch c.Backend {
	case "none":
		return nil
	case "jsonl", "sqlite":
		if c.Path == "" {
			return fmt.Errorf("runlog path is required")
		}
		return nil
	default:
		return fmt.Errorf("unknown runlog backend %s", c.Backend)
	}
}
