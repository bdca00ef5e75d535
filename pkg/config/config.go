// Package config provides the configuration system for dictstream. It
// defines a single Config structure covering the stream settings, the
// dictionary snapshot to serve, logging, and output, plus a YAML loader
// with environment-variable substitution.
//
// Example usage:
//
//	cfg := config.Default()
//	cfg.Stream.MaxBlockSize = 4096
//
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config

import (
	"fmt"
)

// StreamConfig controls block production.
type StreamConfig struct {
	// MaxBlockSize bounds the row count of every produced block.
	MaxBlockSize int `yaml:"max_block_size" json:"max_block_size"`
	// Columns is the requested projection. Empty means all schema columns.
	Columns []string `yaml:"columns" json:"columns"`
	// StrictProjection fails construction on unknown requested names
	// instead of silently skipping them.
	StrictProjection bool `yaml:"strict_projection" json:"strict_projection"`
}

// OutputConfig controls where produced blocks go.
type OutputConfig struct {
	// Format is "jsonl" (one JSON object per row) or "arrow" (IPC file).
	Format string `yaml:"format" json:"format"`
	// Path is the output file; empty or "-" means stdout (jsonl only).
	Path string `yaml:"path" json:"path"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level       string `yaml:"level" json:"level"`
	Development bool   `yaml:"development" json:"development"`
	Encoding    string `yaml:"encoding" json:"encoding"`
}

// Config is the root configuration for the dictstream CLI.
type Config struct {
	// Snapshot is the path of the dictionary snapshot JSON file.
	Snapshot string        `yaml:"snapshot" json:"snapshot"`
	Stream   StreamConfig  `yaml:"stream" json:"stream"`
	Output   OutputConfig  `yaml:"output" json:"output"`
	Logging  LoggingConfig `yaml:"logging" json:"logging"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Stream: StreamConfig{
			MaxBlockSize: 8192,
		},
		Output: OutputConfig{
			Format: "jsonl",
			Path:   "-",
		},
		Logging: LoggingConfig{
			Level:    "info",
			Encoding: "json",
		},
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Stream.MaxBlockSize <= 0 {
		return fmt.Errorf("stream.max_block_size must be positive, got %d", c.Stream.MaxBlockSize)
	}
	switch c.Output.Format {
	case "jsonl", "arrow":
	default:
		return fmt.Errorf("output.format must be jsonl or arrow, got %q", c.Output.Format)
	}
	if c.Output.Format == "arrow" && (c.Output.Path == "" || c.Output.Path == "-") {
		return fmt.Errorf("output.path is required for arrow output")
	}
	return nil
}
