/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ssargent/bytekit/pkg/codec"
	"github.com/ssargent/bytekit/pkg/logging"
)

// Config represents the bytekit configuration
type Config struct {
	DataDir     string      `yaml:"data_dir"`
	Compression Compression `yaml:"compression"`
	Logging     Logging     `yaml:"logging"`
	Metrics     Metrics     `yaml:"metrics"`
}

// Compression selects the codec used for frames
type Compression struct {
	Algorithm string `yaml:"algorithm"`
	Level     int    `yaml:"level"`

	// MaxFrameSize caps the original size of a frame; 0 means the header limit
	MaxFrameSize uint64 `yaml:"max_frame_size"`
}

// Logging contains logging configuration
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Metrics contains metrics configuration
type Metrics struct {
	Enabled bool `yaml:"enabled"`

	// Textfile receives the metrics in Prometheus text format when a command exits
	Textfile string `yaml:"textfile"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		DataDir: "./data",
		Compression: Compression{
			Algorithm: codec.Zlib.Name(),
			Level:     codec.DefaultLevel,
		},
		Logging: Logging{
			Level:  "info",
			Format: logging.FormatConsole,
		},
	}
}

// Validate checks that every setting names something bytekit understands
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	if _, err := codec.AlgorithmByName(c.Compression.Algorithm); err != nil {
		return fmt.Errorf("invalid compression.algorithm: %w", err)
	}
	if c.Compression.Level < -2 || c.Compression.Level > 22 {
		return fmt.Errorf("invalid compression.level: %d", c.Compression.Level)
	}
	// zlib follows compress/flate, which stops at 9
	if c.Compression.Algorithm == codec.Zlib.Name() && c.Compression.Level > 9 {
		return fmt.Errorf("invalid compression.level for zlib: %d", c.Compression.Level)
	}
	if _, ok := logging.ParseLevel(c.Logging.Level); !ok {
		return fmt.Errorf("invalid logging.level: %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case logging.FormatConsole, logging.FormatJSON:
	default:
		return fmt.Errorf("invalid logging.format: %q", c.Logging.Format)
	}
	return nil
}

// CodecOptions converts the compression settings into codec options
func (c *Config) CodecOptions() ([]codec.Option, error) {
	alg, err := codec.AlgorithmByName(c.Compression.Algorithm)
	if err != nil {
		return nil, err
	}
	opts := []codec.Option{
		codec.WithAlgorithm(alg),
		codec.WithLevel(c.Compression.Level),
	}
	if c.Compression.MaxFrameSize > 0 {
		opts = append(opts, codec.WithMaxSize(c.Compression.MaxFrameSize))
	}
	return opts, nil
}

// NewCodec builds the codec described by the compression settings
func (c *Config) NewCodec() (*codec.BufferCodec, error) {
	opts, err := c.CodecOptions()
	if err != nil {
		return nil, err
	}
	return codec.NewBufferCodec(opts...), nil
}

// LoadConfig loads configuration from the specified path. Settings missing
// from the file keep their defaults.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	// Validate path to prevent directory traversal
	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// SaveConfig saves the configuration to the specified path with secure permissions
func SaveConfig(config *Config, configPath string) error {
	// Ensure config directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write with secure permissions (0600)
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./bytekit.yaml"
	}

	// For Linux/macOS, use ~/.config/bytekit/config.yaml
	configDir := filepath.Join(homeDir, ".config", "bytekit")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
