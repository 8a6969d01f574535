// Package config loads the rendertree tool configuration.
//
// Configuration is read from rendertree.json in the working directory (or a
// directory passed explicitly), with RENDERTREE_* environment variables
// taking precedence. A missing file yields the defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the complete tool configuration.
type Config struct {
	Store   StoreConfig   `json:"store" mapstructure:"store"`
	Serve   ServeConfig   `json:"serve" mapstructure:"serve"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// StoreConfig selects and configures the snapshot store backend.
type StoreConfig struct {
	// Backend is "dir" or "s3".
	Backend string `json:"backend" mapstructure:"backend"`

	// Dir is the local snapshot directory for the dir backend.
	Dir string `json:"dir" mapstructure:"dir"`

	// Bucket and Prefix configure the s3 backend.
	Bucket string `json:"bucket" mapstructure:"bucket"`
	Prefix string `json:"prefix" mapstructure:"prefix"`

	// Region overrides the AWS region for the s3 backend.
	Region string `json:"region" mapstructure:"region"`
}

// ServeConfig configures the inspector server.
type ServeConfig struct {
	Host string `json:"host" mapstructure:"host"`
	Port int    `json:"port" mapstructure:"port"`

	// WatchIntervalMs is the snapshot mtime poll interval.
	WatchIntervalMs int `json:"watchIntervalMs" mapstructure:"watchIntervalMs"`
}

// LoggingConfig configures slog output.
type LoggingConfig struct {
	// Level is "debug", "info", "warn", or "error".
	Level string `json:"level" mapstructure:"level"`

	// Format is "text" or "json".
	Format string `json:"format" mapstructure:"format"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: "dir",
			Dir:     ".rendertree/snapshots",
			Prefix:  "snapshots/",
		},
		Serve: ServeConfig{
			Host:            "127.0.0.1",
			Port:            8975,
			WatchIntervalMs: 500,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads rendertree.json from dir, applying environment overrides.
func Load(dir string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("store.backend", defaults.Store.Backend)
	v.SetDefault("store.dir", defaults.Store.Dir)
	v.SetDefault("store.prefix", defaults.Store.Prefix)
	v.SetDefault("serve.host", defaults.Serve.Host)
	v.SetDefault("serve.port", defaults.Serve.Port)
	v.SetDefault("serve.watchIntervalMs", defaults.Serve.WatchIntervalMs)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)

	v.SetConfigName("rendertree")
	v.SetConfigType("json")
	v.AddConfigPath(dir)

	v.SetEnvPrefix("RENDERTREE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read rendertree.json: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: parse rendertree.json: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromWorkingDir loads configuration from the current directory.
func LoadFromWorkingDir() (*Config, error) {
	return Load(".")
}

// Save writes the configuration to rendertree.json in dir.
func (c *Config) Save(dir string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "rendertree.json"), data, 0o644)
}

// Validate checks the configuration for inconsistencies.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case "dir":
		if c.Store.Dir == "" {
			return fmt.Errorf("config: store.dir is required for the dir backend")
		}
	case "s3":
		if c.Store.Bucket == "" {
			return fmt.Errorf("config: store.bucket is required for the s3 backend")
		}
	default:
		return fmt.Errorf("config: unknown store backend %q", c.Store.Backend)
	}

	if c.Serve.Port < 0 || c.Serve.Port > 65535 {
		return fmt.Errorf("config: invalid serve.port %d", c.Serve.Port)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown logging.level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown logging.format %q", c.Logging.Format)
	}

	return nil
}
