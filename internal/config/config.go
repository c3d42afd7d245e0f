// Package config handles loading, validating, and watching the kvlru
// configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Config represents the complete configuration for kvlru.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" yaml:"server" toml:"server"`
	Cache   CacheConfig   `mapstructure:"cache" yaml:"cache" toml:"cache"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging" toml:"logging"`
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	// Listen is the address the server binds to, host:port.
	Listen string `mapstructure:"listen" yaml:"listen" toml:"listen"`
	// ReadTimeout bounds how long reading a request may take.
	ReadTimeout time.Duration `mapstructure:"read_timeout" yaml:"read_timeout" toml:"read_timeout"`
	// ShutdownTimeout bounds graceful shutdown on SIGINT/SIGTERM.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" toml:"shutdown_timeout"`
}

// CacheConfig controls the LRU store.
type CacheConfig struct {
	// Capacity is the maximum number of distinct keys held. Must be >= 1.
	Capacity int `mapstructure:"capacity" yaml:"capacity" toml:"capacity"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	// Level is one of trace, debug, info, warn, error.
	Level string `mapstructure:"level" yaml:"level" toml:"level"`
	// Format is "console" or "json".
	Format string `mapstructure:"format" yaml:"format" toml:"format"`
}

// DefaultConfig returns the configuration used when no file or environment
// overrides are present.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Listen:          "127.0.0.1:7600",
			ReadTimeout:     10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Cache: CacheConfig{
			Capacity: 1024,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// GetConfigDir returns the directory holding config.toml, creating nothing.
// KVLRU_CONFIG_DIR overrides the default user config location.
func GetConfigDir() (string, error) {
	if dir := os.Getenv("KVLRU_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine user config directory: %w", err)
	}
	return filepath.Join(base, "kvlru"), nil
}

// EnsureDirectories creates the config directory if it does not exist.
func EnsureDirectories() error {
	dir, err := GetConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("failed to create config directory %s: %w", dir, err)
	}
	return nil
}

// validateConfig checks the loaded configuration for values the rest of the
// program cannot work with.
func validateConfig(cfg *Config) error {
	if cfg.Cache.Capacity < 1 {
		return fmt.Errorf("cache.capacity must be at least 1, got %d", cfg.Cache.Capacity)
	}
	if cfg.Server.Listen == "" {
		return fmt.Errorf("server.listen must not be empty")
	}
	if cfg.Server.ReadTimeout < 0 {
		return fmt.Errorf("server.read_timeout must not be negative")
	}
	if cfg.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("server.shutdown_timeout must not be negative")
	}
	switch cfg.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", cfg.Logging.Format)
	}
	return nil
}
