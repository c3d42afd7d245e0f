package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
}

// NewManager creates a new configuration manager.
func NewManager() (*Manager, error) {
	v := viper.New()

	// TOML is the config format
	v.SetConfigName("config")
	v.SetConfigType("toml")

	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w", err)
	}
	v.AddConfigPath(configDir)
	v.AddConfigPath(".") // Current directory for development

	// Environment variable support: KVLRU_SERVER_LISTEN, KVLRU_CACHE_CAPACITY, ...
	v.SetEnvPrefix("KVLRU")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Legacy-style env names used by the logging package
	if err := v.BindEnv("logging.level", "KVLRU_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind KVLRU_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "KVLRU_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind KVLRU_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:     v,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables.
// A missing config file is not an error; defaults apply.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadLocked()
}

func (m *Manager) loadLocked() error {
	m.setDefaults()

	if err := m.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := m.viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = cfg
	return nil
}

// setDefaults registers the default values with viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.viper.SetDefault("server.listen", defaults.Server.Listen)
	m.viper.SetDefault("server.read_timeout", defaults.Server.ReadTimeout)
	m.viper.SetDefault("server.shutdown_timeout", defaults.Server.ShutdownTimeout)
	m.viper.SetDefault("cache.capacity", defaults.Cache.Capacity)
	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
}

// Get returns the currently loaded configuration.
// Load must have been called first; otherwise defaults are returned.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.config == nil {
		return DefaultConfig()
	}
	return m.config
}

// OnChange registers a callback invoked after every successful reload.
func (m *Manager) OnChange(fn func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, fn)
}

// reload re-reads the config file. Caller must hold the write lock.
func (m *Manager) reload() error {
	return m.loadLocked()
}
