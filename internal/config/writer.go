package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// defaultConfigTOML is the commented template written by WriteDefaultConfig.
const defaultConfigTOML = `# kvlru configuration
# Every value below can be overridden with KVLRU_* environment variables,
# e.g. KVLRU_CACHE_CAPACITY=4096 or KVLRU_SERVER_LISTEN=0.0.0.0:7600.

[server]
# Address the HTTP server binds to.
listen = "127.0.0.1:7600"
# Request read timeout.
read_timeout = "10s"
# Graceful shutdown timeout on SIGINT/SIGTERM.
shutdown_timeout = "5s"

[cache]
# Maximum number of distinct keys held; the least recently used entry is
# evicted when a new key would exceed this. Must be at least 1.
capacity = 1024

[logging]
# One of: trace, debug, info, warn, error.
level = "info"
# One of: console, json.
format = "console"
`

// WriteDefaultConfig writes the commented default config.toml, refusing to
// overwrite an existing file. Returns the path written.
func WriteDefaultConfig() (string, error) {
	if err := EnsureDirectories(); err != nil {
		return "", err
	}

	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config file already exists: %s", path)
	}

	if err := os.WriteFile(path, []byte(defaultConfigTOML), filePerm); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return path, nil
}
