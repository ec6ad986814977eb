package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the user configuration, loaded from a TOML file.
// Missing fields keep their defaults, so a partial file is fine.
type Config struct {
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
	Score  ScoreConfig  `toml:"score"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	// Backend is one of "file", "redis", or "none".
	Backend string `toml:"backend"`
	// Dir overrides the file backend's directory. Empty uses the XDG
	// default.
	Dir string `toml:"dir"`
	// RedisAddr is the address of the Redis instance for the redis
	// backend, e.g. "localhost:6379".
	RedisAddr string `toml:"redis_addr"`
	// TTLMinutes bounds the lifetime of cached results. Zero means
	// entries never expire.
	TTLMinutes int `toml:"ttl_minutes"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// ScoreConfig sets score command defaults.
type ScoreConfig struct {
	Algo          string  `toml:"algo"`
	MaxIterations int     `toml:"max_iterations"`
	MinDifference float64 `toml:"min_difference"`
	Damping       float64 `toml:"damping"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Cache:  CacheConfig{Backend: "file"},
		Server: ServerConfig{Addr: ":8080"},
		Score: ScoreConfig{
			Algo:          "pagerank",
			MaxIterations: 100,
			MinDifference: 1e-6,
			Damping:       0.85,
		},
	}
}

// LoadConfig reads a TOML config file on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefaultConfig loads ~/.config/bitgraph/config.toml when present,
// falling back to the defaults when the file is missing or unreadable.
func LoadDefaultConfig() *Config {
	path, err := configPath()
	if err != nil {
		return DefaultConfig()
	}
	if _, err := os.Stat(path); err != nil {
		return DefaultConfig()
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

// configPath returns the config file location using the XDG convention.
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
