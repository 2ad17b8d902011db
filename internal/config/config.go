// Package config loads lyrview configuration from TOML files.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	defaultNudgeStepMs    = 100
	defaultTickIntervalMs = 200
)

type Config struct {
	NudgeStepMs    int    `koanf:"nudge_step_ms"`    // sync offset increment per nudge
	TickIntervalMs int    `koanf:"tick_interval_ms"` // position tick granularity
	CacheDir       string `koanf:"cache_dir"`        // lyrics cache dir (empty = XDG default)

	// lrclib.net API lookup
	Lrclib LrclibConfig `koanf:"lrclib"`
}

// LrclibConfig holds lrclib API configuration.
type LrclibConfig struct {
	Disabled  bool   `koanf:"disabled"`   // skip the network lookup entirely
	UserAgent string `koanf:"user_agent"` // override the User-Agent header
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.CacheDir != "" {
		cfg.CacheDir = expandPath(cfg.CacheDir)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/lyrview/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "lyrview", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// NudgeStep returns the offset nudge step with the default applied.
func (c *Config) NudgeStep() time.Duration {
	ms := c.NudgeStepMs
	if ms <= 0 {
		ms = defaultNudgeStepMs
	}
	return time.Duration(ms) * time.Millisecond
}

// TickInterval returns the position tick interval with the default applied.
// Intervals below 50ms are raised to the default; faster ticks only burn CPU.
func (c *Config) TickInterval() time.Duration {
	ms := c.TickIntervalMs
	if ms < 50 {
		ms = defaultTickIntervalMs
	}
	return time.Duration(ms) * time.Millisecond
}

// LyricsCacheDir returns the configured cache dir, or the XDG default.
func (c *Config) LyricsCacheDir() string {
	if c.CacheDir != "" {
		return c.CacheDir
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, "lyrview", "lyrics")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cache", "lyrview", "lyrics")
}
