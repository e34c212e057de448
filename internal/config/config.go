// Package config loads the tailview configuration file.
// Settings live in ~/.config/tailview/config.toml; a missing file means
// defaults across the board.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the runtime tunables.
type Config struct {
	TailPoll    time.Duration // file watch poll interval
	DrainEvery  time.Duration // queue drain cadence
	RecentLimit int           // recent source list cap
}

const (
	defaultConfigPath  = "~/.config/tailview/config.toml"
	defaultTailPoll    = 500 * time.Millisecond
	defaultDrainEvery  = 500 * time.Millisecond
	defaultRecentLimit = 10
)

// Load locates and parses the config, falling back to defaults when the
// file is missing. An empty path uses the default location.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		TailPoll:    defaultTailPoll,
		DrainEvery:  defaultDrainEvery,
		RecentLimit: defaultRecentLimit,
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		TailPollMS   int `toml:"tail_poll_ms"`
		DrainEveryMS int `toml:"drain_every_ms"`
		RecentLimit  int `toml:"recent_limit"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if raw.TailPollMS > 0 {
		cfg.TailPoll = time.Duration(raw.TailPollMS) * time.Millisecond
	}
	if raw.DrainEveryMS > 0 {
		cfg.DrainEvery = time.Duration(raw.DrainEveryMS) * time.Millisecond
	}
	if raw.RecentLimit > 0 {
		cfg.RecentLimit = raw.RecentLimit
	}

	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
