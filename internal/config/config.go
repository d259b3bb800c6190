// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for alice.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/alice-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete alice configuration.
type Config struct {
	API   APIConfig   `toml:"api"`
	UI    UIConfig    `toml:"ui"`
	Queue QueueConfig `toml:"queue"`
}

// APIConfig points the client at the backend.
type APIConfig struct {
	// BaseURL is the backend API base URL.
	BaseURL string `toml:"base_url"`
	// StreamURL is the host for the chat streaming endpoint. Defaults to
	// BaseURL; set it to the backend's direct address when BaseURL goes
	// through a buffering proxy.
	StreamURL string `toml:"stream_url"`
	// TimeoutSecs is the timeout for non-streaming requests.
	TimeoutSecs int `toml:"timeout_secs"`
}

// UIConfig controls presentation.
type UIConfig struct {
	// Theme selects the color theme: "dark" or "light".
	Theme string `toml:"theme"`
	// AnimationDelimiter selects reveal granularity for streamed replies:
	// "" animates rune by rune, " " word by word.
	AnimationDelimiter string `toml:"animation_delimiter"`
	// MarkdownWidth is the render width for markdown output (0 = terminal).
	MarkdownWidth int `toml:"markdown_width"`
}

// QueueConfig controls processing-queue polling.
type QueueConfig struct {
	// PollIntervalSecs is how often the queue page refreshes.
	PollIntervalSecs int `toml:"poll_interval_secs"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:     "http://127.0.0.1:8000",
			TimeoutSecs: 30,
		},
		UI: UIConfig{
			Theme:              "dark",
			AnimationDelimiter: "",
			MarkdownWidth:      0,
		},
		Queue: QueueConfig{
			PollIntervalSecs: 5,
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the alice configuration directory (~/.alice).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".alice"), nil
}

// ConfigPath returns the path to the TOML configuration file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// TokenPath returns the path to the encrypted token file.
func TokenPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "token"), nil
}

// CachePath returns the path to the offline cache database.
func CachePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "cache.db"), nil
}

// EnsureConfigDir creates the configuration directory with restrictive
// permissions (it holds the token file).
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o700)
}

// =============================================================================
// LOADING AND SAVING
// =============================================================================

// Load reads the configuration file, fills defaults, and applies
// environment overrides. A missing file is not an error: defaults apply.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err != nil {
		cfg.ApplyEnvOverrides()
		return cfg, nil
	}

	if err := LoadFromPath(cfg, path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	cfg.ApplyEnvOverrides()
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromPath decodes a TOML configuration file into cfg.
func LoadFromPath(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return nil
}

// Save writes the configuration atomically.
func Save(cfg *Config) error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return util.AtomicWriteFile(path, buf.Bytes(), 0o600)
}

// fillDefaults patches zero values left by a partial config file.
func (c *Config) fillDefaults() {
	def := Default()
	if c.API.BaseURL == "" {
		c.API.BaseURL = def.API.BaseURL
	}
	if c.API.StreamURL == "" {
		c.API.StreamURL = c.API.BaseURL
	}
	if c.API.TimeoutSecs <= 0 {
		c.API.TimeoutSecs = def.API.TimeoutSecs
	}
	if c.UI.Theme == "" {
		c.UI.Theme = def.UI.Theme
	}
	if c.Queue.PollIntervalSecs <= 0 {
		c.Queue.PollIntervalSecs = def.Queue.PollIntervalSecs
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the configuration for values that would only fail later
// and more confusingly.
func (c *Config) Validate() error {
	if _, err := url.ParseRequestURI(c.API.BaseURL); err != nil {
		return fmt.Errorf("api.base_url %q is not a valid URL: %w", c.API.BaseURL, err)
	}
	if c.API.StreamURL != "" {
		if _, err := url.ParseRequestURI(c.API.StreamURL); err != nil {
			return fmt.Errorf("api.stream_url %q is not a valid URL: %w", c.API.StreamURL, err)
		}
	}
	switch c.UI.Theme {
	case "dark", "light":
	default:
		return fmt.Errorf("ui.theme %q is not one of dark, light", c.UI.Theme)
	}
	switch c.UI.AnimationDelimiter {
	case "", " ":
	default:
		return fmt.Errorf("ui.animation_delimiter must be \"\" or \" \"")
	}
	return nil
}

// ApplyEnvOverrides applies environment variable overrides, which win over
// the file.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("ALICE_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("ALICE_STREAM_URL"); v != "" {
		c.API.StreamURL = v
	}
	if v := os.Getenv("ALICE_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("ALICE_TIMEOUT_SECS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			c.API.TimeoutSecs = secs
		}
	}
}

// =============================================================================
// GLOBAL ACCESS
// =============================================================================

var (
	globalConfig *Config
	globalMu     sync.RWMutex
)

// Global returns the process-wide configuration, loading it on first use.
func Global() *Config {
	globalMu.RLock()
	if globalConfig != nil {
		defer globalMu.RUnlock()
		return globalConfig
	}
	globalMu.RUnlock()

	globalMu.Lock()
	defer globalMu.Unlock()
	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			cfg = Default()
			cfg.ApplyEnvOverrides()
			cfg.fillDefaults()
		}
		globalConfig = cfg
	}
	return globalConfig
}

// SetGlobal replaces the process-wide configuration (live reload, tests).
func SetGlobal(cfg *Config) {
	globalMu.Lock()
	globalConfig = cfg
	globalMu.Unlock()
}
