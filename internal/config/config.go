// Package config loads the Mingle client configuration from a TOML file,
// falling back to defaults when the file is absent.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings Mingle needs to talk to the platform API.
type Config struct {
	APIBaseURL string
	PageSize   int
	Theme      string
	StateDir   string
}

const (
	defaultConfigPath = "~/.config/mingle/config.toml"
	defaultStateDir   = "~/.config/mingle"
	defaultAPIBaseURL = "http://127.0.0.1:8080/api"
	defaultPageSize   = 10
	defaultTheme      = "Dracula"
)

// Load locates and parses the mingle config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		APIBaseURL: defaultAPIBaseURL,
		PageSize:   defaultPageSize,
		Theme:      defaultTheme,
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.StateDir = mustExpand(defaultStateDir)
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
		APIBaseURL string `toml:"api_base_url"`
		PageSize   int    `toml:"page_size"`
		Theme      string `toml:"theme"`
		StateDir   string `toml:"state_dir"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.APIBaseURL = strings.TrimSpace(raw.APIBaseURL)
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaultAPIBaseURL
	}

	if raw.PageSize > 0 {
		cfg.PageSize = raw.PageSize
	}

	cfg.Theme = strings.TrimSpace(raw.Theme)
	if cfg.Theme == "" {
		cfg.Theme = defaultTheme
	}

	cfg.StateDir = strings.TrimSpace(raw.StateDir)
	if cfg.StateDir == "" {
		cfg.StateDir = defaultStateDir
	}
	cfg.StateDir = mustExpand(cfg.StateDir)

	return cfg, nil
}

// CredentialsPath returns the path to the persisted session credentials file.
func (c Config) CredentialsPath() string {
	if strings.TrimSpace(c.StateDir) == "" {
		return mustExpand(defaultStateDir + "/session.toml")
	}
	return filepath.Join(c.StateDir, "session.toml")
}

// DebugLogPath returns the path to the diagnostics log file.
func (c Config) DebugLogPath() string {
	if strings.TrimSpace(c.StateDir) == "" {
		return mustExpand(defaultStateDir + "/debug.log")
	}
	return filepath.Join(c.StateDir, "debug.log")
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
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
