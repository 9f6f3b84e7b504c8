// Package config loads settings from defaults, an optional TOML file and the
// environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tgienger/todo/internal/db"
)

// Environment variables read by Load
const (
	EnvConfig    = "TODO_CONFIG"
	EnvDB        = "TODO_DB"
	EnvLogLevel  = "TODO_LOG_LEVEL"
	EnvLogFormat = "TODO_LOG_FORMAT"
	EnvPrompt    = "TODO_PROMPT"
)

// Config is the resolved application configuration
type Config struct {
	DBPath    string `toml:"db_path"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
	Prompt    string `toml:"prompt"`

	// File is the config file that was read, empty if none
	File string `toml:"-"`
}

// Default returns the configuration used when nothing overrides it
func Default() (*Config, error) {
	dbPath, err := db.DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	return &Config{
		DBPath:    dbPath,
		LogLevel:  "warn",
		LogFormat: "text",
		Prompt:    "auto",
	}, nil
}

// Load builds the configuration: defaults, then the config file, then the environment
func Load() (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	path, explicit := os.Getenv(EnvConfig), true
	if path == "" {
		path, explicit = defaultConfigFile(), false
	}
	if path != "" {
		if err := loadFile(cfg, expandPath(path), explicit); err != nil {
			return nil, err
		}
	}

	loadFromEnv(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.DBPath = expandPath(cfg.DBPath)
	return cfg, nil
}

// loadFile decodes a TOML file over cfg. A missing file is only an error
// when it was named explicitly.
func loadFile(cfg *Config, path string, explicit bool) error {
	_, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("loading config file %s: %w", path, err)
	}
	cfg.File = path
	return nil
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv(EnvDB); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv(EnvPrompt); v != "" {
		cfg.Prompt = v
	}
}

func (c *Config) validate() error {
	switch strings.ToLower(c.Prompt) {
	case "auto", "tui", "line":
		c.Prompt = strings.ToLower(c.Prompt)
	default:
		return fmt.Errorf("invalid prompt mode %q (want auto, tui or line)", c.Prompt)
	}
	if strings.TrimSpace(c.DBPath) == "" {
		return errors.New("db_path is empty")
	}
	return nil
}

// defaultConfigFile returns $XDG_CONFIG_HOME/todo/config.toml or its home fallback
func defaultConfigFile() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "todo", "config.toml")
}

// expandPath expands environment variables and a leading ~ in p
func expandPath(p string) string {
	if p == "" {
		return p
	}

	expanded := os.ExpandEnv(p)
	if expanded == "~" || strings.HasPrefix(expanded, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return expanded
		}
		return filepath.Join(home, strings.TrimPrefix(expanded[1:], "/"))
	}
	return expanded
}
