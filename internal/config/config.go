// Package config loads resume-goat settings from an optional YAML file and
// RGOAT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DBPath    string `yaml:"db_path"`
	Port      int    `yaml:"port"`
	ServerURL string `yaml:"server_url"`
	LogLevel  string `yaml:"log_level"`
}

func Default() Config {
	return Config{
		DBPath:    "./rgoat.db",
		Port:      8080,
		ServerURL: "http://localhost:8080",
		LogLevel:  "info",
	}
}

// Load starts from Default, applies the YAML file at path if it exists and
// then environment overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("RGOAT_DB_PATH"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("RGOAT_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid RGOAT_PORT %q: %w", v, err)
		}
		c.Port = port
	}
	if v := os.Getenv("RGOAT_SERVER_URL"); v != "" {
		c.ServerURL = v
	}
	if v := os.Getenv("RGOAT_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	return nil
}

func (c Config) Validate() error {
	if c.DBPath == "" {
		return errors.New("db_path must not be empty")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

// NewLogger returns a text logger on stderr at the configured level.
func (c Config) NewLogger() *slog.Logger {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
