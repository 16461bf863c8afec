package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resume-goat/resume-goat/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"RGOAT_DB_PATH", "RGOAT_PORT", "RGOAT_SERVER_URL", "RGOAT_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "rgoat.yaml")
	err := os.WriteFile(path, []byte("db_path: /data/jobs.db\nport: 9090\nlog_level: debug\n"), 0o600)
	require.NoError(t, err)

	t.Setenv("RGOAT_PORT", "9191")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/jobs.db", cfg.DBPath)
	assert.Equal(t, 9191, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "http://localhost:8080", cfg.ServerURL)
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [1, 2"), 0o600))
	_, err := config.Load(path)
	assert.Error(t, err)

	t.Setenv("RGOAT_PORT", "eighty")
	_, err = config.Load("")
	assert.Error(t, err)

	t.Setenv("RGOAT_PORT", "")
	t.Setenv("RGOAT_LOG_LEVEL", "loud")
	_, err = config.Load("")
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	level, err := config.ParseLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	level, err = config.ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}
