package config

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"ENVIRONMENT", "LOG_LEVEL", "ADVENTURE_SAVE_BACKEND", "ADVENTURE_SAVE_DIR", "REDIS_URL",
		"ADVENTURE_SAVE_TTL", "ADVENTURE_DATA_DIR", "ADVENTURE_WORLD_FILE", "ADVENTURE_MAX_TURNS", "ADVENTURE_SEED",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, BackendFile, cfg.SaveBackend)
	assert.Equal(t, os.TempDir(), cfg.SaveDir)
	assert.Equal(t, "localhost:6379", cfg.RedisURL)
	assert.Zero(t, cfg.SaveTTL)
	assert.Equal(t, "./data", cfg.DataDir)
	assert.Empty(t, cfg.WorldFile)
	assert.Equal(t, 20, cfg.MaxTurns)
	assert.Zero(t, cfg.Seed)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("ADVENTURE_SAVE_BACKEND", "Redis")
	t.Setenv("ADVENTURE_SAVE_DIR", "/var/saves")
	t.Setenv("REDIS_URL", "redis://cache:6379/1")
	t.Setenv("ADVENTURE_SAVE_TTL", "72h")
	t.Setenv("ADVENTURE_MAX_TURNS", "5")
	t.Setenv("ADVENTURE_SEED", "42")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, BackendRedis, cfg.SaveBackend)
	assert.Equal(t, "/var/saves", cfg.SaveDir)
	assert.Equal(t, "redis://cache:6379/1", cfg.RedisURL)
	assert.Equal(t, 72*time.Hour, cfg.SaveTTL)
	assert.Equal(t, 5, cfg.MaxTurns)
	assert.Equal(t, uint64(42), cfg.Seed)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"unknown backend", "ADVENTURE_SAVE_BACKEND", "s3"},
		{"zero max turns", "ADVENTURE_MAX_TURNS", "0"},
		{"non-numeric max turns", "ADVENTURE_MAX_TURNS", "many"},
		{"bad ttl", "ADVENTURE_SAVE_TTL", "soon"},
		{"negative seed", "ADVENTURE_SEED", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLogLevel(in), in)
	}
}
