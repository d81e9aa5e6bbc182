package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Save backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevelRaw string `env:"LOG_LEVEL" envDefault:"info"`
	LogLevel    slog.Level

	SaveBackend string        `env:"ADVENTURE_SAVE_BACKEND" envDefault:"file"`
	SaveDir     string        `env:"ADVENTURE_SAVE_DIR"`
	RedisURL    string        `env:"REDIS_URL" envDefault:"localhost:6379"`
	SaveTTL     time.Duration `env:"ADVENTURE_SAVE_TTL" envDefault:"0s"`

	DataDir   string `env:"ADVENTURE_DATA_DIR" envDefault:"./data"`
	WorldFile string `env:"ADVENTURE_WORLD_FILE"`
	MaxTurns  int    `env:"ADVENTURE_MAX_TURNS" envDefault:"20"`
	Seed      uint64 `env:"ADVENTURE_SEED" envDefault:"0"`
}

// Load reads the configuration from the environment, after loading a .env
// file from the working directory when there is one.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.LogLevel = parseLogLevel(cfg.LogLevelRaw)

	if cfg.SaveDir == "" {
		cfg.SaveDir = os.TempDir()
	}
	cfg.SaveBackend = strings.ToLower(cfg.SaveBackend)
	if cfg.SaveBackend != BackendFile && cfg.SaveBackend != BackendRedis {
		return nil, fmt.Errorf("unknown save backend %q", cfg.SaveBackend)
	}
	if cfg.MaxTurns <= 0 {
		return nil, fmt.Errorf("max turns must be positive, got %d", cfg.MaxTurns)
	}

	return &cfg, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
