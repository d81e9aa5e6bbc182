package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jwebster45206/adventure-engine/internal/config"
	"github.com/jwebster45206/adventure-engine/pkg/storage"
)

// New opens the save backend named by the config. The Redis backend blocks
// until the server answers or ctx is done.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Storage, error) {
	switch cfg.SaveBackend {
	case config.BackendRedis:
		rs, err := NewRedisStorage(cfg.RedisURL, cfg.DataDir, cfg.SaveTTL, logger)
		if err != nil {
			return nil, err
		}
		if err := rs.WaitForConnection(ctx); err != nil {
			rs.Close()
			return nil, err
		}
		return rs, nil
	case config.BackendFile, "":
		return NewFileStorage(cfg.SaveDir, cfg.DataDir, logger), nil
	default:
		return nil, fmt.Errorf("unknown save backend %q", cfg.SaveBackend)
	}
}
