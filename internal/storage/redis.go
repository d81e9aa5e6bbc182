package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/jwebster45206/adventure-engine/pkg/state"
	"github.com/jwebster45206/adventure-engine/pkg/storage"
	"github.com/redis/go-redis/v9"
)

const saveKeyPrefix = "savegame:"

// RedisStorage implements the Storage interface using Redis for save
// documents and the filesystem for world definitions.
type RedisStorage struct {
	worldFiles
	client *redis.Client
	ttl    time.Duration
}

// Ensure RedisStorage implements Storage interface
var _ storage.Storage = (*RedisStorage)(nil)

// NewRedisStorage creates a new Redis storage instance. redisURL is either a
// redis:// URL or a bare host:port. A zero ttl keeps saves forever.
func NewRedisStorage(redisURL, dataDir string, ttl time.Duration, logger *slog.Logger) (*RedisStorage, error) {
	opts := &redis.Options{Addr: redisURL}
	if strings.Contains(redisURL, "://") {
		parsed, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse redis URL: %w", err)
		}
		opts = parsed
	}

	if dataDir == "" {
		dataDir = "./data"
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &RedisStorage{
		worldFiles: worldFiles{dataDir: dataDir, logger: logger},
		client:     redis.NewClient(opts),
		ttl:        ttl,
	}, nil
}

// Health and lifecycle methods

func (r *RedisStorage) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// WaitForConnection waits for Redis to become available (used during startup)
func (r *RedisStorage) WaitForConnection(ctx context.Context) error {
	return r.waitForConnection(ctx, 30, 2*time.Second)
}

func (r *RedisStorage) waitForConnection(ctx context.Context, maxRetries int, retryDelay time.Duration) error {
	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}

		r.logger.Info("Redis connection established")
		return nil
	}

	return fmt.Errorf("redis did not become available after %d attempts", maxRetries)
}

// Save document operations (Redis-backed)

func (r *RedisStorage) SaveGame(ctx context.Context, doc *state.SaveDocument) error {
	if doc == nil {
		return errors.New("save document cannot be nil")
	}
	data, err := doc.Marshal()
	if err != nil {
		r.logger.Error("Failed to marshal save", "game_id", doc.GameID, "error", err)
		return err
	}

	if err := r.client.Set(ctx, saveKeyPrefix+doc.GameID, data, r.ttl).Err(); err != nil {
		r.logger.Error("Failed to save game", "game_id", doc.GameID, "error", err)
		return fmt.Errorf("failed to save game: %w", err)
	}
	return nil
}

func (r *RedisStorage) LoadGame(ctx context.Context, gameID string) (*state.SaveDocument, error) {
	data, err := r.client.Get(ctx, saveKeyPrefix+gameID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.logger.Warn("Save not found", "game_id", gameID)
			return nil, nil
		}
		r.logger.Error("Failed to load game", "game_id", gameID, "error", err)
		return nil, fmt.Errorf("failed to load game: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	return state.UnmarshalSaveDocument(data)
}

func (r *RedisStorage) DeleteGame(ctx context.Context, gameID string) error {
	if err := r.client.Del(ctx, saveKeyPrefix+gameID).Err(); err != nil {
		r.logger.Error("Failed to delete game", "game_id", gameID, "error", err)
		return fmt.Errorf("failed to delete game: %w", err)
	}
	return nil
}

// ListGames scans for save keys and returns their game IDs, sorted.
func (r *RedisStorage) ListGames(ctx context.Context) ([]string, error) {
	ids := []string{}
	iter := r.client.Scan(ctx, 0, saveKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, strings.TrimPrefix(iter.Val(), saveKeyPrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	sort.Strings(ids)
	return ids, nil
}
