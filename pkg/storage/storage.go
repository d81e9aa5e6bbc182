package storage

import (
	"context"
	"errors"

	"github.com/jwebster45206/adventure-engine/pkg/scenario"
	"github.com/jwebster45206/adventure-engine/pkg/state"
)

// ErrNotFound is returned when a requested world file does not exist.
var ErrNotFound = errors.New("not found")

// Storage defines a unified interface for all storage operations.
// Save documents live in the configured backend (filesystem or Redis);
// world definitions are always read from the data directory.
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// Save document operations, keyed by game ID
	SaveGame(ctx context.Context, doc *state.SaveDocument) error
	LoadGame(ctx context.Context, gameID string) (*state.SaveDocument, error) // nil, nil when absent
	DeleteGame(ctx context.Context, gameID string) error
	ListGames(ctx context.Context) ([]string, error)

	// World operations (filesystem-backed)
	ListWorlds(ctx context.Context) (map[string]string, error) // world name -> filename
	GetWorld(ctx context.Context, filename string) (*scenario.World, error)
}
