package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/jwebster45206/adventure-engine/pkg/scenario"
	"github.com/jwebster45206/adventure-engine/pkg/storage"
)

// worldFiles serves world definitions from <dataDir>/worlds for every backend.
type worldFiles struct {
	dataDir string
	logger  *slog.Logger
}

func (w worldFiles) dir() string {
	return filepath.Join(w.dataDir, "worlds")
}

func isWorldFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// ListWorlds maps world names to their filenames. Files that fail to parse
// are skipped with a warning.
func (w worldFiles) ListWorlds(ctx context.Context) (map[string]string, error) {
	worlds := make(map[string]string)

	err := filepath.WalkDir(w.dir(), func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !isWorldFile(path) {
			return nil
		}

		world, err := scenario.LoadWorld(path)
		if err != nil {
			w.logger.Warn("Failed to load world file", "path", path, "error", err)
			return nil
		}

		worlds[world.Name] = filepath.Base(path)
		return nil
	})

	if err != nil {
		w.logger.Error("Failed to walk worlds directory", "error", err)
		return nil, fmt.Errorf("failed to list worlds: %w", err)
	}

	return worlds, nil
}

// GetWorld loads a world by filename from the worlds directory.
func (w worldFiles) GetWorld(ctx context.Context, filename string) (*scenario.World, error) {
	if filename != filepath.Base(filename) {
		return nil, fmt.Errorf("invalid world filename: %s", filename)
	}
	path := filepath.Join(w.dir(), filename)
	w.logger.Debug("Loading world", "filename", filename, "full_path", path)

	world, err := scenario.LoadWorld(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: world %s", storage.ErrNotFound, filename)
		}
		return nil, err
	}
	return world, nil
}
