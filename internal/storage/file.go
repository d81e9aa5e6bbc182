package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jwebster45206/adventure-engine/pkg/state"
	"github.com/jwebster45206/adventure-engine/pkg/storage"
)

const (
	saveFilePrefix = "game_save_"
	saveFileSuffix = ".json"
)

// FileStorage keeps one JSON save document per game in a directory.
type FileStorage struct {
	worldFiles
	saveDir string
}

// Ensure FileStorage implements Storage interface
var _ storage.Storage = (*FileStorage)(nil)

// NewFileStorage creates a file-backed store. An empty saveDir means the OS
// temp directory, an empty dataDir means ./data.
func NewFileStorage(saveDir, dataDir string, logger *slog.Logger) *FileStorage {
	if saveDir == "" {
		saveDir = os.TempDir()
	}
	if dataDir == "" {
		dataDir = "./data"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStorage{
		worldFiles: worldFiles{dataDir: dataDir, logger: logger},
		saveDir:    saveDir,
	}
}

// SavePath returns the file a game is saved to.
func (f *FileStorage) SavePath(gameID string) (string, error) {
	if gameID == "" || gameID != filepath.Base(gameID) {
		return "", fmt.Errorf("invalid game id %q", gameID)
	}
	return filepath.Join(f.saveDir, saveFilePrefix+gameID+saveFileSuffix), nil
}

func (f *FileStorage) Ping(ctx context.Context) error {
	info, err := os.Stat(f.saveDir)
	if err != nil {
		return fmt.Errorf("save directory unavailable: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("save path %s is not a directory", f.saveDir)
	}
	return nil
}

func (f *FileStorage) Close() error {
	return nil
}

func (f *FileStorage) SaveGame(ctx context.Context, doc *state.SaveDocument) error {
	if doc == nil {
		return errors.New("save document cannot be nil")
	}
	path, err := f.SavePath(doc.GameID)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(f.saveDir, 0755); err != nil {
		return fmt.Errorf("failed to create save directory: %w", err)
	}
	if err := state.WriteSaveFile(path, doc); err != nil {
		f.logger.Error("Failed to save game", "game_id", doc.GameID, "error", err)
		return err
	}
	f.logger.Debug("Game saved", "game_id", doc.GameID, "path", path)
	return nil
}

func (f *FileStorage) LoadGame(ctx context.Context, gameID string) (*state.SaveDocument, error) {
	path, err := f.SavePath(gameID)
	if err != nil {
		return nil, err
	}
	doc, err := state.ReadSaveFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			f.logger.Warn("Save not found", "game_id", gameID)
			return nil, nil
		}
		return nil, err
	}
	return doc, nil
}

func (f *FileStorage) DeleteGame(ctx context.Context, gameID string) error {
	path, err := f.SavePath(gameID)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete save: %w", err)
	}
	return nil
}

// ListGames returns the IDs of every save in the directory, sorted.
func (f *FileStorage) ListGames(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(f.saveDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read save directory: %w", err)
	}

	ids := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, saveFilePrefix) || !strings.HasSuffix(name, saveFileSuffix) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(strings.TrimPrefix(name, saveFilePrefix), saveFileSuffix))
	}
	sort.Strings(ids)
	return ids, nil
}
