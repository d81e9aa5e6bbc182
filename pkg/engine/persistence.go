package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jwebster45206/adventure-engine/pkg/state"
	"github.com/jwebster45206/adventure-engine/pkg/storage"
)

// ErrSaveNotFound is returned by Load when the store has no document for the ID.
var ErrSaveNotFound = errors.New("save not found")

// DefaultSavePath is where SaveGame writes when no path is given.
func DefaultSavePath(gameID string) string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("game_save_%s.json", gameID))
}

// SaveDocument captures the persisted part of the game. Only the last
// state.SaveHistoryLimit history records are kept.
func (e *Engine) SaveDocument() *state.SaveDocument {
	doc := &state.SaveDocument{
		GameID:        e.gameID,
		Player:        *e.player.Clone(),
		State:         e.status,
		ScenesVisited: e.VisitedScenes(),
		History:       state.TrimHistory(e.history),
		SavedAt:       e.now(),
	}
	if e.current != nil {
		doc.CurrentScene = e.current.ID
	}
	return doc
}

// Restore replaces player, status, game ID and history with the document's and
// re-resolves the current scene in the already initialized scene store. A
// scene the store does not know leaves the current scene unset.
func (e *Engine) Restore(doc *state.SaveDocument) error {
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("cannot restore game: %w", err)
	}

	e.player = doc.Player.Clone()
	e.status = doc.State
	e.gameID = doc.GameID
	e.history = append([]state.HistoryRecord{}, doc.History...)

	for _, id := range doc.ScenesVisited {
		if s, ok := e.scenes[id]; ok {
			s.Visited = true
		}
	}

	e.current = nil
	if doc.CurrentScene != "" {
		if scene, ok := e.scenes[doc.CurrentScene]; ok {
			e.current = scene
		} else {
			e.logger.Warn("Saved scene not in scene store", "scene", doc.CurrentScene, "game_id", doc.GameID)
		}
	}

	e.logger.Debug("Game restored", "game_id", e.gameID, "state", e.status, "history", len(e.history))
	return nil
}

// SaveGame writes the game to path, or to DefaultSavePath when path is empty,
// and returns the path written.
func (e *Engine) SaveGame(path string) (string, error) {
	if path == "" {
		path = DefaultSavePath(e.gameID)
	}
	if err := state.WriteSaveFile(path, e.SaveDocument()); err != nil {
		return "", err
	}
	e.logger.Info("Game saved", "game_id", e.gameID, "path", path)
	return path, nil
}

// LoadGame restores the game from a file written by SaveGame. The world must
// already be initialized.
func (e *Engine) LoadGame(path string) error {
	doc, err := state.ReadSaveFile(path)
	if err != nil {
		return err
	}
	return e.Restore(doc)
}

// Save persists the game through a storage backend.
func (e *Engine) Save(ctx context.Context, store storage.Storage) error {
	if err := store.SaveGame(ctx, e.SaveDocument()); err != nil {
		return fmt.Errorf("failed to save game %s: %w", e.gameID, err)
	}
	return nil
}

// Load restores the game with the given ID from a storage backend.
func (e *Engine) Load(ctx context.Context, store storage.Storage, gameID string) error {
	doc, err := store.LoadGame(ctx, gameID)
	if err != nil {
		return fmt.Errorf("failed to load game %s: %w", gameID, err)
	}
	if doc == nil {
		return fmt.Errorf("%w: %s", ErrSaveNotFound, gameID)
	}
	return e.Restore(doc)
}
