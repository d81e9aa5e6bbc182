package storage

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/jwebster45206/adventure-engine/pkg/state"
	"github.com/jwebster45206/adventure-engine/pkg/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testDoc(id string) *state.SaveDocument {
	p := state.NewPlayer("Aria")
	p.AddItems("map")
	return &state.SaveDocument{
		GameID:        id,
		Player:        *p,
		State:         state.StatusPlaying,
		CurrentScene:  "deep_forest",
		ScenesVisited: []string{"deep_forest"},
		History:       []state.HistoryRecord{},
	}
}

func writeWorlds(t *testing.T, dataDir string) {
	t.Helper()
	dir := filepath.Join(dataDir, "worlds")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create worlds dir: %v", err)
	}
	files := map[string]string{
		"tiny.json":  `{"name": "Tiny", "start_scene": "room", "scenes": {"room": {"name": "Room", "options": [{"text": "rest", "action": "rest"}]}}}`,
		"cave.yaml":  "name: Cave\nstart_scene: mouth\nscenes:\n  mouth:\n    name: Mouth\n    options:\n      - {text: rest, action: rest}\n",
		"broken.json": `{"name": `,
		"notes.txt":   "not a world",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
}

func TestFileStorage_SaveLoad(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	fs := NewFileStorage(dir, "", testLogger())

	if err := fs.Ping(ctx); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}

	if err := fs.SaveGame(ctx, testDoc("game-1")); err != nil {
		t.Fatalf("SaveGame failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "game_save_game-1.json")); err != nil {
		t.Errorf("Expected save file on disk: %v", err)
	}

	loaded, err := fs.LoadGame(ctx, "game-1")
	if err != nil {
		t.Fatalf("LoadGame failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("Expected a save document")
	}
	if loaded.CurrentScene != "deep_forest" || len(loaded.Player.Inventory) != 1 {
		t.Errorf("Unexpected document %+v", loaded)
	}
}

func TestFileStorage_LoadMissing(t *testing.T) {
	fs := NewFileStorage(t.TempDir(), "", testLogger())
	doc, err := fs.LoadGame(context.Background(), "nope")
	if err != nil {
		t.Fatalf("Expected no error for a missing save, got %v", err)
	}
	if doc != nil {
		t.Error("Expected nil document")
	}
}

func TestFileStorage_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	fs := NewFileStorage(dir, "", testLogger())

	for _, id := range []string{"b", "a"} {
		if err := fs.SaveGame(ctx, testDoc(id)); err != nil {
			t.Fatalf("SaveGame failed: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	ids, err := fs.ListGames(ctx)
	if err != nil {
		t.Fatalf("ListGames failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Errorf("Expected [a b], got %v", ids)
	}

	if err := fs.DeleteGame(ctx, "a"); err != nil {
		t.Fatalf("DeleteGame failed: %v", err)
	}
	if err := fs.DeleteGame(ctx, "a"); err != nil {
		t.Errorf("Expected deleting twice to succeed, got %v", err)
	}
	ids, _ = fs.ListGames(ctx)
	if len(ids) != 1 || ids[0] != "b" {
		t.Errorf("Expected [b], got %v", ids)
	}
}

func TestFileStorage_InvalidGameID(t *testing.T) {
	ctx := context.Background()
	fs := NewFileStorage(t.TempDir(), "", testLogger())

	for _, id := range []string{"", "../escape", "a/b"} {
		if err := fs.SaveGame(ctx, testDoc(id)); err == nil {
			t.Errorf("Expected error saving game id %q", id)
		}
		if _, err := fs.LoadGame(ctx, id); err == nil {
			t.Errorf("Expected error loading game id %q", id)
		}
	}
}

func TestFileStorage_PingMissingDir(t *testing.T) {
	fs := NewFileStorage(filepath.Join(t.TempDir(), "missing"), "", testLogger())
	if err := fs.Ping(context.Background()); err == nil {
		t.Error("Expected ping to fail for a missing directory")
	}
}

func TestFileStorage_Worlds(t *testing.T) {
	ctx := context.Background()
	dataDir := t.TempDir()
	writeWorlds(t, dataDir)
	fs := NewFileStorage(t.TempDir(), dataDir, testLogger())

	worlds, err := fs.ListWorlds(ctx)
	if err != nil {
		t.Fatalf("ListWorlds failed: %v", err)
	}
	if len(worlds) != 2 || worlds["Tiny"] != "tiny.json" || worlds["Cave"] != "cave.yaml" {
		t.Errorf("Unexpected worlds %v", worlds)
	}

	w, err := fs.GetWorld(ctx, "cave.yaml")
	if err != nil {
		t.Fatalf("GetWorld failed: %v", err)
	}
	if w.StartScene != "mouth" {
		t.Errorf("Expected start scene mouth, got %s", w.StartScene)
	}

	if _, err := fs.GetWorld(ctx, "missing.json"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if _, err := fs.GetWorld(ctx, "../tiny.json"); err == nil {
		t.Error("Expected error for a path outside the worlds directory")
	}
}

func TestFileStorage_NoWorldsDir(t *testing.T) {
	fs := NewFileStorage(t.TempDir(), t.TempDir(), testLogger())
	worlds, err := fs.ListWorlds(context.Background())
	if err != nil {
		t.Fatalf("ListWorlds failed: %v", err)
	}
	if len(worlds) != 0 {
		t.Errorf("Expected no worlds, got %v", worlds)
	}
}
