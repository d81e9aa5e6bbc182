package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jwebster45206/adventure-engine/internal/config"
	"github.com/jwebster45206/adventure-engine/pkg/engine"
	"github.com/jwebster45206/adventure-engine/pkg/narrator"
	"github.com/jwebster45206/adventure-engine/pkg/scenario"
	"github.com/jwebster45206/adventure-engine/pkg/state"
	"github.com/jwebster45206/adventure-engine/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestSession(t *testing.T) (*session, *storage.MockStorage) {
	t.Helper()
	store := storage.NewMockStorage()
	eng := engine.New("Aria", engine.WithLogger(testLogger()))
	dm := narrator.NewWithPersonality(narrator.Epic, rand.New(rand.NewPCG(1, 2)))
	s := newSession(eng, store, dm, testLogger())
	s.now = func() time.Time { return time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC) }
	return s, store
}

func TestSession_Start(t *testing.T) {
	s, _ := newTestSession(t)
	text := s.start(nil)

	assert.Contains(t, text, "(style: Epic)")
	assert.Contains(t, text, "Items: ")
	assert.Contains(t, text, "Options:\n1. enter forest deeper\n2. find another path")
	assert.Equal(t, "The Mystic Kingdom", s.world.Name)
	assert.False(t, s.finished())
}

func TestSession_Context(t *testing.T) {
	s, _ := newTestSession(t)
	s.start(nil)

	tests := []struct {
		hour int
		want string
	}{
		{3, "night"}, {6, "dawn"}, {8, "dawn"}, {9, "day"}, {19, "day"}, {20, "night"},
	}
	for _, tt := range tests {
		s.now = func() time.Time { return time.Date(2026, 5, 1, tt.hour, 0, 0, 0, time.UTC) }
		assert.Equal(t, tt.want, s.context().TimeOfDay, "hour %d", tt.hour)
	}
}

func TestSession_Actions(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSession(t)
	s.start(nil)

	r := s.handle(ctx, "   ")
	assert.Equal(t, replyError, r.Kind)
	assert.Equal(t, engine.MsgInvalidChoice, r.Text)

	r = s.handle(ctx, "1")
	assert.Equal(t, replyNarration, r.Kind)
	assert.Contains(t, r.Text, "NPCs: goblin")
	assert.Contains(t, r.Text, "1. sneak closer")

	r = s.handle(ctx, "fight")
	assert.Equal(t, replyNarration, r.Kind)
	assert.True(t, strings.HasPrefix(r.Text, "You did: draw your weapon and fight"), r.Text)
	assert.Contains(t, r.Text, "appears!")

	r = s.handle(ctx, "shout")
	assert.Contains(t, r.Text, "You carry out the action.")
	assert.NotContains(t, r.Text, "appears!")
	assert.False(t, r.Quit)
}

func TestSession_BlockedMove(t *testing.T) {
	s, _ := newTestSession(t)
	s.start(nil)
	s.handle(context.Background(), "find another path")

	r := s.handle(context.Background(), "follow the path")
	assert.Equal(t, replyError, r.Kind)
	assert.Equal(t, engine.MsgCannotGo, r.Text)
}

func TestSession_NotStarted(t *testing.T) {
	s, _ := newTestSession(t)
	r := s.handle(context.Background(), "look")
	assert.Equal(t, replyError, r.Kind)
	assert.Equal(t, engine.MsgNotInitialized, r.Text)
	assert.Equal(t, engine.MsgNotInitialized, s.narrateScene())
}

func TestSession_QuitAndRestart(t *testing.T) {
	w := &scenario.World{
		Name:       "End",
		StartScene: "end",
		Scenes: map[string]scenario.Scene{
			"end": {Name: "End", Description: "The end.", Options: []scenario.Option{
				{Text: "play again", Action: scenario.ActionRestart},
				{Text: "quit game", Action: scenario.ActionQuit},
			}},
		},
	}
	s, _ := newTestSession(t)
	s.start(w)

	r := s.handle(context.Background(), "play again")
	assert.Equal(t, replyNarration, r.Kind)
	assert.True(t, strings.HasPrefix(r.Text, engine.MsgRestarted), r.Text)
	assert.Contains(t, r.Text, "The end.")

	r = s.handle(context.Background(), "quit")
	assert.Equal(t, replySystem, r.Kind)
	assert.True(t, r.Quit)
	assert.True(t, s.finished())
}

func TestSession_VictoryBanner(t *testing.T) {
	s, _ := newTestSession(t)
	s.start(nil)

	r := s.handle(context.Background(), "check inventory")
	assert.NotContains(t, r.Text, "Victory!")

	doc := s.eng.SaveDocument()
	doc.State = state.StatusWon
	require.NoError(t, s.eng.Restore(doc))

	r = s.handle(context.Background(), "check inventory")
	assert.True(t, strings.HasPrefix(r.Text, "Inventory: empty"), r.Text)
	assert.Contains(t, r.Text, "Victory!")
	assert.Contains(t, r.Text, "Aria completed the adventure!")

	r = s.handle(context.Background(), "check inventory")
	assert.NotContains(t, r.Text, "Victory!")
}

func TestSession_Commands(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSession(t)
	s.start(nil)
	s.handle(ctx, "check surroundings")

	r := s.handle(ctx, "/HELP")
	assert.Equal(t, helpText, r.Text)

	r = s.handle(ctx, "/look")
	assert.Equal(t, replyNarration, r.Kind)
	assert.Contains(t, r.Text, "Options:")

	r = s.handle(ctx, "/status")
	assert.Equal(t, replySystem, r.Kind)
	assert.Contains(t, r.Text, "Player: Aria\nHealth: 100\n")
	assert.Contains(t, r.Text, "Actions: 1")
	assert.NotContains(t, r.Text, "Inventory: empty")

	r = s.handle(ctx, "/story")
	assert.Equal(t, s.eng.StorySummary(), r.Text)

	r = s.handle(ctx, "/dance")
	assert.Equal(t, replyError, r.Kind)
	assert.Contains(t, r.Text, "Unknown command /dance")

	r = s.handle(ctx, "/load")
	assert.Equal(t, "Usage: /load <game id|file>", r.Text)
}

func TestSession_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSession(t)
	s.start(nil)

	r := s.handle(ctx, "/games")
	assert.Equal(t, "No saved games.", r.Text)

	s.handle(ctx, "enter forest deeper")
	r = s.handle(ctx, "/save")
	require.Equal(t, replySystem, r.Kind, r.Text)
	savedID := s.eng.GameID()
	assert.Equal(t, "Game saved as "+savedID, r.Text)

	r = s.handle(ctx, "/games")
	assert.Equal(t, "Saved games:\n• "+savedID, r.Text)

	s.handle(ctx, "flee")
	s.handle(ctx, "flee")
	r = s.handle(ctx, "/load "+savedID)
	require.Equal(t, replyNarration, r.Kind, r.Text)
	assert.True(t, strings.HasPrefix(r.Text, "Game loaded."))
	assert.Equal(t, "deep_forest", s.eng.CurrentScene().ID)
	assert.Len(t, s.eng.History(), 1)

	r = s.handle(ctx, "/load missing")
	assert.Equal(t, replyError, r.Kind)
	assert.Contains(t, r.Text, "Load failed")
}

func TestSession_LoadFromFile(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSession(t)
	s.start(nil)
	s.handle(ctx, "find another path")

	path, err := s.eng.SaveGame(filepath.Join(t.TempDir(), "save.json"))
	require.NoError(t, err)

	s.handle(ctx, "return")
	assert.Equal(t, "forest_entrance", s.eng.CurrentScene().ID)

	r := s.handle(ctx, "/load "+path)
	require.Equal(t, replyNarration, r.Kind, r.Text)
	assert.Equal(t, "path", s.eng.CurrentScene().ID)
}

func TestSession_SaveError(t *testing.T) {
	s, store := newTestSession(t)
	s.start(nil)
	store.SetSaveError(errors.New("disk full"))

	r := s.handle(context.Background(), "/save")
	assert.Equal(t, replyError, r.Kind)
	assert.Contains(t, r.Text, "disk full")
}

func TestSession_Copy(t *testing.T) {
	s, _ := newTestSession(t)
	s.start(nil)

	r := s.handle(context.Background(), "/copy")
	assert.Equal(t, replyError, r.Kind)

	var copied string
	s.copy = func(text string) error {
		copied = text
		return nil
	}
	r = s.handle(context.Background(), "/copy")
	assert.Equal(t, replySystem, r.Kind)
	assert.Equal(t, s.eng.StorySummary(), copied)
}

func TestFormatStatus(t *testing.T) {
	report := engine.StatusReport{
		Player:        state.Player{Name: "Aria", Health: 80, Gold: 5, Inventory: []string{}},
		CurrentScene:  "Deep Forest",
		State:         state.StatusPlaying,
		HistoryLength: 3,
	}
	want := "Player: Aria\nHealth: 80\nGold: 5\nInventory: empty\nScene: Deep Forest\nState: playing\nActions: 3"
	assert.Equal(t, want, formatStatus(report))
}

func TestParseOptions(t *testing.T) {
	cfg := &config.Config{MaxTurns: 20, Seed: 9, WorldFile: "haunted_castle.yaml"}

	newFlags := func() *flag.FlagSet {
		fs := flag.NewFlagSet("adventure", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		return fs
	}

	opts, err := parseOptions(newFlags(), nil, cfg)
	require.NoError(t, err)
	assert.Equal(t, options{
		mode:      modePlay,
		player:    "Adventurer",
		playstyle: "balanced",
		rival:     "cautious",
		scout:     "explorer",
		world:     "haunted_castle.yaml",
		maxTurns:  20,
		seed:      9,
	}, opts)

	opts, err = parseOptions(newFlags(), []string{"-mode", "watch-ai", "-player", "Bot", "-max-turns", "3", "-seed", "1"}, cfg)
	require.NoError(t, err)
	assert.Equal(t, modeWatchAI, opts.mode)
	assert.Equal(t, "Bot", opts.player)
	assert.Equal(t, 3, opts.maxTurns)
	assert.Equal(t, uint64(1), opts.seed)

	_, err = parseOptions(newFlags(), []string{"-mode", "party"}, cfg)
	assert.Error(t, err)
	_, err = parseOptions(newFlags(), []string{"-max-turns", "0"}, cfg)
	assert.Error(t, err)
	_, err = parseOptions(newFlags(), []string{"-bogus"}, cfg)
	assert.Error(t, err)
}

func TestLoadWorld(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMockStorage()
	store.AddWorld("tiny.json", &scenario.World{Name: "Tiny", StartScene: "room", Scenes: map[string]scenario.Scene{
		"room": {Name: "Room", Options: []scenario.Option{{Text: "rest", Action: scenario.ActionRest}}},
	}})

	w, err := loadWorld(ctx, store, "", testLogger())
	require.NoError(t, err)
	assert.Nil(t, w)

	w, err = loadWorld(ctx, store, "tiny.json", testLogger())
	require.NoError(t, err)
	assert.Equal(t, "Tiny", w.Name)

	_, err = loadWorld(ctx, store, "missing.json", testLogger())
	assert.ErrorIs(t, err, storage.ErrNotFound)

	path := filepath.Join(t.TempDir(), "cave.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: Cave\nstart_scene: mouth\nscenes:\n  mouth:\n    name: Mouth\n"), 0644))
	w, err = loadWorld(ctx, store, path, testLogger())
	require.NoError(t, err)
	assert.Equal(t, "Cave", w.Name)
}

func TestWatchAI(t *testing.T) {
	var out bytes.Buffer
	store := storage.NewMockStorage()
	opts := options{player: "Bot", playstyle: "explorer", maxTurns: 4}

	err := watchAI(context.Background(), &out, store, nil, opts, rand.New(rand.NewPCG(5, 6)), testLogger())
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Bot (explorer) sets off into The Mystic Kingdom.")
	assert.Contains(t, text, "Turn 1 | Forest Entrance")
	assert.Contains(t, text, "# Bot's Adventure")
	assert.Contains(t, text, "Turns: 4")

	ids, err := store.ListGames(context.Background())
	require.NoError(t, err)
	require.Len(t, ids, 1)
	assert.Contains(t, text, "Saved as "+ids[0])
}

func TestAIvsAI(t *testing.T) {
	var out bytes.Buffer
	opts := options{player: "Bot", playstyle: "aggressive", rival: "cautious", scout: "explorer", maxTurns: 3}

	err := aiVsAI(context.Background(), &out, nil, opts, rand.New(rand.NewPCG(5, 6)), testLogger())
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Bot (aggressive): 3 turns")
	assert.Contains(t, text, "Rival (cautious): 3 turns")
	assert.Contains(t, text, "Scout (explorer): 3 turns")
	assert.Equal(t, 2, strings.Count(text, "Rival (cautious)"))
	assert.Equal(t, 2, strings.Count(text, "wins!")+strings.Count(text, "It's a draw!"))
	assert.True(t, strings.Contains(text, "wins!") || strings.Contains(text, "It's a draw!"), text)
}
