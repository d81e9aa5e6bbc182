package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/jwebster45206/adventure-engine/pkg/engine"
	"github.com/jwebster45206/adventure-engine/pkg/narrator"
	"github.com/jwebster45206/adventure-engine/pkg/scenario"
	"github.com/jwebster45206/adventure-engine/pkg/state"
	"github.com/jwebster45206/adventure-engine/pkg/storage"
)

const helpText = `Commands:
• /help - Show this help
• /look - Describe the current scene again
• /status - Show player and game status
• /story - Show the story so far
• /save - Save the game
• /games - List saved games
• /load <game id|file> - Load a saved game
• /copy - Copy the story to the clipboard
• Ctrl+C - Quit game

How to play:
• Type an option number, or part of its text, and press Enter`

type replyKind int

const (
	replyNarration replyKind = iota
	replySystem
	replyError
)

// reply is what one line of player input produces.
type reply struct {
	Kind replyKind
	Text string
	Quit bool
}

// session binds an engine to its save store and narrator. It holds no UI
// state so both the console and tests can drive it.
type session struct {
	eng    *engine.Engine
	store  storage.Storage
	dm     *narrator.DungeonMaster
	world  *scenario.World
	logger *slog.Logger
	now    func() time.Time
	copy   func(string) error

	celebrated bool
}

func newSession(eng *engine.Engine, store storage.Storage, dm *narrator.DungeonMaster, logger *slog.Logger) *session {
	return &session{
		eng:    eng,
		store:  store,
		dm:     dm,
		logger: logger,
		now:    time.Now,
		copy:   func(string) error { return errors.New("clipboard not available") },
	}
}

// start initializes the world and returns the opening narration.
func (s *session) start(w *scenario.World) string {
	s.eng.InitializeWorld(w)
	s.world = s.eng.World()
	s.logger.Info("Game started", "game_id", s.eng.GameID(), "world", s.world.Name)
	return s.dm.IntroduceGame() + "\n\n" + s.narrateScene()
}

func (s *session) context() *narrator.Context {
	c := narrator.Context{Weather: "clear", PlayerHealth: s.eng.Player().Health}
	switch h := s.now().Hour(); {
	case h < 6 || h >= 20:
		c.TimeOfDay = "night"
	case h < 9:
		c.TimeOfDay = "dawn"
	default:
		c.TimeOfDay = "day"
	}
	return &c
}

func (s *session) narrateScene() string {
	scene := s.eng.CurrentScene()
	if scene == nil {
		return engine.MsgNotInitialized
	}

	var sb strings.Builder
	sb.WriteString(s.dm.DescribeScene(scene, s.context()))
	if len(scene.Items) > 0 {
		sb.WriteString("\n\nItems: " + strings.Join(scene.Items, ", "))
	}
	if len(scene.NPCs) > 0 {
		sb.WriteString("\n\nNPCs: " + strings.Join(scene.NPCs, ", "))
	}
	sb.WriteString("\n\nOptions:")
	for i, opt := range scene.Options {
		fmt.Fprintf(&sb, "\n%d. %s", i+1, opt.Text)
	}
	return sb.String()
}

// handle runs a slash command or submits the input as an action.
func (s *session) handle(ctx context.Context, input string) reply {
	input = strings.TrimSpace(input)
	if strings.HasPrefix(input, "/") {
		return s.command(ctx, input)
	}
	return s.act(input)
}

func (s *session) act(input string) reply {
	return s.celebrate(s.respond(s.eng.ProcessAction(input)))
}

// celebrate appends the victory banner to the first reply after the game
// reaches the won status.
func (s *session) celebrate(r reply) reply {
	if s.eng.Status() != state.StatusWon {
		s.celebrated = false
		return r
	}
	if !s.celebrated {
		s.celebrated = true
		r.Text += "\n\n" + s.dm.CongratulateVictory(s.eng.Player().Name)
	}
	return r
}

func (s *session) respond(result engine.Result, scene *scenario.Scene) reply {
	switch result.Kind {
	case engine.ResultNotStarted, engine.ResultInvalid, engine.ResultBlocked:
		return reply{Kind: replyError, Text: result.Text}
	case engine.ResultMoved:
		return reply{Kind: replyNarration, Text: s.narrateScene()}
	case engine.ResultQuit:
		return reply{Kind: replySystem, Text: result.Text, Quit: true}
	case engine.ResultRestarted:
		return reply{Kind: replyNarration, Text: result.Text + "\n\n" + s.narrateScene()}
	case engine.ResultGeneric:
		return reply{Kind: replyNarration, Text: s.flavor(scene, result)}
	default:
		return reply{Kind: replyNarration, Text: result.Text}
	}
}

// flavor adds canned narration to actions the engine does not resolve.
func (s *session) flavor(scene *scenario.Scene, result engine.Result) string {
	history := s.eng.History()
	if len(history) == 0 {
		return result.Text
	}
	action := history[len(history)-1].Option.Action

	text := result.Text + "\n\n" + s.dm.ResolveAction(action)
	if action == scenario.ActionFight && scene != nil && scene.HasHostileNPC() {
		enc, err := s.dm.GenerateEncounter(len(s.eng.VisitedScenes()))
		if err != nil {
			s.logger.Warn("Failed to generate encounter", "error", err)
			return text
		}
		text += "\n\n" + narrator.AddDrama(enc.Description, enc.Difficulty)
	}
	return text
}

func (s *session) command(ctx context.Context, input string) reply {
	fields := strings.Fields(input)
	cmd := strings.ToLower(fields[0])
	args := fields[1:]

	switch cmd {
	case "/help":
		return reply{Kind: replySystem, Text: helpText}

	case "/look":
		return reply{Kind: replyNarration, Text: s.narrateScene()}

	case "/status":
		return reply{Kind: replySystem, Text: formatStatus(s.eng.StatusReport())}

	case "/story":
		return reply{Kind: replySystem, Text: s.eng.StorySummary()}

	case "/save":
		if err := s.eng.Save(ctx, s.store); err != nil {
			s.logger.Error("Failed to save game", "error", err)
			return reply{Kind: replyError, Text: "Save failed: " + err.Error()}
		}
		return reply{Kind: replySystem, Text: "Game saved as " + s.eng.GameID()}

	case "/games":
		ids, err := s.store.ListGames(ctx)
		if err != nil {
			return reply{Kind: replyError, Text: "Could not list saves: " + err.Error()}
		}
		if len(ids) == 0 {
			return reply{Kind: replySystem, Text: "No saved games."}
		}
		return reply{Kind: replySystem, Text: "Saved games:\n• " + strings.Join(ids, "\n• ")}

	case "/load":
		if len(args) != 1 {
			return reply{Kind: replyError, Text: "Usage: /load <game id|file>"}
		}
		if err := s.load(ctx, args[0]); err != nil {
			s.logger.Error("Failed to load game", "ref", args[0], "error", err)
			return reply{Kind: replyError, Text: "Load failed: " + err.Error()}
		}
		return reply{Kind: replyNarration, Text: "Game loaded.\n\n" + s.narrateScene()}

	case "/copy":
		if err := s.copy(s.eng.StorySummary()); err != nil {
			return reply{Kind: replyError, Text: "Copy failed: " + err.Error()}
		}
		return reply{Kind: replySystem, Text: "Story copied to clipboard."}
	}

	return reply{Kind: replyError, Text: "Unknown command " + cmd + ". Type /help for commands."}
}

// load treats an existing file path as a save file and anything else as a
// game ID in the store.
func (s *session) load(ctx context.Context, ref string) error {
	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		return s.eng.LoadGame(ref)
	}
	return s.eng.Load(ctx, s.store, ref)
}

func formatStatus(r engine.StatusReport) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Player: %s\n", r.Player.Name)
	fmt.Fprintf(&sb, "Health: %d\n", r.Player.Health)
	fmt.Fprintf(&sb, "Gold: %d\n", r.Player.Gold)
	inventory := "empty"
	if len(r.Player.Inventory) > 0 {
		inventory = strings.Join(r.Player.Inventory, ", ")
	}
	fmt.Fprintf(&sb, "Inventory: %s\n", inventory)
	fmt.Fprintf(&sb, "Scene: %s\n", r.CurrentScene)
	fmt.Fprintf(&sb, "State: %s\n", r.State)
	fmt.Fprintf(&sb, "Actions: %d", r.HistoryLength)
	return sb.String()
}

// finished reports whether the game left the playing status.
func (s *session) finished() bool {
	return s.eng.Status() != state.StatusPlaying
}
