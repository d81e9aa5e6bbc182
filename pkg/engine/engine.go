package engine

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/adventure-engine/pkg/scenario"
	"github.com/jwebster45206/adventure-engine/pkg/state"
)

// Engine runs one game: the player, the scene store built from a world, the
// current scene and the action history. An Engine is not safe for concurrent use.
type Engine struct {
	gameID  string
	player  *state.Player
	status  state.Status
	world   *scenario.World
	scenes  map[string]*scenario.Scene
	current *scenario.Scene
	history []state.HistoryRecord

	logger *slog.Logger
	now    func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithClock overrides the clock used to timestamp history records.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// New creates an engine in the start status with no world loaded.
func New(playerName string, opts ...Option) *Engine {
	e := &Engine{
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.reset(playerName)
	return e
}

func (e *Engine) reset(playerName string) {
	e.gameID = uuid.NewString()
	e.player = state.NewPlayer(playerName)
	e.status = state.StatusStart
	e.scenes = make(map[string]*scenario.Scene)
	e.current = nil
	e.history = []state.HistoryRecord{}
}

// InitializeWorld builds the scene store from w, or from the default world
// when w is nil, and starts play at the world's start scene.
func (e *Engine) InitializeWorld(w *scenario.World) {
	if w == nil {
		w = scenario.DefaultWorld()
	}
	e.world = w
	e.scenes = w.NewSceneStore()

	startID := w.StartSceneID()
	if scene, ok := e.scenes[startID]; ok {
		e.current = scene
	} else {
		e.logger.Warn("Start scene not found in world", "world", w.Name, "start_scene", startID)
	}

	e.setStatus(state.StatusPlaying)
	e.logger.Debug("World initialized", "world", w.Name, "scenes", len(e.scenes), "game_id", e.gameID)
}

func (e *Engine) setStatus(to state.Status) {
	next, err := state.Transition(e.status, to)
	if err != nil {
		e.logger.Warn("Ignoring status change", "error", err)
		return
	}
	e.status = next
}

// ProcessAction matches text against the current scene's options and applies
// the first match. Game-level failures are reported through the Result kind;
// the returned scene is the current scene after the action, nil after quit.
func (e *Engine) ProcessAction(text string) (Result, *scenario.Scene) {
	if e.current == nil {
		return Result{Kind: ResultNotStarted, Text: MsgNotInitialized}, nil
	}

	option, ok := e.matchOption(text)
	if !ok {
		e.logger.Debug("No option matched", "input", text, "scene", e.current.ID)
		return Result{Kind: ResultInvalid, Text: MsgInvalidChoice}, e.current
	}
	return e.apply(text, option)
}

// ApplyOption applies the current scene's option at the 1-based position n
// without matching any text. It reports the same results as ProcessAction.
func (e *Engine) ApplyOption(n int) (Result, *scenario.Scene) {
	if e.current == nil {
		return Result{Kind: ResultNotStarted, Text: MsgNotInitialized}, nil
	}
	if n < 1 || n > len(e.current.Options) {
		e.logger.Debug("Option out of range", "option", n, "scene", e.current.ID)
		return Result{Kind: ResultInvalid, Text: MsgInvalidChoice}, e.current
	}
	return e.apply(strconv.Itoa(n), e.current.Options[n-1])
}

func (e *Engine) apply(text string, option scenario.Option) (Result, *scenario.Scene) {
	e.recordAction(text, option)
	e.logger.Debug("Processing action", "input", text, "action", option.Action, "scene", e.current.ID)

	switch option.Action {
	case scenario.ActionMove:
		target, exists := e.scenes[option.Target]
		if option.Target == "" || !exists {
			e.logger.Warn("Move target missing from scene store", "scene", e.current.ID, "target", option.Target)
			return Result{Kind: ResultBlocked, Text: MsgCannotGo}, e.current
		}
		e.current = target
		e.current.Visited = true
		return Result{Kind: ResultMoved, Text: e.SceneDescription()}, e.current

	case scenario.ActionSearch:
		found := e.searchArea()
		if len(found) == 0 {
			return Result{Kind: ResultNothingFound, Text: MsgNothingFound}, e.current
		}
		e.player.AddItems(found...)
		return itemsFound(found), e.current

	case scenario.ActionInventory:
		return inventoryReport(e.player.Inventory), e.current

	case scenario.ActionQuit:
		e.setStatus(state.StatusQuit)
		e.current = nil
		return Result{Kind: ResultQuit, Text: MsgGameOver}, nil

	case scenario.ActionRestart:
		name := e.player.Name
		world := e.world
		e.reset(name)
		e.InitializeWorld(world)
		return Result{Kind: ResultRestarted, Text: MsgRestarted}, e.current

	default:
		return Result{Kind: ResultGeneric, Text: msgDidPrefix + option.Text}, e.current
	}
}

// matchOption finds the first option whose text contains the input
// (case-insensitive) or whose 1-based position equals it.
func (e *Engine) matchOption(text string) (scenario.Option, bool) {
	input := strings.TrimSpace(text)
	if input == "" {
		return scenario.Option{}, false
	}
	lowered := strings.ToLower(input)
	for i, opt := range e.current.Options {
		if strings.Contains(strings.ToLower(opt.Text), lowered) || input == strconv.Itoa(i+1) {
			return opt, true
		}
	}
	return scenario.Option{}, false
}

func (e *Engine) searchArea() []string {
	if len(e.current.Items) == 0 {
		return nil
	}
	found := append([]string{}, e.current.Items...)
	e.current.Items = []string{}
	return found
}

func (e *Engine) recordAction(text string, option scenario.Option) {
	e.history = append(e.history, state.HistoryRecord{
		Time:   e.now(),
		Scene:  e.current.ID,
		Action: text,
		Option: option,
	})
}

// GameID returns the identifier used for saves.
func (e *Engine) GameID() string { return e.gameID }

// Player returns the live player record.
func (e *Engine) Player() *state.Player { return e.player }

// Status returns the game status.
func (e *Engine) Status() state.Status { return e.status }

// CurrentScene returns the current scene, or nil when none is set.
func (e *Engine) CurrentScene() *scenario.Scene { return e.current }

// World returns the world the engine was last initialized with.
func (e *Engine) World() *scenario.World { return e.world }

// Scene looks up a scene in the store.
func (e *Engine) Scene(id string) (*scenario.Scene, bool) {
	s, ok := e.scenes[id]
	return s, ok
}

// History returns a copy of the action history.
func (e *Engine) History() []state.HistoryRecord {
	return append([]state.HistoryRecord{}, e.history...)
}

// VisitedScenes returns the sorted IDs of every visited scene.
func (e *Engine) VisitedScenes() []string {
	visited := []string{}
	for id, s := range e.scenes {
		if s.Visited {
			visited = append(visited, id)
		}
	}
	slices.Sort(visited)
	return visited
}

// SceneDescription renders the current scene with its items, NPCs and
// numbered options.
func (e *Engine) SceneDescription() string {
	if e.current == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(e.current.Description)
	if len(e.current.Items) > 0 {
		sb.WriteString("\n\nItems: " + strings.Join(e.current.Items, ", "))
	}
	if len(e.current.NPCs) > 0 {
		sb.WriteString("\n\nNPCs: " + strings.Join(e.current.NPCs, ", "))
	}
	sb.WriteString("\n\nOptions:")
	for i, opt := range e.current.Options {
		sb.WriteString(fmt.Sprintf("\n%d. %s", i+1, opt.Text))
	}
	return sb.String()
}

// StatusReport is a snapshot of the game for status displays.
type StatusReport struct {
	GameID        string       `json:"game_id"`
	State         state.Status `json:"state"`
	Player        state.Player `json:"player"`
	CurrentScene  string       `json:"current_scene,omitempty"`
	HistoryLength int          `json:"history_length"`
}

// StatusReport returns a snapshot that shares nothing with the engine.
func (e *Engine) StatusReport() StatusReport {
	r := StatusReport{
		GameID:        e.gameID,
		State:         e.status,
		Player:        *e.player.Clone(),
		HistoryLength: len(e.history),
	}
	if e.current != nil {
		r.CurrentScene = e.current.ID
	}
	return r
}

// StorySummary renders the action history as a short markdown story.
func (e *Engine) StorySummary() string {
	if len(e.history) == 0 {
		return "The story has not begun yet."
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## %s's Adventure\n\n", e.player.Name))
	for _, rec := range e.history {
		scene := rec.Scene
		if s, ok := e.scenes[rec.Scene]; ok {
			scene = s.DisplayName()
		}
		sb.WriteString(fmt.Sprintf("- At %s you chose: %s\n", scene, rec.Option.Text))
	}
	sb.WriteString(fmt.Sprintf("\nTotal actions: %d", len(e.history)))
	return sb.String()
}
