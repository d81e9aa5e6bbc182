package scenario

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultStartScene is used when a world does not name its start scene.
const DefaultStartScene = "forest_entrance"

// ErrUnsupportedFormat is returned for world files that are neither JSON nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported world file format")

// World is the authored configuration a game is initialized from.
type World struct {
	Name        string           `json:"name" yaml:"name"`
	Description string           `json:"description" yaml:"description"`
	StartScene  string           `json:"start_scene" yaml:"start_scene"`
	Scenes      map[string]Scene `json:"scenes" yaml:"scenes"`
}

// StartSceneID returns the configured start scene, or the default one.
func (w *World) StartSceneID() string {
	if w.StartScene == "" {
		return DefaultStartScene
	}
	return w.StartScene
}

// NewSceneStore builds the runtime scene store keyed by scene ID. Scenes are
// copied, so play never mutates the configuration.
func (w *World) NewSceneStore() map[string]*Scene {
	store := make(map[string]*Scene, len(w.Scenes))
	for id, s := range w.Scenes {
		scene := s.Clone()
		if scene.ID == "" {
			scene.ID = id
		}
		store[id] = scene
	}
	return store
}

// LoadWorld reads a world from a .json, .yaml or .yml file.
func LoadWorld(path string) (*World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read world file: %w", err)
	}

	var w World
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &w); err != nil {
			return nil, fmt.Errorf("failed to unmarshal world JSON: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &w); err != nil {
			return nil, fmt.Errorf("failed to unmarshal world YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}
	return &w, nil
}

// DefaultWorld returns the built-in fantasy world.
func DefaultWorld() *World {
	return &World{
		Name:        "The Mystic Kingdom",
		Description: "A fantasy realm full of magic and adventure.",
		StartScene:  "forest_entrance",
		Scenes: map[string]Scene{
			"forest_entrance": {
				ID:          "forest_entrance",
				Name:        "Forest Entrance",
				Description: "You stand at the edge of a mysterious forest. Ancient trees tower overhead and sunlight falls through the leaves in dappled patches. Strange sounds drift out from deep among the trees.",
				Options: []Option{
					{Text: "enter forest deeper", Action: ActionMove, Target: "deep_forest"},
					{Text: "find another path", Action: ActionMove, Target: "path"},
					{Text: "check surroundings", Action: ActionSearch},
					{Text: "check inventory", Action: ActionInventory},
				},
				Items: []string{"map"},
				NPCs:  []string{},
			},
			"deep_forest": {
				ID:          "deep_forest",
				Name:        "Deep Forest",
				Description: "You push deeper into the forest and the light grows dim. Suddenly, something moves up ahead!",
				Options: []Option{
					{Text: "sneak closer", Action: ActionSneak},
					{Text: "shout a challenge", Action: ActionShout},
					{Text: "turn and flee", Action: ActionFlee},
					{Text: "draw your weapon and fight", Action: ActionFight},
				},
				Items: []string{},
				NPCs:  []string{"goblin"},
			},
			"path": {
				ID:          "path",
				Name:        "Hidden Path",
				Description: "You find a hidden path leading toward a distant hill. It looks like someone has walked here recently.",
				Options: []Option{
					{Text: "follow the path", Action: ActionMove, Target: "hill"},
					{Text: "return to the forest entrance", Action: ActionMove, Target: "forest_entrance"},
					{Text: "examine the tracks", Action: ActionSearch},
				},
				Items: []string{},
				NPCs:  []string{},
			},
			"victory": {
				ID:          "victory",
				Name:        "Victory",
				Description: "Congratulations! You have completed your adventure!",
				Options: []Option{
					{Text: "play again", Action: ActionRestart},
					{Text: "quit game", Action: ActionQuit},
				},
				Items: []string{},
				NPCs:  []string{},
			},
		},
	}
}
