package scenario

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultWorld(t *testing.T) {
	w := DefaultWorld()

	if w.StartSceneID() != "forest_entrance" {
		t.Errorf("Expected start scene forest_entrance, got %s", w.StartSceneID())
	}

	for _, id := range []string{"forest_entrance", "deep_forest", "path", "victory"} {
		if _, ok := w.Scenes[id]; !ok {
			t.Errorf("Expected scene %s in default world", id)
		}
	}

	entrance := w.Scenes["forest_entrance"]
	if len(entrance.Options) != 4 {
		t.Fatalf("Expected 4 options at forest_entrance, got %d", len(entrance.Options))
	}
	if entrance.Options[0].Action != ActionMove || entrance.Options[0].Target != "deep_forest" {
		t.Errorf("Expected first option to move to deep_forest, got %+v", entrance.Options[0])
	}
	if entrance.Options[3].Action != ActionInventory {
		t.Errorf("Expected fourth option to be inventory, got %s", entrance.Options[3].Action)
	}

	if !w.Scenes["deep_forest"].HasHostileNPC() {
		t.Error("Expected a hostile NPC in deep_forest")
	}
}

func TestDefaultWorld_Fresh(t *testing.T) {
	a := DefaultWorld()
	b := DefaultWorld()

	s := a.Scenes["forest_entrance"]
	s.Items[0] = "changed"

	if b.Scenes["forest_entrance"].Items[0] != "map" {
		t.Error("Expected DefaultWorld to return independent copies")
	}
}

func TestNewSceneStore(t *testing.T) {
	w := &World{
		Scenes: map[string]Scene{
			"hall": {Name: "Hall", Options: []Option{{Text: "wait", Action: ActionRest}}},
		},
	}

	store := w.NewSceneStore()
	hall, ok := store["hall"]
	if !ok {
		t.Fatal("Expected hall in store")
	}
	if hall.ID != "hall" {
		t.Errorf("Expected ID filled from key, got %q", hall.ID)
	}
	if hall.Items == nil || hall.NPCs == nil {
		t.Error("Expected containers to be initialized")
	}

	hall.Visited = true
	hall.Options[0].Text = "changed"
	if w.Scenes["hall"].Visited || w.Scenes["hall"].Options[0].Text != "wait" {
		t.Error("Expected the store not to share state with the world")
	}
}

func TestStartSceneID_Default(t *testing.T) {
	w := &World{}
	if w.StartSceneID() != DefaultStartScene {
		t.Errorf("Expected %s, got %s", DefaultStartScene, w.StartSceneID())
	}
}

func TestLoadWorld(t *testing.T) {
	dir := t.TempDir()

	jsonWorld := `{
		"name": "Tiny",
		"start_scene": "room",
		"scenes": {
			"room": {
				"name": "Room",
				"description": "A small room.",
				"options": [{"text": "leave", "action": "move", "target": "hall"}],
				"items": ["coin"],
				"npcs": []
			}
		}
	}`
	yamlWorld := `name: Tiny
start_scene: room
scenes:
  room:
    name: Room
    description: A small room.
    items: [coin]
    options:
      - text: leave
        action: move
        target: hall
`

	tests := []struct {
		name      string
		filename  string
		content   string
		expectErr error
	}{
		{name: "json", filename: "tiny.json", content: jsonWorld},
		{name: "yaml", filename: "tiny.yaml", content: yamlWorld},
		{name: "yml", filename: "tiny.yml", content: yamlWorld},
		{name: "unsupported", filename: "tiny.txt", content: "x", expectErr: ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.filename)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("Failed to write world: %v", err)
			}

			w, err := LoadWorld(path)
			if tt.expectErr != nil {
				if !errors.Is(err, tt.expectErr) {
					t.Fatalf("Expected %v, got %v", tt.expectErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			room := w.Scenes["room"]
			if w.Name != "Tiny" || room.Name != "Room" {
				t.Errorf("Unexpected world: %+v", w)
			}
			if len(room.Options) != 1 || room.Options[0].Target != "hall" || room.Options[0].Action != ActionMove {
				t.Errorf("Unexpected options: %+v", room.Options)
			}
			if len(room.Items) != 1 || room.Items[0] != "coin" {
				t.Errorf("Unexpected items: %v", room.Items)
			}
		})
	}
}

func TestLoadWorld_Missing(t *testing.T) {
	_, err := LoadWorld(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected wrapped not-exist error, got %v", err)
	}
}

func TestNPCClassification(t *testing.T) {
	tests := []struct {
		name     string
		hostile  bool
		friendly bool
	}{
		{"goblin", true, false},
		{"Dragon", true, false},
		{"merchant", false, true},
		{"SAGE", false, true},
		{"fierce goblin", false, false},
		{"cat", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsHostileNPC(tt.name); got != tt.hostile {
				t.Errorf("IsHostileNPC(%q) = %v, want %v", tt.name, got, tt.hostile)
			}
			if got := IsFriendlyNPC(tt.name); got != tt.friendly {
				t.Errorf("IsFriendlyNPC(%q) = %v, want %v", tt.name, got, tt.friendly)
			}
		})
	}
}

func TestOptionsWithAction(t *testing.T) {
	s := &Scene{Options: []Option{
		{Text: "a", Action: ActionFlee},
		{Text: "b", Action: ActionRest},
		{Text: "c", Action: ActionFlee},
	}}

	got := s.OptionsWithAction(ActionRest, ActionFlee)
	if len(got) != 3 {
		t.Fatalf("Expected 3 options, got %d", len(got))
	}
	if got[0].Text != "a" {
		t.Errorf("Expected authored order, got %q first", got[0].Text)
	}
	if len(s.OptionsWithAction(ActionFight)) != 0 {
		t.Error("Expected no fight options")
	}
	if idx := s.OptionIndexes(ActionFlee); len(idx) != 2 || idx[0] != 0 || idx[1] != 2 {
		t.Errorf("Expected flee options at [0 2], got %v", idx)
	}
}

func TestValidate(t *testing.T) {
	problems := DefaultWorld().Validate()
	if len(problems) != 1 || !strings.Contains(problems[0], "'hill'") {
		t.Errorf("Expected only the dangling hill target, got %v", problems)
	}

	w := &World{
		StartScene: "nowhere",
		Scenes: map[string]Scene{
			"BadID": {Options: []Option{{Text: "", Action: "dance"}}},
			"ok":    {ID: "other", Options: []Option{{Text: "go", Action: ActionMove}}},
			"empty": {},
		},
	}
	problems = w.Validate()
	joined := strings.Join(problems, "\n")
	for _, want := range []string{
		"start scene 'nowhere'",
		"'BadID' should be lowercase snake_case",
		"option 1 has no text",
		"unknown action 'dance'",
		"mismatched id 'other'",
		"move without a target",
		"'empty' has no options",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("Expected a problem containing %q, got:\n%s", want, joined)
		}
	}

	if got := (&World{}).Validate(); len(got) < 2 {
		t.Errorf("Expected empty world problems, got %v", got)
	}
}

func TestIsValidID(t *testing.T) {
	for id, want := range map[string]bool{
		"a":           true,
		"deep_forest": true,
		"room2":       true,
		"Room":        false,
		"room_":       false,
		"2room":       false,
		"deep-forest": false,
	} {
		if got := IsValidID(id); got != want {
			t.Errorf("IsValidID(%q) = %v, want %v", id, got, want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		scene Scene
		want  string
	}{
		{Scene{ID: "deep_forest", Name: "Dark Woods"}, "Dark Woods"},
		{Scene{ID: "deep_forest"}, "Deep Forest"},
		{Scene{ID: "tower"}, "Tower"},
		{Scene{}, ""},
	}

	for _, tt := range tests {
		if got := tt.scene.DisplayName(); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.scene.ID, got, tt.want)
		}
	}
}
