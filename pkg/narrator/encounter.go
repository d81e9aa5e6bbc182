package narrator

import (
	"fmt"

	"github.com/jwebster45206/d20"
)

const (
	MinDifficulty = 1
	MaxDifficulty = 4
)

var creatureTiers = map[int][]string{
	1: {"small slime", "field rat", "lost traveler"},
	2: {"goblin", "wolf", "bandit"},
	3: {"orc", "giant spider", "dark knight"},
	4: {"young dragon", "demon", "ancient lich"},
}

// Encounter is a randomly drawn creature. It is presentation only: nothing in
// the engine resolves combat against it.
type Encounter struct {
	Creature    string
	Difficulty  int
	Health      int
	Attack      int
	Description string
	Actor       *d20.Actor
}

// GenerateEncounter draws a creature for the difficulty, clamped to
// [MinDifficulty, MaxDifficulty]. Health is 20 and attack 5 per difficulty level.
func (dm *DungeonMaster) GenerateEncounter(difficulty int) (*Encounter, error) {
	difficulty = max(MinDifficulty, min(difficulty, MaxDifficulty))
	tier := creatureTiers[difficulty]
	creature := tier[dm.rng.IntN(len(tier))]

	attack := difficulty * 5
	actor, err := d20.NewActor(creature).
		WithHP(difficulty * 20).
		WithAC(10 + difficulty).
		WithAttributes(map[string]int{"difficulty": difficulty}).
		WithCombatModifiers(map[string]int{"attack": attack}).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build encounter actor: %w", err)
	}

	return &Encounter{
		Creature:    creature,
		Difficulty:  difficulty,
		Health:      actor.HP(),
		Attack:      attack,
		Description: fmt.Sprintf("A %s appears!", creature),
		Actor:       actor,
	}, nil
}
