package agent

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/jwebster45206/adventure-engine/pkg/scenario"
	"github.com/jwebster45206/adventure-engine/pkg/state"
)

const (
	// LowHealthThreshold is the health below which survival overrides everything.
	LowHealthThreshold = 30

	// WaitAction is returned when a scene has no options.
	WaitAction = "wait"

	// NoDecision is the decision ID of a choice that was not logged.
	NoDecision = 0
)

// ErrUnknownDecision is returned when an outcome names a decision never made.
var ErrUnknownDecision = errors.New("unknown decision")

// Situation is what the agent sees when deciding.
type Situation struct {
	HasHostileNPCs  bool `json:"has_hostile_npcs"`
	HasFriendlyNPCs bool `json:"has_friendly_npcs"`
	HasItems        bool `json:"has_items"`
	VisitedBefore   bool `json:"visited_before"`
	PlayerHealth    int  `json:"player_health"`
	PlayerGold      int  `json:"player_gold"`
	OptionsCount    int  `json:"options_count"`
}

// Outcome is the result reported back for a decision.
type Outcome int

const (
	OutcomePending Outcome = iota
	OutcomeSuccess
	OutcomeFailure
)

// Decision is one entry of the agent's decision log.
type Decision struct {
	ID        int       `json:"id"`
	SceneID   string    `json:"scene"`
	Situation Situation `json:"situation"`
	Choice    string    `json:"decision"`
	Outcome   Outcome   `json:"outcome"`
}

// Choice is what ChooseAction returns: the chosen option's 1-based number
// and text, and the decision it was logged under. Option is 0 for WaitAction.
type Choice struct {
	DecisionID int
	Option     int
	Text       string
}

// Stats summarizes the decision log. The counters are descriptive only.
type Stats struct {
	Total       int     `json:"total"`
	Successful  int     `json:"successful"`
	Failed      int     `json:"failed"`
	Pending     int     `json:"pending"`
	SuccessRate float64 `json:"success_rate"`
}

// Agent picks options with a fixed priority chain weighted by its profile.
type Agent struct {
	Name      string
	Playstyle Playstyle

	profile   Profile
	rng       *rand.Rand
	decisions []Decision
}

// New creates an agent with the profile of the given playstyle.
func New(name string, style Playstyle, rng *rand.Rand) *Agent {
	a := NewWithProfile(name, ProfileFor(style), rng)
	a.Playstyle = style
	return a
}

// NewWithProfile creates an agent with an explicit profile.
func NewWithProfile(name string, profile Profile, rng *rand.Rand) *Agent {
	return &Agent{
		Name:      name,
		Playstyle: Balanced,
		profile:   profile,
		rng:       rng,
		decisions: []Decision{},
	}
}

// Profile returns the agent's profile.
func (a *Agent) Profile() Profile {
	return a.profile
}

// Analyze summarizes the scene and player for the decision chain.
func Analyze(scene *scenario.Scene, player *state.Player) Situation {
	return Situation{
		HasHostileNPCs:  scene.HasHostileNPC(),
		HasFriendlyNPCs: scene.HasFriendlyNPC(),
		HasItems:        len(scene.Items) > 0,
		VisitedBefore:   scene.Visited,
		PlayerHealth:    player.Health,
		PlayerGold:      player.Gold,
		OptionsCount:    len(scene.Options),
	}
}

// ChooseAction picks an option for the scene and logs the decision.
// A scene without options yields WaitAction and no log entry.
func (a *Agent) ChooseAction(scene *scenario.Scene, player *state.Player) Choice {
	if scene == nil || len(scene.Options) == 0 {
		return Choice{DecisionID: NoDecision, Text: WaitAction}
	}

	situation := Analyze(scene, player)
	idx := a.decide(scene, situation)
	text := scene.Options[idx].Text

	id := len(a.decisions) + 1
	a.decisions = append(a.decisions, Decision{
		ID:        id,
		SceneID:   scene.ID,
		Situation: situation,
		Choice:    text,
	})
	return Choice{DecisionID: id, Option: idx + 1, Text: text}
}

// decide runs the priority chain and returns the 0-based option index. Only
// authored action tags are consulted.
func (a *Agent) decide(scene *scenario.Scene, s Situation) int {
	// 1. Survival
	if s.PlayerHealth < LowHealthThreshold {
		if i, ok := first(scene, scenario.ActionRest, scenario.ActionFlee); ok {
			return i
		}
	}

	// 2. Combat; a missing option falls through to the later rules.
	if s.HasHostileNPCs {
		roll := a.rng.Float64()
		if roll < a.profile.FightChance {
			if i, ok := first(scene, scenario.ActionFight); ok {
				return i
			}
		} else if roll < a.profile.FightChance+a.profile.FleeChance {
			if i, ok := first(scene, scenario.ActionFlee); ok {
				return i
			}
		}
	}

	// 3. Loot
	if s.HasItems {
		if i, ok := first(scene, scenario.ActionSearch, scenario.ActionTakeItem); ok {
			return i
		}
	}

	// 4. Conversation
	if s.HasFriendlyNPCs && a.rng.Float64() < a.profile.TalkChance {
		if i, ok := first(scene, scenario.ActionTalk); ok {
			return i
		}
	}

	// 5. Exploration, else anything
	if a.rng.Float64() < a.profile.ExploreChance {
		if moves := scene.OptionIndexes(scenario.ActionMove); len(moves) > 0 {
			return moves[a.rng.IntN(len(moves))]
		}
	}
	return a.rng.IntN(len(scene.Options))
}

func first(scene *scenario.Scene, actions ...scenario.ActionType) (int, bool) {
	idx := scene.OptionIndexes(actions...)
	if len(idx) == 0 {
		return 0, false
	}
	return idx[0], true
}

// RecordOutcome marks a logged decision as successful or not.
func (a *Agent) RecordOutcome(decisionID int, success bool) error {
	if decisionID < 1 || decisionID > len(a.decisions) {
		return fmt.Errorf("%w: %d", ErrUnknownDecision, decisionID)
	}
	outcome := OutcomeFailure
	if success {
		outcome = OutcomeSuccess
	}
	a.decisions[decisionID-1].Outcome = outcome
	return nil
}

// Decisions returns a copy of the decision log.
func (a *Agent) Decisions() []Decision {
	return append([]Decision{}, a.decisions...)
}

// Stats counts decisions by outcome.
func (a *Agent) Stats() Stats {
	s := Stats{Total: len(a.decisions)}
	for _, d := range a.decisions {
		switch d.Outcome {
		case OutcomeSuccess:
			s.Successful++
		case OutcomeFailure:
			s.Failed++
		default:
			s.Pending++
		}
	}
	if s.Total > 0 {
		s.SuccessRate = float64(s.Successful) / float64(s.Total)
	}
	return s
}
