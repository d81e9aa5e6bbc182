package agent

import "github.com/jwebster45206/adventure-engine/pkg/state"

// Playstyle names a personality profile.
type Playstyle string

const (
	Aggressive Playstyle = "aggressive"
	Cautious   Playstyle = "cautious"
	Balanced   Playstyle = "balanced"
	Explorer   Playstyle = "explorer"
)

// Playstyles lists every known playstyle.
var Playstyles = []Playstyle{Aggressive, Cautious, Balanced, Explorer}

// Profile holds four independent probabilities in [0, 1].
type Profile struct {
	FightChance   float64 `json:"fight_chance"`
	ExploreChance float64 `json:"explore_chance"`
	FleeChance    float64 `json:"flee_chance"`
	TalkChance    float64 `json:"talk_chance"`
}

var profiles = map[Playstyle]Profile{
	Aggressive: {FightChance: 0.8, ExploreChance: 0.6, FleeChance: 0.1, TalkChance: 0.3},
	Cautious:   {FightChance: 0.3, ExploreChance: 0.4, FleeChance: 0.7, TalkChance: 0.6},
	Balanced:   {FightChance: 0.5, ExploreChance: 0.5, FleeChance: 0.4, TalkChance: 0.5},
	Explorer:   {FightChance: 0.4, ExploreChance: 0.9, FleeChance: 0.3, TalkChance: 0.7},
}

// ProfileFor returns the profile of a playstyle; unknown styles get Balanced.
func ProfileFor(style Playstyle) Profile {
	if p, ok := profiles[style]; ok {
		return p
	}
	return profiles[Balanced]
}

// IsKnown reports whether the playstyle has its own profile.
func (s Playstyle) IsKnown() bool {
	_, ok := profiles[s]
	return ok
}

// ExploreStrategy suggests a playstyle for the player's condition: cautious
// when hurt, aggressive when broke, explorer otherwise.
func ExploreStrategy(p *state.Player) Playstyle {
	switch {
	case p.Health < LowHealthThreshold:
		return Cautious
	case p.Gold < 10:
		return Aggressive
	default:
		return Explorer
	}
}
