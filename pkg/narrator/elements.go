package narrator

import (
	"fmt"
	"slices"

	"github.com/jwebster45206/adventure-engine/pkg/scenario"
)

var locationFeatures = map[string][]string{
	"forest":  {"ancient trees", "mystical fog", "hidden paths", "wild creatures"},
	"castle":  {"stone walls", "towering spires", "dark dungeons", "royal guards"},
	"village": {"thatched cottages", "a busy market", "friendly villagers", "a mysterious stranger"},
	"cave":    {"glowing crystals", "an underground lake", "ancient drawings", "echoing sounds"},
}

var (
	treasureItems = []string{"golden coin", "ancient artifact", "magic ring", "precious gem"}
	utilityItems  = []string{"old map", "rusty key", "healing potion", "mysterious note"}

	friendlyCreatures = []string{"wise owl", "helpful fairy", "talking tree", "magical creature"}
	hostileCreatures  = []string{"fierce goblin", "ancient dragon", "dark sorcerer", "wild beast"}
)

// LocationKinds returns the kinds CreateRandomScene understands, sorted.
func LocationKinds() []string {
	kinds := make([]string, 0, len(locationFeatures))
	for k := range locationFeatures {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// CreateRandomScene builds a throwaway scene of the given kind; unknown kinds
// fall back to forest. Its move option targets "next", which callers must
// add to their scene store themselves.
func (dm *DungeonMaster) CreateRandomScene(id, kind string) *scenario.Scene {
	features, ok := locationFeatures[kind]
	if !ok {
		features = locationFeatures["forest"]
	}

	picked := dm.sample(features, 2)
	scene := &scenario.Scene{
		ID:          id,
		Name:        "Random " + kind,
		Description: fmt.Sprintf("You arrive at a place of %s and %s.", picked[0], picked[1]),
		Options: []scenario.Option{
			{Text: "keep going", Action: scenario.ActionMove, Target: "next"},
			{Text: "look around carefully", Action: scenario.ActionSearch},
			{Text: "rest", Action: scenario.ActionRest},
		},
		Items: []string{},
		NPCs:  []string{},
	}

	if dm.rng.Float64() > 0.5 {
		items := slices.Concat(treasureItems, utilityItems)
		scene.Items = []string{items[dm.rng.IntN(len(items))]}
	}
	if dm.rng.Float64() > 0.6 {
		creatures := slices.Concat(friendlyCreatures, hostileCreatures)
		scene.NPCs = []string{creatures[dm.rng.IntN(len(creatures))]}
	}

	return scene
}

// sample picks n distinct elements in random order.
func (dm *DungeonMaster) sample(from []string, n int) []string {
	idx := dm.rng.Perm(len(from))[:n]
	out := make([]string, n)
	for i, j := range idx {
		out[i] = from[j]
	}
	return out
}
