package scenario

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ActionType is the authored tag on an option. It is the only signal the engine
// and the agents use to decide what an option does; display text is presentation.
type ActionType string

const (
	ActionMove      ActionType = "move"
	ActionSearch    ActionType = "search"
	ActionInventory ActionType = "inventory"
	ActionQuit      ActionType = "quit"
	ActionRestart   ActionType = "restart"
	ActionFight     ActionType = "fight"
	ActionFlee      ActionType = "flee"
	ActionTalk      ActionType = "talk"
	ActionRest      ActionType = "rest"
	ActionStatus    ActionType = "status"
	ActionSneak     ActionType = "sneak"
	ActionShout     ActionType = "shout"
	ActionTakeItem  ActionType = "take_item"
)

var knownActions = map[ActionType]bool{
	ActionMove: true, ActionSearch: true, ActionInventory: true, ActionQuit: true,
	ActionRestart: true, ActionFight: true, ActionFlee: true, ActionTalk: true,
	ActionRest: true, ActionStatus: true, ActionSneak: true, ActionShout: true,
	ActionTakeItem: true,
}

// IsKnown reports whether a is one of the tags above. Unknown tags still play
// as generic actions.
func (a ActionType) IsKnown() bool {
	return knownActions[a]
}

// Option is a player-facing choice attached to a scene.
type Option struct {
	Text   string     `json:"text" yaml:"text"`
	Action ActionType `json:"action" yaml:"action"`
	Target string     `json:"target,omitempty" yaml:"target,omitempty"` // Scene ID, only used by move
}

// Scene is a node in the location graph.
type Scene struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Options     []Option `json:"options" yaml:"options"`
	Items       []string `json:"items" yaml:"items"`
	NPCs        []string `json:"npcs" yaml:"npcs"`
	Visited     bool     `json:"visited,omitempty" yaml:"visited,omitempty"`
}

// Clone returns a deep copy with every container initialized.
func (s Scene) Clone() *Scene {
	c := s
	c.Options = append(make([]Option, 0, len(s.Options)), s.Options...)
	c.Items = append(make([]string, 0, len(s.Items)), s.Items...)
	c.NPCs = append(make([]string, 0, len(s.NPCs)), s.NPCs...)
	return &c
}

var titleCaser = cases.Title(language.English)

// DisplayName returns the authored name, or the ID in title case when the
// scene has no name ("deep_forest" becomes "Deep Forest").
func (s *Scene) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return titleCaser.String(strings.ReplaceAll(s.ID, "_", " "))
}

// OptionsWithAction returns the options carrying the given tag, in authored order.
func (s *Scene) OptionsWithAction(actions ...ActionType) []Option {
	var out []Option
	for _, i := range s.OptionIndexes(actions...) {
		out = append(out, s.Options[i])
	}
	return out
}

// OptionIndexes returns the 0-based positions of the options carrying the
// given tag, in authored order.
func (s *Scene) OptionIndexes(actions ...ActionType) []int {
	var out []int
	for i, opt := range s.Options {
		if slices.Contains(actions, opt.Action) {
			out = append(out, i)
		}
	}
	return out
}

var (
	hostileNPCs  = []string{"goblin", "dragon", "monster", "enemy"}
	friendlyNPCs = []string{"villager", "merchant", "sage", "guide"}
)

// IsHostileNPC reports whether the name is one of the known hostile creatures.
func IsHostileNPC(name string) bool {
	return containsFold(hostileNPCs, name)
}

// IsFriendlyNPC reports whether the name is one of the known friendly characters.
func IsFriendlyNPC(name string) bool {
	return containsFold(friendlyNPCs, name)
}

// HasHostileNPC reports whether any NPC in the scene is hostile.
func (s *Scene) HasHostileNPC() bool {
	for _, npc := range s.NPCs {
		if IsHostileNPC(npc) {
			return true
		}
	}
	return false
}

// HasFriendlyNPC reports whether any NPC in the scene is friendly.
func (s *Scene) HasFriendlyNPC() bool {
	for _, npc := range s.NPCs {
		if IsFriendlyNPC(npc) {
			return true
		}
	}
	return false
}

func containsFold(list []string, name string) bool {
	for _, n := range list {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}
