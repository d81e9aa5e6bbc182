package narrator

import (
	"math/rand/v2"
	"strings"

	"github.com/jwebster45206/adventure-engine/pkg/scenario"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Personality is the narrator's tone, fixed for the narrator's lifetime.
type Personality string

const (
	Epic       Personality = "epic"
	Mysterious Personality = "mysterious"
	Humorous   Personality = "humorous"
	Dark       Personality = "dark"
)

// Personalities lists every tone in draw order.
var Personalities = []Personality{Epic, Mysterious, Humorous, Dark}

// LowHealthThreshold is the health below which the narrator mentions weakness.
const LowHealthThreshold = 30

// Context carries the situational details DescribeScene can mention.
type Context struct {
	TimeOfDay    string // "day", "night", "dawn"
	Weather      string // "clear", "rain", "fog"
	PlayerHealth int // 0 means unset and reads as full health
}

// DefaultContext is used when DescribeScene receives a nil context.
func DefaultContext() Context {
	return Context{TimeOfDay: "day", Weather: "clear", PlayerHealth: 100}
}

// DungeonMaster decorates scenes and actions with canned narration.
type DungeonMaster struct {
	personality Personality
	rng         *rand.Rand
}

// New draws a personality uniformly from rng.
func New(rng *rand.Rand) *DungeonMaster {
	return NewWithPersonality(Personalities[rng.IntN(len(Personalities))], rng)
}

// NewWithPersonality creates a narrator with a fixed tone.
func NewWithPersonality(p Personality, rng *rand.Rand) *DungeonMaster {
	return &DungeonMaster{personality: p, rng: rng}
}

// Personality returns the narrator's tone.
func (dm *DungeonMaster) Personality() Personality {
	return dm.personality
}

// DescribeScene returns the scene description dressed in the narrator's tone,
// followed by any context sentences. It never draws from the random source.
func (dm *DungeonMaster) DescribeScene(scene *scenario.Scene, ctx *Context) string {
	c := DefaultContext()
	if ctx != nil {
		c = ctx.withDefaults()
	}
	return dm.decorate(scene.Description) + contextSentences(c)
}

// withDefaults fills zero fields from DefaultContext.
func (c Context) withDefaults() Context {
	d := DefaultContext()
	if c.TimeOfDay == "" {
		c.TimeOfDay = d.TimeOfDay
	}
	if c.Weather == "" {
		c.Weather = d.Weather
	}
	if c.PlayerHealth == 0 {
		c.PlayerHealth = d.PlayerHealth
	}
	return c
}

func (dm *DungeonMaster) decorate(text string) string {
	switch dm.personality {
	case Epic:
		return "⚔️ " + text
	case Mysterious:
		return "🌙 " + text + " Strange energy flows through the air..."
	case Humorous:
		return "😄 " + text + " (Hopefully nobody left a banana peel around.)"
	case Dark:
		return "🌑 " + text + " The darkness is watching you..."
	default:
		return text
	}
}

func contextSentences(c Context) string {
	var additions []string

	switch c.TimeOfDay {
	case "night":
		additions = append(additions, "Moonlight filters through the leaves, casting eerie shadows.")
	case "dawn":
		additions = append(additions, "At dawn, the first rays of sunlight pierce the mist.")
	}

	switch c.Weather {
	case "rain":
		additions = append(additions, "Rain patters softly on the leaves.")
	case "fog":
		additions = append(additions, "A thick fog hangs all around and blurs your sight.")
	}

	if c.PlayerHealth < LowHealthThreshold {
		additions = append(additions, "You feel weak and need to rest.")
	}

	if len(additions) == 0 {
		return ""
	}
	return "\n" + strings.Join(additions, " ")
}

var actionResponses = map[scenario.ActionType][]string{
	scenario.ActionFight: {
		"You draw your weapon, ready for battle!",
		"The fight begins! You focus your mind...",
		"You bravely face your enemy!",
	},
	scenario.ActionFlee: {
		"You turn and run!",
		"A tactical retreat!",
		"Discretion is the better part of valor!",
	},
	scenario.ActionSearch: {
		"You search the area carefully...",
		"You look around closely...",
		"You begin to search...",
	},
}

// ResolveAction returns a canned line for the action, drawn uniformly.
func (dm *DungeonMaster) ResolveAction(action scenario.ActionType) string {
	responses, ok := actionResponses[action]
	if !ok {
		return "You carry out the action."
	}
	return responses[dm.rng.IntN(len(responses))]
}

// GenerateOptions builds contextual options for a scene: its first two
// authored options, then item, NPC and combat options, then a status check.
func (dm *DungeonMaster) GenerateOptions(scene *scenario.Scene) []scenario.Option {
	options := make([]scenario.Option, 0, len(scene.Options)+5)
	options = append(options, scene.Options[:min(2, len(scene.Options))]...)

	if len(scene.Items) > 0 {
		options = append(options, scenario.Option{Text: "pick up items", Action: scenario.ActionTakeItem})
	}
	if len(scene.NPCs) > 0 {
		options = append(options, scenario.Option{
			Text:   "talk to " + scene.NPCs[0],
			Action: scenario.ActionTalk,
			Target: scene.NPCs[0],
		})
	}
	if scene.HasHostileNPC() {
		options = append(options,
			scenario.Option{Text: "prepare to fight", Action: scenario.ActionFight},
			scenario.Option{Text: "try to flee", Action: scenario.ActionFlee},
		)
	}
	options = append(options, scenario.Option{Text: "check status", Action: scenario.ActionStatus})
	return options
}

// IntroduceGame returns the opening lines shown before play.
func (dm *DungeonMaster) IntroduceGame() string {
	style := cases.Title(language.English).String(string(dm.personality))
	return "Welcome to the text adventure! An endless world of adventure awaits.\n\n" +
		"Your dungeon master is ready (style: " + style + ")"
}
