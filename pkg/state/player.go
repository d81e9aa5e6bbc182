package state

const (
	DefaultHealth = 100
	DefaultGold   = 50
)

// Player is the mutable player record owned by one engine.
type Player struct {
	Name      string   `json:"name"`
	Health    int      `json:"health"`
	Gold      int      `json:"gold"`
	Inventory []string `json:"inventory"`
	Quests    []string `json:"quests"`
}

// NewPlayer returns a fresh player with the default health and gold.
func NewPlayer(name string) *Player {
	return &Player{
		Name:      name,
		Health:    DefaultHealth,
		Gold:      DefaultGold,
		Inventory: []string{},
		Quests:    []string{},
	}
}

// Clone returns a copy that shares no slices with p.
func (p *Player) Clone() *Player {
	c := *p
	c.Inventory = append([]string{}, p.Inventory...)
	c.Quests = append([]string{}, p.Quests...)
	return &c
}

// AddItems appends items to the inventory. Duplicates are kept.
func (p *Player) AddItems(items ...string) {
	p.Inventory = append(p.Inventory, items...)
}

// normalize fills nil containers, e.g. after decoding an old save.
func (p *Player) normalize() {
	if p.Inventory == nil {
		p.Inventory = []string{}
	}
	if p.Quests == nil {
		p.Quests = []string{}
	}
}
