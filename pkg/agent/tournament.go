package agent

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/jwebster45206/adventure-engine/pkg/engine"
	"github.com/jwebster45206/adventure-engine/pkg/scenario"
)

// Draw is the winner of a match with equal scores.
const Draw = "draw"

// PlayerConfig describes one tournament entrant.
type PlayerConfig struct {
	Name      string    `json:"name" yaml:"name"`
	Playstyle Playstyle `json:"playstyle" yaml:"playstyle"`
}

// MatchPlayer is one side of a finished match.
type MatchPlayer struct {
	Name        string    `json:"name"`
	Playstyle   Playstyle `json:"playstyle"`
	Turns       int       `json:"turns"`
	FinalHealth int       `json:"final_health"`
	Inventory   []string  `json:"inventory"`
	Score       int       `json:"score"`
	Stats       Stats     `json:"stats"`
	Log         []TurnLog `json:"log"`
}

// MatchResult is the outcome of RunMatch.
type MatchResult struct {
	Player1 MatchPlayer `json:"player1"`
	Player2 MatchPlayer `json:"player2"`
	Winner  string      `json:"winner"`
}

// Tournament pits agents against each other, each on its own engine.
type Tournament struct {
	players []*Agent
	logger  *slog.Logger

	// MaxTurns bounds each side of a match.
	MaxTurns int
	// World is played by every match; nil means the default world.
	World *scenario.World
}

// NewTournament creates one agent per config, all drawing from rng.
func NewTournament(configs []PlayerConfig, rng *rand.Rand, logger *slog.Logger) *Tournament {
	if logger == nil {
		logger = slog.Default()
	}
	players := make([]*Agent, 0, len(configs))
	for _, c := range configs {
		players = append(players, New(c.Name, c.Playstyle, rng))
	}
	return &Tournament{
		players:  players,
		logger:   logger,
		MaxTurns: DefaultMaxTurns,
	}
}

// Players returns the entrants in config order.
func (t *Tournament) Players() []*Agent {
	return append([]*Agent{}, t.players...)
}

// RunMatch plays a then b on fresh engines and compares their scores.
func (t *Tournament) RunMatch(ctx context.Context, a, b *Agent) (*MatchResult, error) {
	t.logger.Info("Match starting", "player1", a.Name, "player2", b.Name)

	p1, err := t.play(ctx, a)
	if err != nil {
		return nil, err
	}
	p2, err := t.play(ctx, b)
	if err != nil {
		return nil, err
	}

	res := &MatchResult{Player1: p1, Player2: p2, Winner: Draw}
	switch {
	case p1.Score > p2.Score:
		res.Winner = p1.Name
	case p2.Score > p1.Score:
		res.Winner = p2.Name
	}

	t.logger.Info("Match finished", "winner", res.Winner, "score1", p1.Score, "score2", p2.Score)
	return res, nil
}

// RunAll plays each entrant against the next one in config order, so with
// three entrants the middle one plays twice and keeps its decision log.
func (t *Tournament) RunAll(ctx context.Context) ([]*MatchResult, error) {
	results := []*MatchResult{}
	for i := 0; i+1 < len(t.players); i++ {
		res, err := t.RunMatch(ctx, t.players[i], t.players[i+1])
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

func (t *Tournament) play(ctx context.Context, a *Agent) (MatchPlayer, error) {
	eng := engine.New(a.Name, engine.WithLogger(t.logger))
	eng.InitializeWorld(t.World)

	runner := NewRunner(a, t.MaxTurns, t.logger)
	logs, err := runner.Run(ctx, eng)
	if err != nil {
		return MatchPlayer{}, fmt.Errorf("failed to play %s: %w", a.Name, err)
	}

	player := eng.Player()
	return MatchPlayer{
		Name:        a.Name,
		Playstyle:   a.Playstyle,
		Turns:       runner.Turns(),
		FinalHealth: player.Health,
		Inventory:   append([]string{}, player.Inventory...),
		Score:       Score(player.Health, len(player.Inventory)),
		Stats:       a.Stats(),
		Log:         logs,
	}, nil
}

// Score ranks a finished run: health plus ten points per item carried.
func Score(health, items int) int {
	return health + 10*items
}
