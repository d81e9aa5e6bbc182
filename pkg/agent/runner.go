package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jwebster45206/adventure-engine/pkg/engine"
	"github.com/jwebster45206/adventure-engine/pkg/state"
)

// DefaultMaxTurns bounds a run when no limit is given.
const DefaultMaxTurns = 50

const descriptionPreview = 50

// TurnLog is one line of a run's play-by-play.
type TurnLog struct {
	Turn        int    `json:"turn"`
	Scene       string `json:"scene"`
	Description string `json:"description"`
	Action      string `json:"action"`
	Health      int    `json:"health"`
	Result      string `json:"result"`
}

// Runner drives an engine with an agent for a bounded number of turns.
type Runner struct {
	agent    *Agent
	maxTurns int
	turns    int
	logger   *slog.Logger
}

// NewRunner creates a runner. A non-positive maxTurns means DefaultMaxTurns.
func NewRunner(a *Agent, maxTurns int, logger *slog.Logger) *Runner {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{agent: a, maxTurns: maxTurns, logger: logger}
}

// Agent returns the agent being driven.
func (r *Runner) Agent() *Agent {
	return r.agent
}

// Turns reports how many turns the last run played.
func (r *Runner) Turns() int {
	return r.turns
}

// Run plays until the game leaves the playing status, there is no current
// scene, the turn limit is hit or ctx is done. The log is returned even when
// ctx ends the run.
func (r *Runner) Run(ctx context.Context, eng *engine.Engine) ([]TurnLog, error) {
	r.turns = 0
	logs := []TurnLog{}

	r.logger.Info("Starting auto-play", "agent", r.agent.Name, "playstyle", r.agent.Playstyle, "max_turns", r.maxTurns)

	for eng.Status() == state.StatusPlaying && r.turns < r.maxTurns {
		if err := ctx.Err(); err != nil {
			return logs, fmt.Errorf("auto-play interrupted: %w", err)
		}

		scene := eng.CurrentScene()
		if scene == nil {
			break
		}
		r.turns++

		choice := r.agent.ChooseAction(scene, eng.Player())
		entry := TurnLog{
			Turn:        r.turns,
			Scene:       scene.DisplayName(),
			Description: preview(scene.Description),
			Action:      choice.Text,
			Health:      eng.Player().Health,
		}

		var result engine.Result
		if choice.Option > 0 {
			result, _ = eng.ApplyOption(choice.Option)
		} else {
			result, _ = eng.ProcessAction(choice.Text)
		}
		entry.Result = result.Text
		if choice.DecisionID != NoDecision {
			if err := r.agent.RecordOutcome(choice.DecisionID, result.Kind.Matched()); err != nil {
				r.logger.Warn("Failed to record outcome", "error", err)
			}
		}
		logs = append(logs, entry)

		r.logger.Debug("Turn played", "turn", entry.Turn, "scene", entry.Scene, "action", entry.Action, "result", result.Kind)
	}

	r.logger.Info("Auto-play finished", "agent", r.agent.Name, "turns", r.turns, "status", eng.Status())
	return logs, nil
}

func preview(s string) string {
	runes := []rune(s)
	if len(runes) <= descriptionPreview {
		return s
	}
	return string(runes[:descriptionPreview]) + "..."
}

// StoryFromLog renders a run as a markdown story.
func StoryFromLog(playerName string, logs []TurnLog) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s's Adventure\n\n", playerName)
	for _, l := range logs {
		fmt.Fprintf(&sb, "## Turn %d\n", l.Turn)
		fmt.Fprintf(&sb, "**Location**: %s\n", l.Scene)
		fmt.Fprintf(&sb, "**Action**: %s\n", l.Action)
		fmt.Fprintf(&sb, "**Health**: %d\n\n", l.Health)
	}
	return sb.String()
}
