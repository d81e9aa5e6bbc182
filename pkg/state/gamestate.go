package state

import (
	"errors"
	"fmt"
)

// Status is the lifecycle state of a game.
type Status string

const (
	StatusStart   Status = "start"
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
	StatusQuit    Status = "quit"
)

var (
	ErrUnknownStatus     = errors.New("unknown game status")
	ErrInvalidTransition = errors.New("invalid game status transition")
)

// transitions lists every legal move between statuses. Won and lost are
// reachable here, but no shipped content or code path enters them yet.
var transitions = map[Status][]Status{
	StatusStart:   {StatusPlaying},
	StatusPlaying: {StatusPlaying, StatusWon, StatusLost, StatusQuit},
	StatusWon:     {StatusPlaying, StatusQuit},
	StatusLost:    {StatusPlaying, StatusQuit},
	StatusQuit:    {StatusPlaying},
}

// ParseStatus converts a saved status tag back into a Status.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if _, ok := transitions[st]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
	return st, nil
}

// CanTransition reports whether a game may move from one status to another.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition validates a status change and returns the new status.
func Transition(from, to Status) (Status, error) {
	if !CanTransition(from, to) {
		return from, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return to, nil
}

// IsTerminal reports whether the game has ended.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusWon, StatusLost, StatusQuit:
		return true
	default:
		return false
	}
}

func (s Status) String() string {
	return string(s)
}
