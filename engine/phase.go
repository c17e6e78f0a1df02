package engine

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition reports a phase change the game does not allow
var ErrInvalidTransition = errors.New("invalid phase transition")

// Phase is the top-level game state
type Phase uint8

const (
	PhaseTitle Phase = iota
	PhasePlaying
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseTitle:
		return "title"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game-over"
	default:
		return fmt.Sprintf("phase(%d)", uint8(p))
	}
}

var phaseTransitions = map[Phase][]Phase{
	PhaseTitle:    {PhasePlaying},
	PhasePlaying:  {PhaseGameOver, PhaseTitle},
	PhaseGameOver: {PhasePlaying, PhaseTitle},
}

// CanTransition reports whether from -> to is allowed
func CanTransition(from, to Phase) bool {
	for _, p := range phaseTransitions[from] {
		if p == to {
			return true
		}
	}
	return false
}

// Transition validates from -> to
func Transition(from, to Phase) (Phase, error) {
	if !CanTransition(from, to) {
		return from, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return to, nil
}
