package engine

import (
	"errors"
	"testing"
)

func TestPhaseTransitions(t *testing.T) {
	tests := []struct {
		from, to Phase
		ok       bool
	}{
		{PhaseTitle, PhasePlaying, true},
		{PhaseTitle, PhaseGameOver, false},
		{PhaseTitle, PhaseTitle, false},
		{PhasePlaying, PhaseGameOver, true},
		{PhasePlaying, PhaseTitle, true},
		{PhasePlaying, PhasePlaying, false},
		{PhaseGameOver, PhasePlaying, true},
		{PhaseGameOver, PhaseTitle, true},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			got, err := Transition(tt.from, tt.to)
			if tt.ok {
				if err != nil || got != tt.to {
					t.Errorf("Expected %s, got %s (%v)", tt.to, got, err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("Expected ErrInvalidTransition, got %v", err)
			}
			if got != tt.from {
				t.Errorf("Expected phase to stay %s, got %s", tt.from, got)
			}
		})
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseGameOver.String() != "game-over" {
		t.Errorf("Unexpected name %q", PhaseGameOver.String())
	}
	if Phase(9).String() != "phase(9)" {
		t.Errorf("Unexpected name %q", Phase(9).String())
	}
}
