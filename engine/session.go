package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrTimerRunning reports a second countdown on a session that already has one
	ErrTimerRunning = errors.New("session timer already running")

	// ErrInvalidDuration reports a non-positive session length
	ErrInvalidDuration = errors.New("session duration must be positive")

	// ErrSessionOver reports an operation on an expired session
	ErrSessionOver = errors.New("session is over")
)

// TimerHooks are invoked from the countdown task
type TimerHooks struct {
	OnTick     func(remaining time.Duration)
	OnCritical func()
	OnExpire   func(score int)
}

// Session is the state of one game from start to game over
type Session struct {
	ID uuid.UUID

	clock            TimeProvider
	start            time.Time
	duration         time.Duration
	criticalFraction float64

	score    int
	critical bool
	over     bool
	timer    *TaskHandle
}

// NewSession starts a session of the given length at clock.Now()
func NewSession(clock TimeProvider, duration time.Duration, criticalFraction float64) (*Session, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDuration, duration)
	}
	return &Session{
		ID:               uuid.New(),
		clock:            clock,
		start:            clock.Now(),
		duration:         duration,
		criticalFraction: criticalFraction,
	}, nil
}

// RecordCut adds one cut and returns the score, frozen once the session is over
func (s *Session) RecordCut() int {
	if !s.over {
		s.score++
	}
	return s.score
}

// Score returns the cut count
func (s *Session) Score() int {
	return s.score
}

// Remaining returns time left at now, never negative
func (s *Session) Remaining(now time.Time) time.Duration {
	left := s.duration - now.Sub(s.start)
	if left < 0 {
		return 0
	}
	return left
}

// Fraction returns remaining time as a fraction of the duration
func (s *Session) Fraction(now time.Time) float64 {
	return float64(s.Remaining(now)) / float64(s.duration)
}

// Critical reports whether the session has entered its final stretch
func (s *Session) Critical() bool {
	return s.critical
}

// Over reports whether the countdown expired
func (s *Session) Over() bool {
	return s.over
}

// StartTimer schedules the countdown on sched. Fails if this session already
// has a live countdown or is over.
func (s *Session) StartTimer(sched *Scheduler, interval time.Duration, hooks TimerHooks) error {
	if s.over {
		return ErrSessionOver
	}
	if s.timer.Active() {
		return ErrTimerRunning
	}

	h, err := sched.Every(interval, func(now time.Time) bool {
		return s.tick(now, hooks)
	})
	if err != nil {
		return fmt.Errorf("session %s: %w", s.ID, err)
	}
	s.timer = h
	return nil
}

// StopTimer cancels the countdown, safe when none is running
func (s *Session) StopTimer() {
	s.timer.Cancel()
	s.timer = nil
}

// TimerActive reports whether the countdown is scheduled
func (s *Session) TimerActive() bool {
	return s.timer.Active()
}

// tick advances the countdown, returning false ends the task
func (s *Session) tick(now time.Time, hooks TimerHooks) bool {
	if s.over {
		return false
	}
	left := s.Remaining(now)
	if hooks.OnTick != nil {
		hooks.OnTick(left)
	}

	if !s.critical && s.Fraction(now) <= s.criticalFraction {
		s.critical = true
		if hooks.OnCritical != nil {
			hooks.OnCritical()
		}
	}

	if left == 0 {
		s.over = true
		if hooks.OnExpire != nil {
			hooks.OnExpire(s.score)
		}
		return false
	}
	return true
}
