package engine

import (
	"sync"
	"time"
)

// PausableClock provides game time that stops while paused
// Session countdowns and physics read it, so pausing freezes both
type PausableClock struct {
	mu sync.RWMutex

	real TimeProvider

	paused          bool
	pauseStartTime  time.Time
	totalPausedTime time.Duration
}

// NewPausableClock creates a clock over the given real time source
func NewPausableClock(real TimeProvider) *PausableClock {
	return &PausableClock{real: real}
}

// Now returns current game time: real time minus all paused time
func (pc *PausableClock) Now() time.Time {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	if pc.paused {
		return pc.pauseStartTime.Add(-pc.totalPausedTime)
	}
	return pc.real.Now().Add(-pc.totalPausedTime)
}

// Pause stops game time advancement, no-op when already paused
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if pc.paused {
		return
	}
	pc.paused = true
	pc.pauseStartTime = pc.real.Now()
}

// Resume continues game time advancement, no-op when running
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if !pc.paused {
		return
	}
	pc.totalPausedTime += pc.real.Now().Sub(pc.pauseStartTime)
	pc.pauseStartTime = time.Time{}
	pc.paused = false
}

// Toggle flips the pause state and returns the new state
func (pc *PausableClock) Toggle() bool {
	if pc.IsPaused() {
		pc.Resume()
		return false
	}
	pc.Pause()
	return true
}

// IsPaused reports the pause state
func (pc *PausableClock) IsPaused() bool {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.paused
}
