package parameter

import "time"

// Session
const (
	// SessionDuration is the countdown length of one game
	SessionDuration = 30 * time.Second

	// SessionCriticalFraction is the remaining fraction at which the session
	// goes critical
	SessionCriticalFraction = 0.25

	// SessionTimerInterval is the countdown task period
	SessionTimerInterval = 100 * time.Millisecond
)

// Frame loop
const (
	// FrameInterval is the render and simulation frame period (~60 FPS)
	FrameInterval = 16 * time.Millisecond

	// InputQueueSize is the buffered capacity of the input channel
	InputQueueSize = 100
)

// Viewport
const (
	// ViewScaleX and ViewScaleY are world units per terminal cell, cells are
	// roughly twice as tall as wide
	ViewScaleX = 4.0
	ViewScaleY = 8.0

	// PruneMargin is the distance outside the view at which detached
	// fragments are removed
	PruneMargin = 40.0
)

// Title screen
const (
	// TitleFadeFrequency and TitleFadeDamping drive the title fade spring
	TitleFadeFrequency = 2.0
	TitleFadeDamping   = 1.0

	// TimerBarFrequency and TimerBarDamping drive the timer bar spring
	TimerBarFrequency = 8.0
	TimerBarDamping   = 1.0

	// CutFlashDuration is how long the score flashes after a cut
	CutFlashDuration = 150 * time.Millisecond
)
