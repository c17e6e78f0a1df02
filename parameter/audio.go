package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond

	// MinSoundGap between consecutive cut sounds
	MinSoundGap = 40 * time.Millisecond
)

// Cut Sound
const (
	CutSoundDuration = 90 * time.Millisecond
	CutSoundAttack   = 3 * time.Millisecond
	CutSoundRelease  = 60 * time.Millisecond
	CutSoundFreq     = 1760.0
)

// Game Over Sound
const (
	GameOverNoteDuration = 180 * time.Millisecond
	GameOverAttack       = 5 * time.Millisecond
	GameOverRelease      = 120 * time.Millisecond
)

// Music
const (
	// MusicBeat is the beat period of the normal loop, CriticalBeat when critical
	MusicBeat    = 500 * time.Millisecond
	CriticalBeat = 250 * time.Millisecond
	MusicVolume  = 0.12
)
