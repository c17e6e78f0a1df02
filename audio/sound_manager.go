// Package audio synthesizes the game's sounds with beep and plays them
// through a single speaker mixer
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/crabcut/parameter"
)

const (
	sampleRate = beep.SampleRate(parameter.AudioSampleRate)
)

// SoundManager manages all game audio
// All Play methods are no-ops until Initialize succeeds
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	music       *MusicGenerator
	musicCtrl   *beep.Ctrl
	volume      float64
	initialized bool

	now     func() time.Time
	lastCut time.Time
	cuts    int
}

// NewSoundManager creates a new sound manager at the given master volume
func NewSoundManager(volume float64) *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: volume,
		now:    time.Now,
	}
}

// Initialize sets up the speaker and starts the mixer
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(parameter.AudioBufferDuration))
	if err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds and closes the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()

	sm.music = nil
	sm.musicCtrl = nil
	sm.initialized = false
}

// add queues s on the mixer under the speaker lock
func (sm *SoundManager) add(s beep.Streamer) {
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// PlayCut plays the snip sound at most once per MinSoundGap and reports
// whether it passed the limit
func (sm *SoundManager) PlayCut() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	now := sm.now()
	if !sm.lastCut.IsZero() && now.Sub(sm.lastCut) < parameter.MinSoundGap {
		return false
	}
	sm.lastCut = now
	sm.cuts++

	if !sm.initialized {
		return true
	}
	sm.add(CreateCutSound(sampleRate, sm.volume))
	return true
}

// PlayMusic starts the background loop, or changes its tempo if playing
func (sm *SoundManager) PlayMusic(critical bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	beat := parameter.MusicBeat
	if critical {
		beat = parameter.CriticalBeat
	}

	if sm.musicCtrl != nil && !sm.musicCtrl.Paused {
		speaker.Lock()
		sm.music.SetBeat(beat)
		speaker.Unlock()
		if critical {
			sm.add(CreateCriticalSound(sampleRate, sm.volume))
		}
		return
	}

	sm.music = NewMusicGenerator(sampleRate, beat)
	sm.musicCtrl = &beep.Ctrl{Streamer: newVolume(sm.music, parameter.MusicVolume*sm.volume), Paused: false}
	sm.add(sm.musicCtrl)
}

// StopMusic ends the background loop
func (sm *SoundManager) StopMusic() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.musicCtrl == nil {
		return
	}
	// A Ctrl without a streamer reports drained, so the mixer drops it
	speaker.Lock()
	sm.musicCtrl.Streamer = nil
	speaker.Unlock()
	sm.musicCtrl = nil
	sm.music = nil
}

// PlayGameOver stops the music and plays the closing jingle
func (sm *SoundManager) PlayGameOver() {
	sm.StopMusic()

	sm.mu.Lock()
	defer sm.mu.Unlock()
	if !sm.initialized {
		return
	}
	sm.add(CreateGameOverSound(sampleRate, sm.volume))
}

// CutsPlayed returns how many cut sounds passed the rate limit
func (sm *SoundManager) CutsPlayed() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.cuts
}
