package audio

import (
	"testing"
	"time"

	"github.com/lixenwraith/crabcut/parameter"
)

// TestSoundManagerUninitialized verifies playback calls are safe before Initialize
func TestSoundManagerUninitialized(t *testing.T) {
	sm := NewSoundManager(1)

	sm.PlayMusic(false)
	sm.PlayMusic(true)
	sm.StopMusic()
	sm.PlayGameOver()
	sm.Cleanup()

	if sm.musicCtrl != nil {
		t.Error("Expected no music streamer without speaker")
	}
}

// TestSoundManagerCutRateLimit verifies cut sounds closer than MinSoundGap are dropped
func TestSoundManagerCutRateLimit(t *testing.T) {
	sm := NewSoundManager(1)
	now := time.Unix(1000, 0)
	sm.now = func() time.Time { return now }

	if !sm.PlayCut() {
		t.Fatal("Expected first cut sound to play")
	}
	if sm.PlayCut() {
		t.Error("Expected immediate second cut sound to be dropped")
	}

	now = now.Add(parameter.MinSoundGap)
	if !sm.PlayCut() {
		t.Error("Expected cut sound after gap to play")
	}

	if got := sm.CutsPlayed(); got != 2 {
		t.Errorf("Expected 2 cuts played, got %d", got)
	}
}

// TestSoundManagerStopMusicReleasesStreamer verifies stopped music leaves the mixer
func TestSoundManagerStopMusicReleasesStreamer(t *testing.T) {
	sm := NewSoundManager(1)
	// Mixer is driven by hand instead of the speaker
	sm.initialized = true
	defer func() { sm.initialized = false }()

	buf := make([][2]float64, 512)
	for round := 0; round < 2; round++ {
		sm.PlayMusic(false)
		sm.PlayMusic(true)
		sm.mixer.Stream(buf)
		if got := sm.mixer.Len(); got != 2 {
			t.Fatalf("Round %d: expected music and alarm in mixer, got %d", round, got)
		}

		sm.StopMusic()
		for i := 0; i < 100 && sm.mixer.Len() > 0; i++ {
			sm.mixer.Stream(buf)
		}
		if got := sm.mixer.Len(); got != 0 {
			t.Errorf("Round %d: expected empty mixer after stop, got %d", round, got)
		}
	}
}
