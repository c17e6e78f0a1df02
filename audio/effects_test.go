package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// drain streams s to completion and returns the sample count and peak
func drain(t *testing.T, s beep.Streamer, limit int) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	peak := 0.0
	for total < limit {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			if v := buf[i][0]; v > peak {
				peak = v
			} else if -v > peak {
				peak = -v
			}
		}
		total += n
		if !ok {
			break
		}
	}
	return total, peak
}

// TestToneSine verifies sine tone generation
func TestToneSine(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := Tone(Sine, 440, 100*time.Millisecond, rate)

	samples := make([][2]float64, 100)
	n, ok := osc.Stream(samples)
	if !ok || n != 100 {
		t.Fatalf("Expected 100 samples ok, got %d %v", n, ok)
	}
	for i := 0; i < n; i++ {
		if samples[i][0] < -1.0 || samples[i][0] > 1.0 {
			t.Errorf("Sample %d out of range: %f", i, samples[i][0])
		}
		if samples[i][0] != samples[i][1] {
			t.Errorf("Sample %d not mono", i)
		}
	}
	if osc.Err() != nil {
		t.Errorf("Expected no error, got: %v", osc.Err())
	}
}

// TestToneDuration verifies a tone ends after its duration
func TestToneDuration(t *testing.T) {
	rate := beep.SampleRate(1000)
	osc := Tone(Square, 10, 100*time.Millisecond, rate)

	n, _ := drain(t, osc, 10000)
	if n != 100 {
		t.Errorf("Expected 100 samples, got %d", n)
	}

	buf := make([][2]float64, 10)
	if n, ok := osc.Stream(buf); n != 0 || ok {
		t.Errorf("Expected drained tone, got %d %v", n, ok)
	}
}

// TestWaveShapes verifies each wave over one cycle
func TestWaveShapes(t *testing.T) {
	tests := []struct {
		name  string
		wave  Wave
		phase float64
		want  float64
	}{
		{"sine peak", Sine, 0.25, 1},
		{"sine zero", Sine, 0, 0},
		{"square high", Square, 0.1, 1},
		{"square low", Square, 0.6, -1},
		{"saw start", Saw, 0, -1},
		{"saw middle", Saw, 0.5, 0},
	}
	for _, tt := range tests {
		if got := tt.wave(tt.phase); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%s: got %f, want %f", tt.name, got, tt.want)
		}
	}
	for i := 0; i < 100; i++ {
		if v := Noise(0); v < -1 || v > 1 {
			t.Fatalf("Noise out of range: %f", v)
		}
	}
}

// TestTonePhaseWraps verifies a tone above the sample rate stays in range
func TestTonePhaseWraps(t *testing.T) {
	rate := beep.SampleRate(1000)
	_, peak := drain(t, Tone(Saw, 1250, 100*time.Millisecond, rate), 1000)
	if peak > 1 {
		t.Errorf("Expected wrapped phase, got peak %f", peak)
	}
}

// TestShapeFades verifies silence at the start and the end of a shaped stream
func TestShapeFades(t *testing.T) {
	rate := beep.SampleRate(1000)
	d := 100 * time.Millisecond
	osc := Tone(Square, 0, time.Second, rate) // phase stays 0, constant 1.0
	env := Shape(osc, d, 10*time.Millisecond, 10*time.Millisecond, rate)

	buf := make([][2]float64, 200)
	n, _ := env.Stream(buf)
	if n != 100 {
		t.Fatalf("Expected 100 samples, got %d", n)
	}
	if buf[0][0] != 0 {
		t.Errorf("Expected silent first sample, got %f", buf[0][0])
	}
	if buf[50][0] != 1 {
		t.Errorf("Expected full sustain, got %f", buf[50][0])
	}
	if buf[99][0] > 0.11 {
		t.Errorf("Expected faded tail, got %f", buf[99][0])
	}
	if n, ok := env.Stream(buf); n != 0 || ok {
		t.Errorf("Expected shape to cut the longer source, got %d %v", n, ok)
	}
}

// TestSoundEffectsTerminate verifies one-shot effects end and stay in range
func TestSoundEffectsTerminate(t *testing.T) {
	rate := beep.SampleRate(8000)
	tests := map[string]beep.Streamer{
		"cut":      CreateCutSound(rate, 1),
		"critical": CreateCriticalSound(rate, 1),
		"gameover": CreateGameOverSound(rate, 1),
	}

	for name, s := range tests {
		n, peak := drain(t, s, rate.N(10*time.Second))
		if n == 0 || n >= rate.N(10*time.Second) {
			t.Errorf("%s: unexpected length %d", name, n)
		}
		if peak > 1.0 {
			t.Errorf("%s: peak %f exceeds 1.0", name, peak)
		}
	}
}

// TestNewVolumeSilent verifies zero volume produces silence
func TestNewVolumeSilent(t *testing.T) {
	rate := beep.SampleRate(1000)
	s := newVolume(Tone(Square, 0, 50*time.Millisecond, rate), 0)
	_, peak := drain(t, s, 1000)
	if peak != 0 {
		t.Errorf("Expected silence, got peak %f", peak)
	}
}

// TestMusicGeneratorEndless verifies music never ends and tempo changes apply
func TestMusicGeneratorEndless(t *testing.T) {
	rate := beep.SampleRate(1000)
	g := NewMusicGenerator(rate, 100*time.Millisecond)

	n, _ := drain(t, g, 5000)
	if n != 5120 {
		t.Errorf("Expected endless stream, got %d samples", n)
	}

	g.SetBeat(50 * time.Millisecond)
	drain(t, g, 200)
	if g.beat != 50 {
		t.Errorf("Expected beat 50 samples after change, got %d", g.beat)
	}
}
