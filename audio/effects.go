package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/crabcut/parameter"
)

// Wave maps a cycle position in [0, 1) to a sample in [-1, 1]
type Wave func(phase float64) float64

var (
	Sine Wave = func(p float64) float64 { return math.Sin(2 * math.Pi * p) }
	Saw  Wave = func(p float64) float64 { return 2*p - 1 }

	Square Wave = func(p float64) float64 {
		if p < 0.5 {
			return 1
		}
		return -1
	}

	// Noise ignores phase
	Noise Wave = func(float64) float64 { return rand.Float64()*2 - 1 }
)

// tone plays a wave at a fixed pitch for a fixed number of samples
type tone struct {
	wave  Wave
	step  float64 // cycles per sample
	phase float64
	left  int
}

// Tone returns a mono streamer of wave at freq Hz lasting d
func Tone(wave Wave, freq float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	return &tone{wave: wave, step: freq / float64(rate), left: rate.N(d)}
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	if t.left <= 0 {
		return 0, false
	}
	n := min(len(samples), t.left)
	for i := range samples[:n] {
		v := t.wave(t.phase)
		samples[i] = [2]float64{v, v}
		_, t.phase = math.Modf(t.phase + t.step)
	}
	t.left -= n
	return n, true
}

func (t *tone) Err() error { return nil }

// shaped multiplies a stream by a gain curve and cuts it where the curve ends
type shaped struct {
	s    beep.Streamer
	gain func(i int) float64
	i    int
	end  int
}

// Shape fades s in over attack and out over release so it is silent again at d
func Shape(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	end, a, r := rate.N(d), rate.N(attack), rate.N(release)
	return &shaped{s: s, end: end, gain: func(i int) float64 {
		g := 1.0
		if i < a {
			g = float64(i) / float64(a)
		}
		if r > 0 {
			g = min(g, float64(end-i)/float64(r))
		}
		return g
	}}
}

func (e *shaped) Stream(samples [][2]float64) (int, bool) {
	if e.i >= e.end {
		return 0, false
	}
	n, ok := e.s.Stream(samples[:min(len(samples), e.end-e.i)])
	for k := range samples[:n] {
		g := e.gain(e.i)
		samples[k][0] *= g
		samples[k][1] *= g
		e.i++
	}
	return n, ok
}

func (e *shaped) Err() error { return e.s.Err() }

// newVolume scales s linearly by vol
// math.Log2(0) is -Inf, so 0 volume is made silent instead
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// CreateCutSound generates a short bright snip with a noise transient
func CreateCutSound(rate beep.SampleRate, volume float64) beep.Streamer {
	d := parameter.CutSoundDuration
	click := d / 3

	ring := Shape(Tone(Sine, parameter.CutSoundFreq, d, rate), d, parameter.CutSoundAttack, parameter.CutSoundRelease, rate)
	snip := Shape(Tone(Noise, 0, click, rate), click, parameter.CutSoundAttack, click-parameter.CutSoundAttack, rate)

	return newVolume(beep.Mix(newVolume(ring, 0.6), newVolume(snip, 0.4)), volume)
}

// note is one shaped tone of a jingle
func note(wave Wave, freq float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	return Shape(Tone(wave, freq, d, rate), d, parameter.GameOverAttack, parameter.GameOverRelease, rate)
}

// CreateCriticalSound generates a two-tone alarm for the last stretch
func CreateCriticalSound(rate beep.SampleRate, volume float64) beep.Streamer {
	d := parameter.GameOverNoteDuration
	return newVolume(beep.Seq(note(Square, 880, d, rate), note(Square, 660, d, rate)), volume*0.5)
}

// CreateGameOverSound generates a descending three-note jingle, the last held
func CreateGameOverSound(rate beep.SampleRate, volume float64) beep.Streamer {
	d := parameter.GameOverNoteDuration
	return newVolume(beep.Seq(
		note(Saw, 659.25, d, rate),   // E5
		note(Saw, 523.25, d, rate),   // C5
		note(Saw, 392.00, 3*d, rate), // G4
	), volume*0.6)
}
