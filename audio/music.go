package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// MusicGenerator generates an endless kick-and-bass loop. The beat period can
// be changed while playing; the change takes effect on the next beat.
type MusicGenerator struct {
	sr      beep.SampleRate
	pos     int
	beatPos int
	beat    int
	next    int
	bar     int
}

// NewMusicGenerator creates a loop with the given beat period
func NewMusicGenerator(sr beep.SampleRate, beat time.Duration) *MusicGenerator {
	n := sr.N(beat)
	return &MusicGenerator{sr: sr, beat: n, next: n}
}

// SetBeat changes the beat period from the next beat on
// Callers must hold the speaker lock while the generator is playing
func (g *MusicGenerator) SetBeat(beat time.Duration) {
	g.next = g.sr.N(beat)
}

// bassLine is one note per beat, a minor arpeggio
var bassLine = []float64{110.00, 130.81, 164.81, 130.81}

func (g *MusicGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	kickLen := g.sr.N(80 * time.Millisecond)
	for i := range samples {
		if g.beatPos >= g.beat {
			g.beatPos = 0
			g.beat = g.next
			g.bar = (g.bar + 1) % len(bassLine)
		}
		t := float64(g.beatPos) / float64(g.sr)

		kick := 0.0
		if g.beatPos < kickLen {
			env := 1.0 - float64(g.beatPos)/float64(kickLen)
			kick = 0.5 * env * math.Sin(2*math.Pi*60*(1+2*env)*t)
		}

		bassEnv := math.Exp(-t * 4)
		bass := 0.25 * bassEnv * math.Sin(2*math.Pi*bassLine[g.bar]*float64(g.pos)/float64(g.sr))

		sample := kick + bass
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
		g.beatPos++
	}
	return len(samples), true
}

func (g *MusicGenerator) Err() error {
	return nil
}
