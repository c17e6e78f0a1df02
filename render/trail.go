package render

import (
	"time"
)

const (
	trailLength  = 8
	trailDecay   = 50 * time.Millisecond
	trailLife    = 500 * time.Millisecond
	trailMinGlow = 0.05
)

// TrailPoint is one fading cell of the pointer slash
type TrailPoint struct {
	X, Y      int
	Intensity float64
	At        time.Time
}

// Trail is the fading path the pointer leaves while slashing
type Trail struct {
	points []TrailPoint
}

// Add interpolates trail points from (fromX, fromY) to (toX, toY)
func (t *Trail) Add(fromX, fromY, toX, toY int, now time.Time) {
	dx := float64(toX - fromX)
	dy := float64(toY - fromY)

	for i := 1; i <= trailLength; i++ {
		progress := float64(i) / float64(trailLength)
		t.points = append(t.points, TrailPoint{
			X:         fromX + int(dx*progress),
			Y:         fromY + int(dy*progress),
			Intensity: 1.0 - (1-progress)*0.8,
			At:        now.Add(time.Duration(i-trailLength) * trailDecay / 2),
		})
	}
}

// Update decays points and drops expired ones
func (t *Trail) Update(now time.Time) {
	kept := t.points[:0]
	for _, p := range t.points {
		elapsed := now.Sub(p.At)
		if elapsed < 0 {
			kept = append(kept, p)
			continue
		}
		if elapsed >= trailLife {
			continue
		}
		p.Intensity *= 1.0 - elapsed.Seconds()/trailLife.Seconds()
		if p.Intensity > trailMinGlow {
			kept = append(kept, p)
		}
	}
	t.points = kept
}

// Points returns the live trail points
func (t *Trail) Points() []TrailPoint {
	return t.points
}

// Clear drops every point
func (t *Trail) Clear() {
	t.points = t.points[:0]
}
