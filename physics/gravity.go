package physics

import (
	"time"

	"github.com/jakecoffman/cp"

	"github.com/lixenwraith/crabcut/parameter"
)

// Gravity returns the current gravity vector
func (w *World) Gravity() cp.Vector {
	return w.space.Gravity()
}

// Sway re-derives gravity for game time t: constant downward pull plus a
// noise-driven sideways component, so hair drifts as if in a current
func (w *World) Sway(t time.Duration) cp.Vector {
	x := w.noise.Eval2(t.Seconds()*parameter.GravitySwayFrequency, 0)
	g := cp.Vector{X: x * parameter.GravitySwayAmplitude, Y: parameter.GravityY}
	w.space.SetGravity(g)
	return g
}
