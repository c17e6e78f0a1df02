package physics

import (
	"math"
	"time"

	"github.com/jakecoffman/cp"

	"github.com/lixenwraith/crabcut/parameter"
)

// Host is a circular kinematic body strands are anchored to
type Host struct {
	body   *cp.Body
	shape  *cp.Shape
	radius float64
}

// AddHost creates a kinematic circle at center
func (w *World) AddHost(center cp.Vector, radius float64) *Host {
	body := w.space.AddBody(cp.NewKinematicBody())
	body.SetPosition(center)

	shape := w.space.AddShape(cp.NewCircle(body, radius, cp.Vector{}))
	shape.SetFilter(cp.ShapeFilter{Group: noGroup, Categories: CategoryHost, Mask: allCategories})
	shape.SetFriction(0.6)

	w.shapes[body] = append(w.shapes[body], shape)
	return &Host{body: body, shape: shape, radius: radius}
}

// Body returns the engine body, nil for a nil host
func (h *Host) Body() *cp.Body {
	if h == nil {
		return nil
	}
	return h.body
}

// Center returns the current world position of the host
func (h *Host) Center() cp.Vector {
	return h.body.Position()
}

// Radius returns the characteristic radius
func (h *Host) Radius() float64 {
	return h.radius
}

// Angle returns the current host rotation
func (h *Host) Angle() float64 {
	return h.body.Angle()
}

// Wobble sets the shell's angular velocity for game time t, a slow
// sinusoidal rock around the rest angle
func (h *Host) Wobble(t time.Duration) float64 {
	phase := 2 * math.Pi * t.Seconds() / parameter.HostSpinPeriod.Seconds()
	w := parameter.HostSpin * math.Cos(phase)
	h.body.SetAngularVelocity(w)
	return w
}
