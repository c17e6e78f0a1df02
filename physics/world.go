// Package physics adapts the Chipmunk2D engine (jakecoffman/cp) to the
// game: it owns the space, creates host and hair bodies, builds the joint
// primitives strands are made of and answers pointer intersection queries.
//
// Coordinates are screen-oriented: x grows right, y grows down, gravity is
// positive y.
package physics

import (
	"time"

	"github.com/jakecoffman/cp"
	"github.com/ojrac/opensimplex-go"

	"github.com/lixenwraith/crabcut/parameter"
)

// Collision categories
const (
	CategoryHost uint = 1 << iota
	CategoryHair

	allCategories = ^uint(0)
	noGroup       = 0
)

// hairQuery matches hair shapes of any group
var hairQuery = cp.ShapeFilter{Group: noGroup, Categories: allCategories, Mask: CategoryHair}

// SegmentSpec describes one rigid box body of a strand
type SegmentSpec struct {
	Position cp.Vector
	Angle    float64
	Length   float64
	Width    float64
	Density  float64
	Group    uint
}

// Mass returns the body mass implied by density and extent
func (s SegmentSpec) Mass() float64 {
	return s.Density * s.Length * s.Width
}

// World owns the simulation space and its fixed-step accumulator
type World struct {
	space  *cp.Space
	noise  opensimplex.Noise
	shapes map[*cp.Body][]*cp.Shape

	accum   time.Duration
	elapsed time.Duration
	steps   uint64
}

// NewWorld creates a space with default gravity, seeded sway noise
func NewWorld(seed int64) *World {
	space := cp.NewSpace()
	space.Iterations = parameter.PhysicsIterations
	space.SetGravity(cp.Vector{X: 0, Y: parameter.GravityY})
	space.SetDamping(parameter.PhysicsDamping)

	return &World{
		space:  space,
		noise:  opensimplex.New(seed),
		shapes: make(map[*cp.Body][]*cp.Shape),
	}
}

// AddSegment creates a dynamic box body for one hair segment
func (w *World) AddSegment(spec SegmentSpec) *cp.Body {
	mass := spec.Mass()
	body := w.space.AddBody(cp.NewBody(mass, cp.MomentForBox(mass, spec.Length, spec.Width)))
	body.SetPosition(spec.Position)
	body.SetAngle(spec.Angle)

	shape := w.space.AddShape(cp.NewBox(body, spec.Length, spec.Width, 0))
	shape.SetFilter(cp.ShapeFilter{Group: spec.Group, Categories: CategoryHair, Mask: allCategories})
	shape.SetFriction(0.4)
	shape.SetElasticity(0)

	w.shapes[body] = append(w.shapes[body], shape)
	return body
}

// AddConstraint adds c to the space
func (w *World) AddConstraint(c *cp.Constraint) *cp.Constraint {
	return w.space.AddConstraint(c)
}

// RemoveConstraint removes c from the space, absent constraints are ignored
func (w *World) RemoveConstraint(c *cp.Constraint) {
	if c == nil || !w.space.ContainsConstraint(c) {
		return
	}
	w.space.RemoveConstraint(c)
}

// ContainsConstraint reports whether c is currently simulated
func (w *World) ContainsConstraint(c *cp.Constraint) bool {
	return c != nil && w.space.ContainsConstraint(c)
}

// RemoveBody removes a body and the shapes this world attached to it
func (w *World) RemoveBody(body *cp.Body) {
	if body == nil {
		return
	}
	for _, shape := range w.shapes[body] {
		if w.space.ContainsShape(shape) {
			w.space.RemoveShape(shape)
		}
	}
	delete(w.shapes, body)
	if w.space.ContainsBody(body) {
		w.space.RemoveBody(body)
	}
}

// ContainsBody reports whether body is currently simulated
func (w *World) ContainsBody(body *cp.Body) bool {
	return body != nil && w.space.ContainsBody(body)
}

// Advance consumes dt in fixed steps, returns the number of steps taken
// Steps beyond PhysicsMaxStepsPerFrame are dropped to avoid a spiral after stalls
func (w *World) Advance(dt time.Duration) int {
	if dt <= 0 {
		return 0
	}
	w.accum += dt

	n := 0
	step := parameter.PhysicsTimeStep
	for w.accum >= step {
		if n == parameter.PhysicsMaxStepsPerFrame {
			w.accum = 0
			break
		}
		w.space.Step(step.Seconds())
		w.accum -= step
		w.elapsed += step
		w.steps++
		n++
	}
	return n
}

// Elapsed returns simulated time
func (w *World) Elapsed() time.Duration {
	return w.elapsed
}

// Steps returns the total number of fixed steps taken
func (w *World) Steps() uint64 {
	return w.steps
}
