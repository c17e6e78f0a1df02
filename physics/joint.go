package physics

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/lixenwraith/crabcut/parameter"
)

// Constraint constructors map normalized [0,1] stiffness values onto engine
// units. None of them add the constraint to a space.

// PinJoint joins anchorA on a to anchorB on b (body-local points)
// stiffness scales how quickly joint error is corrected
func PinJoint(a, b *cp.Body, anchorA, anchorB cp.Vector, stiffness float64) *cp.Constraint {
	c := cp.NewPivotJoint2(a, b, anchorA, anchorB)
	c.SetErrorBias(math.Pow(1-0.1*stiffness, 60))
	c.SetCollideBodies(false)
	return c
}

// BendSpring resists relative rotation of b against a around their angle at
// creation time
func BendSpring(a, b *cp.Body, angularStiffness float64) *cp.Constraint {
	rest := a.Angle() - b.Angle()
	c := cp.NewDampedRotarySpring(a, b, rest, angularStiffness*parameter.AngularSpringScale, parameter.AngularSpringDamping)
	c.SetCollideBodies(false)
	return c
}

// AnchorSpring holds b's angle relative to the host a
func AnchorSpring(a, b *cp.Body, stiffness float64) *cp.Constraint {
	rest := a.Angle() - b.Angle()
	c := cp.NewDampedRotarySpring(a, b, rest, stiffness*parameter.AnchorAngularScale, parameter.AngularSpringDamping)
	c.SetCollideBodies(false)
	return c
}

// TensionSpring spans the centres of a and b with the given rest length
func TensionSpring(a, b *cp.Body, restLength, stiffness float64) *cp.Constraint {
	c := cp.NewDampedSpring(a, b, cp.Vector{}, cp.Vector{}, restLength, stiffness*parameter.TensionSpringScale, parameter.TensionSpringDamping)
	c.SetCollideBodies(false)
	return c
}
