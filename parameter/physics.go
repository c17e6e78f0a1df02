package parameter

import "time"

// Simulation stepping
const (
	// PhysicsTimeStep is the fixed simulation step
	PhysicsTimeStep = time.Second / 120

	// PhysicsMaxStepsPerFrame caps catch-up steps after a stall
	PhysicsMaxStepsPerFrame = 8

	// PhysicsIterations is the constraint solver iteration count
	PhysicsIterations = 20

	// PhysicsDamping is the per-second velocity retention of the space
	PhysicsDamping = 0.6
)

// Gravity
const (
	// GravityY is the downward pull in world units per second squared
	GravityY = 420.0

	// GravitySwayAmplitude is the peak sideways gravity from noise sway
	GravitySwayAmplitude = 160.0

	// GravitySwayFrequency is the noise sample rate per second of game time
	GravitySwayFrequency = 0.35

	// GravitySwayInterval is how often the sway task re-derives gravity
	GravitySwayInterval = 50 * time.Millisecond
)

// Constraint scaling from normalized [0,1] stiffness to engine units
const (
	// AngularSpringScale converts bend stiffness to rotary spring constant
	AngularSpringScale = 40000.0

	// AngularSpringDamping is the rotary spring damping
	AngularSpringDamping = 600.0

	// TensionSpringScale converts stretch stiffness to spring constant
	TensionSpringScale = 400.0

	// TensionSpringDamping is the linear spring damping
	TensionSpringDamping = 4.0

	// AnchorAngularScale holds the root segment angle relative to the host
	AnchorAngularScale = 80000.0
)

// Host
const (
	// HostRadius is the crab shell radius in world units
	HostRadius = 60.0

	// HostSpin is the peak angular velocity of the shell wobble
	HostSpin = 0.25

	// HostSpinPeriod is the wobble period
	HostSpinPeriod = 4 * time.Second
)

// Pointer
const (
	// PointerRadius is the thickness of the slash query
	PointerRadius = 2.0
)
