package parameter

// Strand shape defaults, tuned for a terminal viewport where one cell spans
// ViewScaleX by ViewScaleY world units
const (
	// StrandSegmentLength is the rigid length of one hair segment
	StrandSegmentLength = 24.0

	// StrandSegmentWidth is the rigid thickness of one hair segment
	StrandSegmentWidth = 6.0

	// StrandSegmentCount is the number of segments per strand
	StrandSegmentCount = 6

	// StrandDensity is the density of the root segment
	StrandDensity = 0.002

	// StrandDensityDecay scales density per segment index, tip lighter than root
	StrandDensityDecay = 0.9

	// StrandStiffness is the positional stiffness of pin joints
	StrandStiffness = 0.9

	// StrandAngularStiffness is the bend stiffness of the root joint
	StrandAngularStiffness = 0.7

	// StrandAngularDecay scales bend stiffness per joint index
	StrandAngularDecay = 0.8

	// StrandTensionStiffness is the stretch stiffness, 0 disables tension joints
	StrandTensionStiffness = 0.3

	// StrandOverlap is the fraction of segment length shared by neighbours
	StrandOverlap = 0.1

	// StrandKinkiness shortens tension rest length to add slack
	StrandKinkiness = 0.2
)

// Follicle placement
const (
	// AnchorRadiusMin and AnchorRadiusMax bound the random multiple of host
	// radius at which strands take root
	AnchorRadiusMin = 1.1
	AnchorRadiusMax = 1.3

	// CollisionGroupCount is the size of the group pool shared by all strands
	CollisionGroupCount = 4

	// FollicleCount is the number of strands grown per session
	FollicleCount = 14

	// FollicleArcStart and FollicleArcEnd bound follicle angles (radians,
	// screen coordinates, y down) so hair grows from the top of the shell
	FollicleArcStart = -2.8
	FollicleArcEnd   = -0.34

	// FollicleAngleJitter is the random spread applied to each follicle angle
	FollicleAngleJitter = 0.08

	// FollicleLengthJitter is the relative random spread of segment length
	FollicleLengthJitter = 0.25

	// FollicleKinkinessJitter is the absolute random spread of kinkiness
	FollicleKinkinessJitter = 0.15
)
