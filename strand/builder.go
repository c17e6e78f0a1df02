package strand

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/jakecoffman/cp"

	"github.com/lixenwraith/crabcut/parameter"
	"github.com/lixenwraith/crabcut/physics"
)

// Follicle is where and how one strand grows
type Follicle struct {
	Angle  float64 // polar angle around the host centre
	Params Params

	// RadiusScale fixes the multiple of host radius at which the strand takes
	// root, zero draws it from the builder's range
	RadiusScale float64

	// Group is the collision group, zero takes the next one from the pool
	Group uint
}

// AnchorPoint returns host.center + r*host.radius*(cos θ, sin θ)
func AnchorPoint(host Host, angle, r float64) cp.Vector {
	c := host.Center()
	d := r * host.Radius()
	return cp.Vector{X: c.X + d*math.Cos(angle), Y: c.Y + d*math.Sin(angle)}
}

// Builder grows strands into a space
type Builder struct {
	space     Space
	pool      *CollisionGroupPool
	rng       *rand.Rand
	radiusMin float64
	radiusMax float64
}

// NewBuilder creates a builder drawing anchor radii from rng
func NewBuilder(space Space, pool *CollisionGroupPool, rng *rand.Rand) *Builder {
	return &Builder{
		space:     space,
		pool:      pool,
		rng:       rng,
		radiusMin: parameter.AnchorRadiusMin,
		radiusMax: parameter.AnchorRadiusMax,
	}
}

// SetRadiusRange overrides the anchor radius multiple range [min, max)
func (b *Builder) SetRadiusRange(min, max float64) error {
	if !(min > 0) || max < min {
		return fmt.Errorf("%w: anchor radius range [%v, %v)", ErrInvalidParams, min, max)
	}
	b.radiusMin, b.radiusMax = min, max
	return nil
}

// Pool returns the builder's collision group pool
func (b *Builder) Pool() *CollisionGroupPool {
	return b.pool
}

func (b *Builder) drawRadius() float64 {
	if b.radiusMax == b.radiusMin || b.rng == nil {
		return b.radiusMin
	}
	return b.radiusMin + b.rng.Float64()*(b.radiusMax-b.radiusMin)
}

// Build validates f, lays out its segments along the follicle angle and
// adds bodies and joints to the space
func (b *Builder) Build(host Host, f Follicle) (*Strand, error) {
	if host == nil || host.Body() == nil {
		return nil, ErrNoHost
	}
	if b.pool == nil {
		return nil, ErrNoGroupPool
	}
	p := f.Params
	if err := p.Validate(); err != nil {
		return nil, err
	}

	r := f.RadiusScale
	if r == 0 {
		r = b.drawRadius()
	} else if r < 0 {
		return nil, fmt.Errorf("%w: radius scale %v is negative", ErrInvalidParams, r)
	}

	group := f.Group
	if group == 0 {
		group = b.pool.Next()
	} else if !b.pool.Contains(group) {
		return nil, fmt.Errorf("%w: collision group %d not in pool", ErrInvalidParams, group)
	}

	root := AnchorPoint(host, f.Angle, r)
	dir := cp.Vector{X: math.Cos(f.Angle), Y: math.Sin(f.Angle)}
	spacing := p.Spacing()
	half := p.SegmentLength / 2

	s := &Strand{
		Host:        host,
		Angle:       f.Angle,
		RadiusScale: r,
		Root:        root,
		Params:      p,
		Group:       group,
		Segments:    make([]*Segment, p.SegmentCount),
		index:       make(map[*cp.Body]int, p.SegmentCount),
	}

	density := p.Density
	for i := range s.Segments {
		centre := root.Add(dir.Mult(half + float64(i)*spacing))
		body := b.space.AddSegment(physics.SegmentSpec{
			Position: centre,
			Angle:    f.Angle,
			Length:   p.SegmentLength,
			Width:    p.SegmentWidth,
			Density:  density,
			Group:    s.Group,
		})
		s.Segments[i] = &Segment{
			Index:   i,
			Body:    body,
			Length:  p.SegmentLength,
			Width:   p.SegmentWidth,
			Density: density,
			Group:   s.Group,
			live:    true,
		}
		s.index[body] = i
		density *= p.DensityDecay
	}

	// Pins meet halfway between centres, inside both segments rather than at their tips
	pinX := spacing / 2
	angular := p.AngularStiffness
	for i := 1; i < len(s.Segments); i++ {
		prev, cur := s.Segments[i-1].Body, s.Segments[i].Body
		j := &Joint{
			Kind:             JointPin,
			Proximal:         i - 1,
			Distal:           i,
			Stiffness:        p.Stiffness,
			AngularStiffness: angular,
			live:             true,
		}
		j.constraints = append(j.constraints,
			b.space.AddConstraint(physics.PinJoint(prev, cur, cp.Vector{X: pinX}, cp.Vector{X: -pinX}, p.Stiffness)))
		if angular > 0 {
			j.constraints = append(j.constraints, b.space.AddConstraint(physics.BendSpring(prev, cur, angular)))
		}
		s.Pins = append(s.Pins, j)
		angular *= p.AngularDecay
	}

	if p.TensionStiffness > 0 {
		rest := p.TensionLength()
		for i := 1; i < len(s.Segments); i++ {
			j := &Joint{
				Kind:       JointTension,
				Proximal:   i - 1,
				Distal:     i,
				Stiffness:  p.TensionStiffness,
				RestLength: rest,
				live:       true,
			}
			j.constraints = append(j.constraints, b.space.AddConstraint(
				physics.TensionSpring(s.Segments[i-1].Body, s.Segments[i].Body, rest, p.TensionStiffness)))
			s.Tensions = append(s.Tensions, j)
		}
	}

	// Anchor in host-local coordinates so the root follows the host's rotation
	hostBody := host.Body()
	rootBody := s.Segments[0].Body
	s.Anchor = &Joint{
		Kind:             JointAnchor,
		Proximal:         HostIndex,
		Distal:           0,
		Stiffness:        p.Stiffness,
		AngularStiffness: p.Stiffness,
		live:             true,
	}
	s.Anchor.constraints = []*cp.Constraint{
		b.space.AddConstraint(physics.PinJoint(hostBody, rootBody, hostBody.WorldToLocal(root), cp.Vector{X: -half}, p.Stiffness)),
		b.space.AddConstraint(physics.AnchorSpring(hostBody, rootBody, p.Stiffness)),
	}

	return s, nil
}
