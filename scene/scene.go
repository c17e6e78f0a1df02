// Package scene lays out the crab and its follicles and grows the hair
package scene

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/jakecoffman/cp"

	"github.com/lixenwraith/crabcut/parameter"
	"github.com/lixenwraith/crabcut/physics"
	"github.com/lixenwraith/crabcut/strand"
)

// Layout places follicles on an arc of the host and randomizes their shape
type Layout struct {
	Center     cp.Vector
	HostRadius float64
	Count      int
	ArcStart   float64
	ArcEnd     float64

	AngleJitter     float64
	LengthJitter    float64 // relative
	KinkinessJitter float64 // absolute

	Base strand.Params
}

// DefaultLayout centres the crab at c
func DefaultLayout(c cp.Vector) Layout {
	return Layout{
		Center:          c,
		HostRadius:      parameter.HostRadius,
		Count:           parameter.FollicleCount,
		ArcStart:        parameter.FollicleArcStart,
		ArcEnd:          parameter.FollicleArcEnd,
		AngleJitter:     parameter.FollicleAngleJitter,
		LengthJitter:    parameter.FollicleLengthJitter,
		KinkinessJitter: parameter.FollicleKinkinessJitter,
		Base:            strand.DefaultParams(),
	}
}

// Follicles spreads Count follicles evenly over the arc, then jitters angle,
// segment length and kinkiness. Jittered values are clamped into their valid
// ranges so every follicle passes validation when Base does.
func Follicles(l Layout, rng *rand.Rand) []strand.Follicle {
	out := make([]strand.Follicle, 0, l.Count)
	for i := 0; i < l.Count; i++ {
		t := 0.5
		if l.Count > 1 {
			t = float64(i) / float64(l.Count-1)
		}
		angle := l.ArcStart + t*(l.ArcEnd-l.ArcStart)

		p := l.Base
		if rng != nil {
			angle += spread(rng, l.AngleJitter)
			p.SegmentLength *= 1 + spread(rng, l.LengthJitter)
			p.Kinkiness = clamp(p.Kinkiness+spread(rng, l.KinkinessJitter), 0, 1)
		}
		if p.SegmentLength <= 0 {
			p.SegmentLength = l.Base.SegmentLength
		}

		out = append(out, strand.Follicle{Angle: angle, Params: p})
	}
	return out
}

// Scene is the crab and its hair for one session
type Scene struct {
	Host      *physics.Host
	Follicles []strand.Follicle
	Strands   []*strand.Strand
}

// Build creates the host in world and grows one strand per follicle
func Build(world *physics.World, builder *strand.Builder, l Layout, rng *rand.Rand) (*Scene, error) {
	if !(l.HostRadius > 0) {
		return nil, fmt.Errorf("%w: host radius %v", strand.ErrInvalidParams, l.HostRadius)
	}

	sc := &Scene{
		Host:      world.AddHost(l.Center, l.HostRadius),
		Follicles: Follicles(l, rng),
	}

	// Neighbouring follicles share a group so adjacent hair never tangles
	if pool := builder.Pool(); pool != nil {
		for i := range sc.Follicles {
			sc.Follicles[i].Group = pool.Arc(i, len(sc.Follicles))
		}
	}

	for i, f := range sc.Follicles {
		s, err := builder.Build(sc.Host, f)
		if err != nil {
			return nil, fmt.Errorf("follicle %d: %w", i, err)
		}
		sc.Strands = append(sc.Strands, s)
	}
	return sc, nil
}

// spread returns a uniform value in [-w, w)
func spread(rng *rand.Rand, w float64) float64 {
	if w == 0 {
		return 0
	}
	return (rng.Float64()*2 - 1) * w
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
