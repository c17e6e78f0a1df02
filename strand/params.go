package strand

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/crabcut/parameter"
)

var (
	// ErrInvalidParams reports a shape parameter outside its allowed range
	ErrInvalidParams = errors.New("invalid strand parameters")

	// ErrNoHost reports a build without a host body
	ErrNoHost = errors.New("strand requires a host")

	// ErrNoGroupPool reports a builder without a collision group pool
	ErrNoGroupPool = errors.New("strand requires a collision group pool")
)

// Params is the shape of one strand
type Params struct {
	SegmentLength    float64
	SegmentWidth     float64
	SegmentCount     int
	Density          float64 // root segment density
	DensityDecay     float64 // density multiplier per index, (0,1]
	Stiffness        float64 // pin and anchor positional stiffness, [0,1]
	AngularStiffness float64 // root joint bend stiffness, [0,1]
	AngularDecay     float64 // bend stiffness multiplier per joint, (0,1]
	TensionStiffness float64 // 0 disables tension joints, [0,1]
	Overlap          float64 // shared fraction of neighbouring segments, [0,1)
	Kinkiness        float64 // tension slack fraction, [0,1]
}

// DefaultParams returns the compiled strand shape
func DefaultParams() Params {
	return Params{
		SegmentLength:    parameter.StrandSegmentLength,
		SegmentWidth:     parameter.StrandSegmentWidth,
		SegmentCount:     parameter.StrandSegmentCount,
		Density:          parameter.StrandDensity,
		DensityDecay:     parameter.StrandDensityDecay,
		Stiffness:        parameter.StrandStiffness,
		AngularStiffness: parameter.StrandAngularStiffness,
		AngularDecay:     parameter.StrandAngularDecay,
		TensionStiffness: parameter.StrandTensionStiffness,
		Overlap:          parameter.StrandOverlap,
		Kinkiness:        parameter.StrandKinkiness,
	}
}

// Validate rejects out-of-range values, naming the first offending field
func (p Params) Validate() error {
	switch {
	case p.SegmentCount < 1:
		return fmt.Errorf("%w: segment count %d < 1", ErrInvalidParams, p.SegmentCount)
	case !(p.SegmentLength > 0):
		return fmt.Errorf("%w: segment length %v must be positive", ErrInvalidParams, p.SegmentLength)
	case !(p.SegmentWidth > 0):
		return fmt.Errorf("%w: segment width %v must be positive", ErrInvalidParams, p.SegmentWidth)
	case !(p.Density > 0):
		return fmt.Errorf("%w: density %v must be positive", ErrInvalidParams, p.Density)
	case !(p.DensityDecay > 0 && p.DensityDecay <= 1):
		return fmt.Errorf("%w: density decay %v outside (0,1]", ErrInvalidParams, p.DensityDecay)
	case !(p.AngularDecay > 0 && p.AngularDecay <= 1):
		return fmt.Errorf("%w: angular decay %v outside (0,1]", ErrInvalidParams, p.AngularDecay)
	case !unit(p.Stiffness):
		return fmt.Errorf("%w: stiffness %v outside [0,1]", ErrInvalidParams, p.Stiffness)
	case !unit(p.AngularStiffness):
		return fmt.Errorf("%w: angular stiffness %v outside [0,1]", ErrInvalidParams, p.AngularStiffness)
	case !unit(p.TensionStiffness):
		return fmt.Errorf("%w: tension stiffness %v outside [0,1]", ErrInvalidParams, p.TensionStiffness)
	case !(p.Overlap >= 0 && p.Overlap < 1):
		return fmt.Errorf("%w: overlap %v outside [0,1)", ErrInvalidParams, p.Overlap)
	case !unit(p.Kinkiness):
		return fmt.Errorf("%w: kinkiness %v outside [0,1]", ErrInvalidParams, p.Kinkiness)
	}
	return nil
}

// Spacing is the distance between neighbouring segment centres
func (p Params) Spacing() float64 {
	return p.SegmentLength * (1 - p.Overlap)
}

// TensionLength is the rest length of tension joints
func (p Params) TensionLength() float64 {
	return p.Spacing() * (1 - p.Kinkiness)
}

func unit(v float64) bool {
	return v >= 0 && v <= 1
}
