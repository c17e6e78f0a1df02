// Package strand builds hair strands: chains of rigid segments joined by pin
// and tension joints and anchored to a host body. A strand is created whole
// and only ever loses joints afterwards.
package strand

import (
	"github.com/jakecoffman/cp"

	"github.com/lixenwraith/crabcut/physics"
)

// HostIndex is the proximal index of the anchor joint
const HostIndex = -1

// Space is the part of the simulation a strand lives in
type Space interface {
	AddSegment(spec physics.SegmentSpec) *cp.Body
	AddConstraint(c *cp.Constraint) *cp.Constraint
	RemoveConstraint(c *cp.Constraint)
	RemoveBody(body *cp.Body)
}

// Host is the body strands attach to
type Host interface {
	Body() *cp.Body
	Center() cp.Vector
	Radius() float64
}

// JointKind distinguishes the three joint roles
type JointKind uint8

const (
	JointPin JointKind = iota
	JointTension
	JointAnchor
)

func (k JointKind) String() string {
	switch k {
	case JointPin:
		return "pin"
	case JointTension:
		return "tension"
	case JointAnchor:
		return "anchor"
	default:
		return "unknown"
	}
}

// State is the lifecycle of a strand
type State uint8

const (
	StateIntact State = iota
	StatePartiallySevered
)

func (s State) String() string {
	if s == StateIntact {
		return "intact"
	}
	return "partially-severed"
}

// Segment is one rigid body of a strand
type Segment struct {
	Index   int
	Body    *cp.Body
	Length  float64
	Width   float64
	Density float64
	Group   uint

	live bool
}

// Live reports whether the segment is still in the world
func (s *Segment) Live() bool {
	return s.live
}

// Ends returns the proximal and distal end points in world space
func (s *Segment) Ends() (proximal, distal cp.Vector) {
	half := s.Length / 2
	return s.Body.LocalToWorld(cp.Vector{X: -half}), s.Body.LocalToWorld(cp.Vector{X: half})
}

// Joint links a proximal segment (or the host) to a distal segment
// One joint may own several engine constraints, e.g. a pivot plus a bend spring
type Joint struct {
	Kind             JointKind
	Proximal         int // HostIndex for the anchor
	Distal           int
	Stiffness        float64
	AngularStiffness float64
	RestLength       float64

	constraints []*cp.Constraint
	live        bool
}

// Live reports whether the joint is still simulated
func (j *Joint) Live() bool {
	return j.live
}

// Constraints returns the engine constraints backing the joint
func (j *Joint) Constraints() []*cp.Constraint {
	return j.constraints
}

func (j *Joint) remove(space Space) {
	for _, c := range j.constraints {
		space.RemoveConstraint(c)
	}
	j.live = false
}

// Strand is one hair
type Strand struct {
	Host        Host
	Angle       float64
	RadiusScale float64
	Root        cp.Vector // anchor point in world space at build time
	Params      Params
	Group       uint

	Segments []*Segment
	Pins     []*Joint
	Tensions []*Joint
	Anchor   *Joint

	index map[*cp.Body]int
	cuts  int
}

// Joints returns every joint, anchor first, then pins and tensions
func (s *Strand) Joints() []*Joint {
	all := make([]*Joint, 0, 1+len(s.Pins)+len(s.Tensions))
	all = append(all, s.Anchor)
	all = append(all, s.Pins...)
	all = append(all, s.Tensions...)
	return all
}

// LiveJoints returns joints still simulated
func (s *Strand) LiveJoints() []*Joint {
	var live []*Joint
	for _, j := range s.Joints() {
		if j.live {
			live = append(live, j)
		}
	}
	return live
}

// IndexOf maps a body to its segment index
func (s *Strand) IndexOf(body *cp.Body) (int, bool) {
	i, ok := s.index[body]
	return i, ok
}

// State reports whether any cut has been made
func (s *Strand) State() State {
	if s.cuts == 0 {
		return StateIntact
	}
	return StatePartiallySevered
}

// Sever removes every live joint whose distal endpoint is segment i and
// returns how many were removed. Joints where i is proximal are kept, so
// the part of the strand above the cut stays attached to the host.
func (s *Strand) Sever(space Space, i int) int {
	if i < 0 || i >= len(s.Segments) {
		return 0
	}

	removed := 0
	for _, j := range s.Joints() {
		if j.live && j.Distal == i {
			j.remove(space)
			removed++
		}
	}
	if removed > 0 {
		s.cuts++
	}
	return removed
}

// Prune removes segment i from the world together with every joint naming it
// on either side, returns the number of joints removed
func (s *Strand) Prune(space Space, i int) int {
	if i < 0 || i >= len(s.Segments) || !s.Segments[i].live {
		return 0
	}

	removed := 0
	for _, j := range s.Joints() {
		if j.live && (j.Distal == i || j.Proximal == i) {
			j.remove(space)
			removed++
		}
	}

	seg := s.Segments[i]
	space.RemoveBody(seg.Body)
	seg.live = false
	return removed
}

// Anchored reports whether segment i is connected to the host through live joints
func (s *Strand) Anchored(i int) bool {
	if i < 0 || i >= len(s.Segments) {
		return false
	}
	return s.component(HostIndex)[i]
}

// Fragments returns the live segments grouped by connectivity, the anchored
// fragment (if any) first, each fragment in index order
func (s *Strand) Fragments() [][]int {
	seen := make(map[int]bool, len(s.Segments))
	var out [][]int

	anchored := s.component(HostIndex)
	if len(anchored) > 0 {
		out = append(out, sortedKeys(anchored, len(s.Segments)))
		for i := range anchored {
			seen[i] = true
		}
	}

	for _, seg := range s.Segments {
		if !seg.live || seen[seg.Index] {
			continue
		}
		comp := s.component(seg.Index)
		comp[seg.Index] = true
		for i := range comp {
			seen[i] = true
		}
		out = append(out, sortedKeys(comp, len(s.Segments)))
	}
	return out
}

// component returns the live segments reachable from start via live joints
// start itself is not included when it is HostIndex
func (s *Strand) component(start int) map[int]bool {
	adj := make(map[int][]int)
	for _, j := range s.Joints() {
		if !j.live {
			continue
		}
		adj[j.Proximal] = append(adj[j.Proximal], j.Distal)
		adj[j.Distal] = append(adj[j.Distal], j.Proximal)
	}

	reached := make(map[int]bool)
	stack := []int{start}
	visited := map[int]bool{start: true}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, m := range adj[n] {
			if visited[m] {
				continue
			}
			visited[m] = true
			if m != HostIndex && s.Segments[m].live {
				reached[m] = true
			}
			stack = append(stack, m)
		}
	}
	return reached
}

func sortedKeys(set map[int]bool, n int) []int {
	out := make([]int, 0, len(set))
	for i := 0; i < n; i++ {
		if set[i] {
			out = append(out, i)
		}
	}
	return out
}
