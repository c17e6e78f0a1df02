// Package severance turns pointer hits on hair into cuts: it maps bodies
// back to their strands, detaches the hit segment from its parent and keeps
// score.
package severance

import (
	"github.com/jakecoffman/cp"

	"github.com/lixenwraith/crabcut/strand"
)

// Scorer records one effective cut and returns the new score
type Scorer interface {
	RecordCut() int
}

// Querier finds hair bodies under the pointer
type Querier interface {
	BodiesAlong(from, to cp.Vector, radius float64) []*cp.Body
	BodyAt(p cp.Vector, radius float64) *cp.Body
}

// CutEvent describes one effective cut
type CutEvent struct {
	Strand  *strand.Strand
	Segment int
	Removed int
	Score   int
}

// Bounds is an axis-aligned world rectangle
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// Contains reports whether p lies inside b
func (b Bounds) Contains(p cp.Vector) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// Tracker owns the body-to-strand index for one session
type Tracker struct {
	space     strand.Space
	scorer    Scorer
	owners    map[*cp.Body]*strand.Strand
	strands   []*strand.Strand
	listeners []func(CutEvent)
	radius    float64
}

// NewTracker creates a tracker cutting in space and scoring on scorer
func NewTracker(space strand.Space, scorer Scorer, pointerRadius float64) *Tracker {
	return &Tracker{
		space:  space,
		scorer: scorer,
		owners: make(map[*cp.Body]*strand.Strand),
		radius: pointerRadius,
	}
}

// Track registers every segment body of s
func (t *Tracker) Track(s *strand.Strand) {
	for _, seg := range s.Segments {
		t.owners[seg.Body] = s
	}
	t.strands = append(t.strands, s)
}

// Strands returns tracked strands in registration order
func (t *Tracker) Strands() []*strand.Strand {
	return t.strands
}

// OnCut registers a listener called after each effective cut
func (t *Tracker) OnCut(fn func(CutEvent)) {
	t.listeners = append(t.listeners, fn)
}

// Cut severs the segment owning body. Untracked bodies and segments with no
// remaining distal joints are a no-op: no score, no notification.
func (t *Tracker) Cut(body *cp.Body) (CutEvent, bool) {
	s, ok := t.owners[body]
	if !ok {
		return CutEvent{}, false
	}
	i, _ := s.IndexOf(body)

	removed := s.Sever(t.space, i)
	if removed == 0 {
		return CutEvent{}, false
	}

	ev := CutEvent{Strand: s, Segment: i, Removed: removed}
	if t.scorer != nil {
		ev.Score = t.scorer.RecordCut()
	}
	for _, fn := range t.listeners {
		fn(ev)
	}
	return ev, true
}

// Slash cuts every hair body crossed by the pointer path from-to and returns
// the number of effective cuts
func (t *Tracker) Slash(q Querier, from, to cp.Vector) int {
	if from == to {
		if t.Poke(q, to) {
			return 1
		}
		return 0
	}

	n := 0
	for _, body := range q.BodiesAlong(from, to, t.radius) {
		if _, ok := t.Cut(body); ok {
			n++
		}
	}
	return n
}

// Poke cuts the hair body under p, if any
func (t *Tracker) Poke(q Querier, p cp.Vector) bool {
	body := q.BodyAt(p, t.radius)
	if body == nil {
		return false
	}
	_, ok := t.Cut(body)
	return ok
}

// Prune removes detached segments whose bodies left bounds, along with every
// joint naming them, and returns the number of segments removed
func (t *Tracker) Prune(bounds Bounds) int {
	n := 0
	for _, s := range t.strands {
		for _, seg := range s.Segments {
			if !seg.Live() || bounds.Contains(seg.Body.Position()) || s.Anchored(seg.Index) {
				continue
			}
			s.Prune(t.space, seg.Index)
			delete(t.owners, seg.Body)
			n++
		}
	}
	return n
}

// Stats summarizes the tracked hair
type Stats struct {
	Strands  int
	Segments int
	Attached int // live segments still connected to the host
	Severed  int // strands with at least one cut
}

// Stats counts tracked strands and segments
func (t *Tracker) Stats() Stats {
	st := Stats{Strands: len(t.strands)}
	for _, s := range t.strands {
		if s.State() == strand.StatePartiallySevered {
			st.Severed++
		}
		for _, seg := range s.Segments {
			if !seg.Live() {
				continue
			}
			st.Segments++
			if s.Anchored(seg.Index) {
				st.Attached++
			}
		}
	}
	return st
}
