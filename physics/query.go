package physics

import (
	"github.com/jakecoffman/cp"
)

// BodiesAlong returns hair bodies crossed by the swept segment from-to, each
// body once, in query order
func (w *World) BodiesAlong(from, to cp.Vector, radius float64) []*cp.Body {
	var hits []*cp.Body
	seen := make(map[*cp.Body]struct{})

	w.space.SegmentQuery(from, to, radius, hairQuery, func(shape *cp.Shape, point, normal cp.Vector, alpha float64, data interface{}) {
		body := shape.Body()
		if _, ok := seen[body]; ok {
			return
		}
		seen[body] = struct{}{}
		hits = append(hits, body)
	}, nil)

	return hits
}

// BodyAt returns the hair body nearest p within radius, nil if none
func (w *World) BodyAt(p cp.Vector, radius float64) *cp.Body {
	info := w.space.PointQueryNearest(p, radius, hairQuery)
	if info == nil || info.Shape == nil {
		return nil
	}
	return info.Shape.Body()
}
