package ecs

import (
	"math"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/shmup/ecs/component"
)

// Overlaps runs the broad-phase box check and then the exact test for the
// pair's shapes.
func Overlaps(a, b Collider) bool {
	if a == nil || b == nil {
		return false
	}
	ab, bb := a.AsBody(), b.AsBody()
	if ab == nil || bb == nil || !ab.Active || !bb.Active {
		return false
	}
	if !ab.AABB().Intersects(bb.AABB()) {
		return false
	}
	switch {
	case ab.Shape.Kind == component.ShapeCircle && bb.Shape.Kind == component.ShapeCircle:
		return circleCircle(ab, bb)
	case ab.Shape.Kind == component.ShapeCircle:
		return circleRect(ab, bb)
	case bb.Shape.Kind == component.ShapeCircle:
		return circleRect(bb, ab)
	}
	// Two boxes that passed the broad phase overlap.
	return true
}

func circleCircle(a, b *component.Body) bool {
	r := a.Shape.Radius + b.Shape.Radius
	return a.Pos.DistanceSq(b.Pos) <= r*r
}

func circleRect(c, r *component.Body) bool {
	closest := r.AABB().ClampVect(&c.Pos)
	return c.Pos.DistanceSq(closest) <= c.Shape.Radius*c.Shape.Radius
}

// PointInside reports whether (x, y) lies within the collider's shape.
func PointInside(c Collider, x, y float64) bool {
	if c == nil {
		return false
	}
	b := c.AsBody()
	p := cp.Vector{X: x, Y: y}
	if b.Shape.Kind == component.ShapeCircle {
		return b.Pos.DistanceSq(p) <= b.Shape.Radius*b.Shape.Radius
	}
	return b.AABB().ContainsVect(p)
}

// RayHit is one collider struck by a ray.
type RayHit struct {
	Collider Collider
	Distance float64
	Point    cp.Vector
}

// Raycast walks the ray in half-cell steps, tests every bucketed collider in
// mask exactly, and returns each struck collider once, nearest first. A zero
// mask tests every layer.
func (g *SpatialGrid) Raycast(origin, dir cp.Vector, maxDistance float64, mask component.Layer) []RayHit {
	if g == nil || maxDistance <= 0 {
		return nil
	}
	l := dir.Length()
	if l == 0 {
		return nil
	}
	dir = dir.Mult(1 / l)
	end := origin.Add(dir.Mult(maxDistance))

	tested := make(map[Entity]struct{})
	var hits []RayHit
	step := g.size / 2
	for d := 0.0; ; d += step {
		if d > maxDistance {
			d = maxDistance
		}
		p := origin.Add(dir.Mult(d))
		for _, c := range g.QueryPoint(p.X, p.Y) {
			b := c.AsBody()
			if !b.Active || !b.Layer.Matches(mask) {
				continue
			}
			if _, ok := tested[b.ID]; ok {
				continue
			}
			tested[b.ID] = struct{}{}
			var (
				t  float64
				ok bool
			)
			if b.Shape.Kind == component.ShapeCircle {
				t, ok = segmentCircle(origin, end, b.Pos, b.Shape.Radius)
			} else {
				t, ok = segmentRect(origin, end, b.AABB())
			}
			if ok {
				hits = append(hits, RayHit{Collider: c, Distance: t * maxDistance, Point: origin.Lerp(end, t)})
			}
		}
		if d >= maxDistance {
			break
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Distance == hits[j].Distance {
			return hits[i].Collider.AsBody().ID < hits[j].Collider.AsBody().ID
		}
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}

// segmentCircle projects the center onto the segment and returns the entry
// parameter in [0, 1].
func segmentCircle(a, b, center cp.Vector, r float64) (float64, bool) {
	ab := b.Sub(a)
	lenSq := ab.LengthSq()
	if lenSq == 0 {
		return 0, a.DistanceSq(center) <= r*r
	}
	t := center.Sub(a).Dot(ab) / lenSq
	t = math.Max(0, math.Min(1, t))
	closest := a.Add(ab.Mult(t))
	distSq := closest.DistanceSq(center)
	if distSq > r*r {
		return 0, false
	}
	back := math.Sqrt(r*r-distSq) / math.Sqrt(lenSq)
	entry := t - back
	if entry < 0 {
		entry = 0
	}
	return entry, true
}

// segmentRect returns the first parameter where the segment meets the box:
// zero when it starts inside, otherwise the nearest edge crossing.
func segmentRect(a, b cp.Vector, bb cp.BB) (float64, bool) {
	if bb.ContainsVect(a) {
		return 0, true
	}
	corners := [4]cp.Vector{
		{X: bb.L, Y: bb.B},
		{X: bb.R, Y: bb.B},
		{X: bb.R, Y: bb.T},
		{X: bb.L, Y: bb.T},
	}
	best := math.Inf(1)
	for i := range corners {
		if t, ok := segmentSegment(a, b, corners[i], corners[(i+1)%4]); ok && t < best {
			best = t
		}
	}
	if math.IsInf(best, 1) {
		return 0, false
	}
	return best, true
}

// segmentSegment intersects p→p2 with q→q2 and returns the parameter on p.
func segmentSegment(p, p2, q, q2 cp.Vector) (float64, bool) {
	r := p2.Sub(p)
	s := q2.Sub(q)
	denom := r.Cross(s)
	if denom == 0 {
		return 0, false
	}
	qp := q.Sub(p)
	t := qp.Cross(s) / denom
	u := qp.Cross(r) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return 0, false
	}
	return t, true
}
