package curve

import "github.com/paulmach/orb"

// MultiCurve is a collection of independent curve fragments, as read from a
// reference line layer. Members may be simple or compound.
type MultiCurve struct {
	Curves []Curve
}

// IsEmpty reports whether the collection has no non-empty members.
func (mc *MultiCurve) IsEmpty() bool {
	for _, c := range mc.Curves {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}

// Bound returns the bounding box of a geometry field value, which may be a
// Point, a Curve, a *MultiCurve or a *Polygon. The second return is false
// when the value carries no extent.
func Bound(geom interface{}) (orb.Bound, bool) {
	var pts []Point
	switch g := geom.(type) {
	case Point:
		pts = []Point{g}
	case Curve:
		pts = g.Vertices()
	case *MultiCurve:
		for _, c := range g.Curves {
			pts = append(pts, c.Vertices()...)
		}
	case *Polygon:
		for _, r := range g.Rings {
			pts = append(pts, r.Vertices()...)
		}
	}
	if len(pts) == 0 {
		return orb.Bound{}, false
	}
	b := orb.Bound{Min: orb.Point{pts[0].X, pts[0].Y}, Max: orb.Point{pts[0].X, pts[0].Y}}
	for _, p := range pts[1:] {
		b = b.Extend(orb.Point{p.X, p.Y})
	}
	return b, true
}
