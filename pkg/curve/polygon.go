package curve

import (
	"fmt"

	"github.com/paulmach/orb"
)

// Polygon is an exterior ring plus zero or more interior rings (holes).
// Rings[0] is the exterior; holes follow in discovery order.
type Polygon struct {
	Rings []*Compound
}

// IsEmpty reports whether the polygon has no rings.
func (p *Polygon) IsEmpty() bool {
	return len(p.Rings) == 0
}

// AddRing validates and appends a ring. The first ring added becomes the
// exterior. A ring is rejected when it is empty, not closed within
// tolerance, or has fewer than four vertices once closed.
func (p *Polygon) AddRing(r *Compound) error {
	if r == nil || r.IsEmpty() {
		return fmt.Errorf("ring is empty")
	}
	if !r.IsClosed() {
		return fmt.Errorf("ring is not closed")
	}
	if len(r.Ring()) < 4 {
		return fmt.Errorf("ring has fewer than four vertices")
	}
	p.Rings = append(p.Rings, r)
	return nil
}

// Orb returns the polygon linearized as an orb polygon.
func (p *Polygon) Orb() orb.Polygon {
	poly := make(orb.Polygon, 0, len(p.Rings))
	for _, r := range p.Rings {
		poly = append(poly, r.Ring())
	}
	return poly
}

// FromOrb builds a polygon from a linear orb polygon. Each ring becomes a
// single-member compound.
func FromOrb(poly orb.Polygon) *Polygon {
	p := &Polygon{}
	for _, ring := range poly {
		line := &Line{Points: make([]Point, len(ring))}
		for i, pt := range ring {
			line.Points[i] = Point{X: pt[0], Y: pt[1]}
		}
		p.Rings = append(p.Rings, &Compound{Members: []*Line{line}})
	}
	return p
}
