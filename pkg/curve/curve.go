// Copyright (c) 2025 Sudo-Ivan
// Licensed under the MIT License

// Package curve provides the in-memory geometry model used by the polygon
// assembly pipeline: simple curves, compound curves and polygons built from
// closed rings.
package curve

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Eps is the absolute per-axis tolerance below which two coordinates are
// considered coincident when chaining curve endpoints.
const Eps = 1e-14

// Point is a 2D or 3D vertex. Z is meaningful only when the owning curve
// reports Is3D.
type Point struct {
	X, Y, Z float64
}

// CoincidesXY reports whether p and q are the same position within the
// endpoint tolerance. Z is ignored; elevations are carried along but never
// compared during stitching.
func (p Point) CoincidesXY(q Point) bool {
	return math.Abs(p.X-q.X) < Eps && math.Abs(p.Y-q.Y) < Eps
}

// Curve is an open or closed curve fragment awaiting assembly: either a
// simple *Line or a *Compound of simple curves.
type Curve interface {
	StartPoint() Point
	EndPoint() Point
	IsEmpty() bool
	// Reverse flips the curve's direction in place.
	Reverse()
	// Vertices returns the curve's points in traversal order.
	Vertices() []Point
}

// Line is a simple curve: an ordered run of vertices.
type Line struct {
	Points []Point
	Is3D   bool
}

// NewLine builds a simple 2D curve from coordinate pairs.
func NewLine(coords ...[2]float64) *Line {
	l := &Line{Points: make([]Point, len(coords))}
	for i, c := range coords {
		l.Points[i] = Point{X: c[0], Y: c[1]}
	}
	return l
}

// StartPoint returns the first vertex, or the zero point for an empty curve.
func (l *Line) StartPoint() Point {
	if len(l.Points) == 0 {
		return Point{}
	}
	return l.Points[0]
}

// EndPoint returns the last vertex, or the zero point for an empty curve.
func (l *Line) EndPoint() Point {
	if len(l.Points) == 0 {
		return Point{}
	}
	return l.Points[len(l.Points)-1]
}

// IsEmpty reports whether the curve has no vertices.
func (l *Line) IsEmpty() bool {
	return len(l.Points) == 0
}

// Reverse flips the vertex order in place.
func (l *Line) Reverse() {
	for i, j := 0, len(l.Points)-1; i < j; i, j = i+1, j-1 {
		l.Points[i], l.Points[j] = l.Points[j], l.Points[i]
	}
}

// Vertices returns the underlying vertex slice.
func (l *Line) Vertices() []Point {
	return l.Points
}

// Clone returns a deep copy of the curve.
func (l *Line) Clone() *Line {
	c := &Line{Points: make([]Point, len(l.Points)), Is3D: l.Is3D}
	copy(c.Points, l.Points)
	return c
}

// Compound is an ordered chain of simple curves. It doubles as a compound
// fragment read from a reference layer and as a ring under construction
// during stitching.
type Compound struct {
	Members []*Line
}

// Add appends a simple curve to the end of the chain.
func (c *Compound) Add(l *Line) {
	c.Members = append(c.Members, l)
}

// StartPoint returns the first vertex of the first member.
func (c *Compound) StartPoint() Point {
	for _, m := range c.Members {
		if !m.IsEmpty() {
			return m.StartPoint()
		}
	}
	return Point{}
}

// EndPoint returns the last vertex of the last member.
func (c *Compound) EndPoint() Point {
	for i := len(c.Members) - 1; i >= 0; i-- {
		if !c.Members[i].IsEmpty() {
			return c.Members[i].EndPoint()
		}
	}
	return Point{}
}

// IsEmpty reports whether the chain contains no vertices.
func (c *Compound) IsEmpty() bool {
	for _, m := range c.Members {
		if !m.IsEmpty() {
			return false
		}
	}
	return true
}

// Reverse flips the chain in place: the member order is reversed and so is
// each member's vertex order.
func (c *Compound) Reverse() {
	for i, j := 0, len(c.Members)-1; i < j; i, j = i+1, j-1 {
		c.Members[i], c.Members[j] = c.Members[j], c.Members[i]
	}
	for _, m := range c.Members {
		m.Reverse()
	}
}

// Vertices returns all member vertices in traversal order.
func (c *Compound) Vertices() []Point {
	var pts []Point
	for _, m := range c.Members {
		pts = append(pts, m.Points...)
	}
	return pts
}

// IsClosed reports whether the chain's start and end vertices coincide
// within the endpoint tolerance. An empty chain is not closed.
func (c *Compound) IsClosed() bool {
	if c.IsEmpty() {
		return false
	}
	return c.StartPoint().CoincidesXY(c.EndPoint())
}

// Ring returns the chain linearized as an orb ring. The ring is closed
// explicitly so that area computation is well defined even when the start
// and end vertices differ by less than the tolerance.
func (c *Compound) Ring() orb.Ring {
	pts := c.Vertices()
	ring := make(orb.Ring, 0, len(pts)+1)
	for _, p := range pts {
		ring = append(ring, orb.Point{p.X, p.Y})
	}
	if len(ring) > 0 && ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	return ring
}

// Area returns the absolute planar area enclosed by the chain.
func (c *Compound) Area() float64 {
	return math.Abs(planar.Area(c.Ring()))
}

// Linearized returns a compound with a single simple member holding all
// vertices in traversal order. Used when the destination geometry type
// demands strictly linear rings.
func (c *Compound) Linearized() *Compound {
	line := &Line{Points: c.Vertices()}
	for _, m := range c.Members {
		if m.Is3D {
			line.Is3D = true
			break
		}
	}
	return &Compound{Members: []*Line{line}}
}
