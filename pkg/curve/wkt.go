package curve

import (
	"fmt"
	"strings"
)

// WKT renders a curve as a WKT string for diagnostics. Compound chains are
// linearized; an empty curve renders as an empty LINESTRING.
func WKT(c Curve) string {
	if c == nil || c.IsEmpty() {
		return "LINESTRING EMPTY"
	}
	return fmt.Sprintf("LINESTRING (%s)", coordList(c.Vertices()))
}

// PolygonWKT renders a polygon as a WKT string for diagnostics.
func PolygonWKT(p *Polygon) string {
	if p == nil || p.IsEmpty() {
		return "POLYGON EMPTY"
	}
	var rings []string
	for _, r := range p.Rings {
		var points []string
		for _, pt := range r.Ring() {
			points = append(points, fmt.Sprintf("%.10f %.10f", pt[0], pt[1]))
		}
		rings = append(rings, fmt.Sprintf("(%s)", strings.Join(points, ", ")))
	}
	return fmt.Sprintf("POLYGON (%s)", strings.Join(rings, ", "))
}

func coordList(pts []Point) string {
	var points []string
	for _, p := range pts {
		points = append(points, fmt.Sprintf("%.10f %.10f", p.X, p.Y))
	}
	return strings.Join(points, ", ")
}
