// Copyright (c) 2025 Sudo-Ivan
// Licensed under the MIT License

package engine

import (
	"github.com/twpayne/go-geos"

	"github.com/Sudo-Ivan/interlis-utils/pkg/curve"
	"github.com/Sudo-Ivan/interlis-utils/pkg/diag"
)

// GEOS implements Engine on top of the GEOS library. A fresh GEOS context is
// acquired per operation batch and released with the batch, so no
// engine-native state outlives a call.
type GEOS struct {
	log diag.Logger
}

// NewGEOS creates a GEOS-backed engine reporting diagnostics to log.
func NewGEOS(log diag.Logger) *GEOS {
	if log == nil {
		log = diag.Discard{}
	}
	return &GEOS{log: log}
}

// Available reports the present capability.
func (*GEOS) Available() bool { return true }

// UnionLines computes the planar union of the line batch with one extra
// line. The union forces GEOS to node self-crossing lines, so the returned
// members form a clean arrangement.
func (e *GEOS) UnionLines(lines []*curve.Line, with *curve.Line) ([]*curve.Line, bool) {
	if len(lines) == 0 || with == nil {
		return nil, false
	}
	ctx := geos.NewContext()
	coll := ctx.NewCollection(geos.TypeIDGeometryCollection, exportLines(ctx, lines))
	if coll == nil {
		return nil, false
	}
	defer coll.Destroy()

	withGeom := exportLine(ctx, with)
	defer withGeom.Destroy()

	union := coll.Union(withGeom)
	if union == nil {
		return nil, false
	}
	defer union.Destroy()

	switch union.TypeID() {
	case geos.TypeIDGeometryCollection, geos.TypeIDMultiLineString:
	default:
		return nil, false
	}

	var noded []*curve.Line
	for i := 0; i < union.NumGeometries(); i++ {
		member := union.Geometry(i)
		if member.TypeID() != geos.TypeIDLineString || member.IsEmpty() {
			continue
		}
		noded = append(noded, importLine(member))
	}
	e.log.Debugf("union noded %d lines into %d", len(lines), len(noded))
	return noded, true
}

// Polygonize extracts polygons from the line arrangement.
func (e *GEOS) Polygonize(lines []*curve.Line) []*curve.Polygon {
	if len(lines) == 0 {
		return nil
	}
	ctx := geos.NewContext()
	in := exportLines(ctx, lines)
	defer destroyAll(in)

	result := ctx.Polygonize(in)
	if result == nil {
		return nil
	}
	defer result.Destroy()

	var polys []*curve.Polygon
	for i := 0; i < result.NumGeometries(); i++ {
		g := result.Geometry(i)
		if g.TypeID() != geos.TypeIDPolygon || g.IsEmpty() {
			continue
		}
		polys = append(polys, importPolygon(g))
	}
	return polys
}

// IsValid reports whether the polygon is topologically valid.
func (e *GEOS) IsValid(p *curve.Polygon) bool {
	if p == nil || p.IsEmpty() {
		return false
	}
	ctx := geos.NewContext()
	g := exportPolygon(ctx, p)
	if g == nil {
		return false
	}
	defer g.Destroy()
	return g.IsValid()
}

// Contains reports whether the point lies strictly inside the polygon.
func (e *GEOS) Contains(p *curve.Polygon, pt curve.Point) bool {
	if p == nil || p.IsEmpty() {
		return false
	}
	ctx := geos.NewContext()
	polyGeom := exportPolygon(ctx, p)
	if polyGeom == nil {
		return false
	}
	defer polyGeom.Destroy()

	ptGeom := ctx.NewPoint([]float64{pt.X, pt.Y})
	defer ptGeom.Destroy()

	return ptGeom.Within(polyGeom)
}

func exportLine(ctx *geos.Context, l *curve.Line) *geos.Geom {
	coords := make([][]float64, len(l.Points))
	for i, p := range l.Points {
		coords[i] = []float64{p.X, p.Y}
	}
	return ctx.NewLineString(coords)
}

func exportLines(ctx *geos.Context, lines []*curve.Line) []*geos.Geom {
	geoms := make([]*geos.Geom, len(lines))
	for i, l := range lines {
		geoms[i] = exportLine(ctx, l)
	}
	return geoms
}

func exportPolygon(ctx *geos.Context, p *curve.Polygon) *geos.Geom {
	coords := make([][][]float64, 0, len(p.Rings))
	for _, r := range p.Rings {
		ring := r.Ring()
		if len(ring) < 4 {
			return nil
		}
		rc := make([][]float64, len(ring))
		for i, pt := range ring {
			rc[i] = []float64{pt[0], pt[1]}
		}
		coords = append(coords, rc)
	}
	if len(coords) == 0 {
		return nil
	}
	return ctx.NewPolygon(coords)
}

func importLine(g *geos.Geom) *curve.Line {
	coords := g.CoordSeq().ToCoords()
	l := &curve.Line{Points: make([]curve.Point, len(coords))}
	for i, c := range coords {
		l.Points[i] = curve.Point{X: c[0], Y: c[1]}
	}
	return l
}

func importRing(g *geos.Geom) *curve.Compound {
	return &curve.Compound{Members: []*curve.Line{importLine(g)}}
}

func importPolygon(g *geos.Geom) *curve.Polygon {
	p := &curve.Polygon{Rings: []*curve.Compound{importRing(g.ExteriorRing())}}
	for i := 0; i < g.NumInteriorRings(); i++ {
		p.Rings = append(p.Rings, importRing(g.InteriorRing(i)))
	}
	return p
}

func destroyAll(geoms []*geos.Geom) {
	for _, g := range geoms {
		if g != nil {
			g.Destroy()
		}
	}
}
