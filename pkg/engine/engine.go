// Copyright (c) 2025 Sudo-Ivan
// Licensed under the MIT License

// Package engine abstracts the external planar geometry engine used for
// polygonization and spatial association. The engine is an optional
// capability: callers receive either the GEOS-backed implementation or the
// Null implementation, selected at composition time.
package engine

import "github.com/Sudo-Ivan/interlis-utils/pkg/curve"

// Engine is the set of planar operations the assembly pipeline needs from an
// external geometry engine. Inputs and outputs use the curve package types;
// implementations export to and import from their native representation.
type Engine interface {
	// Available reports whether a real engine backs this instance. When
	// false, Polygonize returns no polygons and area features stay
	// geometry-less.
	Available() bool
	// UnionLines computes the planar union of a line batch with one extra
	// line. When the union is a line collection its noded members are
	// returned; ok is false when the result collapsed to something else.
	UnionLines(lines []*curve.Line, with *curve.Line) (noded []*curve.Line, ok bool)
	// Polygonize builds polygons from a line arrangement.
	Polygonize(lines []*curve.Line) []*curve.Polygon
	// IsValid reports whether the polygon is topologically valid.
	IsValid(p *curve.Polygon) bool
	// Contains reports whether the point lies strictly inside the polygon.
	Contains(p *curve.Polygon, pt curve.Point) bool
}

// Null is the engine used when no geometry engine is available. All
// operations degrade to empty results.
type Null struct{}

// Available reports the missing capability.
func (Null) Available() bool { return false }

// UnionLines always fails.
func (Null) UnionLines([]*curve.Line, *curve.Line) ([]*curve.Line, bool) {
	return nil, false
}

// Polygonize returns no polygons.
func (Null) Polygonize([]*curve.Line) []*curve.Polygon { return nil }

// IsValid reports false.
func (Null) IsValid(*curve.Polygon) bool { return false }

// Contains reports false.
func (Null) Contains(*curve.Polygon, curve.Point) bool { return false }
