// Package itf provides the feature-store abstraction consumed by the polygon
// assembly pipeline: field and geometry-field definitions, attribute-bearing
// features and ordered feature layers with sequential reading and linear
// lookup.
package itf

// FieldType identifies the value type of an attribute field.
type FieldType int

// Supported attribute field types.
const (
	FieldString FieldType = iota
	FieldInteger
	FieldReal
)

// GeomType identifies the geometry type of a geometry field.
type GeomType int

// Supported geometry field types.
const (
	GeomNone GeomType = iota
	GeomPoint
	GeomMultiCurve
	GeomPolygon
	GeomCurvePolygon
)

// FieldDefn describes one attribute field of a layer.
type FieldDefn struct {
	Name string
	Type FieldType
}

// GeomFieldDefn describes one geometry field of a layer.
type GeomFieldDefn struct {
	Name string
	Type GeomType
}

// FeatureDefn describes the schema of a layer: its name, attribute fields
// and geometry fields.
type FeatureDefn struct {
	Name       string
	Fields     []FieldDefn
	GeomFields []GeomFieldDefn
}

// FieldIndex returns the index of the named attribute field, or -1.
func (d *FeatureDefn) FieldIndex(name string) int {
	for i, f := range d.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// GeomFieldIndex returns the index of the named geometry field, or -1.
func (d *FeatureDefn) GeomFieldIndex(name string) int {
	for i, f := range d.GeomFields {
		if f.Name == name {
			return i
		}
	}
	return -1
}
