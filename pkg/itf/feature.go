package itf

import (
	"fmt"
	"strconv"
)

// NullFID marks a feature without an assigned id.
const NullFID int64 = -1

// Feature is one record of a layer: an id, attribute values parallel to the
// layer's field definitions and one geometry value per geometry field.
type Feature struct {
	defn   *FeatureDefn
	fid    int64
	fields []interface{}
	geoms  []interface{}
}

// NewFeature creates an empty feature for the given schema.
func NewFeature(defn *FeatureDefn) *Feature {
	return &Feature{
		defn:   defn,
		fid:    NullFID,
		fields: make([]interface{}, len(defn.Fields)),
		geoms:  make([]interface{}, len(defn.GeomFields)),
	}
}

// Defn returns the feature's schema.
func (f *Feature) Defn() *FeatureDefn {
	return f.defn
}

// FID returns the feature id, or NullFID.
func (f *Feature) FID() int64 {
	return f.fid
}

// SetFID assigns the feature id.
func (f *Feature) SetFID(fid int64) {
	f.fid = fid
}

// SetField assigns an attribute value by index. Out-of-range indexes are
// ignored.
func (f *Feature) SetField(i int, v interface{}) {
	if i >= 0 && i < len(f.fields) {
		f.fields[i] = v
	}
}

// Field returns the raw attribute value at index i, or nil.
func (f *Feature) Field(i int) interface{} {
	if i < 0 || i >= len(f.fields) {
		return nil
	}
	return f.fields[i]
}

// FieldAsString returns the attribute at index i rendered as a string.
// Unset fields render as the empty string.
func (f *Feature) FieldAsString(i int) string {
	switch v := f.Field(i).(type) {
	case nil:
		return ""
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// FieldAsInt64 returns the attribute at index i as an integer. Strings are
// parsed; unparseable or unset values yield 0.
func (f *Feature) FieldAsInt64(i int) int64 {
	switch v := f.Field(i).(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// GeomField returns the geometry value at index i, or nil.
func (f *Feature) GeomField(i int) interface{} {
	if i < 0 || i >= len(f.geoms) {
		return nil
	}
	return f.geoms[i]
}

// SetGeomField assigns the geometry value at index i. Out-of-range indexes
// are ignored.
func (f *Feature) SetGeomField(i int, g interface{}) {
	if i >= 0 && i < len(f.geoms) {
		f.geoms[i] = g
	}
}

// Clone returns a copy of the feature with its own value slices. Geometry
// values are shared.
func (f *Feature) Clone() *Feature {
	c := &Feature{
		defn:   f.defn,
		fid:    f.fid,
		fields: make([]interface{}, len(f.fields)),
		geoms:  make([]interface{}, len(f.geoms)),
	}
	copy(c.fields, f.fields)
	copy(c.geoms, f.geoms)
	return c
}
