// Copyright (c) 2025 Sudo-Ivan
// Licensed under the MIT License

// Package convert translates between feature layers and GeoJSON. It is the
// input and output surface of the assembly pipeline: target and reference
// layers are built from GeoJSON feature collections, and assembled layers
// are rendered back to GeoJSON.
package convert

import (
	"fmt"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/Sudo-Ivan/interlis-utils/pkg/curve"
	"github.com/Sudo-Ivan/interlis-utils/pkg/itf"
)

// TIDField is the name of the identifier field placed at index 0 of every
// layer built from GeoJSON. String lookups during joining compare against
// this field.
const TIDField = "TID"

// RefField is the name of the reference-id field at index 1 of reference
// line layers. It carries the TID of the target feature a fragment belongs
// to.
const RefField = "REF"

// GeometryField is the geometry field name used for target layers built from
// GeoJSON.
const GeometryField = "Geometry"

// TargetLayerFromGeoJSON builds a target layer from a feature collection of
// attribute-bearing features. Properties become string fields, sorted by
// name, with the TID field first (taken from the TID property, the GeoJSON
// feature id, or the 1-based feature index). With areaMode set the layer
// gets a companion point field filled from each feature's point geometry.
func TargetLayerFromGeoJSON(name string, data []byte, areaMode bool) (*itf.Layer, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse GeoJSON for layer %s: %v", name, err)
	}

	defn := &itf.FeatureDefn{
		Name:       name,
		Fields:     []itf.FieldDefn{{Name: TIDField, Type: itf.FieldString}},
		GeomFields: []itf.GeomFieldDefn{{Name: GeometryField, Type: itf.GeomPolygon}},
	}
	if areaMode {
		defn.GeomFields = append(defn.GeomFields,
			itf.GeomFieldDefn{Name: GeometryField + "__Point", Type: itf.GeomPoint})
	}
	for _, key := range propertyKeys(fc) {
		if key != TIDField {
			defn.Fields = append(defn.Fields, itf.FieldDefn{Name: key, Type: itf.FieldString})
		}
	}

	layer := itf.NewLayer(defn)
	for i, gf := range fc.Features {
		f := itf.NewFeature(defn)
		f.SetFID(int64(i + 1))
		f.SetField(0, featureTID(gf, i))
		for k, fd := range defn.Fields {
			if k == 0 {
				continue
			}
			if v, ok := gf.Properties[fd.Name]; ok {
				f.SetField(k, fmt.Sprintf("%v", v))
			}
		}
		if areaMode {
			if pt, ok := gf.Geometry.(orb.Point); ok {
				f.SetGeomField(1, curve.Point{X: pt[0], Y: pt[1]})
			}
		}
		layer.AddFeature(f)
	}
	return layer, nil
}

// LineLayerFromGeoJSON builds a reference line layer from a feature
// collection of LineString or MultiLineString features. Each feature's REF
// property carries the TID of the target feature its fragments belong to;
// features with other geometry types are skipped.
func LineLayerFromGeoJSON(name string, data []byte) (*itf.Layer, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse GeoJSON for layer %s: %v", name, err)
	}

	defn := &itf.FeatureDefn{
		Name: name,
		Fields: []itf.FieldDefn{
			{Name: TIDField, Type: itf.FieldString},
			{Name: RefField, Type: itf.FieldString},
		},
		GeomFields: []itf.GeomFieldDefn{{Name: GeometryField, Type: itf.GeomMultiCurve}},
	}

	layer := itf.NewLayer(defn)
	for i, gf := range fc.Features {
		mc := &curve.MultiCurve{}
		switch g := gf.Geometry.(type) {
		case orb.LineString:
			mc.Curves = append(mc.Curves, lineFromOrb(g))
		case orb.MultiLineString:
			for _, ls := range g {
				mc.Curves = append(mc.Curves, lineFromOrb(ls))
			}
		default:
			continue
		}

		f := itf.NewFeature(defn)
		f.SetFID(int64(i + 1))
		f.SetField(0, featureTID(gf, i))
		if ref, ok := gf.Properties[RefField]; ok {
			f.SetField(1, fmt.Sprintf("%v", ref))
		}
		f.SetGeomField(0, mc)
		layer.AddFeature(f)
	}
	return layer, nil
}

// LayerToGeoJSON renders a layer as a GeoJSON feature collection. Each
// feature contributes its first set geometry field; attribute fields become
// properties. Features without an id receive one from a counter owned by
// this call.
func LayerToGeoJSON(layer *itf.Layer) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	nextID := int64(1)

	layer.ResetReading()
	for f := layer.NextFeature(); f != nil; f = layer.NextFeature() {
		geom := firstGeometry(f)
		if geom == nil {
			continue
		}
		gf := geojson.NewFeature(geom)
		if f.FID() != itf.NullFID {
			gf.ID = f.FID()
		} else {
			gf.ID = nextID
			nextID++
		}
		for i, fd := range f.Defn().Fields {
			if v := f.Field(i); v != nil {
				gf.Properties[fd.Name] = v
			}
		}
		fc.Append(gf)
	}
	return fc
}

func lineFromOrb(ls orb.LineString) *curve.Line {
	l := &curve.Line{Points: make([]curve.Point, len(ls))}
	for i, p := range ls {
		l.Points[i] = curve.Point{X: p[0], Y: p[1]}
	}
	return l
}

func lineToOrb(l *curve.Line) orb.LineString {
	ls := make(orb.LineString, len(l.Points))
	for i, p := range l.Points {
		ls[i] = orb.Point{p.X, p.Y}
	}
	return ls
}

// firstGeometry returns the first set geometry field converted to an orb
// geometry, or nil when the feature carries no geometry.
func firstGeometry(f *itf.Feature) orb.Geometry {
	for i := range f.Defn().GeomFields {
		switch g := f.GeomField(i).(type) {
		case curve.Point:
			return orb.Point{g.X, g.Y}
		case *curve.Line:
			return lineToOrb(g)
		case *curve.Compound:
			return lineToOrb(&curve.Line{Points: g.Vertices()})
		case *curve.MultiCurve:
			mls := make(orb.MultiLineString, 0, len(g.Curves))
			for _, c := range g.Curves {
				mls = append(mls, lineToOrb(&curve.Line{Points: c.Vertices()}))
			}
			return mls
		case *curve.Polygon:
			return g.Orb()
		}
	}
	return nil
}

// propertyKeys collects the union of property names across the collection,
// sorted for a stable field order.
func propertyKeys(fc *geojson.FeatureCollection) []string {
	seen := make(map[string]bool)
	for _, f := range fc.Features {
		for k := range f.Properties {
			seen[k] = true
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func featureTID(f *geojson.Feature, index int) string {
	if v, ok := f.Properties[TIDField]; ok {
		return fmt.Sprintf("%v", v)
	}
	if f.ID != nil {
		return fmt.Sprintf("%v", f.ID)
	}
	return fmt.Sprintf("%d", index+1)
}
