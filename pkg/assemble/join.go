// Copyright (c) 2025 Sudo-Ivan
// Licensed under the MIT License

package assemble

import (
	"github.com/Sudo-Ivan/interlis-utils/pkg/curve"
	"github.com/Sudo-Ivan/interlis-utils/pkg/diag"
	"github.com/Sudo-Ivan/interlis-utils/pkg/engine"
	"github.com/Sudo-Ivan/interlis-utils/pkg/itf"
)

// GeomTableKind distinguishes how a reference geometry table joins its
// target field.
type GeomTableKind int

// Geometry table kinds. Surface tables carry pre-grouped boundary fragments
// keyed by a reference id; area tables carry an ungrouped boundary soup that
// is polygonized and associated by point containment.
const (
	SurfaceTable GeomTableKind = iota
	AreaTable
)

// GeomTable binds one reference line layer to a geometry field of the target
// layer.
type GeomTable struct {
	// FieldName is the target geometry field receiving the assembled
	// polygons. Area tables additionally read the companion point from the
	// field named FieldName + "__Point".
	FieldName string
	Kind      GeomTableKind
	Lines     *itf.Layer
}

// Joiner reconstructs the polygon geometry fields of a target layer from its
// reference line layers. Joining runs at most once, triggered either
// explicitly through Join or by the target layer's first read.
type Joiner struct {
	target *itf.Layer
	tables []GeomTable
	engine engine.Engine
	log    diag.Logger
	joined bool
}

// NewJoiner creates a joiner for the target layer and registers it as the
// layer's pre-read hook, so the join runs before the first feature is
// yielded. A nil engine degrades to the Null engine; a nil logger discards
// diagnostics.
func NewJoiner(target *itf.Layer, tables []GeomTable, eng engine.Engine, log diag.Logger) *Joiner {
	if eng == nil {
		eng = engine.Null{}
	}
	if log == nil {
		log = diag.Discard{}
	}
	j := &Joiner{target: target, tables: tables, engine: eng, log: log}
	target.SetPreReadHook(j.Join)
	return j
}

// Join assembles every configured geometry table into the target layer.
// Calling Join again is a no-op.
func (j *Joiner) Join() {
	if j.joined {
		return
	}
	j.joined = true

	for _, t := range j.tables {
		if t.Lines == nil {
			continue
		}
		j.log.Debugf("join geometry table %s of field '%s'", t.Lines.Defn().Name, t.FieldName)
		switch t.Kind {
		case SurfaceTable:
			j.joinSurfaceTable(t)
		case AreaTable:
			j.polygonizeAreaTable(t)
		}
	}
}

// joinSurfaceTable groups the reference layer's fragments by target feature,
// stitches each group into closed rings and writes the classified polygon
// into the target geometry field.
func (j *Joiner) joinSurfaceTable(t GeomTable) {
	defn := j.target.Defn()
	layerName := defn.Name
	j.log.Debugf("joining surface layer %s with geometries", layerName)

	geomIdx := defn.GeomFieldIndex(t.FieldName)
	if geomIdx < 0 {
		j.log.Warnf("layer %s has no geometry field '%s'", layerName, t.FieldName)
		return
	}
	linear := defn.GeomFields[geomIdx].Type == itf.GeomPolygon

	// Group fragments by target feature. The map is keyed by the feature's
	// storage index; order records first discovery so assembly output is
	// deterministic.
	frags := make(map[int][]curve.Curve)
	var order []int

	keyIsString := len(defn.Fields) > 0 && defn.Fields[0].Type == itf.FieldString

	t.Lines.ResetReading()
	for lf := t.Lines.NextFeatureRef(); lf != nil; lf = t.Lines.NextFeatureRef() {
		// Reference layer records with the same reference id in field 1 are
		// boundary fragments of the same target feature.
		var idx int
		if keyIsString {
			idx = j.target.FeatureIndexByTID(lf.FieldAsString(1))
		} else {
			idx = j.target.FeatureIndexByFID(lf.FieldAsInt64(1))
		}
		if idx < 0 {
			j.log.Warnf("couldn't join feature FID %s", lf.FieldAsString(1))
			continue
		}

		mc, ok := lf.GeomField(0).(*curve.MultiCurve)
		if !ok {
			continue
		}
		if _, seen := frags[idx]; !seen {
			order = append(order, idx)
		}
		for _, c := range mc.Curves {
			if !c.IsEmpty() {
				frags[idx] = append(frags[idx], c)
			}
		}
	}

	for _, idx := range order {
		feature := j.target.Feature(idx)
		rings := StitchRings(frags[idx], feature.FID(), layerName, j.log)
		poly := BuildPolygon(rings, linear, feature.FID(), layerName, j.log)
		if !poly.IsEmpty() {
			feature.SetGeomField(geomIdx, poly)
		}
	}

	j.target.ResetReading()
}

// polygonizeAreaTable collects the reference layer's lines into one batch,
// polygonizes it and associates the resulting polygons with the target
// features by companion-point containment.
func (j *Joiner) polygonizeAreaTable(t GeomTable) {
	defn := j.target.Defn()
	areaIdx := defn.GeomFieldIndex(t.FieldName)
	pointIdx := defn.GeomFieldIndex(t.FieldName + "__Point")
	if areaIdx < 0 || pointIdx < 0 {
		j.log.Warnf("layer %s lacks area or point field for '%s'", defn.Name, t.FieldName)
		return
	}

	var boundaries []*curve.Line
	t.Lines.ResetReading()
	n := 0
	for lf := t.Lines.NextFeatureRef(); lf != nil; lf = t.Lines.NextFeatureRef() {
		boundaries = append(boundaries, flattenLines(lf.GeomField(0))...)
		n++
	}
	j.log.Debugf("polygonizing layer %s with %d multilines", t.Lines.Defn().Name, n)

	Associate(j.target, boundaries, j.target.FeatureCount(), pointIdx, areaIdx, j.engine, j.log)
	j.target.ResetReading()
}

// flattenLines extracts the simple lines of a geometry field value. Compound
// members are linearized.
func flattenLines(geom interface{}) []*curve.Line {
	var lines []*curve.Line
	add := func(c curve.Curve) {
		if c == nil || c.IsEmpty() {
			return
		}
		switch g := c.(type) {
		case *curve.Line:
			lines = append(lines, g)
		case *curve.Compound:
			lines = append(lines, g.Linearized().Members...)
		}
	}
	switch g := geom.(type) {
	case *curve.MultiCurve:
		for _, c := range g.Curves {
			add(c)
		}
	case curve.Curve:
		add(g)
	}
	return lines
}
