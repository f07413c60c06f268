// Copyright (c) 2025 Sudo-Ivan
// Licensed under the MIT License

package assemble

import (
	"github.com/Sudo-Ivan/interlis-utils/pkg/curve"
	"github.com/Sudo-Ivan/interlis-utils/pkg/diag"
	"github.com/Sudo-Ivan/interlis-utils/pkg/engine"
	"github.com/Sudo-Ivan/interlis-utils/pkg/itf"
)

// Polygonize extracts candidate polygons from an area-boundary line batch.
// An empty batch returns immediately without touching the engine. With
// repairCrossings set, the batch is first unioned with one of its own
// members, which forces the engine to node self-crossing lines; if the union
// collapses to something other than a line collection the raw batch is used
// unchanged.
func Polygonize(eng engine.Engine, lines []*curve.Line, repairCrossings bool, log diag.Logger) []*curve.Polygon {
	if len(lines) == 0 {
		return nil
	}
	if log == nil {
		log = diag.Discard{}
	}

	batch := lines
	if repairCrossings {
		log.Debugf("fixing crossing lines")
		if noded, ok := eng.UnionLines(lines, lines[0]); ok {
			log.Debugf("fixed lines: %d", len(noded)-len(lines))
			batch = noded
		}
	}
	return eng.Polygonize(batch)
}

// Associate polygonizes an area-boundary batch and assigns each candidate
// polygon to the target feature whose companion point it contains. When the
// first pass yields a polygon count different from expected, one retry with
// crossing repair is attempted; the retry result is used regardless.
//
// Features without a companion point in pointField are skipped. A feature
// whose point lies in no valid candidate receives an empty polygon and a
// warning. When no engine is available the association loop is skipped and
// area features stay geometry-less.
func Associate(target *itf.Layer, boundaries []*curve.Line, expected int, pointField, areaField int, eng engine.Engine, log diag.Logger) {
	if log == nil {
		log = diag.Discard{}
	}

	polys := Polygonize(eng, boundaries, false, log)
	log.Debugf("resulting polygons: %d", len(polys))
	if len(polys) != expected {
		log.Debugf("feature count of layer %s: %d", target.Defn().Name, expected)
		log.Debugf("polygonizing again with crossing line fix")
		polys = Polygonize(eng, boundaries, true, log)
		log.Debugf("resulting polygons: %d", len(polys))
	}

	if !eng.Available() {
		return
	}

	log.Debugf("associating layer %s with area polygons", target.Defn().Name)

	// Invalid candidates stay in the counted set but are excluded from
	// containment testing.
	valid := make([]bool, len(polys))
	for i, p := range polys {
		valid[i] = eng.IsValid(p)
	}

	for i := 0; ; i++ {
		feature := target.Feature(i)
		if feature == nil {
			break
		}
		point, ok := feature.GeomField(pointField).(curve.Point)
		if !ok {
			continue
		}

		matched := false
		for k, p := range polys {
			if valid[k] && eng.Contains(p, point) {
				feature.SetGeomField(areaField, p)
				matched = true
				break
			}
		}
		if !matched {
			log.Warnf("association between area and point failed for feature %d in layer %s",
				feature.FID(), target.Defn().Name)
			feature.SetGeomField(areaField, &curve.Polygon{})
		}
	}
}
