// Copyright (c) 2025 Sudo-Ivan
// Licensed under the MIT License

package assemble

import (
	"github.com/Sudo-Ivan/interlis-utils/pkg/curve"
	"github.com/Sudo-Ivan/interlis-utils/pkg/diag"
)

// BuildPolygon classifies a feature's closed rings into a polygon. The ring
// with the largest area becomes the exterior (the earliest maximum wins on
// ties); every other ring is inserted as a hole in discovery order. Whether a
// hole actually lies inside the exterior is not verified; the largest-area
// rule is a deliberate simplification for survey data where one outer
// boundary per feature is the norm.
//
// With linear set, rings are linearized before insertion so the result
// carries strictly straight segments. A ring rejected by insertion is
// skipped with a warning; rings already inserted are kept.
func BuildPolygon(rings []*curve.Compound, linear bool, fid int64, layerName string, log diag.Logger) *curve.Polygon {
	if log == nil {
		log = diag.Discard{}
	}

	poly := &curve.Polygon{}
	if len(rings) == 0 {
		return poly
	}

	exterior := 0
	largest := -1.0
	for i, r := range rings {
		if a := r.Area(); a > largest {
			largest = a
			exterior = i
		}
	}

	insert := func(r *curve.Compound) {
		if linear {
			r = r.Linearized()
		}
		if err := poly.AddRing(r); err != nil {
			log.Warnf("cannot add ring %s to feature %d in layer %s: %v",
				curve.WKT(r), fid, layerName, err)
		}
	}

	insert(rings[exterior])
	for i, r := range rings {
		if i == exterior {
			continue
		}
		insert(r)
	}
	return poly
}
