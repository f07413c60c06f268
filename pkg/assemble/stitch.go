// Copyright (c) 2025 Sudo-Ivan
// Licensed under the MIT License

// Package assemble reconstructs polygon geometries from independently
// digitized curve fragments: it stitches fragments into closed rings,
// classifies rings into exterior and interior boundaries, and associates
// polygonized area boundaries with their attribute-bearing point features.
package assemble

import (
	"github.com/Sudo-Ivan/interlis-utils/pkg/curve"
	"github.com/Sudo-Ivan/interlis-utils/pkg/diag"
)

// StitchRings chains the fragments of one target feature into closed rings.
// Fragments are absorbed forward when their start point continues the ring's
// trailing endpoint within tolerance, or reversed when their end point does.
// A ring that cannot be closed is dropped with a warning naming the owning
// feature; stitching then continues with the remaining fragments. Each
// fragment is consumed at most once.
func StitchRings(frags []curve.Curve, fid int64, layerName string, log diag.Logger) []*curve.Compound {
	if log == nil {
		log = diag.Discard{}
	}

	remaining := make([]curve.Curve, 0, len(frags))
	for _, f := range frags {
		if f != nil && !f.IsEmpty() {
			remaining = append(remaining, f)
		}
	}

	var rings []*curve.Compound
	for len(remaining) > 0 {
		ring := &curve.Compound{}
		var trailing curve.Point
		first := true

		for {
			absorbed := false
			for i, frag := range remaining {
				if first || frag.StartPoint().CoincidesXY(trailing) {
					// Forward absorption. The very first fragment of a ring
					// matches unconditionally.
					first = false
					trailing = frag.EndPoint()
					absorb(ring, frag)
					remaining = append(remaining[:i], remaining[i+1:]...)
					absorbed = true
					break
				}
				if frag.EndPoint().CoincidesXY(trailing) {
					// Reverse absorption: flip the fragment so its former
					// start point becomes the new trailing endpoint.
					frag.Reverse()
					trailing = frag.EndPoint()
					absorb(ring, frag)
					remaining = append(remaining[:i], remaining[i+1:]...)
					absorbed = true
					break
				}
			}
			if !absorbed || len(remaining) == 0 || ring.IsClosed() {
				break
			}
		}

		if !ring.IsClosed() {
			log.Warnf("ring %s for feature %d in layer %s was not closed, dropping it",
				curve.WKT(ring), fid, layerName)
			continue
		}
		rings = append(rings, ring)
	}
	return rings
}

// absorb transfers a fragment into the ring being built. Compound fragments
// are flattened: their members join the ring in order.
func absorb(ring *curve.Compound, frag curve.Curve) {
	switch f := frag.(type) {
	case *curve.Compound:
		ring.Members = append(ring.Members, f.Members...)
	case *curve.Line:
		ring.Add(f)
	}
}
