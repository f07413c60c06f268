package itf

import (
	"github.com/paulmach/orb"

	"github.com/Sudo-Ivan/interlis-utils/pkg/curve"
)

// Layer is an ordered, in-memory feature collection with a single sequential
// read cursor. Spatial and attribute filters are applied transparently while
// reading; lookups are linear scans, no index is assumed.
type Layer struct {
	defn     *FeatureDefn
	features []*Feature
	idx      int

	preRead       func()
	spatialFilter *orb.Bound
	attrFilter    func(*Feature) bool
}

// NewLayer creates an empty layer for the given schema.
func NewLayer(defn *FeatureDefn) *Layer {
	return &Layer{defn: defn}
}

// Defn returns the layer's schema.
func (l *Layer) Defn() *FeatureDefn {
	return l.defn
}

// AddFeature appends a feature to the layer.
func (l *Layer) AddFeature(f *Feature) {
	l.features = append(l.features, f)
}

// FeatureCount returns the number of features matching the current filters.
// Without filters this is the stored feature count.
func (l *Layer) FeatureCount() int {
	if l.spatialFilter == nil && l.attrFilter == nil {
		return len(l.features)
	}
	n := 0
	for _, f := range l.features {
		if l.matches(f) {
			n++
		}
	}
	return n
}

// Feature returns the feature at index i, or nil. Filters are not applied.
func (l *Layer) Feature(i int) *Feature {
	if i < 0 || i >= len(l.features) {
		return nil
	}
	return l.features[i]
}

// ResetReading rewinds the sequential cursor.
func (l *Layer) ResetReading() {
	l.idx = 0
}

// NextFeatureRef returns the next feature matching the current filters
// without copying, or nil at the end of the layer.
func (l *Layer) NextFeatureRef() *Feature {
	for l.idx < len(l.features) {
		f := l.features[l.idx]
		l.idx++
		if l.matches(f) {
			return f
		}
	}
	return nil
}

// NextFeature returns a copy of the next matching feature, or nil at the end
// of the layer. The pre-read hook, if any, fires once before the first
// feature is yielded.
func (l *Layer) NextFeature() *Feature {
	if l.preRead != nil {
		hook := l.preRead
		l.preRead = nil
		hook()
	}
	f := l.NextFeatureRef()
	if f == nil {
		return nil
	}
	return f.Clone()
}

// SetPreReadHook registers a function invoked once before the first feature
// is yielded by NextFeature. Geometry joining registers itself here.
func (l *Layer) SetPreReadHook(hook func()) {
	l.preRead = hook
}

// SetAttributeFilter installs a predicate applied to every feature read.
// Pass nil to clear.
func (l *Layer) SetAttributeFilter(filter func(*Feature) bool) {
	l.attrFilter = filter
}

// SetSpatialFilter restricts reading to features whose first geometry field
// intersects the bound. Pass nil to clear.
func (l *Layer) SetSpatialFilter(b *orb.Bound) {
	l.spatialFilter = b
}

// FeatureRefByFID returns the first feature with the given id, or nil.
// Linear scan from the start of the layer; the cursor is reset.
func (l *Layer) FeatureRefByFID(fid int64) *Feature {
	l.ResetReading()
	for f := l.NextFeatureRef(); f != nil; f = l.NextFeatureRef() {
		if f.FID() == fid {
			return f
		}
	}
	return nil
}

// FeatureRefByTID returns the first feature whose first attribute field
// equals tid, or nil. Linear scan; the cursor is reset.
func (l *Layer) FeatureRefByTID(tid string) *Feature {
	l.ResetReading()
	for f := l.NextFeatureRef(); f != nil; f = l.NextFeatureRef() {
		if f.FieldAsString(0) == tid {
			return f
		}
	}
	return nil
}

// FeatureIndexByFID returns the storage index of the first feature with the
// given id, or -1. Linear scan; filters apply.
func (l *Layer) FeatureIndexByFID(fid int64) int {
	for i, f := range l.features {
		if l.matches(f) && f.FID() == fid {
			return i
		}
	}
	return -1
}

// FeatureIndexByTID returns the storage index of the first feature whose
// first attribute field equals tid, or -1. Linear scan; filters apply.
func (l *Layer) FeatureIndexByTID(tid string) int {
	for i, f := range l.features {
		if l.matches(f) && f.FieldAsString(0) == tid {
			return i
		}
	}
	return -1
}

func (l *Layer) matches(f *Feature) bool {
	if l.spatialFilter != nil {
		b, ok := curve.Bound(f.GeomField(0))
		if !ok || !l.spatialFilter.Intersects(b) {
			return false
		}
	}
	if l.attrFilter != nil && !l.attrFilter(f) {
		return false
	}
	return true
}
