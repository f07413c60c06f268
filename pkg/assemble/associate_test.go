package assemble

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/Sudo-Ivan/interlis-utils/pkg/curve"
	"github.com/Sudo-Ivan/interlis-utils/pkg/engine"
	"github.com/Sudo-Ivan/interlis-utils/pkg/itf"
)

// fakeEngine scripts polygonize results and answers containment with plain
// planar tests, so association logic is exercised without a real engine.
type fakeEngine struct {
	polygonizeResults [][]*curve.Polygon
	polygonizeCalls   int
	unionCalls        int
	invalid           map[*curve.Polygon]bool
}

func (f *fakeEngine) Available() bool { return true }

func (f *fakeEngine) UnionLines(lines []*curve.Line, with *curve.Line) ([]*curve.Line, bool) {
	f.unionCalls++
	return lines, true
}

func (f *fakeEngine) Polygonize(lines []*curve.Line) []*curve.Polygon {
	i := f.polygonizeCalls
	f.polygonizeCalls++
	if i < len(f.polygonizeResults) {
		return f.polygonizeResults[i]
	}
	return nil
}

func (f *fakeEngine) IsValid(p *curve.Polygon) bool {
	return !f.invalid[p]
}

func (f *fakeEngine) Contains(p *curve.Polygon, pt curve.Point) bool {
	return planar.PolygonContains(p.Orb(), orb.Point{pt.X, pt.Y})
}

func squarePolygon(x, y, size float64) *curve.Polygon {
	return &curve.Polygon{Rings: []*curve.Compound{squareRing(x, y, size)}}
}

func areaDefn() *itf.FeatureDefn {
	return &itf.FeatureDefn{
		Name:   "Zones",
		Fields: []itf.FieldDefn{{Name: "TID", Type: itf.FieldString}},
		GeomFields: []itf.GeomFieldDefn{
			{Name: "Area", Type: itf.GeomPolygon},
			{Name: "Area__Point", Type: itf.GeomPoint},
		},
	}
}

func areaLayer(points ...interface{}) *itf.Layer {
	defn := areaDefn()
	l := itf.NewLayer(defn)
	for i, pt := range points {
		f := itf.NewFeature(defn)
		f.SetFID(int64(i + 1))
		if pt != nil {
			f.SetGeomField(1, pt)
		}
		l.AddFeature(f)
	}
	return l
}

func TestAssociateEmptyBatchNoEngineCalls(t *testing.T) {
	eng := &fakeEngine{}
	target := areaLayer(nil, nil)

	Associate(target, nil, 2, 1, 0, eng, nil)

	if eng.polygonizeCalls != 0 || eng.unionCalls != 0 {
		t.Errorf("expected zero engine calls, got polygonize=%d union=%d",
			eng.polygonizeCalls, eng.unionCalls)
	}
}

func TestAssociateRetryExactlyOnce(t *testing.T) {
	boundary := []*curve.Line{line([2]float64{0, 0}, [2]float64{1, 0})}

	tests := []struct {
		name       string
		results    [][]*curve.Polygon
		expected   int
		wantCalls  int
		wantUnions int
	}{
		{
			"First Pass Matches",
			[][]*curve.Polygon{{squarePolygon(0, 0, 1)}},
			1, 1, 0,
		},
		{
			"Mismatch Triggers Single Retry",
			[][]*curve.Polygon{
				{squarePolygon(0, 0, 1), squarePolygon(2, 0, 1), squarePolygon(4, 0, 1)},
				{squarePolygon(0, 0, 1), squarePolygon(2, 0, 1), squarePolygon(4, 0, 1), squarePolygon(6, 0, 1)},
			},
			4, 2, 1,
		},
		{
			"Still Mismatched After Retry",
			[][]*curve.Polygon{nil, nil},
			4, 2, 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := &fakeEngine{polygonizeResults: tt.results}
			target := areaLayer()

			Associate(target, boundary, tt.expected, 1, 0, eng, nil)

			if eng.polygonizeCalls != tt.wantCalls {
				t.Errorf("expected %d polygonize calls, got %d", tt.wantCalls, eng.polygonizeCalls)
			}
			if eng.unionCalls != tt.wantUnions {
				t.Errorf("expected %d union calls, got %d", tt.wantUnions, eng.unionCalls)
			}
		})
	}
}

func TestAssociateByContainment(t *testing.T) {
	left := squarePolygon(0, 0, 10)
	right := squarePolygon(20, 0, 10)

	target := areaLayer(
		curve.Point{X: 5, Y: 5},     // inside left
		curve.Point{X: 25, Y: 5},    // inside right
		curve.Point{X: 100, Y: 100}, // outside both
		nil,                         // no companion point
	)
	eng := &fakeEngine{polygonizeResults: [][]*curve.Polygon{{left, right}}}
	log := &captureLog{}

	Associate(target, []*curve.Line{line([2]float64{0, 0}, [2]float64{1, 0})}, 4, 1, 0, eng, log)

	if got := target.Feature(0).GeomField(0); got != left {
		t.Errorf("feature 1: expected left polygon, got %v", got)
	}
	if got := target.Feature(1).GeomField(0); got != right {
		t.Errorf("feature 2: expected right polygon, got %v", got)
	}
	poly, ok := target.Feature(2).GeomField(0).(*curve.Polygon)
	if !ok || !poly.IsEmpty() {
		t.Errorf("feature 3: expected empty polygon, got %v", target.Feature(2).GeomField(0))
	}
	if got := target.Feature(3).GeomField(0); got != nil {
		t.Errorf("feature 4: expected no geometry for pointless feature, got %v", got)
	}
	if len(log.warnings) != 1 {
		t.Errorf("expected exactly 1 unresolved-association warning, got %d: %v",
			len(log.warnings), log.warnings)
	}
}

func TestAssociateInvalidCandidateExcluded(t *testing.T) {
	poly := squarePolygon(0, 0, 10)
	target := areaLayer(curve.Point{X: 5, Y: 5})
	eng := &fakeEngine{
		polygonizeResults: [][]*curve.Polygon{{poly}},
		invalid:           map[*curve.Polygon]bool{poly: true},
	}
	log := &captureLog{}

	Associate(target, []*curve.Line{line([2]float64{0, 0}, [2]float64{1, 0})}, 1, 1, 0, eng, log)

	got, ok := target.Feature(0).GeomField(0).(*curve.Polygon)
	if !ok || !got.IsEmpty() {
		t.Errorf("expected empty polygon when only candidate is invalid, got %v", got)
	}
	if len(log.warnings) != 1 {
		t.Errorf("expected 1 warning, got %d", len(log.warnings))
	}
}

func TestAssociateWithoutEngineLeavesGeometryUnset(t *testing.T) {
	target := areaLayer(curve.Point{X: 5, Y: 5})
	log := &captureLog{}

	Associate(target, []*curve.Line{line([2]float64{0, 0}, [2]float64{1, 0})}, 1, 1, 0, engine.Null{}, log)

	if got := target.Feature(0).GeomField(0); got != nil {
		t.Errorf("expected geometry-less feature without engine, got %v", got)
	}
	if len(log.warnings) != 0 {
		t.Errorf("expected no warnings without engine, got %v", log.warnings)
	}
}
