package export

import (
	"strings"
	"testing"

	"github.com/Sudo-Ivan/interlis-utils/pkg/curve"
	"github.com/Sudo-Ivan/interlis-utils/pkg/itf"
)

func TestEscapeXML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"No Escaping Needed", "Hello World", "Hello World"},
		{"Ampersand", "Me & You", "Me &amp; You"},
		{"Less Than", "1 < 2", "1 &lt; 2"},
		{"Greater Than", "2 > 1", "2 &gt; 1"},
		{"Double Quote", `He said "Hi"`, `He said &quot;Hi&quot;`},
		{"Single Quote", "It's mine", "It&apos;s mine"},
		{"Forward Slash", "path/to/file", "path&#x2F;to&#x2F;file"},
		{"Empty String", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := escapeXML(tt.input); got != tt.want {
				t.Errorf("escapeXML(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func demoLayer() *itf.Layer {
	defn := &itf.FeatureDefn{
		Name: "Parcels",
		Fields: []itf.FieldDefn{
			{Name: "TID", Type: itf.FieldString},
			{Name: "Name", Type: itf.FieldString},
		},
		GeomFields: []itf.GeomFieldDefn{{Name: "Geometry", Type: itf.GeomPolygon}},
	}
	layer := itf.NewLayer(defn)

	f := itf.NewFeature(defn)
	f.SetFID(1)
	f.SetField(0, "100")
	f.SetField(1, "Parcel A")
	f.SetGeomField(0, &curve.Polygon{Rings: []*curve.Compound{
		{Members: []*curve.Line{curve.NewLine(
			[2]float64{0, 0}, [2]float64{10, 0}, [2]float64{10, 10}, [2]float64{0, 10}, [2]float64{0, 0},
		)}},
		{Members: []*curve.Line{curve.NewLine(
			[2]float64{1, 1}, [2]float64{2, 1}, [2]float64{2, 2}, [2]float64{1, 1},
		)}},
	}})
	layer.AddFeature(f)

	empty := itf.NewFeature(defn)
	empty.SetField(0, "200")
	layer.AddFeature(empty)

	return layer
}

func TestLayerToKML(t *testing.T) {
	kml, err := LayerToKML(demoLayer(), "Parcels")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(kml, "<name>Parcels</name>") {
		t.Error("expected document name")
	}
	if !strings.Contains(kml, "<name>Parcel A</name>") {
		t.Error("expected placemark named from the Name field")
	}
	if !strings.Contains(kml, "<outerBoundaryIs>") {
		t.Error("expected polygon outer boundary")
	}
	if !strings.Contains(kml, "<innerBoundaryIs>") {
		t.Error("expected polygon inner boundary for the hole")
	}
	// The geometry-less feature must not produce a placemark.
	if got := strings.Count(kml, "<Placemark>"); got != 1 {
		t.Errorf("expected 1 placemark, got %d", got)
	}
}

func TestFeatureName(t *testing.T) {
	defn := &itf.FeatureDefn{
		Name:   "Parcels",
		Fields: []itf.FieldDefn{{Name: "TID", Type: itf.FieldString}},
	}
	f := itf.NewFeature(defn)
	if got := featureName(f); got != "Feature" {
		t.Errorf("expected fallback name, got %q", got)
	}
	f.SetFID(9)
	if got := featureName(f); got != "Feature 9" {
		t.Errorf("expected FID-based name, got %q", got)
	}
	f.SetField(0, "100")
	if got := featureName(f); got != "100" {
		t.Errorf("expected TID name, got %q", got)
	}
}
