// Copyright (c) 2025 Sudo-Ivan
// Licensed under the MIT License

// Package export renders assembled feature layers to export formats.
package export

import (
	"fmt"
	"strings"

	"github.com/Sudo-Ivan/interlis-utils/pkg/curve"
	"github.com/Sudo-Ivan/interlis-utils/pkg/itf"
)

const kmlCoordFormat = "%.10f,%.10f,0"

// LayerToKML converts an assembled layer to a KML string. Point fields
// become Point placemark geometries; polygon fields become Polygon
// geometries with outer and inner boundaries. Features without geometry are
// skipped.
func LayerToKML(layer *itf.Layer, layerName string) (string, error) {
	var placemarks strings.Builder

	layer.ResetReading()
	for f := layer.NextFeature(); f != nil; f = layer.NextFeature() {
		geometryString := kmlGeometry(f)
		if geometryString == "" {
			continue
		}

		placemarks.WriteString(fmt.Sprintf(`
        <Placemark>
            <name>%s</name>
            <description><![CDATA[%s]]></description>
            %s
        </Placemark>`, escapeXML(featureName(f)), formatFields(f), geometryString))
	}

	kml := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
    <Document>
        <name>%s</name>%s
    </Document>
</kml>`, escapeXML(layerName), placemarks.String())

	return kml, nil
}

// kmlGeometry renders the feature's first set geometry field, preferring
// polygons over companion points.
func kmlGeometry(f *itf.Feature) string {
	for i := range f.Defn().GeomFields {
		switch g := f.GeomField(i).(type) {
		case *curve.Polygon:
			if !g.IsEmpty() {
				return polygonKML(g)
			}
		case curve.Point:
			return fmt.Sprintf("<Point><coordinates>"+kmlCoordFormat+"</coordinates></Point>", g.X, g.Y)
		}
	}
	return ""
}

func polygonKML(p *curve.Polygon) string {
	var outerBoundary, innerBoundaries strings.Builder
	for i, ring := range p.Rings {
		if i == 0 {
			outerBoundary.WriteString(fmt.Sprintf(
				"<outerBoundaryIs><LinearRing><coordinates>%s</coordinates></LinearRing></outerBoundaryIs>",
				ringCoords(ring)))
			continue
		}
		innerBoundaries.WriteString(fmt.Sprintf(
			"<innerBoundaryIs><LinearRing><coordinates>%s</coordinates></LinearRing></innerBoundaryIs>",
			ringCoords(ring)))
	}
	return fmt.Sprintf("<Polygon>%s%s</Polygon>", outerBoundary.String(), innerBoundaries.String())
}

func ringCoords(ring *curve.Compound) string {
	pts := ring.Ring()
	coordStr := make([]string, len(pts))
	for i, c := range pts {
		coordStr[i] = fmt.Sprintf(kmlCoordFormat, c[0], c[1])
	}
	return strings.Join(coordStr, " ")
}

// featureName extracts a suitable placemark name from a feature's fields.
func featureName(f *itf.Feature) string {
	defn := f.Defn()
	for _, key := range []string{"name", "Name", "NAME", "title", "Title", "TID"} {
		if i := defn.FieldIndex(key); i >= 0 {
			if v := f.FieldAsString(i); v != "" {
				return v
			}
		}
	}
	if f.FID() != itf.NullFID {
		return fmt.Sprintf("Feature %d", f.FID())
	}
	return "Feature"
}

// formatFields formats a feature's attribute fields into a description
// string.
func formatFields(f *itf.Feature) string {
	var parts []string
	for i, fd := range f.Defn().Fields {
		if v := f.FieldAsString(i); v != "" {
			parts = append(parts, fmt.Sprintf("<strong>%s</strong>: %s", escapeXML(fd.Name), escapeXML(v)))
		}
	}
	return strings.Join(parts, "<br>")
}

// escapeXML escapes XML special characters in a string.
func escapeXML(s string) string {
	return strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"\"", "&quot;",
		"'", "&apos;",
		"/", "&#x2F;",
	).Replace(s)
}
