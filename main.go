package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Sudo-Ivan/interlis-utils/pkg/assemble"
	"github.com/Sudo-Ivan/interlis-utils/pkg/convert"
	"github.com/Sudo-Ivan/interlis-utils/pkg/diag"
	"github.com/Sudo-Ivan/interlis-utils/pkg/engine"
	"github.com/Sudo-Ivan/interlis-utils/pkg/export"
	"github.com/Sudo-Ivan/interlis-utils/pkg/itf"
)

// ANSI color codes for console output.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

const (
	dirPerm    = 0750
	filePerm   = 0600
	jsonIndent = "  "
)

// useColor controls whether colored output is enabled.
var useColor = true

func main() {
	targetPtr := flag.String("target", "", "GeoJSON file with the attribute-bearing target features")
	surfacePtr := flag.String("surface-lines", "", "GeoJSON file with surface boundary fragments (REF property links to target TID)")
	areaPtr := flag.String("area-lines", "", "GeoJSON file with area boundary lines (assigned by point containment)")
	namePtr := flag.String("name", "Features", "Layer name used in output")
	formatPtr := flag.String("format", "geojson", "Output format (geojson, kml)")
	outputPtr := flag.String("output", "", "Output file (default: derived from layer name)")
	overwritePtr := flag.Bool("overwrite", false, "Overwrite existing output file")
	noColorPtr := flag.Bool("no-color", false, "Disable colored output")
	noEnginePtr := flag.Bool("no-engine", false, "Disable the GEOS geometry engine (area joins degrade to empty results)")
	verbosePtr := flag.Bool("verbose", false, "Enable debug diagnostics")

	flag.Parse()

	useColor = !*noColorPtr

	if *targetPtr == "" {
		printError("-target is required")
		flag.Usage()
		os.Exit(1)
	}
	if *surfacePtr == "" && *areaPtr == "" {
		printError("at least one of -surface-lines or -area-lines is required")
		flag.Usage()
		os.Exit(1)
	}

	log := &diag.Std{Verbose: *verbosePtr}

	var eng engine.Engine = engine.NewGEOS(log)
	if *noEnginePtr {
		printWarning("Geometry engine disabled; area features will stay geometry-less.")
		eng = engine.Null{}
	}

	target, err := loadTarget(*targetPtr, *namePtr, *areaPtr != "")
	if err != nil {
		printError(fmt.Sprintf("Error loading target layer: %v", err))
		os.Exit(1)
	}
	printInfo(fmt.Sprintf("Loaded %d target feature(s) from %s", target.FeatureCount(), *targetPtr))

	var tables []assemble.GeomTable
	if *surfacePtr != "" {
		lines, err := loadLines(*surfacePtr, *namePtr+"_Geometry")
		if err != nil {
			printError(fmt.Sprintf("Error loading surface lines: %v", err))
			os.Exit(1)
		}
		printInfo(fmt.Sprintf("Loaded %d surface line feature(s) from %s", lines.FeatureCount(), *surfacePtr))
		tables = append(tables, assemble.GeomTable{
			FieldName: convert.GeometryField,
			Kind:      assemble.SurfaceTable,
			Lines:     lines,
		})
	}
	if *areaPtr != "" {
		lines, err := loadLines(*areaPtr, *namePtr+"_Area")
		if err != nil {
			printError(fmt.Sprintf("Error loading area lines: %v", err))
			os.Exit(1)
		}
		printInfo(fmt.Sprintf("Loaded %d area boundary feature(s) from %s", lines.FeatureCount(), *areaPtr))
		tables = append(tables, assemble.GeomTable{
			FieldName: convert.GeometryField,
			Kind:      assemble.AreaTable,
			Lines:     lines,
		})
	}

	// The joiner runs on the first read, so exporting below triggers the
	// assembly.
	assemble.NewJoiner(target, tables, eng, log)

	outputFile := outputPath(*outputPtr, *namePtr, *formatPtr)
	if !*overwritePtr {
		if _, err := os.Stat(outputFile); err == nil {
			printError(fmt.Sprintf("Output file %s exists (use -overwrite).", outputFile))
			os.Exit(1)
		}
	}

	data, err := renderLayer(target, *namePtr, *formatPtr)
	if err != nil {
		printError(fmt.Sprintf("Error rendering output: %v", err))
		os.Exit(1)
	}

	if dir := filepath.Dir(outputFile); dir != "." {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			printError(fmt.Sprintf("Error creating output directory: %v", err))
			os.Exit(1)
		}
	}
	if err := os.WriteFile(outputFile, data, filePerm); err != nil {
		printError(fmt.Sprintf("Error writing %s: %v", outputFile, err))
		os.Exit(1)
	}
	printSuccess(fmt.Sprintf("Wrote %s", outputFile))
}

// loadTarget reads the target feature layer from a GeoJSON file.
func loadTarget(path, name string, areaMode bool) (*itf.Layer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %v", path, err)
	}
	return convert.TargetLayerFromGeoJSON(name, data, areaMode)
}

// loadLines reads a reference line layer from a GeoJSON file.
func loadLines(path, name string) (*itf.Layer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %v", path, err)
	}
	return convert.LineLayerFromGeoJSON(name, data)
}

// renderLayer renders the assembled layer in the requested format.
func renderLayer(layer *itf.Layer, name, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "geojson":
		fc := convert.LayerToGeoJSON(layer)
		return json.MarshalIndent(fc, "", jsonIndent)
	case "kml":
		kml, err := export.LayerToKML(layer, name)
		if err != nil {
			return nil, err
		}
		return []byte(kml), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// outputPath derives the output file name from the layer name and format
// when no explicit output is given.
func outputPath(output, name, format string) string {
	if output != "" {
		return output
	}
	ext := strings.ToLower(format)
	if ext != "kml" {
		ext = "geojson"
	}
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	return fmt.Sprintf("%s.%s", safe, ext)
}

// printColor prints a message to the console with the specified color.
func printColor(colorCode string, message string) {
	if useColor {
		fmt.Printf("%s%s%s\n", colorCode, message, colorReset)
	} else {
		fmt.Println(message)
	}
}

// printInfo prints an informational message to the console.
func printInfo(message string) {
	printColor(colorCyan, message)
}

// printSuccess prints a success message to the console.
func printSuccess(message string) {
	printColor(colorGreen, message)
}

// printWarning prints a warning message to the console.
func printWarning(message string) {
	printColor(colorYellow, message)
}

// printError prints an error message to the console.
func printError(message string) {
	printColor(colorRed, message)
}
