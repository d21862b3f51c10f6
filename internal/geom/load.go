package geom

import (
	"fmt"
	"path/filepath"
	"strings"
)

// LoadFile loads polygon features, choosing the reader by file extension.
func LoadFile(path string) ([]Feature, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".geojson", ".json":
		return LoadGeoJSON(path)
	case ".wkt":
		return LoadWKT(path)
	default:
		return nil, fmt.Errorf("unsupported vector file: %q", ext)
	}
}
