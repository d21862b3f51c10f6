package geom

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	spatial "github.com/go-spatial/geom"
)

// ErrNoPolygons is returned when a source holds no polygon geometry.
var ErrNoPolygons = errors.New("no polygons found")

// nameKeys are the feature properties tried, in order, for a display name.
var nameKeys = []string{"name", "NAME", "ADMIN", "admin", "name_en", "NAME_EN"}

// LoadGeoJSON reads a GeoJSON file and returns its polygon features.
func LoadGeoJSON(path string) ([]Feature, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeGeoJSON(f)
}

// DecodeGeoJSON decodes a FeatureCollection, a Feature or a bare geometry.
// Polygon and MultiPolygon geometries are kept, GeometryCollections are
// walked, everything else is skipped. Features without polygons are dropped.
func DecodeGeoJSON(r io.Reader) ([]Feature, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("geojson: %w", err)
	}

	parsePoint := func(v any) (pt [2]float64, ok bool) {
		if a, ok := v.([]any); ok && len(a) >= 2 {
			lon, lok := a[0].(float64)
			lat, aok := a[1].(float64)
			if lok && aok {
				return [2]float64{lon, lat}, true
			}
		}
		return [2]float64{}, false
	}
	parseRing := func(v any) (ring [][2]float64, ok bool) {
		arr, ok := v.([]any)
		if !ok {
			return nil, false
		}
		for _, el := range arr {
			if pt, ok := parsePoint(el); ok {
				ring = append(ring, pt)
			}
		}
		return ring, len(ring) > 0
	}
	parsePolygon := func(v any) (poly [][][2]float64, ok bool) {
		arr, ok := v.([]any)
		if !ok {
			return nil, false
		}
		for _, el := range arr {
			if ring, ok := parseRing(el); ok {
				poly = append(poly, ring)
			}
		}
		return poly, len(poly) > 0
	}
	parseMultiPolygon := func(v any) (mp spatial.MultiPolygon, ok bool) {
		arr, ok := v.([]any)
		if !ok {
			return nil, false
		}
		for _, el := range arr {
			if poly, ok := parsePolygon(el); ok {
				mp = append(mp, poly)
			}
		}
		return mp, len(mp) > 0
	}
	var walkGeom func(g map[string]any, into *Feature)
	walkGeom = func(g map[string]any, into *Feature) {
		gt, _ := g["type"].(string)
		switch gt {
		case "Polygon":
			if poly, ok := parsePolygon(g["coordinates"]); ok {
				into.Polygons = append(into.Polygons, poly)
			}
		case "MultiPolygon":
			if mp, ok := parseMultiPolygon(g["coordinates"]); ok {
				into.Polygons = append(into.Polygons, mp...)
			}
		case "GeometryCollection":
			if gs, ok := g["geometries"].([]any); ok {
				for _, sub := range gs {
					if sm, ok := sub.(map[string]any); ok {
						walkGeom(sm, into)
					}
				}
			}
		}
	}
	walkFeature := func(fm map[string]any) (Feature, bool) {
		var feat Feature
		if props, ok := fm["properties"].(map[string]any); ok {
			feat.Properties = props
			for _, k := range nameKeys {
				if s, ok := props[k].(string); ok && s != "" {
					feat.Name = s
					break
				}
			}
		}
		if g, ok := fm["geometry"].(map[string]any); ok {
			walkGeom(g, &feat)
		}
		return feat, len(feat.Polygons) > 0
	}

	var features []Feature
	t, _ := raw["type"].(string)
	switch t {
	case "Feature":
		if feat, ok := walkFeature(raw); ok {
			features = append(features, feat)
		}
	case "FeatureCollection":
		if fs, ok := raw["features"].([]any); ok {
			for _, f := range fs {
				if fm, ok := f.(map[string]any); ok {
					if feat, ok := walkFeature(fm); ok {
						features = append(features, feat)
					}
				}
			}
		}
	case "":
		return nil, errors.New("invalid geojson: missing type")
	default:
		var feat Feature
		walkGeom(raw, &feat)
		if len(feat.Polygons) > 0 {
			features = append(features, feat)
		}
	}
	if len(features) == 0 {
		return nil, ErrNoPolygons
	}
	return features, nil
}
