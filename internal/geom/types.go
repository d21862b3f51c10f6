package geom

import (
	spatial "github.com/go-spatial/geom"
)

// BBox is an axis-aligned rectangle.
type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Intersects reports whether b and o overlap. Touching edges count.
func (b BBox) Intersects(o BBox) bool {
	return b.MinX <= o.MaxX && o.MinX <= b.MaxX &&
		b.MinY <= o.MaxY && o.MinY <= b.MaxY
}

// Extent converts b to a go-spatial extent.
func (b BBox) Extent() spatial.Extent {
	return spatial.Extent{b.MinX, b.MinY, b.MaxX, b.MaxY}
}

// Feature is one vector feature: a name and the polygons it owns
// (first ring outer, following rings holes).
type Feature struct {
	Name       string
	Properties map[string]any
	Polygons   spatial.MultiPolygon
}

// BBox returns the bounding box of every vertex in f. ok is false when f
// has no vertices.
func (f Feature) BBox() (bb BBox, ok bool) {
	for _, poly := range f.Polygons {
		for _, ring := range poly {
			for _, p := range ring {
				if !ok {
					bb = BBox{MinX: p[0], MinY: p[1], MaxX: p[0], MaxY: p[1]}
					ok = true
					continue
				}
				if p[0] < bb.MinX {
					bb.MinX = p[0]
				}
				if p[1] < bb.MinY {
					bb.MinY = p[1]
				}
				if p[0] > bb.MaxX {
					bb.MaxX = p[0]
				}
				if p[1] > bb.MaxY {
					bb.MaxY = p[1]
				}
			}
		}
	}
	return bb, ok
}

// FlipY returns a copy of f with every vertex (x, y) replaced by (x, -y).
func (f Feature) FlipY() Feature {
	out := Feature{Name: f.Name, Properties: f.Properties}
	out.Polygons = make(spatial.MultiPolygon, len(f.Polygons))
	for i, poly := range f.Polygons {
		rings := make([][][2]float64, len(poly))
		for j, ring := range poly {
			pts := make([][2]float64, len(ring))
			for k, p := range ring {
				pts[k] = [2]float64{p[0], -p[1]}
			}
			rings[j] = pts
		}
		out.Polygons[i] = rings
	}
	return out
}
