// Package overlay holds the coastline layer: polygon features culled once to
// the visible extent and stroked through the shared geo-to-pixel transform.
package overlay

import (
	"image/color"
	"slices"

	"github.com/dhconnelly/rtreego"
	"go.uber.org/zap"

	"pmslmap/internal/geom"
	"pmslmap/internal/log"
	"pmslmap/internal/viewport"
)

// DefaultColor is a translucent near-black outline.
var DefaultColor = color.NRGBA{R: 26, G: 26, B: 26, A: 217}

// Stroker is the drawing surface the overlay needs.
type Stroker interface {
	// StrokeRing outlines a closed ring given in geographic coordinates.
	// width is in geographic units; the surface maps it through t.
	StrokeRing(ring [][2]float64, t viewport.Transform, c color.NRGBA, width float64)
	// Scaling is the display magnification applied on top of t.
	Scaling() float64
}

// Overlay is a set of features in the (lon, -lat) convention and the indices
// of those visible in the extent it was built for.
type Overlay struct {
	Color       color.NRGBA
	StrokeWidth float64 // on-screen pixels

	features []geom.Feature
	visible  []int
	gridW    int
	gridH    int

	// candidates is the number of index hits tested exactly.
	candidates int
}

// New flips every feature to (lon, -lat) and keeps the ones whose bounding
// box intersects view, which must already be in that convention. Touching
// boxes count as intersecting.
func New(features []geom.Feature, view geom.BBox) *Overlay {
	o := &Overlay{
		Color:       DefaultColor,
		StrokeWidth: 1,
		features:    make([]geom.Feature, len(features)),
		gridW:       1,
		gridH:       1,
	}
	tree := rtreego.NewTree(2, 25, 50)
	for i, f := range features {
		o.features[i] = f.FlipY()
		if bb, ok := o.features[i].BBox(); ok {
			tree.Insert(&indexedFeature{idx: i, bb: bb})
		}
	}

	// The padded query may over-select; the inclusive test decides.
	hits := tree.SearchIntersect(rect(pad(view)))
	o.candidates = len(hits)
	for _, s := range hits {
		hit := s.(*indexedFeature)
		if view.Intersects(hit.bb) {
			o.visible = append(o.visible, hit.idx)
		}
	}
	slices.Sort(o.visible)
	log.Info("coastline overlay culled",
		zap.Int("features", len(features)),
		zap.Int("candidates", o.candidates),
		zap.Int("visible", len(o.visible)),
		zap.Float64s("view", []float64{view.MinX, view.MinY, view.MaxX, view.MaxY}))
	return o
}

// SetGridSize records the raster dimensions the overlay aligns to.
func (o *Overlay) SetGridSize(w, h int) {
	o.gridW, o.gridH = w, h
}

// Len is the number of loaded features.
func (o *Overlay) Len() int { return len(o.features) }

// Visible returns the indices of the visible features in load order.
func (o *Overlay) Visible() []int { return append([]int(nil), o.visible...) }

// Feature returns feature i in the (lon, -lat) convention.
func (o *Overlay) Feature(i int) geom.Feature { return o.features[i] }

// Names returns the names of the visible features.
func (o *Overlay) Names() []string {
	out := make([]string, len(o.visible))
	for k, i := range o.visible {
		out[k] = o.features[i].Name
	}
	return out
}

// Draw strokes every visible ring into s, using the transform that aligns
// with a gridW x gridH raster drawn into dest.
func (o *Overlay) Draw(s Stroker, dest viewport.Rect, lonMin, lonMax, yMin, yMax float64) {
	t := viewport.Derive(lonMin, lonMax, yMin, yMax, o.gridW, o.gridH, dest)
	width := o.LineWidth(t, s.Scaling())
	for _, i := range o.visible {
		for _, poly := range o.features[i].Polygons {
			for _, ring := range poly {
				s.StrokeRing(ring, t, o.Color, width)
			}
		}
	}
}

// LineWidth is the stroke width in geographic units that comes out as
// StrokeWidth pixels after t and the display magnification.
func (o *Overlay) LineWidth(t viewport.Transform, magnification float64) float64 {
	scale := t.MaxScaling() * magnification
	if scale == 0 {
		return o.StrokeWidth
	}
	return o.StrokeWidth / scale
}
