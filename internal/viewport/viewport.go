// Package viewport maps geographic coordinates in the (lon, -lat) convention
// to destination pixels, so that a raster scaled into a rectangle and vectors
// drawn through the same mapping land on identical pixels.
package viewport

import "math"

// Rect is a destination rectangle in pixels.
type Rect struct {
	X, Y float64
	W, H float64
}

// Corner returns the bottom-right corner.
func (r Rect) Corner() (x, y float64) { return r.X + r.W, r.Y + r.H }

// Transform is the affine map (x, y) -> (SX*x + TX, SY*y + TY).
type Transform struct {
	SX, SY float64
	TX, TY float64
}

// Derive builds the geo-to-pixel transform for a gridW x gridH raster drawn
// scaled into dest. Grid cells are centred on their coordinates, so the
// active span shrinks by one cell and starts half a cell in: (lonMin, yMin)
// lands on the centre of the top-left cell and (lonMax, yMax) on the centre
// of the bottom-right one. A zero span collapses that axis (scale 0).
func Derive(lonMin, lonMax, yMin, yMax float64, gridW, gridH int, dest Rect) Transform {
	px, py := PixelSize(dest, gridW, gridH)
	var t Transform
	if span := lonMax - lonMin; span != 0 {
		t.SX = (dest.W - px) / span
	}
	if span := yMax - yMin; span != 0 {
		t.SY = (dest.H - py) / span
	}
	t.TX = dest.X + px/2 - lonMin*t.SX
	t.TY = dest.Y + py/2 - yMin*t.SY
	return t
}

// PixelSize is the on-screen size of one grid cell.
func PixelSize(dest Rect, gridW, gridH int) (px, py float64) {
	return dest.W / float64(max(gridW, 1)), dest.H / float64(max(gridH, 1))
}

// Apply maps a geographic point to pixels.
func (t Transform) Apply(x, y float64) (px, py float64) {
	return t.SX*x + t.TX, t.SY*y + t.TY
}

// Invert maps a pixel back to geographic coordinates. ok is false when an
// axis has collapsed.
func (t Transform) Invert(px, py float64) (x, y float64, ok bool) {
	if t.SX == 0 || t.SY == 0 {
		return 0, 0, false
	}
	return (px - t.TX) / t.SX, (py - t.TY) / t.SY, true
}

// MaxScaling is the largest absolute axis scale.
func (t Transform) MaxScaling() float64 {
	return math.Max(math.Abs(t.SX), math.Abs(t.SY))
}

// Fit scales a gridW x gridH image uniformly to fit inside view, multiplies
// by zoom, centres it and shifts it by (panX, panY) pixels.
func Fit(gridW, gridH int, view Rect, zoom, panX, panY float64) Rect {
	if gridW <= 0 || gridH <= 0 {
		return Rect{X: view.X + view.W/2 + panX, Y: view.Y + view.H/2 + panY}
	}
	scale := math.Min(view.W/float64(gridW), view.H/float64(gridH)) * zoom
	w, h := float64(gridW)*scale, float64(gridH)*scale
	return Rect{
		X: view.X + (view.W-w)/2 + panX,
		Y: view.Y + (view.H-h)/2 + panY,
		W: w,
		H: h,
	}
}

// CellAt returns the grid cell under pixel (px, py) of a raster drawn into
// dest.
func CellAt(dest Rect, gridW, gridH int, px, py float64) (col, row int, ok bool) {
	if dest.W <= 0 || dest.H <= 0 || gridW <= 0 || gridH <= 0 {
		return 0, 0, false
	}
	if px < dest.X || py < dest.Y {
		return 0, 0, false
	}
	cw, ch := PixelSize(dest, gridW, gridH)
	col = int((px - dest.X) / cw)
	row = int((py - dest.Y) / ch)
	if col >= gridW || row >= gridH {
		return 0, 0, false
	}
	return col, row, true
}
