package field

import (
	"fmt"
	"math"

	"pmslmap/internal/geom"
)

// Extent is the geographic bounding box of the coordinate axes.
type Extent struct {
	LonMin, LonMax float64
	LatMin, LatMax float64
}

// ComputeExtent scans both axes for their minimum and maximum.
func ComputeExtent(lats, lons []float64) (Extent, error) {
	if len(lats) == 0 {
		return Extent{}, fmt.Errorf("%w: latitude", ErrEmptyAxis)
	}
	if len(lons) == 0 {
		return Extent{}, fmt.Errorf("%w: longitude", ErrEmptyAxis)
	}
	e := Extent{
		LonMin: math.Inf(1), LonMax: math.Inf(-1),
		LatMin: math.Inf(1), LatMax: math.Inf(-1),
	}
	for _, lon := range lons {
		e.LonMin = math.Min(e.LonMin, lon)
		e.LonMax = math.Max(e.LonMax, lon)
	}
	for _, lat := range lats {
		e.LatMin = math.Min(e.LatMin, lat)
		e.LatMax = math.Max(e.LatMax, lat)
	}
	return e, nil
}

// YBounds returns the latitude span in the y = -latitude convention.
func (e Extent) YBounds() (yMin, yMax float64) {
	return -e.LatMax, -e.LatMin
}

// ViewBox is the extent as a box in (lon, -lat) space.
func (e Extent) ViewBox() geom.BBox {
	yMin, yMax := e.YBounds()
	return geom.BBox{MinX: e.LonMin, MinY: yMin, MaxX: e.LonMax, MaxY: yMax}
}
