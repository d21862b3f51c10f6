// Package field holds a gridded scalar field (sea-level pressure in hPa) with
// its coordinate axes, and the reductions computed from it once per session.
package field

import "fmt"

// ScalarField is a 2D grid indexed [row][col], rows following Lats and
// columns following Lons. It is not modified after construction.
type ScalarField struct {
	Name  string
	Units string

	values [][]float64
	lats   []float64
	lons   []float64
}

// New builds a field from row-major values in hPa. The slices are copied.
func New(values [][]float64, lats, lons []float64) (*ScalarField, error) {
	if len(values) != len(lats) {
		return nil, fmt.Errorf("%w: %d rows for %d latitudes", ErrRead, len(values), len(lats))
	}
	f := &ScalarField{
		Units:  "hPa",
		values: make([][]float64, len(values)),
		lats:   append([]float64(nil), lats...),
		lons:   append([]float64(nil), lons...),
	}
	for j, row := range values {
		if len(row) != len(lons) {
			return nil, fmt.Errorf("%w: row %d has %d columns for %d longitudes", ErrRead, j, len(row), len(lons))
		}
		f.values[j] = append([]float64(nil), row...)
	}
	return f, nil
}

// Width is the number of columns (longitudes).
func (f *ScalarField) Width() int { return len(f.lons) }

// Height is the number of rows (latitudes).
func (f *ScalarField) Height() int { return len(f.lats) }

// At returns the value at row j, column i.
func (f *ScalarField) At(i, j int) float64 { return f.values[j][i] }

// Lats returns a copy of the latitude axis.
func (f *ScalarField) Lats() []float64 { return append([]float64(nil), f.lats...) }

// Lons returns a copy of the longitude axis.
func (f *ScalarField) Lons() []float64 { return append([]float64(nil), f.lons...) }

// Each calls fn for every cell in row-major order.
func (f *ScalarField) Each(fn func(i, j int, v float64)) {
	for j, row := range f.values {
		for i, v := range row {
			fn(i, j, v)
		}
	}
}

// Lon returns the longitude of column i.
func (f *ScalarField) Lon(i int) float64 { return f.lons[i] }

// Lat returns the latitude of row j.
func (f *ScalarField) Lat(j int) float64 { return f.lats[j] }
