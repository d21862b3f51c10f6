package field

import "math"

// Floor is the lowest value that counts toward the normalization minimum.
// Lower values are treated as masked or implausible for sea-level pressure.
const Floor = 100.0

// Range is the normalization interval. Max < Min can occur when no cell
// reaches Floor.
type Range struct {
	Min float64
	Max float64
}

// ComputeRange returns the true maximum and the minimum over cells >= Floor.
// Without such a cell the minimum is Floor itself.
func ComputeRange(f *ScalarField) Range {
	mn := math.Inf(1)
	mx := math.Inf(-1)
	hasMin := false
	f.Each(func(_, _ int, v float64) {
		if v >= Floor {
			if !hasMin || v < mn {
				mn = v
			}
			hasMin = true
		}
		if v > mx {
			mx = v
		}
	})
	if !hasMin {
		mn = Floor
	}
	return Range{Min: mn, Max: mx}
}

// Normalize maps v into [0, 1]. A zero-width range maps everything to 0, as
// does NaN.
func (r Range) Normalize(v float64) float64 {
	span := r.Max - r.Min
	if span == 0 {
		return 0
	}
	t := (v - r.Min) / span
	if !(t > 0) {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
