package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveCellCentres(t *testing.T) {
	var tests = []struct {
		lonMin, lonMax, yMin, yMax float64
		gridW, gridH               int
		dest                       Rect
	}{
		0: {lonMin: 100, lonMax: 160, yMin: -60, yMax: -10, gridW: 241, gridH: 201, dest: Rect{X: 12, Y: 40, W: 600, H: 500}},
		1: {lonMin: -180, lonMax: 179.75, yMin: -90, yMax: 90, gridW: 1440, gridH: 721, dest: Rect{X: 0, Y: 0, W: 1440, H: 721}},
		2: {lonMin: 0, lonMax: 1, yMin: 0, yMax: 1, gridW: 2, gridH: 2, dest: Rect{X: -50, Y: 7.5, W: 80, H: 33}},
	}
	for k, tt := range tests {
		tr := Derive(tt.lonMin, tt.lonMax, tt.yMin, tt.yMax, tt.gridW, tt.gridH, tt.dest)
		pw, ph := PixelSize(tt.dest, tt.gridW, tt.gridH)

		x, y := tr.Apply(tt.lonMin, tt.yMin)
		assert.InDelta(t, tt.dest.X+pw/2, x, pw/2, "test %d origin x", k)
		assert.InDelta(t, tt.dest.Y+ph/2, y, ph/2, "test %d origin y", k)
		assert.InDelta(t, tt.dest.X+pw/2, x, 1e-9, "test %d origin x exact", k)

		cx, cy := tt.dest.Corner()
		x, y = tr.Apply(tt.lonMax, tt.yMax)
		assert.InDelta(t, cx-pw/2, x, 1e-9, "test %d corner x", k)
		assert.InDelta(t, cy-ph/2, y, 1e-9, "test %d corner y", k)
	}
}

func TestDeriveMatchesRasterCells(t *testing.T) {
	// lon 0..4 step 1 on 5 columns, lat 2..0 on 3 rows, drawn 10px per cell
	dest := Rect{X: 3, Y: 5, W: 50, H: 30}
	tr := Derive(0, 4, -2, 0, 5, 3, dest)
	for col := 0; col < 5; col++ {
		x, _ := tr.Apply(float64(col), 0)
		got, _, ok := CellAt(dest, 5, 3, x, dest.Y+1)
		require.True(t, ok)
		assert.Equal(t, col, got)
		assert.InDelta(t, dest.X+10*float64(col)+5, x, 1e-9)
	}
	for row := 0; row < 3; row++ {
		lat := 2 - float64(row)
		_, y := tr.Apply(0, -lat)
		_, got, ok := CellAt(dest, 5, 3, dest.X+1, y)
		require.True(t, ok)
		assert.Equal(t, row, got)
	}
}

func TestDeriveDegenerate(t *testing.T) {
	dest := Rect{X: 10, Y: 20, W: 100, H: 50}
	tr := Derive(5, 5, -3, -3, 1, 1, dest)
	assert.Equal(t, 0.0, tr.SX)
	assert.Equal(t, 0.0, tr.SY)
	x, y := tr.Apply(5, -3)
	assert.Equal(t, 60.0, x)
	assert.Equal(t, 45.0, y)
	x, y = tr.Apply(170, 80)
	assert.Equal(t, 60.0, x, "collapsed to a point")
	assert.Equal(t, 45.0, y)

	_, _, ok := tr.Invert(60, 45)
	assert.False(t, ok)
}

func TestInvertRoundTrip(t *testing.T) {
	tr := Derive(120, 150, -50, -20, 31, 31, Rect{X: 4, Y: 8, W: 93, H: 62})
	px, py := tr.Apply(135.25, -33.5)
	x, y, ok := tr.Invert(px, py)
	require.True(t, ok)
	assert.InDelta(t, 135.25, x, 1e-9)
	assert.InDelta(t, -33.5, y, 1e-9)
	assert.InDelta(t, 3.0, tr.SX, 1e-12)
	assert.InDelta(t, 2.0, tr.SY, 1e-12)
	assert.InDelta(t, 3.0, tr.MaxScaling(), 1e-12)
}

func TestFit(t *testing.T) {
	view := Rect{W: 600, H: 600}
	r := Fit(300, 200, view, 1, 0, 0)
	assert.Equal(t, Rect{X: 0, Y: 100, W: 600, H: 400}, r)

	r = Fit(300, 200, view, 2, 10, -5)
	assert.Equal(t, Rect{X: -300 + 10, Y: -100 - 5, W: 1200, H: 800}, r)

	r = Fit(0, 0, view, 1, 0, 0)
	assert.Equal(t, 0.0, r.W)
}

func TestCellAt(t *testing.T) {
	dest := Rect{X: 10, Y: 10, W: 40, H: 20}
	var tests = []struct {
		px, py   float64
		col, row int
		ok       bool
	}{
		0: {px: 10, py: 10, col: 0, row: 0, ok: true},
		1: {px: 49.9, py: 29.9, col: 3, row: 1, ok: true},
		2: {px: 50, py: 15, ok: false},
		3: {px: 9.9, py: 15, ok: false},
		4: {px: 20, py: 20, col: 1, row: 1, ok: true},
	}
	for k, tt := range tests {
		col, row, ok := CellAt(dest, 4, 2, tt.px, tt.py)
		assert.Equal(t, tt.ok, ok, "test %d", k)
		if tt.ok {
			assert.Equal(t, tt.col, col, "test %d", k)
			assert.Equal(t, tt.row, row, "test %d", k)
		}
	}
}
