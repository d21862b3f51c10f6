package tui

import (
	"image"
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pmslmap/internal/viewport"
)

var (
	black = color.NRGBA{A: 0xff}
	red   = color.NRGBA{R: 0xff, A: 0xff}
	green = color.NRGBA{G: 0xff, A: 0xff}
	blue  = color.NRGBA{B: 0xff, A: 0xff}
	white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

var identity = viewport.Transform{SX: 1, SY: 1}

func quad() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, red)
	img.SetNRGBA(1, 0, green)
	img.SetNRGBA(0, 1, blue)
	img.SetNRGBA(1, 1, white)
	return img
}

func TestNewCanvas(t *testing.T) {
	c := newCanvas(10, 5, color.NRGBA{R: 1, G: 2, B: 3})
	assert.Equal(t, 10, c.w)
	assert.Equal(t, 10, c.h)
	assert.Equal(t, color.NRGBA{R: 1, G: 2, B: 3, A: 0xff}, c.at(9, 9))
	assert.Equal(t, 1.0, c.Scaling())
}

func TestBlitLandsOnDest(t *testing.T) {
	c := newCanvas(10, 5, black)
	c.Blit(quad(), viewport.Rect{X: 2, Y: 2, W: 6, H: 6})

	assert.Equal(t, black, c.at(1, 1))
	assert.Equal(t, red, c.at(2, 2))
	assert.Equal(t, red, c.at(4, 4))
	assert.Equal(t, green, c.at(5, 2))
	assert.Equal(t, blue, c.at(2, 7))
	assert.Equal(t, white, c.at(5, 5))
	assert.Equal(t, white, c.at(7, 7))
	assert.Equal(t, black, c.at(8, 8))
	assert.Equal(t, black, c.at(8, 2))
}

func TestBlitClips(t *testing.T) {
	c := newCanvas(4, 2, black)
	c.Blit(quad(), viewport.Rect{X: -4, Y: -4, W: 16, H: 16})
	// Source split falls at canvas pixel 4, so everything visible is red.
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			assert.Equal(t, red, c.at(x, y))
		}
	}
	c.Blit(quad(), viewport.Rect{X: 100, Y: 100, W: 10, H: 10})
	c.Blit(quad(), viewport.Rect{W: 0, H: 10})
}

func TestStrokeRingOutline(t *testing.T) {
	c := newCanvas(10, 5, black)
	ring := [][2]float64{{1, 1}, {8, 1}, {8, 8}, {1, 8}, {1, 1}}
	c.StrokeRing(ring, identity, red, 1)

	for _, p := range [][2]int{{1, 1}, {5, 1}, {8, 1}, {8, 5}, {8, 8}, {5, 8}, {1, 5}} {
		assert.Equal(t, red, c.at(p[0], p[1]), "pixel %v", p)
	}
	assert.Equal(t, black, c.at(5, 5))
	assert.Equal(t, black, c.at(0, 0))
	assert.Equal(t, black, c.at(9, 9))
}

func TestStrokeRingClosesOpenRing(t *testing.T) {
	c := newCanvas(10, 5, black)
	c.StrokeRing([][2]float64{{1, 1}, {8, 1}, {1, 8}}, identity, red, 1)
	assert.Equal(t, red, c.at(1, 5), "closing edge drawn")
}

func TestStrokeRingBrush(t *testing.T) {
	c := newCanvas(10, 5, black)
	c.StrokeRing([][2]float64{{0, 5}, {9, 5}}, identity, red, 3)
	for x := 0; x < 10; x++ {
		assert.Equal(t, black, c.at(x, 3))
		assert.Equal(t, red, c.at(x, 4))
		assert.Equal(t, red, c.at(x, 5))
		assert.Equal(t, red, c.at(x, 6))
		assert.Equal(t, black, c.at(x, 7))
	}
}

func TestStrokeRingWidthFollowsTransform(t *testing.T) {
	c := newCanvas(10, 5, black)
	// 0.5 geographic units at 4 px per unit is a 2 px brush.
	tr := viewport.Transform{SX: 4, SY: 4}
	c.StrokeRing([][2]float64{{0, 1.25}, {2.25, 1.25}}, tr, red, 0.5)
	assert.Equal(t, red, c.at(3, 5))
	assert.Equal(t, red, c.at(3, 6))
	assert.Equal(t, black, c.at(3, 4))
	assert.Equal(t, black, c.at(3, 7))
}

func TestStrokeBlendsAlpha(t *testing.T) {
	c := newCanvas(4, 2, black)
	half := color.NRGBA{R: 0xff, A: 0x80}
	c.StrokeRing([][2]float64{{0, 0}, {3, 0}}, identity, half, 1)
	assert.Equal(t, color.NRGBA{R: 0x80, A: 0xff}, c.at(1, 0))
	assert.Equal(t, black, c.at(1, 1))
}

func TestStrokeOffCanvas(t *testing.T) {
	c := newCanvas(4, 2, black)
	c.StrokeRing([][2]float64{{-1e12, -1e12}, {1e12, 1e12}}, identity, red, 1)
	assert.Equal(t, red, c.at(0, 0))
	assert.Equal(t, red, c.at(3, 3))

	c = newCanvas(4, 2, black)
	c.StrokeRing([][2]float64{{100, 100}, {200, 100}, {200, 200}}, identity, red, 1)
	c.StrokeRing([][2]float64{{math.NaN(), 0}, {1, 1}}, identity, red, 1)
	for _, p := range c.px {
		assert.Equal(t, black, p)
	}
}

func TestClipSegment(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 float64
		want           [4]float64
		ok             bool
	}{
		{"inside", 1, 1, 2, 2, [4]float64{1, 1, 2, 2}, true},
		{"crossing", -5, 5, 15, 5, [4]float64{0, 5, 10, 5}, true},
		{"outside", -5, -5, -1, -1, [4]float64{}, false},
		{"parallel outside", -1, 20, 11, 20, [4]float64{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x0, y0, x1, y1, ok := clipSegment(tt.x0, tt.y0, tt.x1, tt.y1, 0, 0, 10, 10)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.InDeltaSlice(t, tt.want[:], []float64{x0, y0, x1, y1}, 1e-9)
			}
		})
	}
}

func TestCanvasString(t *testing.T) {
	c := newCanvas(6, 3, black)
	c.Blit(quad(), viewport.Rect{W: 6, H: 6})
	out := c.String()
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	for _, l := range lines {
		assert.Equal(t, 6, lipgloss.Width(l))
		assert.Equal(t, 6, strings.Count(l, halfBlock))
	}
}

func TestHex(t *testing.T) {
	assert.Equal(t, "#ff0000", hex(red))
	assert.Equal(t, "#0b0f14", hex(canvasBg))
}
