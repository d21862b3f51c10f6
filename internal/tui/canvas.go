package tui

import (
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"pmslmap/internal/viewport"
)

// halfBlock shows the top pixel as foreground and the bottom one as
// background, so each terminal cell carries two vertically stacked pixels.
const halfBlock = "▀"

// canvas is an RGB pixel buffer of w x h pixels backing a cols x rows
// terminal area (h = 2 * rows).
type canvas struct {
	w, h int
	px   []color.NRGBA
}

func newCanvas(cols, rows int, bg color.NRGBA) *canvas {
	c := &canvas{w: max(cols, 0), h: 2 * max(rows, 0)}
	c.px = make([]color.NRGBA, c.w*c.h)
	bg.A = 0xff
	for i := range c.px {
		c.px[i] = bg
	}
	return c
}

func (c *canvas) at(x, y int) color.NRGBA { return c.px[y*c.w+x] }

// Scaling is 1: one canvas pixel per transform unit.
func (c *canvas) Scaling() float64 { return 1 }

// Blit scales img into dest with nearest-neighbour sampling. Only pixels
// whose centre falls inside dest are written, clipped to the canvas.
func (c *canvas) Blit(img image.Image, dest viewport.Rect) {
	b := img.Bounds()
	if b.Empty() || dest.W <= 0 || dest.H <= 0 {
		return
	}
	right, bottom := dest.Corner()
	x0 := max(0, int(math.Floor(dest.X)))
	y0 := max(0, int(math.Floor(dest.Y)))
	x1 := min(c.w, int(math.Ceil(right)))
	y1 := min(c.h, int(math.Ceil(bottom)))
	sx := float64(b.Dx()) / dest.W
	sy := float64(b.Dy()) / dest.H
	src, fast := img.(*image.NRGBA)
	for y := y0; y < y1; y++ {
		cy := float64(y) + 0.5
		if cy < dest.Y || cy >= bottom {
			continue
		}
		iy := b.Min.Y + min(b.Dy()-1, int((cy-dest.Y)*sy))
		for x := x0; x < x1; x++ {
			cx := float64(x) + 0.5
			if cx < dest.X || cx >= right {
				continue
			}
			ix := b.Min.X + min(b.Dx()-1, int((cx-dest.X)*sx))
			var p color.NRGBA
			if fast {
				p = src.NRGBAAt(ix, iy)
			} else {
				p = color.NRGBAModel.Convert(img.At(ix, iy)).(color.NRGBA)
			}
			c.blend(x, y, p)
		}
	}
}

// StrokeRing outlines a closed ring. width is in geographic units and is
// turned into a square brush of round(width * scale) pixels, at least one.
func (c *canvas) StrokeRing(ring [][2]float64, t viewport.Transform, col color.NRGBA, width float64) {
	if len(ring) < 2 {
		return
	}
	brush := max(1, int(math.Round(width*t.MaxScaling()*c.Scaling())))
	n := len(ring)
	if ring[0] == ring[n-1] {
		n--
	}
	for i := 0; i < n; i++ {
		a, b := ring[i], ring[(i+1)%n]
		ax, ay := t.Apply(a[0], a[1])
		bx, by := t.Apply(b[0], b[1])
		c.line(ax, ay, bx, by, col, brush)
	}
}

// line clips the segment to the canvas (grown by the brush) and rasterises
// it with Bresenham.
func (c *canvas) line(ax, ay, bx, by float64, col color.NRGBA, brush int) {
	for _, v := range [4]float64{ax, ay, bx, by} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return
		}
	}
	m := float64(brush)
	ax, ay, bx, by, ok := clipSegment(ax, ay, bx, by, -m, -m, float64(c.w)+m, float64(c.h)+m)
	if !ok {
		return
	}
	x0, y0 := int(math.Floor(ax)), int(math.Floor(ay))
	x1, y1 := int(math.Floor(bx)), int(math.Floor(by))
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		c.dab(x0, y0, col, brush)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// dab paints a brush x brush square centred on (x, y).
func (c *canvas) dab(x, y int, col color.NRGBA, brush int) {
	lo := -(brush - 1) / 2
	hi := brush / 2
	for dy := lo; dy <= hi; dy++ {
		for dx := lo; dx <= hi; dx++ {
			c.blend(x+dx, y+dy, col)
		}
	}
}

// blend composites col over the pixel at (x, y) using col's alpha.
func (c *canvas) blend(x, y int, col color.NRGBA) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	i := y*c.w + x
	if col.A == 0xff {
		c.px[i] = col
		return
	}
	a := float64(col.A) / 255
	dst := c.px[i]
	mix := func(s, d uint8) uint8 {
		return uint8(math.Round(float64(s)*a + float64(d)*(1-a)))
	}
	c.px[i] = color.NRGBA{R: mix(col.R, dst.R), G: mix(col.G, dst.G), B: mix(col.B, dst.B), A: 0xff}
}

// String encodes the canvas as rows of half blocks. Runs of identical cells
// share one style.
func (c *canvas) String() string {
	rows := c.h / 2
	lines := make([]string, rows)
	var sb strings.Builder
	for r := 0; r < rows; r++ {
		sb.Reset()
		x := 0
		for x < c.w {
			top, bot := c.at(x, 2*r), c.at(x, 2*r+1)
			run := 1
			for x+run < c.w && c.at(x+run, 2*r) == top && c.at(x+run, 2*r+1) == bot {
				run++
			}
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(hex(top))).
				Background(lipgloss.Color(hex(bot)))
			sb.WriteString(style.Render(strings.Repeat(halfBlock, run)))
			x += run
		}
		lines[r] = sb.String()
	}
	return strings.Join(lines, "\n")
}

func hex(c color.NRGBA) string {
	cf, _ := colorful.MakeColor(c)
	return cf.Hex()
}

// clipSegment is Liang-Barsky clipping against [xmin, xmax] x [ymin, ymax].
func clipSegment(x0, y0, x1, y1, xmin, ymin, xmax, ymax float64) (float64, float64, float64, float64, bool) {
	t0, t1 := 0.0, 1.0
	dx, dy := x1-x0, y1-y0
	for _, e := range [4][2]float64{
		{-dx, x0 - xmin},
		{dx, xmax - x0},
		{-dy, y0 - ymin},
		{dy, ymax - y0},
	} {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = math.Min(t1, r)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}
