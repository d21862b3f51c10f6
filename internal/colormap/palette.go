// Package colormap turns a scalar field into an image through a continuous
// palette.
package colormap

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrUnknownPalette is returned by ParsePalette.
var ErrUnknownPalette = errors.New("unknown palette")

// PaletteID selects a palette.
type PaletteID int

const (
	Turbo PaletteID = iota
	Viridis
	Cividis
	Gray
)

// Palette maps t in [0, 1] to an opaque colour.
type Palette func(t float64) color.NRGBA

var names = map[PaletteID]string{
	Turbo:   "turbo",
	Viridis: "viridis",
	Cividis: "cividis",
	Gray:    "gray",
}

var palettes = map[PaletteID]Palette{
	Turbo:   turbo,
	Viridis: stops("#440154", "#482878", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"),
	Cividis: stops("#00224e", "#123570", "#3b496c", "#575d6d", "#707173", "#8a8779", "#a69d75", "#c4b56c", "#e4cf5b", "#fee838"),
	Gray:    gray,
}

func (p PaletteID) String() string {
	if n, ok := names[p]; ok {
		return n
	}
	return fmt.Sprintf("palette(%d)", int(p))
}

// Func returns the palette function for p, falling back to Turbo.
func (p PaletteID) Func() Palette {
	if f, ok := palettes[p]; ok {
		return f
	}
	return turbo
}

// ParsePalette resolves a palette by name, case-insensitively.
func ParsePalette(name string) (PaletteID, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for id, s := range names {
		if s == n {
			return id, nil
		}
	}
	return Turbo, fmt.Errorf("%w: %q", ErrUnknownPalette, name)
}

// Palettes lists every palette in declaration order.
func Palettes() []PaletteID {
	ids := make([]PaletteID, 0, len(names))
	for id := range names {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Legend samples p at n evenly spaced points from 0 to 1.
func Legend(p PaletteID, n int) []color.NRGBA {
	if n <= 0 {
		return nil
	}
	fn := p.Func()
	out := make([]color.NRGBA, n)
	for i := range out {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		out[i] = fn(t)
	}
	return out
}

// turbo is the polynomial approximation of Google's Turbo colormap.
func turbo(t float64) color.NRGBA {
	x := clamp01(t)
	r := 0.13572138 + x*(4.61539260+x*(-42.66032258+x*(132.13108234+x*(-152.94239396+x*59.28637943))))
	g := 0.09140261 + x*(2.19418839+x*(4.84296658+x*(-14.18503333+x*(4.27729857+x*2.82956604))))
	b := 0.10667330 + x*(12.64194608+x*(-60.58204836+x*(110.36276771+x*(-89.90310912+x*27.34824973))))
	return toNRGBA(colorful.Color{R: r, G: g, B: b})
}

func gray(t float64) color.NRGBA {
	v := uint8(math.Round(clamp01(t) * 255))
	return color.NRGBA{R: v, G: v, B: v, A: 0xff}
}

// stops builds a palette interpolating evenly spaced sRGB stops in Lab space.
func stops(hexes ...string) Palette {
	cs := make([]colorful.Color, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			panic(err)
		}
		cs[i] = c
	}
	return func(t float64) color.NRGBA {
		x := clamp01(t) * float64(len(cs)-1)
		i := int(x)
		if i >= len(cs)-1 {
			return toNRGBA(cs[len(cs)-1])
		}
		frac := x - float64(i)
		if frac == 0 {
			return toNRGBA(cs[i])
		}
		return toNRGBA(cs[i].BlendLab(cs[i+1], frac))
	}
}

func toNRGBA(c colorful.Color) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

func clamp01(t float64) float64 {
	if !(t > 0) {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
