package colormap

import (
	"image"

	"pmslmap/internal/field"
)

// Render draws one pixel per grid cell: pixel (i, j) is cell [j][i]
// normalized by r and coloured by p. A zero-width range paints every cell
// with the palette's t = 0 colour.
func Render(f *field.ScalarField, r field.Range, p PaletteID) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, f.Width(), f.Height()))
	fn := p.Func()
	f.Each(func(i, j int, v float64) {
		img.SetNRGBA(i, j, fn(r.Normalize(v)))
	})
	return img
}
