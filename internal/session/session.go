// Package session ties the loaded field and coastline together: it computes
// the range, image, extent and overlay once, then draws frames on demand.
package session

import (
	"fmt"
	"image"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pmslmap/internal/colormap"
	"pmslmap/internal/config"
	"pmslmap/internal/field"
	"pmslmap/internal/geom"
	"pmslmap/internal/log"
	"pmslmap/internal/overlay"
	"pmslmap/internal/viewport"
)

// Surface is what a frame is drawn on.
type Surface interface {
	// Blit draws img scaled (nearest neighbour) into dest, clipped to the
	// surface.
	Blit(img image.Image, dest viewport.Rect)
	overlay.Stroker
}

// Options tune a session.
type Options struct {
	Palette     colormap.PaletteID
	StrokeWidth float64
}

// Session is the state of one viewer run.
type Session struct {
	ID      uuid.UUID
	Field   *field.ScalarField
	Range   field.Range
	Extent  field.Extent
	Overlay *overlay.Overlay

	palette colormap.PaletteID
	image   *image.NRGBA
}

// New computes everything derived from f and features.
func New(f *field.ScalarField, features []geom.Feature, opts Options) (*Session, error) {
	extent, err := field.ComputeExtent(f.Lats(), f.Lons())
	if err != nil {
		return nil, err
	}
	s := &Session{
		ID:      uuid.New(),
		Field:   f,
		Range:   field.ComputeRange(f),
		Extent:  extent,
		palette: opts.Palette,
	}
	s.image = colormap.Render(f, s.Range, s.palette)

	s.Overlay = overlay.New(features, extent.ViewBox())
	s.Overlay.SetGridSize(f.Width(), f.Height())
	if opts.StrokeWidth > 0 {
		s.Overlay.StrokeWidth = opts.StrokeWidth
	}

	log.Info("session ready",
		zap.Stringer("session", s.ID),
		zap.Int("width", f.Width()),
		zap.Int("height", f.Height()),
		zap.Float64("min", s.Range.Min),
		zap.Float64("max", s.Range.Max),
		zap.Stringer("palette", s.palette),
		zap.Int("features", s.Overlay.Len()),
		zap.Int("visible", len(s.Overlay.Visible())))
	return s, nil
}

// Open loads the field and coastline named by cfg and builds a session. An
// empty coastline path yields an empty overlay.
func Open(cfg *config.Config) (*Session, error) {
	p, err := cfg.PaletteID()
	if err != nil {
		return nil, err
	}
	f, err := field.LoadFile(cfg.FieldPath, cfg.VarNames())
	if err != nil {
		return nil, fmt.Errorf("loading field %q: %w", cfg.FieldPath, err)
	}
	var features []geom.Feature
	if cfg.CoastlinePath != "" {
		features, err = geom.LoadFile(cfg.CoastlinePath)
		if err != nil {
			return nil, fmt.Errorf("loading coastline %q: %w", cfg.CoastlinePath, err)
		}
	}
	return New(f, features, Options{Palette: p, StrokeWidth: cfg.StrokeWidth})
}

// Image is the coloured raster, one pixel per cell.
func (s *Session) Image() *image.NRGBA { return s.image }

// Palette is the palette the image was rendered with.
func (s *Session) Palette() colormap.PaletteID { return s.palette }

// SetPalette re-renders the image with p. The range is not recomputed.
func (s *Session) SetPalette(p colormap.PaletteID) {
	if p == s.palette {
		return
	}
	s.palette = p
	s.image = colormap.Render(s.Field, s.Range, p)
	log.Debug("palette changed", zap.Stringer("session", s.ID), zap.Stringer("palette", p))
}

// Dest is the rectangle the image occupies in view at the given zoom and pan.
func (s *Session) Dest(view viewport.Rect, zoom, panX, panY float64) viewport.Rect {
	return viewport.Fit(s.Field.Width(), s.Field.Height(), view, zoom, panX, panY)
}

// Frame draws the raster and then the overlay into surf, both through the
// same destination rectangle, and returns that rectangle.
func (s *Session) Frame(surf Surface, view viewport.Rect, zoom, panX, panY float64) viewport.Rect {
	dest := s.Dest(view, zoom, panX, panY)
	surf.Blit(s.image, dest)
	yMin, yMax := s.Extent.YBounds()
	s.Overlay.Draw(surf, dest, s.Extent.LonMin, s.Extent.LonMax, yMin, yMax)
	return dest
}

// Probe reports the coordinates and value of the cell under pixel (px, py)
// of a frame drawn into dest.
func (s *Session) Probe(dest viewport.Rect, px, py float64) (lon, lat, value float64, ok bool) {
	col, row, ok := viewport.CellAt(dest, s.Field.Width(), s.Field.Height(), px, py)
	if !ok {
		return 0, 0, 0, false
	}
	return s.Field.Lon(col), s.Field.Lat(row), s.Field.At(col, row), true
}
