// Package config holds the runtime settings of the viewer.
package config

import (
	"fmt"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"

	"pmslmap/internal/colormap"
	"pmslmap/internal/field"
)

// Config is filled from flags and environment variables, then validated.
type Config struct {
	FieldPath     string `validate:"required"`
	CoastlinePath string `default:"example/geojson/countries.geojson"`

	LatVar   string `default:"latitude" validate:"required"`
	LonVar   string `default:"longitude" validate:"required"`
	FieldVar string `default:"msl" validate:"required"`

	Palette     string  `default:"turbo" validate:"palette"`
	StrokeWidth float64 `default:"1" validate:"gt=0"`

	LogFile  string `default:"pmslmap.log"`
	LogLevel string `default:"info" validate:"oneof=debug info warn error"`
}

// New returns a Config with every default applied.
func New() (*Config, error) {
	c := &Config{}
	if err := defaults.Set(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks c against its tags.
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.RegisterValidation("palette", isPalette); err != nil {
		return err
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// VarNames returns the netCDF variable names to read.
func (c *Config) VarNames() field.VarNames {
	return field.VarNames{Lat: c.LatVar, Lon: c.LonVar, Field: c.FieldVar}
}

// PaletteID resolves the configured palette name.
func (c *Config) PaletteID() (colormap.PaletteID, error) {
	return colormap.ParsePalette(c.Palette)
}

// isPalette accepts any name colormap.ParsePalette resolves.
func isPalette(fl validator.FieldLevel) bool {
	_, err := colormap.ParsePalette(fl.Field().String())
	return err == nil
}
