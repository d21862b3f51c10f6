package main

import (
	"fmt"
	"os"

	"github.com/carlmjohnson/versioninfo"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-spatial/geom/encoding/wkt"
	"github.com/iancoleman/strcase"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"pmslmap/internal/config"
	"pmslmap/internal/geom"
	"pmslmap/internal/log"
	"pmslmap/internal/session"
	"pmslmap/internal/tui"
)

const FIELDPATH string = `fieldPath`
const COASTLINEPATH string = `coastlinePath`
const LATVAR string = `latVar`
const LONVAR string = `lonVar`
const FIELDVAR string = `fieldVar`
const PALETTE string = `palette`
const STROKEWIDTH string = `strokeWidth`
const LOGFILE string = `logFile`
const LOGLEVEL string = `logLevel`

//nolint:funlen
func main() {
	// A missing .env is fine; flags and the real environment still apply.
	_ = godotenv.Load()

	defaults, err := config.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	app := cli.NewApp()
	app.Name = "pmslmap"
	app.Usage = "Sea-level pressure map with a coastline overlay, in the terminal"
	app.Version = versioninfo.Short()

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:     FIELDPATH,
			Aliases:  []string{"f"},
			Usage:    "netCDF file holding the pressure field",
			Required: true,
			EnvVars:  []string{strcase.ToScreamingSnake(FIELDPATH)},
		},
		&cli.StringFlag{
			Name:    COASTLINEPATH,
			Aliases: []string{"c"},
			Usage:   "GeoJSON or WKT coastline polygons. Empty disables the overlay",
			Value:   defaults.CoastlinePath,
			EnvVars: []string{strcase.ToScreamingSnake(COASTLINEPATH)},
		},
		&cli.StringFlag{
			Name:    LATVAR,
			Usage:   "Name of the latitude variable",
			Value:   defaults.LatVar,
			EnvVars: []string{strcase.ToScreamingSnake(LATVAR)},
		},
		&cli.StringFlag{
			Name:    LONVAR,
			Usage:   "Name of the longitude variable",
			Value:   defaults.LonVar,
			EnvVars: []string{strcase.ToScreamingSnake(LONVAR)},
		},
		&cli.StringFlag{
			Name:    FIELDVAR,
			Usage:   "Name of the pressure variable (Pa)",
			Value:   defaults.FieldVar,
			EnvVars: []string{strcase.ToScreamingSnake(FIELDVAR)},
		},
		&cli.StringFlag{
			Name:    PALETTE,
			Aliases: []string{"p"},
			Usage:   "Colour palette: turbo, viridis, cividis or gray",
			Value:   defaults.Palette,
			EnvVars: []string{strcase.ToScreamingSnake(PALETTE)},
		},
		&cli.Float64Flag{
			Name:    STROKEWIDTH,
			Usage:   "Coastline width in screen pixels",
			Value:   defaults.StrokeWidth,
			EnvVars: []string{strcase.ToScreamingSnake(STROKEWIDTH)},
		},
		&cli.StringFlag{
			Name:    LOGFILE,
			Usage:   "Log file. Empty disables logging",
			Value:   defaults.LogFile,
			EnvVars: []string{strcase.ToScreamingSnake(LOGFILE)},
		},
		&cli.StringFlag{
			Name:    LOGLEVEL,
			Usage:   "Log level: debug, info, warn or error",
			Value:   defaults.LogLevel,
			EnvVars: []string{strcase.ToScreamingSnake(LOGLEVEL)},
		},
	}

	app.Before = func(c *cli.Context) error {
		return log.Init(c.String(LOGLEVEL), c.String(LOGFILE))
	}
	app.After = func(c *cli.Context) error {
		log.Sync()
		return nil
	}

	app.Action = func(c *cli.Context) error {
		s, err := open(c)
		if err != nil {
			return err
		}
		p := tea.NewProgram(tui.New(s), tea.WithAltScreen(), tea.WithMouseAllMotion())
		if _, err := p.Run(); err != nil {
			log.Error("terminal ui failed", zap.Error(err))
			return err
		}
		return nil
	}

	app.Commands = []*cli.Command{
		{
			Name:  "info",
			Usage: "Print a summary of the field and the coastline overlay",
			Action: func(c *cli.Context) error {
				s, err := open(c)
				if err != nil {
					return err
				}
				printInfo(s)
				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// open validates the configuration built from the flags and loads a session.
func open(c *cli.Context) (*session.Session, error) {
	cfg := &config.Config{
		FieldPath:     c.String(FIELDPATH),
		CoastlinePath: c.String(COASTLINEPATH),
		LatVar:        c.String(LATVAR),
		LonVar:        c.String(LONVAR),
		FieldVar:      c.String(FIELDVAR),
		Palette:       c.String(PALETTE),
		StrokeWidth:   c.Float64(STROKEWIDTH),
		LogFile:       c.String(LOGFILE),
		LogLevel:      c.String(LOGLEVEL),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s, err := session.Open(cfg)
	if err != nil {
		log.Error("load failed", zap.Error(err))
		return nil, err
	}
	return s, nil
}

func printInfo(s *session.Session) {
	e := s.Extent
	bbox := geom.BBox{MinX: e.LonMin, MinY: e.LatMin, MaxX: e.LonMax, MaxY: e.LatMax}
	fmt.Printf("field:     %s [%s]\n", s.Field.Name, s.Field.Units)
	fmt.Printf("grid:      %d x %d\n", s.Field.Width(), s.Field.Height())
	fmt.Printf("range:     %.2f .. %.2f\n", s.Range.Min, s.Range.Max)
	fmt.Printf("extent:    %s\n", wkt.MustEncode(bbox.Extent()))
	fmt.Printf("palette:   %s\n", s.Palette())
	fmt.Printf("coastline: %d of %d features in view\n", len(s.Overlay.Visible()), s.Overlay.Len())
}
