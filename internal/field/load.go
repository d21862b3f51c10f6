package field

import (
	"fmt"
	"os"
	"slices"

	"github.com/ctessum/cdf"
	"go.uber.org/zap"

	"pmslmap/internal/log"
)

// PaToHPa converts the source unit (Pa) to the display unit (hPa).
const PaToHPa = 0.01

// VarNames names the three variables read from the source file.
type VarNames struct {
	Lat   string
	Lon   string
	Field string
}

// DefaultVarNames matches ERA5 single-level output.
var DefaultVarNames = VarNames{Lat: "latitude", Lon: "longitude", Field: "msl"}

// LoadFile opens a netCDF classic file and loads it with Load.
func LoadFile(path string, names VarNames) (*ScalarField, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}
	defer f.Close()
	return Load(f, names)
}

// Load reads the latitude and longitude axes and the first 2D slice of the
// field variable. Leading dimensions (time, level) are read at index 0.
// Packed values are unpacked with scale_factor/add_offset and converted from
// Pa to hPa.
func Load(src cdf.ReaderWriterAt, names VarNames) (*ScalarField, error) {
	nc, err := cdf.Open(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}
	vars := nc.Header.Variables()
	for _, v := range []string{names.Lat, names.Lon, names.Field} {
		if !slices.Contains(vars, v) {
			return nil, fmt.Errorf("%w: %q", ErrMissingVariable, v)
		}
	}

	lats, err := readAxis(nc, names.Lat)
	if err != nil {
		return nil, err
	}
	lons, err := readAxis(nc, names.Lon)
	if err != nil {
		return nil, err
	}
	if len(lats) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptyAxis, names.Lat)
	}
	if len(lons) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptyAxis, names.Lon)
	}
	nLat, nLon := len(lats), len(lons)

	dims := nc.Header.Lengths(names.Field)
	rank := len(dims)
	if rank < 2 {
		return nil, fmt.Errorf("%w: %q has rank %d, want >= 2", ErrRead, names.Field, rank)
	}
	if dims[rank-2] != nLat || dims[rank-1] != nLon {
		return nil, fmt.Errorf("%w: %q is %dx%d, axes are %dx%d",
			ErrRead, names.Field, dims[rank-2], dims[rank-1], nLat, nLon)
	}
	begin := make([]int, rank)
	end := make([]int, rank)
	for k := 0; k < rank-2; k++ {
		end[k] = 1
	}
	end[rank-2], end[rank-1] = nLat, nLon

	r := nc.Reader(names.Field, begin, end)
	buf := r.Zero(nLat * nLon)
	if _, err := r.Read(buf); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrRead, names.Field, err)
	}
	raw, err := toFloat64(buf)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrRead, names.Field, err)
	}
	if len(raw) != nLat*nLon {
		return nil, fmt.Errorf("%w: %q: read %d values, want %d", ErrRead, names.Field, len(raw), nLat*nLon)
	}

	scale, offset := packing(nc.Header, names.Field)
	f := &ScalarField{
		Name:   names.Field,
		Units:  "hPa",
		values: make([][]float64, nLat),
		lats:   lats,
		lons:   lons,
	}
	for j := 0; j < nLat; j++ {
		row := make([]float64, nLon)
		for i := 0; i < nLon; i++ {
			pa := raw[j*nLon+i]*scale + offset
			row[i] = pa * PaToHPa
		}
		f.values[j] = row
	}
	log.Info("loaded scalar field",
		zap.String("variable", names.Field),
		zap.Ints("dims", dims),
		zap.Int("width", nLon),
		zap.Int("height", nLat),
		zap.Float64("scaleFactor", scale),
		zap.Float64("addOffset", offset))
	return f, nil
}

func readAxis(nc *cdf.File, name string) ([]float64, error) {
	dims := nc.Header.Lengths(name)
	if len(dims) != 1 {
		return nil, fmt.Errorf("%w: axis %q has rank %d, want 1", ErrRead, name, len(dims))
	}
	if dims[0] == 0 {
		return nil, nil
	}
	r := nc.Reader(name, nil, nil)
	buf := r.Zero(-1)
	if _, err := r.Read(buf); err != nil {
		return nil, fmt.Errorf("%w: axis %q: %v", ErrRead, name, err)
	}
	out, err := toFloat64(buf)
	if err != nil {
		return nil, fmt.Errorf("%w: axis %q: %v", ErrRead, name, err)
	}
	return out, nil
}

// packing returns the CF scale_factor and add_offset of v, defaulting to
// the identity.
func packing(h *cdf.Header, v string) (scale, offset float64) {
	scale, offset = 1, 0
	if s, ok := firstFloat(h.GetAttribute(v, "scale_factor")); ok {
		scale = s
	}
	if o, ok := firstFloat(h.GetAttribute(v, "add_offset")); ok {
		offset = o
	}
	return scale, offset
}

func firstFloat(attr interface{}) (float64, bool) {
	vals, err := toFloat64(attr)
	if err != nil || len(vals) == 0 {
		return 0, false
	}
	return vals[0], true
}

func toFloat64(buf interface{}) ([]float64, error) {
	switch b := buf.(type) {
	case []float64:
		return append([]float64(nil), b...), nil
	case []float32:
		return convert(b), nil
	case []int32:
		return convert(b), nil
	case []int16:
		return convert(b), nil
	case []int8:
		return convert(b), nil
	case []uint8:
		return convert(b), nil
	default:
		return nil, fmt.Errorf("unsupported element type %T", buf)
	}
}

type number interface {
	~int8 | ~uint8 | ~int16 | ~int32 | ~float32
}

func convert[T number](in []T) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}
