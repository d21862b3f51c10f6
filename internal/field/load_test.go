package field

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ctessum/cdf"
	"github.com/stretchr/testify/require"
)

// writeNC writes a small ERA5-shaped file (time, latitude, longitude) and
// returns its path. fieldFill selects the storage type of the field variable.
func writeNC(t *testing.T, lats, lons []float64, data interface{}, fieldFill interface{}, attrs map[string]interface{}, skip string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pmsl.nc")
	w, err := os.Create(path)
	require.NoError(t, err)
	defer w.Close()

	h := cdf.NewHeader(
		[]string{"time", "latitude", "longitude"},
		[]int{1, len(lats), len(lons)})
	if skip != "latitude" {
		h.AddVariable("latitude", []string{"latitude"}, []float32{0})
	}
	if skip != "longitude" {
		h.AddVariable("longitude", []string{"longitude"}, []float32{0})
	}
	if skip != "msl" {
		h.AddVariable("msl", []string{"time", "latitude", "longitude"}, fieldFill)
		for k, v := range attrs {
			h.AddAttribute("msl", k, v)
		}
	}
	h.Define()
	f, err := cdf.Create(w, h)
	require.NoError(t, err)

	write := func(name string, values interface{}, end []int) {
		_, err := f.Writer(name, make([]int, len(end)), end).Write(values)
		require.NoError(t, err)
	}
	if skip != "latitude" {
		write("latitude", toFloat32(lats), []int{len(lats)})
	}
	if skip != "longitude" {
		write("longitude", toFloat32(lons), []int{len(lons)})
	}
	if skip != "msl" {
		write("msl", data, []int{1, len(lats), len(lons)})
	}
	return path
}

func toFloat32(in []float64) []float32 {
	out := make([]float32, len(in))
	for i, v := range in {
		out[i] = float32(v)
	}
	return out
}

func TestLoadFile(t *testing.T) {
	lats := []float64{40, 35, 30}
	lons := []float64{130, 135}
	pa := []float32{101300, 101200, 100900, 100800, 99000, 98000}
	path := writeNC(t, lats, lons, pa, []float32{0}, nil, "")

	f, err := LoadFile(path, DefaultVarNames)
	require.NoError(t, err)
	require.Equal(t, len(lats), f.Height())
	require.Equal(t, len(lons), f.Width())
	require.Equal(t, lats, f.Lats())
	require.Equal(t, lons, f.Lons())
	require.Equal(t, "hPa", f.Units)
	require.InDelta(t, 1013.0, f.At(0, 0), 1e-9)
	require.InDelta(t, 1012.0, f.At(1, 0), 1e-9)
	require.InDelta(t, 980.0, f.At(1, 2), 1e-9)
}

func TestLoadUnpacksScaleAndOffset(t *testing.T) {
	lats := []float64{10, 0}
	lons := []float64{0, 1}
	packed := []int16{0, 100, -100, 1}
	attrs := map[string]interface{}{
		"scale_factor": []float64{2},
		"add_offset":   []float64{100000},
	}
	path := writeNC(t, lats, lons, packed, []int16{0}, attrs, "")

	f, err := LoadFile(path, DefaultVarNames)
	require.NoError(t, err)
	require.InDelta(t, 1000.0, f.At(0, 0), 1e-9)
	require.InDelta(t, 1002.0, f.At(1, 0), 1e-9)
	require.InDelta(t, 998.0, f.At(0, 1), 1e-9)
	require.InDelta(t, 1000.02, f.At(1, 1), 1e-9)
}

func TestLoadMissingVariable(t *testing.T) {
	for _, name := range []string{"latitude", "longitude", "msl"} {
		t.Run(name, func(t *testing.T) {
			path := writeNC(t, []float64{1}, []float64{2}, []float32{100000}, []float32{0}, nil, name)
			_, err := LoadFile(path, DefaultVarNames)
			require.ErrorIs(t, err, ErrMissingVariable)
		})
	}
}

func TestLoadCustomNames(t *testing.T) {
	path := writeNC(t, []float64{1}, []float64{2}, []float32{100000}, []float32{0}, nil, "")
	_, err := LoadFile(path, VarNames{Lat: "latitude", Lon: "longitude", Field: "sp"})
	require.ErrorIs(t, err, ErrMissingVariable)
}

func TestLoadReadErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.nc"), DefaultVarNames)
	require.ErrorIs(t, err, ErrRead)

	garbage := filepath.Join(t.TempDir(), "garbage.nc")
	require.NoError(t, os.WriteFile(garbage, []byte("not a netcdf file"), 0o644))
	_, err = LoadFile(garbage, DefaultVarNames)
	require.ErrorIs(t, err, ErrRead)
}

func TestLoadIsDeterministic(t *testing.T) {
	path := writeNC(t, []float64{1, 0}, []float64{2, 3}, []float32{100000, 101000, 99000, 102000}, []float32{0}, nil, "")
	a, err := LoadFile(path, DefaultVarNames)
	require.NoError(t, err)
	b, err := LoadFile(path, DefaultVarNames)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

type ncVar struct {
	name string
	dims []string
	fill interface{}
	data interface{} // nil leaves the variable unwritten
}

// writeLayout writes a file with arbitrary dimensions and variables. A
// dimension length of 0 declares the record dimension.
func writeLayout(t *testing.T, dims []string, lengths []int, vars []ncVar) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "layout.nc")
	w, err := os.Create(path)
	require.NoError(t, err)
	defer w.Close()

	h := cdf.NewHeader(dims, lengths)
	for _, v := range vars {
		h.AddVariable(v.name, v.dims, v.fill)
	}
	h.Define()
	f, err := cdf.Create(w, h)
	require.NoError(t, err)
	for _, v := range vars {
		if v.data == nil {
			continue
		}
		end := f.Header.Lengths(v.name)
		_, err := f.Writer(v.name, make([]int, len(end)), end).Write(v.data)
		require.NoError(t, err)
	}
	return path
}

func TestLoadReadsFirstLeadingSlice(t *testing.T) {
	// time x level x latitude x longitude; only [0, 0] holds plausible pressure.
	data := make([]float32, 2*3*2*2)
	for k := range data {
		data[k] = 50000 + float32(k)
	}
	copy(data, []float32{101000, 102000, 103000, 104000})
	path := writeLayout(t,
		[]string{"time", "level", "latitude", "longitude"},
		[]int{2, 3, 2, 2},
		[]ncVar{
			{"latitude", []string{"latitude"}, []float32{0}, []float32{10, 0}},
			{"longitude", []string{"longitude"}, []float32{0}, []float32{0, 10}},
			{"msl", []string{"time", "level", "latitude", "longitude"}, []float32{0}, data},
		})

	f, err := LoadFile(path, DefaultVarNames)
	require.NoError(t, err)
	require.Equal(t, 2, f.Width())
	require.Equal(t, 2, f.Height())
	require.InDelta(t, 1010.0, f.At(0, 0), 1e-9)
	require.InDelta(t, 1020.0, f.At(1, 0), 1e-9)
	require.InDelta(t, 1030.0, f.At(0, 1), 1e-9)
	require.InDelta(t, 1040.0, f.At(1, 1), 1e-9)
}

func TestLoadShapeErrors(t *testing.T) {
	lat := ncVar{"latitude", []string{"latitude"}, []float32{0}, []float32{10, 0}}
	lon := ncVar{"longitude", []string{"longitude"}, []float32{0}, []float32{0, 5, 10}}
	tests := []struct {
		name string
		vars []ncVar
	}{
		{"field rank below two", []ncVar{lat, lon,
			{"msl", []string{"longitude"}, []float32{0}, []float32{1, 2, 3}}}},
		{"trailing dims swapped", []ncVar{lat, lon,
			{"msl", []string{"time", "longitude", "latitude"}, []float32{0}, make([]float32, 6)}}},
		{"trailing dims short", []ncVar{lat, lon,
			{"msl", []string{"time", "latitude"}, []float32{0}, make([]float32, 2)}}},
		{"axis not one-dimensional", []ncVar{
			{"latitude", []string{"latitude", "longitude"}, []float32{0}, make([]float32, 6)}, lon,
			{"msl", []string{"time", "latitude", "longitude"}, []float32{0}, make([]float32, 6)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeLayout(t, []string{"time", "latitude", "longitude"}, []int{1, 2, 3}, tt.vars)
			_, err := LoadFile(path, DefaultVarNames)
			require.ErrorIs(t, err, ErrRead)
		})
	}
}

func TestLoadEmptyAxis(t *testing.T) {
	// latitude is the record dimension and no record was written.
	path := writeLayout(t,
		[]string{"latitude", "longitude"},
		[]int{0, 2},
		[]ncVar{
			{"latitude", []string{"latitude"}, []float32{0}, nil},
			{"longitude", []string{"longitude"}, []float32{0}, []float32{0, 10}},
			{"msl", []string{"latitude", "longitude"}, []float32{0}, nil},
		})
	_, err := LoadFile(path, DefaultVarNames)
	require.ErrorIs(t, err, ErrEmptyAxis)
}
