package geom

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	spatial "github.com/go-spatial/geom"
)

// ParseWKT parses a POLYGON or MULTIPOLYGON into a Feature.
// Supported: POLYGON((x y, ...), (x y, ...)), MULTIPOLYGON(((x y, ...)), ...)
func ParseWKT(wkt string) (Feature, error) {
	s := strings.TrimSpace(wkt)
	if s == "" {
		return Feature{}, errors.New("empty wkt")
	}
	up := strings.ToUpper(s)
	i := strings.Index(s, "(")
	j := strings.LastIndex(s, ")")
	switch {
	case strings.HasPrefix(up, "MULTIPOLYGON"):
		if i < 0 || j <= i {
			return Feature{}, errors.New("wkt multipolygon: invalid")
		}
		var mp spatial.MultiPolygon
		for _, part := range splitGroups(s[i+1 : j]) {
			poly, err := parseWKTPolygon(part)
			if err != nil {
				return Feature{}, fmt.Errorf("wkt multipolygon: %w", err)
			}
			mp = append(mp, poly)
		}
		if len(mp) == 0 {
			return Feature{}, ErrNoPolygons
		}
		return Feature{Polygons: mp}, nil
	case strings.HasPrefix(up, "POLYGON"):
		if i < 0 || j <= i {
			return Feature{}, errors.New("wkt polygon: invalid")
		}
		poly, err := parseWKTPolygon(s[i : j+1])
		if err != nil {
			return Feature{}, fmt.Errorf("wkt polygon: %w", err)
		}
		return Feature{Polygons: spatial.MultiPolygon{poly}}, nil
	}
	return Feature{}, errors.New("unsupported wkt type")
}

// LoadWKT reads one POLYGON or MULTIPOLYGON per non-blank line.
func LoadWKT(path string) ([]Feature, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var features []Feature
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 64*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		feat, err := ParseWKT(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		feat.Name = fmt.Sprintf("feature %d", len(features)+1)
		features = append(features, feat)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(features) == 0 {
		return nil, ErrNoPolygons
	}
	return features, nil
}

// parseWKTPolygon parses "((x y, ...), (x y, ...))".
func parseWKTPolygon(block string) ([][][2]float64, error) {
	block = strings.TrimSpace(block)
	if !strings.HasPrefix(block, "(") || !strings.HasSuffix(block, ")") {
		return nil, errors.New("polygon must be parenthesised")
	}
	var poly [][][2]float64
	for _, ringStr := range splitGroups(block[1 : len(block)-1]) {
		ringStr = strings.TrimSpace(ringStr)
		ring := parseTuples(strings.Trim(ringStr, "()"))
		if len(ring) < 3 {
			return nil, fmt.Errorf("ring with %d vertices", len(ring))
		}
		poly = append(poly, ring)
	}
	if len(poly) == 0 {
		return nil, errors.New("no rings")
	}
	return poly, nil
}

// splitGroups splits "(a), (b), (c)" at top-level commas, keeping the
// parentheses of each group.
func splitGroups(s string) []string {
	var out []string
	depth, start := 0, -1
	for k, ch := range s {
		switch ch {
		case '(':
			if depth == 0 {
				start = k
			}
			depth++
		case ')':
			depth--
			if depth == 0 && start >= 0 {
				out = append(out, s[start:k+1])
				start = -1
			}
		}
	}
	return out
}

func parseTuples(block string) [][2]float64 {
	var out [][2]float64
	for _, tup := range strings.Split(block, ",") {
		parts := strings.Fields(strings.TrimSpace(tup))
		if len(parts) < 2 {
			continue
		}
		x, e1 := strconv.ParseFloat(parts[0], 64)
		y, e2 := strconv.ParseFloat(parts[1], 64)
		if e1 != nil || e2 != nil {
			continue
		}
		out = append(out, [2]float64{x, y})
	}
	return out
}
