package overlay

import (
	"github.com/dhconnelly/rtreego"

	"pmslmap/internal/geom"
)

// epsilon pads boxes so the tree never sees a zero-length side.
const epsilon = 1e-9

type indexedFeature struct {
	idx int
	bb  geom.BBox
}

// Bounds implements rtreego.Spatial.
func (f *indexedFeature) Bounds() rtreego.Rect {
	return rect(pad(f.bb))
}

func pad(b geom.BBox) geom.BBox {
	return geom.BBox{MinX: b.MinX - epsilon, MinY: b.MinY - epsilon, MaxX: b.MaxX + epsilon, MaxY: b.MaxY + epsilon}
}

func rect(b geom.BBox) rtreego.Rect {
	r, _ := rtreego.NewRect(rtreego.Point{b.MinX, b.MinY}, []float64{b.MaxX - b.MinX, b.MaxY - b.MinY})
	return r
}
