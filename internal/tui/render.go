package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"pmslmap/internal/colormap"
	"pmslmap/internal/viewport"
)

// layout is the screen split shared by View and mouse handling.
type layout struct {
	contentW, contentH int
	sidebarW           int
	mapX, mapY         int // map origin in terminal cells
	mapW, mapH         int // map size in terminal cells
}

func (m Model) layout() layout {
	var l layout
	l.contentW = max(10, m.width)
	l.contentH = max(4, m.height-headerHeight-footerHeight)
	if m.showSidebar {
		l.sidebarW = sidebarWidth
		l.mapX = sidebarWidth + 1
	}
	l.mapY = headerHeight
	l.mapW = max(8, l.contentW-l.sidebarW-1)
	l.mapH = max(4, l.contentH)
	return l
}

// view is the map area in canvas pixels (two per terminal row).
func (l layout) view() viewport.Rect {
	return viewport.Rect{W: float64(l.mapW), H: float64(2 * l.mapH)}
}

// renderMap draws one frame of the session into a fresh canvas.
func (m Model) renderMap(l layout) string {
	c := newCanvas(l.mapW, l.mapH, canvasBg)
	m.sess.Frame(c, l.view(), m.zoom, m.panX, m.panY)
	return c.String()
}

// cellToGeo probes the field under terminal cell (cx, cy) of the map area.
func (m Model) cellToGeo(l layout, cx, cy int) (lon, lat, value float64, ok bool) {
	dest := m.sess.Dest(l.view(), m.zoom, m.panX, m.panY)
	return m.sess.Probe(dest, float64(cx)+0.5, float64(2*cy)+1)
}

// renderLegend draws the palette as a colour bar between the range ends.
func (m Model) renderLegend(width int) string {
	r := m.sess.Range
	lo := fmt.Sprintf(" %.1f ", r.Min)
	hi := fmt.Sprintf(" %.1f %s ", r.Max, m.sess.Field.Units)
	n := min(32, width-lipgloss.Width(lo)-lipgloss.Width(hi))
	if n < 4 {
		return ""
	}
	var sb strings.Builder
	for _, c := range colormap.Legend(m.sess.Palette(), n) {
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(hex(c))).Render("█"))
	}
	return dimStyle.Render(lo) + sb.String() + dimStyle.Render(hi)
}

// inspectText summarises the loaded data for the inspect popup.
func (m Model) inspectText() string {
	s := m.sess
	e := s.Extent
	units := s.Field.Units
	meta := []string{
		fmt.Sprintf("field: %s [%s]", s.Field.Name, units),
		fmt.Sprintf("grid: %d x %d", s.Field.Width(), s.Field.Height()),
		fmt.Sprintf("range: %.2f .. %.2f %s", s.Range.Min, s.Range.Max, units),
		fmt.Sprintf("extent: lon [%.3f, %.3f] lat [%.3f, %.3f]", e.LonMin, e.LonMax, e.LatMin, e.LatMax),
		fmt.Sprintf("palette: %s", s.Palette()),
		fmt.Sprintf("coastline: %d of %d features in view", len(s.Overlay.Visible()), s.Overlay.Len()),
		fmt.Sprintf("zoom: %.2fx", m.zoom),
		fmt.Sprintf("session: %s", s.ID),
	}
	return strings.Join(meta, "\n")
}
