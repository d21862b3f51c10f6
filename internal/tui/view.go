package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	l := m.layout()

	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, l.contentH-2)
	}

	// Header
	header := titleStyle.Render(" pmslmap ─ sea-level pressure viewer ")
	header = lipgloss.NewStyle().Width(l.contentW).Padding(0).Render(header)

	// Sidebar
	var sidebar string
	if m.showSidebar {
		sidebar = lipgloss.NewStyle().Width(l.sidebarW).Render(m.l.View())
	}

	// Map viewport
	var mapView string
	if m.showAttrs {
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		if colW == 0 {
			colW = min(60, l.contentW-6)
		}
		maxW := min(l.mapW, max(32, colW))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(l.mapH-2, 20))
		attrsBox := boxStyle.Width(maxW).Render(m.tbl.View())
		mapView = lipgloss.Place(l.mapW, l.mapH, lipgloss.Center, lipgloss.Center, attrsBox)
	} else {
		mapView = lipgloss.NewStyle().Width(l.mapW).Height(l.mapH).Render(m.renderMap(l))
	}

	// Inspect popup replaces the map while open.
	if m.inspectPopup != "" && !m.showAttrs {
		maxPopupW := max(20, min(56, l.contentW/2))
		box := boxStyle.MaxWidth(maxPopupW).Render(m.inspectPopup)
		mapView = lipgloss.Place(l.mapW, l.mapH, lipgloss.Left, lipgloss.Center, box)
	}

	var body string
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	} else {
		body = mapView
	}

	footer := lipgloss.JoinVertical(lipgloss.Left, m.renderReadout(l.contentW), m.renderStatus(l.contentW))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(l.contentW).Height(m.height).Render(ui)
}

// renderReadout is the legend on the left and the hover probe on the right.
func (m Model) renderReadout(width int) string {
	coords := ""
	if m.hovering && m.hoverHasGeo {
		coords = dimStyle.Render(fmt.Sprintf("  lon=%.3f lat=%.3f  %.1f %s  ",
			m.hoverLon, m.hoverLat, m.hoverValue, m.sess.Field.Units))
	}
	legend := m.renderLegend(width - lipgloss.Width(coords))
	spacerW := max(0, width-lipgloss.Width(legend)-lipgloss.Width(coords))
	line := legend + strings.Repeat(" ", spacerW) + coords
	return truncate.StringWithTail(line, uint(width), "…")
}

func (m Model) renderStatus(width int) string {
	line := dimStyle.Render(" "+m.status+" ") + m.renderHelp()
	return truncate.StringWithTail(line, uint(width), "…")
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"↑↓←→ pan",
		"+/- zoom",
		"0 reset",
		"Tab palettes",
		"Enter apply",
		"a features",
		"i inspect",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
