package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			l := m.layout()
			m.l.SetSize(sidebarWidth-2, l.contentH-2)
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "+", "=":
			if m.zoom < maxZoom {
				m.zoomBy(zoomStep)
			}
		case "-", "_":
			if m.zoom > minZoom {
				m.zoomBy(1 / zoomStep)
			}
		case "0":
			m.zoom = 1
			m.panX, m.panY = 0, 0
			m.status = "view reset"
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.selectCurrentPalette()
				m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
			}
			return m, nil
		case "enter":
			if m.showSidebar {
				m.applySelectedPalette()
			}
			return m, nil
		case "h":
			m.helpVisible = !m.helpVisible
		case "a":
			m.showAttrs = !m.showAttrs
			if m.showAttrs {
				m.refreshAttrs()
			}
			return m, nil
		case "i":
			if m.inspectPopup != "" {
				m.inspectPopup = ""
			} else {
				m.inspectPopup = m.inspectText()
				m.status = "inspect popup"
			}
		case "esc":
			m.inspectPopup = ""
			m.showAttrs = false
		case "up", "down":
			// Vertical keys drive the open list or table instead of panning.
			if m.showAttrs {
				var cmd tea.Cmd
				m.tbl, cmd = m.tbl.Update(msg)
				return m, cmd
			}
			if m.showSidebar {
				var cmd tea.Cmd
				m.l, cmd = m.l.Update(msg)
				return m, cmd
			}
			step := m.panStep()
			if msg.String() == "up" {
				m.panY -= 2 * step
			} else {
				m.panY += 2 * step
			}
		case "left":
			m.panX -= m.panStep()
		case "right":
			m.panX += m.panStep()
		}
	case tea.MouseMsg:
		l := m.layout()
		cx, cy := msg.X, msg.Y
		if cx >= l.mapX && cx < l.mapX+l.mapW && cy >= l.mapY && cy < l.mapY+l.mapH {
			m.hovering = true
			lon, lat, v, ok := m.cellToGeo(l, cx-l.mapX, cy-l.mapY)
			m.hoverHasGeo = ok
			m.hoverLon, m.hoverLat, m.hoverValue = lon, lat, v
		} else {
			m.hovering = false
			m.hoverHasGeo = false
		}
	}
	return m, nil
}

// zoomBy scales the zoom and the pan together so the point under the view
// centre stays put.
func (m *Model) zoomBy(k float64) {
	m.zoom *= k
	m.panX *= k
	m.panY *= k
	m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
}

// panStep is a twentieth of the map width, in canvas pixels.
func (m Model) panStep() float64 {
	return float64(max(2, m.layout().mapW/20))
}
