package tui

import (
	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"pmslmap/internal/session"
)

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2

	maxZoom  = 64
	minZoom  = 0.05
	zoomStep = 1.2
)

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	// zoom multiplies the fitted scale; pan is in canvas pixels.
	zoom float64
	panX float64
	panY float64

	status string

	sess *session.Session

	// palette picker
	l list.Model

	// inspect popup
	inspectPopup string

	// hover state
	hovering    bool
	hoverHasGeo bool
	hoverLon    float64
	hoverLat    float64
	hoverValue  float64

	// attributes table
	showAttrs bool
	tbl       table.Model
}

// New builds a model around a loaded session.
func New(s *session.Session) Model {
	m := Model{
		helpVisible: true,
		zoom:        1.0,
		sess:        s,
		status:      "pmslmap ready",
	}
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(paletteItems(), d, 0, 0)
	m.l.Title = "Palettes"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(false)
	m.l.DisableQuitKeybindings()
	m.selectCurrentPalette()

	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	return m
}

func (m Model) Init() tea.Cmd { return nil }
