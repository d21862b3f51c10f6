package tui

import (
	"fmt"

	list "github.com/charmbracelet/bubbles/list"

	"pmslmap/internal/colormap"
)

type paletteItem struct {
	id colormap.PaletteID
}

func (p paletteItem) Title() string       { return p.id.String() }
func (p paletteItem) Description() string { return "" }
func (p paletteItem) FilterValue() string { return p.id.String() }

func paletteItems() []list.Item {
	ids := colormap.Palettes()
	items := make([]list.Item, len(ids))
	for i, id := range ids {
		items[i] = paletteItem{id: id}
	}
	return items
}

// selectCurrentPalette moves the list cursor to the session's palette.
func (m *Model) selectCurrentPalette() {
	for i, it := range m.l.Items() {
		if it.(paletteItem).id == m.sess.Palette() {
			m.l.Select(i)
			return
		}
	}
}

// applySelectedPalette re-renders the raster with the highlighted palette.
func (m *Model) applySelectedPalette() {
	it, ok := m.l.SelectedItem().(paletteItem)
	if !ok {
		return
	}
	m.sess.SetPalette(it.id)
	m.status = fmt.Sprintf("palette: %s", it.id)
}
