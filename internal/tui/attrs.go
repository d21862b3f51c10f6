package tui

import (
	"encoding/json"
	"fmt"
	"sort"

	table "github.com/charmbracelet/bubbles/table"
)

// refreshAttrs rebuilds the table from the features visible in the extent.
func (m *Model) refreshAttrs() {
	cols, rows := m.buildAttributes()
	if len(rows) == 0 {
		m.showAttrs = false
		m.status = "no coastline features in view"
		return
	}
	tcols := make([]table.Column, 0, len(cols)+1)
	tcols = append(tcols, table.Column{Title: "#", Width: 4})
	maxColW := 24
	for _, c := range cols {
		w := len(c) + 2
		if w > maxColW {
			w = maxColW
		}
		tcols = append(tcols, table.Column{Title: c, Width: w})
	}
	trows := make([]table.Row, 0, len(rows))
	for i, r := range rows {
		row := make([]string, 0, len(r)+1)
		row = append(row, fmt.Sprintf("%d", i+1))
		row = append(row, r...)
		trows = append(trows, table.Row(row))
	}
	// Clear rows first so the table never renders rows wider than its columns.
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
	m.status = fmt.Sprintf("%d features in view", len(trows))
}

// buildAttributes returns a feature-name column followed by the union of property
// keys, one row per visible feature.
func (m *Model) buildAttributes() ([]string, [][]string) {
	ov := m.sess.Overlay
	visible := ov.Visible()
	seen := map[string]bool{}
	var keys []string
	for _, i := range visible {
		for k := range ov.Feature(i).Properties {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)
	cols := append([]string{"feature"}, keys...)

	rows := make([][]string, 0, len(visible))
	for _, i := range visible {
		f := ov.Feature(i)
		vals := make([]string, 0, len(cols))
		vals = append(vals, f.Name)
		for _, k := range keys {
			vals = append(vals, formatProperty(f.Properties[k]))
		}
		rows = append(rows, vals)
	}
	return cols, rows
}

func formatProperty(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return fmt.Sprintf("%g", t)
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		bs, _ := json.Marshal(t)
		return string(bs)
	}
}
