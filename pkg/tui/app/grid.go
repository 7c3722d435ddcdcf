package teaui

import (
	"strings"
)

// cellWidth is the terminal width of one grid cell: a double width glyph
// plus one column of padding on each side. Category bar items use the same.
const cellWidth = 4

// defaultGridRows is used before the first WindowSizeMsg.
const defaultGridRows = 8

func (m *Model) columns() int {
	cols := m.settings.GridColumns
	if cols < 1 {
		cols = 8
	}
	if m.width > 0 {
		if fit := m.width / cellWidth; fit >= 1 && fit < cols {
			cols = fit
		}
	}
	return cols
}

func (m *Model) searchHeight() int {
	return m.theme.Search.Focused.GetVerticalFrameSize() + 1
}

func (m *Model) tipHeight() int {
	tip := m.ctrl.ListTip()
	if tip == "" {
		return 0
	}
	return strings.Count(tip, "\n") + 1
}

func (m *Model) gridTop() int {
	return m.searchHeight() + m.tipHeight()
}

func (m *Model) gridRows() int {
	if m.height <= 0 {
		return defaultGridRows
	}
	reserved := m.gridTop() + 1 // category bar
	if m.ctrl.Preview() != "" {
		reserved++
	}
	if m.status != "" {
		reserved++
	}
	reserved += strings.Count(m.help.View(m.keys), "\n") + 1
	return max(m.height-reserved, 1)
}

func (m *Model) scrollToCursor() {
	cols, rows := m.columns(), m.gridRows()
	row := m.cursor / cols
	switch {
	case row < m.offset:
		m.offset = row
	case row >= m.offset+rows:
		m.offset = row - rows + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *Model) renderGrid() string {
	if len(m.entries) == 0 {
		if _, ok := m.ctrl.Query(); ok {
			return m.theme.Grid.Empty.Render("Nothing found")
		}
		return ""
	}

	cols, rows := m.columns(), m.gridRows()
	lines := make([]string, 0, rows)
	for r := m.offset; r < m.offset+rows; r++ {
		start := r * cols
		if start >= len(m.entries) {
			break
		}
		end := min(start+cols, len(m.entries))
		var line strings.Builder
		for i := start; i < end; i++ {
			e := m.entries[i]
			style := m.theme.Grid.Cell
			switch {
			case m.focus == focusGrid && i == m.cursor:
				style = m.theme.Grid.Cursor
			case m.ctrl.IsSelected(e.Hexcode):
				style = m.theme.Grid.Selected
			}
			line.WriteString(style.Render(e.Display(m.settings.SkintoneModifier)))
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

// gridHeight is the number of lines renderGrid produced.
func (m *Model) gridHeight() int {
	if len(m.entries) == 0 {
		if _, ok := m.ctrl.Query(); ok {
			return 1
		}
		return 0
	}
	total := (len(m.entries) + m.columns() - 1) / m.columns()
	return min(total-m.offset, m.gridRows())
}

// cellAt maps a mouse position to an index into m.entries.
func (m *Model) cellAt(x, y int) (int, bool) {
	top := m.gridTop()
	if y < top || y >= top+m.gridHeight() || x < 0 {
		return 0, false
	}
	col := x / cellWidth
	if col >= m.columns() {
		return 0, false
	}
	idx := (m.offset+y-top)*m.columns() + col
	if idx >= len(m.entries) {
		return 0, false
	}
	return idx, true
}

// categoryAt maps a mouse position on the category bar to a category index.
func (m *Model) categoryAt(x, y int) (int, bool) {
	barY := m.gridTop() + max(m.gridHeight(), 1)
	if m.ctrl.Preview() != "" {
		barY++
	}
	if y != barY || x < 0 {
		return 0, false
	}
	idx := x / cellWidth
	if idx >= len(m.ctrl.Categories()) {
		return 0, false
	}
	return idx, true
}
