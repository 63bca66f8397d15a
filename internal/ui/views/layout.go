package views

import (
	"github.com/charmbracelet/lipgloss"

	"cellgrip/internal/domain"
)

// Screen rows used by the grid. The title sits on row 0.
const (
	HeaderY   = 1
	FirstRowY = 3 // below the header and its separator
	ColumnGap = 1
)

// ColumnSpan is the screen extent of one visible column
type ColumnSpan struct {
	Field string
	X     int
	Width int
}

// Layout maps screen positions to grid cells for one rendered frame
type Layout struct {
	Columns   []ColumnSpan
	RowOffset int // index of the first visible row
	Shown     int // number of data rows on screen
	Width     int // total grid width including gaps
}

// NewLayout places columns from colOffset until screenWidth is used up and
// shows up to visibleRows rows starting at rowOffset
func NewLayout(columns []domain.Column, widths map[string]int, colOffset, rowOffset, rowCount, screenWidth, visibleRows int) Layout {
	l := Layout{RowOffset: rowOffset}

	x := 0
	for i := colOffset; i < len(columns); i++ {
		w := widths[columns[i].Field]
		if w <= 0 {
			w = 1
		}
		if x > 0 && screenWidth > 0 && x+w > screenWidth {
			break
		}
		l.Columns = append(l.Columns, ColumnSpan{Field: columns[i].Field, X: x, Width: w})
		x += w + ColumnGap
	}
	if x > 0 {
		l.Width = x - ColumnGap
	}

	l.Shown = rowCount - rowOffset
	if l.Shown > visibleRows {
		l.Shown = visibleRows
	}
	if l.Shown < 0 {
		l.Shown = 0
	}
	return l
}

// Contains reports whether x, y falls on the grid: header, separator or a
// shown row
func (l Layout) Contains(x, y int) bool {
	return x >= 0 && x < l.Width && y >= HeaderY && y < FirstRowY+l.Shown
}

// CellAt returns the cell under x, y. The gap between two columns belongs
// to the left one; nothing past Width is a cell.
func (l Layout) CellAt(x, y int) (domain.CellAddress, bool) {
	if y < FirstRowY || y >= FirstRowY+l.Shown || x < 0 || x >= l.Width {
		return domain.CellAddress{}, false
	}
	for _, col := range l.Columns {
		if x >= col.X && x < col.X+col.Width+ColumnGap {
			return domain.CellAddress{Row: l.RowOffset + y - FirstRowY, Column: col.Field}, true
		}
	}
	return domain.CellAddress{}, false
}

// ColumnWidths measures every column against its label and display values,
// capped at maxWidth when positive
func ColumnWidths(columns []domain.Column, rows []domain.Row, display func(domain.Row, string) string, maxWidth int) map[string]int {
	widths := make(map[string]int, len(columns))
	for _, col := range columns {
		w := lipgloss.Width(col.Label())
		for _, row := range rows {
			if cw := lipgloss.Width(display(row, col.Field)); cw > w {
				w = cw
			}
		}
		if maxWidth > 0 && w > maxWidth {
			w = maxWidth
		}
		widths[col.Field] = w
	}
	return widths
}
