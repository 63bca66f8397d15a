// Package export turns a cell selection into spreadsheet-compatible text.
//
// The text format is tab-separated values: cells joined by a horizontal
// tab, rows joined by a newline, no trailing separators and no quoting.
// Values containing tabs or newlines are written verbatim.
package export

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"cellgrip/internal/domain"
)

const (
	CellSeparator = "\t"
	RowSeparator  = "\n"
)

// Result is an exported selection
type Result struct {
	Text string
	Grid [][]string
}

// Empty reports whether the export holds no cells
func (r Result) Empty() bool {
	return len(r.Grid) == 0
}

// Exporter serializes selections using per-column formatters
type Exporter struct{}

// New creates a new exporter
func New() *Exporter {
	return &Exporter{}
}

// ExportSelection builds the bounding grid of the selected rows and columns.
// Rows are ordered numerically, columns by their position in columns.
// Positions inside the box that are not themselves selected stay empty.
func (e *Exporter) ExportSelection(cells []domain.CellAddress, columns []domain.Column, rows []domain.Row) Result {
	if len(cells) == 0 {
		return Result{Grid: [][]string{}}
	}

	selected := make(map[domain.CellAddress]struct{}, len(cells))
	rowSet := make(map[int]struct{})
	colSet := make(map[string]struct{})
	for _, addr := range cells {
		selected[addr] = struct{}{}
		rowSet[addr.Row] = struct{}{}
		colSet[addr.Column] = struct{}{}
	}

	sortedRows := make([]int, 0, len(rowSet))
	for r := range rowSet {
		sortedRows = append(sortedRows, r)
	}
	sort.Ints(sortedRows)

	sortedCols := make([]string, 0, len(colSet))
	for c := range colSet {
		sortedCols = append(sortedCols, c)
	}
	SortFields(sortedCols, columns)

	grid := make([][]string, 0, len(sortedRows))
	for _, r := range sortedRows {
		line := make([]string, 0, len(sortedCols))
		for _, field := range sortedCols {
			if _, ok := selected[domain.CellAddress{Row: r, Column: field}]; !ok || r < 0 || r >= len(rows) {
				line = append(line, "")
				continue
			}
			line = append(line, Stringify(plainValue(rows[r], field, columns)))
		}
		grid = append(grid, line)
	}

	return Result{Text: JoinGrid(grid), Grid: grid}
}

// JoinGrid renders a grid as tab-separated text
func JoinGrid(grid [][]string) string {
	lines := make([]string, len(grid))
	for i, row := range grid {
		lines[i] = strings.Join(row, CellSeparator)
	}
	return strings.Join(lines, RowSeparator)
}

// FormatDisplayValue returns the on-screen value of field in row
func (e *Exporter) FormatDisplayValue(row domain.Row, field string, columns []domain.Column) any {
	col, ok := domain.FindColumn(columns, field)
	if ok && col.Formatter != nil {
		return col.Formatter(row[field], row, false)
	}
	return row[field]
}

func plainValue(row domain.Row, field string, columns []domain.Column) any {
	value := row[field]
	if col, ok := domain.FindColumn(columns, field); ok && col.Formatter != nil {
		return col.Formatter(value, row, true)
	}
	return value
}

// SortFields orders fields by their position in columns.
// Fields missing from columns go last, ordered by name.
func SortFields(fields []string, columns []domain.Column) {
	sort.SliceStable(fields, func(i, j int) bool {
		ri, rj := domain.ColumnIndex(columns, fields[i]), domain.ColumnIndex(columns, fields[j])
		switch {
		case ri >= 0 && rj >= 0:
			return ri < rj
		case ri >= 0:
			return true
		case rj >= 0:
			return false
		default:
			return fields[i] < fields[j]
		}
	})
}

// Stringify converts a cell value to its text form; nil becomes ""
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	default:
		return fmt.Sprint(v)
	}
}
