package domain

// CellAddress identifies one grid position
type CellAddress struct {
	Row    int
	Column string // column field identifier
}

// Formatter renders a cell value. plain is true when the value is being
// flattened for export rather than shown on screen.
type Formatter func(value any, row Row, plain bool) any

// Column describes one grid column; its position in a column list is its index
type Column struct {
	Field     string
	Title     string
	Type      string // formatter type name, "" for raw values
	Formatter Formatter
}

// Row is a single data record keyed by column field
type Row map[string]any

// Table holds the columns and rows shown in the grid
type Table struct {
	Name    string
	Columns []Column
	Rows    []Row
}

// SelectedCell is a selected address resolved against live row data
type SelectedCell struct {
	Row    int
	Column string
	Value  any
	Record Row
}

// ColumnIndex returns the position of field in columns, or -1
func ColumnIndex(columns []Column, field string) int {
	for i, col := range columns {
		if col.Field == field {
			return i
		}
	}
	return -1
}

// FindColumn returns the column descriptor for field
func FindColumn(columns []Column, field string) (Column, bool) {
	if i := ColumnIndex(columns, field); i >= 0 {
		return columns[i], true
	}
	return Column{}, false
}

// Label returns the header text for a column
func (c Column) Label() string {
	if c.Title != "" {
		return c.Title
	}
	return c.Field
}
