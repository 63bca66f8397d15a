package selection

import (
	"log"

	"cellgrip/internal/domain"
	"cellgrip/internal/eventbus"
	"cellgrip/internal/export"
)

// Engine owns the cell selection of one grid.
// It is not safe for concurrent use; callers drive it from a single loop.
type Engine struct {
	state    *State
	data     DataSource
	bus      eventbus.Publisher
	exporter *export.Exporter
	summary  *Summarizer
	opts     Options
}

// NewEngine creates a new selection engine over data
func NewEngine(data DataSource, bus eventbus.Publisher, summary *Summarizer, opts Options) *Engine {
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	if summary == nil {
		summary = NewSummarizer("en")
	}
	return &Engine{
		state:    &State{Cells: NewCellSet()},
		data:     data,
		bus:      bus,
		exporter: export.New(),
		summary:  summary,
		opts:     opts,
	}
}

// BeginDrag starts a drag at addr. Without additive the previous selection
// is dropped; with it, addr is toggled and everything else is kept.
// Additive only affects the press: once the pointer enters another cell
// UpdateDrag replaces the selection with the rectangle either way.
func (e *Engine) BeginDrag(addr domain.CellAddress, additive bool) {
	if !additive {
		e.state.Cells.Clear()
	}

	e.state.Drag = &DragSession{Anchor: addr, Cursor: addr}

	if additive && e.state.Cells.Has(addr) {
		e.state.Cells.Remove(addr)
	} else {
		e.state.Cells.Add(addr)
	}

	e.changed()
	e.publish()
}

// UpdateDrag moves the drag cursor to addr and replaces the selection with
// the rectangle between anchor and cursor
func (e *Engine) UpdateDrag(addr domain.CellAddress) {
	drag := e.state.Drag
	if drag == nil {
		return
	}
	drag.Cursor = addr

	e.state.Cells.Clear()
	for _, a := range rectangle(drag.Anchor, drag.Cursor, e.data.Columns()) {
		e.state.Cells.Add(a)
	}

	e.changed()
	if e.opts.LiveUpdates {
		e.publish()
	}
}

// EndDrag finishes the active drag, if any
func (e *Engine) EndDrag() {
	if e.state.Drag == nil {
		return
	}
	e.state.Drag = nil
	e.publish()
}

// Dragging reports whether a drag is active
func (e *Engine) Dragging() bool {
	return e.state.Drag != nil
}

// IsSelected checks if a cell is selected
func (e *Engine) IsSelected(addr domain.CellAddress) bool {
	return e.state.Cells.Has(addr)
}

// ClearOutside handles a click that landed outside the grid.
// additive clicks keep the selection.
func (e *Engine) ClearOutside(outside, additive bool) {
	if !outside || additive || e.state.Cells.Len() == 0 {
		return
	}
	e.ClearSelection()
}

// SelectAll selects every cell of rowCount rows and columns
func (e *Engine) SelectAll(rowCount int, columns []domain.Column) {
	e.state.Cells.Clear()
	for r := 0; r < rowCount; r++ {
		for _, col := range columns {
			e.state.Cells.Add(domain.CellAddress{Row: r, Column: col.Field})
		}
	}

	e.changed()
	e.publish()
}

// ClearSelection clears all selections
func (e *Engine) ClearSelection() {
	e.state.Cells.Clear()
	e.changed()
	e.bus.Publish(domain.SelectionChangedEvent{Cells: []domain.SelectedCell{}})
}

// Selected returns a copy of the selected addresses
func (e *Engine) Selected() []domain.CellAddress {
	return e.state.Cells.Addresses(e.data.Columns())
}

// Len returns the number of selected cells
func (e *Engine) Len() int {
	return e.state.Cells.Len()
}

// HasSelection returns true if anything is selected
func (e *Engine) HasSelection() bool {
	return e.state.Cells.Len() > 0
}

// Summary returns the status text for the selection
func (e *Engine) Summary() string {
	return e.state.Summary
}

// Materialize resolves the selection against the current rows.
// Addresses whose row no longer exists are skipped.
func (e *Engine) Materialize() []domain.SelectedCell {
	rows := e.data.Rows()
	addrs := e.state.Cells.Addresses(e.data.Columns())

	out := make([]domain.SelectedCell, 0, len(addrs))
	for _, a := range addrs {
		if a.Row < 0 || a.Row >= len(rows) || rows[a.Row] == nil {
			continue
		}
		record := rows[a.Row]
		out = append(out, domain.SelectedCell{
			Row:    a.Row,
			Column: a.Column,
			Value:  record[a.Column],
			Record: record,
		})
	}
	return out
}

// PrepareCopy exports the selection for the clipboard.
// ok is false when nothing is selected and nothing must be written.
func (e *Engine) PrepareCopy() (res export.Result, ok bool) {
	if e.state.Cells.Len() == 0 {
		return export.Result{}, false
	}
	res = e.exporter.ExportSelection(e.Selected(), e.data.Columns(), e.data.Rows())
	return res, true
}

// CopySucceeded shows the copy confirmation and announces the copied text.
// The returned token restores the selection summary and supersedes the
// tokens of earlier copies.
func (e *Engine) CopySucceeded(res export.Result) RevertToken {
	e.state.Copies++
	token := RevertToken{
		Summary:    e.summary.Count(e.state.Cells.Len()),
		Generation: e.state.Generation,
		Copy:       e.state.Copies,
	}
	e.state.Summary = e.summary.Copied()
	e.bus.Publish(domain.CopyCompletedEvent{Text: res.Text, Grid: res.Grid})
	return token
}

// CopyFailed reports a failed clipboard write in the summary
func (e *Engine) CopyFailed(err error) {
	log.Printf("Error copying selection: %v", err)
	e.state.Summary = e.summary.CopyFailed()
	e.bus.Publish(domain.CopyFailedEvent{Err: err})
}

// RevertSummary restores the summary saved in token unless the selection
// changed or another copy happened in the meantime
func (e *Engine) RevertSummary(token RevertToken) bool {
	if token.Generation != e.state.Generation || token.Copy != e.state.Copies {
		return false
	}
	e.state.Summary = token.Summary
	return true
}

// FormatDisplayValue returns the on-screen value of a cell
func (e *Engine) FormatDisplayValue(row domain.Row, field string) any {
	return e.exporter.FormatDisplayValue(row, field, e.data.Columns())
}

func (e *Engine) changed() {
	e.state.Generation++
	e.state.Summary = e.summary.Count(e.state.Cells.Len())
}

func (e *Engine) publish() {
	e.bus.Publish(domain.SelectionChangedEvent{Cells: e.Materialize()})
}

// rectangle returns every address between a and b, inclusive. Columns are
// spanned by position in columns; if either column is unknown, only the two
// endpoint columns are used.
func rectangle(a, b domain.CellAddress, columns []domain.Column) []domain.CellAddress {
	top, bottom := a.Row, b.Row
	if top > bottom {
		top, bottom = bottom, top
	}

	var fields []string
	left, right := domain.ColumnIndex(columns, a.Column), domain.ColumnIndex(columns, b.Column)
	if left < 0 || right < 0 {
		fields = []string{a.Column}
		if b.Column != a.Column {
			fields = append(fields, b.Column)
		}
	} else {
		if left > right {
			left, right = right, left
		}
		for i := left; i <= right; i++ {
			fields = append(fields, columns[i].Field)
		}
	}

	out := make([]domain.CellAddress, 0, (bottom-top+1)*len(fields))
	for r := top; r <= bottom; r++ {
		for _, f := range fields {
			out = append(out, domain.CellAddress{Row: r, Column: f})
		}
	}
	return out
}
