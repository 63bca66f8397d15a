package selection

import (
	"cellgrip/internal/domain"
)

// DataSource gives the engine read-only access to the caller's table
type DataSource interface {
	Columns() []domain.Column
	Rows() []domain.Row
}

// Options tunes engine behavior
type Options struct {
	// LiveUpdates publishes a selection change on every drag update
	// instead of only when the drag ends.
	LiveUpdates bool
}

// State holds selection state
type State struct {
	Cells      *CellSet
	Drag       *DragSession // nil unless a drag is active
	Summary    string
	Generation uint64 // bumped on every selection mutation
	Copies     uint64 // bumped on every successful copy
}

// DragSession tracks an active pointer drag
type DragSession struct {
	Anchor domain.CellAddress
	Cursor domain.CellAddress
}

// RevertToken restores the summary replaced by a copy confirmation.
// Only the token of the latest copy can revert.
type RevertToken struct {
	Summary    string
	Generation uint64
	Copy       uint64
}
