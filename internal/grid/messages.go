package grid

import (
	"cellgrip/internal/export"
	"cellgrip/internal/selection"
)

// CopyResultMsg reports the outcome of a clipboard write
type CopyResultMsg struct {
	Result export.Result
	Err    error
}

// SummaryRevertMsg is sent when the copy confirmation should disappear
type SummaryRevertMsg struct {
	Token selection.RevertToken
}

// WorkbookResultMsg reports the outcome of a workbook export
type WorkbookResultMsg struct {
	Path string
	Rows int
	Err  error
}
