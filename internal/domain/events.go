package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSelectionChanged EventType = "SelectionChanged"
	EventCopyCompleted    EventType = "CopyCompleted"
	EventCopyFailed       EventType = "CopyFailed"
	EventWorkbookExported EventType = "WorkbookExported"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SelectionChangedEvent carries the materialized selection after a change.
// Cells is empty when the selection was cleared.
type SelectionChangedEvent struct {
	Cells []SelectedCell
}

func (e SelectionChangedEvent) Type() EventType { return EventSelectionChanged }

// CopyCompletedEvent is emitted after the selection was written to the clipboard
type CopyCompletedEvent struct {
	Text string
	Grid [][]string
}

func (e CopyCompletedEvent) Type() EventType { return EventCopyCompleted }

// CopyFailedEvent is emitted when the clipboard write failed
type CopyFailedEvent struct {
	Err error
}

func (e CopyFailedEvent) Type() EventType { return EventCopyFailed }

// WorkbookExportedEvent is emitted when the selection was saved as a workbook
type WorkbookExportedEvent struct {
	Path string
	Rows int
}

func (e WorkbookExportedEvent) Type() EventType { return EventWorkbookExported }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path   string
	Locale string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
