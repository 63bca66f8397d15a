package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"cellgrip/internal/domain"
)

// StatusKind selects the style of the status line
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusSuccess
	StatusError
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Title      string
	Layout     Layout
	Columns    []domain.Column
	Rows       []domain.Row
	Display    func(row domain.Row, field string) string
	IsSelected func(addr domain.CellAddress) bool
	Status     string
	StatusKind StatusKind
	HelpModel  help.Model
	Keys       help.KeyMap
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Styles returns the renderer's styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view. Row positions match Layout.
func (r *Renderer) Render(state ViewState) string {
	var b strings.Builder
	l := state.Layout

	title := r.styles.Title.Render(state.Title)
	if total := len(state.Rows); total > l.Shown && l.Shown > 0 {
		title += " " + r.styles.Scroll.Render(fmt.Sprintf("rows %d-%d of %d", l.RowOffset+1, l.RowOffset+l.Shown, total))
	}
	b.WriteString(title)
	b.WriteString("\n")

	// Header
	labels := make([]string, len(l.Columns))
	for i, span := range l.Columns {
		label := span.Field
		if col, ok := domain.FindColumn(state.Columns, span.Field); ok {
			label = col.Label()
		}
		labels[i] = r.styles.Header.Render(Fit(label, span.Width))
	}
	b.WriteString(strings.Join(labels, strings.Repeat(" ", ColumnGap)))
	b.WriteString("\n")
	b.WriteString(r.styles.Separator.Render(strings.Repeat("─", l.Width)))
	b.WriteString("\n")

	// Rows
	for i := 0; i < l.Shown; i++ {
		rowIdx := l.RowOffset + i
		row := state.Rows[rowIdx]
		cells := make([]string, len(l.Columns))
		for j, span := range l.Columns {
			text := Fit(state.Display(row, span.Field), span.Width)
			style := r.styles.Cell
			if state.IsSelected != nil && state.IsSelected(domain.CellAddress{Row: rowIdx, Column: span.Field}) {
				style = r.styles.Selected
			}
			cells[j] = style.Render(text)
		}
		b.WriteString(strings.Join(cells, strings.Repeat(" ", ColumnGap)))
		b.WriteString("\n")
	}
	if len(state.Rows) == 0 {
		b.WriteString(r.styles.Dim.Render("(no rows)"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(r.renderStatus(state))
	b.WriteString("\n")
	if state.Keys != nil {
		b.WriteString(r.styles.Help.Render(state.HelpModel.View(state.Keys)))
	}
	return b.String()
}

func (r *Renderer) renderStatus(state ViewState) string {
	switch state.StatusKind {
	case StatusSuccess:
		return r.styles.StatusSuccess.Render(state.Status)
	case StatusError:
		return r.styles.StatusError.Render(state.Status)
	default:
		return r.styles.Status.Render(state.Status)
	}
}

// Fit truncates s to width cells, ending in an ellipsis when cut, and pads
// it with spaces to exactly width
func Fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) > width {
		runes := []rune(s)
		for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
			runes = runes[:len(runes)-1]
		}
		s = string(runes) + "…"
	}
	if pad := width - lipgloss.Width(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}
