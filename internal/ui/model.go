package ui

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"cellgrip/internal/clipboard"
	"cellgrip/internal/config"
	"cellgrip/internal/domain"
	"cellgrip/internal/eventbus"
	"cellgrip/internal/export"
	"cellgrip/internal/grid"
	"cellgrip/internal/host"
	"cellgrip/internal/selection"
	"cellgrip/internal/source"
	"cellgrip/internal/ui/views"
)

const statusDuration = 3 * time.Second

// Options holds what the model needs besides config
type Options struct {
	Clipboard  clipboard.Writer
	SourcePath string // input file; workbook exports are written next to it
}

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	table  *domain.Table

	host       *host.Host
	controller *grid.Controller
	renderer   *views.Renderer
	keys       keyMap
	help       help.Model

	width     int
	height    int
	rowOffset int
	colOffset int
	widths    map[string]int
	layout    views.Layout
	hover     *domain.CellAddress // cell under the pointer during a drag

	status      string
	statusKind  views.StatusKind
	inPagerMode bool
	exportPath  string

	// Program reference for terminal management
	program *tea.Program
	pager   *PagerOps
}

// NewModel creates a new UI model
func NewModel(bus eventbus.EventBus, cfg *config.Config, table *domain.Table, opts Options) *Model {
	m := &Model{
		bus:        bus,
		config:     cfg,
		table:      table,
		host:       host.New(),
		renderer:   views.NewRenderer(),
		keys:       defaultKeyMap(),
		help:       help.New(),
		exportPath: exportPathFor(opts.SourcePath, table.Name),
		pager:      NewPagerOps(nil),
	}

	if opts.Clipboard == nil {
		opts.Clipboard = &clipboard.Memory{}
	}

	data := source.TableSource{Table: table}
	engine := selection.NewEngine(data, bus, selection.NewSummarizer(cfg.Locale), selection.Options{
		LiveUpdates: cfg.Selection.LiveUpdates,
	})
	m.controller = grid.NewController(engine, data, opts.Clipboard, bus,
		grid.RegionFunc(func(x, y int) bool { return m.layout.Contains(x, y) }),
		grid.Options{ConfirmDuration: time.Duration(cfg.Clipboard.ConfirmMS) * time.Millisecond},
	)
	m.controller.Attach(m.host)

	m.widths = views.ColumnWidths(table.Columns, table.Rows, m.display, cfg.UI.MaxColumnWidth)
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager = NewPagerOps(p)
}

// Controller returns the grid controller
func (m *Model) Controller() *grid.Controller {
	return m.controller
}

// Close detaches the global listeners
func (m *Model) Close() {
	m.controller.Detach()
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.relayout()
		return m, nil

	case tea.KeyMsg:
		if m.inPagerMode {
			return m, nil
		}
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		if m.inPagerMode {
			return m, nil
		}
		return m, m.handleMouse(msg)

	case grid.WorkbookResultMsg:
		if msg.Err != nil {
			m.setStatus(fmt.Sprintf("Export failed: %v", msg.Err), views.StatusError)
		} else {
			m.setStatus(fmt.Sprintf("Saved %d rows to %s", msg.Rows, msg.Path), views.StatusSuccess)
		}
		cmd, _ := m.controller.Update(msg)
		return m, tea.Batch(cmd, clearStatusAfter(statusDuration))

	case EventMsg:
		m.handleEvent(msg.Event)
		return m, nil

	case previewPagerMsg:
		if msg.err != nil {
			log.Printf("Preview pager failed: %v", msg.err)
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	case clearStatusMsg:
		m.status = ""
		return m, nil
	}

	if cmd, handled := m.controller.Update(msg); handled {
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	// Every key press is a global key event; the copy shortcut lives there
	cmds := []tea.Cmd{m.host.Dispatch(keyDownEvent(msg))}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Close()
		return tea.Quit
	case key.Matches(msg, m.keys.SelectAll):
		m.controller.SelectAll()
	case key.Matches(msg, m.keys.Clear):
		m.controller.ClearSelection()
	case key.Matches(msg, m.keys.Export):
		cmds = append(cmds, m.controller.ExportWorkbook(m.exportPath))
	case key.Matches(msg, m.keys.Preview):
		cmds = append(cmds, m.previewPager())
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.relayout()
	case key.Matches(msg, m.keys.Up):
		m.scrollRows(-1)
	case key.Matches(msg, m.keys.Down):
		m.scrollRows(1)
	case key.Matches(msg, m.keys.PageUp):
		m.scrollRows(-m.visibleRows())
	case key.Matches(msg, m.keys.PageDown):
		m.scrollRows(m.visibleRows())
	case key.Matches(msg, m.keys.Left):
		m.scrollColumns(-1)
	case key.Matches(msg, m.keys.Right):
		m.scrollColumns(1)
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.scrollRows(-1)
			return nil
		case tea.MouseButtonWheelDown:
			m.scrollRows(1)
			return nil
		case tea.MouseButtonLeft:
			modifier := m.modifierHeld(msg)
			m.hover = nil
			if addr, ok := m.layout.CellAt(msg.X, msg.Y); ok {
				m.hover = &addr
				m.controller.PointerDown(addr, modifier)
			}
			return m.host.Dispatch(host.ClickEvent{X: msg.X, Y: msg.Y, Modifier: modifier})
		}

	case tea.MouseActionMotion:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		// Motion is reported per character; only entering another cell counts
		addr, ok := m.layout.CellAt(msg.X, msg.Y)
		if !ok || (m.hover != nil && *m.hover == addr) {
			return nil
		}
		m.hover = &addr
		m.controller.PointerOver(addr)

	case tea.MouseActionRelease:
		m.hover = nil
		return m.host.Dispatch(host.PointerUpEvent{X: msg.X, Y: msg.Y})
	}
	return nil
}

func (m *Model) modifierHeld(msg tea.MouseMsg) bool {
	switch m.config.Selection.Modifier {
	case config.ModifierAlt:
		return msg.Alt
	case config.ModifierShift:
		return msg.Shift
	default:
		return msg.Ctrl
	}
}

func (m *Model) handleEvent(event eventbus.DomainEvent) {
	switch e := event.(type) {
	case eventbus.CopyCompletedEvent:
		log.Printf("Copied %d rows to clipboard", len(e.Grid))
	case eventbus.CopyFailedEvent:
		log.Printf("Copy failed: %v", e.Err)
	case eventbus.SelectionChangedEvent:
		log.Printf("Selection changed: %d cells", len(e.Cells))
	}
}

// previewPager returns a command that shows the copy payload using ov pager
func (m *Model) previewPager() tea.Cmd {
	res, ok := m.controller.Engine().PrepareCopy()
	if !ok || m.program == nil {
		return nil
	}
	content := previewContent(res.Text)
	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := m.pager.ShowInPager(content)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return previewPagerMsg{err: err}
	}
}

func (m *Model) setStatus(status string, kind views.StatusKind) {
	m.status = status
	m.statusKind = kind
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

// display renders a cell for the grid
func (m *Model) display(row domain.Row, field string) string {
	s := export.Stringify(m.controller.Engine().FormatDisplayValue(row, field))
	return strings.NewReplacer("\n", " ", "\r", " ", "\t", " ").Replace(s)
}

// chromeHeight is the number of screen rows that are not data rows
func (m *Model) chromeHeight() int {
	helpLines := strings.Count(m.help.View(m.keys), "\n") + 1
	return views.FirstRowY + 2 + helpLines // blank + status, then help
}

func (m *Model) visibleRows() int {
	rows := m.height - m.chromeHeight()
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m *Model) scrollRows(delta int) {
	m.rowOffset += delta
	if last := len(m.table.Rows) - m.visibleRows(); m.rowOffset > last {
		m.rowOffset = last
	}
	if m.rowOffset < 0 {
		m.rowOffset = 0
	}
	m.relayout()
}

func (m *Model) scrollColumns(delta int) {
	m.colOffset += delta
	if m.colOffset > len(m.table.Columns)-1 {
		m.colOffset = len(m.table.Columns) - 1
	}
	if m.colOffset < 0 {
		m.colOffset = 0
	}
	m.relayout()
}

func (m *Model) relayout() {
	m.layout = views.NewLayout(m.table.Columns, m.widths, m.colOffset, m.rowOffset,
		len(m.table.Rows), m.width, m.visibleRows())
}

// View renders the model
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	status, kind := m.status, m.statusKind
	if status == "" {
		status, kind = m.controller.Engine().Summary(), views.StatusInfo
	}

	return m.renderer.Render(views.ViewState{
		Title:      m.table.Name,
		Layout:     m.layout,
		Columns:    m.table.Columns,
		Rows:       m.table.Rows,
		Display:    m.display,
		IsSelected: m.controller.Engine().IsSelected,
		Status:     status,
		StatusKind: kind,
		HelpModel:  m.help,
		Keys:       m.keys,
	})
}

func exportPathFor(sourcePath, name string) string {
	dir := "."
	if sourcePath != "" {
		dir = filepath.Dir(sourcePath)
	}
	if name == "" {
		name = "cellgrip"
	}
	return filepath.Join(dir, name+"-selection.xlsx")
}
