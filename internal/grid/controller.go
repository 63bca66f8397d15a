// Package grid connects a selection engine to its environment: global
// input listeners, cell pointer events and the clipboard.
package grid

import (
	"context"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"cellgrip/internal/clipboard"
	"cellgrip/internal/domain"
	"cellgrip/internal/eventbus"
	"cellgrip/internal/export"
	"cellgrip/internal/host"
	"cellgrip/internal/selection"
)

// Defaults for Options
const (
	DefaultConfirmDuration = 2000 * time.Millisecond
	DefaultWriteTimeout    = 5 * time.Second
)

// CopyKey is the key that copies the selection when pressed with the modifier
const CopyKey = "c"

// Region reports whether a screen position lies inside the grid
type Region interface {
	Contains(x, y int) bool
}

// RegionFunc adapts a function to Region
type RegionFunc func(x, y int) bool

func (f RegionFunc) Contains(x, y int) bool { return f(x, y) }

// Options configures a Controller
type Options struct {
	ConfirmDuration time.Duration // how long the copy confirmation stays
	WriteTimeout    time.Duration // upper bound for a clipboard write
}

// Controller routes input to the selection engine and runs clipboard I/O
type Controller struct {
	engine *selection.Engine
	data   selection.DataSource
	clip   clipboard.Writer
	bus    eventbus.Publisher
	region Region
	opts   Options

	host *host.Host
	ids  []host.ListenerID
}

// NewController creates a controller; it starts detached
func NewController(engine *selection.Engine, data selection.DataSource, clip clipboard.Writer, bus eventbus.Publisher, region Region, opts Options) *Controller {
	if opts.ConfirmDuration <= 0 {
		opts.ConfirmDuration = DefaultConfirmDuration
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = DefaultWriteTimeout
	}
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	return &Controller{
		engine: engine,
		data:   data,
		clip:   clip,
		bus:    bus,
		region: region,
		opts:   opts,
	}
}

// Attach registers the click, pointer-up and key-down listeners on h.
// Attaching to the host already in use does nothing; attaching to another
// host detaches from the current one first.
func (c *Controller) Attach(h *host.Host) {
	if h == nil || c.host == h {
		return
	}
	c.Detach()

	c.host = h
	c.ids = []host.ListenerID{
		h.AddListener(host.KindClick, c.handleClick),
		h.AddListener(host.KindPointerUp, c.handlePointerUp),
		h.AddListener(host.KindKeyDown, c.handleKeyDown),
	}
}

// Detach removes the listeners added by Attach; safe to call when detached
func (c *Controller) Detach() {
	if c.host == nil {
		return
	}
	for _, id := range c.ids {
		c.host.RemoveListener(id)
	}
	c.host = nil
	c.ids = nil
}

// Attached reports whether the controller is listening on a host
func (c *Controller) Attached() bool {
	return c.host != nil
}

// Engine returns the selection engine
func (c *Controller) Engine() *selection.Engine {
	return c.engine
}

// PointerDown starts a drag on a cell
func (c *Controller) PointerDown(addr domain.CellAddress, modifier bool) {
	c.engine.BeginDrag(addr, modifier)
}

// PointerOver extends an active drag to a cell
func (c *Controller) PointerOver(addr domain.CellAddress) {
	c.engine.UpdateDrag(addr)
}

// SelectAll selects every cell of the table
func (c *Controller) SelectAll() {
	c.engine.SelectAll(len(c.data.Rows()), c.data.Columns())
}

// ClearSelection clears the selection
func (c *Controller) ClearSelection() {
	c.engine.ClearSelection()
}

func (c *Controller) handleClick(ev host.Event) tea.Cmd {
	click, ok := ev.(host.ClickEvent)
	if !ok {
		return nil
	}
	outside := c.region == nil || !c.region.Contains(click.X, click.Y)
	c.engine.ClearOutside(outside, click.Modifier)
	return nil
}

func (c *Controller) handlePointerUp(host.Event) tea.Cmd {
	c.engine.EndDrag()
	return nil
}

func (c *Controller) handleKeyDown(ev host.Event) tea.Cmd {
	key, ok := ev.(host.KeyDownEvent)
	if !ok || !key.Modifier || !strings.EqualFold(key.Key, CopyKey) {
		return nil
	}
	return c.Copy()
}

// Copy exports the selection and writes it to the clipboard in the
// background. It returns nil when nothing is selected.
func (c *Controller) Copy() tea.Cmd {
	res, ok := c.engine.PrepareCopy()
	if !ok {
		return nil
	}
	clip, timeout := c.clip, c.opts.WriteTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return CopyResultMsg{Result: res, Err: clip.WriteText(ctx, res.Text)}
	}
}

// ExportWorkbook writes the selection grid to an xlsx file in the background
func (c *Controller) ExportWorkbook(path string) tea.Cmd {
	res, ok := c.engine.PrepareCopy()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		err := export.WriteWorkbook(path, export.DefaultSheet, res.Grid)
		return WorkbookResultMsg{Path: path, Rows: len(res.Grid), Err: err}
	}
}

// Update handles the messages produced by the controller's commands.
// handled is false for messages it does not own.
func (c *Controller) Update(msg tea.Msg) (cmd tea.Cmd, handled bool) {
	switch msg := msg.(type) {
	case CopyResultMsg:
		if msg.Err != nil {
			c.engine.CopyFailed(msg.Err)
			return nil, true
		}
		token := c.engine.CopySucceeded(msg.Result)
		return tea.Tick(c.opts.ConfirmDuration, func(time.Time) tea.Msg {
			return SummaryRevertMsg{Token: token}
		}), true

	case SummaryRevertMsg:
		c.engine.RevertSummary(msg.Token)
		return nil, true

	case WorkbookResultMsg:
		if msg.Err != nil {
			log.Printf("Failed to export workbook %s: %v", msg.Path, msg.Err)
			return nil, true
		}
		log.Printf("Workbook exported to %s", msg.Path)
		c.bus.Publish(domain.WorkbookExportedEvent{Path: msg.Path, Rows: msg.Rows})
		return nil, true
	}
	return nil, false
}
