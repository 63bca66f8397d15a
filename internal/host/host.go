// Package host is the process-wide listener registry for global input
// events: clicks anywhere, pointer releases anywhere and key presses.
package host

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Kind identifies a global event
type Kind int

const (
	KindClick Kind = iota
	KindPointerUp
	KindKeyDown
)

func (k Kind) String() string {
	switch k {
	case KindClick:
		return "click"
	case KindPointerUp:
		return "pointerup"
	case KindKeyDown:
		return "keydown"
	default:
		return "unknown"
	}
}

// Event is a global input event
type Event interface {
	Kind() Kind
}

// ClickEvent is a pointer press at screen position X, Y
type ClickEvent struct {
	X, Y     int
	Modifier bool
}

func (ClickEvent) Kind() Kind { return KindClick }

// PointerUpEvent is a pointer release anywhere on screen
type PointerUpEvent struct {
	X, Y int
}

func (PointerUpEvent) Kind() Kind { return KindPointerUp }

// KeyDownEvent is a key press. Key is the bare key ("c"), Modifier
// reports whether the copy/select modifier was held.
type KeyDownEvent struct {
	Key      string
	Modifier bool
}

func (KeyDownEvent) Kind() Kind { return KindKeyDown }

// Listener handles a global event and may return a command to run
type Listener func(Event) tea.Cmd

// ListenerID identifies a registered listener
type ListenerID uint64

type registration struct {
	id       ListenerID
	listener Listener
}

// Host dispatches global events to registered listeners in registration order
type Host struct {
	mu        sync.Mutex
	listeners map[Kind][]registration
	nextID    ListenerID
}

// New creates an empty host
func New() *Host {
	return &Host{listeners: make(map[Kind][]registration)}
}

// AddListener registers l for kind
func (h *Host) AddListener(kind Kind, l Listener) ListenerID {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	h.listeners[kind] = append(h.listeners[kind], registration{id: h.nextID, listener: l})
	return h.nextID
}

// RemoveListener unregisters id; it reports whether id was registered
func (h *Host) RemoveListener(id ListenerID) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	for kind, regs := range h.listeners {
		for i, r := range regs {
			if r.id == id {
				h.listeners[kind] = append(regs[:i:i], regs[i+1:]...)
				return true
			}
		}
	}
	return false
}

// Count returns the number of listeners for kind
func (h *Host) Count(kind Kind) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.listeners[kind])
}

// Dispatch delivers ev to every listener of its kind and batches their commands
func (h *Host) Dispatch(ev Event) tea.Cmd {
	h.mu.Lock()
	regs := make([]registration, len(h.listeners[ev.Kind()]))
	copy(regs, h.listeners[ev.Kind()])
	h.mu.Unlock()

	var cmds []tea.Cmd
	for _, r := range regs {
		if cmd := r.listener(ev); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	default:
		return tea.Batch(cmds...)
	}
}
