// Package clipboard writes text to the system clipboard.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

// Backend names accepted by New
const (
	BackendAuto   = "auto"
	BackendSystem = "system"
	BackendOSC52  = "osc52"
	BackendMemory = "memory"
)

// ErrUnsupported is returned when no clipboard is available in this environment
var ErrUnsupported = errors.New("clipboard not supported")

// Writer writes text to a clipboard
type Writer interface {
	WriteText(ctx context.Context, text string) error
}

// New returns the writer for a backend name. out receives OSC 52 sequences
// and is usually the terminal.
func New(backend string, out io.Writer) (Writer, error) {
	switch strings.ToLower(backend) {
	case "", BackendAuto:
		return Fallback{System{}, NewOSC52(out)}, nil
	case BackendSystem:
		return System{}, nil
	case BackendOSC52:
		return NewOSC52(out), nil
	case BackendMemory:
		return &Memory{}, nil
	default:
		return nil, fmt.Errorf("unknown clipboard backend %q", backend)
	}
}

// System uses the platform clipboard utilities
type System struct{}

func (System) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to write system clipboard: %w", err)
	}
	return nil
}

// OSC52 asks the terminal to set its clipboard, which also works over SSH
type OSC52 struct {
	out  io.Writer
	tmux bool
}

// NewOSC52 creates an OSC 52 writer, detecting tmux and screen from the environment
func NewOSC52(out io.Writer) *OSC52 {
	term := os.Getenv("TERM")
	return &OSC52{
		out:  out,
		tmux: os.Getenv("TMUX") != "" || strings.HasPrefix(term, "tmux") || strings.HasPrefix(term, "screen"),
	}
}

func (w *OSC52) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.out == nil {
		return ErrUnsupported
	}
	seq := osc52.New(text)
	if w.tmux {
		seq = seq.Tmux()
	}
	if _, err := seq.WriteTo(w.out); err != nil {
		return fmt.Errorf("failed to write osc52 sequence: %w", err)
	}
	return nil
}

// Memory keeps the clipboard in-process
type Memory struct {
	mu   sync.Mutex
	text string
	n    int
	Err  error // returned by WriteText when set
}

func (m *Memory) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.text = text
	m.n++
	return nil
}

// Text returns the last written text
func (m *Memory) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}

// Writes returns how many successful writes happened
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.n
}

// Fallback tries each writer in order until one succeeds
type Fallback []Writer

func (f Fallback) WriteText(ctx context.Context, text string) error {
	var errs []error
	for _, w := range f {
		err := w.WriteText(ctx, text)
		if err == nil {
			return nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return ErrUnsupported
	}
	return errors.Join(errs...)
}
