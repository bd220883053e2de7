package display

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/cjeanneret/WebcamShot/internal/debug"
	"github.com/cjeanneret/WebcamShot/internal/hw/camera"
)

// Headless is a Display without a window. Frames are counted, not shown,
// and keys are read byte by byte from an input stream (usually stdin):
// ESC (27) and SPACE (32) behave as in the window.
type Headless struct {
	keys    chan Key
	done    chan struct{}
	stopped chan struct{}
	shown   int
	closed  bool
}

// NewHeadless starts reading keys from r.
func NewHeadless(r io.Reader) *Headless {
	h := &Headless{
		keys:    make(chan Key, 16),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go h.readKeys(r)
	debug.Info("Using HEADLESS display (ESC + Enter to quit, SPACE + Enter to capture)")
	return h
}

// readKeys exits on read error or, after Close, at the next key. A read
// already blocked on r stays blocked until input arrives.
func (h *Headless) readKeys(r io.Reader) {
	defer close(h.stopped)
	br := bufio.NewReader(r)
	for {
		b, err := br.ReadByte()
		if err != nil {
			debug.Verbose("Headless display: input closed: %v", err)
			return
		}
		if b == '\n' || b == '\r' {
			continue
		}
		select {
		case h.keys <- NormalizeKey(int(b)):
		case <-h.done:
			return
		}
	}
}

func (h *Headless) Show(f camera.Frame) error {
	if h.closed {
		return fmt.Errorf("headless display closed")
	}
	h.shown++
	debug.Trace("Headless display: frame %d", h.shown)
	return nil
}

func (h *Headless) PollKey(timeout time.Duration) Key {
	select {
	case k := <-h.keys:
		return k
	case <-time.After(timeout):
		return KeyNone
	}
}

// Shown returns the number of frames rendered.
func (h *Headless) Shown() int {
	return h.shown
}

func (h *Headless) Close() error {
	if h.closed {
		return fmt.Errorf("headless display already closed")
	}
	h.closed = true
	close(h.done)
	debug.Trace("Headless display closed")
	return nil
}
