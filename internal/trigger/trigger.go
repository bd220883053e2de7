// Package trigger provides burst and quit requests that do not come from
// the preview window's keyboard.
package trigger

import (
	"fmt"

	"github.com/cjeanneret/WebcamShot/internal/debug"
	"github.com/cjeanneret/WebcamShot/internal/hw/gpio"
)

// Action is what the capture loop is asked to do.
type Action int

const (
	None Action = iota
	Burst
	Quit
)

func (a Action) String() string {
	switch a {
	case None:
		return "none"
	case Burst:
		return "burst"
	case Quit:
		return "quit"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Source is polled once per preview iteration and must not block.
type Source interface {
	Poll() Action
}

// Button requests a burst on the falling edge of an active-low push
// button wired between a GPIO pin and ground.
type Button struct {
	gpio gpio.Driver
	pin  int
	last gpio.Level
}

// NewButton configures pin as a pulled-up input.
func NewButton(g gpio.Driver, pin int) (*Button, error) {
	if err := g.SetupInput(pin, gpio.PullUp); err != nil {
		return nil, fmt.Errorf("setup button pin %d: %w", pin, err)
	}
	debug.Verbose("Button trigger on pin %d", pin)
	return &Button{gpio: g, pin: pin, last: gpio.High}, nil
}

func (b *Button) Poll() Action {
	level, err := b.gpio.ReadPin(b.pin)
	if err != nil {
		debug.Error(fmt.Errorf("read button pin %d: %w", b.pin, err))
		return None
	}
	pressed := b.last == gpio.High && level == gpio.Low
	b.last = level
	if pressed {
		debug.Live("Button pressed on pin %d", b.pin)
		return Burst
	}
	return None
}

// Request is a Source fed from other goroutines (e.g. HTTP handlers).
// At most one request is pending at a time.
type Request struct {
	ch chan Action
}

func NewRequest() *Request {
	return &Request{ch: make(chan Action, 1)}
}

// Submit queues a without blocking. It returns false when a request is
// already pending.
func (r *Request) Submit(a Action) bool {
	if a == None {
		return false
	}
	select {
	case r.ch <- a:
		debug.Live("Request queued: %s", a)
		return true
	default:
		return false
	}
}

func (r *Request) Poll() Action {
	select {
	case a := <-r.ch:
		return a
	default:
		return None
	}
}
