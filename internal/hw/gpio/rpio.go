package gpio

import (
	"fmt"

	"github.com/cjeanneret/WebcamShot/internal/debug"
	"github.com/stianeikeland/go-rpio/v4"
)

// RPiDriver is the real implementation for Raspberry Pi using go-rpio.
type RPiDriver struct {
	pins map[int]rpio.Pin
}

// NewRPiRealDriver creates a real GPIO driver for Raspberry Pi.
// Requires running on a Raspberry Pi with access to /dev/gpiomem or as root.
func NewRPiRealDriver() (*RPiDriver, error) {
	debug.Info("Initializing real GPIO driver (go-rpio)")

	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("failed to open GPIO: %w (are you running on a Raspberry Pi?)", err)
	}

	debug.Verbose("GPIO memory mapped successfully")

	return &RPiDriver{
		pins: make(map[int]rpio.Pin),
	}, nil
}

func (r *RPiDriver) SetupInput(pin int, pull Pull) error {
	debug.GPIO("SetupInput", pin, pull)

	p := rpio.Pin(pin)
	p.Input()
	switch pull {
	case PullOff:
		p.PullOff()
	case PullUp:
		p.PullUp()
	case PullDown:
		p.PullDown()
	default:
		return fmt.Errorf("unknown pull mode: %d", pull)
	}
	r.pins[pin] = p
	return nil
}

func (r *RPiDriver) ReadPin(pin int) (Level, error) {
	p, ok := r.pins[pin]
	if !ok {
		return Low, fmt.Errorf("pin %d not set up as input", pin)
	}

	state := p.Read()
	debug.GPIO("ReadPin", pin, state)
	if state == rpio.High {
		return High, nil
	}
	return Low, nil
}

func (r *RPiDriver) Close() error {
	debug.Trace("GPIO Close (real driver)")

	// Release pull resistors before unmapping
	for pin, p := range r.pins {
		debug.Verbose("Releasing pull on pin %d", pin)
		p.PullOff()
	}

	return rpio.Close()
}
