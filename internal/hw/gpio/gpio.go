package gpio

import (
	"sync"

	"github.com/cjeanneret/WebcamShot/internal/debug"
)

// Level represents the logical state of a GPIO pin.
type Level bool

const (
	Low  Level = false
	High Level = true
)

// Pull selects the internal resistor of an input pin.
type Pull int

const (
	PullOff Pull = iota
	PullUp
	PullDown
)

// Driver defines the abstract interface for reading GPIO inputs.
// This allows plugging in a real Raspberry Pi implementation
// or a mock for development on PC.
type Driver interface {
	SetupInput(pin int, pull Pull) error
	ReadPin(pin int) (Level, error)
	Close() error
}

// NewDriver creates a GPIO driver based on the chosen mode.
// If mock is true, returns a MockDriver (for dev/test).
// If mock is false, returns a real RPiDriver (for Raspberry Pi).
func NewDriver(mock bool) (Driver, error) {
	if mock {
		debug.Info("Using MOCK GPIO driver (development mode)")
		return NewMockDriver(), nil
	}
	return NewRPiRealDriver()
}

// MockDriver is a test implementation. Pins read their pull level until
// a test sets them with SetLevel.
type MockDriver struct {
	mu     sync.Mutex
	levels map[int]Level
}

func NewMockDriver() *MockDriver {
	return &MockDriver{levels: make(map[int]Level)}
}

func (m *MockDriver) SetupInput(pin int, pull Pull) error {
	debug.GPIO("SetupInput", pin, pull)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.levels[pin] = pull == PullUp
	return nil
}

// SetLevel forces the level read on pin.
func (m *MockDriver) SetLevel(pin int, level Level) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.levels[pin] = level
}

func (m *MockDriver) ReadPin(pin int) (Level, error) {
	m.mu.Lock()
	level := m.levels[pin]
	m.mu.Unlock()
	debug.GPIO("ReadPin", pin, level)
	return level, nil
}

func (m *MockDriver) Close() error {
	debug.Trace("GPIO Close (mock)")
	return nil
}
