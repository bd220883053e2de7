package display

import (
	"time"

	"github.com/cjeanneret/WebcamShot/internal/hw/camera"
)

// Key is a keyboard code as reported by the display.
type Key int

const (
	KeyNone   Key = -1
	KeyEscape Key = 27
	KeySpace  Key = 32
)

// NormalizeKey maps a raw key code to its low byte.
// Negative codes mean no key was pressed.
func NormalizeKey(code int) Key {
	if code < 0 {
		return KeyNone
	}
	return Key(code & 0xFF)
}

// Display is a preview surface that also delivers keyboard input.
type Display interface {
	// Show renders the frame. The display does not keep the frame.
	Show(f camera.Frame) error
	// PollKey waits at most timeout for a key press.
	PollKey(timeout time.Duration) Key
	// Close destroys the surface. It is called exactly once.
	Close() error
}
