package camera

import (
	"errors"
	"image"
)

// ErrFrameUnavailable is returned by Read when the device did not produce
// a frame. Callers treat it as terminal; there is no retry.
var ErrFrameUnavailable = errors.New("frame unavailable")

// Camera is the high-level interface used by the rest of the application.
// It represents an exclusively-owned video input, regardless of how it's
// backed (OpenCV device, synthetic source, etc.).
type Camera interface {
	// Read returns a fresh frame or an error wrapping ErrFrameUnavailable.
	Read() (Frame, error)
	// Close releases the device. It is called exactly once.
	Close() error
}

// Frame is one image sample read from a Camera.
// The consumer closes it once it has been displayed or written.
type Frame interface {
	// Image converts the frame to a standard Go image.
	Image() (image.Image, error)
	Close() error
}

// FrameWriter persists a frame to a file. The encoding is chosen from the
// file extension.
type FrameWriter interface {
	WriteFrame(path string, f Frame) error
}

// ImageFrame is a Frame backed by an in-memory image.
type ImageFrame struct {
	Img image.Image
}

// NewImageFrame wraps img as a Frame.
func NewImageFrame(img image.Image) *ImageFrame {
	return &ImageFrame{Img: img}
}

func (f *ImageFrame) Image() (image.Image, error) {
	if f.Img == nil {
		return nil, ErrFrameUnavailable
	}
	return f.Img, nil
}

func (f *ImageFrame) Close() error { return nil }
