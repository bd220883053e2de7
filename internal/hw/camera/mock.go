package camera

import (
	"fmt"
	"image/color"

	"github.com/cjeanneret/WebcamShot/internal/debug"
	"github.com/disintegration/imaging"
)

// MockCamera is a synthetic camera used for development without a webcam
// and for testing. Each read produces a solid frame whose shade changes
// with the read count.
type MockCamera struct {
	width     int
	height    int
	failAfter int // reads that succeed before frames become unavailable. 0 = never fail.
	reads     int
	closed    bool
}

// NewMockCamera creates a synthetic camera producing width x height frames.
func NewMockCamera(width, height, failAfter int) *MockCamera {
	debug.Info("Using MOCK camera (%dx%d, fail after %d reads)", width, height, failAfter)
	return &MockCamera{
		width:     width,
		height:    height,
		failAfter: failAfter,
	}
}

func (m *MockCamera) Read() (Frame, error) {
	if m.closed {
		return nil, fmt.Errorf("mock camera closed: %w", ErrFrameUnavailable)
	}
	if m.failAfter > 0 && m.reads >= m.failAfter {
		debug.Trace("Mock camera: read %d refused", m.reads+1)
		return nil, ErrFrameUnavailable
	}
	m.reads++
	shade := uint8(m.reads * 16)
	img := imaging.New(m.width, m.height, color.NRGBA{R: shade, G: 255 - shade, B: 128, A: 255})
	debug.Trace("Mock camera: frame %d", m.reads)
	return NewImageFrame(img), nil
}

// Reads returns the number of frames produced so far.
func (m *MockCamera) Reads() int {
	return m.reads
}

func (m *MockCamera) Close() error {
	if m.closed {
		return fmt.Errorf("mock camera already closed")
	}
	m.closed = true
	debug.Trace("Mock camera closed")
	return nil
}

// ImageFileWriter writes frames with the imaging package. It serves any
// Frame, including frames that do not come from OpenCV.
type ImageFileWriter struct{}

func (ImageFileWriter) WriteFrame(path string, f Frame) error {
	img, err := f.Image()
	if err != nil {
		return fmt.Errorf("convert frame: %w", err)
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
