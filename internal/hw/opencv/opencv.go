// Package opencv backs the camera, display and frame writer contracts with
// OpenCV through gocv. It is the only package that needs cgo.
package opencv

import (
	"fmt"
	"image"
	"time"

	"github.com/cjeanneret/WebcamShot/internal/debug"
	"github.com/cjeanneret/WebcamShot/internal/hw/camera"
	"github.com/cjeanneret/WebcamShot/internal/hw/display"
	"gocv.io/x/gocv"
)

// MatFrame is a camera.Frame holding an OpenCV matrix (BGR).
type MatFrame struct {
	mat gocv.Mat
}

func (f *MatFrame) Image() (image.Image, error) {
	return f.mat.ToImage()
}

func (f *MatFrame) Close() error {
	return f.mat.Close()
}

// toMat returns the OpenCV matrix for any frame. The returned release
// function must be called when the matrix is no longer needed.
func toMat(f camera.Frame) (gocv.Mat, func(), error) {
	if mf, ok := f.(*MatFrame); ok {
		return mf.mat, func() {}, nil
	}
	img, err := f.Image()
	if err != nil {
		return gocv.Mat{}, nil, err
	}
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return gocv.Mat{}, nil, fmt.Errorf("convert image to mat: %w", err)
	}
	return mat, func() { _ = mat.Close() }, nil
}

// Camera is a video capture device opened through OpenCV.
type Camera struct {
	deviceID int
	capture  *gocv.VideoCapture
}

// OpenCamera opens the video device with the given index.
func OpenCamera(deviceID int) (*Camera, error) {
	debug.Info("Opening OpenCV video device %d", deviceID)
	vc, err := gocv.OpenVideoCapture(deviceID)
	if err != nil {
		return nil, fmt.Errorf("open video device %d: %w", deviceID, err)
	}
	if !vc.IsOpened() {
		_ = vc.Close()
		return nil, fmt.Errorf("open video device %d: device not available", deviceID)
	}
	return &Camera{deviceID: deviceID, capture: vc}, nil
}

func (c *Camera) Read() (camera.Frame, error) {
	mat := gocv.NewMat()
	if ok := c.capture.Read(&mat); !ok || mat.Empty() {
		_ = mat.Close()
		return nil, fmt.Errorf("device %d: %w", c.deviceID, camera.ErrFrameUnavailable)
	}
	debug.Trace("OpenCV camera: frame %dx%d", mat.Cols(), mat.Rows())
	return &MatFrame{mat: mat}, nil
}

func (c *Camera) Close() error {
	debug.Verbose("Releasing video device %d", c.deviceID)
	return c.capture.Close()
}

// Window is a named OpenCV HighGUI window.
type Window struct {
	window *gocv.Window
}

// NewWindow creates the preview window.
func NewWindow(title string) *Window {
	debug.Info("Creating window %q", title)
	return &Window{window: gocv.NewWindow(title)}
}

func (w *Window) Show(f camera.Frame) error {
	mat, release, err := toMat(f)
	if err != nil {
		return err
	}
	defer release()
	w.window.IMShow(mat)
	return nil
}

func (w *Window) PollKey(timeout time.Duration) display.Key {
	ms := int(timeout / time.Millisecond)
	if ms < 1 {
		ms = 1
	}
	return display.NormalizeKey(w.window.WaitKey(ms))
}

func (w *Window) Close() error {
	debug.Verbose("Destroying window")
	return w.window.Close()
}

// Writer encodes frames with cv::imwrite. The format follows the extension.
type Writer struct{}

func (Writer) WriteFrame(path string, f camera.Frame) error {
	mat, release, err := toMat(f)
	if err != nil {
		return err
	}
	defer release()
	if ok := gocv.IMWrite(path, mat); !ok {
		return fmt.Errorf("imwrite %s failed", path)
	}
	return nil
}
