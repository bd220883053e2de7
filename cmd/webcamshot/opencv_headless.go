//go:build headless

package main

import (
	"errors"

	"github.com/cjeanneret/WebcamShot/internal/hw/camera"
	"github.com/cjeanneret/WebcamShot/internal/hw/display"
)

// Built with -tags headless: OpenCV is not linked, only the mock camera
// and the headless display are available.
var errNoOpenCV = errors.New("built without OpenCV support (headless tag)")

func openCVCamera(int) (camera.Camera, error) {
	return nil, errNoOpenCV
}

func openCVWindow(string) (display.Display, error) {
	return nil, errNoOpenCV
}

func openCVWriter() camera.FrameWriter {
	return nil
}
